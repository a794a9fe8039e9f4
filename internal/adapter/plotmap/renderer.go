// Package plotmap draws state accident maps with gonum/plot.
package plotmap

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/fars-accidents/internal/domain"
)

var (
	frameColor = color.Gray{Y: 96}
	pointColor = color.RGBA{R: 200, G: 30, B: 30, A: 255}
)

// axisPad is the share of the extent added around it on each side.
const axisPad = 0.03

// errNoBaseMap is returned when points are drawn or flushed before a base map.
var errNoBaseMap = errors.New("base map not drawn")

// Options configures a Renderer.
type Options struct {
	Path   string    // output file; the extension picks the format
	Width  vg.Length // image width
	Height vg.Length // image height
	Title  string    // optional plot title
	Radius vg.Length // point radius; zero uses 1.5pt
}

// Renderer implements pipeline.MapRenderer. One Renderer produces one map per
// DrawBaseMap/DrawPoints/Flush cycle.
type Renderer struct {
	opts   Options
	logger *slog.Logger
	plot   *plot.Plot
	bounds domain.Bounds
}

// NewRenderer creates a Renderer writing to opts.Path.
func NewRenderer(opts Options, logger *slog.Logger) *Renderer {
	if opts.Radius == 0 {
		opts.Radius = vg.Points(1.5)
	}
	return &Renderer{opts: opts, logger: logger}
}

// DrawBaseMap starts a new map whose axes span b, with a graticule and the
// outline of the extent.
func (r *Renderer) DrawBaseMap(b domain.Bounds) error {
	p := plot.New()
	p.Title.Text = r.opts.Title
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"
	p.X.Tick.Marker = degreeTicks{pos: "E", neg: "W"}
	p.Y.Tick.Marker = degreeTicks{pos: "N", neg: "S"}
	p.Add(plotter.NewGrid())

	frame, err := plotter.NewLine(plotter.XYs{
		{X: b.MinLon, Y: b.MinLat},
		{X: b.MaxLon, Y: b.MinLat},
		{X: b.MaxLon, Y: b.MaxLat},
		{X: b.MinLon, Y: b.MaxLat},
		{X: b.MinLon, Y: b.MinLat},
	})
	if err != nil {
		return fmt.Errorf("outline extent: %w", err)
	}
	frame.LineStyle.Color = frameColor
	frame.LineStyle.Width = vg.Points(1)
	p.Add(frame)

	// Pad the axes so markers on the edge of the extent are not clipped.
	padX, padY := b.Width()*axisPad, b.Height()*axisPad
	p.X.Min, p.X.Max = b.MinLon-padX, b.MaxLon+padX
	p.Y.Min, p.Y.Max = b.MinLat-padY, b.MaxLat+padY

	r.plot = p
	r.bounds = b
	return nil
}

// DrawPoints adds one marker per point to the current map.
func (r *Renderer) DrawPoints(points []domain.Point) error {
	if r.plot == nil {
		return errNoBaseMap
	}
	if len(points) == 0 {
		return nil
	}

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		if !r.bounds.Contains(pt) {
			return fmt.Errorf("point (%g, %g) outside base map", pt.Lon, pt.Lat)
		}
		xys[i].X = pt.Lon
		xys[i].Y = pt.Lat
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("scatter points: %w", err)
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = r.opts.Radius
	s.GlyphStyle.Color = pointColor
	r.plot.Add(s)
	return nil
}

// Flush saves the current map to the configured path and resets the
// renderer.
func (r *Renderer) Flush() error {
	if r.plot == nil {
		return errNoBaseMap
	}
	p := r.plot
	r.plot = nil

	if dir := filepath.Dir(r.opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create map dir: %w", err)
		}
	}
	if err := p.Save(r.opts.Width, r.opts.Height, r.opts.Path); err != nil {
		return fmt.Errorf("save %s: %w", r.opts.Path, err)
	}
	r.logger.Debug("map written", "path", r.opts.Path)
	return nil
}

// degreeTicks labels axis ticks as degrees with a hemisphere letter,
// e.g. 86.5°W.
type degreeTicks struct {
	pos, neg string
}

func (d degreeTicks) Ticks(lo, hi float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(lo, hi)
	for i := range ticks {
		if ticks[i].Label == "" {
			continue
		}
		ticks[i].Label = degreeLabel(ticks[i].Label, ticks[i].Value, d.pos, d.neg)
	}
	return ticks
}

// degreeLabel rewrites a plain tick label such as "-86.5" to "86.5°W".
func degreeLabel(label string, v float64, pos, neg string) string {
	switch {
	case v < 0:
		return strings.TrimPrefix(label, "-") + "°" + neg
	case v > 0:
		return label + "°" + pos
	default:
		return "0°"
	}
}
