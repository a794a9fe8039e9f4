package plotmap_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/couchcryptid/fars-accidents/internal/adapter/plotmap"
	"github.com/couchcryptid/fars-accidents/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var alabama = domain.Bounds{MinLon: -88.5, MaxLon: -85.0, MinLat: 30.2, MaxLat: 35.0}

func newRenderer(path string) *plotmap.Renderer {
	return plotmap.NewRenderer(plotmap.Options{
		Path:   path,
		Width:  4 * vg.Inch,
		Height: 4 * vg.Inch,
		Title:  "STATE 1, 2013",
	}, discardLogger())
}

func TestRenderer_WritesFormats(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		check func(t *testing.T, data []byte)
	}{
		{"png", "map.png", func(t *testing.T, data []byte) {
			assert.True(t, strings.HasPrefix(string(data), "\x89PNG"))
		}},
		{"svg", "map.svg", func(t *testing.T, data []byte) {
			assert.Contains(t, string(data), "<svg")
			assert.Contains(t, string(data), "Longitude")
		}},
		{"pdf", "map.pdf", func(t *testing.T, data []byte) {
			assert.True(t, strings.HasPrefix(string(data), "%PDF"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			r := newRenderer(path)

			require.NoError(t, r.DrawBaseMap(alabama))
			require.NoError(t, r.DrawPoints([]domain.Point{
				{Lon: -86.8, Lat: 33.5},
				{Lon: -88.0, Lat: 30.7},
			}))
			require.NoError(t, r.Flush())

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			require.NotEmpty(t, data)
			tt.check(t, data)
		})
	}
}

func TestRenderer_CreatesOutputDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps", "2013", "al.png")
	r := newRenderer(path)

	require.NoError(t, r.DrawBaseMap(alabama))
	require.NoError(t, r.Flush())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestRenderer_RequiresBaseMap(t *testing.T) {
	r := newRenderer(filepath.Join(t.TempDir(), "map.png"))

	assert.Error(t, r.DrawPoints([]domain.Point{{Lon: -86, Lat: 32}}))
	assert.Error(t, r.Flush())
}

func TestRenderer_FlushResets(t *testing.T) {
	r := newRenderer(filepath.Join(t.TempDir(), "map.png"))

	require.NoError(t, r.DrawBaseMap(alabama))
	require.NoError(t, r.Flush())
	assert.Error(t, r.Flush(), "second flush has no map")
}

func TestRenderer_UnsupportedFormat(t *testing.T) {
	r := newRenderer(filepath.Join(t.TempDir(), "map.gif"))

	require.NoError(t, r.DrawBaseMap(alabama))
	err := r.Flush()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "map.gif")
}

func TestRenderer_RejectsPointsOutsideBaseMap(t *testing.T) {
	r := newRenderer(filepath.Join(t.TempDir(), "map.png"))

	require.NoError(t, r.DrawBaseMap(alabama))
	err := r.DrawPoints([]domain.Point{{Lon: -86.8, Lat: 33.5}, {Lon: -118.2, Lat: 34.0}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside base map")
}

func TestRenderer_NoPointsIsFine(t *testing.T) {
	r := newRenderer(filepath.Join(t.TempDir(), "map.svg"))

	require.NoError(t, r.DrawBaseMap(alabama))
	assert.NoError(t, r.DrawPoints(nil))
}
