package domain

import "math"

// Sentinel thresholds for unknown coordinates.
const (
	LongitudeUnknownMin = 900.0 // LONGITUD >= this is unknown
	LatitudeUnknownMin  = 90.0  // LATITUDE > this is unknown
)

// minExtent is the smallest span, in degrees, a map extent is widened to so a
// single point still gets a drawable area.
const minExtent = 0.5

// Point is a plottable WGS-84 coordinate.
type Point struct {
	Lon float64
	Lat float64
}

// Bounds is a longitude/latitude bounding box.
type Bounds struct {
	MinLon, MaxLon float64
	MinLat, MaxLat float64
}

// Width returns the longitude span.
func (b Bounds) Width() float64 { return b.MaxLon - b.MinLon }

// Height returns the latitude span.
func (b Bounds) Height() float64 { return b.MaxLat - b.MinLat }

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.Lon >= b.MinLon && p.Lon <= b.MaxLon && p.Lat >= b.MinLat && p.Lat <= b.MaxLat
}

// SanitizeCoordinates returns a copy of records with sentinel coordinates
// replaced by nil. Rows are never dropped.
func SanitizeCoordinates(records []AccidentRecord) []AccidentRecord {
	out := make([]AccidentRecord, len(records))
	for i, r := range records {
		if r.Longitude != nil && (*r.Longitude >= LongitudeUnknownMin || math.IsNaN(*r.Longitude)) {
			r.Longitude = nil
		}
		if r.Latitude != nil && (*r.Latitude > LatitudeUnknownMin || math.IsNaN(*r.Latitude)) {
			r.Latitude = nil
		}
		out[i] = r
	}
	return out
}

// PlottablePoints returns one point per record with both coordinates known.
func PlottablePoints(records []AccidentRecord) []Point {
	var pts []Point
	for i := range records {
		r := records[i]
		if r.Longitude == nil || r.Latitude == nil {
			continue
		}
		pts = append(pts, Point{Lon: *r.Longitude, Lat: *r.Latitude})
	}
	return pts
}

// BoundsOf returns the extent of pts. Spans narrower than half a degree are
// widened around their centre. ok is false when pts is empty.
func BoundsOf(pts []Point) (b Bounds, ok bool) {
	if len(pts) == 0 {
		return Bounds{}, false
	}
	b = Bounds{MinLon: pts[0].Lon, MaxLon: pts[0].Lon, MinLat: pts[0].Lat, MaxLat: pts[0].Lat}
	for _, p := range pts[1:] {
		b.MinLon = math.Min(b.MinLon, p.Lon)
		b.MaxLon = math.Max(b.MaxLon, p.Lon)
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
	}
	b.MinLon, b.MaxLon = widen(b.MinLon, b.MaxLon)
	b.MinLat, b.MaxLat = widen(b.MinLat, b.MaxLat)
	return b, true
}

func widen(lo, hi float64) (float64, float64) {
	if hi-lo >= minExtent {
		return lo, hi
	}
	mid := (lo + hi) / 2
	return mid - minExtent/2, mid + minExtent/2
}
