package story

import (
	"math"

	"github.com/golang/geo/s2"
)

// Pin is one map marker: a distinct location and the stories told there.
type Pin struct {
	Point   Point
	Stories []Story
}

// Pins groups stories by location, in first-seen order.
func Pins(stories []Story) []Pin {
	idx := make(map[[2]float64]int)
	pins := make([]Pin, 0, len(stories))
	for _, st := range stories {
		k := st.Point.Key()
		if i, ok := idx[k]; ok {
			pins[i].Stories = append(pins[i].Stories, st)
			continue
		}
		idx[k] = len(pins)
		pins = append(pins, Pin{Point: st.Point, Stories: []Story{st}})
	}
	return pins
}

// PinsFor returns one pin per distinct location among the features, each
// carrying every story of all told at that location.
func PinsFor(fc FeatureCollection, all []Story) []Pin {
	byKey := make(map[[2]float64][]Story)
	for _, pin := range Pins(all) {
		byKey[pin.Point.Key()] = pin.Stories
	}
	seen := make(map[[2]float64]bool)
	pins := make([]Pin, 0, len(fc.Features))
	for _, f := range fc.Features {
		k := f.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		pins = append(pins, Pin{Point: f, Stories: byKey[k]})
	}
	return pins
}

// LatLng converts a point into an s2 LatLng.
func LatLng(p Point) s2.LatLng {
	return s2.LatLngFromDegrees(p.Lat(), p.Lng())
}

// Bounds returns the smallest lat/lng rectangle containing every feature.
func Bounds(fc FeatureCollection) s2.Rect {
	r := s2.EmptyRect()
	for _, p := range fc.Features {
		r = r.AddPoint(LatLng(p))
	}
	return r
}

// Project maps ll onto a w×h character grid spanning rect, north up.
// A degenerate axis places points on the grid centre line.
func Project(rect s2.Rect, ll s2.LatLng, w, h int) (x, y int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	lo, hi := rect.Lo(), rect.Hi()

	lngLo, lngHi := lo.Lng.Degrees(), hi.Lng.Degrees()
	lng := ll.Lng.Degrees()
	if rect.Lng.IsInverted() {
		// crosses the antimeridian: unwrap to a continuous range
		lngHi += 360
		if lng < lngLo {
			lng += 360
		}
	}

	x = scale(lng, lngLo, lngHi, w)
	y = (h - 1) - scale(ll.Lat.Degrees(), lo.Lat.Degrees(), hi.Lat.Degrees(), h)
	return x, y
}

func scale(v, lo, hi float64, n int) int {
	span := hi - lo
	if span <= 0 || math.IsNaN(span) {
		return (n - 1) / 2
	}
	i := int(math.Round((v - lo) / span * float64(n-1)))
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// DistanceKm is the great-circle distance between two points.
func DistanceKm(a, b Point) float64 {
	const earthRadiusKm = 6371.0088
	return LatLng(a).Distance(LatLng(b)).Radians() * earthRadiusKm
}

// Nearest returns the pin closest to p, ignoring pins at p itself.
func Nearest(pins []Pin, p Point) (Pin, float64, bool) {
	var (
		best  Pin
		bestD = math.Inf(1)
		found bool
	)
	for _, pin := range pins {
		if pin.Point.Key() == p.Key() {
			continue
		}
		if d := DistanceKm(p, pin.Point); d < bestD {
			best, bestD, found = pin, d, true
		}
	}
	return best, bestD, found
}
