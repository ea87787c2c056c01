// Package story holds the story-map domain model: stories pinned to
// GeoJSON points, the fixed filter categories, and the pure functions that
// derive points, filter options and filtered views from a story list.
package story

import "strconv"

// Speaker is a person telling (part of) a story.
type Speaker struct {
	Name string `json:"name" yaml:"name"`
}

// Place describes where a story was told.
type Place struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	TypeOfPlace string `json:"type_of_place" yaml:"type_of_place"`
}

// Geometry is a GeoJSON point geometry. Coordinates are [lng, lat].
type Geometry struct {
	Type        string    `json:"type" yaml:"type"`
	Coordinates []float64 `json:"coordinates" yaml:"coordinates"`
}

// Properties are the descriptive fields attached to a point.
type Properties struct {
	Region string `json:"region" yaml:"region"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Point is a GeoJSON feature with a point geometry.
type Point struct {
	Type       string     `json:"type" yaml:"type"`
	Geometry   Geometry   `json:"geometry" yaml:"geometry"`
	Properties Properties `json:"properties" yaml:"properties"`
}

// Lng returns the longitude of the point.
func (p Point) Lng() float64 { return p.Geometry.Coordinates[0] }

// Lat returns the latitude of the point.
func (p Point) Lat() float64 { return p.Geometry.Coordinates[1] }

// Key identifies the location of the point; stories sharing a location
// share a pin on the map.
func (p Point) Key() [2]float64 {
	return [2]float64{p.Geometry.Coordinates[0], p.Geometry.Coordinates[1]}
}

// Story is one narrative record.
type Story struct {
	ID          int       `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Point       Point     `json:"point" yaml:"point"`
	Place       Place     `json:"place" yaml:"place"`
	Speakers    []Speaker `json:"speakers" yaml:"speakers"`
}

// SpeakerNames returns the names of all speakers in order.
func (s Story) SpeakerNames() []string {
	names := make([]string, 0, len(s.Speakers))
	for _, sp := range s.Speakers {
		names = append(names, sp.Name)
	}
	return names
}

// FeatureCollection is the set of points shown on the map.
type FeatureCollection struct {
	Type     string  `json:"type"`
	Features []Point `json:"features"`
}

// PointsFromStories returns the points of the given stories, in order.
func PointsFromStories(stories []Story) FeatureCollection {
	features := make([]Point, 0, len(stories))
	for _, st := range stories {
		features = append(features, st.Point)
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}

// FormatCoords renders coordinates as "lng, lat" for display.
func FormatCoords(c []float64) string {
	if len(c) < 2 {
		return "–"
	}
	return strconv.FormatFloat(c[0], 'f', 4, 64) + ", " + strconv.FormatFloat(c[1], 'f', 4, 64)
}
