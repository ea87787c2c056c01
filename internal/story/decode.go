package story

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoStories is returned when a document holds no usable story.
var ErrNoStories = errors.New("no valid stories")

// Format selects the document encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath picks the format from a file name extension.
func FormatFromPath(path string) Format {
	p := strings.ToLower(path)
	if strings.HasSuffix(p, ".yaml") || strings.HasSuffix(p, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}

// Rejection explains why a story was dropped at load time.
type Rejection struct {
	Index  int
	Title  string
	Reason string
}

func (r Rejection) Error() string {
	if r.Title == "" {
		return fmt.Sprintf("story #%d: %s", r.Index, r.Reason)
	}
	return fmt.Sprintf("story #%d (%q): %s", r.Index, r.Title, r.Reason)
}

// RawStory mirrors the wire shape with every nested field optional so that
// absent fields can be told apart from empty ones.
type RawStory struct {
	ID          int          `json:"id" yaml:"id"`
	Title       *string      `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Point       *rawPoint    `json:"point" yaml:"point"`
	Place       *rawPlace    `json:"place" yaml:"place"`
	Speakers    []rawSpeaker `json:"speakers" yaml:"speakers"`
}

type rawPoint struct {
	Geometry *struct {
		Type        string    `json:"type" yaml:"type"`
		Coordinates []float64 `json:"coordinates" yaml:"coordinates"`
	} `json:"geometry" yaml:"geometry"`
	Properties *struct {
		Region *string `json:"region" yaml:"region"`
		Name   string  `json:"name" yaml:"name"`
	} `json:"properties" yaml:"properties"`
}

type rawPlace struct {
	Name        string  `json:"name" yaml:"name"`
	TypeOfPlace *string `json:"type_of_place" yaml:"type_of_place"`
}

type rawSpeaker struct {
	Name *string `json:"name" yaml:"name"`
}

type envelope struct {
	Stories []RawStory `json:"stories" yaml:"stories"`
	Total   int        `json:"total" yaml:"total"`
}

// Page is one decoded story document.
type Page struct {
	Stories []RawStory
	// Total is the "total" announced by an envelope, or 0.
	Total int
	// Bare is set when the document was a plain array without envelope.
	Bare bool
}

// DecodeRaw parses a document that is either a bare story array or an
// object with a "stories" array.
func DecodeRaw(r io.Reader, f Format) (Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Page{}, fmt.Errorf("read stories: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Page{Bare: true}, nil
	}

	switch f {
	case FormatYAML:
		var list []RawStory
		if err := yaml.Unmarshal(trimmed, &list); err == nil {
			return Page{Stories: list, Bare: true}, nil
		}
		var env envelope
		if err := yaml.Unmarshal(trimmed, &env); err != nil {
			return Page{}, fmt.Errorf("decode yaml stories: %w", err)
		}
		return Page{Stories: env.Stories, Total: env.Total}, nil
	default:
		if trimmed[0] == '[' {
			var list []RawStory
			if err := json.Unmarshal(trimmed, &list); err != nil {
				return Page{}, fmt.Errorf("decode json stories: %w", err)
			}
			return Page{Stories: list, Bare: true}, nil
		}
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return Page{}, fmt.Errorf("decode json stories: %w", err)
		}
		return Page{Stories: env.Stories, Total: env.Total}, nil
	}
}

// Key identifies a raw record across pages: its id when set, else its title.
func (rs RawStory) Key() string {
	if rs.ID != 0 {
		return "id:" + strconv.Itoa(rs.ID)
	}
	if rs.Title != nil {
		return "title:" + strings.TrimSpace(*rs.Title)
	}
	return ""
}

// Decode parses and validates a story document.
func Decode(r io.Reader, f Format) ([]Story, []Rejection, error) {
	page, err := DecodeRaw(r, f)
	if err != nil {
		return nil, nil, err
	}
	stories, rejected := Validate(page.Stories)
	if len(stories) == 0 {
		return nil, rejected, ErrNoStories
	}
	return stories, rejected, nil
}

// Validate converts raw records into stories. Records without a title or a
// usable point are rejected; a missing region, place type or speaker list
// defaults to empty.
func Validate(raw []RawStory) ([]Story, []Rejection) {
	stories := make([]Story, 0, len(raw))
	var rejected []Rejection
	for i, rs := range raw {
		st, reason := validateOne(rs)
		if reason != "" {
			title := ""
			if rs.Title != nil {
				title = *rs.Title
			}
			rejected = append(rejected, Rejection{Index: i, Title: title, Reason: reason})
			continue
		}
		stories = append(stories, st)
	}
	return stories, rejected
}

func validateOne(rs RawStory) (Story, string) {
	if rs.Title == nil || strings.TrimSpace(*rs.Title) == "" {
		return Story{}, "missing title"
	}
	if rs.Point == nil || rs.Point.Geometry == nil {
		return Story{}, "missing point geometry"
	}
	c := rs.Point.Geometry.Coordinates
	if len(c) != 2 {
		return Story{}, fmt.Sprintf("expected 2 coordinates, got %d", len(c))
	}
	lng, lat := c[0], c[1]
	if math.IsNaN(lng) || math.IsNaN(lat) || math.IsInf(lng, 0) || math.IsInf(lat, 0) {
		return Story{}, "non-finite coordinates"
	}
	if lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return Story{}, fmt.Sprintf("coordinates out of range: %v", c)
	}

	st := Story{
		ID:          rs.ID,
		Title:       strings.TrimSpace(*rs.Title),
		Description: rs.Description,
		Point: Point{
			Type:     "Feature",
			Geometry: Geometry{Type: "Point", Coordinates: []float64{lng, lat}},
		},
		Speakers: make([]Speaker, 0, len(rs.Speakers)),
	}
	if props := rs.Point.Properties; props != nil {
		st.Point.Properties.Name = props.Name
		if props.Region != nil {
			st.Point.Properties.Region = strings.TrimSpace(*props.Region)
		}
	}
	if rs.Place != nil {
		st.Place.Name = rs.Place.Name
		if rs.Place.TypeOfPlace != nil {
			st.Place.TypeOfPlace = strings.TrimSpace(*rs.Place.TypeOfPlace)
		}
	}
	for _, sp := range rs.Speakers {
		if sp.Name == nil || strings.TrimSpace(*sp.Name) == "" {
			continue
		}
		st.Speakers = append(st.Speakers, Speaker{Name: strings.TrimSpace(*sp.Name)})
	}
	return st, ""
}

// JoinRejections folds rejections into a single error, or nil.
func JoinRejections(rejected []Rejection) error {
	errs := make([]error, len(rejected))
	for i, r := range rejected {
		errs[i] = r
	}
	return errors.Join(errs...)
}
