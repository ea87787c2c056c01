package story

import "strings"

// Category names a filter dimension shown as a dropdown.
type Category string

const (
	CategoryRegion      Category = "Region"
	CategoryTypeOfPlace Category = "Type of Place"
	CategorySpeaker     Category = "Speaker"
)

// categoryDef pairs a category with the pure functions used to build its
// dropdown options and to test a story against a chosen option.
type categoryDef struct {
	name    Category
	extract func(Story) []string
	match   func(s Story, value string) bool
}

// categories is the fixed, ordered filter table. New categories are added
// here; nothing else branches on the category name.
var categories = []categoryDef{
	{
		name: CategoryRegion,
		extract: func(s Story) []string {
			return []string{s.Point.Properties.Region}
		},
		match: func(s Story, value string) bool {
			return sameValue(s.Point.Properties.Region, value)
		},
	},
	{
		name: CategoryTypeOfPlace,
		extract: func(s Story) []string {
			return []string{s.Place.TypeOfPlace}
		},
		match: func(s Story, value string) bool {
			return sameValue(s.Place.TypeOfPlace, value)
		},
	},
	{
		name:    CategorySpeaker,
		extract: Story.SpeakerNames,
		match: func(s Story, value string) bool {
			for _, sp := range s.Speakers {
				if sameValue(sp.Name, value) {
					return true
				}
			}
			return false
		},
	},
}

// sameValue compares a story field with a chosen option ignoring case.
func sameValue(field, value string) bool {
	return field != "" && strings.EqualFold(field, value)
}

// Categories returns the filter categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = c.name
	}
	return out
}

func lookup(c Category) (categoryDef, bool) {
	for _, def := range categories {
		if def.name == c {
			return def, true
		}
	}
	return categoryDef{}, false
}

// Matches reports whether the story carries value in the given category,
// ignoring case. Empty values never match.
func Matches(s Story, c Category, value string) bool {
	def, ok := lookup(c)
	if !ok || strings.TrimSpace(value) == "" {
		return false
	}
	return def.match(s, value)
}

// Known reports whether c is one of the filter categories.
func Known(c Category) bool {
	_, ok := lookup(c)
	return ok
}
