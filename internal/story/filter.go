package story

import (
	"slices"
)

// FilterMap maps each category to its sorted, de-duplicated option list.
type FilterMap map[Category][]string

// BuildFilterMap collects the selectable values of every category across
// all stories. Empty values are skipped.
func BuildFilterMap(all []Story) FilterMap {
	fm := make(FilterMap, len(categories))
	for _, def := range categories {
		seen := make(map[string]struct{})
		values := make([]string, 0)
		for _, st := range all {
			for _, v := range def.extract(st) {
				if v == "" {
					continue
				}
				if _, ok := seen[v]; ok {
					continue
				}
				seen[v] = struct{}{}
				values = append(values, v)
			}
		}
		slices.Sort(values)
		fm[def.name] = values
	}
	return fm
}

// Filter returns the stories matching value in category c, preserving
// order. An unknown category yields an empty result.
func Filter(all []Story, c Category, value string) []Story {
	out := make([]Story, 0)
	for _, st := range all {
		if Matches(st, c, value) {
			out = append(out, st)
		}
	}
	return out
}

// ByTitles returns the stories of all whose title is in titles, in the
// order of all.
func ByTitles(all []Story, titles []string) []Story {
	want := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		want[t] = struct{}{}
	}
	out := make([]Story, 0, len(titles))
	for _, st := range all {
		if _, ok := want[st.Title]; ok {
			out = append(out, st)
		}
	}
	return out
}

// Titles returns the titles of the given stories.
func Titles(stories []Story) []string {
	out := make([]string, len(stories))
	for i, st := range stories {
		out[i] = st.Title
	}
	return out
}
