package ui

import (
	"reflect"
	"testing"
)

func TestNarrowOptions(t *testing.T) {
	cfg := FilterConfig{MinCoverage: 0.6, MaxSpread: 40, MaxResults: 200}
	options := []string{"Ann", "Bo", "Jo", "Joanna"}

	tests := []struct {
		name string
		q    string
		want []int
	}{
		{"empty keeps all", "", []int{0, 1, 2, 3}},
		{"blank keeps all", "   ", []int{0, 1, 2, 3}},
		{"substring is case-insensitive", "JO", []int{2, 3}},
		{"substring inside", "ann", []int{0, 3}},
		{"fuzzy fallback", "jna", []int{3}},
		{"no match", "xyz", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := narrowOptions(tt.q, options, cfg)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("narrowOptions(%q) = %v, want %v", tt.q, got, tt.want)
			}
		})
	}
}

func TestNarrowOptionsMaxResults(t *testing.T) {
	cfg := FilterConfig{MinCoverage: 0.6, MaxSpread: 40, MaxResults: 1}
	got := narrowOptions("a", []string{"a1", "a2", "a3"}, cfg)
	if !reflect.DeepEqual(got, []int{0}) {
		t.Fatalf("expected [0], got %v", got)
	}
}
