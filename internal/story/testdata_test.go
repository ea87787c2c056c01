package story

func pt(lng, lat float64, region string) Point {
	return Point{
		Type:       "Feature",
		Geometry:   Geometry{Type: "Point", Coordinates: []float64{lng, lat}},
		Properties: Properties{Region: region},
	}
}

func sampleStories() []Story {
	return []Story{
		{Title: "A", Point: pt(1, 2, "North"), Place: Place{TypeOfPlace: "Cafe"}, Speakers: []Speaker{{Name: "Jo"}}},
		{Title: "B", Point: pt(3, 4, "South"), Place: Place{TypeOfPlace: "Park"}, Speakers: []Speaker{{Name: "Ann"}}},
		{Title: "C", Point: pt(1, 2, "north"), Place: Place{TypeOfPlace: "cafe"}, Speakers: []Speaker{{Name: "Ann"}, {Name: "Bo"}}},
	}
}
