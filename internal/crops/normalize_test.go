package crops

import (
	"errors"
	"testing"
	"time"
)

func TestValidateInputRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		soil    SoilConditions
		farming FarmingConditions
	}{
		{name: "ph above scale", soil: SoilConditions{PH: 14.5}},
		{name: "ph below scale", soil: SoilConditions{PH: -0.1}},
		{name: "negative nitrogen", soil: SoilConditions{PH: 6.5, Nitrogen: -1}},
		{name: "negative phosphorus", soil: SoilConditions{PH: 6.5, Phosphorus: -1}},
		{name: "negative potassium", soil: SoilConditions{PH: 6.5, Potassium: -1}},
		{name: "negative organic matter", soil: SoilConditions{PH: 6.5, OrganicMatter: -0.5}},
		{name: "negative area", soil: SoilConditions{PH: 6.5}, farming: FarmingConditions{Area: -2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateInput(tc.soil, tc.farming)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestValidateInputAcceptsZeroes(t *testing.T) {
	if err := validateInput(SoilConditions{}, FarmingConditions{}); err != nil {
		t.Fatalf("expected zero input to validate, got %v", err)
	}
}

func TestNormalizeInputAppliesDefaults(t *testing.T) {
	now := time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC)
	input := normalizeInput(
		SoilConditions{Nitrogen: 90, Phosphorus: 40, Potassium: 40, PH: 6.5},
		WeatherConditions{Temperature: 28, Humidity: 75, Rainfall: 900},
		FarmingConditions{},
		now,
	)

	if input.OrganicMatter != 2.5 {
		t.Fatalf("expected default organic matter 2.5, got %v", input.OrganicMatter)
	}
	if input.SoilType != "loam" {
		t.Fatalf("expected default soil type loam, got %q", input.SoilType)
	}
	if input.IrrigationType != "rain-fed" {
		t.Fatalf("expected default irrigation rain-fed, got %q", input.IrrigationType)
	}
	if input.Area != 1 {
		t.Fatalf("expected default area 1, got %v", input.Area)
	}
	if input.Season != SeasonKharif {
		t.Fatalf("expected derived season Kharif for July, got %q", input.Season)
	}
	if input.Location.Latitude != 23.3441 || input.Location.Longitude != 85.3096 {
		t.Fatalf("expected default location, got %+v", input.Location)
	}
}

func TestNormalizeInputKeepsProvidedValues(t *testing.T) {
	now := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	input := normalizeInput(
		SoilConditions{Nitrogen: 50, PH: 7.1, OrganicMatter: 4},
		WeatherConditions{Temperature: 18, Humidity: 55, Rainfall: 300, Season: "Kharif"},
		FarmingConditions{Area: 3.5, SoilType: "clay", IrrigationType: "drip", Latitude: 12.97, Longitude: 77.59},
		now,
	)

	if input.OrganicMatter != 4 {
		t.Fatalf("expected organic matter 4, got %v", input.OrganicMatter)
	}
	if input.SoilType != "clay" || input.IrrigationType != "drip" {
		t.Fatalf("expected provided farming values, got %q/%q", input.SoilType, input.IrrigationType)
	}
	if input.Area != 3.5 {
		t.Fatalf("expected area 3.5, got %v", input.Area)
	}
	if input.Season != "Kharif" {
		t.Fatalf("expected provided season kept, got %q", input.Season)
	}
	if input.Location.Latitude != 12.97 || input.Location.Longitude != 77.59 {
		t.Fatalf("expected provided location, got %+v", input.Location)
	}
}

func TestSeasonForMonth(t *testing.T) {
	cases := []struct {
		month time.Month
		want  string
	}{
		{time.January, SeasonRabi},
		{time.February, SeasonRabi},
		{time.March, SeasonRabi},
		{time.April, SeasonSummer},
		{time.May, SeasonSummer},
		{time.June, SeasonKharif},
		{time.July, SeasonKharif},
		{time.August, SeasonKharif},
		{time.September, SeasonKharif},
		{time.October, SeasonRabi},
		{time.November, SeasonRabi},
		{time.December, SeasonRabi},
	}
	for _, tc := range cases {
		if got := seasonForMonth(tc.month); got != tc.want {
			t.Fatalf("month %s: expected %s, got %s", tc.month, tc.want, got)
		}
	}
}
