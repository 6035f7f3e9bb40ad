package crops

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/ml"
)

// Defaults applied when the caller omits optional fields. The reference
// location is Ranchi, the project's pilot district.
const (
	defaultOrganicMatter  = 2.5
	defaultSoilType       = "loam"
	defaultIrrigationType = "rain-fed"
	defaultArea           = 1.0
	defaultLatitude       = 23.3441
	defaultLongitude      = 85.3096
)

// Season labels of the Indian cropping calendar.
const (
	SeasonKharif = "Kharif"
	SeasonRabi   = "Rabi"
	SeasonSummer = "Summer"
)

// ErrInvalidInput marks validation failures rejected before the
// pipeline runs.
var ErrInvalidInput = errors.New("invalid input")

func validateInput(soil SoilConditions, farming FarmingConditions) error {
	if soil.PH < 0 || soil.PH > 14 {
		return fmt.Errorf("%w: ph must be between 0 and 14", ErrInvalidInput)
	}
	if soil.Nitrogen < 0 || soil.Phosphorus < 0 || soil.Potassium < 0 {
		return fmt.Errorf("%w: nutrient values must not be negative", ErrInvalidInput)
	}
	if soil.OrganicMatter < 0 {
		return fmt.Errorf("%w: organic matter must not be negative", ErrInvalidInput)
	}
	if farming.Area < 0 {
		return fmt.Errorf("%w: area must be positive", ErrInvalidInput)
	}
	return nil
}

// normalizeInput applies defaults and derives the season, producing the
// single normalized payload both scoring paths consume.
func normalizeInput(soil SoilConditions, weather WeatherConditions, farming FarmingConditions, now time.Time) ml.PredictInput {
	input := ml.PredictInput{
		Nitrogen:       soil.Nitrogen,
		Phosphorus:     soil.Phosphorus,
		Potassium:      soil.Potassium,
		PH:             soil.PH,
		Temperature:    weather.Temperature,
		Humidity:       weather.Humidity,
		Rainfall:       weather.Rainfall,
		OrganicMatter:  soil.OrganicMatter,
		SoilType:       strings.TrimSpace(farming.SoilType),
		IrrigationType: strings.TrimSpace(farming.IrrigationType),
		Area:           farming.Area,
		Season:         strings.TrimSpace(weather.Season),
		Location: ml.GeoPoint{
			Latitude:  farming.Latitude,
			Longitude: farming.Longitude,
		},
	}

	if input.OrganicMatter == 0 {
		input.OrganicMatter = defaultOrganicMatter
	}
	if input.SoilType == "" {
		input.SoilType = defaultSoilType
	}
	if input.IrrigationType == "" {
		input.IrrigationType = defaultIrrigationType
	}
	if input.Area == 0 {
		input.Area = defaultArea
	}
	if input.Season == "" {
		input.Season = seasonForMonth(now.Month())
	}
	if input.Location.Latitude == 0 && input.Location.Longitude == 0 {
		input.Location = ml.GeoPoint{Latitude: defaultLatitude, Longitude: defaultLongitude}
	}
	return input
}

// seasonForMonth maps a calendar month to the cropping season: Kharif
// for June-September, Rabi for October-March, Summer for April-May.
func seasonForMonth(month time.Month) string {
	switch {
	case month >= time.June && month <= time.September:
		return SeasonKharif
	case month >= time.October || month <= time.March:
		return SeasonRabi
	default:
		return SeasonSummer
	}
}
