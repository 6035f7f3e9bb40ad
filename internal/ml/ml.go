package ml

import (
	"context"
	"errors"
	"time"
)

// Predictor abstracts the external crop prediction service.
type Predictor interface {
	PredictCrops(ctx context.Context, input PredictInput) (Prediction, error)
}

// PredictInput is the normalized payload sent to the prediction service.
// All defaults (organic matter, soil type, season, location) are applied
// by the caller before prediction.
type PredictInput struct {
	Nitrogen       float64  `json:"nitrogen"`
	Phosphorus     float64  `json:"phosphorus"`
	Potassium      float64  `json:"potassium"`
	PH             float64  `json:"ph"`
	Temperature    float64  `json:"temperature"`
	Humidity       float64  `json:"humidity"`
	Rainfall       float64  `json:"rainfall"`
	OrganicMatter  float64  `json:"organic_matter"`
	SoilType       string   `json:"soil_type"`
	IrrigationType string   `json:"irrigation_type"`
	Area           float64  `json:"area"`
	Season         string   `json:"season"`
	Location       GeoPoint `json:"location"`
}

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Candidate is a crop suggested by the prediction service, prior to
// enrichment with reference data.
type Candidate struct {
	Crop       string
	Confidence float64
	Variety    string
}

// ModelInfo describes the model that produced a prediction.
type ModelInfo struct {
	Version      string    `json:"version"`
	Algorithm    string    `json:"algorithm"`
	Accuracy     float64   `json:"accuracy"`
	TrainingDate time.Time `json:"trainingDate"`
}

// Prediction is the parsed output of the prediction service.
type Prediction struct {
	Candidates []Candidate
	ModelInfo  ModelInfo
}

// ErrNotConfigured is returned by the placeholder predictor.
var ErrNotConfigured = errors.New("ml predictor not configured")

// PlaceholderPredictor is a stub implementation used when no ML service
// URL is configured. Every call fails, which routes requests to the
// rule-based fallback.
type PlaceholderPredictor struct{}

// PredictCrops returns ErrNotConfigured.
func (PlaceholderPredictor) PredictCrops(context.Context, PredictInput) (Prediction, error) {
	return Prediction{}, ErrNotConfigured
}
