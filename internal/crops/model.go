package crops

import (
	"time"

	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/cropdata"
	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/ml"
)

// SoilConditions carries the soil measurements submitted by the caller.
// Nutrient values are kg/ha; ph is on the 0-14 scale.
type SoilConditions struct {
	Nitrogen      float64 `json:"nitrogen"`
	Phosphorus    float64 `json:"phosphorus"`
	Potassium     float64 `json:"potassium"`
	PH            float64 `json:"ph"`
	OrganicMatter float64 `json:"organicMatter,omitempty"`
}

// WeatherConditions carries the weather inputs. Season is optional and
// derived from the current date when absent.
type WeatherConditions struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
	Season      string  `json:"season,omitempty"`
}

// FarmingConditions carries farm-level inputs. Zero values mean "not
// provided" and are replaced by defaults during normalization.
type FarmingConditions struct {
	Area           float64 `json:"area,omitempty"`
	IrrigationType string  `json:"irrigationType,omitempty"`
	SoilType       string  `json:"soilType,omitempty"`
	Latitude       float64 `json:"latitude,omitempty"`
	Longitude      float64 `json:"longitude,omitempty"`
}

// YieldPrediction is the expected yield band for a recommended crop.
type YieldPrediction struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
	Unit    string  `json:"unit"`
}

// Profitability summarizes the per-hectare economics of a crop.
type Profitability struct {
	EstimatedRevenue float64 `json:"estimatedRevenue"`
	EstimatedCost    float64 `json:"estimatedCost"`
	ExpectedProfit   float64 `json:"expectedProfit"`
	ROI              int     `json:"roi"`
}

// Sustainability summarizes environmental impact figures.
type Sustainability struct {
	CarbonFootprint    float64 `json:"carbonFootprint"`
	WaterUsage         float64 `json:"waterUsage"`
	SoilHealth         string  `json:"soilHealth"`
	BiodiversityImpact string  `json:"biodiversityImpact"`
}

// RiskFactor is a situational risk with a suggested mitigation.
type RiskFactor struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Mitigation string `json:"mitigation"`
}

// RecommendationResult is one fully enriched crop recommendation.
type RecommendationResult struct {
	CropName        string                `json:"cropName"`
	Variety         string                `json:"variety"`
	ConfidenceScore float64               `json:"confidenceScore"`
	YieldPrediction YieldPrediction       `json:"yieldPrediction"`
	Profitability   Profitability         `json:"profitability"`
	Sustainability  Sustainability        `json:"sustainability"`
	RiskFactors     []RiskFactor          `json:"riskFactors"`
	Timeline        cropdata.Timeline     `json:"timeline"`
	Requirements    cropdata.Requirements `json:"requirements"`
}

// RecommendationSet is the ranked output of one pipeline run, with
// provenance recording which path produced it.
type RecommendationSet struct {
	Results   []RecommendationResult `json:"results"`
	Source    string                 `json:"source"`
	ModelInfo *ml.ModelInfo          `json:"modelInfo,omitempty"`
	Warning   string                 `json:"warning,omitempty"`
}

// InputParameters is the caller's input as submitted, stored alongside
// the results for later review.
type InputParameters struct {
	SoilData          SoilConditions    `json:"soilData"`
	WeatherData       WeatherConditions `json:"weatherData"`
	FarmingConditions FarmingConditions `json:"farmingConditions"`
}

// Recommendation is a persisted recommendation record.
type Recommendation struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"userId"`
	Input     InputParameters        `json:"inputParameters"`
	Results   []RecommendationResult `json:"recommendations"`
	Source    string                 `json:"source"`
	ModelInfo *ml.ModelInfo          `json:"modelInfo,omitempty"`
	Warning   string                 `json:"warning,omitempty"`
	Status    string                 `json:"status"`
	CreatedAt time.Time              `json:"createdAt"`
}
