package crops

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/cropdata"
	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/crops/rules"
	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/ml"
	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/shared/metrics"
	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/shared/telemetry"
)

// Provenance values recorded on every recommendation set.
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

const (
	StatusCompleted = "completed"

	maxModelResults    = 5
	maxFallbackResults = 3

	fallbackWarning = "AI service temporarily unavailable, using rule-based recommendations"
)

// Service runs the recommendation pipeline and manages stored records.
type Service struct {
	Repo           Repo
	Predictor      ml.Predictor
	Catalog        *cropdata.Catalog
	PredictTimeout time.Duration
	Now            func() time.Time
}

// selection is the outcome of strategy selection: which path produced
// the candidate list. Keeping it an explicit value makes the chosen
// path testable without exercising failure plumbing.
type selection struct {
	source     string
	candidates []ml.Candidate
	modelInfo  *ml.ModelInfo
}

// Recommend runs the full pipeline: validate, normalize, obtain
// candidates from the predictor or the rule-based fallback, enrich,
// rank. It performs no I/O of its own beyond the predictor call and
// never fails for well-formed input; predictor errors route to the
// fallback path instead of propagating.
func (s *Service) Recommend(ctx context.Context, soil SoilConditions, weather WeatherConditions, farming FarmingConditions) (RecommendationSet, error) {
	if err := validateInput(soil, farming); err != nil {
		return RecommendationSet{}, err
	}

	startedAt := s.now()
	metrics.IncRecommendationRequested()

	input := normalizeInput(soil, weather, farming, startedAt)
	weather.Season = input.Season

	sel, err := s.selectCandidates(ctx, input)
	if err != nil {
		metrics.IncRecommendationFailed()
		return RecommendationSet{}, err
	}

	results := make([]RecommendationResult, 0, len(sel.candidates))
	for _, candidate := range sel.candidates {
		results = append(results, s.enrich(candidate, weather, input.Area))
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ConfidenceScore > results[j].ConfidenceScore
	})

	set := RecommendationSet{
		Results:   results,
		Source:    sel.source,
		ModelInfo: sel.modelInfo,
	}
	if sel.source == SourceFallback {
		set.Warning = fallbackWarning
		metrics.IncRecommendationFallback()
	} else {
		metrics.IncRecommendationModel()
	}
	metrics.ObserveRecommendationDurationMs(float64(s.now().Sub(startedAt).Microseconds()) / 1000.0)
	return set, nil
}

// CreateRecommendation runs the pipeline and persists the outcome as a
// history record owned by the given user.
func (s *Service) CreateRecommendation(ctx context.Context, userID string, soil SoilConditions, weather WeatherConditions, farming FarmingConditions) (Recommendation, error) {
	if userID == "" {
		return Recommendation{}, errors.New("userID is required")
	}

	set, err := s.Recommend(ctx, soil, weather, farming)
	if err != nil {
		return Recommendation{}, err
	}

	record := Recommendation{
		ID:     uuid.NewString(),
		UserID: userID,
		Input: InputParameters{
			SoilData:          soil,
			WeatherData:       weather,
			FarmingConditions: farming,
		},
		Results:   set.Results,
		Source:    set.Source,
		ModelInfo: set.ModelInfo,
		Warning:   set.Warning,
		Status:    StatusCompleted,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, record); err != nil {
		return Recommendation{}, err
	}

	telemetry.Info("recommendation.status", map[string]any{
		"user_id":           userID,
		"recommendation_id": record.ID,
		"source":            record.Source,
		"results":           len(record.Results),
		"status":            record.Status,
	})
	return record, nil
}

// Get returns a stored recommendation owned by the user.
func (s *Service) Get(ctx context.Context, userID, recommendationID string) (Recommendation, error) {
	if recommendationID == "" {
		return Recommendation{}, errors.New("recommendationID is required")
	}
	record, err := s.Repo.GetByID(ctx, recommendationID)
	if err != nil {
		return Recommendation{}, err
	}
	if record.UserID != userID {
		return Recommendation{}, ErrNotFound
	}
	return record, nil
}

// List returns stored recommendations for a user, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Recommendation, error) {
	if userID == "" {
		return nil, errors.New("userID is required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// selectCandidates attempts the predictor within its time budget and
// falls back to rule-based scoring on any failure. The only error it
// returns is a done caller context: a predictor timeout still falls
// back, a hung-up caller does not.
func (s *Service) selectCandidates(ctx context.Context, input ml.PredictInput) (selection, error) {
	if s.Predictor != nil {
		predictCtx, cancel := context.WithTimeout(ctx, s.predictTimeout())
		prediction, err := s.Predictor.PredictCrops(predictCtx, input)
		cancel()
		if err == nil {
			candidates := prediction.Candidates
			if len(candidates) > maxModelResults {
				candidates = candidates[:maxModelResults]
			}
			info := prediction.ModelInfo
			return selection{source: SourceModel, candidates: candidates, modelInfo: &info}, nil
		}

		telemetry.Warn("ml.predict_failed", map[string]any{
			"error": err.Error(),
		})
		if ctxErr := ctx.Err(); ctxErr != nil {
			return selection{}, ctxErr
		}
	}

	scored := rules.Score(rules.Input{
		PH:          input.PH,
		Temperature: input.Temperature,
		Humidity:    input.Humidity,
	})
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > maxFallbackResults {
		scored = scored[:maxFallbackResults]
	}

	candidates := make([]ml.Candidate, 0, len(scored))
	for _, c := range scored {
		candidates = append(candidates, ml.Candidate{Crop: c.Crop, Confidence: c.Score})
	}
	return selection{source: SourceFallback, candidates: candidates}, nil
}

// enrich merges a candidate with reference data, risk factors, timeline
// and input requirements into a complete recommendation entry.
func (s *Service) enrich(candidate ml.Candidate, weather WeatherConditions, area float64) RecommendationResult {
	entry := s.Catalog.Lookup(candidate.Crop)

	variety := candidate.Variety
	if variety == "" {
		variety = s.Catalog.SuggestVariety(candidate.Crop)
	}

	return RecommendationResult{
		CropName:        candidate.Crop,
		Variety:         variety,
		ConfidenceScore: candidate.Confidence,
		YieldPrediction: YieldPrediction{
			Min:     entry.Yield.Min,
			Max:     entry.Yield.Max,
			Average: entry.Yield.Average,
			Unit:    "tonnes/hectare",
		},
		Profitability: Profitability{
			EstimatedRevenue: entry.Revenue,
			EstimatedCost:    entry.Cost,
			ExpectedProfit:   entry.Profit,
			ROI:              int(math.Round(entry.Profit / entry.Cost * 100)),
		},
		Sustainability: Sustainability{
			CarbonFootprint:    entry.CarbonFootprint,
			WaterUsage:         entry.WaterUsage,
			SoilHealth:         "Neutral",
			BiodiversityImpact: "Low",
		},
		RiskFactors:  assessRisks(candidate.Crop, weather),
		Timeline:     s.Catalog.Timeline(candidate.Crop),
		Requirements: s.Catalog.Requirements(candidate.Crop, area),
	}
}

func (s *Service) predictTimeout() time.Duration {
	if s.PredictTimeout > 0 {
		return s.PredictTimeout
	}
	return 30 * time.Second
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
