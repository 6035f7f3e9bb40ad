package mlservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/ml"
)

const (
	predictPath = "/predict"

	// The upstream service is expected to answer well within this
	// budget; anything slower is treated as unavailable.
	DefaultTimeout = 30 * time.Second

	maxCandidates = 5
)

// Client implements ml.Predictor against the Flask ML service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient constructs a new ML service client.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("ML_SERVICE_URL is required")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}, nil
}

// PredictCrops sends the normalized input to the ML service and parses
// its response. Any transport error, non-2xx status, or unparseable
// payload is surfaced as an error; the caller owns the fallback policy.
func (c *Client) PredictCrops(ctx context.Context, input ml.PredictInput) (ml.Prediction, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return ml.Prediction{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+predictPath, bytes.NewReader(payload))
	if err != nil {
		return ml.Prediction{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return ml.Prediction{}, fmt.Errorf("ml service request timeout: %w", err)
		}
		return ml.Prediction{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ml.Prediction{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ml.Prediction{}, fmt.Errorf("ml service http status %d", resp.StatusCode)
	}

	candidates, err := parseCandidates(body)
	if err != nil {
		return ml.Prediction{}, err
	}
	return ml.Prediction{
		Candidates: candidates,
		ModelInfo:  c.parseModelInfo(body),
	}, nil
}

// responseEnvelope covers the list-bearing response shapes. Older
// deployments of the service returned the list under "crops" instead of
// "recommendations".
type responseEnvelope struct {
	Recommendations []json.RawMessage `json:"recommendations"`
	Crops           []json.RawMessage `json:"crops"`
}

type responseElement struct {
	Crop        string   `json:"crop"`
	Name        string   `json:"name"`
	Confidence  *float64 `json:"confidence"`
	Probability *float64 `json:"probability"`
	Variety     string   `json:"variety"`
}

type responseMeta struct {
	ModelVersion string  `json:"model_version"`
	Algorithm    string  `json:"algorithm"`
	Accuracy     float64 `json:"accuracy"`
	TrainingDate string  `json:"training_date"`
}

// parseCandidates tries each accepted response shape in a fixed order:
// a list under "recommendations", a list under "crops", then the whole
// object as a single element.
func parseCandidates(body []byte) ([]ml.Candidate, error) {
	var envelope responseEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("ml service response parse: %w", err)
	}

	elements := envelope.Recommendations
	if elements == nil {
		elements = envelope.Crops
	}
	if elements == nil {
		elements = []json.RawMessage{json.RawMessage(body)}
	}
	if len(elements) > maxCandidates {
		elements = elements[:maxCandidates]
	}

	out := make([]ml.Candidate, 0, len(elements))
	for _, raw := range elements {
		var elem responseElement
		if err := json.Unmarshal(raw, &elem); err != nil {
			return nil, fmt.Errorf("ml service response element parse: %w", err)
		}
		out = append(out, toCandidate(elem))
	}
	return out, nil
}

func toCandidate(elem responseElement) ml.Candidate {
	crop := strings.TrimSpace(elem.Crop)
	if crop == "" {
		crop = strings.TrimSpace(elem.Name)
	}
	if crop == "" {
		crop = "Unknown"
	}

	confidence := 0.8
	if elem.Confidence != nil {
		confidence = *elem.Confidence
	} else if elem.Probability != nil {
		confidence = *elem.Probability
	}

	return ml.Candidate{
		Crop:       crop,
		Confidence: confidence,
		Variety:    strings.TrimSpace(elem.Variety),
	}
}

func (c *Client) parseModelInfo(body []byte) ml.ModelInfo {
	var meta responseMeta
	// The metadata envelope is optional; missing fields fall back to the
	// documented defaults of the service contract.
	_ = json.Unmarshal(body, &meta)

	info := ml.ModelInfo{
		Version:   "1.0",
		Algorithm: "Random Forest",
		Accuracy:  0.92,
	}
	if strings.TrimSpace(meta.ModelVersion) != "" {
		info.Version = meta.ModelVersion
	}
	if strings.TrimSpace(meta.Algorithm) != "" {
		info.Algorithm = meta.Algorithm
	}
	if meta.Accuracy > 0 {
		info.Accuracy = meta.Accuracy
	}
	info.TrainingDate = c.parseTrainingDate(meta.TrainingDate)
	return info
}

func (c *Client) parseTrainingDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	// The service emits a naive ISO timestamp without a zone offset.
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04:05.999999"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return c.now().UTC()
}

var _ ml.Predictor = (*Client)(nil)
