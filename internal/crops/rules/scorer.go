// Package rules implements the deterministic rule-based crop suitability
// scorer used when the ML service is unavailable.
package rules

// Input carries the conditions the scorer evaluates. It is a pure
// function of these three values; nothing else influences the result.
type Input struct {
	PH          float64
	Temperature float64
	Humidity    float64
}

// Candidate is a crop that cleared the suitability threshold.
type Candidate struct {
	Crop  string
	Score float64
}

// Band is a closed numeric tolerance range.
type Band struct {
	Min float64
	Max float64
}

func (b Band) contains(value float64) bool {
	return value >= b.Min && value <= b.Max
}

type cropRule struct {
	crop        string
	ph          Band
	temperature Band
	humidity    Band
}

const (
	// Each matched band contributes bandScore; with three bands the
	// maximum achievable score is 0.9, not 1.0. This ceiling is part of
	// the contract and must not be renormalized, or fallback rankings
	// would shift relative to model confidences.
	bandScore = 0.3

	// Crops scoring below this are not recommended at all.
	inclusionThreshold = 0.6
)

// ruleCatalog lists the scorable crops in emission order. Ties in the
// final ranking preserve this order.
var ruleCatalog = []cropRule{
	{crop: "rice", ph: Band{5.5, 7.0}, temperature: Band{20, 35}, humidity: Band{70, 90}},
	{crop: "wheat", ph: Band{6.0, 7.5}, temperature: Band{10, 25}, humidity: Band{50, 70}},
	{crop: "maize", ph: Band{6.0, 7.0}, temperature: Band{15, 30}, humidity: Band{60, 80}},
	{crop: "potato", ph: Band{5.0, 6.5}, temperature: Band{15, 25}, humidity: Band{60, 80}},
	{crop: "tomato", ph: Band{6.0, 7.0}, temperature: Band{18, 25}, humidity: Band{65, 85}},
}

// Score evaluates every catalog crop against the input conditions and
// returns the crops whose suitability score reaches the inclusion
// threshold, in catalog order. An empty result is valid: it means no
// crop is suitable, not that scoring failed.
func Score(input Input) []Candidate {
	out := make([]Candidate, 0, len(ruleCatalog))
	for _, rule := range ruleCatalog {
		score := scoreCrop(rule, input)
		if score >= inclusionThreshold {
			out = append(out, Candidate{Crop: rule.crop, Score: score})
		}
	}
	return out
}

func scoreCrop(rule cropRule, input Input) float64 {
	score := 0.0
	if rule.ph.contains(input.PH) {
		score += bandScore
	}
	if rule.temperature.contains(input.Temperature) {
		score += bandScore
	}
	if rule.humidity.contains(input.Humidity) {
		score += bandScore
	}
	return score
}
