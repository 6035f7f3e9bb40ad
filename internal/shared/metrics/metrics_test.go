package metrics

import (
	"strings"
	"testing"
)

func TestRenderIncludesCounters(t *testing.T) {
	IncRecommendationRequested()
	IncRecommendationFallback()

	out := Render()
	for _, name := range []string{
		"recommendation_requests_total",
		"recommendation_model_total",
		"recommendation_fallback_total",
		"recommendation_failed_total",
		"recommendation_duration_ms_bucket",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output:\n%s", name, out)
		}
	}
}

func TestHistogramBucketsCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100, 1000})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)
	h.Observe(5000)

	snap := h.Snapshot()
	if snap.count != 4 {
		t.Fatalf("expected count 4, got %d", snap.count)
	}
	// Each observation lands in exactly one bucket; rendering accumulates.
	want := []uint64{1, 1, 1}
	for i, c := range snap.counts {
		if c != want[i] {
			t.Fatalf("bucket %d: expected %d, got %d", i, want[i], c)
		}
	}
	if snap.sum != 5555 {
		t.Fatalf("expected sum 5555, got %v", snap.sum)
	}
}
