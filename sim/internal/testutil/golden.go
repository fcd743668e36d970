// Package testutil provides shared test infrastructure for the deck
// simulator. It holds the regression dataset types and assertion helpers
// used across the sim/ and sim/optimize/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one deck scenario and the outcome its simulation must
// reproduce. Zero-valued overrides keep the simulator default.
type GoldenTestCase struct {
	Name             string    `json:"name"`
	DeckSize         int       `json:"deck_size"`
	LearnSpan        int       `json:"learn_span"`
	MaxCostPerDay    float64   `json:"max_cost_per_day"` // 0 means unbounded
	LearnLimit       int       `json:"learn_limit"`
	ReviewLimit      int       `json:"review_limit"`
	ReviewRatingProb []float64 `json:"review_rating_prob"` // empty keeps the default
	DesiredRetention float64   `json:"desired_retention"`
	Seed             int64     `json:"seed"`

	Metrics GoldenMetrics `json:"metrics"`
}

// GoldenMetrics are the expected outcomes of a golden test case.
type GoldenMetrics struct {
	// Exact match metrics (integers)
	FirstDayLearned int `json:"first_day_learned"`
	TotalLearned    int `json:"total_learned"`
	TotalReviews    int `json:"total_reviews"`

	// Deterministic floating-point metrics, compared with relative tolerance
	FinalMemorized float64 `json:"final_memorized"`
	TotalCost      float64 `json:"total_cost"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == got {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
