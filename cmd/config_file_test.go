package cmd

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deck-sim/deck-sim/sim"
	"github.com/deck-sim/deck-sim/sim/memory"
)

func writeDeckFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDeckFile_EmptyPathUsesDefaults(t *testing.T) {
	df, err := loadDeckFile("")
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultSimulatorConfig(), df.SimulatorConfig())
	assert.Nil(t, df.Cards())
	assert.Empty(t, df.Parameters)
}

func TestLoadDeckFile_OverlaysOnlyGivenFields(t *testing.T) {
	// GIVEN a file setting three simulator fields
	path := writeDeckFile(t, `
simulator:
  deck_size: 200
  max_cost_per_day: .inf
  review_rating_prob: [0.2, 0.7, 0.1]
`)
	// WHEN it is loaded
	df, err := loadDeckFile(path)
	require.NoError(t, err)
	cfg := df.SimulatorConfig()

	// THEN those fields change and the rest keep their default
	want := sim.DefaultSimulatorConfig()
	want.DeckSize = 200
	want.MaxCostPerDay = math.Inf(1)
	want.ReviewRatingProb = [3]float64{0.2, 0.7, 0.1}
	assert.Equal(t, want, cfg)
}

func TestLoadDeckFile_ExplicitZeroIsKept(t *testing.T) {
	path := writeDeckFile(t, "simulator:\n  learn_limit: 0\n")
	df, err := loadDeckFile(path)
	require.NoError(t, err)
	assert.Zero(t, df.SimulatorConfig().LearnLimit)
}

func TestLoadDeckFile_UnknownFieldRejected(t *testing.T) {
	// typos must cause errors
	path := writeDeckFile(t, "simulator:\n  deck_sise: 200\n")
	_, err := loadDeckFile(path)
	assert.Error(t, err)

	path = writeDeckFile(t, "weights: [1, 2]\n")
	_, err = loadDeckFile(path)
	assert.Error(t, err)
}

func TestLoadDeckFile_WrongArrayLengthRejected(t *testing.T) {
	path := writeDeckFile(t, "simulator:\n  recall_costs: [1, 2]\n")
	_, err := loadDeckFile(path)
	assert.Error(t, err)
}

func TestLoadDeckFile_MissingFile(t *testing.T) {
	_, err := loadDeckFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadDeckFile_ExampleDeck(t *testing.T) {
	df, err := loadDeckFile(filepath.Join("..", "examples", "deck.yaml"))
	require.NoError(t, err)

	cfg := df.SimulatorConfig()
	assert.Equal(t, 5000, cfg.DeckSize)
	assert.Equal(t, 20, cfg.LearnLimit)
	require.NoError(t, cfg.Validate())

	params, err := memory.ParseParameters(df.Parameters)
	require.NoError(t, err)
	assert.Equal(t, memory.DefaultParameters, params)

	cards := df.Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, sim.Card{Difficulty: 5, Stability: 12, LastReview: -5, Due: 7}, cards[0])
}
