package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deck-sim/deck-sim/sim/optimize"
)

func TestRunOptimize_InterruptedStillWritesMetrics(t *testing.T) {
	// GIVEN a search limited to two evaluations
	path := writeDeckFile(t, smallDeckYAML)
	metricsPath := filepath.Join(t.TempDir(), "metrics.prom")
	var buf bytes.Buffer

	// WHEN the optimizer runs
	_, err := runOptimize(context.Background(), &buf, path, 2, 2, metricsPath)

	// THEN it is interrupted on the third evaluation, prints nothing,
	// and the metrics dump records the two completed evaluations
	assert.ErrorIs(t, err, optimize.ErrInterrupted)
	assert.Empty(t, buf.String())

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "decksim_objective_evaluations_total 2")
	assert.Contains(t, string(data), "decksim_simulation_runs_total 4")
}

func TestRunOptimize_PrintsRetention(t *testing.T) {
	if testing.Short() {
		t.Skip("runs a full search")
	}
	path := writeDeckFile(t, smallDeckYAML)
	var buf bytes.Buffer
	r, err := runOptimize(context.Background(), &buf, path, 2, 0, "")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, r, optimize.RMin)
	assert.LessOrEqual(t, r, optimize.RMax)
	assert.NotEmpty(t, buf.String())
}

func TestRunOptimize_InvalidParameters(t *testing.T) {
	path := writeDeckFile(t, "parameters: [1, 2, 3]\n")
	_, err := runOptimize(context.Background(), &bytes.Buffer{}, path, 2, 0, "")
	assert.Error(t, err)
}
