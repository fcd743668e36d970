package optimize

import (
	"context"
	"math"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deck-sim/deck-sim/sim"
	"github.com/deck-sim/deck-sim/sim/memory"
)

// smallDeck is cheap enough to sample many times per test.
func smallDeck() sim.SimulatorConfig {
	cfg := sim.DefaultSimulatorConfig()
	cfg.DeckSize = 500
	cfg.LearnSpan = 90
	cfg.MaxCostPerDay = math.Inf(1)
	cfg.LearnLimit = 5
	return cfg
}

func TestEfficiency_NothingMemorizedIsInfinite(t *testing.T) {
	res := &sim.SimulationResult{
		MemorizedPerDay: []float64{0, 0},
		CostPerDay:      []float64{20, 20},
	}
	assert.True(t, math.IsInf(Efficiency(res), 1))

	res.MemorizedPerDay[1] = 4
	assert.InDelta(t, 10.0, Efficiency(res), 1e-12)
}

func TestSampler_Sample_Deterministic(t *testing.T) {
	s := NewSampler(smallDeck(), memory.DefaultParameters)
	first, err := s.Sample(context.Background(), 0.9)
	require.NoError(t, err)
	second, err := s.Sample(context.Background(), 0.9)
	require.NoError(t, err)

	assert.InDelta(t, first, second, 1e-9)
	assert.Greater(t, first, 0.0)
	assert.False(t, math.IsInf(first, 0))
}

func TestSampler_Sample_MatchesSequentialRuns(t *testing.T) {
	cfg := smallDeck()
	s := NewSampler(cfg, memory.DefaultParameters)
	got, err := s.Sample(context.Background(), 0.85)
	require.NoError(t, err)

	want := 0.0
	for i := 0; i < s.SampleSize; i++ {
		res, err := sim.Simulate(cfg, memory.DefaultParameters, 0.85, sim.WithSeed(s.BaseSeed+int64(i)))
		require.NoError(t, err)
		want += Efficiency(res)
	}
	want /= float64(s.SampleSize)
	assert.InDelta(t, want, got, 1e-9)
}

func TestSampler_Sample_LargerSampleAgrees(t *testing.T) {
	cfg := smallDeck()
	small := NewSampler(cfg, memory.DefaultParameters)
	large := NewSampler(cfg, memory.DefaultParameters)
	large.SampleSize = 32

	a, err := small.Sample(context.Background(), 0.9)
	require.NoError(t, err)
	b, err := large.Sample(context.Background(), 0.9)
	require.NoError(t, err)
	assert.InEpsilon(t, b, a, 0.1)
}

func TestSampler_Sample_EmptyDeckIsInfinite(t *testing.T) {
	cfg := smallDeck()
	cfg.DeckSize = 0
	got, err := NewSampler(cfg, memory.DefaultParameters).Sample(context.Background(), 0.9)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))
}

func TestSampler_Sample_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSampler(smallDeck(), memory.DefaultParameters).Sample(ctx, 0.9)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSampler_Sample_NonPositiveSampleSize(t *testing.T) {
	for _, n := range []int{0, -1} {
		s := NewSampler(smallDeck(), memory.DefaultParameters)
		s.SampleSize = n
		got, err := s.Sample(context.Background(), 0.9)
		assert.ErrorIs(t, err, ErrInvalidSampleSize, "size %d", n)
		assert.Zero(t, got)
	}
}

// cancelledAfterFirstCheck is a context cancelled right after its first
// Err call: Done is already closed and every later Err reports Canceled.
type cancelledAfterFirstCheck struct {
	context.Context
	checks atomic.Int32
	done   chan struct{}
}

func newCancelledAfterFirstCheck() *cancelledAfterFirstCheck {
	done := make(chan struct{})
	close(done)
	return &cancelledAfterFirstCheck{Context: context.Background(), done: done}
}

func (c *cancelledAfterFirstCheck) Done() <-chan struct{} { return c.done }

func (c *cancelledAfterFirstCheck) Err() error {
	if c.checks.Add(1) > 1 {
		return context.Canceled
	}
	return nil
}

func TestSampler_Sample_CancelDuringBatchFinishesBatch(t *testing.T) {
	// GIVEN a context that is cancelled once the evaluation has started
	ctx := newCancelledAfterFirstCheck()
	s := NewSampler(smallDeck(), memory.DefaultParameters)

	// WHEN the batch runs
	got, err := s.Sample(ctx, 0.9)

	// THEN every run completes and the score matches an uncancelled batch
	require.NoError(t, err)
	want, err := s.Sample(context.Background(), 0.9)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-9)
}

func TestSampler_Sample_InvalidRetention(t *testing.T) {
	_, err := NewSampler(smallDeck(), memory.DefaultParameters).Sample(context.Background(), 1.0)
	assert.ErrorIs(t, err, sim.ErrInvalidRetention)
}

func TestPromObserver_RecordsEvaluations(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := NewPromObserver("decksim", reg)
	s := NewSampler(smallDeck(), memory.DefaultParameters)
	s.Observer = obs

	score, err := s.Sample(context.Background(), 0.88)
	require.NoError(t, err)
	_, err = s.Sample(context.Background(), 0.8)
	require.NoError(t, err)

	assert.Equal(t, 2.0, promtest.ToFloat64(obs.evaluations))
	assert.Equal(t, float64(2*SampleSize), promtest.ToFloat64(obs.runs))
	assert.Equal(t, 0.8, promtest.ToFloat64(obs.lastRetention))
	assert.NotEqual(t, score, 0.0)
	assert.Equal(t, 1, promtest.CollectAndCount(obs.duration))

	n, err := promtest.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}
