package optimize

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/deck-sim/deck-sim/sim"
	"github.com/deck-sim/deck-sim/sim/memory"
)

// Desired retention search interval.
const (
	RMin = 0.75
	RMax = 0.95
)

// ItemProgress reports how many objective evaluations have started.
// Total is zero because the number of evaluations is not known up front.
type ItemProgress struct {
	Current int
	Total   int
}

// ProgressFunc is called once per objective evaluation. Returning false
// stops the search with ErrInterrupted.
type ProgressFunc func(ItemProgress) bool

// Option customizes OptimalRetention.
type Option func(*options)

type options struct {
	sampleSize int
	baseSeed   int64
	observer   Observer
	brent      Brent
}

// WithSampleSize sets the number of simulations averaged per evaluation.
func WithSampleSize(n int) Option {
	return func(o *options) { o.sampleSize = n }
}

// WithBaseSeed sets the seed of the first simulation in each sample.
func WithBaseSeed(seed int64) Option {
	return func(o *options) { o.baseSeed = seed }
}

// WithObserver attaches an Observer notified after every evaluation.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithBrent overrides the search settings.
func WithBrent(b Brent) Option {
	return func(o *options) { o.brent = b }
}

// OptimalRetention returns the desired retention in [RMin, RMax] that
// minimizes the mean cost per memorized card. params may be empty to use
// memory.DefaultParameters. Errors:
//   - memory.ErrInvalidParameters or sim.ErrInvalidConfig before any simulation
//   - ErrInterrupted when progress returns false or ctx is cancelled
//   - ErrOptimumNotFound when the search does not converge
func OptimalRetention(ctx context.Context, cfg sim.SimulatorConfig, params []float64, progress ProgressFunc, opts ...Option) (float64, error) {
	p, err := memory.ParseParameters(params)
	if err != nil {
		return 0, err
	}
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	o := options{sampleSize: SampleSize, baseSeed: sim.DefaultSeed, brent: DefaultBrent()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sampleSize < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidSampleSize, o.sampleSize)
	}

	sampler := NewSampler(cfg, p)
	sampler.SampleSize = o.sampleSize
	sampler.BaseSeed = o.baseSeed
	sampler.Observer = o.observer

	log := logrus.WithField("run", uuid.NewString())
	log.Infof("Searching desired retention in [%.2f, %.2f] for %d cards over %d days (%d runs per evaluation)",
		o.brent.Lower, o.brent.Upper, cfg.DeckSize, cfg.LearnSpan, o.sampleSize)

	evaluations := 0
	objective := func(r float64) (float64, error) {
		if ctx.Err() != nil {
			return 0, ErrInterrupted
		}
		evaluations++
		if progress != nil && !progress(ItemProgress{Current: evaluations}) {
			return 0, ErrInterrupted
		}
		score, err := sampler.Sample(ctx, r)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return 0, ErrInterrupted
			}
			return 0, err
		}
		log.Debugf("Evaluation %d: retention=%.4f cost/memorized=%.4f", evaluations, r, score)
		return score, nil
	}

	res, err := o.brent.Minimize(objective)
	if err != nil {
		log.Warnf("Search stopped after %d evaluations: %v", evaluations, err)
		return 0, err
	}
	log.Infof("Optimal retention %.4f (cost/memorized=%.4f, %d iterations)", res.X, res.Fx, res.Iterations)
	return res.X, nil
}
