package optimize

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/deck-sim/deck-sim/sim"
	"github.com/deck-sim/deck-sim/sim/memory"
)

// SampleSize is the number of Monte Carlo repeats per objective evaluation.
const SampleSize = 4

// Sampler turns a candidate retention into a scalar cost-efficiency score
// by averaging independent deck simulations. Config and Params are shared
// read-only by the concurrent runs.
type Sampler struct {
	Config     sim.SimulatorConfig
	Params     memory.Parameters
	SampleSize int
	BaseSeed   int64    // run i uses seed BaseSeed+i
	Observer   Observer // may be nil
}

// NewSampler returns a Sampler with SampleSize repeats seeded from sim.DefaultSeed.
func NewSampler(cfg sim.SimulatorConfig, params memory.Parameters) *Sampler {
	return &Sampler{
		Config:     cfg,
		Params:     params,
		SampleSize: SampleSize,
		BaseSeed:   sim.DefaultSeed,
	}
}

// Efficiency is the cost paid per unit of memorization held at the end of
// the run. A run that memorizes nothing scores +Inf.
func Efficiency(res *sim.SimulationResult) float64 {
	memorized := res.FinalMemorized()
	if memorized <= 0 {
		return math.Inf(1)
	}
	return res.TotalCost() / memorized
}

// Sample runs SampleSize simulations concurrently at the given retention
// and returns the mean efficiency. ctx is checked once before the batch
// starts; a batch already running is always finished. Results are
// reproducible for a fixed BaseSeed.
func (s *Sampler) Sample(ctx context.Context, retention float64) (float64, error) {
	if s.SampleSize < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidSampleSize, s.SampleSize)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	start := time.Now()
	scores := make([]float64, s.SampleSize)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range scores {
		i := i
		g.Go(func() error {
			res, err := sim.Simulate(s.Config, s.Params, retention, sim.WithSeed(s.BaseSeed+int64(i)))
			if err != nil {
				return err
			}
			scores[i] = Efficiency(res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	mean := stat.Mean(scores, nil)
	if s.Observer != nil {
		s.Observer.ObserveSample(retention, mean, len(scores), time.Since(start))
	}
	return mean, nil
}
