// sim/simulator.go
package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/deck-sim/deck-sim/sim/memory"
	"github.com/deck-sim/deck-sim/sim/trace"
)

// DefaultSeed is used when no seed option is given.
const DefaultSeed int64 = 42

// SimulateOption customizes a single Simulate call.
type SimulateOption func(*simulateOptions)

type simulateOptions struct {
	seed  int64
	cards []Card
	trace *trace.SimulationTrace
}

// WithSeed sets the master seed of the run.
func WithSeed(seed int64) SimulateOption {
	return func(o *simulateOptions) { o.seed = seed }
}

// WithExistingCards seeds the leading deck slots with existing cards.
func WithExistingCards(cards []Card) SimulateOption {
	return func(o *simulateOptions) { o.cards = cards }
}

// WithTrace records one trace.DayRecord per day when st is enabled.
func WithTrace(st *trace.SimulationTrace) SimulateOption {
	return func(o *simulateOptions) { o.trace = st }
}

// Simulator advances one deck one day at a time. It owns its deck and RNG
// and must not be shared between goroutines.
type Simulator struct {
	Clock  int // next day to simulate
	Config SimulatorConfig
	Deck   *Deck

	params           memory.Parameters
	desiredRetention float64
	rng              *PartitionedRNG
	firstRatings     *ratingSampler
	reviewRatings    *ratingSampler
	result           *SimulationResult
	trace            *trace.SimulationTrace
}

// NewSimulator validates its inputs and allocates a fresh deck.
func NewSimulator(cfg SimulatorConfig, params memory.Parameters, desiredRetention float64, opts ...SimulateOption) (*Simulator, error) {
	o := simulateOptions{seed: DefaultSeed}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if !(desiredRetention > 0 && desiredRetention < 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRetention, desiredRetention)
	}

	deck := NewDeck(cfg.DeckSize, cfg.LearnSpan)
	if err := deck.Seed(o.cards); err != nil {
		return nil, err
	}

	return &Simulator{
		Config:           cfg,
		Deck:             deck,
		params:           params,
		desiredRetention: desiredRetention,
		rng:              NewPartitionedRNG(NewSimulationKey(o.seed)),
		firstRatings:     firstRatingSampler(&cfg),
		reviewRatings:    reviewRatingSampler(&cfg),
		result:           newSimulationResult(cfg.LearnSpan),
		trace:            o.trace,
	}, nil
}

// Simulate runs a deck for cfg.LearnSpan days and returns the per-day
// memorized, review, learn and cost sequences. A zero deck size or span
// yields empty or all-zero sequences, not an error.
func Simulate(cfg SimulatorConfig, params memory.Parameters, desiredRetention float64, opts ...SimulateOption) (*SimulationResult, error) {
	s, err := NewSimulator(cfg, params, desiredRetention, opts...)
	if err != nil {
		return nil, err
	}
	return s.Run(), nil
}

// Run steps through every remaining day and returns the result.
func (sim *Simulator) Run() *SimulationResult {
	logrus.Debugf("[seed %d] Simulating %d cards over %d days at retention %.4f",
		sim.rng.Key(), sim.Deck.Len(), sim.Config.LearnSpan, sim.desiredRetention)
	for sim.Clock < sim.Config.LearnSpan {
		sim.Step()
	}
	logrus.Debugf("[seed %d] Simulation ended: cost=%.1f memorized=%.2f",
		sim.rng.Key(), sim.result.TotalCost(), sim.result.FinalMemorized())
	return sim.result
}

// Result returns the metrics recorded so far.
func (sim *Simulator) Result() *SimulationResult {
	return sim.result
}

// Step simulates day sim.Clock and advances the clock.
// Day t+1 always observes the post-update state of day t.
func (sim *Simulator) Step() {
	today := sim.Clock
	d := sim.Deck
	cfg := &sim.Config

	due, queued := sim.classify(today)
	sim.drawOutcomes()

	// Reviews are admitted first, greedily in slot order.
	floats.CumSum(d.cumCost, d.cost)
	reviewed, candidates := 0, 0
	for i, st := range d.status {
		if st != statusReview {
			continue
		}
		candidates++
		if d.cumCost[i] <= cfg.MaxCostPerDay && candidates <= cfg.ReviewLimit {
			d.admitted[i] = true
			reviewed++
		}
	}

	// Learns share the same cost pool: the running sum still carries the
	// cost of every due card, admitted or not.
	for i, st := range d.status {
		if st == statusLearn {
			d.cost[i] = cfg.LearnCost
		}
	}
	floats.CumSum(d.cumCost, d.cost)
	learned, candidates := 0, 0
	firstRNG := sim.rng.ForSubsystem(SubsystemFirstRating)
	for i, st := range d.status {
		if st != statusLearn {
			continue
		}
		candidates++
		if d.cumCost[i] <= cfg.MaxCostPerDay && candidates <= cfg.LearnLimit {
			d.admitted[i] = true
			d.rating[i] = sim.firstRatings.Sample(firstRNG)
			learned++
		}
	}

	spent, forgotten := sim.applyReviews(today)

	sim.result.MemorizedPerDay[today] = floats.Sum(d.retrievability)
	sim.result.ReviewCountPerDay[today] = reviewed
	sim.result.LearnCountPerDay[today] = learned
	sim.result.CostPerDay[today] = spent

	if sim.trace.Enabled() {
		sim.trace.RecordDay(trace.DayRecord{
			Day:       today,
			Due:       due,
			Reviewed:  reviewed,
			Deferred:  due - reviewed,
			Forgotten: forgotten,
			NewQueued: queued,
			Learned:   learned,
			Cost:      spent,
		})
	}
	sim.Clock++
}

// classify resets the day's scratch columns, computes recall probability
// of learned cards and assigns each card one status. It returns the number
// of cards due for review and the number waiting for a first learn.
func (sim *Simulator) classify(today int) (due, queued int) {
	d := sim.Deck
	for i := range d.status {
		d.retrievability[i] = 0
		d.cost[i] = 0
		d.outcome[i] = outcomeNone
		d.rating[i] = 0
		d.admitted[i] = false

		if d.Learned(i) {
			elapsed := float64(today - d.lastReview[i])
			d.retrievability[i] = memory.RecallProbability(elapsed, d.stability[i])
		}

		switch {
		case d.due[i] <= today:
			d.status[i] = statusReview
			due++
		case d.due[i] == sim.Config.LearnSpan && !d.Learned(i):
			d.status[i] = statusLearn
			queued++
		default:
			d.status[i] = statusNotDue
		}
	}
	return due, queued
}

// drawOutcomes decides recall or lapse for every due card, samples a
// rating for recalled cards and prices each review.
func (sim *Simulator) drawOutcomes() {
	d := sim.Deck
	cfg := &sim.Config
	recallRNG := sim.rng.ForSubsystem(SubsystemRecall)
	ratingRNG := sim.rng.ForSubsystem(SubsystemReviewRating)
	for i, st := range d.status {
		if st != statusReview {
			continue
		}
		if recallRNG.Float64() > d.retrievability[i] {
			d.outcome[i] = outcomeForgotten
			d.cost[i] = cfg.ForgetCost * cfg.LossAversion
			continue
		}
		d.outcome[i] = outcomeRecalled
		d.rating[i] = sim.reviewRatings.Sample(ratingRNG)
		d.cost[i] = cfg.RecallCosts[d.rating[i]-memory.Hard]
	}
}

// applyReviews updates memory state and schedules every admitted card.
// Non-admitted due cards keep their due day and are retried tomorrow.
func (sim *Simulator) applyReviews(today int) (spent float64, forgotten int) {
	d := sim.Deck
	p := &sim.params
	for i, ok := range d.admitted {
		if !ok {
			continue
		}
		s, diff, r := d.stability[i], d.difficulty[i], d.retrievability[i]
		switch {
		case d.status[i] == statusLearn:
			d.stability[i] = p.InitStability(d.rating[i])
			d.difficulty[i] = p.InitDifficulty(d.rating[i])
		case d.outcome[i] == outcomeForgotten:
			d.stability[i] = p.StabilityAfterFailure(s, r, diff)
			d.difficulty[i] = p.LapseDifficulty(diff)
			forgotten++
		default:
			d.stability[i] = p.StabilityAfterSuccess(s, r, diff, d.rating[i])
			d.difficulty[i] = p.NextDifficulty(diff, d.rating[i])
		}

		ivl := math.Round(memory.NextInterval(d.stability[i], sim.desiredRetention))
		ivl = math.Min(math.Max(ivl, 1), float64(sim.Config.MaxInterval))
		d.interval[i] = int(ivl)
		d.lastReview[i] = today
		d.due[i] = today + d.interval[i]
		spent += d.cost[i]
	}
	return spent, forgotten
}
