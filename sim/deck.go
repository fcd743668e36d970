package sim

import (
	"fmt"
	"math"

	"github.com/deck-sim/deck-sim/sim/memory"
)

// unlearnedValue fills stability and difficulty of slots that were never
// reviewed. It is positive so the forgetting curve stays defined.
const unlearnedValue = 1e-10

// learnedThreshold separates learned cards from unlearned slots.
const learnedThreshold = 1e-9

// Card seeds a deck slot with an existing memory state. Days are relative
// to simulation day 0, so LastReview is usually negative.
type Card struct {
	Difficulty float64
	Stability  float64
	LastReview int
	Due        int
}

// cardStatus is the single per-day classification of a card, evaluated in
// priority order: due for review, then waiting for a first learn.
type cardStatus uint8

const (
	statusNotDue cardStatus = iota
	statusReview
	statusLearn
)

type reviewOutcome uint8

const (
	outcomeNone reviewOutcome = iota
	outcomeRecalled
	outcomeForgotten
)

// Deck stores cards as parallel columns indexed by slot. Slot order is
// also admission priority order.
type Deck struct {
	difficulty []float64
	stability  []float64
	lastReview []int
	due        []int
	interval   []int

	// per-day scratch, overwritten at the start of each day
	retrievability []float64
	cost           []float64
	cumCost        []float64
	status         []cardStatus
	outcome        []reviewOutcome
	rating         []memory.Rating
	admitted       []bool
}

// NewDeck allocates size unlearned slots, all due on learnSpan so they are
// only eligible as first learns.
func NewDeck(size, learnSpan int) *Deck {
	d := &Deck{
		difficulty:     make([]float64, size),
		stability:      make([]float64, size),
		lastReview:     make([]int, size),
		due:            make([]int, size),
		interval:       make([]int, size),
		retrievability: make([]float64, size),
		cost:           make([]float64, size),
		cumCost:        make([]float64, size),
		status:         make([]cardStatus, size),
		outcome:        make([]reviewOutcome, size),
		rating:         make([]memory.Rating, size),
		admitted:       make([]bool, size),
	}
	for i := 0; i < size; i++ {
		d.difficulty[i] = unlearnedValue
		d.stability[i] = unlearnedValue
		d.due[i] = learnSpan
	}
	return d
}

// Seed overwrites the leading slots with existing cards. Stability and
// difficulty are clamped to the model bounds; non-finite values are
// rejected with ErrInvalidConfig.
func (d *Deck) Seed(cards []Card) error {
	if len(cards) > d.Len() {
		return fmt.Errorf("%w: %d cards for %d slots", ErrTooManyCards, len(cards), d.Len())
	}
	for i, c := range cards {
		if !isFinite(c.Stability) || !isFinite(c.Difficulty) {
			return fmt.Errorf("%w: existing card %d has stability=%v difficulty=%v",
				ErrInvalidConfig, i, c.Stability, c.Difficulty)
		}
	}
	for i, c := range cards {
		d.difficulty[i] = memory.ClampDifficulty(c.Difficulty)
		d.stability[i] = memory.ClampStability(c.Stability)
		d.lastReview[i] = c.LastReview
		d.due[i] = c.Due
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Len returns the number of slots.
func (d *Deck) Len() int {
	return len(d.stability)
}

// Card returns the memory state of slot i.
func (d *Deck) Card(i int) Card {
	return Card{
		Difficulty: d.difficulty[i],
		Stability:  d.stability[i],
		LastReview: d.lastReview[i],
		Due:        d.due[i],
	}
}

// Learned reports whether slot i has been reviewed at least once.
func (d *Deck) Learned(i int) bool {
	return d.stability[i] > learnedThreshold
}

// Interval returns the most recently scheduled interval of slot i in days.
func (d *Deck) Interval(i int) int {
	return d.interval[i]
}
