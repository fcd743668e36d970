package sim

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// SimulatorConfig describes one synthetic deck and the daily budget its
// reviewer works under. It is read-only for the duration of a run and is
// safe to share across concurrent simulations.
type SimulatorConfig struct {
	DeckSize         int        `validate:"gte=0"`      // number of card slots
	LearnSpan        int        `validate:"gte=0"`      // simulated days
	MaxCostPerDay    float64    `validate:"gte=0"`      // daily cost cap (math.Inf(1) = unlimited)
	MaxInterval      int        `validate:"gte=1"`      // longest schedulable interval in days
	RecallCosts      [3]float64 `validate:"dive,gte=0"` // cost of a Hard, Good, Easy review
	ForgetCost       float64    `validate:"gte=0"`      // cost of a lapse before loss aversion
	LearnCost        float64    `validate:"gte=0"`      // cost of a first review
	FirstRatingProb  [4]float64 `validate:"dive,gte=0"` // weights of Again..Easy on first review
	ReviewRatingProb [3]float64 `validate:"dive,gte=0"` // weights of Hard..Easy on a successful review
	LossAversion     float64    `validate:"gte=0"`      // multiplier applied to ForgetCost
	LearnLimit       int        `validate:"gte=0"`      // max new cards per day
	ReviewLimit      int        `validate:"gte=0"`      // max reviews per day
}

// DefaultSimulatorConfig returns the reference deck: 10000 cards over one
// year with a 1800-second daily budget and no count caps.
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		DeckSize:         10000,
		LearnSpan:        365,
		MaxCostPerDay:    1800,
		MaxInterval:      36500,
		RecallCosts:      [3]float64{14, 10, 6},
		ForgetCost:       50,
		LearnCost:        20,
		FirstRatingProb:  [4]float64{0.15, 0.2, 0.6, 0.05},
		ReviewRatingProb: [3]float64{0.3, 0.6, 0.1},
		LossAversion:     2.5,
		LearnLimit:       math.MaxInt,
		ReviewLimit:      math.MaxInt,
	}
}

// Validate checks field ranges and that both rating distributions carry
// positive, finite total weight.
func (c *SimulatorConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !(sumFinite(c.FirstRatingProb[:]) > 0) {
		return fmt.Errorf("%w: first_rating_prob must have positive total weight", ErrInvalidConfig)
	}
	if !(sumFinite(c.ReviewRatingProb[:]) > 0) {
		return fmt.Errorf("%w: review_rating_prob must have positive total weight", ErrInvalidConfig)
	}
	return nil
}

func sumFinite(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		if math.IsInf(x, 0) {
			return math.NaN()
		}
		total += x
	}
	return total
}
