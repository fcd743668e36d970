package sim

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/deck-sim/deck-sim/sim/memory"
)

// ratingSampler draws ratings from a discrete weighted distribution using
// an inverse CDF. Zero-weight ratings are never drawn.
type ratingSampler struct {
	ratings []memory.Rating
	cdf     []float64
}

func newRatingSampler(ratings []memory.Rating, weights []float64) *ratingSampler {
	cdf := make([]float64, len(weights))
	floats.CumSum(cdf, weights)
	return &ratingSampler{ratings: ratings, cdf: cdf}
}

func (s *ratingSampler) Sample(rng *rand.Rand) memory.Rating {
	u := rng.Float64() * s.cdf[len(s.cdf)-1]
	idx := sort.Search(len(s.cdf), func(i int) bool { return s.cdf[i] > u })
	if idx == len(s.cdf) {
		idx = len(s.cdf) - 1
	}
	return s.ratings[idx]
}

func firstRatingSampler(cfg *SimulatorConfig) *ratingSampler {
	return newRatingSampler(
		[]memory.Rating{memory.Again, memory.Hard, memory.Good, memory.Easy},
		cfg.FirstRatingProb[:],
	)
}

func reviewRatingSampler(cfg *SimulatorConfig) *ratingSampler {
	return newRatingSampler(
		[]memory.Rating{memory.Hard, memory.Good, memory.Easy},
		cfg.ReviewRatingProb[:],
	)
}
