package sim

import "gonum.org/v1/gonum/floats"

// SimulationResult holds the per-day aggregates of one run. All four
// sequences have one entry per simulated day.
type SimulationResult struct {
	// MemorizedPerDay is the sum of recall probability over learned cards,
	// measured before that day's reviews.
	MemorizedPerDay   []float64
	ReviewCountPerDay []int
	LearnCountPerDay  []int
	CostPerDay        []float64
}

func newSimulationResult(days int) *SimulationResult {
	return &SimulationResult{
		MemorizedPerDay:   make([]float64, days),
		ReviewCountPerDay: make([]int, days),
		LearnCountPerDay:  make([]int, days),
		CostPerDay:        make([]float64, days),
	}
}

// Days returns the number of simulated days.
func (r *SimulationResult) Days() int {
	return len(r.MemorizedPerDay)
}

// TotalCost is the cost spent over the whole horizon.
func (r *SimulationResult) TotalCost() float64 {
	return floats.Sum(r.CostPerDay)
}

// FinalMemorized is the memorized count on the last day, or 0 for an
// empty run.
func (r *SimulationResult) FinalMemorized() float64 {
	if len(r.MemorizedPerDay) == 0 {
		return 0
	}
	return r.MemorizedPerDay[len(r.MemorizedPerDay)-1]
}

// TotalReviews is the number of admitted reviews over the whole horizon.
func (r *SimulationResult) TotalReviews() int {
	n := 0
	for _, c := range r.ReviewCountPerDay {
		n += c
	}
	return n
}

// TotalLearned is the number of first learns over the whole horizon.
func (r *SimulationResult) TotalLearned() int {
	n := 0
	for _, c := range r.LearnCountPerDay {
		n += c
	}
	return n
}
