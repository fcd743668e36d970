package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	Days           int
	TotalReviewed  int
	TotalLearned   int
	TotalDeferred  int
	TotalForgotten int
	PeakBacklog    int // largest Deferred value on any day
	PeakBacklogDay int
	MeanDailyCost  float64
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil || len(st.Days) == 0 {
		return summary
	}

	totalCost := 0.0
	for _, d := range st.Days {
		summary.TotalReviewed += d.Reviewed
		summary.TotalLearned += d.Learned
		summary.TotalDeferred += d.Deferred
		summary.TotalForgotten += d.Forgotten
		totalCost += d.Cost
		if d.Deferred > summary.PeakBacklog {
			summary.PeakBacklog = d.Deferred
			summary.PeakBacklogDay = d.Day
		}
	}
	summary.Days = len(st.Days)
	summary.MeanDailyCost = totalCost / float64(len(st.Days))

	return summary
}
