package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/deck-sim/deck-sim/sim"
	"github.com/deck-sim/deck-sim/sim/trace"
)

// printDailyTable writes day, memorized, reviews, learns and cost for
// every Nth day and the final day.
func printDailyTable(w io.Writer, res *sim.SimulationResult, every int) {
	if every < 1 {
		every = 1
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintln(tw, "day\tmemorized\treviews\tlearns\tcost\t")
	last := res.Days() - 1
	for day := 0; day <= last; day++ {
		if day%every != 0 && day != last {
			continue
		}
		_, _ = fmt.Fprintf(tw, "%d\t%.1f\t%d\t%d\t%.0f\t\n", day,
			res.MemorizedPerDay[day], res.ReviewCountPerDay[day], res.LearnCountPerDay[day], res.CostPerDay[day])
	}
	_ = tw.Flush()
}

func printTotals(w io.Writer, res *sim.SimulationResult) {
	_, _ = fmt.Fprintln(w, "=== Totals ===")
	_, _ = fmt.Fprintf(w, "days:            %d\n", res.Days())
	_, _ = fmt.Fprintf(w, "reviews:         %d\n", res.TotalReviews())
	_, _ = fmt.Fprintf(w, "learned:         %d\n", res.TotalLearned())
	_, _ = fmt.Fprintf(w, "total cost:      %.0f\n", res.TotalCost())
	_, _ = fmt.Fprintf(w, "final memorized: %.1f\n", res.FinalMemorized())
	if res.FinalMemorized() > 0 {
		_, _ = fmt.Fprintf(w, "cost/memorized:  %.3f\n", res.TotalCost()/res.FinalMemorized())
	}
}

func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	_, _ = fmt.Fprintln(w, "=== Admission Trace ===")
	_, _ = fmt.Fprintf(w, "deferred reviews:  %d\n", s.TotalDeferred)
	_, _ = fmt.Fprintf(w, "lapses:            %d\n", s.TotalForgotten)
	_, _ = fmt.Fprintf(w, "peak backlog:      %d (day %d)\n", s.PeakBacklog, s.PeakBacklogDay)
	_, _ = fmt.Fprintf(w, "mean daily cost:   %.1f\n", s.MeanDailyCost)
}
