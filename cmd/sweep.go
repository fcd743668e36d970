package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/deck-sim/deck-sim/sim/memory"
	"github.com/deck-sim/deck-sim/sim/optimize"
)

var (
	sweepFrom   float64 // First retention of the grid
	sweepTo     float64 // Last retention of the grid (inclusive)
	sweepStep   float64 // Grid spacing
	sweepOutput string  // CSV destination; empty writes to stdout
)

// sweepCmd evaluates the optimizer objective on a retention grid
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Write cost per memorized card over a grid of desired retentions as CSV",
	Run: func(cmd *cobra.Command, args []string) {
		out := io.Writer(os.Stdout)
		if sweepOutput != "" {
			f, err := os.Create(sweepOutput)
			if err != nil {
				logrus.Fatalf("Create %s: %v", sweepOutput, err)
			}
			defer f.Close()
			out = f
		}
		if err := runSweep(cmd.Context(), out, configPath, sweepFrom, sweepTo, sweepStep, sampleSize); err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
	},
}

// retentionGrid returns from, from+step, ... up to and including to.
// Points are computed by index to avoid accumulating rounding error.
func retentionGrid(from, to, step float64) ([]float64, error) {
	if !(step > 0) || !(from > 0) || !(to < 1) || from > to {
		return nil, fmt.Errorf("invalid grid: from=%v to=%v step=%v", from, to, step)
	}
	var grid []float64
	for i := 0; ; i++ {
		r := from + float64(i)*step
		if r > to+step*1e-6 {
			break
		}
		grid = append(grid, r)
	}
	return grid, nil
}

func runSweep(ctx context.Context, w io.Writer, path string, from, to, step float64, samples int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	grid, err := retentionGrid(from, to, step)
	if err != nil {
		return err
	}
	df, err := loadDeckFile(path)
	if err != nil {
		return err
	}
	params, err := memory.ParseParameters(df.Parameters)
	if err != nil {
		return err
	}
	cfg := df.SimulatorConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(df.ExistingCards) > 0 {
		logrus.Warnf("Ignoring %d existing cards: the sweep simulates fresh decks", len(df.ExistingCards))
	}

	sampler := optimize.NewSampler(cfg, params)
	sampler.SampleSize = samples

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"retention", "cost_per_memorized"}); err != nil {
		return err
	}
	for i, r := range grid {
		logrus.Infof("Sweep %d/%d: retention %.3f", i+1, len(grid), r)
		score, err := sampler.Sample(ctx, r)
		if err != nil {
			return err
		}
		if err := cw.Write([]string{
			strconv.FormatFloat(r, 'f', 4, 64),
			strconv.FormatFloat(score, 'f', 6, 64),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func init() {
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.70, "First desired retention")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0.97, "Last desired retention (inclusive)")
	sweepCmd.Flags().Float64Var(&sweepStep, "step", 0.01, "Retention grid spacing")
	sweepCmd.Flags().StringVar(&sweepOutput, "output", "", "CSV output file (default stdout)")
	sweepCmd.Flags().IntVar(&sampleSize, "samples", optimize.SampleSize, "Simulations averaged per grid point")
}
