package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/deck-sim/deck-sim/sim"
	"github.com/deck-sim/deck-sim/sim/optimize"
)

var (
	metricsFile    string // Prometheus text-format dump written after the search
	sampleSize     int    // Simulations averaged per evaluation
	maxEvaluations int    // Stop after this many evaluations (0 = no limit)
)

// optimizeCmd searches the desired retention with the lowest cost per memorized card
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Find the desired retention that minimizes cost per memorized card",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		startTime := time.Now()
		r, err := runOptimize(ctx, os.Stdout, configPath, sampleSize, maxEvaluations, metricsFile)
		if errors.Is(err, optimize.ErrOptimumNotFound) {
			logrus.Warnf("No optimum found, falling back to %.2f: %v", fallbackRetention, err)
			_, _ = fmt.Fprintf(os.Stdout, "%.4f\n", fallbackRetention)
			return
		}
		if err != nil {
			logrus.Fatalf("Optimization failed: %v", err)
		}
		logrus.Infof("Optimal retention %.4f found in %v.", r, time.Since(startTime))
	},
}

// fallbackRetention is printed when the search does not converge.
const fallbackRetention = 0.9

func runOptimize(ctx context.Context, w io.Writer, path string, samples, limit int, metricsPath string) (float64, error) {
	df, err := loadDeckFile(path)
	if err != nil {
		return 0, err
	}
	cfg := df.SimulatorConfig()
	if len(df.ExistingCards) > 0 {
		logrus.Warnf("Ignoring %d existing cards: the optimizer simulates fresh decks", len(df.ExistingCards))
	}

	reg := prometheus.NewRegistry()
	obs := optimize.NewPromObserver("decksim", reg)

	progress := func(p optimize.ItemProgress) bool {
		logrus.Debugf("Starting evaluation %d", p.Current)
		return limit <= 0 || p.Current <= limit
	}
	r, err := optimize.OptimalRetention(ctx, cfg, df.Parameters, progress,
		optimize.WithSampleSize(samples),
		optimize.WithBaseSeed(sim.DefaultSeed),
		optimize.WithObserver(obs),
	)
	if metricsPath != "" {
		if werr := prometheus.WriteToTextfile(metricsPath, reg); werr != nil {
			logrus.Errorf("Failed to write metrics to %s: %v", metricsPath, werr)
		}
	}
	if err != nil {
		return 0, err
	}
	_, _ = fmt.Fprintf(w, "%.4f\n", r)
	return r, nil
}

func init() {
	optimizeCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write optimizer metrics in Prometheus text format to this file")
	optimizeCmd.Flags().IntVar(&sampleSize, "samples", optimize.SampleSize, "Simulations averaged per evaluation")
	optimizeCmd.Flags().IntVar(&maxEvaluations, "max-evaluations", 0, "Interrupt the search after this many evaluations (0 = no limit)")
}
