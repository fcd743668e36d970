package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel   string // Log verbosity level
	configPath string // Deck YAML file; empty uses built-in defaults
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "deck-sim",
	Short: "Spaced-repetition deck simulator and desired-retention optimizer",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up global flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a deck YAML file (simulator, parameters, existing_cards)")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(sweepCmd)
}
