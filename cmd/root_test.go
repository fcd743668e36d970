package cmd

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logrus.SetLevel(logrus.ErrorLevel)
	os.Exit(m.Run())
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"simulate", "optimize", "sweep"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	// --log and --config are inherited by every subcommand
	for _, name := range []string{"log", "config"} {
		f := simulateCmd.InheritedFlags().Lookup(name)
		require.NotNil(t, f, "flag %s", name)
	}
	assert.Equal(t, "warn", rootCmd.PersistentFlags().Lookup("log").DefValue)
	assert.Equal(t, "0.9", simulateCmd.Flags().Lookup("retention").DefValue)
	assert.Equal(t, "42", simulateCmd.Flags().Lookup("seed").DefValue)
}
