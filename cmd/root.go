package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ilya-bobyr/pythnet-heisenberg/sim"
)

var (
	// Shared CLI flags
	logLevel   string // Log verbosity level
	configPath string // Optional YAML run config

	// Cap parameter flags (defaults match the on-chain program)
	paramCeiling uint64
	paramFloor   uint64
	paramM       uint64
	paramZ       uint64
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "heisenberg",
	Short: "Stake-cap parameter derivation and validation harness for the oracle staking program",
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

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
}

// addParamFlags attaches the cap parameter flags shared by the
// simulate, replay and derive subcommands.
func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&paramCeiling, "ceiling", sim.DefaultCeiling, "Global cap ceiling (native units)")
	cmd.Flags().Uint64Var(&paramFloor, "floor", sim.DefaultFloor, "Per-publisher cap floor (native units)")
	cmd.Flags().Uint64Var(&paramM, "m", sim.DefaultM, "Total-stake threshold M below which the curve is neutral")
	cmd.Flags().Uint64Var(&paramZ, "z", sim.DefaultZ, "Curve steepness Z (reduction half-saturates at excess M/Z)")
}
