package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ilya-bobyr/pythnet-heisenberg/sim"
	"github.com/ilya-bobyr/pythnet-heisenberg/sim/rng"
	_ "github.com/ilya-bobyr/pythnet-heisenberg/sim/scenario" // registers the generator
)

var (
	// CLI flags for the simulate subcommand
	trials        int    // Number of trials to run
	seed          int64  // Master seed; per-trial seeds derive from it
	workers       int    // Worker pool size (0 = NumCPU)
	algorithm     string // RNG algorithm identifier
	noProgress    bool   // Disable the progress bar
	publishersMin int
	publishersMax int
	stakeMin      uint64
	stakeMax      uint64
)

// simulateCmd runs the full validation harness
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run synthetic staking scenarios against the cap derivation engine",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := sim.DefaultRunConfig()
		if configPath != "" {
			loaded, err := sim.LoadRunConfig(configPath)
			if err != nil {
				logrus.Fatalf("Loading run config: %v", err)
			}
			cfg = loaded
		}

		// Flags override file values when set explicitly.
		applyFlagOverrides(cmd, &cfg)

		logrus.Infof("Starting simulation: %d trials, params ceiling=%d floor=%d m=%d z=%d",
			cfg.Trials, cfg.Params.Ceiling, cfg.Params.Floor, cfg.Params.M, cfg.Params.Z)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		var reporter sim.Reporter = sim.NopReporter{}
		if !noProgress {
			reporter = newProgressReporter(cfg.Trials)
		}

		startTime := time.Now()
		runner := sim.NewRunner(cfg, reporter)
		summary, err := runner.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			logrus.Fatalf("Run failed to start: %v", err)
		}

		fmt.Print(summary.Format())
		fmt.Printf("Elapsed: %s\n", time.Since(startTime).Round(time.Millisecond))

		if summary.Failed > 0 {
			os.Exit(1)
		}
	},
}

// applyFlagOverrides copies any explicitly set CLI flag over the loaded
// config.
func applyFlagOverrides(cmd *cobra.Command, cfg *sim.RunConfig) {
	if cmd.Flags().Changed("trials") {
		cfg.Trials = trials
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("algorithm") {
		cfg.Algorithm = rng.Algorithm(algorithm)
	}
	if cmd.Flags().Changed("ceiling") {
		cfg.Params.Ceiling = paramCeiling
	}
	if cmd.Flags().Changed("floor") {
		cfg.Params.Floor = paramFloor
	}
	if cmd.Flags().Changed("m") {
		cfg.Params.M = paramM
	}
	if cmd.Flags().Changed("z") {
		cfg.Params.Z = paramZ
	}
	if cmd.Flags().Changed("publishers-min") {
		cfg.Ranges.PublishersMin = publishersMin
	}
	if cmd.Flags().Changed("publishers-max") {
		cfg.Ranges.PublishersMax = publishersMax
	}
	if cmd.Flags().Changed("stake-min") {
		cfg.Ranges.StakeMin = stakeMin
	}
	if cmd.Flags().Changed("stake-max") {
		cfg.Ranges.StakeMax = stakeMax
	}
}

func init() {
	simulateCmd.Flags().StringVar(&configPath, "config", "", "YAML run config file (flags override)")
	simulateCmd.Flags().IntVar(&trials, "trials", 10000, "Number of trials")
	simulateCmd.Flags().Int64Var(&seed, "seed", 42, "Master seed for scenario generation")
	simulateCmd.Flags().IntVar(&workers, "workers", 0, "Worker pool size (0 = one per CPU)")
	simulateCmd.Flags().StringVar(&algorithm, "algorithm", string(rng.DefaultAlgorithm), "RNG algorithm (legacy, pcg)")
	simulateCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	simulateCmd.Flags().IntVar(&publishersMin, "publishers-min", 1, "Min publishers per snapshot")
	simulateCmd.Flags().IntVar(&publishersMax, "publishers-max", 128, "Max publishers per snapshot")
	simulateCmd.Flags().Uint64Var(&stakeMin, "stake-min", 0, "Min per-publisher stake")
	simulateCmd.Flags().Uint64Var(&stakeMax, "stake-max", 3_600_000_000_000, "Max per-publisher stake")
	addParamFlags(simulateCmd)

	rootCmd.AddCommand(simulateCmd)
}
