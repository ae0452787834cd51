package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilya-bobyr/pythnet-heisenberg/sim/rng"
)

func smallRunConfig() RunConfig {
	cfg := DefaultRunConfig()
	cfg.Trials = 200
	cfg.Workers = 4
	cfg.Ranges.PublishersMax = 16
	return cfg
}

func TestRunner_CompletesAndPasses(t *testing.T) {
	cfg := smallRunConfig()
	runner := NewRunner(cfg, nil)
	require.Equal(t, RunStateIdle, runner.State())

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, RunStateCompleted, runner.State())

	assert.Equal(t, cfg.Trials, summary.Trials)
	assert.Equal(t, cfg.Trials, summary.Passed)
	assert.Zero(t, summary.Failed)
	assert.False(t, summary.Aborted)
	assert.Empty(t, summary.Failures)
	assert.Equal(t, cfg.Trials, summary.TotalStake.Count)
}

func TestRunner_FatalConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunConfig)
		want   error
	}{
		{"zero trials", func(c *RunConfig) { c.Trials = 0 }, ErrInvalidGeneratorConfig},
		{"floor above ceiling", func(c *RunConfig) { c.Params.Floor = c.Params.Ceiling + 1 }, ErrInvalidParameters},
		{"inverted stake range", func(c *RunConfig) { c.Ranges.StakeMin = 10; c.Ranges.StakeMax = 5 }, ErrInvalidGeneratorConfig},
		{"inverted publishers range", func(c *RunConfig) { c.Ranges.PublishersMin = 9; c.Ranges.PublishersMax = 3 }, ErrInvalidGeneratorConfig},
		{"bad mode in mix", func(c *RunConfig) { c.ModeMix = []ModeWeight{{Mode: "bogus", Weight: 1}} }, ErrInvalidGeneratorConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallRunConfig()
			tt.mutate(&cfg)

			runner := NewRunner(cfg, nil)
			summary, err := runner.Run(context.Background())
			assert.Nil(t, summary)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, RunStateAborted, runner.State())
		})
	}
}

func TestRunner_RunsOnce(t *testing.T) {
	cfg := smallRunConfig()
	cfg.Trials = 5
	runner := NewRunner(cfg, nil)

	_, err := runner.Run(context.Background())
	require.NoError(t, err)

	_, err = runner.Run(context.Background())
	assert.Error(t, err)
}

func TestRunner_DeterministicAcrossWorkerCounts(t *testing.T) {
	// The same master seed must give the same aggregate result
	// whatever the parallelism, because trial N depends on nothing but
	// its own derived seed.
	run := func(workers int) *Summary {
		cfg := smallRunConfig()
		cfg.Trials = 120
		cfg.Workers = workers
		summary, err := NewRunner(cfg, nil).Run(context.Background())
		require.NoError(t, err)
		return summary
	}

	one := run(1)
	eight := run(8)

	assert.Equal(t, one.Passed, eight.Passed)
	assert.Equal(t, one.Failed, eight.Failed)
	assert.Equal(t, one.Failures, eight.Failures)
	assert.Equal(t, one.TotalStake, eight.TotalStake)
	assert.Equal(t, one.AssignedCap, eight.AssignedCap)
}

func TestRunner_CancellationYieldsPartialSummary(t *testing.T) {
	cfg := smallRunConfig()
	cfg.Trials = 1_000_000
	cfg.Workers = 2

	ctx, cancel := context.WithCancel(context.Background())

	type result struct {
		summary *Summary
		err     error
	}
	done := make(chan result, 1)

	runner := NewRunner(cfg, nil)
	go func() {
		summary, err := runner.Run(ctx)
		done <- result{summary, err}
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	res := <-done
	require.NotNil(t, res.summary)
	assert.ErrorIs(t, res.err, context.Canceled)
	assert.True(t, res.summary.Aborted)
	assert.Equal(t, RunStateAborted, runner.State())
	assert.Less(t, res.summary.Trials, cfg.Trials)
	// The partial summary is consistent, not torn.
	assert.Equal(t, res.summary.Trials, res.summary.Passed+res.summary.Failed)
}

func TestRunner_ReporterContract(t *testing.T) {
	cfg := smallRunConfig()
	cfg.Trials = 50

	rep := &countingReporter{}
	_, err := NewRunner(cfg, rep).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, cfg.Trials, rep.trials)
	assert.Equal(t, 1, rep.runs)
	assert.True(t, rep.summaryLast)
}

type countingReporter struct {
	trials      int
	runs        int
	summaryLast bool
}

func (r *countingReporter) OnTrialComplete(TrialOutcome) {
	r.trials++
	r.summaryLast = false
}

func (r *countingReporter) OnRunComplete(*Summary) {
	r.runs++
	r.summaryLast = true
}

func TestReplayTrial_MatchesRunOutcome(t *testing.T) {
	cfg := smallRunConfig()

	trial := 17
	seedForTrial := rng.TrialSeed(cfg.Seed, trial)
	mode := cfg.modeFor(trial)

	replayed, err := ReplayTrial(cfg, seedForTrial, mode, cfg.Algorithm)
	require.NoError(t, err)
	require.NotNil(t, replayed.Scenario)

	// Re-generate directly: the scenario must be byte-identical.
	again, err := ReplayTrial(cfg, seedForTrial, mode, cfg.Algorithm)
	require.NoError(t, err)
	assert.Equal(t, replayed.Scenario, again.Scenario)
	assert.Equal(t, replayed.Violations, again.Violations)

	first, err := replayed.Assignment.MarshalJSON()
	require.NoError(t, err)
	second, err := again.Assignment.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunConfig_ModeForCoversMix(t *testing.T) {
	cfg := DefaultRunConfig()
	cfg.ModeMix = []ModeWeight{
		{Mode: ModeUniform, Weight: 3},
		{Mode: ModeBoundary, Weight: 1},
	}

	counts := map[Mode]int{}
	for trial := 0; trial < 40; trial++ {
		counts[cfg.modeFor(trial)]++
	}
	assert.Equal(t, 30, counts[ModeUniform])
	assert.Equal(t, 10, counts[ModeBoundary])
}

func TestRunConfig_ModeForDefaultsToAllModes(t *testing.T) {
	cfg := DefaultRunConfig()
	seen := map[Mode]bool{}
	for trial := 0; trial < len(AllModes)*3; trial++ {
		seen[cfg.modeFor(trial)] = true
	}
	for _, m := range AllModes {
		assert.True(t, seen[m], "mode %s never selected", m)
	}
}
