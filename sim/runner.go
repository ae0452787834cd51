package sim

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/ilya-bobyr/pythnet-heisenberg/sim/rng"
)

// RunState is the lifecycle state of a Runner.
type RunState int32

const (
	RunStateIdle RunState = iota
	RunStateRunning
	RunStateCompleted
	RunStateAborted
)

func (s RunState) String() string {
	switch s {
	case RunStateIdle:
		return "idle"
	case RunStateRunning:
		return "running"
	case RunStateCompleted:
		return "completed"
	case RunStateAborted:
		return "aborted"
	}
	return fmt.Sprintf("unknown(%d)", int32(s))
}

// Runner drives N independent trials across a worker pool and folds the
// outcomes into a Summary. A Runner runs once; build a new one per run.
type Runner struct {
	cfg      RunConfig
	reporter Reporter
	state    atomic.Int32
}

// NewRunner creates a Runner. A nil reporter means no notifications.
func NewRunner(cfg RunConfig, reporter Reporter) *Runner {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Runner{cfg: cfg, reporter: reporter}
}

// State returns the runner's current lifecycle state.
func (r *Runner) State() RunState {
	return RunState(r.state.Load())
}

// Run executes the configured trials and returns the aggregate summary.
//
// Configuration errors are fatal and returned before any trial runs;
// everything else, including a run where every trial violates an
// invariant, completes normally and yields a summary. Cancellation via
// ctx is cooperative, checked between trials: workers finish their
// in-flight trial, and the partial summary is returned with Aborted set
// alongside ctx.Err().
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if !r.state.CompareAndSwap(int32(RunStateIdle), int32(RunStateRunning)) {
		return nil, fmt.Errorf("runner already started (state %s)", r.State())
	}

	if err := r.cfg.Validate(); err != nil {
		r.state.Store(int32(RunStateAborted))
		return nil, err
	}
	if NewScenarioGeneratorFunc == nil {
		r.state.Store(int32(RunStateAborted))
		return nil, fmt.Errorf("no scenario generator registered: import sim/scenario")
	}
	gen, err := NewScenarioGeneratorFunc(GeneratorConfig{
		Ranges:    r.cfg.Ranges,
		Params:    r.cfg.Params,
		Algorithm: r.cfg.Algorithm,
	})
	if err != nil {
		r.state.Store(int32(RunStateAborted))
		return nil, err
	}

	workers := r.cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > r.cfg.Trials {
		workers = r.cfg.Trials
	}

	logrus.Infof("Starting run: %d trials, %d workers, seed=%d, algorithm=%s",
		r.cfg.Trials, workers, r.cfg.Seed, r.cfg.Algorithm)

	trials := make(chan int)
	outcomes := make(chan TrialOutcome)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for trial := range trials {
				outcomes <- RunTrial(gen, trial, rng.TrialSeed(r.cfg.Seed, trial), r.cfg.modeFor(trial))
			}
		}()
	}

	// Feed trial indices until done or cancelled. Cancellation is only
	// observed here, between trials, so no outcome is ever torn.
	go func() {
		defer close(trials)
		for trial := 0; trial < r.cfg.Trials; trial++ {
			select {
			case trials <- trial:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	// Single aggregation point: outcomes fold here and the reporter is
	// notified from this goroutine only.
	builder := newSummaryBuilder()
	for outcome := range outcomes {
		if outcome.Err != nil {
			logrus.Debugf("trial %d failed structurally: %v", outcome.Trial, outcome.Err)
		}
		builder.add(outcome)
		r.reporter.OnTrialComplete(outcome)
	}

	aborted := ctx.Err() != nil && builder.summary.Trials < r.cfg.Trials
	summary := builder.finish(aborted)
	r.reporter.OnRunComplete(summary)

	if aborted {
		r.state.Store(int32(RunStateAborted))
		logrus.Warnf("Run cancelled after %d/%d trials", summary.Trials, r.cfg.Trials)
		return summary, ctx.Err()
	}
	r.state.Store(int32(RunStateCompleted))
	logrus.Infof("Run complete: %d passed, %d failed", summary.Passed, summary.Failed)
	return summary, nil
}

// ReplayTrial re-executes a single trial from its recorded replay
// reference, outside of any run. The generator config must match the
// original run for byte-identical replay.
func ReplayTrial(cfg RunConfig, seed int64, mode Mode, algorithm rng.Algorithm) (TrialOutcome, error) {
	if err := cfg.Params.Validate(); err != nil {
		return TrialOutcome{}, err
	}
	if err := cfg.Ranges.Validate(); err != nil {
		return TrialOutcome{}, err
	}
	if NewScenarioGeneratorFunc == nil {
		return TrialOutcome{}, fmt.Errorf("no scenario generator registered: import sim/scenario")
	}
	gen, err := NewScenarioGeneratorFunc(GeneratorConfig{
		Ranges:    cfg.Ranges,
		Params:    cfg.Params,
		Algorithm: algorithm,
	})
	if err != nil {
		return TrialOutcome{}, err
	}
	return RunTrial(gen, 0, seed, mode), nil
}
