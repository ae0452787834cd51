package cmd

import (
	"fmt"

	"github.com/schollz/progressbar/v3"

	"github.com/ilya-bobyr/pythnet-heisenberg/sim"
)

// progressReporter renders a terminal progress bar over trial
// completions. It implements sim.Reporter; the runner calls it from a
// single goroutine, so no locking is needed here.
type progressReporter struct {
	bar      *progressbar.ProgressBar
	failures int
}

func newProgressReporter(trials int) *progressReporter {
	return &progressReporter{
		bar: progressbar.NewOptions(trials,
			progressbar.OptionSetDescription("trials"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionClearOnFinish(),
		),
	}
}

func (r *progressReporter) OnTrialComplete(outcome sim.TrialOutcome) {
	if !outcome.Passed() {
		r.failures++
		r.bar.Describe(describeFailures(r.failures))
	}
	_ = r.bar.Add(1)
}

func (r *progressReporter) OnRunComplete(*sim.Summary) {
	_ = r.bar.Finish()
}

func describeFailures(n int) string {
	if n == 1 {
		return "trials (1 failure)"
	}
	return fmt.Sprintf("trials (%d failures)", n)
}
