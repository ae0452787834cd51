package sim

// Reporter receives run progress. Implementations live outside the core
// (a progress bar, a file exporter); the core only promises that
// OnTrialComplete is called exactly once per executed trial, serialized
// from a single goroutine, and OnRunComplete exactly once with the final
// summary, after the last OnTrialComplete.
type Reporter interface {
	OnTrialComplete(outcome TrialOutcome)
	OnRunComplete(summary *Summary)
}

// NopReporter discards all notifications.
type NopReporter struct{}

func (NopReporter) OnTrialComplete(TrialOutcome) {}
func (NopReporter) OnRunComplete(*Summary)       {}
