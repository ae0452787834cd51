package sim

// TrialOutcome is the result of one pipeline pass: generate, derive,
// check. Created once and never mutated; the aggregator only reads it.
type TrialOutcome struct {
	// Trial is the index of this trial within its run.
	Trial int

	// Scenario is the generated input, kept for seed-based replay.
	Scenario *Scenario

	// Assignment is the derived cap assignment. Nil when Err is set.
	Assignment *CapAssignment

	// Violations lists every invariant the derivation violated. Empty
	// means the trial passed. Violations are data, never errors.
	Violations []Violation

	// Err records a structural failure (a malformed snapshot) that
	// prevented derivation. The trial counts as failed; the run
	// continues.
	Err error
}

// Passed reports whether the trial completed with no structural error
// and no invariant violations.
func (o TrialOutcome) Passed() bool {
	return o.Err == nil && len(o.Violations) == 0
}

// RunTrial executes one full pipeline pass: generate the scenario for
// (seed, mode), derive caps, and check invariants. Pure apart from the
// generator's seeded randomness; two calls with identical arguments
// produce identical outcomes.
func RunTrial(gen ScenarioGenerator, trial int, seed int64, mode Mode) TrialOutcome {
	outcome := TrialOutcome{Trial: trial}

	scen, err := gen.Generate(seed, mode)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Scenario = scen

	assignment, err := DeriveCaps(scen.Snapshot, scen.Params)
	if err != nil {
		// DeriveCaps fails only on invalid parameters, which Runner.Run
		// rejects up front; reaching here means the generator produced
		// a scenario with out-of-domain parameters.
		outcome.Err = err
		return outcome
	}
	outcome.Assignment = assignment

	outcome.Violations = CheckInvariants(scen.Snapshot, scen.Params, assignment)
	return outcome
}
