package sim

import "errors"

// Sentinel errors for the three failure classes of the core. Invariant
// violations are deliberately not errors; they are data carried in
// TrialOutcome.
var (
	// ErrMalformedSnapshot marks a structural violation in snapshot input
	// data. A trial hitting it is recorded as failed and the run continues.
	ErrMalformedSnapshot = errors.New("malformed snapshot")

	// ErrInvalidParameters marks cap parameters outside their domain.
	// Fatal: aborts a run before any trial executes.
	ErrInvalidParameters = errors.New("invalid cap parameters")

	// ErrInvalidGeneratorConfig marks empty or inverted generator ranges.
	// Fatal: aborts a run before any trial executes.
	ErrInvalidGeneratorConfig = errors.New("invalid generator config")
)
