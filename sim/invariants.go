package sim

import (
	"fmt"
	"math"
)

// Invariant names, as recorded in TrialOutcome violations and the run
// summary.
const (
	InvariantCoverage     = "coverage"
	InvariantBoundedness  = "boundedness"
	InvariantMonotonicity = "monotonicity"
	InvariantFairness     = "fairness"
)

// AllInvariants lists every checked invariant, in reporting order.
//
// Conservation of the cap sum is deliberately absent: caps bound
// individual publishers only, and the sum of caps is not a ledger limit.
// Asserting it would over-constrain future curve changes, so it is a
// documented non-property rather than an invariant.
var AllInvariants = []string{
	InvariantCoverage,
	InvariantBoundedness,
	InvariantMonotonicity,
	InvariantFairness,
}

// Violation is one failed invariant with a human-readable detail.
type Violation struct {
	Invariant string
	Detail    string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Invariant, v.Detail)
}

// ViolationNames extracts the invariant names from a violation list,
// preserving order and duplicates.
func ViolationNames(violations []Violation) []string {
	names := make([]string, len(violations))
	for i, v := range violations {
		names[i] = v.Invariant
	}
	return names
}

// CheckInvariants evaluates the full invariant battery for one derivation
// result and reports every violation found, not just the first. An empty
// result means the derivation passed. Pure: inputs are never mutated, and
// identical inputs always yield the identical violation list.
func CheckInvariants(snapshot *AccountSnapshot, params CapParameters, assignment *CapAssignment) []Violation {
	var violations []Violation
	violations = append(violations, checkCoverage(snapshot, assignment)...)
	violations = append(violations, checkBoundedness(params, assignment)...)
	violations = append(violations, checkMonotonicity(snapshot, params, assignment)...)
	violations = append(violations, checkFairness(snapshot, assignment)...)
	return violations
}

// checkCoverage verifies the assignment holds exactly one entry per
// snapshot publisher and nothing else. Holds vacuously for the empty
// snapshot.
func checkCoverage(snapshot *AccountSnapshot, assignment *CapAssignment) []Violation {
	var violations []Violation
	snapshot.ForEach(func(e StakeEntry) {
		if _, ok := assignment.Cap(e.Publisher); !ok {
			violations = append(violations, Violation{
				Invariant: InvariantCoverage,
				Detail:    fmt.Sprintf("publisher %s has no cap entry", e.Publisher),
			})
		}
	})
	entries := assignment.Entries()
	for i, e := range entries {
		if _, ok := snapshot.Stake(e.Publisher); !ok {
			violations = append(violations, Violation{
				Invariant: InvariantCoverage,
				Detail:    fmt.Sprintf("extraneous cap entry for publisher %s", e.Publisher),
			})
		}
		// Entries are ordered, so duplicates are adjacent.
		if i > 0 && entries[i-1].Publisher == e.Publisher {
			violations = append(violations, Violation{
				Invariant: InvariantCoverage,
				Detail:    fmt.Sprintf("duplicate cap entry for publisher %s", e.Publisher),
			})
		}
	}
	return violations
}

// checkBoundedness verifies every cap lies in [Floor, Ceiling].
func checkBoundedness(params CapParameters, assignment *CapAssignment) []Violation {
	var violations []Violation
	for _, e := range assignment.Entries() {
		if e.Cap < params.Floor || e.Cap > params.Ceiling {
			violations = append(violations, Violation{
				Invariant: InvariantBoundedness,
				Detail: fmt.Sprintf("publisher %s cap %d outside [%d, %d]",
					e.Publisher, e.Cap, params.Floor, params.Ceiling),
			})
		}
	}
	return violations
}

// checkMonotonicity probes the anti-concentration property: raising one
// publisher's stake, all else equal, must not raise that publisher's cap.
// Each publisher is probed with its stake roughly doubled, clamped so the
// snapshot total stays representable. Publishers whose stake cannot be
// increased are skipped.
func checkMonotonicity(snapshot *AccountSnapshot, params CapParameters, assignment *CapAssignment) []Violation {
	var violations []Violation
	total := snapshot.TotalStake()
	snapshot.ForEach(func(e StakeEntry) {
		headroom := math.MaxUint64 - total
		if headroom == 0 {
			return
		}
		delta := e.Stake + 1
		if delta > headroom {
			delta = headroom
		}

		probe, err := snapshot.WithStake(e.Publisher, e.Stake+delta)
		if err != nil {
			violations = append(violations, Violation{
				Invariant: InvariantMonotonicity,
				Detail:    fmt.Sprintf("probe snapshot for publisher %s: %v", e.Publisher, err),
			})
			return
		}
		probeCaps, err := DeriveCaps(probe, params)
		if err != nil {
			violations = append(violations, Violation{
				Invariant: InvariantMonotonicity,
				Detail:    fmt.Sprintf("probe derivation for publisher %s: %v", e.Publisher, err),
			})
			return
		}

		before, okBefore := assignment.Cap(e.Publisher)
		after, okAfter := probeCaps.Cap(e.Publisher)
		if !okBefore || !okAfter {
			// Missing entries are coverage violations, reported there.
			return
		}
		if after > before {
			violations = append(violations, Violation{
				Invariant: InvariantMonotonicity,
				Detail: fmt.Sprintf("publisher %s cap rose %d -> %d after stake increase of %d",
					e.Publisher, before, after, delta),
			})
		}
	})
	return violations
}

// checkFairness verifies publishers with equal stake receive equal caps.
func checkFairness(snapshot *AccountSnapshot, assignment *CapAssignment) []Violation {
	var violations []Violation
	capsByStake := make(map[uint64]CapEntry)
	snapshot.ForEach(func(e StakeEntry) {
		got, ok := assignment.Cap(e.Publisher)
		if !ok {
			return
		}
		prev, seen := capsByStake[e.Stake]
		if !seen {
			capsByStake[e.Stake] = CapEntry{Publisher: e.Publisher, Cap: got}
			return
		}
		if prev.Cap != got {
			violations = append(violations, Violation{
				Invariant: InvariantFairness,
				Detail: fmt.Sprintf("publishers %s and %s both stake %d but got caps %d and %d",
					prev.Publisher, e.Publisher, e.Stake, prev.Cap, got),
			})
		}
	})
	return violations
}
