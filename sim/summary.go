package sim

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/ilya-bobyr/pythnet-heisenberg/sim/rng"
)

// Distribution is a statistical summary of one metric across trials.
type Distribution struct {
	Mean   float64
	StdDev float64
	P50    float64
	P95    float64
	P99    float64
	Min    float64
	Max    float64
	Count  int
}

// NewDistribution computes a Distribution from raw values. Returns the
// zero value for empty input.
func NewDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Distribution{
		Mean:   stat.Mean(sorted, nil),
		StdDev: stat.StdDev(sorted, nil),
		P50:    stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, sorted, nil),
		P99:    stat.Quantile(0.99, stat.Empirical, sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Count:  len(sorted),
	}
}

// FailureRef is everything needed to replay one failing trial in
// isolation.
type FailureRef struct {
	Trial      int
	Seed       int64
	Mode       Mode
	Algorithm  rng.Algorithm
	Invariants []string
}

// Summary aggregates a whole run. A run that starts always yields a
// Summary, even when every trial failed; Aborted marks runs cancelled
// before all trials executed.
type Summary struct {
	Trials    int
	Passed    int
	Failed    int
	Malformed int
	Aborted   bool

	// FailuresByInvariant counts failing trials per violated invariant.
	// A trial violating two invariants counts once under each.
	FailuresByInvariant map[string]int

	// Failures lists the replay references of failing trials, in trial
	// order.
	Failures []FailureRef

	// TotalStake and AssignedCap summarize the input and output
	// populations across all completed trials.
	TotalStake  Distribution
	AssignedCap Distribution
}

// summaryBuilder folds trial outcomes into a Summary. Not safe for
// concurrent use; the runner feeds it from a single aggregation
// goroutine.
type summaryBuilder struct {
	summary     Summary
	totalStakes []float64
	caps        []float64
}

func newSummaryBuilder() *summaryBuilder {
	return &summaryBuilder{
		summary: Summary{FailuresByInvariant: make(map[string]int)},
	}
}

func (b *summaryBuilder) add(o TrialOutcome) {
	b.summary.Trials++

	if o.Scenario != nil {
		b.totalStakes = append(b.totalStakes, float64(o.Scenario.Snapshot.TotalStake()))
	}
	if o.Assignment != nil && o.Assignment.NumEntries() > 0 {
		// One cap value per trial is enough: derivation assigns the
		// same cap to every publisher of a snapshot.
		b.caps = append(b.caps, float64(o.Assignment.Entries()[0].Cap))
	}

	if o.Passed() {
		b.summary.Passed++
		return
	}
	b.summary.Failed++
	if o.Err != nil {
		b.summary.Malformed++
	}

	ref := FailureRef{Trial: o.Trial}
	if o.Scenario != nil {
		ref.Seed = o.Scenario.Seed
		ref.Mode = o.Scenario.Mode
		ref.Algorithm = o.Scenario.Algorithm
	}
	seen := make(map[string]struct{})
	for _, v := range o.Violations {
		if _, dup := seen[v.Invariant]; dup {
			continue
		}
		seen[v.Invariant] = struct{}{}
		b.summary.FailuresByInvariant[v.Invariant]++
		ref.Invariants = append(ref.Invariants, v.Invariant)
	}
	b.summary.Failures = append(b.summary.Failures, ref)
}

func (b *summaryBuilder) finish(aborted bool) *Summary {
	b.summary.Aborted = aborted
	b.summary.TotalStake = NewDistribution(b.totalStakes)
	b.summary.AssignedCap = NewDistribution(b.caps)
	sort.Slice(b.summary.Failures, func(i, j int) bool {
		return b.summary.Failures[i].Trial < b.summary.Failures[j].Trial
	})
	return &b.summary
}

// Format renders the summary for human consumption.
func (s *Summary) Format() string {
	var sb strings.Builder

	state := "completed"
	if s.Aborted {
		state = "aborted"
	}
	fmt.Fprintf(&sb, "Run %s: %d trials, %d passed, %d failed", state, s.Trials, s.Passed, s.Failed)
	if s.Malformed > 0 {
		fmt.Fprintf(&sb, " (%d malformed snapshots)", s.Malformed)
	}
	sb.WriteByte('\n')

	if len(s.FailuresByInvariant) > 0 {
		names := make([]string, 0, len(s.FailuresByInvariant))
		for name := range s.FailuresByInvariant {
			names = append(names, name)
		}
		sort.Strings(names)
		sb.WriteString("Failures by invariant:\n")
		for _, name := range names {
			fmt.Fprintf(&sb, "  %-14s %d\n", name, s.FailuresByInvariant[name])
		}
	}

	for _, ref := range s.Failures {
		fmt.Fprintf(&sb, "  replay: --seed=%d --mode=%s --algorithm=%s  (trial %d, %s)\n",
			ref.Seed, ref.Mode, ref.Algorithm, ref.Trial, strings.Join(ref.Invariants, ","))
	}

	fmt.Fprintf(&sb, "Total stake: mean=%.0f stddev=%.0f p50=%.0f p99=%.0f max=%.0f\n",
		s.TotalStake.Mean, s.TotalStake.StdDev, s.TotalStake.P50, s.TotalStake.P99, s.TotalStake.Max)
	fmt.Fprintf(&sb, "Assigned cap: mean=%.0f stddev=%.0f min=%.0f max=%.0f\n",
		s.AssignedCap.Mean, s.AssignedCap.StdDev, s.AssignedCap.Min, s.AssignedCap.Max)
	return sb.String()
}
