package sim

import (
	"bytes"
	"fmt"
	"math/bits"
	"sort"
)

// CapEntry is one publisher's assigned stake cap.
type CapEntry struct {
	Publisher PublisherKey
	Cap       uint64
}

// CapAssignment maps every publisher of one snapshot to its assigned cap,
// in publisher-key order. Immutable after derivation; serializes in a
// stable order so a downstream parameter-update transaction is
// byte-for-byte reproducible.
type CapAssignment struct {
	entries []CapEntry
}

// NumEntries returns the number of cap entries.
func (a *CapAssignment) NumEntries() int { return len(a.entries) }

// Cap looks up one publisher's cap via binary search.
func (a *CapAssignment) Cap(key PublisherKey) (uint64, bool) {
	i := sort.Search(len(a.entries), func(i int) bool {
		return !a.entries[i].Publisher.Less(key)
	})
	if i < len(a.entries) && a.entries[i].Publisher == key {
		return a.entries[i].Cap, true
	}
	return 0, false
}

// Entries returns a copy of the cap entries in publisher-key order.
func (a *CapAssignment) Entries() []CapEntry {
	out := make([]CapEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

// MarshalJSON emits entries as a JSON object in publisher-key order.
func (a *CapAssignment) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range a.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:%d", e.Publisher.String(), e.Cap)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DeriveCaps computes the stake cap for every publisher of the snapshot.
//
// The cap is a function of network-wide total stake and the parameters
// only, never of publisher identity or enumeration order, so every
// publisher in one snapshot receives the same cap:
//
//	total <= M:  cap = Ceiling
//	total >  M:  excess = total - M
//	             reduction = (Ceiling - Floor) * excess / (excess + M/Z)
//	             cap = max(Floor, Ceiling - max(1, reduction))
//
// All arithmetic is unsigned fixed-point with a 128-bit intermediate
// product; division truncates toward zero. The reduction is clamped up to
// at least one unit so crossing the M threshold always lowers the cap
// below the ceiling. As excess grows the reduction approaches
// Ceiling - Floor, so the cap decays monotonically from Ceiling toward
// Floor with a half-life of M/Z units of excess.
//
// Fails only on parameters outside their domain; any snapshot content,
// including the empty snapshot, produces a result.
func DeriveCaps(snapshot *AccountSnapshot, params CapParameters) (*CapAssignment, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	capValue := capForTotal(snapshot.TotalStake(), params)

	entries := make([]CapEntry, 0, snapshot.NumPublishers())
	snapshot.ForEach(func(e StakeEntry) {
		entries = append(entries, CapEntry{Publisher: e.Publisher, Cap: capValue})
	})
	return &CapAssignment{entries: entries}, nil
}

// capForTotal evaluates the anti-concentration curve at one total stake.
// Callers must have validated params.
func capForTotal(total uint64, params CapParameters) uint64 {
	if total <= params.M {
		return params.Ceiling
	}

	excess := total - params.M
	knee := params.M / params.Z
	spread := params.Ceiling - params.Floor

	// reduction = spread * excess / (excess + knee), truncating.
	// excess + knee <= total - M + M <= total, so the divisor cannot
	// overflow, and the quotient is < spread so it fits in 64 bits.
	hi, lo := bits.Mul64(spread, excess)
	reduction, _ := bits.Div64(hi, lo, excess+knee)

	if reduction < 1 {
		reduction = 1
	}
	if reduction > spread {
		reduction = spread
	}
	return params.Ceiling - reduction
}
