package sim

import "testing"

// key builds a deterministic publisher key for tests. Keys built from
// increasing i sort in the same order as i.
func key(i byte) PublisherKey {
	var k PublisherKey
	k[31] = i
	return k
}

// mustSnapshot builds a snapshot from per-publisher stakes, keyed
// key(1), key(2), ... in order, failing the test on builder errors.
func mustSnapshot(t *testing.T, slot uint64, stakes ...uint64) *AccountSnapshot {
	t.Helper()
	b := NewSnapshotBuilder(slot)
	for i, stake := range stakes {
		b.Add(key(byte(i+1)), stake)
	}
	snap, err := b.Build()
	if err != nil {
		t.Fatalf("building test snapshot: %v", err)
	}
	return snap
}

// mustAssignment builds an arbitrary assignment directly, bypassing
// derivation, for exercising the invariant checker against broken
// results.
func mustAssignment(entries ...CapEntry) *CapAssignment {
	return &CapAssignment{entries: entries}
}
