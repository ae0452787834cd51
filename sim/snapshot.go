package sim

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/mr-tron/base58"
)

// PublisherKey is the opaque fixed-width identifier of an oracle publisher.
// On PythNet this is an ed25519 public key; the core only ever compares and
// orders it, never interprets it.
type PublisherKey [32]byte

// String renders the key in the ledger-native base58 form.
func (k PublisherKey) String() string {
	return base58.Encode(k[:])
}

// Less orders keys bytewise. Snapshot and assignment enumeration order is
// defined by this ordering and nothing else.
func (k PublisherKey) Less(other PublisherKey) bool {
	return bytes.Compare(k[:], other[:]) < 0
}

// ParsePublisherKey decodes a base58 publisher key.
func ParsePublisherKey(s string) (PublisherKey, error) {
	var key PublisherKey
	raw, err := base58.Decode(s)
	if err != nil {
		return key, fmt.Errorf("decoding publisher key %q: %w", s, err)
	}
	if len(raw) != len(key) {
		return key, fmt.Errorf("publisher key %q: expected %d bytes, got %d", s, len(key), len(raw))
	}
	copy(key[:], raw)
	return key, nil
}

// StakeEntry is one publisher's stake, in ledger-native fixed-point units.
type StakeEntry struct {
	Publisher PublisherKey
	Stake     uint64
}

// AccountSnapshot is an immutable view of all publisher stakes at one slot.
// Entries are sorted by publisher key with no duplicates, and TotalStake is
// exactly the sum of all entries. Construct only through SnapshotBuilder or
// the ledger loader; a zero-value AccountSnapshot is the valid empty snapshot.
type AccountSnapshot struct {
	entries []StakeEntry
	total   uint64
	slot    uint64
}

// Slot returns the logical timestamp the snapshot was taken at.
func (s *AccountSnapshot) Slot() uint64 { return s.slot }

// TotalStake returns the sum of all publisher stakes.
func (s *AccountSnapshot) TotalStake() uint64 { return s.total }

// NumPublishers returns the number of publishers in the snapshot.
func (s *AccountSnapshot) NumPublishers() int { return len(s.entries) }

// Stake looks up one publisher's stake via binary search.
func (s *AccountSnapshot) Stake(key PublisherKey) (uint64, bool) {
	i := sort.Search(len(s.entries), func(i int) bool {
		return !s.entries[i].Publisher.Less(key)
	})
	if i < len(s.entries) && s.entries[i].Publisher == key {
		return s.entries[i].Stake, true
	}
	return 0, false
}

// Entries returns the stake entries in publisher-key order. The returned
// slice is a copy; the snapshot itself never changes after construction.
func (s *AccountSnapshot) Entries() []StakeEntry {
	out := make([]StakeEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// ForEach enumerates entries in publisher-key order without copying.
func (s *AccountSnapshot) ForEach(fn func(StakeEntry)) {
	for _, e := range s.entries {
		fn(e)
	}
}

// WithStake returns a new snapshot identical to s except that key holds
// stake. The publisher must already be present. Used by the monotonicity
// probe; the receiver is never modified.
func (s *AccountSnapshot) WithStake(key PublisherKey, stake uint64) (*AccountSnapshot, error) {
	b := NewSnapshotBuilder(s.slot)
	found := false
	for _, e := range s.entries {
		if e.Publisher == key {
			b.Add(e.Publisher, stake)
			found = true
			continue
		}
		b.Add(e.Publisher, e.Stake)
	}
	if !found {
		return nil, fmt.Errorf("%w: publisher %s not in snapshot", ErrMalformedSnapshot, key)
	}
	return b.Build()
}

// SnapshotBuilder accumulates stake entries and validates them into an
// AccountSnapshot. Rejects duplicate publishers and stake totals that would
// overflow uint64.
type SnapshotBuilder struct {
	slot    uint64
	entries []StakeEntry
}

// NewSnapshotBuilder creates a builder for a snapshot at the given slot.
func NewSnapshotBuilder(slot uint64) *SnapshotBuilder {
	return &SnapshotBuilder{slot: slot}
}

// Add records one publisher's stake. Duplicates are detected at Build time.
func (b *SnapshotBuilder) Add(key PublisherKey, stake uint64) *SnapshotBuilder {
	b.entries = append(b.entries, StakeEntry{Publisher: key, Stake: stake})
	return b
}

// Build validates and freezes the snapshot. Returns ErrMalformedSnapshot on
// duplicate publishers or total-stake overflow.
func (b *SnapshotBuilder) Build() (*AccountSnapshot, error) {
	entries := make([]StakeEntry, len(b.entries))
	copy(entries, b.entries)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Publisher.Less(entries[j].Publisher)
	})

	var total uint64
	for i, e := range entries {
		if i > 0 && entries[i-1].Publisher == e.Publisher {
			return nil, fmt.Errorf("%w: duplicate publisher %s", ErrMalformedSnapshot, e.Publisher)
		}
		sum := total + e.Stake
		if sum < total {
			return nil, fmt.Errorf("%w: total stake overflows uint64 at publisher %s", ErrMalformedSnapshot, e.Publisher)
		}
		total = sum
	}

	return &AccountSnapshot{entries: entries, total: total, slot: b.slot}, nil
}

// BuildChecked is Build with an externally supplied total, used when the
// snapshot comes from a ledger reader that records its own total-stake
// scalar. A mismatch means the upstream data is inconsistent.
func (b *SnapshotBuilder) BuildChecked(expectedTotal uint64) (*AccountSnapshot, error) {
	snap, err := b.Build()
	if err != nil {
		return nil, err
	}
	if snap.total != expectedTotal {
		return nil, fmt.Errorf("%w: declared total %d, entries sum to %d",
			ErrMalformedSnapshot, expectedTotal, snap.total)
	}
	return snap, nil
}
