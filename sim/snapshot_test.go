package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotBuilder_SortsAndTotals(t *testing.T) {
	// Insertion order deliberately reversed.
	snap, err := NewSnapshotBuilder(77).
		Add(key(3), 30).
		Add(key(1), 10).
		Add(key(2), 20).
		Build()
	require.NoError(t, err)

	assert.Equal(t, uint64(77), snap.Slot())
	assert.Equal(t, uint64(60), snap.TotalStake())
	assert.Equal(t, 3, snap.NumPublishers())

	entries := snap.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, key(1), entries[0].Publisher)
	assert.Equal(t, key(2), entries[1].Publisher)
	assert.Equal(t, key(3), entries[2].Publisher)
}

func TestSnapshotBuilder_RejectsDuplicatePublisher(t *testing.T) {
	_, err := NewSnapshotBuilder(0).
		Add(key(1), 10).
		Add(key(2), 20).
		Add(key(1), 30).
		Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedSnapshot)
}

func TestSnapshotBuilder_RejectsTotalOverflow(t *testing.T) {
	_, err := NewSnapshotBuilder(0).
		Add(key(1), math.MaxUint64).
		Add(key(2), 1).
		Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedSnapshot)
}

func TestSnapshotBuilder_BuildChecked(t *testing.T) {
	b := func() *SnapshotBuilder {
		return NewSnapshotBuilder(0).Add(key(1), 10).Add(key(2), 20)
	}

	snap, err := b().BuildChecked(30)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), snap.TotalStake())

	_, err = b().BuildChecked(31)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedSnapshot)
}

func TestSnapshotBuilder_EmptySnapshot(t *testing.T) {
	snap, err := NewSnapshotBuilder(0).Build()
	require.NoError(t, err)
	assert.Equal(t, 0, snap.NumPublishers())
	assert.Equal(t, uint64(0), snap.TotalStake())
	assert.Empty(t, snap.Entries())
}

func TestSnapshot_StakeLookup(t *testing.T) {
	snap := mustSnapshot(t, 0, 10, 20, 30)

	stake, ok := snap.Stake(key(2))
	require.True(t, ok)
	assert.Equal(t, uint64(20), stake)

	_, ok = snap.Stake(key(9))
	assert.False(t, ok)
}

func TestSnapshot_WithStake(t *testing.T) {
	snap := mustSnapshot(t, 5, 10, 20)

	bumped, err := snap.WithStake(key(1), 100)
	require.NoError(t, err)

	// New value, preserved slot and untouched other entries.
	stake, ok := bumped.Stake(key(1))
	require.True(t, ok)
	assert.Equal(t, uint64(100), stake)
	assert.Equal(t, uint64(120), bumped.TotalStake())
	assert.Equal(t, uint64(5), bumped.Slot())

	// The receiver is unchanged.
	stake, _ = snap.Stake(key(1))
	assert.Equal(t, uint64(10), stake)
	assert.Equal(t, uint64(30), snap.TotalStake())

	_, err = snap.WithStake(key(9), 1)
	assert.ErrorIs(t, err, ErrMalformedSnapshot)
}

func TestPublisherKey_Roundtrip(t *testing.T) {
	k := key(42)
	parsed, err := ParsePublisherKey(k.String())
	require.NoError(t, err)
	assert.Equal(t, k, parsed)

	_, err = ParsePublisherKey("not-base58-0OIl")
	assert.Error(t, err)

	// Valid base58 but wrong width.
	_, err = ParsePublisherKey("abc")
	assert.Error(t, err)
}
