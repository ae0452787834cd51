package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilya-bobyr/pythnet-heisenberg/sim"
)

func TestBoundary_SeedSelectsCase(t *testing.T) {
	g, err := NewGenerator(testConfig())
	require.NoError(t, err)

	// Seeds congruent modulo the battery size give the same snapshot.
	a, err := g.Generate(0, sim.ModeBoundary)
	require.NoError(t, err)
	b, err := g.Generate(int64(NumBoundaryCases), sim.ModeBoundary)
	require.NoError(t, err)
	assert.Equal(t, a.Snapshot, b.Snapshot)

	assert.Equal(t, BoundaryCaseName(0), BoundaryCaseName(int64(NumBoundaryCases)))
}

func TestBoundary_CoversKnownEdgeValues(t *testing.T) {
	params := testConfig().Params
	g, err := NewGenerator(testConfig())
	require.NoError(t, err)

	var (
		sawEmpty         bool
		sawZeroStake     bool
		sawAtCeiling     bool
		sawAtThreshold   bool
		sawPastThreshold bool
	)
	for seed := int64(0); seed < int64(NumBoundaryCases); seed++ {
		scen, err := g.Generate(seed, sim.ModeBoundary)
		require.NoError(t, err)
		snap := scen.Snapshot

		if snap.NumPublishers() == 0 {
			sawEmpty = true
		}
		snap.ForEach(func(e sim.StakeEntry) {
			switch e.Stake {
			case 0:
				sawZeroStake = true
			case params.Ceiling:
				sawAtCeiling = true
			case params.M:
				sawAtThreshold = true
			case params.M + 1:
				sawPastThreshold = true
			}
		})
	}
	assert.True(t, sawEmpty, "no empty snapshot in boundary battery")
	assert.True(t, sawZeroStake, "no zero-stake publisher in boundary battery")
	assert.True(t, sawAtCeiling, "no stake exactly at ceiling")
	assert.True(t, sawAtThreshold, "no total exactly at threshold M")
	assert.True(t, sawPastThreshold, "no total just past threshold M")
}

func TestBoundary_EveryCaseSurvivesPipeline(t *testing.T) {
	g, err := NewGenerator(testConfig())
	require.NoError(t, err)

	for seed := int64(0); seed < int64(NumBoundaryCases); seed++ {
		scen, err := g.Generate(seed, sim.ModeBoundary)
		require.NoError(t, err, "case %s", BoundaryCaseName(seed))

		caps, err := sim.DeriveCaps(scen.Snapshot, scen.Params)
		require.NoError(t, err, "case %s", BoundaryCaseName(seed))

		violations := sim.CheckInvariants(scen.Snapshot, scen.Params, caps)
		assert.Empty(t, violations, "case %s", BoundaryCaseName(seed))
	}
}
