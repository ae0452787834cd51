package scenario

import (
	"github.com/ilya-bobyr/pythnet-heisenberg/sim"
	"github.com/ilya-bobyr/pythnet-heisenberg/sim/rng"
)

// clusterSpreadDivisor bounds per-publisher deviation to mean/8 around
// the cluster mean.
const clusterSpreadDivisor = 8

// clustered partitions publishers into a few groups, samples a mean per
// group and a deviation per publisher. Models cartel-like stake
// concentration.
func (g *Generator) clustered(seq *rng.Sequence) (*sim.AccountSnapshot, error) {
	r := g.cfg.Ranges
	b := sim.NewSnapshotBuilder(slotFor(seq))

	numClusters := seq.IntRange(r.ClustersMin, r.ClustersMax)
	means := make([]uint64, numClusters)
	for i := range means {
		means[i] = seq.Uint64Range(r.StakeMin, r.StakeMax)
	}

	count := seq.IntRange(r.PublishersMin, r.PublishersMax)
	used := make(map[sim.PublisherKey]struct{}, count)
	for i := 0; i < count; i++ {
		key := randomKey(seq, used)
		mean := means[seq.Uint64n(uint64(numClusters))]

		stake := mean
		if spread := mean / clusterSpreadDivisor; spread > 0 {
			// Deviation in [-spread, +spread], then clamped back into
			// the configured stake range. Saturate instead of wrapping
			// for means near the top of the uint64 range.
			base := mean - spread
			stake = base + seq.Uint64Range(0, 2*spread)
			if stake < base {
				stake = r.StakeMax
			}
		}
		if stake < r.StakeMin {
			stake = r.StakeMin
		}
		if stake > r.StakeMax {
			stake = r.StakeMax
		}
		b.Add(key, stake)
	}
	return b.Build()
}
