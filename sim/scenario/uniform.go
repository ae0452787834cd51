package scenario

import (
	"github.com/ilya-bobyr/pythnet-heisenberg/sim"
	"github.com/ilya-bobyr/pythnet-heisenberg/sim/rng"
)

// uniform samples publisher count and every stake independently from the
// configured ranges.
func (g *Generator) uniform(seq *rng.Sequence) (*sim.AccountSnapshot, error) {
	r := g.cfg.Ranges
	b := sim.NewSnapshotBuilder(slotFor(seq))

	count := seq.IntRange(r.PublishersMin, r.PublishersMax)
	used := make(map[sim.PublisherKey]struct{}, count)
	for i := 0; i < count; i++ {
		key := randomKey(seq, used)
		b.Add(key, seq.Uint64Range(r.StakeMin, r.StakeMax))
	}
	return b.Build()
}
