package scenario

import (
	"github.com/ilya-bobyr/pythnet-heisenberg/sim"
)

// boundaryCases is the fixed battery of edge-value snapshots. Each case
// builds a snapshot from the cap parameters; the seed only selects the
// case, so boundary mode is fully deterministic.
var boundaryCases = []struct {
	name  string
	build func(p sim.CapParameters, b *sim.SnapshotBuilder)
}{
	{"empty", func(p sim.CapParameters, b *sim.SnapshotBuilder) {}},
	{"single-zero-stake", func(p sim.CapParameters, b *sim.SnapshotBuilder) {
		b.Add(indexKey(0), 0)
	}},
	{"single-at-ceiling", func(p sim.CapParameters, b *sim.SnapshotBuilder) {
		b.Add(indexKey(0), p.Ceiling)
	}},
	{"single-at-threshold", func(p sim.CapParameters, b *sim.SnapshotBuilder) {
		b.Add(indexKey(0), p.M)
	}},
	{"single-past-threshold", func(p sim.CapParameters, b *sim.SnapshotBuilder) {
		b.Add(indexKey(0), p.M+1)
	}},
	{"single-holds-all", func(p sim.CapParameters, b *sim.SnapshotBuilder) {
		b.Add(indexKey(0), 4*p.M)
		for i := 1; i < 8; i++ {
			b.Add(indexKey(i), 0)
		}
	}},
	{"equal-split-at-threshold", func(p sim.CapParameters, b *sim.SnapshotBuilder) {
		for i := 0; i < 8; i++ {
			b.Add(indexKey(i), p.M/8)
		}
	}},
	{"equal-split-past-threshold", func(p sim.CapParameters, b *sim.SnapshotBuilder) {
		for i := 0; i < 8; i++ {
			b.Add(indexKey(i), p.M/8+1)
		}
	}},
}

// NumBoundaryCases is the size of the boundary battery; seeds select
// cases modulo this count.
var NumBoundaryCases = len(boundaryCases)

// boundary deterministically builds the edge-value snapshot selected by
// the seed.
func (g *Generator) boundary(seed int64) (*sim.AccountSnapshot, error) {
	idx := int(uint64(seed) % uint64(len(boundaryCases)))
	c := boundaryCases[idx]

	b := sim.NewSnapshotBuilder(uint64(idx))
	c.build(g.cfg.Params, b)
	return b.Build()
}

// BoundaryCaseName names the boundary case a seed selects, for trial
// reporting.
func BoundaryCaseName(seed int64) string {
	return boundaryCases[uint64(seed)%uint64(len(boundaryCases))].name
}
