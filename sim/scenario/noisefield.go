package scenario

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/ilya-bobyr/pythnet-heisenberg/sim"
	"github.com/ilya-bobyr/pythnet-heisenberg/sim/rng"
)

// defaultNoiseFrequency is the publisher-to-publisher step in noise
// coordinates when the config leaves NoiseFrequency at zero.
const defaultNoiseFrequency = 0.1

// noiseField maps publisher index to a coordinate in a continuous
// simplex noise field, so adjacent publishers hold smoothly varying
// stakes. Used to probe continuity of the derivation curve under
// gradual input change.
func (g *Generator) noiseField(seq *rng.Sequence, seed int64) (*sim.AccountSnapshot, error) {
	r := g.cfg.Ranges
	b := sim.NewSnapshotBuilder(slotFor(seq))

	freq := r.NoiseFrequency
	if freq == 0 {
		freq = defaultNoiseFrequency
	}

	// Normalized noise yields values in [0, 1]; the second coordinate
	// offsets the sample line off the lattice origin.
	noise := opensimplex.NewNormalized(seed)
	yOffset := seq.Float64()

	count := seq.IntRange(r.PublishersMin, r.PublishersMax)
	used := make(map[sim.PublisherKey]struct{}, count)
	span := r.StakeMax - r.StakeMin
	for i := 0; i < count; i++ {
		key := randomKey(seq, used)

		v := noise.Eval2(float64(i)*freq, yOffset)
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		stake := r.StakeMin + uint64(v*float64(span))
		if stake > r.StakeMax {
			stake = r.StakeMax
		}
		b.Add(key, stake)
	}
	return b.Build()
}
