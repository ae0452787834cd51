// Package scenario implements the synthetic snapshot generators behind
// the simulation harness. It registers itself with the sim package via
// init(); see register.go.
package scenario

import (
	"encoding/binary"
	"fmt"

	"github.com/ilya-bobyr/pythnet-heisenberg/sim"
	"github.com/ilya-bobyr/pythnet-heisenberg/sim/rng"
)

// Generator produces scenarios for every sim.Mode. Safe for concurrent
// use: all state lives in the per-call Sequence.
type Generator struct {
	cfg sim.GeneratorConfig
}

// NewGenerator validates the config and builds a Generator.
func NewGenerator(cfg sim.GeneratorConfig) (*Generator, error) {
	if err := cfg.Ranges.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = rng.DefaultAlgorithm
	}
	return &Generator{cfg: cfg}, nil
}

// Generate produces the scenario for (seed, mode). Byte-identical for
// identical arguments.
func (g *Generator) Generate(seed int64, mode sim.Mode) (*sim.Scenario, error) {
	seq, err := rng.New(g.cfg.Algorithm, seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sim.ErrInvalidGeneratorConfig, err)
	}

	var snapshot *sim.AccountSnapshot
	switch mode {
	case sim.ModeUniform:
		snapshot, err = g.uniform(seq)
	case sim.ModeClustered:
		snapshot, err = g.clustered(seq)
	case sim.ModeNoiseField:
		snapshot, err = g.noiseField(seq, seed)
	case sim.ModeBoundary:
		snapshot, err = g.boundary(seed)
	default:
		return nil, fmt.Errorf("%w: unknown generator mode %q", sim.ErrInvalidGeneratorConfig, mode)
	}
	if err != nil {
		return nil, err
	}

	return &sim.Scenario{
		Seed:      seed,
		Mode:      mode,
		Algorithm: g.cfg.Algorithm,
		Snapshot:  snapshot,
		Params:    g.cfg.Params,
	}, nil
}

// randomKey draws a fresh publisher key from the sequence, redrawing on
// the (vanishingly unlikely) collision with an already used key so the
// snapshot builder never sees duplicates.
func randomKey(seq *rng.Sequence, used map[sim.PublisherKey]struct{}) sim.PublisherKey {
	for {
		var key sim.PublisherKey
		for i := 0; i < len(key); i += 8 {
			binary.BigEndian.PutUint64(key[i:], seq.Uint64())
		}
		if _, dup := used[key]; !dup {
			used[key] = struct{}{}
			return key
		}
	}
}

// indexKey builds the fixed publisher key for boundary-mode index i.
func indexKey(i int) sim.PublisherKey {
	var key sim.PublisherKey
	binary.BigEndian.PutUint64(key[24:], uint64(i)+1)
	return key
}

// slotFor derives a deterministic snapshot slot from the sequence.
func slotFor(seq *rng.Sequence) uint64 {
	return seq.Uint64n(1 << 40)
}
