package sim

import (
	"fmt"

	"github.com/ilya-bobyr/pythnet-heisenberg/sim/rng"
)

// Mode selects a scenario generation strategy.
type Mode string

const (
	// ModeUniform samples publisher count and stakes independently from
	// the configured ranges.
	ModeUniform Mode = "uniform"

	// ModeClustered groups publishers around a few sampled means,
	// modeling cartel-like stake concentration.
	ModeClustered Mode = "clustered"

	// ModeNoiseField maps publisher index through a continuous simplex
	// noise field, probing the curve under smoothly varying stakes.
	ModeNoiseField Mode = "noise-field"

	// ModeBoundary deterministically constructs known edge-value
	// snapshots; the seed selects the case, nothing is randomized.
	ModeBoundary Mode = "boundary"
)

// AllModes lists every generator mode.
var AllModes = []Mode{ModeUniform, ModeClustered, ModeNoiseField, ModeBoundary}

// ParseMode validates a mode name from config or CLI.
func ParseMode(s string) (Mode, error) {
	for _, m := range AllModes {
		if Mode(s) == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown generator mode %q", ErrInvalidGeneratorConfig, s)
}

// GeneratorRanges are the sampling ranges for synthetic snapshots.
type GeneratorRanges struct {
	PublishersMin int `yaml:"publishers_min"`
	PublishersMax int `yaml:"publishers_max"`

	StakeMin uint64 `yaml:"stake_min"`
	StakeMax uint64 `yaml:"stake_max"`

	// Clustered mode: number of stake clusters to sample.
	ClustersMin int `yaml:"clusters_min"`
	ClustersMax int `yaml:"clusters_max"`

	// Noise-field mode: distance between adjacent publishers in noise
	// coordinates. Smaller values give smoother stake gradients.
	// Defaults to 0.1 when zero.
	NoiseFrequency float64 `yaml:"noise_frequency"`
}

// DefaultGeneratorRanges returns ranges that exercise the curve around
// the default M threshold.
func DefaultGeneratorRanges() GeneratorRanges {
	return GeneratorRanges{
		PublishersMin:  1,
		PublishersMax:  128,
		StakeMin:       0,
		StakeMax:       2 * DefaultM,
		ClustersMin:    1,
		ClustersMax:    5,
		NoiseFrequency: 0.1,
	}
}

// Validate checks the ranges are non-empty and not inverted.
func (r GeneratorRanges) Validate() error {
	if r.PublishersMin < 0 {
		return fmt.Errorf("%w: publishers_min %d is negative", ErrInvalidGeneratorConfig, r.PublishersMin)
	}
	if r.PublishersMin > r.PublishersMax {
		return fmt.Errorf("%w: publishers range [%d, %d] inverted",
			ErrInvalidGeneratorConfig, r.PublishersMin, r.PublishersMax)
	}
	if r.StakeMin > r.StakeMax {
		return fmt.Errorf("%w: stake range [%d, %d] inverted",
			ErrInvalidGeneratorConfig, r.StakeMin, r.StakeMax)
	}
	if r.ClustersMin < 1 {
		return fmt.Errorf("%w: clusters_min must be >= 1, got %d", ErrInvalidGeneratorConfig, r.ClustersMin)
	}
	if r.ClustersMin > r.ClustersMax {
		return fmt.Errorf("%w: clusters range [%d, %d] inverted",
			ErrInvalidGeneratorConfig, r.ClustersMin, r.ClustersMax)
	}
	if r.NoiseFrequency < 0 {
		return fmt.Errorf("%w: noise_frequency %f is negative", ErrInvalidGeneratorConfig, r.NoiseFrequency)
	}
	return nil
}

// GeneratorConfig is everything a ScenarioGenerator needs: sampling
// ranges, the cap parameters carried verbatim into each scenario, and the
// rng algorithm identifier recorded for replay.
type GeneratorConfig struct {
	Ranges    GeneratorRanges
	Params    CapParameters
	Algorithm rng.Algorithm
}

// Scenario is one generated derivation input, kept reproducible: the same
// (Seed, Mode, Algorithm) always regenerates a byte-identical Scenario.
type Scenario struct {
	Seed      int64
	Mode      Mode
	Algorithm rng.Algorithm
	Snapshot  *AccountSnapshot
	Params    CapParameters
}

// ScenarioGenerator produces scenarios from a seed and a requested mode.
type ScenarioGenerator interface {
	Generate(seed int64, mode Mode) (*Scenario, error)
}

// NewScenarioGeneratorFunc is set by the scenario sub-package's init().
// Import sim/scenario (blank import is enough) before constructing a
// Runner.
var NewScenarioGeneratorFunc func(GeneratorConfig) (ScenarioGenerator, error)
