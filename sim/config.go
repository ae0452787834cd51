package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ilya-bobyr/pythnet-heisenberg/sim/rng"
)

// ModeWeight is one entry of the generator mode mix.
type ModeWeight struct {
	Mode   Mode `yaml:"mode"`
	Weight int  `yaml:"weight"`
}

// RunConfig configures one simulation run. Loaded from YAML and/or
// assembled from CLI flags; validated by Runner.Run before any trial
// executes.
type RunConfig struct {
	// Trials is the number of pipeline passes to execute.
	Trials int `yaml:"trials"`

	// Seed is the master seed; every trial's seed derives from it and
	// the trial index alone.
	Seed int64 `yaml:"seed"`

	// Algorithm selects the rng algorithm ("legacy" or "pcg").
	// Empty means rng.DefaultAlgorithm.
	Algorithm rng.Algorithm `yaml:"algorithm"`

	// Workers bounds trial parallelism. Zero or negative means one
	// worker per CPU.
	Workers int `yaml:"workers"`

	// ModeMix is the relative weight per generator mode. Empty means
	// all modes with equal weight.
	ModeMix []ModeWeight `yaml:"mode_mix"`

	// Params are the cap parameters supplied to every scenario.
	Params CapParameters `yaml:"params"`

	// Ranges are the generator sampling ranges.
	Ranges GeneratorRanges `yaml:"ranges"`
}

// DefaultRunConfig returns a runnable config with production parameter
// defaults and an even mode mix.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Trials:    10_000,
		Seed:      42,
		Algorithm: rng.DefaultAlgorithm,
		Params:    DefaultCapParameters(),
		Ranges:    DefaultGeneratorRanges(),
	}
}

// Validate checks everything that must hold before the first trial.
func (c RunConfig) Validate() error {
	if c.Trials < 1 {
		return fmt.Errorf("%w: trials must be >= 1, got %d", ErrInvalidGeneratorConfig, c.Trials)
	}
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if err := c.Ranges.Validate(); err != nil {
		return err
	}
	totalWeight := 0
	for _, mw := range c.ModeMix {
		if _, err := ParseMode(string(mw.Mode)); err != nil {
			return err
		}
		if mw.Weight < 0 {
			return fmt.Errorf("%w: mode %q has negative weight %d",
				ErrInvalidGeneratorConfig, mw.Mode, mw.Weight)
		}
		totalWeight += mw.Weight
	}
	if len(c.ModeMix) > 0 && totalWeight == 0 {
		return fmt.Errorf("%w: mode mix weights sum to zero", ErrInvalidGeneratorConfig)
	}
	return nil
}

// modeFor picks the generator mode for one trial index by walking the
// cumulative weights over trial % totalWeight. Deterministic, and
// independent of every other trial.
func (c RunConfig) modeFor(trial int) Mode {
	mix := c.ModeMix
	if len(mix) == 0 {
		mix = make([]ModeWeight, len(AllModes))
		for i, m := range AllModes {
			mix[i] = ModeWeight{Mode: m, Weight: 1}
		}
	}
	total := 0
	for _, mw := range mix {
		total += mw.Weight
	}
	slot := trial % total
	for _, mw := range mix {
		if slot < mw.Weight {
			return mw.Mode
		}
		slot -= mw.Weight
	}
	return mix[len(mix)-1].Mode
}

// LoadRunConfig reads a RunConfig from a YAML file, layered over
// DefaultRunConfig so omitted fields keep their defaults.
func LoadRunConfig(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading run config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing run config %s: %w", path, err)
	}
	return cfg, nil
}
