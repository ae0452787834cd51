package sim

import "fmt"

// Default parameter values, matching the on-chain stake_caps_parameters
// program defaults.
const (
	DefaultM       uint64 = 1_800_000_000_000
	DefaultZ       uint64 = 10
	DefaultCeiling uint64 = 1_000_000_000_000
	DefaultFloor   uint64 = 1_000_000
)

// CapParameters are the tunable inputs to cap derivation. They come from
// configuration, never from computation.
type CapParameters struct {
	// Ceiling is the largest cap any publisher may be assigned.
	Ceiling uint64 `yaml:"ceiling"`

	// Floor is the smallest cap any publisher may be assigned.
	Floor uint64 `yaml:"floor"`

	// M is the network-wide stake threshold below which the curve is
	// neutral and every cap equals Ceiling. Must be >= 1.
	M uint64 `yaml:"m"`

	// Z controls how aggressively caps shrink once total stake exceeds M:
	// the reduction half-saturates at an excess of M/Z, so larger Z means
	// a steeper curve. Must be >= 1.
	Z uint64 `yaml:"z"`
}

// DefaultCapParameters returns the production defaults.
func DefaultCapParameters() CapParameters {
	return CapParameters{
		Ceiling: DefaultCeiling,
		Floor:   DefaultFloor,
		M:       DefaultM,
		Z:       DefaultZ,
	}
}

// Validate checks the parameters are inside their defined domain.
func (p CapParameters) Validate() error {
	if p.Floor > p.Ceiling {
		return fmt.Errorf("%w: floor %d exceeds ceiling %d", ErrInvalidParameters, p.Floor, p.Ceiling)
	}
	if p.M < 1 {
		return fmt.Errorf("%w: M must be >= 1, got %d", ErrInvalidParameters, p.M)
	}
	if p.Z < 1 {
		return fmt.Errorf("%w: Z must be >= 1, got %d", ErrInvalidParameters, p.Z)
	}
	return nil
}
