// Package sim provides the core stake-cap derivation engine and the
// simulation harness that validates it.
//
// # Reading Guide
//
// Start with these three files to understand the pipeline:
//   - snapshot.go: AccountSnapshot, the immutable publisher stake view
//   - derive.go: DeriveCaps, the pure anti-concentration policy
//   - runner.go: the trial loop tying generation, derivation and
//     invariant checking together
//
// # Architecture
//
// The sim package defines the value types and contracts; implementations
// live in sub-packages:
//   - sim/scenario/: synthetic snapshot generators (uniform, clustered,
//     noise-field, boundary)
//   - sim/rng/: seeded pseudo-random sequences (legacy and PCG algorithms)
//   - sim/ledger/: loading real snapshots from ledger account dumps
//
// The scenario sub-package registers its generator via an init() function
// that sets the package-level factory variable NewScenarioGeneratorFunc.
//
// # Determinism
//
// Every trial is a pure computation over its own seed: trial N's seed is
// derived from the master seed and N alone, so any failing trial replays
// bit-exactly in isolation, on any worker count.
package sim
