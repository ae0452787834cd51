package sim_test

// Blank import triggers sim/scenario's init(), which registers
// NewScenarioGeneratorFunc. This allows package sim's internal test files
// to run the full trial pipeline without directly importing sim/scenario
// (which would create an import cycle).
import _ "github.com/ilya-bobyr/pythnet-heisenberg/sim/scenario"
