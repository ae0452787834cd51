package scenario

import "github.com/ilya-bobyr/pythnet-heisenberg/sim"

func init() {
	sim.NewScenarioGeneratorFunc = func(cfg sim.GeneratorConfig) (sim.ScenarioGenerator, error) {
		return NewGenerator(cfg)
	}
}
