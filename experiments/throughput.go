package experiments

import (
	"pvmcts/experiments/metrics"
	"pvmcts/game/walk"
)

// RunThroughputExperiment plays the walk puzzle alone with growing
// simulation budgets. The move records show how search time and tree size
// scale with the budget.
func RunThroughputExperiment(settings Settings) (string, error) {
	configs := []metrics.AgentConfig{}
	for i, simulations := range []int{10, 100, 1000, 10000} {
		config := baseline
		config.ID = i + 1
		config.Simulations = simulations
		configs = append(configs, config)
	}

	// Single agent match ups
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{config})
	}

	target := settings.WalkTarget
	if target <= 0 {
		target = DefaultSettings().WalkTarget
	}
	w := walk.New(target)
	playWalk := func(configs []metrics.AgentConfig, seed uint64) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
		return runGame[walk.State](w, walk.State{Position: 1}, configs, seed)
	}

	return runExperiment("throughput", settings, configs, matchUps, playWalk)
}
