package experiments

import (
	"fmt"

	"pvmcts/engine"
	"pvmcts/experiments/metrics"
	"pvmcts/game"
	"pvmcts/game/tictactoe"
	"pvmcts/meta"
	"pvmcts/searcher"
	"pvmcts/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const NumGames = 30 // Per match up

type Settings struct {
	Games      int // Per match up
	Parallel   int // Games of a match up played at once
	OutputDir  string
	Seed       uint64 // 0 seeds every search from the clock
	WalkTarget int    // Only used by the throughput experiment
}

func DefaultSettings() Settings {
	return Settings{Games: NumGames, Parallel: 1, OutputDir: "results", WalkTarget: 50}
}

type gameResult struct {
	record metrics.GameRecord
	moves  []metrics.MoveMetric
}

// playFunc runs one game with one agent per config and returns its outcome.
type playFunc func(configs []metrics.AgentConfig, seed uint64) (string, metrics.GameMetric, []metrics.MoveMetric, error)

var baseline = metrics.AgentConfig{
	ID:          0,
	Simulations: meta.Simulations,
	MaxSteps:    meta.MaxSteps,
	Exploration: meta.Exploration,
	Temperature: meta.Temperature,
}

// Run starts the experiment called name and returns the directory holding
// its records.
func Run(name string, settings Settings) (string, error) {
	switch name {
	case "simulations":
		return RunSimulationsExperiment(settings)
	case "exploration":
		return RunExplorationExperiment(settings)
	case "throughput":
		return RunThroughputExperiment(settings)
	}
	return "", fmt.Errorf("unknown experiment %q", name)
}

// RunSimulationsExperiment pairs agents with different simulation budgets
// against the baseline agent at tic-tac-toe.
func RunSimulationsExperiment(settings Settings) (string, error) {
	configs := []metrics.AgentConfig{}
	for i, simulations := range []int{10, 50, 200, 400} {
		config := baseline
		config.ID = i + 1
		config.Simulations = simulations
		configs = append(configs, config)
	}
	return runAgainstBaseline("simulations", settings, configs)
}

// RunExplorationExperiment pairs agents with different exploration weights
// against the baseline agent at tic-tac-toe.
func RunExplorationExperiment(settings Settings) (string, error) {
	configs := []metrics.AgentConfig{}
	for i, c := range []float64{0.5, 2, 10, 40} {
		config := baseline
		config.ID = i + 1
		config.Exploration = c
		configs = append(configs, config)
	}
	return runAgainstBaseline("exploration", settings, configs)
}

func runAgainstBaseline(name string, settings Settings, configs []metrics.AgentConfig) (string, error) {
	// Each matchup pairs the baseline agent against a candidate agent
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return runExperiment(name, settings, append(configs, baseline), matchUps, playTicTacToe)
}

func playTicTacToe(configs []metrics.AgentConfig, seed uint64) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	return runGame[tictactoe.State](tictactoe.New(), tictactoe.NewState(), configs, seed)
}

func runExperiment(name string, settings Settings, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, play playFunc) (string, error) {
	if settings.Games <= 0 {
		return "", fmt.Errorf("games per match up must be positive, got %d", settings.Games)
	}

	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between %+v...", mi+1, len(matchUps), matchup)

		games := make([]gameResult, settings.Games)
		g := errgroup.Group{}
		g.SetLimit(max(settings.Parallel, 1))
		for i := range games {
			id := count + i + 1
			g.Go(func() error {
				// Alternate the starting agent
				players := matchup
				if i%2 == 1 && len(matchup) == 2 {
					players = []metrics.AgentConfig{matchup[1], matchup[0]}
				}
				seed := uint64(0)
				if settings.Seed != 0 {
					seed = settings.Seed + uint64(id)
				}

				winner, gameMetric, moveMetrics, err := play(players, seed)
				if err != nil {
					return fmt.Errorf("matchup %d game %d failed: %w", mi+1, i+1, err)
				}
				games[i] = gameResult{
					record: metrics.GameRecord{
						ID:         id,
						Agent1:     players[0].ID,
						Agent2:     players[len(players)-1].ID,
						GameMetric: gameMetric,
					},
					moves: moveMetrics,
				}

				log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, winner)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return "", err
		}

		for _, result := range games {
			gameRecords = append(gameRecords, result.record)
			for _, mm := range result.moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       result.record.ID,
					MoveMetric: mm,
				})
			}
		}
		count += settings.Games
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	return store(name, settings.OutputDir, configs, gameRecords, moveRecords)
}

func store(name, root string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runGame executes a single game with one agent per config
func runGame[S any](g game.Game[S], start S, configs []metrics.AgentConfig, seed uint64) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	agents := make([]agent.Agent[S], len(configs))
	for i, config := range configs {
		agentSeed := seed
		if seed != 0 {
			agentSeed += uint64(i)
		}
		agents[i] = createAgent[S](config, agentSeed)
	}
	e := engine.NewLocalEngine(g, start, agents)

	return e.Run()
}

func createAgent[S any](config metrics.AgentConfig, seed uint64) agent.Agent[S] {
	// Every field is passed as is, invalid values fail the first search
	options := []searcher.Option{
		searcher.WithSimulations(config.Simulations),
		searcher.WithMaxSteps(config.MaxSteps),
		searcher.WithExploration(config.Exploration),
		searcher.WithTemperature(config.Temperature),
	}
	if seed != 0 {
		options = append(options, searcher.WithSeed(seed))
	}

	options = append(options, searcher.WithMetrics())
	if config.Training {
		return agent.NewTrainingAgent[S](seed, options...)
	}
	return agent.NewEvaluationAgent[S](options...)
}
