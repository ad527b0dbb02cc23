package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"pvmcts/experiments/metrics"
	"pvmcts/game/walk"
	"pvmcts/searcher"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRunExperiment(t *testing.T) {
	t.Run("records every game and move", func(t *testing.T) {
		small := metrics.AgentConfig{ID: 1, Simulations: 5, MaxSteps: 2, Exploration: 10, Temperature: 1}
		large := metrics.AgentConfig{ID: 2, Simulations: 20, MaxSteps: 3, Exploration: 10, Temperature: 1, Training: true}
		settings := Settings{Games: 2, OutputDir: t.TempDir(), Seed: 5}

		dir, err := runExperiment("test", settings, []metrics.AgentConfig{small, large},
			[][]metrics.AgentConfig{{small, large}}, playTicTacToe)
		require.NoError(t, err)

		configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
		require.Len(t, configs, 3)
		require.Equal(t, "id", configs[0][0])

		games := readCSV(t, filepath.Join(dir, "game_records.csv"))
		require.Len(t, games, 3)
		require.Equal(t, []string{"1", "1", "2"}, games[1][:3])
		require.Equal(t, []string{"2", "2", "1"}, games[2][:3], "Second game should swap the starting agent")

		moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
		require.GreaterOrEqual(t, len(moves), 1+2*5, "A tic-tac-toe game takes at least five moves")
	})

	t.Run("parallel games keep their order", func(t *testing.T) {
		config := metrics.AgentConfig{ID: 1, Simulations: 5, MaxSteps: 2, Exploration: 10, Temperature: 1}
		settings := Settings{Games: 4, Parallel: 4, OutputDir: t.TempDir(), Seed: 9}

		dir, err := runExperiment("test", settings, []metrics.AgentConfig{config},
			[][]metrics.AgentConfig{{config, config}, {config, config}}, playTicTacToe)
		require.NoError(t, err)

		games := readCSV(t, filepath.Join(dir, "game_records.csv"))
		require.Len(t, games, 9)
		for i, row := range games[1:] {
			require.Equal(t, strconv.Itoa(i+1), row[0])
		}
	})

	t.Run("rejecting empty experiments", func(t *testing.T) {
		_, err := runExperiment("test", Settings{OutputDir: t.TempDir()}, nil, nil, playTicTacToe)
		require.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	_, err := Run("unknown", DefaultSettings())
	require.Error(t, err)
}

func TestCreateAgent(t *testing.T) {
	evaluator := walk.New(6).Evaluator(walk.State{Position: 1})

	t.Run("zero exploration is kept", func(t *testing.T) {
		config := baseline
		config.Simulations = 10
		config.Exploration = 0

		_, metric, err := createAgent[walk.State](config, 1).FindMove(evaluator)

		require.NoError(t, err)
		require.Zero(t, metric.Exploration)
		require.Equal(t, 10, metric.Simulations)
	})

	t.Run("unset budget is an error", func(t *testing.T) {
		_, _, err := createAgent[walk.State](metrics.AgentConfig{ID: 1, Temperature: 1}, 1).FindMove(evaluator)
		require.ErrorIs(t, err, searcher.ErrInvalidArgument)
	})
}
