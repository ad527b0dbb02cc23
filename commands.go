package main

import (
	"fmt"
	"strings"

	"pvmcts/config"
	"pvmcts/engine"
	"pvmcts/experiments"
	"pvmcts/game"
	"pvmcts/game/tictactoe"
	"pvmcts/game/walk"
	"pvmcts/searcher"
	"pvmcts/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	training   bool
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:   "pvmcts",
		Short: "Policy and value guided Monte Carlo tree search",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			level, err := cfg.Level()
			if err != nil {
				return err
			}
			zerolog.SetGlobalLevel(level)
			log.Debug().Str("config", configPath).Msg("configuration loaded")
			return nil
		},
		SilenceUsage: true,
	}
	searchCmd = &cobra.Command{
		Use:   "search",
		Short: "Runs one search from the configured start and prints the root distribution",
		Args:  cobra.NoArgs,
		RunE:  runSearchCommand,
	}
	selfPlayCmd = &cobra.Command{
		Use:   "selfplay",
		Short: "Plays the configured game to the end with searching agents",
		Args:  cobra.NoArgs,
		RunE:  runSelfPlayCommand,
	}
	experimentCmd = &cobra.Command{
		Use:   "experiment [simulations|exploration|throughput]",
		Short: "Runs a batch of games and writes agent, game and move records as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  runExperimentCommand,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	selfPlayCmd.Flags().BoolVar(&training, "training", false, "Sample moves from the search distribution instead of playing the most visited one")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(selfPlayCmd)
	rootCmd.AddCommand(experimentCmd)
}

func runSearchCommand(cmd *cobra.Command, args []string) error {
	options, err := cfg.Options()
	if err != nil {
		return err
	}

	switch cfg.Game.Name {
	case "tictactoe":
		return printSearch[tictactoe.State](cmd, tictactoe.New(), tictactoe.NewState(), options)
	default:
		return printSearch[walk.State](cmd, walk.New(cfg.Game.Target), walk.State{Position: cfg.Game.Start}, options)
	}
}

func printSearch[S any](cmd *cobra.Command, g game.Game[S], start S, options []searcher.Option) error {
	mcts, err := searcher.NewMCTS(g.Evaluator(start), options...)
	if err != nil {
		return err
	}
	result, err := mcts.Search()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for action, prob := range result.Probabilities {
		fmt.Fprintf(out, "%d\t%.4f\n", action, prob)
	}
	log.Info().
		Int("nodes", result.Metric.Nodes).
		Int("max_depth", result.Metric.MaxDepth).
		Dur("duration", result.Metric.Duration).
		Msg("search finished")
	return nil
}

func runSelfPlayCommand(cmd *cobra.Command, args []string) error {
	options, err := cfg.Options()
	if err != nil {
		return err
	}

	switch cfg.Game.Name {
	case "tictactoe":
		agents := []agent.Agent[tictactoe.State]{newAgent[tictactoe.State](options, 1), newAgent[tictactoe.State](options, 2)}
		return playGame(cmd, engine.NewLocalEngine[tictactoe.State](tictactoe.New(), tictactoe.NewState(), agents))
	default:
		agents := []agent.Agent[walk.State]{newAgent[walk.State](options, 1)}
		return playGame(cmd, engine.NewLocalEngine[walk.State](walk.New(cfg.Game.Target), walk.State{Position: cfg.Game.Start}, agents))
	}
}

func newAgent[S any](options []searcher.Option, index uint64) agent.Agent[S] {
	if !training {
		return agent.NewEvaluationAgent[S](options...)
	}
	seed := cfg.Search.Seed
	if seed != 0 {
		seed += index
	}
	return agent.NewTrainingAgent[S](seed, options...)
}

func playGame(cmd *cobra.Command, e engine.Engine) error {
	winner, gameMetric, moveMetrics, err := e.Run()
	if err != nil {
		return err
	}

	actions := make([]string, len(moveMetrics))
	for i, mm := range moveMetrics {
		actions[i] = fmt.Sprint(mm.Action)
	}
	if winner == "" {
		winner = "none"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "winner: %s\nmoves: %s\nduration: %s\n",
		winner, strings.Join(actions, " "), gameMetric.Duration)
	return nil
}

func runExperimentCommand(cmd *cobra.Command, args []string) error {
	dir, err := experiments.Run(args[0], cfg.Settings())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "records written to %s\n", dir)
	return nil
}
