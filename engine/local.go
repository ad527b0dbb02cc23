package engine

import (
	"fmt"
	"time"

	"pvmcts/experiments/metrics"
	"pvmcts/game"
	"pvmcts/meta"
	"pvmcts/searcher/agent"

	"github.com/rs/zerolog/log"
)

// LocalEngine plays a game in process with one agent per player. Single
// agent problems pass one agent, which then plays every move.
type LocalEngine[S any] struct {
	game     game.Game[S]
	state    S
	agents   []agent.Agent[S]
	maxMoves int
}

type LocalOption[S any] func(e *LocalEngine[S])

// WithMaxMoves stops the game as undecided after moves moves.
func WithMaxMoves[S any](moves int) LocalOption[S] {
	return func(e *LocalEngine[S]) {
		e.maxMoves = moves
	}
}

// NewLocalEngine plays g from start. agents[0] plays for the player to move
// at start, the rest follow in player order.
func NewLocalEngine[S any](g game.Game[S], start S, agents []agent.Agent[S], options ...LocalOption[S]) *LocalEngine[S] {
	if len(agents) == 0 {
		panic("need at least one agent")
	}

	e := &LocalEngine[S]{
		game:     g,
		state:    start,
		agents:   agents,
		maxMoves: meta.MaxMoves,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *LocalEngine[S]) State() S {
	return e.state
}

// Run executes the entire game loop until a winner is found.
func (e *LocalEngine[S]) Run() (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	startTime := time.Now()
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.game.Player(e.state),
		StartTime:      startTime,
	}
	moveMetrics := []metrics.MoveMetric{}

	log.Info().Msgf("player %d is starting", gameMetric.StartingPlayer)

	step := 1
	for e.game.Winner(e.state) == "" && step <= e.maxMoves {
		player := e.game.Player(e.state)
		a := e.agents[agentIndex(player-gameMetric.StartingPlayer, len(e.agents))]

		evaluator := e.game.Evaluator(e.state)
		if evaluator.NumActions(e.state) == 0 {
			log.Info().Msgf("player %d has no legal move at step %d", player, step)
			break
		}

		action, searchMetric, err := a.FindMove(evaluator)
		if err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("player %d failed to find a move at step %d: %w", player, step, err)
		}
		next, err := evaluator.NewState(action, e.state)
		if err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("player %d played an illegal move at step %d: %w", player, step, err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Action:       action,
			SearchMetric: searchMetric,
		})
		log.Debug().Int("step", step).Int("player", player).Int("action", action).Msg("move played")

		e.state = next
		step++
	}

	winner := e.game.Winner(e.state)
	if winner != "" {
		log.Info().Msgf("game ended with winner %s after %d moves", winner, len(moveMetrics))
	} else {
		log.Info().Msgf("game stopped after %d moves without a winner", len(moveMetrics))
	}

	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(startTime)
	gameMetric.TotalMoves = len(moveMetrics)
	return winner, gameMetric, moveMetrics, nil
}

func agentIndex(offset, agents int) int {
	index := offset % agents
	if index < 0 {
		index += agents
	}
	return index
}
