package searcher

import (
	"fmt"
	"math"

	"pvmcts/experiments/metrics"
	"pvmcts/game"

	"github.com/rs/zerolog/log"
)

// MCTS searches the problem described by an Evaluator. It keeps no state
// between searches, so several Search calls may run at once provided the
// Evaluator allows it.
type MCTS[S any] struct {
	evaluator game.Evaluator[S]
	args      args
}

type Result[S any] struct {
	// Probabilities over the root's actions, in action order
	Probabilities []float64
	// Tree built by the search, handed over to the caller
	Tree   *Tree[S]
	Metric metrics.SearchMetric
}

func NewMCTS[S any](evaluator game.Evaluator[S], options ...Option) (*MCTS[S], error) {
	if evaluator == nil {
		panic("evaluator cannot be nil")
	}

	a := defaultArgs()
	for _, option := range options {
		option(&a)
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	return &MCTS[S]{evaluator: evaluator, args: a}, nil
}

func (m *MCTS[S]) Evaluator() game.Evaluator[S] {
	return m.evaluator
}

// Search builds a fresh tree from the evaluator's root and returns the
// temperature-adjusted visit distribution of the root's actions. Options
// override the engine's configuration for this call only.
func (m *MCTS[S]) Search(options ...Option) (Result[S], error) {
	a := m.args
	for _, option := range options {
		option(&a)
	}
	if err := a.validate(); err != nil {
		return Result[S]{}, err
	}

	s := &search[S]{
		evaluator: m.evaluator,
		args:      a,
		tree:      newTree[S](a.capacity()),
		rand:      a.source(),
		metrics:   a.collector(),
	}

	s.metrics.Start(a.simulations, a.maxSteps, a.exploration, a.temperature)
	for i := 0; i < a.simulations; i++ {
		if _, err := s.simulate(); err != nil {
			return Result[S]{}, fmt.Errorf("simulation %d: %w", i+1, err)
		}
	}
	metric := s.metrics.Complete()

	root := s.tree.Root()
	probs := adjustTemperature(root.Visits, a.temperature)

	log.Debug().
		Int("simulations", a.simulations).
		Int("max_steps", a.maxSteps).
		Int("nodes", s.tree.Len()).
		Floats64("probabilities", probs).
		Msg("search complete")

	return Result[S]{Probabilities: probs, Tree: s.tree, Metric: metric}, nil
}

// simulate runs one descent followed by one backup and returns where the
// descent stopped.
func (s *search[S]) simulate() (int, error) {
	fresh := s.tree.Len() == 0
	if fresh {
		if _, err := s.expandRoot(); err != nil {
			return noChild, fmt.Errorf("failed to expand root: %w", err)
		}
		if s.tree.Root().NumActions() == 0 {
			return noChild, ErrNoActions
		}
	}

	index, depth := rootID, 0
	for {
		node := s.tree.Node(index)
		if node.Terminal {
			bonus := s.args.bonus(node.NumActions(), s.args.maxSteps-depth)
			if !(bonus >= 0) || math.IsInf(bonus, 0) {
				return noChild, fmt.Errorf("%w: terminal bonus must be non-negative and finite, got %v", ErrInvalidArgument, bonus)
			}
			s.tree.addTerminalBonus(index, bonus)
			s.metrics.AddTerminalStop()
			break
		}
		// Expanding the root is the whole of the first descent
		if fresh {
			break
		}
		if depth == s.args.maxSteps {
			s.metrics.AddDepthStop()
			break
		}
		if node.NumActions() == 0 {
			s.metrics.AddDeadEnd()
			break
		}

		child, _, err := s.descend(index)
		if err != nil {
			return noChild, err
		}
		index = child
		depth++
	}
	s.metrics.AddDepth(depth)

	s.tree.backup(index)
	return index, nil
}
