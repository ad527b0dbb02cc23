package searcher

import (
	"fmt"
	"slices"

	"pvmcts/experiments/metrics"
	"pvmcts/game"

	"golang.org/x/exp/rand"
)

// search is the state of one Search call. Nothing in it outlives the call.
type search[S any] struct {
	evaluator game.Evaluator[S]
	args      args
	tree      *Tree[S]
	rand      *rand.Rand
	metrics   metrics.Collector
}

// descend picks an action at index and returns the node it leads to,
// expanding it on first visit. A child that already exists is returned as
// is, the evaluator is never asked about the same path twice.
func (s *search[S]) descend(index int) (child int, terminal bool, err error) {
	node := s.tree.Node(index)
	scores, err := selectionScores(node.Values, node.Policy, node.Visits, s.args.exploration, s.args.rescale)
	if err != nil {
		return noChild, false, fmt.Errorf("selection at path %v: %w", s.tree.Path(index), err)
	}
	action := sample(scores, s.rand)

	if child, ok := s.tree.Child(index, action); ok {
		return child, s.tree.Node(child).Terminal, nil
	}

	state, err := s.evaluator.NewState(action, node.State)
	if err != nil {
		return noChild, false, fmt.Errorf("failed to apply action %d at path %v: %w", action, s.tree.Path(index), err)
	}
	child, err = s.expand(index, action, state)
	if err != nil {
		return noChild, false, err
	}
	return child, s.tree.Node(child).Terminal, nil
}

// expandRoot creates the root from the evaluator's initial state.
func (s *search[S]) expandRoot() (int, error) {
	return s.expand(noParent, noAction, s.evaluator.Root())
}

// expand evaluates state once and stores it as a new node. Values for all
// successors come from a single Value call.
func (s *search[S]) expand(parent, action int, state S) (int, error) {
	numActions := s.evaluator.NumActions(state)

	next, err := s.evaluator.NextPossibleStates(state)
	if err != nil {
		return noChild, fmt.Errorf("failed to list next states: %w", err)
	}
	if len(next) != numActions {
		return noChild, fmt.Errorf("%w: %d next states for %d actions", ErrShapeMismatch, len(next), numActions)
	}

	values := []float64{}
	if numActions > 0 {
		values, err = s.evaluator.Value(next)
		if err != nil {
			return noChild, fmt.Errorf("failed to evaluate next states: %w", err)
		}
		if len(values) != numActions {
			return noChild, fmt.Errorf("%w: %d values for %d actions", ErrShapeMismatch, len(values), numActions)
		}
	}

	policy, err := s.evaluator.Policy(state)
	if err != nil {
		return noChild, fmt.Errorf("failed to compute policy: %w", err)
	}
	if len(policy) != numActions {
		return noChild, fmt.Errorf("%w: %d priors for %d actions", ErrShapeMismatch, len(policy), numActions)
	}

	visits := make([]float64, numActions)
	for a := range visits {
		visits[a] = 1
	}

	index := s.tree.add(parent, action, Node[S]{
		State:    state,
		Visits:   visits,
		Values:   slices.Clone(values),
		Policy:   slices.Clone(policy),
		Terminal: s.evaluator.IsSolution(state),
	})
	s.metrics.AddNode()
	return index, nil
}
