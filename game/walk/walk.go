// Package walk is a single-agent puzzle: starting from a number, reach the
// target exactly using +1, +2 and *2. Overshooting is a dead end.
package walk

import (
	"fmt"
	"math"

	"pvmcts/game"
)

const (
	Increment = iota
	Skip
	Double
	numActions
)

// Decay discounts the value of positions reached with more moves.
const Decay = 0.95

type State struct {
	Position int
	Moves    int
}

type Walk struct {
	Target int
}

func New(target int) *Walk {
	if target <= 0 {
		panic("target must be positive")
	}
	return &Walk{Target: target}
}

func (w *Walk) Evaluator(state State) game.Evaluator[State] {
	return &evaluator{walk: w, root: state}
}

func (w *Walk) Player(state State) int {
	return 0
}

func (w *Walk) Winner(state State) string {
	switch {
	case state.Position == w.Target:
		return "solved"
	case state.Position > w.Target:
		return "overshot"
	}
	return ""
}

func (w *Walk) Play(action int, state State) (State, error) {
	next := State{Moves: state.Moves + 1}
	switch action {
	case Increment:
		next.Position = state.Position + 1
	case Skip:
		next.Position = state.Position + 2
	case Double:
		next.Position = state.Position * 2
	default:
		return State{}, fmt.Errorf("unknown action %d", action)
	}
	return next, nil
}

type evaluator struct {
	walk *Walk
	root State
}

func (e *evaluator) Root() State {
	return e.root
}

func (e *evaluator) NumActions(state State) int {
	if state.Position >= e.walk.Target {
		return 0
	}
	return numActions
}

func (e *evaluator) NextPossibleStates(state State) ([]State, error) {
	states := make([]State, e.NumActions(state))
	for action := range states {
		next, err := e.walk.Play(action, state)
		if err != nil {
			return nil, err
		}
		states[action] = next
	}
	return states, nil
}

func (e *evaluator) NewState(action int, state State) (State, error) {
	return e.walk.Play(action, state)
}

// Value is 1/(1+distance) discounted by the number of moves made, so it
// always lies in (0, 1].
func (e *evaluator) Value(states []State) ([]float64, error) {
	values := make([]float64, len(states))
	for i, state := range states {
		distance := math.Abs(float64(e.walk.Target - state.Position))
		values[i] = math.Pow(Decay, float64(state.Moves)) / (1 + distance)
	}
	return values, nil
}

func (e *evaluator) Policy(state State) ([]float64, error) {
	return game.UniformPolicy(e.NumActions(state)), nil
}

func (e *evaluator) IsSolution(state State) bool {
	return state.Position == e.walk.Target
}
