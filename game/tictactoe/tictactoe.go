// Package tictactoe scores tic-tac-toe from the point of view of the player
// to move at the search root. Opponent moves are scored from that same point
// of view, see game.Game.
package tictactoe

import (
	"fmt"
	"strings"

	"pvmcts/game"
	"pvmcts/utils"
)

type Mark int8

const (
	Empty Mark = iota
	X
	O
)

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	}
	return "."
}

func (m Mark) opponent() Mark {
	if m == X {
		return O
	}
	return X
}

// Values are kept strictly positive so selection scores stay positive
const (
	WinValue  = 1.0
	DrawValue = 0.5
	LossValue = 0.05
)

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Cell weights for the prior: centre, then corners, then edges
var cellWeights = [9]float64{2, 1, 2, 1, 3, 1, 2, 1, 2}

// State is a board and the player to move. Actions index the empty cells
// in board order.
type State struct {
	Board  [9]Mark
	ToMove Mark
}

func NewState() State {
	return State{ToMove: X}
}

func (s State) Winner() Mark {
	for _, line := range lines {
		m := s.Board[line[0]]
		if m != Empty && m == s.Board[line[1]] && m == s.Board[line[2]] {
			return m
		}
	}
	return Empty
}

func (s State) Full() bool {
	for _, m := range s.Board {
		if m == Empty {
			return false
		}
	}
	return true
}

func (s State) Over() bool {
	return s.Winner() != Empty || s.Full()
}

// Empties returns the board cells of the legal actions, in action order.
func (s State) Empties() []int {
	if s.Winner() != Empty {
		return nil
	}
	cells := make([]int, 0, 9)
	for i, m := range s.Board {
		if m == Empty {
			cells = append(cells, i)
		}
	}
	return cells
}

// Action returns the action that marks cell, or -1 if the cell is taken or
// the game is won.
func (s State) Action(cell int) int {
	return utils.FindIndex(s.Empties(), cell)
}

func (s State) Play(action int) (State, error) {
	cells := s.Empties()
	if action < 0 || action >= len(cells) {
		return State{}, fmt.Errorf("illegal action %d with %d empty cells", action, len(cells))
	}
	next := s
	next.Board[cells[action]] = s.ToMove
	next.ToMove = s.ToMove.opponent()
	return next, nil
}

func (s State) String() string {
	var b strings.Builder
	for i, m := range s.Board {
		b.WriteString(m.String())
		if i%3 == 2 && i < 8 {
			b.WriteByte('/')
		}
	}
	return b.String()
}

type TicTacToe struct{}

func New() TicTacToe {
	return TicTacToe{}
}

func (TicTacToe) Evaluator(state State) game.Evaluator[State] {
	return &evaluator{root: state, perspective: state.ToMove}
}

func (TicTacToe) Player(state State) int {
	return int(state.ToMove)
}

func (TicTacToe) Winner(state State) string {
	if w := state.Winner(); w != Empty {
		return w.String()
	}
	if state.Full() {
		return game.Draw
	}
	return ""
}

type evaluator struct {
	root        State
	perspective Mark
}

func (e *evaluator) Root() State {
	return e.root
}

func (e *evaluator) NumActions(state State) int {
	return len(state.Empties())
}

func (e *evaluator) NextPossibleStates(state State) ([]State, error) {
	cells := state.Empties()
	states := make([]State, len(cells))
	for action := range cells {
		next, err := state.Play(action)
		if err != nil {
			return nil, err
		}
		states[action] = next
	}
	return states, nil
}

func (e *evaluator) NewState(action int, state State) (State, error) {
	return state.Play(action)
}

func (e *evaluator) Value(states []State) ([]float64, error) {
	values := make([]float64, len(states))
	for i, state := range states {
		values[i] = e.value(state)
	}
	return values, nil
}

// value scores terminal boards exactly and open boards by the balance of
// lines still winnable by each side.
func (e *evaluator) value(state State) float64 {
	switch state.Winner() {
	case e.perspective:
		return WinValue
	case e.perspective.opponent():
		return LossValue
	}
	if state.Full() {
		return DrawValue
	}

	open := 0
	for _, line := range lines {
		mine, theirs := 0, 0
		for _, cell := range line {
			switch state.Board[cell] {
			case e.perspective:
				mine++
			case e.perspective.opponent():
				theirs++
			}
		}
		if theirs == 0 && mine > 0 {
			open++
		}
		if mine == 0 && theirs > 0 {
			open--
		}
	}
	value := DrawValue + 0.05*float64(open)
	return min(max(value, LossValue), WinValue)
}

func (e *evaluator) Policy(state State) ([]float64, error) {
	cells := state.Empties()
	policy := make([]float64, len(cells))
	total := 0.0
	for i, cell := range cells {
		policy[i] = cellWeights[cell]
		total += policy[i]
	}
	for i := range policy {
		policy[i] /= total
	}
	return policy, nil
}

func (e *evaluator) IsSolution(state State) bool {
	return state.Over()
}
