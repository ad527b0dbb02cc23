package searcher

import (
	"errors"
	"math"
)

var (
	ErrInvalidArgument = errors.New("invalid search argument")
	ErrInvalidScore    = errors.New("selection score must be positive and finite")
	ErrShapeMismatch   = errors.New("evaluator returned a vector of the wrong length")
	ErrNoActions       = errors.New("root has no legal actions")
)

// TerminalBonus returns how much visit mass is added to every action of a
// terminal node reached with remainingDepth levels of the step budget unused.
// The result must be non-negative and finite, otherwise the search fails
// with ErrInvalidArgument.
type TerminalBonus func(numActions, remainingDepth int) float64

// PowerBonus adds numActions^remainingDepth, roughly the number of nodes the
// unused budget could have explored below the terminal node.
func PowerBonus(numActions, remainingDepth int) float64 {
	return math.Pow(float64(numActions), float64(remainingDepth))
}

// NoBonus leaves terminal nodes untouched.
func NoBonus(numActions, remainingDepth int) float64 {
	return 0
}

// Rescale decides what happens to selection scores that are not strictly positive.
type Rescale int

const (
	// Fail the search with ErrInvalidScore
	RescaleNone Rescale = iota
	// Shift every score of the node so the smallest one becomes minScore
	RescaleShiftMin
)

const minScore = 1e-9

func (r Rescale) String() string {
	switch r {
	case RescaleNone:
		return "none"
	case RescaleShiftMin:
		return "shift-min"
	default:
		return "unknown"
	}
}

// ParseRescale is the inverse of Rescale.String.
func ParseRescale(s string) (Rescale, error) {
	switch s {
	case "", "none":
		return RescaleNone, nil
	case "shift-min":
		return RescaleShiftMin, nil
	}
	return RescaleNone, errors.New("unknown rescale policy " + s)
}
