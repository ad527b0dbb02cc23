package agent

import (
	"pvmcts/experiments/metrics"
	"pvmcts/game"
)

type Agent[S any] interface {
	// FindMove searches from the evaluator's root and returns the chosen action and search metrics (if collected)
	FindMove(evaluator game.Evaluator[S]) (int, metrics.SearchMetric, error)
}
