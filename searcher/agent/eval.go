package agent

import (
	"fmt"

	"pvmcts/experiments/metrics"
	"pvmcts/game"
	"pvmcts/searcher"
	"pvmcts/utils"
)

type evaluationAgent[S any] struct {
	options []searcher.Option
}

// NewEvaluationAgent returns a new agent for actual game play during
// evaluation. It always plays the most probable action.
func NewEvaluationAgent[S any](options ...searcher.Option) Agent[S] {
	return evaluationAgent[S]{options: options}
}

func (a evaluationAgent[S]) FindMove(evaluator game.Evaluator[S]) (int, metrics.SearchMetric, error) {
	result, err := search(evaluator, a.options)
	if err != nil {
		return 0, metrics.SearchMetric{}, err
	}
	return utils.ArgMax(result.Probabilities), result.Metric, nil
}

func search[S any](evaluator game.Evaluator[S], options []searcher.Option) (searcher.Result[S], error) {
	mcts, err := searcher.NewMCTS(evaluator, options...)
	if err != nil {
		return searcher.Result[S]{}, fmt.Errorf("failed to create searcher: %w", err)
	}
	result, err := mcts.Search()
	if err != nil {
		return searcher.Result[S]{}, fmt.Errorf("failed to search: %w", err)
	}
	return result, nil
}
