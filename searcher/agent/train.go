package agent

import (
	"time"

	"pvmcts/experiments/metrics"
	"pvmcts/game"
	"pvmcts/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent[S any] struct {
	options []searcher.Option
	rand    *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play during training. It
// samples its move from the search distribution, so the search temperature
// controls how adventurous it is. Not safe for concurrent use.
func NewTrainingAgent[S any](seed uint64, options ...searcher.Option) Agent[S] {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &trainingAgent[S]{options: options, rand: rand.New(rand.NewSource(seed))}
}

func (a *trainingAgent[S]) FindMove(evaluator game.Evaluator[S]) (int, metrics.SearchMetric, error) {
	result, err := search(evaluator, a.options)
	if err != nil {
		return 0, metrics.SearchMetric{}, err
	}
	return sample(result.Probabilities, a.rand.Float64()), result.Metric, nil
}

func sample(policy []float64, sampled float64) int {
	cumulative := 0.0
	for action, prob := range policy {
		cumulative += prob
		if sampled < cumulative {
			return action
		}
	}
	return len(policy) - 1 // Fallback in case of rounding errors
}
