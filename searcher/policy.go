package searcher

import (
	"fmt"
	"math"

	"pvmcts/utils"

	"golang.org/x/exp/rand"
)

// selectionScores computes value + c*prior/visits for every action. The
// prior dominates while an action is rarely visited and fades as 1/visits.
func selectionScores(values, policy, visits []float64, c float64, rescale Rescale) ([]float64, error) {
	scores := make([]float64, len(visits))
	lowest := math.Inf(1)
	for a := range scores {
		score := values[a] + c*policy[a]/visits[a]
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return nil, fmt.Errorf("%w: action %d scored %v", ErrInvalidScore, a, score)
		}
		scores[a] = score
		lowest = min(lowest, score)
	}

	if lowest <= 0 {
		if rescale != RescaleShiftMin {
			return nil, fmt.Errorf("%w: lowest score %v", ErrInvalidScore, lowest)
		}
		shift := minScore - lowest
		for a := range scores {
			scores[a] += shift
		}
	}
	return scores, nil
}

// sample draws an index with probability proportional to its weight.
func sample(weights []float64, r *rand.Rand) int {
	sampled := r.Float64() * utils.Sum(weights)
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if sampled < cumulative {
			return i
		}
	}
	return len(weights) - 1 // Fallback in case of rounding errors
}

// adjustTemperature raises visits to 1/temperature and normalises them into
// a probability distribution.
func adjustTemperature(visits []float64, temperature float64) []float64 {
	// Scaling by the largest count first keeps the powers finite for small temperatures
	largest := 0.0
	for _, v := range visits {
		largest = max(largest, v)
	}

	exponent := 1.0 / temperature
	sum := 0.0
	probs := make([]float64, len(visits))
	for i, v := range visits {
		probs[i] = math.Pow(v/largest, exponent)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
