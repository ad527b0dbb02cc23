package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestSelectionScores(t *testing.T) {
	t.Run("computing value + c*prior/visits", func(t *testing.T) {
		scores, err := selectionScores(
			[]float64{0.5, 0.2},
			[]float64{0.25, 0.75},
			[]float64{1, 3},
			10, RescaleNone,
		)

		require.NoError(t, err)
		require.InDeltaSlice(t, []float64{0.5 + 2.5, 0.2 + 2.5}, scores, 1e-12)
	})

	t.Run("prior influence decays with visits", func(t *testing.T) {
		few, err := selectionScores([]float64{0.1}, []float64{1}, []float64{1}, 10, RescaleNone)
		require.NoError(t, err)
		many, err := selectionScores([]float64{0.1}, []float64{1}, []float64{100}, 10, RescaleNone)
		require.NoError(t, err)

		require.Greater(t, few[0], many[0], "More visits should lower the exploration term")
	})

	t.Run("rejecting non-positive scores", func(t *testing.T) {
		_, err := selectionScores([]float64{-1, 0.5}, []float64{0.5, 0.5}, []float64{1, 1}, 0, RescaleNone)
		require.ErrorIs(t, err, ErrInvalidScore)

		_, err = selectionScores([]float64{0, 0}, []float64{0, 0}, []float64{1, 1}, 10, RescaleNone)
		require.ErrorIs(t, err, ErrInvalidScore, "Zero scores cannot be normalised")
	})

	t.Run("shifting non-positive scores", func(t *testing.T) {
		scores, err := selectionScores([]float64{-1, 0.5}, []float64{0.5, 0.5}, []float64{1, 1}, 0, RescaleShiftMin)

		require.NoError(t, err)
		require.InDelta(t, minScore, scores[0], 1e-12)
		require.InDelta(t, 1.5+minScore, scores[1], 1e-12)
	})

	t.Run("rejecting non-finite scores regardless of rescaling", func(t *testing.T) {
		for _, rescale := range []Rescale{RescaleNone, RescaleShiftMin} {
			_, err := selectionScores([]float64{math.NaN(), 0.5}, []float64{0.5, 0.5}, []float64{1, 1}, 10, rescale)
			require.ErrorIs(t, err, ErrInvalidScore)

			_, err = selectionScores([]float64{math.Inf(1), 0.5}, []float64{0.5, 0.5}, []float64{1, 1}, 10, rescale)
			require.ErrorIs(t, err, ErrInvalidScore)
		}
	})
}

func TestSample(t *testing.T) {
	t.Run("never picking a zero weight", func(t *testing.T) {
		r := rand.New(rand.NewSource(1))
		for i := 0; i < 100; i++ {
			require.Equal(t, 1, sample([]float64{0, 3, 0}, r))
		}
	})

	t.Run("following the weights", func(t *testing.T) {
		r := rand.New(rand.NewSource(1))
		counts := make([]int, 2)
		for i := 0; i < 10000; i++ {
			counts[sample([]float64{1, 3}, r)]++
		}
		require.InDelta(t, 0.75, float64(counts[1])/10000, 0.03)
	})
}

func TestAdjustTemperature(t *testing.T) {
	t.Run("temperature 1 normalises visits", func(t *testing.T) {
		require.InDeltaSlice(t, []float64{0.25, 0.75}, adjustTemperature([]float64{1, 3}, 1), 1e-12)
	})

	t.Run("low temperature sharpens", func(t *testing.T) {
		require.InDeltaSlice(t, []float64{0.1, 0.9}, adjustTemperature([]float64{1, 3}, 0.5), 1e-12)
	})

	t.Run("high temperature flattens", func(t *testing.T) {
		probs := adjustTemperature([]float64{1, 3}, 100)
		require.InDelta(t, 0.5, probs[0], 0.01)
	})

	t.Run("huge counts with tiny temperature stay finite", func(t *testing.T) {
		probs := adjustTemperature([]float64{1e12, 2e12}, 0.01)
		require.False(t, math.IsNaN(probs[0]))
		require.InDelta(t, 1.0, probs[1], 1e-12)
	})
}

func TestRescaleNames(t *testing.T) {
	for _, rescale := range []Rescale{RescaleNone, RescaleShiftMin} {
		parsed, err := ParseRescale(rescale.String())
		require.NoError(t, err)
		require.Equal(t, rescale, parsed)
	}
	_, err := ParseRescale("clamp")
	require.Error(t, err)
}
