package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// ArgMax returns the index of the largest value, the first one on ties, or -1 if empty.
func ArgMax(values []float64) int {
	best := -1
	for i, v := range values {
		if best == -1 || v > values[best] {
			best = i
		}
	}
	return best
}

func Sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
