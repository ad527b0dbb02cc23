package engine

import "pvmcts/experiments/metrics"

type Engine interface {
	// Run plays a game till there's a winner or a max number of moves is reached
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
