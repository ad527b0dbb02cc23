package searcher

import (
	"fmt"
	"math"
	"time"

	"pvmcts/experiments/metrics"
	"pvmcts/meta"

	"golang.org/x/exp/rand"
)

const maxCapacity = 1 << 16

// Option configures an engine in NewMCTS, or overrides the engine's
// configuration for a single Search call.
type Option func(a *args)

type args struct {
	maxSteps    int
	simulations int
	exploration float64
	temperature float64
	bonus       TerminalBonus
	rescale     Rescale
	seed        uint64
	seeded      bool
	metrics     bool
}

func defaultArgs() args {
	return args{
		maxSteps:    meta.MaxSteps,
		simulations: meta.Simulations,
		exploration: meta.Exploration,
		temperature: meta.Temperature,
		bonus:       PowerBonus,
		rescale:     RescaleNone,
	}
}

// WithMaxSteps bounds how many levels one simulation descends.
func WithMaxSteps(steps int) Option {
	return func(a *args) {
		a.maxSteps = steps
	}
}

func WithSimulations(simulations int) Option {
	return func(a *args) {
		a.simulations = simulations
	}
}

// WithExploration sets the weight of the prior in selection scores.
func WithExploration(c float64) Option {
	return func(a *args) {
		a.exploration = c
	}
}

// WithTemperature sets tau, root visits are raised to 1/tau before normalising.
func WithTemperature(tau float64) Option {
	return func(a *args) {
		a.temperature = tau
	}
}

func WithTerminalBonus(bonus TerminalBonus) Option {
	return func(a *args) {
		if bonus != nil {
			a.bonus = bonus
		}
	}
}

func WithRescale(rescale Rescale) Option {
	return func(a *args) {
		a.rescale = rescale
	}
}

// WithSeed fixes the random source. Searches with the same seed, evaluator
// and arguments return identical distributions.
func WithSeed(seed uint64) Option {
	return func(a *args) {
		a.seed = seed
		a.seeded = true
	}
}

func WithMetrics() Option {
	return func(a *args) {
		a.metrics = true
	}
}

func (a args) validate() error {
	if a.maxSteps <= 0 {
		return fmt.Errorf("%w: max steps must be positive, got %d", ErrInvalidArgument, a.maxSteps)
	}
	if a.simulations <= 0 {
		return fmt.Errorf("%w: simulations must be positive, got %d", ErrInvalidArgument, a.simulations)
	}
	if !(a.temperature > 0) || math.IsInf(a.temperature, 0) {
		return fmt.Errorf("%w: temperature must be positive and finite, got %v", ErrInvalidArgument, a.temperature)
	}
	if !(a.exploration >= 0) || math.IsInf(a.exploration, 0) {
		return fmt.Errorf("%w: exploration must be non-negative and finite, got %v", ErrInvalidArgument, a.exploration)
	}
	if a.rescale != RescaleNone && a.rescale != RescaleShiftMin {
		return fmt.Errorf("%w: unknown rescale policy %d", ErrInvalidArgument, a.rescale)
	}
	return nil
}

// capacity is the node count a search preallocates for, at most maxCapacity.
func (a args) capacity() int {
	if a.maxSteps >= maxCapacity/a.simulations {
		return maxCapacity
	}
	return a.simulations * a.maxSteps
}

func (a args) source() *rand.Rand {
	seed := a.seed
	if !a.seeded {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

func (a args) collector() metrics.Collector {
	if a.metrics {
		return metrics.NewCollector()
	}
	return metrics.NewDummyCollector()
}
