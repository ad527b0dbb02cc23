package metrics

import (
	"time"
)

type SearchMetric struct {
	Simulations   int
	MaxSteps      int
	Exploration   float64
	Temperature   float64
	StartTime     time.Time
	Duration      time.Duration
	Nodes         int // Nodes created, root included
	MaxDepth      int
	TerminalStops int
	DepthStops    int
	DeadEnds      int
}

type MoveMetric struct {
	Step   int
	Player int // Player ID, 0 for single-agent problems
	Action int
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winner         string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector records what one search did. A collector belongs to a single
// search call and is not safe for concurrent use.
type Collector interface {
	Start(simulations, maxSteps int, exploration, temperature float64)
	AddNode()
	AddDepth(depth int)
	AddTerminalStop()
	AddDepthStop()
	AddDeadEnd()
	Complete() SearchMetric
}

type collector struct {
	metric    SearchMetric
	startTime time.Time
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(simulations, maxSteps int, exploration, temperature float64) {
	m.startTime = time.Now()
	m.metric = SearchMetric{
		Simulations: simulations,
		MaxSteps:    maxSteps,
		Exploration: exploration,
		Temperature: temperature,
		StartTime:   m.startTime,
	}
}

func (m *collector) AddNode() {
	m.metric.Nodes++
}

func (m *collector) AddDepth(depth int) {
	m.metric.MaxDepth = max(m.metric.MaxDepth, depth)
}

func (m *collector) AddTerminalStop() {
	m.metric.TerminalStops++
}

func (m *collector) AddDepthStop() {
	m.metric.DepthStops++
}

func (m *collector) AddDeadEnd() {
	m.metric.DeadEnds++
}

func (m *collector) Complete() SearchMetric {
	metric := m.metric
	metric.Duration = time.Since(m.startTime)
	return metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(simulations, maxSteps int, exploration, temperature float64) {}
func (m *dummyCollector) AddNode()                                                          {}
func (m *dummyCollector) AddDepth(depth int)                                                {}
func (m *dummyCollector) AddTerminalStop()                                                  {}
func (m *dummyCollector) AddDepthStop()                                                     {}
func (m *dummyCollector) AddDeadEnd()                                                       {}
func (m *dummyCollector) Complete() SearchMetric                                            { return SearchMetric{} }
