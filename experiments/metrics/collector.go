package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Budget     time.Duration // Time allotted to this decision
	Duration   time.Duration
	Batches    int
	Iterations int
	Rollouts   int
	RootVisits float64
	BestMean   float64 // Mean outcome of the chosen child
}

type MoveMetric struct {
	Step int // 1-based placement number
	Card string
	Row  int
	Col  int
	SearchMetric
}

type GameMetric struct {
	ID        string
	Agent     int // AgentConfig.ID
	Score     float64
	Err       string // Rule violation that ended the game, if any
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Moves     int
}

type Collector interface {
	Start(budget time.Duration)
	AddBatch()
	AddIteration()
	AddRollouts(n int)
	Complete(rootVisits, bestMean float64) SearchMetric
}

type collector struct {
	budget     time.Duration
	startTime  time.Time
	batches    atomic.Int32
	iterations atomic.Int32
	rollouts   atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(budget time.Duration) {
	m.startTime = time.Now()
	m.budget = budget
	m.batches.Store(0)
	m.iterations.Store(0)
	m.rollouts.Store(0)
}

func (m *collector) AddBatch() {
	m.batches.Add(1)
}

func (m *collector) AddIteration() {
	m.iterations.Add(1)
}

func (m *collector) AddRollouts(n int) {
	m.rollouts.Add(int32(n))
}

func (m *collector) Complete(rootVisits, bestMean float64) SearchMetric {
	return SearchMetric{
		Budget:     m.budget,
		Duration:   time.Since(m.startTime),
		Batches:    int(m.batches.Load()),
		Iterations: int(m.iterations.Load()),
		Rollouts:   int(m.rollouts.Load()),
		RootVisits: rootVisits,
		BestMean:   bestMean,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(budget time.Duration)                        {}
func (m *dummyCollector) AddBatch()                                         {}
func (m *dummyCollector) AddIteration()                                     {}
func (m *dummyCollector) AddRollouts(n int)                                 {}
func (m *dummyCollector) Complete(rootVisits, bestMean float64) SearchMetric { return SearchMetric{} }
