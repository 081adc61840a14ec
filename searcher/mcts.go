package searcher

import (
	"fmt"
	"math"
	"squares/experiments/metrics"
	"squares/game"
	"squares/meta"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

type Option func(mcts *MCTS)

// MCTS chooses a cell for each revealed card. Every decision grows a fresh
// tree against random orderings of the cards not yet seen.
type MCTS struct {
	size          int
	trialsPerDeck int
	rollouts      int
	batches       int
	goroutines    int
	margin        time.Duration
	exploration   float64
	seed          uint64
	score         game.Score
	policy        uct
	rng           *rand.Rand
	workers       []*rand.Rand
	metrics       metrics.Collector

	grid   *game.Grid
	unseen []game.Card
	root   *node
	path   []*node
}

func WithGridSize(size int) Option {
	return func(m *MCTS) {
		if size > 0 {
			m.size = size
		}
	}
}

// WithSeed makes the search reproducible.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithTrialsPerDeck(trials int) Option {
	return func(m *MCTS) {
		if trials > 0 {
			m.trialsPerDeck = trials
		}
	}
}

func WithRolloutsPerLeaf(rollouts int) Option {
	return func(m *MCTS) {
		if rollouts > 0 {
			m.rollouts = rollouts
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithSafetyMargin(margin time.Duration) Option {
	return func(m *MCTS) {
		if margin >= 0 {
			m.margin = margin
		}
	}
}

// WithBatches caps the batches run per decision. The deadline still applies.
func WithBatches(batches int) Option {
	return func(m *MCTS) {
		if batches > 0 {
			m.batches = batches
		}
	}
}

// WithGoroutines spreads the rollouts of each evaluated node across workers.
func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(score game.Score, options ...Option) *MCTS {
	if score == nil {
		panic("Must specify a scoring function")
	}
	m := &MCTS{ // Default values
		size:          meta.GRID_SIZE,
		trialsPerDeck: meta.TRIALS_PER_DECK,
		rollouts:      meta.ROLLOUTS_PER_LEAF,
		goroutines:    1,
		margin:        meta.SAFETY_MARGIN,
		exploration:   meta.EXPLORATION,
		score:         score,
		metrics:       metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.size*m.size > game.NumCards {
		panic(fmt.Sprintf("a %dx%d grid needs more than %d cards", m.size, m.size, game.NumCards))
	}
	if m.seed == 0 {
		m.seed = frand.Uint64n(math.MaxUint64) + 1
	}

	m.rng = rand.New(rand.NewSource(m.seed))
	m.policy = newUCT(m.exploration, meta.EPSILON, m.rng.Float64)
	if m.goroutines > 1 {
		m.workers = make([]*rand.Rand, m.goroutines)
		for i := range m.workers {
			m.workers[i] = rand.New(rand.NewSource(m.rng.Uint64()))
		}
	}
	m.Init()
	return m
}

// Seed returns the seed of the master generator.
func (m *MCTS) Seed() uint64 {
	return m.seed
}

// Init starts a new game: the grid is cleared and the whole deck is unseen.
func (m *MCTS) Init() {
	m.grid = game.NewGrid(m.size)
	m.unseen = game.NewDeck()
	release(m.root)
	m.root = nil
}

// Grid returns a copy of the grid played so far.
func (m *MCTS) Grid() *game.Grid {
	return m.grid.Clone()
}

// GetPlay places card and returns its cell. remaining is the time left for
// all of this game's remaining placements.
func (m *MCTS) GetPlay(card game.Card, remaining time.Duration) (game.Cell, metrics.SearchMetric) {
	if m.grid.IsFull() {
		panic("grid is already full")
	}
	m.unseen = game.Without(m.unseen, card)

	placed := m.grid.Filled()
	empty := m.grid.NumCells() - placed
	budget := (remaining - m.margin) / time.Duration(empty)
	m.metrics.Start(budget)

	var cell game.Cell
	var visits, mean float64
	switch {
	case placed == 0: // Top-left seeds the tree, no search
		cell = game.Cell{Row: 0, Col: 0}
	case empty == 1:
		cell = m.grid.EmptyCells()[0]
	default:
		root, best := m.search(card, time.Now().Add(budget))
		cell, _ = m.grid.Diff(&best.grid)
		visits, mean = root.visits, m.policy.mean(best.rewards, best.visits)
	}
	m.grid.Place(cell, card)

	metric := m.metrics.Complete(visits, mean)
	log.Debug().Msgf("placement %d: %v at %v (budget %v, root visits %.0f, mean %.2f)",
		placed+1, card, cell, budget, visits, mean)
	return cell, metric
}

// search runs batches until the deadline or the batch cap, then returns the
// root and its child with the best mean outcome.
func (m *MCTS) search(card game.Card, deadline time.Time) (*node, *node) {
	release(m.root)
	root := newRoot(m.grid)
	m.root = root

	empty := m.grid.NumCells() - m.grid.Filled()
	future := make([]game.Card, 0, len(m.unseen)+1)
	for batch := 0; m.batches <= 0 || batch < m.batches; batch++ {
		// Deadline is only checked between whole batches
		if !time.Now().Before(deadline) {
			break
		}

		future = m.drawFuture(future[:0], card, empty)
		for i := 0; i < m.trialsPerDeck; i++ {
			m.grow(root, future)
			m.metrics.AddIteration()
		}
		root.prune()
		m.metrics.AddBatch()
	}

	// Out of time before the first batch
	if root.isLeaf() {
		root.expand(card)
	}
	return root, root.bestChild(m.policy)
}

// drawFuture samples one ordering of the next n cards: card first, then the
// unseen cards shuffled.
func (m *MCTS) drawFuture(future []game.Card, card game.Card, n int) []game.Card {
	if len(m.unseen)+1 < n {
		panic("not enough unseen cards to fill the grid")
	}
	future = append(future, card)
	future = append(future, m.unseen...)
	rest := future[1:]
	m.rng.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})
	return future[:n]
}

// grow runs one selection, expansion, rollout and backup cycle. The deck
// future is consumed in lock-step with the depth walked below root.
func (m *MCTS) grow(root *node, future []game.Card) {
	path := append(m.path[:0], root)

	// Selection
	current := root
	for !current.isLeaf() {
		current = current.pick(m.policy)
		future = future[1:]
		path = append(path, current)
	}

	// Expansion
	leaf := current
	if !current.isTerminal() {
		current.expand(future[0])
		future = future[1:]
		leaf = current.pick(m.policy)
		path = append(path, leaf)
	}

	value := m.simulate(leaf, future)
	backup(path, value)

	clear(path)
	m.path = path[:0]
}

func backup(path []*node, value float64) {
	for _, n := range path {
		n.update(value)
	}
}
