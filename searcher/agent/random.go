package agent

import (
	"squares/experiments/metrics"
	"squares/game"
	"squares/meta"
	"time"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

type randomAgent struct {
	size int
	rng  *rand.Rand
	grid *game.Grid
}

// NewRandomAgent returns a baseline agent that places each card in a uniformly
// random empty cell. A zero seed draws one from the system.
func NewRandomAgent(size int, seed uint64) Agent {
	if size <= 0 {
		size = meta.GRID_SIZE
	}
	if seed == 0 {
		seed = frand.Uint64n(1<<63) + 1
	}
	return &randomAgent{
		size: size,
		rng:  rand.New(rand.NewSource(seed)),
		grid: game.NewGrid(size),
	}
}

func (a *randomAgent) Init() {
	a.grid.Reset()
}

func (a *randomAgent) GetPlay(card game.Card, remaining time.Duration) (game.Cell, metrics.SearchMetric) {
	empty := a.grid.EmptyCells()
	if len(empty) == 0 {
		panic("grid is already full")
	}
	cell := empty[a.rng.Intn(len(empty))]
	a.grid.Place(cell, card)
	return cell, metrics.SearchMetric{}
}

func (a *randomAgent) Name() string {
	return "random"
}
