package searcher

import (
	"squares/game"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// simulate averages the configured number of rollouts from leaf.
func (m *MCTS) simulate(leaf *node, future []game.Card) float64 {
	defer m.metrics.AddRollouts(m.rollouts)

	if m.goroutines <= 1 || m.rollouts == 1 {
		total := 0.0
		for i := 0; i < m.rollouts; i++ {
			total += rollout(&leaf.grid, future, m.rng, m.score)
		}
		return total / float64(m.rollouts)
	}

	// Rollout i always runs on worker i mod workers so seeded searches repeat
	outcomes := make([]float64, m.rollouts)
	workers := min(len(m.workers), m.rollouts)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		rng := m.workers[w]
		g.Go(func() error {
			for i := w; i < len(outcomes); i += workers {
				outcomes[i] = rollout(&leaf.grid, future, rng, m.score)
			}
			return nil
		})
	}
	g.Wait()

	total := 0.0
	for _, outcome := range outcomes {
		total += outcome
	}
	return total / float64(m.rollouts)
}

// rollout fills the empty cells of a private copy of grid in a random order,
// taking cards from future front to back, and scores the full grid.
func rollout(grid *game.Grid, future []game.Card, rng *rand.Rand, score game.Score) float64 {
	board := grid.Clone()
	empty := board.EmptyCells()
	if len(future) < len(empty) {
		panic("deck future is shorter than the number of empty cells")
	}

	rng.Shuffle(len(empty), func(i, j int) {
		empty[i], empty[j] = empty[j], empty[i]
	})
	for i, cell := range empty {
		board.Place(cell, future[i])
	}
	return score(board)
}
