package searcher

import (
	"squares/game"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func dealt(seed uint64, n int) []game.Card {
	deck := game.NewDeck()
	game.Shuffle(deck, rand.New(rand.NewSource(seed)))
	return deck[:n]
}

// playGame feeds cards to m and checks that every returned cell was empty.
func playGame(t *testing.T, m *MCTS, size int, cards []game.Card, remaining time.Duration) (*game.Grid, []game.Cell) {
	grid := game.NewGrid(size)
	cells := []game.Cell{}
	for _, c := range cards {
		cell, _ := m.GetPlay(c, remaining)
		require.True(t, grid.InBounds(cell), "Cell %v should be on the grid", cell)
		require.True(t, grid.IsEmpty(cell), "Cell %v should be empty", cell)
		grid.Place(cell, c)
		cells = append(cells, cell)
	}
	return grid, cells
}

func TestMCTSGetPlay(t *testing.T) {
	points := game.AmericanPointSystem()

	t.Run("the first card goes top-left without searching", func(t *testing.T) {
		m := NewMCTS(points.Score, WithSeed(1), WithMetrics())

		cell, metric := m.GetPlay(card(t, "AS"), time.Minute)

		require.Equal(t, game.Cell{Row: 0, Col: 0}, cell)
		require.Zero(t, metric.Batches)
	})

	t.Run("plays a full 5x5 game with distinct legal placements", func(t *testing.T) {
		m := NewMCTS(points.Score, WithSeed(2), WithBatches(3))
		cards := dealt(2, 25)

		grid, cells := playGame(t, m, 5, cards, time.Minute)

		require.True(t, grid.IsFull())
		require.ElementsMatch(t, cards, grid.Cards())
		require.Equal(t, grid.EmptyCells(), m.Grid().EmptyCells())
		require.Len(t, cells, 25)
	})

	t.Run("the last card fills the last empty cell", func(t *testing.T) {
		m := NewMCTS(points.Score, WithGridSize(2), WithSeed(3), WithBatches(2), WithMetrics())
		cards := dealt(3, 4)
		grid := game.NewGrid(2)
		for _, c := range cards[:3] {
			cell, _ := m.GetPlay(c, time.Minute)
			grid.Place(cell, c)
		}
		want := grid.EmptyCells()[0]

		cell, metric := m.GetPlay(cards[3], time.Minute)

		require.Equal(t, want, cell)
		require.Zero(t, metric.Batches, "No search should run for a forced placement")
	})

	t.Run("the same seed plays the same game", func(t *testing.T) {
		cards := dealt(4, 9)
		_, first := playGame(t, NewMCTS(points.Score, WithGridSize(3), WithSeed(4), WithBatches(4)), 3, cards, time.Minute)
		_, second := playGame(t, NewMCTS(points.Score, WithGridSize(3), WithSeed(4), WithBatches(4)), 3, cards, time.Minute)

		require.Equal(t, first, second)
	})

	t.Run("finds a placement that always pays", func(t *testing.T) {
		target := card(t, "QH")
		corner := game.Cell{Row: 2, Col: 2}
		score := func(g *game.Grid) float64 {
			if g.At(corner) == target {
				return 10
			}
			return 0
		}
		m := NewMCTS(score, WithGridSize(3), WithSeed(5), WithBatches(20))
		m.GetPlay(card(t, "2C"), time.Minute)

		cell, _ := m.GetPlay(target, time.Minute)

		require.Equal(t, corner, cell)
	})

	t.Run("equal outcomes fall back to the first empty cell", func(t *testing.T) {
		m := NewMCTS(func(*game.Grid) float64 { return 0 }, WithGridSize(3), WithSeed(6), WithBatches(5))
		m.GetPlay(card(t, "2C"), time.Minute)

		cell, _ := m.GetPlay(card(t, "3C"), time.Minute)

		require.Equal(t, game.Cell{Row: 0, Col: 1}, cell)
	})

	t.Run("no time left still returns a legal cell", func(t *testing.T) {
		m := NewMCTS(points.Score, WithSeed(7), WithSafetyMargin(time.Second), WithMetrics())
		m.GetPlay(card(t, "2C"), time.Minute)

		start := time.Now()
		cell, metric := m.GetPlay(card(t, "3C"), 500*time.Millisecond)

		require.Less(t, time.Since(start), 100*time.Millisecond)
		require.Zero(t, metric.Batches)
		require.Equal(t, game.Cell{Row: 0, Col: 1}, cell)
	})

	t.Run("stops at the deadline", func(t *testing.T) {
		m := NewMCTS(points.Score, WithSeed(8), WithSafetyMargin(0), WithMetrics())
		m.GetPlay(card(t, "2C"), time.Minute)

		// 24 empty cells share 240ms, so about 10ms for this decision
		start := time.Now()
		_, metric := m.GetPlay(card(t, "3C"), 240*time.Millisecond)

		require.Less(t, time.Since(start), time.Second)
		require.Positive(t, metric.Batches)
		require.Equal(t, 10*time.Millisecond, metric.Budget)
	})

	t.Run("metrics count batches, iterations and rollouts", func(t *testing.T) {
		m := NewMCTS(points.Score, WithSeed(9), WithBatches(3), WithTrialsPerDeck(4), WithRolloutsPerLeaf(2), WithMetrics())
		m.GetPlay(card(t, "2C"), time.Minute)

		_, metric := m.GetPlay(card(t, "3C"), time.Minute)

		require.Equal(t, 3, metric.Batches)
		require.Equal(t, 12, metric.Iterations)
		require.Equal(t, 24, metric.Rollouts)
		require.Equal(t, 12.0, metric.RootVisits)
	})

	t.Run("parallel rollouts are legal and reproducible", func(t *testing.T) {
		cards := dealt(10, 9)
		options := []Option{WithGridSize(3), WithSeed(10), WithBatches(3), WithRolloutsPerLeaf(8), WithGoroutines(4)}

		_, first := playGame(t, NewMCTS(points.Score, options...), 3, cards, time.Minute)
		_, second := playGame(t, NewMCTS(points.Score, options...), 3, cards, time.Minute)

		require.Equal(t, first, second)
	})

	t.Run("a seen card cannot be dealt again", func(t *testing.T) {
		m := NewMCTS(points.Score, WithSeed(11))
		m.GetPlay(card(t, "2C"), time.Minute)

		require.Panics(t, func() { m.GetPlay(card(t, "2C"), time.Minute) })
	})

	t.Run("a full grid panics", func(t *testing.T) {
		m := NewMCTS(points.Score, WithGridSize(1), WithSeed(12))
		m.GetPlay(card(t, "2C"), time.Minute)

		require.Panics(t, func() { m.GetPlay(card(t, "3C"), time.Minute) })
	})
}

func TestMCTSInit(t *testing.T) {
	t.Run("starts a new game", func(t *testing.T) {
		points := game.BritishPointSystem()
		m := NewMCTS(points.Score, WithGridSize(3), WithSeed(13), WithBatches(1))
		playGame(t, m, 3, dealt(13, 4), time.Minute)

		m.Init()

		require.Zero(t, m.Grid().Filled())
		cell, _ := m.GetPlay(dealt(13, 1)[0], time.Minute)
		require.Equal(t, game.Cell{Row: 0, Col: 0}, cell)
	})

	t.Run("a random seed is drawn when none is given", func(t *testing.T) {
		points := game.AmericanPointSystem()

		require.NotZero(t, NewMCTS(points.Score).Seed())
		require.Equal(t, uint64(14), NewMCTS(points.Score, WithSeed(14)).Seed())
	})

	t.Run("rejects invalid construction", func(t *testing.T) {
		require.Panics(t, func() { NewMCTS(nil) })
		require.Panics(t, func() { NewMCTS(game.AmericanPointSystem().Score, WithGridSize(8)) })
	})
}
