package engine

import (
	"squares/experiments/metrics"
	"squares/game"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type mockAgent struct {
	size   int
	inits  int
	cards  []game.Card
	cells  func(step int) game.Cell
	delay  time.Duration
	budget []time.Duration
}

func (m *mockAgent) Init() {
	m.inits++
	m.cards = nil
	m.budget = nil
}

func (m *mockAgent) GetPlay(card game.Card, remaining time.Duration) (game.Cell, metrics.SearchMetric) {
	m.cards = append(m.cards, card)
	m.budget = append(m.budget, remaining)
	time.Sleep(m.delay)
	step := len(m.cards) - 1
	return m.cells(step), metrics.SearchMetric{Iterations: step}
}

func (m *mockAgent) Name() string {
	return "mock"
}

func rowMajor(size int) func(int) game.Cell {
	return func(step int) game.Cell {
		return game.Cell{Row: step / size, Col: step % size}
	}
}

func TestLocalEngineRun(t *testing.T) {
	points := game.AmericanPointSystem()

	t.Run("fills the grid with distinct cards and scores it", func(t *testing.T) {
		agent := &mockAgent{cells: rowMajor(5)}
		eng := LocalEngine(agent, points, WithSeed(7), WithAgentID(3))

		score, gameMetric, moveMetrics, err := eng.Run()

		require.NoError(t, err)
		require.Equal(t, 1, agent.inits, "Agent should be initialised once per game")
		require.Len(t, agent.cards, 25)
		seen := map[game.Card]bool{}
		for _, card := range agent.cards {
			require.False(t, seen[card], "Deal should not repeat a card")
			seen[card] = true
		}
		grid := eng.Grid()
		require.True(t, grid.IsFull())
		require.Equal(t, points.Score(grid), score)
		require.Equal(t, score, gameMetric.Score)
		require.Equal(t, 3, gameMetric.Agent)
		require.Equal(t, 25, gameMetric.Moves)
		require.NotEmpty(t, gameMetric.ID)
		require.Len(t, moveMetrics, 25)
		require.Equal(t, 1, moveMetrics[0].Step)
		require.Equal(t, agent.cards[24].String(), moveMetrics[24].Card)
		require.Equal(t, 24, moveMetrics[24].Iterations)
	})

	t.Run("the same seed deals the same cards", func(t *testing.T) {
		first := &mockAgent{cells: rowMajor(5)}
		second := &mockAgent{cells: rowMajor(5)}

		_, _, _, err := LocalEngine(first, points, WithSeed(11)).Run()
		require.NoError(t, err)
		_, _, _, err = LocalEngine(second, points, WithSeed(11)).Run()
		require.NoError(t, err)

		require.Equal(t, first.cards, second.cards)
	})

	t.Run("remaining time shrinks across placements", func(t *testing.T) {
		agent := &mockAgent{cells: rowMajor(3), delay: time.Millisecond}

		_, _, _, err := LocalEngine(agent, points, WithGridSize(3), WithGameTime(time.Second)).Run()

		require.NoError(t, err)
		require.Equal(t, time.Second, agent.budget[0])
		for i := 1; i < len(agent.budget); i++ {
			require.Less(t, agent.budget[i], agent.budget[i-1])
		}
	})

	t.Run("placing into a filled cell ends the game with zero", func(t *testing.T) {
		agent := &mockAgent{cells: func(int) game.Cell { return game.Cell{Row: 0, Col: 0} }}

		score, gameMetric, moveMetrics, err := LocalEngine(agent, points, WithSeed(1)).Run()

		require.ErrorIs(t, err, ErrIllegalPlay)
		require.Zero(t, score)
		require.NotEmpty(t, gameMetric.Err)
		require.Len(t, moveMetrics, 2, "The offending placement should still be recorded")
	})

	t.Run("placing outside the grid is illegal", func(t *testing.T) {
		agent := &mockAgent{cells: func(int) game.Cell { return game.Cell{Row: 5, Col: 0} }}

		_, _, _, err := LocalEngine(agent, points).Run()

		require.ErrorIs(t, err, ErrIllegalPlay)
	})

	t.Run("running out of time ends the game with zero", func(t *testing.T) {
		agent := &mockAgent{cells: rowMajor(2), delay: 20 * time.Millisecond}

		score, _, _, err := LocalEngine(agent, points, WithGridSize(2), WithGameTime(10*time.Millisecond)).Run()

		require.ErrorIs(t, err, ErrTimeExpired)
		require.Zero(t, score)
	})

	t.Run("a grid larger than the deck panics", func(t *testing.T) {
		require.Panics(t, func() {
			LocalEngine(&mockAgent{}, points, WithGridSize(8))
		})
	})
}
