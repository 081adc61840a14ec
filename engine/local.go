package engine

import (
	"fmt"
	"squares/experiments/metrics"
	"squares/game"
	"squares/meta"
	"squares/searcher/agent"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

type Option func(e *localEngine)

type localEngine struct {
	agent    agent.Agent
	agentID  int
	points   *game.PointSystem
	size     int
	gameTime time.Duration
	rng      *rand.Rand
	grid     *game.Grid
}

func WithGridSize(size int) Option {
	return func(e *localEngine) {
		if size > 0 {
			e.size = size
		}
	}
}

func WithGameTime(gameTime time.Duration) Option {
	return func(e *localEngine) {
		if gameTime > 0 {
			e.gameTime = gameTime
		}
	}
}

// WithSeed fixes the deal.
func WithSeed(seed uint64) Option {
	return func(e *localEngine) {
		if seed != 0 {
			e.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithAgentID tags the game record with the agent's configuration.
func WithAgentID(id int) Option {
	return func(e *localEngine) {
		e.agentID = id
	}
}

// LocalEngine plays a single game of one agent against a shuffled deck.
func LocalEngine(a agent.Agent, points *game.PointSystem, options ...Option) Engine {
	if a == nil {
		panic("Must specify an agent")
	}
	if points == nil {
		panic("Must specify a point system")
	}
	e := &localEngine{
		agent:    a,
		points:   points,
		size:     meta.GRID_SIZE,
		gameTime: meta.GAME_TIME,
	}
	for _, option := range options {
		option(e)
	}
	if e.size*e.size > game.NumCards {
		panic(fmt.Sprintf("a %dx%d grid needs more than %d cards", e.size, e.size, game.NumCards))
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(frand.Uint64n(1<<63) + 1))
	}
	e.grid = game.NewGrid(e.size)
	return e
}

func (e *localEngine) Run() (float64, metrics.GameMetric, []metrics.MoveMetric, error) {
	deck := game.NewDeck()
	game.Shuffle(deck, e.rng)
	e.grid.Reset()

	gameMetric := metrics.GameMetric{
		ID:        uuid.NewString(),
		Agent:     e.agentID,
		StartTime: time.Now(),
	}
	log.Info().Msgf("game %s: %s starts with %v", gameMetric.ID, e.agent.Name(), e.gameTime)

	moveMetrics := make([]metrics.MoveMetric, 0, e.grid.NumCells())
	err := e.play(deck, &moveMetrics)

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Moves = len(moveMetrics)
	if err != nil {
		gameMetric.Err = err.Error()
		log.Warn().Msgf("game %s: %v", gameMetric.ID, err)
		return 0, gameMetric, moveMetrics, err
	}

	gameMetric.Score = e.points.Score(e.grid)
	log.Info().Msgf("game %s: %s scored %g in %v", gameMetric.ID, e.agent.Name(), gameMetric.Score, gameMetric.Duration)
	return gameMetric.Score, gameMetric, moveMetrics, nil
}

func (e *localEngine) play(deck []game.Card, moveMetrics *[]metrics.MoveMetric) error {
	e.agent.Init()
	remaining := e.gameTime
	for step := 1; step <= e.grid.NumCells(); step++ {
		card := deck[step-1]

		start := time.Now()
		cell, searchMetric := e.agent.GetPlay(card, remaining)
		remaining -= time.Since(start)

		*moveMetrics = append(*moveMetrics, metrics.MoveMetric{
			Step:         step,
			Card:         card.String(),
			Row:          cell.Row,
			Col:          cell.Col,
			SearchMetric: searchMetric,
		})

		if remaining < 0 {
			return fmt.Errorf("placement %d: %w (over by %v)", step, ErrTimeExpired, -remaining)
		}
		if !e.grid.InBounds(cell) || !e.grid.IsEmpty(cell) {
			return fmt.Errorf("placement %d: %w: %v at %v", step, ErrIllegalPlay, card, cell)
		}
		e.grid.Place(cell, card)
	}
	return nil
}

func (e *localEngine) Grid() *game.Grid {
	return e.grid.Clone()
}
