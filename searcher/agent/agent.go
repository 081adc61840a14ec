package agent

import (
	"squares/experiments/metrics"
	"squares/game"
	"time"
)

type Agent interface {
	// Init prepares the agent for a new game.
	Init()
	// GetPlay returns the cell for card and search metrics (if collected).
	// remaining is the game time left for all remaining placements.
	GetPlay(card game.Card, remaining time.Duration) (game.Cell, metrics.SearchMetric)
	Name() string
}
