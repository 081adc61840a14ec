package engine

import (
	"errors"
	"squares/experiments/metrics"
	"squares/game"
)

var (
	ErrIllegalPlay = errors.New("illegal play")
	ErrTimeExpired = errors.New("game time expired")
)

type Engine interface {
	// Run plays one game until the grid is full or the agent breaks a rule. A
	// game that ends in a rule violation scores 0 and returns the violation.
	Run() (score float64, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
	// Grid returns the grid as the last game left it.
	Grid() *game.Grid
}
