package agent

import (
	"fmt"
	"squares/experiments/metrics"
	"squares/game"
	"squares/searcher"
	"time"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns an agent that plays the cell chosen by the search.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) Init() {
	a.mcts.Init()
}

func (a evaluationAgent) GetPlay(card game.Card, remaining time.Duration) (game.Cell, metrics.SearchMetric) {
	return a.mcts.GetPlay(card, remaining)
}

func (a evaluationAgent) Name() string {
	return fmt.Sprintf("mcts(seed=%d)", a.mcts.Seed())
}
