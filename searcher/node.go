package searcher

import (
	"squares/game"
	"sync"
)

// node is a hypothetical grid reached after a number of placements. A node
// owns its children; there are no parent pointers, each iteration records the
// path it walked instead.
type node struct {
	grid       game.Grid
	placements int
	rewards    float64
	visits     float64
	children   []*node
}

// Nodes are recycled across batches since every batch discards all but the
// first two levels of the tree.
var nodePool = sync.Pool{
	New: func() any {
		return &node{}
	},
}

func newRoot(grid *game.Grid) *node {
	n := nodePool.Get().(*node)
	n.reset()
	n.grid.CopyFrom(grid)
	n.placements = grid.Filled()
	return n
}

func newChild(parent *node, cell game.Cell, card game.Card) *node {
	n := nodePool.Get().(*node)
	n.reset()
	n.grid.CopyFrom(&parent.grid)
	n.grid.Place(cell, card)
	n.placements = parent.placements + 1
	return n
}

func (n *node) reset() {
	n.placements = 0
	n.rewards = 0
	n.visits = 0
	n.children = n.children[:0]
}

func (n *node) isLeaf() bool {
	return len(n.children) == 0
}

func (n *node) isTerminal() bool {
	return n.placements == n.grid.NumCells()
}

// expand adds one child per empty cell, row-major, each holding card in that
// cell. Expanding a terminal node leaves it childless.
func (n *node) expand(card game.Card) {
	if n.isTerminal() {
		return
	}
	if !n.isLeaf() {
		panic("node is already expanded")
	}
	for _, cell := range n.grid.EmptyCells() {
		n.children = append(n.children, newChild(n, cell, card))
	}
}

// pick selects the child with the highest UCT score.
func (n *node) pick(policy uct) *node {
	if n.isLeaf() {
		panic("cannot select from a node without children")
	}

	logN := policy.logVisits(n.visits)
	best := n.children[0]
	maxScore := policy.evaluate(best.rewards, best.visits, logN)
	for _, child := range n.children[1:] {
		if score := policy.evaluate(child.rewards, child.visits, logN); score > maxScore {
			maxScore = score
			best = child
		}
	}
	return best
}

// bestChild selects the child with the highest mean outcome. Ties, including
// a node whose children were never visited, go to the first child.
func (n *node) bestChild(policy uct) *node {
	if n.isLeaf() {
		panic("node has no children")
	}

	best := n.children[0]
	maxMean := policy.mean(best.rewards, best.visits)
	for _, child := range n.children[1:] {
		if mean := policy.mean(child.rewards, child.visits); mean > maxMean {
			maxMean = mean
			best = child
		}
	}
	return best
}

func (n *node) update(value float64) {
	n.visits++
	n.rewards += value
}

// prune releases every grandchild of n, keeping the statistics of n's children.
func (n *node) prune() {
	for _, child := range n.children {
		for _, grandChild := range child.children {
			release(grandChild)
		}
		clear(child.children)
		child.children = child.children[:0]
	}
}

// release returns a subtree to the node pool.
func release(n *node) {
	if n == nil {
		return
	}
	for _, child := range n.children {
		release(child)
	}
	clear(n.children)
	n.children = n.children[:0]
	nodePool.Put(n)
}
