package searcher

import "math"

// uct scores children by mean outcome plus an exploration bonus. epsilon keeps
// unvisited children finite and bounds the tie-break noise, which only has to
// separate children with identical statistics.
type uct struct {
	c       float64        // Exploration constant
	epsilon float64        // Must be positive
	noise   func() float64 // Uniform in [0, 1), nil disables tie-breaking
}

func newUCT(c, epsilon float64, noise func() float64) uct {
	if epsilon <= 0 {
		panic("epsilon must be positive")
	}
	return uct{c: c, epsilon: epsilon, noise: noise}
}

// logVisits is the ln(N+1) term shared by all children of a node with N visits.
func (u uct) logVisits(parentVisits float64) float64 {
	return math.Log(parentVisits + 1)
}

func (u uct) mean(q, n float64) float64 {
	return q / (n + u.epsilon)
}

// evaluate computes q/(n+ε) + c*sqrt(ln(N+1)/(n+ε)) + noise*ε
func (u uct) evaluate(q, n, logN float64) float64 {
	score := u.mean(q, n) + u.c*math.Sqrt(logN/(n+u.epsilon))
	if u.noise != nil {
		score += u.noise() * u.epsilon
	}
	return score
}
