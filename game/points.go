package game

import (
	"fmt"
	"strings"
)

// Score maps a grid to a real-valued outcome. Implementations must be pure:
// the search calls it once per rollout.
type Score func(*Grid) float64

// PointSystem assigns points to each hand type and scores a grid by summing
// every row and column.
type PointSystem struct {
	Name   string
	Points [NumHandTypes]float64
}

// AmericanPointSystem is the standard Poker Squares scoring.
func AmericanPointSystem() *PointSystem {
	return &PointSystem{
		Name: "american",
		Points: [NumHandTypes]float64{
			HighCard:      0,
			OnePair:       2,
			TwoPair:       5,
			ThreeOfAKind:  10,
			Straight:      15,
			Flush:         20,
			FullHouse:     25,
			FourOfAKind:   50,
			StraightFlush: 75,
			RoyalFlush:    100,
		},
	}
}

// BritishPointSystem rewards straights over flushes.
func BritishPointSystem() *PointSystem {
	return &PointSystem{
		Name: "british",
		Points: [NumHandTypes]float64{
			HighCard:      0,
			OnePair:       1,
			TwoPair:       3,
			ThreeOfAKind:  6,
			Straight:      12,
			Flush:         5,
			FullHouse:     10,
			FourOfAKind:   16,
			StraightFlush: 30,
			RoyalFlush:    30,
		},
	}
}

// PointSystemByName looks up a built-in point system.
func PointSystemByName(name string) (*PointSystem, error) {
	switch strings.ToLower(name) {
	case "", "american":
		return AmericanPointSystem(), nil
	case "british":
		return BritishPointSystem(), nil
	default:
		return nil, fmt.Errorf("unknown point system %q", name)
	}
}

// HandScore is the points for a single line.
func (ps *PointSystem) HandScore(line []Card) float64 {
	return ps.Points[Classify(line)]
}

// Score totals all rows and columns.
func (ps *PointSystem) Score(g *Grid) float64 {
	total := 0.0
	for i := 0; i < g.Size(); i++ {
		total += ps.HandScore(g.Row(i))
		total += ps.HandScore(g.Col(i))
	}
	return total
}

func (ps *PointSystem) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s point system:", ps.Name)
	for h := HandType(0); h < NumHandTypes; h++ {
		fmt.Fprintf(&sb, " %s=%g", h, ps.Points[h])
	}
	return sb.String()
}
