package game

import (
	"fmt"
	"strings"
)

type Suit int

const (
	Clubs    Suit = iota // 0
	Diamonds             // 1
	Hearts               // 2
	Spades               // 3
)

const NumSuits = 4

type Rank int

const (
	Ace   Rank = iota // 0
	Two               // 1
	Three             // 2
	Four              // 3
	Five              // 4
	Six               // 5
	Seven             // 6
	Eight             // 7
	Nine              // 8
	Ten               // 9
	Jack              // 10
	Queen             // 11
	King              // 12
)

const NumRanks = 13

// NumCards is the size of a standard deck
const NumCards = NumRanks * NumSuits

const (
	rankChars = "A23456789TJQK"
	suitChars = "CDHS"
)

// Card identifies one of the 52 cards of a standard deck by its index,
// rank-major within each suit.
type Card int

// NoCard marks an empty grid cell
const NoCard Card = -1

func NewCard(rank Rank, suit Suit) Card {
	return Card(int(suit)*NumRanks + int(rank))
}

func (c Card) Rank() Rank {
	return Rank(int(c) % NumRanks)
}

func (c Card) Suit() Suit {
	return Suit(int(c) / NumRanks)
}

func (c Card) Valid() bool {
	return c >= 0 && c < NumCards
}

func (c Card) String() string {
	if !c.Valid() {
		return "--"
	}
	return string([]byte{rankChars[c.Rank()], suitChars[c.Suit()]})
}

// ParseCard reads a two character card such as "AS", "TD" or "7h".
func ParseCard(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 2 {
		return NoCard, fmt.Errorf("invalid card %q: expected rank and suit", s)
	}
	rank := strings.IndexByte(rankChars, s[0])
	if rank < 0 {
		return NoCard, fmt.Errorf("invalid card %q: unknown rank %q", s, s[0])
	}
	suit := strings.IndexByte(suitChars, s[1])
	if suit < 0 {
		return NoCard, fmt.Errorf("invalid card %q: unknown suit %q", s, s[1])
	}
	return NewCard(Rank(rank), Suit(suit)), nil
}
