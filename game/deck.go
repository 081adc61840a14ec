package game

import (
	"squares/utils"

	"golang.org/x/exp/rand"
)

// NewDeck returns all 52 cards in index order.
func NewDeck() []Card {
	deck := make([]Card, NumCards)
	for i := range deck {
		deck[i] = Card(i)
	}
	return deck
}

// Shuffle permutes cards in place.
func Shuffle(cards []Card, rng *rand.Rand) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// Without returns a copy of cards with the first occurrence of card removed.
// It panics if card is missing since a card can only be dealt once.
func Without(cards []Card, card Card) []Card {
	i := utils.FindIndex(cards, card)
	if i < 0 {
		panic("card " + card.String() + " has already been dealt")
	}
	rest := make([]Card, 0, len(cards)-1)
	rest = append(rest, cards[:i]...)
	return append(rest, cards[i+1:]...)
}
