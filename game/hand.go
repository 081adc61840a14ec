package game

import "sort"

type HandType int

const (
	HighCard      HandType = iota // 0
	OnePair                       // 1
	TwoPair                       // 2
	ThreeOfAKind                  // 3
	Straight                      // 4
	Flush                         // 5
	FullHouse                     // 6
	FourOfAKind                   // 7
	StraightFlush                 // 8
	RoyalFlush                    // 9
)

const NumHandTypes = 10

// MinPatternLength is the shortest complete line that can form a straight or a flush
const MinPatternLength = 3

var handNames = [NumHandTypes]string{
	"high card", "one pair", "two pair", "three of a kind", "straight",
	"flush", "full house", "four of a kind", "straight flush", "royal flush",
}

func (h HandType) String() string {
	if h < 0 || h >= NumHandTypes {
		return "unknown"
	}
	return handNames[h]
}

// Classify ranks the cards of one grid line. Empty cells are skipped, so
// partial lines only ever score rank groups; straights and flushes need a
// complete line.
func Classify(line []Card) HandType {
	cards := make([]Card, 0, len(line))
	for _, c := range line {
		if c != NoCard {
			cards = append(cards, c)
		}
	}
	if len(cards) == 0 {
		return HighCard
	}

	// Tally cards by rank
	var rankCounts [NumRanks]int
	for _, c := range cards {
		rankCounts[c.Rank()]++
	}
	groups := make([]int, 0, len(cards))
	for _, n := range rankCounts {
		if n > 0 {
			groups = append(groups, n)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(groups)))

	complete := len(cards) == len(line) && len(line) >= MinPatternLength
	flush := complete && isFlush(cards)
	straight := complete && len(groups) == len(cards) && isStraight(rankCounts, len(cards))

	switch {
	case straight && flush:
		if rankCounts[Ace] > 0 && rankCounts[King] > 0 {
			return RoyalFlush
		}
		return StraightFlush
	case groups[0] >= 4:
		return FourOfAKind
	case groups[0] == 3 && len(groups) > 1 && groups[1] >= 2:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case groups[0] == 3:
		return ThreeOfAKind
	case groups[0] == 2 && len(groups) > 1 && groups[1] == 2:
		return TwoPair
	case groups[0] == 2:
		return OnePair
	default:
		return HighCard
	}
}

func isFlush(cards []Card) bool {
	for _, c := range cards[1:] {
		if c.Suit() != cards[0].Suit() {
			return false
		}
	}
	return true
}

// isStraight checks n distinct ranks for a run, with the ace either low or high.
func isStraight(rankCounts [NumRanks]int, n int) bool {
	lo, hi := -1, -1
	for r, count := range rankCounts {
		if count > 0 {
			if lo < 0 {
				lo = r
			}
			hi = r
		}
	}
	if hi-lo == n-1 {
		return true
	}
	if rankCounts[Ace] == 0 {
		return false
	}
	// Ace high: the remaining ranks must run up to the king
	for r := NumRanks - n + 1; r < NumRanks; r++ {
		if rankCounts[r] == 0 {
			return false
		}
	}
	return true
}
