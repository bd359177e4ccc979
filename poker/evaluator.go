package poker

import (
	"errors"
	"fmt"
	"math/bits"
)

// HandRank is the video-poker category of a five-card hand, ordered from
// weakest to strongest.
type HandRank uint8

const (
	HighCard HandRank = iota
	JacksOrBetter
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	FiveOfAKind
	StraightFlush
	RoyalFlush
)

// NumHandRanks is the number of distinct hand ranks.
const NumHandRanks = int(RoyalFlush) + 1

// ErrHandSize is returned when a hand does not hold exactly five cards.
var ErrHandSize = errors.New("poker: hand must contain exactly 5 cards")

var handRankNames = [NumHandRanks]string{
	"High Card",
	"Jacks or Better",
	"Two Pair",
	"Three of a Kind",
	"Straight",
	"Flush",
	"Full House",
	"Four of a Kind",
	"Five of a Kind",
	"Straight Flush",
	"Royal Flush",
}

var handRankKeys = [NumHandRanks]string{
	"high-card",
	"one-pair",
	"two-pair",
	"three-of-a-kind",
	"straight",
	"flush",
	"full-house",
	"four-of-a-kind",
	"five-of-a-kind",
	"straight-flush",
	"royal-flush",
}

// String returns a human-readable hand description.
func (r HandRank) String() string {
	if int(r) >= NumHandRanks {
		return "Unknown"
	}
	return handRankNames[r]
}

// Key returns the identifier used in reward tables and configuration files.
func (r HandRank) Key() string {
	if int(r) >= NumHandRanks {
		return "unknown"
	}
	return handRankKeys[r]
}

// ParseHandRank converts a configuration key such as "full-house" into a HandRank.
func ParseHandRank(key string) (HandRank, error) {
	for i, k := range handRankKeys {
		if k == key {
			return HandRank(i), nil
		}
	}
	return 0, fmt.Errorf("unknown hand rank %q", key)
}

// HandRanks returns every rank from strongest to weakest.
func HandRanks() []HandRank {
	ranks := make([]HandRank, NumHandRanks)
	for i := range ranks {
		ranks[i] = RoyalFlush - HandRank(i)
	}
	return ranks
}

// Evaluate classifies a five-card hand. Wild cards take whichever rank and
// suit maximises the result; dead cards fill a slot and contribute nothing.
// The result depends only on the multiset of cards, never their order.
func Evaluate(cards [5]Card) HandRank {
	var p profile
	for _, c := range cards {
		p.add(c)
	}
	return p.best()
}

// EvaluateSlice is Evaluate for callers holding a slice.
func EvaluateSlice(cards []Card) (HandRank, error) {
	if len(cards) != 5 {
		return HighCard, fmt.Errorf("%w: got %d", ErrHandSize, len(cards))
	}
	var arr [5]Card
	copy(arr[:], cards)
	return Evaluate(arr), nil
}

// profile is the order-free summary of a hand that the category checks run on.
type profile struct {
	counts   [Ace + 1]uint8
	suits    [NumSuits]uint8
	rankMask uint16
	live     int
	wilds    int
}

func (p *profile) add(c Card) {
	switch {
	case c.Dead:
	case c.Wild:
		p.wilds++
	default:
		p.counts[c.Rank]++
		p.suits[c.Suit]++
		p.rankMask |= 1 << c.Rank
		p.live++
	}
}

// best walks the categories strongest first and returns the first one some
// substitution of the wild cards can reach.
func (p *profile) best() HandRank {
	switch {
	case p.canStraightFlush(Ace, Ace):
		return RoyalFlush
	case p.canStraightFlush(Five, Ace):
		return StraightFlush
	case p.fullSlots() && p.maxCount()+p.wilds >= 5:
		return FiveOfAKind
	case p.maxCount()+p.wilds >= 4:
		return FourOfAKind
	case p.fullSlots() && p.distinctRanks() <= 2:
		return FullHouse
	case p.fullSlots() && p.singleSuit():
		return Flush
	case p.canStraight(Five, Ace):
		return Straight
	case p.maxCount()+p.wilds >= 3:
		return ThreeOfAKind
	case p.formablePairs() >= 2:
		return TwoPair
	case p.canHighPair():
		return JacksOrBetter
	default:
		return HighCard
	}
}

// fullSlots reports whether all five slots are usable, i.e. there is no dead card.
func (p *profile) fullSlots() bool {
	return p.live+p.wilds == 5
}

func (p *profile) maxCount() int {
	m := 0
	for r := Two; r <= Ace; r++ {
		if int(p.counts[r]) > m {
			m = int(p.counts[r])
		}
	}
	return m
}

func (p *profile) distinctRanks() int {
	return bits.OnesCount16(p.rankMask)
}

func (p *profile) singleSuit() bool {
	if p.live == 0 {
		return true
	}
	for _, n := range p.suits {
		if int(n) == p.live {
			return true
		}
	}
	return false
}

func (p *profile) canStraightFlush(lowHigh, highHigh Rank) bool {
	return p.singleSuit() && p.canStraight(lowHigh, highHigh)
}

// canStraight reports whether the live ranks, all distinct, fit inside some
// five-rank window whose top card lies in [lowHigh, highHigh]. Wild cards fill
// the gaps. The window topped by a five is the wheel.
func (p *profile) canStraight(lowHigh, highHigh Rank) bool {
	if !p.fullSlots() || p.distinctRanks() != p.live {
		return false
	}
	for high := lowHigh; high <= highHigh; high++ {
		window := straightWindow(high)
		if p.rankMask&^window == 0 {
			return true
		}
	}
	return false
}

func straightWindow(high Rank) uint16 {
	if high == Five {
		return 1<<Ace | 1<<Two | 1<<Three | 1<<Four | 1<<Five
	}
	var mask uint16
	for r := high - 4; r <= high; r++ {
		mask |= 1 << r
	}
	return mask
}

// formablePairs counts the pairs the hand can show: natural pairs first, then
// wilds matched to singletons, then leftover wilds paired with each other.
func (p *profile) formablePairs() int {
	pairs, singles := 0, 0
	for r := Two; r <= Ace; r++ {
		switch {
		case p.counts[r] >= 2:
			pairs++
		case p.counts[r] == 1:
			singles++
		}
	}
	matched := min(p.wilds, singles)
	return pairs + matched + (p.wilds-matched)/2
}

// canHighPair reports whether a pair of jacks or better can be shown.
func (p *profile) canHighPair() bool {
	if p.wilds >= 2 {
		return true
	}
	for r := Jack; r <= Ace; r++ {
		if int(p.counts[r])+p.wilds >= 2 {
			return true
		}
	}
	return false
}
