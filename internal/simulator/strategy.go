package simulator

import (
	"sort"

	"github.com/lox/parallelpoker/internal/game"
	"github.com/lox/parallelpoker/internal/shop"
	"github.com/lox/parallelpoker/poker"
)

// Rand is the random source strategies may use.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Plan is what a hold strategy wants before the next draw.
type Plan struct {
	Held     []bool
	TakeDeal bool
}

// HoldStrategy decides which dealt cards to keep.
type HoldStrategy func(s game.State, rng Rand) Plan

// BuyStrategy spends credits while the shop is open.
type BuyStrategy func(e *game.Engine, s game.State) game.State

// HoldStrategies lists the hold strategies by name.
var HoldStrategies = map[string]HoldStrategy{
	"optimal": HoldOptimal,
	"nothing": HoldNothing,
	"random":  HoldRandom,
}

// BuyStrategies lists the buy strategies by name.
var BuyStrategies = map[string]BuyStrategy{
	"greedy": BuyGreedy,
	"none":   BuyNone,
}

// StrategyNames returns the sorted keys of a strategy map.
func StrategyNames[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HoldNothing throws every card back.
func HoldNothing(s game.State, _ Rand) Plan {
	return Plan{Held: make([]bool, len(s.DealtCards))}
}

// HoldRandom keeps each card with even odds, up to five, and takes a Devil's
// Deal half the time.
func HoldRandom(s game.State, rng Rand) Plan {
	plan := Plan{Held: make([]bool, len(s.DealtCards))}
	n := 0
	for i := range plan.Held {
		if n < 5 && rng.IntN(2) == 0 {
			plan.Held[i] = true
			n++
		}
	}
	if s.DevilsDeal.Offer != nil && n < 5 && rng.IntN(2) == 0 {
		plan.TakeDeal = true
	}
	return plan
}

// HoldOptimal plays a simple jacks-or-better heuristic: keep made hands,
// wild cards and pairs, then four to a flush, then high cards. With extra
// cards it first picks the strongest five.
func HoldOptimal(s game.State, _ Rand) Plan {
	cards := s.DealtCards
	plan := Plan{Held: make([]bool, len(cards))}

	idx := bestFive(cards)
	if len(cards) > 5 && s.IsFinalDraw() {
		for _, i := range idx {
			plan.Held[i] = true
		}
		return plan
	}

	var five [5]poker.Card
	for j, i := range idx {
		five[j] = cards[i]
	}
	for j, keep := range holdFive(five) {
		if keep {
			plan.Held[idx[j]] = true
		}
	}

	if offer := s.DevilsDeal.Offer; offer != nil && len(cards) == 5 && s.IsFinalDraw() {
		current := s.Rewards.Multiplier(poker.Evaluate(five))
		if offer.Multiplier > current && offer.Cost <= s.Credits-s.DealCost() {
			for i := range plan.Held {
				plan.Held[i] = i != offer.Position
			}
			plan.TakeDeal = true
		}
	}
	return plan
}

// bestFive returns the indices of the strongest five cards, in deal order.
func bestFive(cards []poker.Card) []int {
	if len(cards) <= 5 {
		idx := make([]int, len(cards))
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	var best []int
	bestRank := poker.HandRank(0)
	var pick func(start int, chosen []int)
	pick = func(start int, chosen []int) {
		if len(chosen) == 5 {
			var hand [5]poker.Card
			for j, i := range chosen {
				hand[j] = cards[i]
			}
			if r := poker.Evaluate(hand); best == nil || r > bestRank {
				best = append([]int(nil), chosen...)
				bestRank = r
			}
			return
		}
		for i := start; i <= len(cards)-(5-len(chosen)); i++ {
			pick(i+1, append(chosen, i))
		}
	}
	pick(0, make([]int, 0, 5))
	return best
}

// holdFive applies the heuristic to exactly five cards.
func holdFive(hand [5]poker.Card) [5]bool {
	var keep [5]bool
	rank := poker.Evaluate(hand)

	if rank >= poker.Straight {
		for i, c := range hand {
			keep[i] = !c.Dead
		}
		return keep
	}

	var ranks [poker.Ace + 1]int
	var suits [4]int
	for _, c := range hand {
		if c.IsLive() {
			ranks[c.Rank]++
			suits[c.Suit]++
		}
	}

	held := false
	for i, c := range hand {
		switch {
		case c.Dead:
		case c.Wild:
			keep[i] = true
		case ranks[c.Rank] >= 2:
			keep[i] = true
			held = true
		}
	}
	if held {
		return keep
	}

	for suit, n := range suits {
		if n >= 4 {
			for i, c := range hand {
				if c.IsLive() && int(c.Suit) == suit {
					keep[i] = true
				}
			}
			return keep
		}
	}

	high := 0
	for _, r := range []poker.Rank{poker.Ace, poker.King, poker.Queen, poker.Jack} {
		for i, c := range hand {
			if high < 2 && c.IsLive() && c.Rank == r {
				keep[i] = true
				high++
			}
		}
	}
	return keep
}

// BuyNone never buys anything.
func BuyNone(_ *game.Engine, s game.State) game.State {
	return s
}

// buyPriority is the order BuyGreedy considers items in.
var buyPriority = []shop.ItemID{
	shop.HandCount,
	shop.ExtraDraw,
	shop.WildCard,
	shop.RemoveDeadCard,
	shop.ExtraCard,
	shop.DevilsDealChance,
	shop.DevilsDealDiscount,
	shop.RemoveCard,
}

// BuyGreedy buys the most useful affordable items while keeping three deals'
// worth of credits in reserve. When a deal is out of reach it sells out for a
// dead card.
func BuyGreedy(e *game.Engine, s game.State) game.State {
	for {
		bought := false
		reserve := 3 * s.MinimumBet * s.SelectedHandCount
		for _, id := range buyPriority {
			if !offered(s, id) {
				continue
			}
			cost, ok := e.ItemCost(s, id)
			if !ok || cost > s.Credits-reserve {
				continue
			}
			target := ""
			if id == shop.RemoveCard {
				target = removalTarget(s)
			}
			out := e.Purchase(s, id, target)
			if out.Changed() {
				s = out.Next
				bought = true
				break
			}
		}
		if !bought {
			break
		}
	}

	if s.Credits < s.MinimumBet && offered(s, shop.DeadCard) {
		s = e.BuyDeadCard(s).Resolve(s)
	}
	return s
}

func offered(s game.State, id shop.ItemID) bool {
	for _, opt := range s.ShopOptions {
		if opt == id {
			return true
		}
	}
	return false
}

// removalTarget picks the lowest canonical card still in the deck.
func removalTarget(s game.State) string {
	var target poker.Card
	found := false
	for _, c := range s.DeckMods.Deck() {
		if c.IsCanonical() && (!found || c.Rank < target.Rank) {
			target = c
			found = true
		}
	}
	return target.ID
}
