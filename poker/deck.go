package poker

import (
	"github.com/lox/parallelpoker/internal/randutil"
)

// DeckSize is the number of canonical cards.
const DeckSize = NumSuits * NumRanks

// Intner is the slice of a random source the deck needs. *rand.Rand from
// math/rand/v2 and *randutil.LCG both satisfy it.
type Intner interface {
	IntN(n int) int
}

// NewDeck returns the 52 canonical cards in deterministic order: hearts,
// diamonds, clubs, spades, each from two to ace. Every call returns fresh cards.
func NewDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// FullDeck builds the run's deck: canonical cards, then dead cards, then wild
// cards, skipping anything whose id appears in removed. Removal wins even when
// a card is also listed as dead or wild.
func FullDeck(dead, removed, wild []Card) []Card {
	excluded := idSet(removed)
	cards := make([]Card, 0, DeckSize+len(dead)+len(wild))
	for _, group := range [][]Card{NewDeck(), dead, wild} {
		for _, c := range group {
			if _, ok := excluded[c.ID]; ok {
				continue
			}
			cards = append(cards, c)
		}
	}
	return cards
}

// Shuffle returns a Fisher-Yates permutation of cards drawn from rng. The
// input slice is left untouched.
func Shuffle(cards []Card, rng Intner) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ShuffleSeeded shuffles with a linear-congruential generator so that equal
// seeds always produce equal permutations of equal inputs.
func ShuffleSeeded(cards []Card, seed int64) []Card {
	return Shuffle(cards, randutil.NewLCG(seed))
}

// RemoveCards returns deck without any card whose id appears in toRemove.
// Duplicate ids on either side are fine; every matching entry is dropped.
func RemoveCards(deck, toRemove []Card) []Card {
	if len(toRemove) == 0 {
		out := make([]Card, len(deck))
		copy(out, deck)
		return out
	}
	excluded := idSet(toRemove)
	out := make([]Card, 0, len(deck))
	for _, c := range deck {
		if _, ok := excluded[c.ID]; !ok {
			out = append(out, c)
		}
	}
	return out
}

func idSet(cards []Card) map[string]struct{} {
	set := make(map[string]struct{}, len(cards))
	for _, c := range cards {
		set[c.ID] = struct{}{}
	}
	return set
}

// DeckModifications are the run-scoped changes to the deck. They survive
// across rounds and are reset when a new run starts.
type DeckModifications struct {
	DeadCards            []Card
	WildCards            []Card
	RemovedCards         []Card
	DeadCardRemovalCount int
}

// Deck builds the full deck for these modifications.
func (m DeckModifications) Deck() []Card {
	return FullDeck(m.DeadCards, m.RemovedCards, m.WildCards)
}

// ActiveDeadCards returns dead cards that have not been removed.
func (m DeckModifications) ActiveDeadCards() []Card {
	return RemoveCards(m.DeadCards, m.RemovedCards)
}

// ActiveWildCards returns wild cards that have not been removed.
func (m DeckModifications) ActiveWildCards() []Card {
	return RemoveCards(m.WildCards, m.RemovedCards)
}

// IsRemoved reports whether id is excluded from future decks.
func (m DeckModifications) IsRemoved(id string) bool {
	for _, c := range m.RemovedCards {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can modify the result freely.
func (m DeckModifications) Clone() DeckModifications {
	return DeckModifications{
		DeadCards:            CloneCards(m.DeadCards),
		WildCards:            CloneCards(m.WildCards),
		RemovedCards:         CloneCards(m.RemovedCards),
		DeadCardRemovalCount: m.DeadCardRemovalCount,
	}
}

// CloneCards returns a copy of cards, preserving nil.
func CloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}
