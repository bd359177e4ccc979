package poker

import (
	"fmt"
	"strings"
)

// Suit represents a card suit.
type Suit uint8

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// NumSuits is the number of suits in a canonical deck.
const NumSuits = 4

// Suits lists the suits in canonical deck order.
var Suits = [NumSuits]Suit{Hearts, Diamonds, Clubs, Spades}

// String returns the single-letter suit code.
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

// Symbol returns the unicode suit glyph used by the terminal shell.
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true for hearts and diamonds.
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Aces are high (14) and play low only in the wheel.
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of ranks per suit.
const NumRanks = 13

const rankChars = "23456789TJQKA"

// String returns the single-character rank code.
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankChars[r-Two])
}

// Card is a single playing card. Canonical cards carry a stable ID derived
// from rank and suit; dead and wild cards are minted by the shop with unique
// IDs and a cosmetic rank and suit.
type Card struct {
	ID   string
	Rank Rank
	Suit Suit
	Dead bool
	Wild bool
}

// NewCard creates a canonical card.
func NewCard(rank Rank, suit Suit) Card {
	return Card{ID: CanonicalID(rank, suit), Rank: rank, Suit: suit}
}

// CanonicalID returns the stable identifier of a canonical card, e.g. "Ah".
func CanonicalID(rank Rank, suit Suit) string {
	return rank.String() + suit.String()
}

// NewDeadCard creates a dead card with the given id and a random face.
func NewDeadCard(id string, rng Intner) Card {
	c := randomFace(id, rng)
	c.Dead = true
	return c
}

// NewWildCard creates a wild card with the given id and a random face.
func NewWildCard(id string, rng Intner) Card {
	c := randomFace(id, rng)
	c.Wild = true
	return c
}

func randomFace(id string, rng Intner) Card {
	return Card{
		ID:   id,
		Rank: Two + Rank(rng.IntN(NumRanks)),
		Suit: Suits[rng.IntN(NumSuits)],
	}
}

// IsLive reports whether the card contributes its own rank and suit to
// evaluation. Dead takes precedence over wild.
func (c Card) IsLive() bool {
	return !c.Dead && !c.Wild
}

// IsCanonical reports whether the card belongs to the standard 52.
func (c Card) IsCanonical() bool {
	return c.IsLive() && c.ID == CanonicalID(c.Rank, c.Suit)
}

// String returns a compact representation: "Ah", "Ah(w)" for wild, "Ah(d)" for dead.
func (c Card) String() string {
	face := c.Rank.String() + c.Suit.String()
	switch {
	case c.Dead:
		return face + "(d)"
	case c.Wild:
		return face + "(w)"
	default:
		return face
	}
}

// ParseCard parses a canonical card such as "As", "Td" or "10h".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q: want rank and suit", s)
	}

	idx := strings.IndexByte(rankChars, strings.ToUpper(s[:1])[0])
	if idx < 0 {
		return Card{}, fmt.Errorf("invalid rank in card %q", s)
	}

	var suit Suit
	switch s[1] {
	case 'h', 'H':
		suit = Hearts
	case 'd', 'D':
		suit = Diamonds
	case 'c', 'C':
		suit = Clubs
	case 's', 'S':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}

	return NewCard(Two+Rank(idx), suit), nil
}

// MustParseCards parses a space separated list of cards and panics on error.
// It exists for tests and fixtures.
func MustParseCards(s string) []Card {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			panic(err)
		}
		cards = append(cards, c)
	}
	return cards
}

// Hand is one five-card outcome, typically one of the parallel hands of a draw.
type Hand struct {
	ID    string
	Cards [5]Card
}

// Evaluate returns the rank of the hand.
func (h Hand) Evaluate() HandRank {
	return Evaluate(h.Cards)
}

// String renders the hand's cards separated by spaces.
func (h Hand) String() string {
	parts := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
