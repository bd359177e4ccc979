package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/parallelpoker/internal/randutil"
)

func ids(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	require.Len(t, deck, DeckSize)

	seen := make(map[string]bool)
	for _, c := range deck {
		assert.False(t, seen[c.ID], "duplicate card %s", c.ID)
		seen[c.ID] = true
		assert.True(t, c.IsCanonical())
	}

	assert.Equal(t, "2h", deck[0].ID)
	assert.Equal(t, "Ah", deck[12].ID)
	assert.Equal(t, "2d", deck[13].ID)
	assert.Equal(t, "As", deck[51].ID)

	// Fresh slice each call.
	other := NewDeck()
	other[0] = NewCard(Ace, Spades)
	assert.Equal(t, "2h", NewDeck()[0].ID)
}

func TestFullDeckOrderAndRemoval(t *testing.T) {
	rng := randutil.New(1)
	dead := []Card{NewDeadCard("dead-a", rng), NewDeadCard("dead-b", rng)}
	wild := []Card{NewWildCard("wild-a", rng)}
	removed := MustParseCards("2h Ks")

	deck := FullDeck(dead, removed, wild)
	require.Len(t, deck, 52-2+2+1)

	got := ids(deck)
	assert.NotContains(t, got, "2h")
	assert.NotContains(t, got, "Ks")
	assert.Equal(t, []string{"dead-a", "dead-b", "wild-a"}, got[len(got)-3:])
	assert.Equal(t, "3h", got[0])
}

func TestFullDeckRemovalWins(t *testing.T) {
	rng := randutil.New(2)
	dead := NewDeadCard("dead-a", rng)
	wild := NewWildCard("wild-a", rng)

	deck := FullDeck([]Card{dead}, []Card{dead, wild}, []Card{wild})
	assert.Len(t, deck, 52)
	assert.NotContains(t, ids(deck), "dead-a")
	assert.NotContains(t, ids(deck), "wild-a")
}

func TestFullDeckSizeProperty(t *testing.T) {
	rng := randutil.New(3)
	canonical := NewDeck()
	for trial := 0; trial < 200; trial++ {
		var dead, wild, removed []Card
		nDead, nWild, nRemoved := rng.IntN(4), rng.IntN(4), rng.IntN(6)
		for i := 0; i < nDead; i++ {
			dead = append(dead, NewDeadCard("dead-"+string(rune('a'+i)), rng))
		}
		for i := 0; i < nWild; i++ {
			wild = append(wild, NewWildCard("wild-"+string(rune('a'+i)), rng))
		}
		picked := map[string]bool{}
		for i := 0; i < nRemoved; i++ {
			c := canonical[rng.IntN(len(canonical))]
			if !picked[c.ID] {
				picked[c.ID] = true
				removed = append(removed, c)
			}
		}
		if len(dead) > 0 && rng.IntN(2) == 0 {
			removed = append(removed, dead[0])
		}

		mods := DeckModifications{DeadCards: dead, WildCards: wild, RemovedCards: removed}
		removedCanonical := 0
		for _, c := range removed {
			if c.IsCanonical() {
				removedCanonical++
			}
		}
		want := 52 - removedCanonical + len(mods.ActiveDeadCards()) + len(mods.ActiveWildCards())
		require.Len(t, mods.Deck(), want, "trial %d", trial)
	}
}

func TestShuffleIsBijectionAndPure(t *testing.T) {
	deck := NewDeck()
	original := ids(deck)

	shuffled := Shuffle(deck, randutil.New(7))
	require.Len(t, shuffled, len(deck))
	assert.Equal(t, original, ids(deck), "input must not be mutated")
	assert.ElementsMatch(t, original, ids(shuffled))
	assert.NotEqual(t, original, ids(shuffled))
}

func TestShuffleSeededDeterministic(t *testing.T) {
	deck := NewDeck()
	for seed := int64(0); seed < 20; seed++ {
		a := ShuffleSeeded(deck, seed)
		b := ShuffleSeeded(deck, seed)
		require.Equal(t, ids(a), ids(b), "seed %d", seed)
		assert.ElementsMatch(t, ids(deck), ids(a))
	}
	assert.NotEqual(t, ids(ShuffleSeeded(deck, 1)), ids(ShuffleSeeded(deck, 2)))
}

func TestShuffleSmallInputs(t *testing.T) {
	assert.Empty(t, ShuffleSeeded(nil, 1))
	one := MustParseCards("Ah")
	assert.Equal(t, one, ShuffleSeeded(one, 5))
}

func TestRemoveCards(t *testing.T) {
	deck := append(MustParseCards("Ah Kh Qh"), MustParseCards("Ah")...)

	out := RemoveCards(deck, MustParseCards("Ah Ah"))
	assert.Equal(t, []string{"Kh", "Qh"}, ids(out))
	assert.Len(t, deck, 4, "input must not be mutated")

	assert.Equal(t, ids(deck), ids(RemoveCards(deck, nil)))
	assert.Empty(t, RemoveCards(nil, MustParseCards("Ah")))
}

func TestDeckModificationsClone(t *testing.T) {
	mods := DeckModifications{DeadCards: MustParseCards("Ah"), DeadCardRemovalCount: 2}
	clone := mods.Clone()
	clone.DeadCards[0] = NewCard(Two, Clubs)
	clone.DeadCardRemovalCount++

	assert.Equal(t, "Ah", mods.DeadCards[0].ID)
	assert.Equal(t, 2, mods.DeadCardRemovalCount)
	assert.Nil(t, clone.WildCards)
	assert.True(t, DeckModifications{RemovedCards: MustParseCards("Qs")}.IsRemoved("Qs"))
}

func BenchmarkFullDeckShuffle(b *testing.B) {
	mods := DeckModifications{}
	for i := 0; i < b.N; i++ {
		_ = ShuffleSeeded(mods.Deck(), int64(i))
	}
}
