package devilsdeal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/parallelpoker/internal/randutil"
	"github.com/lox/parallelpoker/poker"
)

func hand5(s string) [5]poker.Card {
	var h [5]poker.Card
	copy(h[:], poker.MustParseCards(s))
	return h
}

func TestCost(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 540, Cost(9, 2, 10, 300))
	assert.Equal(t, 0, Cost(0, 5, 5, 100))
	// 1 * 1 * 3 * 50% = 1.5 rounds away from zero
	assert.Equal(t, 2, Cost(1, 1, 3, 50))
}

func TestChanceAndCostPercent(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10.0, Chance(cfg, 0))
	assert.Equal(t, 25.0, Chance(cfg, 3))
	assert.Equal(t, 50.0, Chance(cfg, 100))

	assert.Equal(t, 100.0, CostPercent(cfg, 0))
	assert.Equal(t, 70.0, CostPercent(cfg, 3))
	assert.Equal(t, 1.0, CostPercent(cfg, 50))

	cfg.MinCostPercent = 0
	assert.Equal(t, 1.0, CostPercent(cfg, 50), "never below 1%")
}

func TestBestMultiplier(t *testing.T) {
	t.Parallel()
	h := hand5("Ah Kh Qh Jh 2c")
	mult, pos := BestMultiplier(h, poker.NewCard(poker.Ten, poker.Hearts), poker.DefaultRewardTable())
	assert.Equal(t, 250, mult)
	assert.Equal(t, 4, pos)

	mult, _ = BestMultiplier(h, poker.NewCard(poker.Three, poker.Spades), poker.DefaultRewardTable())
	assert.Equal(t, 0, mult)
}

func TestFindBest(t *testing.T) {
	t.Parallel()
	h := hand5("Ah Kh Qh Jh 2c")
	available := poker.RemoveCards(poker.NewDeck(), h[:])

	top := FindBest(h, available, poker.DefaultRewardTable(), 2, DefaultCandidates)
	require.Len(t, top, DefaultCandidates)
	assert.Equal(t, "Th", top[0].Card.ID)
	assert.Equal(t, 250, top[0].Multiplier)
	assert.Equal(t, 500, top[0].Value)
	// Next best are the hearts that complete a flush, in deck order.
	assert.Equal(t, "2h", top[1].Card.ID)
	assert.Equal(t, "3h", top[2].Card.ID)
	assert.Equal(t, 6, top[1].Multiplier)

	ids := map[string]bool{}
	for _, c := range top {
		assert.False(t, ids[c.Card.ID])
		ids[c.Card.ID] = true
	}
}

func TestFindBestDeduplicatesAndLimits(t *testing.T) {
	t.Parallel()
	h := hand5("2h 5d 9c Js Kh")
	ace := poker.NewCard(poker.Ace, poker.Spades)
	top := FindBest(h, []poker.Card{ace, ace}, poker.DefaultRewardTable(), 1, 3)
	assert.Len(t, top, 1)
	assert.Empty(t, FindBest(h, nil, poker.DefaultRewardTable(), 1, 3))
	assert.Empty(t, FindBest(h, []poker.Card{ace}, poker.DefaultRewardTable(), 1, 0))
}

func TestMakeOfferPicksAmongTopCandidates(t *testing.T) {
	t.Parallel()
	h := hand5("Ah Kh Qh Jh 2c")
	available := poker.RemoveCards(poker.NewDeck(), h[:])
	params := Params{Table: poker.DefaultRewardTable(), Bet: 2, HandCount: 10, CostPercent: 100, Candidates: 3}

	rng := randutil.New(7)
	picked := map[string]int{}
	for i := 0; i < 300; i++ {
		offer, ok := MakeOffer(rng, h, available, params)
		require.True(t, ok)
		picked[offer.Card.ID]++
		assert.Equal(t, Cost(offer.Multiplier, 2, 10, 100), offer.Cost)
	}
	assert.Len(t, picked, 3)
	for id := range picked {
		assert.Contains(t, []string{"Th", "2h", "3h"}, id)
	}
}

func TestMakeOfferNeedsPayingCard(t *testing.T) {
	t.Parallel()
	h := hand5("2h 5d 9c 3s 7h")
	params := Params{Table: poker.DefaultRewardTable(), Bet: 1, HandCount: 1, CostPercent: 100}
	_, ok := MakeOffer(randutil.New(1), h, poker.MustParseCards("4c 8d"), params)
	assert.False(t, ok)

	// A wild card always pays with a paying-capable hand.
	wild := poker.Card{ID: "wild-x", Rank: poker.Two, Suit: poker.Clubs, Wild: true}
	offer, ok := MakeOffer(randutil.New(1), hand5("Ah 5d 9c 3s 7h"), []poker.Card{wild}, params)
	require.True(t, ok)
	assert.Equal(t, "wild-x", offer.Card.ID)
	assert.Equal(t, 1, offer.Multiplier)
}

func TestTriggers(t *testing.T) {
	t.Parallel()
	rng := randutil.New(3)
	hits := 0
	for i := 0; i < 10000; i++ {
		if Triggers(rng, 25) {
			hits++
		}
	}
	assert.InDelta(t, 2500, hits, 200)
	assert.False(t, Triggers(rng, 0))
	assert.True(t, Triggers(rng, 100))
}

func TestValidate(t *testing.T) {
	t.Parallel()
	bad := DefaultConfig()
	bad.MaxChance = 5
	bad.Candidates = 0
	assert.Error(t, bad.Validate())
}
