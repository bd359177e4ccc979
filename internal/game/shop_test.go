package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/parallelpoker/internal/shop"
	"github.com/lox/parallelpoker/poker"
)

func shopState(t *testing.T, e *Engine, credits int, options ...shop.ItemID) State {
	t.Helper()
	s := started(t, e)
	s.Phase = PhaseShop
	s.Credits = credits
	s.ShopOptions = options
	return s
}

// reoffer puts id back on the shelf.
func reoffer(s State, id shop.ItemID) State {
	s.ShopOptions = append(s.ShopOptions, id)
	return s
}

func TestBuyHandCount(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := shopState(t, e, 1_000, shop.HandCount, shop.WildCard)

	s = mustApply(t, e.BuyHandCount(s))
	assert.Equal(t, 950, s.Credits)
	assert.Equal(t, 10, s.HandCount)
	assert.Equal(t, 10, s.SelectedHandCount, "selection follows when it was at the maximum")
	assert.Equal(t, 1, s.Purchases[shop.HandCount])
	assert.Equal(t, []shop.ItemID{shop.WildCard}, s.ShopOptions)

	cost, ok := e.ItemCost(s, shop.HandCount)
	require.True(t, ok)
	assert.Equal(t, 75, cost)

	s.SelectedHandCount = 3
	s = mustApply(t, e.BuyHandCount(reoffer(s, shop.HandCount)))
	assert.Equal(t, 875, s.Credits)
	assert.Equal(t, 15, s.HandCount)
	assert.Equal(t, 3, s.SelectedHandCount)
}

func TestBuyExtraDrawSellsOut(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := shopState(t, e, 1_000, shop.ExtraDraw)

	s = mustApply(t, e.BuyExtraDraw(s))
	assert.Equal(t, 2, s.MaxDraws)
	assert.Equal(t, 500, s.Credits)

	out := e.BuyExtraDraw(reoffer(s, shop.ExtraDraw))
	assert.False(t, out.Changed())
	assert.Equal(t, "sold out", out.Reason)
}

func TestBuyExtraCard(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := shopState(t, e, 1_000, shop.ExtraCard)

	s = mustApply(t, e.BuyExtraCard(s))
	assert.Equal(t, 1, s.ExtraCards)
	assert.Equal(t, 800, s.Credits)
	s = mustApply(t, e.BuyExtraCard(reoffer(s, shop.ExtraCard)))
	assert.Equal(t, 2, s.ExtraCards)
	assert.Equal(t, 400, s.Credits)
}

func TestExtraCardNeedsABigEnoughDeck(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := shopState(t, e, 1_000, shop.ExtraCard)
	s.DeckMods.RemovedCards = poker.NewDeck()[:47]

	out := e.BuyExtraCard(s)
	assert.False(t, out.Changed())
	assert.Contains(t, out.Reason, "too small")
}

func TestBuyWildCard(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := shopState(t, e, 1_000, shop.WildCard)

	s = mustApply(t, e.BuyWildCard(s))
	require.Len(t, s.DeckMods.WildCards, 1)
	wild := s.DeckMods.WildCards[0]
	assert.True(t, wild.Wild)
	assert.True(t, strings.HasPrefix(wild.ID, "wild-"), wild.ID)
	assert.Equal(t, 1, s.WildCardCount)
	assert.Len(t, s.DeckMods.Deck(), 53)
	assert.Equal(t, 700, s.Credits)
}

func TestBuyRemoveCard(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := shopState(t, e, 1_000, shop.RemoveCard)

	out := e.BuyRemoveCard(s, "")
	assert.False(t, out.Changed())
	assert.Contains(t, out.Reason, "choose a card")

	assert.False(t, e.BuyRemoveCard(s, "Zz").Changed())

	s = mustApply(t, e.BuyRemoveCard(s, "Ah"))
	assert.True(t, s.DeckMods.IsRemoved("Ah"))
	assert.Len(t, s.DeckMods.Deck(), 51)
	assert.Equal(t, 960, s.Credits)

	out = e.BuyRemoveCard(reoffer(s, shop.RemoveCard), "Ah")
	assert.False(t, out.Changed())
	assert.Contains(t, out.Reason, "already removed")
}

func TestRemoveCardKeepsADealableDeck(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := shopState(t, e, 1_000, shop.RemoveCard)
	s.ExtraCards = 1
	s.DeckMods.RemovedCards = poker.NewDeck()[:46]
	require.Len(t, s.DeckMods.Deck(), 6)

	out := e.BuyRemoveCard(s, "As")
	assert.False(t, out.Changed())
	assert.Contains(t, out.Reason, "too small")
}

func TestDeadCards(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := shopState(t, e, 10, shop.RemoveDeadCard, shop.DeadCard)

	out := e.BuyRemoveDeadCard(s)
	assert.False(t, out.Changed())
	assert.Contains(t, out.Reason, "no dead cards")

	s = mustApply(t, e.BuyDeadCard(s))
	assert.Equal(t, 110, s.Credits, "dead cards pay out")
	require.Len(t, s.DeckMods.ActiveDeadCards(), 1)
	dead := s.DeckMods.DeadCards[0]
	assert.True(t, dead.Dead)
	assert.True(t, strings.HasPrefix(dead.ID, "dead-"), dead.ID)
	assert.Contains(t, cardIDs(s.DeckMods.Deck()), dead.ID)

	s = mustApply(t, e.BuyRemoveDeadCard(s))
	assert.Equal(t, 50, s.Credits)
	assert.Empty(t, s.DeckMods.ActiveDeadCards())
	assert.Equal(t, 1, s.DeckMods.DeadCardRemovalCount)
	assert.NotContains(t, cardIDs(s.DeckMods.Deck()), dead.ID)
}

func TestDevilsDealUpgrades(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := shopState(t, e, 1_000_000, shop.DevilsDealChance, shop.DevilsDealDiscount)

	s = mustApply(t, e.BuyDevilsDealChance(s))
	assert.Equal(t, 15.0, e.DevilsDealChance(s))
	s = mustApply(t, e.BuyDevilsDealDiscount(s))
	assert.Equal(t, 90.0, e.DevilsDealCostPercent(s))

	s.DevilsDeal.ChancePurchases = 8
	out := e.BuyDevilsDealChance(reoffer(s, shop.DevilsDealChance))
	assert.False(t, out.Changed())
	assert.Contains(t, out.Reason, "maximum")

	s.DevilsDeal.DiscountPurchases = 10
	out = e.BuyDevilsDealDiscount(reoffer(s, shop.DevilsDealDiscount))
	assert.False(t, out.Changed())
	assert.Contains(t, out.Reason, "minimum")
}

func TestPurchaseRules(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := shopState(t, e, 100, shop.WildCard, shop.HandCount)

	out := e.BuyExtraCard(s)
	assert.False(t, out.Changed())
	assert.Contains(t, out.Reason, "not on offer")

	out = e.BuyWildCard(s)
	assert.False(t, out.Changed())
	assert.Contains(t, out.Reason, "costs 300")

	closed := s
	closed.Phase = PhasePreDraw
	assert.False(t, e.BuyHandCount(closed).Changed())

	_, ok := e.ItemCost(s, "mystery")
	assert.False(t, ok)
}

func TestLeaveShop(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := shopState(t, e, 100, shop.WildCard)

	s = mustApply(t, e.LeaveShop(s))
	assert.Equal(t, PhasePreDraw, s.Phase)
	assert.Empty(t, s.ShopOptions)
	assert.False(t, e.LeaveShop(s).Changed())
}

func TestShopOnlyOffersAvailableItems(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := started(t, e)
	s.Purchases[shop.ExtraDraw] = 1
	s.DevilsDeal.ChancePurchases = 8

	for i := 0; i < 200; i++ {
		options := e.rollShop(s)
		require.Len(t, options, 3)
		assert.NotContains(t, options, shop.ExtraDraw)
		assert.NotContains(t, options, shop.DevilsDealChance)
		assert.NotContains(t, options, shop.RemoveDeadCard)
	}
}
