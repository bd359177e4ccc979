package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/parallelpoker/internal/config"
	"github.com/lox/parallelpoker/poker"
)

func noDevilsDeal(c *config.Config) {
	c.DevilsDeal.BaseChance = 0
	c.DevilsDeal.MaxChance = 0
	c.DevilsDeal.ChanceIncrease = 0
}

func cardIDs(cards []poker.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestDealChargesAndDeals(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, noDevilsDeal)
	s := started(t, e)
	s = mustApply(t, e.SetBet(s, 3))

	next := mustApply(t, e.Deal(s))
	assert.Equal(t, PhasePlaying, next.Phase)
	assert.Equal(t, 100-15, next.Credits)
	assert.Len(t, next.DealtCards, 5)
	assert.Len(t, next.Held, 5)
	assert.Len(t, next.RoundDeck, 47)
	assert.Equal(t, 1, next.DealCount)
	assert.Nil(t, next.DevilsDeal.Offer)
	assert.ElementsMatch(t, cardIDs(poker.NewDeck()), append(cardIDs(next.DealtCards), cardIDs(next.RoundDeck)...))

	// The input state is left alone.
	assert.Equal(t, PhasePreDraw, s.Phase)
	assert.Equal(t, 100, s.Credits)
}

func TestDealRejectedWhenUnaffordable(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := started(t, e)
	s.Credits = 4

	assert.False(t, e.CanDeal(s))
	out := e.Deal(s)
	assert.False(t, out.Changed())
	assert.Contains(t, out.Reason, "need 5 credits")
	assert.Equal(t, s, out.Resolve(s))

	s.Credits = 5
	assert.True(t, e.CanDeal(s))
}

func TestDealWithExtraCards(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, noDevilsDeal)
	s := started(t, e)
	s.ExtraCards = 2

	next := mustApply(t, e.Deal(s))
	assert.Len(t, next.DealtCards, 7)
	assert.Len(t, next.Held, 7)
	assert.Len(t, next.RoundDeck, 45)
}

func TestDevilsDealRolledOnDeal(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, func(c *config.Config) {
		c.DevilsDeal.BaseChance = 100
		c.DevilsDeal.MaxChance = 100
	})

	offers := 0
	for i := 0; i < 20; i++ {
		next := mustApply(t, e.Deal(started(t, e)))
		offer := next.DevilsDeal.Offer
		if offer == nil {
			// Only hands no single card can make pay go without an offer.
			continue
		}
		offers++
		assert.NotContains(t, cardIDs(next.RoundDeck), offer.Card.ID)
		assert.NotContains(t, cardIDs(next.DealtCards), offer.Card.ID)
		assert.Len(t, next.RoundDeck, 46)
		assert.Positive(t, offer.Multiplier)
		assert.False(t, next.DevilsDeal.Held)
	}
	assert.Positive(t, offers)
}

func TestHoldLimit(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := playing(t, e, "Ah Kh Qh Jh Th 2c", 100)

	s = hold(t, e, s, 0, 1, 2, 3, 4)
	assert.Equal(t, 5, s.HeldCount())

	out := e.ToggleHold(s, 5)
	assert.False(t, out.Changed())
	assert.Contains(t, out.Reason, "five cards")

	// Releasing is always allowed.
	s = mustApply(t, e.ToggleHold(s, 0))
	assert.Equal(t, 4, s.HeldCount())

	assert.False(t, e.ToggleHold(s, 6).Changed())
	assert.False(t, e.ToggleHold(s, -1).Changed())
}

func TestHoldOutsidePlay(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := started(t, e)
	assert.False(t, e.ToggleHold(s, 0).Changed())
	assert.False(t, e.ToggleDevilsDealHold(s).Changed())
	assert.False(t, e.Draw(s).Changed())
	assert.False(t, e.FinishAnimation(s).Changed())
}

func TestFullRoundSettlement(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := started(t, e)
	s = mustApply(t, e.SetBet(s, 10))

	s = mustApply(t, e.Deal(s))
	assert.Equal(t, 50, s.Credits)
	s = mustApply(t, e.Draw(s))
	assert.Equal(t, PhaseAnimation, s.Phase)
	require.NotNil(t, s.LastBatch)
	assert.Equal(t, 5, s.LastBatch.Hands())
	s = mustApply(t, e.FinishAnimation(s))
	assert.Equal(t, PhaseResults, s.Phase)

	s = mustApply(t, e.SettleRound(s, 80))
	assert.Equal(t, 130, s.Credits)
	assert.Equal(t, 80, s.TotalEarnings)
	assert.Equal(t, 2, s.Round)
	assert.Equal(t, PhasePreDraw, s.Phase)
	assert.Equal(t, 80, s.LastRound.Payout)
	assert.Equal(t, 5, s.LastRound.Hands)
	assert.Nil(t, s.DealtCards)
	assert.Nil(t, s.DevilsDeal.Offer)
}

func TestFinalDrawKeepsHeldCards(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := playing(t, e, "Ah Ad Ac 7s 2h", 100)
	s = hold(t, e, s, 0, 1, 2)

	s = mustApply(t, e.Draw(s))
	require.NotNil(t, s.LastBatch)
	for _, r := range s.LastBatch.Results {
		assert.Equal(t, "Ah", r.Hand.Cards[0].ID)
		assert.Equal(t, "Ad", r.Hand.Cards[1].ID)
		assert.Equal(t, "Ac", r.Hand.Cards[2].ID)
		assert.GreaterOrEqual(t, int(r.Rank), int(poker.ThreeOfAKind))
		assert.Positive(t, r.Payout)
	}
	assert.Equal(t, 5, s.LastBatch.Wins)
	assert.Equal(t, []bool{true, true, true, false, false}, s.Held)
	assert.Equal(t, s.LastBatch.FinalStreak, s.StreakCounter)
	assert.Equal(t, 5, s.PeakStreak)
}

func TestRedrawBeforeFinalDraw(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := playing(t, e, "2c 3d 4h 5s 7c", 100)
	s.MaxDraws = 2
	s = hold(t, e, s, 0)
	top := cardIDs(s.RoundDeck[:4])

	s = mustApply(t, e.Draw(s))
	assert.Equal(t, PhasePlaying, s.Phase)
	assert.Equal(t, 1, s.DrawsUsed)
	assert.True(t, s.IsFinalDraw())
	assert.Equal(t, "2c", s.DealtCards[0].ID)
	assert.Equal(t, top, cardIDs(s.DealtCards[1:]))
	assert.Len(t, s.RoundDeck, 43)
	assert.Equal(t, []bool{true, false, false, false, false}, s.Held)

	s = mustApply(t, e.Draw(s))
	assert.Equal(t, PhaseAnimation, s.Phase)
	assert.Equal(t, 2, s.DrawsUsed)
}

func TestExtraCardsNeedFiveHeld(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := playing(t, e, "2c Ah Kh 9d Qh Jh Th", 100)
	s = hold(t, e, s, 1, 2, 4, 5)

	out := e.Draw(s)
	assert.False(t, out.Changed())
	assert.Contains(t, out.Reason, "exactly 5")

	s = hold(t, e, s, 6)
	s = mustApply(t, e.Draw(s))
	assert.Equal(t, []string{"Ah", "Kh", "Qh", "Jh", "Th"}, cardIDs(s.DealtCards))
	for _, r := range s.LastBatch.Results {
		assert.Equal(t, poker.RoyalFlush, r.Rank)
	}
}

func TestBaseHand(t *testing.T) {
	t.Parallel()
	dealt := poker.MustParseCards("2c 3c 4c 5c 6c 7c 8c")

	base, idx := baseHand(dealt, []bool{false, true, false, true, false, true, false})
	assert.Equal(t, []string{"3c", "5c", "7c", "2c", "4c"}, cardIDs(base))
	assert.Equal(t, []int{0, 1, 2}, idx)

	five := dealt[:5]
	base, idx = baseHand(five, []bool{false, true, false, false, true})
	assert.Equal(t, cardIDs(five), cardIDs(base))
	assert.Equal(t, []int{1, 4}, idx)

	assert.Equal(t, 0, firstFree(nil))
	assert.Equal(t, 2, firstFree([]int{0, 1, 3}))
	assert.Equal(t, -1, firstFree([]int{0, 1, 2, 3, 4}))
}

func TestDevilsDealChargedWhenHeldAtFinalDraw(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := playing(t, e, "Ah Kh Qh Jh 2c", 10_000)
	s = mustApply(t, e.CheatForceDevilsDeal(s))
	offer := *s.DevilsDeal.Offer
	assert.NotContains(t, cardIDs(s.RoundDeck), offer.Card.ID)

	s = hold(t, e, s, 0, 1, 2, 3)
	s = mustApply(t, e.ToggleDevilsDealHold(s))
	assert.Equal(t, 5, s.HeldCount())
	assert.False(t, e.ToggleHold(s, 4).Changed())
	assert.Equal(t, 10_000, s.Credits, "holding the deal is free")

	s = mustApply(t, e.Draw(s))
	assert.Equal(t, 10_000-offer.Cost, s.Credits)
	assert.Equal(t, offer.Card.ID, s.DealtCards[4].ID)
	want := poker.Evaluate([5]poker.Card(s.DealtCards))
	for _, r := range s.LastBatch.Results {
		assert.Equal(t, s.DealtCards, r.Hand.Cards[:])
		assert.Equal(t, want, r.Rank)
	}
	assert.Equal(t, 5, s.LastBatch.Wins)
}

func TestDevilsDealDeclinedIsFree(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := playing(t, e, "Ah Kh Qh Jh 2c", 100)
	s = mustApply(t, e.CheatForceDevilsDeal(s))
	offer := *s.DevilsDeal.Offer

	s = mustApply(t, e.ToggleDevilsDealHold(s))
	s = mustApply(t, e.ToggleDevilsDealHold(s))
	s = hold(t, e, s, 0, 1, 2, 3)

	s = mustApply(t, e.Draw(s))
	assert.Equal(t, 100, s.Credits)
	for _, r := range s.LastBatch.Results {
		assert.NotEqual(t, offer.Card.ID, r.Hand.Cards[4].ID)
	}
}

func TestDevilsDealSkippedWhenUnaffordable(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := playing(t, e, "Ah Kh Qh Jh 2c", 0)
	s = mustApply(t, e.CheatForceDevilsDeal(s))
	require.Positive(t, s.DevilsDeal.Offer.Cost)
	s = hold(t, e, s, 0, 1, 2, 3)
	s = mustApply(t, e.ToggleDevilsDealHold(s))

	s = mustApply(t, e.Draw(s))
	assert.Zero(t, s.Credits)
	assert.False(t, s.Held[4])
}

func TestDecorrelatedDealsUseDifferentSeeds(t *testing.T) {
	t.Parallel()
	draw := func(decorrelate bool, dealCount int) []string {
		e := newTestEngine(t, func(c *config.Config) { c.DecorrelateDeals = decorrelate })
		s := playing(t, e, "2c 3d 4h 5s 7c", 100)
		s.DealCount = dealCount
		s = mustApply(t, e.Draw(s))
		var out []string
		for _, r := range s.LastBatch.Results {
			out = append(out, r.Hand.String())
		}
		return out
	}

	assert.Equal(t, draw(false, 1), draw(false, 2))
	assert.NotEqual(t, draw(true, 1), draw(true, 2))
}
