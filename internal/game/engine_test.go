package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/parallelpoker/internal/config"
	"github.com/lox/parallelpoker/internal/runid"
	"github.com/lox/parallelpoker/internal/shop"
	"github.com/lox/parallelpoker/poker"
)

func TestStartRun(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := started(t, e)

	assert.Equal(t, PhasePreDraw, s.Phase)
	assert.NoError(t, runid.Validate(s.RunID))
	assert.Equal(t, 100, s.Credits)
	assert.Equal(t, 1, s.BetAmount)
	assert.Equal(t, 5, s.SelectedHandCount)
	assert.Equal(t, 5, s.HandCount)
	assert.Equal(t, 1, s.MinimumBet)
	assert.Equal(t, 1, s.Round)
	assert.Equal(t, 1, s.MaxDraws)
	assert.Equal(t, 250, s.Rewards.Multiplier(poker.RoyalFlush))
	assert.Empty(t, s.Purchases)
	assert.False(t, s.IsEndlessMode)
}

func TestStartRunDiscardsPreviousRun(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := started(t, e)
	s.Credits = 5
	s.ExtraCards = 2
	s.Purchases[shop.ExtraCard] = 2
	s.DeckMods.RemovedCards = s.DeckMods.Deck()[:3]

	fresh := mustApply(t, e.StartRun(s))
	assert.Equal(t, 100, fresh.Credits)
	assert.Zero(t, fresh.ExtraCards)
	assert.Empty(t, fresh.Purchases)
	assert.Empty(t, fresh.DeckMods.RemovedCards)
	assert.NotEqual(t, s.RunID, fresh.RunID)
}

func TestEndRunAndReturnToMenu(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)

	menu := e.NewState()
	assert.False(t, e.EndRun(menu).Changed())
	assert.False(t, e.ReturnToMenu(menu).Changed())

	s := started(t, e)
	over := mustApply(t, e.EndRun(s))
	assert.True(t, over.GameOver())
	assert.Nil(t, over.Failure)
	assert.False(t, e.EndRun(over).Changed())

	back := mustApply(t, e.ReturnToMenu(over))
	assert.Equal(t, PhaseMenu, back.Phase)
	assert.Empty(t, back.RunID)
}

func TestSetBetAndHandCount(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := started(t, e)
	s.MinimumBet = 2
	s.BetAmount = 2

	assert.False(t, e.SetBet(s, 1).Changed(), "below minimum")
	assert.False(t, e.SetBet(s, 2).Changed(), "unchanged")
	s = mustApply(t, e.SetBet(s, 7))
	assert.Equal(t, 7, s.BetAmount)

	assert.False(t, e.SetHandCount(s, 0).Changed())
	assert.False(t, e.SetHandCount(s, 6).Changed())
	s = mustApply(t, e.SetHandCount(s, 3))
	assert.Equal(t, 3, s.SelectedHandCount)
	assert.Equal(t, 21, s.DealCost())

	s.Phase = PhasePlaying
	assert.False(t, e.SetBet(s, 3).Changed())
	assert.False(t, e.SetHandCount(s, 4).Changed())
}

func TestOutcomeResolve(t *testing.T) {
	t.Parallel()
	prev := State{Credits: 1}
	next := State{Credits: 2}
	assert.Equal(t, next, Applied(next).Resolve(prev))
	assert.Equal(t, prev, NoOp("nope").Resolve(prev))
	assert.Equal(t, "nope", NoOp("nope").Reason)
	assert.Equal(t, "applied", KindApplied.String())
	assert.Equal(t, "noop", KindNoOp.String())
}

func TestStateClone(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := playing(t, e, "Ah Kh Qh Jh 2c", 100)
	s = mustApply(t, e.CheatForceDevilsDeal(s))
	s.Purchases[shop.WildCard] = 1
	s.ShopOptions = []shop.ItemID{shop.WildCard}
	s.Failure = &Failure{Condition: ConditionBetLimit}

	c := s.Clone()
	c.DealtCards[0].ID = "x"
	c.Held[0] = true
	c.RoundDeck[0].ID = "y"
	c.DevilsDeal.Offer.Cost = -1
	c.Purchases[shop.WildCard] = 9
	c.ShopOptions[0] = shop.DeadCard
	c.Failure.Value = 3
	c.Rewards[poker.HighCard] = 99

	assert.Equal(t, "Ah", s.DealtCards[0].ID)
	assert.False(t, s.Held[0])
	assert.NotEqual(t, "y", s.RoundDeck[0].ID)
	assert.NotEqual(t, -1, s.DevilsDeal.Offer.Cost)
	assert.Equal(t, 1, s.Purchases[shop.WildCard])
	assert.Equal(t, shop.WildCard, s.ShopOptions[0])
	assert.Zero(t, s.Failure.Value)
	assert.Zero(t, s.Rewards[poker.HighCard])
}

func TestEngineDoesNotShareConfig(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	e := NewEngine(cfg, WithLogger(quietLogger()))
	cfg.Rewards[10] = 1
	assert.Equal(t, 250, e.Config().Rewards[10])
}

// Random action sequences must never modify their input state and must keep
// the books consistent.
func TestTransitionsArePure(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, func(c *config.Config) {
		c.DevilsDeal.BaseChance = 50
		c.Shop.Frequency = 2
		c.Endless.StartRound = 6
	})
	rng := e.rng

	actions := []func(State) Outcome{
		e.Deal,
		e.Draw,
		e.FinishAnimation,
		func(s State) Outcome {
			if s.LastBatch == nil {
				return e.SettleRound(s, 0)
			}
			return e.SettleRound(s, s.LastBatch.TotalPayout)
		},
		e.LeaveShop,
		e.ToggleDevilsDealHold,
		func(s State) Outcome { return e.ToggleHold(s, rng.IntN(7)) },
		func(s State) Outcome { return e.SetBet(s, 1+rng.IntN(5)) },
		func(s State) Outcome { return e.SetHandCount(s, 1+rng.IntN(12)) },
		func(s State) Outcome {
			if len(s.ShopOptions) == 0 {
				return NoOp("empty")
			}
			return e.Purchase(s, s.ShopOptions[rng.IntN(len(s.ShopOptions))], "2c")
		},
	}

	for run := 0; run < 20; run++ {
		s := started(t, e)
		for step := 0; step < 400 && !s.GameOver(); step++ {
			before := s.Clone()
			out := actions[rng.IntN(len(actions))](s)
			require.Equal(t, before, s, "transition mutated its input")
			if !out.Changed() {
				continue
			}
			s = out.Next
			require.GreaterOrEqual(t, s.Credits, 0)
			require.LessOrEqual(t, s.HeldCount(), 5)
			require.LessOrEqual(t, s.SelectedHandCount, s.HandCount)
			require.GreaterOrEqual(t, s.BetAmount, 1)
		}
	}
}
