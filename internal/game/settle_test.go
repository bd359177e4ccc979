package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/parallelpoker/internal/config"
	"github.com/lox/parallelpoker/internal/parallel"
	"github.com/lox/parallelpoker/internal/shop"
)

// resultsState is a run waiting to be settled.
func resultsState(round, credits, bet, count, minBet int) State {
	return State{
		Phase:             PhaseResults,
		RunID:             "run",
		Credits:           credits,
		BetAmount:         bet,
		SelectedHandCount: count,
		HandCount:         count,
		MinimumBet:        minBet,
		BaseMinimumBet:    minBet,
		Round:             round,
		MaxDraws:          1,
		Purchases:         map[shop.ItemID]int{},
	}
}

func batchOf(hands, wins int) *parallel.Batch {
	return &parallel.Batch{Results: make([]parallel.HandResult, hands), Wins: wins}
}

func TestSettleAutoAdjust(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		credits   int
		bet       int
		count     int
		minBet    int
		wantBet   int
		wantCount int
		gameOver  bool
	}{
		{name: "affordable", credits: 100, bet: 10, count: 5, minBet: 2, wantBet: 10, wantCount: 5},
		{name: "lower bet", credits: 20, bet: 10, count: 5, minBet: 2, wantBet: 4, wantCount: 5},
		{name: "lower hand count", credits: 7, bet: 2, count: 5, minBet: 2, wantBet: 2, wantCount: 3},
		{name: "one hand left", credits: 3, bet: 3, count: 4, minBet: 3, wantBet: 3, wantCount: 1},
		{name: "broke", credits: 1, bet: 2, count: 5, minBet: 2, gameOver: true},
	}

	e := newTestEngine(t, nil)
	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := resultsState(2, tc.credits, tc.bet, tc.count, tc.minBet)
			next := mustApply(t, e.SettleRound(s, 0))
			if tc.gameOver {
				assert.True(t, next.GameOver())
				assert.Nil(t, next.Failure)
				return
			}
			assert.Equal(t, PhasePreDraw, next.Phase)
			assert.Equal(t, tc.wantBet, next.BetAmount)
			assert.Equal(t, tc.wantCount, next.SelectedHandCount)
			assert.Equal(t, tc.count, next.HandCount)
			assert.LessOrEqual(t, next.DealCost(), next.Credits)
		})
	}
}

func TestSettleCreditsPayout(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := resultsState(1, 50, 10, 5, 1)
	s.TotalEarnings = 20
	s.LastBatch = batchOf(5, 2)

	next := mustApply(t, e.SettleRound(s, 80))
	assert.Equal(t, 130, next.Credits)
	assert.Equal(t, 100, next.TotalEarnings)
	assert.Equal(t, 2, next.Round)
	assert.Equal(t, LastRound{Hands: 5, Wins: 2, Payout: 80}, next.LastRound)
	assert.InDelta(t, 40.0, next.LastRound.WinPercent(), 1e-9)
	assert.Same(t, s.LastBatch, next.LastBatch)
}

func TestSettleOnlyAfterDraw(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	for _, phase := range []Phase{PhaseMenu, PhasePreDraw, PhasePlaying, PhaseShop, PhaseGameOver} {
		s := resultsState(1, 100, 1, 5, 1)
		s.Phase = phase
		assert.False(t, e.SettleRound(s, 10).Changed(), "phase %s", phase)
	}
	s := resultsState(1, 100, 1, 5, 1)
	s.Phase = PhaseAnimation
	assert.True(t, e.SettleRound(s, 10).Changed(), "settling may skip the animation")
}

func TestMinimumBetEscalation(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)

	next := mustApply(t, e.SettleRound(resultsState(4, 100, 1, 5, 1), 0))
	assert.Equal(t, 1, next.MinimumBet, "round 4 completed")

	next = mustApply(t, e.SettleRound(resultsState(5, 100, 1, 5, 1), 0))
	assert.Equal(t, 2, next.MinimumBet, "ceil(1 * 1.25)")
	assert.Equal(t, 2, next.BetAmount, "bet follows the minimum")

	next = mustApply(t, e.SettleRound(resultsState(10, 100, 9, 5, 4), 0))
	assert.Equal(t, 5, next.MinimumBet)
	assert.Equal(t, 9, next.BetAmount, "bets above the minimum stay")
}

func TestShopCadence(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)

	for round := 1; round <= 9; round++ {
		next := mustApply(t, e.SettleRound(resultsState(round, 1000, 1, 5, 1), 0))
		if round%3 == 0 {
			assert.Equal(t, PhaseShop, next.Phase, "round %d", round)
			assert.Len(t, next.ShopOptions, 3)
		} else {
			assert.Equal(t, PhasePreDraw, next.Phase, "round %d", round)
			assert.Empty(t, next.ShopOptions)
		}
	}
}

func TestEnterEndlessMode(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, func(c *config.Config) { c.Endless.StartRound = 3 })

	next := mustApply(t, e.SettleRound(resultsState(2, 100, 1, 5, 3), 0))
	assert.False(t, next.IsEndlessMode)

	s := resultsState(3, 100, 1, 5, 4)
	s.BaseMinimumBet = 1
	s.LastBatch = batchOf(10, 10)
	next = mustApply(t, e.SettleRound(s, 0))
	assert.True(t, next.IsEndlessMode)
	assert.Zero(t, next.EndlessRound)
	assert.Equal(t, 4, next.BaseMinimumBet)
	assert.Nil(t, next.Failure, "no checks on the entering settlement")
	assert.NotEqual(t, PhaseGameOver, next.Phase)
}

func endlessState(bet int) State {
	s := resultsState(40, 100_000, bet, 10, 2)
	s.IsEndlessMode = true
	s.EndlessRound = 3
	return s
}

func TestEndlessFailureConditions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		setup    func(*State) int
		want     Condition
		wantNone bool
	}{
		{
			name:     "within limits",
			setup:    func(s *State) int { s.LastBatch = batchOf(10, 1); return 10 },
			wantNone: true,
		},
		{
			name:  "bet limit",
			setup: func(s *State) int { s.BetAmount = 20; return 0 },
			want:  ConditionBetLimit,
		},
		{
			name: "average earnings",
			setup: func(s *State) int {
				s.TotalEarnings = 39_000
				return 1_000
			},
			want: ConditionAverageEarnings,
		},
		{
			name:  "winning hands",
			setup: func(s *State) int { s.LastBatch = batchOf(1_000, 500); return 0 },
			want:  ConditionWinningHands,
		},
		{
			name:  "win percentage",
			setup: func(s *State) int { s.LastBatch = batchOf(10, 7); return 0 },
			want:  ConditionWinPercentage,
		},
		{
			name: "bet limit checked first",
			setup: func(s *State) int {
				s.BetAmount = 50
				s.LastBatch = batchOf(10, 10)
				return 0
			},
			want: ConditionBetLimit,
		},
	}

	e := newTestEngine(t, nil)
	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := endlessState(1)
			payout := tc.setup(&s)
			next := mustApply(t, e.SettleRound(s, payout))
			assert.Equal(t, 4, next.EndlessRound)
			if tc.wantNone {
				assert.Nil(t, next.Failure)
				assert.NotEqual(t, PhaseGameOver, next.Phase)
				return
			}
			require.NotNil(t, next.Failure)
			assert.Equal(t, tc.want, next.Failure.Condition)
			assert.True(t, next.GameOver())
			assert.NotEmpty(t, DescribeFailure(*next.Failure))
		})
	}
}

func TestDisabledConditionsNeverFail(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, func(c *config.Config) {
		c.Endless.BetLimit.Enabled = false
		c.Endless.WinPercentage.Enabled = false
	})
	s := endlessState(50)
	s.LastBatch = batchOf(10, 10)

	next := mustApply(t, e.SettleRound(s, 0))
	assert.Nil(t, next.Failure)
}

func TestEndlessConditionStatus(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := endlessState(5)
	s.TotalEarnings = 390
	s.LastRound = LastRound{Hands: 10, Wins: 6}

	statuses := e.EndlessConditions(s)
	require.Len(t, statuses, len(Conditions))
	for i, c := range statuses {
		assert.Equal(t, Conditions[i], c.Condition)
		assert.NotEmpty(t, c.Description)
	}
	assert.Equal(t, 5.0, statuses[0].Value)
	assert.Equal(t, 20.0, statuses[0].Threshold)
	assert.InDelta(t, 10.0, statuses[1].Value, 1e-9)
	assert.Equal(t, 6.0, statuses[2].Value)
	assert.InDelta(t, 60.0, statuses[3].Value, 1e-9)
	assert.Equal(t, 63.0, statuses[3].Threshold)
	for _, c := range statuses {
		assert.False(t, c.Violated(), "%s", c.Condition)
	}
}

func TestWinPercentageThresholdCaps(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	s := endlessState(1)
	s.EndlessRound = 1_000
	statuses := EndlessConditions(cfg, s)
	assert.Equal(t, cfg.Endless.WinPercentage.Cap, statuses[3].Threshold)
}

func TestDescribeFailure(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Your bet of 20 reached the limit of 20.",
		DescribeFailure(Failure{Condition: ConditionBetLimit, Value: 20, Threshold: 20}))
	assert.Equal(t, "A 70.0% win rate reached the limit of 64.0%.",
		DescribeFailure(Failure{Condition: ConditionWinPercentage, Value: 70, Threshold: 64}))
	assert.Contains(t, DescribeFailure(Failure{Condition: "other"}), "other")
}

func TestCheats(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)

	assert.False(t, e.CheatAddCredits(e.NewState(), 10).Changed())
	s := started(t, e)
	assert.False(t, e.CheatAddCredits(s, 0).Changed())
	s = mustApply(t, e.CheatAddCredits(s, 1_000))
	assert.Equal(t, 1_100, s.Credits)

	s.MinimumBet = 3
	s = mustApply(t, e.CheatSkipToEndless(s))
	assert.True(t, s.IsEndlessMode)
	assert.Equal(t, 31, s.Round)
	assert.Equal(t, 3, s.BaseMinimumBet)
	assert.False(t, e.CheatSkipToEndless(s).Changed())

	assert.False(t, e.CheatForceDevilsDeal(s).Changed(), "needs a hand in play")
	p := playing(t, e, "Ah Kh Qh Jh 2c", 100)
	p = mustApply(t, e.CheatForceDevilsDeal(p))
	assert.False(t, e.CheatForceDevilsDeal(p).Changed(), "one offer per hand")
}

func TestForceDevilsDealNeedsAnImprovement(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, nil)
	s := playing(t, e, "2c 4d 6h 8s Tc", 100)
	// An empty round deck has nothing to offer.
	s.RoundDeck = s.RoundDeck[:0]
	assert.False(t, e.CheatForceDevilsDeal(s).Changed())
}
