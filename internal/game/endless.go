package game

import (
	"fmt"

	"github.com/lox/parallelpoker/internal/config"
)

// Condition names an endless-mode failure condition.
type Condition string

const (
	ConditionBetLimit        Condition = "bet-limit"
	ConditionAverageEarnings Condition = "average-earnings"
	ConditionWinningHands    Condition = "winning-hands"
	ConditionWinPercentage   Condition = "win-percentage"
)

// Conditions lists the failure conditions in the order they are checked.
var Conditions = []Condition{
	ConditionBetLimit,
	ConditionAverageEarnings,
	ConditionWinningHands,
	ConditionWinPercentage,
}

// Failure records which condition ended an endless run.
type Failure struct {
	Condition Condition
	Value     float64
	Threshold float64
}

// ConditionStatus describes one failure condition against a state.
type ConditionStatus struct {
	Condition   Condition
	Enabled     bool
	Description string
	Value       float64
	Threshold   float64
}

// Violated reports whether the condition would end the run.
func (c ConditionStatus) Violated() bool {
	return c.Enabled && c.Value >= c.Threshold
}

// EndlessConditions evaluates every failure condition against s, in check
// order. Values are what the next settlement would compare.
func EndlessConditions(cfg config.Config, s State) []ConditionStatus {
	en := cfg.Endless
	avg := 0.0
	if completed := s.Round - 1; completed > 0 {
		avg = float64(s.TotalEarnings) / float64(completed)
	}
	return []ConditionStatus{
		{
			Condition:   ConditionBetLimit,
			Enabled:     en.BetLimit.Enabled,
			Description: fmt.Sprintf("Bet must stay below %gx the base minimum bet", en.BetLimit.Multiplier),
			Value:       float64(s.BetAmount),
			Threshold:   en.BetLimit.Multiplier * float64(s.BaseMinimumBet),
		},
		{
			Condition:   ConditionAverageEarnings,
			Enabled:     en.AverageEarnings.Enabled,
			Description: fmt.Sprintf("Average earnings per round must stay below %g", en.AverageEarnings.Value),
			Value:       avg,
			Threshold:   en.AverageEarnings.Value,
		},
		{
			Condition:   ConditionWinningHands,
			Enabled:     en.WinningHands.Enabled,
			Description: fmt.Sprintf("Winning hands per round must stay below %g", en.WinningHands.Value),
			Value:       float64(s.LastRound.Wins),
			Threshold:   en.WinningHands.Value,
		},
		{
			Condition:   ConditionWinPercentage,
			Enabled:     en.WinPercentage.Enabled,
			Description: fmt.Sprintf("Win rate must stay below %g%% (+%g%% per endless round, max %g%%)", en.WinPercentage.Base, en.WinPercentage.IncreasePerRound, en.WinPercentage.Cap),
			Value:       s.LastRound.WinPercent(),
			Threshold:   en.WinPercentage.Threshold(s.EndlessRound),
		},
	}
}

// checkFailure returns the first violated condition, or nil.
func (e *Engine) checkFailure(s State) *Failure {
	for _, c := range EndlessConditions(e.cfg, s) {
		if c.Violated() {
			return &Failure{Condition: c.Condition, Value: c.Value, Threshold: c.Threshold}
		}
	}
	return nil
}

// EndlessConditions evaluates the engine's failure conditions against s.
func (e *Engine) EndlessConditions(s State) []ConditionStatus {
	return EndlessConditions(e.cfg, s)
}

// DescribeFailure renders a failure for display.
func DescribeFailure(f Failure) string {
	switch f.Condition {
	case ConditionBetLimit:
		return fmt.Sprintf("Your bet of %g reached the limit of %g.", f.Value, f.Threshold)
	case ConditionAverageEarnings:
		return fmt.Sprintf("Average earnings of %.1f per round reached the limit of %g.", f.Value, f.Threshold)
	case ConditionWinningHands:
		return fmt.Sprintf("%g winning hands in one round reached the limit of %g.", f.Value, f.Threshold)
	case ConditionWinPercentage:
		return fmt.Sprintf("A %.1f%% win rate reached the limit of %.1f%%.", f.Value, f.Threshold)
	default:
		return fmt.Sprintf("Run ended by %s (%g of %g).", f.Condition, f.Value, f.Threshold)
	}
}
