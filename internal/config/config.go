// Package config builds the rule set a run is played under.
//
// A Config is always complete. Changes are expressed as Overlays: partial
// documents whose set fields replace the matching fields of the config they
// are applied to. Named modes are overlays shipped with the binary; files in
// HCL, TOML or YAML decode into the same Overlay shape.
//
//	cfg, err := config.NewBuilder(config.Default()).
//		Mode("hardcore").
//		File("house-rules.hcl").
//		Build()
package config

import (
	"errors"
	"fmt"

	"github.com/lox/parallelpoker/internal/devilsdeal"
	"github.com/lox/parallelpoker/internal/shop"
	"github.com/lox/parallelpoker/internal/streak"
	"github.com/lox/parallelpoker/poker"
)

// Config is the complete rule set for a run.
type Config struct {
	Name       string
	Economy    Economy
	Rewards    poker.RewardTable
	Streak     streak.Config
	DevilsDeal devilsdeal.Config
	Shop       shop.Config
	Endless    Endless

	// DecorrelateDeals salts parallel-hand seeds with a per-deal value so
	// hand i of one deal does not repeat hand i of the previous one.
	DecorrelateDeals bool
}

// Economy covers credits, bets and what each round deals.
type Economy struct {
	StartingCredits            int
	StartingBet                int
	StartingHandCount          int
	MinimumBet                 int
	MinimumBetIncreasePercent  float64
	MinimumBetIncreaseInterval int
	BaseDraws                  int
}

// Endless describes endless mode and its four failure conditions.
type Endless struct {
	StartRound      int
	BetLimit        BetLimit
	AverageEarnings Threshold
	WinningHands    Threshold
	WinPercentage   WinPercentage
}

// BetLimit fails a run whose bet reaches Multiplier times the frozen minimum.
type BetLimit struct {
	Enabled    bool
	Multiplier float64
}

// Threshold fails a run when a measured value reaches Value.
type Threshold struct {
	Enabled bool
	Value   float64
}

// WinPercentage fails a run whose last round won at least
// min(Base + endlessRound*IncreasePerRound, Cap) percent of its hands.
type WinPercentage struct {
	Enabled          bool
	Base             float64
	IncreasePerRound float64
	Cap              float64
}

// Threshold returns the win-percentage limit for an endless round.
func (w WinPercentage) Threshold(endlessRound int) float64 {
	v := w.Base + float64(endlessRound)*w.IncreasePerRound
	if v > w.Cap {
		return w.Cap
	}
	return v
}

// Default returns the standard rule set.
func Default() Config {
	return Config{
		Name: "standard",
		Economy: Economy{
			StartingCredits:            100,
			StartingBet:                1,
			StartingHandCount:          5,
			MinimumBet:                 1,
			MinimumBetIncreasePercent:  25,
			MinimumBetIncreaseInterval: 5,
			BaseDraws:                  1,
		},
		Rewards:    poker.DefaultRewardTable(),
		Streak:     streak.DefaultConfig(),
		DevilsDeal: devilsdeal.DefaultConfig(),
		Shop:       shop.DefaultConfig(),
		Endless: Endless{
			StartRound:      30,
			BetLimit:        BetLimit{Enabled: true, Multiplier: 10},
			AverageEarnings: Threshold{Enabled: true, Value: 1000},
			WinningHands:    Threshold{Enabled: true, Value: 500},
			WinPercentage:   WinPercentage{Enabled: true, Base: 60, IncreasePerRound: 1, Cap: 95},
		},
	}
}

// Clone returns a deep copy.
func (c Config) Clone() Config {
	out := c
	out.Rewards = c.Rewards.Clone()
	out.Shop = c.Shop.Clone()
	return out
}

// Validate reports every problem with the config at once.
func (c Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	e := c.Economy
	if e.StartingCredits < 0 {
		add("economy: starting_credits must not be negative, got %d", e.StartingCredits)
	}
	if e.MinimumBet < 1 {
		add("economy: minimum_bet must be at least 1, got %d", e.MinimumBet)
	}
	if e.StartingBet < e.MinimumBet {
		add("economy: starting_bet %d is below minimum_bet %d", e.StartingBet, e.MinimumBet)
	}
	if e.StartingHandCount < 1 {
		add("economy: starting_hand_count must be at least 1, got %d", e.StartingHandCount)
	}
	if e.MinimumBetIncreasePercent < 0 {
		add("economy: minimum_bet_increase_percent must not be negative, got %v", e.MinimumBetIncreasePercent)
	}
	if e.MinimumBetIncreaseInterval < 1 {
		add("economy: minimum_bet_increase_interval must be at least 1, got %d", e.MinimumBetIncreaseInterval)
	}
	if e.BaseDraws < 1 {
		add("economy: base_draws must be at least 1, got %d", e.BaseDraws)
	}

	for rank, m := range c.Rewards {
		if int(rank) >= poker.NumHandRanks {
			add("rewards: unknown hand rank %d", rank)
		}
		if m < 0 {
			add("rewards: %s multiplier must not be negative, got %d", rank.Key(), m)
		}
	}

	if err := c.Streak.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("streak: %w", err))
	}
	if err := c.DevilsDeal.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("devils_deal: %w", err))
	}
	if err := c.Shop.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("shop: %w", err))
	}

	en := c.Endless
	if en.StartRound < 1 {
		add("endless: start_round must be at least 1, got %d", en.StartRound)
	}
	if en.BetLimit.Enabled && en.BetLimit.Multiplier <= 0 {
		add("endless: bet_limit multiplier must be positive, got %v", en.BetLimit.Multiplier)
	}
	if en.AverageEarnings.Enabled && en.AverageEarnings.Value <= 0 {
		add("endless: average_earnings threshold must be positive, got %v", en.AverageEarnings.Value)
	}
	if en.WinningHands.Enabled && en.WinningHands.Value <= 0 {
		add("endless: winning_hands threshold must be positive, got %v", en.WinningHands.Value)
	}
	if wp := en.WinPercentage; wp.Enabled {
		if wp.Base <= 0 || wp.Cap > 100 || wp.Cap < wp.Base || wp.IncreasePerRound < 0 {
			add("endless: win_percentage needs 0 < base <= cap <= 100 and a non-negative increase")
		}
	}

	return errors.Join(errs...)
}
