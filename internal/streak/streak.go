// Package streak converts a run of consecutive winning hands into a payout
// multiplier.
//
// A streak is counted across one round's batch of parallel hands in
// evaluation order. A win adds one, a loss takes one away (never below zero),
// so a single miss only dents a long streak instead of wiping it.
package streak

import (
	"errors"
	"fmt"
	"math"
)

// maxTiers bounds the tier search for configurations whose thresholds grow
// very slowly.
const maxTiers = 1 << 10

// Config describes the tier ladder. Tier j starts at
// BaseThreshold*ExponentialGrowth^j + j*ThresholdIncrement consecutive wins
// and pays BaseMultiplier + j*MultiplierIncrement.
type Config struct {
	BaseThreshold       float64
	ThresholdIncrement  float64
	ExponentialGrowth   float64
	BaseMultiplier      float64
	MultiplierIncrement float64
}

// DefaultConfig returns the standard ladder: 1.5x from five wins in a row,
// then +0.5x each time the threshold doubles.
func DefaultConfig() Config {
	return Config{
		BaseThreshold:       5,
		ExponentialGrowth:   2,
		BaseMultiplier:      1.5,
		MultiplierIncrement: 0.5,
	}
}

// Validate rejects ladders that would shrink the multiplier as the streak
// grows or that never climb past the first tier.
func (c Config) Validate() error {
	var errs []error
	if c.BaseThreshold < 1 {
		errs = append(errs, fmt.Errorf("base_threshold must be at least 1, got %v", c.BaseThreshold))
	}
	if c.ExponentialGrowth < 1 {
		errs = append(errs, fmt.Errorf("exponential_growth must be at least 1, got %v", c.ExponentialGrowth))
	}
	if c.ThresholdIncrement < 0 {
		errs = append(errs, fmt.Errorf("threshold_increment must not be negative, got %v", c.ThresholdIncrement))
	}
	if c.ExponentialGrowth == 1 && c.ThresholdIncrement == 0 {
		errs = append(errs, errors.New("thresholds never increase: set exponential_growth above 1 or a threshold_increment"))
	}
	if c.BaseMultiplier < 1 {
		errs = append(errs, fmt.Errorf("base_multiplier must be at least 1, got %v", c.BaseMultiplier))
	}
	if c.MultiplierIncrement < 0 {
		errs = append(errs, fmt.Errorf("multiplier_increment must not be negative, got %v", c.MultiplierIncrement))
	}
	return errors.Join(errs...)
}

// Threshold returns the number of consecutive wins needed to reach tier j.
func (c Config) Threshold(tier int) float64 {
	return c.BaseThreshold*math.Pow(c.ExponentialGrowth, float64(tier)) + float64(tier)*c.ThresholdIncrement
}

// Tier returns the highest tier reached by streak, or -1 below the first.
func (c Config) Tier(streak int) int {
	s := float64(streak)
	if s < c.Threshold(0) {
		return -1
	}
	tier := 0
	for tier < maxTiers && c.Threshold(tier+1) <= s && c.Threshold(tier+1) > c.Threshold(tier) {
		tier++
	}
	return tier
}

// Multiplier returns the payout multiplier for streak. Streaks below the
// first tier pay 1.0.
func Multiplier(streak int, cfg Config) float64 {
	tier := cfg.Tier(streak)
	if tier < 0 {
		return 1.0
	}
	return cfg.BaseMultiplier + float64(tier)*cfg.MultiplierIncrement
}

// Advance returns the streak after one more hand.
func Advance(streak int, won bool) int {
	if won {
		return streak + 1
	}
	if streak > 0 {
		return streak - 1
	}
	return 0
}
