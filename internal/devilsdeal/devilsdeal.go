// Package devilsdeal finds and prices the Devil's Deal: a single near-optimal
// card offered to the player before the final draw.
package devilsdeal

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/lox/parallelpoker/poker"
)

// DefaultCandidates is the number of top cards the offer is drawn from.
const DefaultCandidates = 3

// Config holds the trigger chance and cost percentages, all in percent.
type Config struct {
	BaseChance      float64
	ChanceIncrease  float64
	MaxChance       float64
	BaseCostPercent float64
	CostReduction   float64
	MinCostPercent  float64
	Candidates      int
}

// DefaultConfig returns the standard Devil's Deal tuning.
func DefaultConfig() Config {
	return Config{
		BaseChance:      10,
		ChanceIncrease:  5,
		MaxChance:       50,
		BaseCostPercent: 100,
		CostReduction:   10,
		MinCostPercent:  1,
		Candidates:      DefaultCandidates,
	}
}

// Validate checks that the percentages are usable.
func (c Config) Validate() error {
	var errs []error
	if c.BaseChance < 0 || c.BaseChance > 100 {
		errs = append(errs, fmt.Errorf("base_chance must be within 0-100, got %v", c.BaseChance))
	}
	if c.MaxChance < c.BaseChance || c.MaxChance > 100 {
		errs = append(errs, fmt.Errorf("max_chance must be within base_chance-100, got %v", c.MaxChance))
	}
	if c.ChanceIncrease < 0 {
		errs = append(errs, fmt.Errorf("chance_increase must not be negative, got %v", c.ChanceIncrease))
	}
	if c.MinCostPercent < 1 {
		errs = append(errs, fmt.Errorf("min_cost_percent must be at least 1, got %v", c.MinCostPercent))
	}
	if c.BaseCostPercent < c.MinCostPercent {
		errs = append(errs, fmt.Errorf("base_cost_percent must be at least min_cost_percent, got %v", c.BaseCostPercent))
	}
	if c.CostReduction < 0 {
		errs = append(errs, fmt.Errorf("cost_reduction must not be negative, got %v", c.CostReduction))
	}
	if c.Candidates < 1 {
		errs = append(errs, fmt.Errorf("candidates must be at least 1, got %d", c.Candidates))
	}
	return errors.Join(errs...)
}

// Chance returns the trigger probability in percent after purchases of the
// chance upgrade.
func Chance(cfg Config, purchases int) float64 {
	return math.Min(cfg.BaseChance+float64(purchases)*cfg.ChanceIncrease, cfg.MaxChance)
}

// CostPercent returns the cost percentage after purchases of the discount
// upgrade. It never drops below MinCostPercent, nor below 1.
func CostPercent(cfg Config, purchases int) float64 {
	floor := math.Max(cfg.MinCostPercent, 1)
	return math.Max(cfg.BaseCostPercent-float64(purchases)*cfg.CostReduction, floor)
}

// Cost prices an offer: round(multiplier * bet * hands * percent / 100).
func Cost(bestMultiplier, bet, handCount int, costPercent float64) int {
	return int(math.Round(float64(bestMultiplier) * float64(bet) * float64(handCount) * costPercent / 100))
}

// Candidate is one card the deal could offer.
type Candidate struct {
	Card       poker.Card
	Multiplier int
	Position   int
	Value      int
}

// BestMultiplier substitutes card into each of the five positions and returns
// the best multiplier and the first position achieving it.
func BestMultiplier(hand [5]poker.Card, card poker.Card, table poker.RewardTable) (int, int) {
	best, pos := -1, 0
	for i := range hand {
		trial := hand
		trial[i] = card
		if m := table.Multiplier(poker.Evaluate(trial)); m > best {
			best, pos = m, i
		}
	}
	return best, pos
}

// FindBest tries every available card in every position and returns up to k
// distinct cards ranked by their best multiplier. Ties keep deck order.
func FindBest(hand [5]poker.Card, available []poker.Card, table poker.RewardTable, bet, k int) []Candidate {
	if k <= 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(available))
	candidates := make([]Candidate, 0, len(available))
	for _, c := range available {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		m, pos := BestMultiplier(hand, c, table)
		candidates = append(candidates, Candidate{Card: c, Multiplier: m, Position: pos, Value: m * bet})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Multiplier > candidates[j].Multiplier
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}

// Offer is a priced Devil's Deal card.
type Offer struct {
	Card       poker.Card
	Multiplier int
	Position   int
	Cost       int
}

// Rand is the random source the selector needs. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Triggers rolls the trigger chance, given in percent.
func Triggers(rng Rand, chance float64) bool {
	return rng.Float64()*100 < chance
}

// Params groups the inputs for pricing an offer.
type Params struct {
	Table       poker.RewardTable
	Bet         int
	HandCount   int
	CostPercent float64
	Candidates  int
}

// MakeOffer picks uniformly among the top candidates and prices the pick by
// re-testing all five positions. It returns false when no available card
// would make the hand pay.
func MakeOffer(rng Rand, hand [5]poker.Card, available []poker.Card, p Params) (Offer, bool) {
	k := p.Candidates
	if k <= 0 {
		k = DefaultCandidates
	}
	top := FindBest(hand, available, p.Table, p.Bet, k)
	if len(top) == 0 || top[0].Multiplier <= 0 {
		return Offer{}, false
	}

	// Only cards that actually pay are worth offering.
	paying := top[:0:0]
	for _, c := range top {
		if c.Multiplier > 0 {
			paying = append(paying, c)
		}
	}
	pick := paying[rng.IntN(len(paying))]

	mult, pos := BestMultiplier(hand, pick.Card, p.Table)
	return Offer{
		Card:       pick.Card,
		Multiplier: mult,
		Position:   pos,
		Cost:       Cost(mult, p.Bet, p.HandCount, p.CostPercent),
	}, true
}
