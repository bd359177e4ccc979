// Package parallel draws the independent hands that make up one round's
// batch and scores them in a single pass.
package parallel

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/lox/parallelpoker/internal/streak"
	"github.com/lox/parallelpoker/poker"
)

var (
	// ErrBaseHandSize is returned when the held base hand is not five cards.
	ErrBaseHandSize = errors.New("parallel: base hand must contain exactly 5 cards")
	// ErrHeldIndex is returned for a held position outside 0..4.
	ErrHeldIndex = errors.New("parallel: held index out of range")
	// ErrHandCount is returned for a negative hand count.
	ErrHandCount = errors.New("parallel: hand count must not be negative")
)

type options struct {
	salt int64
}

// Option configures Generate.
type Option func(*options)

// WithSalt offsets every hand's shuffle seed by salt. Without it hand i is
// always seeded by i, so hand 0 of every deal follows the same permutation.
func WithSalt(salt int64) Option {
	return func(o *options) {
		o.salt = salt
	}
}

// Generate draws n hands from base. Each hand gets the run deck minus the five
// base cards, shuffled with its own seed, and fills its non-held positions
// from the front of that shuffle. Hands are independent, so a card drawn in
// one may show up again in another.
func Generate(base []poker.Card, held []int, n int, mods poker.DeckModifications, opts ...Option) ([]poker.Hand, error) {
	if len(base) != 5 {
		return nil, fmt.Errorf("%w: got %d", ErrBaseHandSize, len(base))
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrHandCount, n)
	}
	var keep [5]bool
	for _, idx := range held {
		if idx < 0 || idx >= 5 {
			return nil, fmt.Errorf("%w: %d", ErrHeldIndex, idx)
		}
		keep[idx] = true
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	remainder := poker.RemoveCards(mods.Deck(), base)
	hands := make([]poker.Hand, n)
	for i := range hands {
		h := poker.Hand{ID: "hand-" + strconv.Itoa(i)}
		copy(h.Cards[:], base)

		shuffled := poker.ShuffleSeeded(remainder, o.salt+int64(i))
		next := 0
		for pos := range h.Cards {
			if keep[pos] || next >= len(shuffled) {
				continue
			}
			h.Cards[pos] = shuffled[next]
			next++
		}
		hands[i] = h
	}
	return hands, nil
}

// Scoring holds what Summarize needs to price a batch.
type Scoring struct {
	Rewards poker.RewardTable
	Bet     int
	Streak  streak.Config
}

// HandResult is one scored hand.
type HandResult struct {
	Hand             poker.Hand
	Rank             poker.HandRank
	Multiplier       int
	Streak           int
	StreakMultiplier float64
	Payout           int
}

// Won reports whether the hand paid.
func (r HandResult) Won() bool {
	return r.Multiplier > 0
}

// RankSummary aggregates the hands of one rank.
type RankSummary struct {
	Count  int
	Payout int
}

// Batch is the aggregate of one draw.
type Batch struct {
	Results     []HandResult
	ByRank      [poker.NumHandRanks]RankSummary
	TotalPayout int
	Wins        int
	FinalStreak int
	PeakStreak  int
}

// Hands returns the number of hands in the batch.
func (b Batch) Hands() int {
	return len(b.Results)
}

// WinPercent returns the share of paying hands in percent.
func (b Batch) WinPercent() float64 {
	if len(b.Results) == 0 {
		return 0
	}
	return float64(b.Wins) * 100 / float64(len(b.Results))
}

// BestRank returns the strongest rank in the batch, or HighCard when empty.
func (b Batch) BestRank() poker.HandRank {
	for r := poker.NumHandRanks - 1; r > 0; r-- {
		if b.ByRank[r].Count > 0 {
			return poker.HandRank(r)
		}
	}
	return poker.HighCard
}

// Summarize scores hands in order. The streak starts at zero for every batch;
// each hand's payout is round(bet * multiplier * streak multiplier), where the
// streak multiplier reflects the streak including that hand.
func Summarize(hands []poker.Hand, s Scoring) Batch {
	b := Batch{Results: make([]HandResult, len(hands))}
	current := 0
	for i, h := range hands {
		rank := h.Evaluate()
		reward := poker.ApplyRewards(rank, s.Rewards)
		current = streak.Advance(current, reward.Won())
		if current > b.PeakStreak {
			b.PeakStreak = current
		}

		res := HandResult{
			Hand:             h,
			Rank:             rank,
			Multiplier:       reward.Multiplier,
			Streak:           current,
			StreakMultiplier: streak.Multiplier(current, s.Streak),
		}
		if reward.Won() {
			res.Payout = int(math.Round(float64(s.Bet) * float64(reward.Multiplier) * res.StreakMultiplier))
			b.Wins++
		}
		b.Results[i] = res
		b.ByRank[rank].Count++
		b.ByRank[rank].Payout += res.Payout
		b.TotalPayout += res.Payout
	}
	b.FinalStreak = current
	return b
}
