package game

import (
	"github.com/lox/parallelpoker/internal/devilsdeal"
	"github.com/lox/parallelpoker/internal/parallel"
	"github.com/lox/parallelpoker/internal/shop"
	"github.com/lox/parallelpoker/poker"
)

// Phase is the screen a run is on.
type Phase string

const (
	PhaseMenu      Phase = "menu"
	PhasePreDraw   Phase = "preDraw"
	PhasePlaying   Phase = "playing"
	PhaseAnimation Phase = "parallelHandsAnimation"
	PhaseResults   Phase = "results"
	PhaseShop      Phase = "shop"
	PhaseGameOver  Phase = "gameOver"
)

// DevilsDeal is the run's Devil's Deal state. Offer is nil when no deal was
// rolled this round.
type DevilsDeal struct {
	Offer             *devilsdeal.Offer
	Held              bool
	ChancePurchases   int
	DiscountPurchases int
}

// LastRound summarizes the most recently settled round.
type LastRound struct {
	Hands  int
	Wins   int
	Payout int
}

// WinPercent returns the share of winning hands in percent.
func (r LastRound) WinPercent() float64 {
	if r.Hands == 0 {
		return 0
	}
	return float64(r.Wins) * 100 / float64(r.Hands)
}

// State is a complete snapshot of a session.
type State struct {
	Phase Phase
	RunID string

	Credits           int
	BetAmount         int
	SelectedHandCount int
	HandCount         int
	MinimumBet        int
	BaseMinimumBet    int
	Round             int
	TotalEarnings     int

	DeckMods      poker.DeckModifications
	WildCardCount int
	ExtraCards    int
	MaxDraws      int

	DealtCards []poker.Card
	Held       []bool
	RoundDeck  []poker.Card
	DrawsUsed  int
	DealCount  int

	DevilsDeal    DevilsDeal
	StreakCounter int
	PeakStreak    int
	Rewards       poker.RewardTable

	IsEndlessMode bool
	EndlessRound  int
	Failure       *Failure

	ShopOptions []shop.ItemID
	Purchases   map[shop.ItemID]int

	// LastBatch is the scored batch of the latest draw. Batches are never
	// modified after creation, so clones share it.
	LastBatch *parallel.Batch
	LastRound LastRound
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.DeckMods = s.DeckMods.Clone()
	out.DealtCards = poker.CloneCards(s.DealtCards)
	out.RoundDeck = poker.CloneCards(s.RoundDeck)
	if s.Held != nil {
		out.Held = append([]bool(nil), s.Held...)
	}
	if s.DevilsDeal.Offer != nil {
		offer := *s.DevilsDeal.Offer
		out.DevilsDeal.Offer = &offer
	}
	if s.Rewards != nil {
		out.Rewards = s.Rewards.Clone()
	}
	if s.Failure != nil {
		f := *s.Failure
		out.Failure = &f
	}
	if s.ShopOptions != nil {
		out.ShopOptions = append([]shop.ItemID(nil), s.ShopOptions...)
	}
	if s.Purchases != nil {
		out.Purchases = make(map[shop.ItemID]int, len(s.Purchases))
		for k, v := range s.Purchases {
			out.Purchases[k] = v
		}
	}
	return out
}

// HeldCount returns the number of held cards, counting a held Devil's Deal.
func (s State) HeldCount() int {
	n := 0
	for _, h := range s.Held {
		if h {
			n++
		}
	}
	if s.DevilsDeal.Held && s.DevilsDeal.Offer != nil {
		n++
	}
	return n
}

// DealCost returns what the next deal costs.
func (s State) DealCost() int {
	return s.BetAmount * s.SelectedHandCount
}

// GameOver reports whether the run has ended.
func (s State) GameOver() bool {
	return s.Phase == PhaseGameOver
}
