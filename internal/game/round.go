package game

import (
	"fmt"

	"github.com/lox/parallelpoker/internal/devilsdeal"
	"github.com/lox/parallelpoker/internal/parallel"
	"github.com/lox/parallelpoker/poker"
)

// handSize is the number of cards in a scored hand.
const handSize = 5

// dealSaltStride spaces per-deal seed offsets when deals are decorrelated.
const dealSaltStride = 7919

// SetBet changes the bet per hand before a deal. Bets below the current
// minimum are rejected.
func (e *Engine) SetBet(s State, bet int) Outcome {
	if s.Phase != PhasePreDraw {
		return NoOp("bets can only change before the deal")
	}
	if bet < s.MinimumBet {
		return NoOp(fmt.Sprintf("bet must be at least %d", s.MinimumBet))
	}
	if bet == s.BetAmount {
		return NoOp("bet unchanged")
	}
	next := s.Clone()
	next.BetAmount = bet
	return Applied(next)
}

// SetHandCount changes how many of the owned parallel hands are played.
func (e *Engine) SetHandCount(s State, count int) Outcome {
	if s.Phase != PhasePreDraw {
		return NoOp("hand count can only change before the deal")
	}
	if count < 1 || count > s.HandCount {
		return NoOp(fmt.Sprintf("hand count must be between 1 and %d", s.HandCount))
	}
	if count == s.SelectedHandCount {
		return NoOp("hand count unchanged")
	}
	next := s.Clone()
	next.SelectedHandCount = count
	return Applied(next)
}

// CanDeal reports whether Deal would apply.
func (e *Engine) CanDeal(s State) bool {
	return s.Phase == PhasePreDraw && s.Credits >= s.DealCost() && s.SelectedHandCount >= 1
}

// Deal charges bet times hand count, deals 5 plus any extra cards from a
// freshly shuffled deck and rolls for a Devil's Deal.
func (e *Engine) Deal(s State) Outcome {
	if s.Phase != PhasePreDraw {
		return NoOp("not ready to deal")
	}
	cost := s.DealCost()
	if s.Credits < cost {
		return NoOp(fmt.Sprintf("need %d credits to deal, have %d", cost, s.Credits))
	}

	deck := poker.Shuffle(s.DeckMods.Deck(), e.rng)
	n := handSize + s.ExtraCards
	if len(deck) < n {
		return NoOp(fmt.Sprintf("deck has %d cards, need %d", len(deck), n))
	}

	next := s.Clone()
	next.Credits -= cost
	next.DealtCards = poker.CloneCards(deck[:n])
	next.RoundDeck = poker.CloneCards(deck[n:])
	next.Held = make([]bool, n)
	next.DrawsUsed = 0
	next.DealCount++
	next.LastBatch = nil
	next.DevilsDeal.Offer = nil
	next.DevilsDeal.Held = false
	next.Phase = PhasePlaying

	chance := e.DevilsDealChance(s)
	if devilsdeal.Triggers(e.rng, chance) {
		if offer, ok := e.makeOffer(next); ok {
			next.DevilsDeal.Offer = &offer
			// Redraws must not hand out the offered card a second time.
			next.RoundDeck = poker.RemoveCards(next.RoundDeck, []poker.Card{offer.Card})
		}
	}

	e.logger.Debug("Dealt hand", "round", next.Round, "cost", cost, "cards", len(next.DealtCards),
		"devilsDeal", next.DevilsDeal.Offer != nil)
	return Applied(next)
}

func (e *Engine) makeOffer(s State) (devilsdeal.Offer, bool) {
	var hand [handSize]poker.Card
	copy(hand[:], s.DealtCards)
	return devilsdeal.MakeOffer(e.rng, hand, s.RoundDeck, devilsdeal.Params{
		Table:       s.Rewards,
		Bet:         s.BetAmount,
		HandCount:   s.SelectedHandCount,
		CostPercent: e.DevilsDealCostPercent(s),
		Candidates:  e.cfg.DevilsDeal.Candidates,
	})
}

// ToggleHold holds or releases dealt card i. At most five cards can be held,
// counting a held Devil's Deal.
func (e *Engine) ToggleHold(s State, i int) Outcome {
	if s.Phase != PhasePlaying {
		return NoOp("no hand in play")
	}
	if i < 0 || i >= len(s.DealtCards) {
		return NoOp(fmt.Sprintf("no card at position %d", i))
	}
	if !s.Held[i] && s.HeldCount() >= handSize {
		return NoOp("already holding five cards")
	}
	next := s.Clone()
	next.Held[i] = !next.Held[i]
	return Applied(next)
}

// ToggleDevilsDealHold accepts or declines the Devil's Deal offer. Declining
// is free; the cost is only charged at the final draw.
func (e *Engine) ToggleDevilsDealHold(s State) Outcome {
	if s.Phase != PhasePlaying {
		return NoOp("no hand in play")
	}
	if s.DevilsDeal.Offer == nil {
		return NoOp("no Devil's Deal on offer")
	}
	if !s.DevilsDeal.Held && s.HeldCount() >= handSize {
		return NoOp("already holding five cards")
	}
	next := s.Clone()
	next.DevilsDeal.Held = !next.DevilsDeal.Held
	return Applied(next)
}

// IsFinalDraw reports whether the next Draw resolves the parallel hands.
func (s State) IsFinalDraw() bool {
	return s.DrawsUsed+1 >= s.MaxDraws
}

// Draw performs one draw step. Earlier steps replace the non-held dealt
// cards from the round deck. The final step builds the base hand, folds in a
// held Devil's Deal, draws the parallel hands and scores them.
func (e *Engine) Draw(s State) Outcome {
	if s.Phase != PhasePlaying {
		return NoOp("no hand in play")
	}
	if !s.IsFinalDraw() {
		return e.redraw(s)
	}

	if len(s.DealtCards) > handSize && s.HeldCount() != handSize {
		return NoOp(fmt.Sprintf("hold exactly %d cards before the final draw", handSize))
	}

	next := s.Clone()
	base, heldIdx := baseHand(s.DealtCards, s.Held)

	if offer := s.DevilsDeal.Offer; offer != nil && s.DevilsDeal.Held {
		pos := firstFree(heldIdx)
		switch {
		case pos < 0:
			e.logger.Warn("No free slot for Devil's Deal", "round", s.Round)
		case next.Credits < offer.Cost:
			e.logger.Debug("Devil's Deal unaffordable, skipped", "cost", offer.Cost, "credits", next.Credits)
		default:
			base[pos] = offer.Card
			heldIdx = append(heldIdx, pos)
			next.Credits -= offer.Cost
			e.logger.Debug("Devil's Deal taken", "card", offer.Card.String(), "cost", offer.Cost)
		}
	}

	var opts []parallel.Option
	if e.cfg.DecorrelateDeals {
		opts = append(opts, parallel.WithSalt(int64(s.DealCount)*dealSaltStride))
	}
	hands, err := parallel.Generate(base, heldIdx, s.SelectedHandCount, s.DeckMods, opts...)
	if err != nil {
		panic(fmt.Sprintf("game: generating parallel hands: %v", err))
	}
	batch := parallel.Summarize(hands, parallel.Scoring{
		Rewards: s.Rewards,
		Bet:     s.BetAmount,
		Streak:  e.cfg.Streak,
	})

	next.DealtCards = base
	next.Held = make([]bool, handSize)
	for _, i := range heldIdx {
		next.Held[i] = true
	}
	next.RoundDeck = nil
	next.DrawsUsed++
	next.LastBatch = &batch
	next.StreakCounter = batch.FinalStreak
	if batch.PeakStreak > next.PeakStreak {
		next.PeakStreak = batch.PeakStreak
	}
	next.Phase = PhaseAnimation

	e.logger.Debug("Drew parallel hands", "round", s.Round, "hands", batch.Hands(),
		"wins", batch.Wins, "payout", batch.TotalPayout, "peakStreak", batch.PeakStreak)
	return Applied(next)
}

func (e *Engine) redraw(s State) Outcome {
	next := s.Clone()
	for i := range next.DealtCards {
		if next.Held[i] || len(next.RoundDeck) == 0 {
			continue
		}
		next.DealtCards[i] = next.RoundDeck[0]
		next.RoundDeck = next.RoundDeck[1:]
	}
	next.DrawsUsed++
	e.logger.Debug("Redrew cards", "round", s.Round, "step", next.DrawsUsed, "of", s.MaxDraws)
	return Applied(next)
}

// baseHand turns the dealt cards into the five-card hand the parallel hands
// grow from. With five dealt cards positions are kept. With more, held cards
// come first and the remaining slots take the leftmost unheld cards.
func baseHand(dealt []poker.Card, held []bool) ([]poker.Card, []int) {
	if len(dealt) == handSize {
		var idx []int
		for i, h := range held {
			if h {
				idx = append(idx, i)
			}
		}
		return poker.CloneCards(dealt), idx
	}

	base := make([]poker.Card, 0, handSize)
	var idx []int
	for i, c := range dealt {
		if held[i] && len(base) < handSize {
			idx = append(idx, len(base))
			base = append(base, c)
		}
	}
	for i, c := range dealt {
		if !held[i] && len(base) < handSize {
			base = append(base, c)
		}
	}
	return base, idx
}

// firstFree returns the first position not in held, or -1.
func firstFree(held []int) int {
	taken := [handSize]bool{}
	for _, i := range held {
		taken[i] = true
	}
	for i, t := range taken {
		if !t {
			return i
		}
	}
	return -1
}

// FinishAnimation moves from the parallel-hand animation to the results.
func (e *Engine) FinishAnimation(s State) Outcome {
	if s.Phase != PhaseAnimation {
		return NoOp("no animation running")
	}
	next := s.Clone()
	next.Phase = PhaseResults
	return Applied(next)
}
