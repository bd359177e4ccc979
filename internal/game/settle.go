package game

import (
	"math"
)

// SettleRound credits payout, advances the round and applies the economy
// rules in order: minimum-bet escalation, endless-mode entry and failure
// checks, bet and hand-count auto-adjustment, and the shop.
func (e *Engine) SettleRound(s State, payout int) Outcome {
	if s.Phase != PhaseResults && s.Phase != PhaseAnimation {
		return NoOp("no round to settle")
	}

	next := s.Clone()
	next.Credits += payout
	next.TotalEarnings += payout
	next.Round++
	completed := next.Round - 1

	next.LastRound = LastRound{Payout: payout}
	if b := s.LastBatch; b != nil {
		next.LastRound.Hands = b.Hands()
		next.LastRound.Wins = b.Wins
	}
	next.DealtCards = nil
	next.Held = nil
	next.RoundDeck = nil
	next.DrawsUsed = 0
	next.DevilsDeal.Offer = nil
	next.DevilsDeal.Held = false

	econ := e.cfg.Economy
	if completed%econ.MinimumBetIncreaseInterval == 0 {
		raised := int(math.Ceil(float64(next.MinimumBet) * (1 + econ.MinimumBetIncreasePercent/100)))
		if raised != next.MinimumBet {
			e.logger.Debug("Minimum bet raised", "round", next.Round, "from", next.MinimumBet, "to", raised)
		}
		next.MinimumBet = raised
	}

	wasEndless := s.IsEndlessMode
	if !wasEndless && next.Round > e.cfg.Endless.StartRound {
		next.IsEndlessMode = true
		next.EndlessRound = 0
		next.BaseMinimumBet = next.MinimumBet
		e.logger.Info("Entered endless mode", "round", next.Round, "baseMinimumBet", next.BaseMinimumBet)
	}
	if wasEndless {
		next.EndlessRound++
		if f := e.checkFailure(next); f != nil {
			next.Failure = f
			next.Phase = PhaseGameOver
			e.logger.Info("Run failed", "run", next.RunID, "round", next.Round, "condition", f.Condition,
				"value", f.Value, "threshold", f.Threshold)
			return Applied(next)
		}
	}

	if next.BetAmount < next.MinimumBet {
		next.BetAmount = next.MinimumBet
	}
	if !adjustForCredits(&next) {
		next.Phase = PhaseGameOver
		e.logger.Info("Out of credits", "run", next.RunID, "round", next.Round, "credits", next.Credits)
		return Applied(next)
	}

	if completed%e.cfg.Shop.Frequency == 0 {
		next.ShopOptions = e.rollShop(next)
		next.Phase = PhaseShop
	} else {
		next.Phase = PhasePreDraw
	}
	return Applied(next)
}

// adjustForCredits lowers the bet, then the hand count, until a deal is
// affordable. It reports false when not even one hand at the minimum bet is.
func adjustForCredits(s *State) bool {
	if s.Credits >= s.DealCost() {
		return true
	}
	count := s.SelectedHandCount
	if count < 1 {
		count = 1
	}
	bet := max(s.MinimumBet, s.Credits/count)
	if s.Credits < bet*count {
		count = s.Credits / bet
	}
	s.BetAmount = bet
	if count < 1 {
		return false
	}
	s.SelectedHandCount = count
	return true
}
