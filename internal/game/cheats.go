package game

import "github.com/lox/parallelpoker/poker"

// CheatAddCredits adds credits to a run in progress.
func (e *Engine) CheatAddCredits(s State, amount int) Outcome {
	if s.Phase == PhaseMenu || s.Phase == PhaseGameOver {
		return NoOp("no run in progress")
	}
	if amount <= 0 {
		return NoOp("amount must be positive")
	}
	next := s.Clone()
	next.Credits += amount
	e.logger.Warn("Cheat: added credits", "amount", amount, "credits", next.Credits)
	return Applied(next)
}

// CheatForceDevilsDeal puts a Devil's Deal on offer for the hand in play,
// bypassing the trigger roll.
func (e *Engine) CheatForceDevilsDeal(s State) Outcome {
	if s.Phase != PhasePlaying {
		return NoOp("no hand in play")
	}
	if s.DevilsDeal.Offer != nil {
		return NoOp("a Devil's Deal is already on offer")
	}
	offer, ok := e.makeOffer(s)
	if !ok {
		return NoOp("no card would improve this hand")
	}
	next := s.Clone()
	next.DevilsDeal.Offer = &offer
	next.DevilsDeal.Held = false
	next.RoundDeck = poker.RemoveCards(next.RoundDeck, []poker.Card{offer.Card})
	e.logger.Warn("Cheat: forced Devil's Deal", "card", offer.Card.String(), "cost", offer.Cost)
	return Applied(next)
}

// CheatSkipToEndless jumps a run to the first endless round.
func (e *Engine) CheatSkipToEndless(s State) Outcome {
	if s.Phase != PhasePreDraw {
		return NoOp("can only skip ahead before a deal")
	}
	if s.IsEndlessMode {
		return NoOp("already in endless mode")
	}
	next := s.Clone()
	next.Round = e.cfg.Endless.StartRound + 1
	next.IsEndlessMode = true
	next.EndlessRound = 0
	next.BaseMinimumBet = next.MinimumBet
	e.logger.Warn("Cheat: skipped to endless mode", "round", next.Round)
	return Applied(next)
}
