package game

import (
	"sync"

	"github.com/lox/parallelpoker/internal/history"
)

// Action is a transition bound to its arguments.
type Action func(e *Engine, s State) Outcome

// Session owns the current State of one player. Transitions run one at a
// time and each result is published whole.
type Session struct {
	engine   *Engine
	recorder *history.Recorder

	mu    sync.Mutex
	state State
}

// NewSession starts a session at the menu. recorder may be nil.
func NewSession(engine *Engine, recorder *history.Recorder) *Session {
	return &Session{
		engine:   engine,
		recorder: recorder,
		state:    engine.NewState(),
	}
}

// Engine returns the session's engine.
func (s *Session) Engine() *Engine {
	return s.engine
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Do applies action to the current state and publishes the result.
func (s *Session) Do(action Action) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	out := action(s.engine, prev.Clone())
	if !out.Changed() {
		s.engine.logger.Debug("Action rejected", "phase", prev.Phase, "reason", out.Reason)
		return out
	}
	s.state = out.Next
	s.observe(prev, out.Next)
	return Outcome{Kind: out.Kind, Next: out.Next.Clone()}
}

func (s *Session) observe(prev, next State) {
	if s.recorder == nil {
		return
	}
	if next.RunID != prev.RunID {
		s.recorder.Reset()
	}
	settled := next.Round > prev.Round && prev.Round > 0 && next.RunID == prev.RunID &&
		(prev.Phase == PhaseResults || prev.Phase == PhaseAnimation)
	if !settled {
		return
	}

	entry := history.Entry{
		RunID:      prev.RunID,
		Round:      prev.Round,
		Bet:        prev.BetAmount,
		Cost:       prev.DealCost(),
		Payout:     next.LastRound.Payout,
		Hands:      next.LastRound.Hands,
		Wins:       next.LastRound.Wins,
		Credits:    next.Credits,
		PeakStreak: next.PeakStreak,
		Endless:    prev.IsEndlessMode,
	}
	if b := prev.LastBatch; b != nil {
		entry.BestRank = b.BestRank()
	}
	s.recorder.Record(entry)
}
