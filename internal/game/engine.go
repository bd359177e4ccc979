package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/parallelpoker/internal/config"
	"github.com/lox/parallelpoker/internal/devilsdeal"
	"github.com/lox/parallelpoker/internal/randutil"
	"github.com/lox/parallelpoker/internal/runid"
	"github.com/lox/parallelpoker/internal/shop"
)

// Rand is the random source the engine draws from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Engine applies the rules of one config to states.
type Engine struct {
	cfg    config.Config
	rng    Rand
	ids    *runid.Generator
	logger *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source. The default draws from runtime entropy.
func WithRand(rng Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithIDs sets the generator for run and card ids.
func WithIDs(ids *runid.Generator) Option {
	return func(e *Engine) {
		e.ids = ids
	}
}

// NewEngine creates an engine for cfg. The config is assumed valid; build it
// with config.Builder.
func NewEngine(cfg config.Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg.Clone()}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = randutil.NewEntropy()
	}
	if e.logger == nil {
		e.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	e.logger = e.logger.WithPrefix("game")
	if e.ids == nil {
		e.ids = runid.NewGenerator(quartz.NewReal(), e.rng)
	}
	return e
}

// Config returns a copy of the engine's rules.
func (e *Engine) Config() config.Config {
	return e.cfg.Clone()
}

// NewState returns the menu state a session starts in.
func (e *Engine) NewState() State {
	return State{
		Phase:   PhaseMenu,
		Rewards: e.cfg.Rewards.Clone(),
	}
}

// StartRun begins a fresh run from any phase. Deck modifications and
// purchases from a previous run are discarded.
func (e *Engine) StartRun(s State) Outcome {
	econ := e.cfg.Economy
	next := State{
		Phase:             PhasePreDraw,
		RunID:             e.ids.RunID(),
		Credits:           econ.StartingCredits,
		BetAmount:         econ.StartingBet,
		SelectedHandCount: econ.StartingHandCount,
		HandCount:         econ.StartingHandCount,
		MinimumBet:        econ.MinimumBet,
		BaseMinimumBet:    econ.MinimumBet,
		Round:             1,
		MaxDraws:          econ.BaseDraws,
		Rewards:           e.cfg.Rewards.Clone(),
		Purchases:         map[shop.ItemID]int{},
	}
	e.logger.Info("Starting run", "run", next.RunID, "mode", e.cfg.Name, "credits", next.Credits)
	return Applied(next)
}

// EndRun abandons the current run.
func (e *Engine) EndRun(s State) Outcome {
	switch s.Phase {
	case PhaseMenu, PhaseGameOver:
		return NoOp("no run in progress")
	}
	next := s.Clone()
	next.Phase = PhaseGameOver
	next.DevilsDeal.Offer = nil
	next.DevilsDeal.Held = false
	e.logger.Info("Run ended", "run", s.RunID, "round", s.Round, "credits", s.Credits)
	return Applied(next)
}

// ReturnToMenu discards the run and goes back to the menu.
func (e *Engine) ReturnToMenu(s State) Outcome {
	if s.Phase == PhaseMenu {
		return NoOp("already at the menu")
	}
	return Applied(e.NewState())
}

// DevilsDealChance returns the current trigger chance in percent.
func (e *Engine) DevilsDealChance(s State) float64 {
	return devilsdeal.Chance(e.cfg.DevilsDeal, s.DevilsDeal.ChancePurchases)
}

// DevilsDealCostPercent returns the current cost percentage.
func (e *Engine) DevilsDealCostPercent(s State) float64 {
	return devilsdeal.CostPercent(e.cfg.DevilsDeal, s.DevilsDeal.DiscountPurchases)
}
