package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/parallelpoker/internal/config"
	"github.com/lox/parallelpoker/internal/game"
	"github.com/lox/parallelpoker/internal/randutil"
	"github.com/lox/parallelpoker/internal/runid"
	"github.com/lox/parallelpoker/internal/statistics"
)

// DefaultMaxRounds caps runs that never fail.
const DefaultMaxRounds = 500

// maxStepsPerRound bounds the transitions one round may take before a run is
// considered stuck.
const maxStepsPerRound = 64

// ErrStuck is returned when a run stops making progress.
var ErrStuck = errors.New("simulator: run made no progress")

// Config holds configuration for running simulations
type Config struct {
	Runs      int
	Workers   int // 0 means GOMAXPROCS
	Seed      int64
	MaxRounds int           // 0 means DefaultMaxRounds
	Timeout   time.Duration // per run, 0 means none
	Strategy  string
	Buy       string
	Game      config.Config
	Logger    *log.Logger
	Clock     quartz.Clock

	// Progress, when set, is called from worker goroutines after each run.
	Progress func(done, total int)
}

// Simulator autoplays complete runs
type Simulator struct {
	config Config
	hold   HoldStrategy
	buy    BuyStrategy
}

// New creates a simulator, filling in defaults and resolving strategies.
func New(cfg Config) (*Simulator, error) {
	if cfg.Runs < 1 {
		return nil, fmt.Errorf("runs must be at least 1, got %d", cfg.Runs)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = DefaultMaxRounds
	}
	if cfg.Strategy == "" {
		cfg.Strategy = "optimal"
	}
	if cfg.Buy == "" {
		cfg.Buy = "greedy"
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if err := cfg.Game.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	hold, ok := HoldStrategies[cfg.Strategy]
	if !ok {
		return nil, fmt.Errorf("unknown hold strategy %q (want one of %v)", cfg.Strategy, StrategyNames(HoldStrategies))
	}
	buy, ok := BuyStrategies[cfg.Buy]
	if !ok {
		return nil, fmt.Errorf("unknown buy strategy %q (want one of %v)", cfg.Buy, StrategyNames(BuyStrategies))
	}
	return &Simulator{config: cfg, hold: hold, buy: buy}, nil
}

// Config returns the resolved configuration.
func (s *Simulator) Config() Config {
	return s.config
}

// Run plays every run and returns the aggregated statistics and the wall
// time taken. Run i uses seed Seed+i, so results do not depend on the
// worker count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, time.Duration, error) {
	cfg := s.config
	logger := cfg.Logger.WithPrefix("sim")
	start := cfg.Clock.Now()

	results := make([]statistics.RunResult, cfg.Runs)
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range results {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seed := cfg.Seed + int64(i)
			result, err := s.playRunWithTimeout(ctx, seed)
			if err != nil {
				return fmt.Errorf("run %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = result
			n := done.Add(1)
			logger.Debug("Run finished", "run", i+1, "seed", seed, "rounds", result.Rounds, "failure", result.Failure)
			if cfg.Progress != nil {
				cfg.Progress(int(n), cfg.Runs)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, 0, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := cfg.Clock.Since(start)
	logger.Info("Simulation complete", "runs", cfg.Runs, "meanRounds", stats.Mean(), "elapsed", elapsed)
	return stats, elapsed, nil
}

func (s *Simulator) playRunWithTimeout(ctx context.Context, seed int64) (statistics.RunResult, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}
	return s.PlayRun(ctx, seed)
}

// PlayRun autoplays a single run from seed until it ends or hits the round
// cap.
func (s *Simulator) PlayRun(ctx context.Context, seed int64) (statistics.RunResult, error) {
	cfg := s.config
	rng := randutil.New(seed)

	// Per-run lifecycle logs drown out the summary unless debugging.
	gameLogger := cfg.Logger.With("seed", seed)
	if gameLogger.GetLevel() > log.DebugLevel && gameLogger.GetLevel() < log.WarnLevel {
		gameLogger.SetLevel(log.WarnLevel)
	}
	engine := game.NewEngine(cfg.Game,
		game.WithRand(rng),
		game.WithLogger(gameLogger),
		game.WithIDs(runid.NewGenerator(cfg.Clock, rng)),
	)

	state := engine.StartRun(engine.NewState()).Next
	result := statistics.RunResult{Seed: seed}

	steps := 0
	lastRound := state.Round
	for !state.GameOver() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if state.Round > cfg.MaxRounds {
			result.Failure = statistics.FailureRoundLimit
			break
		}
		if state.Round != lastRound {
			lastRound = state.Round
			steps = 0
		}
		if steps++; steps > maxStepsPerRound {
			return result, fmt.Errorf("%w: round %d, phase %s", ErrStuck, state.Round, state.Phase)
		}

		var out game.Outcome
		switch state.Phase {
		case game.PhasePreDraw:
			state = s.prepareDeal(engine, state)
			out = engine.Deal(state)
		case game.PhasePlaying:
			state = s.applyPlan(engine, state, s.hold(state, rng))
			out = engine.Draw(state)
		case game.PhaseAnimation:
			out = engine.FinishAnimation(state)
		case game.PhaseResults:
			b := state.LastBatch
			result.Hands += b.Hands()
			result.Wins += b.Wins
			if best := b.BestRank(); best > result.BestRank {
				result.BestRank = best
			}
			out = engine.SettleRound(state, b.TotalPayout)
		case game.PhaseShop:
			state = s.buy(engine, state)
			out = engine.LeaveShop(state)
		default:
			return result, fmt.Errorf("%w: unexpected phase %s", ErrStuck, state.Phase)
		}
		if !out.Changed() {
			return result, fmt.Errorf("%w: %s rejected in round %d: %s", ErrStuck, state.Phase, state.Round, out.Reason)
		}
		state = out.Next
	}

	result.Rounds = state.Round - 1
	result.ReachedEndless = state.IsEndlessMode
	result.EndlessRounds = state.EndlessRound
	result.FinalCredits = state.Credits
	result.TotalEarnings = state.TotalEarnings
	result.PeakStreak = state.PeakStreak
	for _, n := range state.Purchases {
		result.Purchases += n
	}
	if result.Failure == "" {
		result.Failure = statistics.FailureCredits
		if state.Failure != nil {
			result.Failure = string(state.Failure.Condition)
		}
	}
	return result, nil
}

// prepareDeal bets the minimum and plays as many owned hands as the credits
// allow.
func (s *Simulator) prepareDeal(e *game.Engine, st game.State) game.State {
	st = e.SetBet(st, st.MinimumBet).Resolve(st)
	want := st.HandCount
	if st.BetAmount > 0 {
		want = min(want, st.Credits/st.BetAmount)
	}
	if want >= 1 {
		st = e.SetHandCount(st, want).Resolve(st)
	}
	return st
}

// applyPlan toggles holds until the state matches plan. Releases go first so
// the five-card limit never blocks a swap. At the final draw with extra
// cards the plan is padded or trimmed to exactly five.
func (s *Simulator) applyPlan(e *game.Engine, st game.State, plan Plan) game.State {
	held := append([]bool(nil), plan.Held...)
	if len(st.DealtCards) > 5 && st.IsFinalDraw() {
		held = exactlyFive(held)
		plan.TakeDeal = false
	}

	if !plan.TakeDeal && st.DevilsDeal.Held {
		st = e.ToggleDevilsDealHold(st).Resolve(st)
	}
	for i, h := range held {
		if st.Held[i] && !h {
			st = e.ToggleHold(st, i).Resolve(st)
		}
	}
	for i, h := range held {
		if !st.Held[i] && h {
			st = e.ToggleHold(st, i).Resolve(st)
		}
	}
	if plan.TakeDeal && !st.DevilsDeal.Held {
		st = e.ToggleDevilsDealHold(st).Resolve(st)
	}
	return st
}

func exactlyFive(held []bool) []bool {
	n := 0
	for i, h := range held {
		if h {
			if n == 5 {
				held[i] = false
				continue
			}
			n++
		}
	}
	for i := range held {
		if n == 5 {
			break
		}
		if !held[i] {
			held[i] = true
			n++
		}
	}
	return held
}
