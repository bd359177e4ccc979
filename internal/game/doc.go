// Package game implements the round and economy state machine of a run.
//
// State is a value. Every transition is a method on Engine that takes the
// current State and returns an Outcome: either Applied with a complete new
// State, or NoOp with a reason and no change. Inputs are never modified, so
// a caller can publish Outcome.Resolve(prev) as the next snapshot without
// ever exposing a half-applied transition.
//
// # Basic Usage
//
//	cfg, _ := config.ForMode("standard")
//	e := game.NewEngine(cfg, game.WithRand(randutil.New(42)))
//	s := e.StartRun(e.NewState()).Next
//	s = e.Deal(s).Resolve(s)
//	s = e.ToggleHold(s, 0).Resolve(s)
//	s = e.Draw(s).Resolve(s)
//	s = e.FinishAnimation(s).Resolve(s)
//	s = e.SettleRound(s, s.LastBatch.TotalPayout).Resolve(s)
//
// # Phases
//
// A run moves menu → preDraw → playing → parallelHandsAnimation → results,
// then back to preDraw or through the shop, until it ends in gameOver.
//
// # Concurrency
//
// Engine holds the random source and is not safe for concurrent use. Session
// wraps an Engine and the current State behind a mutex for shells that read
// state from other goroutines.
package game
