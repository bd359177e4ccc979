package main

import (
	"fmt"
	"os"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/parallelpoker/internal/report"
	"github.com/lox/parallelpoker/internal/simulator"
)

// SimulateCmd autoplays runs in parallel and summarizes them.
type SimulateCmd struct {
	Runs      int           `default:"1000" help:"Number of runs to play"`
	Workers   int           `default:"0" help:"Parallel workers (0 = GOMAXPROCS)"`
	Seed      *int64        `help:"Base seed; run i uses seed+i (optional)"`
	Mode      string        `default:"standard" help:"Built-in rule set (standard, hardcore, zen)"`
	Config    string        `short:"c" type:"existingfile" help:"Rule overlay file applied after the mode"`
	Strategy  string        `enum:"optimal,nothing,random" default:"optimal" help:"Hold strategy (optimal, nothing, random)"`
	Buy       string        `enum:"greedy,none" default:"greedy" help:"Shop strategy (greedy, none)"`
	MaxRounds int           `name:"max-rounds" default:"500" help:"Stop runs that survive this many rounds"`
	Timeout   time.Duration `default:"0s" help:"Per-run timeout (0 = none)"`
	Out       string        `short:"o" help:"Write the report to this file (.json, .yaml, .toml)"`
	Quiet     bool          `short:"q" help:"Hide the progress bar"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	logger := newLogger(os.Stderr, g)

	cfg, err := buildConfig(c.Mode, c.Config)
	if err != nil {
		return err
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	clock := quartz.NewReal()
	simCfg := simulator.Config{
		Runs:      c.Runs,
		Workers:   c.Workers,
		Seed:      seed,
		MaxRounds: c.MaxRounds,
		Timeout:   c.Timeout,
		Strategy:  c.Strategy,
		Buy:       c.Buy,
		Game:      cfg,
		Logger:    logger,
		Clock:     clock,
	}
	if !c.Quiet {
		progress := newProgressPrinter(os.Stdout, clock, c.Runs)
		simCfg.Progress = progress.Update
	}

	sim, err := simulator.New(simCfg)
	if err != nil {
		return err
	}
	resolved := sim.Config()

	fmt.Printf("Simulating %d %s runs with %d workers (strategy %s/%s, seed %d)\n",
		c.Runs, cfg.Name, resolved.Workers, resolved.Strategy, resolved.Buy, seed)

	ctx, cancel := signalContext(logger)
	defer cancel()

	stats, elapsed, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	r := report.New(report.Meta{
		Mode:     cfg.Name,
		Strategy: resolved.Strategy,
		Buy:      resolved.Buy,
		Runs:     c.Runs,
		Workers:  resolved.Workers,
		Seed:     seed,
	}, stats, clock.Now(), elapsed)

	fmt.Println()
	r.PrintSummary(os.Stdout)

	if c.Out != "" {
		if err := report.Write(c.Out, r); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		logger.Info("Report written", "path", c.Out)
	}
	return nil
}
