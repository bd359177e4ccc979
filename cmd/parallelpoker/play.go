package main

import (
	"errors"
	"os"

	"github.com/coder/quartz"
	"golang.org/x/term"

	"github.com/lox/parallelpoker/internal/config"
	"github.com/lox/parallelpoker/internal/game"
	"github.com/lox/parallelpoker/internal/history"
	"github.com/lox/parallelpoker/internal/randutil"
	"github.com/lox/parallelpoker/internal/runid"
	"github.com/lox/parallelpoker/internal/tui"
)

// PlayCmd starts the interactive shell.
type PlayCmd struct {
	Mode    string `default:"standard" help:"Built-in rule set (standard, hardcore, zen)"`
	Config  string `short:"c" type:"existingfile" help:"Rule overlay file (.hcl, .toml, .yaml) applied after the mode"`
	Seed    *int64 `help:"Deterministic RNG seed (optional)"`
	LogFile string `name:"log-file" help:"Write logs to this file"`
	History int    `default:"200" help:"Settled rounds kept in the history (0 = all)"`
	Cheats  bool   `help:"Enable the cheat command"`
	NoColor bool   `name:"no-color" help:"Disable colors"`
}

func (c *PlayCmd) Run(g *Globals) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs an interactive terminal; use simulate for batch runs")
	}

	cfg, err := buildConfig(c.Mode, c.Config)
	if err != nil {
		return err
	}

	logger, closeLog, err := fileLogger(c.LogFile, g)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	clock := quartz.NewReal()
	var rng game.Rand = randutil.NewEntropy()
	ids := runid.NewGenerator(clock, nil)
	if c.Seed != nil {
		logger.Info("Using deterministic seed", "seed", *c.Seed)
		seeded := randutil.New(*c.Seed)
		rng = seeded
		ids = runid.NewGenerator(clock, seeded)
	}
	engine := game.NewEngine(cfg,
		game.WithRand(rng),
		game.WithLogger(logger),
		game.WithIDs(ids),
	)
	recorder := history.NewRecorder(clock, c.History)
	session := game.NewSession(engine, recorder)

	if c.NoColor {
		tui.DisableColor()
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	logger.Info("Starting play session", "mode", cfg.Name)
	return tui.Run(ctx, session, logger, tui.Options{History: recorder, Cheats: c.Cheats})
}

// buildConfig layers a mode and an optional file over the defaults.
func buildConfig(mode, path string) (config.Config, error) {
	return config.NewBuilder(config.Default()).Mode(mode).File(path).Build()
}
