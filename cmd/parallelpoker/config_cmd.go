package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/parallelpoker/internal/config"
)

// ConfigCmd groups the rule-set utilities.
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" help:"Print a complete rule set as an overlay file"`
	Validate ConfigValidateCmd `cmd:"" help:"Check overlay files"`
	Modes    ConfigModesCmd    `cmd:"" help:"List the built-in modes"`
}

// ConfigShowCmd prints the effective config for a mode and optional file.
type ConfigShowCmd struct {
	Mode   string `default:"standard" help:"Built-in rule set"`
	Config string `short:"c" type:"existingfile" help:"Rule overlay file applied after the mode"`
	Format string `short:"f" enum:"hcl,toml,yaml" default:"hcl" help:"Output format (hcl, toml, yaml)"`
}

func (c *ConfigShowCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *ConfigShowCmd) run(w io.Writer) error {
	cfg, err := buildConfig(c.Mode, c.Config)
	if err != nil {
		return err
	}
	return config.Encode(w, config.FromConfig(cfg), config.Format(c.Format))
}

// ConfigValidateCmd layers each file over a mode and reports problems.
type ConfigValidateCmd struct {
	Files []string `arg:"" name:"file" type:"existingfile" help:"Overlay files to check"`
	Mode  string   `default:"standard" help:"Built-in rule set the files are applied to"`
}

func (c *ConfigValidateCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *ConfigValidateCmd) run(w io.Writer) error {
	var errs []error
	for _, path := range c.Files {
		if _, err := buildConfig(c.Mode, path); err != nil {
			_, _ = fmt.Fprintf(w, "✗ %s\n", path)
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		_, _ = fmt.Fprintf(w, "✓ %s\n", path)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ConfigModesCmd lists the built-in modes.
type ConfigModesCmd struct{}

func (c *ConfigModesCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *ConfigModesCmd) run(w io.Writer) error {
	for _, name := range config.ModeNames() {
		cfg, err := config.ForMode(name)
		if err != nil {
			return err
		}
		e := cfg.Endless
		var off []string
		if !e.BetLimit.Enabled {
			off = append(off, "bet-limit")
		}
		if !e.AverageEarnings.Enabled {
			off = append(off, "average-earnings")
		}
		if !e.WinningHands.Enabled {
			off = append(off, "winning-hands")
		}
		if !e.WinPercentage.Enabled {
			off = append(off, "win-percentage")
		}
		line := fmt.Sprintf("%-10s %4d credits, endless after round %d, shop every %d rounds",
			name, cfg.Economy.StartingCredits, e.StartRound, cfg.Shop.Frequency)
		if len(off) > 0 {
			line += ", no " + strings.Join(off, "/")
		}
		_, _ = fmt.Fprintln(w, line)
	}
	return nil
}
