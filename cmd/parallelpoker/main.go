package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Debug     bool   `help:"Enable debug logging"`
	LogFormat string `name:"log-format" enum:"text,json,logfmt" default:"text" help:"Log output format (text, json, logfmt)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play runs in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Autoplay many runs and report how long they last"`
	Config   ConfigCmd        `cmd:"" help:"Inspect and validate rule sets"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("parallelpoker"),
		kong.Description("Video poker roguelike with parallel hands"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
