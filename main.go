package main

import (
	"log/slog"
	"os"

	"texload/convert"
	"texload/inspect"
	"texload/parallel"

	"github.com/alecthomas/kong"
)

type cli struct {
	Config   kong.ConfigFlag `help:"YAML configuration file" placeholder:"FILE"`
	LogLevel string          `help:"Log level" enum:"debug,info,warn,error" default:"info"`
	Workers  int             `help:"Number of parallel workers, 0 uses all CPUs" default:"0"`

	Convert convert.CLICmd `cmd:"" help:"Convert a folder of textures to power-of-two images"`
	Info    inspect.CLICmd `cmd:"" help:"Print the headers of TGA files"`
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("texload"),
		kong.Description("Decode TGA and other images into power-of-two RGBA textures."),
		kong.UsageOnError(),
		kong.Configuration(YAML, "~/.texload.yaml", ".texload.yaml"),
	)

	slog.SetDefault(newLogger(c.LogLevel))
	slog.Debug("running", "command", kctx.Command(), "workers", c.Workers)

	kctx.FatalIfErrorf(kctx.Run(parallel.Start(c.Workers)))
}
