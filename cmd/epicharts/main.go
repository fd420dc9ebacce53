package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
)

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("epicharts"),
		kong.Description("Draw epidemic line and pie charts as SVG."),
		kong.UsageOnError(),
	)
	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	sig, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err := ctx.Run(&Context{
		Context: sig,
		Logger:  logger,
	})
	ctx.FatalIfErrorf(err)
}
