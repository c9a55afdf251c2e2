package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/Garsondee/Curve-Pass/internal/audio"
	"github.com/Garsondee/Curve-Pass/internal/config"
	"github.com/Garsondee/Curve-Pass/internal/logger"
	"github.com/Garsondee/Curve-Pass/internal/tui"
)

func main() {
	cfg, err := config.Load("tui", os.Args[1:], ".env", os.Getenv)
	if err != nil {
		log.Fatal("bad configuration", "err", err)
	}
	// The screen owns the terminal, so only warnings and worse reach stderr.
	level := cfg.LogLevel
	if level == "debug" || level == "info" {
		level = "warn"
	}
	l := logger.New("tui", level)

	sounds := audio.NewSoundManager()
	if cfg.Audio {
		if err := sounds.Initialize(); err != nil {
			l.Warn("audio unavailable", "err", err)
		}
	}
	defer sounds.Cleanup()

	screen, err := tui.NewScreen()
	if err != nil {
		l.Fatal("terminal unavailable", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := tui.New(screen, tui.Options{
		Seed:     cfg.Seed,
		Autoplay: cfg.Autoplay,
		Sounds:   sounds,
		Logger:   l,
	})
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		l.Error("tui stopped", "err", err)
		os.Exit(1)
	}
}
