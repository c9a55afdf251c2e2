package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Curve-Pass/internal/audio"
	"github.com/Garsondee/Curve-Pass/internal/config"
	"github.com/Garsondee/Curve-Pass/internal/game"
	"github.com/Garsondee/Curve-Pass/internal/logger"
	"github.com/Garsondee/Curve-Pass/internal/sim"
)

func main() {
	cfg, err := config.Load("game", os.Args[1:], ".env", os.Getenv)
	if err != nil {
		log.Fatal("bad configuration", "err", err)
	}
	l := logger.New("game", cfg.LogLevel)
	camera, ok := sim.ParseCameraMode(cfg.CameraMode)
	if !ok {
		l.Fatal("bad camera mode", "camera", cfg.CameraMode)
	}

	sounds := audio.NewSoundManager()
	if err := sounds.Initialize(); err != nil {
		l.Warn("audio unavailable, continuing muted", "err", err)
	}
	defer sounds.Cleanup()
	sounds.SetMuted(!cfg.Audio)

	g := game.New(game.Options{
		Seed:     cfg.Seed,
		Camera:   camera,
		Autoplay: cfg.Autoplay,
		Sounds:   sounds,
		Logger:   l,
	})

	ebiten.SetWindowTitle(g.Title())
	ebiten.SetWindowSize(g.Layout(0, 0))
	l.Info("starting", "seed", cfg.Seed, "camera", camera, "audio", cfg.Audio)
	if err := ebiten.RunGame(g); err != nil {
		l.Fatal("game stopped", "err", err)
	}
}
