package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Garsondee/Curve-Pass/internal/config"
	"github.com/Garsondee/Curve-Pass/internal/logger"
	"github.com/Garsondee/Curve-Pass/internal/stream"
)

type health struct {
	Status  string `json:"status"`
	Match   string `json:"match"`
	Clients int    `json:"clients"`
	Frame   int    `json:"frame"`
	State   string `json:"state"`
	Score   int    `json:"score"`
}

func main() {
	cfg, err := config.Load("server", os.Args[1:], ".env", os.Getenv)
	if err != nil {
		log.Fatal("bad configuration", "err", err)
	}
	l := logger.New("server", cfg.LogLevel)

	codec, err := stream.ParseCodec(cfg.Codec)
	if err != nil {
		l.Fatal("bad codec", "err", err)
	}
	matchID := uuid.NewString()

	var runner *stream.Runner
	hub := stream.NewHub(l, codec, matchID, func() stream.ServerEnvelope {
		return stream.ServerEnvelope{
			State:    runner.Latest(),
			Message:  "connected",
			ServerMS: time.Now().UTC().UnixMilli(),
		}
	})
	runner = stream.NewRunner(l, hub, cfg.Seed, cfg.Autoplay)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		snap := runner.Latest()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(health{
			Status:  "ok",
			Match:   matchID,
			Clients: hub.ClientCount(),
			Frame:   snap.Frame,
			State:   snap.State,
			Score:   snap.Score,
		})
	})
	mux.Handle("/ws", hub)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := runner.Run(ctx, cfg.TickRate); err != nil && !errors.Is(err, context.Canceled) {
			l.Error("match loop stopped", "err", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		hub.Close()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			l.Warn("shutdown", "err", err)
		}
	}()

	l.Info("match server listening", "addr", cfg.Addr, "match", matchID, "codec", codec.Name(), "tick_rate", cfg.TickRate)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Fatal("server failed", "err", err)
	}
	l.Info("server stopped")
}
