package stream

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Garsondee/Curve-Pass/internal/sim"
)

// Runner owns a match and is its only mutator. It steps the match at a
// fixed rate, applies queued client commands between frames and
// broadcasts snapshots and events through a Hub.
type Runner struct {
	Match     *sim.Match
	Autopilot *sim.Autopilot
	Autoplay  bool
	// SnapshotEvery sends a state envelope every n frames.
	SnapshotEvery int

	hub    *Hub
	log    *log.Logger
	latest atomic.Pointer[sim.Snapshot]
}

// NewRunner creates a runner for a seeded match.
func NewRunner(logger *log.Logger, hub *Hub, seed int64, autoplay bool) *Runner {
	r := &Runner{
		Match:         sim.NewMatch(seed),
		Autopilot:     sim.NewAutopilot(seed + 1),
		Autoplay:      autoplay,
		SnapshotEvery: 2,
		hub:           hub,
		log:           logger,
	}
	snap := r.Match.Snapshot()
	r.latest.Store(&snap)
	return r
}

// Latest is the most recently published snapshot. It is safe to call from
// any goroutine.
func (r *Runner) Latest() *sim.Snapshot { return r.latest.Load() }

// Run steps the match tickRate times a second until ctx ends.
func (r *Runner) Run(ctx context.Context, tickRate int) error {
	if tickRate <= 0 {
		tickRate = 60
	}
	dt := 1.0 / float64(tickRate)
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.drainCommands()
			r.Tick(dt)
		}
	}
}

// Tick advances one frame and publishes its output.
func (r *Runner) Tick(dt float64) {
	m := r.Match
	m.Step(dt)
	if r.Autoplay {
		r.Autopilot.Tick(m, dt)
	}
	for _, ev := range m.DrainEvents() {
		if ev.Kind.Terminal() {
			r.log.Info("round over", "event", ev.Kind, "frame", ev.Frame, "score", m.Score)
		}
		r.hub.Broadcast(ServerEnvelope{Type: TypeEvent, Frame: m.Frame, Event: NewEventMsg(ev)})
	}
	if r.SnapshotEvery <= 1 || m.Frame%r.SnapshotEvery == 0 {
		snap := m.Snapshot()
		r.latest.Store(&snap)
		r.hub.Broadcast(ServerEnvelope{
			Type:     TypeState,
			Frame:    m.Frame,
			State:    &snap,
			ServerMS: time.Now().UTC().UnixMilli(),
		})
	}
}

func (r *Runner) drainCommands() {
	for {
		select {
		case cmd := <-r.hub.Commands():
			r.Apply(cmd)
		default:
			return
		}
	}
}

// Apply executes one client command against the match.
func (r *Runner) Apply(cmd Command) {
	switch cmd.Msg.Type {
	case TypeGesture:
		if err := r.Match.Release(cmd.Msg.Gesture()); err != nil {
			r.log.Debug("client gesture rejected", "session", cmd.Session, "err", err)
			r.hub.SendError(cmd.Session, err.Error())
		}
	case TypeReset:
		r.Match.Reset()
	case TypeAutoplay:
		r.Autoplay = cmd.Msg.On
	}
}
