// Package tui is a terminal frontend for the match, drawn with tcell.
// The mouse draws gestures exactly as the pointer does in the window build.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Curve-Pass/internal/scene"
	"github.com/Garsondee/Curve-Pass/internal/sim"
)

const helpText = "drag from ball=pass/shot  click ally=select  v camera  a autoplay  r reset  p freeze  q quit"

// Sounds receives match events.
type Sounds interface {
	Handle(ev sim.Event)
}

// Options configures an App.
type Options struct {
	Seed     int64
	Autoplay bool
	Sounds   Sounds
	Logger   *log.Logger
}

// App runs a match in a terminal.
type App struct {
	screen    tcell.Screen
	render    *Renderer
	scene     *scene.Scene
	match     *sim.Match
	autopilot *sim.Autopilot
	autoplay  bool
	frozen    bool
	sounds    Sounds
	logger    *log.Logger

	mouseDown bool
}

// New wraps an initialised screen. Use NewScreen for the real terminal.
func New(s tcell.Screen, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	s.EnableMouse()
	r := NewRenderer(s)
	r.SetHelp(helpText)
	return &App{
		screen:    s,
		render:    r,
		scene:     scene.New(r, r),
		match:     sim.NewMatch(opts.Seed),
		autopilot: sim.NewAutopilot(opts.Seed + 1),
		autoplay:  opts.Autoplay,
		sounds:    opts.Sounds,
		logger:    logger,
	}
}

// NewScreen opens and initialises the terminal.
func NewScreen() (tcell.Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tui: new screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("tui: init screen: %w", err)
	}
	return s, nil
}

// Match exposes the running match.
func (a *App) Match() *sim.Match { return a.match }

// frameInterval is sim.FrameDT as a wall-clock tick.
const frameInterval = time.Second / 60

// Run drives the match at sim.FrameDT until ctx ends or the user quits.
// The screen is finalised on return.
func (a *App) Run(ctx context.Context) error {
	defer a.screen.Fini()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.Tick()
		}
	}
}

// Tick advances one frame and redraws.
func (a *App) Tick() {
	if !a.frozen {
		a.match.Step(sim.FrameDT)
		if a.autoplay && !a.match.Drawing {
			a.autopilot.Tick(a.match, sim.FrameDT)
		}
	}
	for _, ev := range a.match.DrainEvents() {
		if a.sounds != nil {
			a.sounds.Handle(ev)
		}
		if ev.Kind.Terminal() {
			a.logger.Debug("round over", "event", ev.Kind, "score", a.match.Score)
		}
	}
	a.scene.Sync(a.match)
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'v':
			a.match.ToggleCamera()
		case 'a':
			a.autoplay = !a.autoplay
		case 'r':
			a.match.Reset()
		case 'p':
			a.frozen = !a.frozen
		}
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.render.Resize()
		a.screen.Sync()
	}
	return true
}

// handleMouse turns button-1 state changes into pointer down, move and up.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pick := a.render.Pick(float64(x), float64(y))
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !a.mouseDown:
		a.match.PointerDown(pick)
	case down:
		a.match.PointerMove(pick)
	case a.mouseDown:
		if err := a.match.PointerUp(pick); err != nil {
			a.logger.Debug("gesture rejected", "err", err)
		}
	}
	a.mouseDown = down
}
