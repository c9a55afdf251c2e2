// Package game is the ebiten frontend: a top-down pitch, pointer gestures,
// a HUD and a scrolling match feed.
package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Curve-Pass/internal/scene"
	"github.com/Garsondee/Curve-Pass/internal/sim"
)

// borderWidth is the pixel gap between the window edge and the pitch.
const borderWidth = 24

const (
	pitchWidth  = 960
	pitchHeight = 720
	// reportTail is how many log lines the clipboard report carries.
	reportTail = 80
)

// Sounds receives match events. *audio.SoundManager satisfies it.
type Sounds interface {
	Handle(ev sim.Event)
	SetMuted(muted bool)
	Muted() bool
}

// Options configures a new Game.
type Options struct {
	Seed     int64
	Camera   sim.CameraMode
	Autoplay bool
	Sounds   Sounds      // nil plays nothing
	Logger   *log.Logger // nil uses the charmbracelet default logger
}

// Game implements ebiten.Game.
type Game struct {
	width  int
	height int
	offX   int
	offY   int

	match     *sim.Match
	scene     *scene.Scene
	pitch     *PitchRenderer
	hud       *HUD
	feed      *Feed
	sounds    Sounds
	logger    *log.Logger
	autopilot *sim.Autopilot
	autoplay  bool

	showHUD  bool
	prevKeys map[ebiten.Key]bool

	// Simulation speed control.
	simSpeed  float64 // multiplier: 0=frozen, 0.5, 1, 2, 4
	tickAccum float64 // fractional frame accumulator for sub-1x speeds
}

// New builds a game at kickoff.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	g := &Game{
		width:     borderWidth + pitchWidth + borderWidth + feedPanelWidth,
		height:    borderWidth + pitchHeight + borderWidth,
		offX:      borderWidth,
		offY:      borderWidth,
		match:     sim.NewMatch(opts.Seed),
		feed:      NewFeed(),
		sounds:    opts.Sounds,
		logger:    logger,
		autopilot: sim.NewAutopilot(opts.Seed + 1),
		autoplay:  opts.Autoplay,
		showHUD:   true,
		prevKeys:  make(map[ebiten.Key]bool),
		simSpeed:  1,
	}
	if opts.Camera != g.match.Camera.Mode {
		g.match.Camera.Toggle()
		g.match.Camera.Snap(g.match.Ball.Pos)
	}
	g.pitch = NewPitchRenderer(pitchWidth, pitchHeight, g.offX, g.offY)
	g.hud = NewHUD(g.width, g.height)
	g.scene = scene.New(g.pitch, g.hud)
	return g
}

// Match exposes the running match.
func (g *Game) Match() *sim.Match { return g.match }

func (g *Game) Update() error {
	// Input is handled every frame regardless of sim speed.
	g.handleInput()

	if g.simSpeed <= 0 {
		return nil
	}
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.simTick()
	}
	return nil
}

func (g *Game) simTick() {
	g.match.Step(sim.FrameDT)
	if g.autoplay && !g.match.Drawing {
		g.autopilot.Tick(g.match, sim.FrameDT)
	}
	for _, ev := range g.match.DrainEvents() {
		if g.sounds != nil {
			g.sounds.Handle(ev)
		}
		if ev.Kind == sim.EventGoal {
			ebiten.SetWindowTitle(g.Title())
		}
		if ev.Kind.Terminal() {
			g.logger.Info("round over", "event", ev.Kind, "frame", ev.Frame, "score", g.match.Score)
		}
	}
	g.feed.Tail(g.match.Log)
}

func (g *Game) keyPressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !g.prevKeys[k]
}

func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}

	if g.keyPressed(currentKeys, ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if g.keyPressed(currentKeys, ebiten.KeyV) {
		g.match.ToggleCamera()
	}
	if g.keyPressed(currentKeys, ebiten.KeyR) {
		g.match.Reset()
		g.feed.Tail(g.match.Log)
	}
	if g.keyPressed(currentKeys, ebiten.KeyA) {
		g.autoplay = !g.autoplay
	}
	if g.keyPressed(currentKeys, ebiten.KeyL) {
		g.pitch.labels = !g.pitch.labels
	}
	if g.keyPressed(currentKeys, ebiten.KeyM) && g.sounds != nil {
		g.sounds.SetMuted(!g.sounds.Muted())
	}
	if g.keyPressed(currentKeys, ebiten.KeyC) {
		if err := copyToClipboard(g.Report()); err != nil {
			g.logger.Warn("copy report failed", "err", err)
		} else {
			g.logger.Info("report copied", "lines", g.match.Log.Len())
		}
	}

	// Sim speed controls: P=freeze/resume, ,=slower, .=faster.
	speeds := []float64{0, 0.5, 1, 2, 4}
	if g.keyPressed(currentKeys, ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if g.keyPressed(currentKeys, ebiten.KeyComma) {
		for i, s := range speeds {
			if s >= g.simSpeed && i > 0 {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	}
	if g.keyPressed(currentKeys, ebiten.KeyPeriod) {
		for i := len(speeds) - 1; i > 0; i-- {
			if speeds[i-1] <= g.simSpeed && speeds[i] > g.simSpeed {
				g.simSpeed = speeds[i]
				break
			}
		}
	}
	g.prevKeys = currentKeys

	g.handlePointer()
}

// handlePointer routes the left mouse button into the match gesture input.
// Presses outside the pitch are ignored; moves and releases are not, so a
// drag can leave the pitch and still finish.
func (g *Game) handlePointer() {
	mx, my := ebiten.CursorPosition()
	pick := g.pitch.Pick(float64(mx), float64(my))

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if g.inPitch(mx, my) {
			g.match.PointerDown(pick)
		}
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if err := g.match.PointerUp(pick); err != nil {
			g.logger.Debug("gesture rejected", "err", err)
		}
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.match.PointerMove(pick)
	}
}

func (g *Game) inPitch(x, y int) bool {
	return x >= g.offX && y >= g.offY && x < g.offX+pitchWidth && y < g.offY+pitchHeight
}

// Report is the clipboard text: the match summary and the tail of the log.
func (g *Game) Report() string {
	var sb strings.Builder
	sb.WriteString(g.match.Log.Summary(g.match))
	entries := g.match.Log.Entries()
	if len(entries) > reportTail {
		entries = entries[len(entries)-reportTail:]
	}
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 18, A: 255})

	g.scene.Sync(g.match)
	g.pitch.Blit(screen)

	ox, oy := float32(g.offX), float32(g.offY)
	vector.StrokeRect(screen, ox-1, oy-1, pitchWidth+2, pitchHeight+2, 2.0, color.RGBA{R: 65, G: 80, B: 110, A: 255}, false)
	vector.StrokeRect(screen, ox-3, oy-3, pitchWidth+6, pitchHeight+6, 1.0, color.RGBA{R: 40, G: 50, B: 75, A: 100}, false)

	g.feed.Draw(screen, g.offX+pitchWidth+g.offX, g.height)

	audioOn := g.sounds != nil && !g.sounds.Muted()
	lines := g.hud.Lines(g.simSpeed, g.match.Camera.Mode.String(), audioOn, g.autoplay)
	g.hud.Draw(screen, lines, g.showHUD, pitchWidth, g.offX, g.offY)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Title is the window title for the current score.
func (g *Game) Title() string {
	return fmt.Sprintf("Curve Pass  |  goals %d", g.match.Score)
}
