package tui

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Curve-Pass/internal/sim"
)

func newSimApp(t *testing.T, w, h int) (*App, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	s.SetSize(w, h)
	return New(s, Options{Seed: 1}), s
}

func screenText(s tcell.SimulationScreen) string {
	cells, w, _ := s.GetContents()
	var sb strings.Builder
	for i, c := range cells {
		if len(c.Runes) > 0 {
			sb.WriteRune(c.Runes[0])
		} else {
			sb.WriteByte(' ')
		}
		if (i+1)%w == 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func TestGrid_CellRoundTrip(t *testing.T) {
	g := Grid{Cols: 120, Rows: 40}
	p := sim.V(-22, 0, -30)
	x, y, ok := g.Cell(p)
	if !ok {
		t.Fatalf("%+v should map onto the grid", p)
	}
	back, on := g.World(x, y)
	if !on {
		t.Fatal("cell should be on the pitch")
	}
	if back.DistXZ(p) > 2.5 {
		t.Fatalf("round trip drifted %.2f", back.DistXZ(p))
	}
}

func TestGrid_EdgesAndOutside(t *testing.T) {
	g := Grid{Cols: 80, Rows: 20}
	if x, y, ok := g.Cell(sim.V(sim.Field.MinX, 0, sim.Field.MaxZ)); !ok || x != 79 || y != 19 {
		t.Fatalf("far corner -> (%d,%d,%v)", x, y, ok)
	}
	if _, _, ok := g.Cell(sim.V(0, 0, sim.Field.MaxZ+10)); ok {
		t.Fatal("point past the field should be off grid")
	}
	if _, on := g.World(-1, 3); on {
		t.Fatal("negative column should be off pitch")
	}
}

func TestApp_TickDrawsPitchAndStatus(t *testing.T) {
	app, s := newSimApp(t, 120, 40)
	app.Tick()
	text := screenText(s)
	if !strings.Contains(text, "PAUSED") {
		t.Fatalf("status row missing state:\n%s", text)
	}
	if !strings.ContainsRune(text, 'K') {
		t.Fatal("keepers should be drawn")
	}
	if !strings.Contains(text, "q quit") {
		t.Fatal("help row missing")
	}
}

func TestApp_MouseDragReleasesBall(t *testing.T) {
	app, _ := newSimApp(t, 120, 40)
	app.Tick()
	g := app.render.Grid()
	x, y, ok := g.Cell(app.Match().Ball.Pos)
	if !ok {
		t.Fatal("ball should be on the grid")
	}

	app.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, 0))
	if !app.Match().Drawing {
		t.Fatal("pressing near the holder should start a gesture")
	}
	for i := 1; i <= 20; i++ {
		app.HandleEvent(tcell.NewEventMouse(x+i, y, tcell.Button1, 0))
	}
	app.HandleEvent(tcell.NewEventMouse(x+20, y, tcell.ButtonNone, 0))

	if app.Match().State != sim.StatePlaying {
		t.Fatalf("state = %s after drag, want PLAYING", app.Match().State)
	}
}

func TestApp_KeysQuitAndToggle(t *testing.T) {
	app, _ := newSimApp(t, 100, 30)
	mode := app.Match().Camera.Mode
	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'v', 0))
	if app.Match().Camera.Mode == mode {
		t.Fatal("v should toggle the camera")
	}
	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', 0))
	frame := app.Match().Frame
	app.Tick()
	if app.Match().Frame != frame {
		t.Fatal("frozen app should not step the match")
	}
	if app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0)) {
		t.Fatal("q should quit")
	}
}

func TestApp_RunTicksAtFrameRate(t *testing.T) {
	if math.Abs(frameInterval.Seconds()-sim.FrameDT) > 1e-6 {
		t.Fatalf("frame interval %v does not match FrameDT", frameInterval)
	}
	app, _ := newSimApp(t, 80, 40)
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	if err := app.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if app.Match().Now <= 0 {
		t.Fatal("run returned without stepping the match")
	}
}
