package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Curve-Pass/internal/scene"
	"github.com/Garsondee/Curve-Pass/internal/sim"
)

const statusRows = 2

var (
	styleGrass  = tcell.StyleDefault.Background(tcell.NewRGBColor(24, 70, 30)).Foreground(tcell.NewRGBColor(60, 120, 64))
	styleLine   = styleGrass.Foreground(tcell.NewRGBColor(220, 230, 220))
	styleNet    = styleGrass.Foreground(tcell.NewRGBColor(170, 170, 170))
	styleAlly   = styleGrass.Foreground(tcell.NewRGBColor(90, 150, 255)).Bold(true)
	styleEnemy  = styleGrass.Foreground(tcell.NewRGBColor(255, 90, 80)).Bold(true)
	styleKeeper = styleGrass.Foreground(tcell.NewRGBColor(250, 210, 60)).Bold(true)
	styleBall   = styleGrass.Foreground(tcell.ColorWhite).Bold(true)
	styleTrail  = styleGrass.Foreground(tcell.NewRGBColor(255, 150, 50))
	stylePath   = styleGrass.Foreground(tcell.NewRGBColor(255, 230, 90))
	styleStatus = tcell.StyleDefault.Background(tcell.NewRGBColor(10, 12, 18)).Foreground(tcell.NewRGBColor(220, 220, 220))
	styleBanner = styleStatus.Foreground(tcell.NewRGBColor(255, 220, 60)).Bold(true)
)

// Renderer draws the match into a tcell screen. It implements
// scene.Backend and scene.HUD.
type Renderer struct {
	*scene.Registry
	screen  tcell.Screen
	grid    Grid
	preview []sim.Vec3

	state  string
	toast  string
	banner string
	score  int
	help   string
}

// NewRenderer creates a renderer sized to the screen.
func NewRenderer(s tcell.Screen) *Renderer {
	r := &Renderer{Registry: scene.NewRegistry(), screen: s}
	r.Resize()
	return r
}

// Resize refits the pitch grid to the current screen size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	rows := h - statusRows
	if rows < 1 {
		rows = 1
	}
	r.grid = Grid{Left: 0, Top: 0, Cols: w, Rows: rows}
}

// Grid is the current cell mapping.
func (r *Renderer) Grid() Grid { return r.grid }

func (r *Renderer) SetState(s string)  { r.state = s }
func (r *Renderer) SetToast(s string)  { r.toast = s }
func (r *Renderer) SetBanner(s string) { r.banner = s }
func (r *Renderer) SetScore(n int)     { r.score = n }

// SetHelp sets the key legend shown on the second status row.
func (r *Renderer) SetHelp(s string) { r.help = s }

// SetPreview implements scene.Backend.
func (r *Renderer) SetPreview(path []sim.Vec3) {
	r.preview = append(r.preview[:0], path...)
}

// Pick implements scene.Backend with x, y as cell coordinates.
func (r *Renderer) Pick(x, y float64) sim.Pick {
	p, ok := r.grid.World(int(x), int(y))
	return r.HitTest(p, ok)
}

// Render implements scene.Backend.
func (r *Renderer) Render(f scene.Frame) {
	r.screen.Clear()
	r.drawPitch()
	r.drawNet(f.Net)
	for _, p := range f.Trail {
		r.put(p, '*', styleTrail)
	}
	for _, p := range r.preview {
		r.put(p, '.', stylePath)
	}
	r.drawAgents()
	r.drawStatus()
	r.screen.Show()
}

func (r *Renderer) put(p sim.Vec3, ch rune, st tcell.Style) {
	if x, y, ok := r.grid.Cell(p); ok {
		r.screen.SetContent(x, y, ch, nil, st)
	}
}

func (r *Renderer) drawPitch() {
	for row := 0; row < r.grid.Rows; row++ {
		for col := 0; col < r.grid.Cols; col++ {
			ch := ' '
			if (row+col)%7 == 0 {
				ch = '.'
			}
			r.screen.SetContent(r.grid.Left+col, r.grid.Top+row, ch, nil, styleGrass)
		}
	}
	f := sim.Field
	step := math.Min(f.MaxX-f.MinX, f.MaxZ-f.MinZ) / float64(max(r.grid.Rows, r.grid.Cols)*2)
	for x := f.MinX; x <= f.MaxX; x += step {
		r.put(sim.V(x, 0, 0), '|', styleLine)
		r.put(sim.V(x, 0, sim.Goal.Z), '|', styleLine)
		r.put(sim.V(x, 0, -sim.Goal.Z), '|', styleLine)
	}
	for z := f.MinZ; z <= f.MaxZ; z += step {
		r.put(sim.V(f.MinX, 0, z), '-', styleLine)
		r.put(sim.V(f.MaxX, 0, z), '-', styleLine)
	}
}

// drawNet marks the goal mouth and shades the back net by how far it is
// pushed out.
func (r *Renderer) drawNet(n *sim.Net) {
	if n == nil {
		return
	}
	shades := []rune{'░', '▒', '▓'}
	d := n.MaxDisplacement()
	ch := shades[0]
	switch {
	case d > 0.8:
		ch = shades[2]
	case d > 0.2:
		ch = shades[1]
	}
	for x := sim.Goal.MinX; x <= sim.Goal.MaxX; x += 1 {
		r.put(sim.V(x, 0, sim.Goal.Z+sim.NetDepth), ch, styleNet)
	}
	r.put(sim.V(sim.Goal.MinX, 0, sim.Goal.Z), '#', styleLine)
	r.put(sim.V(sim.Goal.MaxX, 0, sim.Goal.Z), '#', styleLine)
}

func (r *Renderer) drawAgents() {
	r.Each(func(o *scene.Object) {
		switch o.Kind {
		case scene.KindAgent:
			st := styleAlly
			if o.Info.Team == sim.TeamEnemy {
				st = styleEnemy
			}
			if o.Info.Keeper {
				st = styleKeeper
			}
			if o.T.Selected {
				st = st.Reverse(true)
			}
			r.put(o.T.Pos, agentRune(o.Info), st)
		case scene.KindBall:
			ch := 'o'
			if o.T.Pos.Y > 1.5 {
				ch = 'O'
			}
			r.put(o.T.Pos, ch, styleBall)
		}
	})
}

// agentRune is the last character of the label: the shirt number, or K for
// keepers.
func agentRune(s scene.Info) rune {
	if s.Label == "" {
		return '?'
	}
	return rune(s.Label[len(s.Label)-1])
}

// StatusLine is the first status row text.
func (r *Renderer) StatusLine() string {
	parts := []string{fmt.Sprintf(" %s  GOALS %d", r.state, r.score)}
	if r.banner != "" {
		parts = append(parts, r.banner)
	}
	if r.toast != "" {
		parts = append(parts, r.toast)
	}
	return strings.Join(parts, "  |  ")
}

func (r *Renderer) drawStatus() {
	w, _ := r.screen.Size()
	y := r.grid.Top + r.grid.Rows
	st := styleStatus
	if r.banner != "" {
		st = styleBanner
	}
	drawText(r.screen, 0, y, w, r.StatusLine(), st)
	drawText(r.screen, 0, y+1, w, " "+r.help, styleStatus)
}

func drawText(s tcell.Screen, x, y, w int, text string, st tcell.Style) {
	col := x
	for _, ch := range text {
		if col >= w {
			return
		}
		s.SetContent(col, y, ch, nil, st)
		col++
	}
	for ; col < w; col++ {
		s.SetContent(col, y, ' ', nil, st)
	}
}
