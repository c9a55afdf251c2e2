package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Curve-Pass/internal/scene"
	"github.com/Garsondee/Curve-Pass/internal/sim"
)

const (
	agentRadius   = 1.1 // world units
	stripeWidth   = 10.0
	boxDepth      = 16.5
	boxHalfWidth  = 20.0
	smallDepth    = 5.5
	smallHalf     = 9.0
	centreCircleR = 9.15
)

var (
	grassDark   = color.RGBA{R: 34, G: 92, B: 40, A: 255}
	grassLight  = color.RGBA{R: 40, G: 104, B: 46, A: 255}
	lineColor   = color.RGBA{R: 225, G: 235, B: 225, A: 200}
	allyColor   = color.RGBA{R: 60, G: 120, B: 230, A: 255}
	enemyColor  = color.RGBA{R: 215, G: 60, B: 55, A: 255}
	keeperAlly  = color.RGBA{R: 80, G: 210, B: 120, A: 255}
	keeperEnemy = color.RGBA{R: 240, G: 200, B: 40, A: 255}
	shadowColor = color.RGBA{A: 90}
	previewCol  = color.RGBA{R: 255, G: 230, B: 90, A: 230}
)

// heatColors is the fire-tail palette, hottest first.
var heatColors = [...]color.RGBA{
	{R: 255, G: 250, B: 200, A: 255},
	{R: 255, G: 200, B: 60, A: 255},
	{R: 250, G: 120, B: 30, A: 255},
	{R: 200, G: 50, B: 20, A: 255},
}

// PitchRenderer draws the match top-down into its own buffer. It
// implements scene.Backend.
type PitchRenderer struct {
	*scene.Registry
	buf     *ebiten.Image
	offX    int
	offY    int
	view    View
	preview []sim.Vec3
	labels  bool
}

// NewPitchRenderer creates a w×h renderer placed at (offX, offY) on screen.
func NewPitchRenderer(w, h, offX, offY int) *PitchRenderer {
	return &PitchRenderer{
		Registry: scene.NewRegistry(),
		buf:      ebiten.NewImage(w, h),
		offX:     offX,
		offY:     offY,
		view:     FitView(w, h),
		labels:   true,
	}
}

// SetPreview implements scene.Backend.
func (r *PitchRenderer) SetPreview(path []sim.Vec3) {
	r.preview = append(r.preview[:0], path...)
}

// Pick implements scene.Backend. x and y are screen pixels.
func (r *PitchRenderer) Pick(x, y float64) sim.Pick {
	lx, ly := x-float64(r.offX), y-float64(r.offY)
	inside := lx >= 0 && ly >= 0 && lx < r.view.W && ly < r.view.H
	p := r.view.ToWorld(lx, ly)
	return r.HitTest(p, inside && sim.Field.Contains(p))
}

// Render implements scene.Backend: it redraws the buffer for f.
func (r *PitchRenderer) Render(f scene.Frame) {
	w, h := r.buf.Bounds().Dx(), r.buf.Bounds().Dy()
	r.view = ViewFor(f.Camera, w, h)
	r.buf.Fill(color.RGBA{R: 20, G: 50, B: 24, A: 255})

	r.drawGrass()
	r.drawMarkings()
	r.drawNet(f.Net)
	r.drawShadows()
	r.drawTrail(f.Trail)
	r.drawParticles(f.Particles)
	r.drawAgents(f.Now)
	r.drawBall()
	r.drawPreview()
}

// Blit copies the buffer onto screen at the renderer offset.
func (r *PitchRenderer) Blit(screen *ebiten.Image) {
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(r.offX), float64(r.offY))
	screen.DrawImage(r.buf, &op)
}

// View is the projection used for the last render.
func (r *PitchRenderer) View() View { return r.view }

func (r *PitchRenderer) line(a, b sim.Vec3, width float32, c color.Color) {
	x0, y0 := r.view.ToScreen(a)
	x1, y1 := r.view.ToScreen(b)
	vector.StrokeLine(r.buf, x0, y0, x1, y1, width, c, true)
}

func (r *PitchRenderer) groundRect(minX, maxX, minZ, maxZ float64, c color.Color) {
	x0, y0 := r.view.Ground(sim.V(maxX, 0, minZ))
	x1, y1 := r.view.Ground(sim.V(minX, 0, maxZ))
	vector.FillRect(r.buf, x0, y0, x1-x0, y1-y0, c, false)
}

func (r *PitchRenderer) groundOutline(minX, maxX, minZ, maxZ float64, c color.Color) {
	x0, y0 := r.view.Ground(sim.V(maxX, 0, minZ))
	x1, y1 := r.view.Ground(sim.V(minX, 0, maxZ))
	vector.StrokeRect(r.buf, x0, y0, x1-x0, y1-y0, 1.5, c, false)
}

func (r *PitchRenderer) drawGrass() {
	f := sim.Field
	i := 0
	for z := f.MinZ; z < f.MaxZ; z += stripeWidth {
		c := grassDark
		if i%2 == 1 {
			c = grassLight
		}
		r.groundRect(f.MinX, f.MaxX, z, math.Min(z+stripeWidth, f.MaxZ), c)
		i++
	}
}

func (r *PitchRenderer) drawMarkings() {
	f := sim.Field
	r.groundOutline(f.MinX, f.MaxX, f.MinZ, f.MaxZ, lineColor)
	r.line(sim.V(f.MinX, 0, 0), sim.V(f.MaxX, 0, 0), 1.5, lineColor)
	cx, cy := r.view.Ground(sim.Vec3{})
	vector.StrokeCircle(r.buf, cx, cy, r.view.Len(centreCircleR), 1.5, lineColor, true)

	for _, end := range []float64{sim.Goal.Z, -sim.Goal.Z} {
		dir := math.Copysign(1, end)
		r.line(sim.V(f.MinX, 0, end), sim.V(f.MaxX, 0, end), 1.5, lineColor)
		r.groundOutline(-boxHalfWidth, boxHalfWidth, math.Min(end, end-dir*boxDepth), math.Max(end, end-dir*boxDepth), lineColor)
		r.groundOutline(-smallHalf, smallHalf, math.Min(end, end-dir*smallDepth), math.Max(end, end-dir*smallDepth), lineColor)
	}
}

// drawNet draws every panel's vertex grid. Lines brighten where the cloth
// is displaced.
func (r *PitchRenderer) drawNet(n *sim.Net) {
	if n == nil {
		return
	}
	for _, p := range n.Panels {
		for row := 0; row < p.Rows; row++ {
			for col := 0; col < p.Cols; col++ {
				i := row*p.Cols + col
				if col+1 < p.Cols {
					r.netSegment(p, i, i+1)
				}
				if row+1 < p.Rows {
					r.netSegment(p, i, i+p.Cols)
				}
			}
		}
	}
	posts := [2]float64{sim.Goal.MinX, sim.Goal.MaxX}
	top := sim.V(posts[0], sim.CrossbarY, sim.Goal.Z)
	r.line(top, sim.V(posts[1], sim.CrossbarY, sim.Goal.Z), 3, color.White)
	for _, x := range posts {
		r.line(sim.V(x, 0, sim.Goal.Z), sim.V(x, sim.CrossbarY, sim.Goal.Z), 3, color.White)
	}
}

func (r *PitchRenderer) netSegment(p *sim.Panel, a, b int) {
	d := math.Max(p.Pos[a].Dist(p.Rest[a]), p.Pos[b].Dist(p.Rest[b]))
	glow := uint8(math.Min(255, 120+d*200))
	r.line(p.Pos[a], p.Pos[b], 1, color.RGBA{R: glow, G: glow, B: glow, A: 110})
}

func (r *PitchRenderer) drawShadows() {
	r.Each(func(o *scene.Object) {
		x, y := r.view.Ground(o.T.Pos)
		rad := r.view.Len(agentRadius)
		if o.Kind == scene.KindBall {
			rad = r.view.Len(sim.BallRadius) * float32(1+o.T.Pos.Y*0.05)
		}
		vector.FillCircle(r.buf, x+2, y+2, rad, shadowColor, true)
	})
}

func (r *PitchRenderer) drawTrail(trail []sim.Vec3) {
	for i := 1; i < len(trail); i++ {
		a := uint8(40 + 200*i/len(trail))
		r.line(trail[i-1], trail[i], float32(1+3*i/len(trail)), color.RGBA{R: 255, G: 160, B: 60, A: a})
	}
}

func (r *PitchRenderer) drawParticles(ps []sim.Particle) {
	for _, p := range ps {
		c := heatColors[clampInt(p.Heat, 0, len(heatColors)-1)]
		c.A = uint8(255 * p.Fade())
		x, y := r.view.ToScreen(p.Pos)
		s := float32(math.Max(1, p.Size*r.view.Scale))
		vector.FillRect(r.buf, x-s/2, y-s/2, s, s, c, false)
	}
}

func agentColor(s scene.Info) color.RGBA {
	switch {
	case s.Team == sim.TeamAlly && s.Keeper:
		return keeperAlly
	case s.Team == sim.TeamAlly:
		return allyColor
	case s.Keeper:
		return keeperEnemy
	}
	return enemyColor
}

// drawAgents draws each body lifted by its pose, with the head pushed
// sideways by the roll so keeper dives read from above.
func (r *PitchRenderer) drawAgents(now float64) {
	r.Each(func(o *scene.Object) {
		if o.Kind != scene.KindAgent {
			return
		}
		t := o.T
		body := t.Pos.Add(sim.Vec3{Y: t.Pose.Lift})
		x, y := r.view.ToScreen(body)
		rad := r.view.Len(agentRadius)
		vector.FillCircle(r.buf, x, y, rad, agentColor(o.Info), true)

		// Heading 0 faces +z.
		dir := sim.V(math.Sin(t.Heading), 0, math.Cos(t.Heading)).Scale(agentRadius * 1.7)
		tx, ty := r.view.ToScreen(body.Add(dir))
		vector.StrokeLine(r.buf, x, y, tx, ty, 2, color.RGBA{R: 240, G: 240, B: 240, A: 200}, true)

		side := sim.V(math.Cos(t.Heading), 0, -math.Sin(t.Heading)).Scale(math.Sin(t.Pose.Roll) * agentRadius)
		headX, headY := r.view.ToScreen(body.Add(side))
		vector.FillCircle(r.buf, headX, headY, rad*0.45, color.RGBA{R: 245, G: 215, B: 180, A: 255}, true)

		if t.Selected {
			pulse := float32(1.5 + 0.3*math.Sin(now*6))
			vector.StrokeCircle(r.buf, x, y, rad*pulse, 2, previewCol, true)
		}
		if t.HasBall {
			vector.StrokeCircle(r.buf, x, y, rad*1.25, 1.5, color.White, true)
		}
		if r.labels {
			ebitenutil.DebugPrintAt(r.buf, o.Info.Label, int(x)-6, int(y+rad)+1)
		}
	})
}

func (r *PitchRenderer) drawBall() {
	r.Each(func(o *scene.Object) {
		if o.Kind != scene.KindBall {
			return
		}
		x, y := r.view.ToScreen(o.T.Pos)
		rad := float32(math.Max(2.5, float64(r.view.Len(sim.BallRadius))))
		vector.FillCircle(r.buf, x, y, rad, color.White, true)
		vector.StrokeCircle(r.buf, x, y, rad, 1, color.RGBA{A: 200}, true)
	})
}

func (r *PitchRenderer) drawPreview() {
	for i := 1; i < len(r.preview); i++ {
		r.line(r.preview[i-1], r.preview[i], 2.5, previewCol)
	}
	if n := len(r.preview); n > 0 {
		x, y := r.view.Ground(r.preview[n-1])
		vector.FillCircle(r.buf, x, y, 4, previewCol, true)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
