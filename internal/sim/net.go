package sim

import "math"

const (
	netSpring       = 25.0
	netDamping      = 2.5
	netMaxVelocity  = 25.0
	netMaxDisplace  = 1.5
	netClampDamping = 0.3
	netImpactRadius = 4.0
	netRubRadius    = 3.5
	netMinInfluence = 0.05
)

// PanelKind names one surface of the goal net.
type PanelKind int

const (
	PanelBack PanelKind = iota
	PanelRoof
	PanelLeft
	PanelRight
	panelCount
)

func (k PanelKind) String() string {
	switch k {
	case PanelBack:
		return "back"
	case PanelRoof:
		return "roof"
	case PanelLeft:
		return "left"
	case PanelRight:
		return "right"
	default:
		return "unknown"
	}
}

// Panel is a deformable vertex grid. Vertex (c, r) lives at index r*Cols+c.
// All positions are world space.
type Panel struct {
	Kind       PanelKind
	Cols, Rows int
	Rest       []Vec3
	Pos        []Vec3
	Vel        []Vec3
}

// Net is the four independent panels behind the goal line.
type Net struct {
	Panels [panelCount]*Panel
}

// NewNet builds rest grids for the back, roof and both sides of the goal.
func NewNet(g GoalArea) *Net {
	back := g.Z + NetDepth
	n := &Net{}
	n.Panels[PanelBack] = newPanel(PanelBack, 21, 21, func(u, v float64) Vec3 {
		return Vec3{X: g.MinX + u*NetWidth, Y: NetHeight - v*NetHeight, Z: back}
	})
	n.Panels[PanelRoof] = newPanel(PanelRoof, 21, 11, func(u, v float64) Vec3 {
		return Vec3{X: g.MinX + u*NetWidth, Y: CrossbarY, Z: g.Z + v*NetDepth}
	})
	n.Panels[PanelLeft] = newPanel(PanelLeft, 11, 21, func(u, v float64) Vec3 {
		return Vec3{X: g.MinX, Y: NetHeight - v*NetHeight, Z: g.Z + u*NetDepth}
	})
	n.Panels[PanelRight] = newPanel(PanelRight, 11, 21, func(u, v float64) Vec3 {
		return Vec3{X: g.MaxX, Y: NetHeight - v*NetHeight, Z: g.Z + u*NetDepth}
	})
	return n
}

func newPanel(kind PanelKind, cols, rows int, at func(u, v float64) Vec3) *Panel {
	p := &Panel{
		Kind: kind,
		Cols: cols,
		Rows: rows,
		Rest: make([]Vec3, cols*rows),
		Pos:  make([]Vec3, cols*rows),
		Vel:  make([]Vec3, cols*rows),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := r*cols + c
			p.Rest[i] = at(float64(c)/float64(cols-1), float64(r)/float64(rows-1))
			p.Pos[i] = p.Rest[i]
		}
	}
	return p
}

// Step integrates every vertex toward its rest position. Velocity is
// limited per axis and displacement from rest never exceeds netMaxDisplace.
func (n *Net) Step(dt float64) {
	for _, p := range n.Panels {
		p.step(dt)
	}
}

func (p *Panel) step(dt float64) {
	for i := range p.Pos {
		rest, pos, vel := p.Rest[i], p.Pos[i], p.Vel[i]
		acc := rest.Sub(pos).Scale(netSpring).Sub(vel.Scale(netDamping))
		vel = vel.Add(acc.Scale(dt))
		vel.X = clamp(vel.X, -netMaxVelocity, netMaxVelocity)
		vel.Y = clamp(vel.Y, -netMaxVelocity, netMaxVelocity)
		vel.Z = clamp(vel.Z, -netMaxVelocity, netMaxVelocity)
		pos = pos.Add(vel.Scale(dt))

		off := pos.Sub(rest)
		if d := off.Len(); d > netMaxDisplace || !isFinite(d) {
			if isFinite(d) {
				pos = rest.Add(off.Scale(netMaxDisplace / d))
				vel = vel.Scale(netClampDamping)
			} else {
				pos, vel = rest, Vec3{}
			}
		}
		p.Pos[i], p.Vel[i] = pos, vel
	}
}

// Impact is the kick a ball gives the net on entry.
func (n *Net) Impact(at Vec3) {
	n.push(at, netImpactRadius, Vec3{X: 4.8, Y: 3.9, Z: 5.4})
}

// Rub is the continuous push while the ball rolls around inside the net.
func (n *Net) Rub(at Vec3, dt float64) {
	k := dt * 60
	n.push(at, netRubRadius, Vec3{X: 0.7 * k, Y: 0.5 * k, Z: 0.8 * k})
}

// push adds velocity to vertices within radius of at, directed away from
// it and weighted by 1 - d/radius.
func (n *Net) push(at Vec3, radius float64, gain Vec3) {
	for _, p := range n.Panels {
		for i, v := range p.Pos {
			off := v.Sub(at)
			influence := math.Max(0, 1-off.Len()/radius)
			if influence <= netMinInfluence {
				continue
			}
			p.Vel[i].X += off.X * gain.X * influence
			p.Vel[i].Y += off.Y * gain.Y * influence
			p.Vel[i].Z += off.Z * gain.Z * influence
		}
	}
}

// MaxDisplacement is the largest vertex offset from rest on the panel.
func (p *Panel) MaxDisplacement() float64 {
	worst := 0.0
	for i := range p.Pos {
		if d := p.Pos[i].Dist(p.Rest[i]); d > worst {
			worst = d
		}
	}
	return worst
}

// MaxDisplacement is the largest vertex offset across all panels.
func (n *Net) MaxDisplacement() float64 {
	worst := 0.0
	for _, p := range n.Panels {
		worst = math.Max(worst, p.MaxDisplacement())
	}
	return worst
}
