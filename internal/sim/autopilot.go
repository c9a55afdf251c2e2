package sim

import (
	"math"
	"math/rand"
)

const (
	autoShootRange  = 35.0
	autoCurveChance = 0.35
	autoGesturePts  = 8
	autoLeadZ       = 6.0
	autoThinkTime   = 0.6
)

// Autopilot plays the user's side: it shoots from range and otherwise
// passes ahead of a random forward teammate, sometimes with a curl.
type Autopilot struct {
	rng         *rand.Rand
	ShootRange  float64
	CurveChance float64
	// Think is how long the autopilot waits on a paused match before
	// releasing, so spectators can follow the restart.
	Think float64

	waited float64
}

// NewAutopilot returns a seeded gesture generator.
func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{
		rng:         rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay randomness
		ShootRange:  autoShootRange,
		CurveChance: autoCurveChance,
		Think:       autoThinkTime,
	}
}

// Gesture returns a ground gesture for the user's next release, or nil when
// it is not the user's turn.
func (ap *Autopilot) Gesture(m *Match) []Vec3 {
	if m.State != StatePaused || m.Pending != nil {
		return nil
	}
	h := m.Holder()
	if h == nil || !h.IsAlly() || h.ID != m.Active {
		return nil
	}

	var target Vec3
	if Goal.Z-h.Pos.Z <= ap.ShootRange {
		target = Vec3{X: (ap.rng.Float64()*2 - 1) * 5, Z: Goal.Z + 2}
	} else {
		mate := ap.pickForward(m, h)
		if mate == nil {
			target = Vec3{X: h.Pos.X, Z: h.Pos.Z + 15}
		} else {
			target = mate.Pos.Add(Vec3{Z: autoLeadZ})
		}
	}

	bend := 0.0
	if ap.rng.Float64() < ap.CurveChance {
		bend = (ap.rng.Float64()*2 - 1) * 12
	}
	return GestureLine(h.Pos, target, bend, autoGesturePts)
}

// Play releases the autopilot's gesture if it has one and reports whether
// it did.
func (ap *Autopilot) Play(m *Match) bool {
	g := ap.Gesture(m)
	if g == nil {
		return false
	}
	return m.Release(g) == nil
}

// Tick advances the think timer by dt and plays once it runs out. The timer
// restarts whenever it is not the user's turn.
func (ap *Autopilot) Tick(m *Match, dt float64) bool {
	if m.State != StatePaused || m.Pending != nil {
		ap.waited = 0
		return false
	}
	ap.waited += dt
	if ap.waited < ap.Think {
		return false
	}
	ap.waited = 0
	return ap.Play(m)
}

// pickForward chooses a random field ally ahead of (or level with) h.
func (ap *Autopilot) pickForward(m *Match, h *Agent) *Agent {
	var fwd []*Agent
	for _, a := range fieldPlayers(m, TeamAlly, h.ID) {
		if a.Pos.Z >= h.Pos.Z-2 {
			fwd = append(fwd, a)
		}
	}
	if len(fwd) == 0 {
		return nil
	}
	return fwd[ap.rng.Intn(len(fwd))]
}

// GestureLine samples n+1 ground points from from to to, bowed sideways by
// bend at the middle.
func GestureLine(from, to Vec3, bend float64, n int) []Vec3 {
	if n < 1 {
		n = 1
	}
	from, to = from.Ground(), to.Ground()
	dir := to.Sub(from).Normalize()
	perp := Vec3{X: -dir.Z, Z: dir.X}
	pts := make([]Vec3, 0, n+1)
	for i := 0; i <= n; i++ {
		f := float64(i) / float64(n)
		p := from.Lerp(to, f).Add(perp.Scale(bend * math.Sin(f*math.Pi)))
		pts = append(pts, p)
	}
	return pts
}
