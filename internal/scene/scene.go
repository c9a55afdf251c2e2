// Package scene mirrors a sim.Match into a rendering backend once per
// frame. Backends only see objects and transforms; they never read the
// match directly.
package scene

import "github.com/Garsondee/Curve-Pass/internal/sim"

// Backend is a renderer that can place objects and resolve pointer picks.
type Backend interface {
	Create(kind Kind, info Info, t Transform) ObjectID
	Update(id ObjectID, t Transform)
	Remove(id ObjectID)
	// SetPreview shows the gesture being drawn; nil hides it.
	SetPreview(path []sim.Vec3)
	Render(f Frame)
	// Pick resolves a 2D pointer position against the pitch and hitboxes.
	Pick(x, y float64) sim.Pick
}

// HUD is the text overlay.
type HUD interface {
	SetState(label string)
	SetToast(text string)
	SetBanner(text string)
	SetScore(score int)
}

// Frame carries the per-frame effects that are not objects.
type Frame struct {
	Now       float64
	Trail     []sim.Vec3
	Particles []sim.Particle
	Net       *sim.Net
	Camera    sim.Camera
}

type hudState struct {
	state, toast, banner string
	score                int
}

// Scene owns the mapping from match entities to backend objects.
type Scene struct {
	backend Backend
	hud     HUD

	built      bool
	generation int
	agents     map[sim.AgentID]ObjectID
	ball       ObjectID

	last    hudState
	hudInit bool
}

// New binds a backend and HUD. hud may be nil.
func New(b Backend, hud HUD) *Scene {
	return &Scene{backend: b, hud: hud, agents: make(map[sim.AgentID]ObjectID)}
}

// Sync pushes the match frame to the backend and renders it. Objects are
// rebuilt whenever the match generation changes.
func (s *Scene) Sync(m *sim.Match) {
	if !s.built || s.generation != m.Generation {
		s.rebuild(m)
	}

	holder, held := m.Ball.Holder()
	for _, a := range m.Agents {
		id, ok := s.agents[a.ID]
		if !ok {
			continue
		}
		s.backend.Update(id, agentTransform(m, a, held && holder == a.ID))
	}
	s.backend.Update(s.ball, Transform{Pos: m.Ball.Pos})

	if m.Drawing {
		s.backend.SetPreview(m.Gesture)
	} else {
		s.backend.SetPreview(nil)
	}
	s.syncHUD(m)

	s.backend.Render(Frame{
		Now:       m.Now,
		Trail:     m.Trail,
		Particles: m.Particles,
		Net:       m.Net,
		Camera:    m.Camera,
	})
}

// Object returns the backend handle for an agent, if it has one.
func (s *Scene) Object(id sim.AgentID) (ObjectID, bool) {
	oid, ok := s.agents[id]
	return oid, ok
}

// Ball returns the backend handle of the ball.
func (s *Scene) Ball() ObjectID { return s.ball }

func (s *Scene) rebuild(m *sim.Match) {
	if s.built {
		for _, id := range s.agents {
			s.backend.Remove(id)
		}
		s.backend.Remove(s.ball)
	}
	s.agents = make(map[sim.AgentID]ObjectID, len(m.Agents))
	holder, held := m.Ball.Holder()
	for _, a := range m.Agents {
		info := Info{Agent: a.ID, Label: a.Label, Team: a.Team, Keeper: a.Keeper}
		s.agents[a.ID] = s.backend.Create(KindAgent, info, agentTransform(m, a, held && holder == a.ID))
	}
	s.ball = s.backend.Create(KindBall, Info{Agent: sim.NoAgent, Label: "ball"}, Transform{Pos: m.Ball.Pos})
	s.generation = m.Generation
	s.built = true
}

func agentTransform(m *sim.Match, a *sim.Agent, hasBall bool) Transform {
	return Transform{
		Pos:      a.Pos,
		Heading:  a.Heading,
		Pose:     a.Pose,
		Selected: m.Selected == a.ID,
		HasBall:  hasBall,
	}
}

// syncHUD only forwards fields that changed since the last frame.
func (s *Scene) syncHUD(m *sim.Match) {
	if s.hud == nil {
		return
	}
	cur := hudState{state: m.StateLabel(), score: m.Score}
	if m.Toast.Visible(m.Now) {
		cur.toast = m.Toast.Text
	}
	if m.Banner.Visible(m.Now) {
		cur.banner = m.Banner.Text
	}
	if !s.hudInit || cur.state != s.last.state {
		s.hud.SetState(cur.state)
	}
	if !s.hudInit || cur.toast != s.last.toast {
		s.hud.SetToast(cur.toast)
	}
	if !s.hudInit || cur.banner != s.last.banner {
		s.hud.SetBanner(cur.banner)
	}
	if !s.hudInit || cur.score != s.last.score {
		s.hud.SetScore(cur.score)
	}
	s.last = cur
	s.hudInit = true
}
