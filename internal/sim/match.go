package sim

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	maxStep        = 0.05 // longest frame the simulation integrates in one go
	holderBallY    = BallRestY
	agentsPerTeam  = 6
	allyKickoffZ   = -30.0
	enemyKickoffZ  = 15.0
	saveBannerTime = 1.2
	saveResetDelay = 1.4
	interceptDelay = 1.6
	outResetDelay  = 1.4
	receptionToast = 1.0
)

// GameState is the round state machine.
type GameState int

const (
	StatePaused   GameState = iota // waiting for user input
	StatePlaying                   // ball live
	StateGameOver                  // round lost, reset pending
)

func (s GameState) String() string {
	switch s {
	case StatePaused:
		return "PAUSED"
	case StatePlaying:
		return "PLAYING"
	case StateGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// Transition is a scheduled reset. A match has at most one.
type Transition struct {
	At     float64
	Reason string
}

// Message is a HUD text with an expiry; Until 0 keeps it up until reset.
type Message struct {
	Text  string
	Until float64
}

// Visible reports whether the message should be shown at now.
func (msg Message) Visible(now float64) bool {
	return msg.Text != "" && (msg.Until == 0 || now < msg.Until)
}

// Match is the whole simulation state. It has exactly one mutator: the
// caller of Step and the input methods, all on the same goroutine.
type Match struct {
	Now        float64
	Frame      int
	State      GameState
	Score      int
	Generation int // bumped on every reset; agent pointers from older generations are stale

	Agents []*Agent
	Ball   *Ball
	Net    *Net
	Active AgentID // the ally the user is playing as

	Tactics  map[AgentID]Vec3
	Selected AgentID
	Gesture  []Vec3
	Drawing  bool

	Pending *Transition
	Toast   Message
	Banner  Message

	Particles []Particle
	Trail     []Vec3
	Camera    Camera

	Log *SimLog

	events []Event
	rng    *rand.Rand
}

// NewMatch builds a match at kickoff. The same seed replays the same match
// for the same inputs.
func NewMatch(seed int64) *Match {
	m := &Match{
		Log: NewSimLog(false),
		rng: rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay randomness, not security
	}
	m.Reset()
	m.Camera.Snap(m.Ball.Pos)
	return m
}

// Reset rebuilds every agent, the ball and the net at kickoff. Score and
// camera mode survive.
func (m *Match) Reset() {
	m.Agents = kickoffAgents(m.rng)
	m.Net = NewNet(Goal)
	m.Active = 0
	holder := m.Agents[m.Active]
	m.Ball = &Ball{
		Pos:   holder.Pos.Add(Vec3{Y: holderBallY}),
		Dir:   Vec3{Z: 1},
		State: &Held{Holder: holder.ID},
	}
	m.State = StatePaused
	m.Tactics = map[AgentID]Vec3{}
	m.Selected = NoAgent
	m.Gesture = nil
	m.Drawing = false
	m.Pending = nil
	m.Toast = Message{}
	m.Banner = Message{}
	m.Particles = m.Particles[:0]
	m.Trail = m.Trail[:0]
	m.Generation++
	m.emit(EventReset, NoAgent, fmt.Sprintf("generation %d", m.Generation))
}

// kickoffAgents lines both teams up: five field players on a line plus a
// keeper on the goal line.
func kickoffAgents(rng *rand.Rand) []*Agent {
	agents := make([]*Agent, 0, 2*agentsPerTeam)
	add := func(team Team, keeper bool, p Vec3) {
		agents = append(agents, newAgent(AgentID(len(agents)), team, keeper, p, rng))
	}
	for _, p := range lineSlots(agentsPerTeam-1, allyKickoffSpacing, 0, allyKickoffZ) {
		add(TeamAlly, false, p)
	}
	add(TeamAlly, true, Vec3{Z: -Goal.Z})
	for _, p := range lineSlots(agentsPerTeam-1, enemyKickoffSpacing, 0, enemyKickoffZ) {
		add(TeamEnemy, false, p)
	}
	add(TeamEnemy, true, Vec3{Z: Goal.Z})
	return agents
}

// Step advances the match by dt seconds in a fixed order: pending reset,
// ball flight and free-body physics, net, resolver, agents, AI, camera and
// particles.
func (m *Match) Step(dt float64) {
	if dt <= 0 || !isFinite(dt) {
		return
	}
	dt = math.Min(dt, maxStep)
	m.Now += dt
	m.Frame++

	if m.Pending != nil && m.Now >= m.Pending.At {
		m.Log.Add(m.Frame, "--", "--", "state", "pending", m.Pending.Reason, m.Pending.At)
		m.Reset()
		return
	}

	m.stepFlight()
	m.stepFreeBall(dt)
	m.Net.Step(dt)
	m.resolve()
	m.followHolder()
	m.stepAgents(dt)
	m.runAI()
	m.Camera.Update(m.Ball.Pos)
	m.stepParticles(dt)
}

// followHolder keeps a held ball at its holder's feet.
func (m *Match) followHolder() {
	id, ok := m.Ball.Holder()
	if !ok {
		return
	}
	if h := m.Agent(id); h != nil {
		m.Ball.Pos = h.Pos.Ground().Add(Vec3{Y: holderBallY})
	}
}

// giveBall hands the ball to a, ends any flight and stops the enemies.
func (m *Match) giveBall(a *Agent) {
	m.endShot()
	m.Ball.State = &Held{Holder: a.ID}
	m.Ball.Pos = a.Pos.Ground().Add(Vec3{Y: holderBallY})
	m.Trail = m.Trail[:0]
	for _, e := range m.teamAgents(TeamEnemy) {
		clearTarget(e)
	}
	if a.IsAlly() {
		m.Active = a.ID
	}
}

// schedule sets the round's reset. An existing transition is never replaced.
func (m *Match) schedule(delay float64, reason string) {
	if m.Pending != nil {
		return
	}
	m.Pending = &Transition{At: m.Now + delay, Reason: reason}
}

// showToast puts a short message in the toast slot for secs seconds.
func (m *Match) showToast(text string, secs float64) {
	m.Toast = Message{Text: text, Until: m.Now + secs}
}

// showBanner shows a round message; secs 0 keeps it until reset.
func (m *Match) showBanner(text string, secs float64) {
	until := 0.0
	if secs > 0 {
		until = m.Now + secs
	}
	m.Banner = Message{Text: text, Until: until}
}

// StateLabel is the HUD text for the current state.
func (m *Match) StateLabel() string {
	if m.State == StatePaused && m.Drawing {
		return "DRAWING"
	}
	return m.State.String()
}

// Holder returns the agent holding the ball, or nil.
func (m *Match) Holder() *Agent {
	id, ok := m.Ball.Holder()
	if !ok {
		return nil
	}
	return m.Agent(id)
}

// ToggleCamera switches between follow and broadcast views.
func (m *Match) ToggleCamera() {
	m.Camera.Toggle()
	m.showToast("Camera: "+m.Camera.Mode.String(), 1.0)
	m.emit(EventCamera, NoAgent, m.Camera.Mode.String())
}
