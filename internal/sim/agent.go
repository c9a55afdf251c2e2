package sim

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	defaultSpeed    = 7.0
	arriveDist      = 0.1
	separationDist  = 2.0
	separationGain  = 0.3
	allyDelayMin    = 0.05
	allyDelaySpread = 0.18
	headingSlerp    = 0.12
	idleSwayFreq    = 1.5
	idleSwayAmp     = 0.02
	keeperSpeedMin  = 3.0
	keeperSpeedMax  = 8.0
)

// Team is the side an agent plays for.
type Team int

const (
	TeamAlly  Team = iota // user controlled
	TeamEnemy             // opposition
)

func (t Team) String() string {
	if t == TeamAlly {
		return "ally"
	}
	return "enemy"
}

// AgentID indexes Match.Agents. IDs are reused after a reset, so callers
// holding one across a reset must compare Match.Generation too.
type AgentID int

// NoAgent marks an empty agent reference.
const NoAgent AgentID = -1

// MoveOrder is a pending or active movement target.
type MoveOrder struct {
	Point   Vec3
	Speed   float64
	StartAt float64 // earliest match time movement may begin
}

// Agent is one simulated player.
type Agent struct {
	ID     AgentID
	Label  string
	Team   Team
	Keeper bool
	Pos    Vec3
	Home   Vec3
	Order  *MoveOrder
	// ShotIncoming is set on the defending keeper while a shot is in flight.
	ShotIncoming bool
	Pose         Pose
	Heading      float64
	idlePhase    float64
}

func newAgent(id AgentID, team Team, keeper bool, pos Vec3, rng *rand.Rand) *Agent {
	prefix := "A"
	if team == TeamEnemy {
		prefix = "E"
	}
	label := fmt.Sprintf("%s%d", prefix, int(id)%6)
	if keeper {
		label = prefix + "K"
	}
	heading := 0.0
	if team == TeamEnemy {
		heading = math.Pi
	}
	return &Agent{
		ID:        id,
		Label:     label,
		Team:      team,
		Keeper:    keeper,
		Pos:       pos.Ground(),
		Home:      pos.Ground(),
		Heading:   heading,
		idlePhase: rng.Float64() * 2 * math.Pi,
	}
}

// IsAlly reports whether the agent is on the user's team.
func (a *Agent) IsAlly() bool { return a.Team == TeamAlly }

// Moving reports whether the agent currently has a target.
func (a *Agent) Moving() bool { return a.Order != nil }

// setTarget validates and clamps p, then assigns it as the agent's order.
// Keepers are confined to their box and run at half speed within [3,8].
// Allies react after a short random delay and enemies react at once; an
// agent that already holds an order keeps its reaction clock.
func setTarget(a *Agent, p Vec3, speed, now float64, rng *rand.Rand) {
	if !p.Finite() {
		clearTarget(a)
		return
	}
	p = ClampToField(p)

	startAt := now
	if a.Order != nil {
		startAt = a.Order.StartAt
	} else if a.IsAlly() && !a.Keeper {
		startAt = now + allyDelayMin + rng.Float64()*allyDelaySpread
	}

	if a.Keeper {
		p = keeperBox(a.Home).Clamp(p)
		speed = clamp(speed*0.5, keeperSpeedMin, keeperSpeedMax)
	}
	a.Order = &MoveOrder{Point: p, Speed: speed, StartAt: startAt}
}

func clearTarget(a *Agent) {
	a.Order = nil
}

// stepAgents advances every agent by one frame: self-healing, separation,
// idle sway, reaction delay, straight-line movement, pose and clamping.
func (m *Match) stepAgents(dt float64) {
	ballMoving := m.Ball.Phase() == PhaseMoving
	for _, p := range m.Agents {
		diving := p.Keeper && p.Order != nil && ballMoving
		if !p.Keeper || p.Order == nil {
			p.Pose.Pitch = 0
			p.Pose.Roll = 0
		} else {
			p.Pose.Pitch = clamp(p.Pose.Pitch, -math.Pi/2, math.Pi/2)
			p.Pose.Roll = clamp(p.Pose.Roll, -math.Pi/2, math.Pi/2)
		}

		if !p.Pos.Finite() || math.Abs(p.Pos.X) > escapeLimit || math.Abs(p.Pos.Z) > escapeLimit {
			m.Log.Add(m.Frame, p.Label, p.Team.String(), "safety", "heal",
				fmt.Sprintf("(%.1f,%.1f) → home", p.Pos.X, p.Pos.Z), 0)
			p.Pos = p.Home
			clearTarget(p)
		}
		p.Pos.Y = 0
		m.separate(p)

		switch {
		case p.Order == nil:
			p.Pose.Roll = math.Sin(m.Now*idleSwayFreq+p.idlePhase) * idleSwayAmp
			if p.Keeper {
				p.Pose.Pitch *= 0.9
				p.Pose.Roll *= 0.9
				p.Pose.Lift *= 0.9
			}
		case m.Now < p.Order.StartAt:
			// still reacting
		default:
			m.moveAgent(p, dt, ballMoving)
		}

		p.Pos = ClampToField(p.Pos)
		if diving && p.Order != nil {
			p.Pos.Y = p.Pose.Lift
		}
		m.Log.AddVerbose(m.Frame, p.Label, p.Team.String(), "move", "position",
			fmt.Sprintf("(%.1f,%.1f)", p.Pos.X, p.Pos.Z), 0)
	}
}

func (m *Match) moveAgent(p *Agent, dt float64, ballMoving bool) {
	target := p.Order.Point
	spd := p.Order.Speed
	if spd <= 0 {
		spd = defaultSpeed
	}
	dir := Vec3{X: target.X - p.Pos.X, Z: target.Z - p.Pos.Z}
	dist := dir.Len()
	if dist <= arriveDist {
		p.Pose.settleLimbs(0.88)
		p.Pose.Pitch *= 0.90
		p.Pose.Roll *= 0.92
		clearTarget(p)
		return
	}

	dir = dir.Scale(1 / dist)
	step := math.Min(dist, spd*dt)
	p.Pos.X += dir.X * step
	p.Pos.Z += dir.Z * step

	p.Pose.run(m.Now, spd)
	if p.Keeper && ballMoving {
		p.Pose.keeperReach(p.Pos, m.Ball.Pos)
	}
	p.Heading = slerpAngle(p.Heading, math.Atan2(dir.X, dir.Z), headingSlerp)
}

// separate pushes p away from every agent closer than separationDist.
func (m *Match) separate(p *Agent) {
	for _, other := range m.Agents {
		if other == p {
			continue
		}
		d := p.Pos.Dist(other.Pos)
		if d < separationDist && d > 0.01 {
			dir := p.Pos.Sub(other.Pos).Scale(1 / d)
			push := (separationDist - d) * separationGain
			p.Pos.X += dir.X * push
			p.Pos.Z += dir.Z * push
		}
	}
}

// slerpAngle turns from toward to by fraction f along the shortest arc.
func slerpAngle(from, to, f float64) float64 {
	diff := math.Mod(to-from+math.Pi, 2*math.Pi)
	if diff < 0 {
		diff += 2 * math.Pi
	}
	return from + (diff-math.Pi)*f
}

// teamAgents returns the agents on one side in ID order.
func (m *Match) teamAgents(team Team) []*Agent {
	out := make([]*Agent, 0, 6)
	for _, a := range m.Agents {
		if a.Team == team {
			out = append(out, a)
		}
	}
	return out
}

// Agent returns the agent with the given id, or nil.
func (m *Match) Agent(id AgentID) *Agent {
	if id < 0 || int(id) >= len(m.Agents) {
		return nil
	}
	return m.Agents[id]
}

// keeper returns a team's goalkeeper.
func (m *Match) keeper(team Team) *Agent {
	for _, a := range m.Agents {
		if a.Team == team && a.Keeper {
			return a
		}
	}
	return nil
}

func (m *Match) clearAllTargets() {
	for _, a := range m.Agents {
		clearTarget(a)
	}
}
