package sim

import (
	"math"
	"math/rand"
	"sort"
)

const (
	receiverSpeed     = 8.0
	advanceLead       = 5.0
	advanceSpread     = 3.5
	advanceMaxX       = 25.0
	advanceMaxZ       = 49.0
	advanceSpeedMin   = 3.0
	advanceSpeedRange = 1.5
	interceptRange    = 20.0
	interceptEndRange = 15.0
	interceptSpeed    = 9.0
	pressRange        = 25.0
	pressSpeed        = 8.0
	chaseSpeed        = 8.0
	predictAhead      = 0.3
	predictSpeed      = 7.5
	lineMinZ          = 42.0
	lineMaxZ          = 52.0
	lineSpeed         = 8.0
	allyPressSpeed    = 9.0
	allyPressMaxBack  = -40.0
	allyCoverSpeed    = 7.0
	allyCoverBack     = -50.0
	allyLineSpeed     = 6.0
	allyLineBack      = -55.0
	looseSpeedMin     = 6.0
	looseSpeedBase    = 10.0
	looseSpeedFalloff = 0.2
	tacticSpeed       = 7.0
)

// Assignment is one movement order produced by an AI policy.
type Assignment struct {
	Agent AgentID
	Point Vec3
	Speed float64
}

// apply turns assignments into movement orders.
func (m *Match) apply(as []Assignment) {
	for _, a := range as {
		if p := m.Agent(a.Agent); p != nil {
			setTarget(p, a.Point, a.Speed, m.Now, m.rng)
		}
	}
}

// runAI recomputes the role policies that hold for the current state.
func (m *Match) runAI() {
	switch m.State {
	case StatePlaying:
		if m.Ball.Phase() == PhaseMoving {
			m.apply(FlightDefense(m))
		}
	case StatePaused:
		if h := m.Holder(); h != nil && !h.IsAlly() {
			m.apply(AllyPress(m))
		}
	}
}

// fieldPlayers returns a team's non-keepers, excluding the given ids.
func fieldPlayers(m *Match, team Team, exclude ...AgentID) []*Agent {
	out := make([]*Agent, 0, agentsPerTeam)
next:
	for _, a := range m.Agents {
		if a.Team != team || a.Keeper {
			continue
		}
		for _, id := range exclude {
			if a.ID == id {
				continue next
			}
		}
		out = append(out, a)
	}
	return out
}

// byDistance sorts agents by ground distance to p, ties by id.
func byDistance(agents []*Agent, p Vec3) {
	sort.SliceStable(agents, func(i, j int) bool {
		return agents[i].Pos.DistXZ(p) < agents[j].Pos.DistXZ(p)
	})
}

// nearest returns the agent closest to p, or nil.
func nearest(agents []*Agent, p Vec3) *Agent {
	var best *Agent
	bestD := math.Inf(1)
	for _, a := range agents {
		if d := a.Pos.DistXZ(p); d < bestD {
			best, bestD = a, d
		}
	}
	return best
}

// PassRelease assigns roles when a pass leaves the passer's feet: the ally
// nearest the destination runs onto it, the other field allies push
// forward, enemies near the receiver or the destination close the receiver
// down and the nearest enemy presses the passer.
func PassRelease(m *Match, passer AgentID, tr *Trajectory, rng *rand.Rand) []Assignment {
	var out []Assignment
	p := m.Agent(passer)
	if p == nil {
		return nil
	}

	candidates := make([]*Agent, 0, agentsPerTeam)
	for _, a := range m.teamAgents(p.Team) {
		if a.ID != passer {
			candidates = append(candidates, a)
		}
	}
	receiver := nearest(candidates, tr.End)
	if receiver == nil {
		return nil
	}
	out = append(out, Assignment{Agent: receiver.ID, Point: tr.End, Speed: receiverSpeed})

	allies := fieldPlayers(m, p.Team, passer, receiver.ID)
	for i, a := range allies {
		spread := (float64(i) - float64(len(allies)-1)/2) * advanceSpread
		x := clamp(a.Pos.X+spread, -advanceMaxX, advanceMaxX)
		z := math.Min(p.Pos.Z+advanceLead+(rng.Float64()*2-1), advanceMaxZ)
		out = append(out, Assignment{
			Agent: a.ID,
			Point: Vec3{X: x, Z: z},
			Speed: advanceSpeedMin + rng.Float64()*advanceSpeedRange,
		})
	}

	defenders := fieldPlayers(m, opponent(p.Team))
	for _, e := range defenders {
		if e.Pos.DistXZ(receiver.Pos) < interceptRange || e.Pos.DistXZ(tr.End) < interceptEndRange {
			out = append(out, Assignment{Agent: e.ID, Point: receiver.Pos.Ground(), Speed: interceptSpeed})
		}
	}
	if e := nearest(defenders, p.Pos); e != nil && e.Pos.DistXZ(p.Pos) < pressRange {
		out = append(out, Assignment{Agent: e.ID, Point: p.Pos.Ground(), Speed: pressSpeed})
	}
	return out
}

// FlightDefense is the enemy shape while the ball is in the air: two chase
// it, two run at where it will be shortly and the rest drop onto a line in
// front of their goal.
func FlightDefense(m *Match) []Assignment {
	mv, ok := m.Ball.Moving()
	if !ok {
		return nil
	}
	ball := m.Ball.Pos.Ground()
	enemies := fieldPlayers(m, TeamEnemy)
	byDistance(enemies, ball)

	t := mv.Flight.T(m.Now)
	ahead := mv.Flight.Curve.Point(math.Min(1, t+predictAhead)).Ground()
	lineZ := clamp(ball.Z+8, lineMinZ, lineMaxZ)

	out := make([]Assignment, 0, len(enemies))
	for i, e := range enemies {
		switch {
		case i < 2:
			out = append(out, Assignment{Agent: e.ID, Point: ball, Speed: chaseSpeed})
		case i < 4:
			out = append(out, Assignment{Agent: e.ID, Point: ahead, Speed: predictSpeed})
		default:
			out = append(out, Assignment{Agent: e.ID, Point: Vec3{X: e.Pos.X, Z: lineZ}, Speed: lineSpeed})
		}
	}
	return out
}

// AllyPress is the ally shape while an enemy holds the ball: two press the
// holder, two cover the lanes back to goal and the rest hold a deep line.
func AllyPress(m *Match) []Assignment {
	h := m.Holder()
	if h == nil || h.IsAlly() {
		return nil
	}
	allies := fieldPlayers(m, TeamAlly)
	byDistance(allies, h.Pos)

	out := make([]Assignment, 0, len(allies))
	for i, a := range allies {
		var p Vec3
		speed := allyLineSpeed
		switch {
		case i < 2:
			p = Vec3{X: h.Pos.X, Z: math.Max(h.Pos.Z, allyPressMaxBack)}
			speed = allyPressSpeed
		case i < 4:
			p = Vec3{X: h.Pos.X*0.5 + (float64(i)-2.5)*8, Z: math.Max(h.Pos.Z-10, allyCoverBack)}
			speed = allyCoverSpeed
		default:
			p = Vec3{X: a.Pos.X, Z: math.Max(allyLineBack, h.Pos.Z-15)}
		}
		out = append(out, Assignment{Agent: a.ID, Point: p, Speed: speed})
	}
	return out
}

// LooseChase sends the nearest player of each side after a loose ball, the
// closer one slightly faster. A keeper only counts when the ball is inside
// its box.
func LooseChase(m *Match) []Assignment {
	ball := m.Ball.Pos.Ground()
	var out []Assignment
	for _, team := range []Team{TeamAlly, TeamEnemy} {
		chasers := fieldPlayers(m, team)
		if k := m.keeper(team); k != nil && keeperBox(k.Home).Contains(ball) {
			chasers = append(chasers, k)
		}
		a := nearest(chasers, ball)
		if a == nil {
			continue
		}
		d := a.Pos.DistXZ(ball)
		out = append(out, Assignment{
			Agent: a.ID,
			Point: ball,
			Speed: math.Max(looseSpeedMin, looseSpeedBase-d*looseSpeedFalloff),
		})
	}
	return out
}

// looseChase applies LooseChase and arms the periodic retarget.
func (m *Match) looseChase() {
	if f, ok := m.Ball.Free(); ok {
		f.Chasing = true
		f.LastChase = m.Now
	}
	m.apply(LooseChase(m))
}

// flushTactics turns staged tactic points into orders, once.
func (m *Match) flushTactics() {
	ids := make([]AgentID, 0, len(m.Tactics))
	for id := range m.Tactics {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if a := m.Agent(id); a != nil {
			setTarget(a, m.Tactics[id], tacticSpeed, m.Now, m.rng)
		}
	}
	m.Tactics = map[AgentID]Vec3{}
}

func opponent(t Team) Team {
	if t == TeamAlly {
		return TeamEnemy
	}
	return TeamAlly
}
