package sim

import (
	"fmt"
	"math"
)

const (
	postBounceSpeed     = 14.0
	crossbarBounceSpeed = 12.0
	landingSpeed        = 6.0
	freeGravity         = 9.0
	freeDrag            = 0.985
	groundBounce        = 0.45
	groundFriction      = 0.85
	netDrag             = 0.88
	netGravity          = 12.0
	restSpeed           = 0.4
	restHover           = 0.05 // a slow ball only comes to rest this close to the turf
	rubSpeed            = 0.5
	chaseInterval       = 0.15
	keeperTrackAfter    = 0.25
	keeperTrackSpeed    = 12.0
	goalResetDelay      = 1.2
)

// stepFlight advances a ball in flight along its trajectory and runs the
// frame, goal and net checks in that order. It only runs while play is live.
func (m *Match) stepFlight() {
	mv, ok := m.Ball.Moving()
	if !ok || m.State != StatePlaying {
		return
	}
	tr := mv.Flight
	t := tr.T(m.Now)
	m.Ball.Pos = tr.Position(t)
	m.Ball.Dir = tr.Curve.Tangent(clamp(t+0.001, 0, 1))

	if m.postBounce() || m.crossbarBounce() {
		return
	}
	if IsGoal(m.Ball.Pos) {
		m.scoreGoal()
		return
	}
	if m.netEntry() {
		return
	}

	m.emitTrail(t)
	m.trackShot(t)
	if t >= 1 {
		m.land()
	}
}

// postBounce reflects the ball off either post.
func (m *Match) postBounce() bool {
	for _, post := range postCenters() {
		dx := m.Ball.Pos.X - post.X
		dz := m.Ball.Pos.Z - post.Z
		if math.Hypot(dx, dz) >= PostRadius+BallRadius {
			continue
		}
		normal := Vec3{X: dx, Z: dz}.Normalize()
		dir := m.Ball.Dir
		if dir.LenSq() == 0 {
			dir = Vec3{Z: 1}
		}
		reflected := dir.Sub(normal.Scale(2 * dir.Dot(normal))).Normalize()
		m.release(reflected.Scale(postBounceSpeed))
		m.emit(EventPost, NoAgent, "post")
		return true
	}
	return false
}

// crossbarBounce knocks the ball down off the bar.
func (m *Match) crossbarBounce() bool {
	p := m.Ball.Pos
	withinX := p.X >= Goal.MinX-0.6 && p.X <= Goal.MaxX+0.6
	nearZ := math.Abs(p.Z-Goal.Z) < 0.5
	nearY := p.Y > 5.0 && p.Y < 6.6
	if !withinX || !nearZ || !nearY {
		return false
	}
	dir := m.Ball.Dir
	if dir.Y == 0 {
		dir.Y = 0.4
	}
	dir.Y = -math.Abs(dir.Y)
	dir.X *= 0.9
	dir.Z *= 0.9
	m.release(dir.Normalize().Scale(crossbarBounceSpeed))
	m.emit(EventCrossbar, NoAgent, "crossbar")
	return true
}

// netEntry catches a ball that meets the netting outside the goal mouth.
func (m *Match) netEntry() bool {
	p := m.Ball.Pos
	if !inNetBox(p, 6.4) || inMouthStrip(p) {
		return false
	}
	m.Ball.Pos.Z = Goal.Z + 0.12
	m.release(netRebound(m.Ball.Dir))
	m.Net.Impact(m.Ball.Pos)
	m.emit(EventNet, NoAgent, "net")
	return true
}

// netRebound is the almost-dead velocity a ball keeps after hitting netting.
func netRebound(dir Vec3) Vec3 {
	mag := math.Max(10, dir.Len()*14)
	z := dir.Z
	if z == 0 {
		z = 0.3
	}
	dir.Z = -math.Abs(z) * 0.1
	dir.X *= 0.15
	dir.Y *= 0.1
	return dir.Normalize().Scale(mag * 0.08)
}

// release frees the ball with velocity v, aborts the trajectory and sends
// the nearest players of both sides after it. The issuer window of the
// aborted flight still runs.
func (m *Match) release(v Vec3) {
	m.endShot()
	m.Ball.State = m.Ball.loose(v)
	m.looseChase()
}

// land ends a trajectory that ran to completion without scoring.
func (m *Match) land() {
	m.endShot()
	m.Trail = m.Trail[:0]
	if IsGoal(m.Ball.Pos) {
		m.scoreGoal()
		return
	}
	dir := m.Ball.Dir
	if dir.LenSq() == 0 {
		dir = Vec3{Z: 1}
	}
	m.Ball.State = m.Ball.loose(dir.Scale(landingSpeed))
	m.looseChase()
	m.emit(EventLanded, NoAgent, fmt.Sprintf("(%.1f,%.1f)", m.Ball.Pos.X, m.Ball.Pos.Z))
}

// scoreGoal counts a goal once per round and lets the ball settle in the net.
func (m *Match) scoreGoal() {
	if m.Pending != nil {
		return
	}
	m.Score++
	m.endShot()
	m.Net.Impact(m.Ball.Pos)
	m.Ball.State = &Free{Velocity: netRebound(m.Ball.Dir)}
	m.showBanner("GOOOAL!", 0)
	m.schedule(goalResetDelay, "goal")
	m.emit(EventGoal, NoAgent, fmt.Sprintf("score %d", m.Score))
}

// endShot clears the incoming-shot flag on both keepers.
func (m *Match) endShot() {
	for _, a := range m.Agents {
		if a.Keeper {
			a.ShotIncoming = false
		}
	}
}

// trackShot steers the defending keeper at the predicted landing point once
// the shot is a quarter of the way there, and poses the dive.
func (m *Match) trackShot(t float64) {
	k := m.keeper(TeamEnemy)
	if k == nil || !k.ShotIncoming || t <= keeperTrackAfter {
		return
	}
	mv, ok := m.Ball.Moving()
	if !ok {
		return
	}
	aim := keeperAim(k, mv.Flight.End)
	setTarget(k, aim, keeperTrackSpeed, m.Now, m.rng)
	k.Pose.keeperDive(k.Pos, m.Ball.Pos)
}

// keeperAim limits a predicted landing point to the keeper's goal mouth.
func keeperAim(k *Agent, predicted Vec3) Vec3 {
	line := Goal.Z
	if k.IsAlly() {
		line = -Goal.Z
	}
	predicted.X = clamp(predicted.X, Goal.MinX-keeperAimX, Goal.MaxX+keeperAimX)
	predicted.Z = clamp(predicted.Z, line-keeperAimNear, line+keeperAimNear)
	return predicted
}

// stepFreeBall integrates a loose ball: gravity, drag, ground bounce and the
// softer, stickier physics of a ball settling inside the net.
func (m *Match) stepFreeBall(dt float64) {
	f, ok := m.Ball.Free()
	if !ok {
		return
	}
	pos, vel := m.Ball.Pos, f.Velocity
	pos = pos.Add(vel.Scale(dt))
	vel.Y -= freeGravity * dt
	vel = vel.Scale(freeDrag)

	if pos.Y < BallRestY {
		pos.Y = BallRestY
		if vel.Y < 0 {
			vel.Y = -vel.Y * groundBounce
		}
		vel.X *= groundFriction
		vel.Z *= groundFriction
	}

	if inNetBox(pos, 6.5) && pos.Y >= 0 {
		vel = vel.Scale(netDrag)
		vel.Y -= netGravity * dt
		pos, vel = settleInNet(pos, vel)
		if vel.Len() > rubSpeed {
			m.Net.Rub(pos, dt)
		}
	}

	if vel.Len() < restSpeed && pos.Y <= BallRestY+restHover {
		vel = Vec3{}
	}
	m.Ball.Pos = pos
	f.Velocity = vel

	if f.Chasing && m.Now-f.LastChase >= chaseInterval {
		m.looseChase()
	}
}

// settleInNet keeps a ball inside the net walls with small rebounds.
func settleInNet(pos, vel Vec3) (Vec3, Vec3) {
	if pos.Z > Goal.Z+NetDepth-0.2 {
		pos.Z = Goal.Z + NetDepth - 0.2
		vel.Z *= -0.2
	}
	if pos.Z < Goal.Z+0.2 {
		pos.Z = Goal.Z + 0.2
		vel.Z *= -0.15
	}
	if pos.X < Goal.MinX+0.2 {
		pos.X = Goal.MinX + 0.2
		vel.X *= -0.2
	}
	if pos.X > Goal.MaxX-0.2 {
		pos.X = Goal.MaxX - 0.2
		vel.X *= -0.2
	}
	return pos, vel
}
