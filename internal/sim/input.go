package sim

import "fmt"

const (
	tacticMaxZ      = 45.0
	gestureStepMin  = 0.1
	shotToastTime   = 1.0
	passToastTime   = 0.8
	rejectToastTime = 1.2
)

// Pick is what a frontend's pointer ray hit. Agent is NoAgent when no
// hitbox was hit; Ground is the pitch point under the pointer, clamped to
// the field when the ray missed the surface.
type Pick struct {
	Agent   AgentID
	Ball    bool
	Ground  Vec3
	OnPitch bool
}

// PointerDown starts a gesture, toggles an ally selection or stages a
// tactic point. Input is ignored unless the match is paused.
func (m *Match) PointerDown(p Pick) {
	if m.State != StatePaused || m.Pending != nil {
		return
	}
	holder := m.Holder()
	userHasBall := holder != nil && holder.IsAlly() && holder.ID == m.Active

	if p.Ball || (holder != nil && p.Agent == holder.ID) {
		if !userHasBall {
			m.reject("You don't have the ball", &GestureError{Reason: GestureNotHolder})
			return
		}
		m.Selected = NoAgent
		m.beginGesture(p.Ground)
		return
	}

	if a := m.Agent(p.Agent); a != nil && a.IsAlly() && !a.Keeper {
		if m.Selected == a.ID {
			m.Selected = NoAgent
		} else {
			m.Selected = a.ID
		}
		return
	}

	if m.Selected != NoAgent {
		m.stageTactic(m.Selected, p.Ground)
		return
	}

	if !userHasBall {
		m.reject("You don't have the ball", &GestureError{Reason: GestureNotHolder})
		return
	}
	m.beginGesture(p.Ground)
}

// PointerMove extends the gesture being drawn.
func (m *Match) PointerMove(p Pick) {
	if !m.Drawing {
		return
	}
	pt := ClampToField(p.Ground)
	if n := len(m.Gesture); n > 0 && m.Gesture[n-1].DistXZ(pt) < gestureStepMin {
		return
	}
	m.Gesture = append(m.Gesture, pt)
}

// PointerUp finishes the gesture and releases the ball along it.
func (m *Match) PointerUp(p Pick) error {
	if !m.Drawing {
		return nil
	}
	m.PointerMove(p)
	g := m.Gesture
	m.Drawing = false
	m.Gesture = nil
	return m.Release(g)
}

func (m *Match) beginGesture(at Vec3) {
	m.Drawing = true
	m.Gesture = []Vec3{ClampToField(at)}
}

// stageTactic records where a selected ally should run on the next release.
func (m *Match) stageTactic(id AgentID, at Vec3) {
	at = ClampToField(at)
	if at.Z >= tacticMaxZ {
		m.showToast("Position too far forward!", rejectToastTime)
		return
	}
	m.Tactics[id] = at
	m.Selected = NoAgent
	m.showToast("Position set", passToastTime)
	m.emit(EventTactic, id, fmt.Sprintf("(%.1f,%.1f)", at.X, at.Z))
}

// Release builds a trajectory from gesture and puts the ball in flight.
// A rejected gesture returns a *GestureError, shows a toast and leaves the
// ball and agents untouched.
func (m *Match) Release(gesture []Vec3) error {
	if m.State != StatePaused || m.Pending != nil {
		return &GestureError{Reason: GestureNotPaused, Points: len(gesture)}
	}
	holder := m.Holder()
	if holder == nil || !holder.IsAlly() || holder.ID != m.Active {
		return m.reject("You don't have the ball", &GestureError{Reason: GestureNotHolder, Points: len(gesture)})
	}

	tr, err := BuildTrajectory(m.Ball.Pos, gesture, m.Now)
	if err != nil {
		return m.reject("Trajectory too short", err)
	}

	m.Ball.State = &Moving{Flight: tr, Issuer: holder.ID, IgnoreUntil: m.Now + tr.IgnoreWindow()}
	m.Ball.Dir = tr.Curve.Tangent(0)
	m.State = StatePlaying
	m.Selected = NoAgent
	m.Trail = m.Trail[:0]
	m.flushTactics()

	detail := fmt.Sprintf("to (%.1f,%.1f) d=%.1f dur=%.2fs arc=%.1f", tr.End.X, tr.End.Z, tr.Distance, tr.Duration, tr.ArcHeight)
	if tr.Kind == KindShot {
		m.showToast("SHOT ON GOAL!", shotToastTime)
		if k := m.keeper(TeamEnemy); k != nil {
			k.ShotIncoming = true
		}
		m.emit(EventShot, holder.ID, detail)
	} else {
		m.showToast("PASS", passToastTime)
		m.apply(PassRelease(m, holder.ID, tr, m.rng))
		m.emit(EventPass, holder.ID, detail)
	}
	return nil
}

// reject shows msg and logs err.
func (m *Match) reject(msg string, err error) error {
	m.showToast(msg, rejectToastTime)
	m.emit(EventRejected, m.Active, err.Error())
	return err
}
