package sim

import "math"

const (
	receiveRadiusMoving = 2.0
	receiveRadiusFree   = 2.5
	keeperSaveMin       = 2.3
	keeperSaveScale     = 1.3
	enemyReach          = 2.5
)

// resolve runs the per-frame contact checks: enemies first, then allies,
// then out of bounds. Nothing new is decided once a reset is pending.
func (m *Match) resolve() {
	if m.Pending != nil {
		return
	}
	phase := m.Ball.Phase()
	if phase == PhaseHeld {
		return
	}

	for _, a := range m.Agents {
		if a.IsAlly() || m.Ball.ignores(a.ID, m.Now) {
			continue
		}
		if a.Pos.Dist(m.Ball.Pos) >= interceptRadius(a, phase) {
			continue
		}
		if a.Keeper {
			m.save(a)
		} else {
			m.intercept(a)
		}
		return
	}

	for _, a := range m.Agents {
		if !a.IsAlly() || m.Ball.ignores(a.ID, m.Now) {
			continue
		}
		if a.Pos.Dist(m.Ball.Pos) < receiveRadius(phase) {
			m.receive(a)
			return
		}
	}

	if IsOut(m.Ball.Pos) {
		m.out()
	}
}

// receiveRadius is the base contact radius for the ball's phase.
func receiveRadius(phase BallPhase) float64 {
	if phase == PhaseMoving {
		return receiveRadiusMoving
	}
	return receiveRadiusFree
}

// interceptRadius is the contact radius of a non-ally agent. Keepers reach a
// little further for a ball in flight.
func interceptRadius(a *Agent, phase BallPhase) float64 {
	base := receiveRadius(phase)
	switch {
	case a.Keeper && phase == PhaseMoving:
		return math.Max(keeperSaveMin, base*keeperSaveScale)
	case !a.Keeper && (phase == PhaseMoving || phase == PhaseFree):
		return enemyReach
	default:
		return base
	}
}

func (m *Match) save(k *Agent) {
	m.State = StatePaused
	m.showBanner("SPECTACULAR SAVE!", saveBannerTime)
	m.giveBall(k)
	m.clearAllTargets()
	m.schedule(saveResetDelay, "save")
	m.emit(EventSave, k.ID, "keeper holds")
}

func (m *Match) intercept(a *Agent) {
	m.State = StateGameOver
	m.showBanner("INTERCEPTED!", 0)
	m.giveBall(a)
	m.schedule(interceptDelay, "intercept")
	m.emit(EventIntercept, a.ID, "intercepted")
}

func (m *Match) receive(a *Agent) {
	m.giveBall(a)
	m.State = StatePaused
	m.showToast("Pass completed!", receptionToast)
	m.emit(EventReception, a.ID, "received")
}

func (m *Match) out() {
	m.endShot()
	m.Ball.State = &Free{}
	m.State = StateGameOver
	m.showBanner("OUT!", 0)
	m.schedule(outResetDelay, "out")
	m.emit(EventOut, NoAgent, "out of bounds")
}
