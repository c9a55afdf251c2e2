package sim

// BallPhase is the discrete state of the ball.
type BallPhase int

const (
	PhaseFree   BallPhase = iota // loose, integrated by free-body physics
	PhaseHeld                    // glued to a holder
	PhaseMoving                  // following a trajectory
)

func (p BallPhase) String() string {
	switch p {
	case PhaseFree:
		return "free"
	case PhaseHeld:
		return "held"
	case PhaseMoving:
		return "moving"
	default:
		return "unknown"
	}
}

// BallState is one of *Free, *Held or *Moving. Each variant carries only
// the fields valid in that phase.
type BallState interface {
	Phase() BallPhase
}

// Free is a loose ball. A ball knocked loose mid-flight keeps the
// issuer window of that flight.
type Free struct {
	Velocity    Vec3
	Issuer      AgentID
	IgnoreUntil float64
	// Chasing enables the periodic loose-ball retarget.
	Chasing   bool
	LastChase float64
}

// Held is a ball at a player's feet.
type Held struct {
	Holder AgentID
}

// Moving is a ball in flight along a trajectory.
type Moving struct {
	Flight      *Trajectory
	Issuer      AgentID
	IgnoreUntil float64
}

func (*Free) Phase() BallPhase   { return PhaseFree }
func (*Held) Phase() BallPhase   { return PhaseHeld }
func (*Moving) Phase() BallPhase { return PhaseMoving }

// Ball is the single match ball.
type Ball struct {
	Pos   Vec3
	Dir   Vec3 // last direction of travel along a trajectory
	State BallState
}

// Phase returns the current phase; a nil state reads as free.
func (b *Ball) Phase() BallPhase {
	if b.State == nil {
		return PhaseFree
	}
	return b.State.Phase()
}

// Holder returns the holding agent when the ball is held.
func (b *Ball) Holder() (AgentID, bool) {
	if h, ok := b.State.(*Held); ok {
		return h.Holder, true
	}
	return NoAgent, false
}

// Moving returns the flight state when the ball is in flight.
func (b *Ball) Moving() (*Moving, bool) {
	mv, ok := b.State.(*Moving)
	return mv, ok
}

// Free returns the loose-ball state when the ball is free.
func (b *Ball) Free() (*Free, bool) {
	f, ok := b.State.(*Free)
	return f, ok
}

// loose returns a free state with velocity v, inheriting the issuer
// window when the ball is currently in flight.
func (b *Ball) loose(v Vec3) *Free {
	f := &Free{Velocity: v, Issuer: NoAgent}
	if mv, ok := b.Moving(); ok {
		f.Issuer, f.IgnoreUntil = mv.Issuer, mv.IgnoreUntil
	}
	return f
}

// ignores reports whether agent id is still inside the issuer window.
func (b *Ball) ignores(id AgentID, now float64) bool {
	switch s := b.State.(type) {
	case *Moving:
		return s.Issuer == id && now < s.IgnoreUntil
	case *Free:
		return s.Issuer == id && now < s.IgnoreUntil
	}
	return false
}
