package sim

// FrameDT is the fixed frame step used by headless runs.
const FrameDT = 1.0 / 60.0

// TestSim is a headless match harness for tests and batch reports. It
// drives Match.Step with a fixed frame step and supports deterministic
// seeding and structured logging.
type TestSim struct {
	Match  *Match
	SimLog *SimLog
	seed   int64
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // seed, verbose: applied before the match exists
	simOptAgent                      // positions and possession: applied at kickoff
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithVerbose enables per-frame verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithHolder gives the ball to agent id at kickoff.
func WithHolder(id AgentID) SimOption {
	return SimOption{simOptAgent, func(ts *TestSim) {
		if a := ts.Match.Agent(id); a != nil {
			ts.Match.giveBall(a)
		}
	}}
}

// WithAgentAt places agent id at (x,z). A held ball follows its holder.
func WithAgentAt(id AgentID, x, z float64) SimOption {
	return SimOption{simOptAgent, func(ts *TestSim) {
		a := ts.Match.Agent(id)
		if a == nil {
			return
		}
		a.Pos = Vec3{X: x, Z: z}
		ts.Match.followHolder()
	}}
}

// WithKeeperAway parks the enemy keeper, and its home box, in a far corner.
func WithKeeperAway() SimOption {
	return SimOption{simOptAgent, func(ts *TestSim) {
		if k := ts.Match.keeper(TeamEnemy); k != nil {
			k.Pos = Vec3{X: Field.MinX + 5, Z: Field.MaxZ - 5}
			k.Home = k.Pos
		}
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (seed, verbose)
//  2. Build the match at kickoff
//  3. Agent placement and possession
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		SimLog: NewSimLog(false),
		seed:   1,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Match = NewMatch(ts.seed)
	ts.Match.Log = ts.SimLog
	for _, o := range opts {
		if o.kind == simOptAgent {
			o.fn(ts)
		}
	}
	return ts
}

// Release submits a gesture as if the user drew it.
func (ts *TestSim) Release(gesture ...Vec3) error {
	return ts.Match.Release(gesture)
}

// RunFrames advances the match n frames.
func (ts *TestSim) RunFrames(n int) {
	for i := 0; i < n; i++ {
		ts.Match.Step(FrameDT)
	}
}

// RunUntil advances the match up to maxFrames, stopping early if predicate
// returns true. Returns the frame at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxFrames int) int {
	for i := 0; i < maxFrames; i++ {
		ts.Match.Step(FrameDT)
		if predicate(ts) {
			return ts.Match.Frame
		}
	}
	return -1
}

// CurrentFrame returns the current match frame.
func (ts *TestSim) CurrentFrame() int {
	return ts.Match.Frame
}
