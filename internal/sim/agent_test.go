package sim

import (
	"math"
	"math/rand"
	"testing"
)

func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(7)) // #nosec G404 -- test
}

func TestSetTarget_NonFiniteClearsOrder(t *testing.T) {
	a := newAgent(0, TeamEnemy, false, V(0, 0, 0), newTestRNG())
	setTarget(a, V(1, 0, 1), 5, 0, newTestRNG())
	setTarget(a, V(math.NaN(), 0, 1), 5, 0, newTestRNG())
	if a.Order != nil {
		t.Fatalf("NaN target should clear the order, got %+v", a.Order)
	}
}

func TestSetTarget_AllyReactionDelay(t *testing.T) {
	rng := newTestRNG()
	for i := 0; i < 50; i++ {
		a := newAgent(1, TeamAlly, false, V(0, 0, 0), rng)
		setTarget(a, V(10, 0, 0), 7, 3, rng)
		delay := a.Order.StartAt - 3
		if delay < allyDelayMin || delay > allyDelayMin+allyDelaySpread {
			t.Fatalf("ally delay %.3f outside [%.2f,%.2f]", delay, allyDelayMin, allyDelayMin+allyDelaySpread)
		}
	}
}

func TestSetTarget_EnemyReactsImmediately(t *testing.T) {
	a := newAgent(6, TeamEnemy, false, V(0, 0, 0), newTestRNG())
	setTarget(a, V(10, 0, 0), 7, 3, newTestRNG())
	if a.Order.StartAt != 3 {
		t.Fatalf("enemy start = %.3f, want 3", a.Order.StartAt)
	}
}

func TestSetTarget_RetargetKeepsReactionClock(t *testing.T) {
	rng := newTestRNG()
	a := newAgent(1, TeamAlly, false, V(0, 0, 0), rng)
	setTarget(a, V(10, 0, 0), 7, 1, rng)
	first := a.Order.StartAt
	setTarget(a, V(-10, 0, 5), 9, 1.1, rng)
	if a.Order.StartAt != first {
		t.Fatalf("retarget moved start from %.3f to %.3f", first, a.Order.StartAt)
	}
	if a.Order.Point != V(-10, 0, 5) || a.Order.Speed != 9 {
		t.Fatalf("retarget did not update point/speed: %+v", a.Order)
	}
}

func TestSetTarget_KeeperConfinedToBox(t *testing.T) {
	k := newAgent(11, TeamEnemy, true, V(0, 0, Goal.Z), newTestRNG())
	setTarget(k, V(40, 0, 0), 20, 0, newTestRNG())
	box := keeperBox(k.Home)
	if !box.Contains(k.Order.Point) {
		t.Fatalf("keeper target %+v outside box %+v", k.Order.Point, box)
	}
	if k.Order.Speed != keeperSpeedMax {
		t.Fatalf("keeper speed = %.2f, want cap %.2f", k.Order.Speed, keeperSpeedMax)
	}
	setTarget(k, V(0, 0, Goal.Z), 2, 0, newTestRNG())
	if k.Order.Speed != keeperSpeedMin {
		t.Fatalf("keeper speed = %.2f, want floor %.2f", k.Order.Speed, keeperSpeedMin)
	}
}

func TestSetTarget_ClampsToField(t *testing.T) {
	a := newAgent(6, TeamEnemy, false, V(0, 0, 0), newTestRNG())
	setTarget(a, V(999, 5, -999), 7, 0, newTestRNG())
	if a.Order.Point != V(Field.MaxX, 0, Field.MinZ) {
		t.Fatalf("target = %+v, want field corner", a.Order.Point)
	}
}

func TestStepAgents_HealsEscapedAgent(t *testing.T) {
	ts := NewTestSim(WithSeed(3))
	m := ts.Match
	a := m.Agents[7]
	a.Pos = V(math.NaN(), 0, 0)
	m.Step(FrameDT)
	if a.Pos != a.Home {
		t.Fatalf("healed position = %+v, want home %+v", a.Pos, a.Home)
	}
	if a.Order != nil {
		t.Fatalf("heal should clear the target")
	}
	if !ts.SimLog.HasEntry("safety", "heal", "") {
		t.Fatalf("expected a safety/heal log entry\n%s", ts.SimLog.Format())
	}
}

func TestStepAgents_RandomTargetsStayOnField(t *testing.T) {
	ts := NewTestSim(WithSeed(11))
	m := ts.Match
	rng := newTestRNG()
	for frame := 0; frame < 600; frame++ {
		if frame%20 == 0 {
			for _, a := range m.Agents {
				p := V((rng.Float64()-0.5)*400, rng.Float64()*10, (rng.Float64()-0.5)*400)
				setTarget(a, p, 5+rng.Float64()*20, m.Now, rng)
			}
		}
		m.Step(FrameDT)
		for _, a := range m.Agents {
			if !a.Pos.Finite() {
				t.Fatalf("frame %d: %s position not finite: %+v", frame, a.Label, a.Pos)
			}
			if !Field.Contains(a.Pos) {
				t.Fatalf("frame %d: %s escaped the field: %+v", frame, a.Label, a.Pos)
			}
			if a.Pos.Y != 0 {
				t.Fatalf("frame %d: %s off the ground: y=%.3f", frame, a.Label, a.Pos.Y)
			}
		}
	}
}

func TestStepAgents_ArrivesAndClearsOrder(t *testing.T) {
	ts := NewTestSim(WithSeed(5))
	m := ts.Match
	a := m.Agents[6]
	target := V(a.Pos.X, 0, a.Pos.Z-5)
	setTarget(a, target, 7, m.Now, m.rng)
	ts.RunFrames(90)
	if a.Order != nil {
		t.Fatalf("agent should have arrived, still heading to %+v from %+v", a.Order.Point, a.Pos)
	}
	if d := a.Pos.DistXZ(target); d > 0.2 {
		t.Fatalf("agent stopped %.3f from target", d)
	}
}

func TestStepAgents_SeparatesStackedAgents(t *testing.T) {
	ts := NewTestSim(WithSeed(5))
	m := ts.Match
	a, b := m.Agents[6], m.Agents[7]
	a.Pos = V(0, 0, 30)
	b.Pos = V(1, 0, 30)
	m.Step(FrameDT)
	if d := a.Pos.DistXZ(b.Pos); d <= 1 {
		t.Fatalf("stacked agents not pushed apart: distance %.3f", d)
	}
}

func TestSlerpAngle_ShortestArc(t *testing.T) {
	got := slerpAngle(math.Pi-0.1, -math.Pi+0.1, 1)
	if math.Abs(math.Sin(got)-math.Sin(-math.Pi+0.1)) > 1e-9 || math.Abs(math.Cos(got)-math.Cos(-math.Pi+0.1)) > 1e-9 {
		t.Fatalf("full slerp landed on %.3f", got)
	}
	half := slerpAngle(math.Pi-0.1, -math.Pi+0.1, 0.5)
	if math.Abs(math.Cos(half)+1) > 1e-9 {
		t.Fatalf("half slerp across ±π should sit at π, got %.3f", half)
	}
}
