package sim

import (
	"encoding/json"
	"math"
	"testing"
)

func TestCamera_FollowEasesTowardBall(t *testing.T) {
	var c Camera
	ball := V(10, 0.5, 20)
	c.Snap(ball)
	want := ball.Add(V(0, 30, -50))
	if c.Pos != want {
		t.Fatalf("snap pos = %+v, want %+v", c.Pos, want)
	}
	moved := V(10, 0.5, 40)
	before := c.Pos.Dist(moved.Add(V(0, 30, -50)))
	c.Update(moved)
	after := c.Pos.Dist(moved.Add(V(0, 30, -50)))
	if math.Abs(after-before*(1-0.08)) > 1e-9 {
		t.Fatalf("follow ease moved %.3f -> %.3f, want 8%% closer", before, after)
	}
}

func TestCamera_ToggleAndParse(t *testing.T) {
	var c Camera
	c.Toggle()
	if c.Mode != CameraBroadcast {
		t.Fatalf("toggle from follow should give broadcast")
	}
	c.Snap(V(0, 0, 10))
	if c.Pos != V(70, 52, 5) {
		t.Fatalf("broadcast pos = %+v", c.Pos)
	}
	if mode, ok := ParseCameraMode("broadcast"); !ok || mode != CameraBroadcast {
		t.Fatalf("ParseCameraMode(broadcast) = %v %v", mode, ok)
	}
	if _, ok := ParseCameraMode("drone"); ok {
		t.Fatalf("unknown mode parsed")
	}
}

func TestParticles_EmitAndExpire(t *testing.T) {
	m := NewMatch(3)
	m.Ball.Dir = V(0, 0, 1)
	m.emitTrail(0.02)
	n := len(m.Particles)
	if n < 6 || n > 8 {
		t.Fatalf("burst size %d outside [6,8]", n)
	}
	for _, p := range m.Particles {
		if p.Vel.Z >= 0 {
			t.Fatalf("spark should fly backwards, vel %+v", p.Vel)
		}
	}
	m.emitTrail(0.013)
	if len(m.Particles) != n {
		t.Fatalf("odd centi-t should not emit")
	}
	for i := 0; i < 60; i++ {
		m.stepParticles(1.0 / 60)
	}
	if len(m.Particles) != 0 {
		t.Fatalf("%d sparks outlived their life", len(m.Particles))
	}
}

func TestParticles_TrailCapped(t *testing.T) {
	m := NewMatch(3)
	for i := 0; i < 50; i++ {
		m.emitTrail(0.011)
	}
	if len(m.Trail) != trailLen {
		t.Fatalf("trail length %d, want %d", len(m.Trail), trailLen)
	}
}

func TestSnapshot_JSONShape(t *testing.T) {
	m := NewMatch(1)
	data, err := json.Marshal(m.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	var back Snapshot
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if len(back.Agents) != 12 || back.Ball.Phase != "held" || back.Ball.Holder != 0 || back.State != "PAUSED" {
		t.Fatalf("snapshot = %+v", back)
	}
}

func TestGestureLine_EndsAndBend(t *testing.T) {
	pts := GestureLine(V(0, 0, 0), V(0, 0, 20), 5, 8)
	if len(pts) != 9 {
		t.Fatalf("got %d points, want 9", len(pts))
	}
	if pts[0] != V(0, 0, 0) || pts[8].Dist(V(0, 0, 20)) > 1e-9 {
		t.Fatalf("ends = %+v .. %+v", pts[0], pts[8])
	}
	if math.Abs(math.Abs(pts[4].X)-5) > 1e-9 {
		t.Fatalf("middle point bend = %.3f, want 5", pts[4].X)
	}
}

func TestAutopilot_ShootsFromRange(t *testing.T) {
	ts := NewTestSim(WithHolder(2), WithAgentAt(2, 0, 30))
	ap := NewAutopilot(1)
	g := ap.Gesture(ts.Match)
	if g == nil {
		t.Fatalf("autopilot should act when the user has the ball")
	}
	if end := g[len(g)-1]; end.Z < Goal.Z {
		t.Fatalf("in range the autopilot should shoot, aimed at %+v", end)
	}
	if !ap.Play(ts.Match) {
		t.Fatalf("autopilot release failed")
	}
	if ap.Gesture(ts.Match) != nil {
		t.Fatalf("autopilot should wait while the ball is live")
	}
}

func TestPointer_SelectAndStageTactic(t *testing.T) {
	m := NewMatch(1)
	m.PointerDown(Pick{Agent: 3, Ground: m.Agents[3].Pos, OnPitch: true})
	if m.Selected != 3 {
		t.Fatalf("click on A3 should select it, selected=%d", m.Selected)
	}
	m.PointerDown(Pick{Agent: NoAgent, Ground: V(10, 0, 50), OnPitch: true})
	if _, ok := m.Tactics[3]; ok || m.Toast.Text != "Position too far forward!" {
		t.Fatalf("forward tactic accepted; toast %q", m.Toast.Text)
	}
	m.PointerDown(Pick{Agent: NoAgent, Ground: V(10, 0, 20), OnPitch: true})
	if p, ok := m.Tactics[3]; !ok || p != V(10, 0, 20) {
		t.Fatalf("tactic not staged: %+v", m.Tactics)
	}
	if m.Selected != NoAgent {
		t.Fatalf("staging a tactic should clear the selection")
	}
}

func TestPointer_ClickingBallDeselectsAndDraws(t *testing.T) {
	m := NewMatch(1)
	m.PointerDown(Pick{Agent: 3, OnPitch: true})
	m.PointerDown(Pick{Agent: NoAgent, Ball: true, Ground: m.Ball.Pos.Ground(), OnPitch: true})
	if m.Selected != NoAgent || !m.Drawing {
		t.Fatalf("selected=%d drawing=%v, want deselected and drawing", m.Selected, m.Drawing)
	}
	m.PointerMove(Pick{Ground: V(-20, 0, -20), OnPitch: true})
	m.PointerMove(Pick{Ground: V(-18, 0, -10), OnPitch: true})
	if err := m.PointerUp(Pick{Ground: V(-15, 0, 0), OnPitch: true}); err != nil {
		t.Fatalf("release: %v", err)
	}
	if m.Ball.Phase() != PhaseMoving || m.Drawing {
		t.Fatalf("phase=%s drawing=%v after pointer up", m.Ball.Phase(), m.Drawing)
	}
}

func TestPointer_IgnoredWhilePlaying(t *testing.T) {
	ts := NewTestSim(WithHolder(2))
	if err := ts.Release(V(0, 0, -30), V(0, 0, 0)); err != nil {
		t.Fatal(err)
	}
	ts.Match.PointerDown(Pick{Agent: 3, OnPitch: true})
	if ts.Match.Selected != NoAgent || ts.Match.Drawing {
		t.Fatalf("input accepted during live play")
	}
}

func TestEventKind_Strings(t *testing.T) {
	if EventGoal.String() != "goal" || EventKind(99).String() != "unknown" {
		t.Fatalf("event names wrong")
	}
	if !EventSave.Terminal() || EventPass.Terminal() {
		t.Fatalf("terminal classification wrong")
	}
}

func TestAutopilot_TickWaitsThinkTime(t *testing.T) {
	m := NewMatch(3)
	ap := NewAutopilot(3)
	ap.Think = 0.5

	for i := 0; i < 29; i++ {
		if ap.Tick(m, FrameDT) {
			t.Fatalf("released after %d frames, before think time", i+1)
		}
	}
	if m.State != StatePaused {
		t.Fatalf("state = %s while thinking", m.State)
	}
	released := false
	for i := 0; i < 3 && !released; i++ {
		released = ap.Tick(m, FrameDT)
	}
	if !released {
		t.Fatal("autopilot never released after think time")
	}
	if m.State != StatePlaying {
		t.Fatalf("state = %s after release, want PLAYING", m.State)
	}
}
