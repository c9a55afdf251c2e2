package scene

import (
	"testing"

	"github.com/Garsondee/Curve-Pass/internal/sim"
)

type fakeBackend struct {
	*Registry
	creates, removes, renders int
	preview                   []sim.Vec3
}

func newFakeBackend() *fakeBackend { return &fakeBackend{Registry: NewRegistry()} }

func (f *fakeBackend) Create(kind Kind, info Info, t Transform) ObjectID {
	f.creates++
	return f.Registry.Create(kind, info, t)
}

func (f *fakeBackend) Remove(id ObjectID) {
	f.removes++
	f.Registry.Remove(id)
}

func (f *fakeBackend) SetPreview(path []sim.Vec3) { f.preview = path }
func (f *fakeBackend) Render(Frame)               { f.renders++ }
func (f *fakeBackend) Pick(x, y float64) sim.Pick {
	return f.HitTest(sim.V(x, 0, y), true)
}

type fakeHUD struct {
	state, toast, banner string
	score, calls         int
}

func (h *fakeHUD) SetState(s string)  { h.state = s; h.calls++ }
func (h *fakeHUD) SetToast(s string)  { h.toast = s; h.calls++ }
func (h *fakeHUD) SetBanner(s string) { h.banner = s; h.calls++ }
func (h *fakeHUD) SetScore(n int)     { h.score = n; h.calls++ }

func TestSync_CreatesOneObjectPerEntity(t *testing.T) {
	m := sim.NewMatch(1)
	b := newFakeBackend()
	s := New(b, nil)
	s.Sync(m)

	if got, want := b.Len(), len(m.Agents)+1; got != want {
		t.Fatalf("objects = %d, want %d", got, want)
	}
	if b.renders != 1 {
		t.Fatalf("renders = %d, want 1", b.renders)
	}

	s.Sync(m)
	if b.creates != len(m.Agents)+1 {
		t.Fatalf("second sync created objects again: creates = %d", b.creates)
	}
}

func TestSync_RebuildsOnReset(t *testing.T) {
	m := sim.NewMatch(1)
	b := newFakeBackend()
	s := New(b, nil)
	s.Sync(m)
	before, _ := s.Object(0)

	m.Reset()
	s.Sync(m)

	after, _ := s.Object(0)
	if before == after {
		t.Fatalf("agent 0 kept object %d across a reset", before)
	}
	if b.removes != len(m.Agents)+1 {
		t.Fatalf("removes = %d, want %d", b.removes, len(m.Agents)+1)
	}
	if b.Len() != len(m.Agents)+1 {
		t.Fatalf("objects after rebuild = %d", b.Len())
	}
}

func TestSync_TransformsFollowMatch(t *testing.T) {
	m := sim.NewMatch(1)
	b := newFakeBackend()
	s := New(b, nil)
	s.Sync(m)

	m.Agents[3].Pos = sim.V(10, 0, 10)
	s.Sync(m)

	id, _ := s.Object(3)
	if got := b.Get(id).T.Pos; got != sim.V(10, 0, 10) {
		t.Fatalf("agent 3 transform = %+v", got)
	}
	holderObj, _ := s.Object(0)
	if !b.Get(holderObj).T.HasBall {
		t.Fatal("holder transform should carry HasBall")
	}
	if got := b.Get(s.Ball()).T.Pos; got != m.Ball.Pos {
		t.Fatalf("ball transform = %+v, want %+v", got, m.Ball.Pos)
	}
}

func TestSync_PreviewOnlyWhileDrawing(t *testing.T) {
	m := sim.NewMatch(1)
	b := newFakeBackend()
	s := New(b, nil)

	m.PointerDown(sim.Pick{Agent: sim.NoAgent, Ground: sim.V(-22, 0, -28), OnPitch: true})
	m.PointerMove(sim.Pick{Agent: sim.NoAgent, Ground: sim.V(-20, 0, -20), OnPitch: true})
	s.Sync(m)
	if len(b.preview) < 2 {
		t.Fatalf("preview has %d points while drawing", len(b.preview))
	}

	m.Drawing = false
	s.Sync(m)
	if b.preview != nil {
		t.Fatal("preview should clear once drawing stops")
	}
}

func TestSync_HUDOnlyOnChange(t *testing.T) {
	m := sim.NewMatch(1)
	h := &fakeHUD{}
	s := New(newFakeBackend(), h)

	s.Sync(m)
	if h.state != "PAUSED" || h.calls != 4 {
		t.Fatalf("first sync: state %q calls %d", h.state, h.calls)
	}
	s.Sync(m)
	if h.calls != 4 {
		t.Fatalf("unchanged frame pushed HUD again: calls %d", h.calls)
	}

	m.Score = 2
	s.Sync(m)
	if h.score != 2 || h.calls != 5 {
		t.Fatalf("score %d calls %d", h.score, h.calls)
	}
}

func TestHitTest_BallBeatsAgent(t *testing.T) {
	r := NewRegistry()
	r.Create(KindAgent, Info{Agent: 4}, Transform{Pos: sim.V(0, 0, 0)})
	r.Create(KindBall, Info{Agent: sim.NoAgent}, Transform{Pos: sim.V(0.5, 0.5, 0)})

	p := r.HitTest(sim.V(0.4, 0, 0), true)
	if !p.Ball {
		t.Fatal("ball should be hit")
	}
	if p.Agent != 4 {
		t.Fatalf("agent = %d, want 4", p.Agent)
	}
}

func TestHitTest_ClosestAgentAndMiss(t *testing.T) {
	r := NewRegistry()
	r.Create(KindAgent, Info{Agent: 1}, Transform{Pos: sim.V(0, 0, 0)})
	r.Create(KindAgent, Info{Agent: 2}, Transform{Pos: sim.V(1.5, 0, 0)})

	if p := r.HitTest(sim.V(1.2, 0, 0), true); p.Agent != 2 {
		t.Fatalf("agent = %d, want 2", p.Agent)
	}
	p := r.HitTest(sim.V(30, 0, 30), true)
	if p.Agent != sim.NoAgent || p.Ball {
		t.Fatalf("empty pitch pick = %+v", p)
	}
	if p.Ground != sim.V(30, 0, 30) {
		t.Fatalf("ground = %+v", p.Ground)
	}
}

func TestRegistry_RemoveKeepsOrder(t *testing.T) {
	r := NewRegistry()
	a := r.Create(KindAgent, Info{Agent: 0}, Transform{})
	b := r.Create(KindAgent, Info{Agent: 1}, Transform{})
	c := r.Create(KindAgent, Info{Agent: 2}, Transform{})
	r.Remove(b)
	r.Remove(b)

	var seen []ObjectID
	r.Each(func(o *Object) { seen = append(seen, o.ID) })
	if len(seen) != 2 || seen[0] != a || seen[1] != c {
		t.Fatalf("order after remove = %v", seen)
	}
}
