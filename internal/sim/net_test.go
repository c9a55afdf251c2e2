package sim

import "testing"

func TestNewNet_GridSizes(t *testing.T) {
	n := NewNet(Goal)
	want := map[PanelKind][2]int{
		PanelBack:  {21, 21},
		PanelRoof:  {21, 11},
		PanelLeft:  {11, 21},
		PanelRight: {11, 21},
	}
	for _, p := range n.Panels {
		w := want[p.Kind]
		if p.Cols != w[0] || p.Rows != w[1] {
			t.Fatalf("%s panel = %dx%d, want %dx%d", p.Kind, p.Cols, p.Rows, w[0], w[1])
		}
		if len(p.Pos) != p.Cols*p.Rows || len(p.Rest) != len(p.Pos) || len(p.Vel) != len(p.Pos) {
			t.Fatalf("%s panel slice lengths mismatch", p.Kind)
		}
	}
	if n.MaxDisplacement() != 0 {
		t.Fatalf("fresh net displaced by %.3f", n.MaxDisplacement())
	}
}

func TestNet_DisplacementClampedUnderRepeatedImpacts(t *testing.T) {
	n := NewNet(Goal)
	hit := V(0, 2, Goal.Z+NetDepth-0.5)
	for i := 0; i < 200; i++ {
		n.Impact(hit)
		n.Impact(hit.Add(V(float64(i%5)-2, 0, 0)))
		n.Step(1.0 / 60)
		if d := n.MaxDisplacement(); d > netMaxDisplace+1e-9 {
			t.Fatalf("frame %d: displacement %.4f exceeds %.2f", i, d, netMaxDisplace)
		}
	}
}

func TestNet_ImpactMovesNearbyVertices(t *testing.T) {
	n := NewNet(Goal)
	n.Impact(V(0, 2, Goal.Z+NetDepth-0.5))
	n.Step(1.0 / 60)
	if n.Panels[PanelBack].MaxDisplacement() == 0 {
		t.Fatalf("back panel did not react to an impact next to it")
	}
}

func TestNet_SettlesBackToRest(t *testing.T) {
	n := NewNet(Goal)
	n.Impact(V(0, 2, Goal.Z+2))
	for i := 0; i < 60*20; i++ {
		n.Step(1.0 / 60)
	}
	if d := n.MaxDisplacement(); d > 0.01 {
		t.Fatalf("net still displaced %.4f after 20s", d)
	}
}

func TestNet_RubIsGentlerThanImpact(t *testing.T) {
	a := NewNet(Goal)
	b := NewNet(Goal)
	at := V(0, 1, Goal.Z+NetDepth-0.5)
	a.Impact(at)
	b.Rub(at, 1.0/60)
	a.Step(1.0 / 60)
	b.Step(1.0 / 60)
	if b.MaxDisplacement() >= a.MaxDisplacement() {
		t.Fatalf("rub %.4f should displace less than impact %.4f", b.MaxDisplacement(), a.MaxDisplacement())
	}
}
