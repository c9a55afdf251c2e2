package sim

import (
	"math"
	"testing"
)

func nearVec(a, b Vec3, tol float64) bool {
	return a.Dist(b) <= tol
}

func TestCurve_PassesThroughControlPoints(t *testing.T) {
	pts := []Vec3{V(0, 0, 0), V(6, 3, 10), V(0, 0, 20)}
	c := NewCurve(pts...)
	for i, tt := range []float64{0, 0.5, 1} {
		if got := c.Point(tt); !nearVec(got, pts[i], 1e-9) {
			t.Fatalf("Point(%.1f) = %+v, want %+v", tt, got, pts[i])
		}
	}
}

func TestCurve_StraightLineIsLinear(t *testing.T) {
	c := NewCurve(V(0, 0, 0), V(0, 0, 10), V(0, 0, 20))
	got := c.Point(0.25)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y) > 1e-9 {
		t.Fatalf("straight curve left the line: %+v", got)
	}
	if got.Z <= 0 || got.Z >= 10 {
		t.Fatalf("Point(0.25).Z = %.3f, want within first segment", got.Z)
	}
}

func TestCurve_TangentIsUnit(t *testing.T) {
	c := NewCurve(V(0, 0, 0), V(8, 2, 10), V(0, 0, 20))
	for _, tt := range []float64{0, 0.3, 0.5, 0.9, 1} {
		if l := c.Tangent(tt).Len(); math.Abs(l-1) > 1e-6 {
			t.Fatalf("|Tangent(%.1f)| = %.6f, want 1", tt, l)
		}
	}
	if c.Tangent(1).Z <= 0 {
		t.Fatalf("tangent at the end should point forward")
	}
}

func TestCurve_LengthAtLeastChord(t *testing.T) {
	c := NewCurve(V(0, 0, 0), V(10, 0, 10), V(0, 0, 20))
	if got := c.Length(60); got < 20 {
		t.Fatalf("curved length %.2f shorter than chord 20", got)
	}
	straight := NewCurve(V(0, 0, 0), V(0, 0, 10), V(0, 0, 20))
	if got := straight.Length(60); math.Abs(got-20) > 1e-6 {
		t.Fatalf("straight length = %.6f, want 20", got)
	}
}

func TestCurve_DuplicatePointsStayFinite(t *testing.T) {
	c := NewCurve(V(1, 0, 1), V(1, 0, 1), V(1, 0, 1))
	if p := c.Point(0.4); !p.Finite() {
		t.Fatalf("degenerate curve produced %+v", p)
	}
}
