package sim

import "math"

// Curve is an open centripetal Catmull-Rom spline through its control
// points. Parameter t runs from 0 at the first point to 1 at the last, with
// each segment taking an equal share.
type Curve struct {
	pts []Vec3
}

// NewCurve builds a spline through pts. At least two points are required.
func NewCurve(pts ...Vec3) *Curve {
	cp := make([]Vec3, len(pts))
	copy(cp, pts)
	return &Curve{pts: cp}
}

// Points returns the control points.
func (c *Curve) Points() []Vec3 { return c.pts }

// Point samples the spline at t in [0,1].
func (c *Curve) Point(t float64) Vec3 {
	n := len(c.pts)
	if n == 0 {
		return Vec3{}
	}
	if n == 1 {
		return c.pts[0]
	}
	t = clamp(t, 0, 1)
	p := float64(n-1) * t
	seg := int(math.Floor(p))
	w := p - float64(seg)
	if seg >= n-1 {
		seg = n - 2
		w = 1
	}

	p1 := c.pts[seg]
	p2 := c.pts[seg+1]
	var p0, p3 Vec3
	if seg > 0 {
		p0 = c.pts[seg-1]
	} else {
		p0 = c.pts[0].Sub(c.pts[1]).Add(c.pts[0])
	}
	if seg+2 < n {
		p3 = c.pts[seg+2]
	} else {
		p3 = c.pts[n-1].Sub(c.pts[n-2]).Add(c.pts[n-1])
	}

	dt0 := math.Pow(p0.Sub(p1).LenSq(), 0.25)
	dt1 := math.Pow(p1.Sub(p2).LenSq(), 0.25)
	dt2 := math.Pow(p2.Sub(p3).LenSq(), 0.25)
	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	return Vec3{
		X: nonUniformCR(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2, w),
		Y: nonUniformCR(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2, w),
		Z: nonUniformCR(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2, w),
	}
}

// Tangent returns the unit direction of travel at t, estimated by central
// difference.
func (c *Curve) Tangent(t float64) Vec3 {
	const delta = 0.0001
	t1 := t - delta
	t2 := t + delta
	if t1 < 0 {
		t1 = 0
	}
	if t2 > 1 {
		t2 = 1
	}
	return c.Point(t2).Sub(c.Point(t1)).Normalize()
}

// Length approximates arc length by summing segment chords.
func (c *Curve) Length(segments int) float64 {
	if segments < 1 {
		segments = 1
	}
	total := 0.0
	prev := c.Point(0)
	for i := 1; i <= segments; i++ {
		pt := c.Point(float64(i) / float64(segments))
		total += pt.Dist(prev)
		prev = pt
	}
	return total
}

// nonUniformCR evaluates one axis of a Catmull-Rom segment with knot
// spacings dt0..dt2 as a cubic Hermite between x1 and x2.
func nonUniformCR(x0, x1, x2, x3, dt0, dt1, dt2, t float64) float64 {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	t1 *= dt1
	t2 *= dt1

	c0 := x1
	c1 := t1
	c2 := -3*x1 + 3*x2 - 2*t1 - t2
	c3 := 2*x1 - 2*x2 + t1 + t2
	t2s := t * t
	return c0 + c1*t + c2*t2s + c3*t2s*t
}
