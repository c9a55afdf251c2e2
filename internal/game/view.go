package game

import (
	"math"

	"github.com/Garsondee/Curve-Pass/internal/sim"
)

const (
	// viewMargin is the world-space border drawn around the field.
	viewMargin = 6.0
	// heightLift raises a point on screen by this fraction of its height.
	heightLift = 0.6
	// followZoom is the follow camera's magnification over the full-pitch fit.
	followZoom = 1.8
)

// View is a top-down orthographic projection of the pitch. The long axis
// (z) runs left to right with the attacked goal on the right; +x is up.
type View struct {
	W, H   float64 // viewport size in pixels
	CX, CZ float64 // world point at the viewport centre
	Scale  float64 // pixels per world unit
}

// FitView frames the whole field inside a w×h viewport.
func FitView(w, h int) View {
	spanZ := sim.Field.MaxZ - sim.Field.MinZ + 2*viewMargin
	spanX := sim.Field.MaxX - sim.Field.MinX + 2*viewMargin
	return View{
		W:     float64(w),
		H:     float64(h),
		CX:    (sim.Field.MinX + sim.Field.MaxX) / 2,
		CZ:    (sim.Field.MinZ + sim.Field.MaxZ) / 2,
		Scale: math.Min(float64(w)/spanZ, float64(h)/spanX),
	}
}

// ViewFor picks the projection for the match camera. Broadcast shows the
// whole pitch; follow zooms in on where the camera is looking.
func ViewFor(cam sim.Camera, w, h int) View {
	v := FitView(w, h)
	if cam.Mode != sim.CameraFollow {
		return v
	}
	v.Scale *= followZoom
	v.CZ = clampCentre(cam.LookAt.Z, sim.Field.MinZ-viewMargin, sim.Field.MaxZ+viewMargin, v.W/2/v.Scale)
	v.CX = clampCentre(cam.LookAt.X, sim.Field.MinX-viewMargin, sim.Field.MaxX+viewMargin, v.H/2/v.Scale)
	return v
}

// clampCentre keeps a half-extent window inside [lo, hi]. A window wider
// than the range is centred on it.
func clampCentre(c, lo, hi, half float64) float64 {
	if !isFinite(c) {
		c = (lo + hi) / 2
	}
	if hi-lo <= 2*half {
		return (lo + hi) / 2
	}
	return math.Max(lo+half, math.Min(hi-half, c))
}

// Ground projects p ignoring its height.
func (v View) Ground(p sim.Vec3) (float32, float32) {
	sx := v.W/2 + (p.Z-v.CZ)*v.Scale
	sy := v.H/2 - (p.X-v.CX)*v.Scale
	return float32(sx), float32(sy)
}

// ToScreen projects p, lifting it by its height.
func (v View) ToScreen(p sim.Vec3) (float32, float32) {
	sx, sy := v.Ground(p)
	return sx, sy - float32(p.Y*v.Scale*heightLift)
}

// ToWorld inverts Ground: the pitch point under a viewport pixel.
func (v View) ToWorld(sx, sy float64) sim.Vec3 {
	return sim.Vec3{
		X: v.CX - (sy-v.H/2)/v.Scale,
		Z: v.CZ + (sx-v.W/2)/v.Scale,
	}
}

// Len converts a world length to pixels.
func (v View) Len(d float64) float32 { return float32(d * v.Scale) }

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
