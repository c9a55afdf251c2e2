package sim

import (
	"errors"
	"fmt"
	"math"
)

const (
	minGestureDist    = 0.5
	curveSamples      = 60
	minFlightTime     = 0.35
	midBend           = 1.2
	loftThreshold     = 0.3
	loftFactor        = 0.4
	maxIgnoreWindow   = 0.28
	ignoreFraction    = 0.22
	shotLineTolerance = 1.0
)

// Kind distinguishes a pass from a shot on goal.
type Kind int

const (
	KindPass Kind = iota
	KindShot
)

func (k Kind) String() string {
	if k == KindShot {
		return "shot"
	}
	return "pass"
}

// Trajectory is an immutable flight plan built from a user gesture.
type Trajectory struct {
	Curve     *Curve
	Start     Vec3
	Mid       Vec3
	End       Vec3
	Kind      Kind
	Lateral   float64 // clamped signed perpendicular deviation
	MaxDev    float64 // clamp bound used for Lateral
	ArcHeight float64 // per-shot hump added on top of the curve
	Distance  float64 // straight start-to-end distance
	Length    float64 // sampled arc length
	Speed     float64
	StartTime float64
	Duration  float64
}

// T maps a match time to normalised flight time in [0,1].
func (tr *Trajectory) T(now float64) float64 {
	if tr.Duration <= 0 {
		return 1
	}
	return clamp((now-tr.StartTime)/tr.Duration, 0, 1)
}

// Position returns the ball position at normalised time t: the curve point
// plus a single sine hump of ArcHeight.
func (tr *Trajectory) Position(t float64) Vec3 {
	p := tr.Curve.Point(t)
	p.Y += tr.ArcHeight * math.Sin(t*math.Pi)
	return p
}

// IgnoreWindow is how long the issuer is exempt from touching the ball.
func (tr *Trajectory) IgnoreWindow() float64 {
	return math.Min(maxIgnoreWindow, tr.Duration*ignoreFraction)
}

// GestureReason explains why a gesture was rejected.
type GestureReason int

const (
	GestureTooFewPoints GestureReason = iota
	GestureTooShort
	GestureNotHolder
	GestureNotPaused
)

func (r GestureReason) String() string {
	switch r {
	case GestureTooFewPoints:
		return "too_few_points"
	case GestureTooShort:
		return "too_short"
	case GestureNotHolder:
		return "not_holder"
	case GestureNotPaused:
		return "not_paused"
	default:
		return "unknown"
	}
}

// GestureError is returned for a gesture that cannot become a trajectory.
type GestureError struct {
	Reason GestureReason
	Points int
	Dist   float64
}

func (e *GestureError) Error() string {
	return fmt.Sprintf("gesture rejected: %s (points=%d dist=%.2f)", e.Reason, e.Points, e.Dist)
}

// ErrGesture matches any *GestureError with errors.Is.
var ErrGesture = errors.New("gesture rejected")

func (e *GestureError) Is(target error) bool { return target == ErrGesture }

// BuildTrajectory turns a freehand ground gesture into a flight plan starting
// at start (the ball position). The last gesture point is clamped to the
// field before use.
func BuildTrajectory(start Vec3, gesture []Vec3, now float64) (*Trajectory, error) {
	if len(gesture) < 2 {
		return nil, &GestureError{Reason: GestureTooFewPoints, Points: len(gesture)}
	}
	end := ClampToField(gesture[len(gesture)-1])

	straight := end.Sub(start)
	straight.Y = 0
	dist := straight.Len()
	if dist < minGestureDist {
		return nil, &GestureError{Reason: GestureTooShort, Points: len(gesture), Dist: dist}
	}
	dir := straight.Scale(1 / dist)
	perp := Vec3{X: -dir.Z, Z: dir.X}

	maxOffset := 0.0
	for _, p := range gesture {
		off := perp.Dot(p.Sub(start))
		if math.Abs(off) > math.Abs(maxOffset) {
			maxOffset = off
		}
	}
	maxDev := math.Max(6, math.Min(18, dist*0.5))
	lateral := clamp(maxOffset, -maxDev, maxDev)

	mid := start.Add(dir.Scale(dist * 0.5)).Add(perp.Scale(lateral * midBend))
	mid.Y = (start.Y + end.Y) * 0.5
	curvature := math.Abs(lateral) / maxDev
	if curvature > loftThreshold {
		mid.Y += curvature * dist * loftFactor
	}

	kind := KindPass
	if end.Z >= Goal.Z-shotLineTolerance {
		kind = KindShot
	}

	curve := NewCurve(start, mid, end)
	length := curve.Length(curveSamples)
	speed := flightSpeed(kind, dist)
	return &Trajectory{
		Curve:     curve,
		Start:     start,
		Mid:       mid,
		End:       end,
		Kind:      kind,
		Lateral:   lateral,
		MaxDev:    maxDev,
		ArcHeight: arcHeight(kind, dist),
		Distance:  dist,
		Length:    length,
		Speed:     speed,
		StartTime: now,
		Duration:  math.Max(minFlightTime, length/speed),
	}, nil
}

func flightSpeed(kind Kind, dist float64) float64 {
	if kind == KindShot {
		return clamp(16+dist*0.45, 15, 24)
	}
	return clamp(12+dist*0.6, 12, 22)
}

func arcHeight(kind Kind, dist float64) float64 {
	if kind == KindShot {
		return clamp(dist*0.11, 0.6, 7.5)
	}
	return clamp(dist*0.08, 0.6, 6.0)
}
