package sim

import "math"

// Pose is the cosmetic body state a renderer needs to animate an agent.
// Angles are radians. Pitch leans forward, Roll tilts sideways and Lift
// raises a keeper off the turf during a dive or jump.
type Pose struct {
	Pitch float64
	Roll  float64
	Lift  float64

	ArmLUpper, ArmRUpper float64
	ArmLFore, ArmRFore   float64
	ThighL, ThighR       float64
	CalfL, CalfR         float64
}

const (
	strideRate = 2.2
	armSwing   = 0.65
	thighSwing = 0.7
)

// run drives the limbs from elapsed time at a stride frequency that scales
// with speed. Calves only ever bend backward.
func (p *Pose) run(now, speed float64) {
	t := now * speed * strideRate
	swingL := math.Sin(t) * armSwing
	swingR := math.Sin(t+math.Pi) * armSwing
	p.ArmLUpper = swingL
	p.ArmRUpper = swingR
	p.ArmLFore = -0.3 - math.Max(0.25, math.Abs(swingL)*0.5)
	p.ArmRFore = -0.3 - math.Max(0.25, math.Abs(swingR)*0.5)

	p.ThighL = math.Sin(t+math.Pi) * thighSwing
	p.ThighR = math.Sin(t) * thighSwing
	p.CalfL = math.Max(0, p.ThighL*0.9+0.3)
	p.CalfR = math.Max(0, p.ThighR*0.9+0.3)
}

// settleLimbs decays every joint toward rest by factor f.
func (p *Pose) settleLimbs(f float64) {
	p.ArmLUpper *= f
	p.ArmRUpper *= f
	p.ArmLFore *= f
	p.ArmRFore *= f
	p.ThighL *= f
	p.ThighR *= f
	p.CalfL *= f
	p.CalfR *= f
}

// keeperReach sets arm and lean poses for a keeper running at a ball in
// flight: punch or dive when close, arms ready at medium range.
func (p *Pose) keeperReach(keeper, ball Vec3) {
	d := keeper.Dist(ball)
	h := ball.Y
	switch {
	case d < 5:
		if h > 1.2 {
			p.ArmLUpper, p.ArmRUpper = -1.5, -1.5
			p.ArmLFore, p.ArmRFore = 0.3, 0.3
			p.Pitch = 0.25
		} else {
			p.Pitch = math.Pi / 3.5
			p.ArmLUpper, p.ArmRUpper = 0.8, 0.8
			p.ArmLFore, p.ArmRFore = -0.5, -0.5
		}
	case d < 10:
		if h > 0.8 {
			p.ArmLUpper, p.ArmRUpper = -0.8, -0.8
			p.ArmLFore, p.ArmRFore = 0.1, 0.1
		}
		p.Pitch = math.Min(0.25, 0.25*(1-d/10))
	default:
		p.Pitch *= 0.88
		p.ArmLUpper *= 0.88
		p.ArmRUpper *= 0.88
	}
}

// keeperDive poses a keeper tracking an incoming shot from the ball's
// height and lateral offset: jump for a high ball, dive sideways for a wide
// one, ready stance when nearly lined up, settle otherwise.
func (p *Pose) keeperDive(keeper, ball Vec3) {
	relX := ball.X - keeper.X
	relZ := ball.Z - keeper.Z
	horiz := math.Hypot(relX, relZ)
	h := ball.Y
	side := 1.0
	if relX <= 0 {
		side = -1
	}

	switch {
	case h > 1.5 && horiz < 12:
		p.Pitch = math.Min(0.55, 0.4+(h-1.5)*0.15)
		p.Roll = 0
		p.Lift = math.Min(2.5, 0.3+(h-1.5)*0.4)
	case horiz > 2.5:
		dive := math.Min(math.Pi/2.5, 0.3+horiz*0.06)
		p.Pitch = 0.15
		p.Roll = side * dive
		p.Lift = math.Min(1.2, 0.1+horiz*0.05)
	case horiz > 0.8:
		p.Pitch = 0.1
		p.Roll = side * 0.08
		p.Lift *= 0.92
	default:
		p.Pitch *= 0.88
		p.Roll *= 0.88
		p.Lift *= 0.88
	}
}
