package sim

import "math"

const (
	trailLen         = 20
	particleGravity  = 6.0
	particleDrag     = 0.96
	maxParticles     = 400
	particleHeatLvls = 4
)

// Particle is one spark of the fire tail behind a ball in flight.
type Particle struct {
	Pos     Vec3
	Vel     Vec3
	Life    float64 // seconds left
	MaxLife float64
	Size    float64
	Heat    int // palette index, 0 hottest
}

// Fade is the remaining life fraction in [0,1].
func (p Particle) Fade() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return clamp(p.Life/p.MaxLife, 0, 1)
}

// emitTrail records the ball trail and, on even hundredths of flight time,
// sprays a burst of sparks out behind the ball.
func (m *Match) emitTrail(t float64) {
	m.Trail = append(m.Trail, m.Ball.Pos)
	if len(m.Trail) > trailLen {
		m.Trail = m.Trail[len(m.Trail)-trailLen:]
	}
	if int(math.Floor(t*100))%2 != 0 {
		return
	}
	back := m.Ball.Dir.Scale(-1).Normalize()
	n := 6 + m.rng.Intn(3)
	for i := 0; i < n && len(m.Particles) < maxParticles; i++ {
		spread := Vec3{
			X: m.rng.Float64() - 0.5,
			Y: m.rng.Float64() - 0.5,
			Z: m.rng.Float64() - 0.5,
		}
		life := 0.5 + m.rng.Float64()*0.3
		m.Particles = append(m.Particles, Particle{
			Pos:     m.Ball.Pos.Add(back.Scale(0.5)),
			Vel:     back.Scale(8 + m.rng.Float64()*6).Add(spread.Scale(4)),
			Life:    life,
			MaxLife: life,
			Size:    0.4 + m.rng.Float64()*0.3,
			Heat:    m.rng.Intn(particleHeatLvls),
		})
	}
}

// stepParticles ages, moves and drops sparks.
func (m *Match) stepParticles(dt float64) {
	live := m.Particles[:0]
	for _, p := range m.Particles {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.Vel.Y -= particleGravity * dt
		p.Vel = p.Vel.Scale(particleDrag)
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		live = append(live, p)
	}
	m.Particles = live
}
