package game

import "math/rand"

const trailMaxParticles = 256

// TrailParticle is a single billboard puff behind a bullet
type TrailParticle struct {
	Pos  Vec3
	Vel  Vec3
	Size float64
	Rot  float64
	TTL  float64
	Life float64
}

// AlphaFraction returns the remaining-life fraction used for the fade-out
func (p *TrailParticle) AlphaFraction() float64 {
	if p.TTL <= 0 {
		return 0
	}
	return clamp(p.Life/p.TTL, 0, 1)
}

// TrailEmitter produces the exhaust trail behind a bullet. Purely visual:
// nothing in the simulation reads the particles back.
type TrailEmitter struct {
	Texture  TextureID
	Additive bool

	SpawnRate float64
	BaseSize  float64
	Grow      float64
	Damping   float64
	Speed     float64

	accum     float64
	particles []TrailParticle
	rng       *rand.Rand
}

// NewTrailEmitter creates an emitter with the stock exhaust tuning
func NewTrailEmitter(tex TextureID, additive bool, rng *rand.Rand) *TrailEmitter {
	return &TrailEmitter{
		Texture:   tex,
		Additive:  additive,
		SpawnRate: 60.0,
		BaseSize:  1.5,
		Grow:      1.5,
		Damping:   0.92,
		Speed:     2.2,
		rng:       rng,
	}
}

// Emit spawns new particles at origin drifting against dir, at the
// configured rate with a fractional accumulator
func (e *TrailEmitter) Emit(origin, dir Vec3, dt float64) {
	if e == nil {
		return
	}
	e.accum += e.SpawnRate * dt
	for e.accum >= 1.0 && len(e.particles) < trailMaxParticles {
		jitter := Vec3{
			X: randFloatInRange(e.rng, -0.25, 0.25),
			Y: randFloatInRange(e.rng, -0.25, 0.25),
			Z: randFloatInRange(e.rng, -0.25, 0.25),
		}
		ttl := randFloatInRange(e.rng, 0.35, 0.55)
		e.particles = append(e.particles, TrailParticle{
			Pos:  origin,
			Vel:  dir.Scale(-e.Speed).Add(jitter),
			Size: e.BaseSize * randFloatInRange(e.rng, 0.9, 1.2),
			Rot:  randFloatInRange(e.rng, 0, 360),
			TTL:  ttl,
			Life: ttl,
		})
		e.accum -= 1.0
	}
}

// Update integrates and ages every particle, dropping expired ones
func (e *TrailEmitter) Update(dt float64) {
	if e == nil {
		return
	}
	alive := e.particles[:0]
	for i := range e.particles {
		p := e.particles[i]
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		p.Vel = p.Vel.Scale(e.Damping)
		p.Size += e.Grow * dt
		p.Life -= dt
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	e.particles = alive
}

// Particles exposes the live particles to the draw layer
func (e *TrailEmitter) Particles() []TrailParticle {
	if e == nil {
		return nil
	}
	return e.particles
}
