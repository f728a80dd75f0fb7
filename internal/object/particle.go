package object

import (
	"math"
	"math/rand"
	"sync"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// ParticleKind selects the decay rate and look of a particle.
type ParticleKind int

const (
	ParticleExplosion ParticleKind = iota // Obstacle kills and ship loss
	ParticleSpark                         // Boss hit feedback
	ParticleShield                        // Shield absorbing a hit
	ParticleTrail                         // Boss entry exhaust
)

// particleStyle holds the per-kind constants.
type particleStyle struct {
	speed float64 // Max velocity per axis (or ring speed for shields)
	decay float64 // Alpha lost per tick
	size  float64
}

func (k ParticleKind) style() particleStyle {
	switch k {
	case ParticleSpark:
		return particleStyle{speed: 5, decay: 8, size: 3}
	case ParticleShield:
		return particleStyle{speed: 3, decay: 6, size: 3}
	case ParticleTrail:
		return particleStyle{speed: 0.5, decay: 12, size: 6}
	default:
		return particleStyle{speed: 3, decay: 5, size: 4}
	}
}

// Particle is a short-lived visual effect that fades out.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Alpha  float64 // Starts at 255; removed once below zero
	Decay  float64
	Size   float64
	Kind   ParticleKind
}

// NewParticle creates a single particle from the pool.
func NewParticle(kind ParticleKind, x, y, vx, vy float64) *Particle {
	st := kind.style()
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Alpha = 255
	p.Decay = st.decay
	p.Size = st.size
	p.Kind = kind
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnBurst creates count particles of the given kind at (x, y).
// Explosions, sparks and trails scatter randomly; shield particles form an
// expanding ring.
func SpawnBurst(kind ParticleKind, x, y float64, count int, noise *rand.Rand, spawner Spawner) {
	if spawner == nil || count <= 0 {
		return
	}
	st := kind.style()

	for i := 0; i < count; i++ {
		var vx, vy float64
		switch kind {
		case ParticleShield:
			angle := float64(i) * 2 * math.Pi / float64(count)
			vx = math.Cos(angle) * st.speed
			vy = math.Sin(angle) * st.speed
		case ParticleTrail:
			vx = randRange(noise, -st.speed, st.speed)
			vy = -randRange(noise, 0, 2*st.speed)
		default:
			vx = randRange(noise, -st.speed, st.speed)
			vy = randRange(noise, -st.speed, st.speed)
		}
		spawner.Spawn(NewParticle(kind, x, y, vx, vy))
	}
}

// Advance moves the particle and fades it.
func (p *Particle) Advance(UpdateContext) {
	p.X += p.VX
	p.Y += p.VY
	p.Alpha -= p.Decay
}

// IsExpired is true once the particle has fully faded.
func (p *Particle) IsExpired(Screen) bool {
	return p.Alpha < 0
}

// Sprite implements Object.
func (p *Particle) Sprite() Sprite {
	return Sprite{
		Kind:    KindParticle,
		X:       p.X,
		Y:       p.Y,
		Size:    p.Size,
		Alpha:   math.Max(p.Alpha, 0),
		Variant: int(p.Kind),
	}
}
