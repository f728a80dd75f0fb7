// Package object defines the simulation entities: player, obstacles, bullets,
// particles, power-ups, the boss and the background star field.
//
// Entities only integrate their own motion. Anything that involves two
// entities (collisions, spawning effects) is decided by the game package.
package object

import (
	"math"
	"math/rand"
)

// Playfield dimensions in logical units.
const (
	FieldWidth  = 600
	FieldHeight = 800
)

// Screen is the playfield rectangle anchored at the origin.
type Screen struct {
	Width  float64
	Height float64
}

// DefaultScreen returns the standard 600x800 playfield.
func DefaultScreen() Screen {
	return Screen{Width: FieldWidth, Height: FieldHeight}
}

// CenterX returns the horizontal center of the playfield.
func (s Screen) CenterX() float64 {
	return s.Width / 2
}

// Outside reports whether (x, y) has left the rectangle grown by margin on
// every side, i.e. [-margin, Width+margin] x [-margin, Height+margin].
func (s Screen) Outside(x, y, margin float64) bool {
	return x < -margin || x > s.Width+margin || y < -margin || y > s.Height+margin
}

// Spawner allows collaborators to hand new entities to the owning world.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides what an entity needs to advance one tick.
type UpdateContext struct {
	Screen Screen
	// Noise drives cosmetic jitter only. Gameplay randomness never reads it,
	// so tests can seed the two independently.
	Noise *rand.Rand
}

// Object is an entity stored in one of the world's collections.
type Object interface {
	// Advance integrates position and cosmetic phase by one tick.
	Advance(ctx UpdateContext)
	// IsExpired reports whether the entity should be dropped from its collection.
	IsExpired(s Screen) bool
	// Sprite describes the entity for a render sink.
	Sprite() Sprite
}

// Kind identifies what a Sprite depicts.
type Kind int

const (
	KindStar Kind = iota
	KindPlayer
	KindObstacle
	KindBullet
	KindEnemyBullet
	KindParticle
	KindPowerUp
	KindBoss
)

func (k Kind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindPlayer:
		return "player"
	case KindObstacle:
		return "obstacle"
	case KindBullet:
		return "bullet"
	case KindEnemyBullet:
		return "enemy-bullet"
	case KindParticle:
		return "particle"
	case KindPowerUp:
		return "powerup"
	case KindBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// Sprite is the render-facing description of an entity.
type Sprite struct {
	Kind    Kind
	X, Y    float64
	Size    float64 // Radius-like extent
	Angle   float64 // Rotation or heading in radians
	Alpha   float64 // 0..255
	Variant int     // PowerUpType for power-ups, ParticleKind for particles
	Flash   bool    // Boss invulnerability or player shield
}

// randRange returns a uniform value in [lo, hi).
func randRange(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// radians converts degrees to radians.
func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
