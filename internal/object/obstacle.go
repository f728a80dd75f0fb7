package object

import (
	"math"
	"math/rand"
)

// Obstacle spawn ranges.
const (
	obstacleSpawnY   = -20.0
	obstacleMinSize  = 20.0
	ObstacleMaxSize  = 40.0 // Exclusive upper bound of spawned sizes
	obstacleMinAngle = 45.0 // Degrees; 90 is straight down
	obstacleMaxAngle = 135.0
	obstacleMinSpeed = 2.0
	obstacleMaxSpeed = 5.0
)

// Obstacle is a descending enemy ship the player must dodge or shoot.
type Obstacle struct {
	X, Y   float64 // Position (center)
	VX, VY float64 // Velocity per tick
	Size   float64 // Hit radius
	Angle  float64 // Cosmetic rotation
	Spin   float64 // Cosmetic rotation per tick
	Pulse  float64 // Cosmetic engine glow phase
}

// NewObstacle creates an obstacle moving along heading (degrees) at speed.
func NewObstacle(x, y, size, heading, speed float64) *Obstacle {
	rad := radians(heading)
	return &Obstacle{
		X:    x,
		Y:    y,
		VX:   speed * math.Cos(rad),
		VY:   speed * math.Sin(rad),
		Size: size,
	}
}

// SpawnObstacle creates an obstacle just above the playfield at a random x.
// Gameplay values come from rng; cosmetic ones from noise (which may be nil).
func SpawnObstacle(rng, noise *rand.Rand, s Screen) *Obstacle {
	x := rng.Float64() * s.Width
	size := randRange(rng, obstacleMinSize, ObstacleMaxSize)
	heading := randRange(rng, obstacleMinAngle, obstacleMaxAngle)
	speed := randRange(rng, obstacleMinSpeed, obstacleMaxSpeed)

	o := NewObstacle(x, obstacleSpawnY, size, heading, speed)
	if noise != nil {
		o.Spin = randRange(noise, -0.05, 0.05)
		o.Pulse = noise.Float64() * 2 * math.Pi
	}
	return o
}

// Advance moves the obstacle along its velocity.
func (o *Obstacle) Advance(UpdateContext) {
	o.X += o.VX
	o.Y += o.VY
	o.Angle += o.Spin
	o.Pulse += 0.1
}

// IsExpired is true once the obstacle is fully outside the playfield.
func (o *Obstacle) IsExpired(s Screen) bool {
	return s.Outside(o.X, o.Y, o.Size)
}

// Sprite implements Object.
func (o *Obstacle) Sprite() Sprite {
	return Sprite{
		Kind:  KindObstacle,
		X:     o.X,
		Y:     o.Y,
		Size:  o.Size,
		Angle: o.Angle,
		Alpha: 155 + 100*math.Abs(math.Sin(o.Pulse)),
	}
}
