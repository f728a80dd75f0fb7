package object

import (
	"math"
)

// BulletSpeed is the speed of player bullets.
const BulletSpeed = 10.0

// BulletRadius is the collision radius of every bullet.
const BulletRadius = 5.0

// spreadStep is the angle between adjacent bullets of a player fan.
const spreadStep = 0.1

// Bullet is a projectile fired by the player or by the boss.
type Bullet struct {
	X, Y   float64
	Angle  float64 // Heading in radians (0 = right, pi/2 = down)
	Speed  float64
	Radius float64
	Enemy  bool // Fired by the boss
}

// NewBullet creates a player bullet at (x, y) heading in direction angle.
func NewBullet(x, y, angle float64) *Bullet {
	return &Bullet{
		X:      x,
		Y:      y,
		Angle:  angle,
		Speed:  BulletSpeed,
		Radius: BulletRadius,
	}
}

// NewEnemyBullet creates a boss bullet.
func NewEnemyBullet(x, y, angle, speed float64) *Bullet {
	return &Bullet{
		X:      x,
		Y:      y,
		Angle:  angle,
		Speed:  speed,
		Radius: BulletRadius,
		Enemy:  true,
	}
}

// PlayerFan returns count bullets from (x, y) spread symmetrically around
// straight up.
func PlayerFan(x, y float64, count int) []*Bullet {
	if count < 1 {
		count = 1
	}
	bullets := make([]*Bullet, 0, count)
	for i := 0; i < count; i++ {
		offset := (float64(i) - float64(count-1)/2) * spreadStep
		bullets = append(bullets, NewBullet(x, y, -math.Pi/2+offset))
	}
	return bullets
}

// Advance moves the bullet along its heading.
func (b *Bullet) Advance(UpdateContext) {
	b.X += b.Speed * math.Cos(b.Angle)
	b.Y += b.Speed * math.Sin(b.Angle)
}

// IsExpired is true once the bullet leaves the playfield.
func (b *Bullet) IsExpired(s Screen) bool {
	return s.Outside(b.X, b.Y, 0)
}

// Sprite implements Object.
func (b *Bullet) Sprite() Sprite {
	kind := KindBullet
	if b.Enemy {
		kind = KindEnemyBullet
	}
	return Sprite{
		Kind:  kind,
		X:     b.X,
		Y:     b.Y,
		Size:  b.Radius,
		Angle: b.Angle,
		Alpha: 255,
	}
}
