package object

import "math/rand"

// PowerUpType identifies the effect a power-up grants.
type PowerUpType int

const (
	SpreadShot PowerUpType = iota
	RapidFire
	Shield
	SpeedBoost

	numPowerUpTypes
)

// PowerUpTypes lists every power-up type in declaration order.
var PowerUpTypes = [...]PowerUpType{SpreadShot, RapidFire, Shield, SpeedBoost}

func (t PowerUpType) String() string {
	switch t {
	case SpreadShot:
		return "spreadShot"
	case RapidFire:
		return "rapidFire"
	case Shield:
		return "shield"
	case SpeedBoost:
		return "speedBoost"
	default:
		return "unknown"
	}
}

// Power-up geometry and motion.
const (
	PowerUpSize  = 15.0
	powerUpDrift = 2.0
	powerUpSpin  = 0.1
)

// PowerUp is a collectible that drifts down the playfield.
type PowerUp struct {
	X, Y     float64
	VY       float64
	Size     float64
	Angle    float64 // Cosmetic rotation
	Type     PowerUpType
	Duration int // Effect length in ticks once collected
}

// NewPowerUp creates a power-up at (x, y).
func NewPowerUp(x, y float64, typ PowerUpType, duration int) *PowerUp {
	return &PowerUp{
		X:        x,
		Y:        y,
		VY:       powerUpDrift,
		Size:     PowerUpSize,
		Type:     typ,
		Duration: duration,
	}
}

// SpawnPowerUp creates a power-up of a random type in the upper half of the playfield.
func SpawnPowerUp(rng *rand.Rand, s Screen, duration int) *PowerUp {
	x := rng.Float64() * s.Width
	y := rng.Float64() * s.Height / 2
	typ := PowerUpType(rng.Intn(int(numPowerUpTypes)))
	return NewPowerUp(x, y, typ, duration)
}

// Advance drifts the power-up downward.
func (p *PowerUp) Advance(UpdateContext) {
	p.Y += p.VY
	p.Angle += powerUpSpin
}

// IsExpired is true once the power-up falls below the playfield.
func (p *PowerUp) IsExpired(s Screen) bool {
	return p.Y > s.Height
}

// Sprite implements Object.
func (p *PowerUp) Sprite() Sprite {
	return Sprite{
		Kind:    KindPowerUp,
		X:       p.X,
		Y:       p.Y,
		Size:    p.Size,
		Angle:   p.Angle,
		Alpha:   255,
		Variant: int(p.Type),
	}
}
