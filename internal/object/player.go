package object

import "github.com/tomz197/skydodge/internal/physics"

// Player movement and geometry.
const (
	PlayerSpeed      = 5.0
	PlayerBoostSpeed = 8.0
	PlayerPadding    = 20.0 // Effective radius used in every player collision test
	playerStartInset = 50.0 // Distance from the bottom edge at spawn
)

// Player is the ship steered by the input intent.
type Player struct {
	X, Y      float64
	HSpeed    int     // Horizontal intent: -1, 0 or 1
	VSpeed    int     // Vertical intent: -1, 0 or 1
	Speed     float64 // Units per tick per unit of intent
	Destroyed bool
	Shielded  bool    // Mirrors the shield effect for rendering
	Flame     float64 // Cosmetic exhaust length
}

// NewPlayer creates a player at (x, y) with the base speed.
func NewPlayer(x, y float64) *Player {
	return &Player{
		X:     x,
		Y:     y,
		Speed: PlayerSpeed,
	}
}

// NewPlayerAtStart creates a player at the bottom-center spawn point.
func NewPlayerAtStart(s Screen) *Player {
	return NewPlayer(s.CenterX(), s.Height-playerStartInset)
}

// SetDir sets the per-axis intent. Values outside -1..1 are clamped.
func (p *Player) SetDir(h, v int) {
	p.HSpeed = clampUnit(h)
	p.VSpeed = clampUnit(v)
}

// MoveTo places the ship at an absolute pointer position.
func (p *Player) MoveTo(x, y float64) {
	p.X = x
	p.Y = y
}

// Advance applies the intent and keeps the ship inside the padded playfield.
func (p *Player) Advance(ctx UpdateContext) {
	p.X += float64(p.HSpeed) * p.Speed
	p.Y += float64(p.VSpeed) * p.Speed
	p.X = physics.Clamp(p.X, PlayerPadding, ctx.Screen.Width-PlayerPadding)
	p.Y = physics.Clamp(p.Y, PlayerPadding, ctx.Screen.Height-PlayerPadding)

	if ctx.Noise != nil {
		p.Flame = randRange(ctx.Noise, 10, 15)
	}
}

// IsExpired is true once the ship has been destroyed.
func (p *Player) IsExpired(Screen) bool {
	return p.Destroyed
}

// Sprite implements Object.
func (p *Player) Sprite() Sprite {
	return Sprite{
		Kind:  KindPlayer,
		X:     p.X,
		Y:     p.Y,
		Size:  PlayerPadding,
		Alpha: 255,
		Angle: p.Flame,
		Flash: p.Shielded,
	}
}

func clampUnit(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
