package loop

import (
	"math"

	"github.com/tomz197/skydodge/internal/draw"
	"github.com/tomz197/skydodge/internal/object"
)

// powerUpGlyphs label power-ups on the terminal, indexed by PowerUpType.
var powerUpGlyphs = [...]string{
	object.SpreadShot: "W",
	object.RapidFire:  "R",
	object.Shield:     "O",
	object.SpeedBoost: "S",
}

// particleColors by object.ParticleKind.
var particleColors = [...]draw.Color{
	object.ParticleExplosion: draw.ColorOrange,
	object.ParticleSpark:     draw.ColorYellow,
	object.ParticleShield:    draw.ColorGreen,
	object.ParticleTrail:     draw.ColorPurple,
}

// powerUpColors by object.PowerUpType.
var powerUpColors = [...]draw.Color{
	object.SpreadShot: draw.ColorYellow,
	object.RapidFire:  draw.ColorOrange,
	object.Shield:     draw.ColorGreen,
	object.SpeedBoost: draw.ColorBlue,
}

// label is text drawn over the canvas at a logical position.
type label struct {
	x, y float64
	text string
}

// canvasSink draws sprites as half-block shapes. Text labels are collected
// and written after the canvas so they stay on top.
type canvasSink struct {
	canvas *draw.Canvas
	labels []label
}

// DrawSprite implements game.Sink.
func (s *canvasSink) DrawSprite(sp object.Sprite) {
	c := s.canvas
	center := draw.Point{X: sp.X, Y: sp.Y}

	switch sp.Kind {
	case object.KindStar:
		if col := draw.Dim(draw.ColorWhite, sp.Alpha); col != draw.ColorNone {
			c.SetColor(col)
			c.SetFloat(sp.X, sp.Y)
		}
	case object.KindParticle:
		col := draw.ColorOrange
		if sp.Variant >= 0 && sp.Variant < len(particleColors) {
			col = particleColors[sp.Variant]
		}
		if col = draw.Dim(col, sp.Alpha); col != draw.ColorNone {
			c.SetColor(col)
			c.SetFloat(sp.X, sp.Y)
		}
	case object.KindPlayer:
		c.SetColor(draw.ColorCyan)
		c.DrawPolygon(c.RegularPolygon(center, sp.Size, -math.Pi/2, 3), true)
		c.SetColor(draw.ColorOrange)
		c.DrawLine(draw.Point{X: sp.X, Y: sp.Y + sp.Size/2}, draw.Point{X: sp.X, Y: sp.Y + sp.Size/2 + sp.Angle})
		if sp.Flash {
			c.SetColor(draw.ColorGreen)
			c.DrawCircle(center, sp.Size*1.5, false)
		}
	case object.KindObstacle:
		c.SetColor(draw.Dim(draw.ColorOrange, sp.Alpha))
		c.DrawPolygon(c.RegularPolygon(center, sp.Size, sp.Angle, 6), false)
	case object.KindBullet:
		c.SetColor(draw.ColorYellow)
		c.DrawCircle(center, sp.Size, true)
	case object.KindEnemyBullet:
		c.SetColor(draw.ColorRed)
		c.DrawPolygon(c.RegularPolygon(center, sp.Size+2, math.Pi/4, 4), true)
	case object.KindPowerUp:
		if sp.Variant < 0 || sp.Variant >= len(powerUpColors) {
			return
		}
		c.SetColor(powerUpColors[sp.Variant])
		c.DrawPolygon(c.RegularPolygon(center, sp.Size, sp.Angle, 4), false)
		s.labels = append(s.labels, label{x: sp.X, y: sp.Y, text: powerUpGlyphs[sp.Variant]})
	case object.KindBoss:
		s.drawBoss(sp, center)
	}
}

// drawBoss draws the hull with two flapping wings. The hull is hollow while
// the boss is invulnerable.
func (s *canvasSink) drawBoss(sp object.Sprite, center draw.Point) {
	c := s.canvas
	if sp.Flash {
		c.SetColor(draw.ColorWhite)
	} else {
		c.SetColor(draw.ColorMagenta)
	}
	c.DrawPolygon(c.RegularPolygon(center, sp.Size, math.Pi/8, 8), !sp.Flash)
	c.SetColor(draw.ColorPurple)

	flap := sp.Size * 0.4 * math.Sin(sp.Angle)
	for _, side := range [...]float64{-1, 1} {
		root := draw.Point{X: sp.X + side*sp.Size, Y: sp.Y}
		tip := draw.Point{X: sp.X + side*sp.Size*1.8, Y: sp.Y + flap}
		c.DrawLine(root, tip)
		c.DrawLine(tip, draw.Point{X: tip.X - side*sp.Size*0.3, Y: tip.Y + sp.Size*0.5})
	}
}

// writeLabels writes collected labels over the rendered canvas.
func (s *canvasSink) writeLabels(cw *draw.ChunkWriter) {
	for _, l := range s.labels {
		col, row := s.canvas.LogicalToTerminal(l.x, l.y)
		if col < 1 || row < 1 || col+len(l.text)-1 > s.canvas.TerminalWidth() || row > s.canvas.TerminalHeight() {
			continue
		}
		cw.WriteAt(col, row, l.text)
	}
	s.labels = s.labels[:0]
}
