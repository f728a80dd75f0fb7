package desktop

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/skydodge/internal/game"
	"github.com/tomz197/skydodge/internal/object"
)

// The debug font is 6x16 pixels per character.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

var (
	backgroundColor  = color.RGBA{R: 8, G: 8, B: 20, A: 255}
	playerColor      = color.RGBA{R: 90, G: 200, B: 255, A: 255}
	shieldColor      = color.RGBA{R: 120, G: 255, B: 200, A: 255}
	flameColor       = color.RGBA{R: 255, G: 150, B: 40, A: 255}
	obstacleColor    = color.RGBA{R: 200, G: 120, B: 80, A: 255}
	bulletColor      = color.RGBA{R: 255, G: 240, B: 120, A: 255}
	enemyBulletColor = color.RGBA{R: 255, G: 70, B: 90, A: 255}
	bossColor        = color.RGBA{R: 170, G: 60, B: 200, A: 255}
	bossFlashColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	hudBarColor      = color.RGBA{R: 40, G: 40, B: 60, A: 255}
	hudFillColor     = color.RGBA{R: 90, G: 200, B: 255, A: 255}
	bossBarColor     = color.RGBA{R: 220, G: 60, B: 90, A: 255}
	overlayColor     = color.RGBA{R: 0, G: 0, B: 0, A: 160}
)

// particleColors by object.ParticleKind.
var particleColors = [...]color.RGBA{
	object.ParticleExplosion: {R: 255, G: 160, B: 60},
	object.ParticleSpark:     {R: 255, G: 255, B: 160},
	object.ParticleShield:    {R: 120, G: 255, B: 200},
	object.ParticleTrail:     {R: 200, G: 110, B: 255},
}

// powerUpColors by object.PowerUpType.
var powerUpColors = [...]color.RGBA{
	object.SpreadShot: {R: 255, G: 220, B: 60, A: 255},
	object.RapidFire:  {R: 255, G: 90, B: 60, A: 255},
	object.Shield:     {R: 120, G: 255, B: 200, A: 255},
	object.SpeedBoost: {R: 90, G: 160, B: 255, A: 255},
}

var powerUpLetters = [...]string{
	object.SpreadShot: "W",
	object.RapidFire:  "R",
	object.Shield:     "O",
	object.SpeedBoost: "S",
}

// withAlpha returns c with the sprite alpha (0..255) applied.
func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	a := uint8(math.Max(0, math.Min(255, alpha)))
	// Premultiplied
	return color.RGBA{
		R: uint8(uint16(c.R) * uint16(a) / 255),
		G: uint8(uint16(c.G) * uint16(a) / 255),
		B: uint8(uint16(c.B) * uint16(a) / 255),
		A: a,
	}
}

// vectorSink draws sprites with ebiten's vector package.
type vectorSink struct {
	dst *ebiten.Image
}

// DrawSprite implements game.Sink.
func (s vectorSink) DrawSprite(sp object.Sprite) {
	x, y, r := float32(sp.X), float32(sp.Y), float32(sp.Size)

	switch sp.Kind {
	case object.KindStar:
		vector.DrawFilledRect(s.dst, x, y, 2, 2, withAlpha(color.RGBA{R: 220, G: 220, B: 255}, sp.Alpha), false)
	case object.KindParticle:
		c := particleColors[object.ParticleExplosion]
		if sp.Variant >= 0 && sp.Variant < len(particleColors) {
			c = particleColors[sp.Variant]
		}
		vector.DrawFilledCircle(s.dst, x, y, max(r, 1.5), withAlpha(c, sp.Alpha), true)
	case object.KindPlayer:
		s.polygon(sp.X, sp.Y, sp.Size, -math.Pi/2, 3, 2, playerColor)
		vector.StrokeLine(s.dst, x, y+r/2, x, y+r/2+float32(sp.Angle), 3, flameColor, true)
		if sp.Flash {
			vector.StrokeCircle(s.dst, x, y, r*1.5, 2, shieldColor, true)
		}
	case object.KindObstacle:
		s.polygon(sp.X, sp.Y, sp.Size, sp.Angle, 6, 2, withAlpha(obstacleColor, sp.Alpha))
	case object.KindBullet:
		vector.DrawFilledCircle(s.dst, x, y, r, bulletColor, true)
	case object.KindEnemyBullet:
		vector.DrawFilledCircle(s.dst, x, y, r, enemyBulletColor, true)
	case object.KindPowerUp:
		c := powerUpColors[object.SpreadShot]
		letter := "?"
		if sp.Variant >= 0 && sp.Variant < len(powerUpColors) {
			c = powerUpColors[sp.Variant]
			letter = powerUpLetters[sp.Variant]
		}
		s.polygon(sp.X, sp.Y, sp.Size, sp.Angle, 4, 2, c)
		ebitenutil.DebugPrintAt(s.dst, letter, int(sp.X)-glyphWidth/2, int(sp.Y)-glyphHeight/2)
	case object.KindBoss:
		c := bossColor
		if sp.Flash && time.Now().UnixMilli()/100%2 == 0 {
			c = bossFlashColor
		}
		vector.DrawFilledCircle(s.dst, x, y, r, c, true)
		flap := sp.Size * 0.4 * math.Sin(sp.Angle)
		for _, side := range [...]float64{-1, 1} {
			rootX, tipX := sp.X+side*sp.Size, sp.X+side*sp.Size*1.8
			vector.StrokeLine(s.dst, float32(rootX), y, float32(tipX), float32(sp.Y+flap), 6, c, true)
		}
	}
}

// polygon strokes a regular n-gon of radius r.
func (s vectorSink) polygon(cx, cy, r, angle float64, n int, width float32, c color.Color) {
	px, py := cx+r*math.Cos(angle), cy+r*math.Sin(angle)
	for i := 1; i <= n; i++ {
		a := angle + 2*math.Pi*float64(i)/float64(n)
		x, y := cx+r*math.Cos(a), cy+r*math.Sin(a)
		vector.StrokeLine(s.dst, float32(px), float32(py), float32(x), float32(y), width, c, true)
		px, py = x, y
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(dst *ebiten.Image) {
	dst.Fill(backgroundColor)
	g.world.Render(vectorSink{dst: dst})

	status := g.world.Status()
	switch g.screen {
	case screenTitle:
		g.drawTitle(dst)
	case screenPlaying:
		g.drawHUD(dst, status)
	case screenOver:
		g.drawHUD(dst, status)
		g.drawGameOver(dst, status)
	}
}

// printCentered prints each line centered horizontally, starting at y.
func printCentered(dst *ebiten.Image, y int, lines ...string) {
	w := dst.Bounds().Dx()
	for i, line := range lines {
		ebitenutil.DebugPrintAt(dst, line, (w-len(line)*glyphWidth)/2, y+i*glyphHeight)
	}
}

func (g *Game) drawTitle(dst *ebiten.Image) {
	h := dst.Bounds().Dy()
	printCentered(dst, h/3,
		"S K Y D O D G E",
		"",
		"Arrows / WASD   move",
		"Left mouse      steer to cursor",
		"Space / R mouse fire",
		"R               restart",
		"Q               quit",
	)
	if time.Now().UnixMilli()/600%2 == 0 {
		printCentered(dst, h/3+9*glyphHeight, ">> Press SPACE to start <<")
	}
}

// bar draws a horizontal gauge filled to value/total.
func bar(dst *ebiten.Image, x, y, w, h float32, value, total int, fill color.Color) {
	vector.DrawFilledRect(dst, x, y, w, h, hudBarColor, false)
	if total > 0 {
		frac := float32(min(max(value, 0), total)) / float32(total)
		vector.DrawFilledRect(dst, x, y, w*frac, h, fill, false)
	}
}

func (g *Game) drawHUD(dst *ebiten.Image, status game.Status) {
	w := float32(dst.Bounds().Dx())

	line := fmt.Sprintf("SCORE %d   LEVEL %d", status.Score, status.Level)
	if status.Combo > 1 {
		line += fmt.Sprintf("   COMBO x%d", status.Combo)
	}
	ebitenutil.DebugPrintAt(dst, line, 8, 4)
	bar(dst, 8, 24, 120, 6, status.LevelProgress, status.LevelThreshold, hudFillColor)

	var effects []string
	for _, e := range status.Effects {
		secs := (e.Remaining + game.TicksPerSecond - 1) / game.TicksPerSecond
		effects = append(effects, fmt.Sprintf("%s %ds", e.Type, secs))
	}
	if len(effects) > 0 {
		ebitenutil.DebugPrintAt(dst, strings.Join(effects, "  "), 8, dst.Bounds().Dy()-glyphHeight-4)
	}

	switch status.Phase {
	case game.EncounterWarning:
		if status.WarningLeft/15%2 == 0 {
			printCentered(dst, dst.Bounds().Dy()/3, "!! WARNING !!", "BOSS APPROACHING")
		}
	case game.EncounterEntering, game.EncounterActive:
		ebitenutil.DebugPrintAt(dst, "BOSS", int(w)-170, 4)
		bar(dst, w-136, 8, 128, 8, status.BossMaxHits-status.BossHits, status.BossMaxHits, bossBarColor)
	}
}

func (g *Game) drawGameOver(dst *ebiten.Image, status game.Status) {
	b := dst.Bounds()
	vector.DrawFilledRect(dst, 0, float32(b.Dy()/3-glyphHeight), float32(b.Dx()), 9*glyphHeight, overlayColor, false)

	lines := []string{
		"G A M E   O V E R",
		"",
		fmt.Sprintf("Score %d   Level %d", status.Score, status.Level),
		"",
	}
	switch {
	case g.prompt.Editing():
		cursor := " "
		if time.Now().UnixMilli()/400%2 == 0 {
			cursor = "_"
		}
		lines = append(lines, "Name: "+g.prompt.ID()+cursor, "", "ENTER submit   ESC cancel")
	case g.prompt.Message() != "":
		lines = append(lines, g.prompt.Message(), "", "R restart   Q quit")
	case g.prompt.CanSubmit():
		lines = append(lines, "ENTER  submit score", "", "R restart   Q quit")
	default:
		lines = append(lines, "", "", "R restart   Q quit")
	}
	printCentered(dst, b.Dy()/3, lines...)
}
