package object

import "math"

// Boss geometry, timing and pattern constants.
const (
	BossSize          = 100.0
	BossDefaultHits   = 10
	BossInvulnTicks   = 30
	BossPhaseTicks    = 60 // Ticks per attack phase
	BossScorePerLevel = 50 // Score per difficulty level

	bossSpawnY      = -100.0
	bossTargetY     = 150.0
	bossDamping     = 0.05
	bossSnapDist    = 1.0
	bossPhaseRate   = 0.02 // Motion parameter t per active tick
	bossWingSpin    = 0.05
	bossFireBase    = 60
	bossFireStep    = 6
	bossFireFloor   = 30
	bossBulletBase  = 4.0
	bossBulletStep  = 0.5
	bossBulletMax   = 8.0
	wingFanStep     = 0.15
	aimedFanStep    = 0.08
	numAttackPhases = 3
)

// HitResult is the outcome of Boss.Hit.
type HitResult int

const (
	HitIgnored    HitResult = iota // Boss was invulnerable
	HitRegistered                  // Hit counted, boss still alive
	HitDefeated                    // Hit counted and hitCount reached maxHits
)

// Boss is the multi-phase enemy that ends a level.
type Boss struct {
	X, Y         float64
	TargetY      float64 // Y at which entry ends
	CenterX      float64 // Anchor of the motion curves
	Size         float64
	HitCount     int
	MaxHits      int
	Invulnerable bool
	InvulnTimer  int
	AttackPhase  int // 0: wing cannons, 1: bottom spread, 2: aimed shots
	Difficulty   int // floor(score / 50)
	WingAngle    float64
	Entering     bool
	ActiveTicks  int // Ticks since entry finished
}

// NewBoss creates a boss above the playfield, ready to enter.
func NewBoss(s Screen, maxHits int) *Boss {
	if maxHits < 1 {
		maxHits = BossDefaultHits
	}
	return &Boss{
		X:        s.CenterX(),
		Y:        bossSpawnY,
		TargetY:  bossTargetY,
		CenterX:  s.CenterX(),
		Size:     BossSize,
		MaxHits:  maxHits,
		Entering: true,
	}
}

// DifficultyFor returns the difficulty level for a score.
func DifficultyFor(score int) int {
	if score <= 0 {
		return 0
	}
	return score / BossScorePerLevel
}

// SetScore updates the difficulty level from the session score.
func (b *Boss) SetScore(score int) {
	b.Difficulty = DifficultyFor(score)
}

// Radius is the hit radius for bullets.
func (b *Boss) Radius() float64 {
	return b.Size / 2
}

// Advance runs invulnerability, entry interpolation and the motion curves.
func (b *Boss) Advance(UpdateContext) {
	b.WingAngle += bossWingSpin

	if b.InvulnTimer > 0 {
		b.InvulnTimer--
		if b.InvulnTimer == 0 {
			b.Invulnerable = false
		}
	}

	if b.Entering {
		b.Y += (b.TargetY - b.Y) * bossDamping
		if math.Abs(b.TargetY-b.Y) < bossSnapDist {
			b.Y = b.TargetY
			b.Entering = false
		}
		return
	}

	b.ActiveTicks++
	b.AttackPhase = (b.ActiveTicks / BossPhaseTicks) % numAttackPhases
	b.X, b.Y = BossPosition(b.CenterX, b.TargetY, b.HitCount, b.ActiveTicks)
}

// BossPosition evaluates the active motion curve. The curve is chosen by
// hitCount: figure-8 below 2 hits, circle below 4, zigzag afterwards.
func BossPosition(cx, cy float64, hitCount, activeTicks int) (x, y float64) {
	t := float64(activeTicks) * bossPhaseRate
	switch {
	case hitCount < 2:
		return cx + 150*math.Sin(t), cy + 40*math.Sin(2*t)
	case hitCount < 4:
		return cx + 120*math.Cos(t), cy + 60*math.Sin(t)
	default:
		return cx + 180*math.Sin(2*t) + 30*math.Sin(7*t), cy + 60*math.Abs(math.Sin(3*t))
	}
}

// Hit registers a player bullet hit. It is a no-op while invulnerable.
func (b *Boss) Hit() HitResult {
	if b.Invulnerable {
		return HitIgnored
	}
	b.HitCount++
	b.Invulnerable = true
	b.InvulnTimer = BossInvulnTicks
	if b.HitCount >= b.MaxHits {
		return HitDefeated
	}
	return HitRegistered
}

// FireInterval returns the ticks between volleys for a difficulty level.
func FireInterval(difficulty int) int {
	return max(bossFireFloor, bossFireBase-bossFireStep*difficulty)
}

// ShouldFire reports whether this tick is a firing tick.
func (b *Boss) ShouldFire() bool {
	if b.Entering || b.ActiveTicks == 0 {
		return false
	}
	return b.ActiveTicks%FireInterval(b.Difficulty) == 0
}

// bulletSpeed scales enemy bullet speed with difficulty.
func (b *Boss) bulletSpeed() float64 {
	return math.Min(bossBulletBase+bossBulletStep*float64(b.Difficulty), bossBulletMax)
}

// Volley builds the bullets for the current attack phase. Phase 2 aims at
// the target position (px, py).
func (b *Boss) Volley(px, py float64) []*Bullet {
	speed := b.bulletSpeed()
	d := b.Difficulty
	half := b.Size / 2

	switch b.AttackPhase {
	case 0:
		n := min(1+d, 3)
		out := make([]*Bullet, 0, 2*n)
		for _, wx := range [2]float64{b.X - half, b.X + half} {
			out = append(out, fan(wx, b.Y, math.Pi/2, n, wingFanStep, speed)...)
		}
		return out
	case 1:
		n := min(3+2*d, 9)
		spread := math.Min(0.6+0.1*float64(d), 1.2)
		step := 0.0
		if n > 1 {
			step = spread / float64(n-1)
		}
		return fan(b.X, b.Y+half, math.Pi/2, n, step, speed)
	default:
		n := min(1+d, 4)
		aim := math.Atan2(py-b.Y, px-b.X)
		return fan(b.X, b.Y, aim, n, aimedFanStep, speed)
	}
}

// fan returns n enemy bullets centered on angle, step radians apart.
func fan(x, y, angle float64, n int, step, speed float64) []*Bullet {
	out := make([]*Bullet, 0, n)
	for i := 0; i < n; i++ {
		offset := (float64(i) - float64(n-1)/2) * step
		out = append(out, NewEnemyBullet(x, y, angle+offset, speed))
	}
	return out
}

// IsExpired is true once the boss has taken maxHits hits.
func (b *Boss) IsExpired(Screen) bool {
	return b.HitCount >= b.MaxHits
}

// Sprite implements Object.
func (b *Boss) Sprite() Sprite {
	return Sprite{
		Kind:    KindBoss,
		X:       b.X,
		Y:       b.Y,
		Size:    b.Size / 2,
		Angle:   b.WingAngle,
		Alpha:   255,
		Variant: b.AttackPhase,
		Flash:   b.Invulnerable,
	}
}
