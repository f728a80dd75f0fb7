package object

import (
	"math"
	"testing"
)

func enterBoss(t *testing.T, b *Boss) int {
	t.Helper()
	ctx := testCtx()
	ticks := 0
	for b.Entering {
		b.Advance(ctx)
		ticks++
		if ticks > 1000 {
			t.Fatal("boss never finished entering")
		}
	}
	return ticks
}

func TestBossEntryInterpolates(t *testing.T) {
	b := NewBoss(DefaultScreen(), 10)
	if b.Y != -100 || !b.Entering {
		t.Fatalf("new boss = %+v", b)
	}
	b.Advance(testCtx())
	if want := -100 + 250*0.05; math.Abs(b.Y-want) > 1e-9 {
		t.Fatalf("y after one entry tick = %v, want %v", b.Y, want)
	}
	enterBoss(t, b)
	if b.Y != b.TargetY {
		t.Fatalf("boss did not snap to target: y=%v", b.Y)
	}
	if b.ActiveTicks != 0 {
		t.Fatalf("active ticks should start at 0, got %d", b.ActiveTicks)
	}
}

func TestBossHitInvulnerability(t *testing.T) {
	b := NewBoss(DefaultScreen(), 10)
	ctx := testCtx()

	if got := b.Hit(); got != HitRegistered {
		t.Fatalf("first hit = %v, want HitRegistered", got)
	}
	if got := b.Hit(); got != HitIgnored {
		t.Fatalf("hit while invulnerable = %v, want HitIgnored", got)
	}
	if b.HitCount != 1 {
		t.Fatalf("hitCount = %d, want 1", b.HitCount)
	}

	for i := 0; i < BossInvulnTicks-1; i++ {
		b.Advance(ctx)
	}
	if !b.Invulnerable {
		t.Fatal("invulnerability ended early")
	}
	b.Advance(ctx)
	if b.Invulnerable {
		t.Fatal("invulnerability should end after 30 ticks")
	}
}

func TestBossDefeatAfterMaxHits(t *testing.T) {
	b := NewBoss(DefaultScreen(), 10)
	ctx := testCtx()
	for i := 1; i <= 10; i++ {
		got := b.Hit()
		want := HitRegistered
		if i == 10 {
			want = HitDefeated
		}
		if got != want {
			t.Fatalf("hit %d = %v, want %v", i, got, want)
		}
		for j := 0; j < BossInvulnTicks; j++ {
			b.Advance(ctx)
		}
	}
	if !b.IsExpired(ctx.Screen) {
		t.Fatal("defeated boss should be expired")
	}
}

func TestBossPositionCurves(t *testing.T) {
	cx, cy := 300.0, 150.0
	ticks := 100
	tt := float64(ticks) * 0.02

	x, y := BossPosition(cx, cy, 1, ticks)
	if math.Abs(x-(cx+150*math.Sin(tt))) > 1e-9 || math.Abs(y-(cy+40*math.Sin(2*tt))) > 1e-9 {
		t.Errorf("figure-8 = (%v,%v)", x, y)
	}
	x, y = BossPosition(cx, cy, 3, ticks)
	if math.Abs(x-(cx+120*math.Cos(tt))) > 1e-9 || math.Abs(y-(cy+60*math.Sin(tt))) > 1e-9 {
		t.Errorf("circle = (%v,%v)", x, y)
	}
	x, y = BossPosition(cx, cy, 4, ticks)
	wantX := cx + 180*math.Sin(2*tt) + 30*math.Sin(7*tt)
	wantY := cy + 60*math.Abs(math.Sin(3*tt))
	if math.Abs(x-wantX) > 1e-9 || math.Abs(y-wantY) > 1e-9 {
		t.Errorf("zigzag = (%v,%v), want (%v,%v)", x, y, wantX, wantY)
	}
}

func TestBossAttackPhaseRotates(t *testing.T) {
	b := NewBoss(DefaultScreen(), 10)
	enterBoss(t, b)
	ctx := testCtx()

	phases := map[int]int{}
	for i := 0; i < 180; i++ {
		b.Advance(ctx)
		phases[b.ActiveTicks] = b.AttackPhase
	}
	checks := map[int]int{1: 0, 59: 0, 60: 1, 119: 1, 120: 2, 179: 2, 180: 0}
	for tick, want := range checks {
		if got := phases[tick]; got != want {
			t.Errorf("phase at active tick %d = %d, want %d", tick, got, want)
		}
	}
}

func TestBossFireCadence(t *testing.T) {
	tests := []struct{ difficulty, want int }{
		{0, 60}, {1, 54}, {4, 36}, {5, 30}, {9, 30},
	}
	for _, tc := range tests {
		if got := FireInterval(tc.difficulty); got != tc.want {
			t.Errorf("FireInterval(%d) = %d, want %d", tc.difficulty, got, tc.want)
		}
	}

	b := NewBoss(DefaultScreen(), 10)
	if b.ShouldFire() {
		t.Fatal("entering boss must not fire")
	}
	b.Entering = false
	b.ActiveTicks = 60
	if !b.ShouldFire() {
		t.Fatal("boss should fire on tick 60 at difficulty 0")
	}
	b.ActiveTicks = 61
	if b.ShouldFire() {
		t.Fatal("boss should not fire on tick 61")
	}
}

func TestBossVolleyScaling(t *testing.T) {
	tests := []struct {
		name      string
		phase     int
		score     int
		wantCount int
	}{
		{"wings d0", 0, 0, 2},
		{"wings d1", 0, 50, 4},
		{"wings capped", 0, 1000, 6},
		{"spread d0", 1, 0, 3},
		{"spread d2", 1, 100, 7},
		{"spread capped", 1, 1000, 9},
		{"aimed d0", 2, 0, 1},
		{"aimed capped", 2, 1000, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBoss(DefaultScreen(), 10)
			b.Entering = false
			b.X, b.Y = 300, 150
			b.AttackPhase = tc.phase
			b.SetScore(tc.score)
			got := b.Volley(300, 750)
			if len(got) != tc.wantCount {
				t.Fatalf("volley size = %d, want %d", len(got), tc.wantCount)
			}
			for _, bl := range got {
				if !bl.Enemy {
					t.Fatal("boss bullets must be enemy bullets")
				}
				if bl.Speed > 8 {
					t.Fatalf("bullet speed %v exceeds cap", bl.Speed)
				}
			}
		})
	}
}

func TestBossAimedVolleyTargetsPlayer(t *testing.T) {
	b := NewBoss(DefaultScreen(), 10)
	b.Entering = false
	b.X, b.Y = 300, 150
	b.AttackPhase = 2
	got := b.Volley(300, 750)
	if math.Abs(got[0].Angle-math.Pi/2) > 1e-9 {
		t.Fatalf("aimed angle = %v, want straight down", got[0].Angle)
	}
}

func TestDifficultyFor(t *testing.T) {
	tests := []struct{ score, want int }{{0, 0}, {49, 0}, {50, 1}, {149, 2}, {-5, 0}}
	for _, tc := range tests {
		if got := DifficultyFor(tc.score); got != tc.want {
			t.Errorf("DifficultyFor(%d) = %d, want %d", tc.score, got, tc.want)
		}
	}
}
