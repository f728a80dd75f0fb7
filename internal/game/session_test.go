package game

import (
	"math"
	"testing"
	"time"

	"github.com/tomz197/skydodge/internal/config"
	"github.com/tomz197/skydodge/internal/object"
)

func TestRegisterKillCombo(t *testing.T) {
	s := NewSession(config.DefaultRules())
	window := time.Second

	steps := []struct {
		at        time.Duration
		wantCombo int
		wantScore int
	}{
		{0, 1, 1},
		{500 * time.Millisecond, 2, 3},
		{1499 * time.Millisecond, 3, 6},
		{2499 * time.Millisecond, 1, 7}, // Gap of exactly one second resets
		{2500 * time.Millisecond, 2, 9},
		{10 * time.Second, 1, 10},
	}
	for i, st := range steps {
		got := s.RegisterKill(st.at, window)
		if got != st.wantCombo || s.Combo != st.wantCombo {
			t.Fatalf("kill %d: combo = %d, want %d", i, got, st.wantCombo)
		}
		if s.Score != st.wantScore {
			t.Fatalf("kill %d: score = %d, want %d", i, s.Score, st.wantScore)
		}
	}
	if s.LevelProgress != len(steps) {
		t.Fatalf("levelProgress = %d, want %d", s.LevelProgress, len(steps))
	}
}

func TestLevelUpSpawnFloor(t *testing.T) {
	rules := config.DefaultRules()
	s := NewSession(rules)
	s.LevelProgress = 10

	wantIntervals := []int{50, 45, 40, 35, 30, 25, 20, 20, 20}
	prevThreshold := s.LevelThreshold
	for i, want := range wantIntervals {
		s.LevelUp(rules)
		if s.Level != i+2 {
			t.Fatalf("level = %d, want %d", s.Level, i+2)
		}
		if s.LevelProgress != 0 {
			t.Fatalf("levelProgress = %d after level-up", s.LevelProgress)
		}
		if s.LevelThreshold <= prevThreshold {
			t.Fatalf("threshold did not increase: %d -> %d", prevThreshold, s.LevelThreshold)
		}
		prevThreshold = s.LevelThreshold
		if s.SpawnInterval != want {
			t.Errorf("level %d: spawnInterval = %d, want %d", s.Level, s.SpawnInterval, want)
		}
	}
}

func TestSessionClock(t *testing.T) {
	s := SessionState{Tick: 90}
	if got := s.Clock(); got != 1500*time.Millisecond {
		t.Fatalf("Clock() = %v, want 1.5s", got)
	}
	s.Tick = TicksPerSecond
	if got := s.Clock(); got != time.Second {
		t.Fatalf("Clock() after %d ticks = %v, want 1s", TicksPerSecond, got)
	}
}

func TestComboWindowBoundary(t *testing.T) {
	window := config.DefaultRules().ComboWindow
	tests := []struct {
		name      string
		gap       uint64
		wantCombo int
	}{
		{"one tick short of a second", TicksPerSecond - 1, 2},
		{"exactly one second", TicksPerSecond, 1},
		{"past one second", TicksPerSecond + 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(config.DefaultRules())
			s.Tick = 10
			s.RegisterKill(s.Clock(), window)
			s.Tick += tt.gap
			if got := s.RegisterKill(s.Clock(), window); got != tt.wantCombo {
				t.Errorf("combo after a %d tick gap = %d, want %d", tt.gap, got, tt.wantCombo)
			}
		})
	}
}

func TestEffectsExpire(t *testing.T) {
	p := object.NewPlayer(100, 100)
	e := NewEffects()
	e.Apply(object.SpeedBoost, 600, p)
	e.Apply(object.SpreadShot, 600, p)

	if p.Speed != object.PlayerBoostSpeed || e.BulletCount() != SpreadBullets {
		t.Fatalf("effects not applied: speed=%v bullets=%d", p.Speed, e.BulletCount())
	}
	for i := 0; i < 599; i++ {
		e.Tick(p)
	}
	if !e.Active(object.SpeedBoost) || e.Get(object.SpeedBoost).Remaining != 1 {
		t.Fatalf("speedBoost after 599 ticks = %+v", e.Get(object.SpeedBoost))
	}
	e.Tick(p)
	if e.Active(object.SpeedBoost) || e.Active(object.SpreadShot) {
		t.Fatal("effects still active after their duration")
	}
	if p.Speed != object.PlayerSpeed {
		t.Errorf("speed = %v, want %v", p.Speed, object.PlayerSpeed)
	}
	if e.BulletCount() != 1 {
		t.Errorf("bulletCount = %d, want 1", e.BulletCount())
	}
}

func TestEffectsRenewAndIndependence(t *testing.T) {
	p := object.NewPlayer(100, 100)
	e := NewEffects()
	e.Apply(object.RapidFire, 600, p)
	e.Apply(object.Shield, 600, p)
	for i := 0; i < 300; i++ {
		e.Tick(p)
	}
	e.Apply(object.RapidFire, 600, p)
	if got := e.Get(object.RapidFire).Remaining; got != 600 {
		t.Fatalf("renewed timer = %d, want 600", got)
	}

	if !e.ConsumeShield(p) {
		t.Fatal("active shield should absorb a hit")
	}
	if e.Active(object.Shield) || p.Shielded || e.Get(object.Shield).Remaining != 0 {
		t.Fatalf("shield not consumed: %+v shielded=%v", e.Get(object.Shield), p.Shielded)
	}
	if e.ConsumeShield(p) {
		t.Fatal("consumed shield absorbed a second hit")
	}
	if !e.Active(object.RapidFire) {
		t.Fatal("consuming the shield must not touch other effects")
	}
}

func TestTriggerRapidFire(t *testing.T) {
	tests := []struct {
		name  string
		in    Intent
		rapid bool
		want  int
	}{
		{"press always fires", Intent{Fire: true}, false, 10},
		{"held without rapid fire", Intent{FireHeld: true}, false, 0},
		{"held with rapid fire", Intent{FireHeld: true}, true, 2},
		{"idle", Intent{}, true, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var tr trigger
			shots := 0
			for i := 0; i < 10; i++ {
				if tr.pull(tc.in, tc.rapid, 5) {
					shots++
				}
			}
			if shots != tc.want {
				t.Fatalf("shots = %d, want %d", shots, tc.want)
			}
		})
	}
}

func TestIntentNormalized(t *testing.T) {
	in := Intent{H: 3, V: -1, Fire: true}.normalized()
	if in.H != 0 || in.V != -1 || !in.FireHeld {
		t.Fatalf("normalized = %+v", in)
	}
	bad := Intent{Pointer: &Pointer{X: 1, Y: math.NaN()}}.normalized()
	if bad.Pointer != nil {
		t.Fatal("non-finite pointer should be dropped")
	}
}
