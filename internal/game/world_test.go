package game

import (
	"errors"
	"math"
	"testing"

	"github.com/tomz197/skydodge/internal/config"
	"github.com/tomz197/skydodge/internal/object"
)

func newTestWorld(t *testing.T, rules config.Rules) *World {
	t.Helper()
	w, err := NewWorld(Options{Rules: rules, Seed: 1, NoiseSeed: 2})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

// killOneObstacle places a stationary obstacle and a bullet that reaches it
// during the next tick.
func killOneObstacle(w *World) {
	w.obstacles = append(w.obstacles, object.NewObstacle(300, 300, 30, 90, 0))
	w.bullets = append(w.bullets, object.NewBullet(300, 310, -math.Pi/2))
	w.Tick(Intent{})
}

func TestNewWorldDefaults(t *testing.T) {
	w := newTestWorld(t, config.Rules{})
	s := w.Session()
	if s.Score != 0 || s.Level != 1 || s.LevelThreshold != 10 || s.SpawnInterval != 60 || s.GameOver {
		t.Fatalf("initial session = %+v", s)
	}
	if !w.Rules().Boss {
		t.Fatal("zero rules should fall back to the boss rule set")
	}
	if p := w.Player(); p.X != 300 || p.Y != 750 {
		t.Fatalf("player at (%v,%v), want (300,750)", p.X, p.Y)
	}
	if len(w.stars) != StarCount {
		t.Fatalf("stars = %d, want %d", len(w.stars), StarCount)
	}
}

func TestNewWorldInvalidRules(t *testing.T) {
	rules := config.DefaultRules()
	rules.SpawnFloor = 0
	_, err := NewWorld(Options{Rules: rules})
	if !errors.Is(err, config.ErrInvalidRules) {
		t.Fatalf("err = %v, want ErrInvalidRules", err)
	}
}

func TestTenKillsClassicLevelUp(t *testing.T) {
	w := newTestWorld(t, config.ClassicRules())
	for i := 0; i < 10; i++ {
		killOneObstacle(w)
		if !hasEvent(w.Events(), EventKill) {
			t.Fatalf("tick %d: no kill event", i+1)
		}
	}

	s := w.Session()
	if s.Score != 55 {
		t.Errorf("score = %d, want 55", s.Score)
	}
	if s.Combo != 10 {
		t.Errorf("combo = %d, want 10", s.Combo)
	}
	if s.Level != 2 || s.LevelProgress != 0 {
		t.Errorf("level = %d progress = %d, want 2 and 0", s.Level, s.LevelProgress)
	}
	if s.LevelThreshold != 15 || s.SpawnInterval != 50 {
		t.Errorf("threshold = %d interval = %d, want 15 and 50", s.LevelThreshold, s.SpawnInterval)
	}
	if !hasEvent(w.Events(), EventLevelUp) {
		t.Error("missing level-up event")
	}
	if len(w.Obstacles()) != 0 || len(w.Bullets()) != 0 {
		t.Errorf("obstacles = %d bullets = %d, want none", len(w.Obstacles()), len(w.Bullets()))
	}
}

func TestComboResetsAfterWindow(t *testing.T) {
	w := newTestWorld(t, config.ClassicRules())
	killOneObstacle(w)
	killOneObstacle(w)
	// killOneObstacle ticks once, so the gap is exactly one second.
	for i := 0; i < TicksPerSecond-1; i++ {
		w.Tick(Intent{})
	}
	killOneObstacle(w)
	if s := w.Session(); s.Combo != 1 || s.Score != 4 {
		t.Fatalf("combo = %d score = %d, want 1 and 4", s.Combo, s.Score)
	}
}

func TestBulletConsumesOneObstacle(t *testing.T) {
	w := newTestWorld(t, config.ClassicRules())
	w.obstacles = append(w.obstacles,
		object.NewObstacle(300, 300, 30, 90, 0),
		object.NewObstacle(305, 300, 30, 90, 0),
	)
	w.bullets = append(w.bullets, object.NewBullet(300, 310, -math.Pi/2))
	w.Tick(Intent{})

	if len(w.Obstacles()) != 1 {
		t.Fatalf("obstacles left = %d, want 1", len(w.Obstacles()))
	}
	if w.Obstacles()[0].X != 305 {
		t.Fatalf("wrong obstacle consumed, left x = %v", w.Obstacles()[0].X)
	}
	if got := len(w.Particles()); got != KillParticles {
		t.Fatalf("particles = %d, want %d", got, KillParticles)
	}
}

func TestThresholdArmsBoss(t *testing.T) {
	w := newTestWorld(t, config.DefaultRules())
	for i := 0; i < 9; i++ {
		killOneObstacle(w)
	}
	w.obstacles = append(w.obstacles, object.NewObstacle(100, 100, 30, 90, 0))
	killOneObstacle(w)

	if !hasEvent(w.Events(), EventBossWarning) {
		t.Fatal("missing boss warning event")
	}
	if len(w.Obstacles()) != 0 {
		t.Fatalf("obstacles not cleared: %d left", len(w.Obstacles()))
	}
	s := w.Session()
	if s.Level != 1 || s.Score != 55 {
		t.Fatalf("level-up must wait for the boss: level = %d score = %d", s.Level, s.Score)
	}
	if w.Encounter().Phase != EncounterWarning {
		t.Fatalf("phase = %v, want warning", w.Encounter().Phase)
	}

	for i := 0; i < 178; i++ {
		w.Tick(Intent{})
		if len(w.Obstacles()) != 0 {
			t.Fatalf("obstacle spawned during warning at tick %d", w.Session().Tick)
		}
	}
	if w.Encounter().Phase != EncounterWarning {
		t.Fatalf("warning ended early, phase = %v", w.Encounter().Phase)
	}
	w.Tick(Intent{})
	if w.Encounter().Phase != EncounterEntering || w.Encounter().Boss == nil {
		t.Fatalf("phase after warning = %v", w.Encounter().Phase)
	}
	if !hasEvent(w.Events(), EventBossSpawned) {
		t.Fatal("missing boss spawned event")
	}

	for i := 0; w.Encounter().Phase == EncounterEntering; i++ {
		if i > 500 {
			t.Fatal("boss never became active")
		}
		w.Tick(Intent{})
		if len(w.Obstacles()) != 0 {
			t.Fatal("obstacle spawned while the boss is entering")
		}
	}
	if w.Encounter().Phase != EncounterActive {
		t.Fatalf("phase = %v, want active", w.Encounter().Phase)
	}
	if b := w.Encounter().Boss; b.Y != b.TargetY {
		t.Fatalf("boss y = %v, want %v", b.Y, b.TargetY)
	}
}

func activeBoss(w *World) *object.Boss {
	b := object.NewBoss(w.Screen(), w.Rules().BossMaxHits)
	b.Entering = false
	b.Y = b.TargetY
	w.encounter = Encounter{Phase: EncounterActive, Boss: b}
	return b
}

func TestBossDefeatAwardsReward(t *testing.T) {
	w := newTestWorld(t, config.DefaultRules())
	w.session.Score = 7
	boss := activeBoss(w)

	for hit := 1; hit <= boss.MaxHits; hit++ {
		w.bullets = append(w.bullets[:0], object.NewBullet(boss.X, boss.Y+5, -math.Pi/2))
		w.Tick(Intent{})

		if hit < boss.MaxHits {
			if boss.HitCount != hit {
				t.Fatalf("hitCount = %d, want %d", boss.HitCount, hit)
			}
			if !hasEvent(w.Events(), EventBossHit) {
				t.Fatalf("hit %d: missing boss hit event", hit)
			}
			for i := 0; i < object.BossInvulnTicks; i++ {
				w.bullets = w.bullets[:0]
				w.Tick(Intent{})
			}
		}
	}

	if w.Session().GameOver {
		t.Fatal("player died during the fight")
	}
	s := w.Session()
	if s.Score != 57 {
		t.Errorf("score = %d, want 57", s.Score)
	}
	if s.Level != 2 || s.LevelThreshold != 15 {
		t.Errorf("level = %d threshold = %d, want 2 and 15", s.Level, s.LevelThreshold)
	}
	if !hasEvent(w.Events(), EventBossDefeated) || !hasEvent(w.Events(), EventLevelUp) {
		t.Error("missing defeat or level-up event")
	}
	if enc := w.Encounter(); enc.Phase != EncounterDefeated || enc.Boss != nil {
		t.Fatalf("encounter after defeat = %+v", enc)
	}

	w.Tick(Intent{})
	if w.Encounter().Phase != EncounterDormant {
		t.Fatalf("phase = %v, want dormant", w.Encounter().Phase)
	}
}

func TestSpawningResumesOnBossDefeat(t *testing.T) {
	w := newTestWorld(t, config.DefaultRules())
	boss := activeBoss(w)
	boss.HitCount = boss.MaxHits - 1
	// Tick 300 passes the spawn gate both at level 1 (60) and level 2 (50).
	w.session.Tick = 299
	w.bullets = append(w.bullets[:0], object.NewBullet(boss.X, boss.Y+5, -math.Pi/2))
	w.Tick(Intent{})

	if !hasEvent(w.Events(), EventBossDefeated) {
		t.Fatal("boss was not defeated")
	}
	if enc := w.Encounter(); enc.Running() {
		t.Error("defeated encounter still holds the spawn gate")
	}
	if n := len(w.Obstacles()); n != 1 {
		t.Errorf("obstacles on the defeat tick = %d, want 1", n)
	}
}

func TestEncounterRunning(t *testing.T) {
	tests := []struct {
		phase EncounterPhase
		want  bool
	}{
		{EncounterDormant, false},
		{EncounterWarning, true},
		{EncounterEntering, true},
		{EncounterActive, true},
		{EncounterDefeated, false},
	}
	for _, tt := range tests {
		e := Encounter{Phase: tt.phase}
		if got := e.Running(); got != tt.want {
			t.Errorf("Running() in %v = %v, want %v", tt.phase, got, tt.want)
		}
	}
}

func TestInvulnerableBossLetsBulletsPass(t *testing.T) {
	w := newTestWorld(t, config.DefaultRules())
	boss := activeBoss(w)
	boss.Hit()

	w.bullets = append(w.bullets[:0], object.NewBullet(boss.X, boss.Y+5, -math.Pi/2))
	w.Tick(Intent{})

	if boss.HitCount != 1 {
		t.Fatalf("hitCount = %d, want 1", boss.HitCount)
	}
	found := false
	for _, b := range w.Bullets() {
		if !b.Enemy {
			found = true
		}
	}
	if !found {
		t.Fatal("bullet should pass through an invulnerable boss")
	}
}

func TestShieldAbsorbsExactlyOneHit(t *testing.T) {
	w := newTestWorld(t, config.DefaultRules())
	p := w.Player()
	w.Effects().Apply(object.Shield, 600, p)

	w.obstacles = append(w.obstacles, object.NewObstacle(p.X, p.Y, 20, 90, 0))
	w.Tick(Intent{})

	if w.Session().GameOver || p.Destroyed {
		t.Fatal("shielded player was destroyed")
	}
	if w.Effects().Active(object.Shield) || p.Shielded {
		t.Fatal("shield not consumed")
	}
	if len(w.Obstacles()) != 0 {
		t.Fatal("blocked obstacle should be removed")
	}
	if !hasEvent(w.Events(), EventShieldBlock) {
		t.Fatal("missing shield block event")
	}
	if got := len(w.Particles()); got != ShieldParticles {
		t.Fatalf("particles = %d, want %d", got, ShieldParticles)
	}

	w.obstacles = append(w.obstacles, object.NewObstacle(p.X, p.Y, 20, 90, 0))
	w.Tick(Intent{})
	if !w.Session().GameOver || !p.Destroyed {
		t.Fatal("second hit should end the game")
	}
}

func TestShieldBlocksEnemyBullet(t *testing.T) {
	w := newTestWorld(t, config.DefaultRules())
	p := w.Player()
	w.Effects().Apply(object.Shield, 600, p)

	w.bullets = append(w.bullets, object.NewEnemyBullet(p.X, p.Y-24, math.Pi/2, 4))
	w.Tick(Intent{})

	if w.Session().GameOver {
		t.Fatal("shield should absorb the bullet")
	}
	if len(w.Bullets()) != 0 {
		t.Fatalf("bullets = %d, want 0", len(w.Bullets()))
	}

	w.bullets = append(w.bullets, object.NewEnemyBullet(p.X, p.Y-24, math.Pi/2, 4))
	w.Tick(Intent{})
	if !w.Session().GameOver {
		t.Fatal("unshielded hit should end the game")
	}
}

func TestObstacleContactEndsGame(t *testing.T) {
	w := newTestWorld(t, config.DefaultRules())
	p := w.Player()
	w.obstacles = append(w.obstacles, object.NewObstacle(p.X+30, p.Y, 25, 90, 0))
	w.Tick(Intent{})

	s := w.Session()
	if !s.GameOver || !p.Destroyed {
		t.Fatalf("gameOver = %v destroyed = %v, want both true", s.GameOver, p.Destroyed)
	}
	if got := len(w.Particles()); got != ExplosionParticles {
		t.Fatalf("particles = %d, want %d", got, ExplosionParticles)
	}
	if !hasEvent(w.Events(), EventGameOver) {
		t.Fatal("missing game over event")
	}

	tick := s.Tick
	w.Tick(Intent{H: 1, Fire: true})
	if w.Session().Tick != tick || len(w.Bullets()) != 0 {
		t.Fatal("simulation advanced after game over")
	}
	if len(w.Events()) != 0 {
		t.Fatal("ignored tick produced events")
	}
}

func TestRestartResetsEverything(t *testing.T) {
	w := newTestWorld(t, config.DefaultRules())
	killOneObstacle(w)
	w.Effects().Apply(object.SpeedBoost, 600, w.Player())
	w.powerUps = append(w.powerUps, object.NewPowerUp(10, 10, object.Shield, 600))
	w.encounter.Arm(180)
	p := w.Player()
	w.obstacles = append(w.obstacles, object.NewObstacle(p.X, p.Y, 20, 90, 0))
	w.Tick(Intent{})
	if !w.Session().GameOver {
		t.Fatal("setup: expected game over")
	}

	w.Tick(Intent{Restart: true})

	s := w.Session()
	want := NewSession(w.Rules())
	if s != want {
		t.Fatalf("session after restart = %+v, want %+v", s, want)
	}
	if len(w.Obstacles())+len(w.Bullets())+len(w.Particles())+len(w.PowerUps()) != 0 {
		t.Fatal("collections not cleared")
	}
	if len(w.Status().Effects) != 0 || w.Effects().BulletCount() != 1 {
		t.Fatal("effects not reset")
	}
	if w.Encounter().Phase != EncounterDormant {
		t.Fatal("encounter not reset")
	}
	np := w.Player()
	if np.Destroyed || np.X != 300 || np.Y != 750 || np.Speed != object.PlayerSpeed {
		t.Fatalf("player after restart = %+v", np)
	}
}

func TestPowerUpCollection(t *testing.T) {
	w := newTestWorld(t, config.DefaultRules())
	p := w.Player()
	w.powerUps = append(w.powerUps, object.NewPowerUp(p.X, p.Y-2, object.SpeedBoost, 600))

	w.Tick(Intent{H: 1})
	if p.X != 305 {
		t.Fatalf("x = %v, want 305", p.X)
	}
	if !w.Effects().Active(object.SpeedBoost) || !hasEvent(w.Events(), EventPowerUp) {
		t.Fatal("power-up not collected")
	}
	if len(w.PowerUps()) != 0 {
		t.Fatal("collected power-up still alive")
	}
	if got := w.Effects().Get(object.SpeedBoost).Remaining; got != 599 {
		t.Fatalf("remaining after collection tick = %d, want 599", got)
	}

	w.Tick(Intent{H: 1})
	if p.X != 313 {
		t.Fatalf("x = %v, want 313 with speed boost", p.X)
	}
}

func TestFiringUsesSpread(t *testing.T) {
	w := newTestWorld(t, config.DefaultRules())
	w.Tick(Intent{Fire: true})
	if len(w.Bullets()) != 1 {
		t.Fatalf("bullets = %d, want 1", len(w.Bullets()))
	}
	w.Effects().Apply(object.SpreadShot, 600, w.Player())
	w.Tick(Intent{Fire: true})
	if len(w.Bullets()) != 4 {
		t.Fatalf("bullets = %d, want 4", len(w.Bullets()))
	}
}

func TestPointerIntent(t *testing.T) {
	w := newTestWorld(t, config.DefaultRules())
	w.Tick(Intent{H: 1, Pointer: &Pointer{X: 100, Y: 200}})
	if p := w.Player(); p.X != 100 || p.Y != 200 {
		t.Fatalf("player at (%v,%v), want (100,200)", p.X, p.Y)
	}
	w.Tick(Intent{Pointer: &Pointer{X: -50, Y: 900}})
	if p := w.Player(); p.X != object.PlayerPadding || p.Y != 800-object.PlayerPadding {
		t.Fatalf("pointer not clamped: (%v,%v)", p.X, p.Y)
	}
	w.Tick(Intent{H: 9, V: -4})
	if p := w.Player(); p.X != object.PlayerPadding || p.Y != 800-object.PlayerPadding {
		t.Fatal("invalid intent should be neutral")
	}
}

func TestSpawnGate(t *testing.T) {
	w := newTestWorld(t, config.DefaultRules())
	for i := 0; i < 59; i++ {
		w.Tick(Intent{})
	}
	if len(w.Obstacles()) != 0 {
		t.Fatal("obstacle spawned before the first interval")
	}
	w.Tick(Intent{})
	if len(w.Obstacles()) != 1 {
		t.Fatalf("obstacles = %d after 60 ticks, want 1", len(w.Obstacles()))
	}
}

func TestGameplayIgnoresNoiseSeed(t *testing.T) {
	a, err := NewWorld(Options{Seed: 42, NoiseSeed: 1})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewWorld(Options{Seed: 42, NoiseSeed: 2})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 200; i++ {
		a.Tick(Intent{})
		b.Tick(Intent{})
	}
	if len(a.Obstacles()) != len(b.Obstacles()) {
		t.Fatalf("obstacle counts differ: %d vs %d", len(a.Obstacles()), len(b.Obstacles()))
	}
	for i := range a.Obstacles() {
		oa, ob := a.Obstacles()[i], b.Obstacles()[i]
		if oa.X != ob.X || oa.Y != ob.Y || oa.Size != ob.Size {
			t.Fatalf("obstacle %d differs: %+v vs %+v", i, oa, ob)
		}
	}
}

func TestRenderOrder(t *testing.T) {
	w := newTestWorld(t, config.DefaultRules())
	w.powerUps = append(w.powerUps, object.NewPowerUp(10, 10, object.Shield, 600))
	w.obstacles = append(w.obstacles, object.NewObstacle(50, 50, 20, 90, 0))
	activeBoss(w)
	w.bullets = append(w.bullets, object.NewBullet(100, 400, -math.Pi/2))
	w.particles = append(w.particles, object.NewParticle(object.ParticleSpark, 1, 1, 0, 0))

	rank := map[object.Kind]int{
		object.KindStar:        0,
		object.KindPowerUp:     1,
		object.KindObstacle:    2,
		object.KindBoss:        3,
		object.KindBullet:      4,
		object.KindEnemyBullet: 4,
		object.KindParticle:    5,
		object.KindPlayer:      6,
	}
	last := -1
	seen := map[object.Kind]int{}
	w.Render(SinkFunc(func(s object.Sprite) {
		r := rank[s.Kind]
		if r < last {
			t.Fatalf("%v drawn after rank %d", s.Kind, last)
		}
		last = r
		seen[s.Kind]++
	}))
	if seen[object.KindStar] != StarCount || seen[object.KindPlayer] != 1 || seen[object.KindBoss] != 1 {
		t.Fatalf("sprites drawn = %v", seen)
	}
}

func TestStatusListsEffects(t *testing.T) {
	w := newTestWorld(t, config.DefaultRules())
	w.Effects().Apply(object.SpeedBoost, 600, w.Player())
	w.Effects().Apply(object.SpreadShot, 300, w.Player())
	activeBoss(w).HitCount = 3

	st := w.Status()
	if len(st.Effects) != 2 || st.Effects[0].Type != object.SpreadShot || st.Effects[1].Type != object.SpeedBoost {
		t.Fatalf("effects = %+v", st.Effects)
	}
	if st.Phase != EncounterActive || st.BossHits != 3 || st.BossMaxHits != 10 {
		t.Fatalf("status = %+v", st)
	}
	if st.Level != 1 {
		t.Fatalf("level = %d", st.Level)
	}
}
