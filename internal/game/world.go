// Package game is the simulation core: one World per play session, advanced
// one fixed tick at a time from an input Intent.
package game

import (
	"fmt"
	"math/rand"

	"github.com/tomz197/skydodge/internal/config"
	"github.com/tomz197/skydodge/internal/object"
	"github.com/tomz197/skydodge/internal/physics"
)

// Particle counts per effect.
const (
	KillParticles       = 10
	ExplosionParticles  = 50
	BossHitParticles    = 15
	BossDefeatParticles = 80
	ShieldParticles     = 20
	TrailParticles      = 1 // Per entering tick
)

// Background star field.
const (
	StarCount = 100
	StarSeed  = 99
)

// Options configures a World.
type Options struct {
	Rules     config.Rules  // Zero value means config.DefaultRules
	Screen    object.Screen // Zero value means object.DefaultScreen
	Seed      int64         // Gameplay randomness: spawn positions, sizes, headings, power-up types
	NoiseSeed int64         // Cosmetic jitter only
}

// World owns every entity collection and the session counters of one game.
// It is not safe for concurrent use; each session drives its own World.
type World struct {
	rules  config.Rules
	screen object.Screen
	rng    *rand.Rand
	noise  *rand.Rand

	session   SessionState
	effects   *Effects
	encounter Encounter
	trigger   trigger

	player    *object.Player
	obstacles []*object.Obstacle
	bullets   []*object.Bullet
	particles []*object.Particle
	powerUps  []*object.PowerUp
	stars     []*object.Star

	grid     *physics.Grid
	obsDead  []bool // Obstacles consumed during the current bullet pass
	clearObs bool   // Boss warning started during the current bullet pass
	events   []Event
}

// NewWorld creates a world ready for its first tick.
func NewWorld(opts Options) (*World, error) {
	rules := opts.Rules
	if rules == (config.Rules{}) {
		rules = config.DefaultRules()
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create world: %w", err)
	}
	screen := opts.Screen
	if screen.Width <= 0 || screen.Height <= 0 {
		screen = object.DefaultScreen()
	}

	w := &World{
		rules:   rules,
		screen:  screen,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		noise:   rand.New(rand.NewSource(opts.NoiseSeed)),
		effects: NewEffects(),
	}
	w.Reset()
	return w, nil
}

// Reset starts a new game: every collection, counter and effect returns to
// its default. The random sources keep their sequence so consecutive games
// differ.
func (w *World) Reset() {
	for _, p := range w.particles {
		p.Release()
	}

	w.session = NewSession(w.rules)
	w.effects.Reset()
	w.encounter.Reset()
	w.trigger = trigger{}

	w.player = object.NewPlayerAtStart(w.screen)
	w.obstacles = nil
	w.bullets = nil
	w.particles = nil
	w.powerUps = nil
	w.stars = object.NewStarField(StarCount, rand.New(rand.NewSource(StarSeed)), w.screen)
	w.events = w.events[:0]
}

// Spawn adds obj to the matching collection. Implements object.Spawner.
func (w *World) Spawn(obj object.Object) {
	switch o := obj.(type) {
	case *object.Particle:
		w.particles = append(w.particles, o)
	case *object.Obstacle:
		w.obstacles = append(w.obstacles, o)
	case *object.Bullet:
		w.bullets = append(w.bullets, o)
	case *object.PowerUp:
		w.powerUps = append(w.powerUps, o)
	case *object.Star:
		w.stars = append(w.stars, o)
	}
}

// Tick advances the simulation by one step. A restart intent resets the
// world instead. Once the game is over, ticks are ignored until a restart.
func (w *World) Tick(in Intent) {
	w.events = w.events[:0]
	in = in.normalized()

	if in.Restart {
		w.Reset()
		return
	}
	if w.session.GameOver {
		return
	}

	w.session.Tick++
	ctx := w.updateContext()

	w.updateStars(ctx)
	w.applyIntent(in)
	w.updatePlayer(ctx, in)
	w.updatePowerUps(ctx)
	w.updateBullets(ctx)
	w.spawnObjects()
	w.updateObstacles(ctx)
	w.updateEncounter(ctx)
	w.updateParticles(ctx)
	w.effects.Tick(w.player)

	if w.session.GameOver {
		w.emit(Event{Kind: EventGameOver})
	}
}

func (w *World) updateContext() object.UpdateContext {
	return object.UpdateContext{Screen: w.screen, Noise: w.noise}
}

func (w *World) emit(ev Event) {
	ev.Tick = w.session.Tick
	ev.Score = w.session.Score
	ev.Level = w.session.Level
	w.events = append(w.events, ev)
}

func (w *World) updateStars(ctx object.UpdateContext) {
	for _, st := range w.stars {
		st.Advance(ctx)
	}
}

// applyIntent turns the sampled input into ship intent. A pointer wins over
// directions.
func (w *World) applyIntent(in Intent) {
	if in.Pointer != nil {
		w.player.MoveTo(in.Pointer.X, in.Pointer.Y)
		w.player.SetDir(0, 0)
		return
	}
	w.player.SetDir(in.H, in.V)
}

func (w *World) updatePlayer(ctx object.UpdateContext, in Intent) {
	w.player.Advance(ctx)

	rapid := w.effects.Active(object.RapidFire)
	if !w.trigger.pull(in, rapid, w.rules.RapidFireCooldown) {
		return
	}
	w.bullets = append(w.bullets, object.PlayerFan(w.player.X, w.player.Y, w.effects.BulletCount())...)
}

// updatePowerUps moves power-ups and applies the ones the ship touches.
func (w *World) updatePowerUps(ctx object.UpdateContext) {
	p := w.player
	kept := w.powerUps[:0]
	for _, pu := range w.powerUps {
		pu.Advance(ctx)
		if pu.IsExpired(w.screen) {
			continue
		}
		if !p.Destroyed && physics.PointInCircle(pu.X, pu.Y, p.X, p.Y, pu.Size+object.PlayerPadding) {
			w.effects.Apply(pu.Type, pu.Duration, p)
			w.emit(Event{Kind: EventPowerUp, PowerUp: pu.Type})
			continue
		}
		kept = append(kept, pu)
	}
	clear(w.powerUps[len(kept):])
	w.powerUps = kept
}

// spawnObjects creates obstacles and power-ups on their tick-modulo gates.
// Obstacles are suspended from the warning until the boss is defeated.
func (w *World) spawnObjects() {
	if w.session.GameOver {
		return
	}
	tick := w.session.Tick

	if !w.encounter.Running() && tick%uint64(w.session.SpawnInterval) == 0 {
		w.obstacles = append(w.obstacles, object.SpawnObstacle(w.rng, w.noise, w.screen))
	}
	if tick%uint64(w.rules.PowerUpInterval) == 0 && len(w.powerUps) < w.rules.MaxPowerUps {
		w.powerUps = append(w.powerUps, object.SpawnPowerUp(w.rng, w.screen, w.rules.EffectTicks))
	}
}

// updateObstacles moves obstacles and resolves contact with the ship.
func (w *World) updateObstacles(ctx object.UpdateContext) {
	p := w.player
	kept := w.obstacles[:0]
	for _, o := range w.obstacles {
		o.Advance(ctx)
		if o.IsExpired(w.screen) {
			continue
		}
		if !p.Destroyed && physics.PointInCircle(o.X, o.Y, p.X, p.Y, o.Size+object.PlayerPadding) {
			if w.hitPlayer() {
				continue
			}
		}
		kept = append(kept, o)
	}
	clear(w.obstacles[len(kept):])
	w.obstacles = kept
}

// updateEncounter drives the boss state machine. A finished game leaves the
// encounter exactly as it was.
func (w *World) updateEncounter(ctx object.UpdateContext) {
	if w.session.GameOver {
		return
	}
	res := w.encounter.step(ctx, w.rules.BossMaxHits, w.session.Score, w.player.X, w.player.Y)
	if res.spawned {
		w.emit(Event{Kind: EventBossSpawned})
	}
	if b := w.encounter.Boss; res.entering && b != nil {
		object.SpawnBurst(object.ParticleTrail, b.X, b.Y-b.Size/2, TrailParticles, w.noise, w)
	}
	w.bullets = append(w.bullets, res.volley...)
}

func (w *World) updateParticles(ctx object.UpdateContext) {
	kept := w.particles[:0]
	for _, p := range w.particles {
		p.Advance(ctx)
		if p.IsExpired(w.screen) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(w.particles[len(kept):])
	w.particles = kept
}

// levelUp advances the level and reports it.
func (w *World) levelUp() {
	w.session.LevelUp(w.rules)
	w.emit(Event{Kind: EventLevelUp})
}

// Session returns a copy of the session counters.
func (w *World) Session() SessionState {
	return w.session
}

// Rules returns the rules the world was created with.
func (w *World) Rules() config.Rules {
	return w.rules
}

// Screen returns the playfield.
func (w *World) Screen() object.Screen {
	return w.screen
}

// Player returns the ship.
func (w *World) Player() *object.Player {
	return w.player
}

// Effects returns the power-up effect timers.
func (w *World) Effects() *Effects {
	return w.effects
}

// Encounter returns the boss encounter state.
func (w *World) Encounter() Encounter {
	return w.encounter
}

// Events returns what happened during the last tick. The slice is reused by
// the next tick.
func (w *World) Events() []Event {
	return w.events
}

// Obstacles returns the live obstacles.
func (w *World) Obstacles() []*object.Obstacle {
	return w.obstacles
}

// Bullets returns the live bullets of both owners.
func (w *World) Bullets() []*object.Bullet {
	return w.bullets
}

// Particles returns the live particles.
func (w *World) Particles() []*object.Particle {
	return w.particles
}

// PowerUps returns the power-ups still drifting down.
func (w *World) PowerUps() []*object.PowerUp {
	return w.powerUps
}
