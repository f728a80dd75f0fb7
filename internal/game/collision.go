package game

import (
	"github.com/tomz197/skydodge/internal/object"
	"github.com/tomz197/skydodge/internal/physics"
)

// updateBullets moves bullets, drops the ones that left the playfield and
// resolves their hits. Each bullet consumes at most one target.
func (w *World) updateBullets(ctx object.UpdateContext) {
	kept := w.bullets[:0]
	for _, b := range w.bullets {
		b.Advance(ctx)
		if !b.IsExpired(w.screen) {
			kept = append(kept, b)
		}
	}
	clear(w.bullets[len(kept):])
	w.bullets = kept

	w.indexObstacles()

	kept = w.bullets[:0]
	for _, b := range w.bullets {
		if !w.resolveBullet(b) {
			kept = append(kept, b)
		}
	}
	clear(w.bullets[len(kept):])
	w.bullets = kept

	w.removeConsumedObstacles()
}

// indexObstacles rebuilds the broad-phase grid for this tick's obstacles.
func (w *World) indexObstacles() {
	cell := object.ObstacleMaxSize
	for _, o := range w.obstacles {
		cell = max(cell, o.Size)
	}
	if w.grid == nil || cell != w.grid.CellSize() {
		w.grid = physics.NewGrid(w.screen.Width, w.screen.Height, cell)
	}
	w.grid.Reset()

	if cap(w.obsDead) < len(w.obstacles) {
		w.obsDead = make([]bool, len(w.obstacles))
	}
	w.obsDead = w.obsDead[:len(w.obstacles)]
	clear(w.obsDead)
	w.clearObs = false

	for i, o := range w.obstacles {
		w.grid.Add(o.X, o.Y, i)
	}
}

func (w *World) removeConsumedObstacles() {
	if w.clearObs {
		clear(w.obstacles)
		w.obstacles = w.obstacles[:0]
		return
	}
	kept := w.obstacles[:0]
	for i, o := range w.obstacles {
		if !w.obsDead[i] {
			kept = append(kept, o)
		}
	}
	clear(w.obstacles[len(kept):])
	w.obstacles = kept
}

// resolveBullet applies the hit of b, if any. It reports whether b was
// consumed.
func (w *World) resolveBullet(b *object.Bullet) bool {
	if b.Enemy {
		p := w.player
		if p.Destroyed || !physics.CirclesOverlap(b.X, b.Y, b.Radius, p.X, p.Y, object.PlayerPadding) {
			return false
		}
		w.hitPlayer()
		return true
	}

	if boss := w.encounter.Boss; boss != nil && physics.PointInCircle(b.X, b.Y, boss.X, boss.Y, boss.Radius()) {
		switch boss.Hit() {
		case object.HitRegistered:
			object.SpawnBurst(object.ParticleSpark, b.X, b.Y, BossHitParticles, w.noise, w)
			w.emit(Event{Kind: EventBossHit})
			return true
		case object.HitDefeated:
			w.defeatBoss(boss)
			return true
		case object.HitIgnored:
			// Invulnerable bosses let bullets pass.
		}
	}

	idx := w.firstObstacleHit(b)
	if idx < 0 {
		return false
	}
	w.obsDead[idx] = true
	w.killObstacle(w.obstacles[idx])
	return true
}

// firstObstacleHit returns the lowest index of a live obstacle containing
// the bullet, or -1.
func (w *World) firstObstacleHit(b *object.Bullet) int {
	if w.clearObs {
		return -1
	}
	return w.grid.Lowest(b.X, b.Y, func(i int) bool {
		o := w.obstacles[i]
		return !w.obsDead[i] && physics.PointInCircle(b.X, b.Y, o.X, o.Y, o.Size)
	})
}

// killObstacle scores a kill and handles the level threshold.
func (w *World) killObstacle(o *object.Obstacle) {
	object.SpawnBurst(object.ParticleExplosion, o.X, o.Y, KillParticles, w.noise, w)

	combo := w.session.RegisterKill(w.session.Clock(), w.rules.ComboWindow)
	w.emit(Event{Kind: EventKill, Combo: combo})

	if !w.session.ThresholdReached() {
		return
	}
	if !w.rules.Boss {
		w.levelUp()
		return
	}
	if w.encounter.Arm(w.rules.WarningTicks) {
		w.clearObs = true
		w.emit(Event{Kind: EventBossWarning})
	}
}

func (w *World) defeatBoss(boss *object.Boss) {
	object.SpawnBurst(object.ParticleExplosion, boss.X, boss.Y, BossDefeatParticles, w.noise, w)
	w.encounter.Defeat()
	w.session.Score += w.rules.BossReward
	w.emit(Event{Kind: EventBossDefeated})
	w.levelUp()
}

// hitPlayer resolves a hit on the ship. A shield absorbs it and is used up;
// otherwise the ship is destroyed and the game ends. It reports whether the
// shield absorbed the hit.
func (w *World) hitPlayer() bool {
	p := w.player
	if w.effects.ConsumeShield(p) {
		object.SpawnBurst(object.ParticleShield, p.X, p.Y, ShieldParticles, w.noise, w)
		w.emit(Event{Kind: EventShieldBlock})
		return true
	}
	p.Destroyed = true
	w.session.GameOver = true
	object.SpawnBurst(object.ParticleExplosion, p.X, p.Y, ExplosionParticles, w.noise, w)
	return false
}
