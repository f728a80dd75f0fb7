package game

import "github.com/tomz197/skydodge/internal/object"

// SpreadBullets is the fan size while spreadShot is active.
const SpreadBullets = 3

// Effect is the state of one power-up effect.
type Effect struct {
	Active    bool
	Remaining int // Ticks until the effect expires
}

// Effects tracks the timed power-up effects of a session. Every type has its
// own timer; any combination may be active at once.
type Effects struct {
	timers      map[object.PowerUpType]Effect
	bulletCount int
}

// NewEffects returns an effect set with nothing active.
func NewEffects() *Effects {
	e := &Effects{}
	e.Reset()
	return e
}

// Reset deactivates every effect.
func (e *Effects) Reset() {
	e.timers = make(map[object.PowerUpType]Effect, len(object.PowerUpTypes))
	for _, t := range object.PowerUpTypes {
		e.timers[t] = Effect{}
	}
	e.bulletCount = 1
}

// Get returns the state of effect t.
func (e *Effects) Get(t object.PowerUpType) Effect {
	return e.timers[t]
}

// Active reports whether effect t is running.
func (e *Effects) Active(t object.PowerUpType) bool {
	return e.timers[t].Active
}

// BulletCount is the number of bullets fired per shot.
func (e *Effects) BulletCount() int {
	return e.bulletCount
}

// Apply activates effect t for duration ticks, restarting the timer if it is
// already running, and applies its change to p.
func (e *Effects) Apply(t object.PowerUpType, duration int, p *object.Player) {
	e.timers[t] = Effect{Active: true, Remaining: duration}
	switch t {
	case object.SpreadShot:
		e.bulletCount = SpreadBullets
	case object.SpeedBoost:
		if p != nil {
			p.Speed = object.PlayerBoostSpeed
		}
	case object.Shield:
		if p != nil {
			p.Shielded = true
		}
	case object.RapidFire:
		// Read by the firing controller.
	}
}

// ConsumeShield spends an active shield on one hit. It reports whether a
// shield absorbed the hit.
func (e *Effects) ConsumeShield(p *object.Player) bool {
	if !e.timers[object.Shield].Active {
		return false
	}
	e.expire(object.Shield, p)
	return true
}

// Tick counts every active effect down by one tick and reverts the ones that
// run out.
func (e *Effects) Tick(p *object.Player) {
	for t, eff := range e.timers {
		if !eff.Active {
			continue
		}
		eff.Remaining--
		if eff.Remaining <= 0 {
			e.expire(t, p)
			continue
		}
		e.timers[t] = eff
	}
}

func (e *Effects) expire(t object.PowerUpType, p *object.Player) {
	e.timers[t] = Effect{}
	switch t {
	case object.SpreadShot:
		e.bulletCount = 1
	case object.SpeedBoost:
		if p != nil {
			p.Speed = object.PlayerSpeed
		}
	case object.Shield:
		if p != nil {
			p.Shielded = false
		}
	case object.RapidFire:
	}
}
