package game

import "github.com/tomz197/skydodge/internal/object"

// Sink draws sprites. It never affects the simulation.
type Sink interface {
	DrawSprite(s object.Sprite)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(s object.Sprite)

// DrawSprite calls f(s).
func (f SinkFunc) DrawSprite(s object.Sprite) {
	f(s)
}

// Render hands every visible entity to sink, back to front: stars,
// power-ups, obstacles, boss, bullets, particles, player.
func (w *World) Render(sink Sink) {
	for _, st := range w.stars {
		sink.DrawSprite(st.Sprite())
	}
	for _, pu := range w.powerUps {
		sink.DrawSprite(pu.Sprite())
	}
	for _, o := range w.obstacles {
		sink.DrawSprite(o.Sprite())
	}
	if b := w.encounter.Boss; b != nil {
		sink.DrawSprite(b.Sprite())
	}
	for _, b := range w.bullets {
		sink.DrawSprite(b.Sprite())
	}
	for _, p := range w.particles {
		sink.DrawSprite(p.Sprite())
	}
	if !w.player.Destroyed {
		sink.DrawSprite(w.player.Sprite())
	}
}

// ActiveEffect is a running power-up effect, for HUDs.
type ActiveEffect struct {
	Type      object.PowerUpType
	Remaining int
}

// Status is a HUD snapshot of a world.
type Status struct {
	SessionState
	Phase       EncounterPhase
	WarningLeft int
	BossHits    int
	BossMaxHits int
	Effects     []ActiveEffect // In object.PowerUpTypes order
}

// Status returns the HUD snapshot for the current tick.
func (w *World) Status() Status {
	st := Status{
		SessionState: w.session,
		Phase:        w.encounter.Phase,
		WarningLeft:  w.encounter.WarningLeft,
	}
	if b := w.encounter.Boss; b != nil {
		st.BossHits = b.HitCount
		st.BossMaxHits = b.MaxHits
	}
	for _, t := range object.PowerUpTypes {
		if e := w.effects.Get(t); e.Active {
			st.Effects = append(st.Effects, ActiveEffect{Type: t, Remaining: e.Remaining})
		}
	}
	return st
}
