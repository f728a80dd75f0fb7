package game

import "github.com/tomz197/skydodge/internal/object"

// EncounterPhase is the state of the boss encounter.
type EncounterPhase int

const (
	EncounterDormant  EncounterPhase = iota // No boss; obstacles spawn normally
	EncounterWarning                        // Countdown before the boss appears
	EncounterEntering                       // Boss sliding in from above
	EncounterActive                         // Boss moving and firing
	EncounterDefeated                       // Boss destroyed this tick
)

func (p EncounterPhase) String() string {
	switch p {
	case EncounterDormant:
		return "dormant"
	case EncounterWarning:
		return "warning"
	case EncounterEntering:
		return "entering"
	case EncounterActive:
		return "active"
	case EncounterDefeated:
		return "defeated"
	default:
		return "unknown"
	}
}

// Encounter drives a single boss fight: Dormant, Warning, Entering, Active,
// Defeated, then Dormant again.
type Encounter struct {
	Phase       EncounterPhase
	Boss        *object.Boss // Non-nil while Entering or Active
	WarningLeft int          // Ticks left in the warning

	settling bool // Defeated during the current tick
}

// Running reports whether an encounter suspends obstacle spawning. A
// defeated boss releases the spawn gate on the tick it falls.
func (e *Encounter) Running() bool {
	return e.Phase != EncounterDormant && e.Phase != EncounterDefeated
}

// Arm starts the warning. It is a no-op unless the encounter is dormant.
func (e *Encounter) Arm(warningTicks int) bool {
	if e.Phase != EncounterDormant {
		return false
	}
	e.Phase = EncounterWarning
	e.WarningLeft = warningTicks
	return true
}

// Defeat removes the boss. The encounter stays Defeated until the end of the
// following tick, then returns to Dormant.
func (e *Encounter) Defeat() {
	e.Phase = EncounterDefeated
	e.Boss = nil
	e.settling = true
}

// Reset discards any encounter in progress.
func (e *Encounter) Reset() {
	*e = Encounter{}
}

// encounterStep is what a world needs to know after driving the encounter.
type encounterStep struct {
	spawned  bool             // Boss was created this tick
	entering bool             // Boss is still sliding in
	volley   []*object.Bullet // Bullets fired this tick
}

// step advances the encounter by one tick. score feeds the boss difficulty
// and (px, py) is the aim point for targeted patterns.
func (e *Encounter) step(ctx object.UpdateContext, maxHits, score int, px, py float64) encounterStep {
	var out encounterStep

	switch e.Phase {
	case EncounterDormant:
		return out
	case EncounterDefeated:
		if e.settling {
			e.settling = false
			return out
		}
		e.Phase = EncounterDormant
		return out
	case EncounterWarning:
		e.WarningLeft--
		if e.WarningLeft > 0 {
			return out
		}
		e.Boss = object.NewBoss(ctx.Screen, maxHits)
		e.Boss.SetScore(score)
		e.Phase = EncounterEntering
		out.spawned = true
		out.entering = true
		return out
	}

	b := e.Boss
	if b == nil {
		e.Phase = EncounterDormant
		return out
	}

	b.SetScore(score)
	b.Advance(ctx)
	if b.Entering {
		out.entering = true
		return out
	}

	e.Phase = EncounterActive
	if b.ShouldFire() {
		out.volley = b.Volley(px, py)
	}
	return out
}
