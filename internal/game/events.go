package game

import "github.com/tomz197/skydodge/internal/object"

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventKill         EventKind = iota // Player bullet destroyed an obstacle
	EventShieldBlock                   // Shield absorbed a hit
	EventPowerUp                       // Power-up collected
	EventLevelUp                       // Level advanced
	EventBossWarning                   // Boss sequence armed
	EventBossSpawned                   // Boss started entering
	EventBossHit                       // Boss took a registered hit
	EventBossDefeated                  // Boss destroyed
	EventGameOver                      // Player destroyed
)

func (k EventKind) String() string {
	switch k {
	case EventKill:
		return "kill"
	case EventShieldBlock:
		return "shield-block"
	case EventPowerUp:
		return "powerup"
	case EventLevelUp:
		return "level-up"
	case EventBossWarning:
		return "boss-warning"
	case EventBossSpawned:
		return "boss-spawned"
	case EventBossHit:
		return "boss-hit"
	case EventBossDefeated:
		return "boss-defeated"
	case EventGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Event is emitted by World.Tick. Fields not relevant to Kind are zero.
type Event struct {
	Kind    EventKind
	Tick    uint64
	Score   int // Session score after the event
	Level   int
	Combo   int                // EventKill
	PowerUp object.PowerUpType // EventPowerUp
}
