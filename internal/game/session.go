package game

import (
	"time"

	"github.com/tomz197/skydodge/internal/config"
)

// TicksPerSecond is the nominal simulation rate.
const TicksPerSecond = 60

// TickDuration is the frame period of a fixed-rate loop, rounded down to
// whole nanoseconds. Session time uses Clock instead.
const TickDuration = time.Second / TicksPerSecond

// SessionState holds the per-game counters. It is owned by a World and
// reset to NewSession defaults on restart.
type SessionState struct {
	Score          int
	Combo          int
	LastHit        time.Duration // Session clock at the most recent kill
	Level          int
	LevelProgress  int // Kills since the last level-up
	LevelThreshold int // Kills needed for the next level-up
	SpawnInterval  int // Ticks between obstacle spawns
	GameOver       bool
	Tick           uint64 // Ticks simulated since the session started
}

// NewSession returns the starting counters for rules.
func NewSession(rules config.Rules) SessionState {
	return SessionState{
		Level:          1,
		LevelThreshold: rules.LevelThreshold,
		SpawnInterval:  rules.SpawnInterval,
	}
}

// Clock is the session time derived from the tick counter. It is exact at
// whole seconds: TicksPerSecond ticks are one second.
func (s *SessionState) Clock() time.Duration {
	return time.Duration(s.Tick) * time.Second / TicksPerSecond
}

// RegisterKill updates the combo for a kill at now, adds the combo value to
// the score and counts the kill towards the next level. It returns the combo
// that was scored.
func (s *SessionState) RegisterKill(now, window time.Duration) int {
	if s.Combo > 0 && now-s.LastHit < window {
		s.Combo++
	} else {
		s.Combo = 1
	}
	s.LastHit = now
	s.Score += s.Combo
	s.LevelProgress++
	return s.Combo
}

// ThresholdReached reports whether enough kills were made for a level-up.
func (s *SessionState) ThresholdReached() bool {
	return s.LevelProgress >= s.LevelThreshold
}

// LevelUp advances the level, widens the threshold and shortens the spawn
// interval down to the configured floor.
func (s *SessionState) LevelUp(rules config.Rules) {
	s.Level++
	s.LevelProgress = 0
	s.LevelThreshold += rules.ThresholdStep
	s.SpawnInterval = max(rules.SpawnFloor, rules.SpawnInterval-s.Level*rules.SpawnStep)
}
