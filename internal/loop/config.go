package loop

import (
	"time"

	"github.com/tomz197/skydodge/internal/game"
)

// Client rendering. One frame advances the world by exactly one tick.
const (
	TargetFPS       = game.TicksPerSecond
	TargetFrameTime = game.TickDuration
)

// Render area limits in terminal cells. Larger terminals get a centered,
// bordered playfield.
const (
	MaxTermWidth  = 90
	MaxTermHeight = 60

	hudRows = 1 // Text rows kept free above and below the playfield
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)

// bannerFrames is how long an event banner stays on the HUD.
const bannerFrames = 90
