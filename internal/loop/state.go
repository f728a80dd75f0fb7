package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/skydodge/internal/input"
)

// GameState represents the current screen of a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateOver                      // Game over, score submission and restart prompt
	GameStateShutdown                  // Server is shutting down
)

func (s GameState) String() string {
	switch s {
	case GameStateStart:
		return "start"
	case GameStatePlaying:
		return "playing"
	case GameStateOver:
		return "over"
	case GameStateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// ClientState holds the per-connection presentation state.
type ClientState struct {
	Input         input.Input
	GameState     GameState
	Running       bool
	delta         time.Duration
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool
	banner        banner
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
	}
}

// banner is a short HUD message triggered by a game event.
type banner struct {
	text   string
	frames int
}

func (b *banner) show(format string, args ...any) {
	b.text = fmt.Sprintf(format, args...)
	b.frames = bannerFrames
}

func (b *banner) tick() {
	if b.frames > 0 {
		b.frames--
	}
	if b.frames == 0 {
		b.text = ""
	}
}
