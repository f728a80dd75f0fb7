// Package desktop runs the simulation in an ebiten window with keyboard and
// mouse control.
package desktop

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/skydodge/internal/config"
	"github.com/tomz197/skydodge/internal/game"
	"github.com/tomz197/skydodge/internal/leaderboard"
)

// screen is the window's current view.
type screen int

const (
	screenTitle screen = iota
	screenPlaying
	screenOver
)

// Options configures the desktop game.
type Options struct {
	Rules     config.Rules // Zero value means config.DefaultRules
	Seed      int64
	NoiseSeed int64
	Submitter *leaderboard.Submitter // Nil disables score submission
	Logger    *log.Logger
	DefaultID string
}

// Game implements ebiten.Game. Update advances the world by exactly one tick,
// so the simulation runs at ebiten's default 60 TPS.
type Game struct {
	world     *game.World
	screen    screen
	prompt    leaderboard.Prompt
	submitter *leaderboard.Submitter
	logger    *log.Logger
	defaultID string
	chars     []rune
}

// New creates a game with a fresh world.
func New(opts Options) (*Game, error) {
	world, err := game.NewWorld(game.Options{
		Rules:     opts.Rules,
		Seed:      opts.Seed,
		NoiseSeed: opts.NoiseSeed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create world: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Game{
		world:     world,
		submitter: opts.Submitter,
		logger:    logger,
		defaultID: opts.DefaultID,
	}, nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	return g.update(g.readInput())
}

// Layout implements ebiten.Game. The logical screen is the playfield.
func (g *Game) Layout(_, _ int) (int, int) {
	s := g.world.Screen()
	return int(s.Width), int(s.Height)
}

// update advances the current view by one frame.
func (g *Game) update(in frameInput) error {
	g.prompt.Poll()

	if in.quit && !g.prompt.Editing() {
		return ebiten.Termination
	}

	switch g.screen {
	case screenTitle:
		if in.intent.Fire || in.enter {
			g.screen = screenPlaying
		}
	case screenPlaying:
		g.world.Tick(in.intent)
		g.logEvents()
		if g.world.Session().GameOver {
			g.screen = screenOver
		}
	case screenOver:
		g.updateOver(in)
	}
	return nil
}

// updateOver handles identifier entry, submission and restart.
func (g *Game) updateOver(in frameInput) {
	if g.prompt.Editing() {
		switch {
		case in.escape:
			g.prompt.Cancel()
		case in.enter:
			g.prompt.Submit(g.submitter, g.world.Session().Score)
		case in.backspace:
			g.prompt.Backspace()
		default:
			g.prompt.Type([]byte(string(in.chars)))
		}
		return
	}

	if in.enter && g.prompt.CanSubmit() {
		g.prompt.Begin(g.defaultID)
		return
	}

	g.world.Tick(in.intent)
	if !g.world.Session().GameOver {
		g.prompt.Reset()
		g.screen = screenPlaying
	}
}

func (g *Game) logEvents() {
	for _, ev := range g.world.Events() {
		switch ev.Kind {
		case game.EventLevelUp:
			g.logger.Debug("Level up", "level", ev.Level, "score", ev.Score)
		case game.EventBossDefeated:
			g.logger.Info("Boss defeated", "level", ev.Level, "score", ev.Score)
		case game.EventGameOver:
			g.logger.Info("Game over", "score", ev.Score, "level", ev.Level)
		}
	}
}
