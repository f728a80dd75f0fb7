package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/skydodge/internal/game"
)

// frameInput is everything Update needs from the keyboard and mouse.
type frameInput struct {
	intent    game.Intent
	enter     bool
	escape    bool
	backspace bool
	quit      bool
	chars     []rune // Text typed this frame
}

// Backspace repeats after this many ticks held, every backspaceRepeat ticks.
const (
	backspaceDelay  = 30
	backspaceRepeat = 4
)

func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func axis(neg, pos bool) int {
	switch {
	case neg && !pos:
		return -1
	case pos && !neg:
		return 1
	default:
		return 0
	}
}

func (g *Game) readInput() frameInput {
	var in frameInput

	in.intent.H = axis(anyPressed(ebiten.KeyArrowLeft, ebiten.KeyA), anyPressed(ebiten.KeyArrowRight, ebiten.KeyD))
	in.intent.V = axis(anyPressed(ebiten.KeyArrowUp, ebiten.KeyW), anyPressed(ebiten.KeyArrowDown, ebiten.KeyS))
	in.intent.Fire = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	in.intent.FireHeld = ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	in.intent.Restart = inpututil.IsKeyJustPressed(ebiten.KeyR)

	// Holding the left button steers the ship to the cursor.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		in.intent.Pointer = &game.Pointer{X: float64(x), Y: float64(y)}
	}

	in.enter = inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter)
	in.escape = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	in.quit = inpututil.IsKeyJustPressed(ebiten.KeyQ)

	d := inpututil.KeyPressDuration(ebiten.KeyBackspace)
	in.backspace = d == 1 || (d >= backspaceDelay && (d-backspaceDelay)%backspaceRepeat == 0)

	g.chars = ebiten.AppendInputChars(g.chars[:0])
	in.chars = g.chars
	return in
}
