package loop

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomz197/skydodge/internal/draw"
	"github.com/tomz197/skydodge/internal/game"
	"github.com/tomz197/skydodge/internal/object"
)

// frameKey identifies the overlay layout. A change forces a full clear so
// text from the previous layout does not persist on screen.
type frameKey struct {
	state    GameState
	inactive bool
	warning  bool
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	status := c.world.Status()

	key := frameKey{
		state:    c.state.GameState,
		inactive: c.state.isInactive,
		warning:  status.Phase == game.EncounterWarning,
	}
	if key != c.prevFrame {
		c.chunkWriter.Clear()
		c.canvas.ForceRedraw()
		c.prevFrame = key
	}

	c.canvas.Clear()
	c.world.Render(c.sink)

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.sink.writeLabels(c.chunkWriter)
	c.drawUI(status)

	return c.chunkWriter.Flush()
}

// drawUI draws the UI overlay for the current screen.
func (c *Client) drawUI(status game.Status) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth/2 + 1
	centerY := termHeight/2 + 1

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStatePlaying:
		c.drawPlayingHUD(termWidth, termHeight, status)
	case GameStateOver:
		c.drawPlayingHUD(termWidth, termHeight, status)
		c.drawGameOverScreen(centerX, centerY, status)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.chunkWriter.WriteCentered(centerX, centerY-2, "INACTIVITY WARNING")
	left := int((InactivityDisconnectUser - time.Since(c.lastInput)).Seconds())
	c.chunkWriter.WriteCentered(centerX, centerY, fmt.Sprintf("Disconnecting in %d seconds", max(left, 0)))
	c.chunkWriter.WriteCentered(centerX, centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notice.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.chunkWriter.WriteCentered(centerX, centerY-2, "SERVER SHUTTING DOWN")
	c.chunkWriter.WriteCentered(centerX, centerY, fmt.Sprintf("Final score: %d", c.world.Session().Score))
	c.chunkWriter.WriteCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds", int(c.state.shutdownTimer+0.999)))
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		` ___ _  ____   _____   ___  ___   ___ ___ `,
		`/ __| |/ /\ \ / /   \ / _ \|   \ / __| __|`,
		`\__ \ ' <  \ V /| |) | (_) | |) | (_ | _| `,
		`|___/_|\_\  |_| |___/ \___/|___/ \___|___|`,
	}
	if len(titleArt[0]) > c.canvas.TerminalWidth() {
		titleArt = []string{"S K Y D O D G E"}
	}

	titleStartY := centerY - 8
	for i, line := range titleArt {
		c.chunkWriter.WriteCentered(centerX, titleStartY+i, line)
	}
	c.chunkWriter.WriteCentered(centerX, titleStartY+len(titleArt)+1, "~ dodge, shoot, survive ~")

	controlsY := titleStartY + len(titleArt) + 3
	controlLines := []string{
		"Arrows / WASD . . Move",
		"SPACE . . . . . . Fire",
		"R . . . . . .  Restart",
		"Q . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.chunkWriter.WriteCentered(centerX, controlsY+i, line)
	}

	// Blinking start prompt
	prompt := ">>  Press SPACE to Start  <<"
	if time.Now().UnixMilli()/600%2 != 0 {
		prompt = strings.Repeat(" ", len(prompt))
	}
	c.chunkWriter.WriteCentered(centerX, controlsY+len(controlLines)+2, prompt)
}

// drawPlayingHUD draws the HUD rows above and below the playfield.
// Fields are padded to the playfield width so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight int, status game.Status) {
	top := fmt.Sprintf("Score %-7d Lv %-2d %s",
		status.Score, status.Level, draw.ProgressBar(status.LevelProgress, status.LevelThreshold, 10))
	if status.Combo > 1 {
		top += fmt.Sprintf(" x%d", status.Combo)
	}
	c.chunkWriter.WritePadded(1, 0, termWidth, top)

	var bottom string
	switch status.Phase {
	case game.EncounterEntering, game.EncounterActive:
		bottom = "BOSS " + draw.ProgressBar(status.BossMaxHits-status.BossHits, status.BossMaxHits, 12)
	default:
		bottom = effectsLine(status.Effects)
	}
	if c.state.banner.text != "" {
		bottom = c.state.banner.text + "  " + bottom
	}
	c.chunkWriter.WritePadded(1, termHeight+1, termWidth, bottom)

	if status.Phase == game.EncounterWarning && status.WarningLeft/15%2 == 0 {
		const warning = "!! WARNING !!"
		c.chunkWriter.WriteColored(termWidth/2+1-len(warning)/2, termHeight/3, draw.ColorRed, warning)
		c.chunkWriter.WriteCentered(termWidth/2+1, termHeight/3+1, "BOSS APPROACHING")
	} else if status.Phase == game.EncounterWarning {
		c.chunkWriter.WriteCentered(termWidth/2+1, termHeight/3, "             ")
		c.chunkWriter.WriteCentered(termWidth/2+1, termHeight/3+1, "                ")
	}
}

// effectsLine lists active effects with their remaining whole seconds.
func effectsLine(effects []game.ActiveEffect) string {
	parts := make([]string, 0, len(effects))
	for _, e := range effects {
		secs := (e.Remaining + game.TicksPerSecond - 1) / game.TicksPerSecond
		parts = append(parts, fmt.Sprintf("%s %ds", effectNames[e.Type], secs))
	}
	return strings.Join(parts, "  ")
}

var effectNames = map[object.PowerUpType]string{
	object.SpreadShot: "spread",
	object.RapidFire:  "rapid",
	object.Shield:     "shield",
	object.SpeedBoost: "speed",
}

// drawGameOverScreen draws the final score, the identifier prompt and the
// submission status.
func (c *Client) drawGameOverScreen(centerX, centerY int, status game.Status) {
	const title = "G A M E   O V E R"
	c.chunkWriter.WriteColored(centerX-len(title)/2, centerY-4, draw.ColorRed, title)
	c.chunkWriter.WriteCentered(centerX, centerY-2, fmt.Sprintf("Score %d   Level %d", status.Score, status.Level))

	width := c.canvas.TerminalWidth() - 2
	line := ""
	switch {
	case c.prompt.Editing():
		cursor := " "
		if time.Now().UnixMilli()/400%2 == 0 {
			cursor = "_"
		}
		line = "Name: " + c.prompt.ID() + cursor
		if n := utf8.RuneCountInString(line); n > width {
			line = string([]rune(line)[n-width:])
		}
	case c.prompt.Message() != "":
		line = c.prompt.Message()
	case c.prompt.CanSubmit():
		line = "ENTER  submit score"
	}
	c.chunkWriter.WritePadded(2, centerY, width, centerText(line, width))

	hint := "R restart   Q quit"
	if c.prompt.Editing() {
		hint = "ENTER submit   ESC cancel"
	}
	c.chunkWriter.WritePadded(2, centerY+2, width, centerText(hint, width))
}

// centerText pads s on the left to center it within width cells.
func centerText(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}
