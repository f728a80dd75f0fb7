package loop

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skydodge/internal/config"
	"github.com/tomz197/skydodge/internal/draw"
	"github.com/tomz197/skydodge/internal/game"
	"github.com/tomz197/skydodge/internal/input"
	"github.com/tomz197/skydodge/internal/leaderboard"
	"github.com/tomz197/skydodge/internal/object"
)

// Client handles rendering and input for a single connection.
type Client struct {
	world        *game.World
	state        *ClientState
	prompt       leaderboard.Prompt
	canvas       *draw.Canvas
	sink         *canvasSink
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	submitter    *leaderboard.Submitter
	logger       *log.Logger
	defaultID    string
	shutdown     <-chan struct{}
	prevFrame    frameKey
}

// Options configures the client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Rules        config.Rules // Zero value means config.DefaultRules
	Seed         int64
	NoiseSeed    int64
	Submitter    *leaderboard.Submitter // Nil disables score submission
	Logger       *log.Logger
	DefaultID    string          // Prefilled identifier on the game-over screen
	Shutdown     <-chan struct{} // Closed when the host is going down
}

// NewClient creates a client with a fresh world.
func NewClient(r *bufio.Reader, w io.Writer, opts Options) (*Client, error) {
	world, err := game.NewWorld(game.Options{
		Rules:     opts.Rules,
		Seed:      opts.Seed,
		NoiseSeed: opts.NoiseSeed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create world: %w", err)
	}

	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	screen := world.Screen()
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, screen.Width, screen.Height)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)
	chunkWriter.TrackText(canvas)

	return &Client{
		world:        world,
		state:        NewClientState(),
		canvas:       canvas,
		sink:         &canvasSink{canvas: canvas},
		chunkWriter:  chunkWriter,
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		submitter:    opts.Submitter,
		logger:       logger,
		defaultID:    opts.DefaultID,
		shutdown:     opts.Shutdown,
	}, nil
}

// Run starts the client loop. Blocks until the client disconnects.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	c.logger.Info("Session started")
	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processShutdown()
		c.updateScreen()
		c.update()

		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < TargetFrameTime {
			time.Sleep(TargetFrameTime - elapsed)
		}
	}

	s := c.world.Session()
	c.logger.Info("Session ended", "score", s.Score, "level", s.Level)
	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads the keys of this frame and tracks inactivity.
func (c *Client) processInput() {
	if c.inputStream.Closed() {
		c.state.Running = false
		return
	}
	c.state.Input = input.ReadInput(c.inputStream)

	idle := time.Since(c.lastInput)
	switch {
	case c.state.Input.Active():
		c.lastInput = time.Now()
		c.state.isInactive = false
	case idle > InactivityDisconnectUser:
		c.logger.Info("Disconnecting inactive session")
		c.state.Running = false
	case idle > InactivityWarnUser:
		c.state.isInactive = true
	}
}

// processShutdown switches to the shutdown screen once the host announces it.
func (c *Client) processShutdown() {
	if c.state.GameState == GameStateShutdown {
		return
	}
	select {
	case <-c.shutdown:
		c.state.GameState = GameStateShutdown
		c.state.shutdownTimer = ShutdownDisplaySeconds
	default:
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.Clear()
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize fits the portrait playfield into the terminal, keeping the
// HUD rows free, and computes the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	maxCols := min(termWidth, MaxTermWidth)
	maxRows := min(termHeight-2*hudRows, MaxTermHeight)
	renderWidth, renderHeight = draw.FitAspect(maxCols, maxRows, object.FieldWidth, object.FieldHeight)
	offsetCol = max(0, (termWidth-renderWidth)/2)
	offsetRow = max(0, (termHeight-renderHeight)/2)
	return
}

// update advances the current screen by one frame.
func (c *Client) update() {
	in := c.state.Input
	c.prompt.Poll()
	c.state.banner.tick()

	// Ctrl+C always leaves; q only when it is not being typed.
	if in.Interrupt || (in.Quit && !c.prompt.Editing()) {
		c.state.Running = false
		return
	}

	switch c.state.GameState {
	case GameStateStart:
		c.updateStartState(in)
	case GameStatePlaying:
		c.updatePlayingState(in)
	case GameStateOver:
		c.updateOverState(in)
	case GameStateShutdown:
		c.updateShutdownState()
	}
}

// updateStartState handles the start screen.
func (c *Client) updateStartState(in input.Input) {
	if in.Fire || in.Enter {
		c.state.GameState = GameStatePlaying
	}
}

// updatePlayingState ticks the world with the player's intent.
func (c *Client) updatePlayingState(in input.Input) {
	c.world.Tick(in.Intent())
	c.handleEvents()
	if c.world.Session().GameOver {
		c.state.GameState = GameStateOver
	}
}

// updateOverState handles the game-over screen: identifier entry,
// submission and restart.
func (c *Client) updateOverState(in input.Input) {
	if c.prompt.Editing() {
		switch {
		case in.Escape:
			c.prompt.Cancel()
		case in.Enter:
			c.prompt.Submit(c.submitter, c.world.Session().Score)
		case in.Backspace:
			c.prompt.Backspace()
		default:
			c.prompt.Type(in.Pressed)
		}
		return
	}

	if in.Enter && c.prompt.CanSubmit() {
		c.prompt.Begin(c.defaultID)
		return
	}

	// The finished world ignores everything but a restart.
	c.world.Tick(in.Intent())
	if !c.world.Session().GameOver {
		c.logger.Debug("Restarted")
		c.prompt.Reset()
		c.state.GameState = GameStatePlaying
	}
}

// handleEvents logs the events of the last tick and raises HUD banners.
func (c *Client) handleEvents() {
	for _, ev := range c.world.Events() {
		switch ev.Kind {
		case game.EventLevelUp:
			c.logger.Debug("Level up", "level", ev.Level, "score", ev.Score)
			c.state.banner.show("LEVEL %d", ev.Level)
		case game.EventPowerUp:
			c.state.banner.show("+ %s", ev.PowerUp)
		case game.EventShieldBlock:
			c.state.banner.show("SHIELD BLOCKED")
		case game.EventBossSpawned:
			c.logger.Debug("Boss spawned", "level", ev.Level)
		case game.EventBossDefeated:
			c.logger.Info("Boss defeated", "level", ev.Level, "score", ev.Score)
			c.state.banner.show("BOSS DEFEATED")
		case game.EventGameOver:
			c.logger.Info("Game over", "score", ev.Score, "level", ev.Level)
		}
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
