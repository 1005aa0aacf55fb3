// Package loop runs the game in an ANSI terminal: it reads keys and mouse
// reports, drives a game.Controller at a fixed frame rate and draws the field.
package loop

import (
	"bufio"
	"errors"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/protector/internal/draw"
	"github.com/tomz197/protector/internal/effect"
	"github.com/tomz197/protector/internal/game"
	"github.com/tomz197/protector/internal/input"
	"github.com/tomz197/protector/internal/object"
	"github.com/tomz197/protector/internal/physics"
)

// ErrInputClosed is returned by Run when the input reader ends.
var ErrInputClosed = errors.New("input closed")

// Cues receives sound events. *sound.Manager satisfies it.
type Cues interface {
	PlayHit(precise bool)
	PlayShot()
	PlayLose()
}

type nopCues struct{}

func (nopCues) PlayHit(bool) {}
func (nopCues) PlayShot()    {}
func (nopCues) PlayLose()    {}

// Options configures a Client. Zero values select defaults.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
	Cues         Cues
	Done         <-chan struct{} // Closed when the host shuts down
	Config       *game.Config    // nil uses game.DefaultConfig
	Rand         object.Rand     // Target spawning
	EffectRand   object.Rand     // Spark bursts, kept apart so hits never shift spawns
}

// Client runs one player's game on one terminal.
type Client struct {
	ctrl         *game.Controller
	effects      *effect.Layer
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates frame output for chunked writes
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	cues         Cues
	done         <-chan struct{}

	running       bool
	keyDir        float64 // -1 left, 1 right, 0 still
	lastInput     time.Time
	inactive      bool
	shuttingDown  bool
	shutdownTimer time.Duration

	// Previous frame's screen, to clear the terminal on transitions
	prevScene   game.SceneState
	wasInactive bool
	wasShutdown bool
	forceClear  bool
}

// NewClient creates a client reading from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts Options) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cues := opts.Cues
	if cues == nil {
		cues = nopCues{}
	}
	cfg := game.DefaultConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}

	rng := opts.Rand
	if rng == nil {
		rng = newRand()
	}
	effectRng := opts.EffectRand
	if effectRng == nil {
		effectRng = newRand()
	}

	ctrl, err := game.NewController(cfg, game.WithLogger(logger), game.WithRand(rng))
	if err != nil {
		return nil, err
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitField(termWidth, termHeight, MaxTermWidth, MaxTermHeight, cfg.Field())
	canvas := draw.NewCanvas(renderWidth, renderHeight, cfg.Field())
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		ctrl:         ctrl,
		effects:      effect.NewLayer(cfg.HitLabelLifetime, effectRng),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		logger:       logger,
		cues:         cues,
		done:         opts.Done,
		running:      true,
		lastInput:    time.Now(),
		forceClear:   true,
	}, nil
}

func newRand() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>1))
}

// Run starts the client loop. Blocks until the player quits, the input ends,
// the player idles out or the host shutdown notice runs out.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer func() {
		draw.DisableMouse(c.writer)
		draw.ShowCursor(c.writer)
	}()
	draw.ClearScreen(c.writer)

	lastTime := time.Now()
	var err error
	for c.running {
		frameStart := time.Now()
		dt := min(frameStart.Sub(lastTime), MaxFrameDelta)
		lastTime = frameStart

		c.applyInput(input.ReadInput(c.inputStream), frameStart)
		if c.inputStream.Closed() {
			err = ErrInputClosed
			break
		}
		c.checkShutdown()
		c.updateScreen()
		c.update(dt)

		if ferr := c.drawFrame(); ferr != nil {
			err = ferr
			break
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < TargetFrameTime {
			time.Sleep(TargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	c.logger.Debug("client stopped", "games", c.ctrl.Games(), "score", c.ctrl.CurrentScore())
	return err
}

// Controller returns the game driven by this client.
func (c *Client) Controller() *game.Controller {
	return c.ctrl
}

// applyInput tracks activity and maps keys and mouse reports onto the game.
func (c *Client) applyInput(in input.Input, now time.Time) {
	switch idle := now.Sub(c.lastInput); {
	case in.Any():
		c.lastInput = now
		c.inactive = false
	case idle > InactivityDisconnectUser:
		c.logger.Info("disconnecting inactive player", "idle", idle.Round(time.Second))
		c.running = false
	case idle > InactivityWarnUser:
		c.inactive = true
	}

	if in.Quit {
		c.running = false
	}
	if c.shuttingDown {
		return
	}

	switch c.ctrl.SceneState() {
	case game.ScenePlaying:
		c.keyDir = 0
		if in.Left {
			c.keyDir--
		}
		if in.Right {
			c.keyDir++
		}
		for range in.Shots {
			p := c.ctrl.TurretPosition()
			c.ctrl.SubmitDragStart(p)
			c.ctrl.SubmitDragEnd(p)
			c.cues.PlayShot()
		}
		for _, ev := range in.Mouse {
			c.applyMouse(ev)
		}

	case game.SceneGameOver:
		restart := in.Shots > 0 || in.Enter || in.Restart
		for _, ev := range in.Mouse {
			if ev.Action == input.MousePress && c.onPlayAgain(ev.Col, ev.Row) {
				restart = true
			}
		}
		if restart {
			c.restart()
		}
	}
}

// applyMouse forwards a mouse report as a drag event in field coordinates.
func (c *Client) applyMouse(ev input.MouseEvent) {
	p, ok := c.canvas.TerminalToField(ev.Col, ev.Row)
	if !ok {
		if ev.Action != input.MouseRelease {
			return
		}
		p = physics.Vec{X: -1, Y: -1} // Ends the gesture without a tap
	}
	switch ev.Action {
	case input.MousePress:
		c.ctrl.SubmitDragStart(p)
	case input.MouseDrag:
		c.ctrl.SubmitDragMove(p)
	case input.MouseRelease:
		c.ctrl.SubmitDragEnd(p)
	}
}

// restart leaves the game over screen.
func (c *Client) restart() {
	if !c.ctrl.RequestRestart() {
		return
	}
	c.inputStream.Reset()
	c.effects.Reset()
	c.keyDir = 0
	c.logger.Debug("restarted", "game", c.ctrl.Games())
}

// checkShutdown switches to the shutdown notice once the host is closing.
func (c *Client) checkShutdown() {
	if c.done == nil || c.shuttingDown {
		return
	}
	select {
	case <-c.done:
		c.shuttingDown = true
		c.shutdownTimer = ShutdownDisplay
	default:
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitField(termWidth, termHeight, MaxTermWidth, MaxTermHeight, c.canvas.Field())

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.forceClear = true
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// update advances the game and effects by dt.
func (c *Client) update(dt time.Duration) {
	if c.shuttingDown {
		c.shutdownTimer -= dt
		if c.shutdownTimer <= 0 {
			c.running = false
		}
		return
	}

	if c.ctrl.SceneState() == game.ScenePlaying && c.keyDir != 0 {
		c.moveTurret(c.keyDir * turretKeySpeed * dt.Seconds())
	}

	before := c.ctrl.SceneState()
	c.ctrl.Tick(dt)
	for _, h := range c.ctrl.LastHitEvents() {
		c.effects.AddHit(h)
		c.cues.PlayHit(h.Precise)
	}
	if before == game.ScenePlaying && c.ctrl.SceneState() == game.SceneGameOver {
		c.cues.PlayLose()
		c.effects.Reset()
		c.keyDir = 0
		c.logger.Info("game over", "score", c.ctrl.CurrentScore(), "game", c.ctrl.Games())
	}

	c.effects.Update(dt)
}

// moveTurret drags the turret by dx. A drag that would not move it is not
// sent, since one ending where it started is a tap and would fire.
func (c *Client) moveTurret(dx float64) {
	cfg := c.ctrl.Config()
	from := c.ctrl.TurretPosition()
	to := from
	to.X = physics.Clamp(from.X+dx, cfg.TurretSize.W/2, cfg.FieldWidth-cfg.TurretSize.W/2)
	if to == from {
		return
	}
	c.ctrl.SubmitDragStart(from)
	c.ctrl.SubmitDragMove(to)
	c.ctrl.SubmitDragEnd(to)
}
