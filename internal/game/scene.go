package game

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/protector/internal/object"
	"github.com/tomz197/protector/internal/physics"
)

// SceneState is the top-level phase a host renders.
type SceneState int

const (
	ScenePlaying  SceneState = iota // A session is running
	SceneGameOver                   // Showing the final score, waiting for restart
)

// String returns a readable scene name.
func (s SceneState) String() string {
	switch s {
	case ScenePlaying:
		return "playing"
	case SceneGameOver:
		return "game over"
	default:
		return fmt.Sprintf("SceneState(%d)", int(s))
	}
}

// scene is the tagged controller state. session is set only while playing,
// finalScore only after the game is over.
type scene struct {
	state      SceneState
	session    *Session
	finalScore int
}

// InputKind identifies a queued pointer event.
type InputKind int

const (
	InputDragStart InputKind = iota
	InputDragMove
	InputDragEnd
)

// InputEvent is a pointer event waiting for the next tick.
type InputEvent struct {
	Kind InputKind
	Pos  physics.Vec
}

// Controller is the host-facing entry point. It owns the active session,
// queues input until the next tick and flips between playing and game over.
// It is not safe for concurrent use; hosts drive it from one loop.
type Controller struct {
	cfg     Config
	rng     object.Rand
	logger  *log.Logger
	scene   scene
	pending []InputEvent
	hits    []Hit
	games   int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for scene transitions.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRand sets the randomness source for target spawning.
func WithRand(r object.Rand) Option {
	return func(c *Controller) {
		if r != nil {
			c.rng = r
		}
	}
}

// NewController validates cfg and starts playing.
func NewController(cfg Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := uint64(time.Now().UnixNano())
	c := &Controller{
		cfg:    cfg,
		rng:    rand.New(rand.NewPCG(seed, seed>>1)),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.play()
	return c, nil
}

// play enters the playing scene with a fresh session.
func (c *Controller) play() {
	c.games++
	c.scene = scene{state: ScenePlaying, session: newSession(c.cfg, c.rng)}
	c.pending = c.pending[:0]
	c.logger.Debug("scene changed", "scene", ScenePlaying, "game", c.games)
}

// gameOver leaves the session behind and keeps only its score.
func (c *Controller) gameOver() {
	sess := c.scene.session
	c.scene = scene{state: SceneGameOver, finalScore: sess.Score()}
	c.pending = c.pending[:0]
	c.logger.Debug("scene changed",
		"scene", SceneGameOver,
		"game", c.games,
		"score", sess.Score(),
		"elapsed", sess.Elapsed().Round(time.Millisecond),
		"spawned", sess.Spawned(),
	)
}

// Tick applies queued input, advances the session and checks for loss.
// Input queued during game over is dropped.
func (c *Controller) Tick(dt time.Duration) {
	if c.scene.state != ScenePlaying {
		c.pending = c.pending[:0]
		return
	}

	sess := c.scene.session
	for _, ev := range c.pending {
		switch ev.Kind {
		case InputDragStart:
			sess.DragStart(ev.Pos)
		case InputDragMove:
			sess.DragMove(ev.Pos)
		case InputDragEnd:
			sess.DragEnd(ev.Pos)
		}
	}
	c.pending = c.pending[:0]

	sess.Tick(dt)
	c.hits = append(c.hits, sess.DrainHits()...)

	if sess.IsLost() {
		c.gameOver()
	}
}

// SubmitDragStart queues a pointer press.
func (c *Controller) SubmitDragStart(pos physics.Vec) {
	c.submit(InputDragStart, pos)
}

// SubmitDragMove queues a pointer move.
func (c *Controller) SubmitDragMove(pos physics.Vec) {
	c.submit(InputDragMove, pos)
}

// SubmitDragEnd queues a pointer release.
func (c *Controller) SubmitDragEnd(pos physics.Vec) {
	c.submit(InputDragEnd, pos)
}

func (c *Controller) submit(kind InputKind, pos physics.Vec) {
	if c.scene.state != ScenePlaying {
		return
	}
	c.pending = append(c.pending, InputEvent{Kind: kind, Pos: pos})
}

// RequestRestart starts a new session from game over. It is ignored while
// playing. Reports whether a restart happened.
func (c *Controller) RequestRestart() bool {
	if c.scene.state != SceneGameOver {
		return false
	}
	c.play()
	return true
}

// SceneState returns the current scene.
func (c *Controller) SceneState() SceneState {
	return c.scene.state
}

// CurrentScore returns the live score, or the final score after game over.
func (c *Controller) CurrentScore() int {
	if c.scene.state == SceneGameOver {
		return c.scene.finalScore
	}
	return c.scene.session.Score()
}

// TurretPosition returns the turret centre. After game over it returns the
// starting position of the next game.
func (c *Controller) TurretPosition() physics.Vec {
	return c.TurretBounds().Center
}

// TurretBounds returns the turret's bounding box.
func (c *Controller) TurretBounds() physics.Rect {
	if c.scene.state == ScenePlaying {
		return c.scene.session.Turret().Bounds()
	}
	return object.NewTurret(c.cfg.Field(), c.cfg.TurretSize, c.cfg.TurretYFraction).Bounds()
}

// EntitySnapshot returns the live entities in spawn order. Empty after game over.
func (c *Controller) EntitySnapshot() []object.View {
	if c.scene.state != ScenePlaying {
		return nil
	}
	return c.scene.session.Entities()
}

// LastHitEvents returns the hits since the previous call and clears them.
func (c *Controller) LastHitEvents() []Hit {
	hits := c.hits
	c.hits = nil
	return hits
}

// Session returns the running session, or nil after game over.
func (c *Controller) Session() *Session {
	return c.scene.session
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Games returns how many sessions have been started.
func (c *Controller) Games() int {
	return c.games
}
