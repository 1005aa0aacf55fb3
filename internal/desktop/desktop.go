// Package desktop runs the game in an ebiten window with mouse and touch input.
package desktop

import (
	"fmt"
	"image/color"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/protector/internal/desktop/pointer"
	"github.com/tomz197/protector/internal/effect"
	"github.com/tomz197/protector/internal/game"
	"github.com/tomz197/protector/internal/object"
	"github.com/tomz197/protector/internal/physics"
)

// MaxDeltaTime caps a frame's simulated time.
const MaxDeltaTime = 60 * time.Millisecond

var (
	backgroundColor = color.RGBA{0x10, 0x14, 0x24, 0xff}
	targetColor     = color.RGBA{0xe0, 0x4f, 0x5f, 0xff}
	projectileColor = color.RGBA{0xff, 0xd8, 0x4a, 0xff}
	turretColor     = color.RGBA{0x4a, 0xd0, 0xe8, 0xff}
	sparkColor      = color.RGBA{0xff, 0xff, 0xff, 0xff}
	buttonColor     = color.RGBA{0x2c, 0x6e, 0x9c, 0xff}
	perfectColor    = color.NRGBA{0x7c, 0xf0, 0x8a, 0xff}
)

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

// Options configures a Game. Zero values select defaults.
type Options struct {
	Logger *log.Logger
	Cues   Cues
	Rand   object.Rand // Spark randomness
}

// Game implements ebiten.Game around a game.Controller.
type Game struct {
	ctrl       *game.Controller
	effects    *effect.Layer
	mapper     pointer.Mapper
	tracker    *pointer.Tracker
	playAgain  pointer.Button
	cues       Cues
	logger     *log.Logger
	face       font.Face
	lastUpdate time.Time
	touchIDs   []ebiten.TouchID
}

// New creates a window host for ctrl.
func New(ctrl *game.Controller, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cues := opts.Cues
	if cues == nil {
		cues = nopCues{}
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	cfg := ctrl.Config()
	mapper := pointer.Mapper{Field: cfg.Field()}
	return &Game{
		ctrl:       ctrl,
		effects:    effect.NewLayer(cfg.HitLabelLifetime, rng),
		mapper:     mapper,
		tracker:    pointer.NewTracker(ctrl, mapper),
		playAgain:  pointer.PlayAgainButton(cfg.Field()),
		cues:       cues,
		logger:     logger,
		face:       basicfont.Face7x13,
		lastUpdate: time.Now(),
	}
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run(title string) error {
	cfg := g.ctrl.Config()
	ebiten.SetWindowSize(int(cfg.FieldWidth), int(cfg.FieldHeight))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	now := time.Now()
	dt := min(now.Sub(g.lastUpdate), MaxDeltaTime)
	g.lastUpdate = now

	switch g.ctrl.SceneState() {
	case game.ScenePlaying:
		g.handlePointers()
	case game.SceneGameOver:
		g.handleGameOver()
	}

	before := g.ctrl.SceneState()
	g.ctrl.Tick(dt)
	for _, h := range g.ctrl.LastHitEvents() {
		g.effects.AddHit(h)
		g.cues.PlayHit(h.Precise)
	}
	if before == game.ScenePlaying && g.ctrl.SceneState() == game.SceneGameOver {
		g.tracker.Reset()
		g.effects.Reset()
		g.cues.PlayLose()
		g.logger.Info("game over", "score", g.ctrl.CurrentScore(), "game", g.ctrl.Games())
	}
	g.effects.Update(dt)
	return nil
}

// handlePointers forwards the mouse and the first touch as drag gestures.
func (g *Game) handlePointers() {
	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.tracker.Press(pointer.MouseID, float64(x), float64(y))
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.release(pointer.MouseID, x, y)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.tracker.Move(pointer.MouseID, float64(x), float64(y))
	}

	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		g.tracker.Press(int(id), float64(tx), float64(ty))
	}
	if g.tracker.Active() && g.tracker.ID() != pointer.MouseID {
		id := ebiten.TouchID(g.tracker.ID())
		if inpututil.IsTouchJustReleased(id) {
			tx, ty := inpututil.TouchPositionInPreviousTick(id)
			g.release(int(id), tx, ty)
		} else {
			tx, ty := ebiten.TouchPosition(id)
			g.tracker.Move(int(id), float64(tx), float64(ty))
		}
	}
}

// release ends a gesture. A tap on the turret fires, so it gets the shot cue.
func (g *Game) release(id, x, y int) {
	p, tap := g.tracker.Release(id, float64(x), float64(y))
	if tap && g.ctrl.TurretBounds().Contains(p) {
		g.cues.PlayShot()
	}
}

// handleGameOver restarts on a click or tap on the button, or on SPACE/ENTER.
func (g *Game) handleGameOver() {
	restart := inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		restart = restart || g.playAgain.Hit(g.mapper, float64(x), float64(y))
	}
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		restart = restart || g.playAgain.Hit(g.mapper, float64(x), float64(y))
	}

	if restart && g.ctrl.RequestRestart() {
		g.tracker.Reset()
		g.effects.Reset()
		g.logger.Debug("restarted", "game", g.ctrl.Games())
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	switch g.ctrl.SceneState() {
	case game.ScenePlaying:
		g.drawField(screen)
		g.drawHUD(screen)
	case game.SceneGameOver:
		g.drawGameOver(screen)
	}
}

// Layout implements ebiten.Game. The logical screen is the field.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.ctrl.Config()
	return int(cfg.FieldWidth), int(cfg.FieldHeight)
}

func (g *Game) fillRect(screen *ebiten.Image, r physics.Rect, clr color.Color) {
	x, y, w, h := g.mapper.RectToScreen(r)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, true)
}

func (g *Game) drawField(screen *ebiten.Image) {
	for _, v := range g.ctrl.EntitySnapshot() {
		clr := targetColor
		if v.Category == physics.CategoryProjectile {
			clr = projectileColor
		}
		g.fillRect(screen, physics.RectAt(v.Position, v.Size), clr)
	}
	g.fillRect(screen, g.ctrl.TurretBounds(), turretColor)

	for _, s := range g.effects.Sparks() {
		if s.Visible() {
			g.fillRect(screen, physics.RectAt(s.Position, physics.Size{W: 3, H: 3}), sparkColor)
		}
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	cfg := g.ctrl.Config()
	g.drawText(screen, fmt.Sprintf("Score: %d", g.ctrl.CurrentScore()),
		physics.Vec{X: cfg.FieldWidth * 0.1, Y: cfg.FieldHeight * 0.9}, color.White)

	for _, l := range g.effects.Labels() {
		clr := color.NRGBA{0xff, 0xff, 0xff, 0xff}
		if l.Text == "Perfect!" {
			clr = perfectColor
		}
		clr.A = uint8(255 * l.Alpha())
		g.drawText(screen, l.Text, l.Position, clr)
	}
}

func (g *Game) drawGameOver(screen *ebiten.Image) {
	cfg := g.ctrl.Config()
	mid := physics.Vec{X: cfg.FieldWidth / 2, Y: cfg.FieldHeight / 2}

	g.drawCentered(screen, "You lose :(", mid.Add(physics.Vec{Y: 60}), color.White)
	g.drawCentered(screen, fmt.Sprintf("Score: %d", g.ctrl.CurrentScore()), mid.Add(physics.Vec{Y: 20}), color.White)

	g.fillRect(screen, g.playAgain.Rect, buttonColor)
	g.drawCentered(screen, g.playAgain.Label, g.playAgain.Rect.Center, color.White)
}

// drawText draws s with its baseline starting at field point p.
func (g *Game) drawText(screen *ebiten.Image, s string, p physics.Vec, clr color.Color) {
	x, y := g.mapper.ToScreen(p)
	text.Draw(screen, s, g.face, int(x), int(y), clr)
}

// drawCentered draws s centred on field point p.
func (g *Game) drawCentered(screen *ebiten.Image, s string, p physics.Vec, clr color.Color) {
	x, y := g.mapper.ToScreen(p)
	w := font.MeasureString(g.face, s).Ceil()
	h := g.face.Metrics().Ascent.Ceil()
	text.Draw(screen, s, g.face, int(x)-w/2, int(y)+h/2, clr)
}
