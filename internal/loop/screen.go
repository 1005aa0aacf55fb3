package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/protector/internal/draw"
	"github.com/tomz197/protector/internal/game"
	"github.com/tomz197/protector/internal/physics"
)

const playAgainLabel = "[ Play again ]"

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen transitions, do a full terminal clear so UI elements from the
	// previous screen don't persist.
	scene := c.ctrl.SceneState()
	if c.forceClear || scene != c.prevScene || c.inactive != c.wasInactive || c.shuttingDown != c.wasShutdown {
		c.chunkWriter.Clear()
		c.prevScene = scene
		c.wasInactive = c.inactive
		c.wasShutdown = c.shuttingDown
		c.forceClear = false
	}

	c.canvas.Clear()
	if scene == game.ScenePlaying && !c.shuttingDown {
		c.drawField()
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawField paints entities, the turret and sparks onto the canvas.
func (c *Client) drawField() {
	for _, v := range c.ctrl.EntitySnapshot() {
		ink := draw.InkTarget
		if v.Category == physics.CategoryProjectile {
			ink = draw.InkProjectile
		}
		c.canvas.FillRect(physics.RectAt(v.Position, v.Size), ink)
	}
	c.canvas.FillRect(c.ctrl.TurretBounds(), draw.InkTurret)

	for _, s := range c.effects.Sparks() {
		if s.Visible() {
			c.canvas.SetFloat(s.Position.X, s.Position.Y, draw.InkSpark)
		}
	}
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.shuttingDown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}
	if c.inactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.ctrl.SceneState() {
	case game.ScenePlaying:
		c.drawPlayingHUD(termWidth, termHeight)
	case game.SceneGameOver:
		c.drawGameOverScreen(centerX, centerY)
	}
}

// drawPlayingHUD draws the score, hit labels and controls.
func (c *Client) drawPlayingHUD(termWidth, termHeight int) {
	cw := c.chunkWriter
	cfg := c.ctrl.Config()

	col, row := c.canvas.FieldToTerminal(physics.Vec{X: cfg.FieldWidth * 0.1, Y: cfg.FieldHeight * 0.9})
	cw.WriteAt(col, row, fmt.Sprintf("Score: %d", c.ctrl.CurrentScore()))

	for _, l := range c.effects.Labels() {
		col, row := c.canvas.FieldToTerminal(l.Position)
		if row < 1 || row > termHeight || col < 1 || col+len(l.Text) > termWidth+1 {
			continue
		}
		color := draw.ColorBrightWhite
		if l.Text == "Perfect!" {
			color = draw.ColorBrightGreen
		}
		cw.WriteStyled(col, row, color, l.Text)
	}

	hint := "A/D move  SPACE fire  Q quit"
	if len(hint) <= termWidth {
		cw.WriteCentered(termWidth/2, termHeight, hint)
	}
}

// drawGameOverScreen draws the loss message, final score and the restart button.
func (c *Client) drawGameOverScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCenteredStyled(centerX, centerY-3, draw.ColorBold, "You lose :(")
	cw.WriteCentered(centerX, centerY-1, fmt.Sprintf("Score: %d", c.ctrl.CurrentScore()))

	col, row := c.playAgainButton()
	cw.WriteStyled(col, row, draw.ColorBrightCyan, playAgainLabel)

	if time.Now().UnixMilli()/600%2 == 0 {
		cw.WriteCentered(centerX, centerY+3, "SPACE / ENTER / R to play again")
	}
}

// playAgainButton returns the canvas-relative cell where the button starts.
func (c *Client) playAgainButton() (col, row int) {
	centerX := c.canvas.TerminalWidth() / 2
	centerY := c.canvas.TerminalHeight() / 2
	return max(centerX-len(playAgainLabel)/2, 1), centerY + 1
}

// onPlayAgain reports whether the absolute terminal cell lies on the button.
func (c *Client) onPlayAgain(col, row int) bool {
	bcol, brow := c.playAgainButton()
	col -= c.canvas.OffsetCol()
	row -= c.canvas.OffsetRow()
	return row == brow && col >= bcol && col < bcol+len(playAgainLabel)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCenteredStyled(centerX, centerY-2, draw.ColorBrightYellow, "INACTIVITY WARNING")

	left := InactivityDisconnectUser - time.Since(c.lastInput)
	msg := fmt.Sprintf("You will be disconnected in %d seconds.", max(int(left.Seconds()), 0))
	cw.WriteCentered(centerX, centerY, msg)

	cw.WriteCentered(centerX, centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCenteredStyled(centerX, centerY-3, draw.ColorBrightRed, "SERVER SHUTTING DOWN")
	cw.WriteCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	cw.WriteCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.shutdownTimer.Seconds()) + 1
	cw.WriteCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	cw.WriteCentered(centerX, centerY+4, "Press Q to disconnect now")
}
