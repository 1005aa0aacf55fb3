package draw

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/tomz197/protector/internal/physics"
)

// Ink selects the colour of a canvas pixel. The zero value is an empty pixel.
type Ink uint8

const (
	InkNone Ink = iota
	InkTarget
	InkProjectile
	InkTurret
	InkSpark
)

// inkColors maps inks to ANSI foreground colours.
var inkColors = [...]string{
	InkNone:       ColorReset,
	InkTarget:     ColorBrightRed,
	InkProjectile: ColorBrightYellow,
	InkTurret:     ColorBrightCyan,
	InkSpark:      ColorBrightWhite,
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// It maps a field with y growing upward onto terminal pixels with row 0 at the top.
type Canvas struct {
	termWidth      int   // Terminal columns used by the canvas
	termHeight     int   // Terminal rows used by the canvas
	subPixelHeight int   // termHeight * 2
	pixels         []Ink // Flat slice: [y * termWidth + x]

	field  physics.Size
	scaleX float64 // termWidth / field.W
	scaleY float64 // (termHeight*2) / field.H

	// Offset for centering the render area when the terminal is larger than the
	// max resolution. These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
}

// NewCanvas creates a canvas drawing field onto termWidth x termHeight cells.
func NewCanvas(termWidth, termHeight int, field physics.Size) *Canvas {
	c := &Canvas{field: field}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the field.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Ink, c.subPixelHeight*termWidth)
	}
	c.scaleX = float64(c.termWidth) / c.field.W
	c.scaleY = float64(c.subPixelHeight) / c.field.H
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at terminal sub-pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, ink Ink) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = ink
	}
}

// pixel returns the ink at terminal sub-pixel coordinates.
func (c *Canvas) pixel(x, y int) Ink {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return InkNone
	}
	return c.pixels[y*c.termWidth+x]
}

// SetFloat sets the pixel under the field point (x, y).
func (c *Canvas) SetFloat(x, y float64, ink Ink) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor((c.field.H - y) * c.scaleY))
	c.setPixel(px, py, ink)
}

// FillRect fills every pixel touched by the field rectangle r.
// Rectangles smaller than a pixel still cover one.
func (c *Canvas) FillRect(r physics.Rect, ink Ink) {
	lo, hi := r.Min(), r.Max()

	x0 := int(math.Floor(lo.X * c.scaleX))
	x1 := int(math.Ceil(hi.X*c.scaleX)) - 1
	y0 := int(math.Floor((c.field.H - hi.Y) * c.scaleY))
	y1 := int(math.Ceil((c.field.H-lo.Y)*c.scaleY)) - 1
	x1 = max(x1, x0)
	y1 = max(y1, y0)

	x0, x1 = max(x0, 0), min(x1, c.termWidth-1)
	y0, y1 = max(y0, 0), min(y1, c.subPixelHeight-1)
	for y := y0; y <= y1; y++ {
		row := c.pixels[y*c.termWidth : (y+1)*c.termWidth]
		for x := x0; x <= x1; x++ {
			row[x] = ink
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using half-block characters.
// Every cell is written, so no screen clear is needed between frames.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 4)

	cur := InkNone
	for row := 0; row < c.termHeight; row++ {
		fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, 1+c.offsetCol)
		for col := 0; col < c.termWidth; col++ {
			top := c.pixel(col, row*2)
			bottom := c.pixel(col, row*2+1)

			var ch rune
			switch {
			case top != InkNone && bottom != InkNone:
				ch = BlockFull
			case top != InkNone:
				ch = BlockUpperHalf
			case bottom != InkNone:
				ch = BlockLowerHalf
			default:
				c.renderBuf.WriteByte(' ')
				continue
			}

			ink := max(top, bottom)
			if ink != cur {
				c.renderBuf.WriteString(inkColors[ink])
				cur = ink
			}
			c.renderBuf.WriteRune(ch)
		}
	}
	if cur != InkNone {
		c.renderBuf.WriteString(ColorReset)
	}

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, line)
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// Field returns the field size the canvas maps from.
func (c *Canvas) Field() physics.Size {
	return c.field
}

// TerminalWidth returns the canvas width in terminal columns.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas height in terminal rows.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// FieldToTerminal converts a field point to a 1-based canvas cell (col, row).
// The offset is not applied; ChunkWriter adds it.
func (c *Canvas) FieldToTerminal(p physics.Vec) (col, row int) {
	px := int(math.Floor(p.X * c.scaleX))
	py := int(math.Floor((c.field.H - p.Y) * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToField converts an absolute 1-based terminal cell to the field point
// at the cell's centre. ok is false when the cell lies outside the canvas.
func (c *Canvas) TerminalToField(col, row int) (p physics.Vec, ok bool) {
	col -= c.offsetCol
	row -= c.offsetRow
	if col < 1 || col > c.termWidth || row < 1 || row > c.termHeight {
		return physics.Vec{}, false
	}
	x := (float64(col) - 0.5) / c.scaleX
	y := c.field.H - (float64(row)-0.5)*2/c.scaleY
	return physics.Vec{X: x, Y: y}, true
}

// FitField returns the largest render area inside termWidth x termHeight (and
// no larger than maxWidth x maxHeight) that keeps the field's aspect ratio,
// assuming cells twice as tall as they are wide, plus the offsets that centre it.
func FitField(termWidth, termHeight, maxWidth, maxHeight int, field physics.Size) (width, height, offsetCol, offsetRow int) {
	availW := max(min(termWidth, maxWidth), 1)
	availH := max(min(termHeight, maxHeight), 1)

	// One cell is one pixel wide and two pixels tall.
	aspect := field.W / field.H
	width = availW
	height = int(math.Round(float64(width) / aspect / 2))
	if height > availH {
		height = availH
		width = int(math.Round(float64(height) * 2 * aspect))
	}
	width = max(min(width, availW), 1)
	height = max(min(height, availH), 1)

	offsetCol = (termWidth - width) / 2
	offsetRow = (termHeight - height) / 2
	return width, height, max(offsetCol, 0), max(offsetRow, 0)
}
