// Package draw renders the playfield to ANSI terminals: a half-block canvas,
// a chunked writer for network-friendly output and terminal control helpers.
package draw

import "io"

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI colour sequences.
const (
	ColorReset        = "\033[0m"
	ColorBold         = "\033[1m"
	ColorBrightRed    = "\033[91m"
	ColorBrightYellow = "\033[93m"
	ColorBrightCyan   = "\033[96m"
	ColorBrightWhite  = "\033[97m"
	ColorBrightGreen  = "\033[92m"
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	io.WriteString(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, "\033[?25h")
}

// EnableMouse turns on button, drag and SGR extended mouse reporting.
func EnableMouse(w io.Writer) {
	io.WriteString(w, "\033[?1000h\033[?1002h\033[?1006h")
}

// DisableMouse turns mouse reporting off again.
func DisableMouse(w io.Writer) {
	io.WriteString(w, "\033[?1006l\033[?1002l\033[?1000l")
}
