package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// ChunkWriter collects one frame of HUD text and cursor moves, then writes it
// out in maxChunkSize pieces so a frame travels as few SSH packets as possible.
// Positions are 1-based canvas cells; the canvas offset is added on write.
type ChunkWriter struct {
	frame  strings.Builder
	out    *bufio.Writer
	numBuf [20]byte // scratch for allocation-free integer formatting
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter over w using the given canvas offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset moves the canvas origin, e.g. after a terminal resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// Clear queues a full terminal clear at the start of the frame.
func (cw *ChunkWriter) Clear() {
	cw.frame.WriteString("\033[H\033[2J")
}

func (cw *ChunkWriter) moveCursor(col, row int) {
	cw.frame.WriteString("\033[")
	cw.frame.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.frame.WriteByte(';')
	cw.frame.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.frame.WriteByte('H')
}

// Write appends raw bytes, letting Canvas.Render target the writer.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.frame.Write(p)
}

// WriteAt writes s starting at the given cell.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.moveCursor(col, row)
	cw.frame.WriteString(s)
}

// WriteStyled writes s at the given cell wrapped in an ANSI style, e.g. ColorBold.
func (cw *ChunkWriter) WriteStyled(col, row int, style, s string) {
	cw.moveCursor(col, row)
	cw.frame.WriteString(style)
	cw.frame.WriteString(s)
	cw.frame.WriteString(ColorReset)
}

// WriteCentered writes s centred on column col of the given row.
func (cw *ChunkWriter) WriteCentered(col, row int, s string) {
	cw.WriteAt(centerStart(col, s), row, s)
}

// WriteCenteredStyled is WriteCentered with an ANSI style.
func (cw *ChunkWriter) WriteCenteredStyled(col, row int, style, s string) {
	cw.WriteStyled(centerStart(col, s), row, style, s)
}

func centerStart(col int, s string) int {
	return max(col-utf8.RuneCountInString(s)/2, 1)
}

// Flush writes the frame in chunks and resets it.
func (cw *ChunkWriter) Flush() error {
	data := cw.frame.String()
	cw.frame.Reset()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.out.WriteString(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return cw.out.Flush()
}

// TermSizeFunc reports terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// TerminalSizeRawWith returns terminal dimensions from sizeFunc, or from
// DefaultTermSizeFunc when sizeFunc is nil.
func TerminalSizeRawWith(sizeFunc TermSizeFunc) (width, height int, err error) {
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	return sizeFunc()
}
