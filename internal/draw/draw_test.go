package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tomz197/protector/internal/physics"
)

// testField maps 1:1 onto a 40x30 canvas.
var testField = physics.Size{W: 40, H: 60}

func TestFillRectFlipsY(t *testing.T) {
	c := NewCanvas(40, 30, testField)
	c.FillRect(physics.RectAt(physics.Vec{X: 20, Y: 59}, physics.Size{W: 2, H: 2}), InkTarget)

	for _, p := range [][2]int{{19, 0}, {20, 0}, {19, 1}, {20, 1}} {
		if got := c.pixel(p[0], p[1]); got != InkTarget {
			t.Fatalf("pixel %v = %v, want target ink", p, got)
		}
	}
	for _, p := range [][2]int{{18, 0}, {21, 0}, {19, 2}, {19, 59}} {
		if got := c.pixel(p[0], p[1]); got != InkNone {
			t.Fatalf("pixel %v = %v, want empty", p, got)
		}
	}

	c.Clear()
	c.FillRect(physics.RectAt(physics.Vec{X: 0.2, Y: 0.2}, physics.Size{W: 0.1, H: 0.1}), InkProjectile)
	if got := c.pixel(0, 59); got != InkProjectile {
		t.Fatalf("tiny rect at the bottom-left did not cover a pixel")
	}
}

func TestRenderWritesHalfBlocks(t *testing.T) {
	c := NewCanvas(4, 2, physics.Size{W: 4, H: 4})
	c.SetFloat(0.5, 3.5, InkTurret) // top sub-pixel of row 1
	c.SetFloat(1.5, 0.5, InkTurret) // bottom sub-pixel of row 2

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()
	if !strings.Contains(out, string(BlockUpperHalf)) || !strings.Contains(out, string(BlockLowerHalf)) {
		t.Fatalf("render output %q lacks half blocks", out)
	}
	if !strings.Contains(out, ColorBrightCyan) {
		t.Fatalf("render output %q lacks turret colour", out)
	}
	if !strings.HasSuffix(out, ColorReset) {
		t.Fatalf("render output does not reset colour")
	}
}

func TestTerminalFieldMapping(t *testing.T) {
	c := NewCanvas(40, 30, testField)
	col, row := c.FieldToTerminal(physics.Vec{X: 20, Y: 59})
	if col != 21 || row != 1 {
		t.Fatalf("FieldToTerminal = (%d,%d), want (21,1)", col, row)
	}

	p, ok := c.TerminalToField(21, 1)
	if !ok || p != (physics.Vec{X: 20.5, Y: 59}) {
		t.Fatalf("TerminalToField = %v %v, want (20.5,59)", p, ok)
	}

	c.SetOffset(5, 2)
	if p2, ok := c.TerminalToField(26, 3); !ok || p2 != p {
		t.Fatalf("offset TerminalToField = %v %v, want %v", p2, ok, p)
	}
	if _, ok := c.TerminalToField(5, 2); ok {
		t.Fatalf("cell left of the canvas mapped into the field")
	}
	if _, ok := c.TerminalToField(46, 3); ok {
		t.Fatalf("cell right of the canvas mapped into the field")
	}
}

func TestFitField(t *testing.T) {
	field := physics.Size{W: 400, H: 600}
	w, h, oc, or := FitField(200, 100, 120, 50, field)
	if w != 67 || h != 50 || oc != 66 || or != 25 {
		t.Fatalf("FitField = %d %d %d %d, want 67 50 66 25", w, h, oc, or)
	}

	w, h, oc, or = FitField(40, 100, 120, 50, field)
	if w != 40 || h != 30 || oc != 0 || or != 35 {
		t.Fatalf("narrow FitField = %d %d %d %d, want 40 30 0 35", w, h, oc, or)
	}
}

func TestChunkWriterAppliesOffset(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 3, 2)
	cw.WriteAt(1, 1, "hi")
	if buf.Len() != 0 {
		t.Fatalf("wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := buf.String(); got != "\033[3;4Hhi" {
		t.Fatalf("output = %q", got)
	}

	buf.Reset()
	cw.SetOffset(0, 0)
	cw.WriteCentered(10, 5, "abcd")
	cw.Flush()
	if got := buf.String(); got != "\033[5;8Habcd" {
		t.Fatalf("centred output = %q", got)
	}
}

func TestChunkWriterStyledAndClear(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 0, 0)
	cw.Clear()
	cw.WriteCenteredStyled(10, 2, ColorBold, "ab")
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	want := "\033[H\033[2J\033[2;9H" + ColorBold + "ab" + ColorReset
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}
