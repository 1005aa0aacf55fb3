// Package pointer maps window pointer input (mouse or touch, y-down pixels)
// onto field drag gestures (y-up field units).
package pointer

import "github.com/tomz197/protector/internal/physics"

// MouseID identifies the mouse among touch ids.
const MouseID = -1

// Sink receives drag gestures in field coordinates. *game.Controller satisfies it.
type Sink interface {
	SubmitDragStart(p physics.Vec)
	SubmitDragMove(p physics.Vec)
	SubmitDragEnd(p physics.Vec)
}

// Mapper converts between window pixels and field units. The window is laid
// out at field size, so only the y axis flips.
type Mapper struct {
	Field physics.Size
}

// ToField converts a window pixel to a field point.
func (m Mapper) ToField(x, y float64) physics.Vec {
	return physics.Vec{X: x, Y: m.Field.H - y}
}

// ToScreen converts a field point to a window pixel.
func (m Mapper) ToScreen(p physics.Vec) (x, y float64) {
	return p.X, m.Field.H - p.Y
}

// RectToScreen returns the window-space top-left corner and size of r.
func (m Mapper) RectToScreen(r physics.Rect) (x, y, w, h float64) {
	x, y = m.ToScreen(physics.Vec{X: r.Min().X, Y: r.Max().Y})
	return x, y, r.Size.W, r.Size.H
}

// Tracker follows one pointer at a time and forwards it as a drag gesture.
// Other pointers are ignored until the tracked one is released.
type Tracker struct {
	sink   Sink
	mapper Mapper
	active bool
	id     int
	start  physics.Vec
	last   physics.Vec
}

// NewTracker creates a tracker forwarding to sink.
func NewTracker(sink Sink, mapper Mapper) *Tracker {
	return &Tracker{sink: sink, mapper: mapper}
}

// Press starts a gesture for pointer id. Reports whether it is now tracked.
func (t *Tracker) Press(id int, x, y float64) bool {
	if t.active {
		return false
	}
	p := t.mapper.ToField(x, y)
	t.active, t.id, t.start, t.last = true, id, p, p
	t.sink.SubmitDragStart(p)
	return true
}

// Move forwards a position change of the tracked pointer.
func (t *Tracker) Move(id int, x, y float64) {
	if !t.active || id != t.id {
		return
	}
	p := t.mapper.ToField(x, y)
	if p == t.last {
		return
	}
	t.last = p
	t.sink.SubmitDragMove(p)
}

// Release ends the gesture of the tracked pointer. It returns the release
// point and whether the gesture was a tap, ending where it started.
func (t *Tracker) Release(id int, x, y float64) (p physics.Vec, tap bool) {
	if !t.active || id != t.id {
		return physics.Vec{}, false
	}
	t.active = false
	p = t.mapper.ToField(x, y)
	t.sink.SubmitDragEnd(p)
	return p, p == t.start
}

// Active reports whether a pointer is being tracked.
func (t *Tracker) Active() bool {
	return t.active
}

// ID returns the tracked pointer id. Only meaningful while Active.
func (t *Tracker) ID() int {
	return t.id
}

// Reset forgets the tracked pointer without sending anything.
func (t *Tracker) Reset() {
	t.active = false
}

// Button is a clickable box in field coordinates.
type Button struct {
	Rect  physics.Rect
	Label string
}

// PlayAgainButton returns the restart button, centred just below the middle of the field.
func PlayAgainButton(field physics.Size) Button {
	return Button{
		Rect:  physics.RectAt(physics.Vec{X: field.W / 2, Y: field.H*0.5 - 40}, physics.Size{W: 140, H: 36}),
		Label: "Play again",
	}
}

// Hit reports whether window pixel (x, y) lies on the button.
func (b Button) Hit(m Mapper, x, y float64) bool {
	return b.Rect.Contains(m.ToField(x, y))
}
