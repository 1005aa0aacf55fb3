package object

import "github.com/tomz197/protector/internal/physics"

// Turret is the player's launcher. It only moves horizontally and is not part
// of the arena: nothing collides with it.
type Turret struct {
	Position physics.Vec
	Size     physics.Size
	MinX     float64 // Leftmost allowed centre
	MaxX     float64 // Rightmost allowed centre
}

// NewTurret centres a turret horizontally at yFraction of the field height.
// Its centre is kept far enough from the side edges for the whole turret to
// stay visible.
func NewTurret(field, size physics.Size, yFraction float64) Turret {
	return Turret{
		Position: physics.Vec{X: field.W / 2, Y: field.H * yFraction},
		Size:     size,
		MinX:     size.W / 2,
		MaxX:     field.W - size.W/2,
	}
}

// Bounds returns the turret's bounding box.
func (t Turret) Bounds() physics.Rect {
	return physics.RectAt(t.Position, t.Size)
}

// Contains reports whether p lies on the turret.
func (t Turret) Contains(p physics.Vec) bool {
	return t.Bounds().Contains(p)
}

// MoveTo slides the turret to x, clamped to its band.
func (t *Turret) MoveTo(x float64) {
	t.Position.X = physics.Clamp(x, t.MinX, t.MaxX)
}
