// Package physics provides field geometry, broad-phase lookup and the
// kinematic world that moves bodies and reports contacts.
package physics

import "math"

// Vec is a point or offset in field coordinates. Y grows upward.
type Vec struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Lerp returns the point a fraction t of the way from v to o.
func (v Vec) Lerp(o Vec, t float64) Vec {
	return Vec{X: v.X + (o.X-v.X)*t, Y: v.Y + (o.Y-v.Y)*t}
}

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned box stored by its centre.
type Rect struct {
	Center Vec
	Size   Size
}

// RectAt returns the box of the given size centred on c.
func RectAt(c Vec, s Size) Rect {
	return Rect{Center: c, Size: s}
}

// Min returns the bottom-left corner.
func (r Rect) Min() Vec {
	return Vec{X: r.Center.X - r.Size.W/2, Y: r.Center.Y - r.Size.H/2}
}

// Max returns the top-right corner.
func (r Rect) Max() Vec {
	return Vec{X: r.Center.X + r.Size.W/2, Y: r.Center.Y + r.Size.H/2}
}

// Contains reports whether p lies inside r. Edges count as inside.
func (r Rect) Contains(p Vec) bool {
	lo, hi := r.Min(), r.Max()
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}

// Overlaps reports whether r and o share a region of non-zero area.
// Boxes that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	rlo, rhi := r.Min(), r.Max()
	olo, ohi := o.Min(), o.Max()
	return rlo.X < ohi.X && olo.X < rhi.X && rlo.Y < ohi.Y && olo.Y < rhi.Y
}

// Union returns the smallest box containing both r and o.
func (r Rect) Union(o Rect) Rect {
	rlo, rhi := r.Min(), r.Max()
	olo, ohi := o.Min(), o.Max()
	lo := Vec{X: math.Min(rlo.X, olo.X), Y: math.Min(rlo.Y, olo.Y)}
	hi := Vec{X: math.Max(rhi.X, ohi.X), Y: math.Max(rhi.Y, ohi.Y)}
	return Rect{
		Center: lo.Lerp(hi, 0.5),
		Size:   Size{W: hi.X - lo.X, H: hi.Y - lo.Y},
	}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
