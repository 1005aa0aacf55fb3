package physics

import "time"

// Category is a bit mask classifying bodies for contact tests.
type Category uint32

const (
	CategoryNone       Category = 0
	CategoryTarget     Category = 1 << 0
	CategoryProjectile Category = 1 << 1
)

// String returns a readable category name.
func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryTarget:
		return "target"
	case CategoryProjectile:
		return "projectile"
	default:
		return "mixed"
	}
}

// BodyID identifies a body. Zero is never assigned.
type BodyID uint64

// Motion is a linear move from From to To over Duration.
// Position is interpolated by the elapsed fraction of Duration.
type Motion struct {
	From, To Vec
	Duration time.Duration
	Elapsed  time.Duration
}

// Fraction returns the completed share of the path in [0, 1].
func (m Motion) Fraction() float64 {
	if m.Duration <= 0 {
		return 1
	}
	return Clamp(float64(m.Elapsed)/float64(m.Duration), 0, 1)
}

// Position returns the current point on the path.
func (m Motion) Position() Vec {
	return m.From.Lerp(m.To, m.Fraction())
}

// Remaining returns how long until the path is complete.
func (m Motion) Remaining() time.Duration {
	if m.Elapsed >= m.Duration {
		return 0
	}
	return m.Duration - m.Elapsed
}

// Done reports whether the path has been fully travelled.
func (m Motion) Done() bool {
	return m.Elapsed >= m.Duration
}

// Advance moves along the path by dt and returns the position before the move.
func (m *Motion) Advance(dt time.Duration) Vec {
	prev := m.Position()
	if dt > 0 {
		m.Elapsed += dt
	}
	return prev
}

// Body is a kinematic, contact-only participant in a World.
// Bodies never push each other; overlap is only detected.
type Body struct {
	ID       BodyID
	Seq      uint64   // Spawn order, increasing
	Category Category // What this body is
	Contacts Category // Categories this body reports contacts with
	Size     Size
	Motion   Motion
}

// Position returns the body's current centre.
func (b *Body) Position() Vec {
	return b.Motion.Position()
}

// Bounds returns the body's current bounding box.
func (b *Body) Bounds() Rect {
	return RectAt(b.Position(), b.Size)
}

// canContact reports whether a contact between a and b should be reported.
func canContact(a, b *Body) bool {
	return a.Contacts&b.Category != 0 || b.Contacts&a.Category != 0
}
