package game

import (
	"math"

	"github.com/tomz197/protector/internal/physics"
)

// Points awarded per hit.
const (
	ScoreHit     = 1
	ScorePrecise = 2
)

// Hit is the scored outcome of one contact.
type Hit struct {
	Position physics.Vec // Contact point
	Delta    int
	Precise  bool
}

// Score rates a contact against the target's box at the instant of contact.
// A hit is precise when the contact lies strictly within band*width of the
// target centre; a contact exactly on the band edge scores as a plain hit.
func Score(c physics.Contact, target physics.Rect, band float64) Hit {
	precise := math.Abs(c.Point.X-target.Center.X) < target.Size.W*band
	delta := ScoreHit
	if precise {
		delta = ScorePrecise
	}
	return Hit{Position: c.Point, Delta: delta, Precise: precise}
}
