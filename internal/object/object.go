// Package object holds the simulated entities: targets, projectiles, the
// turret, the arena that owns them and the scheduler that spawns targets.
package object

import (
	"time"

	"github.com/tomz197/protector/internal/physics"
)

// EntityID identifies an entity in an Arena. It carries a slot index and a
// generation, so an id held after removal never resolves to a reused slot.
type EntityID = physics.BodyID

// InvalidEntityID is never assigned to a live entity.
const InvalidEntityID EntityID = 0

// Rand is the randomness source used for spawning.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// Entity is a simulated target or projectile.
type Entity struct {
	physics.Body
}

// NewTarget creates a target entering at the left edge at height y and
// leaving past the right edge after d.
func NewTarget(field, size physics.Size, y float64, d time.Duration) Entity {
	return Entity{Body: physics.Body{
		Category: physics.CategoryTarget,
		Contacts: physics.CategoryProjectile,
		Size:     size,
		Motion: physics.Motion{
			From:     physics.Vec{X: -size.W / 2, Y: y},
			To:       physics.Vec{X: field.W + size.W/2, Y: y},
			Duration: d,
		},
	}}
}

// NewProjectile creates a projectile leaving origin straight up and clearing
// the top of the field after d.
func NewProjectile(field, size physics.Size, origin physics.Vec, d time.Duration) Entity {
	return Entity{Body: physics.Body{
		Category: physics.CategoryProjectile,
		Contacts: physics.CategoryTarget,
		Size:     size,
		Motion: physics.Motion{
			From:     origin,
			To:       physics.Vec{X: origin.X, Y: field.H + size.H/2},
			Duration: d,
		},
	}}
}

// IsTarget reports whether e is a target.
func (e *Entity) IsTarget() bool {
	return e.Category == physics.CategoryTarget
}

// View is a read-only copy of an entity for renderers.
type View struct {
	ID       EntityID
	Category physics.Category
	Position physics.Vec
	Size     physics.Size
}

// View returns the renderer-facing snapshot of e.
func (e *Entity) View() View {
	return View{
		ID:       e.ID,
		Category: e.Category,
		Position: e.Position(),
		Size:     e.Size,
	}
}
