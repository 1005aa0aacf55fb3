package physics

import (
	"cmp"
	"math"
	"slices"
	"time"
)

// Contact is a detected overlap between a target and a projectile.
type Contact struct {
	Target     BodyID
	Projectile BodyID
	Point      Vec // Projectile centre at the moment of first overlap
}

// Expiry reports a body that reached the end of its path without contact.
type Expiry struct {
	ID       BodyID
	Category Category
}

// Step is the outcome of one World.Advance call.
// The slices are reused by the next Advance call.
type Step struct {
	Contacts []Contact
	Expired  []Expiry
}

// Bodies is the set of bodies a World advances.
type Bodies interface {
	EachBody(fn func(b *Body))
}

// sweep is a projectile together with the path it covered this tick.
type sweep struct {
	body *Body
	from Vec
	to   Vec
	area Rect
}

// pair is a candidate contact, indexes into World.targets and World.sweeps.
type pair struct {
	target int
	shot   int
}

// World moves bodies along their paths and detects target/projectile contacts.
// It has no collision response: bodies pass through each other.
type World struct {
	field Size
	grid  *SpatialGrid

	// Reusable per-tick buffers
	targets []*Body
	sweeps  []sweep
	pairs   []pair
	hitT    []bool
	hitS    []bool
	step    Step
}

// NewWorld creates a world for a field of the given size. cellSize should be at
// least the largest half-extent of any target.
func NewWorld(field Size, cellSize float64) *World {
	return &World{
		field: field,
		grid:  NewSpatialGrid(field.W, field.H, cellSize),
	}
}

// Advance moves every body by dt and returns the contacts and expiries of this tick.
//
// Targets are resolved in spawn order; each takes the earliest-spawned projectile
// overlapping it that no earlier target has claimed. A body appears in at most one
// contact per tick. Bodies that finished their path and were not hit are expired.
func (w *World) Advance(dt time.Duration, bodies Bodies) Step {
	w.targets = w.targets[:0]
	w.sweeps = w.sweeps[:0]
	w.step.Contacts = w.step.Contacts[:0]
	w.step.Expired = w.step.Expired[:0]

	bodies.EachBody(func(b *Body) {
		from := b.Motion.Advance(dt)
		switch b.Category {
		case CategoryTarget:
			w.targets = append(w.targets, b)
		case CategoryProjectile:
			to := b.Position()
			w.sweeps = append(w.sweeps, sweep{
				body: b,
				from: from,
				to:   to,
				area: RectAt(from, b.Size).Union(RectAt(to, b.Size)),
			})
		}
	})

	slices.SortFunc(w.targets, func(a, b *Body) int { return cmp.Compare(a.Seq, b.Seq) })
	slices.SortFunc(w.sweeps, func(a, b sweep) int { return cmp.Compare(a.body.Seq, b.body.Seq) })

	w.collectPairs()
	w.resolvePairs()
	w.collectExpired()

	return w.step
}

// collectPairs finds every overlapping target/projectile pair using the grid.
func (w *World) collectPairs() {
	w.pairs = w.pairs[:0]
	if len(w.targets) == 0 || len(w.sweeps) == 0 {
		return
	}

	w.fitGrid()
	w.grid.Clear()
	for i, t := range w.targets {
		p := t.Position()
		w.grid.Insert(p.X, p.Y, i)
	}

	for si := range w.sweeps {
		s := &w.sweeps[si]
		w.grid.QueryRect(s.area, func(ti int) bool {
			t := w.targets[ti]
			if canContact(t, s.body) && t.Bounds().Overlaps(s.area) {
				w.pairs = append(w.pairs, pair{target: ti, shot: si})
			}
			return false
		})
	}

	// targets and sweeps are already in spawn order, so index order is spawn order
	slices.SortFunc(w.pairs, func(a, b pair) int {
		if c := cmp.Compare(a.target, b.target); c != 0 {
			return c
		}
		return cmp.Compare(a.shot, b.shot)
	})
}

// fitGrid grows the grid cells if a target is wider than the current cell size.
func (w *World) fitGrid() {
	need := w.grid.CellSize()
	for _, t := range w.targets {
		need = math.Max(need, math.Max(t.Size.W, t.Size.H)/2)
	}
	if need > w.grid.CellSize() {
		w.grid = NewSpatialGrid(w.field.W, w.field.H, need)
	}
}

// resolvePairs turns candidate pairs into contacts, first come first served.
func (w *World) resolvePairs() {
	w.hitT = resetFlags(w.hitT, len(w.targets))
	w.hitS = resetFlags(w.hitS, len(w.sweeps))

	for _, p := range w.pairs {
		if w.hitT[p.target] || w.hitS[p.shot] {
			continue
		}
		w.hitT[p.target] = true
		w.hitS[p.shot] = true

		t := w.targets[p.target]
		s := w.sweeps[p.shot]
		w.step.Contacts = append(w.step.Contacts, Contact{
			Target:     t.ID,
			Projectile: s.body.ID,
			Point:      firstOverlap(s, t.Bounds()),
		})
	}
}

// collectExpired reports bodies that finished their path untouched, in spawn order.
func (w *World) collectExpired() {
	ti, si := 0, 0
	for ti < len(w.targets) || si < len(w.sweeps) {
		var b *Body
		var hit bool
		if si >= len(w.sweeps) || (ti < len(w.targets) && w.targets[ti].Seq < w.sweeps[si].body.Seq) {
			b, hit = w.targets[ti], w.hitT[ti]
			ti++
		} else {
			b, hit = w.sweeps[si].body, w.hitS[si]
			si++
		}
		if !hit && b.Motion.Done() {
			w.step.Expired = append(w.step.Expired, Expiry{ID: b.ID, Category: b.Category})
		}
	}
}

// firstOverlap returns the projectile centre at the earliest point of its sweep
// where it overlaps target. Uses the slab method on both axes.
func firstOverlap(s sweep, target Rect) Vec {
	half := Size{W: s.body.Size.W / 2, H: s.body.Size.H / 2}
	lo, hi := target.Min(), target.Max()

	tx := entryFraction(s.from.X, s.to.X, lo.X-half.W, hi.X+half.W)
	ty := entryFraction(s.from.Y, s.to.Y, lo.Y-half.H, hi.Y+half.H)
	return s.from.Lerp(s.to, Clamp(math.Max(tx, ty), 0, 1))
}

// entryFraction returns the fraction of the move from a to b at which the
// coordinate first enters [lo, hi]. Zero if it starts inside.
func entryFraction(a, b, lo, hi float64) float64 {
	if a >= lo && a <= hi {
		return 0
	}
	d := b - a
	if d == 0 {
		return 0
	}
	if d > 0 {
		return (lo - a) / d
	}
	return (hi - a) / d
}

func resetFlags(flags []bool, n int) []bool {
	if cap(flags) < n {
		return make([]bool, n)
	}
	flags = flags[:n]
	clear(flags)
	return flags
}
