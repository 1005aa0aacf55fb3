package object

import (
	"cmp"
	"slices"

	"github.com/tomz197/protector/internal/physics"
)

// slot is one arena cell. A removed slot keeps its generation bumped so stale
// ids stop matching.
type slot struct {
	entity Entity
	gen    uint32
	alive  bool
}

// Arena owns every live entity of a session, indexed by id.
// Removal frees the slot for reuse instead of tearing down references.
type Arena struct {
	slots []slot
	free  []uint32
	seq   uint64
	live  int
}

// Compile-time check that Arena can be advanced by a physics.World.
var _ physics.Bodies = (*Arena)(nil)

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

func makeID(index, gen uint32) EntityID {
	return EntityID(uint64(gen)<<32 | uint64(index))
}

func splitID(id EntityID) (index, gen uint32) {
	return uint32(uint64(id)), uint32(uint64(id) >> 32)
}

// Insert adds e, assigning its id and spawn sequence, and returns the id.
func (a *Arena) Insert(e Entity) EntityID {
	var index uint32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		index = uint32(len(a.slots))
		a.slots = append(a.slots, slot{gen: 1})
	}

	s := &a.slots[index]
	a.seq++
	e.ID = makeID(index, s.gen)
	e.Seq = a.seq
	s.entity = e
	s.alive = true
	a.live++
	return e.ID
}

// Get returns the live entity with the given id.
func (a *Arena) Get(id EntityID) (*Entity, bool) {
	index, gen := splitID(id)
	if int(index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[index]
	if !s.alive || s.gen != gen {
		return nil, false
	}
	return &s.entity, true
}

// Remove frees the entity's slot. Returns false if id is not live.
func (a *Arena) Remove(id EntityID) bool {
	index, gen := splitID(id)
	if int(index) >= len(a.slots) {
		return false
	}
	s := &a.slots[index]
	if !s.alive || s.gen != gen {
		return false
	}
	s.alive = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.entity = Entity{}
	a.free = append(a.free, index)
	a.live--
	return true
}

// Len returns the number of live entities.
func (a *Arena) Len() int {
	return a.live
}

// Count returns the number of live entities in the given category.
func (a *Arena) Count(c physics.Category) int {
	n := 0
	a.Each(func(e *Entity) {
		if e.Category == c {
			n++
		}
	})
	return n
}

// Each calls fn for every live entity in slot order.
func (a *Arena) Each(fn func(e *Entity)) {
	for i := range a.slots {
		if a.slots[i].alive {
			fn(&a.slots[i].entity)
		}
	}
}

// EachBody implements physics.Bodies.
func (a *Arena) EachBody(fn func(b *physics.Body)) {
	a.Each(func(e *Entity) {
		fn(&e.Body)
	})
}

// Snapshot appends a view of every live entity to dst, in spawn order.
func (a *Arena) Snapshot(dst []View) []View {
	type seqView struct {
		seq  uint64
		view View
	}
	tmp := make([]seqView, 0, a.live)
	a.Each(func(e *Entity) {
		tmp = append(tmp, seqView{seq: e.Seq, view: e.View()})
	})
	slices.SortFunc(tmp, func(x, y seqView) int { return cmp.Compare(x.seq, y.seq) })
	for _, sv := range tmp {
		dst = append(dst, sv.view)
	}
	return dst
}
