package physics

import (
	"testing"
	"time"
)

func TestRectOverlapsExcludesTouchingEdges(t *testing.T) {
	a := RectAt(Vec{X: 0, Y: 0}, Size{W: 10, H: 10})
	touching := RectAt(Vec{X: 10, Y: 0}, Size{W: 10, H: 10})
	inside := RectAt(Vec{X: 9, Y: 9}, Size{W: 10, H: 10})

	if a.Overlaps(touching) {
		t.Fatalf("boxes sharing an edge should not overlap")
	}
	if !a.Overlaps(inside) {
		t.Fatalf("expected overlap for %v and %v", a, inside)
	}
}

func TestRectContainsIncludesEdges(t *testing.T) {
	r := RectAt(Vec{X: 50, Y: 60}, Size{W: 32, H: 48})
	for _, p := range []Vec{{X: 34, Y: 36}, {X: 66, Y: 84}, {X: 50, Y: 60}} {
		if !r.Contains(p) {
			t.Fatalf("expected %v inside %v", p, r)
		}
	}
	if r.Contains(Vec{X: 66.01, Y: 60}) {
		t.Fatalf("point past the right edge reported inside")
	}
}

func TestRectUnion(t *testing.T) {
	u := RectAt(Vec{X: 0, Y: 0}, Size{W: 2, H: 2}).Union(RectAt(Vec{X: 0, Y: 10}, Size{W: 2, H: 2}))
	if u.Center != (Vec{X: 0, Y: 5}) || u.Size != (Size{W: 2, H: 12}) {
		t.Fatalf("union = %+v, want centre (0,5) size 2x12", u)
	}
}

func TestMotionInterpolatesAndFinishes(t *testing.T) {
	m := Motion{From: Vec{X: 0, Y: 10}, To: Vec{X: 100, Y: 10}, Duration: 2 * time.Second}

	m.Advance(500 * time.Millisecond)
	if got := m.Position(); got != (Vec{X: 25, Y: 10}) {
		t.Fatalf("position after 0.5s = %v, want (25,10)", got)
	}
	if got := m.Remaining(); got != 1500*time.Millisecond {
		t.Fatalf("remaining = %v, want 1.5s", got)
	}
	if m.Done() {
		t.Fatalf("motion done too early")
	}

	m.Advance(3 * time.Second)
	if !m.Done() {
		t.Fatalf("motion should be done after overshooting its duration")
	}
	if got := m.Position(); got != m.To {
		t.Fatalf("position past the end = %v, want clamped to %v", got, m.To)
	}
	if m.Remaining() != 0 {
		t.Fatalf("remaining past the end = %v, want 0", m.Remaining())
	}
}

func TestSpatialGridQueryRect(t *testing.T) {
	g := NewSpatialGrid(400, 600, 32)
	g.Insert(100, 100, 1)
	g.Insert(390, 590, 2)
	g.Insert(-40, 300, 3) // outside the field, clamped to column 0

	found := map[int]bool{}
	g.QueryRect(RectAt(Vec{X: 110, Y: 105}, Size{W: 8, H: 16}), func(i int) bool {
		found[i] = true
		return false
	})
	if !found[1] || found[2] {
		t.Fatalf("query near (110,105) found %v, want only item 1", found)
	}

	found = map[int]bool{}
	g.QueryRect(RectAt(Vec{X: 5, Y: 300}, Size{W: 8, H: 16}), func(i int) bool {
		found[i] = true
		return false
	})
	if !found[3] {
		t.Fatalf("expected clamped item 3 near the left edge, got %v", found)
	}

	g.Clear()
	calls := 0
	g.QueryRect(RectAt(Vec{X: 100, Y: 100}, Size{W: 400, H: 600}), func(int) bool {
		calls++
		return false
	})
	if calls != 0 {
		t.Fatalf("cleared grid visited %d items", calls)
	}
}
