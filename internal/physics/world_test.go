package physics

import (
	"math"
	"testing"
	"time"
)

func near(a, b Vec) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

type bodySet []*Body

func (s bodySet) EachBody(fn func(b *Body)) {
	for _, b := range s {
		fn(b)
	}
}

var (
	targetSize = Size{W: 64, H: 32}
	shotSize   = Size{W: 8, H: 16}
)

func parkedTarget(id BodyID, seq uint64, at Vec) *Body {
	return &Body{
		ID:       id,
		Seq:      seq,
		Category: CategoryTarget,
		Contacts: CategoryProjectile,
		Size:     targetSize,
		Motion:   Motion{From: at, To: at, Duration: 10 * time.Second},
	}
}

func rising(id BodyID, seq uint64, x, fromY, toY float64, d time.Duration) *Body {
	return &Body{
		ID:       id,
		Seq:      seq,
		Category: CategoryProjectile,
		Contacts: CategoryTarget,
		Size:     shotSize,
		Motion:   Motion{From: Vec{X: x, Y: fromY}, To: Vec{X: x, Y: toY}, Duration: d},
	}
}

func TestAdvanceReportsContactAtFirstOverlap(t *testing.T) {
	w := NewWorld(Size{W: 400, H: 600}, 64)
	target := parkedTarget(1, 1, Vec{X: 100, Y: 300})
	shot := rising(2, 2, 100, 200, 400, time.Second)

	step := w.Advance(500*time.Millisecond, bodySet{target, shot})
	if len(step.Contacts) != 1 {
		t.Fatalf("contacts = %d, want 1", len(step.Contacts))
	}
	c := step.Contacts[0]
	if c.Target != 1 || c.Projectile != 2 {
		t.Fatalf("contact = %+v, want target 1 projectile 2", c)
	}
	// target bottom 284, projectile half height 8: overlap begins at y=276
	if !near(c.Point, Vec{X: 100, Y: 276}) {
		t.Fatalf("contact point = %v, want (100,276)", c.Point)
	}
	if len(step.Expired) != 0 {
		t.Fatalf("unexpected expiries: %+v", step.Expired)
	}
}

func TestAdvanceIgnoresSameCategoryAndMasks(t *testing.T) {
	w := NewWorld(Size{W: 400, H: 600}, 64)
	a := rising(1, 1, 100, 300, 310, time.Second)
	b := rising(2, 2, 100, 300, 310, time.Second)
	t1 := parkedTarget(3, 3, Vec{X: 300, Y: 300})
	t2 := parkedTarget(4, 4, Vec{X: 300, Y: 300})
	masked := parkedTarget(5, 5, Vec{X: 100, Y: 300})
	masked.Contacts = CategoryNone
	a.Contacts = CategoryNone
	b.Contacts = CategoryNone

	step := w.Advance(time.Millisecond, bodySet{a, b, t1, t2, masked})
	if len(step.Contacts) != 0 {
		t.Fatalf("contacts = %+v, want none", step.Contacts)
	}
}

func TestAdvanceResolvesEarliestSpawnedTargetFirst(t *testing.T) {
	w := NewWorld(Size{W: 400, H: 600}, 64)
	late := parkedTarget(10, 7, Vec{X: 100, Y: 300})
	early := parkedTarget(11, 3, Vec{X: 110, Y: 305})
	shot := rising(12, 9, 100, 250, 350, time.Second)

	// insertion order must not matter
	step := w.Advance(500*time.Millisecond, bodySet{late, shot, early})
	if len(step.Contacts) != 1 {
		t.Fatalf("contacts = %d, want 1", len(step.Contacts))
	}
	if step.Contacts[0].Target != 11 {
		t.Fatalf("resolved target %d, want earliest-spawned 11", step.Contacts[0].Target)
	}
}

func TestAdvanceTargetClaimsEarliestProjectileOnly(t *testing.T) {
	w := NewWorld(Size{W: 400, H: 600}, 64)
	target := parkedTarget(1, 1, Vec{X: 100, Y: 300})
	second := rising(3, 3, 104, 250, 350, time.Second)
	first := rising(2, 2, 96, 250, 350, time.Second)

	step := w.Advance(500*time.Millisecond, bodySet{target, second, first})
	if len(step.Contacts) != 1 {
		t.Fatalf("contacts = %d, want 1", len(step.Contacts))
	}
	if step.Contacts[0].Projectile != 2 {
		t.Fatalf("target claimed projectile %d, want 2", step.Contacts[0].Projectile)
	}
}

func TestAdvanceExpiresFinishedBodiesInSpawnOrder(t *testing.T) {
	w := NewWorld(Size{W: 400, H: 600}, 64)
	target := &Body{
		ID: 1, Seq: 2, Category: CategoryTarget, Contacts: CategoryProjectile, Size: targetSize,
		Motion: Motion{From: Vec{X: -32, Y: 300}, To: Vec{X: 432, Y: 300}, Duration: time.Second},
	}
	shot := rising(2, 1, 50, 60, 608, 500*time.Millisecond)

	step := w.Advance(time.Second, bodySet{target, shot})
	if len(step.Contacts) != 0 {
		t.Fatalf("unexpected contacts: %+v", step.Contacts)
	}
	want := []Expiry{{ID: 2, Category: CategoryProjectile}, {ID: 1, Category: CategoryTarget}}
	if len(step.Expired) != len(want) {
		t.Fatalf("expired = %+v, want %+v", step.Expired, want)
	}
	for i := range want {
		if step.Expired[i] != want[i] {
			t.Fatalf("expired[%d] = %+v, want %+v", i, step.Expired[i], want[i])
		}
	}
}

func TestAdvanceHitBodiesAreNotExpired(t *testing.T) {
	w := NewWorld(Size{W: 400, H: 600}, 64)
	target := parkedTarget(1, 1, Vec{X: 100, Y: 300})
	target.Motion.Duration = 100 * time.Millisecond
	shot := rising(2, 2, 100, 290, 310, 100*time.Millisecond)

	step := w.Advance(200*time.Millisecond, bodySet{target, shot})
	if len(step.Contacts) != 1 {
		t.Fatalf("contacts = %d, want 1", len(step.Contacts))
	}
	if len(step.Expired) != 0 {
		t.Fatalf("hit bodies reported expired: %+v", step.Expired)
	}
}

func TestAdvanceSweepCatchesFastProjectile(t *testing.T) {
	w := NewWorld(Size{W: 400, H: 600}, 64)
	target := parkedTarget(1, 1, Vec{X: 200, Y: 300})
	shot := rising(2, 2, 200, 0, 1000, time.Second)

	step := w.Advance(time.Second, bodySet{target, shot})
	if len(step.Contacts) != 1 {
		t.Fatalf("fast projectile tunnelled through target: %+v", step)
	}
	if got := step.Contacts[0].Point; !near(got, Vec{X: 200, Y: 276}) {
		t.Fatalf("contact point = %v, want (200,276)", got)
	}
}
