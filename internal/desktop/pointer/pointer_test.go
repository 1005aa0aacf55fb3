package pointer

import (
	"testing"

	"github.com/tomz197/protector/internal/physics"
)

type event struct {
	kind string
	p    physics.Vec
}

type recorder struct {
	events []event
}

func (r *recorder) SubmitDragStart(p physics.Vec) { r.events = append(r.events, event{"start", p}) }
func (r *recorder) SubmitDragMove(p physics.Vec)  { r.events = append(r.events, event{"move", p}) }
func (r *recorder) SubmitDragEnd(p physics.Vec)   { r.events = append(r.events, event{"end", p}) }

var mapper = Mapper{Field: physics.Size{W: 400, H: 600}}

func TestMapperFlipsY(t *testing.T) {
	if p := mapper.ToField(10, 0); p != (physics.Vec{X: 10, Y: 600}) {
		t.Fatalf("ToField(10,0) = %v", p)
	}
	if x, y := mapper.ToScreen(physics.Vec{X: 200, Y: 60}); x != 200 || y != 540 {
		t.Fatalf("ToScreen = (%v,%v), want (200,540)", x, y)
	}
	r := physics.RectAt(physics.Vec{X: 200, Y: 60}, physics.Size{W: 32, H: 48})
	x, y, w, h := mapper.RectToScreen(r)
	if x != 184 || y != 516 || w != 32 || h != 48 {
		t.Fatalf("RectToScreen = %v %v %v %v", x, y, w, h)
	}
}

func TestTrackerForwardsOnePointer(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(rec, mapper)

	if !tr.Press(MouseID, 200, 540) {
		t.Fatalf("first press not tracked")
	}
	if tr.Press(3, 10, 10) {
		t.Fatalf("second pointer tracked while the first is down")
	}
	tr.Move(3, 20, 20)
	tr.Move(MouseID, 200, 540) // unchanged
	tr.Move(MouseID, 150, 545)
	if _, tap := tr.Release(3, 20, 20); tap {
		t.Fatalf("untracked release reported a tap")
	}
	if _, tap := tr.Release(MouseID, 150, 545); tap {
		t.Fatalf("drag reported as a tap")
	}

	want := []event{
		{"start", physics.Vec{X: 200, Y: 60}},
		{"move", physics.Vec{X: 150, Y: 55}},
		{"end", physics.Vec{X: 150, Y: 55}},
	}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %+v, want %+v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Fatalf("event %d = %+v, want %+v", i, rec.events[i], want[i])
		}
	}
	if tr.Active() {
		t.Fatalf("still active after release")
	}
}

func TestPlayAgainButton(t *testing.T) {
	b := PlayAgainButton(mapper.Field)
	x, y := mapper.ToScreen(b.Rect.Center)
	if !b.Hit(mapper, x, y) {
		t.Fatalf("centre of the button missed")
	}
	if b.Hit(mapper, x, y-100) {
		t.Fatalf("point above the button hit")
	}
}

func TestTrackerReportsTap(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(rec, mapper)
	tr.Press(7, 200, 540)
	p, tap := tr.Release(7, 200, 540)
	if !tap || p != (physics.Vec{X: 200, Y: 60}) {
		t.Fatalf("Release = %v %v, want tap at (200,60)", p, tap)
	}
	if len(rec.events) != 2 || rec.events[1].kind != "end" {
		t.Fatalf("events = %+v", rec.events)
	}
}
