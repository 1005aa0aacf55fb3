package object

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/tomz197/protector/internal/physics"
)

var (
	field      = physics.Size{W: 400, H: 600}
	targetSize = physics.Size{W: 64, H: 32}
	shotSize   = physics.Size{W: 8, H: 16}
)

// fixedRand returns the same value on every call.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func TestNewTargetCrossesWholeField(t *testing.T) {
	e := NewTarget(field, targetSize, 300, 3*time.Second)
	if !e.IsTarget() {
		t.Fatalf("target category = %v", e.Category)
	}
	if e.Motion.From != (physics.Vec{X: -32, Y: 300}) {
		t.Fatalf("start = %v, want (-32,300)", e.Motion.From)
	}
	if e.Motion.To != (physics.Vec{X: 432, Y: 300}) {
		t.Fatalf("end = %v, want (432,300)", e.Motion.To)
	}
}

func TestNewProjectileExitsTop(t *testing.T) {
	e := NewProjectile(field, shotSize, physics.Vec{X: 150, Y: 60}, 500*time.Millisecond)
	if e.IsTarget() {
		t.Fatalf("projectile reported as target")
	}
	if e.Motion.To != (physics.Vec{X: 150, Y: 608}) {
		t.Fatalf("end = %v, want (150,608)", e.Motion.To)
	}
}

func TestArenaStaleIDsNeverResolve(t *testing.T) {
	a := NewArena()
	first := a.Insert(NewTarget(field, targetSize, 300, time.Second))
	if first == InvalidEntityID {
		t.Fatalf("arena handed out the invalid id")
	}
	if !a.Remove(first) {
		t.Fatalf("remove of live id failed")
	}
	if a.Remove(first) {
		t.Fatalf("second remove of the same id succeeded")
	}

	second := a.Insert(NewTarget(field, targetSize, 200, time.Second))
	if second == first {
		t.Fatalf("reused slot kept the old id %v", first)
	}
	if _, ok := a.Get(first); ok {
		t.Fatalf("stale id resolved after slot reuse")
	}
	e, ok := a.Get(second)
	if !ok || e.Position().Y != 200 {
		t.Fatalf("Get(second) = %+v, %v", e, ok)
	}
	if a.Len() != 1 {
		t.Fatalf("len = %d, want 1", a.Len())
	}
}

func TestArenaSnapshotInSpawnOrder(t *testing.T) {
	a := NewArena()
	ids := []EntityID{
		a.Insert(NewTarget(field, targetSize, 100, time.Second)),
		a.Insert(NewTarget(field, targetSize, 200, time.Second)),
		a.Insert(NewProjectile(field, shotSize, physics.Vec{X: 200, Y: 60}, time.Second)),
	}
	a.Remove(ids[0])
	ids = append(ids[1:], a.Insert(NewTarget(field, targetSize, 400, time.Second))) // reuses slot 0

	views := a.Snapshot(nil)
	if len(views) != 3 {
		t.Fatalf("snapshot len = %d, want 3", len(views))
	}
	for i, v := range views {
		if v.ID != ids[i] {
			t.Fatalf("snapshot[%d] = %v, want %v", i, v.ID, ids[i])
		}
	}
	if got := a.Count(physics.CategoryTarget); got != 2 {
		t.Fatalf("targets = %d, want 2", got)
	}
}

func TestSpawnSchedulerFixedRate(t *testing.T) {
	s := NewSpawnScheduler(SpawnSettings{
		Interval: time.Second, MinY: 120, MaxY: 540,
		MinDuration: 2 * time.Second, MaxDuration: 4 * time.Second,
	}, rand.New(rand.NewPCG(1, 2)))

	dt := time.Second / 60
	var ticks []int
	for i := 1; i <= 300; i++ { // just under five seconds
		if _, ok := s.Tick(dt); ok {
			ticks = append(ticks, i)
		}
	}
	want := []int{1, 61, 121, 181, 241}
	if len(ticks) != len(want) {
		t.Fatalf("spawn ticks = %v, want %v", ticks, want)
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Fatalf("spawn ticks = %v, want %v", ticks, want)
		}
	}
}

func TestSpawnSchedulerRanges(t *testing.T) {
	settings := SpawnSettings{
		Interval: time.Second, MinY: 120, MaxY: 540,
		MinDuration: 2 * time.Second, MaxDuration: 4 * time.Second,
	}
	s := NewSpawnScheduler(settings, rand.New(rand.NewPCG(7, 7)))
	for i := 0; i < 1000; i++ {
		req, ok := s.Tick(time.Second)
		if !ok {
			t.Fatalf("tick %d: no request with dt == interval", i)
		}
		if req.Y < settings.MinY || req.Y > settings.MaxY {
			t.Fatalf("y = %f outside [%f, %f]", req.Y, settings.MinY, settings.MaxY)
		}
		if req.Duration < settings.MinDuration || req.Duration > settings.MaxDuration {
			t.Fatalf("duration = %v outside [%v, %v]", req.Duration, settings.MinDuration, settings.MaxDuration)
		}
	}

	lo := NewSpawnScheduler(settings, fixedRand(0))
	if req, _ := lo.Tick(0); req.Y != 120 || req.Duration != 2*time.Second {
		t.Fatalf("lowest draw = %+v, want y 120 duration 2s", req)
	}
}

func TestSpawnSchedulerBacklogDrainsOnePerTick(t *testing.T) {
	s := NewSpawnScheduler(SpawnSettings{Interval: time.Second, MaxY: 1, MaxDuration: time.Second}, fixedRand(0.5))
	if _, ok := s.Tick(3 * time.Second); !ok {
		t.Fatalf("expected a request")
	}
	if _, ok := s.Tick(0); !ok {
		t.Fatalf("backlog not drained on next tick")
	}
	if _, ok := s.Tick(0); !ok {
		t.Fatalf("backlog not drained on third tick")
	}
	if _, ok := s.Tick(0); !ok {
		t.Fatalf("request due exactly at t=3s was skipped")
	}
	if _, ok := s.Tick(0); ok {
		t.Fatalf("spawned beyond the backlog")
	}
	s.Reset()
	if _, ok := s.Tick(0); !ok {
		t.Fatalf("reset scheduler should emit immediately")
	}
}

func TestTurretClampsToBand(t *testing.T) {
	tu := NewTurret(field, physics.Size{W: 32, H: 48}, 0.1)
	if tu.Position != (physics.Vec{X: 200, Y: 60}) {
		t.Fatalf("turret at %v, want (200,60)", tu.Position)
	}
	tu.MoveTo(-50)
	if tu.Position.X != 16 {
		t.Fatalf("x = %f, want clamped to 16", tu.Position.X)
	}
	tu.MoveTo(1000)
	if tu.Position.X != 384 {
		t.Fatalf("x = %f, want clamped to 384", tu.Position.X)
	}
	if !tu.Contains(physics.Vec{X: 384, Y: 60}) || tu.Contains(physics.Vec{X: 200, Y: 60}) {
		t.Fatalf("Contains does not follow the moved turret")
	}
}
