package game

import (
	"fmt"
	"math"
	"time"

	"github.com/tomz197/protector/internal/object"
	"github.com/tomz197/protector/internal/physics"
)

// Status is the phase of a single session.
type Status int

const (
	StatusActive Status = iota // Accepting ticks and input
	StatusLost                 // A target crossed the field; terminal
)

// String returns a readable status name.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusLost:
		return "lost"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// dragState tracks one pointer gesture.
type dragState struct {
	start   physics.Vec
	active  bool // A gesture is in progress
	holding bool // The gesture started on the turret
}

// Session is one playthrough: it owns the entities, the score and the turret,
// and drives spawning, physics and scoring each tick.
type Session struct {
	cfg      Config
	field    physics.Size
	entities *object.Arena
	world    *physics.World
	spawner  *object.SpawnScheduler
	turret   object.Turret
	drag     dragState

	score   int
	elapsed time.Duration
	spawned int
	status  Status
	lostBy  object.EntityID
	hits    []Hit
}

// NewSession validates cfg and starts an active session with a zero score.
func NewSession(cfg Config, rng object.Rand) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newSession(cfg, rng), nil
}

// newSession builds a session from an already validated config.
func newSession(cfg Config, rng object.Rand) *Session {
	field := cfg.Field()
	cell := math.Max(cfg.TargetSize.W, cfg.TargetSize.H)
	return &Session{
		cfg:      cfg,
		field:    field,
		entities: object.NewArena(),
		world:    physics.NewWorld(field, cell),
		spawner:  object.NewSpawnScheduler(cfg.spawnSettings(), rng),
		turret:   object.NewTurret(field, cfg.TurretSize, cfg.TurretYFraction),
		status:   StatusActive,
	}
}

// Tick advances the session by dt. It does nothing once the session is lost.
//
// Order within a tick: spawn, move and detect, score contacts, then expiries.
// The first expired target ends the session and nothing after it is processed.
func (s *Session) Tick(dt time.Duration) {
	if s.status != StatusActive {
		return
	}
	s.elapsed += dt

	if req, ok := s.spawner.Tick(dt); ok {
		s.SpawnTarget(req.Y, req.Duration)
	}

	step := s.world.Advance(dt, s.entities)

	for _, c := range step.Contacts {
		target, ok := s.entities.Get(c.Target)
		if !ok {
			continue
		}
		hit := Score(c, target.Bounds(), s.cfg.PrecisionBand)
		s.score += hit.Delta
		s.hits = append(s.hits, hit)
		s.entities.Remove(c.Target)
		s.entities.Remove(c.Projectile)
	}

	for _, e := range step.Expired {
		if e.Category == physics.CategoryTarget {
			s.status = StatusLost
			s.lostBy = e.ID
			return
		}
		s.entities.Remove(e.ID)
	}
}

// SpawnTarget adds a target at height y crossing the field in d.
// The scheduler uses it; tests and hosts may call it directly.
func (s *Session) SpawnTarget(y float64, d time.Duration) object.EntityID {
	s.spawned++
	return s.entities.Insert(object.NewTarget(s.field, s.cfg.TargetSize, y, d))
}

// SubmitShot fires a projectile from the turret if origin lies on the turret.
// Anything else is ignored. Reports whether a projectile was added.
func (s *Session) SubmitShot(origin physics.Vec) bool {
	if s.status != StatusActive || !s.turret.Contains(origin) {
		return false
	}
	s.entities.Insert(object.NewProjectile(s.field, s.cfg.ProjectileSize, s.turret.Position, s.cfg.ProjectileDuration))
	return true
}

// DragStart begins a pointer gesture. The turret is held only if the gesture
// starts on it.
func (s *Session) DragStart(pos physics.Vec) {
	s.drag = dragState{
		start:   pos,
		active:  true,
		holding: s.turret.Contains(pos),
	}
}

// DragMove slides a held turret to the pointer's x while the pointer stays
// inside the drag band at the bottom of the field.
func (s *Session) DragMove(pos physics.Vec) {
	if !s.drag.holding || s.status != StatusActive {
		return
	}
	if pos.Y < s.cfg.DragBandFraction*s.field.H {
		s.turret.MoveTo(pos.X)
	}
}

// DragEnd finishes the gesture. A gesture that ends where it started is a tap
// and submits a shot at that point.
func (s *Session) DragEnd(pos physics.Vec) {
	if !s.drag.active {
		return
	}
	start := s.drag.start
	s.drag = dragState{}
	if pos == start {
		s.SubmitShot(pos)
	}
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// IsLost reports whether a target has crossed the field.
func (s *Session) IsLost() bool {
	return s.status == StatusLost
}

// Status returns the session phase.
func (s *Session) Status() Status {
	return s.status
}

// LostBy returns the target that ended the session, or InvalidEntityID.
func (s *Session) LostBy() object.EntityID {
	return s.lostBy
}

// Turret returns a copy of the turret.
func (s *Session) Turret() object.Turret {
	return s.turret
}

// Entities returns a snapshot of live entities in spawn order.
func (s *Session) Entities() []object.View {
	return s.entities.Snapshot(nil)
}

// EntityCount returns the number of live entities.
func (s *Session) EntityCount() int {
	return s.entities.Len()
}

// Elapsed returns simulated time since the session started.
func (s *Session) Elapsed() time.Duration {
	return s.elapsed
}

// Spawned returns how many targets have been spawned.
func (s *Session) Spawned() int {
	return s.spawned
}

// DrainHits returns the hits scored since the last call and forgets them.
func (s *Session) DrainHits() []Hit {
	if len(s.hits) == 0 {
		return nil
	}
	hits := s.hits
	s.hits = nil
	return hits
}
