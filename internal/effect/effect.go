// Package effect holds short-lived visual feedback that does not take part in
// the simulation: floating hit labels and spark bursts.
package effect

import (
	"math"
	"sync"
	"time"

	"github.com/tomz197/protector/internal/game"
	"github.com/tomz197/protector/internal/object"
	"github.com/tomz197/protector/internal/physics"
)

// Label offsets relative to the contact point, in field units.
var (
	scoreOffset   = physics.Vec{X: 20, Y: 20}
	perfectOffset = physics.Vec{X: 30, Y: -20} // relative to the score label
)

const (
	sparkCount    = 8
	sparkSpeed    = 140.0 // Field units per second
	sparkLifetime = 0.35  // Seconds
	sparkDrag     = 0.9
)

var sparkSymbols = []rune{'*', '+', '.', 'x'}

// Label is a floating text shown at a hit.
type Label struct {
	Text     string
	Position physics.Vec
	Age      time.Duration
	Lifetime time.Duration
}

// Alpha returns the remaining opacity in [0,1].
func (l Label) Alpha() float64 {
	if l.Lifetime <= 0 {
		return 0
	}
	return physics.Clamp(1-float64(l.Age)/float64(l.Lifetime), 0, 1)
}

// sparkPool is a sync.Pool for reusing Spark objects to reduce allocations.
var sparkPool = sync.Pool{
	New: func() any {
		return &Spark{}
	},
}

// Spark is a single particle of a hit burst.
type Spark struct {
	Position    physics.Vec
	Velocity    physics.Vec
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay per 1/60s (1.0 = no drag)
	Symbol      rune
}

func newSpark(pos, vel physics.Vec, lifetime float64, symbol rune) *Spark {
	s := sparkPool.Get().(*Spark)
	*s = Spark{
		Position:    pos,
		Velocity:    vel,
		Lifetime:    lifetime,
		MaxLifetime: lifetime,
		Drag:        sparkDrag,
		Symbol:      symbol,
	}
	return s
}

// Visible reports whether the spark is bright enough to draw.
// Sparks in the last quarter of their life are hidden.
func (s *Spark) Visible() bool {
	return s.MaxLifetime > 0 && s.Lifetime/s.MaxLifetime >= 0.25
}

// update moves the spark and reports whether it burned out.
func (s *Spark) update(dt float64) bool {
	s.Lifetime -= dt
	if s.Lifetime <= 0 {
		return true
	}
	drag := math.Pow(s.Drag, dt*60)
	s.Velocity.X *= drag
	s.Velocity.Y *= drag
	s.Position.X += s.Velocity.X * dt
	s.Position.Y += s.Velocity.Y * dt
	return false
}

// Layer owns the live labels and sparks of one host.
// It is not safe for concurrent use.
type Layer struct {
	lifetime time.Duration
	rng      object.Rand
	labels   []Label
	sparks   []*Spark
}

// NewLayer creates an effect layer whose labels live for lifetime.
func NewLayer(lifetime time.Duration, rng object.Rand) *Layer {
	return &Layer{
		lifetime: lifetime,
		rng:      rng,
	}
}

// AddHit shows the score delta of h near its contact point, adds a "Perfect!"
// label for precise hits and bursts sparks at the contact.
func (l *Layer) AddHit(h game.Hit) {
	score := Label{
		Text:     "+1",
		Position: h.Position.Add(scoreOffset),
		Lifetime: l.lifetime,
	}
	if h.Delta > 1 {
		score.Text = "+2"
	}
	l.labels = append(l.labels, score)

	if h.Precise {
		l.labels = append(l.labels, Label{
			Text:     "Perfect!",
			Position: score.Position.Add(perfectOffset),
			Lifetime: l.lifetime,
		})
	}

	l.burst(h.Position, sparkCount)
}

// burst spawns count sparks flying out of pos in random directions.
func (l *Layer) burst(pos physics.Vec, count int) {
	if l.rng == nil {
		return
	}
	for i := 0; i < count; i++ {
		angle := l.rng.Float64() * 2 * math.Pi
		// 50% to 150% speed, 50% to 100% lifetime
		spd := sparkSpeed * (0.5 + l.rng.Float64())
		life := sparkLifetime * (0.5 + l.rng.Float64()*0.5)
		symbol := sparkSymbols[int(l.rng.Float64()*float64(len(sparkSymbols)))%len(sparkSymbols)]

		vel := physics.Vec{X: math.Cos(angle) * spd, Y: math.Sin(angle) * spd}
		l.sparks = append(l.sparks, newSpark(pos, vel, life, symbol))
	}
}

// Update ages labels and moves sparks, dropping the expired ones.
func (l *Layer) Update(dt time.Duration) {
	labels := l.labels[:0]
	for _, lb := range l.labels {
		lb.Age += dt
		if lb.Age < lb.Lifetime {
			labels = append(labels, lb)
		}
	}
	clear(l.labels[len(labels):])
	l.labels = labels

	sec := dt.Seconds()
	sparks := l.sparks[:0]
	for _, s := range l.sparks {
		if s.update(sec) {
			sparkPool.Put(s)
			continue
		}
		sparks = append(sparks, s)
	}
	clear(l.sparks[len(sparks):])
	l.sparks = sparks
}

// Labels returns the live labels. The slice is valid until the next Update.
func (l *Layer) Labels() []Label {
	return l.labels
}

// Sparks returns the live sparks. The slice is valid until the next Update.
func (l *Layer) Sparks() []*Spark {
	return l.sparks
}

// Reset drops every label and spark.
func (l *Layer) Reset() {
	for _, s := range l.sparks {
		sparkPool.Put(s)
	}
	clear(l.sparks)
	l.sparks = l.sparks[:0]
	clear(l.labels)
	l.labels = l.labels[:0]
}
