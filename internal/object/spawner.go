package object

import "time"

// SpawnSettings configures a SpawnScheduler. Heights are absolute field
// coordinates.
type SpawnSettings struct {
	Interval    time.Duration
	MinY, MaxY  float64
	MinDuration time.Duration
	MaxDuration time.Duration
}

// SpawnRequest asks for one target at height Y crossing the field in Duration.
type SpawnRequest struct {
	Y        float64
	Duration time.Duration
}

// SpawnScheduler emits one spawn request per fixed interval of simulated time.
// The first request is emitted on the first tick.
type SpawnScheduler struct {
	settings  SpawnSettings
	rng       Rand
	untilNext time.Duration
}

// NewSpawnScheduler creates a scheduler drawing positions and durations from rng.
func NewSpawnScheduler(settings SpawnSettings, rng Rand) *SpawnScheduler {
	return &SpawnScheduler{
		settings: settings,
		rng:      rng,
	}
}

// Tick advances the scheduler by dt and returns a request when one is due.
// At most one request is returned per tick; a backlog drains one per tick.
func (s *SpawnScheduler) Tick(dt time.Duration) (SpawnRequest, bool) {
	s.untilNext -= dt
	if s.untilNext > 0 {
		return SpawnRequest{}, false
	}
	s.untilNext += s.settings.Interval
	return s.next(), true
}

// Reset makes the next tick emit immediately.
func (s *SpawnScheduler) Reset() {
	s.untilNext = 0
}

// next draws a request uniformly from the configured ranges.
func (s *SpawnScheduler) next() SpawnRequest {
	st := s.settings
	y := st.MinY + s.rng.Float64()*(st.MaxY-st.MinY)
	span := st.MaxDuration - st.MinDuration
	d := st.MinDuration + time.Duration(s.rng.Float64()*float64(span))
	return SpawnRequest{Y: y, Duration: d}
}
