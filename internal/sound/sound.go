// Package sound plays short synthesized cues for hits, shots and losses.
package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Manager owns the speaker and mixes cues into it. Until Init succeeds every
// Play call is a no-op, so hosts without audio can use it unconditionally.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewManager creates a manager playing at volume in [0,1].
func NewManager(volume float64) *Manager {
	return &Manager{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Init opens the speaker. It is safe to call more than once.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close silences everything still playing.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

// PlayHit plays the hit cue.
func (m *Manager) PlayHit(precise bool) {
	m.play(HitSound(precise, sampleRate))
}

// PlayShot plays the firing cue.
func (m *Manager) PlayShot() {
	m.play(ShotSound(sampleRate))
}

// PlayLose plays the game over cue.
func (m *Manager) PlayLose() {
	m.play(LoseSound(sampleRate))
}

func (m *Manager) play(s beep.Streamer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Add(newVolume(s, m.volume))
	speaker.Unlock()
}
