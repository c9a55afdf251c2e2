// Package audio plays synthesised match sound effects through beep.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/Curve-Pass/internal/sim"
)

const (
	sampleRate = beep.SampleRate(44100)
	// minGap drops a repeat of the same sound inside this window.
	minGap = 60 * time.Millisecond
)

// SoundManager mixes effects onto the speaker. A manager that failed to
// initialise, or was never initialised, silently drops every request.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	last        [soundCount]time.Time
	played      int
	now         func() time.Time
}

// NewSoundManager creates a manager. Call Initialize before playing.
func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}, now: time.Now}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetMuted toggles output without closing the device.
func (sm *SoundManager) SetMuted(m bool) {
	sm.mu.Lock()
	sm.muted = m
	sm.mu.Unlock()
}

// Muted reports the mute flag.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Play queues s unless muted, uninitialised or repeated within minGap.
// It reports whether the sound was queued.
func (sm *SoundManager) Play(s Sound) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized || sm.muted || s < 0 || s >= soundCount {
		return false
	}
	now := sm.now()
	if now.Sub(sm.last[s]) < minGap {
		return false
	}
	sm.last[s] = now
	st := Build(s, sampleRate)
	if st == nil {
		return false
	}
	speaker.Lock()
	sm.mixer.Add(st)
	speaker.Unlock()
	sm.played++
	return true
}

// Handle plays the effect for a match event, if it has one.
func (sm *SoundManager) Handle(ev sim.Event) {
	if s, ok := SoundFor(ev.Kind); ok {
		sm.Play(s)
	}
}

// Played is the number of sounds queued so far.
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}
