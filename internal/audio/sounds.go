package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/Garsondee/Curve-Pass/internal/sim"
)

// Sound is one synthesised effect.
type Sound int

const (
	SoundKick Sound = iota
	SoundClang
	SoundSwish
	SoundWhistle
	SoundSave
	SoundBuzzer
	SoundError
	SoundTick
	soundCount
)

var soundNames = [soundCount]string{"kick", "clang", "swish", "whistle", "save", "buzzer", "error", "tick"}

func (s Sound) String() string {
	if s < 0 || s >= soundCount {
		return "unknown"
	}
	return soundNames[s]
}

// SoundFor maps a match event to its effect. Events with no sound return
// false.
func SoundFor(kind sim.EventKind) (Sound, bool) {
	switch kind {
	case sim.EventPass, sim.EventShot:
		return SoundKick, true
	case sim.EventPost, sim.EventCrossbar:
		return SoundClang, true
	case sim.EventNet:
		return SoundSwish, true
	case sim.EventGoal:
		return SoundWhistle, true
	case sim.EventSave:
		return SoundSave, true
	case sim.EventIntercept, sim.EventOut:
		return SoundBuzzer, true
	case sim.EventRejected:
		return SoundError, true
	case sim.EventReception, sim.EventTactic:
		return SoundTick, true
	}
	return 0, false
}

// Build creates a fresh streamer for s at rate.
func Build(s Sound, rate beep.SampleRate) beep.Streamer {
	ms := time.Millisecond
	switch s {
	case SoundKick:
		body := NewEnvelope(NewGlide(140, 50, 120*ms, WaveSine, rate), 2*ms, 110*ms, rate)
		click := NewEnvelope(NewOscillator(0, 15*ms, WaveNoise, rate), ms, 12*ms, rate)
		return beep.Mix(newVolume(body, 0.8), newVolume(click, 0.25))
	case SoundClang:
		fund := NewEnvelope(NewOscillator(880, 350*ms, WaveSine, rate), ms, 340*ms, rate)
		over := NewEnvelope(NewOscillator(2310, 200*ms, WaveSine, rate), ms, 180*ms, rate)
		return beep.Mix(newVolume(fund, 0.5), newVolume(over, 0.2))
	case SoundSwish:
		return newVolume(NewEnvelope(NewOscillator(0, 220*ms, WaveNoise, rate), 40*ms, 180*ms, rate), 0.25)
	case SoundWhistle:
		a := NewEnvelope(NewOscillator(2100, 180*ms, WaveSquare, rate), 5*ms, 400*ms, rate)
		b := NewEnvelope(NewOscillator(2400, 420*ms, WaveSquare, rate), 5*ms, 800*ms, rate)
		return newVolume(beep.Seq(a, b), 0.12)
	case SoundSave:
		thud := NewEnvelope(NewGlide(90, 40, 200*ms, WaveSine, rate), 2*ms, 190*ms, rate)
		return newVolume(thud, 0.9)
	case SoundBuzzer:
		return newVolume(NewEnvelope(NewOscillator(110, 450*ms, WaveSaw, rate), 5*ms, 900*ms, rate), 0.2)
	case SoundError:
		return newVolume(NewEnvelope(NewOscillator(120, 150*ms, WaveSaw, rate), 2*ms, 140*ms, rate), 0.15)
	case SoundTick:
		return newVolume(NewEnvelope(NewOscillator(1320, 40*ms, WaveSine, rate), ms, 35*ms, rate), 0.3)
	}
	return nil
}
