package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/Garsondee/Curve-Pass/internal/sim"
)

func drain(t *testing.T, s beep.Streamer, limit int) (samples int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for samples < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if v := math.Abs(buf[i][0]); v > peak {
				peak = v
			}
		}
		samples += n
		if !ok {
			return samples, peak
		}
	}
	t.Fatalf("streamer did not finish within %d samples", limit)
	return samples, peak
}

func TestOscillator_LengthAndRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, rate)
	n, peak := drain(t, osc, rate.N(time.Second))
	if n != rate.N(100*time.Millisecond) {
		t.Fatalf("samples = %d, want %d", n, rate.N(100*time.Millisecond))
	}
	if peak > 1 || peak < 0.9 {
		t.Fatalf("sine peak = %.3f", peak)
	}
}

func TestOscillator_SquareIsBipolar(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(220, 20*time.Millisecond, WaveSquare, rate)
	buf := make([][2]float64, 200)
	n, _ := osc.Stream(buf)
	for i := 0; i < n; i++ {
		if v := buf[i][0]; v != 1 && v != -1 {
			t.Fatalf("sample %d = %f, want ±1", i, v)
		}
	}
}

func TestEnvelope_DecaysToQuiet(t *testing.T) {
	rate := beep.SampleRate(44100)
	env := NewEnvelope(NewOscillator(0, 200*time.Millisecond, WaveSquare, rate), 0, 100*time.Millisecond, rate)
	buf := make([][2]float64, rate.N(200*time.Millisecond))
	n, _ := env.Stream(buf)
	if got := math.Abs(buf[n-1][0]); got > 0.01 {
		t.Fatalf("tail amplitude = %.4f, want near silence", got)
	}
	if got := math.Abs(buf[0][0]); got != 1 {
		t.Fatalf("first sample = %.3f, want full level with no attack", got)
	}
}

func TestBuild_EverySoundFinishes(t *testing.T) {
	for s := Sound(0); s < soundCount; s++ {
		st := Build(s, sampleRate)
		if st == nil {
			t.Fatalf("%s: nil streamer", s)
		}
		n, _ := drain(t, st, sampleRate.N(3*time.Second))
		if n == 0 {
			t.Fatalf("%s: produced no samples", s)
		}
	}
}

func TestSoundFor_EventMapping(t *testing.T) {
	if s, ok := SoundFor(sim.EventGoal); !ok || s != SoundWhistle {
		t.Fatalf("goal -> %v %v", s, ok)
	}
	if s, ok := SoundFor(sim.EventShot); !ok || s != SoundKick {
		t.Fatalf("shot -> %v %v", s, ok)
	}
	if _, ok := SoundFor(sim.EventReset); ok {
		t.Fatal("reset should be silent")
	}
	if _, ok := SoundFor(sim.EventCamera); ok {
		t.Fatal("camera toggle should be silent")
	}
}

func TestSoundManager_UninitialisedIsSilent(t *testing.T) {
	sm := NewSoundManager()
	if sm.Play(SoundKick) {
		t.Fatal("play before Initialize should be dropped")
	}
	sm.Handle(sim.Event{Kind: sim.EventGoal})
	if sm.Played() != 0 {
		t.Fatalf("played = %d", sm.Played())
	}
	sm.Cleanup()
}
