package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator streams a fixed-length wave. Frequency may glide linearly
// from freq to freqEnd over the duration.
type oscillator struct {
	freq, freqEnd float64
	phase         float64
	pos, total    int
	wave          Wave
	rate          beep.SampleRate
	rng           *rand.Rand
}

// NewOscillator creates a fixed-pitch oscillator.
func NewOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewGlide(freq, freq, d, wave, rate)
}

// NewGlide creates an oscillator whose pitch slides from freq to freqEnd.
func NewGlide(freq, freqEnd float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:    freq,
		freqEnd: freqEnd,
		total:   rate.N(d),
		wave:    wave,
		rate:    rate,
		rng:     rand.New(rand.NewSource(int64(freq*1000) + int64(wave))), // #nosec G404 -- audio noise
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.total {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		f := o.freq + (o.freqEnd-o.freq)*float64(o.pos)/float64(o.total)
		o.phase += f / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and an exponential decay.
type envelope struct {
	s       beep.Streamer
	pos     int
	attack  int
	decayK  float64 // per-sample multiplier after the attack
	current float64
}

// NewEnvelope shapes s with an attack of length attack and a decay that
// falls to about 1% over decay.
func NewEnvelope(s beep.Streamer, attack, decay time.Duration, rate beep.SampleRate) beep.Streamer {
	n := rate.N(decay)
	k := 1.0
	if n > 0 {
		k = math.Pow(0.01, 1/float64(n))
	}
	return &envelope{s: s, attack: rate.N(attack), decayK: k, current: 1}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := 0; i < n; i++ {
		vol := e.current
		if e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		} else {
			e.current *= e.decayK
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// newVolume scales s linearly; 0 or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
