// Package audio synthesizes the game's sounds with beep. Package speaker plays
// them locally; the same streamers are rendered to WAV for the browser client.
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
	WaveTriangle
	WaveNoise
)

// oscillator generates a fixed number of samples of one wave shape.
type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

// newOscillator creates an oscillator. rng drives WaveNoise and may be nil
// for other shapes.
func newOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	return &oscillator{
		freq:   freq,
		length: rate.N(d),
		wave:   wave,
		rate:   rate,
		rng:    rng,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope shapes a stream with a linear attack and a linear release that
// ends exactly at the last sample.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, total, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(total),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; remaining <= e.release && e.release > 0 {
			vol = min(vol, float64(remaining)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// sweepFilter is a one-pole lowpass whose cutoff follows its own
// attack/decay envelope: base * 2^(octaves*env). The output is a running
// average of the input, so it never exceeds the input's peak.
type sweepFilter struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	base     float64 // Hz at env = 0
	octaves  float64
	attack   int
	decay    int
	sustain  float64
	position int
	state    [2]float64
}

func newSweepFilter(s beep.Streamer, base, octaves float64, attack, decay time.Duration, sustain float64, rate beep.SampleRate) beep.Streamer {
	return &sweepFilter{
		streamer: s,
		rate:     rate,
		base:     base,
		octaves:  octaves,
		attack:   max(rate.N(attack), 1),
		decay:    max(rate.N(decay), 1),
		sustain:  sustain,
	}
}

// level is the filter envelope at the current position, in [0, 1].
func (f *sweepFilter) level() float64 {
	switch {
	case f.position < f.attack:
		return float64(f.position) / float64(f.attack)
	case f.position < f.attack+f.decay:
		done := float64(f.position-f.attack) / float64(f.decay)
		return 1 - (1-f.sustain)*done
	default:
		return f.sustain
	}
}

func (f *sweepFilter) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		cutoff := f.base * math.Exp2(f.octaves*f.level())
		alpha := 1 - math.Exp(-2*math.Pi*cutoff/float64(f.rate))
		for ch := range 2 {
			f.state[ch] += alpha * (samples[i][ch] - f.state[ch])
			samples[i][ch] = f.state[ch]
		}
		f.position++
	}
	return n, ok
}

func (f *sweepFilter) Err() error { return f.streamer.Err() }

// withGain scales a stream by a linear gain. A non-positive gain silences it.
func withGain(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// decibels converts a level in dB to a linear gain.
func decibels(db float64) float64 {
	return math.Pow(10, db/20)
}
