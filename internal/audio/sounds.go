package audio

import (
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Sound identifies one of the game's sounds.
type Sound int

const (
	SoundEat Sound = iota
	SoundGameOver
)

// Name is the sound's wire and file name.
func (s Sound) Name() string {
	switch s {
	case SoundEat:
		return "eat"
	case SoundGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Sounds lists every sound.
var Sounds = []Sound{SoundEat, SoundGameOver}

// Eat: a middle C triangle eighth note (at 120 bpm) with a soft attack and
// release.
const (
	eatFreq     = 261.63
	eatDuration = 250 * time.Millisecond
	eatAttack   = 5 * time.Millisecond
	eatRelease  = 200 * time.Millisecond
	eatGain     = 0.5
)

// Game over: a burst of white noise, 10 dB down, fast attack, 200ms decay,
// through a lowpass that sweeps from 3.2kHz down toward 200Hz.
const (
	gameOverDuration = 200 * time.Millisecond
	gameOverAttack   = time.Millisecond
	gameOverRelease  = 200 * time.Millisecond
	gameOverLevelDB  = -10

	gameOverFilterBase    = 200.0
	gameOverFilterOctaves = 4.0
	gameOverFilterSustain = 0.1
)

// Synth builds sound streamers at a fixed sample rate and master volume.
type Synth struct {
	rate   beep.SampleRate
	volume float64 // beep volume exponent (base 2), 0 = unchanged
	rng    *rand.Rand
}

// NewSynth creates a synth. seed drives the noise generator.
func NewSynth(rate beep.SampleRate, volume float64, seed int64) *Synth {
	return &Synth{
		rate:   rate,
		volume: volume,
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // noise
	}
}

// Rate returns the sample rate.
func (s *Synth) Rate() beep.SampleRate { return s.rate }

// Streamer returns a fresh streamer for the sound.
// It is not safe to call concurrently; players serialise access.
func (s *Synth) Streamer(snd Sound) beep.Streamer {
	var st beep.Streamer
	switch snd {
	case SoundEat:
		osc := newOscillator(eatFreq, eatDuration, WaveTriangle, s.rate, nil)
		st = withGain(newEnvelope(osc, eatDuration, eatAttack, eatRelease, s.rate), eatGain)
	case SoundGameOver:
		// Noise is pre-rendered so the shared rng is only used here
		noise := beep.NewBuffer(s.Format())
		noise.Append(newOscillator(0, gameOverDuration, WaveNoise, s.rate, s.rng))
		st = newSweepFilter(noise.Streamer(0, noise.Len()),
			gameOverFilterBase, gameOverFilterOctaves,
			gameOverAttack, gameOverRelease, gameOverFilterSustain, s.rate)
		st = newEnvelope(st, gameOverDuration, gameOverAttack, gameOverRelease, s.rate)
		st = withGain(st, decibels(gameOverLevelDB))
	default:
		return beep.Silence(0)
	}

	if s.volume == 0 {
		return st
	}
	return &effects.Volume{Streamer: st, Base: 2, Volume: s.volume}
}

// Duration returns the length of the sound.
func (s *Synth) Duration(snd Sound) time.Duration {
	switch snd {
	case SoundEat:
		return eatDuration
	case SoundGameOver:
		return gameOverDuration
	default:
		return 0
	}
}

// Format is the stereo 16-bit format used for playback and WAV files.
func (s *Synth) Format() beep.Format {
	return beep.Format{SampleRate: s.rate, NumChannels: 2, Precision: 2}
}
