// Package speaker plays the game's sounds on the local audio device.
// It is kept apart from package audio so that the servers, which only render
// WAV files, do not link the device backend.
package speaker

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	beepspeaker "github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/gridsnake/internal/audio"
)

// The device is process-wide, so it is initialised once.
var (
	initOnce sync.Once
	initErr  error
	initRate beep.SampleRate
)

func initDevice(rate beep.SampleRate) error {
	initOnce.Do(func() {
		initRate = rate
		initErr = beepspeaker.Init(rate, rate.N(100*time.Millisecond))
	})
	if initErr != nil {
		return fmt.Errorf("speaker: cannot open audio device: %w", initErr)
	}
	return nil
}

// Player plays sounds on the local audio device.
type Player struct {
	mu    sync.Mutex
	synth *audio.Synth
}

// New opens the audio device. The first call fixes the device sample rate;
// later players resample to it.
func New(synth *audio.Synth) (*Player, error) {
	if err := initDevice(synth.Rate()); err != nil {
		return nil, err
	}
	return &Player{synth: synth}, nil
}

// PlayEat plays the eat sound without blocking.
func (p *Player) PlayEat() { p.play(audio.SoundEat) }

// PlayGameOver plays the game-over sound without blocking.
func (p *Player) PlayGameOver() { p.play(audio.SoundGameOver) }

func (p *Player) play(snd audio.Sound) {
	p.mu.Lock()
	st := p.synth.Streamer(snd)
	p.mu.Unlock()

	if p.synth.Rate() != initRate {
		st = beep.Resample(4, p.synth.Rate(), initRate, st)
	}
	beepspeaker.Play(st)
}

// Close silences anything still playing.
func (p *Player) Close() {
	beepspeaker.Clear()
}
