package session

import (
	"github.com/vovakirdan/gridsnake/internal/audio"
	"github.com/vovakirdan/gridsnake/internal/snake"
)

// Event is something a client connection has to show or play.
type Event interface {
	sessionEvent()
}

// FrameEvent carries a snapshot to draw.
type FrameEvent struct {
	Snapshot snake.Snapshot
}

func (FrameEvent) sessionEvent() {}

// SoundEvent asks the client to play a sound.
type SoundEvent struct {
	Sound audio.Sound
}

func (SoundEvent) sessionEvent() {}

// ErrorEvent tells the client a request was rejected.
type ErrorEvent struct {
	Message string
}

func (ErrorEvent) sessionEvent() {}
