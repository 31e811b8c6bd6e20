package session

import (
	"testing"

	"github.com/vovakirdan/gridsnake/internal/audio"
	"github.com/vovakirdan/gridsnake/internal/snake"
)

func TestChannelSessionSendReceive(t *testing.T) {
	s := NewChannelSession("a", 4)

	s.Render(snake.Snapshot{Tick: 1})
	s.PlayEat()

	evt := <-s.Events()
	frame, ok := evt.(FrameEvent)
	if !ok || frame.Snapshot.Tick != 1 {
		t.Fatalf("first event = %#v, expected frame for tick 1", evt)
	}

	evt = <-s.Events()
	if snd, ok := evt.(SoundEvent); !ok || snd.Sound != audio.SoundEat {
		t.Fatalf("second event = %#v, expected eat sound", evt)
	}
}

func TestChannelSessionDropsOldest(t *testing.T) {
	s := NewChannelSession("a", 2)

	for tick := uint64(1); tick <= 5; tick++ {
		s.Render(snake.Snapshot{Tick: tick})
	}

	var ticks []uint64
	for range 2 {
		ticks = append(ticks, (<-s.Events()).(FrameEvent).Snapshot.Tick)
	}
	if ticks[0] != 4 || ticks[1] != 5 {
		t.Errorf("kept ticks %v, expected the newest [4 5]", ticks)
	}
	if s.Dropped() != 3 {
		t.Errorf("Dropped() = %d, expected 3", s.Dropped())
	}
}

func TestChannelSessionClose(t *testing.T) {
	s := NewChannelSession("a", 2)
	s.Close()
	s.Close() // idempotent

	select {
	case <-s.Done():
	default:
		t.Fatal("Done should be closed")
	}

	s.PlayGameOver()
	select {
	case evt := <-s.Events():
		t.Errorf("closed session accepted %#v", evt)
	default:
	}
}

func TestChannelSessionDefaultBuffer(t *testing.T) {
	s := NewChannelSession("a", 0)
	if cap(s.events) != DefaultBufferSize {
		t.Errorf("buffer = %d, expected %d", cap(s.events), DefaultBufferSize)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	a := NewChannelSession("a", 1)
	b := NewChannelSession("b", 1)

	r.Register(a)
	r.Register(b)
	if r.Count() != 2 {
		t.Fatalf("Count() = %d, expected 2", r.Count())
	}
	if got, ok := r.Get("a"); !ok || got.ID() != "a" {
		t.Errorf("Get(a) = %v, %v", got, ok)
	}

	seen := 0
	r.Each(func(Handle) { seen++ })
	if seen != 2 {
		t.Errorf("Each visited %d sessions", seen)
	}

	r.Unregister("a")
	if _, ok := r.Get("a"); ok || r.Count() != 1 {
		t.Error("Unregister did not remove the session")
	}
}
