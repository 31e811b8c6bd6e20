// Package session connects a game driver to one client connection.
// The driver renders and plays sounds into a ChannelSession; the client's
// writer goroutine (or Bubble Tea program) drains its event channel.
package session

import (
	"sync"
	"sync/atomic"

	"github.com/vovakirdan/gridsnake/internal/audio"
	"github.com/vovakirdan/gridsnake/internal/snake"
)

// ID identifies a client connection.
type ID string

// Handle is the transport-neutral view of a client connection.
type Handle interface {
	// ID returns the unique session identifier.
	ID() ID

	// Send queues an event. Must never block.
	Send(evt Event)

	// Done returns a channel that closes when the session ends.
	Done() <-chan struct{}
}

// DefaultBufferSize is the event queue length used when none is given.
const DefaultBufferSize = 64

// ChannelSession is a Handle backed by a buffered channel.
// When the buffer is full the oldest event is dropped, so a slow client
// only ever loses stale frames and never stalls the game.
type ChannelSession struct {
	id       ID
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
	dropped  atomic.Uint64
}

// NewChannelSession creates a new channel-based session handle.
// bufferSize controls how many events can be queued before dropping.
func NewChannelSession(id ID, bufferSize int) *ChannelSession {
	if bufferSize < 1 {
		bufferSize = DefaultBufferSize
	}
	return &ChannelSession{
		id:     id,
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *ChannelSession) ID() ID {
	return s.id
}

// Send queues an event. If the buffer is full, the oldest event is dropped.
func (s *ChannelSession) Send(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-s.events:
			s.dropped.Add(1)
		default:
		}
		select {
		case s.events <- evt:
		default:
			s.dropped.Add(1)
		}
	}
}

// Render queues a frame. ChannelSession is a loop.Renderer.
func (s *ChannelSession) Render(snap snake.Snapshot) {
	s.Send(FrameEvent{Snapshot: snap})
}

// PlayEat queues the eat sound. ChannelSession is a loop.SoundPlayer.
func (s *ChannelSession) PlayEat() {
	s.Send(SoundEvent{Sound: audio.SoundEat})
}

// PlayGameOver queues the game-over sound.
func (s *ChannelSession) PlayGameOver() {
	s.Send(SoundEvent{Sound: audio.SoundGameOver})
}

// Events returns the channel to receive events from.
func (s *ChannelSession) Events() <-chan Event {
	return s.events
}

// Done returns the done channel.
func (s *ChannelSession) Done() <-chan struct{} {
	return s.done
}

// Dropped returns how many events were discarded because the client lagged.
func (s *ChannelSession) Dropped() uint64 {
	return s.dropped.Load()
}

// Close marks the session as done.
// Safe to call multiple times.
func (s *ChannelSession) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// Registry tracks active sessions.
// Thread-safe for concurrent access.
type Registry struct {
	mu       sync.RWMutex
	sessions map[ID]Handle
}

// NewRegistry creates a new session registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[ID]Handle),
	}
}

// Register adds a session to the registry.
func (r *Registry) Register(session Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID()] = session
}

// Unregister removes a session from the registry.
func (r *Registry) Unregister(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Get retrieves a session by ID.
func (r *Registry) Get(id ID) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Each calls fn for every registered session. fn must not call back into r.
func (r *Registry) Each(fn func(Handle)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions {
		fn(s)
	}
}
