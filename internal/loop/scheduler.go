// Package loop drives a snake session in real time.
// A Scheduler produces ticks; the Driver serialises ticks and player input
// against the session and hands the resulting effects to its collaborators.
package loop

import (
	"sync"
	"time"
)

// Scheduler calls a function at a fixed interval until stopped.
type Scheduler interface {
	// Start begins calling fn every interval. A running schedule is stopped first.
	Start(interval time.Duration, fn func())
	// Stop ends the schedule. Safe to call when stopped and from inside fn.
	Stop()
	// Running reports whether a schedule is active.
	Running() bool
}

// TickerScheduler runs each schedule on its own goroutine driven by a time.Ticker.
type TickerScheduler struct {
	mu   sync.Mutex
	gen  uint64
	stop chan struct{}
}

// NewTickerScheduler creates a stopped scheduler.
func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{}
}

// Start implements Scheduler.
func (s *TickerScheduler) Start(interval time.Duration, fn func()) {
	if interval <= 0 {
		interval = time.Millisecond
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.gen++
	s.stop = make(chan struct{})
	go s.run(s.gen, interval, fn, s.stop)
}

func (s *TickerScheduler) run(gen uint64, interval time.Duration, fn func(), stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// A tick that raced with Stop must not run
			if !s.current(gen) {
				return
			}
			fn()
		}
	}
}

func (s *TickerScheduler) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil && s.gen == gen
}

// Stop implements Scheduler.
func (s *TickerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *TickerScheduler) stopLocked() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	s.stop = nil
	s.gen++
}

// Running implements Scheduler.
func (s *TickerScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

// ManualScheduler fires ticks only when told to. Used by tests and replays.
type ManualScheduler struct {
	mu       sync.Mutex
	fn       func()
	interval time.Duration
	running  bool
	starts   int
}

// NewManualScheduler creates a stopped manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Start implements Scheduler.
func (s *ManualScheduler) Start(interval time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fn = fn
	s.interval = interval
	s.running = true
	s.starts++
}

// Stop implements Scheduler.
func (s *ManualScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
}

// Running implements Scheduler.
func (s *ManualScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Fire runs one tick. It returns false if no schedule is active.
func (s *ManualScheduler) Fire() bool {
	s.mu.Lock()
	fn, running := s.fn, s.running
	s.mu.Unlock()

	if !running || fn == nil {
		return false
	}
	fn()
	return true
}

// FireN runs up to n ticks, stopping early when the schedule ends.
// It returns the number of ticks run.
func (s *ManualScheduler) FireN(n int) int {
	for i := range n {
		if !s.Fire() {
			return i
		}
	}
	return n
}

// Interval returns the interval of the last Start.
func (s *ManualScheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Starts returns how many times Start was called.
func (s *ManualScheduler) Starts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.starts
}
