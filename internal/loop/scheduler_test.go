package loop

import (
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestTickerSchedulerTicks(t *testing.T) {
	s := NewTickerScheduler()
	var n atomic.Int32

	s.Start(time.Millisecond, func() { n.Add(1) })
	if !s.Running() {
		t.Error("scheduler should be running")
	}
	waitFor(t, func() bool { return n.Load() >= 3 })

	s.Stop()
	if s.Running() {
		t.Error("scheduler should be stopped")
	}

	stopped := n.Load()
	time.Sleep(20 * time.Millisecond)
	// At most one tick may have been in flight when Stop was called
	if got := n.Load(); got > stopped+1 {
		t.Errorf("ticks kept running after Stop: %d -> %d", stopped, got)
	}
}

func TestTickerSchedulerStopIsIdempotent(t *testing.T) {
	s := NewTickerScheduler()
	s.Stop()
	s.Start(time.Millisecond, func() {})
	s.Stop()
	s.Stop()
	if s.Running() {
		t.Error("scheduler should be stopped")
	}
}

func TestTickerSchedulerStopFromTick(t *testing.T) {
	s := NewTickerScheduler()
	var n atomic.Int32

	s.Start(time.Millisecond, func() {
		n.Add(1)
		s.Stop()
	})
	waitFor(t, func() bool { return !s.Running() })

	time.Sleep(20 * time.Millisecond)
	if got := n.Load(); got != 1 {
		t.Errorf("expected exactly one tick, got %d", got)
	}
}

func TestTickerSchedulerRestartReplacesSchedule(t *testing.T) {
	s := NewTickerScheduler()
	var first, second atomic.Int32

	s.Start(time.Millisecond, func() { first.Add(1) })
	waitFor(t, func() bool { return first.Load() >= 1 })

	s.Start(time.Millisecond, func() { second.Add(1) })
	before := first.Load()
	waitFor(t, func() bool { return second.Load() >= 3 })
	s.Stop()

	if got := first.Load(); got > before+1 {
		t.Errorf("old schedule kept ticking after restart: %d -> %d", before, got)
	}
}

func TestManualScheduler(t *testing.T) {
	s := NewManualScheduler()
	if s.Fire() {
		t.Error("Fire on a stopped scheduler should return false")
	}

	n := 0
	s.Start(50*time.Millisecond, func() {
		n++
		if n == 3 {
			s.Stop()
		}
	})
	if s.Interval() != 50*time.Millisecond {
		t.Errorf("Interval() = %v", s.Interval())
	}

	if got := s.FireN(10); got != 3 {
		t.Errorf("FireN ran %d ticks, expected 3", got)
	}
	if n != 3 || s.Running() {
		t.Errorf("n=%d running=%v", n, s.Running())
	}
	if s.Starts() != 1 {
		t.Errorf("Starts() = %d, expected 1", s.Starts())
	}
}
