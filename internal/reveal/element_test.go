package reveal

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeTimer struct {
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeScheduler struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
	timers  []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{}
	s.pending = append(s.pending, f)
	s.delays = append(s.delays, d)
	s.timers = append(s.timers, t)
	return t
}

// fire runs every scheduled callback, stopped or not, to mimic a timer that
// races with cancellation.
func (s *fakeScheduler) fire() {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, f := range pending {
		f()
	}
}

func withDelay(once bool) Options {
	o := DefaultOptions()
	o.Delay = 200 * time.Millisecond
	o.Once = once
	return o
}

func TestBelowThresholdStaysHidden(t *testing.T) {
	sched := &fakeScheduler{}
	e := NewElement(withDelay(true), nil, sched)

	e.Observe(Intersection{Ratio: 0.05})
	e.Observe(Intersection{Ratio: 0.099})
	sched.fire()

	if e.State() != Hidden || e.IsVisible() {
		t.Fatalf("expected hidden, got %s", e.State())
	}
}

func TestRevealAfterDelay(t *testing.T) {
	sched := &fakeScheduler{}
	e := NewElement(withDelay(true), nil, sched)

	e.Observe(Intersection{Ratio: 0.1})
	if e.State() != Revealing {
		t.Fatalf("expected revealing, got %s", e.State())
	}
	if len(sched.delays) != 1 || sched.delays[0] != 200*time.Millisecond {
		t.Fatalf("expected one timer with the configured delay, got %v", sched.delays)
	}

	sched.fire()
	if !e.IsVisible() {
		t.Fatalf("expected visible after delay")
	}
}

func TestOnceStaysVisible(t *testing.T) {
	port := NewChannelPort(4)
	sched := &fakeScheduler{}
	e := NewElement(withDelay(true), port, sched)

	e.Observe(Intersection{Ratio: 0.5})
	if !port.Disconnected() {
		t.Fatalf("expected port disconnected after first intersection")
	}
	sched.fire()
	e.Observe(Intersection{Ratio: 0})

	if e.State() != Settled {
		t.Fatalf("expected settled, got %s", e.State())
	}
}

func TestRepeatTogglesWithVisibility(t *testing.T) {
	sched := &fakeScheduler{}
	e := NewElement(withDelay(false), nil, sched)

	e.Observe(Intersection{Ratio: 1})
	sched.fire()
	if !e.IsVisible() {
		t.Fatalf("expected visible")
	}

	e.Observe(Intersection{Ratio: 0})
	if e.State() != Hidden {
		t.Fatalf("expected hidden after leaving viewport")
	}

	e.Observe(Intersection{Ratio: 0.3})
	sched.fire()
	if !e.IsVisible() {
		t.Fatalf("expected visible again")
	}
}

func TestLeavingBeforeDelayCancelsFlip(t *testing.T) {
	sched := &fakeScheduler{}
	e := NewElement(withDelay(false), nil, sched)

	e.Observe(Intersection{Ratio: 1})
	e.Observe(Intersection{Ratio: 0})
	sched.fire()

	if e.State() != Hidden {
		t.Fatalf("stale timer flipped state to %s", e.State())
	}
	if !sched.timers[0].stopped {
		t.Fatalf("expected pending timer stopped")
	}
}

func TestUnmountGuardsPendingTimer(t *testing.T) {
	port := NewChannelPort(1)
	sched := &fakeScheduler{}
	o := withDelay(false)
	e := NewElement(o, port, sched)

	e.Observe(Intersection{Ratio: 1})
	e.Unmount()
	sched.fire()

	if e.State() != Revealing {
		t.Fatalf("state mutated after unmount: %s", e.State())
	}
	if !port.Disconnected() {
		t.Fatalf("expected port disconnected on unmount")
	}
	e.Observe(Intersection{Ratio: 1})
	e.Unmount()
}

func TestZeroDelaySettlesImmediately(t *testing.T) {
	e := NewElement(DefaultOptions(), nil, &fakeScheduler{})
	e.Observe(Intersection{Ratio: 0.2})
	if !e.IsVisible() {
		t.Fatalf("expected immediate settle")
	}
}

func TestRunConsumesPort(t *testing.T) {
	port := NewChannelPort(4)
	e := NewElement(DefaultOptions(), port, &fakeScheduler{})

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()

	port.Emit(0.02)
	port.Emit(0.4)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("run did not return after port disconnect")
	}
	if !e.IsVisible() {
		t.Fatalf("expected visible")
	}
	if port.Emit(1) {
		t.Fatalf("emit after disconnect should fail")
	}
}

func TestRunStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	e := NewElement(DefaultOptions(), NewChannelPort(1), nil)
	cancel()
	if err := e.Run(ctx); err != context.Canceled {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestStyleFollowsState(t *testing.T) {
	o := DefaultOptions()
	o.Distance = 40
	o.Delay = 150 * time.Millisecond
	sched := &fakeScheduler{}
	e := NewElement(o, nil, sched)

	initial := e.Style()
	if initial.Opacity != 0 || initial.Transform != "translate3d(0px, 40px, 0)" {
		t.Fatalf("unexpected initial style %+v", initial)
	}
	if !strings.Contains(initial.Transition, "600ms") || !strings.Contains(initial.Transition, "150ms") {
		t.Fatalf("transition missing duration or delay: %s", initial.Transition)
	}

	e.Observe(Intersection{Ratio: 1})
	sched.fire()
	final := e.Style()
	if final.Opacity != 1 || final.Transform != "translate3d(0px, 0px, 0)" {
		t.Fatalf("unexpected final style %+v", final)
	}
}
