package reveal

import (
	"context"
	"sync"
	"time"
)

type State int

const (
	Hidden State = iota
	Revealing
	Settled
)

func (s State) String() string {
	switch s {
	case Revealing:
		return "revealing"
	case Settled:
		return "settled"
	}
	return "hidden"
}

type Intersection struct {
	Ratio float64
}

// VisibilityPort delivers intersection changes for one element.
type VisibilityPort interface {
	Events() <-chan Intersection
	Disconnect()
}

type Timer interface {
	Stop() bool
}

type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler runs callbacks on the wall clock.
var RealScheduler Scheduler = clockScheduler{}

// Element is the per-element reveal state machine:
// Hidden -> Revealing -> Settled, and back to Hidden when Once is false and
// the element leaves the viewport.
type Element struct {
	mu           sync.Mutex
	opts         Options
	port         VisibilityPort
	sched        Scheduler
	state        State
	timer        Timer
	generation   uint64
	mounted      bool
	disconnected bool
}

func NewElement(opts Options, port VisibilityPort, sched Scheduler) *Element {
	if sched == nil {
		sched = RealScheduler
	}
	return &Element{
		opts:    opts.normalized(),
		port:    port,
		sched:   sched,
		state:   Hidden,
		mounted: true,
	}
}

func (e *Element) Observe(ev Intersection) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.mounted {
		return
	}

	if ev.Ratio >= e.opts.Threshold {
		if e.state != Hidden {
			return
		}
		e.state = Revealing
		if e.opts.Once {
			e.disconnectLocked()
		}

		e.generation++
		if e.opts.Delay <= 0 {
			e.state = Settled
			return
		}
		gen := e.generation
		e.timer = e.sched.AfterFunc(e.opts.Delay, func() { e.settle(gen) })
		return
	}

	if e.opts.Once && e.state != Hidden {
		return
	}
	e.stopTimerLocked()
	e.state = Hidden
}

// settle is the delayed flip to visible. A stale generation means the element
// was hidden again or unmounted after the timer was scheduled.
func (e *Element) settle(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.mounted || gen != e.generation || e.state != Revealing {
		return
	}
	e.state = Settled
	e.timer = nil
}

// Run feeds port events into the element until ctx ends or the port closes.
func (e *Element) Run(ctx context.Context) error {
	if e.port == nil {
		<-ctx.Done()
		return ctx.Err()
	}

	events := e.port.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			e.Observe(ev)
		}
	}
}

// Unmount disconnects the port and cancels any pending flip.
func (e *Element) Unmount() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.mounted {
		return
	}
	e.mounted = false
	e.stopTimerLocked()
	e.disconnectLocked()
}

func (e *Element) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Element) IsVisible() bool {
	return e.State() == Settled
}

func (e *Element) Style() Style {
	if e.IsVisible() {
		return e.opts.FinalStyle()
	}
	return e.opts.InitialStyle()
}

func (e *Element) stopTimerLocked() {
	e.generation++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Element) disconnectLocked() {
	if e.port != nil && !e.disconnected {
		e.disconnected = true
		e.port.Disconnect()
	}
}
