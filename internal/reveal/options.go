// Package reveal models the scroll-triggered entrance animation applied to
// page sections. Visibility arrives through a VisibilityPort, so the policy
// can be driven by a browser observer bridge or by synthetic events.
package reveal

import (
	"fmt"
	"strconv"
	"time"
)

type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
	None  Direction = "none"
)

const (
	DefaultThreshold = 0.1
	DefaultDistance  = 30
	DefaultDuration  = 600 * time.Millisecond
	DefaultEasing    = "cubic-bezier(0.25, 0.1, 0.25, 1)"
)

type Options struct {
	Direction Direction
	Distance  int
	Delay     time.Duration
	Duration  time.Duration
	Easing    string
	Once      bool
	Threshold float64
}

func DefaultOptions() Options {
	return Options{
		Direction: Up,
		Distance:  DefaultDistance,
		Duration:  DefaultDuration,
		Easing:    DefaultEasing,
		Once:      true,
		Threshold: DefaultThreshold,
	}
}

func (o Options) normalized() Options {
	switch o.Direction {
	case Up, Down, Left, Right, None:
	default:
		o.Direction = Up
	}
	if o.Distance < 0 {
		o.Distance = 0
	}
	if o.Delay < 0 {
		o.Delay = 0
	}
	if o.Duration <= 0 {
		o.Duration = DefaultDuration
	}
	if o.Easing == "" {
		o.Easing = DefaultEasing
	}
	if o.Threshold <= 0 || o.Threshold > 1 {
		o.Threshold = DefaultThreshold
	}
	return o
}

// Offset is the starting displacement in px. The element travels from the
// offset back to (0, 0).
func (o Options) Offset() (x, y int) {
	switch o.Direction {
	case Up:
		return 0, o.Distance
	case Down:
		return 0, -o.Distance
	case Left:
		return o.Distance, 0
	case Right:
		return -o.Distance, 0
	}
	return 0, 0
}

type Style struct {
	Transform  string
	Opacity    float64
	Transition string
}

func (s Style) CSS() string {
	return fmt.Sprintf("transform: %s; opacity: %s; transition: %s;",
		s.Transform, strconv.FormatFloat(s.Opacity, 'f', -1, 64), s.Transition)
}

func (o Options) InitialStyle() Style {
	o = o.normalized()
	x, y := o.Offset()
	return Style{
		Transform:  fmt.Sprintf("translate3d(%dpx, %dpx, 0)", x, y),
		Opacity:    0,
		Transition: o.transition(),
	}
}

func (o Options) FinalStyle() Style {
	o = o.normalized()
	return Style{
		Transform:  "translate3d(0px, 0px, 0)",
		Opacity:    1,
		Transition: o.transition(),
	}
}

func (o Options) transition() string {
	d, delay := o.Duration.Milliseconds(), o.Delay.Milliseconds()
	return fmt.Sprintf("transform %dms %s %dms, opacity %dms %s %dms", d, o.Easing, delay, d, o.Easing, delay)
}

// DataAttributes carries the options to the browser-side observer.
func (o Options) DataAttributes() map[string]string {
	o = o.normalized()
	return map[string]string{
		"data-reveal":           string(o.Direction),
		"data-reveal-delay":     strconv.FormatInt(o.Delay.Milliseconds(), 10),
		"data-reveal-once":      strconv.FormatBool(o.Once),
		"data-reveal-threshold": strconv.FormatFloat(o.Threshold, 'f', -1, 64),
	}
}

func FadeIn(delay time.Duration) Options {
	o := DefaultOptions()
	o.Direction = None
	o.Delay = delay
	return o
}

func SlideUp(delay time.Duration) Options {
	o := DefaultOptions()
	o.Delay = delay
	return o
}

func SlideLeft(delay time.Duration) Options {
	o := DefaultOptions()
	o.Direction = Left
	o.Delay = delay
	return o
}

func SlideRight(delay time.Duration) Options {
	o := DefaultOptions()
	o.Direction = Right
	o.Delay = delay
	return o
}

// Stagger gives item i the delay base.Delay + i*step.
func Stagger(base Options, n int, step time.Duration) []Options {
	if n <= 0 {
		return []Options{}
	}
	out := make([]Options, n)
	for i := range out {
		out[i] = base
		out[i].Delay = base.Delay + time.Duration(i)*step
	}
	return out
}
