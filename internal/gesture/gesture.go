// Package gesture models touch gestures in device points and synthesizes
// them into timed press/move/release event sequences in host window
// coordinates. Synthesis is pure: dispatching the events is the
// platform layer's job.
package gesture

import (
	"time"

	"github.com/pkg/errors"

	"github.com/axsim/sim-cli/internal/geometry"
)

// Kind discriminates the gesture union.
type Kind string

const (
	KindTap       Kind = "tap"
	KindLongPress Kind = "long_press"
	KindSwipe     Kind = "swipe"
	KindDrag      Kind = "drag"
)

// Default durations. Taps are short, long presses must exceed the system
// recognition delay, swipes animate over a fraction of a second.
const (
	DefaultTapDuration       = 100 * time.Millisecond
	DefaultLongPressDuration = 600 * time.Millisecond
	DefaultSwipeDuration     = 300 * time.Millisecond
	DefaultDragDuration      = 500 * time.Millisecond
)

// Gesture is a closed union over the supported touch gestures. From is the
// contact point in device points; To is only meaningful for swipes and
// drags. Duration spans press to release.
type Gesture struct {
	Kind     Kind
	From     geometry.Point
	To       geometry.Point
	Duration time.Duration
}

// Tap builds a tap at p. A zero duration selects the default.
func Tap(p geometry.Point, duration time.Duration) Gesture {
	if duration <= 0 {
		duration = DefaultTapDuration
	}
	return Gesture{Kind: KindTap, From: p, To: p, Duration: duration}
}

// LongPress builds a stationary press held for duration.
func LongPress(p geometry.Point, duration time.Duration) Gesture {
	if duration <= 0 {
		duration = DefaultLongPressDuration
	}
	return Gesture{Kind: KindLongPress, From: p, To: p, Duration: duration}
}

// Swipe builds a continuous movement from one point to another.
func Swipe(from, to geometry.Point, duration time.Duration) Gesture {
	if duration <= 0 {
		duration = DefaultSwipeDuration
	}
	return Gesture{Kind: KindSwipe, From: from, To: to, Duration: duration}
}

// Drag is a swipe slow enough to read as a drag rather than a flick.
func Drag(from, to geometry.Point, duration time.Duration) Gesture {
	if duration <= 0 {
		duration = DefaultDragDuration
	}
	return Gesture{Kind: KindDrag, From: from, To: to, Duration: duration}
}

// swipeInset keeps directional swipes inside the central portion of the
// screen, clear of system edge gestures.
const swipeInset = 0.2

// SwipeUp builds an upward swipe spanning the central 60% of the screen
// height, derived from the device geometry.
func SwipeUp(geo geometry.ScreenGeometry, duration time.Duration) Gesture {
	w, h := geo.PointSize.Width, geo.PointSize.Height
	return Swipe(
		geometry.Point{X: w / 2, Y: h * (1 - swipeInset)},
		geometry.Point{X: w / 2, Y: h * swipeInset},
		duration,
	)
}

// SwipeDown is the inverse of SwipeUp.
func SwipeDown(geo geometry.ScreenGeometry, duration time.Duration) Gesture {
	w, h := geo.PointSize.Width, geo.PointSize.Height
	return Swipe(
		geometry.Point{X: w / 2, Y: h * swipeInset},
		geometry.Point{X: w / 2, Y: h * (1 - swipeInset)},
		duration,
	)
}

// SwipeLeft swipes from the right portion of the screen to the left.
func SwipeLeft(geo geometry.ScreenGeometry, duration time.Duration) Gesture {
	w, h := geo.PointSize.Width, geo.PointSize.Height
	return Swipe(
		geometry.Point{X: w * (1 - swipeInset), Y: h / 2},
		geometry.Point{X: w * swipeInset, Y: h / 2},
		duration,
	)
}

// SwipeRight is the inverse of SwipeLeft.
func SwipeRight(geo geometry.ScreenGeometry, duration time.Duration) Gesture {
	w, h := geo.PointSize.Width, geo.PointSize.Height
	return Swipe(
		geometry.Point{X: w * swipeInset, Y: h / 2},
		geometry.Point{X: w * (1 - swipeInset), Y: h / 2},
		duration,
	)
}

// EventType labels one step of a synthesized sequence.
type EventType string

const (
	EventPress   EventType = "press"
	EventMove    EventType = "move"
	EventRelease EventType = "release"
)

// Event is one timed input event. Point is in host window coordinates and
// At is the offset from the start of the sequence.
type Event struct {
	Type  EventType
	Point geometry.Point
	At    time.Duration
}

// ErrOutOfBounds reports a gesture endpoint outside the device point
// bounds. Checked before any event is synthesized so a bad gesture never
// reaches the dispatcher.
var ErrOutOfBounds = errors.New("gesture coordinates outside screen bounds")

// Validate checks every endpoint of g against geo's point bounds.
func (g Gesture) Validate(geo geometry.ScreenGeometry) error {
	if _, ok := geometry.PointsToWindow(g.From, geo); !ok {
		return errors.Wrapf(ErrOutOfBounds, "from (%.1f, %.1f)", g.From.X, g.From.Y)
	}
	if g.Kind == KindSwipe || g.Kind == KindDrag {
		if _, ok := geometry.PointsToWindow(g.To, geo); !ok {
			return errors.Wrapf(ErrOutOfBounds, "to (%.1f, %.1f)", g.To.X, g.To.Y)
		}
	}
	return nil
}

// Movement step pacing. Roughly one move per display frame, clamped so a
// quick flick still carries enough samples to register as continuous and a
// slow drag does not flood the event queue.
const (
	stepInterval = 16 * time.Millisecond
	minMoveSteps = 4
	maxMoveSteps = 48
)

func moveSteps(d time.Duration) int {
	n := int(d / stepInterval)
	if n < minMoveSteps {
		return minMoveSteps
	}
	if n > maxMoveSteps {
		return maxMoveSteps
	}
	return n
}

// Synthesize expands g into a press, optional interpolated moves, and a
// release, all in window coordinates. The last event's offset equals the
// gesture duration.
func Synthesize(g Gesture, geo geometry.ScreenGeometry) ([]Event, error) {
	if err := g.Validate(geo); err != nil {
		return nil, err
	}
	from, _ := geometry.PointsToWindow(g.From, geo)

	switch g.Kind {
	case KindTap, KindLongPress:
		return []Event{
			{Type: EventPress, Point: from, At: 0},
			{Type: EventRelease, Point: from, At: g.Duration},
		}, nil
	case KindSwipe, KindDrag:
		to, _ := geometry.PointsToWindow(g.To, geo)
		steps := moveSteps(g.Duration)
		events := make([]Event, 0, steps+2)
		events = append(events, Event{Type: EventPress, Point: from, At: 0})
		for i := 1; i <= steps; i++ {
			t := float64(i) / float64(steps)
			events = append(events, Event{
				Type: EventMove,
				Point: geometry.Point{
					X: from.X + (to.X-from.X)*t,
					Y: from.Y + (to.Y-from.Y)*t,
				},
				At: time.Duration(float64(g.Duration) * float64(i) / float64(steps+1)),
			})
		}
		events = append(events, Event{Type: EventRelease, Point: to, At: g.Duration})
		return events, nil
	default:
		return nil, errors.Errorf("unknown gesture kind %q", g.Kind)
	}
}
