package ops

import (
	"context"
	"time"

	"github.com/axsim/sim-cli/internal/geometry"
	"github.com/axsim/sim-cli/internal/gesture"
	"github.com/axsim/sim-cli/internal/logger"
	"github.com/axsim/sim-cli/internal/model"
	"github.com/axsim/sim-cli/internal/platform"
)

// Target names where a gesture lands: an explicit point in device points,
// or a query resolved against a fresh snapshot.
type Target struct {
	Point      *geometry.Point
	Predicates *model.Predicates
	// Index selects among multiple query matches. Negative requires a
	// unique match.
	Index int
}

// TapOptions parameterizes tap and long-press operations.
type TapOptions struct {
	UDID     string
	Target   Target
	Duration time.Duration
}

// SwipeOptions parameterizes swipe and drag operations. Either Direction
// or the From/To pair must be set.
type SwipeOptions struct {
	UDID      string
	Direction string
	From, To  *geometry.Point
	Duration  time.Duration
	// Drag slows the default pacing so the movement reads as a drag
	// rather than a flick.
	Drag bool
}

// GestureResult reports a dispatched gesture.
type GestureResult struct {
	Result   `yaml:",inline"`
	Kind     gesture.Kind    `yaml:"kind,omitempty" json:"kind,omitempty"`
	From     *geometry.Point `yaml:"from,omitempty" json:"from,omitempty"`
	To       *geometry.Point `yaml:"to,omitempty" json:"to,omitempty"`
	Target   *model.Match    `yaml:"target,omitempty" json:"target,omitempty"`
	Elapsed  string          `yaml:"elapsed,omitempty" json:"elapsed,omitempty"`
	Duration string          `yaml:"duration,omitempty" json:"duration,omitempty"`
}

// resolveTarget turns a Target into a concrete point, capturing a snapshot
// when the target is a query.
func (o *Ops) resolveTarget(ctx context.Context, udid string, t Target) (geometry.Point, *model.Match, error) {
	if t.Point != nil {
		return *t.Point, nil, nil
	}
	if t.Predicates == nil {
		return geometry.Point{}, nil, platform.Errorf(platform.CategoryInternal,
			"no target: specify coordinates or an element query")
	}
	snap, err := o.provider.Tree.CaptureTree(ctx, platform.SnapshotOptions{UDID: udid})
	if err != nil {
		return geometry.Point{}, nil, err
	}
	matches, err := model.Query(*snap, *t.Predicates)
	if err != nil {
		return geometry.Point{}, nil, err
	}
	index := t.Index
	if index < 0 {
		if len(matches) > 1 {
			return geometry.Point{}, nil, platform.Errorf(platform.CategoryNotFound,
				"%d elements match, pass an index to disambiguate", len(matches))
		}
		index = 0
	}
	selected, err := model.SelectIndex(matches, index)
	if err != nil {
		return geometry.Point{}, nil, platform.NewError(platform.CategoryNotFound, err)
	}
	match := selected[0]
	return match.Center, &match, nil
}

// Tap taps the target point or element.
func (o *Ops) Tap(ctx context.Context, opts TapOptions) *GestureResult {
	point, match, err := o.resolveTarget(ctx, opts.UDID, opts.Target)
	if err != nil {
		return &GestureResult{Result: failed(err)}
	}
	return o.dispatch(ctx, opts.UDID, gesture.Tap(point, opts.Duration), match)
}

// LongPress presses and holds the target point or element.
func (o *Ops) LongPress(ctx context.Context, opts TapOptions) *GestureResult {
	point, match, err := o.resolveTarget(ctx, opts.UDID, opts.Target)
	if err != nil {
		return &GestureResult{Result: failed(err)}
	}
	return o.dispatch(ctx, opts.UDID, gesture.LongPress(point, opts.Duration), match)
}

// Swipe performs a directional or point-to-point swipe. With Drag set the
// gesture uses drag pacing.
func (o *Ops) Swipe(ctx context.Context, opts SwipeOptions) *GestureResult {
	geo, err := o.provider.Devices.DeviceGeometry(ctx, opts.UDID)
	if err != nil {
		return &GestureResult{Result: failed(err)}
	}

	var g gesture.Gesture
	switch {
	case opts.Direction != "":
		switch opts.Direction {
		case "up":
			g = gesture.SwipeUp(geo, opts.Duration)
		case "down":
			g = gesture.SwipeDown(geo, opts.Duration)
		case "left":
			g = gesture.SwipeLeft(geo, opts.Duration)
		case "right":
			g = gesture.SwipeRight(geo, opts.Duration)
		default:
			return &GestureResult{Result: failed(platform.Errorf(platform.CategoryInternal,
				"unknown swipe direction %q (use up, down, left, or right)", opts.Direction))}
		}
	case opts.From != nil && opts.To != nil:
		if opts.Drag {
			g = gesture.Drag(*opts.From, *opts.To, opts.Duration)
		} else {
			g = gesture.Swipe(*opts.From, *opts.To, opts.Duration)
		}
	default:
		return &GestureResult{Result: failed(platform.Errorf(platform.CategoryInternal,
			"no swipe path: specify a direction or both start and end coordinates"))}
	}

	return o.dispatchWithGeometry(ctx, g, geo, nil)
}

// dispatch synthesizes and replays a gesture against the device's current
// geometry.
func (o *Ops) dispatch(ctx context.Context, udid string, g gesture.Gesture, match *model.Match) *GestureResult {
	geo, err := o.provider.Devices.DeviceGeometry(ctx, udid)
	if err != nil {
		return &GestureResult{Result: failed(err)}
	}
	return o.dispatchWithGeometry(ctx, g, geo, match)
}

func (o *Ops) dispatchWithGeometry(ctx context.Context, g gesture.Gesture, geo geometry.ScreenGeometry, match *model.Match) *GestureResult {
	events, err := gesture.Synthesize(g, geo)
	if err != nil {
		return &GestureResult{Result: failed(err)}
	}
	if err := o.provider.Input.Prepare(ctx); err != nil {
		return &GestureResult{Result: failed(err)}
	}

	start := time.Now()
	if err := o.provider.Input.Dispatch(ctx, events); err != nil {
		return &GestureResult{Result: failed(err)}
	}
	elapsed := time.Since(start)

	logger.G(ctx).WithField("kind", g.Kind).WithField("events", len(events)).Debug("gesture dispatched")

	res := &GestureResult{
		Result:   succeeded(),
		Kind:     g.Kind,
		From:     &g.From,
		Target:   match,
		Elapsed:  elapsed.Round(time.Millisecond).String(),
		Duration: g.Duration.String(),
	}
	if g.Kind == gesture.KindSwipe || g.Kind == gesture.KindDrag {
		res.To = &g.To
	}
	return res
}
