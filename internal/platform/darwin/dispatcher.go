//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework AppKit -framework Foundation
#include <CoreGraphics/CoreGraphics.h>
#import <AppKit/AppKit.h>

// Post one touch-equivalent mouse event at host screen coordinates.
// type: 0=press, 1=move, 2=release
static int cg_post_touch(int type, float x, float y) {
    CGPoint point = CGPointMake(x, y);
    CGEventType eventType;
    switch (type) {
        case 0:  eventType = kCGEventLeftMouseDown;    break;
        case 1:  eventType = kCGEventLeftMouseDragged; break;
        default: eventType = kCGEventLeftMouseUp;      break;
    }
    CGEventRef event = CGEventCreateMouseEvent(NULL, eventType, point, kCGMouseButtonLeft);
    if (!event) return -1;
    CGEventPost(kCGHIDEventTap, event);
    CFRelease(event);
    return 0;
}

// Press a key combo with modifier flags.
static void cg_key_combo(CGKeyCode keyCode, CGEventFlags modifiers) {
    CGEventRef keyDown = CGEventCreateKeyboardEvent(NULL, keyCode, true);
    CGEventRef keyUp = CGEventCreateKeyboardEvent(NULL, keyCode, false);
    CGEventSetFlags(keyDown, modifiers);
    CGEventSetFlags(keyUp, modifiers);
    CGEventPost(kCGHIDEventTap, keyDown);
    CGEventPost(kCGHIDEventTap, keyUp);
    CFRelease(keyDown);
    CFRelease(keyUp);
}

static int ns_activate_app(pid_t pid) {
    NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:pid];
    if (!app) return -1;
    [app activateWithOptions:NSApplicationActivateIgnoringOtherApps];
    return 0;
}
*/
import "C"

import (
	"context"
	"time"

	"github.com/axsim/sim-cli/internal/gesture"
	"github.com/axsim/sim-cli/internal/logger"
	"github.com/axsim/sim-cli/internal/platform"
)

// Virtual key code for the "2" key, used for the Window > Point Accurate
// shortcut (Cmd+2).
const keyCode2 = 0x13

// EventDispatcher injects touch sequences into the Simulator window
// through CGEvent.
type EventDispatcher struct {
	windows *WindowLocator
}

// NewEventDispatcher creates a CGEvent-backed dispatcher.
func NewEventDispatcher(windows *WindowLocator) *EventDispatcher {
	return &EventDispatcher{windows: windows}
}

// Prepare activates the Simulator app and switches it to Point Accurate
// mode so one window point equals one device point.
func (d *EventDispatcher) Prepare(ctx context.Context) error {
	win, err := d.windows.LocateWindow(ctx, "")
	if err != nil {
		if platform.CategoryOf(err) == platform.CategoryNotFound {
			return platform.NewError(platform.CategoryTargetUnavailable, err)
		}
		return err
	}
	if C.ns_activate_app(C.pid_t(win.PID)) != 0 {
		return platform.Errorf(platform.CategoryTargetUnavailable,
			"failed to activate Simulator app (PID %d)", win.PID)
	}
	// Give the window server a beat to complete the app switch.
	time.Sleep(300 * time.Millisecond)

	C.cg_key_combo(C.CGKeyCode(keyCode2), C.CGEventFlags(C.kCGEventFlagMaskCommand))
	time.Sleep(100 * time.Millisecond)

	logger.G(ctx).WithField("pid", win.PID).Debug("simulator window activated")
	return nil
}

// Dispatch replays a synthesized event sequence, pacing each event by its
// time offset. Aborts between events when ctx is done, releasing the
// press so the host is not left with a stuck button.
func (d *EventDispatcher) Dispatch(ctx context.Context, events []gesture.Event) error {
	start := time.Now()
	for i, ev := range events {
		if wait := ev.At - time.Since(start); wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				d.releaseAt(events, i)
				return ctx.Err()
			}
		}
		if C.cg_post_touch(eventTypeCode(ev.Type), C.float(ev.Point.X), C.float(ev.Point.Y)) != 0 {
			d.releaseAt(events, i)
			return platform.Errorf(platform.CategoryInternal,
				"failed to post %s event at (%.1f, %.1f)", ev.Type, ev.Point.X, ev.Point.Y)
		}
	}
	return nil
}

// releaseAt posts a release at the last delivered position when a sequence
// is abandoned after its press.
func (d *EventDispatcher) releaseAt(events []gesture.Event, failed int) {
	if failed == 0 || events[failed].Type == gesture.EventPress {
		return
	}
	last := events[failed-1].Point
	C.cg_post_touch(eventTypeCode(gesture.EventRelease), C.float(last.X), C.float(last.Y))
}

func eventTypeCode(t gesture.EventType) C.int {
	switch t {
	case gesture.EventPress:
		return 0
	case gesture.EventMove:
		return 1
	default:
		return 2
	}
}
