// Package platform defines the capability interfaces the operations layer
// depends on, plus the error taxonomy shared by every operation. Concrete
// implementations live in platform-specific subpackages and register
// themselves at init time.
package platform

import (
	"context"

	"github.com/axsim/sim-cli/internal/geometry"
	"github.com/axsim/sim-cli/internal/gesture"
	"github.com/axsim/sim-cli/internal/model"
)

// TreeCapturer reads the accessibility tree of the device surface.
type TreeCapturer interface {
	CaptureTree(ctx context.Context, opts SnapshotOptions) (*model.Snapshot, error)
}

// EventDispatcher injects synthesized input events into the host.
type EventDispatcher interface {
	// Prepare brings the target surface frontmost and verifies it can
	// receive input. Returns a target_unavailable error otherwise.
	Prepare(ctx context.Context) error
	// Dispatch replays the event sequence, honoring each event's time
	// offset. Events carry window-relative coordinates.
	Dispatch(ctx context.Context, events []gesture.Event) error
}

// ScreenCapturer writes a pixel-exact screenshot of the device screen and
// returns the output path.
type ScreenCapturer interface {
	CaptureScreen(ctx context.Context, opts ScreenshotOptions) (string, error)
}

// DeviceManager enumerates and controls simulator devices.
type DeviceManager interface {
	ListDevices(ctx context.Context) ([]Device, error)
	BootedDevice(ctx context.Context) (Device, error)
	DeviceGeometry(ctx context.Context, udid string) (geometry.ScreenGeometry, error)
	Boot(ctx context.Context, nameOrUDID string) (Device, error)
	Shutdown(ctx context.Context, udid string) error
	OpenURL(ctx context.Context, udid, url string) error
}

// WindowLocator finds the host window presenting a device's screen.
type WindowLocator interface {
	LocateWindow(ctx context.Context, udid string) (WindowInfo, error)
}

// Typist sends text and key chords through the host keyboard.
type Typist interface {
	TypeText(ctx context.Context, text string, delayMs int) error
	PressKey(ctx context.Context, key string, modifiers []string) error
}
