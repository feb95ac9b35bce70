package platform

import "github.com/axsim/sim-cli/internal/geometry"

// SnapshotOptions controls an accessibility tree capture.
type SnapshotOptions struct {
	// UDID selects a simulator device. Empty means the booted device.
	UDID string
	// MaxDepth bounds tree traversal. Zero means the default depth.
	MaxDepth int
	// IncludeChrome keeps window decoration elements such as the
	// simulator's own toolbar in the tree.
	IncludeChrome bool
}

// ScreenshotOptions controls a screen capture.
type ScreenshotOptions struct {
	UDID string
	// OutputPath is where the PNG is written. Empty means a timestamped
	// file in the working directory.
	OutputPath string
}

// Device describes one simulator device as reported by the device manager.
type Device struct {
	Name      string `json:"name" yaml:"name"`
	UDID      string `json:"udid" yaml:"udid"`
	Runtime   string `json:"runtime" yaml:"runtime"`
	State     string `json:"state" yaml:"state"`
	Available bool   `json:"available" yaml:"available"`
}

// Booted reports whether the device is running.
func (d Device) Booted() bool { return d.State == "Booted" }

// WindowInfo describes the host window presenting a device's screen.
type WindowInfo struct {
	// Bounds is the full window frame in host screen points.
	Bounds geometry.Rect
	// Content is the region inside Bounds that displays device content,
	// excluding title bar and bezel.
	Content geometry.Rect
	Title   string
	PID     int
}
