//go:build darwin && cgo

package darwin

import (
	"context"
	"fmt"
	"time"

	"github.com/axsim/sim-cli/internal/platform"
)

// ScreenCapturer captures pixel-exact device screenshots through simctl,
// independent of the host window size or position.
type ScreenCapturer struct {
	devices *DeviceManager
}

// NewScreenCapturer creates a simctl-backed screen capturer.
func NewScreenCapturer(devices *DeviceManager) *ScreenCapturer {
	return &ScreenCapturer{devices: devices}
}

// CaptureScreen writes a PNG at the device's native pixel resolution and
// returns the output path.
func (s *ScreenCapturer) CaptureScreen(ctx context.Context, opts platform.ScreenshotOptions) (string, error) {
	dev, err := s.devices.resolve(ctx, opts.UDID)
	if err != nil {
		return "", err
	}
	if !dev.Booted() {
		return "", platform.Errorf(platform.CategoryTargetUnavailable,
			"device %s is not booted", dev.Name)
	}

	path := opts.OutputPath
	if path == "" {
		path = fmt.Sprintf("screenshot-%s.png", time.Now().Format("20060102-150405"))
	}
	if _, err := runSimctl(ctx, "io", dev.UDID, "screenshot", path); err != nil {
		return "", err
	}
	return path, nil
}
