//go:build darwin && cgo

package darwin

import "github.com/axsim/sim-cli/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		devices := NewDeviceManager()
		windows := NewWindowLocator()
		devices.windows = windows
		return &platform.Provider{
			Tree:    NewTreeCapturer(devices, windows),
			Input:   NewEventDispatcher(windows),
			Screen:  NewScreenCapturer(devices),
			Devices: devices,
			Windows: windows,
			Typist:  NewTypist(windows),
		}, nil
	}
}
