package platform

import "github.com/pkg/errors"

// ErrUnsupported is returned by New on platforms with no registered
// provider.
var ErrUnsupported = errors.New("no platform provider available on this OS")

// Provider bundles every capability a platform implementation supplies.
type Provider struct {
	Tree    TreeCapturer
	Input   EventDispatcher
	Screen  ScreenCapturer
	Devices DeviceManager
	Windows WindowLocator
	Typist  Typist
}

// NewProviderFunc is set by the platform-specific package's init.
var NewProviderFunc func() (*Provider, error)

// New returns the provider for the current platform.
func New() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
