package ops

import (
	"context"

	"github.com/axsim/sim-cli/internal/geometry"
	"github.com/axsim/sim-cli/internal/platform"
)

// DeviceListResult carries the known simulator devices.
type DeviceListResult struct {
	Result  `yaml:",inline"`
	Count   int               `yaml:"count" json:"count"`
	Devices []platform.Device `yaml:"devices" json:"devices"`
}

// ListDevices enumerates simulator devices, optionally only booted ones.
func (o *Ops) ListDevices(ctx context.Context, bootedOnly bool) *DeviceListResult {
	devices, err := o.provider.Devices.ListDevices(ctx)
	if err != nil {
		return &DeviceListResult{Result: failed(err)}
	}
	if bootedOnly {
		booted := []platform.Device{}
		for _, d := range devices {
			if d.Booted() {
				booted = append(booted, d)
			}
		}
		devices = booted
	}
	return &DeviceListResult{Result: succeeded(), Count: len(devices), Devices: devices}
}

// DeviceInfoResult carries one device's identity and screen geometry.
type DeviceInfoResult struct {
	Result   `yaml:",inline"`
	Device   *platform.Device         `yaml:"device,omitempty" json:"device,omitempty"`
	Geometry *geometry.ScreenGeometry `yaml:"geometry,omitempty" json:"geometry,omitempty"`
}

// DeviceInfo resolves a device and its screen geometry. An empty udid
// targets the booted device.
func (o *Ops) DeviceInfo(ctx context.Context, udid string) *DeviceInfoResult {
	dev, err := o.provider.Devices.BootedDevice(ctx)
	if udid != "" {
		devices, lerr := o.provider.Devices.ListDevices(ctx)
		if lerr != nil {
			return &DeviceInfoResult{Result: failed(lerr)}
		}
		err = platform.Errorf(platform.CategoryNotFound, "no simulator with UDID %s", udid)
		for _, d := range devices {
			if d.UDID == udid {
				dev, err = d, nil
				break
			}
		}
	}
	if err != nil {
		return &DeviceInfoResult{Result: failed(err)}
	}

	geo, err := o.provider.Devices.DeviceGeometry(ctx, dev.UDID)
	if err != nil {
		return &DeviceInfoResult{Result: failed(err)}
	}
	return &DeviceInfoResult{Result: succeeded(), Device: &dev, Geometry: &geo}
}

// DeviceResult reports a device lifecycle operation.
type DeviceResult struct {
	Result `yaml:",inline"`
	Device *platform.Device `yaml:"device,omitempty" json:"device,omitempty"`
}

// Boot starts a simulator by name or UDID.
func (o *Ops) Boot(ctx context.Context, nameOrUDID string) *DeviceResult {
	dev, err := o.provider.Devices.Boot(ctx, nameOrUDID)
	if err != nil {
		return &DeviceResult{Result: failed(err)}
	}
	return &DeviceResult{Result: succeeded(), Device: &dev}
}

// Shutdown stops a simulator. An empty udid targets the booted device.
func (o *Ops) Shutdown(ctx context.Context, udid string) *DeviceResult {
	if err := o.provider.Devices.Shutdown(ctx, udid); err != nil {
		return &DeviceResult{Result: failed(err)}
	}
	return &DeviceResult{Result: succeeded()}
}

// OpenURLResult reports a URL open.
type OpenURLResult struct {
	Result `yaml:",inline"`
	URL    string `yaml:"url,omitempty" json:"url,omitempty"`
}

// OpenURL opens a URL or deep link on the device.
func (o *Ops) OpenURL(ctx context.Context, udid, url string) *OpenURLResult {
	if err := o.provider.Devices.OpenURL(ctx, udid, url); err != nil {
		return &OpenURLResult{Result: failed(err)}
	}
	return &OpenURLResult{Result: succeeded(), URL: url}
}

// ScreenshotResult reports a screen capture.
type ScreenshotResult struct {
	Result `yaml:",inline"`
	Path   string `yaml:"path,omitempty" json:"path,omitempty"`
}

// Screenshot captures the device screen at native pixel resolution.
func (o *Ops) Screenshot(ctx context.Context, opts platform.ScreenshotOptions) *ScreenshotResult {
	path, err := o.provider.Screen.CaptureScreen(ctx, opts)
	if err != nil {
		return &ScreenshotResult{Result: failed(err)}
	}
	return &ScreenshotResult{Result: succeeded(), Path: path}
}
