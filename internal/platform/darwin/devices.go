//go:build darwin && cgo

package darwin

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/axsim/sim-cli/internal/geometry"
	"github.com/axsim/sim-cli/internal/logger"
	"github.com/axsim/sim-cli/internal/platform"
)

// deviceTypesDir holds the CoreSimulator device type bundles whose
// profile.plist files carry the native screen dimensions.
const deviceTypesDir = "/Library/Developer/CoreSimulator/Profiles/DeviceTypes"

// DeviceManager manages simulator devices through simctl.
type DeviceManager struct {
	// windows, when set, is used to resolve the host window placement
	// for DeviceGeometry.
	windows *WindowLocator
}

// NewDeviceManager creates a simctl-backed device manager.
func NewDeviceManager() *DeviceManager {
	return &DeviceManager{}
}

// runSimctl executes xcrun simctl with the given arguments.
func runSimctl(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "xcrun", append([]string{"simctl"}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, errors.Errorf("simctl %s: %s", args[0], msg)
	}
	return out, nil
}

type simctlDevice struct {
	Name                 string `json:"name"`
	UDID                 string `json:"udid"`
	State                string `json:"state"`
	IsAvailable          bool   `json:"isAvailable"`
	DeviceTypeIdentifier string `json:"deviceTypeIdentifier"`
}

type simctlDeviceList struct {
	Devices map[string][]simctlDevice `json:"devices"`
}

func (m *DeviceManager) list(ctx context.Context) (map[string][]simctlDevice, error) {
	out, err := runSimctl(ctx, "list", "-j", "devices")
	if err != nil {
		return nil, err
	}
	var parsed simctlDeviceList
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, errors.Wrap(err, "parsing simctl device list")
	}
	return parsed.Devices, nil
}

// runtimeName strips the reverse-DNS prefix from a simctl runtime key,
// e.g. "com.apple.CoreSimulator.SimRuntime.iOS-18-0" becomes "iOS-18-0".
func runtimeName(key string) string {
	if i := strings.LastIndex(key, "."); i >= 0 {
		return key[i+1:]
	}
	return key
}

// ListDevices returns every known simulator device.
func (m *DeviceManager) ListDevices(ctx context.Context) ([]platform.Device, error) {
	byRuntime, err := m.list(ctx)
	if err != nil {
		return nil, err
	}
	devices := []platform.Device{}
	for runtime, devs := range byRuntime {
		for _, d := range devs {
			devices = append(devices, platform.Device{
				Name:      d.Name,
				UDID:      d.UDID,
				Runtime:   runtimeName(runtime),
				State:     d.State,
				Available: d.IsAvailable,
			})
		}
	}
	return devices, nil
}

// BootedDevice returns the first booted simulator.
func (m *DeviceManager) BootedDevice(ctx context.Context) (platform.Device, error) {
	devices, err := m.ListDevices(ctx)
	if err != nil {
		return platform.Device{}, err
	}
	for _, d := range devices {
		if d.Booted() {
			return d, nil
		}
	}
	return platform.Device{}, platform.Errorf(platform.CategoryNotFound,
		"no booted simulator found: boot a simulator first or pass --udid")
}

// resolve finds a device by UDID, or the booted device when udid is empty.
func (m *DeviceManager) resolve(ctx context.Context, udid string) (platform.Device, error) {
	if udid == "" {
		return m.BootedDevice(ctx)
	}
	devices, err := m.ListDevices(ctx)
	if err != nil {
		return platform.Device{}, err
	}
	for _, d := range devices {
		if d.UDID == udid {
			return d, nil
		}
	}
	return platform.Device{}, platform.Errorf(platform.CategoryNotFound,
		"no simulator with UDID %s", udid)
}

// deviceType returns the simctl device type identifier for a device.
func (m *DeviceManager) deviceType(ctx context.Context, udid string) (string, error) {
	byRuntime, err := m.list(ctx)
	if err != nil {
		return "", err
	}
	for _, devs := range byRuntime {
		for _, d := range devs {
			if d.UDID == udid {
				return d.DeviceTypeIdentifier, nil
			}
		}
	}
	return "", platform.Errorf(platform.CategoryNotFound, "no simulator with UDID %s", udid)
}

// Boot starts a simulator by name or UDID and opens the Simulator app.
func (m *DeviceManager) Boot(ctx context.Context, nameOrUDID string) (platform.Device, error) {
	devices, err := m.ListDevices(ctx)
	if err != nil {
		return platform.Device{}, err
	}
	var target *platform.Device
	for i, d := range devices {
		if d.UDID == nameOrUDID || (d.Name == nameOrUDID && d.Available) {
			target = &devices[i]
			break
		}
	}
	if target == nil {
		return platform.Device{}, platform.Errorf(platform.CategoryNotFound,
			"no simulator matching %q", nameOrUDID)
	}
	if !target.Booted() {
		if _, err := runSimctl(ctx, "boot", target.UDID); err != nil {
			return platform.Device{}, err
		}
		target.State = "Booted"
	}
	// Bring up the Simulator app so the device has a host window.
	if err := exec.CommandContext(ctx, "open", "-a", "Simulator").Run(); err != nil {
		logger.G(ctx).WithError(err).Warn("failed to open Simulator app")
	}
	return *target, nil
}

// Shutdown stops a simulator. An empty udid targets the booted device.
func (m *DeviceManager) Shutdown(ctx context.Context, udid string) error {
	dev, err := m.resolve(ctx, udid)
	if err != nil {
		return err
	}
	_, err = runSimctl(ctx, "shutdown", dev.UDID)
	return err
}

// OpenURL opens a URL or deep link on the device.
func (m *DeviceManager) OpenURL(ctx context.Context, udid, url string) error {
	dev, err := m.resolve(ctx, udid)
	if err != nil {
		return err
	}
	_, err = runSimctl(ctx, "openurl", dev.UDID, url)
	return err
}

// deviceProfile is the subset of a device type's profile.plist we need.
type deviceProfile struct {
	ModelIdentifier  string  `json:"modelIdentifier"`
	MainScreenScale  float64 `json:"mainScreenScale"`
	MainScreenWidth  float64 `json:"mainScreenWidth"`
	MainScreenHeight float64 `json:"mainScreenHeight"`
}

// plutilJSON converts a plist file to JSON. The simulator profile plists
// are binary, so they go through plutil rather than a text parser.
func plutilJSON(ctx context.Context, path string, v interface{}) error {
	out, err := exec.CommandContext(ctx, "plutil", "-convert", "json", "-o", "-", path).Output()
	if err != nil {
		return errors.Wrapf(err, "converting %s", path)
	}
	return errors.Wrapf(json.Unmarshal(out, v), "parsing %s", path)
}

// loadDeviceProfile scans the CoreSimulator device type bundles for the one
// matching the identifier and reads its screen profile.
func loadDeviceProfile(ctx context.Context, deviceType string) (*deviceProfile, error) {
	entries, err := os.ReadDir(deviceTypesDir)
	if err != nil {
		return nil, errors.Wrap(err, "reading CoreSimulator device types")
	}
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".simdevicetype") {
			continue
		}
		bundle := filepath.Join(deviceTypesDir, entry.Name())
		var info struct {
			CFBundleIdentifier string `json:"CFBundleIdentifier"`
		}
		if err := plutilJSON(ctx, filepath.Join(bundle, "Contents/Info.plist"), &info); err != nil {
			continue
		}
		if info.CFBundleIdentifier != deviceType {
			continue
		}
		var profile deviceProfile
		if err := plutilJSON(ctx, filepath.Join(bundle, "Contents/Resources/profile.plist"), &profile); err != nil {
			return nil, err
		}
		return &profile, nil
	}
	return nil, platform.Errorf(platform.CategoryNotFound,
		"device profile not found for %s", deviceType)
}

// DeviceGeometry resolves the full screen geometry for a device: native
// pixel and point dimensions from the device profile, plus the host window
// placement when a Simulator window is on screen.
func (m *DeviceManager) DeviceGeometry(ctx context.Context, udid string) (geometry.ScreenGeometry, error) {
	dev, err := m.resolve(ctx, udid)
	if err != nil {
		return geometry.ScreenGeometry{}, err
	}
	deviceType, err := m.deviceType(ctx, dev.UDID)
	if err != nil {
		return geometry.ScreenGeometry{}, err
	}
	profile, err := loadDeviceProfile(ctx, deviceType)
	if err != nil {
		return geometry.ScreenGeometry{}, err
	}
	if profile.MainScreenScale <= 0 {
		return geometry.ScreenGeometry{}, errors.Errorf(
			"device profile for %s has no screen scale", deviceType)
	}

	geo := geometry.ScreenGeometry{
		Scale: int(profile.MainScreenScale),
		PixelSize: geometry.Size{
			Width:  profile.MainScreenWidth,
			Height: profile.MainScreenHeight,
		},
		PointSize: geometry.Size{
			Width:  profile.MainScreenWidth / profile.MainScreenScale,
			Height: profile.MainScreenHeight / profile.MainScreenScale,
		},
		WindowScale: 1.0,
	}

	if m.windows != nil && dev.Booted() {
		w, err := m.windows.LocateWindow(ctx, dev.UDID)
		if err != nil {
			logger.G(ctx).WithError(err).Debug("no host window located, window coordinates unavailable")
		} else {
			geo.WindowOrigin = geometry.Point{X: w.Content.X, Y: w.Content.Y}
			if geo.PointSize.Width > 0 && w.Content.Width > 0 {
				geo.WindowScale = w.Content.Width / geo.PointSize.Width
			}
		}
	}
	return geo, nil
}
