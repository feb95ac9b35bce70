package ops

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axsim/sim-cli/internal/geometry"
	"github.com/axsim/sim-cli/internal/gesture"
	"github.com/axsim/sim-cli/internal/imagediff"
	"github.com/axsim/sim-cli/internal/model"
	"github.com/axsim/sim-cli/internal/platform"
)

type fakeTree struct {
	snap *model.Snapshot
	err  error
}

func (f *fakeTree) CaptureTree(ctx context.Context, opts platform.SnapshotOptions) (*model.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

type fakeInput struct {
	prepareErr  error
	dispatchErr error
	prepared    bool
	events      []gesture.Event
}

func (f *fakeInput) Prepare(ctx context.Context) error {
	f.prepared = true
	return f.prepareErr
}

func (f *fakeInput) Dispatch(ctx context.Context, events []gesture.Event) error {
	f.events = events
	return f.dispatchErr
}

type fakeDevices struct {
	geo     geometry.ScreenGeometry
	devices []platform.Device
	geoErr  error
}

func (f *fakeDevices) ListDevices(ctx context.Context) ([]platform.Device, error) {
	return f.devices, nil
}

func (f *fakeDevices) BootedDevice(ctx context.Context) (platform.Device, error) {
	for _, d := range f.devices {
		if d.Booted() {
			return d, nil
		}
	}
	return platform.Device{}, platform.Errorf(platform.CategoryNotFound, "no booted simulator found")
}

func (f *fakeDevices) DeviceGeometry(ctx context.Context, udid string) (geometry.ScreenGeometry, error) {
	if f.geoErr != nil {
		return geometry.ScreenGeometry{}, f.geoErr
	}
	return f.geo, nil
}

func (f *fakeDevices) Boot(ctx context.Context, nameOrUDID string) (platform.Device, error) {
	for _, d := range f.devices {
		if d.Name == nameOrUDID || d.UDID == nameOrUDID {
			d.State = "Booted"
			return d, nil
		}
	}
	return platform.Device{}, platform.Errorf(platform.CategoryNotFound, "no simulator matching %q", nameOrUDID)
}

func (f *fakeDevices) Shutdown(ctx context.Context, udid string) error { return nil }

func (f *fakeDevices) OpenURL(ctx context.Context, udid, url string) error { return nil }

type fakeScreen struct {
	path string
	err  error
}

func (f *fakeScreen) CaptureScreen(ctx context.Context, opts platform.ScreenshotOptions) (string, error) {
	return f.path, f.err
}

type fakeTypist struct {
	typed string
	key   string
}

func (f *fakeTypist) TypeText(ctx context.Context, text string, delayMs int) error {
	f.typed = text
	return nil
}

func (f *fakeTypist) PressKey(ctx context.Context, key string, modifiers []string) error {
	f.key = key
	return nil
}

func testGeometry() geometry.ScreenGeometry {
	return geometry.ScreenGeometry{
		Scale:        3,
		PixelSize:    geometry.Size{Width: 1206, Height: 2622},
		PointSize:    geometry.Size{Width: 402, Height: 874},
		WindowOrigin: geometry.Point{X: 120, Y: 78},
		WindowScale:  1.0,
	}
}

func loginSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Target:     "simulator",
		Device:     "iPhone 16 Pro",
		CapturedAt: time.Now().UTC(),
		Geometry:   testGeometry(),
		Root: model.ElementNode{
			Role:  "Window",
			Frame: geometry.Rect{Width: 402, Height: 874},
			Children: []model.ElementNode{
				{
					Role:  "Group",
					Frame: geometry.Rect{Width: 402, Height: 874},
					Children: []model.ElementNode{
						{Role: "TextField", Label: "Email", Identifier: "login.email", Frame: geometry.Rect{X: 40, Y: 280, Width: 322, Height: 44}},
						{Role: "Button", Label: "Login", Identifier: "login.submit", Frame: geometry.Rect{X: 135, Y: 400, Width: 120, Height: 44}},
						{Role: "StaticText", Value: "Forgot your login?", Frame: geometry.Rect{X: 120, Y: 470, Width: 160, Height: 20}},
					},
				},
			},
		},
	}
}

func testOps(input *fakeInput) (*Ops, *fakeInput) {
	if input == nil {
		input = &fakeInput{}
	}
	provider := &platform.Provider{
		Tree:   &fakeTree{snap: loginSnapshot()},
		Input:  input,
		Screen: &fakeScreen{path: "screenshot.png"},
		Devices: &fakeDevices{
			geo: testGeometry(),
			devices: []platform.Device{
				{Name: "iPhone 16 Pro", UDID: "AAAA-1111", Runtime: "iOS-18-0", State: "Booted", Available: true},
				{Name: "iPad Air", UDID: "BBBB-2222", Runtime: "iOS-18-0", State: "Shutdown", Available: true},
			},
		},
		Typist: &fakeTypist{},
	}
	return New(provider), input
}

func TestTapByQueryResolvesElementCenter(t *testing.T) {
	o, input := testOps(nil)

	res := o.Tap(context.Background(), TapOptions{
		Target: Target{Predicates: &model.Predicates{TextExact: "Login"}, Index: -1},
	})

	require.True(t, res.Success, res.Error)
	assert.True(t, input.prepared)
	require.NotEmpty(t, input.events)

	// Center (195, 422) in device points lands at (315, 500) in the window.
	assert.Equal(t, gesture.EventPress, input.events[0].Type)
	assert.Equal(t, geometry.Point{X: 315, Y: 500}, input.events[0].Point)
	require.NotNil(t, res.Target)
	assert.Equal(t, "Button", res.Target.Element.Role)
	assert.Equal(t, geometry.Point{X: 195, Y: 422}, *res.From)
}

func TestTapOutOfBoundsNeverDispatches(t *testing.T) {
	o, input := testOps(nil)

	res := o.Tap(context.Background(), TapOptions{
		Target: Target{Point: &geometry.Point{X: 500, Y: 100}},
	})

	assert.False(t, res.Success)
	assert.Equal(t, platform.CategoryOutOfBounds, res.ErrorCategory)
	assert.False(t, input.prepared)
	assert.Empty(t, input.events)
}

func TestTapAmbiguousQueryFails(t *testing.T) {
	o, _ := testOps(nil)

	// "login" matches both the button label and the static text.
	res := o.Tap(context.Background(), TapOptions{
		Target: Target{Predicates: &model.Predicates{TextContains: "login"}, Index: -1},
	})

	assert.False(t, res.Success)
	assert.Equal(t, platform.CategoryNotFound, res.ErrorCategory)
	assert.Contains(t, res.Error, "index")
}

func TestTapPrepareFailurePropagates(t *testing.T) {
	input := &fakeInput{prepareErr: platform.Errorf(platform.CategoryTargetUnavailable, "simulator not frontmost")}
	o, _ := testOps(input)

	res := o.Tap(context.Background(), TapOptions{
		Target: Target{Point: &geometry.Point{X: 100, Y: 100}},
	})

	assert.False(t, res.Success)
	assert.Equal(t, platform.CategoryTargetUnavailable, res.ErrorCategory)
}

func TestDispatchTimeoutCategory(t *testing.T) {
	input := &fakeInput{dispatchErr: context.DeadlineExceeded}
	o, _ := testOps(input)

	res := o.Tap(context.Background(), TapOptions{
		Target: Target{Point: &geometry.Point{X: 100, Y: 100}},
	})

	assert.False(t, res.Success)
	assert.Equal(t, platform.CategoryTimeout, res.ErrorCategory)
}

func TestSwipeDirectional(t *testing.T) {
	o, input := testOps(nil)

	res := o.Swipe(context.Background(), SwipeOptions{Direction: "up"})
	require.True(t, res.Success, res.Error)
	require.NotEmpty(t, input.events)

	first := input.events[0]
	last := input.events[len(input.events)-1]
	assert.Equal(t, gesture.EventPress, first.Type)
	assert.Equal(t, gesture.EventRelease, last.Type)
	assert.Greater(t, first.Point.Y, last.Point.Y)
}

func TestSwipeRequiresPath(t *testing.T) {
	o, _ := testOps(nil)

	res := o.Swipe(context.Background(), SwipeOptions{})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "direction")

	res = o.Swipe(context.Background(), SwipeOptions{Direction: "sideways"})
	assert.False(t, res.Success)
}

func TestQueryElementsZeroMatchesSucceeds(t *testing.T) {
	o, _ := testOps(nil)

	res := o.QueryElements(context.Background(), QueryOptions{
		Predicates: model.Predicates{TextExact: "Sign Up"},
		Index:      -1,
	})

	assert.True(t, res.Success)
	assert.Equal(t, 0, res.Count)
	assert.NotNil(t, res.Matches)
}

func TestQueryElementsIndexSelection(t *testing.T) {
	o, _ := testOps(nil)

	res := o.QueryElements(context.Background(), QueryOptions{
		Predicates: model.Predicates{TextContains: "login"},
		Index:      1,
	})

	require.True(t, res.Success, res.Error)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "StaticText", res.Matches[0].Element.Role)
}

func TestVisualDiffDimensionMismatch(t *testing.T) {
	dir := t.TempDir()
	writePNG := func(name string, w, h int) string {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		require.NoError(t, err)
		defer f.Close()
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.SetRGBA(x, y, color.RGBA{A: 255})
			}
		}
		require.NoError(t, png.Encode(f, img))
		return path
	}

	o, _ := testOps(nil)
	res := o.VisualDiff(context.Background(),
		writePNG("baseline.png", 10, 10),
		writePNG("current.png", 10, 12),
		imagediff.Options{})

	assert.False(t, res.Success)
	assert.Equal(t, platform.CategoryDimensionMismatch, res.ErrorCategory)
	assert.Nil(t, res.Diff)
}

func TestVisualDiffIdentical(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	path := filepath.Join(dir, "same.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	f.Close()

	o, _ := testOps(nil)
	res := o.VisualDiff(context.Background(), path, path, imagediff.Options{})

	require.True(t, res.Success, res.Error)
	require.NotNil(t, res.Diff)
	assert.True(t, res.Diff.Passed)
	assert.Equal(t, 0, res.Diff.DifferentPixels)
}

func TestCaptureSnapshotNestedAndFlat(t *testing.T) {
	o, _ := testOps(nil)

	res := o.CaptureSnapshot(context.Background(), platform.SnapshotOptions{}, false)
	require.True(t, res.Success, res.Error)
	require.NotNil(t, res.Snapshot)
	assert.Empty(t, res.Elements)
	assert.Equal(t, 5, res.Count)

	res = o.CaptureSnapshot(context.Background(), platform.SnapshotOptions{}, true)
	require.True(t, res.Success, res.Error)
	assert.Nil(t, res.Snapshot)
	require.Len(t, res.Elements, 5)
	assert.Equal(t, "Window", res.Elements[0].Role)
}

func TestListDevices(t *testing.T) {
	o, _ := testOps(nil)

	res := o.ListDevices(context.Background(), false)
	require.True(t, res.Success)
	assert.Equal(t, 2, res.Count)

	res = o.ListDevices(context.Background(), true)
	require.True(t, res.Success)
	require.Equal(t, 1, res.Count)
	assert.True(t, res.Devices[0].Booted())
}

func TestDeviceInfoDefaultsToBooted(t *testing.T) {
	o, _ := testOps(nil)

	res := o.DeviceInfo(context.Background(), "")
	require.True(t, res.Success, res.Error)
	require.NotNil(t, res.Device)
	assert.Equal(t, "iPhone 16 Pro", res.Device.Name)
	require.NotNil(t, res.Geometry)
	assert.Equal(t, 3, res.Geometry.Scale)

	res = o.DeviceInfo(context.Background(), "CCCC-0000")
	assert.False(t, res.Success)
	assert.Equal(t, platform.CategoryNotFound, res.ErrorCategory)
}

func TestScreenMapSummarizes(t *testing.T) {
	o, _ := testOps(nil)

	res := o.ScreenMap(context.Background(), platform.SnapshotOptions{})
	require.True(t, res.Success, res.Error)
	require.NotNil(t, res.Map)
	assert.Equal(t, []string{"Login"}, res.Map.Buttons)
	assert.Equal(t, "iPhone 16 Pro", res.Device)
}

func TestTypeText(t *testing.T) {
	o, _ := testOps(nil)

	res := o.TypeText(context.Background(), TypeOptions{Text: "hello"})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "hello", res.Text)

	res = o.TypeText(context.Background(), TypeOptions{Key: "return"})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "return", res.Key)
}

func TestScreenshot(t *testing.T) {
	o, _ := testOps(nil)

	res := o.Screenshot(context.Background(), platform.ScreenshotOptions{})
	require.True(t, res.Success)
	assert.Equal(t, "screenshot.png", res.Path)
}
