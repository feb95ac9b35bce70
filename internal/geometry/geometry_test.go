package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iphoneProGeometry() ScreenGeometry {
	return ScreenGeometry{
		Scale:        3,
		PixelSize:    Size{Width: 1206, Height: 2622},
		PointSize:    Size{Width: 402, Height: 874},
		WindowOrigin: Point{X: 120, Y: 78},
		WindowScale:  1.0,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ScreenGeometry)
		wantErr bool
	}{
		{"valid", func(g *ScreenGeometry) {}, false},
		{"bad_scale", func(g *ScreenGeometry) { g.Scale = 4 }, true},
		{"width_mismatch", func(g *ScreenGeometry) { g.PixelSize.Width = 1200 }, true},
		{"height_mismatch", func(g *ScreenGeometry) { g.PixelSize.Height = 2600 }, true},
		{"zero_window_scale", func(g *ScreenGeometry) { g.WindowScale = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := iphoneProGeometry()
			tt.mutate(&g)
			err := g.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPointsToPixelsRoundTrip(t *testing.T) {
	g := iphoneProGeometry()
	points := []Point{
		{X: 0, Y: 0},
		{X: 195, Y: 422},
		{X: 402, Y: 874},
		{X: 1.5, Y: 2.25},
	}
	for _, p := range points {
		px, inBounds := PointsToPixels(p, g)
		assert.True(t, inBounds, "point %v should be in bounds", p)
		back, _ := PixelsToPoints(px, g)
		assert.Equal(t, p, back, "round trip should be the identity for %v", p)
	}
}

func TestOutOfBoundsIsFlaggedNotRejected(t *testing.T) {
	g := iphoneProGeometry()

	px, inBounds := PointsToPixels(Point{X: -5, Y: 10}, g)
	assert.False(t, inBounds)
	assert.Equal(t, Point{X: -15, Y: 30}, px, "conversion still applies for out-of-bounds input")

	_, inBounds = PointsToPixels(Point{X: 403, Y: 10}, g)
	assert.False(t, inBounds)
}

func TestEdgeCoordinatesAreInBounds(t *testing.T) {
	g := iphoneProGeometry()
	// Edge-swipe gestures start exactly on the screen edge.
	for _, p := range []Point{{X: 0, Y: 437}, {X: 402, Y: 437}, {X: 201, Y: 0}, {X: 201, Y: 874}} {
		_, inBounds := PointsToPixels(p, g)
		assert.True(t, inBounds, "edge point %v must be in bounds", p)
	}
}

func TestPointsToWindow(t *testing.T) {
	g := iphoneProGeometry()

	// Window coordinate is origin + point × windowScale, never raw pixels.
	w, inBounds := PointsToWindow(Point{X: 195, Y: 422}, g)
	assert.True(t, inBounds)
	assert.Equal(t, Point{X: 315, Y: 500}, w)

	// A zoomed-out window halves the per-point distance.
	g.WindowScale = 0.5
	w, _ = PointsToWindow(Point{X: 195, Y: 422}, g)
	assert.Equal(t, Point{X: 217.5, Y: 289}, w)
}

func TestWindowToPointsInverts(t *testing.T) {
	g := iphoneProGeometry()
	g.WindowScale = 0.75
	orig := Point{X: 100, Y: 200}
	w, _ := PointsToWindow(orig, g)
	back, inBounds := WindowToPoints(w, g)
	assert.True(t, inBounds)
	assert.InDelta(t, orig.X, back.X, 1e-9)
	assert.InDelta(t, orig.Y, back.Y, 1e-9)
}

func TestRectCenter(t *testing.T) {
	r := Rect{X: 135, Y: 400, Width: 120, Height: 44}
	assert.Equal(t, Point{X: 195, Y: 422}, r.Center())
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    Point
		wantErr bool
	}{
		{"195,422", Point{X: 195, Y: 422}, false},
		{" 10 , 20.5 ", Point{X: 10, Y: 20.5}, false},
		{"195", Point{}, true},
		{"a,b", Point{}, true},
		{"1,2,3", Point{}, true},
	}
	for _, tt := range tests {
		got, err := ParsePoint(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}
