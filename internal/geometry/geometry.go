// Package geometry converts coordinates between the three spaces involved in
// driving a simulator: device pixels (screenshot-native), logical points
// (device-independent), and host-window coordinates (where synthetic input
// events land). All conversions are pure functions.
package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a 2D coordinate. The space it lives in (pixels, points, or window
// coordinates) is determined by context.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `yaml:"width"  json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Rect is an axis-aligned rectangle with its origin at the top-left.
type Rect struct {
	X      float64 `yaml:"x"      json:"x"`
	Y      float64 `yaml:"y"      json:"y"`
	Width  float64 `yaml:"width"  json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// ScreenGeometry describes the target screen at capture time.
type ScreenGeometry struct {
	// Scale is the device scale factor in pixels per point (1, 2, or 3).
	Scale int `yaml:"scale" json:"scale"`
	// PixelSize is the screen size in device pixels.
	PixelSize Size `yaml:"pixel_size" json:"pixel_size"`
	// PointSize is the screen size in logical points.
	PointSize Size `yaml:"point_size" json:"point_size"`
	// WindowOrigin is the origin of the simulator's content area on the
	// host display, in host coordinates.
	WindowOrigin Point `yaml:"window_origin" json:"window_origin"`
	// WindowScale is host display units per simulator point. In Point
	// Accurate window mode this is 1.0; other window zoom modes shrink or
	// grow it.
	WindowScale float64 `yaml:"window_scale" json:"window_scale"`
}

// Validate checks the pixels = points × scale invariant for both dimensions.
func (g ScreenGeometry) Validate() error {
	if g.Scale < 1 || g.Scale > 3 {
		return fmt.Errorf("invalid scale factor %d: expected 1, 2, or 3", g.Scale)
	}
	if g.PointSize.Width*float64(g.Scale) != g.PixelSize.Width {
		return fmt.Errorf("width mismatch: %g points × %d ≠ %g pixels",
			g.PointSize.Width, g.Scale, g.PixelSize.Width)
	}
	if g.PointSize.Height*float64(g.Scale) != g.PixelSize.Height {
		return fmt.Errorf("height mismatch: %g points × %d ≠ %g pixels",
			g.PointSize.Height, g.Scale, g.PixelSize.Height)
	}
	if g.WindowScale <= 0 {
		return fmt.Errorf("invalid window scale %g: must be positive", g.WindowScale)
	}
	return nil
}

// withinPointBounds reports whether p lies inside the screen's point
// dimensions. Edges are inclusive so edge-swipe start points count as
// in-bounds.
func (g ScreenGeometry) withinPointBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 &&
		p.X <= g.PointSize.Width && p.Y <= g.PointSize.Height
}

// withinPixelBounds reports whether p lies inside the screen's pixel
// dimensions.
func (g ScreenGeometry) withinPixelBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 &&
		p.X <= g.PixelSize.Width && p.Y <= g.PixelSize.Height
}

// PointsToPixels converts a logical point to device pixels. Out-of-bounds
// input is converted anyway; the second return value reports whether the
// input was within the screen's point dimensions.
func PointsToPixels(p Point, g ScreenGeometry) (Point, bool) {
	s := float64(g.Scale)
	return Point{X: p.X * s, Y: p.Y * s}, g.withinPointBounds(p)
}

// PixelsToPoints converts a device-pixel coordinate to logical points.
func PixelsToPoints(p Point, g ScreenGeometry) (Point, bool) {
	s := float64(g.Scale)
	return Point{X: p.X / s, Y: p.Y / s}, g.withinPixelBounds(p)
}

// PointsToWindow converts a logical point to a host-window coordinate
// suitable for synthetic input injection.
func PointsToWindow(p Point, g ScreenGeometry) (Point, bool) {
	return Point{
		X: g.WindowOrigin.X + p.X*g.WindowScale,
		Y: g.WindowOrigin.Y + p.Y*g.WindowScale,
	}, g.withinPointBounds(p)
}

// WindowToPoints inverts PointsToWindow.
func WindowToPoints(p Point, g ScreenGeometry) (Point, bool) {
	pt := Point{
		X: (p.X - g.WindowOrigin.X) / g.WindowScale,
		Y: (p.Y - g.WindowOrigin.Y) / g.WindowScale,
	}
	return pt, g.withinPointBounds(pt)
}

// ParsePoint parses an "x,y" flag value into a Point.
func ParsePoint(s string) (Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("invalid point %q: expected x,y", s)
	}
	vals := make([]float64, 2)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Point{}, fmt.Errorf("invalid point %q: %w", s, err)
		}
		vals[i] = v
	}
	return Point{X: vals[0], Y: vals[1]}, nil
}
