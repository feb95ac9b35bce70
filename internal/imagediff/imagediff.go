// Package imagediff compares two screenshots pixel by pixel and reports
// whether they differ beyond a configurable threshold. It can emit a
// red-highlight diff image and a labeled side-by-side composite for
// inspection.
package imagediff

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultThreshold is the percentage of differing pixels above which
	// the comparison fails.
	DefaultThreshold = 1.0
	// DefaultNoiseFloor is the per-channel delta below which a pixel is
	// considered unchanged, absorbing compression and anti-aliasing noise.
	DefaultNoiseFloor = 10
)

// Options tunes a comparison.
type Options struct {
	// Threshold is a percentage in [0, 100]. Zero means DefaultThreshold.
	Threshold float64
	// NoiseFloor is the per-channel delta a pixel must exceed to count as
	// different. Zero means DefaultNoiseFloor; use NoiseFloorSet to force
	// an exact comparison.
	NoiseFloor int
	// NoiseFloorSet marks NoiseFloor as explicit, so zero is honored.
	NoiseFloorSet bool
	// GenerateArtifacts writes the diff overlay and side-by-side images
	// into ArtifactDir.
	GenerateArtifacts bool
	ArtifactDir       string
}

func (o Options) threshold() float64 {
	if o.Threshold == 0 {
		return DefaultThreshold
	}
	return o.Threshold
}

func (o Options) noiseFloor() int {
	if o.NoiseFloor == 0 && !o.NoiseFloorSet {
		return DefaultNoiseFloor
	}
	return o.NoiseFloor
}

// Result reports the outcome of one comparison.
type Result struct {
	Baseline string `json:"baseline" yaml:"baseline"`
	Current  string `json:"current" yaml:"current"`

	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`

	DifferentPixels int     `json:"different_pixels" yaml:"different_pixels"`
	TotalPixels     int     `json:"total_pixels" yaml:"total_pixels"`
	Percentage      float64 `json:"percentage" yaml:"percentage"`
	Threshold       float64 `json:"threshold" yaml:"threshold"`
	Passed          bool    `json:"passed" yaml:"passed"`

	DiffImage  string `json:"diff_image,omitempty" yaml:"diff_image,omitempty"`
	SideBySide string `json:"side_by_side,omitempty" yaml:"side_by_side,omitempty"`
}

// ErrDimensionMismatch reports images of different sizes. Comparison never
// proceeds partially: mismatched inputs are a usage error, not a 100% diff.
var ErrDimensionMismatch = errors.New("image dimensions do not match")

// Compare loads both images and counts pixels whose per-channel difference
// exceeds the noise floor.
func Compare(baselinePath, currentPath string, opts Options) (*Result, error) {
	baseline, err := loadImage(baselinePath)
	if err != nil {
		return nil, err
	}
	current, err := loadImage(currentPath)
	if err != nil {
		return nil, err
	}

	bb, cb := baseline.Bounds(), current.Bounds()
	if bb.Dx() != cb.Dx() || bb.Dy() != cb.Dy() {
		return nil, errors.Wrapf(ErrDimensionMismatch, "baseline %dx%d, current %dx%d",
			bb.Dx(), bb.Dy(), cb.Dx(), cb.Dy())
	}

	width, height := bb.Dx(), bb.Dy()
	floor := uint32(opts.noiseFloor())
	mask := image.NewGray(image.Rect(0, 0, width, height))

	different := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if pixelDiffers(baseline.At(bb.Min.X+x, bb.Min.Y+y), current.At(cb.Min.X+x, cb.Min.Y+y), floor) {
				different++
				mask.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	total := width * height
	percentage := 0.0
	if total > 0 {
		percentage = float64(different) / float64(total) * 100
	}

	res := &Result{
		Baseline:        baselinePath,
		Current:         currentPath,
		Width:           width,
		Height:          height,
		DifferentPixels: different,
		TotalPixels:     total,
		// The verdict uses the exact ratio; only the reported figure is
		// rounded.
		Percentage: math.Round(percentage*1000) / 1000,
		Threshold:  opts.threshold(),
		Passed:     percentage <= opts.threshold(),
	}

	if opts.GenerateArtifacts {
		if err := writeArtifacts(res, baseline, current, mask, opts.ArtifactDir); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return img, nil
}

// pixelDiffers checks whether any color channel moved by more than floor.
// Alpha is ignored: screenshots are opaque.
func pixelDiffers(a, b color.Color, floor uint32) bool {
	ar, ag, ab, _ := a.RGBA()
	br, bg, bb, _ := b.RGBA()
	// RGBA returns 16-bit channels; compare in 8-bit space.
	return absDiff(ar>>8, br>>8) > floor ||
		absDiff(ag>>8, bg>>8) > floor ||
		absDiff(ab>>8, bb>>8) > floor
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

const sideBySideGap = 10

var (
	highlightRed = color.RGBA{R: 255, A: 255}
	gapGray      = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	labelWhite   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func writeArtifacts(res *Result, baseline, current image.Image, mask *image.Gray, dir string) error {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating artifact directory")
	}

	diffPath := filepath.Join(dir, "diff.png")
	if err := writePNG(diffPath, overlayDiff(current, mask)); err != nil {
		return err
	}
	res.DiffImage = diffPath

	sidePath := filepath.Join(dir, "side-by-side.png")
	if err := writePNG(sidePath, sideBySide(baseline, current)); err != nil {
		return err
	}
	res.SideBySide = sidePath
	return nil
}

// overlayDiff paints the differing pixels red on top of the current image.
func overlayDiff(current image.Image, mask *image.Gray) image.Image {
	b := current.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), current, b.Min, draw.Src)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if mask.GrayAt(x, y).Y > 0 {
				out.SetRGBA(x, y, highlightRed)
			}
		}
	}
	return out
}

// sideBySide composes baseline and current horizontally with a gray gap
// and a label over each pane.
func sideBySide(baseline, current image.Image) image.Image {
	bb, cb := baseline.Bounds(), current.Bounds()
	w, h := bb.Dx(), bb.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w*2+sideBySideGap, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(gapGray), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, w, h), baseline, bb.Min, draw.Src)
	draw.Draw(out, image.Rect(w+sideBySideGap, 0, w*2+sideBySideGap, h), current, cb.Min, draw.Src)
	drawLabel(out, 8, 16, "baseline")
	drawLabel(out, w+sideBySideGap+8, 16, "current")
	return out
}

func drawLabel(dst *image.RGBA, x, y int, text string) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(labelWhite),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}
	return nil
}
