package imagediff

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestIdenticalImagesPass(t *testing.T) {
	dir := t.TempDir()
	img := solidImage(100, 100, color.RGBA{R: 40, G: 80, B: 120, A: 255})
	baseline := writeTestPNG(t, dir, "baseline.png", img)
	current := writeTestPNG(t, dir, "current.png", img)

	res, err := Compare(baseline, current, Options{})
	require.NoError(t, err)

	assert.True(t, res.Passed)
	assert.Equal(t, 0, res.DifferentPixels)
	assert.Equal(t, 10000, res.TotalPixels)
	assert.Equal(t, 0.0, res.Percentage)
}

func TestDimensionMismatchIsHardError(t *testing.T) {
	dir := t.TempDir()
	baseline := writeTestPNG(t, dir, "baseline.png", solidImage(100, 100, color.RGBA{A: 255}))
	current := writeTestPNG(t, dir, "current.png", solidImage(100, 101, color.RGBA{A: 255}))

	res, err := Compare(baseline, current, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "100x100")
	assert.Contains(t, err.Error(), "100x101")
}

// paintPixels recolors count pixels, row by row from the top left.
func paintPixels(img *image.RGBA, count int, c color.RGBA) {
	w := img.Bounds().Dx()
	for i := 0; i < count; i++ {
		img.SetRGBA(i%w, i/w, c)
	}
}

func TestThresholdBoundaries(t *testing.T) {
	dir := t.TempDir()
	base := solidImage(100, 100, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	baseline := writeTestPNG(t, dir, "baseline.png", base)

	// 50 of 10000 pixels changed: 0.5%, inside the default 1% threshold.
	small := solidImage(100, 100, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	paintPixels(small, 50, color.RGBA{A: 255})
	res, err := Compare(baseline, writeTestPNG(t, dir, "small.png", small), Options{})
	require.NoError(t, err)
	assert.True(t, res.Passed)
	assert.Equal(t, 50, res.DifferentPixels)
	assert.Equal(t, 0.5, res.Percentage)

	// 150 pixels changed: 1.5%, beyond the default threshold.
	large := solidImage(100, 100, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	paintPixels(large, 150, color.RGBA{A: 255})
	res, err = Compare(baseline, writeTestPNG(t, dir, "large.png", large), Options{})
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Equal(t, 1.5, res.Percentage)

	// The same 1.5% passes when the caller raises the threshold.
	res, err = Compare(baseline, filepath.Join(dir, "large.png"), Options{Threshold: 2.0})
	require.NoError(t, err)
	assert.True(t, res.Passed)
}

func TestVerdictUsesUnroundedPercentage(t *testing.T) {
	dir := t.TempDir()
	base := solidImage(500, 500, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	baseline := writeTestPNG(t, dir, "baseline.png", base)

	// 2501 of 250000 pixels is 1.0004%: over the 1% threshold even though
	// the reported percentage rounds down to 1.0.
	over := solidImage(500, 500, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	paintPixels(over, 2501, color.RGBA{A: 255})
	res, err := Compare(baseline, writeTestPNG(t, dir, "over.png", over), Options{})
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Equal(t, 2501, res.DifferentPixels)
	assert.Equal(t, 1.0, res.Percentage)

	// Exactly 1% still passes.
	exact := solidImage(500, 500, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	paintPixels(exact, 2500, color.RGBA{A: 255})
	res, err = Compare(baseline, writeTestPNG(t, dir, "exact.png", exact), Options{})
	require.NoError(t, err)
	assert.True(t, res.Passed)
	assert.Equal(t, 1.0, res.Percentage)
}

func TestNoiseFloorAbsorbsSmallDeltas(t *testing.T) {
	dir := t.TempDir()
	baseline := writeTestPNG(t, dir, "baseline.png", solidImage(50, 50, color.RGBA{R: 100, G: 100, B: 100, A: 255}))
	// Every channel moved by 5, under the default floor of 10.
	current := writeTestPNG(t, dir, "current.png", solidImage(50, 50, color.RGBA{R: 105, G: 105, B: 105, A: 255}))

	res, err := Compare(baseline, current, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.DifferentPixels)
	assert.True(t, res.Passed)

	// An explicit zero floor makes the comparison exact.
	res, err = Compare(baseline, current, Options{NoiseFloorSet: true})
	require.NoError(t, err)
	assert.Equal(t, 2500, res.DifferentPixels)
	assert.False(t, res.Passed)
}

func TestArtifactGeneration(t *testing.T) {
	dir := t.TempDir()
	base := solidImage(60, 40, color.RGBA{R: 30, G: 30, B: 30, A: 255})
	baseline := writeTestPNG(t, dir, "baseline.png", base)
	changed := solidImage(60, 40, color.RGBA{R: 30, G: 30, B: 30, A: 255})
	paintPixels(changed, 100, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	current := writeTestPNG(t, dir, "current.png", changed)

	artifacts := filepath.Join(dir, "artifacts")
	res, err := Compare(baseline, current, Options{GenerateArtifacts: true, ArtifactDir: artifacts})
	require.NoError(t, err)

	require.NotEmpty(t, res.DiffImage)
	require.NotEmpty(t, res.SideBySide)

	diff, err := loadImage(res.DiffImage)
	require.NoError(t, err)
	assert.Equal(t, 60, diff.Bounds().Dx())
	// The first changed pixel is highlighted red.
	r, g, b, _ := diff.At(0, 0).RGBA()
	assert.Equal(t, uint32(255), r>>8)
	assert.Equal(t, uint32(0), g>>8)
	assert.Equal(t, uint32(0), b>>8)

	side, err := loadImage(res.SideBySide)
	require.NoError(t, err)
	assert.Equal(t, 60*2+sideBySideGap, side.Bounds().Dx())
	assert.Equal(t, 40, side.Bounds().Dy())
}
