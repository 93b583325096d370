package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rampImage builds a grayscale image whose samples encode their own
// coordinates, which makes mapping mistakes show up as exact mismatches.
func rampImage(t *testing.T, width, height int) *Image {
	t.Helper()
	img, err := NewImage(width, height, GrayChannels)
	require.NoError(t, err)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, 0, uint8((y*width+x)%256))
		}
	}
	return img
}

func TestRotateZeroDegreesIsIdentity(t *testing.T) {
	img := rampImage(t, 7, 5)
	want := img.Clone()

	_, err := Rotate(img, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, want.Width, img.Width)
	assert.Equal(t, want.Height, img.Height)
	assert.Equal(t, want.Pix, img.Pix, "0 degree rotation lands every sample on a lattice point")
}

func TestRotateFullTurnIsIdentity(t *testing.T) {
	img := rampImage(t, 6, 9)
	want := img.Clone()

	_, err := Rotate(img, 360, 2)
	require.NoError(t, err)
	assert.Equal(t, want.Width, img.Width)
	assert.Equal(t, want.Height, img.Height)
	assert.Equal(t, want.Pix, img.Pix)
}

// TestRotateQuarterTurnExact checks the 90 degree mapping: width and height
// swap exactly and every destination pixel equals its source counterpart
// with no interpolation blur, since integer pixel centers map to integer
// pixel centers.
func TestRotateQuarterTurnExact(t *testing.T) {
	src := rampImage(t, 4, 6)
	img := src.Clone()

	_, err := Rotate(img, 90, 3)
	require.NoError(t, err)
	require.Equal(t, 6, img.Width, "width and height must swap")
	require.Equal(t, 4, img.Height)

	// Counter-clockwise: the rightmost source column becomes the top row.
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			want := src.At(src.Width-1-y, x, 0)
			require.Equal(t, want, img.At(x, y, 0), "dest (%d,%d)", x, y)
		}
	}
}

// TestRotateSignConvention places a marker right of center and rotates by
// +90 degrees: counter-clockwise on screen means the marker must land above
// the center.
func TestRotateSignConvention(t *testing.T) {
	img := uniformImage(t, 5, 5, GrayChannels, 0)
	img.Set(4, 2, 0, 255)

	_, err := Rotate(img, 90, 1)
	require.NoError(t, err)
	require.Equal(t, 5, img.Width)
	require.Equal(t, 5, img.Height)

	assert.Equal(t, uint8(255), img.At(2, 0, 0), "marker right of center must land above center")
	assert.Equal(t, uint8(0), img.At(2, 4, 0), "and not below it")
}

func TestRotateExpandsBoundingBox(t *testing.T) {
	img := uniformImage(t, 10, 10, RGBChannels, 180)

	stats, err := Rotate(img, 45, 4)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, img.Width, 10, "output is never smaller than the input")
	assert.GreaterOrEqual(t, img.Height, 10)
	assert.Equal(t, RGBChannels, img.Channels, "channel count is preserved")
	assert.Equal(t, img.Pixels(), stats.Pixels)

	// The output center sits inside the rotated source, so it keeps the
	// uniform color.
	cx, cy := img.Width/2, img.Height/2
	for c := 0; c < RGBChannels; c++ {
		assert.Equal(t, uint8(180), img.At(cx, cy, c))
	}
}

func TestRotateThreadCountInvariance(t *testing.T) {
	base := rampImage(t, 12, 9)

	single := base.Clone()
	_, err := Rotate(single, 33.5, 1)
	require.NoError(t, err)

	for _, threads := range []int{2, 3, 7, 16} {
		img := base.Clone()
		_, err := Rotate(img, 33.5, threads)
		require.NoError(t, err)
		assert.Equal(t, single.Pix, img.Pix, "threads=%d", threads)
	}
}

func TestRotateErrors(t *testing.T) {
	_, err := Rotate(&Image{}, 45, 2)
	assert.ErrorIs(t, err, ErrNoImage)

	img := uniformImage(t, 3, 3, GrayChannels, 1)
	_, err = Rotate(img, 45, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
