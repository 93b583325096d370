package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResizeIdentity checks that scaling an image to its own dimensions
// reproduces it exactly: both scale factors are 1.0 and every sample point
// lands on a source pixel.
func TestResizeIdentity(t *testing.T) {
	img := rampImage(t, 9, 6)
	want := img.Clone()

	_, err := Resize(img, 9, 6, 3)
	require.NoError(t, err)
	assert.Equal(t, want.Pix, img.Pix)
}

// TestResizeUpscaleRamp pins the bilinear weights on a tiny known input.
func TestResizeUpscaleRamp(t *testing.T) {
	img, err := NewImage(2, 2, GrayChannels)
	require.NoError(t, err)
	img.Set(1, 0, 0, 100)
	img.Set(1, 1, 0, 100)

	_, err = Resize(img, 4, 2, 2)
	require.NoError(t, err)

	// Row 0 samples source x = 0, 0.5, 1.0, 1.5: the half-way sample blends
	// to 50 and the last two clamp to the right edge. Row 1 sits on the
	// bottom edge, so every sample degrades to nearest-neighbor.
	assert.Equal(t, []uint8{
		0, 50, 100, 100,
		0, 100, 100, 100,
	}, img.Pix)
}

func TestResizeUniformStaysUniform(t *testing.T) {
	img := uniformImage(t, 6, 6, RGBChannels, 210)

	_, err := Resize(img, 17, 11, 4)
	require.NoError(t, err)
	require.Equal(t, 17, img.Width)
	require.Equal(t, 11, img.Height)
	for i, v := range img.Pix {
		require.Equal(t, uint8(210), v, "sample %d", i)
	}
}

func TestResizeDownscaleDimensions(t *testing.T) {
	img := rampImage(t, 64, 48)
	stats, err := Resize(img, 16, 12, 4)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Width)
	assert.Equal(t, 12, img.Height)
	assert.Equal(t, 192, stats.Pixels, "stats count destination pixels")
}

func TestResizeThreadCountInvariance(t *testing.T) {
	base := rampImage(t, 21, 13)

	single := base.Clone()
	_, err := Resize(single, 34, 8, 1)
	require.NoError(t, err)

	for _, threads := range []int{2, 5, 8, 16} {
		img := base.Clone()
		_, err := Resize(img, 34, 8, threads)
		require.NoError(t, err)
		assert.Equal(t, single.Pix, img.Pix, "threads=%d", threads)
	}
}

func TestResizeErrors(t *testing.T) {
	_, err := Resize(&Image{}, 10, 10, 2)
	assert.ErrorIs(t, err, ErrNoImage)

	img := uniformImage(t, 4, 4, GrayChannels, 5)
	_, err = Resize(img, 0, 10, 2)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = Resize(img, 10, -3, 2)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = Resize(img, 10, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	// Failed validation must leave the image untouched.
	assert.Equal(t, 4, img.Width)
	assert.Len(t, img.Pix, 16)
}
