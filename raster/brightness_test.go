package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBrightnessExample pins the documented example: a 4x4 grayscale image
// of value 100, delta +50, three workers.
func TestBrightnessExample(t *testing.T) {
	img := uniformImage(t, 4, 4, GrayChannels, 100)

	stats, err := Brightness(img, 50, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Threads)
	assert.Equal(t, 16, stats.Pixels)

	for i, v := range img.Pix {
		require.Equal(t, uint8(150), v, "sample %d", i)
	}
}

func TestBrightnessZeroDeltaIsIdentity(t *testing.T) {
	img := uniformImage(t, 8, 8, RGBChannels, 37)
	img.Set(3, 4, 1, 220)
	want := img.Clone()

	_, err := Brightness(img, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, want.Pix, img.Pix, "delta 0 must not change any sample")
}

// TestBrightnessRoundTrip applies +d then -d where no saturation occurs and
// expects the original values back.
func TestBrightnessRoundTrip(t *testing.T) {
	img := uniformImage(t, 5, 5, GrayChannels, 100)
	want := img.Clone()

	_, err := Brightness(img, 40, 2)
	require.NoError(t, err)
	_, err = Brightness(img, -40, 2)
	require.NoError(t, err)
	assert.Equal(t, want.Pix, img.Pix)
}

func TestBrightnessSaturates(t *testing.T) {
	img := uniformImage(t, 3, 3, GrayChannels, 250)
	_, err := Brightness(img, 100, 2)
	require.NoError(t, err)
	for _, v := range img.Pix {
		assert.Equal(t, uint8(255), v)
	}

	_, err = Brightness(img, -300, 2)
	require.NoError(t, err)
	for _, v := range img.Pix {
		assert.Equal(t, uint8(0), v, "out-of-range delta is accepted and saturates")
	}
}

func TestBrightnessThreadCountInvariance(t *testing.T) {
	base := uniformImage(t, 13, 9, RGBChannels, 0)
	for i := range base.Pix {
		base.Pix[i] = uint8((i * 31) % 256)
	}

	single := base.Clone()
	_, err := Brightness(single, 25, 1)
	require.NoError(t, err)

	for _, threads := range []int{2, 3, 8, 16} {
		img := base.Clone()
		_, err := Brightness(img, 25, threads)
		require.NoError(t, err)
		assert.Equal(t, single.Pix, img.Pix, "output must be independent of thread count (threads=%d)", threads)
	}
}

func TestBrightnessErrors(t *testing.T) {
	_, err := Brightness(&Image{}, 10, 2)
	assert.ErrorIs(t, err, ErrNoImage)

	img := uniformImage(t, 2, 2, GrayChannels, 10)
	_, err = Brightness(img, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
