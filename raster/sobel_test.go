package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSobelUniformImageIsBlack checks that a flat region has no gradient:
// every magnitude must be zero.
func TestSobelUniformImageIsBlack(t *testing.T) {
	for _, v := range []uint8{0, 128, 255} {
		img := uniformImage(t, 9, 7, GrayChannels, v)
		_, err := Sobel(img, 3)
		require.NoError(t, err)
		for i, got := range img.Pix {
			require.Equal(t, uint8(0), got, "value=%d sample=%d", v, i)
		}
	}
}

// TestSobelCenterSpike pins the exact magnitudes produced by the fixed
// kernels on a 3x3 image with a single bright center pixel, under the edge
// replication rule.
//
// With center value 100, the center pixel sees only itself under the zero
// kernel center weight, each edge-adjacent pixel picks the center up through
// a +-2 weight (|G| = 200 on one axis), and each corner picks it up through
// the diagonal +-1 weights of both kernels (sqrt(100^2+100^2) = 141).
func TestSobelCenterSpike(t *testing.T) {
	img := uniformImage(t, 3, 3, GrayChannels, 0)
	img.Set(1, 1, 0, 100)

	_, err := Sobel(img, 2)
	require.NoError(t, err)

	want := []uint8{
		141, 200, 141,
		200, 0, 200,
		141, 200, 141,
	}
	assert.Equal(t, want, img.Pix)
}

func TestSobelConvertsRGBToGrayscale(t *testing.T) {
	img := uniformImage(t, 6, 6, RGBChannels, 90)
	_, err := Sobel(img, 4)
	require.NoError(t, err)

	assert.Equal(t, GrayChannels, img.Channels, "Sobel output is single-channel")
	assert.Equal(t, 6, img.Width)
	assert.Equal(t, 6, img.Height)
	assert.Len(t, img.Pix, 36)
}

// TestSobelVerticalEdge checks that a hard vertical boundary yields strong
// magnitudes along the boundary columns and nothing in the flat interior.
func TestSobelVerticalEdge(t *testing.T) {
	img := uniformImage(t, 8, 8, GrayChannels, 0)
	for y := 0; y < 8; y++ {
		for x := 4; x < 8; x++ {
			img.Set(x, y, 0, 255)
		}
	}

	_, err := Sobel(img, 3)
	require.NoError(t, err)

	assert.Equal(t, uint8(255), img.At(3, 4, 0), "boundary column saturates")
	assert.Equal(t, uint8(255), img.At(4, 4, 0))
	assert.Equal(t, uint8(0), img.At(1, 4, 0), "flat region away from the edge stays black")
	assert.Equal(t, uint8(0), img.At(6, 4, 0))
}

func TestSobelThreadCountInvariance(t *testing.T) {
	base := uniformImage(t, 15, 12, GrayChannels, 0)
	for i := range base.Pix {
		base.Pix[i] = uint8((i * 17) % 256)
	}

	single := base.Clone()
	_, err := Sobel(single, 1)
	require.NoError(t, err)

	for _, threads := range []int{2, 4, 12, 16} {
		img := base.Clone()
		_, err := Sobel(img, threads)
		require.NoError(t, err)
		assert.Equal(t, single.Pix, img.Pix, "threads=%d", threads)
	}
}

func TestSobelErrors(t *testing.T) {
	_, err := Sobel(&Image{}, 2)
	assert.ErrorIs(t, err, ErrNoImage)

	img := uniformImage(t, 3, 3, GrayChannels, 1)
	_, err = Sobel(img, -1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
