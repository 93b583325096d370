// Package raster - in-memory pixel grid and the concurrent spatial filters
// that operate on it.
//
// Every filter partitions the image rows across a caller-supplied number of
// worker goroutines, waits for all of them to finish, and only then installs
// the result. Filters that change the buffer shape (convolution, Sobel,
// rotation, scaling) write into a freshly allocated destination and swap it
// in after the join; brightness adjusts the buffer in place, which is safe
// because row partitions never overlap.
package raster

import (
	"github.com/pkg/errors"
)

// Channel-count variants supported by the engine.
const (
	// GrayChannels is the sample count of a grayscale image.
	GrayChannels = 1
	// RGBChannels is the sample count of an RGB image.
	RGBChannels = 3
)

// maxSamples bounds a single buffer allocation. Guards against absurd
// dimensions producing multi-gigabyte destination buffers mid-filter.
const maxSamples = 1 << 30

// Sentinel errors returned by the filter entry points. Callers can classify
// failures with errors.Is; wrapped messages carry the offending values.
var (
	// ErrNoImage is returned when an operation is invoked on a nil or empty image.
	ErrNoImage = errors.New("no image loaded")
	// ErrInvalidParameter is returned when a filter parameter fails validation.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrAllocation is returned when a destination buffer cannot be allocated.
	ErrAllocation = errors.New("allocation failed")
)

// Image is an addressable pixel grid: Height rows of Width pixels, each with
// Channels samples in [0, 255]. Samples live in one contiguous arena indexed
// (y*Width+x)*Channels+c, so there are no per-row allocations to partially
// fail or free.
type Image struct {
	// Width is the number of pixels per row. Always > 0 for a loaded image.
	Width int `json:"width" yaml:"width"`
	// Height is the number of rows. Always > 0 for a loaded image.
	Height int `json:"height" yaml:"height"`
	// Channels is 1 (grayscale) or 3 (RGB).
	Channels int `json:"channels" yaml:"channels"`
	// Pix holds Width*Height*Channels samples in row-major order.
	Pix []uint8 `json:"-" yaml:"-"`
}

// NewImage allocates a zeroed pixel grid with the given shape.
//
// Arguments:
// - width: Pixels per row, must be > 0.
// - height: Number of rows, must be > 0.
// - channels: Samples per pixel, must be 1 or 3.
//
// Returns:
// - *Image: The allocated image.
// - error: ErrInvalidParameter for a bad shape, ErrAllocation when the
//   requested buffer exceeds the supported size.
func NewImage(width, height, channels int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "dimensions must be positive, got %dx%d", width, height)
	}
	if channels != GrayChannels && channels != RGBChannels {
		return nil, errors.Wrapf(ErrInvalidParameter, "channels must be 1 or 3, got %d", channels)
	}
	samples := width * height * channels
	if samples > maxSamples || samples/channels/height != width {
		return nil, errors.Wrapf(ErrAllocation, "%dx%dx%d buffer exceeds supported size", width, height, channels)
	}
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, samples),
	}, nil
}

// Empty reports whether the image holds no pixel data.
func (img *Image) Empty() bool {
	return img == nil || len(img.Pix) == 0
}

// Pixels returns the total pixel count (Width * Height).
func (img *Image) Pixels() int {
	return img.Width * img.Height
}

// Offset returns the arena index of sample (x, y, c).
func (img *Image) Offset(x, y, c int) int {
	return (y*img.Width+x)*img.Channels + c
}

// At returns the sample at (x, y, c). Coordinates must be in bounds.
func (img *Image) At(x, y, c int) uint8 {
	return img.Pix[(y*img.Width+x)*img.Channels+c]
}

// Set writes the sample at (x, y, c). Coordinates must be in bounds.
func (img *Image) Set(x, y, c int, v uint8) {
	img.Pix[(y*img.Width+x)*img.Channels+c] = v
}

// Clone returns a deep copy of the image. The copy shares no memory with the
// original, so either side can be filtered without affecting the other.
func (img *Image) Clone() *Image {
	pix := make([]uint8, len(img.Pix))
	copy(pix, img.Pix)
	return &Image{
		Width:    img.Width,
		Height:   img.Height,
		Channels: img.Channels,
		Pix:      pix,
	}
}

// Grayscale converts an RGB image to a single-channel image in place using
// the ITU-R BT.601 luma weights 0.299R + 0.587G + 0.114B, rounded to the
// nearest integer. A grayscale image is left untouched.
//
// The conversion is a sequential pass: it shrinks the buffer rather than
// producing a second full-size copy, so it runs before any workers spawn.
func (img *Image) Grayscale() {
	if img.Channels != RGBChannels {
		return
	}
	gray := make([]uint8, img.Width*img.Height)
	for i := range gray {
		r := float32(img.Pix[i*RGBChannels])
		g := float32(img.Pix[i*RGBChannels+1])
		b := float32(img.Pix[i*RGBChannels+2])
		gray[i] = uint8(0.299*r + 0.587*g + 0.114*b + 0.5)
	}
	img.Pix = gray
	img.Channels = GrayChannels
}

// clampU8 clamps v to the valid sample range [0, 255].
func clampU8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
