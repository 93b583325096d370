package raster

import (
	"time"

	"github.com/pkg/errors"
)

// Convolve applies a 2D kernel to the image, replacing its buffer with the
// convolved result. Dimensions and channel count are unchanged.
//
// For each destination sample the kernel footprint is summed over the
// source with edge replication: out-of-bounds neighbor lookups are clamped
// to the nearest valid row/column rather than zero-padded, so edges keep
// their energy. Sums are rounded to nearest (+0.5, truncate) and clamped to
// [0, 255].
//
// The source buffer is read-only for the whole pass. The destination is
// allocated up front by the invoking goroutine and only swapped in after
// every worker has joined successfully, so a failed invocation leaves the
// image exactly as it was.
//
// Arguments:
// - img: Image to convolve, replaced in place on success.
// - kernel: Square odd-sized weight matrix.
// - threads: Requested worker count, must be >= 1.
//
// Returns:
// - Stats: Wall-clock metrics for the invocation.
// - error: ErrNoImage, ErrInvalidParameter, or ErrAllocation.
func Convolve(img *Image, kernel Kernel, threads int) (Stats, error) {
	if img.Empty() {
		return Stats{}, ErrNoImage
	}
	if !kernel.valid() {
		return Stats{}, errors.Wrap(ErrInvalidParameter, "kernel must be square and odd-sized")
	}
	if threads < 1 {
		return Stats{}, errors.Wrapf(ErrInvalidParameter, "thread count must be >= 1, got %d", threads)
	}

	started := time.Now()
	dst, err := NewImage(img.Width, img.Height, img.Channels)
	if err != nil {
		return Stats{}, err
	}

	radius := kernel.Radius()
	size := kernel.Size()
	ranges := Partition(img.Height, threads)

	err = RunRows(ranges, func(rr RowRange) error {
		for y := rr.Start; y < rr.End; y++ {
			for x := 0; x < img.Width; x++ {
				for c := 0; c < img.Channels; c++ {
					var sum float32
					for ky := 0; ky < size; ky++ {
						iy := clampIndex(y+ky-radius, img.Height)
						for kx := 0; kx < size; kx++ {
							ix := clampIndex(x+kx-radius, img.Width)
							sum += float32(img.At(ix, iy, c)) * kernel[ky][kx]
						}
					}
					dst.Set(x, y, c, clampU8(int(sum+0.5)))
				}
			}
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	img.Pix = dst.Pix
	return newStats("convolution", len(ranges), img.Pixels(), started), nil
}

// GaussianBlur generates a normalized Gaussian kernel and convolves the
// image with it. See NewGaussianKernel for the accepted parameter ranges.
//
// Arguments:
// - img: Image to blur, replaced in place on success.
// - size: Kernel edge length, odd, in [3, 15].
// - sigma: Gaussian standard deviation, in (0, 10].
// - threads: Requested worker count, must be >= 1.
//
// Returns:
// - Stats: Wall-clock metrics for the invocation.
// - error: ErrNoImage, ErrInvalidParameter, or ErrAllocation.
func GaussianBlur(img *Image, size int, sigma float32, threads int) (Stats, error) {
	kernel, err := NewGaussianKernel(size, sigma)
	if err != nil {
		return Stats{}, err
	}
	stats, err := Convolve(img, kernel, threads)
	if err != nil {
		return Stats{}, err
	}
	stats.Filter = "gaussian_blur"
	return stats, nil
}

// clampIndex clamps i to the valid index range [0, n) for edge replication.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
