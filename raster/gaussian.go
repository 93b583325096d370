package raster

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// Kernel size and sigma bounds accepted by NewGaussianKernel.
const (
	MinKernelSize = 3
	MaxKernelSize = 15
	MaxSigma      = 10.0
)

// Kernel is a square, odd-sized convolution weight matrix indexed [y][x].
type Kernel [][]float32

// Size returns the kernel's edge length.
func (k Kernel) Size() int {
	return len(k)
}

// Radius returns the distance from the kernel center to its edge.
func (k Kernel) Radius() int {
	return len(k) / 2
}

// Sum returns the total of all kernel weights. A normalized smoothing kernel
// sums to 1 so that mean image brightness is preserved.
func (k Kernel) Sum() float32 {
	var sum float32
	for _, row := range k {
		for _, w := range row {
			sum += w
		}
	}
	return sum
}

// valid reports whether the kernel is non-empty, square, and odd-sized.
func (k Kernel) valid() bool {
	size := len(k)
	if size == 0 || size%2 == 0 {
		return false
	}
	for _, row := range k {
		if len(row) != size {
			return false
		}
	}
	return true
}

// NewGaussianKernel generates a normalized Gaussian weight matrix.
//
// The weight at offset (dx, dy) from the center is exp(-(dx²+dy²)/(2σ²));
// every entry is then divided by the total so the kernel sums to 1. Each
// validation failure is reported as a distinct error so the caller can tell
// an even size from an out-of-range size from a bad sigma.
//
// Arguments:
// - size: Kernel edge length, odd, in [3, 15].
// - sigma: Gaussian standard deviation, in (0, 10].
//
// Returns:
// - Kernel: The normalized size x size weight matrix.
// - error: ErrInvalidParameter describing the violated constraint.
func NewGaussianKernel(size int, sigma float32) (Kernel, error) {
	if size < MinKernelSize || size > MaxKernelSize {
		return nil, errors.Wrapf(ErrInvalidParameter, "kernel size must be in [%d, %d], got %d", MinKernelSize, MaxKernelSize, size)
	}
	if size%2 == 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "kernel size must be odd, got %d", size)
	}
	if sigma <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "sigma must be positive, got %g", sigma)
	}
	if sigma > MaxSigma {
		return nil, errors.Wrapf(ErrInvalidParameter, "sigma must be <= %g, got %g", float32(MaxSigma), sigma)
	}

	center := size / 2
	twoSigmaSq := 2 * sigma * sigma
	kernel := make(Kernel, size)
	var sum float32
	for y := 0; y < size; y++ {
		kernel[y] = make([]float32, size)
		for x := 0; x < size; x++ {
			dx := float32(x - center)
			dy := float32(y - center)
			w := math32.Exp(-(dx*dx + dy*dy) / twoSigmaSq)
			kernel[y][x] = w
			sum += w
		}
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			kernel[y][x] /= sum
		}
	}
	return kernel, nil
}
