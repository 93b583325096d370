package raster

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// Fixed Sobel gradient kernels. Gx responds to vertical edges, Gy to
// horizontal ones. These are constants of the operator and are never
// regenerated per call.
var (
	sobelX = [3][3]float32{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]float32{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// Sobel applies Sobel edge detection, replacing the image with a
// single-channel edge-magnitude map.
//
// An RGB input is first converted to grayscale with a sequential pass (the
// conversion is cheap relative to the gradient computation and shrinks the
// buffer before workers spawn). The threaded stage computes per-pixel Gx and
// Gy over an edge-replicated 3x3 neighborhood into float32 gradient planes;
// after all gradient workers join, a final reduction writes
// sqrt(Gx²+Gy²), rounded and clamped to [0, 255], into the buffer.
//
// Arguments:
// - img: Image to process; becomes single-channel on success.
// - threads: Requested worker count, must be >= 1.
//
// Returns:
// - Stats: Wall-clock metrics for the invocation.
// - error: ErrNoImage or ErrInvalidParameter.
func Sobel(img *Image, threads int) (Stats, error) {
	if img.Empty() {
		return Stats{}, ErrNoImage
	}
	if threads < 1 {
		return Stats{}, errors.Wrapf(ErrInvalidParameter, "thread count must be >= 1, got %d", threads)
	}

	started := time.Now()
	img.Grayscale()

	// Gradients are kept in float32 planes so no precision is lost before
	// the magnitude reduction.
	gradX := make([]float32, img.Width*img.Height)
	gradY := make([]float32, img.Width*img.Height)
	ranges := Partition(img.Height, threads)

	err := RunRows(ranges, func(rr RowRange) error {
		for y := rr.Start; y < rr.End; y++ {
			for x := 0; x < img.Width; x++ {
				var sumX, sumY float32
				for ky := 0; ky < 3; ky++ {
					iy := clampIndex(y+ky-1, img.Height)
					for kx := 0; kx < 3; kx++ {
						ix := clampIndex(x+kx-1, img.Width)
						p := float32(img.Pix[iy*img.Width+ix])
						sumX += p * sobelX[ky][kx]
						sumY += p * sobelY[ky][kx]
					}
				}
				gradX[y*img.Width+x] = sumX
				gradY[y*img.Width+x] = sumY
			}
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	for i := range img.Pix {
		magnitude := math32.Sqrt(gradX[i]*gradX[i] + gradY[i]*gradY[i])
		img.Pix[i] = clampU8(int(magnitude + 0.5))
	}
	return newStats("sobel", len(ranges), img.Pixels(), started), nil
}
