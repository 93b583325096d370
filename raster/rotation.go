package raster

import (
	"math"
	"time"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// rotatedBounds returns the size of the axis-aligned bounding box enclosing
// the source rectangle rotated by angleRadians about the origin. The output
// is never smaller than the input, so no pixel is cropped.
func rotatedBounds(width, height int, angleRadians float64) (int, int) {
	cos := math.Cos(angleRadians)
	sin := math.Sin(angleRadians)

	corners := [4][2]float64{
		{0, 0},
		{float64(width), 0},
		{0, float64(height)},
		{float64(width), float64(height)},
	}

	var minX, maxX, minY, maxY float64
	for i, corner := range corners {
		rx := corner[0]*cos - corner[1]*sin
		ry := corner[0]*sin + corner[1]*cos
		if i == 0 {
			minX, maxX, minY, maxY = rx, rx, ry, ry
			continue
		}
		minX = math.Min(minX, rx)
		maxX = math.Max(maxX, rx)
		minY = math.Min(minY, ry)
		maxY = math.Max(maxY, ry)
	}

	// The epsilon keeps trig jitter at axis-aligned angles (cos 90° is not
	// exactly zero in floating point) from ceiling up a spurious extra
	// row or column.
	const eps = 1e-6
	return int(math.Ceil(maxX - minX - eps)), int(math.Ceil(maxY - minY - eps))
}

// Rotate rotates the image by angleDegrees, replacing it with a new buffer
// sized to the rotated bounding box. A positive angle rotates the image
// content counter-clockwise on screen. Output channel count equals input
// channel count.
//
// Every destination pixel is translated to a frame centered on the
// destination grid, inverse-mapped through the rotation to the corresponding
// source-centered coordinate, and bilinearly sampled there; coordinates that
// fall outside the source are clamped to the nearest edge pixel. Inverse
// mapping guarantees every destination pixel gets a value - a forward
// mapping would leave holes.
//
// Arguments:
// - img: Image to rotate, replaced in place on success.
// - angleDegrees: Rotation angle; any real value is accepted.
// - threads: Requested worker count, must be >= 1.
//
// Returns:
// - Stats: Wall-clock metrics for the invocation.
// - error: ErrNoImage, ErrInvalidParameter, or ErrAllocation.
func Rotate(img *Image, angleDegrees float32, threads int) (Stats, error) {
	if img.Empty() {
		return Stats{}, ErrNoImage
	}
	if threads < 1 {
		return Stats{}, errors.Wrapf(ErrInvalidParameter, "thread count must be >= 1, got %d", threads)
	}

	started := time.Now()
	radians := float64(angleDegrees) * math.Pi / 180

	newWidth, newHeight := rotatedBounds(img.Width, img.Height, radians)
	dst, err := NewImage(newWidth, newHeight, img.Channels)
	if err != nil {
		return Stats{}, err
	}

	cos := math32.Cos(float32(radians))
	sin := math32.Sin(float32(radians))

	// Pixel-grid centers: (dim-1)/2 puts axis-aligned rotations exactly on
	// lattice points, so 0° and 90° reproduce samples without blur.
	srcCx := float32(img.Width-1) / 2
	srcCy := float32(img.Height-1) / 2
	dstCx := float32(newWidth-1) / 2
	dstCy := float32(newHeight-1) / 2

	ranges := Partition(newHeight, threads)
	err = RunRows(ranges, func(rr RowRange) error {
		for y := rr.Start; y < rr.End; y++ {
			dy := float32(y) - dstCy
			for x := 0; x < newWidth; x++ {
				dx := float32(x) - dstCx

				// Inverse of a screen-CCW rotation. The y axis points down
				// in raster coordinates, which flips the usual sign
				// convention: this is the matrix that sends the destination
				// frame back onto the source.
				srcX := dx*cos - dy*sin + srcCx
				srcY := dx*sin + dy*cos + srcCy

				for c := 0; c < img.Channels; c++ {
					dst.Set(x, y, c, bilinearSample(img, srcX, srcY, c))
				}
			}
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	img.Width = dst.Width
	img.Height = dst.Height
	img.Pix = dst.Pix
	return newStats("rotation", len(ranges), img.Pixels(), started), nil
}
