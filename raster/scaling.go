package raster

import (
	"time"

	"github.com/pkg/errors"
)

// Resize scales the image to newWidth x newHeight via bilinear resampling,
// replacing its buffer with the result.
//
// Destination coordinates map to source coordinates through independent X
// and Y scale factors srcWidth/newWidth and srcHeight/newHeight; each
// destination pixel samples the source bilinearly at (x·sx, y·sy) with edge
// clamping. Scaling an image to its own dimensions reproduces it exactly:
// the factors are 1.0, so every sample point lands on a source pixel.
//
// Arguments:
// - img: Image to scale, replaced in place on success.
// - newWidth: Target width, must be >= 1.
// - newHeight: Target height, must be >= 1.
// - threads: Requested worker count, must be >= 1.
//
// Returns:
// - Stats: Wall-clock metrics for the invocation.
// - error: ErrNoImage, ErrInvalidParameter, or ErrAllocation.
func Resize(img *Image, newWidth, newHeight, threads int) (Stats, error) {
	if img.Empty() {
		return Stats{}, ErrNoImage
	}
	if newWidth < 1 || newHeight < 1 {
		return Stats{}, errors.Wrapf(ErrInvalidParameter, "target dimensions must be positive, got %dx%d", newWidth, newHeight)
	}
	if threads < 1 {
		return Stats{}, errors.Wrapf(ErrInvalidParameter, "thread count must be >= 1, got %d", threads)
	}

	started := time.Now()
	dst, err := NewImage(newWidth, newHeight, img.Channels)
	if err != nil {
		return Stats{}, err
	}

	scaleX := float32(img.Width) / float32(newWidth)
	scaleY := float32(img.Height) / float32(newHeight)

	ranges := Partition(newHeight, threads)
	err = RunRows(ranges, func(rr RowRange) error {
		for y := rr.Start; y < rr.End; y++ {
			srcY := float32(y) * scaleY
			for x := 0; x < newWidth; x++ {
				srcX := float32(x) * scaleX
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
	return newStats("scaling", len(ranges), img.Pixels(), started), nil
}
