package raster

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Brightness shifts every sample of the image by delta, clamping to
// [0, 255]. The adjustment happens in place: each worker owns a disjoint
// range of rows, so no two workers ever write the same memory.
//
// A delta outside [-255, 255] is accepted but logged as a warning, since it
// saturates every sample immediately. A delta of 0 still executes the full
// parallel pass, which the benchmark suite relies on to measure pure
// fan-out/join overhead.
//
// Arguments:
// - img: Image to adjust, modified in place.
// - delta: Additive shift applied to every sample.
// - threads: Requested worker count, must be >= 1.
//
// Returns:
// - Stats: Wall-clock metrics for the invocation.
// - error: ErrNoImage or ErrInvalidParameter; the image is untouched on error.
func Brightness(img *Image, delta, threads int) (Stats, error) {
	if img.Empty() {
		return Stats{}, ErrNoImage
	}
	if threads < 1 {
		return Stats{}, errors.Wrapf(ErrInvalidParameter, "thread count must be >= 1, got %d", threads)
	}
	if delta < -255 || delta > 255 {
		logrus.WithField("delta", delta).Warn("brightness delta outside [-255, 255], effect saturates at the bound")
	}

	started := time.Now()
	rowLen := img.Width * img.Channels
	ranges := Partition(img.Height, threads)

	err := RunRows(ranges, func(rr RowRange) error {
		for i := rr.Start * rowLen; i < rr.End*rowLen; i++ {
			img.Pix[i] = clampU8(int(img.Pix[i]) + delta)
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}
	return newStats("brightness", len(ranges), img.Pixels(), started), nil
}
