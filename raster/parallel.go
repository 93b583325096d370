package raster

import (
	"golang.org/x/sync/errgroup"
)

// RunRows fans work out across the given row ranges, one goroutine per
// range, and blocks until every worker has finished (barrier join).
//
// If any worker returns an error the whole invocation fails with the first
// error observed, but only after all workers have been joined - no worker is
// ever abandoned mid-pass, so a caller that sees an error knows nothing is
// still writing into its buffers and can discard the partial destination
// safely.
//
// Arguments:
// - ranges: Row ranges to process, typically from Partition.
// - work: Per-range worker. Workers on distinct ranges run concurrently and
//   must only write rows inside their own range.
//
// Returns:
// - error: The first worker error, or nil when every worker succeeded.
func RunRows(ranges []RowRange, work func(RowRange) error) error {
	var g errgroup.Group
	for _, rr := range ranges {
		rr := rr
		g.Go(func() error {
			return work(rr)
		})
	}
	return g.Wait()
}
