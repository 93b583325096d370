package raster

// RowRange is a half-open range of image rows [Start, End) assigned to one
// worker. Ranges produced by Partition are contiguous, non-overlapping, and
// together cover every row exactly once.
type RowRange struct {
	// Start is the first row of the range, inclusive.
	Start int
	// End is the row after the last row of the range.
	End int
}

// Rows returns the number of rows in the range.
func (r RowRange) Rows() int {
	return r.End - r.Start
}

// Partition splits totalRows rows into min(threads, totalRows) contiguous
// ranges.
//
// The first range holds ceil(totalRows/threads) rows and each following
// range holds the ceiling of what remains over the remaining workers, so the
// split stays balanced and no range is ever empty (one row minimum per
// worker). When threads exceeds totalRows the effective thread count is
// clamped to totalRows. The result is deterministic: the same inputs always
// produce the same ranges, which keeps filter output and benchmark timings
// reproducible.
//
// Arguments:
// - totalRows: Number of rows to cover, must be >= 1.
// - threads: Requested worker count, must be >= 1.
//
// Returns:
// - []RowRange: Ordered ranges whose union is exactly [0, totalRows).
func Partition(totalRows, threads int) []RowRange {
	if totalRows < 1 || threads < 1 {
		return nil
	}
	if threads > totalRows {
		threads = totalRows
	}

	ranges := make([]RowRange, 0, threads)
	start := 0
	for i := 0; i < threads && start < totalRows; i++ {
		remaining := threads - i
		size := (totalRows - start + remaining - 1) / remaining
		ranges = append(ranges, RowRange{Start: start, End: start + size})
		start += size
	}
	return ranges
}
