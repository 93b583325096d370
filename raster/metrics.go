package raster

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Stats captures the wall-clock cost of one filter invocation. Durations are
// measured with the monotonic wall clock, not CPU time, so parallel speedup
// is visible to the benchmarking layer (CPU time sums across workers and
// would hide it).
type Stats struct {
	// Filter is the name of the operation that produced these stats.
	Filter string `json:"filter" yaml:"filter"`
	// Threads is the effective worker count (after row clamping).
	Threads int `json:"threads" yaml:"threads"`
	// Pixels is the number of destination pixels processed.
	Pixels int `json:"pixels" yaml:"pixels"`
	// Elapsed is the wall-clock duration of the whole invocation.
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

// PixelsPerSecond returns the invocation throughput.
func (s Stats) PixelsPerSecond() float64 {
	secs := s.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(s.Pixels) / secs
}

// newStats finalizes the metrics for a filter invocation and emits them at
// debug level for callers that run with verbose logging.
func newStats(filter string, threads, pixels int, started time.Time) Stats {
	s := Stats{
		Filter:  filter,
		Threads: threads,
		Pixels:  pixels,
		Elapsed: time.Since(started),
	}
	logrus.WithFields(logrus.Fields{
		"filter":  s.Filter,
		"threads": s.Threads,
		"pixels":  s.Pixels,
		"elapsed": s.Elapsed,
	}).Debug("filter completed")
	return s
}
