package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/pkg/errors"
)

// MemoryMetrics captures heap usage around a scenario run.
type MemoryMetrics struct {
	AllocBytes      uint64 `json:"alloc_bytes"       yaml:"alloc_bytes"`
	TotalAllocBytes uint64 `json:"total_alloc_bytes" yaml:"total_alloc_bytes"`
	NumGC           uint32 `json:"num_gc"            yaml:"num_gc"`
}

// PerformanceMetrics aggregates the timed runs of one scenario.
type PerformanceMetrics struct {
	Scenario  Scenario  `json:"scenario"  yaml:"scenario"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Runs      int       `json:"runs"      yaml:"runs"`

	TotalDuration time.Duration `json:"total_duration_ns" yaml:"total_duration_ns"`
	AvgDuration   time.Duration `json:"avg_duration_ns"   yaml:"avg_duration_ns"`
	MinDuration   time.Duration `json:"min_duration_ns"   yaml:"min_duration_ns"`
	MaxDuration   time.Duration `json:"max_duration_ns"   yaml:"max_duration_ns"`

	PixelsPerSecond float64 `json:"pixels_per_second" yaml:"pixels_per_second"`

	// Speedup is single-worker average duration divided by this scenario's
	// average. Efficiency is speedup over worker count, as a percentage.
	// Both are zero until the suite has a one-worker baseline to compare
	// against.
	Speedup    float64 `json:"speedup"    yaml:"speedup"`
	Efficiency float64 `json:"efficiency" yaml:"efficiency"`

	Memory MemoryMetrics `json:"memory" yaml:"memory"`
}

// aggregateRuns folds per-run durations into a PerformanceMetrics record.
//
// Arguments:
// - scenario: The scenario the runs belong to.
// - durations: Wall-clock duration of each timed run. Must be non-empty.
// - pixels: Pixel count of the processed image.
//
// Returns:
// - PerformanceMetrics: The aggregated record, without speedup figures.
func aggregateRuns(scenario Scenario, durations []time.Duration, pixels int) PerformanceMetrics {
	total := time.Duration(0)
	minDur := durations[0]
	maxDur := durations[0]
	for _, d := range durations {
		total += d
		if d < minDur {
			minDur = d
		}
		if d > maxDur {
			maxDur = d
		}
	}
	avg := total / time.Duration(len(durations))

	var pps float64
	if avg > 0 {
		pps = float64(pixels) / avg.Seconds()
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return PerformanceMetrics{
		Scenario:        scenario,
		Timestamp:       time.Now(),
		Runs:            len(durations),
		TotalDuration:   total,
		AvgDuration:     avg,
		MinDuration:     minDur,
		MaxDuration:     maxDur,
		PixelsPerSecond: pps,
		Memory: MemoryMetrics{
			AllocBytes:      mem.Alloc,
			TotalAllocBytes: mem.TotalAlloc,
			NumGC:           mem.NumGC,
		},
	}
}

// SaveResults writes the collected metrics to a timestamped JSON file under
// outputDir.
//
// Arguments:
// - outputDir: Directory for the results file. Created if missing.
// - results: Metrics to persist.
//
// Returns:
// - string: Path of the written file.
// - error: Error if the directory or file cannot be written.
func SaveResults(outputDir string, results []PerformanceMetrics) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "failed to create output directory %s", outputDir)
	}

	path := filepath.Join(outputDir, fmt.Sprintf("benchmark_%s.json", time.Now().Format("20060102_150405")))
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to encode benchmark results")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", path)
	}
	return path, nil
}
