// Package benchmark - functionality for measuring filter throughput and
// parallel speedup across worker counts.
package benchmark

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rasterlab/go-raster/config"
)

// FilterKind identifies one of the engine's filters in a scenario.
type FilterKind string

// Filters the suite knows how to drive.
const (
	FilterBrightness   FilterKind = "brightness"
	FilterGaussianBlur FilterKind = "gaussian_blur"
	FilterSobel        FilterKind = "sobel"
	FilterRotation     FilterKind = "rotation"
	FilterScaling      FilterKind = "scaling"
)

// Resolution names an image size scenarios run against.
type Resolution struct {
	Width  int    `json:"width"  yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Name   string `json:"name"   yaml:"name"`
}

// CommonResolutions covers the sizes the comparison tables are usually run
// at.
var CommonResolutions = []Resolution{
	{Width: 256, Height: 256, Name: "256x256"},
	{Width: 512, Height: 512, Name: "512x512"},
	{Width: 1024, Height: 1024, Name: "1024x1024"},
	{Width: 1920, Height: 1080, Name: "1080p"},
}

// Scenario defines a specific benchmark configuration: one filter at one
// worker count, repeated Iterations times after WarmupRuns discarded runs.
type Scenario struct {
	Name       string     `json:"name"        yaml:"name"`
	Filter     FilterKind `json:"filter"      yaml:"filter"`
	Threads    int        `json:"threads"     yaml:"threads"`
	Resolution Resolution `json:"resolution"  yaml:"resolution"`
	Iterations int        `json:"iterations"  yaml:"iterations"`
	WarmupRuns int        `json:"warmup_runs" yaml:"warmup_runs"`

	// Filter parameters. Only the fields relevant to Filter are consulted.
	BrightnessDelta int     `json:"brightness_delta,omitempty" yaml:"brightness_delta,omitempty"`
	KernelSize      int     `json:"kernel_size,omitempty"      yaml:"kernel_size,omitempty"`
	Sigma           float32 `json:"sigma,omitempty"            yaml:"sigma,omitempty"`
	Angle           float32 `json:"angle,omitempty"            yaml:"angle,omitempty"`
	TargetWidth     int     `json:"target_width,omitempty"     yaml:"target_width,omitempty"`
	TargetHeight    int     `json:"target_height,omitempty"    yaml:"target_height,omitempty"`
}

// Config drives a whole suite run.
type Config struct {
	// Runs is the number of timed iterations per scenario.
	Runs int `json:"runs" yaml:"runs"`
	// WarmupRuns is the number of untimed iterations before measuring.
	WarmupRuns int `json:"warmup_runs" yaml:"warmup_runs"`
	// ThreadCounts is the worker-count axis of the scenario matrix.
	ThreadCounts []int `json:"thread_counts" yaml:"thread_counts"`
	// OutputDir receives the JSON results file.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	// TestImagesPath points at the corpus directory.
	TestImagesPath string `json:"test_images_path" yaml:"test_images_path"`
}

// DefaultConfig mirrors the classic comparison run: 1, 2, 4, and 8 workers,
// three timed runs each after one warmup.
func DefaultConfig() Config {
	return Config{
		Runs:         3,
		WarmupRuns:   1,
		ThreadCounts: []int{1, 2, 4, 8},
		OutputDir:    "./benchmark_results",
	}
}

// Validate checks the configuration before a run.
func (c Config) Validate() error {
	if c.Runs < 1 {
		return errors.Errorf("runs must be >= 1, got %d", c.Runs)
	}
	if len(c.ThreadCounts) == 0 {
		return errors.New("at least one thread count is required")
	}
	for _, threads := range c.ThreadCounts {
		if err := (config.Config{Threads: threads}).Validate(); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfig reads a YAML benchmark configuration.
//
// Arguments:
// - path: Path to the YAML file.
//
// Returns:
// - Config: The parsed configuration with defaults filled in.
// - error: Error if the file cannot be read, parsed, or validated.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read benchmark config %s", path)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "failed to parse benchmark config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
