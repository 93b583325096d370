package benchmark

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/rasterlab/go-raster/raster"
)

// Suite runs scenarios against a prepared image and collects metrics.
type Suite struct {
	cfg Config

	mu      sync.Mutex
	results []PerformanceMetrics
}

// NewSuite creates a suite for the given configuration.
//
// Arguments:
// - cfg: Suite configuration. Must validate.
//
// Returns:
// - *Suite: The suite.
// - error: Error if the configuration is invalid.
func NewSuite(cfg Config) (*Suite, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Suite{cfg: cfg}, nil
}

// Results returns a copy of the metrics collected so far.
func (s *Suite) Results() []PerformanceMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PerformanceMetrics, len(s.results))
	copy(out, s.results)
	return out
}

// RunScenario executes one scenario against src and records its metrics.
// The source image is cloned for every iteration so in-place filters never
// accumulate across runs.
//
// Arguments:
// - scenario: The scenario to run.
// - src: Prepared image at the scenario's resolution.
//
// Returns:
// - PerformanceMetrics: The aggregated metrics for the scenario.
// - error: Error if any filter invocation fails.
func (s *Suite) RunScenario(scenario Scenario, src *raster.Image) (PerformanceMetrics, error) {
	log.WithFields(log.Fields{
		"scenario": scenario.Name,
		"filter":   scenario.Filter,
		"threads":  scenario.Threads,
	}).Info("running benchmark scenario")

	for i := 0; i < scenario.WarmupRuns; i++ {
		if _, err := applyFilter(scenario, src.Clone()); err != nil {
			return PerformanceMetrics{}, errors.Wrapf(err, "scenario %s warmup failed", scenario.Name)
		}
	}

	durations := make([]time.Duration, 0, scenario.Iterations)
	for i := 0; i < scenario.Iterations; i++ {
		stats, err := applyFilter(scenario, src.Clone())
		if err != nil {
			return PerformanceMetrics{}, errors.Wrapf(err, "scenario %s run %d failed", scenario.Name, i+1)
		}
		durations = append(durations, stats.Elapsed)
	}

	metrics := aggregateRuns(scenario, durations, src.Pixels())

	s.mu.Lock()
	s.results = append(s.results, metrics)
	s.mu.Unlock()

	return metrics, nil
}

// RunAll executes every scenario in order and then fills in speedup and
// efficiency figures from the single-worker baselines.
//
// Arguments:
// - scenarios: Scenarios to run.
// - src: Prepared image shared by all scenarios.
//
// Returns:
// - error: The first scenario failure, if any.
func (s *Suite) RunAll(scenarios []Scenario, src *raster.Image) error {
	for _, scenario := range scenarios {
		if _, err := s.RunScenario(scenario, src); err != nil {
			return err
		}
	}
	s.computeSpeedups()
	return nil
}

// computeSpeedups derives Speedup and Efficiency for every result from the
// matching one-worker result with the same filter and resolution.
func (s *Suite) computeSpeedups() {
	s.mu.Lock()
	defer s.mu.Unlock()

	baselines := make(map[string]time.Duration)
	for _, m := range s.results {
		if m.Scenario.Threads == 1 {
			key := string(m.Scenario.Filter) + "/" + m.Scenario.Resolution.Name
			baselines[key] = m.AvgDuration
		}
	}

	for i := range s.results {
		m := &s.results[i]
		base, ok := baselines[string(m.Scenario.Filter)+"/"+m.Scenario.Resolution.Name]
		if !ok || m.AvgDuration == 0 {
			continue
		}
		m.Speedup = float64(base) / float64(m.AvgDuration)
		m.Efficiency = m.Speedup / float64(m.Scenario.Threads) * 100
	}
}

// WriteComparisonTable renders the collected results as a per-filter text
// table of average duration, speedup, and efficiency by worker count.
//
// Arguments:
// - w: Destination writer.
//
// Returns:
// - error: Error if writing fails.
func (s *Suite) WriteComparisonTable(w io.Writer) error {
	results := s.Results()

	byFilter := make(map[FilterKind][]PerformanceMetrics)
	var order []FilterKind
	for _, m := range results {
		if _, seen := byFilter[m.Scenario.Filter]; !seen {
			order = append(order, m.Scenario.Filter)
		}
		byFilter[m.Scenario.Filter] = append(byFilter[m.Scenario.Filter], m)
	}

	for _, filter := range order {
		rows := byFilter[filter]
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].Scenario.Threads < rows[j].Scenario.Threads
		})

		if _, err := fmt.Fprintf(w, "\n%s (%s)\n", filter, rows[0].Scenario.Resolution.Name); err != nil {
			return errors.Wrap(err, "failed to write comparison table")
		}
		if _, err := fmt.Fprintf(w, "%-8s %-14s %-10s %-12s\n", "threads", "avg", "speedup", "efficiency"); err != nil {
			return errors.Wrap(err, "failed to write comparison table")
		}
		for _, m := range rows {
			if _, err := fmt.Fprintf(w, "%-8d %-14s %-10.2f %-11.1f%%\n",
				m.Scenario.Threads, m.AvgDuration.Round(time.Microsecond), m.Speedup, m.Efficiency); err != nil {
				return errors.Wrap(err, "failed to write comparison table")
			}
		}
	}
	return nil
}

// applyFilter dispatches a scenario to the filter it names.
func applyFilter(scenario Scenario, img *raster.Image) (raster.Stats, error) {
	switch scenario.Filter {
	case FilterBrightness:
		return raster.Brightness(img, scenario.BrightnessDelta, scenario.Threads)
	case FilterGaussianBlur:
		return raster.GaussianBlur(img, scenario.KernelSize, scenario.Sigma, scenario.Threads)
	case FilterSobel:
		return raster.Sobel(img, scenario.Threads)
	case FilterRotation:
		return raster.Rotate(img, scenario.Angle, scenario.Threads)
	case FilterScaling:
		return raster.Resize(img, scenario.TargetWidth, scenario.TargetHeight, scenario.Threads)
	default:
		return raster.Stats{}, errors.Errorf("unknown filter %q", scenario.Filter)
	}
}
