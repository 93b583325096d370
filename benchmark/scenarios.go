package benchmark

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"

	"github.com/rasterlab/go-raster/imageio"
	"github.com/rasterlab/go-raster/raster"
)

// Default filter parameters used by the generated scenario matrix. The
// brightness delta is zero so that scenario measures pure traversal and
// scheduling cost; the filter still walks every sample.
const (
	defaultBlurKernelSize = 5
	defaultBlurSigma      = 1.5
	defaultRotationAngle  = 45.0
	defaultBrightness     = 0
)

// DefaultScenarios builds the full scenario matrix: every filter at every
// configured worker count, one resolution per entry.
//
// Arguments:
// - cfg: Suite configuration providing runs, warmups, and the thread axis.
// - resolution: Image size the scenarios run against.
//
// Returns:
// - []Scenario: The generated scenarios, single-worker entries first so
//   speedup baselines are measured before the parallel runs.
func DefaultScenarios(cfg Config, resolution Resolution) []Scenario {
	filters := []FilterKind{
		FilterBrightness,
		FilterGaussianBlur,
		FilterSobel,
		FilterRotation,
		FilterScaling,
	}

	var scenarios []Scenario
	for _, threads := range cfg.ThreadCounts {
		for _, filter := range filters {
			s := Scenario{
				Name:       fmt.Sprintf("%s_%s_t%d", filter, resolution.Name, threads),
				Filter:     filter,
				Threads:    threads,
				Resolution: resolution,
				Iterations: cfg.Runs,
				WarmupRuns: cfg.WarmupRuns,
			}
			switch filter {
			case FilterBrightness:
				s.BrightnessDelta = defaultBrightness
			case FilterGaussianBlur:
				s.KernelSize = defaultBlurKernelSize
				s.Sigma = defaultBlurSigma
			case FilterRotation:
				s.Angle = defaultRotationAngle
			case FilterScaling:
				s.TargetWidth = resolution.Width / 2
				s.TargetHeight = resolution.Height / 2
			}
			scenarios = append(scenarios, s)
		}
	}
	return scenarios
}

// PrepareImage resamples a source image to the scenario resolution so every
// scenario at a given resolution measures the same pixel count regardless of
// the corpus file's native size.
//
// Arguments:
// - src: Decoded corpus image.
// - res: Target resolution.
//
// Returns:
// - *raster.Image: The resampled image.
// - error: Error if the conversion fails.
func PrepareImage(src image.Image, res Resolution) (*raster.Image, error) {
	bounds := src.Bounds()
	if bounds.Dx() != res.Width || bounds.Dy() != res.Height {
		src = resize.Resize(uint(res.Width), uint(res.Height), src, resize.Bilinear)
	}
	return imageio.FromImage(src)
}
