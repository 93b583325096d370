package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/rasterlab/go-raster/benchmark"
	"github.com/rasterlab/go-raster/config"
	"github.com/rasterlab/go-raster/imageio"
	"github.com/rasterlab/go-raster/raster"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "Path to the input image (png, jpeg, or webp)")
		outputPath = flag.String("output", "", "Path for the processed image")
		configPath = flag.String("config", "", "Optional YAML config file")
		threads    = flag.Int("threads", 0, "Worker count (overrides config)")

		brightness = flag.Int("brightness", 0, "Brightness delta to apply, in [-255, 255]")
		blurSize   = flag.Int("blur-size", 0, "Gaussian kernel size (odd, 3 to 15); 0 disables blur")
		blurSigma  = flag.Float64("blur-sigma", 1.5, "Gaussian sigma, in (0, 10]")
		sobel      = flag.Bool("sobel", false, "Apply Sobel edge detection")
		rotate     = flag.Float64("rotate", 0, "Rotation angle in degrees, counterclockwise")
		scaleW     = flag.Int("scale-width", 0, "Target width; 0 disables scaling")
		scaleH     = flag.Int("scale-height", 0, "Target height; 0 disables scaling")

		runBench = flag.Bool("benchmark", false, "Run the benchmark suite against the input image instead of filtering")
		verbose  = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if *inputPath == "" || (!*runBench && *outputPath == "") {
		fmt.Fprintln(os.Stderr, "both -input and -output are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *threads > 0 {
		cfg.Threads = *threads
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	img, err := imageio.Load(*inputPath)
	if err != nil {
		log.Fatalf("Failed to load image: %v", err)
	}
	log.WithFields(log.Fields{
		"path":     *inputPath,
		"width":    img.Width,
		"height":   img.Height,
		"channels": img.Channels,
		"threads":  cfg.Threads,
	}).Info("image loaded")

	if *runBench {
		if err := runBenchmark(img); err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
		return
	}

	if *brightness != 0 {
		report(raster.Brightness(img, *brightness, cfg.Threads))
	}
	if *blurSize > 0 {
		report(raster.GaussianBlur(img, *blurSize, float32(*blurSigma), cfg.Threads))
	}
	if *sobel {
		report(raster.Sobel(img, cfg.Threads))
	}
	if *rotate != 0 {
		report(raster.Rotate(img, float32(*rotate), cfg.Threads))
	}
	if *scaleW > 0 || *scaleH > 0 {
		if *scaleW <= 0 || *scaleH <= 0 {
			log.Fatal("both -scale-width and -scale-height are required for scaling")
		}
		report(raster.Resize(img, *scaleW, *scaleH, cfg.Threads))
	}

	if err := imageio.Save(*outputPath, img); err != nil {
		log.Fatalf("Failed to save image: %v", err)
	}
	log.WithField("path", *outputPath).Info("image saved")
}

// report prints one filter's timing or aborts on failure.
func report(stats raster.Stats, err error) {
	if err != nil {
		log.Fatalf("Filter %s failed: %v", stats.Filter, err)
	}
	fmt.Printf("%-14s %d threads  %s  (%.1f Mpx/s)\n",
		stats.Filter, stats.Threads, stats.Elapsed, stats.PixelsPerSecond()/1e6)
}

// runBenchmark runs the default scenario matrix against the loaded image at
// its native resolution and prints the comparison table.
func runBenchmark(img *raster.Image) error {
	cfg := benchmark.DefaultConfig()
	suite, err := benchmark.NewSuite(cfg)
	if err != nil {
		return err
	}

	res := benchmark.Resolution{
		Width:  img.Width,
		Height: img.Height,
		Name:   fmt.Sprintf("%dx%d", img.Width, img.Height),
	}
	if err := suite.RunAll(benchmark.DefaultScenarios(cfg, res), img); err != nil {
		return err
	}
	return suite.WriteComparisonTable(os.Stdout)
}
