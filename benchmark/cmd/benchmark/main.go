package main

import (
	"bytes"
	"flag"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/rasterlab/go-raster/benchmark"
	"github.com/rasterlab/go-raster/imageio"
	"github.com/rasterlab/go-raster/raster"
	"github.com/rasterlab/go-raster/util"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to benchmark configuration file")
		outputDir  = flag.String("output", "./benchmark_results", "Output directory for results")
		testImages = flag.String("images", "", "Path to test images directory")
		runs       = flag.Int("runs", 0, "Timed runs per scenario (overrides config)")
		resolution = flag.String("resolution", "512x512", "Scenario resolution name")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if *testImages == "" {
		log.Fatal("Test images path is required (-images)")
	}

	cfg := benchmark.DefaultConfig()
	if *configFile != "" {
		var err error
		cfg, err = benchmark.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	cfg.OutputDir = *outputDir
	cfg.TestImagesPath = *testImages
	if *runs > 0 {
		cfg.Runs = *runs
	}

	res, err := findResolution(*resolution)
	if err != nil {
		log.Fatalf("Unknown resolution: %v", err)
	}

	src, err := loadCorpusImage(cfg.TestImagesPath, res)
	if err != nil {
		log.Fatalf("Failed to prepare corpus image: %v", err)
	}

	suite, err := benchmark.NewSuite(cfg)
	if err != nil {
		log.Fatalf("Invalid benchmark configuration: %v", err)
	}

	scenarios := benchmark.DefaultScenarios(cfg, res)
	fmt.Printf("Running %d scenarios at %s across thread counts %v\n", len(scenarios), res.Name, cfg.ThreadCounts)

	if err := suite.RunAll(scenarios, src); err != nil {
		log.Fatalf("Benchmark failed: %v", err)
	}

	var table bytes.Buffer
	if err := suite.WriteComparisonTable(&table); err != nil {
		log.Fatalf("Failed to render comparison table: %v", err)
	}
	fmt.Print(table.String())

	path, err := benchmark.SaveResults(cfg.OutputDir, suite.Results())
	if err != nil {
		log.Fatalf("Failed to save results: %v", err)
	}
	fmt.Printf("\nResults written to %s\n", path)
}

// findResolution resolves a resolution name against the common set.
func findResolution(name string) (benchmark.Resolution, error) {
	for _, res := range benchmark.CommonResolutions {
		if res.Name == name {
			return res, nil
		}
	}
	return benchmark.Resolution{}, fmt.Errorf("%q is not one of the known resolutions", name)
}

// loadCorpusImage decodes the first image in the corpus directory and
// resamples it to the scenario resolution.
func loadCorpusImage(dir string, res benchmark.Resolution) (*raster.Image, error) {
	files, err := util.LoadDirectoryImageFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no images found in %s", dir)
	}

	decoded, err := imageio.Load(files[0].Path)
	if err != nil {
		return nil, err
	}
	return benchmark.PrepareImage(imageio.ToImage(decoded), res)
}
