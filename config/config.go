// Package config - engine configuration. The worker count lives here and is
// handed to each filter call explicitly; the engine never consults ambient
// process state mid-run, which keeps concurrent invocations and tests
// deterministic.
package config

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Supported worker-count bounds.
const (
	// MinThreads is the smallest accepted worker count.
	MinThreads = 1
	// MaxThreads is the largest accepted worker count.
	MaxThreads = 16
)

// ErrInvalidThreadCount is returned when the configured worker count falls
// outside [MinThreads, MaxThreads].
var ErrInvalidThreadCount = errors.New("invalid thread count")

// Config holds the engine settings consulted at the start of each filter
// invocation.
type Config struct {
	// Threads is the worker count handed to every filter call.
	Threads int `json:"threads" yaml:"threads"`
}

// DefaultConfig returns a configuration sized to the host: one worker per
// CPU, clamped to the supported range.
//
// Returns:
// - Config: The default configuration.
func DefaultConfig() Config {
	threads := runtime.NumCPU()
	if threads > MaxThreads {
		threads = MaxThreads
	}
	if threads < MinThreads {
		threads = MinThreads
	}
	return Config{Threads: threads}
}

// Validate checks the configuration against the supported bounds.
//
// Returns:
// - error: ErrInvalidThreadCount when Threads is out of range.
func (c Config) Validate() error {
	if c.Threads < MinThreads || c.Threads > MaxThreads {
		return errors.Wrapf(ErrInvalidThreadCount, "threads must be in [%d, %d], got %d", MinThreads, MaxThreads, c.Threads)
	}
	return nil
}

// Load reads a YAML configuration file and validates it.
//
// Arguments:
// - path: Path to the YAML file.
//
// Returns:
// - Config: The parsed configuration.
// - error: Error if the file cannot be read, parsed, or validated.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config %s", path)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
