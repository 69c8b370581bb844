package mindnet

import (
	"fmt"
	"log/slog"
	"runtime"
)

// DefaultDensityFloor replaces zero-density histogram bins so that ratios
// and logarithms stay defined.
const DefaultDensityFloor = 1e-10

// Config controls divergence estimation and network assembly.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Bins is the number of histogram bins used by the univariate path.
	// Must be >= 1. Default: 100.
	Bins int

	// DensityFloor replaces zero-density bins before ratios are taken.
	// Must be > 0. Default: DefaultDensityFloor.
	DensityFloor float64

	// Epsilon is the relative slack for approximate nearest-neighbor
	// queries: a returned k-th distance is within (1+Epsilon) of the true
	// k-th distance. 0 forces exact search. Must be >= 0. Default: 0.01.
	//
	// The multivariate estimator was validated against the approximate
	// baseline; re-validate bias/variance before changing this materially.
	Epsilon float64

	// LeafSize is the maximum number of points in a KD-tree leaf node.
	// Must be >= 1. Default: 16.
	LeafSize int

	// Workers controls the number of goroutines used for per-pair
	// computations. 0 means runtime.NumCPU(); 1 forces the sequential
	// baseline. Results are identical either way.
	Workers int

	// Logger receives degenerate-input and progress events. Nil means
	// discard. Estimation never fails because of what is logged here.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with the defaults the estimators were
// validated with.
func DefaultConfig() Config {
	return Config{
		Bins:         100,
		DensityFloor: DefaultDensityFloor,
		Epsilon:      0.01,
		LeafSize:     16,
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
// Epsilon is left alone: zero is a meaningful value (exact search).
func applyDefaults(cfg *Config) {
	if cfg.Bins == 0 {
		cfg.Bins = 100
	}
	if cfg.DensityFloor == 0 {
		cfg.DensityFloor = DefaultDensityFloor
	}
	if cfg.LeafSize == 0 {
		cfg.LeafSize = 16
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = noopLogger()
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive
// error if not.
func validateConfig(cfg *Config) error {
	if cfg.Bins < 1 {
		return fmt.Errorf("mindnet: Bins must be >= 1, got %d", cfg.Bins)
	}
	if cfg.DensityFloor <= 0 {
		return fmt.Errorf("mindnet: DensityFloor must be > 0, got %g", cfg.DensityFloor)
	}
	if cfg.Epsilon < 0 {
		return fmt.Errorf("mindnet: Epsilon must be >= 0, got %g", cfg.Epsilon)
	}
	if cfg.LeafSize < 1 {
		return fmt.Errorf("mindnet: LeafSize must be >= 1, got %d", cfg.LeafSize)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("mindnet: Workers must be >= 0, got %d", cfg.Workers)
	}
	return nil
}
