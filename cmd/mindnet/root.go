package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/neurosuite/mindnet"
)

var rootOpts struct {
	lutPath  string
	bins     int
	epsilon  float64
	leafSize int
	workers  int
	verbose  bool
}

var rootCmd = &cobra.Command{
	Use:   "mindnet",
	Short: "Region similarity networks from voxel data",
	Long: `mindnet computes Kullback-Leibler divergences between brain regions
from per-voxel measurement tables and assembles MIND-style similarity
networks. Image decoding and registration happen upstream; mindnet consumes
the extracted tabular form.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootOpts.lutPath, "lut", "", "FreeSurfer color LUT for region names (optional)")
	pf.IntVar(&rootOpts.bins, "bins", 100, "histogram bins for the univariate path")
	pf.Float64Var(&rootOpts.epsilon, "epsilon", 0.01, "approximate nearest-neighbor slack (0 = exact)")
	pf.IntVar(&rootOpts.leafSize, "leaf-size", 16, "KD-tree leaf size")
	pf.IntVar(&rootOpts.workers, "workers", 0, "parallel pair workers (0 = all CPUs)")
	pf.BoolVarP(&rootOpts.verbose, "verbose", "v", false, "debug logging")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if rootOpts.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func buildConfig(logger *slog.Logger) mindnet.Config {
	cfg := mindnet.DefaultConfig()
	cfg.Bins = rootOpts.bins
	cfg.Epsilon = rootOpts.epsilon
	cfg.LeafSize = rootOpts.leafSize
	cfg.Workers = rootOpts.workers
	cfg.Logger = logger
	return cfg
}
