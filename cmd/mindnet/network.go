package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurosuite/mindnet"
	"github.com/neurosuite/mindnet/report"
)

var networkOpts struct {
	out        string
	missingOut string
	labelCol   string
}

var networkCmd = &cobra.Command{
	Use:   "network <voxels.csv>",
	Short: "Build a region similarity network from a voxel feature table",
	Long: `network reads a voxel table (one row per voxel: an integer label column
plus one float column per feature), groups voxels by region, and computes
the pairwise k-NN KL-divergence similarity matrix. With --lut, the region
list comes from the lookup table and regions without voxels are reported
separately; without it, every label present in the data is used.`,
	Args: cobra.ExactArgs(1),
	RunE: runNetwork,
}

func init() {
	networkCmd.Flags().StringVarP(&networkOpts.out, "out", "o", "similarity.csv", "output matrix path (.gz compresses)")
	networkCmd.Flags().StringVar(&networkOpts.missingOut, "missing-out", "", "write regions without voxel data here")
	networkCmd.Flags().StringVar(&networkOpts.labelCol, "label-col", "Label", "name of the region label column")
	rootCmd.AddCommand(networkCmd)
}

func runNetwork(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	samples, err := loadFeatureCSV(args[0], networkOpts.labelCol)
	if err != nil {
		return err
	}
	regions, missing, err := resolveRegions(samples, rootOpts.lutPath)
	if err != nil {
		return err
	}
	logger.Info("loaded voxel table",
		"path", args[0], "regions", len(regions), "missing", len(missing))

	if networkOpts.missingOut != "" {
		if err := report.WriteMissingRegionsCSV(networkOpts.missingOut, missing); err != nil {
			return err
		}
	} else if len(missing) > 0 {
		for _, r := range missing {
			logger.Warn("region has no voxel data", "region", r.ID, "name", r.Name)
		}
	}

	matrix, err := mindnet.BuildNetwork(regions, samples, buildConfig(logger))
	if err != nil {
		return fmt.Errorf("building network: %w", err)
	}
	if err := report.WriteSimilarityCSV(networkOpts.out, matrix); err != nil {
		return err
	}
	logger.Info("wrote similarity matrix", "path", networkOpts.out)
	return nil
}
