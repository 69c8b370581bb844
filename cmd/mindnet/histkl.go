package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurosuite/mindnet"
	"github.com/neurosuite/mindnet/report"
)

var histklOpts struct {
	out      string
	labelCol string
	valueCol string
}

var histklCmd = &cobra.Command{
	Use:   "histkl <voxels.csv>",
	Short: "Compute pairwise histogram KL divergences from a scalar voxel table",
	Long: `histkl reads a voxel table with a label column and a single value column,
derives shared histogram bin edges from all listed regions pooled together,
and writes one directional KL divergence per unordered region pair.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistKL,
}

func init() {
	histklCmd.Flags().StringVarP(&histklOpts.out, "out", "o", "divergences.csv", "output path (.gz compresses)")
	histklCmd.Flags().StringVar(&histklOpts.labelCol, "label-col", "Label", "name of the region label column")
	histklCmd.Flags().StringVar(&histklOpts.valueCol, "value-col", "Value", "name of the measurement column")
	rootCmd.AddCommand(histklCmd)
}

func runHistKL(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg := buildConfig(logger)

	samples, err := loadScalarCSV(args[0], histklOpts.labelCol, histklOpts.valueCol)
	if err != nil {
		return err
	}
	regions, missing, err := resolveRegions(samples, rootOpts.lutPath)
	if err != nil {
		return err
	}
	for _, r := range missing {
		logger.Warn("region has no voxel data", "region", r.ID, "name", r.Name)
		// Keep it in the pair list: the histogram path tolerates empty
		// samples, producing floor-level divergences.
		regions = append(regions, r)
		samples[r.ID] = mindnet.ScalarSample{}
	}
	logger.Info("loaded voxel table", "path", args[0], "regions", len(regions))

	pooled, err := mindnet.PooledSample(regions, samples)
	if err != nil {
		return err
	}
	edges, err := mindnet.NewBinEdges(pooled, cfg.Bins)
	if err != nil {
		return fmt.Errorf("deriving bin edges: %w", err)
	}

	records, err := mindnet.PairwiseDivergences(regions, samples, edges, cfg)
	if err != nil {
		return err
	}
	if err := report.WriteDivergencesCSV(histklOpts.out, records); err != nil {
		return err
	}
	logger.Info("wrote divergences", "path", histklOpts.out, "pairs", len(records))
	return nil
}
