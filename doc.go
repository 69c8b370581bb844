// Package mindnet computes statistical dissimilarity between anatomically
// defined brain regions from per-voxel measurement data.
//
// Two divergence estimators form the core. HistogramKL compares two scalar
// intensity samples through shared-bin histogram densities. KNNKL compares
// two multivariate feature samples through a k-nearest-neighbor density-ratio
// estimator backed by a KD-tree index. BuildNetwork drives KNNKL across every
// unordered region pair and assembles a MIND-style similarity matrix.
//
// Basic usage for the network path:
//
//	cfg := mindnet.DefaultConfig()
//	matrix, err := mindnet.BuildNetwork(regions, samplesByRegion, cfg)
//	// matrix.At(x, y) is 1/(1 + KL(x→y) + KL(y→x)) in (0, 1]
//
// And for the univariate histogram path:
//
//	pooled, _ := mindnet.PooledSample(regions, scalarSamples)
//	edges, _ := mindnet.NewBinEdges(pooled, cfg.Bins)
//	records, err := mindnet.PairwiseDivergences(regions, scalarSamples, edges, cfg)
//
// Bin edges are computed once per subject from the pooled union of all
// regions' samples and must be shared by every pairwise comparison for that
// subject; divergence values computed over differing edges are not comparable.
//
// # Approximate neighbor queries
//
// KD-tree queries accept a relative slack epsilon: a returned k-th neighbor
// distance is guaranteed to be within a factor (1+epsilon) of the true k-th
// distance. The estimator constants were validated against this approximate
// contract (epsilon = 0.01 by default); set Config.Epsilon to 0 to force
// exact search.
package mindnet
