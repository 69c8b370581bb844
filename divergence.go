package mindnet

import "fmt"

// DivergenceRecord is one directional histogram divergence for an unordered
// region pair, intended for one-row-per-pair serialization.
type DivergenceRecord struct {
	A, B Region
	KL   float64
}

// PooledSample concatenates the listed regions' scalar samples into the
// subject-wide pool that bin edges are derived from. A listed region absent
// from the mapping is reported as ErrMissingRegion; an empty sample is fine
// and simply contributes nothing.
func PooledSample(regions []Region, samples map[RegionID]ScalarSample) (ScalarSample, error) {
	if len(regions) == 0 {
		return nil, ErrNoRegions
	}
	var pooled ScalarSample
	for _, r := range regions {
		s, ok := samples[r.ID]
		if !ok {
			return nil, fmt.Errorf("%w: region %d (%s)", ErrMissingRegion, r.ID, r.Name)
		}
		pooled = append(pooled, s...)
	}
	return pooled, nil
}

// PairwiseDivergences computes HistogramKL(a, b) for every unordered region
// pair, each over the same shared edges. Records appear in combinatorial
// order of the region list: (0,1), (0,2), ..., (1,2), ... — deterministic
// regardless of Config.Workers. Empty samples yield floor-based near-zero
// values, not errors; only a region missing from the mapping is surfaced.
func PairwiseDivergences(regions []Region, samples map[RegionID]ScalarSample, edges BinEdges, cfg Config) ([]DivergenceRecord, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return nil, ErrNoRegions
	}
	if len(edges) < 2 {
		return nil, fmt.Errorf("%w: need at least two bin edges", ErrEmptySample)
	}

	ordered := make([]ScalarSample, len(regions))
	for i, r := range regions {
		s, ok := samples[r.ID]
		if !ok {
			return nil, fmt.Errorf("%w: region %d (%s)", ErrMissingRegion, r.ID, r.Name)
		}
		if len(s) == 0 {
			cfg.Logger.Warn("empty scalar sample", "region", r.ID, "name", r.Name)
		}
		ordered[i] = s
	}

	n := len(regions)
	records := make([]DivergenceRecord, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			records = append(records, DivergenceRecord{
				A:  regions[i],
				B:  regions[j],
				KL: HistogramKL(ordered[i], ordered[j], edges, cfg.DensityFloor),
			})
		}
	}
	return records, nil
}
