package mindnet

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SimilarityMatrix is a square table of symmetrized region similarities,
// keyed by region on both axes. Entries lie in (0, 1]; the diagonal is left
// at zero since self-similarity is not computed. Both (x, y) and (y, x)
// carry the same value: the builder writes the symmetrized score into both
// triangles.
type SimilarityMatrix struct {
	regions []Region
	index   map[RegionID]int
	values  *mat.Dense
}

func newSimilarityMatrix(regions []Region) *SimilarityMatrix {
	idx := make(map[RegionID]int, len(regions))
	for i, r := range regions {
		idx[r.ID] = i
	}
	return &SimilarityMatrix{
		regions: regions,
		index:   idx,
		values:  mat.NewDense(len(regions), len(regions), nil),
	}
}

// Regions returns the axis ordering of the matrix.
func (m *SimilarityMatrix) Regions() []Region { return m.regions }

// At returns the similarity between two regions. ok is false when either
// region is not on the axes; the diagonal reads as 0.
func (m *SimilarityMatrix) At(x, y RegionID) (float64, bool) {
	i, okX := m.index[x]
	j, okY := m.index[y]
	if !okX || !okY {
		return 0, false
	}
	return m.values.At(i, j), true
}

// Dense exposes the underlying matrix, ordered as Regions(). Treat it as
// read-only.
func (m *SimilarityMatrix) Dense() *mat.Dense { return m.values }

// set writes the symmetrized value into both triangles.
func (m *SimilarityMatrix) set(i, j int, v float64) {
	m.values.Set(i, j, v)
	m.values.Set(j, i, v)
}

// BuildNetwork assembles the region-similarity network for one subject.
// Regions must be unique by ID; their order fixes the matrix axes. Sample
// map entries for regions not in the list are ignored; a listed region with
// no sample (or an empty one) is reported as ErrMissingRegion so the caller
// can skip it, never silently computed.
//
// One KD-tree is built per region and reused for every pair involving that
// region. For each unordered pair the two directional k-NN divergences are
// combined into similarity = 1 / (1 + KLa + KLb), written into both (x, y)
// and (y, x). Pairs are computed in parallel across Config.Workers
// goroutines; results are identical to the sequential baseline.
func BuildNetwork(regions []Region, samples map[RegionID]*FeatureMatrix, cfg Config) (*SimilarityMatrix, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return nil, ErrNoRegions
	}

	seen := make(map[RegionID]bool, len(regions))
	for _, r := range regions {
		if seen[r.ID] {
			return nil, fmt.Errorf("mindnet: duplicate region %d (%s)", r.ID, r.Name)
		}
		seen[r.ID] = true
	}

	// Restrict the mapping to the listed regions and validate it up front.
	data := make([]*FeatureMatrix, len(regions))
	dims := -1
	for i, r := range regions {
		fm, ok := samples[r.ID]
		if !ok || fm == nil || fm.n == 0 {
			return nil, fmt.Errorf("%w: region %d (%s)", ErrMissingRegion, r.ID, r.Name)
		}
		if dims == -1 {
			dims = fm.dims
		} else if fm.dims != dims {
			return nil, fmt.Errorf("%w: region %d has %d features, want %d",
				ErrDimensionMismatch, r.ID, fm.dims, dims)
		}
		data[i] = fm
	}

	// One immutable index per region, shared across all pairs.
	indexes := make([]*KDTree, len(regions))
	for i, fm := range data {
		tree, err := NewKDTree(fm, cfg.LeafSize)
		if err != nil {
			return nil, fmt.Errorf("mindnet: indexing region %d: %w", regions[i].ID, err)
		}
		indexes[i] = tree
	}

	cfg.Logger.Debug("building similarity network",
		"regions", len(regions),
		"pairs", len(regions)*(len(regions)-1)/2,
		"dims", dims,
		"workers", cfg.Workers,
	)

	matrix := newSimilarityMatrix(regions)
	err := forEachPair(len(regions), cfg.Workers, func(i, j int) error {
		kla := KNNKL(data[i], data[j], indexes[i], indexes[j], cfg.Epsilon)
		klb := KNNKL(data[j], data[i], indexes[j], indexes[i], cfg.Epsilon)
		matrix.set(i, j, 1/(1+kla+klb))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matrix, nil
}
