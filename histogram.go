package mindnet

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// BinEdges is an ordered sequence of strictly increasing histogram
// boundaries. Edges are computed once per subject from the pooled union of
// all regions' scalar samples and shared by every pairwise comparison for
// that subject; values computed over differing edges are not comparable.
type BinEdges []float64

// NewBinEdges computes bins+1 evenly spaced edges spanning the pooled
// sample. A pool whose values are all equal is expanded by 0.5 on each side
// so the bins still have positive width. Returns ErrEmptySample for an
// empty pool.
func NewBinEdges(pooled ScalarSample, bins int) (BinEdges, error) {
	if bins < 1 {
		return nil, fmt.Errorf("mindnet: bins must be >= 1, got %d", bins)
	}
	if len(pooled) == 0 {
		return nil, fmt.Errorf("%w: cannot derive bin edges", ErrEmptySample)
	}

	lo := floats.Min(pooled)
	hi := floats.Max(pooled)
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	edges := make(BinEdges, bins+1)
	step := (hi - lo) / float64(bins)
	for i := range edges {
		edges[i] = lo + float64(i)*step
	}
	edges[bins] = hi // exact upper bound regardless of rounding
	return edges, nil
}

// Density computes the normalized histogram density of sample over the
// edges: each bin's density is count / (N * width), so the densities
// integrate to 1 over the covered range. Values outside [edges[0],
// edges[last]] are ignored; the last bin is closed on both sides. An empty
// sample yields all-zero densities.
func (e BinEdges) Density(sample ScalarSample) []float64 {
	if len(e) < 2 {
		return nil
	}
	nbins := len(e) - 1
	counts := make([]int, nbins)
	total := 0

	for _, v := range sample {
		if v < e[0] || v > e[nbins] {
			continue
		}
		// First edge >= v; v on an interior edge belongs to the bin to its
		// right, matching numpy's half-open convention.
		i := sort.SearchFloat64s(e, v)
		var bin int
		switch {
		case i == len(e)-1 && e[i] == v:
			bin = nbins - 1 // top edge closes the last bin
		case e[i] == v:
			bin = i
		default:
			bin = i - 1
		}
		counts[bin]++
		total++
	}

	density := make([]float64, nbins)
	if total == 0 {
		return density
	}
	for i := range density {
		width := e[i+1] - e[i]
		density[i] = float64(counts[i]) / (float64(total) * width)
	}
	return density
}

// HistogramKL returns the directional Kullback-Leibler divergence of a
// relative to b, estimated over shared-bin histogram densities:
// sum pA[i] * ln(pA[i]/pB[i]). Zero-density bins on either side are
// replaced by floor (<= 0 means DefaultDensityFloor) so ratios and logs
// stay defined. The result is finite and non-negative; an empty sample
// produces a near-zero, fully defined value rather than an error.
//
// The estimate is not symmetric: callers needing a symmetric score must
// combine both directions explicitly.
func HistogramKL(a, b ScalarSample, edges BinEdges, floor float64) float64 {
	if floor <= 0 {
		floor = DefaultDensityFloor
	}
	pa := edges.Density(a)
	pb := edges.Density(b)

	var kl float64
	for i := range pa {
		p := math.Max(pa[i], floor)
		q := math.Max(pb[i], floor)
		kl += p * math.Log(p/q)
	}
	// Floor substitution can push the sum a hair below zero; true KL is
	// non-negative, so clamp the artifact away.
	return math.Max(kl, 0)
}
