package mindnet

import "math"

// KNNKL estimates the continuous Kullback-Leibler divergence D(X‖Y) between
// two d-dimensional samples with a nearest-neighbor density-ratio estimator
// (no binning), following Wang, Kulkarni and Verdú (2009). indexX and indexY
// must be KD-trees built over x and y respectively; both matrices must share
// the same dimensionality. eps is the approximate-query slack (see
// [KDTree.Query]).
//
// For each point in X, r is the distance to the nearest other point in X
// (k=2 against its own index) and s the distance to the nearest point in Y.
// Ratios with a zero or non-finite term are dropped. If nothing survives —
// too-small or fully overlapping samples — the estimate is 0 by definition,
// not an error. The raw statistic can dip below zero on finite samples; the
// result is clamped to be >= 0.
//
// The estimate is directional: KNNKL(x, y, ...) != KNNKL(y, x, ...) in
// general.
func KNNKL(x, y *FeatureMatrix, indexX, indexY *KDTree, eps float64) float64 {
	if x == nil || y == nil || x.n == 0 || y.n == 0 {
		return 0
	}

	n := x.n
	m := y.n
	d := x.dims

	var logSum float64
	kept := 0
	for i := 0; i < n; i++ {
		p := x.Row(i)

		// Nearest other point within X: first hit is the point itself.
		rd := indexX.Query(p, 2, eps)
		if len(rd) < 2 {
			continue
		}
		r := rd[1]

		sd := indexY.Query(p, 1, eps)
		if len(sd) < 1 {
			continue
		}
		s := sd[0]

		if r == 0 || s == 0 {
			continue
		}
		ratio := r / s
		if ratio == 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
			continue
		}
		logSum += math.Log(ratio)
		kept++
	}

	if kept == 0 {
		return 0
	}

	kl := -logSum*float64(d)/float64(n) + math.Log(float64(m)/float64(n-1))
	return math.Max(kl, 0)
}
