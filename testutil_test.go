package mindnet

import (
	"math"
	"math/rand"
)

const floatTol = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// gaussianMatrix draws n points from an isotropic d-dimensional Gaussian
// with the given mean and standard deviation, using a fixed-seed source so
// tests are deterministic.
func gaussianMatrix(rng *rand.Rand, n, d int, mean, sigma float64) *FeatureMatrix {
	data := make([]float64, n*d)
	for i := range data {
		data[i] = mean + sigma*rng.NormFloat64()
	}
	fm, err := NewFeatureMatrixFlat(data, n, d)
	if err != nil {
		panic(err)
	}
	return fm
}

// uniformSample draws n scalar values uniformly from [lo, hi).
func uniformSample(rng *rand.Rand, n int, lo, hi float64) ScalarSample {
	s := make(ScalarSample, n)
	for i := range s {
		s[i] = lo + (hi-lo)*rng.Float64()
	}
	return s
}

func mustFeatureMatrix(rows [][]float64) *FeatureMatrix {
	fm, err := NewFeatureMatrix(rows)
	if err != nil {
		panic(err)
	}
	return fm
}

func mustKDTree(fm *FeatureMatrix, leafSize int) *KDTree {
	t, err := NewKDTree(fm, leafSize)
	if err != nil {
		panic(err)
	}
	return t
}
