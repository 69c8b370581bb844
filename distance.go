package mindnet

import "math"

// Euclidean distance helpers shared by the KD-tree and the estimators.
// Tree traversal works in reduced-distance space (squared Euclidean) so
// pruning bounds skip the square root.

func euclideanRdist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func euclideanDist(a, b []float64) float64 {
	return math.Sqrt(euclideanRdist(a, b))
}

func rdistToDist(r float64) float64 { return math.Sqrt(r) }

func distToRdist(d float64) float64 { return d * d }
