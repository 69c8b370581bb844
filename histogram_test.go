package mindnet

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

// --- Bin edge construction ---

func TestNewBinEdges_SpanAndCount(t *testing.T) {
	pooled := ScalarSample{3, 1, 4, 1, 5, 9, 2, 6}
	edges, err := NewBinEdges(pooled, 10)
	if err != nil {
		t.Fatalf("NewBinEdges error: %v", err)
	}
	if len(edges) != 11 {
		t.Fatalf("expected 11 edges, got %d", len(edges))
	}
	if edges[0] != 1 || edges[10] != 9 {
		t.Errorf("edges span [%v, %v], want [1, 9]", edges[0], edges[10])
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			t.Errorf("edges not strictly increasing at %d: %v <= %v", i, edges[i], edges[i-1])
		}
	}
}

func TestNewBinEdges_ConstantPool(t *testing.T) {
	edges, err := NewBinEdges(ScalarSample{4, 4, 4}, 4)
	if err != nil {
		t.Fatalf("NewBinEdges error: %v", err)
	}
	if edges[0] != 3.5 || edges[len(edges)-1] != 4.5 {
		t.Errorf("constant pool should expand to [3.5, 4.5], got [%v, %v]",
			edges[0], edges[len(edges)-1])
	}
}

func TestNewBinEdges_EmptyPool(t *testing.T) {
	if _, err := NewBinEdges(nil, 100); !errors.Is(err, ErrEmptySample) {
		t.Errorf("empty pool: got %v, want ErrEmptySample", err)
	}
}

func TestNewBinEdges_InvalidBins(t *testing.T) {
	if _, err := NewBinEdges(ScalarSample{1, 2}, 0); err == nil {
		t.Error("expected error for bins = 0")
	}
}

// --- Density ---

func TestBinEdges_Density_IntegratesToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	sample := uniformSample(rng, 500, 0, 10)
	edges, err := NewBinEdges(sample, 25)
	if err != nil {
		t.Fatalf("NewBinEdges error: %v", err)
	}

	density := edges.Density(sample)
	var integral float64
	for i, d := range density {
		integral += d * (edges[i+1] - edges[i])
	}
	if !almostEqual(integral, 1.0, 1e-9) {
		t.Errorf("density integrates to %v, want 1", integral)
	}
}

func TestBinEdges_Density_EmptySample(t *testing.T) {
	edges, _ := NewBinEdges(ScalarSample{0, 1}, 5)
	density := edges.Density(nil)
	if len(density) != 5 {
		t.Fatalf("expected 5 bins, got %d", len(density))
	}
	for i, d := range density {
		if d != 0 {
			t.Errorf("bin %d: expected 0 density for empty sample, got %v", i, d)
		}
	}
}

func TestBinEdges_Density_OutOfRangeIgnored(t *testing.T) {
	edges := BinEdges{0, 1, 2}
	density := edges.Density(ScalarSample{-5, 0.5, 1.5, 99})
	// Only the two in-range values count; each bin holds one of two values
	// over width 1.
	want := []float64{0.5, 0.5}
	for i := range want {
		if !almostEqual(density[i], want[i], floatTol) {
			t.Errorf("bin %d: got %v, want %v", i, density[i], want[i])
		}
	}
}

func TestBinEdges_Density_EdgeValues(t *testing.T) {
	edges := BinEdges{0, 1, 2}
	// 1 sits on the interior edge and belongs to the right bin; 2 is the
	// closing edge and belongs to the last bin.
	density := edges.Density(ScalarSample{1, 2})
	if density[0] != 0 {
		t.Errorf("bin 0: got %v, want 0", density[0])
	}
	if !almostEqual(density[1], 1.0, floatTol) {
		t.Errorf("bin 1: got %v, want 1", density[1])
	}
}

// --- Histogram KL ---

func TestHistogramKL_SelfDivergenceNearZero(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	a := make(ScalarSample, 1000)
	b := make(ScalarSample, 1000)
	for i := range a {
		a[i] = rng.NormFloat64()
		b[i] = rng.NormFloat64()
	}

	edges, err := NewBinEdges(append(append(ScalarSample{}, a...), b...), 100)
	if err != nil {
		t.Fatalf("NewBinEdges error: %v", err)
	}

	kl := HistogramKL(a, b, edges, DefaultDensityFloor)
	if kl < 0 {
		t.Errorf("KL = %v, want >= 0", kl)
	}
	if kl >= 0.05*float64(len(edges)-1) {
		// Same distribution: the per-bin sum stays small even though
		// densities are scaled by 1/width.
		t.Errorf("self divergence too large: %v", kl)
	}
}

func TestHistogramKL_DisjointRangesLargeFinite(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	a := uniformSample(rng, 400, 0, 1)
	b := uniformSample(rng, 400, 10, 11)

	pooled := append(append(ScalarSample{}, a...), b...)
	edges, err := NewBinEdges(pooled, 100)
	if err != nil {
		t.Fatalf("NewBinEdges error: %v", err)
	}

	kl := HistogramKL(a, b, edges, DefaultDensityFloor)
	if math.IsNaN(kl) || math.IsInf(kl, 0) {
		t.Fatalf("KL = %v, want finite", kl)
	}
	if kl < 10 {
		t.Errorf("disjoint ranges should give a large divergence, got %v", kl)
	}
}

func TestHistogramKL_EmptySampleDefined(t *testing.T) {
	rng := rand.New(rand.NewSource(41))
	b := uniformSample(rng, 100, 0, 1)
	edges, _ := NewBinEdges(b, 50)

	kl := HistogramKL(nil, b, edges, DefaultDensityFloor)
	if math.IsNaN(kl) || math.IsInf(kl, 0) || kl < 0 {
		t.Errorf("empty sample should give a defined non-negative value, got %v", kl)
	}
	// All bins floored on the A side: a low-information, near-zero result.
	if kl > 1e-6 {
		t.Errorf("empty-sample divergence should be near zero, got %v", kl)
	}
}

func TestHistogramKL_Asymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(51))
	a := uniformSample(rng, 500, 0, 1)
	b := make(ScalarSample, 500)
	for i := range b {
		b[i] = 0.5 + 0.1*rng.NormFloat64()
	}

	pooled := append(append(ScalarSample{}, a...), b...)
	edges, _ := NewBinEdges(pooled, 60)

	ab := HistogramKL(a, b, edges, DefaultDensityFloor)
	ba := HistogramKL(b, a, edges, DefaultDensityFloor)
	if almostEqual(ab, ba, 1e-9) {
		t.Errorf("expected directional estimates to differ: D(a→b)=%v, D(b→a)=%v", ab, ba)
	}
}

func TestHistogramKL_NonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(61))
	edgesPool := uniformSample(rng, 200, -3, 3)
	edges, _ := NewBinEdges(edgesPool, 40)

	for trial := 0; trial < 20; trial++ {
		a := uniformSample(rng, 50+trial*10, -3, 3)
		b := uniformSample(rng, 80, -3, 3)
		if kl := HistogramKL(a, b, edges, DefaultDensityFloor); kl < 0 {
			t.Errorf("trial %d: KL = %v, want >= 0", trial, kl)
		}
	}
}
