package mindnet

import "fmt"

// RegionID is the stable integer label identifying an anatomical region
// within one subject's segmentation. IDs are opaque keys to the core; the
// label-to-name lookup lives in package lut.
type RegionID int

// Region pairs a label ID with its human-readable name. The ID is the
// unique key within a subject's region set; Name is carried along for
// reporting only.
type Region struct {
	ID   RegionID
	Name string
}

// ScalarSample is an unordered collection of voxel intensities belonging to
// one region. It may be empty.
type ScalarSample []float64

// FeatureMatrix holds one region's feature vectors as a flat row-major
// array: n rows of dims columns. Rows are unordered.
type FeatureMatrix struct {
	data []float64
	n    int
	dims int
}

// NewFeatureMatrix copies rows into a FeatureMatrix. Every row must have
// the same dimensionality; ragged input returns ErrDimensionMismatch.
func NewFeatureMatrix(rows [][]float64) (*FeatureMatrix, error) {
	if len(rows) == 0 {
		return &FeatureMatrix{}, nil
	}
	dims := len(rows[0])
	if dims == 0 {
		return nil, fmt.Errorf("%w: rows have zero columns", ErrDimensionMismatch)
	}
	data := make([]float64, len(rows)*dims)
	for i, row := range rows {
		if len(row) != dims {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d",
				ErrDimensionMismatch, i, len(row), dims)
		}
		copy(data[i*dims:], row)
	}
	return &FeatureMatrix{data: data, n: len(rows), dims: dims}, nil
}

// NewFeatureMatrixFlat wraps flat row-major data with n rows of dims
// columns. The slice is used directly, not copied; callers must not mutate
// it afterwards.
func NewFeatureMatrixFlat(data []float64, n, dims int) (*FeatureMatrix, error) {
	if n < 0 || dims < 0 || len(data) != n*dims {
		return nil, fmt.Errorf("%w: data length %d does not match %d x %d",
			ErrDimensionMismatch, len(data), n, dims)
	}
	return &FeatureMatrix{data: data, n: n, dims: dims}, nil
}

// NumPoints returns the number of feature vectors.
func (m *FeatureMatrix) NumPoints() int { return m.n }

// NumFeatures returns the dimensionality of each vector.
func (m *FeatureMatrix) NumFeatures() int { return m.dims }

// Row returns the i-th feature vector as a subslice of the backing array.
func (m *FeatureMatrix) Row(i int) []float64 {
	return m.data[i*m.dims : (i+1)*m.dims]
}
