package mindnet

import "errors"

// Sentinel errors surfaced by the pairwise drivers. Everything else in the
// estimators resolves to a defined numeric value rather than an error:
// degenerate inputs yield 0 or floor-substituted densities, and negative
// finite-sample k-NN estimates are clamped to 0.
var (
	// ErrNoRegions is returned when a driver is given an empty region list.
	ErrNoRegions = errors.New("mindnet: no regions to compare")

	// ErrMissingRegion is returned when a listed region has no entry in the
	// sample mapping. Callers typically skip the subject or region pair.
	ErrMissingRegion = errors.New("mindnet: region missing from sample mapping")

	// ErrEmptySample is returned when an operation needs at least one data
	// point and got none, e.g. bin-edge construction over an empty pool or
	// indexing an empty feature matrix.
	ErrEmptySample = errors.New("mindnet: empty sample")

	// ErrDimensionMismatch is returned when feature rows or matrices
	// disagree on dimensionality.
	ErrDimensionMismatch = errors.New("mindnet: dimension mismatch")
)
