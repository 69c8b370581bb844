package mindnet

import (
	"container/heap"
	"fmt"
	"math"
	"sort"
)

// KDTree is the spatial index over one region's FeatureMatrix, supporting
// epsilon-approximate k-nearest-neighbor distance queries. Points are stored
// in a flat row-major array and reordered internally via an index
// permutation array; the tree is never mutated after construction, so a
// single instance may be shared read-only across concurrent pair
// computations.
//
// The tree is stored as a complete binary tree in array form:
//   - node i has children at 2*i+1 and 2*i+2
//   - node bounds are stored as min/max per dimension per node
type KDTree struct {
	data     []float64 // flat row-major point data (n * dims)
	n        int       // number of points
	dims     int       // dimensionality
	leafSize int
	idxArray []int      // permutation: tree-order position → original index
	nodes    []nodeData // one entry per tree node
	// nodeBoundsMin[node*dims + j] = min value of feature j in node
	nodeBoundsMin []float64
	// nodeBoundsMax[node*dims + j] = max value of feature j in node
	nodeBoundsMax []float64
	numNodes      int
}

// nodeData describes a single node in the tree.
type nodeData struct {
	idxStart, idxEnd int
	isLeaf           bool
}

// NewKDTree builds a KD-tree over the given feature matrix. leafSize
// controls the max points per leaf node; values < 1 are clamped to 1.
// Returns ErrEmptySample when the matrix has zero rows.
func NewKDTree(points *FeatureMatrix, leafSize int) (*KDTree, error) {
	if points == nil || points.n == 0 {
		return nil, fmt.Errorf("%w: cannot index an empty feature matrix", ErrEmptySample)
	}
	if leafSize < 1 {
		leafSize = 1
	}

	n, dims := points.n, points.dims

	// Copy data and build identity index array.
	dataCopy := make([]float64, len(points.data))
	copy(dataCopy, points.data)
	idxArray := make([]int, n)
	for i := range idxArray {
		idxArray[i] = i
	}

	maxNodes := kdMaxNodes(n, leafSize)

	t := &KDTree{
		data:          dataCopy,
		n:             n,
		dims:          dims,
		leafSize:      leafSize,
		idxArray:      idxArray,
		nodes:         make([]nodeData, maxNodes),
		nodeBoundsMin: make([]float64, maxNodes*dims),
		nodeBoundsMax: make([]float64, maxNodes*dims),
	}

	t.buildNode(0, 0, n)
	t.numNodes = kdCountNodes(t.nodes, 0, maxNodes)

	return t, nil
}

// kdMaxNodes returns an upper bound on the number of nodes needed for a
// binary tree with n points and the given leaf size. The median split may
// not be perfectly balanced, so the bound is generous.
func kdMaxNodes(n, leafSize int) int {
	if n == 0 {
		return 1
	}
	leaves := (n + leafSize - 1) / leafSize
	depth := 0
	v := 1
	for v < leaves {
		v *= 2
		depth++
	}
	return (1 << (depth + 1)) - 1 + 2 // +2 for safety margin
}

// kdCountNodes counts how many nodes were actually initialized by the build.
func kdCountNodes(nodes []nodeData, nodeID, maxNodes int) int {
	if nodeID >= maxNodes {
		return 0
	}
	if nodes[nodeID].idxStart == 0 && nodes[nodeID].idxEnd == 0 && nodeID != 0 {
		return 0
	}
	count := 1
	if !nodes[nodeID].isLeaf {
		count += kdCountNodes(nodes, 2*nodeID+1, maxNodes)
		count += kdCountNodes(nodes, 2*nodeID+2, maxNodes)
	}
	return count
}

// buildNode recursively builds the tree for points in idxArray[start:end].
func (t *KDTree) buildNode(nodeID, start, end int) {
	// Grow arrays if needed (shouldn't happen with a good upper bound).
	for nodeID >= len(t.nodes) {
		t.nodes = append(t.nodes, nodeData{})
		t.nodeBoundsMin = append(t.nodeBoundsMin, make([]float64, t.dims)...)
		t.nodeBoundsMax = append(t.nodeBoundsMax, make([]float64, t.dims)...)
	}

	t.computeNodeBounds(nodeID, start, end)

	count := end - start
	if count <= t.leafSize {
		t.nodes[nodeID] = nodeData{idxStart: start, idxEnd: end, isLeaf: true}
		return
	}

	// Split on the dimension with the greatest spread, at the median.
	splitDim := 0
	maxSpread := -1.0
	for d := 0; d < t.dims; d++ {
		spread := t.nodeBoundsMax[nodeID*t.dims+d] - t.nodeBoundsMin[nodeID*t.dims+d]
		if spread > maxSpread {
			maxSpread = spread
			splitDim = d
		}
	}

	t.sortByDimension(start, end, splitDim)
	mid := start + count/2

	t.nodes[nodeID] = nodeData{idxStart: start, idxEnd: end, isLeaf: false}

	t.buildNode(2*nodeID+1, start, mid)
	t.buildNode(2*nodeID+2, mid, end)
}

// computeNodeBounds computes min/max per dimension for points idxArray[start:end].
func (t *KDTree) computeNodeBounds(nodeID, start, end int) {
	base := nodeID * t.dims
	for d := 0; d < t.dims; d++ {
		t.nodeBoundsMin[base+d] = math.Inf(1)
		t.nodeBoundsMax[base+d] = math.Inf(-1)
	}
	for i := start; i < end; i++ {
		ptIdx := t.idxArray[i]
		for d := 0; d < t.dims; d++ {
			v := t.data[ptIdx*t.dims+d]
			if v < t.nodeBoundsMin[base+d] {
				t.nodeBoundsMin[base+d] = v
			}
			if v > t.nodeBoundsMax[base+d] {
				t.nodeBoundsMax[base+d] = v
			}
		}
	}
}

// sortByDimension sorts idxArray[start:end] by the given dimension.
func (t *KDTree) sortByDimension(start, end, dim int) {
	sub := t.idxArray[start:end]
	dims := t.dims
	data := t.data
	sort.Slice(sub, func(i, j int) bool {
		return data[sub[i]*dims+dim] < data[sub[j]*dims+dim]
	})
}

// NumPoints returns the number of indexed points.
func (t *KDTree) NumPoints() int { return t.n }

// NumFeatures returns the dimensionality of the indexed points.
func (t *KDTree) NumFeatures() int { return t.dims }

// Query returns the Euclidean distances to the k nearest indexed points,
// sorted ascending. When fewer than k points are indexed, all of them are
// returned. eps trades accuracy for speed: a subtree is only descended when
// it could contain a point closer than kth/(1+eps), so each returned
// distance is within a factor (1+eps) of the true one. eps = 0 gives exact
// results.
//
// When the index was built over a set containing the query point itself,
// the first distance is 0; callers wanting the nearest other point should
// ask for k = 2 and take the second distance.
func (t *KDTree) Query(point []float64, k int, eps float64) []float64 {
	if k < 1 {
		return nil
	}
	h := &knnHeap{}
	heap.Init(h)
	t.knnSearch(0, point, k, eps, h)

	// Extract results sorted by distance (ascending).
	dists := make([]float64, h.Len())
	for i := len(dists) - 1; i >= 0; i-- {
		dists[i] = rdistToDist(heap.Pop(h).(float64))
	}
	return dists
}

// knnSearch performs a single-tree traversal using a max-heap of size k,
// working entirely in reduced-distance (squared) space.
func (t *KDTree) knnSearch(nodeID int, query []float64, k int, eps float64, h *knnHeap) {
	if nodeID >= len(t.nodes) {
		return
	}
	node := t.nodes[nodeID]
	if node.idxStart == node.idxEnd && nodeID != 0 {
		return // uninitialized node
	}

	if node.isLeaf {
		for i := node.idxStart; i < node.idxEnd; i++ {
			ptIdx := t.idxArray[i]
			pt := t.data[ptIdx*t.dims : (ptIdx+1)*t.dims]
			rd := euclideanRdist(query, pt)
			if h.Len() < k {
				heap.Push(h, rd)
			} else if rd < (*h)[0] {
				(*h)[0] = rd
				heap.Fix(h, 0)
			}
		}
		return
	}

	// Visit the nearer child first.
	left := 2*nodeID + 1
	right := 2*nodeID + 2

	leftRdist := t.minRdistPoint(left, query)
	rightRdist := t.minRdistPoint(right, query)

	nearChild, farChild := left, right
	farRdist := rightRdist
	if rightRdist < leftRdist {
		nearChild, farChild = right, left
		farRdist = leftRdist
	}

	t.knnSearch(nearChild, query, k, eps, h)

	// Descend the far child only if it could hold a point closer than the
	// current k-th distance shrunk by the approximation slack.
	if h.Len() < k || distToRdist(rdistToDist((*h)[0])/(1+eps)) > farRdist {
		t.knnSearch(farChild, query, k, eps, h)
	}
}

// minRdistPoint returns a lower bound in reduced-distance space on the
// distance between a point and any point in the given node's bounding box.
func (t *KDTree) minRdistPoint(nodeID int, point []float64) float64 {
	if nodeID >= len(t.nodes) {
		return math.Inf(1)
	}
	base := nodeID * t.dims
	var rdist float64
	for j := 0; j < t.dims; j++ {
		lo := t.nodeBoundsMin[base+j]
		hi := t.nodeBoundsMax[base+j]
		var d float64
		if point[j] < lo {
			d = lo - point[j]
		} else if point[j] > hi {
			d = point[j] - hi
		}
		rdist += d * d
	}
	return rdist
}

// knnHeap is a max-heap of reduced distances (largest on top) used as a
// bounded priority queue for k-NN queries.
type knnHeap []float64

func (h knnHeap) Len() int           { return len(h) }
func (h knnHeap) Less(i, j int) bool { return h[i] > h[j] } // max-heap
func (h knnHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *knnHeap) Push(x any)        { *h = append(*h, x.(float64)) }
func (h *knnHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
