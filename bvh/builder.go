// Package bvh implements a generic bounding volume hierarchy. Objects of an
// arbitrary type are partitioned into an immutable flattened tree which can
// then answer closest-hit and any-hit ray queries in roughly logarithmic
// time. The object type is opaque to the package; callers bridge it in
// through a BoxConverter used at build time and an Intersector used at
// query time.
package bvh

import (
	"math"
	"time"

	"github.com/Remotion/Fast-BVH/log"
	"github.com/Remotion/Fast-BVH/types"
)

const (
	// DefaultMinLeafItems is the leaf size used by Build.
	DefaultMinLeafItems = 4

	// Ranges at this recursion depth become leafs regardless of their size.
	maxTreeDepth = 64

	// The builder will not attempt to calculate split candidates
	// if the node bbox along an axis is less than this threshold.
	minSideLength float32 = 1e-3

	// If the split step (calculated as side length / (1024 / depth+1))
	// is less than this threshold the builder will not evaluate
	// split candidates.
	minSplitStep float32 = 1e-5
)

var (
	// A split scoring strategy that uses the surface area heuristic (SAH).
	SurfaceAreaHeuristic SplitStrategy = surfaceAreaHeuristic{}
)

// A Bound pairs an object's bounding box with its centroid. The builder
// precalculates one Bound per object and split strategies score candidate
// planes against them.
type Bound struct {
	Box      BBox
	Centroid types.Vec3
}

// A split scoring strategy.
type SplitStrategy interface {
	// Calculate a score for splitting bounds at splitPoint along a particular Axis.
	ScoreSplit(bounds []Bound, splitAxis Axis, splitPoint float32) (leftCount, rightCount int, score float32)

	// Calculate a score for all items in bounds.
	ScorePartition(bounds []Bound) (score float32)
}

type splitScore struct {
	axis       Axis
	splitPoint float32

	leftCount, rightCount int
	score                 float32
}

type buildStats struct {
	leafs    int
	maxDepth int
}

type builder[O any] struct {
	logger log.Logger

	// The moved-in objects and their precalculated bounds. Both slices are
	// reordered in lockstep as ranges are partitioned.
	objects []O
	bounds  []Bound

	// Bvh nodes stored as a contiguous list.
	nodes []node

	// The minimum number of items that are required for creating a leaf.
	minLeafItems int

	// A channel for receiving score results.
	scoreChan chan splitScore

	// The split scoring strategy to use.
	strategy SplitStrategy

	stats buildStats
}

// Build constructs a hierarchy over objects using the default leaf size and
// the surface area heuristic. The object slice is moved into the hierarchy:
// the builder reorders it in place and the returned BVH retains it, so the
// caller must not reuse the slice afterwards.
//
// Building with an empty slice is valid and yields an empty hierarchy.
func Build[O any](objects []O, toBox BoxConverter[O]) *BVH[O] {
	return BuildWithOptions(objects, toBox, DefaultMinLeafItems, SurfaceAreaHeuristic)
}

// BuildWithOptions behaves like Build but allows the caller to select the
// minimum leaf size and the split scoring strategy. The strategy affects the
// tree shape but never query correctness.
func BuildWithOptions[O any](objects []O, toBox BoxConverter[O], minLeafItems int, strategy SplitStrategy) *BVH[O] {
	if minLeafItems < 1 {
		minLeafItems = 1
	}

	b := &builder[O]{
		logger:       log.New("builder"),
		objects:      objects,
		bounds:       make([]Bound, len(objects)),
		nodes:        make([]node, 0, 2*(len(objects)/minLeafItems)+1),
		minLeafItems: minLeafItems,
		scoreChan:    make(chan splitScore),
		strategy:     strategy,
	}

	start := time.Now()
	for i := range objects {
		box := toBox(&objects[i])
		b.bounds[i] = Bound{Box: box, Centroid: box.Centroid()}
	}
	if len(objects) > 0 {
		b.partition(0, len(objects), 0)
	}
	b.logger.Debugf(
		"BVH tree build time: %d ms, objects: %d, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start).Nanoseconds()/1e6,
		len(objects), b.stats.maxDepth, len(b.nodes), b.stats.leafs,
	)

	return &BVH[O]{
		nodes:     b.nodes,
		objects:   objects,
		leafCount: b.stats.leafs,
		maxDepth:  b.stats.maxDepth,
	}
}

// Partition the object range [start, end) and return the index of the node
// that was emitted for it.
func (b *builder[O]) partition(start, end, depth int) uint32 {
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}

	bounds := b.bounds[start:end]

	// Calculate bounding box for node
	nodeBox := emptyBBox()
	for i := range bounds {
		nodeBox = nodeBox.Extend(bounds[i].Box)
	}

	// Do we have enough items for partitioning? If not create a leaf
	if end-start <= b.minLeafItems || depth >= maxTreeDepth {
		return b.createLeaf(nodeBox, start, end)
	}

	best, found := b.selectSplit(bounds, nodeBox, depth)

	// Fall back to a median split by index when no candidate plane
	// separates the range (coincident centroids, zero extents). This keeps
	// recursion terminating for degenerate input.
	mid := start + (end-start)/2
	if found {
		mid = start + b.partitionRange(start, end, best.axis, best.splitPoint)
		if mid == start || mid == end {
			mid = start + (end-start)/2
		}
	}

	// Add node to list; the left subtree is emitted right after it and the
	// right child index is patched in once both subtrees are known.
	nodeIndex := uint32(len(b.nodes))
	b.nodes = append(b.nodes, node{bounds: nodeBox})

	b.partition(start, mid, depth+1)
	rightChild := b.partition(mid, end, depth+1)
	b.nodes[nodeIndex].rightChild = rightChild

	return nodeIndex
}

// Score candidate split planes for bounds and return the best candidate that
// improves on the score of the unsplit range.
func (b *builder[O]) selectSplit(bounds []Bound, nodeBox BBox, depth int) (splitScore, bool) {
	bestScore := b.strategy.ScorePartition(bounds)
	var best splitScore
	var found bool

	// Try partitioning along each axis and select the split with best score.
	// Candidate scoring runs in parallel.
	pendingScores := 0
	side := nodeBox.Extent()
	for axis := XAxis; axis <= ZAxis; axis++ {
		// Skip axis if bbox dimension is too small
		if side[axis] < minSideLength {
			continue
		}

		// Use coarser split steps the deeper we go
		splitStep := side[axis] / (1024.0 / float32(depth+1))
		if splitStep < minSplitStep {
			continue
		}

		// Candidate planes are derived from an integer index; accumulating
		// splitStep directly stalls when the step drops below the float32
		// ulp of the box coordinates.
		steps := int(side[axis] / splitStep)
		for i := 1; i < steps; i++ {
			splitPoint := nodeBox.Min[axis] + float32(i)*splitStep
			pendingScores++
			go func(axis Axis, splitPoint float32) {
				leftCount, rightCount, score := b.strategy.ScoreSplit(bounds, axis, splitPoint)
				b.scoreChan <- splitScore{
					axis:       axis,
					splitPoint: splitPoint,

					leftCount:  leftCount,
					rightCount: rightCount,
					score:      score,
				}
			}(axis, splitPoint)
		}
	}

	// Process all scores and pick the best split
	for ; pendingScores > 0; pendingScores-- {
		candidate := <-b.scoreChan
		if candidate.score < bestScore {
			bestScore = candidate.score
			best = candidate
			found = true
		}
	}

	return best, found
}

// Partition the object range [start, end) in place so that objects whose
// centroid lies below splitPoint along axis precede the rest. Objects and
// their bounds are swapped together. Returns the size of the left side.
func (b *builder[O]) partitionRange(start, end int, axis Axis, splitPoint float32) int {
	mid := start
	for i := start; i < end; i++ {
		if b.bounds[i].Centroid[axis] < splitPoint {
			b.bounds[i], b.bounds[mid] = b.bounds[mid], b.bounds[i]
			b.objects[i], b.objects[mid] = b.objects[mid], b.objects[i]
			mid++
		}
	}
	return mid - start
}

// Emit a leaf node covering the object range [start, end).
// Returns the index to the node in the bvh node array.
func (b *builder[O]) createLeaf(box BBox, start, end int) uint32 {
	nodeIndex := uint32(len(b.nodes))
	b.nodes = append(b.nodes, node{
		bounds: box,
		start:  uint32(start),
		count:  uint32(end - start),
	})

	b.stats.leafs++
	return nodeIndex
}

// A score implementation that uses surface area heuristic for calculating
// split scores.
type surfaceAreaHeuristic struct{}

// Score a split based on the surface area heuristic. The SAH calculates
// the split score using the formula (lower score is better):
//
// left count * left BBOX area + right count * right BBOX area.
//
// SAH avoids splits that generate empty partitions by assigning the worst
// possible score (MaxFloat32) when it encounters such cases.
func (h surfaceAreaHeuristic) ScoreSplit(bounds []Bound, axis Axis, splitPoint float32) (leftCount, rightCount int, score float32) {
	lBox := emptyBBox()
	rBox := emptyBBox()

	for i := range bounds {
		if bounds[i].Centroid[axis] < splitPoint {
			leftCount++
			lBox = lBox.Extend(bounds[i].Box)
		} else {
			rightCount++
			rBox = rBox.Extend(bounds[i].Box)
		}
	}

	// Make sure that we don't generate empty partitions
	if leftCount == 0 || rightCount == 0 {
		return leftCount, rightCount, math.MaxFloat32
	}

	score = float32(leftCount)*lBox.SurfaceArea() + float32(rightCount)*rBox.SurfaceArea()
	return leftCount, rightCount, score
}

// Calculate score for an unsplit range using formula: count * BBOX area.
//
// If bounds is empty, then this method returns the worst possible score
// (MaxFloat32).
func (h surfaceAreaHeuristic) ScorePartition(bounds []Bound) (score float32) {
	if len(bounds) == 0 {
		return math.MaxFloat32
	}

	box := emptyBBox()
	for i := range bounds {
		box = box.Extend(bounds[i].Box)
	}

	return float32(len(bounds)) * box.SurfaceArea()
}
