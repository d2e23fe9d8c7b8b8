package bvh

import "math"

// A Traverser answers ray queries against a hierarchy using a caller
// supplied intersector. It holds non-owning references to both; the
// hierarchy and the intersector must stay alive for as long as queries run
// through the traverser.
//
// Traversal reads no mutable state, so a single traverser (or several
// traversers sharing one hierarchy) may be used from many goroutines at
// once.
type Traverser[O any] struct {
	bvh       *BVH[O]
	intersect Intersector[O]
}

// Create a traverser for the given hierarchy and intersector.
func NewTraverser[O any](bvh *BVH[O], intersect Intersector[O]) *Traverser[O] {
	return &Traverser[O]{bvh: bvh, intersect: intersect}
}

// An entry on the explicit traversal stack: a node index plus the entry
// distance of the ray into that node's box at the time it was pushed.
type traversalEntry struct {
	nodeIndex uint32
	tNear     float32
}

// Traverse casts a ray through the hierarchy.
//
// With anyHit set the query returns as soon as some object intersection with
// a positive distance is found; which object gets reported is unspecified.
// Otherwise the globally closest intersection is returned. In both modes a
// miss is reported as a zero Intersection with T set to +Inf.
//
// Hits at or behind the ray origin (t <= 0) are rejected, so rays starting
// on an object surface do not report the surface they originate from.
func (tr *Traverser[O]) Traverse(ray *Ray, anyHit bool) Intersection[O] {
	best := Intersection[O]{T: float32(math.Inf(1))}

	nodes := tr.bvh.nodes
	if len(nodes) == 0 {
		return best
	}

	rootNear, _, ok := nodes[0].bounds.Intersect(ray)
	if !ok {
		return best
	}

	stack := make([]traversalEntry, 1, maxTreeDepth)
	stack[0] = traversalEntry{nodeIndex: 0, tNear: rootNear}

	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// A closer hit was recorded after this entry was pushed
		if entry.tNear > best.T {
			continue
		}

		n := &nodes[entry.nodeIndex]
		if n.isLeaf() {
			for i := n.start; i < n.start+n.count; i++ {
				isect := tr.intersect(&tr.bvh.objects[i], ray)
				if !isect.Hit || isect.T <= 0 || isect.T >= best.T {
					continue
				}
				if anyHit {
					return isect
				}
				best = isect
			}
			continue
		}

		left := entry.nodeIndex + 1
		right := n.rightChild

		lNear, _, lHit := nodes[left].bounds.Intersect(ray)
		rNear, _, rHit := nodes[right].bounds.Intersect(ray)

		// Prune subtrees that cannot produce a hit closer than the current
		// best
		if lHit && lNear >= best.T {
			lHit = false
		}
		if rHit && rNear >= best.T {
			rHit = false
		}

		switch {
		case lHit && rHit:
			// Push the farther child first so the nearer one is processed
			// first, tightening the distance bound sooner
			if lNear > rNear {
				left, right = right, left
				lNear, rNear = rNear, lNear
			}
			stack = append(stack,
				traversalEntry{nodeIndex: right, tNear: rNear},
				traversalEntry{nodeIndex: left, tNear: lNear},
			)
		case lHit:
			stack = append(stack, traversalEntry{nodeIndex: left, tNear: lNear})
		case rHit:
			stack = append(stack, traversalEntry{nodeIndex: right, tNear: rNear})
		}
	}

	return best
}
