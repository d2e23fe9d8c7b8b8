package bvh

import (
	"math/rand"
	"testing"

	"github.com/Remotion/Fast-BVH/types"
)

type testVolume struct {
	min, max types.Vec3
}

func volumeBBox(v *testVolume) BBox {
	return NewBBox(v.min, v.max)
}

// Generate count small volumes with centers uniformly distributed inside
// the [-1, 1] cube.
func randomVolumes(count int, seed int64) []testVolume {
	rng := rand.New(rand.NewSource(seed))
	out := make([]testVolume, count)
	for i := range out {
		center := types.XYZ(rng.Float32(), rng.Float32(), rng.Float32()).
			Mul(2).
			Sub(types.XYZ(1, 1, 1))
		delta := types.XYZ(rng.Float32(), rng.Float32(), rng.Float32()).Mul(0.05)
		out[i] = testVolume{min: center.Sub(delta), max: center.Add(delta)}
	}
	return out
}

func TestBuildEmpty(t *testing.T) {
	tree := Build([]testVolume{}, volumeBBox)

	if tree.NodeCount() != 0 {
		t.Fatalf("expected empty hierarchy to have 0 nodes; got %d", tree.NodeCount())
	}
	if tree.LeafCount() != 0 {
		t.Fatalf("expected empty hierarchy to have 0 leafs; got %d", tree.LeafCount())
	}
}

func TestBuildSingleObject(t *testing.T) {
	volumes := []testVolume{
		{min: types.XYZ(-1, -1, -1), max: types.XYZ(1, 1, 1)},
	}
	tree := Build(volumes, volumeBBox)

	if tree.NodeCount() != 1 {
		t.Fatalf("expected hierarchy to have 1 node; got %d", tree.NodeCount())
	}
	if tree.LeafCount() != 1 {
		t.Fatalf("expected hierarchy to have 1 leaf; got %d", tree.LeafCount())
	}

	root := &tree.nodes[0]
	if !root.isLeaf() || root.start != 0 || root.count != 1 {
		t.Fatalf("expected root leaf covering range [0, 1); got start %d, count %d", root.start, root.count)
	}

	expBox := volumeBBox(&volumes[0])
	if root.bounds != expBox {
		t.Fatalf("expected root box %v; got %v", expBox, root.bounds)
	}
}

func TestBuildNodeCounts(t *testing.T) {
	// Four well separated volumes in the corners of a square
	volumes := []testVolume{
		{types.XYZ(-2, 0, -2), types.XYZ(-1, 1, -1)},
		{types.XYZ(1, 0, -2), types.XYZ(2, 1, -1)},
		{types.XYZ(-2, 0, 1), types.XYZ(-1, 1, 2)},
		{types.XYZ(1, 0, 1), types.XYZ(2, 1, 2)},
	}

	type spec struct {
		minLeafItems int
		expNodes     int
		expLeafs     int
	}
	specs := []spec{
		{1, 7, 4},
		{2, 3, 2},
		{4, 1, 1},
	}

	for index, s := range specs {
		objects := make([]testVolume, len(volumes))
		copy(objects, volumes)

		tree := BuildWithOptions(objects, volumeBBox, s.minLeafItems, SurfaceAreaHeuristic)
		if tree.NodeCount() != s.expNodes {
			t.Fatalf("[spec %d] expected bvh tree to have %d nodes; got %d", index, s.expNodes, tree.NodeCount())
		}
		if tree.LeafCount() != s.expLeafs {
			t.Fatalf("[spec %d] expected bvh tree to have %d leafs; got %d", index, s.expLeafs, tree.LeafCount())
		}
	}
}

func TestLeafRangesPartitionObjects(t *testing.T) {
	for index, count := range []int{1, 2, 3, 7, 64, 1000} {
		tree := Build(randomVolumes(count, int64(count)), volumeBBox)

		seen := make([]int, count)
		leafs := 0
		for i := range tree.nodes {
			n := &tree.nodes[i]
			if !n.isLeaf() {
				continue
			}
			leafs++
			for j := n.start; j < n.start+n.count; j++ {
				seen[j]++
			}
		}

		for j, c := range seen {
			if c != 1 {
				t.Fatalf("[spec %d] expected object %d to be covered by exactly one leaf; covered by %d", index, j, c)
			}
		}
		if leafs != tree.LeafCount() {
			t.Fatalf("[spec %d] expected leaf count %d; got %d", index, leafs, tree.LeafCount())
		}

		// Every internal node has exactly two children
		if expNodes := 2*leafs - 1; tree.NodeCount() != expNodes {
			t.Fatalf("[spec %d] expected node count %d for %d leafs; got %d", index, expNodes, leafs, tree.NodeCount())
		}
	}
}

func TestNodeBoxesContainChildren(t *testing.T) {
	tree := Build(randomVolumes(500, 17), volumeBBox)

	for i := range tree.nodes {
		n := &tree.nodes[i]
		if n.isLeaf() {
			for j := n.start; j < n.start+n.count; j++ {
				if box := volumeBBox(&tree.objects[j]); !n.bounds.Contains(box) {
					t.Fatalf("expected leaf %d box to contain object %d box %v; leaf box %v", i, j, box, n.bounds)
				}
			}
			continue
		}

		left := &tree.nodes[i+1]
		right := &tree.nodes[n.rightChild]
		if !n.bounds.Contains(left.bounds) {
			t.Fatalf("expected node %d box to contain left child box; node %v, child %v", i, n.bounds, left.bounds)
		}
		if !n.bounds.Contains(right.bounds) {
			t.Fatalf("expected node %d box to contain right child box; node %v, child %v", i, n.bounds, right.bounds)
		}
	}
}

func TestBuildFarFromOriginVolumes(t *testing.T) {
	// Unit-sized boxes at coordinates near 1e8, where the float32 ulp
	// dwarfs the candidate split step. The build must terminate and the
	// leaf ranges must still partition the object set.
	volumes := make([]testVolume, 8)
	for i := range volumes {
		base := types.XYZ(1e8+float32(i)*10, 0, 0)
		volumes[i] = testVolume{min: base, max: base.Add(types.XYZ(1, 1, 1))}
	}

	tree := BuildWithOptions(volumes, volumeBBox, 1, SurfaceAreaHeuristic)

	seen := make([]int, len(volumes))
	for i := range tree.nodes {
		n := &tree.nodes[i]
		if !n.isLeaf() {
			continue
		}
		for j := n.start; j < n.start+n.count; j++ {
			seen[j]++
		}
	}
	for j, c := range seen {
		if c != 1 {
			t.Fatalf("expected object %d to be covered by exactly one leaf; covered by %d", j, c)
		}
	}
}

func TestDegenerateVolumesTerminate(t *testing.T) {
	// Coincident centroids with zero extent cannot be separated by any
	// split plane; the builder must still terminate via median splits
	volumes := make([]testVolume, 64)
	for i := range volumes {
		volumes[i] = testVolume{min: types.XYZ(1, 2, 3), max: types.XYZ(1, 2, 3)}
	}

	tree := BuildWithOptions(volumes, volumeBBox, 1, SurfaceAreaHeuristic)

	seen := make([]int, len(volumes))
	for i := range tree.nodes {
		n := &tree.nodes[i]
		if !n.isLeaf() {
			continue
		}
		for j := n.start; j < n.start+n.count; j++ {
			seen[j]++
		}
	}
	for j, c := range seen {
		if c != 1 {
			t.Fatalf("expected object %d to be covered by exactly one leaf; covered by %d", j, c)
		}
	}

	if tree.Depth() > maxTreeDepth {
		t.Fatalf("expected tree depth to not exceed %d; got %d", maxTreeDepth, tree.Depth())
	}
}
