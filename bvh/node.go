package bvh

// Bvh nodes are stored in a single flat slice laid out in pre-order: a node
// is immediately followed by its entire left subtree, then its right
// subtree. The left child of an internal node therefore always sits at the
// node's own index + 1 and only the right child index is stored explicitly.
// Node 0 is the root.
//
// A node with count > 0 is a leaf owning the half-open range
// [start, start+count) of the hierarchy's object slice. Leaf ranges never
// overlap and together cover the whole slice. Internal nodes have count == 0.
type node struct {
	bounds BBox

	start      uint32
	count      uint32
	rightChild uint32
}

func (n *node) isLeaf() bool {
	return n.count > 0
}
