package bvh

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"

	"github.com/Remotion/Fast-BVH/types"
	"github.com/olekukonko/tablewriter"
)

// BoxConverter calculates the bounding box of an object. The builder invokes
// it exactly once per object.
type BoxConverter[O any] func(obj *O) BBox

// Intersector calculates the intersection of an object and a ray. The
// traverser invokes it for every candidate object whose leaf is reached by
// a query.
type Intersector[O any] func(obj *O, ray *Ray) Intersection[O]

// An Intersection describes the result of testing an object against a ray.
// Object points into the storage of the hierarchy the query ran against and
// remains valid only for as long as that hierarchy is alive. Normal is only
// meaningful when Hit is set.
type Intersection[O any] struct {
	Hit    bool
	T      float32
	Object *O
	Normal types.Vec3
}

// A BVH is an immutable bounding volume hierarchy over a set of objects. It
// exclusively owns both the flat node slice and the spatially reordered
// object slice produced by the builder. Once built it carries no mutable
// state, so any number of goroutines may run queries against it
// concurrently.
type BVH[O any] struct {
	nodes   []node
	objects []O

	leafCount int
	maxDepth  int
}

// Get the total number of tree nodes.
func (b *BVH[O]) NodeCount() int {
	return len(b.nodes)
}

// Get the number of leaf nodes.
func (b *BVH[O]) LeafCount() int {
	return b.leafCount
}

// Get the depth of the deepest leaf. An empty hierarchy has depth 0.
func (b *BVH[O]) Depth() int {
	return b.maxDepth
}

// Build a tabular representation of hierarchy statistics.
func (b *BVH[O]) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Nodes", strconv.Itoa(len(b.nodes))})
	table.Append([]string{"Leafs", strconv.Itoa(b.leafCount)})
	table.Append([]string{"Max depth", strconv.Itoa(b.maxDepth)})
	table.Append([]string{"Objects", strconv.Itoa(len(b.objects))})
	table.Append([]string{"Node storage", fmtSize(b.nodes)})
	table.Append([]string{"Object storage", fmtSize(b.objects)})
	table.Render()
	return buf.String()
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	var totalBytes float32 = 0.0
	for _, item := range items {
		t := reflect.TypeOf(item)
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += float32(int(t.Elem().Size()) * v.Len())
	}

	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}
