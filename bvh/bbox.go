package bvh

import (
	"math"

	"github.com/Remotion/Fast-BVH/types"
)

type Axis uint8

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

// A BBox is an axis-aligned bounding box described by its min and max
// corners. A non-empty box satisfies Min[axis] <= Max[axis] on every axis.
type BBox struct {
	Min types.Vec3
	Max types.Vec3
}

// Define a bounding box from its two corners.
func NewBBox(min, max types.Vec3) BBox {
	return BBox{Min: min, Max: max}
}

// An inverted box that any point or box extends into a valid one. Used as
// the seed value when accumulating bounds over a set of items.
func emptyBBox() BBox {
	return BBox{
		Min: types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Grow the box to enclose a point.
func (b BBox) ExtendPoint(p types.Vec3) BBox {
	return BBox{Min: types.MinVec3(b.Min, p), Max: types.MaxVec3(b.Max, p)}
}

// Grow the box to enclose another box.
func (b BBox) Extend(other BBox) BBox {
	return BBox{Min: types.MinVec3(b.Min, other.Min), Max: types.MaxVec3(b.Max, other.Max)}
}

// Get the box center.
func (b BBox) Centroid() types.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Get the box side lengths.
func (b BBox) Extent() types.Vec3 {
	return b.Max.Sub(b.Min)
}

// Get the total surface area of the box faces.
func (b BBox) SurfaceArea() float32 {
	side := b.Extent()
	return 2.0 * (side[0]*side[1] + side[1]*side[2] + side[0]*side[2])
}

// Get the axis along which the box extends the most.
func (b BBox) MajorAxis() Axis {
	side := b.Extent()
	axis := XAxis
	if side[YAxis] > side[axis] {
		axis = YAxis
	}
	if side[ZAxis] > side[axis] {
		axis = ZAxis
	}
	return axis
}

// Intersect performs a slab test between the box and a ray. It returns the
// parametric entry/exit distances of the ray through the box and a flag
// indicating whether the box is hit at all. Boxes that lie entirely behind
// the ray origin are reported as missed.
//
// Zero direction components resolve through the signed infinities of the
// precalculated inverse direction rather than an explicit branch.
func (b BBox) Intersect(r *Ray) (tNear, tFar float32, hit bool) {
	tNear = float32(math.Inf(-1))
	tFar = float32(math.Inf(1))

	for axis := XAxis; axis <= ZAxis; axis++ {
		t1 := (b.Min[axis] - r.Origin[axis]) * r.InvDir[axis]
		t2 := (b.Max[axis] - r.Origin[axis]) * r.InvDir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tNear = max(tNear, t1)
		tFar = min(tFar, t2)
	}

	if tNear > tFar || tFar < 0 {
		return 0, 0, false
	}
	return tNear, tFar, true
}

// Report whether the box fully encloses another box.
func (b BBox) Contains(other BBox) bool {
	for axis := XAxis; axis <= ZAxis; axis++ {
		if other.Min[axis] < b.Min[axis] || other.Max[axis] > b.Max[axis] {
			return false
		}
	}
	return true
}
