package bvh

import "github.com/Remotion/Fast-BVH/types"

// A Ray is a half-line described by its origin and direction. Callers are
// expected to pass in a normalized direction; the library does not enforce
// this. The inverse direction is precalculated once so that the slab test
// can replace divisions with multiplications; zero direction components
// yield infinite inverse components which the slab test tolerates.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
	InvDir types.Vec3
}

// Define a ray from its origin and direction.
func NewRay(origin, dir types.Vec3) Ray {
	return Ray{
		Origin: origin,
		Dir:    dir,
		InvDir: types.Vec3{1.0 / dir[0], 1.0 / dir[1], 1.0 / dir[2]},
	}
}
