package cmd

import (
	"math"
	"math/rand"

	"github.com/Remotion/Fast-BVH/bvh"
	"github.com/Remotion/Fast-BVH/types"
)

// The demo object type. The core library never inspects it; sphereBBox and
// sphereIntersect bridge it into build and query calls.
type sphere struct {
	center types.Vec3
	r, r2  float32
}

func newSphere(center types.Vec3, radius float32) sphere {
	return sphere{center: center, r: radius, r2: radius * radius}
}

// Generate count spheres of the given radius with centers uniformly
// distributed inside the [-1, 1] cube.
func sphereCube(count int, radius float32, seed int64) []sphere {
	rng := rand.New(rand.NewSource(seed))
	list := make([]sphere, count)
	for i := range list {
		center := types.XYZ(rng.Float32(), rng.Float32(), rng.Float32()).
			Mul(2).
			Sub(types.XYZ(1, 1, 1))
		list[i] = newSphere(center, radius)
	}
	return list
}

// Calculate the bounding box for a sphere.
func sphereBBox(s *sphere) bvh.BBox {
	delta := types.XYZ(s.r, s.r, s.r)
	return bvh.NewBBox(s.center.Sub(delta), s.center.Add(delta))
}

// Calculate the intersection of a ray and a sphere. The nearer of the two
// candidate distances is reported; rays starting inside a sphere yield a
// negative distance which traversal rejects.
func sphereIntersect(s *sphere, ray *bvh.Ray) bvh.Intersection[sphere] {
	oc := s.center.Sub(ray.Origin)
	sd := oc.Dot(ray.Dir)

	// Complex discriminant: no intersection
	disc := sd*sd - oc.Dot(oc) + s.r2
	if disc < 0 {
		return bvh.Intersection[sphere]{}
	}

	t := sd - float32(math.Sqrt(float64(disc)))
	hitPos := ray.Origin.Add(ray.Dir.Mul(t))

	return bvh.Intersection[sphere]{
		Hit:    true,
		T:      t,
		Object: s,
		Normal: hitPos.Sub(s.center).Normalize(),
	}
}
