package bvh

import (
	"math"
	"testing"

	"github.com/Remotion/Fast-BVH/types"
)

func TestNewRayInverseDir(t *testing.T) {
	ray := NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 2, -4))

	if !math.IsInf(float64(ray.InvDir[0]), 1) {
		t.Fatalf("expected zero direction component to invert to +Inf; got %f", ray.InvDir[0])
	}
	if !floatsEqual(ray.InvDir[1], 0.5) {
		t.Fatalf("expected inverse direction 0.5; got %f", ray.InvDir[1])
	}
	if !floatsEqual(ray.InvDir[2], -0.25) {
		t.Fatalf("expected inverse direction -0.25; got %f", ray.InvDir[2])
	}
}
