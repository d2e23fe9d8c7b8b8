package cmd

import (
	"fmt"

	"github.com/Remotion/Fast-BVH/bvh"
	"github.com/urfave/cli"
)

// Build a BVH for the demo sphere cube scene and print a statistics table.
func TreeStats(ctx *cli.Context) error {
	setupLogging(ctx)

	count := ctx.Int("spheres")
	logger.Noticef("constructing %d spheres", count)
	spheres := sphereCube(count, demoSphereRadius, ctx.Int64("seed"))

	tree := bvh.Build(spheres, sphereBBox)
	fmt.Println(tree.Stats())
	return nil
}
