package cmd

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"time"

	"github.com/Remotion/Fast-BVH/bvh"
	"github.com/Remotion/Fast-BVH/types"
	"github.com/urfave/cli"
)

const demoSphereRadius float32 = 0.005

// Render the demo sphere cube scene to a png file.
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	count := ctx.Int("spheres")
	width := ctx.Int("width")
	height := ctx.Int("height")
	fovDegrees := float32(ctx.Float64("fov"))
	outFile := ctx.String("out")

	if err := validateFrameDims(width, height); err != nil {
		logger.Error(err)
		return err
	}

	logger.Noticef("constructing %d spheres", count)
	spheres := sphereCube(count, demoSphereRadius, ctx.Int64("seed"))

	start := time.Now()
	tree := bvh.Build(spheres, sphereBBox)
	logger.Noticef(
		"built BVH (%d nodes, with %d leafs) in %d ms",
		tree.NodeCount(), tree.LeafCount(),
		time.Since(start).Nanoseconds()/1e6,
	)

	// Camera tangent space from position and focus point
	camPos := types.XYZ(1.6, 1.3, 1.6)
	camDir := types.XYZ(0, 0, 0).Sub(camPos).Normalize()
	camUp := types.XYZ(0, 1, 0)
	camU := camDir.Cross(camUp).Normalize()
	camV := camU.Cross(camDir).Normalize()
	planeDist := float32(0.5 / math.Tan(float64(fovDegrees)*math.Pi/360.0))

	traverser := bvh.NewTraverser(tree, sphereIntersect)

	logger.Noticef("rendering %dx%d frame", width, height)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u := (float32(x)+0.5)/float32(width-1) - 0.5
			v := (float32(height-1-y)+0.5)/float32(height-1) - 0.5

			// Only valid for square aspect ratio frames
			dir := camU.Mul(u).Add(camV.Mul(v)).Add(camDir.Mul(planeDist)).Normalize()
			ray := bvh.NewRay(camPos, dir)

			res := traverser.Traverse(&ray, false)
			if !res.Hit {
				img.Set(x, y, color.RGBA{A: 255})
				continue
			}

			// Color hit points by their surface normal
			img.Set(x, y, color.RGBA{
				R: colorComponent(res.Normal[0]),
				G: colorComponent(res.Normal[1]),
				B: colorComponent(res.Normal[2]),
				A: 255,
			})
		}
	}

	f, err := os.Create(outFile)
	if err != nil {
		logger.Error(err)
		return err
	}
	defer f.Close()

	if err = png.Encode(f, img); err != nil {
		logger.Error(err)
		return err
	}

	logger.Noticef("wrote frame to %s", outFile)
	return nil
}

// The ray grid divides by dimension-1, so frames below 2x2 cannot be
// rendered.
func validateFrameDims(width, height int) error {
	if width < 2 || height < 2 {
		return fmt.Errorf("frame dimensions must be at least 2x2; got %dx%d", width, height)
	}
	return nil
}

// Map the absolute value of a normal component to a color channel.
func colorComponent(v float32) uint8 {
	c := float32(math.Abs(float64(v))) * 255.0
	if c > 255 {
		c = 255
	}
	return uint8(c)
}
