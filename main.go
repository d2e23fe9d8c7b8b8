package main

import (
	"os"

	"github.com/Remotion/Fast-BVH/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "fastbvh"
	app.Usage = "build bounding volume hierarchies and trace rays against them"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render the demo sphere cube scene",
			Description: `
Pack a number of random spheres into a cube, build a BVH over them and render
a single frame by tracing one ray per pixel, coloring hit points by their
surface normal. Demonstrates the build and closest-hit query entry points.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "spheres",
					Value: 1000000,
					Usage: "number of spheres to generate",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 800,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 800,
					Usage: "frame height",
				},
				cli.Float64Flag{
					Name:  "fov",
					Value: 70.0,
					Usage: "vertical field of view in degrees",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "seed for the sphere generator",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "render.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: cmd.RenderScene,
		},
		{
			Name:  "stats",
			Usage: "print statistics for a demo sphere cube BVH",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "spheres",
					Value: 1000000,
					Usage: "number of spheres to generate",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "seed for the sphere generator",
				},
			},
			Action: cmd.TreeStats,
		},
	}

	app.Run(os.Args)
}
