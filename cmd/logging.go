package cmd

import (
	"github.com/Remotion/Fast-BVH/log"
	"github.com/urfave/cli"
)

var logger = log.New("fastbvh")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
