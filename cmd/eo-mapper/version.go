package main

import (
	"fmt"

	cli "gopkg.in/urfave/cli.v1"
)

var version = "0.1.0"

func versionAction(*cli.Context) {
	fmt.Println("eo-mapper " + version)
}
