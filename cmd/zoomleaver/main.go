package main

import (
	"os"

	"github.com/dooshek/zoomleaver/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
