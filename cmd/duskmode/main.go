package main

import (
	"os"

	"github.com/duskmode/duskmode/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
