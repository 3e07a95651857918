package main

import (
	"os"

	"github.com/provability/provability/cmd/provd/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
