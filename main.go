package main

import (
	"os"

	"github.com/supakorn-kn/go-library/cmd"
)

func main() {

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
