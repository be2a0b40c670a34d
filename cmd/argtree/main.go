package main

import (
	"os"

	"github.com/msto63/argtree/cmd/argtree/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
