package main

import (
	"os"

	"github.com/msto63/xentpl/cmd/xentpl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
