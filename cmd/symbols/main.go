// Package main is the entry point for the symbols CLI.
package main

import (
	"os"

	"github.com/f3rmion/symbols/cmd/symbols/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
