// Package main is the entry point for the basket-match CLI.
package main

import (
	"os"

	"basket-match/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
