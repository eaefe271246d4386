// Package main provides the entry point for the spot CLI.
package main

import (
	"os"

	"github.com/spotcli/spot/cmd/spot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
