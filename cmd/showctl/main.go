// Package main is the entry point for the showctl CLI tool.
package main

import (
	"os"

	"github.com/good-yellow-bee/mcp-showcase/cmd/showctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
