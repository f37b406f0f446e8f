// Package main implements the go-callgraph-oracle CLI (gco).
// It provides commands for synthesizing call-topology test programs,
// extracting ground-truth call graphs, and diffing analyzer output.
package main

import (
	"os"

	"github.com/l3aro/go-callgraph-oracle/cmd/gco/commands"
)

var (
	version   = "dev"
	buildTime = ""
)

func main() {
	commands.RootCmd.Version = version
	commands.RootCmd.SetVersionTemplate(`gco version {{.Version}}
`)

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
