// Package main provides the entry point for the schemasync CLI tool.
package main

import "github.com/closeops/schemasync/cmd/schemasync/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
