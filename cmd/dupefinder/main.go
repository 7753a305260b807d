// Package main is the entry point for the dupefinder CLI tool.
package main

import (
	"os"

	"github.com/morroware/DupeFInder/internal/buildinfo"
	"github.com/morroware/DupeFInder/internal/cli"
)

// Build-time metadata injected via ldflags; mirrored into internal/buildinfo
// so every package (cli's version command included) reads one source.
var (
	version   = "dev"
	commit    = "none"
	date      = "unknown"
	goVersion = "unknown"
)

func main() {
	buildinfo.Version = version
	buildinfo.Commit = commit
	buildinfo.Date = date
	buildinfo.GoVersion = goVersion

	os.Exit(cli.Execute())
}
