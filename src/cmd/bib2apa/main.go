package main

import (
	"fmt"
	"os"

	"bib2apa/src/cmd/bib2apa/citecmd"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = citecmd.New()

func execute() error {
	rootCmd.Version = Version
	return rootCmd.Execute()
}

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
