package main

import (
	"os"

	"github.com/conneroisu/chordlint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
