// Piccolor - A deterministic image palette analyzer
//
// Piccolor extracts dominant colour palettes from images and lays them
// out as proportional canvas mosaics.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/piccolor/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
