// Package main provides the entry point for vecbench, a small CLI wrapper
// over the vectorengine library used to exercise it end to end: load a
// blob, save a blob of random documents, run an ad hoc benchmark, print
// cache stats.
package main

import (
	"os"

	"github.com/Aman-CERP/vectorengine/cmd/vecbench/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
