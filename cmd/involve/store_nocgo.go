//go:build !cgo

package main

import (
	"fmt"

	"github.com/dusk-indust/involve/internal/graph"
)

func openGraphStore(string) (graph.Store, error) {
	return nil, fmt.Errorf("--db requires a cgo-enabled build")
}
