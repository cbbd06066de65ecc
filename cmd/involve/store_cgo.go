//go:build cgo

package main

import "github.com/dusk-indust/involve/internal/graph"

func openGraphStore(dbPath string) (graph.Store, error) {
	return graph.NewKuzuFileStore(dbPath)
}
