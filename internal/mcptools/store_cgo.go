//go:build cgo

package mcptools

import "github.com/dusk-indust/involve/internal/graph"

// openPersistentStore opens a file-backed KuzuDB store for graph
// persistence.
func openPersistentStore(dbPath string) (graph.Store, error) {
	return graph.NewKuzuFileStore(dbPath)
}
