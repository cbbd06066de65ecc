//go:build !cgo

package mcptools

import (
	"fmt"

	"github.com/dusk-indust/involve/internal/graph"
)

// openPersistentStore reports that persistent graphs need a cgo build.
func openPersistentStore(string) (graph.Store, error) {
	return nil, fmt.Errorf("persistent graph storage requires a cgo-enabled build")
}
