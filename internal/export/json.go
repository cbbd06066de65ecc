package export

import (
	"context"
	"fmt"

	"github.com/dusk-indust/involve/internal/graph"
)

// GraphExport is the top-level JSON export structure for an indexed
// import graph.
type GraphExport struct {
	Modules []graph.ModuleNode `json:"modules"`
	Edges   []graph.ImportEdge `json:"edges"`
	Stats   graph.GraphStats   `json:"stats"`
}

// BuildGraphExport reads an entire store into an exportable structure.
func BuildGraphExport(ctx context.Context, store graph.Store) (*GraphExport, error) {
	modules, err := store.Modules(ctx)
	if err != nil {
		return nil, fmt.Errorf("get modules: %w", err)
	}
	edges, err := store.Edges(ctx)
	if err != nil {
		return nil, fmt.Errorf("get edges: %w", err)
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return &GraphExport{
		Modules: modules,
		Edges:   edges,
		Stats:   *stats,
	}, nil
}
