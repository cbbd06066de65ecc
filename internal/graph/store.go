package graph

import (
	"context"
	"io"
)

// Store is the interface for persisted import graphs built by the graph
// subcommand. Implementations: KuzuStore (persistent), MemStore (in-memory,
// also used by tests).
type Store interface {
	io.Closer

	// Schema setup, called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations.
	AddModule(ctx context.Context, node ModuleNode) error
	AddImport(ctx context.Context, edge ImportEdge) error

	// Read operations.
	Modules(ctx context.Context) ([]ModuleNode, error)
	Edges(ctx context.Context) ([]ImportEdge, error)

	// Importers returns every module that transitively imports the given
	// module, up to maxDepth hops.
	Importers(ctx context.Context, path string, maxDepth int) ([]string, error)

	// Stats.
	Stats(ctx context.Context) (*GraphStats, error)
}
