package graph

import (
	"context"
	"sort"
	"sync"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu      sync.RWMutex
	modules map[string]ModuleNode
	edges   []ImportEdge
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{
		modules: make(map[string]ModuleNode),
	}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// AddModule stores a module node keyed by its path. Re-adding a path
// keeps the non-external version if either insert was internal.
func (m *MemStore) AddModule(_ context.Context, node ModuleNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.modules[node.Path]; ok && !existing.External {
		return nil
	}
	m.modules[node.Path] = node
	return nil
}

// AddImport appends an import edge.
func (m *MemStore) AddImport(_ context.Context, edge ImportEdge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges = append(m.edges, edge)
	return nil
}

// Modules returns all module nodes sorted by path.
func (m *MemStore) Modules(_ context.Context) ([]ModuleNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ModuleNode, 0, len(m.modules))
	for _, n := range m.modules {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Edges returns all import edges in insertion order.
func (m *MemStore) Edges(_ context.Context) ([]ImportEdge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ImportEdge, len(m.edges))
	copy(out, m.edges)
	return out, nil
}

// Importers walks import edges backwards from path with a visited set,
// collecting every module that transitively imports it.
func (m *MemStore) Importers(_ context.Context, path string, maxDepth int) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if maxDepth <= 0 {
		maxDepth = 10
	}

	// Reverse adjacency: imported path -> importers.
	reverse := make(map[string][]string)
	for _, e := range m.edges {
		reverse[e.To] = append(reverse[e.To], e.From)
	}

	visited := map[string]bool{path: true}
	frontier := []string{path}
	var result []string

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, cur := range frontier {
			for _, importer := range reverse[cur] {
				if visited[importer] {
					continue
				}
				visited[importer] = true
				result = append(result, importer)
				next = append(next, importer)
			}
		}
		frontier = next
	}

	sort.Strings(result)
	return result, nil
}

// Stats returns module and edge counts.
func (m *MemStore) Stats(_ context.Context) (*GraphStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	external := 0
	for _, n := range m.modules {
		if n.External {
			external++
		}
	}
	return &GraphStats{
		ModuleCount:   len(m.modules),
		ExternalCount: external,
		EdgeCount:     len(m.edges),
	}, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}
