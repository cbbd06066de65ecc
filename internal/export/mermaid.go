package export

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dusk-indust/involve/internal/graph"
)

// GenerateMermaid produces a Mermaid graph TD diagram from an import
// graph store. Project modules become plain nodes, external specifiers
// dashed ones; import edges become arrows.
func GenerateMermaid(ctx context.Context, store graph.Store) (string, error) {
	modules, err := store.Modules(ctx)
	if err != nil {
		return "", fmt.Errorf("get modules: %w", err)
	}
	edges, err := store.Edges(ctx)
	if err != nil {
		return "", fmt.Errorf("get edges: %w", err)
	}

	// Build node → ID mapping for Mermaid (alphanumeric only).
	nodeIDs := make(map[string]string)
	nextID := 0
	getID := func(path string) string {
		if id, ok := nodeIDs[path]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		nodeIDs[path] = id
		return id
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	sorted := make([]graph.ModuleNode, len(modules))
	copy(sorted, modules)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	for _, m := range sorted {
		label := shortPath(m.Path)
		if m.External {
			sb.WriteString(fmt.Sprintf("  %s([\"%s\"])\n", getID(m.Path), label))
		} else {
			sb.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", getID(m.Path), label))
		}
	}

	// Collapse duplicate arrows: several member imports of one module
	// are a single dependency visually.
	seen := make(map[string]bool)
	for _, e := range edges {
		key := e.From + "->" + e.To
		if seen[key] {
			continue
		}
		seen[key] = true
		sb.WriteString(fmt.Sprintf("  %s --> %s\n", getID(e.From), getID(e.To)))
	}

	return sb.String(), nil
}

// shortPath returns the last 2 path segments for readability.
func shortPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) <= 2 {
		return path
	}
	return strings.Join(parts[len(parts)-2:], "/")
}
