package export

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/involve/internal/graph"
)

func seededStore(t *testing.T) *graph.MemStore {
	t.Helper()
	ctx := context.Background()
	s := graph.NewMemStore()

	require.NoError(t, s.AddModule(ctx, graph.ModuleNode{Path: "pkg/util.py", Language: graph.LangPython}))
	require.NoError(t, s.AddModule(ctx, graph.ModuleNode{Path: "tests/test_a.py", Language: graph.LangPython}))
	require.NoError(t, s.AddModule(ctx, graph.ModuleNode{Path: "numpy", External: true}))
	require.NoError(t, s.AddImport(ctx, graph.ImportEdge{From: "tests/test_a.py", To: "pkg/util.py", Kind: graph.ImportMember, Member: "helper"}))
	require.NoError(t, s.AddImport(ctx, graph.ImportEdge{From: "tests/test_a.py", To: "pkg/util.py", Kind: graph.ImportMember, Member: "other_fn"}))
	require.NoError(t, s.AddImport(ctx, graph.ImportEdge{From: "tests/test_a.py", To: "numpy", Kind: graph.ImportModule}))
	return s
}

func TestBuildGraphExport(t *testing.T) {
	exp, err := BuildGraphExport(context.Background(), seededStore(t))
	require.NoError(t, err)

	assert.Len(t, exp.Modules, 3)
	assert.Len(t, exp.Edges, 3)
	assert.Equal(t, 3, exp.Stats.ModuleCount)
	assert.Equal(t, 1, exp.Stats.ExternalCount)

	data, err := json.Marshal(exp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"modules"`)
	assert.Contains(t, string(data), `"edges"`)
	assert.Contains(t, string(data), `"stats"`)
}

func TestGenerateMermaid(t *testing.T) {
	out, err := GenerateMermaid(context.Background(), seededStore(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `["pkg/util.py"]`)
	assert.Contains(t, out, `(["numpy"])`, "external modules use stadium nodes")

	// Two member imports of the same module collapse to one arrow.
	assert.Equal(t, 2, strings.Count(out, "-->"))
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "util.py", shortPath("util.py"))
	assert.Equal(t, "pkg/util.py", shortPath("pkg/util.py"))
	assert.Equal(t, "deep/nested.py", shortPath("pkg/deep/nested.py"))
}
