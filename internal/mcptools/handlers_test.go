package mcptools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/involve/internal/graph"
)

// Handlers are exercised directly; the fixture project lives at
// ../../testdata/fixtures/py_project.
const pyFixtureRoot = "../../testdata/fixtures/py_project"

func newService(t *testing.T) *InvolveService {
	t.Helper()
	parser := graph.NewTreeSitterParser()
	t.Cleanup(func() { parser.Close() })
	return NewInvolveService(parser, nil)
}

func TestSelectTests(t *testing.T) {
	svc := newService(t)

	_, out, err := svc.SelectTests(context.Background(), nil, SelectTestsInput{
		Root:      pyFixtureRoot,
		Involving: []string{"pkg/util.py"},
	})
	require.NoError(t, err)

	assert.Contains(t, out.Selected, "tests/test_a.py")
	assert.NotContains(t, out.Selected, "tests/test_b.py")
	assert.GreaterOrEqual(t, out.Candidates, len(out.Selected))
	assert.Equal(t, []string{"pkg/util.py"}, out.Targets)
}

func TestSelectTests_ExplicitCandidates(t *testing.T) {
	svc := newService(t)

	_, out, err := svc.SelectTests(context.Background(), nil, SelectTestsInput{
		Root:      pyFixtureRoot,
		Involving: []string{"pkg/util.py"},
		TestFiles: []string{"tests/test_a.py", "tests/test_b.py"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"tests/test_a.py"}, out.Selected)
	assert.Equal(t, 2, out.Candidates)
}

func TestSelectTests_Validation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, _, err := svc.SelectTests(ctx, nil, SelectTestsInput{Involving: []string{"x"}})
	assert.Error(t, err, "root is required")

	_, _, err = svc.SelectTests(ctx, nil, SelectTestsInput{Root: pyFixtureRoot})
	assert.Error(t, err, "involving is required")

	_, _, err = svc.SelectTests(ctx, nil, SelectTestsInput{
		Root:      pyFixtureRoot,
		Involving: []string{"pkg/missing.py"},
	})
	assert.Error(t, err, "unknown target fails fast")
}

func TestReachableModules(t *testing.T) {
	svc := newService(t)

	_, out, err := svc.ReachableModules(context.Background(), nil, ReachableModulesInput{
		Root:     pyFixtureRoot,
		TestFile: pyFixtureRoot + "/tests/test_models.py",
	})
	require.NoError(t, err)
	require.Equal(t, len(out.Modules), out.Total)

	byModule := make(map[string]ModuleImports, len(out.Modules))
	for _, m := range out.Modules {
		byModule[m.Module] = m
	}

	models, ok := byModule["pkg/models.py"]
	require.True(t, ok)
	assert.Equal(t, []string{"Model"}, models.Members)

	util, ok := byModule["pkg/util.py"]
	require.True(t, ok, "transitive import must be reported")
	assert.Equal(t, []string{"helper"}, util.Members)
}

func TestReachableModules_Validation(t *testing.T) {
	svc := newService(t)

	_, _, err := svc.ReachableModules(context.Background(), nil, ReachableModulesInput{
		Root: pyFixtureRoot,
	})
	assert.Error(t, err, "testFile is required")
}

func TestBuildImportGraph(t *testing.T) {
	svc := newService(t)

	_, out, err := svc.BuildImportGraph(context.Background(), nil, BuildImportGraphInput{
		Root: pyFixtureRoot,
	})
	require.NoError(t, err)

	assert.Greater(t, out.Stats.ModuleCount, 0)
	assert.Greater(t, out.Stats.EdgeCount, 0)
	assert.Greater(t, out.Stats.ExternalCount, 0, "numpy import shows up as an external module")
}

func TestBuildImportGraph_BadRoot(t *testing.T) {
	svc := newService(t)

	_, _, err := svc.BuildImportGraph(context.Background(), nil, BuildImportGraphInput{
		Root: "/nonexistent/path",
	})
	assert.Error(t, err)
}
