package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var targetFiles = []string{
	"pkg/__init__.py",
	"pkg/util.py",
	"pkg/models.py",
	"unrelated.py",
	"tests/test_a.py",
}

func TestParseTargets_FilePath(t *testing.T) {
	spec, err := ParseTargets("/nonexistent", targetFiles, nil, []string{"pkg/util.py"})
	require.NoError(t, err)

	entry, ok := spec.Entries()["pkg/util.py"]
	require.True(t, ok)
	assert.True(t, entry.HasFullImport)
	assert.Empty(t, entry.Members)
}

func TestParseTargets_FileMember(t *testing.T) {
	spec, err := ParseTargets("/nonexistent", targetFiles, nil, []string{"pkg/util.py::helper"})
	require.NoError(t, err)

	entry, ok := spec.Entries()["pkg/util.py"]
	require.True(t, ok)
	assert.False(t, entry.HasFullImport)
	assert.True(t, entry.Members["helper"])
}

func TestParseTargets_DottedModule(t *testing.T) {
	spec, err := ParseTargets("/nonexistent", targetFiles, nil, []string{"pkg.util::helper"})
	require.NoError(t, err)

	_, ok := spec.Entries()["pkg.util"]
	assert.False(t, ok, "dotted form must canonicalize to the file path")

	entry, ok := spec.Entries()["pkg/util.py"]
	require.True(t, ok)
	assert.True(t, entry.Members["helper"])
	assert.Contains(t, spec.keysFor("pkg/util.py"), "pkg.util", "dotted alias is kept for leaf matching")
}

func TestParseTargets_MergesEntriesForSamePath(t *testing.T) {
	spec, err := ParseTargets("/nonexistent", targetFiles, nil,
		[]string{"pkg/util.py::helper", "pkg.util::other_fn"})
	require.NoError(t, err)

	require.Len(t, spec.Entries(), 1)
	entry := spec.Entries()["pkg/util.py"]
	require.NotNil(t, entry)
	assert.True(t, entry.Members["helper"])
	assert.True(t, entry.Members["other_fn"])
}

func TestParseTargets_Describe(t *testing.T) {
	spec, err := ParseTargets("/nonexistent", targetFiles, nil,
		[]string{"unrelated.py", "pkg/util.py::helper"})
	require.NoError(t, err)

	assert.Equal(t, []string{"pkg/util.py::helper", "unrelated.py"}, spec.Describe())
}

func TestParseTargets_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
	}{
		{name: "no targets", raw: nil},
		{name: "double member separator", raw: []string{"pkg/util.py::a::b"}},
		{name: "missing file", raw: []string{"pkg/missing.py"}},
		{name: "unresolvable dotted module", raw: []string{"no.such.module"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTargets("/nonexistent", targetFiles, nil, tt.raw)
			assert.Error(t, err)
		})
	}
}
