package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pyResolver(files []string, srcRoots ...string) *Resolver {
	return NewResolver("/nonexistent", files, srcRoots)
}

func TestResolvePython(t *testing.T) {
	files := []string{
		"pkg/__init__.py",
		"pkg/util.py",
		"pkg/models.py",
		"pkg/deep/__init__.py",
		"pkg/deep/nested.py",
		"unrelated.py",
	}

	tests := []struct {
		name   string
		rec    ImportRecord
		source string
		want   string
		ok     bool
	}{
		{
			name: "absolute module",
			rec:  ImportRecord{Module: "pkg.util", Kind: ImportModule},
			want: "pkg/util.py", ok: true,
		},
		{
			name: "absolute package falls back to init",
			rec:  ImportRecord{Module: "pkg", Kind: ImportModule},
			want: "pkg/__init__.py", ok: true,
		},
		{
			name: "top level module",
			rec:  ImportRecord{Module: "unrelated", Kind: ImportModule},
			want: "unrelated.py", ok: true,
		},
		{
			name:   "relative one level",
			rec:    ImportRecord{Module: "util", Kind: ImportMember, Member: "helper", Level: 1},
			source: "pkg/models.py",
			want:   "pkg/util.py", ok: true,
		},
		{
			name:   "relative two levels",
			rec:    ImportRecord{Module: "util", Kind: ImportMember, Member: "other_fn", Level: 2},
			source: "pkg/deep/nested.py",
			want:   "pkg/util.py", ok: true,
		},
		{
			// The member reading of "from . import util"; the sibling
			// module reading is covered by TestResolveSubmodule.
			name:   "bare dot member reading is the package init",
			rec:    ImportRecord{Module: "", Kind: ImportMember, Member: "util", Level: 1},
			source: "pkg/models.py",
			want:   "pkg/__init__.py", ok: true,
		},
		{
			name: "third party is external",
			rec:  ImportRecord{Module: "numpy", Kind: ImportModule},
			ok:   false,
		},
	}

	r := pyResolver(files)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.rec, tt.source, LangPython)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Len(t, got, 1)
				assert.Equal(t, tt.want, got[0])
			}
		})
	}
}

func TestResolveSubmodule(t *testing.T) {
	r := pyResolver([]string{
		"pkg/__init__.py",
		"pkg/util.py",
		"pkg/models.py",
		"pkg/deep/__init__.py",
	})

	tests := []struct {
		name   string
		rec    ImportRecord
		source string
		want   string
		ok     bool
	}{
		{
			name: "absolute member naming a submodule",
			rec:  ImportRecord{Module: "pkg", Kind: ImportMember, Member: "util"},
			want: "pkg/util.py", ok: true,
		},
		{
			name:   "bare dot member naming a sibling module",
			rec:    ImportRecord{Module: "", Kind: ImportMember, Member: "util", Level: 1},
			source: "pkg/models.py",
			want:   "pkg/util.py", ok: true,
		},
		{
			name: "member naming a subpackage",
			rec:  ImportRecord{Module: "pkg", Kind: ImportMember, Member: "deep"},
			want: "pkg/deep/__init__.py", ok: true,
		},
		{
			name: "plain function member",
			rec:  ImportRecord{Module: "pkg.util", Kind: ImportMember, Member: "helper"},
			ok:   false,
		},
		{
			name: "module import is not reinterpreted",
			rec:  ImportRecord{Module: "pkg.util", Kind: ImportModule},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.ResolveSubmodule(tt.rec, tt.source, LangPython)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Len(t, got, 1)
				assert.Equal(t, tt.want, got[0])
			}
		})
	}

	// Only Python member imports have the submodule ambiguity.
	_, ok := r.ResolveSubmodule(
		ImportRecord{Module: "./pkg", Kind: ImportMember, Member: "util"}, "src/app.ts", LangTypeScript)
	assert.False(t, ok)
}

func TestResolvePython_SourceRoots(t *testing.T) {
	r := pyResolver([]string{"src/myapp/core.py"}, "src")

	got, ok := r.Resolve(ImportRecord{Module: "myapp.core", Kind: ImportModule}, "", LangPython)
	require.True(t, ok)
	assert.Equal(t, []string{"src/myapp/core.py"}, got)

	_, ok = r.Resolve(ImportRecord{Module: "myapp.missing", Kind: ImportModule}, "", LangPython)
	assert.False(t, ok)
}

func TestResolveTS(t *testing.T) {
	files := []string{
		"src/util.ts",
		"src/app.ts",
		"src/components/index.ts",
		"src/app.test.ts",
	}
	r := NewResolver("/nonexistent", files, []string{"src"})

	tests := []struct {
		name      string
		specifier string
		source    string
		want      string
		ok        bool
	}{
		{name: "relative sibling", specifier: "./util", source: "src/app.ts", want: "src/util.ts", ok: true},
		{name: "relative parent", specifier: "../util", source: "src/components/index.ts", want: "src/util.ts", ok: true},
		{name: "directory index", specifier: "./components", source: "src/app.ts", want: "src/components/index.ts", ok: true},
		{name: "baseUrl alias", specifier: "util", source: "src/app.ts", want: "src/util.ts", ok: true},
		{name: "node_modules package", specifier: "react", source: "src/app.ts", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(ImportRecord{Module: tt.specifier, Kind: ImportModule}, tt.source, LangTypeScript)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Len(t, got, 1)
				assert.Equal(t, tt.want, got[0])
			}
		})
	}
}

func TestResolveGo(t *testing.T) {
	files := []string{
		"go.mod",
		"service.go",
		"service_test.go",
		"store/store.go",
		"store/store_test.go",
	}
	// Tests run from internal/graph/, so the fixture root is two levels up.
	r := NewResolver("../../testdata/fixtures/go_project", files, nil)
	require.Equal(t, "example.com/fixture", r.goModPath, "module path read from go.mod")

	got, ok := r.Resolve(ImportRecord{Module: "example.com/fixture/store", Kind: ImportModule}, "service.go", LangGo)
	require.True(t, ok)
	assert.Equal(t, []string{"store/store.go"}, got, "test files are not part of the imported package")

	got, ok = r.Resolve(ImportRecord{Module: "example.com/fixture", Kind: ImportModule}, "", LangGo)
	require.True(t, ok)
	assert.Equal(t, []string{"service.go"}, got)

	_, ok = r.Resolve(ImportRecord{Module: "fmt", Kind: ImportModule}, "service.go", LangGo)
	assert.False(t, ok, "stdlib imports are external")

	_, ok = r.Resolve(ImportRecord{Module: "example.com/other/pkg", Kind: ImportModule}, "service.go", LangGo)
	assert.False(t, ok)
}

func TestResolveRust(t *testing.T) {
	files := []string{
		"src/main.rs",
		"src/util.rs",
		"src/store/mod.rs",
		"src/store/disk.rs",
	}
	r := NewResolver("/nonexistent", files, nil)

	tests := []struct {
		name      string
		specifier string
		source    string
		want      string
		ok        bool
	}{
		{name: "crate module", specifier: "crate::util", source: "src/main.rs", want: "src/util.rs", ok: true},
		{name: "crate mod.rs", specifier: "crate::store", source: "src/main.rs", want: "src/store/mod.rs", ok: true},
		{name: "crate nested", specifier: "crate::store::disk", source: "src/main.rs", want: "src/store/disk.rs", ok: true},
		{name: "self sibling", specifier: "self::disk", source: "src/store/mod.rs", want: "src/store/disk.rs", ok: true},
		{name: "super", specifier: "super::util", source: "src/store/disk.rs", want: "src/util.rs", ok: true},
		{name: "external crate", specifier: "serde::Deserialize", source: "src/main.rs", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(ImportRecord{Module: tt.specifier, Kind: ImportModule}, tt.source, LangRust)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Len(t, got, 1)
				assert.Equal(t, tt.want, got[0])
			}
		})
	}
}
