package graph

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Resolver maps raw import specifiers to repo-relative source file paths.
// It is built once per run from the set of known project files, so
// resolution is pure map probing with no filesystem I/O.
//
// A specifier that cannot be resolved is an external dependency, which is
// a normal outcome, not an error.
type Resolver struct {
	repoRoot  string
	fileSet   map[string]bool
	dirIndex  map[string][]string
	srcRoots  []string
	goModPath string
}

// NewResolver builds a Resolver from the repository root and the set of
// known repo-relative file paths. srcRoots are extra directories (such as
// "src") that absolute Python and TypeScript specifiers are probed
// against, in addition to the repo root.
func NewResolver(repoRoot string, knownFiles []string, srcRoots []string) *Resolver {
	r := &Resolver{
		repoRoot: repoRoot,
		fileSet:  make(map[string]bool, len(knownFiles)),
		dirIndex: make(map[string][]string),
		srcRoots: append([]string{"."}, srcRoots...),
	}

	for _, f := range knownFiles {
		f = filepath.ToSlash(f)
		r.fileSet[f] = true
		dir := path.Dir(f)
		r.dirIndex[dir] = append(r.dirIndex[dir], f)
	}

	r.scanGoMod()

	return r
}

// Resolve maps one import record to the repo-relative paths of the files
// it refers to. Most specifiers resolve to a single file; a Go import
// resolves to every file of the imported package. ok is false when the
// specifier points outside the project.
func (r *Resolver) Resolve(rec ImportRecord, sourceFile string, lang Language) ([]string, bool) {
	switch lang {
	case LangPython:
		p, ok := r.resolvePython(rec, sourceFile)
		if !ok {
			return nil, false
		}
		return []string{p}, true
	case LangTypeScript:
		p, ok := r.resolveTS(rec.Module, sourceFile)
		if !ok {
			return nil, false
		}
		return []string{p}, true
	case LangGo:
		return r.resolveGo(rec.Module)
	case LangRust:
		p, ok := r.resolveRust(rec.Module, sourceFile)
		if !ok {
			return nil, false
		}
		return []string{p}, true
	default:
		return nil, false
	}
}

// ResolveSubmodule reinterprets a Python member import as a submodule
// import: "from pkg import util" can name the module pkg/util.py rather
// than a member of pkg/__init__.py, and "from . import sibling" can name
// a sibling module of the importing file's package. Returns the
// submodule's file when that reading resolves; everything the submodule
// defines must then be treated as imported wholesale.
func (r *Resolver) ResolveSubmodule(rec ImportRecord, sourceFile string, lang Language) ([]string, bool) {
	if lang != LangPython || rec.Kind != ImportMember || rec.Member == "" {
		return nil, false
	}
	sub := rec
	sub.Kind = ImportModule
	sub.Member = ""
	if sub.Module == "" {
		sub.Module = rec.Member
	} else {
		sub.Module = rec.Module + "." + rec.Member
	}
	return r.Resolve(sub, sourceFile, lang)
}

// --- Python resolution ---

// resolvePython implements the two-phase lookup: a relative specifier
// walks Level directories up from the importing file's package, an
// absolute one is probed from each source root. Both fall back from
// "pkg/mod.py" to the package form "pkg/mod/__init__.py".
func (r *Resolver) resolvePython(rec ImportRecord, sourceFile string) (string, bool) {
	relPath := strings.ReplaceAll(rec.Module, ".", "/")

	if rec.Level > 0 {
		// One dot is the importing file's own package, each extra dot
		// one directory further up.
		baseDir := path.Dir(filepath.ToSlash(sourceFile))
		for i := 1; i < rec.Level; i++ {
			baseDir = path.Dir(baseDir)
		}
		if rec.Module == "" {
			// "from . import x" — the package itself.
			return r.probeFile(path.Join(baseDir, "__init__"), []string{".py"})
		}
		return r.probeFile(path.Join(baseDir, relPath), []string{".py", "/__init__.py"})
	}

	for _, root := range r.srcRoots {
		if p, ok := r.probeFile(path.Join(root, relPath), []string{".py", "/__init__.py"}); ok {
			return p, true
		}
	}
	return "", false
}

// --- TypeScript resolution ---

var tsExtensions = []string{".ts", ".tsx", ".js", ".jsx", "/index.ts", "/index.tsx", "/index.js"}

func (r *Resolver) resolveTS(specifier, sourceFile string) (string, bool) {
	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") {
		sourceDir := path.Dir(filepath.ToSlash(sourceFile))
		base := path.Clean(path.Join(sourceDir, specifier))
		return r.probeFile(base, tsExtensions)
	}

	// Bare specifiers are usually node_modules packages, but projects with
	// a baseUrl alias their own roots; probe those before giving up.
	for _, root := range r.srcRoots {
		if p, ok := r.probeFile(path.Join(root, specifier), tsExtensions); ok {
			return p, true
		}
	}
	return "", false
}

// --- Go resolution ---

// resolveGo maps an import path under the repo's module path to every
// non-test .go file of the imported package. Importing a Go package pulls
// in all of its files, so each one becomes a graph node.
func (r *Resolver) resolveGo(importPath string) ([]string, bool) {
	if r.goModPath == "" {
		return nil, false
	}
	if importPath != r.goModPath && !strings.HasPrefix(importPath, r.goModPath+"/") {
		return nil, false // stdlib or external module
	}

	relDir := strings.TrimPrefix(importPath, r.goModPath)
	relDir = strings.TrimPrefix(relDir, "/")
	if relDir == "" {
		relDir = "."
	}

	files := r.dirIndex[relDir]
	if len(files) == 0 {
		return nil, false
	}

	sorted := make([]string, 0, len(files))
	for _, f := range files {
		if strings.HasSuffix(f, ".go") && !strings.HasSuffix(f, "_test.go") {
			sorted = append(sorted, f)
		}
	}
	if len(sorted) == 0 {
		return nil, false
	}
	sort.Strings(sorted)
	return sorted, true
}

// --- Rust resolution ---

func (r *Resolver) resolveRust(importPath, sourceFile string) (string, bool) {
	switch {
	case importPath == "crate" || strings.HasPrefix(importPath, "crate::"):
		modulePath := strings.TrimPrefix(importPath, "crate")
		modulePath = strings.TrimPrefix(modulePath, "::")
		relPath := strings.ReplaceAll(modulePath, "::", "/")

		candidates := []string{path.Join("src", relPath), relPath}
		if srcDir := findCrateRoot(sourceFile); srcDir != "" {
			candidates = append(candidates, path.Join(srcDir, relPath))
		}
		for _, base := range candidates {
			if resolved, ok := r.probeFile(base, []string{".rs", "/mod.rs"}); ok {
				return resolved, true
			}
		}
		return "", false

	case strings.HasPrefix(importPath, "self::"):
		relPath := strings.ReplaceAll(strings.TrimPrefix(importPath, "self::"), "::", "/")
		base := path.Join(path.Dir(filepath.ToSlash(sourceFile)), relPath)
		return r.probeFile(base, []string{".rs", "/mod.rs"})

	case strings.HasPrefix(importPath, "super::"):
		relPath := strings.ReplaceAll(strings.TrimPrefix(importPath, "super::"), "::", "/")
		parentDir := path.Dir(path.Dir(filepath.ToSlash(sourceFile)))
		base := path.Join(parentDir, relPath)
		return r.probeFile(base, []string{".rs", "/mod.rs"})

	default:
		return "", false // external crate
	}
}

// findCrateRoot walks up from a file path to the nearest "src" directory,
// the conventional Rust crate source root.
func findCrateRoot(filePath string) string {
	dir := path.Dir(filepath.ToSlash(filePath))
	for dir != "." && dir != "/" && dir != "" {
		if path.Base(dir) == "src" {
			return dir
		}
		dir = path.Dir(dir)
	}
	return ""
}

// --- Shared helpers ---

// probeFile checks basePath with each extension appended against the
// known file set. An entry starting with "/" is a package-index probe
// ("/__init__.py", "/mod.rs", "/index.ts").
func (r *Resolver) probeFile(basePath string, extensions []string) (string, bool) {
	basePath = path.Clean(basePath)
	if r.fileSet[basePath] {
		return basePath, true
	}
	for _, ext := range extensions {
		candidate := path.Clean(basePath + ext)
		if r.fileSet[candidate] {
			return candidate, true
		}
	}
	return "", false
}

// scanGoMod reads the module path from go.mod at the repo root, if present.
func (r *Resolver) scanGoMod() {
	f, err := os.Open(filepath.Join(r.repoRoot, "go.mod"))
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "module ") {
			r.goModPath = strings.TrimSpace(strings.TrimPrefix(line, "module"))
			return
		}
	}
}
