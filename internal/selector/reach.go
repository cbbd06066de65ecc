package selector

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/dusk-indust/involve/internal/graph"
)

// ImportSet records how a single module is pulled into a file: whether
// the module itself is imported wholesale, and which of its members are
// named. It is used both for the imports accumulated while walking a
// test file and for the entries of a target specification, so deciding
// whether a test touches a target is a plain set comparison.
type ImportSet struct {
	Module        string
	HasFullImport bool
	Members       map[string]bool
}

// newImportSet returns an empty ImportSet for the given module identity.
func newImportSet(module string) *ImportSet {
	return &ImportSet{Module: module, Members: make(map[string]bool)}
}

// addRecord folds one import record into the set. Whole-module and star
// imports both mark the full import: either way, everything the module
// defines has to be assumed reachable.
func (s *ImportSet) addRecord(rec graph.ImportRecord) {
	switch rec.Kind {
	case graph.ImportMember:
		s.Members[rec.Member] = true
	case graph.ImportModule, graph.ImportWildcard:
		s.HasFullImport = true
	}
}

// ReachableSet maps a module identity to its ImportSet. The identity is
// the resolved repo-relative path for project modules, or the raw
// specifier for external dead-end leaves.
type ReachableSet map[string]*ImportSet

func (r ReachableSet) add(key string, rec graph.ImportRecord) {
	set, ok := r[key]
	if !ok {
		set = newImportSet(key)
		r[key] = set
	}
	set.addRecord(rec)
}

// Walker computes the transitive import closure of test files. It is
// safe for concurrent use: the memo cache of per-module import records
// is guarded by a mutex, and recomputing an entry is idempotent.
type Walker struct {
	root     string
	fileSet  map[string]bool
	parser   graph.Parser
	resolver *graph.Resolver
	logger   *slog.Logger

	mu   sync.Mutex
	memo map[string][]graph.ImportRecord
}

// NewWalker creates a Walker over the project rooted at root. files is
// the set of known repo-relative source paths (from graph.ScanFiles);
// srcRoots are extra roots for absolute specifier resolution. logger may
// be nil.
func NewWalker(root string, files []string, srcRoots []string, parser graph.Parser, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.Default()
	}
	fileSet := make(map[string]bool, len(files))
	for _, f := range files {
		fileSet[f] = true
	}
	return &Walker{
		root:     root,
		fileSet:  fileSet,
		parser:   parser,
		resolver: graph.NewResolver(root, files, srcRoots),
		logger:   logger,
		memo:     make(map[string][]graph.ImportRecord),
	}
}

// Rel canonicalizes a file path to the repo-relative slash form used as
// module identity throughout the walker. A relative path naming a known
// project file is taken as root-relative; anything else is resolved
// against the working directory.
func (w *Walker) Rel(p string) (string, error) {
	if !filepath.IsAbs(p) {
		slashed := path.Clean(filepath.ToSlash(p))
		if w.fileSet[slashed] {
			return slashed, nil
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", err
		}
		p = abs
	}
	absRoot, err := filepath.Abs(w.root)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absRoot, p)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// ReachableSet expands the import frontier from testFile until no new
// modules are discovered, returning everything the file transitively
// imports. Each module is visited at most once, so cycles and diamond
// imports terminate without duplicate work. Unresolvable specifiers are
// recorded as leaves and not expanded.
func (w *Walker) ReachableSet(ctx context.Context, testFile string) (ReachableSet, error) {
	start, err := w.Rel(testFile)
	if err != nil {
		return nil, fmt.Errorf("canonicalize %s: %w", testFile, err)
	}
	if _, ok := graph.LanguageForPath(start); !ok {
		return nil, fmt.Errorf("unsupported file type: %s", testFile)
	}

	result := make(ReachableSet)
	visited := make(map[string]bool)
	frontier := []string{start}

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		node := frontier[0]
		frontier = frontier[1:]
		if visited[node] {
			continue
		}
		visited[node] = true

		lang, ok := graph.LanguageForPath(node)
		if !ok {
			continue
		}

		for _, rec := range w.imports(ctx, node, lang) {
			targets, resolved := w.resolver.Resolve(rec, node, lang)
			if !resolved {
				// Third-party or missing module: keep the raw specifier
				// so dotted-path targets can still match, but do not
				// expand it.
				result.add(rec.Module, rec)
			}
			for _, target := range targets {
				result.add(target, rec)
				if !visited[target] {
					frontier = append(frontier, target)
				}
			}

			// "from pkg import util" can name the submodule pkg/util.py
			// rather than a member of pkg/__init__.py. When that reading
			// resolves, the whole submodule is in play.
			subTargets, ok := w.resolver.ResolveSubmodule(rec, node, lang)
			if !ok {
				continue
			}
			full := graph.ImportRecord{Module: rec.Module, Kind: graph.ImportModule}
			for _, target := range subTargets {
				result.add(target, full)
				if !visited[target] {
					frontier = append(frontier, target)
				}
			}
		}
	}

	return result, nil
}

// imports returns the direct import records of one module, reading and
// parsing it on first use. A file that cannot be read or parsed yields
// no imports; a broken file must not abort the whole run.
func (w *Walker) imports(ctx context.Context, node string, lang graph.Language) []graph.ImportRecord {
	w.mu.Lock()
	if records, ok := w.memo[node]; ok {
		w.mu.Unlock()
		return records
	}
	w.mu.Unlock()

	records := w.extract(ctx, node, lang)

	w.mu.Lock()
	w.memo[node] = records
	w.mu.Unlock()
	return records
}

func (w *Walker) extract(ctx context.Context, node string, lang graph.Language) []graph.ImportRecord {
	source, err := os.ReadFile(filepath.Join(w.root, filepath.FromSlash(node)))
	if err != nil {
		w.logger.Warn("treating unreadable file as having no imports", "path", node, "error", err)
		return nil
	}

	parsed, err := w.parser.Parse(ctx, node, source, lang)
	if err != nil {
		w.logger.Warn("treating unparseable file as having no imports", "path", node, "error", err)
		return nil
	}
	return parsed.Records
}
