package graph

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// ScanFiles walks root and returns repo-relative slash paths of source
// files in the allowed languages. Directories named in excludeDirs (and
// .git) are skipped. Inaccessible paths are skipped silently.
func ScanFiles(root string, langs []Language, excludeDirs []string) ([]string, error) {
	allowed := make(map[Language]bool, len(langs))
	if len(langs) == 0 {
		for _, l := range SupportedLanguages {
			allowed[l] = true
		}
	} else {
		for _, l := range langs {
			allowed[l] = true
		}
	}

	excludeSet := make(map[string]bool, len(excludeDirs))
	for _, d := range excludeDirs {
		excludeSet[d] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if name == ".git" || excludeSet[name] {
				return filepath.SkipDir
			}
			return nil
		}
		lang, ok := LanguageForPath(p)
		if !ok || !allowed[lang] {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			rel = p
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

// IndexOptions controls a whole-repository indexing run.
type IndexOptions struct {
	Root        string
	Languages   []Language
	ExcludeDirs []string
	SourceRoots []string
}

// Indexer builds a repository's import graph into a Store: one Module
// node per source file, one IMPORTS edge per import record. Unresolvable
// specifiers become external leaf nodes.
type Indexer struct {
	parser Parser
	logger *slog.Logger
}

// NewIndexer creates an Indexer. logger may be nil.
func NewIndexer(parser Parser, logger *slog.Logger) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{parser: parser, logger: logger}
}

// Index scans the repository, extracts and resolves every import, and
// populates store. Unreadable or unparseable files contribute no edges
// but do not abort the run.
func (ix *Indexer) Index(ctx context.Context, opts IndexOptions, store Store) (*GraphStats, error) {
	files, err := ScanFiles(opts.Root, opts.Languages, opts.ExcludeDirs)
	if err != nil {
		return nil, err
	}

	if err := store.InitSchema(ctx); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	resolver := NewResolver(opts.Root, files, opts.SourceRoots)

	for _, file := range files {
		lang, _ := LanguageForPath(file)
		if err := store.AddModule(ctx, ModuleNode{Path: file, Language: lang}); err != nil {
			return nil, fmt.Errorf("add module %s: %w", file, err)
		}
	}

	for _, file := range files {
		lang, _ := LanguageForPath(file)

		source, err := os.ReadFile(filepath.Join(opts.Root, filepath.FromSlash(file)))
		if err != nil {
			ix.logger.Warn("skipping unreadable file", "path", file, "error", err)
			continue
		}

		parsed, err := ix.parser.Parse(ctx, file, source, lang)
		if err != nil {
			ix.logger.Warn("skipping unparseable file", "path", file, "error", err)
			continue
		}

		for _, rec := range parsed.Records {
			targets, ok := resolver.Resolve(rec, file, lang)
			if !ok {
				// External dependency: record a leaf node so the edge is
				// still visible in exports.
				if err := store.AddModule(ctx, ModuleNode{Path: rec.Module, External: true}); err != nil {
					return nil, fmt.Errorf("add external %s: %w", rec.Module, err)
				}
				targets = []string{rec.Module}
			}
			for _, target := range targets {
				edge := ImportEdge{From: file, To: target, Kind: rec.Kind, Member: rec.Member}
				if err := store.AddImport(ctx, edge); err != nil {
					return nil, fmt.Errorf("add edge %s->%s: %w", file, target, err)
				}
			}

			// A member import can also name a submodule; when that
			// reading resolves, add whole-module edges to it.
			subTargets, ok := resolver.ResolveSubmodule(rec, file, lang)
			if !ok {
				continue
			}
			for _, target := range subTargets {
				edge := ImportEdge{From: file, To: target, Kind: ImportModule}
				if err := store.AddImport(ctx, edge); err != nil {
					return nil, fmt.Errorf("add edge %s->%s: %w", file, target, err)
				}
			}
		}
	}

	return store.Stats(ctx)
}
