package selector

import (
	"context"
	"log/slog"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/involve/internal/graph"
)

// Options configures a Selector.
type Options struct {
	// Root is the project root directory.
	Root string

	// Involving are the raw target values (file paths, dotted module
	// paths, optionally ::member qualified).
	Involving []string

	// Languages restricts which source files are indexed; empty means
	// all supported languages.
	Languages []graph.Language

	// ExcludeDirs are directory names skipped while scanning.
	ExcludeDirs []string

	// SourceRoots are extra roots probed for absolute specifiers.
	SourceRoots []string

	// Parser parses source files; defaults to a TreeSitterParser.
	Parser graph.Parser

	// Logger receives traversal warnings; defaults to slog.Default().
	Logger *slog.Logger

	// Parallelism bounds concurrent reachability computations in
	// Select; zero means GOMAXPROCS.
	Parallelism int
}

// Selector answers should-run queries for candidate test files against
// a fixed target specification. Each query walks the candidate's
// transitive imports and intersects them with the targets. Safe for
// concurrent use.
type Selector struct {
	walker      *Walker
	spec        *TargetSpec
	files       []string
	parallelism int
}

// New scans the project, parses the target specification, and returns a
// ready Selector. A target that cannot be located fails here, before
// any test file is examined.
func New(opts Options) (*Selector, error) {
	if opts.Parser == nil {
		opts.Parser = graph.NewTreeSitterParser()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = runtime.GOMAXPROCS(0)
	}

	files, err := graph.ScanFiles(opts.Root, opts.Languages, opts.ExcludeDirs)
	if err != nil {
		return nil, err
	}

	spec, err := ParseTargets(opts.Root, files, opts.SourceRoots, opts.Involving)
	if err != nil {
		return nil, err
	}

	return &Selector{
		walker:      NewWalker(opts.Root, files, opts.SourceRoots, opts.Parser, opts.Logger),
		spec:        spec,
		files:       files,
		parallelism: opts.Parallelism,
	}, nil
}

// Targets returns the parsed target specification.
func (s *Selector) Targets() *TargetSpec {
	return s.spec
}

// Files returns the scanned repo-relative source files.
func (s *Selector) Files() []string {
	return s.files
}

// ShouldRun reports whether the given test file imports anything from
// the target specification, directly or transitively.
func (s *Selector) ShouldRun(ctx context.Context, testFile string) (bool, error) {
	reach, err := s.walker.ReachableSet(ctx, testFile)
	if err != nil {
		return false, err
	}
	return s.spec.Matches(reach), nil
}

// Select filters candidate test files down to the ones that should run,
// evaluating candidates in parallel. Every computation is read-only
// against the filesystem, so the only shared state is the walker's
// idempotent memo cache. The returned slice preserves sorted order.
func (s *Selector) Select(ctx context.Context, testFiles []string) ([]string, error) {
	keep := make([]bool, len(testFiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)

	for i, tf := range testFiles {
		g.Go(func() error {
			ok, err := s.ShouldRun(gctx, tf)
			if err != nil {
				return err
			}
			keep[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var selected []string
	for i, tf := range testFiles {
		if keep[i] {
			selected = append(selected, tf)
		}
	}
	sort.Strings(selected)
	return selected, nil
}
