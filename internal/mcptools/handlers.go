package mcptools

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/involve/internal/graph"
	"github.com/dusk-indust/involve/internal/selector"
)

// InvolveService backs the MCP tool handlers. The parser is shared
// across calls; everything else is rebuilt per request because each
// request may name a different project root.
type InvolveService struct {
	parser graph.Parser
	logger *slog.Logger
}

// NewInvolveService creates an InvolveService. logger may be nil.
func NewInvolveService(parser graph.Parser, logger *slog.Logger) *InvolveService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InvolveService{parser: parser, logger: logger}
}

func checkRoot(root string) error {
	if root == "" {
		return fmt.Errorf("root is required")
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("cannot access root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root is not a directory: %s", root)
	}
	return nil
}

func toLanguages(names []string) []graph.Language {
	out := make([]graph.Language, 0, len(names))
	for _, n := range names {
		out = append(out, graph.Language(n))
	}
	return out
}

// SelectTests filters candidate test files down to the ones whose
// transitive imports touch the targets.
func (s *InvolveService) SelectTests(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SelectTestsInput,
) (*mcp.CallToolResult, SelectTestsOutput, error) {
	if err := checkRoot(input.Root); err != nil {
		return nil, SelectTestsOutput{}, err
	}
	if len(input.Involving) == 0 {
		return nil, SelectTestsOutput{}, fmt.Errorf("involving is required")
	}

	sel, err := selector.New(selector.Options{
		Root:        input.Root,
		Involving:   input.Involving,
		Languages:   toLanguages(input.Languages),
		ExcludeDirs: input.ExcludeDirs,
		SourceRoots: input.SourceRoots,
		Parser:      s.parser,
		Logger:      s.logger,
	})
	if err != nil {
		return nil, SelectTestsOutput{}, err
	}

	candidates := input.TestFiles
	if len(candidates) == 0 {
		candidates = sel.FindTestFiles()
	}

	selected, err := sel.Select(ctx, candidates)
	if err != nil {
		return nil, SelectTestsOutput{}, fmt.Errorf("select: %w", err)
	}

	return nil, SelectTestsOutput{
		Selected:   selected,
		Candidates: len(candidates),
		Targets:    sel.Targets().Describe(),
	}, nil
}

// ReachableModules computes the transitive import closure of one test file.
func (s *InvolveService) ReachableModules(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReachableModulesInput,
) (*mcp.CallToolResult, ReachableModulesOutput, error) {
	if err := checkRoot(input.Root); err != nil {
		return nil, ReachableModulesOutput{}, err
	}
	if input.TestFile == "" {
		return nil, ReachableModulesOutput{}, fmt.Errorf("testFile is required")
	}

	files, err := graph.ScanFiles(input.Root, toLanguages(input.Languages), input.ExcludeDirs)
	if err != nil {
		return nil, ReachableModulesOutput{}, err
	}

	walker := selector.NewWalker(input.Root, files, input.SourceRoots, s.parser, s.logger)
	reach, err := walker.ReachableSet(ctx, input.TestFile)
	if err != nil {
		return nil, ReachableModulesOutput{}, fmt.Errorf("reachable set: %w", err)
	}

	out := make([]ModuleImports, 0, len(reach))
	for module, set := range reach {
		members := make([]string, 0, len(set.Members))
		for m := range set.Members {
			members = append(members, m)
		}
		sort.Strings(members)
		out = append(out, ModuleImports{
			Module:     module,
			FullImport: set.HasFullImport,
			Members:    members,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Module < out[j].Module })

	return nil, ReachableModulesOutput{Modules: out, Total: len(out)}, nil
}

// BuildImportGraph indexes a repository's import graph, optionally
// persisting it to a KuzuDB directory.
func (s *InvolveService) BuildImportGraph(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BuildImportGraphInput,
) (*mcp.CallToolResult, BuildImportGraphOutput, error) {
	if err := checkRoot(input.Root); err != nil {
		return nil, BuildImportGraphOutput{}, err
	}

	var store graph.Store
	if input.DBPath != "" {
		persistent, err := openPersistentStore(input.DBPath)
		if err != nil {
			return nil, BuildImportGraphOutput{}, fmt.Errorf("open graph store: %w", err)
		}
		store = persistent
	} else {
		store = graph.NewMemStore()
	}
	defer store.Close()

	indexer := graph.NewIndexer(s.parser, s.logger)
	stats, err := indexer.Index(ctx, graph.IndexOptions{
		Root:        input.Root,
		Languages:   toLanguages(input.Languages),
		ExcludeDirs: input.ExcludeDirs,
		SourceRoots: input.SourceRoots,
	}, store)
	if err != nil {
		return nil, BuildImportGraphOutput{}, fmt.Errorf("index: %w", err)
	}

	return nil, BuildImportGraphOutput{Stats: *stats}, nil
}
