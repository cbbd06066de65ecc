package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dusk-indust/involve/internal/config"
	"github.com/dusk-indust/involve/internal/graph"
)

// version is set by goreleaser at build time.
var version = "dev"

const usage = `involve — select tests by import reachability

Usage:
  involve select    --involving <target> [--involving ...] [flags]
  involve check     --involving <target> [flags] <test-file>
  involve graph     [--db DIR] [--format json|mermaid] [flags]
  involve serve-mcp [--addr HOST:PORT]
  involve version

A target is a source file path, a dotted importable module path, or
either followed by ::member.
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}

	switch args[0] {
	case "select":
		return runSelect(args[1:])
	case "check":
		return runCheck(args[1:])
	case "graph":
		return runGraph(args[1:])
	case "serve-mcp":
		return runServeMCP(args[1:])
	case "version":
		fmt.Println(version)
		return nil
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q (run 'involve help')", args[0])
	}
}

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// projectFlags are the flags shared by the analysis subcommands.
type projectFlags struct {
	Root        string
	Involving   stringList
	Languages   stringList
	ExcludeDirs stringList
	SourceRoots stringList
	Verbose     bool
}

func (f *projectFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.Root, "root", ".", "project root directory")
	fs.Var(&f.Involving, "involving", "target file, module, or ::member (repeatable)")
	fs.Var(&f.Languages, "lang", "language to analyze: python, typescript, go, rust (repeatable; default all)")
	fs.Var(&f.ExcludeDirs, "exclude", "directory name to skip while scanning (repeatable)")
	fs.Var(&f.SourceRoots, "source-root", "extra root probed for absolute imports, e.g. src (repeatable)")
	fs.BoolVar(&f.Verbose, "verbose", false, "enable debug logging")
}

// applyConfig overlays involve.yml settings underneath any flags the
// user did not set explicitly.
func (f *projectFlags) applyConfig() error {
	cfg, err := config.Load(f.Root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if len(f.Languages) == 0 {
		f.Languages = cfg.Languages
	}
	if len(f.ExcludeDirs) == 0 {
		f.ExcludeDirs = cfg.ExcludeDirs
	}
	if len(f.SourceRoots) == 0 {
		f.SourceRoots = cfg.SourceRoots
	}
	if cfg.Verbose {
		f.Verbose = true
	}
	return nil
}

func (f *projectFlags) languages() []graph.Language {
	out := make([]graph.Language, 0, len(f.Languages))
	for _, l := range f.Languages {
		out = append(out, graph.Language(strings.ToLower(l)))
	}
	return out
}

// setupLogger installs the process-wide slog logger and returns it.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
