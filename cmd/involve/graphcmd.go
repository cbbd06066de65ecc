package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dusk-indust/involve/internal/export"
	"github.com/dusk-indust/involve/internal/graph"
)

func runGraph(args []string) error {
	var flags projectFlags
	var dbPath, format string

	fs := flag.NewFlagSet("involve graph", flag.ContinueOnError)
	flags.register(fs)
	fs.StringVar(&dbPath, "db", "", "persist the graph to a KuzuDB directory")
	fs.StringVar(&format, "format", "json", "output format: json or mermaid")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := flags.applyConfig(); err != nil {
		return err
	}

	logger := setupLogger(flags.Verbose)
	ctx := context.Background()

	var store graph.Store
	if dbPath != "" {
		persistent, err := openGraphStore(dbPath)
		if err != nil {
			return fmt.Errorf("open graph store: %w", err)
		}
		store = persistent
	} else {
		store = graph.NewMemStore()
	}
	defer store.Close()

	parser := graph.NewTreeSitterParser()
	defer parser.Close()

	indexer := graph.NewIndexer(parser, logger)
	stats, err := indexer.Index(ctx, graph.IndexOptions{
		Root:        flags.Root,
		Languages:   flags.languages(),
		ExcludeDirs: flags.ExcludeDirs,
		SourceRoots: flags.SourceRoots,
	}, store)
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}

	switch format {
	case "mermaid":
		mermaid, err := export.GenerateMermaid(ctx, store)
		if err != nil {
			return err
		}
		fmt.Print(mermaid)
	case "json":
		data, err := export.BuildGraphExport(ctx, store)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		if _, err := os.Stdout.Write(append(out, '\n')); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want json or mermaid)", format)
	}

	logger.Info("graph indexed",
		"modules", stats.ModuleCount,
		"external", stats.ExternalCount,
		"edges", stats.EdgeCount,
	)
	return nil
}
