package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dusk-indust/involve/internal/graph"
	"github.com/dusk-indust/involve/internal/mcptools"
)

func runServeMCP(args []string) error {
	var addr string
	var verbose bool

	fs := flag.NewFlagSet("involve serve-mcp", flag.ContinueOnError)
	fs.StringVar(&addr, "addr", "localhost:8425", "listen address for the MCP server")
	fs.BoolVar(&verbose, "verbose", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := setupLogger(verbose)

	parser := graph.NewTreeSitterParser()
	defer parser.Close()

	svc := mcptools.NewInvolveService(parser, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("serving MCP", "addr", addr)
	if err := mcptools.RunMCPServer(ctx, svc, addr); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
