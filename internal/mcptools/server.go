package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewInvolveMCPServer creates an MCP server with the test-selection
// tools registered.
func NewInvolveMCPServer(svc *InvolveService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "involve",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "select_tests",
		Description: "Filter a project's test files down to the ones that import the given source files or members, directly or transitively. Targets are file paths, dotted module paths, or either followed by ::member.",
	}, svc.SelectTests)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reachable_modules",
		Description: "Compute the transitive import closure of a single test file: every module it pulls in, with the imported member names where known.",
	}, svc.ReachableModules)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "build_import_graph",
		Description: "Index a repository's import graph: parse source files with tree-sitter, resolve import specifiers to files, and store modules and import edges, optionally in a persistent KuzuDB directory.",
	}, svc.BuildImportGraph)

	return server
}

// RunMCPServer starts an HTTP server exposing the test-selection MCP tools.
func RunMCPServer(ctx context.Context, svc *InvolveService, addr string) error {
	server := NewInvolveMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
