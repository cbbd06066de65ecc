package mcptools

import "github.com/dusk-indust/involve/internal/graph"

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// SelectTestsInput is the input for the select_tests MCP tool.
type SelectTestsInput struct {
	Root        string   `json:"root" jsonschema:"absolute path to the project root"`
	Involving   []string `json:"involving" jsonschema:"target source files, dotted module paths, or either followed by ::member"`
	TestFiles   []string `json:"testFiles,omitempty" jsonschema:"candidate test files; when omitted, test files are discovered by naming convention"`
	Languages   []string `json:"languages,omitempty" jsonschema:"languages to analyze (default: all). Values: python, typescript, go, rust"`
	ExcludeDirs []string `json:"excludeDirs,omitempty" jsonschema:"directories to exclude from scanning (e.g. vendor, node_modules)"`
	SourceRoots []string `json:"sourceRoots,omitempty" jsonschema:"extra roots probed when resolving absolute imports (e.g. src)"`
}

// SelectTestsOutput is the result of the select_tests MCP tool.
type SelectTestsOutput struct {
	Selected   []string `json:"selected"`
	Candidates int      `json:"candidates"`
	Targets    []string `json:"targets"`
}

// ReachableModulesInput is the input for the reachable_modules MCP tool.
type ReachableModulesInput struct {
	Root        string   `json:"root" jsonschema:"absolute path to the project root"`
	TestFile    string   `json:"testFile" jsonschema:"the test file whose transitive imports to compute"`
	Languages   []string `json:"languages,omitempty" jsonschema:"languages to analyze (default: all)"`
	ExcludeDirs []string `json:"excludeDirs,omitempty" jsonschema:"directories to exclude from scanning"`
	SourceRoots []string `json:"sourceRoots,omitempty" jsonschema:"extra roots probed when resolving absolute imports"`
}

// ModuleImports describes how one reachable module is imported.
type ModuleImports struct {
	Module     string   `json:"module"`
	FullImport bool     `json:"fullImport"`
	Members    []string `json:"members,omitempty"`
}

// ReachableModulesOutput is the result of the reachable_modules MCP tool.
type ReachableModulesOutput struct {
	Modules []ModuleImports `json:"modules"`
	Total   int             `json:"total"`
}

// BuildImportGraphInput is the input for the build_import_graph MCP tool.
type BuildImportGraphInput struct {
	Root        string   `json:"root" jsonschema:"absolute path to the project root"`
	DBPath      string   `json:"dbPath,omitempty" jsonschema:"directory for a persistent KuzuDB graph; omitted means in-memory only"`
	Languages   []string `json:"languages,omitempty" jsonschema:"languages to index (default: all)"`
	ExcludeDirs []string `json:"excludeDirs,omitempty" jsonschema:"directories to exclude from indexing"`
	SourceRoots []string `json:"sourceRoots,omitempty" jsonschema:"extra roots probed when resolving absolute imports"`
}

// BuildImportGraphOutput is the result of the build_import_graph MCP tool.
type BuildImportGraphOutput struct {
	Stats graph.GraphStats `json:"stats"`
}
