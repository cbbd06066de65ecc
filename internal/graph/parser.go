package graph

import "context"

// Parser extracts import records from source files.
// Implementations: TreeSitterParser (production), stub parsers in tests.
type Parser interface {
	// Parse extracts every import statement found anywhere in the file,
	// including ones nested under conditionals. source is the file content.
	Parse(ctx context.Context, path string, source []byte, lang Language) (*FileImports, error)

	// SupportedLanguages returns the languages this parser can handle.
	SupportedLanguages() []Language

	// Close releases parser resources (Tree-sitter C memory).
	Close() error
}
