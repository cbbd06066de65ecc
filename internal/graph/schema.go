package graph

import "path/filepath"

// --- Enums ---

// Language identifies a programming language for parsing.
type Language string

const (
	LangPython     Language = "python"
	LangTypeScript Language = "typescript"
	LangGo         Language = "go"
	LangRust       Language = "rust"
)

// SupportedLanguages are the languages with import extraction and
// resolution support.
var SupportedLanguages = []Language{LangPython, LangTypeScript, LangGo, LangRust}

// extToLanguage maps file extensions to languages.
var extToLanguage = map[string]Language{
	".py":  LangPython,
	".ts":  LangTypeScript,
	".tsx": LangTypeScript,
	".go":  LangGo,
	".rs":  LangRust,
}

// LanguageForPath returns the language for a file path based on its
// extension. The second return value is false for unrecognized extensions.
func LanguageForPath(path string) (Language, bool) {
	lang, ok := extToLanguage[filepath.Ext(path)]
	return lang, ok
}

// ImportKind classifies what a single ImportRecord pulls in from a module.
type ImportKind string

const (
	// ImportMember is a named import of one member ("from x import f").
	ImportMember ImportKind = "member"
	// ImportModule is a whole-module import ("import x").
	ImportModule ImportKind = "module"
	// ImportWildcard is a star import ("from x import *").
	ImportWildcard ImportKind = "wildcard"
)

// --- Models ---

// ImportRecord is one parsed import. A statement naming several members
// produces one record per member.
type ImportRecord struct {
	// Module is the raw specifier as written: a dotted path for Python,
	// a string specifier for TypeScript and Go, a :: path for Rust.
	Module string `json:"module"`

	Kind ImportKind `json:"kind"`

	// Member is the imported name, set only when Kind is ImportMember.
	Member string `json:"member,omitempty"`

	// Level is the leading-dot count of a Python relative import.
	// Zero means absolute.
	Level int `json:"level,omitempty"`
}

// FileImports is the parse output for a single source file.
type FileImports struct {
	Path     string         `json:"path"`
	Language Language       `json:"language"`
	Records  []ImportRecord `json:"records"`
}

// ModuleNode represents one source file (or an unresolved external
// specifier) in the import graph.
type ModuleNode struct {
	Path     string   `json:"path"`
	Language Language `json:"language,omitempty"`
	External bool     `json:"external,omitempty"`
}

// ImportEdge records that one module imports another.
type ImportEdge struct {
	From   string     `json:"from"`
	To     string     `json:"to"`
	Kind   ImportKind `json:"kind"`
	Member string     `json:"member,omitempty"`
}

// GraphStats summarizes an indexed import graph.
type GraphStats struct {
	ModuleCount   int `json:"moduleCount"`
	ExternalCount int `json:"externalCount"`
	EdgeCount     int `json:"edgeCount"`
}
