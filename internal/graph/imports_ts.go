package graph

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// tsImports extracts import records from TypeScript source files.
type tsImports struct{}

func (e *tsImports) Extract(root *tree_sitter.Node, source []byte) []ImportRecord {
	var records []ImportRecord

	cursor := root.Walk()
	defer cursor.Close()

	e.walk(cursor, source, &records)
	return records
}

func (e *tsImports) walk(cursor *tree_sitter.TreeCursor, source []byte, records *[]ImportRecord) {
	node := cursor.Node()

	switch node.Kind() {
	case "import_statement":
		*records = append(*records, e.extractImport(node, source)...)
	case "export_statement":
		// "export { f } from './x'" and "export * from './x'" pull the
		// source module in just like imports do.
		*records = append(*records, e.extractReExport(node, source)...)
	}

	if cursor.GotoFirstChild() {
		e.walk(cursor, source, records)
		for cursor.GotoNextSibling() {
			e.walk(cursor, source, records)
		}
		cursor.GotoParent()
	}
}

func (e *tsImports) extractImport(node *tree_sitter.Node, source []byte) []ImportRecord {
	module := tsImportSource(node, source)
	if module == "" {
		return nil
	}

	clause := tsFindChild(node, "import_clause")
	if clause == nil {
		// Side-effect import: "import './setup'". The module's top-level
		// code runs, so treat it as a whole-module import.
		return []ImportRecord{{Module: module, Kind: ImportModule}}
	}

	var records []ImportRecord
	for i := uint(0); i < clause.NamedChildCount(); i++ {
		child := clause.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "identifier":
			// Default import binds the module's default export; the safe
			// reading is that the whole module is in play.
			records = append(records, ImportRecord{Module: module, Kind: ImportModule})
		case "namespace_import":
			// "import * as ns" — every export is reachable via ns.
			records = append(records, ImportRecord{Module: module, Kind: ImportModule})
		case "named_imports":
			records = append(records, e.extractNamedImports(child, source, module)...)
		}
	}

	if len(records) == 0 {
		records = append(records, ImportRecord{Module: module, Kind: ImportModule})
	}
	return records
}

// extractReExport handles export statements that carry a source module.
func (e *tsImports) extractReExport(node *tree_sitter.Node, source []byte) []ImportRecord {
	module := tsImportSource(node, source)
	if module == "" {
		return nil
	}

	if clause := tsFindChild(node, "export_clause"); clause != nil {
		var records []ImportRecord
		for i := uint(0); i < clause.NamedChildCount(); i++ {
			spec := clause.NamedChild(i)
			if spec == nil || spec.Kind() != "export_specifier" {
				continue
			}
			nameNode := spec.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			records = append(records, ImportRecord{
				Module: module,
				Kind:   ImportMember,
				Member: nameNode.Utf8Text(source),
			})
		}
		return records
	}

	// "export * from './x'" — wildcard re-export.
	return []ImportRecord{{Module: module, Kind: ImportWildcard}}
}

func (e *tsImports) extractNamedImports(clause *tree_sitter.Node, source []byte, module string) []ImportRecord {
	var records []ImportRecord
	for i := uint(0); i < clause.NamedChildCount(); i++ {
		spec := clause.NamedChild(i)
		if spec == nil || spec.Kind() != "import_specifier" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		member := nameNode.Utf8Text(source)
		if member == "" {
			continue
		}
		records = append(records, ImportRecord{
			Module: module,
			Kind:   ImportMember,
			Member: member,
		})
	}
	return records
}

// tsImportSource returns the unquoted source specifier of an import or
// export statement, or "" when there is none.
func tsImportSource(node *tree_sitter.Node, source []byte) string {
	sourceNode := node.ChildByFieldName("source")
	if sourceNode == nil {
		sourceNode = tsFindChild(node, "string")
	}
	if sourceNode == nil {
		return ""
	}
	return strings.Trim(sourceNode.Utf8Text(source), "\"'`")
}

// tsFindChild returns the first child of the given kind, or nil.
func tsFindChild(node *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}
