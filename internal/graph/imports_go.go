package graph

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// goImports extracts import records from Go source files.
type goImports struct{}

func (e *goImports) Extract(root *tree_sitter.Node, source []byte) []ImportRecord {
	var records []ImportRecord

	cursor := root.Walk()
	defer cursor.Close()

	e.walk(cursor, source, &records)
	return records
}

func (e *goImports) walk(cursor *tree_sitter.TreeCursor, source []byte, records *[]ImportRecord) {
	node := cursor.Node()

	if node.Kind() == "import_spec" {
		if rec := e.extractImport(node, source); rec != nil {
			*records = append(*records, *rec)
		}
	}

	if cursor.GotoFirstChild() {
		e.walk(cursor, source, records)
		for cursor.GotoNextSibling() {
			e.walk(cursor, source, records)
		}
		cursor.GotoParent()
	}
}

func (e *goImports) extractImport(node *tree_sitter.Node, source []byte) *ImportRecord {
	pathNode := node.ChildByFieldName("path")
	if pathNode == nil {
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child != nil && child.Kind() == "interpreted_string_literal" {
				pathNode = child
				break
			}
		}
	}
	if pathNode == nil {
		return nil
	}

	importPath := strings.Trim(pathNode.Utf8Text(source), "\"")
	if importPath == "" {
		return nil
	}

	// A dot import splices the package's exported names into the local
	// scope, which is Go's closest analogue of a star import.
	kind := ImportModule
	if nameNode := node.ChildByFieldName("name"); nameNode != nil && nameNode.Kind() == "dot" {
		kind = ImportWildcard
	}

	return &ImportRecord{Module: importPath, Kind: kind}
}
