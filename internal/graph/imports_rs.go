package graph

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// rsImports extracts import records from Rust use declarations.
type rsImports struct{}

func (e *rsImports) Extract(root *tree_sitter.Node, source []byte) []ImportRecord {
	var records []ImportRecord

	cursor := root.Walk()
	defer cursor.Close()

	e.walk(cursor, source, &records)
	return records
}

func (e *rsImports) walk(cursor *tree_sitter.TreeCursor, source []byte, records *[]ImportRecord) {
	node := cursor.Node()

	if node.Kind() == "use_declaration" {
		if arg := node.ChildByFieldName("argument"); arg != nil {
			e.extractUse(arg, source, records)
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

// extractUse flattens one use tree into import records.
func (e *rsImports) extractUse(node *tree_sitter.Node, source []byte, records *[]ImportRecord) {
	switch node.Kind() {
	case "identifier", "crate", "self", "super":
		*records = append(*records, ImportRecord{
			Module: node.Utf8Text(source),
			Kind:   ImportModule,
		})

	case "scoped_identifier":
		// "use crate::util::helper" is ambiguous between importing a
		// module and importing an item from its parent. Record both
		// readings; the resolver keeps whichever exists on disk and the
		// other survives as an unresolvable leaf.
		path := node.Utf8Text(source)
		*records = append(*records, ImportRecord{Module: path, Kind: ImportModule})
		parent := node.ChildByFieldName("path")
		name := node.ChildByFieldName("name")
		if parent != nil && name != nil {
			*records = append(*records, ImportRecord{
				Module: parent.Utf8Text(source),
				Kind:   ImportMember,
				Member: name.Utf8Text(source),
			})
		}

	case "use_as_clause":
		if path := node.ChildByFieldName("path"); path != nil {
			e.extractUse(path, source, records)
		}

	case "use_wildcard":
		// "use crate::util::*" — glob import of everything the module exports.
		module := ""
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			if child != nil {
				module = child.Utf8Text(source)
				break
			}
		}
		*records = append(*records, ImportRecord{Module: module, Kind: ImportWildcard})

	case "scoped_use_list":
		path := node.ChildByFieldName("path")
		list := node.ChildByFieldName("list")
		if path == nil || list == nil {
			return
		}
		prefix := path.Utf8Text(source)
		for i := uint(0); i < list.NamedChildCount(); i++ {
			e.extractUseListEntry(list.NamedChild(i), source, prefix, records)
		}
	}
}

// extractUseListEntry handles one entry of "use prefix::{...}".
func (e *rsImports) extractUseListEntry(node *tree_sitter.Node, source []byte, prefix string, records *[]ImportRecord) {
	if node == nil {
		return
	}
	switch node.Kind() {
	case "identifier":
		*records = append(*records, ImportRecord{
			Module: prefix,
			Kind:   ImportMember,
			Member: node.Utf8Text(source),
		})
	case "self":
		*records = append(*records, ImportRecord{Module: prefix, Kind: ImportModule})
	case "use_as_clause":
		if path := node.ChildByFieldName("path"); path != nil && path.Kind() == "identifier" {
			*records = append(*records, ImportRecord{
				Module: prefix,
				Kind:   ImportMember,
				Member: path.Utf8Text(source),
			})
		}
	case "use_wildcard":
		*records = append(*records, ImportRecord{Module: prefix, Kind: ImportWildcard})
	case "scoped_identifier", "scoped_use_list":
		// Nested path inside the braces; recurse, then rejoin the prefix.
		var nested []ImportRecord
		e.extractUse(node, source, &nested)
		for _, rec := range nested {
			rec.Module = prefix + "::" + rec.Module
			*records = append(*records, rec)
		}
	}
}
