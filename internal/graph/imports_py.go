package graph

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// pyImports extracts import records from Python source files.
type pyImports struct{}

func (e *pyImports) Extract(root *tree_sitter.Node, source []byte) []ImportRecord {
	var records []ImportRecord

	cursor := root.Walk()
	defer cursor.Close()

	e.walk(cursor, source, &records)
	return records
}

// walk visits every node so that imports nested under conditionals or
// inside function bodies are picked up too.
func (e *pyImports) walk(cursor *tree_sitter.TreeCursor, source []byte, records *[]ImportRecord) {
	node := cursor.Node()

	switch node.Kind() {
	case "import_statement":
		*records = append(*records, e.extractImport(node, source)...)
	case "import_from_statement":
		*records = append(*records, e.extractFromImport(node, source)...)
	}

	if cursor.GotoFirstChild() {
		e.walk(cursor, source, records)
		for cursor.GotoNextSibling() {
			e.walk(cursor, source, records)
		}
		cursor.GotoParent()
	}
}

// extractImport handles "import a.b, c" — one whole-module record per name.
func (e *pyImports) extractImport(node *tree_sitter.Node, source []byte) []ImportRecord {
	var records []ImportRecord
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		var nameNode *tree_sitter.Node
		switch child.Kind() {
		case "dotted_name":
			nameNode = child
		case "aliased_import":
			nameNode = child.ChildByFieldName("name")
		}
		if nameNode == nil {
			continue
		}
		module := nameNode.Utf8Text(source)
		if module == "" {
			continue
		}
		records = append(records, ImportRecord{
			Module: module,
			Kind:   ImportModule,
		})
	}
	return records
}

// extractFromImport handles "from X import a, b", "from X import *", and
// relative forms like "from ..pkg import f". One record per imported name;
// a star import produces a single wildcard record.
func (e *pyImports) extractFromImport(node *tree_sitter.Node, source []byte) []ImportRecord {
	moduleNode := node.ChildByFieldName("module_name")
	if moduleNode == nil {
		return nil
	}

	module, level := pyModuleAndLevel(moduleNode, source)
	if module == "" && level == 0 {
		return nil
	}

	// Star import: a single wildcard record.
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == "wildcard_import" {
			return []ImportRecord{{
				Module: module,
				Kind:   ImportWildcard,
				Level:  level,
			}}
		}
	}

	// Imported names are the dotted_name / aliased_import children that
	// follow the "import" keyword; everything before it belongs to the
	// module reference.
	var records []ImportRecord
	sawImportKeyword := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.Kind() == "import" {
			sawImportKeyword = true
			continue
		}
		if !sawImportKeyword {
			continue
		}
		var nameNode *tree_sitter.Node
		switch child.Kind() {
		case "dotted_name":
			nameNode = child
		case "aliased_import":
			// "from x import f as g" — match on the original name, which
			// is what the target module actually defines.
			nameNode = child.ChildByFieldName("name")
		default:
			continue
		}
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
			Level:  level,
		})
	}
	return records
}

// pyModuleAndLevel splits a module_name node into its dotted path and its
// relative level (leading-dot count). "from ..pkg.util import f" yields
// ("pkg.util", 2); "from . import f" yields ("", 1).
func pyModuleAndLevel(moduleNode *tree_sitter.Node, source []byte) (string, int) {
	if moduleNode.Kind() != "relative_import" {
		return moduleNode.Utf8Text(source), 0
	}

	level := 0
	module := ""
	for i := uint(0); i < moduleNode.ChildCount(); i++ {
		child := moduleNode.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "import_prefix":
			level = strings.Count(child.Utf8Text(source), ".")
		case "dotted_name":
			module = child.Utf8Text(source)
		}
	}
	return module, level
}
