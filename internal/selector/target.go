package selector

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dusk-indust/involve/internal/graph"
)

// TargetSpec is the parsed set of --involving values. Entries are keyed
// by the canonical repo-relative path of the target file; each entry is
// an ImportSet listing the requested members (or a full import when the
// whole file is the target). Immutable once parsed.
type TargetSpec struct {
	entries map[string]*ImportSet

	// aliases maps a canonical path to the dotted specifiers it was
	// named by, so leaf records for unresolved absolute imports can
	// still match.
	aliases map[string][]string
}

// Entries exposes the parsed target entries, keyed by canonical path.
func (t *TargetSpec) Entries() map[string]*ImportSet {
	return t.entries
}

// Describe returns the target entries in a stable, human-readable form
// for the run preamble.
func (t *TargetSpec) Describe() []string {
	var out []string
	for path, set := range t.entries {
		if set.HasFullImport {
			out = append(out, path)
		}
		for member := range set.Members {
			out = append(out, path+"::"+member)
		}
	}
	sort.Strings(out)
	return out
}

// ParseTargets builds a TargetSpec from raw --involving values. Each
// value is a source file path, a dotted importable module path, or
// either followed by ::member. A value that cannot be located in the
// project is a configuration mistake and fails immediately.
func ParseTargets(root string, files []string, srcRoots []string, raw []string) (*TargetSpec, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("no targets given")
	}

	resolver := graph.NewResolver(root, files, srcRoots)
	fileSet := make(map[string]bool, len(files))
	for _, f := range files {
		fileSet[f] = true
	}

	spec := &TargetSpec{
		entries: make(map[string]*ImportSet),
		aliases: make(map[string][]string),
	}

	for _, arg := range raw {
		base, member, err := splitMemberReference(arg)
		if err != nil {
			return nil, err
		}

		path, dotted, err := resolveTarget(root, base, fileSet, resolver)
		if err != nil {
			return nil, err
		}

		entry, ok := spec.entries[path]
		if !ok {
			entry = newImportSet(path)
			spec.entries[path] = entry
		}
		if member != "" {
			entry.Members[member] = true
		} else {
			entry.HasFullImport = true
		}
		if dotted != "" {
			spec.aliases[path] = append(spec.aliases[path], dotted)
		}
	}

	return spec, nil
}

// splitMemberReference splits "ref::member" and rejects more than one
// double-colon.
func splitMemberReference(arg string) (base, member string, err error) {
	parts := strings.Split(arg, "::")
	switch len(parts) {
	case 1:
		return parts[0], "", nil
	case 2:
		return parts[0], parts[1], nil
	default:
		return "", "", fmt.Errorf(
			"%s is an invalid member specifier (at most one :: allowed)", arg)
	}
}

// resolveTarget maps one raw target reference to a canonical
// repo-relative path. File-ish references must name an existing project
// file; dotted references are resolved like absolute imports, and the
// dotted form is kept as an alias for leaf matching.
func resolveTarget(root, base string, fileSet map[string]bool, resolver *graph.Resolver) (path, dotted string, err error) {
	if _, isFile := graph.LanguageForPath(base); isFile || strings.ContainsAny(base, "/\\") {
		rel := base
		if filepath.IsAbs(base) {
			absRoot, absErr := filepath.Abs(root)
			if absErr != nil {
				return "", "", absErr
			}
			rel, err = filepath.Rel(absRoot, base)
			if err != nil {
				return "", "", fmt.Errorf("target %s is outside the project root: %w", base, err)
			}
		}
		rel = filepath.ToSlash(filepath.Clean(rel))
		if !fileSet[rel] {
			return "", "", fmt.Errorf("target file does not exist in project: %s", base)
		}
		return rel, "", nil
	}

	// Dotted module path: resolve the way an absolute import would.
	rec := graph.ImportRecord{Module: base, Kind: graph.ImportModule}
	targets, ok := resolver.Resolve(rec, "", graph.LangPython)
	if !ok || len(targets) == 0 {
		return "", "", fmt.Errorf("target module cannot be resolved to a project file: %s", base)
	}
	return targets[0], base, nil
}
