package selector

import (
	"path/filepath"
	"strings"

	"github.com/dusk-indust/involve/internal/graph"
)

// IsTestFile reports whether a path looks like a test file under its
// language's naming conventions.
func IsTestFile(path string) bool {
	lang, ok := graph.LanguageForPath(path)
	if !ok {
		return false
	}
	name := filepath.Base(path)
	slashed := filepath.ToSlash(path)

	switch lang {
	case graph.LangPython:
		if strings.HasPrefix(name, "test_") || strings.HasSuffix(name, "_test.py") {
			return true
		}
		return inTestDir(slashed)
	case graph.LangGo:
		return strings.HasSuffix(name, "_test.go")
	case graph.LangTypeScript:
		if strings.HasSuffix(name, ".test.ts") || strings.HasSuffix(name, ".test.tsx") ||
			strings.HasSuffix(name, ".spec.ts") || strings.HasSuffix(name, ".spec.tsx") {
			return true
		}
		return strings.Contains(slashed, "/__tests__/")
	case graph.LangRust:
		return inTestDir(slashed)
	default:
		return false
	}
}

func inTestDir(slashed string) bool {
	return strings.Contains(slashed, "/tests/") || strings.Contains(slashed, "/test/") ||
		strings.HasPrefix(slashed, "tests/") || strings.HasPrefix(slashed, "test/")
}

// FindTestFiles returns the candidate test files among the scanned
// project files, sorted.
func (s *Selector) FindTestFiles() []string {
	var out []string
	for _, f := range s.files {
		if IsTestFile(f) {
			out = append(out, f)
		}
	}
	return out
}
