package selector

// Matches reports whether the reachable set of a test file intersects
// any entry of the target specification. Multiple targets combine with
// logical OR.
//
// The comparison is deliberately recall-biased: a full import on either
// side counts as a hit. If the target names a whole file, any import
// from it qualifies; if the target names a member, a whole-module or
// star import is assumed to cover it, because skipping a relevant test
// is the one failure mode this tool must not have.
func (t *TargetSpec) Matches(reach ReachableSet) bool {
	for path, involved := range t.entries {
		for _, key := range t.keysFor(path) {
			imported, ok := reach[key]
			if !ok {
				continue
			}

			if imported.HasFullImport || involved.HasFullImport {
				// Covers both cases: involved member + imported module,
				// and involved module + imported member.
				return true
			}

			for member := range involved.Members {
				if imported.Members[member] {
					return true
				}
			}
		}
	}
	return false
}

// keysFor returns the reachable-set keys a target entry can appear
// under: its canonical path, plus any dotted specifiers it was named by
// (matching leaf records of imports that never resolved to disk).
func (t *TargetSpec) keysFor(path string) []string {
	keys := []string{path}
	return append(keys, t.aliases[path]...)
}
