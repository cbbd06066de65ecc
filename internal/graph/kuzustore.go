//go:build cgo

package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore implements the Store interface using KuzuDB as the graph
// backend. It requires CGO because the go-kuzu driver wraps KuzuDB's
// C library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at
// the given directory path, enabling import graphs that survive across
// runs. KuzuDB creates the leaf directory itself.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

func openKuzu(dbPath string) (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(dbPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements defines the Cypher DDL executed by InitSchema.
// The node table must precede the relationship table.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Module(
		path STRING,
		language STRING,
		external BOOLEAN,
		PRIMARY KEY(path)
	)`,
	`CREATE REL TABLE IF NOT EXISTS IMPORTS(
		FROM Module TO Module,
		kind STRING,
		member STRING
	)`,
}

// InitSchema creates the node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// ---------- Write operations ----------

// AddModule inserts a Module node, merging on path so that re-indexing
// the same module is idempotent.
func (s *KuzuStore) AddModule(_ context.Context, node ModuleNode) error {
	return s.exec(
		`MERGE (m:Module {path: $path})
		 SET m.language = $lang, m.external = $ext`,
		map[string]any{
			"path": node.Path,
			"lang": string(node.Language),
			"ext":  node.External,
		},
	)
}

// AddImport inserts an IMPORTS relationship between two modules.
func (s *KuzuStore) AddImport(_ context.Context, edge ImportEdge) error {
	return s.exec(
		`MATCH (a:Module {path: $src}), (b:Module {path: $dst})
		 CREATE (a)-[:IMPORTS {kind: $kind, member: $member}]->(b)`,
		map[string]any{
			"src":    edge.From,
			"dst":    edge.To,
			"kind":   string(edge.Kind),
			"member": edge.Member,
		},
	)
}

// ---------- Read operations ----------

// Modules returns all Module nodes sorted by path.
func (s *KuzuStore) Modules(_ context.Context) ([]ModuleNode, error) {
	rows, err := s.query("MATCH (m:Module) RETURN m.path, m.language, m.external", nil)
	if err != nil {
		return nil, err
	}
	out := make([]ModuleNode, 0, len(rows))
	for _, r := range rows {
		out = append(out, ModuleNode{
			Path:     toString(r[0]),
			Language: Language(toString(r[1])),
			External: toBool(r[2]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Edges returns all IMPORTS relationships.
func (s *KuzuStore) Edges(_ context.Context) ([]ImportEdge, error) {
	rows, err := s.query(
		"MATCH (a:Module)-[r:IMPORTS]->(b:Module) RETURN a.path, b.path, r.kind, r.member",
		nil,
	)
	if err != nil {
		return nil, err
	}
	out := make([]ImportEdge, 0, len(rows))
	for _, r := range rows {
		out = append(out, ImportEdge{
			From:   toString(r[0]),
			To:     toString(r[1]),
			Kind:   ImportKind(toString(r[2])),
			Member: toString(r[3]),
		})
	}
	return out, nil
}

// Importers performs a BFS over incoming IMPORTS edges from the given
// module path, returning every transitive importer up to maxDepth hops.
func (s *KuzuStore) Importers(_ context.Context, path string, maxDepth int) ([]string, error) {
	if maxDepth <= 0 {
		maxDepth = 10
	}

	visited := map[string]bool{path: true}
	frontier := []string{path}
	var result []string

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, cur := range frontier {
			rows, err := s.query(
				"MATCH (a:Module)-[:IMPORTS]->(b:Module {path: $path}) RETURN a.path",
				map[string]any{"path": cur},
			)
			if err != nil {
				return nil, err
			}
			for _, r := range rows {
				importer := toString(r[0])
				if visited[importer] {
					continue
				}
				visited[importer] = true
				result = append(result, importer)
				next = append(next, importer)
			}
		}
		frontier = next
	}

	sort.Strings(result)
	return result, nil
}

// ---------- Stats ----------

// Stats returns module, external, and edge counts.
func (s *KuzuStore) Stats(_ context.Context) (*GraphStats, error) {
	modules, err := s.countQuery("MATCH (m:Module) RETURN count(m)")
	if err != nil {
		return nil, err
	}
	external, err := s.countQuery("MATCH (m:Module) WHERE m.external RETURN count(m)")
	if err != nil {
		return nil, err
	}
	edges, err := s.countQuery("MATCH ()-[r:IMPORTS]->() RETURN count(r)")
	if err != nil {
		return nil, err
	}
	return &GraphStats{
		ModuleCount:   modules,
		ExternalCount: external,
		EdgeCount:     edges,
	}, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result
// rows. Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// countQuery runs a single-value count Cypher statement.
func (s *KuzuStore) countQuery(cypher string) (int, error) {
	rows, err := s.query(cypher, nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

// ---------- Type coercion helpers ----------
// KuzuDB returns typed Go values (int64, float64, bool, string).

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func toBool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}
