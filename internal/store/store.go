// Package store persists analysis runs in SQLite so that later stages can
// read the inferred annotations and runs of the same file can be compared.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/typesystem"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	file       TEXT NOT NULL,
	created_at TEXT NOT NULL,
	invalid    INTEGER NOT NULL,
	fatal      TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS runs_by_file ON runs (file, created_at);
CREATE TABLE IF NOT EXISTS annotations (
	run_id      TEXT NOT NULL REFERENCES runs (id) ON DELETE CASCADE,
	node_id     INTEGER NOT NULL,
	node_kind   TEXT NOT NULL,
	description TEXT NOT NULL,
	type        TEXT NOT NULL,
	kind        TEXT NOT NULL,
	annotation  TEXT NOT NULL,
	error       TEXT NOT NULL,
	PRIMARY KEY (run_id, node_id)
);
`

// timeLayout has a fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrNotFound is returned for unknown run ids.
var ErrNotFound = errors.New("run not found")

// Store is a handle on the run database.
type Store struct {
	db *sql.DB
}

// Run is one recorded analysis of a file.
type Run struct {
	ID        uuid.UUID
	File      string
	CreatedAt time.Time
	Invalid   int
	Fatal     string
}

// OK reports whether the run finished without failures.
func (r *Run) OK() bool { return r.Invalid == 0 && r.Fatal == "" }

// Node is the stored annotation of one syntax node.
type Node struct {
	NodeID      ast.NodeID
	NodeKind    string
	Description string
	Type        string
	Kind        string
	Annotation  string
	Error       string
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring store %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating store %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a run of file with the annotations of every annotated node
// of tree. tree and types may be nil when decoding failed; fatal is the
// error that aborted the pass, if any.
func (s *Store) Record(ctx context.Context, file string, tree *ast.Tree, types *typesystem.Table, fatal error) (*Run, error) {
	run := &Run{ID: uuid.New(), File: file, CreatedAt: time.Now().UTC()}
	if fatal != nil {
		run.Fatal = fatal.Error()
	}

	var nodes []Node
	if tree != nil && types != nil {
		for _, n := range tree.Nodes() {
			info, ok := types.Lookup(n)
			if !ok {
				continue
			}
			if !info.IsValid() {
				run.Invalid++
			}
			nodes = append(nodes, nodeOf(n, info))
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, file, created_at, invalid, fatal) VALUES (?, ?, ?, ?, ?)`,
		run.ID.String(), run.File, run.CreatedAt.Format(timeLayout), run.Invalid, run.Fatal,
	); err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO annotations
		(run_id, node_id, node_kind, description, type, kind, annotation, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("recording annotations: %w", err)
	}
	defer stmt.Close()
	for _, n := range nodes {
		if _, err := stmt.ExecContext(ctx, run.ID.String(), int64(n.NodeID), n.NodeKind,
			n.Description, n.Type, n.Kind, n.Annotation, n.Error); err != nil {
			return nil, fmt.Errorf("recording node %d: %w", n.NodeID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}
	return run, nil
}

func nodeOf(n ast.Node, info *typesystem.Annotation) Node {
	rec := Node{
		NodeID:     n.ID(),
		NodeKind:   string(n.Kind()),
		Type:       info.Type().String(),
		Kind:       string(info.Kind()),
		Annotation: info.String(),
	}
	if e, ok := n.(ast.Expression); ok {
		rec.Description = ast.Describe(e)
	}
	if d := info.Error(); d != nil {
		rec.Error = d.String()
	}
	return rec
}

// Run loads one run by id.
func (s *Store) Run(ctx context.Context, id uuid.UUID) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, file, created_at, invalid, fatal FROM runs WHERE id = ?`, id.String())
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return run, err
}

// Runs lists the runs of file, newest first.
func (s *Store) Runs(ctx context.Context, file string) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, file, created_at, invalid, fatal FROM runs
		 WHERE file = ? ORDER BY created_at DESC, rowid DESC`, file)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		run       Run
		id, stamp string
	)
	if err := sc.Scan(&id, &run.File, &stamp, &run.Invalid, &run.Fatal); err != nil {
		return nil, err
	}
	var err error
	if run.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("run id %q: %w", id, err)
	}
	if run.CreatedAt, err = time.Parse(timeLayout, stamp); err != nil {
		return nil, fmt.Errorf("run %s timestamp: %w", id, err)
	}
	return &run, nil
}

// Nodes returns the stored annotations of a run ordered by node id.
func (s *Store) Nodes(ctx context.Context, runID uuid.UUID) ([]Node, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT node_id, node_kind, description, type, kind, annotation, error
		 FROM annotations WHERE run_id = ? ORDER BY node_id`, runID.String())
	if err != nil {
		return nil, fmt.Errorf("loading annotations: %w", err)
	}
	defer rows.Close()

	var out []Node
	for rows.Next() {
		var n Node
		var id int64
		if err := rows.Scan(&id, &n.NodeKind, &n.Description, &n.Type, &n.Kind, &n.Annotation, &n.Error); err != nil {
			return nil, err
		}
		n.NodeID = ast.NodeID(id)
		out = append(out, n)
	}
	return out, rows.Err()
}

// Change is a node whose annotation differs between two runs. Before or
// After is empty when the node exists in only one of them.
type Change struct {
	NodeID      ast.NodeID
	Description string
	Before      string
	After       string
}

// Diff compares the annotations of two runs node by node.
func (s *Store) Diff(ctx context.Context, before, after uuid.UUID) ([]Change, error) {
	old, err := s.annotationsByID(ctx, before)
	if err != nil {
		return nil, err
	}
	cur, err := s.annotationsByID(ctx, after)
	if err != nil {
		return nil, err
	}

	ids := make([]ast.NodeID, 0, len(old)+len(cur))
	for id := range old {
		ids = append(ids, id)
	}
	for id := range cur {
		if _, ok := old[id]; !ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	var changes []Change
	for _, id := range ids {
		o, c := old[id], cur[id]
		if o.Annotation == c.Annotation {
			continue
		}
		desc := c.Description
		if desc == "" {
			desc = o.Description
		}
		changes = append(changes, Change{NodeID: id, Description: desc, Before: o.Annotation, After: c.Annotation})
	}
	return changes, nil
}

func (s *Store) annotationsByID(ctx context.Context, runID uuid.UUID) (map[ast.NodeID]Node, error) {
	if _, err := s.Run(ctx, runID); err != nil {
		return nil, err
	}
	nodes, err := s.Nodes(ctx, runID)
	if err != nil {
		return nil, err
	}
	out := make(map[ast.NodeID]Node, len(nodes))
	for _, n := range nodes {
		out[n.NodeID] = n
	}
	return out, nil
}
