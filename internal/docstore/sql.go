package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

var _ Store = (*SQL)(nil)

// NewSQL creates a Store over the documents table created by the database
// migrations.
func NewSQL(db *sql.DB) *SQL {
	return &SQL{
		db: db,
	}
}

func (s *SQL) Get(ctx context.Context, path string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.Join(split(path), "/")
	prefix := key + "/"
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, value FROM documents WHERE path = ? OR substr(path, 1, length(?)) = ?`,
		key, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %w", ErrUnavailable, key, err)
	}
	defer rows.Close()

	var (
		found bool
		leaf  any
		tree  = map[string]any{}
	)
	for rows.Next() {
		var rowPath, raw string
		if err := rows.Scan(&rowPath, &raw); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %w", ErrUnavailable, key, err)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			log.Error("Skipping undecodable document leaf", "path", rowPath, "error", err)
			continue
		}
		found = true
		if rowPath == key {
			leaf = value
			continue
		}
		insertLeaf(tree, split(strings.TrimPrefix(rowPath, prefix)), value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate %s: %w", ErrUnavailable, key, err)
	}

	switch {
	case !found:
		return nil, nil
	case len(tree) > 0:
		return tree, nil
	default:
		return leaf, nil
	}
}

func (s *SQL) Set(ctx context.Context, path string, value any) error {
	v, err := normalize(value)
	if err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return writeNode(ctx, tx, split(path), v)
	})
}

func (s *SQL) Update(ctx context.Context, path string, fields map[string]any) error {
	values := make(map[string]any, len(fields))
	for k, field := range fields {
		v, err := normalize(field)
		if err != nil {
			return err
		}
		values[k] = v
	}
	base := split(path)
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for k, v := range values {
			if err := writeNode(ctx, tx, append(append([]string{}, base...), split(k)...), v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQL) Remove(ctx context.Context, path string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return writeNode(ctx, tx, split(path), nil)
	})
}

func (s *SQL) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrUnavailable, err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrUnavailable, err)
	}
	return nil
}

// writeNode replaces everything at and below parts with v. Leaves stored at
// an ancestor path are dropped, since a node is either a leaf or an object.
func writeNode(ctx context.Context, tx *sql.Tx, parts []string, v any) error {
	key := strings.Join(parts, "/")
	prefix := key + "/"
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM documents WHERE path = ? OR substr(path, 1, length(?)) = ?`,
		key, prefix, prefix); err != nil {
		return fmt.Errorf("%w: clear %s: %w", ErrUnavailable, key, err)
	}
	if v == nil {
		return nil
	}
	for i := 1; i < len(parts); i++ {
		ancestor := strings.Join(parts[:i], "/")
		if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE path = ?`, ancestor); err != nil {
			return fmt.Errorf("%w: clear %s: %w", ErrUnavailable, ancestor, err)
		}
	}

	leaves := map[string]any{}
	flatten(key, v, leaves)

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO documents (path, value) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: prepare insert: %w", ErrUnavailable, err)
	}
	defer stmt.Close()

	for leafPath, leaf := range leaves {
		raw, err := json.Marshal(leaf)
		if err != nil {
			return fmt.Errorf("encode %s: %w", leafPath, err)
		}
		if _, err := stmt.ExecContext(ctx, leafPath, string(raw)); err != nil {
			return fmt.Errorf("%w: insert %s: %w", ErrUnavailable, leafPath, err)
		}
	}
	return nil
}

// flatten collects the leaves of v. Arrays are stored whole.
func flatten(path string, v any, out map[string]any) {
	obj, ok := v.(map[string]any)
	if !ok {
		out[path] = v
		return
	}
	for k, child := range obj {
		childPath := k
		if path != "" {
			childPath = path + "/" + k
		}
		flatten(childPath, child, out)
	}
}

func insertLeaf(tree map[string]any, parts []string, v any) {
	node := tree
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[part] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = v
}
