package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) a SQLite query log at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Record stores r. Re-recording an ID is a no-op.
func (s *SQLiteStore) Record(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO responses
			(id, path, kind, begin_offset, end_offset, type, method, method_begin, method_end, pushed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID.String(),
		r.Path,
		r.Kind,
		r.Begin,
		r.End,
		r.Type,
		r.Method,
		r.MethodBegin,
		r.MethodEnd,
		r.Pushed.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("inserting response: %w", err)
	}
	return nil
}

// ByFile returns the records for path ordered by begin offset, then push time.
func (s *SQLiteStore) ByFile(ctx context.Context, path string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, kind, begin_offset, end_offset, type, method, method_begin, method_end, pushed_at
		FROM responses
		WHERE path = ?
		ORDER BY begin_offset, pushed_at
	`, path)
	if err != nil {
		return nil, fmt.Errorf("querying responses: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r      Record
			id     string
			pushed int64
		)
		if err := rows.Scan(&id, &r.Path, &r.Kind, &r.Begin, &r.End, &r.Type,
			&r.Method, &r.MethodBegin, &r.MethodEnd, &pushed); err != nil {
			return nil, fmt.Errorf("scanning response: %w", err)
		}
		r.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parsing response id %q: %w", id, err)
		}
		r.Pushed = time.Unix(0, pushed)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM responses").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting responses: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
