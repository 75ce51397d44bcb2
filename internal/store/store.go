// Package store keeps a log of drained query responses so they can be inspected
// after the process that produced them has moved on.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record is the flattened, persisted form of one query response.
type Record struct {
	ID     uuid.UUID
	Path   string
	Kind   string
	Begin  uint32
	End    uint32
	Type   string // empty for edits
	Pushed time.Time

	// Method is set for calls whose method name could be located.
	Method      string
	MethodBegin uint32
	MethodEnd   uint32
}

// Store persists records.
type Store interface {
	Record(ctx context.Context, r Record) error
	ByFile(ctx context.Context, path string) ([]Record, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// Config selects a backend.
type Config struct {
	Path string
}

// New returns a MemoryStore for ":memory:" and a SQLiteStore for anything else.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if cfg.Path == ":memory:" {
		return NewMemory(), nil
	}
	return NewSQLite(cfg.Path)
}
