// Package errqueue buffers the query responses produced while checking files until
// a consumer drains them.
package errqueue

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/funvibe/fxquery/internal/query"
	"github.com/funvibe/fxquery/internal/source"
)

// Entry is one buffered response.
type Entry struct {
	ID       uuid.UUID
	File     source.FileRef
	Response *query.Response
	Pushed   time.Time
}

// Queue is safe for one or more producers and consumers. Entries drain in push order.
type Queue struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int // negative means unbounded
	dropped  int

	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Queue.
type Option func(*Queue)

// WithCapacity bounds the number of undrained entries; a negative n means unbounded.
func WithCapacity(n int) Option {
	return func(q *Queue) { q.capacity = n }
}

func WithLogger(logger *zap.Logger) Option {
	return func(q *Queue) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// WithClock replaces time.Now for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

func New(opts ...Option) *Queue {
	q := &Queue{
		capacity: -1,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// PushQueryResponse appends resp for file. At capacity the oldest entry is dropped.
func (q *Queue) PushQueryResponse(file source.FileRef, resp *query.Response) {
	entry := Entry{
		ID:       uuid.New(),
		File:     file,
		Response: resp,
		Pushed:   q.now(),
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.capacity == 0 {
		q.dropped++
		q.logger.Warn("query response dropped, queue has no capacity",
			zap.Stringer("kind", resp.Kind()))
		return
	}
	if q.capacity > 0 && len(q.entries) >= q.capacity {
		oldest := q.entries[0]
		q.entries = q.entries[1:]
		q.dropped++
		q.logger.Warn("query queue full, dropping oldest response",
			zap.Int("capacity", q.capacity),
			zap.Stringer("dropped_id", oldest.ID),
			zap.Stringer("dropped_kind", oldest.Response.Kind()))
	}
	q.entries = append(q.entries, entry)
	q.logger.Debug("query response pushed",
		zap.Stringer("id", entry.ID),
		zap.Uint32("file", uint32(file)),
		zap.Stringer("kind", resp.Kind()),
		zap.Stringer("loc", resp.Loc()))
}

// DrainQueryResponses removes and returns every buffered entry.
func (q *Queue) DrainQueryResponses() []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.entries
	q.entries = nil
	return out
}

// DrainFile removes and returns the entries for one file, leaving the rest queued.
func (q *Queue) DrainFile(file source.FileRef) []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	var out []Entry
	kept := q.entries[:0]
	for _, e := range q.entries {
		if e.File == file {
			out = append(out, e)
		} else {
			kept = append(kept, e)
		}
	}
	// zero the tail so dropped responses can be collected
	for i := len(kept); i < len(q.entries); i++ {
		q.entries[i] = Entry{}
	}
	q.entries = kept
	return out
}

// Len returns the number of undrained entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Dropped returns how many entries were discarded because the queue was full.
func (q *Queue) Dropped() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
