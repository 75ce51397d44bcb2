// Package core bundles the state shared by the checker and the consumers of its
// query responses.
package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/funvibe/fxquery/internal/config"
	"github.com/funvibe/fxquery/internal/errqueue"
	"github.com/funvibe/fxquery/internal/query"
	"github.com/funvibe/fxquery/internal/source"
	"github.com/funvibe/fxquery/internal/store"
	"github.com/funvibe/fxquery/internal/symbols"
	"github.com/funvibe/fxquery/internal/typesystem"
)

// GlobalState owns the file table, the method table and the response queue.
type GlobalState struct {
	files   *source.Files
	symbols *symbols.SymbolTable
	queue   *errqueue.Queue
	logger  *zap.Logger
}

func NewGlobalState(cfg *config.Config, logger *zap.Logger) *GlobalState {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GlobalState{
		files:   source.NewFiles(),
		symbols: symbols.NewSymbolTable(),
		queue: errqueue.New(
			errqueue.WithCapacity(cfg.Queue.Capacity),
			errqueue.WithLogger(logger.Named("errqueue")),
		),
		logger: logger,
	}
}

func (gs *GlobalState) Files() *source.Files          { return gs.files }
func (gs *GlobalState) Symbols() *symbols.SymbolTable { return gs.symbols }
func (gs *GlobalState) ErrorQueue() *errqueue.Queue   { return gs.queue }
func (gs *GlobalState) Logger() *zap.Logger           { return gs.logger }

// Context is the state plus the file currently being checked.
type Context struct {
	State *GlobalState
	File  source.FileRef
}

func (gs *GlobalState) Context(file source.FileRef) Context {
	return Context{State: gs, File: file}
}

// PushQueryResponse records a response for the context's file.
func (ctx Context) PushQueryResponse(v query.Variant) *query.Response {
	return query.Push(ctx.State.queue, ctx.File, v)
}

// ToRecord flattens a drained entry for the query log.
func (gs *GlobalState) ToRecord(e errqueue.Entry) store.Record {
	resp := e.Response
	loc := resp.Loc()
	r := store.Record{
		ID:     e.ID,
		Kind:   resp.Kind().String(),
		Begin:  loc.BeginPos(),
		End:    loc.EndPos(),
		Pushed: e.Pushed,
	}
	if f, err := gs.files.File(e.File); err == nil {
		r.Path = f.Path
	}
	if resp.HasType() {
		r.Type = typesystem.PrettifyType(resp.RetType())
	}
	if send := resp.IsSend(); send != nil {
		if nameLoc, ok := send.MethodNameLoc(gs); ok {
			r.Method = send.Dispatch.Main.Method.Name(gs.symbols)
			r.MethodBegin = nameLoc.BeginPos()
			r.MethodEnd = nameLoc.EndPos()
		}
	}
	return r
}

// Flush drains the queue into st and returns how many responses were recorded.
// On failure the unrecorded entries are not requeued; the error says how many.
func (gs *GlobalState) Flush(ctx context.Context, st store.Store) (int, error) {
	entries := gs.queue.DrainQueryResponses()
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return i, fmt.Errorf("flushing query responses: %d not recorded: %w", len(entries)-i, err)
		}
		if err := st.Record(ctx, gs.ToRecord(e)); err != nil {
			return i, fmt.Errorf("flushing query responses: %d not recorded: %w", len(entries)-i, err)
		}
	}
	gs.logger.Debug("flushed query responses", zap.Int("count", len(entries)))
	return len(entries), nil
}
