package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/fxquery/internal/config"
	"github.com/funvibe/fxquery/internal/core"
	"github.com/funvibe/fxquery/internal/query"
	"github.com/funvibe/fxquery/internal/source"
	"github.com/funvibe/fxquery/internal/store"
	"github.com/funvibe/fxquery/internal/symbols"
	"github.com/funvibe/fxquery/internal/typesystem"
)

func setup(t *testing.T) (*core.GlobalState, source.FileRef) {
	t.Helper()
	gs := core.NewGlobalState(config.Default(), nil)
	file := gs.Files().Enter("main.lang", "foo.bar(1)")
	ref := gs.Symbols().EnterMethod(symbols.MethodSymbol{Name: "bar", Owner: "Foo"})

	ctx := gs.Context(file)
	ctx.PushQueryResponse(&query.SendResponse{
		TermLoc:     source.NewLoc(file, 0, 10),
		ReceiverLoc: source.NewLoc(file, 0, 3),
		Dispatch: &typesystem.DispatchResult{
			ReturnType: typesystem.TVar{Name: "t3"},
			Main:       typesystem.DispatchComponent{Method: ref},
		},
	})
	ctx.PushQueryResponse(&query.EditResponse{Loc: source.NewLoc(file, 4, 7), Replacement: "baz"})
	return gs, file
}

func TestFlush(t *testing.T) {
	gs, _ := setup(t)
	st := store.NewMemory()

	n, err := gs.Flush(context.Background(), st)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, gs.ErrorQueue().Len())

	records, err := st.ByFile(context.Background(), "main.lang")
	require.NoError(t, err)
	require.Len(t, records, 2)

	send := records[0]
	assert.Equal(t, "send", send.Kind)
	assert.Equal(t, "a", send.Type)
	assert.Equal(t, "bar", send.Method)
	assert.Equal(t, uint32(4), send.MethodBegin)
	assert.Equal(t, uint32(7), send.MethodEnd)

	edit := records[1]
	assert.Equal(t, "edit", edit.Kind)
	assert.Empty(t, edit.Type)
	assert.Empty(t, edit.Method)
}

type failingStore struct{ store.Store }

func (failingStore) Record(context.Context, store.Record) error {
	return errors.New("disk full")
}

func TestFlush_StoreError(t *testing.T) {
	gs, _ := setup(t)
	n, err := gs.Flush(context.Background(), failingStore{store.NewMemory()})
	assert.Equal(t, 0, n)
	assert.ErrorContains(t, err, "2 not recorded: disk full")
}

func TestFlush_Cancelled(t *testing.T) {
	gs, _ := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := gs.Flush(ctx, store.NewMemory())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestToRecord_InconclusiveMethod(t *testing.T) {
	gs := core.NewGlobalState(nil, nil)
	file := gs.Files().Enter("ops.lang", "a + b")
	ref := gs.Symbols().EnterMethod(symbols.MethodSymbol{Name: "+", Owner: "Int", IsOperatorSugar: true})
	gs.Context(file).PushQueryResponse(&query.SendResponse{
		TermLoc:     source.NewLoc(file, 0, 5),
		ReceiverLoc: source.NewLoc(file, 0, 1),
		Dispatch: &typesystem.DispatchResult{
			ReturnType: typesystem.TCon{Name: "Int"},
			Main:       typesystem.DispatchComponent{Method: ref},
		},
	})

	entries := gs.ErrorQueue().DrainQueryResponses()
	require.Len(t, entries, 1)
	r := gs.ToRecord(entries[0])
	assert.Equal(t, "ops.lang", r.Path)
	assert.Equal(t, "Int", r.Type)
	assert.Empty(t, r.Method)
}

func TestNewGlobalState_QueueCapacity(t *testing.T) {
	cfg := config.Default()
	cfg.Queue.Capacity = 1
	gs := core.NewGlobalState(cfg, nil)
	file := gs.Files().Enter("main.lang", "1 2")

	for _, begin := range []uint32{0, 2} {
		gs.Context(file).PushQueryResponse(&query.LiteralResponse{
			TermLoc: source.NewLoc(file, begin, begin+1),
			RetType: typesystem.TypeAndOrigins{Type: typesystem.TCon{Name: "Int"}},
		})
	}
	entries := gs.ErrorQueue().DrainQueryResponses()
	require.Len(t, entries, 1)
	assert.Equal(t, uint32(2), entries[0].Response.Loc().BeginPos())
}
