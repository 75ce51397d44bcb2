package query_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/fxquery/internal/query"
	"github.com/funvibe/fxquery/internal/source"
	"github.com/funvibe/fxquery/internal/symbols"
	"github.com/funvibe/fxquery/internal/typesystem"
)

// send builds a call response over the first occurrence of term in the file,
// with the receiver spanning receiver (or collapsed onto the term start when
// receiver is empty).
func send(t *testing.T, s fixtureState, text, term, receiver, method string) *query.SendResponse {
	t.Helper()
	termBegin := strings.Index(text, term)
	require.GreaterOrEqual(t, termBegin, 0, "term %q", term)
	termLoc := s.loc(uint32(termBegin), uint32(termBegin+len(term)))

	recvLoc := s.loc(uint32(termBegin), uint32(termBegin))
	if receiver != "" {
		recvBegin := termBegin + strings.Index(term, receiver)
		recvLoc = s.loc(uint32(recvBegin), uint32(recvBegin+len(receiver)))
	}

	ref := s.gs.Symbols().EnterMethod(symbols.MethodSymbol{Name: method})
	resp := query.New(&query.SendResponse{
		TermLoc:     termLoc,
		ReceiverLoc: recvLoc,
		Dispatch: &typesystem.DispatchResult{
			ReturnType: intType,
			Main:       typesystem.DispatchComponent{Method: ref},
		},
	})
	return resp.IsSend()
}

func locatedText(t *testing.T, s fixtureState, sr *query.SendResponse) (source.Loc, string) {
	t.Helper()
	loc, ok := sr.MethodNameLoc(s.gs)
	require.True(t, ok, "method name not located")
	text, ok := loc.Source(s.gs.Files())
	require.True(t, ok)
	return loc, text
}

func TestMethodNameLoc(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		term      string
		receiver  string
		method    string
		wantBegin uint32
	}{
		{"receiver dot method", "foo.bar(1)", "foo.bar(1)", "foo", "bar", 4},
		{"bare call", "bar(1)", "bar(1)", "", "bar", 0},
		{"whitespace around dot", "foo .  bar(1)", "foo .  bar(1)", "foo", "bar", 7},
		{"tab after dot", "foo.\tbar(1)", "foo.\tbar(1)", "foo", "bar", 5},
		{"call not at file start", "x = foo.bar(1)\n", "foo.bar(1)", "foo", "bar", 8},
		{"chained receiver", "a.b().bar(1)", "a.b().bar(1)", "a.b()", "bar", 6},
		{"no arguments", "foo.bar", "foo.bar", "foo", "bar", 4},
		{"bare call later in file", "y\nbar(2)", "bar(2)", "", "bar", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState(t, tt.text)
			sr := send(t, s, tt.text, tt.term, tt.receiver, tt.method)

			loc, text := locatedText(t, s, sr)
			assert.Equal(t, tt.method, text)
			assert.Equal(t, tt.wantBegin, loc.BeginPos())
			assert.Equal(t, tt.wantBegin+uint32(len(tt.method)), loc.EndPos())
			assert.Equal(t, s.file, loc.File())
			assert.True(t, sr.TermLoc.Contains(loc))
		})
	}
}

func TestMethodNameLoc_Inconclusive(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		receiver string
		method   string
	}{
		{"declared name not in source", "foo.bar(1)", "foo", "qux"},
		{"operator sugar", "a + b", "a", "+"},
		{"name runs past term end", "foo.ba", "foo", "bar"},
		{"bare call with different name", "bar(1)", "", "baz"},
		{"newline is not skipped", "foo.\nbar(1)", "foo", "bar"},
		{"prefix only", "foo.barbaz(1)", "foo", "barbazz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState(t, tt.text)
			sr := send(t, s, tt.text, tt.text, tt.receiver, tt.method)

			loc, ok := sr.MethodNameLoc(s.gs)
			assert.False(t, ok)
			assert.False(t, loc.Exists())
		})
	}
}

func TestMethodNameLoc_ReceiverOutsideTerm(t *testing.T) {
	text := "foo.bar(1); baz"
	s := newState(t, text)
	ref := s.gs.Symbols().EnterMethod(symbols.MethodSymbol{Name: "bar"})
	sr := query.New(&query.SendResponse{
		TermLoc:     s.loc(0, 10),
		ReceiverLoc: s.loc(12, 15),
		Dispatch: &typesystem.DispatchResult{
			Main: typesystem.DispatchComponent{Method: ref},
		},
	}).IsSend()

	_, ok := sr.MethodNameLoc(s.gs)
	assert.False(t, ok)
}

func TestMethodNameLoc_UnknownMethod(t *testing.T) {
	s := newState(t, "foo.bar(1)")
	sr := query.New(&query.SendResponse{
		TermLoc:     s.loc(0, 10),
		ReceiverLoc: s.loc(0, 3),
		Dispatch: &typesystem.DispatchResult{
			Main: typesystem.DispatchComponent{Method: symbols.MethodRef(99)},
		},
	}).IsSend()

	_, ok := sr.MethodNameLoc(s.gs)
	assert.False(t, ok)
}

func TestMethodNameLoc_OnlyMainCandidate(t *testing.T) {
	text := "foo.bar(1)"
	s := newState(t, text)
	sr := send(t, s, text, text, "foo", "bar")

	// A secondary candidate with a different name does not change the result.
	other := s.gs.Symbols().EnterMethod(symbols.MethodSymbol{Name: "other"})
	dispatch := *sr.Dispatch
	dispatch.Secondary = &typesystem.DispatchResult{
		Main: typesystem.DispatchComponent{Method: other},
	}
	withSecondary := query.New(&query.SendResponse{
		TermLoc:     sr.TermLoc,
		ReceiverLoc: sr.ReceiverLoc,
		Dispatch:    &dispatch,
	}).IsSend()

	_, text1 := locatedText(t, s, sr)
	_, text2 := locatedText(t, s, withSecondary)
	assert.Equal(t, "bar", text1)
	assert.Equal(t, text1, text2)
}

func TestMethodNameLoc_Repeatable(t *testing.T) {
	text := "foo .  bar(1)"
	s := newState(t, text)
	sr := send(t, s, text, text, "foo", "bar")

	first, ok := sr.MethodNameLoc(s.gs)
	require.True(t, ok)
	for i := 0; i < 3; i++ {
		again, ok := sr.MethodNameLoc(s.gs)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}
