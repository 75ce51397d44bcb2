package query

import (
	"strings"

	"github.com/funvibe/fxquery/internal/source"
	"github.com/funvibe/fxquery/internal/symbols"
)

// State is the part of the checker's global state the locator reads.
type State interface {
	Files() *source.Files
	Symbols() *symbols.SymbolTable
}

// MethodNameLoc returns the range of TermLoc that is exactly the called method's
// name. A call is written either as
//
//	<receiver><spaces?>.<spaces?><method>...
//	<method>...
//
// The candidate range is checked against the source text; when the declared name
// is not literally there (operator sugar, rewritten calls) the result is false
// rather than a guess.
//
// Only Dispatch.Main is located. Secondary candidates are not.
func (s *SendResponse) MethodNameLoc(st State) (source.Loc, bool) {
	if s.Dispatch == nil {
		return source.None(), false
	}
	methodName := s.Dispatch.Main.Method.Name(st.Symbols())
	if methodName == "" {
		return source.None(), false
	}
	expr, ok := s.TermLoc.Source(st.Files())
	if !ok {
		return source.None(), false
	}

	termBegin := s.TermLoc.BeginPos()
	methodNameOffset := 0
	if s.ReceiverLoc.Exists() && s.ReceiverLoc.EndPos() != termBegin {
		recvEnd := s.ReceiverLoc.EndPos()
		if s.ReceiverLoc.File() != s.TermLoc.File() || recvEnd < termBegin || recvEnd > s.TermLoc.EndPos() {
			return source.None(), false
		}
		rel := int(recvEnd - termBegin)
		dot := strings.IndexByte(expr[rel:], '.')
		if dot < 0 {
			return source.None(), false
		}
		methodNameOffset = rel + dot + 1
		for methodNameOffset < len(expr) && (expr[methodNameOffset] == ' ' || expr[methodNameOffset] == '\t') {
			methodNameOffset++
		}
	}

	begin := termBegin + uint32(methodNameOffset)
	end := begin + uint32(len(methodName))
	if end > s.TermLoc.EndPos() {
		return source.None(), false
	}
	loc := s.TermLoc.WithOffsets(source.Offsets{Begin: begin, End: end})
	if text, ok := loc.Source(st.Files()); !ok || text != methodName {
		return source.None(), false
	}
	return loc, true
}
