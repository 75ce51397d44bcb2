package lsp

import (
	"github.com/funvibe/fxquery/internal/query"
	"github.com/funvibe/fxquery/internal/source"
)

// ResponseAt picks the response a cursor at offset in file refers to: the
// narrowest one whose location covers it. Ties go to the earliest response.
func ResponseAt(responses []*query.Response, file source.FileRef, offset uint32) *query.Response {
	var best *query.Response
	for _, resp := range responses {
		loc := resp.Loc()
		if loc.File() != file || offset < loc.BeginPos() || offset > loc.EndPos() {
			continue
		}
		if best == nil || loc.Offsets().Len() < best.Loc().Offsets().Len() {
			best = resp
		}
	}
	return best
}
