package query

import "github.com/funvibe/fxquery/internal/source"

// Sink accepts finished responses for a file. The error queue implements it.
type Sink interface {
	PushQueryResponse(file source.FileRef, resp *Response)
}

// Push builds a response from v and hands it to sink.
func Push(sink Sink, file source.FileRef, v Variant) *Response {
	resp := New(v)
	sink.PushQueryResponse(file, resp)
	return resp
}
