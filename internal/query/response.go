// Package query represents what the type checker knows about the construct at a
// source position: a call, an identifier, a literal, a constant, a field access,
// a definition, or a proposed edit.
package query

import (
	"github.com/funvibe/fxquery/internal/source"
	"github.com/funvibe/fxquery/internal/typesystem"
)

// Response holds exactly one Variant. It is immutable once built: New copies the
// payload, and the probes hand out pointers that callers must treat as read-only.
type Response struct {
	variant Variant
}

// New builds a response around v. v must not be nil.
func New(v Variant) *Response {
	switch p := v.(type) {
	case *SendResponse:
		c := *p
		return &Response{variant: &c}
	case *IdentResponse:
		c := *p
		c.RetType = copyOrigins(c.RetType)
		return &Response{variant: &c}
	case *LiteralResponse:
		c := *p
		c.RetType = copyOrigins(c.RetType)
		return &Response{variant: &c}
	case *ConstantResponse:
		c := *p
		c.RetType = copyOrigins(c.RetType)
		return &Response{variant: &c}
	case *FieldResponse:
		c := *p
		c.RetType = copyOrigins(c.RetType)
		return &Response{variant: &c}
	case *DefinitionResponse:
		c := *p
		c.RetType = copyOrigins(c.RetType)
		return &Response{variant: &c}
	case *EditResponse:
		c := *p
		return &Response{variant: &c}
	default:
		panic("query: New called with a nil variant")
	}
}

func copyOrigins(t typesystem.TypeAndOrigins) typesystem.TypeAndOrigins {
	if t.Origins != nil {
		t.Origins = append([]source.Loc(nil), t.Origins...)
	}
	return t
}

// Kind returns the active variant's kind.
func (r *Response) Kind() Kind {
	return r.variant.kind()
}

// Variant returns the active payload for exhaustive type switches.
func (r *Response) Variant() Variant {
	return r.variant
}

func (r *Response) IsSend() *SendResponse {
	v, _ := r.variant.(*SendResponse)
	return v
}

func (r *Response) IsIdent() *IdentResponse {
	v, _ := r.variant.(*IdentResponse)
	return v
}

func (r *Response) IsLiteral() *LiteralResponse {
	v, _ := r.variant.(*LiteralResponse)
	return v
}

func (r *Response) IsConstant() *ConstantResponse {
	v, _ := r.variant.(*ConstantResponse)
	return v
}

func (r *Response) IsField() *FieldResponse {
	v, _ := r.variant.(*FieldResponse)
	return v
}

func (r *Response) IsDefinition() *DefinitionResponse {
	v, _ := r.variant.(*DefinitionResponse)
	return v
}

func (r *Response) IsEdit() *EditResponse {
	v, _ := r.variant.(*EditResponse)
	return v
}

// Loc returns the location the query was about: the full expression for every
// expression variant, and the edited range for edits.
func (r *Response) Loc() source.Loc {
	switch v := r.variant.(type) {
	case *SendResponse:
		return v.TermLoc
	case *IdentResponse:
		return v.TermLoc
	case *LiteralResponse:
		return v.TermLoc
	case *ConstantResponse:
		return v.TermLoc
	case *FieldResponse:
		return v.TermLoc
	case *DefinitionResponse:
		return v.TermLoc
	case *EditResponse:
		return v.Loc
	}
	return source.None()
}

// RetType returns the resolved type of the expression. A call's type comes from its
// dispatch result, since it is only known after overload resolution.
// RetType panics with *InvariantError on an edit.
func (r *Response) RetType() typesystem.Type {
	switch v := r.variant.(type) {
	case *SendResponse:
		if v.Dispatch == nil {
			raise("RetType", KindSend)
		}
		return v.Dispatch.ReturnType
	case *IdentResponse:
		return v.RetType.Type
	case *LiteralResponse:
		return v.RetType.Type
	case *ConstantResponse:
		return v.RetType.Type
	case *FieldResponse:
		return v.RetType.Type
	case *DefinitionResponse:
		return v.RetType.Type
	}
	raise("RetType", r.Kind())
	return nil
}

// TypeAndOrigins returns the type together with the locations that justify it.
// Calls and edits carry no origins; asking them panics with *InvariantError.
func (r *Response) TypeAndOrigins() typesystem.TypeAndOrigins {
	switch v := r.variant.(type) {
	case *IdentResponse:
		return v.RetType
	case *LiteralResponse:
		return v.RetType
	case *ConstantResponse:
		return v.RetType
	case *FieldResponse:
		return v.RetType
	case *DefinitionResponse:
		return v.RetType
	}
	raise("TypeAndOrigins", r.Kind())
	return typesystem.TypeAndOrigins{}
}

// HasType reports whether RetType may be called.
func (r *Response) HasType() bool {
	if s := r.IsSend(); s != nil {
		return s.Dispatch != nil
	}
	return r.IsEdit() == nil
}
