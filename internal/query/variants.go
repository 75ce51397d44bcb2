package query

import (
	"github.com/funvibe/fxquery/internal/source"
	"github.com/funvibe/fxquery/internal/typesystem"
)

// Variant is one of the seven response kinds. The set is closed: only the types in
// this file implement it, so a switch over Variant lists every case.
type Variant interface {
	kind() Kind
}

// SendResponse describes a call expression.
type SendResponse struct {
	TermLoc     source.Loc // the whole call, receiver and arguments included
	ReceiverLoc source.Loc // collapsed to TermLoc's start when there is no explicit receiver

	// Dispatch is owned by the checker and must outlive the response.
	Dispatch *typesystem.DispatchResult
}

// IdentResponse describes a reference to a local variable or parameter.
type IdentResponse struct {
	TermLoc source.Loc
	Name    string
	RetType typesystem.TypeAndOrigins
}

// LiteralResponse describes a literal value.
type LiteralResponse struct {
	TermLoc source.Loc
	RetType typesystem.TypeAndOrigins
}

// ConstantResponse describes a reference to a named constant, type or module.
type ConstantResponse struct {
	TermLoc source.Loc
	Name    string
	RetType typesystem.TypeAndOrigins
}

// FieldResponse describes a record or instance field access.
type FieldResponse struct {
	TermLoc source.Loc
	Name    string
	RetType typesystem.TypeAndOrigins
}

// DefinitionResponse describes the declaration site of a name.
type DefinitionResponse struct {
	TermLoc source.Loc
	Name    string
	RetType typesystem.TypeAndOrigins
}

// EditResponse is a proposed edit, not an expression. It has no type.
type EditResponse struct {
	Loc         source.Loc
	Replacement string
}

func (*SendResponse) kind() Kind       { return KindSend }
func (*IdentResponse) kind() Kind      { return KindIdent }
func (*LiteralResponse) kind() Kind    { return KindLiteral }
func (*ConstantResponse) kind() Kind   { return KindConstant }
func (*FieldResponse) kind() Kind      { return KindField }
func (*DefinitionResponse) kind() Kind { return KindDefinition }
func (*EditResponse) kind() Kind       { return KindEdit }
