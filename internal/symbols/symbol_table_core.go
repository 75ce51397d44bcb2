package symbols

import (
	"fmt"

	"github.com/funvibe/fxquery/internal/source"
)

// MethodRef names a method entered into a SymbolTable. The zero value is "no method".
type MethodRef uint32

// Exists reports whether the ref names a method at all.
func (r MethodRef) Exists() bool {
	return r != 0
}

// Name returns the declared name of the method, or "" if the table does not know it.
func (r MethodRef) Name(table *SymbolTable) string {
	sym, err := table.Method(r)
	if err != nil {
		return ""
	}
	return sym.Name
}

// MethodSymbol is what the checker knows about a declared method.
type MethodSymbol struct {
	Name            string
	Owner           string     // Type or module that declares the method
	DefinitionLoc   source.Loc // Where the method is declared
	IsOperatorSugar bool       // Reached through operator syntax (e.g. `a + b` calls `+`)
}

// FullName renders Owner.Name.
func (m MethodSymbol) FullName() string {
	if m.Owner == "" {
		return m.Name
	}
	return m.Owner + "." + m.Name
}

// MethodNotFoundError indicates a MethodRef that the table never issued.
type MethodNotFoundError struct {
	Ref MethodRef
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("method not found: #%d", e.Ref)
}

func NewMethodNotFoundError(ref MethodRef) *MethodNotFoundError {
	return &MethodNotFoundError{Ref: ref}
}
