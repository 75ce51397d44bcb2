package symbols

import (
	"sync"

	"github.com/funvibe/fxquery/internal/source"
)

// SymbolTable maps method refs to their declarations.
type SymbolTable struct {
	mu      sync.RWMutex
	methods []MethodSymbol // index 0 is reserved for "no method"
	byName  map[string][]MethodRef
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		methods: []MethodSymbol{{}},
		byName:  make(map[string][]MethodRef),
	}
}

// EnterMethod declares a method and returns its ref.
func (s *SymbolTable) EnterMethod(sym MethodSymbol) MethodRef {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := MethodRef(len(s.methods))
	s.methods = append(s.methods, sym)
	s.byName[sym.FullName()] = append(s.byName[sym.FullName()], ref)
	return ref
}

// Method returns the declaration behind ref.
func (s *SymbolTable) Method(ref MethodRef) (MethodSymbol, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if ref == 0 || int(ref) >= len(s.methods) {
		return MethodSymbol{}, NewMethodNotFoundError(ref)
	}
	return s.methods[ref], nil
}

// Find returns every method declared under the full name Owner.Name (or Name for
// free functions), in declaration order.
func (s *SymbolTable) Find(fullName string) []MethodRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	refs := s.byName[fullName]
	out := make([]MethodRef, len(refs))
	copy(out, refs)
	return out
}

// DefinitionLoc returns where ref was declared, or source.None().
func (s *SymbolTable) DefinitionLoc(ref MethodRef) source.Loc {
	sym, err := s.Method(ref)
	if err != nil {
		return source.None()
	}
	return sym.DefinitionLoc
}

// Len returns the number of declared methods.
func (s *SymbolTable) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.methods) - 1
}
