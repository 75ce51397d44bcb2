package query

import "fmt"

// InvariantError is the panic value raised when a caller asks a response for
// something its variant cannot have, such as the type of an edit.
type InvariantError struct {
	Op   string
	Kind Kind
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated: %s on %s response", e.Op, e.Kind)
}

func raise(op string, k Kind) {
	panic(&InvariantError{Op: op, Kind: k})
}
