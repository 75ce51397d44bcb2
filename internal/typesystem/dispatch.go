package typesystem

import "github.com/funvibe/fxquery/internal/symbols"

// DispatchComponent is one receiver/method pair chosen by overload resolution.
type DispatchComponent struct {
	Receiver Type
	Method   symbols.MethodRef
}

// DispatchResult is the outcome of resolving a call. It belongs to the checker;
// query responses keep a pointer to it and never modify it.
type DispatchResult struct {
	ReturnType Type
	Main       DispatchComponent

	// Secondary is set when resolution also recorded a fallback candidate
	// (e.g. both arms of a union receiver).
	Secondary *DispatchResult
}

// Methods lists the main method followed by every secondary candidate.
func (d *DispatchResult) Methods() []symbols.MethodRef {
	var refs []symbols.MethodRef
	for cur := d; cur != nil; cur = cur.Secondary {
		refs = append(refs, cur.Main.Method)
	}
	return refs
}
