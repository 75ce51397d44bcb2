package query

import "fmt"

// Kind enumerates the response variants.
type Kind int

const (
	KindSend Kind = iota + 1
	KindIdent
	KindLiteral
	KindConstant
	KindField
	KindDefinition
	KindEdit
)

var kindNames = map[Kind]string{
	KindSend:       "send",
	KindIdent:      "ident",
	KindLiteral:    "literal",
	KindConstant:   "constant",
	KindField:      "field",
	KindDefinition: "definition",
	KindEdit:       "edit",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown query response kind %q", s)
}
