package fixture

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/funvibe/fxquery/internal/typesystem"
)

// ParseType reads the small type syntax fixtures use:
//
//	Int   List<Int>   (Int, String)   (Int, a) -> Bool   t3
//
// Lowercase names are type variables.
func ParseType(s string) (typesystem.Type, error) {
	p := &typeParser{src: s}
	t, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("type %q: %w", s, err)
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("type %q: unexpected %q at %d", s, p.src[p.pos:], p.pos)
	}
	return t, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) accept(tok string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *typeParser) parse() (typesystem.Type, error) {
	if p.accept("(") {
		var elems []typesystem.Type
		if !p.accept(")") {
			for {
				t, err := p.parse()
				if err != nil {
					return nil, err
				}
				elems = append(elems, t)
				if p.accept(")") {
					break
				}
				if !p.accept(",") {
					return nil, fmt.Errorf("expected ',' or ')' at %d", p.pos)
				}
			}
		}
		if p.accept("->") {
			ret, err := p.parse()
			if err != nil {
				return nil, err
			}
			return typesystem.TFunc{Params: elems, ReturnType: ret}, nil
		}
		if len(elems) == 1 {
			return elems[0], nil
		}
		return typesystem.TTuple{Elements: elems}, nil
	}

	name := p.ident()
	if name == "" {
		return nil, fmt.Errorf("expected a type at %d", p.pos)
	}
	var head typesystem.Type = typesystem.TCon{Name: name}
	if unicode.IsLower(rune(name[0])) {
		head = typesystem.TVar{Name: name}
	}
	if !p.accept("<") {
		return head, nil
	}
	var args []typesystem.Type
	for {
		t, err := p.parse()
		if err != nil {
			return nil, err
		}
		args = append(args, t)
		if p.accept(">") {
			break
		}
		if !p.accept(",") {
			return nil, fmt.Errorf("expected ',' or '>' at %d", p.pos)
		}
	}
	return typesystem.TApp{Constructor: head, Args: args}, nil
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '_' || c == '.' || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c)) {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}
