package typesystem

import (
	"fmt"
	"strconv"
	"strings"
)

func isInternalName(name string) bool {
	if strings.HasPrefix(name, "t") {
		if _, err := strconv.Atoi(name[1:]); err == nil {
			return true
		}
	}
	if strings.HasPrefix(name, "gen_t") {
		if _, err := strconv.Atoi(name[5:]); err == nil {
			return true
		}
	}
	return strings.HasPrefix(name, "_pending_")
}

// PrettifyType normalizes type variables for display.
// Variables are renamed a, b, c... z, t1, t2... in order of appearance.
func PrettifyType(t Type) string {
	if t == nil {
		return ""
	}

	vars := make([]string, 0)
	seen := make(map[string]bool)

	var collect func(Type)
	collect = func(t Type) {
		switch typ := t.(type) {
		case TCon:
			if isInternalName(typ.Name) && !seen[typ.Name] {
				seen[typ.Name] = true
				vars = append(vars, typ.Name)
			}
		case TVar:
			if !seen[typ.Name] {
				seen[typ.Name] = true
				vars = append(vars, typ.Name)
			}
		case TApp:
			collect(typ.Constructor)
			for _, arg := range typ.Args {
				collect(arg)
			}
		case TFunc:
			for _, p := range typ.Params {
				collect(p)
			}
			if typ.ReturnType != nil {
				collect(typ.ReturnType)
			}
		case TTuple:
			for _, sub := range typ.Elements {
				collect(sub)
			}
		}
	}
	collect(t)

	nextName := func(idx int) string {
		if idx < 26 {
			return string(rune('a' + idx))
		}
		return fmt.Sprintf("t%d", idx-26+1)
	}

	subst := make(Subst, len(vars))
	for i, name := range vars {
		subst[name] = TVar{Name: nextName(i)}
	}
	return rename(t, subst).String()
}

// rename maps names in one step, without following chains in s. It also
// rewrites internal TCon names, which the checker uses for rigid variables.
func rename(t Type, s Subst) Type {
	switch typ := t.(type) {
	case TVar:
		if r, ok := s[typ.Name]; ok {
			return r
		}
		return typ
	case TCon:
		if r, ok := s[typ.Name]; ok {
			return r
		}
		return typ
	case TApp:
		args := make([]Type, len(typ.Args))
		for i, a := range typ.Args {
			args[i] = rename(a, s)
		}
		return TApp{Constructor: rename(typ.Constructor, s), Args: args}
	case TFunc:
		params := make([]Type, len(typ.Params))
		for i, p := range typ.Params {
			params[i] = rename(p, s)
		}
		var ret Type
		if typ.ReturnType != nil {
			ret = rename(typ.ReturnType, s)
		}
		return TFunc{Params: params, ReturnType: ret, IsVariadic: typ.IsVariadic}
	case TTuple:
		elems := make([]Type, len(typ.Elements))
		for i, e := range typ.Elements {
			elems[i] = rename(e, s)
		}
		return TTuple{Elements: elems}
	default:
		return t
	}
}
