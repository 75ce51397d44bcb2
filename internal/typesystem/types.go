package typesystem

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/fxquery/internal/config"
)

// Type is the interface for all types the checker can hand to a query response.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []TVar
}

// Subst maps type variable names to their replacements.
type Subst map[string]Type

// TVar represents a type variable (e.g. 'a', 'b', 't1').
type TVar struct {
	Name string
}

func (t TVar) String() string {
	// Inference variables (t1, t14, ...) are noise in hover text and test output.
	if config.IsTestMode || config.IsLSPMode {
		if strings.HasPrefix(t.Name, "t") {
			if _, err := strconv.Atoi(t.Name[1:]); err == nil {
				return "t?"
			}
		}
		if strings.HasPrefix(t.Name, "gen_t") {
			rest := t.Name[len("gen_t"):]
			if _, err := strconv.Atoi(rest); err == nil {
				return "t" + rest
			}
		}
	}
	return t.Name
}

func (t TVar) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TVar) FreeTypeVariables() []TVar {
	return []TVar{t}
}

// TCon represents a type constant/constructor (e.g. Int, Bool, List).
type TCon struct {
	Name   string
	Module string // Optional module path for imported types
}

func (t TCon) String() string {
	if t.Module != "" {
		return t.Module + "." + t.Name
	}
	return t.Name
}

func (t TCon) Apply(s Subst) Type {
	return t
}

func (t TCon) FreeTypeVariables() []TVar {
	return []TVar{}
}

// TApp represents a type application (e.g. List<Int>).
type TApp struct {
	Constructor Type
	Args        []Type
}

func (t TApp) String() string {
	// List<Char> is displayed as String
	if tCon, ok := t.Constructor.(TCon); ok && tCon.Name == config.ListTypeName && len(t.Args) == 1 {
		if argCon, ok := t.Args[0].(TCon); ok && argCon.Name == "Char" {
			return "String"
		}
	}

	args := []string{}
	for _, arg := range t.Args {
		args = append(args, arg.String())
	}
	if len(args) == 0 {
		return t.Constructor.String()
	}
	return fmt.Sprintf("(%s %s)", t.Constructor.String(), strings.Join(args, " "))
}

func (t TApp) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TApp) FreeTypeVariables() []TVar {
	vars := t.Constructor.FreeTypeVariables()
	for _, arg := range t.Args {
		vars = append(vars, arg.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// TTuple represents a fixed-size product type (e.g. (Int, String)).
type TTuple struct {
	Elements []Type
}

func (t TTuple) String() string {
	args := []string{}
	for _, el := range t.Elements {
		args = append(args, el.String())
	}
	return fmt.Sprintf("(%s)", strings.Join(args, ", "))
}

func (t TTuple) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TTuple) FreeTypeVariables() []TVar {
	vars := []TVar{}
	for _, el := range t.Elements {
		vars = append(vars, el.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// TFunc represents a function type (e.g. (Int, Int) -> Int).
type TFunc struct {
	Params     []Type
	ReturnType Type
	IsVariadic bool
}

func (t TFunc) String() string {
	params := []string{}
	for _, p := range t.Params {
		params = append(params, p.String())
	}
	if t.IsVariadic {
		if len(params) > 0 {
			params[len(params)-1] = "..." + params[len(params)-1]
		} else {
			params = append(params, "...")
		}
	}
	ret := "Nil"
	if t.ReturnType != nil {
		ret = t.ReturnType.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), ret)
}

func (t TFunc) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TFunc) FreeTypeVariables() []TVar {
	vars := []TVar{}
	for _, p := range t.Params {
		vars = append(vars, p.FreeTypeVariables()...)
	}
	if t.ReturnType != nil {
		vars = append(vars, t.ReturnType.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// applyWithCycleCheck applies s to t, refusing to follow a variable twice on the
// same path so self-referential substitutions terminate.
func applyWithCycleCheck(t Type, s Subst, visited map[string]bool) Type {
	if t == nil {
		return nil
	}

	switch typ := t.(type) {
	case TVar:
		if visited[typ.Name] {
			return typ
		}
		if replacement, ok := s[typ.Name]; ok {
			if tv, ok := replacement.(TVar); ok && tv.Name == typ.Name {
				return typ
			}
			newVisited := make(map[string]bool, len(visited)+1)
			for k, v := range visited {
				newVisited[k] = v
			}
			newVisited[typ.Name] = true
			return applyWithCycleCheck(replacement, s, newVisited)
		}
		return typ

	case TApp:
		newArgs := make([]Type, len(typ.Args))
		for i, arg := range typ.Args {
			newArgs[i] = applyWithCycleCheck(arg, s, visited)
		}
		return TApp{Constructor: applyWithCycleCheck(typ.Constructor, s, visited), Args: newArgs}

	case TTuple:
		newElems := make([]Type, len(typ.Elements))
		for i, e := range typ.Elements {
			newElems[i] = applyWithCycleCheck(e, s, visited)
		}
		return TTuple{Elements: newElems}

	case TFunc:
		newParams := make([]Type, len(typ.Params))
		for i, p := range typ.Params {
			newParams[i] = applyWithCycleCheck(p, s, visited)
		}
		return TFunc{
			Params:     newParams,
			ReturnType: applyWithCycleCheck(typ.ReturnType, s, visited),
			IsVariadic: typ.IsVariadic,
		}

	default:
		return t.Apply(s)
	}
}

func uniqueTVars(vars []TVar) []TVar {
	seen := make(map[string]bool, len(vars))
	result := make([]TVar, 0, len(vars))
	for _, v := range vars {
		if !seen[v.Name] {
			seen[v.Name] = true
			result = append(result, v)
		}
	}
	return result
}
