package typesystem

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/funvibe/fxquery/internal/config"
	"github.com/funvibe/fxquery/internal/source"
	"github.com/funvibe/fxquery/internal/symbols"
)

func TestTypeStrings(t *testing.T) {
	intT := TCon{Name: "Int"}
	tests := []struct {
		typ  Type
		want string
	}{
		{intT, "Int"},
		{TCon{Name: "Map", Module: "std"}, "std.Map"},
		{TApp{Constructor: TCon{Name: "List"}, Args: []Type{intT}}, "(List Int)"},
		{TApp{Constructor: TCon{Name: "List"}, Args: []Type{TCon{Name: "Char"}}}, "String"},
		{TTuple{Elements: []Type{intT, TCon{Name: "Bool"}}}, "(Int, Bool)"},
		{TFunc{Params: []Type{intT, intT}, ReturnType: intT}, "(Int, Int) -> Int"},
		{TFunc{Params: []Type{intT}, ReturnType: intT, IsVariadic: true}, "(...Int) -> Int"},
		{TFunc{}, "() -> Nil"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTVarNormalization(t *testing.T) {
	config.IsTestMode = true
	defer func() { config.IsTestMode = false }()

	if got := (TVar{Name: "t14"}).String(); got != "t?" {
		t.Errorf("t14 = %q, want t?", got)
	}
	if got := (TVar{Name: "gen_t3"}).String(); got != "t3" {
		t.Errorf("gen_t3 = %q, want t3", got)
	}
	if got := (TVar{Name: "a"}).String(); got != "a" {
		t.Errorf("a = %q, want a", got)
	}
}

func TestApply(t *testing.T) {
	a := TVar{Name: "a"}
	fn := TFunc{Params: []Type{a}, ReturnType: TApp{Constructor: TCon{Name: "List"}, Args: []Type{a}}}
	got := fn.Apply(Subst{"a": TCon{Name: "Int"}})
	if got.String() != "(Int) -> (List Int)" {
		t.Errorf("Apply = %s", got)
	}

	// self-referential substitutions terminate
	loop := Subst{"a": TVar{Name: "b"}, "b": TVar{Name: "a"}}
	if s := a.Apply(loop).String(); s != "a" && s != "b" {
		t.Errorf("cyclic Apply = %s", s)
	}
}

func TestFreeTypeVariables(t *testing.T) {
	a, b := TVar{Name: "a"}, TVar{Name: "b"}
	fn := TFunc{Params: []Type{a, TTuple{Elements: []Type{b, a}}}, ReturnType: TCon{Name: "Int"}}
	if diff := cmp.Diff([]TVar{a, b}, fn.FreeTypeVariables()); diff != "" {
		t.Errorf("FreeTypeVariables mismatch (-want +got):\n%s", diff)
	}
}

func TestPrettifyType(t *testing.T) {
	fn := TFunc{
		Params:     []Type{TVar{Name: "t7"}, TCon{Name: "gen_t2"}},
		ReturnType: TApp{Constructor: TCon{Name: "Option"}, Args: []Type{TVar{Name: "t7"}}},
	}
	if got := PrettifyType(fn); got != "(a, b) -> (Option a)" {
		t.Errorf("PrettifyType = %q", got)
	}
	if got := PrettifyType(nil); got != "" {
		t.Errorf("PrettifyType(nil) = %q", got)
	}
}

func TestPrettifyType_OverlappingNames(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		// t5 becomes a while a becomes b; the renames must not chain
		{TFunc{Params: []Type{TVar{Name: "t5"}, TVar{Name: "a"}}, ReturnType: TVar{Name: "a"}}, "(a, b) -> b"},
		{TTuple{Elements: []Type{TVar{Name: "b"}, TVar{Name: "a"}}}, "(a, b)"},
		{TApp{Constructor: TCon{Name: "Map"}, Args: []Type{TVar{Name: "b"}, TCon{Name: "t3"}, TVar{Name: "a"}}}, "(Map a b c)"},
	}
	for _, tt := range tests {
		if got := PrettifyType(tt.typ); got != tt.want {
			t.Errorf("PrettifyType(%s) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestOriginLocs(t *testing.T) {
	l1 := source.NewLoc(1, 5, 6)
	l2 := source.NewLoc(1, 0, 3)
	l3 := source.NewLoc(2, 0, 1)
	tao := TypeAndOrigins{Origins: []source.Loc{l3, l1, source.None(), l2, l1}}

	want := []source.Loc{l2, l1, l3}
	if diff := cmp.Diff(want, tao.OriginLocs(), cmp.AllowUnexported(source.Loc{})); diff != "" {
		t.Errorf("OriginLocs mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatchMethods(t *testing.T) {
	d := &DispatchResult{
		Main:      DispatchComponent{Method: 1},
		Secondary: &DispatchResult{Main: DispatchComponent{Method: 2}},
	}
	if diff := cmp.Diff([]symbols.MethodRef{1, 2}, d.Methods()); diff != "" {
		t.Errorf("Methods mismatch (-want +got):\n%s", diff)
	}
}
