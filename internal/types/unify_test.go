package types

import (
	"testing"

	"github.com/leverr-lang/leverr/internal/diag"
)

func TestUnifyConstructors(t *testing.T) {
	s, err := Unify(Int, Int, Subst{}, diag.Span{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != 0 {
		t.Fatalf("expected no substitution extension, got %v", s)
	}
}

func TestUnifyConstructorMismatch(t *testing.T) {
	_, err := Unify(Int, String, Subst{}, diag.Span{})
	if err == nil {
		t.Fatal("expected a mismatch error")
	}
}

func TestUnifyBindsVariable(t *testing.T) {
	v := &Var{ID: 1}
	s, err := Unify(v, Int, Subst{}, diag.Span{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Apply(s, v).String() != "Int" {
		t.Fatalf("expected t1 bound to Int, got %s", Apply(s, v))
	}
}

func TestUnifyFunc(t *testing.T) {
	v := &Var{ID: 1}
	f1 := &Func{Param: v, Ret: Bool}
	f2 := &Func{Param: Int, Ret: Bool}
	s, err := Unify(f1, f2, Subst{}, diag.Span{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Apply(s, v).String() != "Int" {
		t.Fatalf("expected param var bound to Int, got %s", Apply(s, v))
	}
}

func TestOccursCheckRejectsInfiniteType(t *testing.T) {
	v := &Var{ID: 1}
	cyclic := &List{Elem: v}
	_, err := Unify(v, cyclic, Subst{}, diag.Span{})
	if err == nil {
		t.Fatal("expected occurs-check failure for v = List(v)")
	}
}

func TestUnifyTupleLengthMismatch(t *testing.T) {
	a := &Tuple{Elems: []Type{Int, Int}}
	b := &Tuple{Elems: []Type{Int}}
	_, err := Unify(a, b, Subst{}, diag.Span{})
	if err == nil {
		t.Fatal("expected length-mismatch error")
	}
}

func TestUnifyRecordsToleratesExtraFields(t *testing.T) {
	a := &Record{Fields: map[string]Type{"x": Int, "y": Int}}
	b := &Record{Fields: map[string]Type{"x": Int}}
	_, err := Unify(a, b, Subst{}, diag.Span{})
	if err != nil {
		t.Fatalf("expected loose field intersection to unify, got %v", err)
	}
}

func TestUnifyTagsRequireMatchingNameAndArity(t *testing.T) {
	a := &Tag{Name: "Circle", Args: []Type{Int}}
	b := &Tag{Name: "Rect", Args: []Type{Int}}
	if _, err := Unify(a, b, Subst{}, diag.Span{}); err == nil {
		t.Fatal("expected constructor-name mismatch to fail")
	}
	c := &Tag{Name: "Circle", Args: []Type{Int, Int}}
	if _, err := Unify(a, c, Subst{}, diag.Span{}); err == nil {
		t.Fatal("expected arity mismatch to fail")
	}
}

func TestGeneralizeAndInstantiate(t *testing.T) {
	env := NewEnv()
	g := &VarGen{}
	v := g.Fresh()
	idT := &Func{Param: v, Ret: v}

	sc := Generalize(env, idT)
	if len(sc.Vars) != 1 {
		t.Fatalf("expected one quantified variable, got %v", sc.Vars)
	}

	t1 := Instantiate(g, sc)
	t2 := Instantiate(g, sc)
	f1, ok := t1.(*Func)
	if !ok {
		t.Fatalf("expected Func, got %#v", t1)
	}
	f2 := t2.(*Func)
	if f1.Param.(*Var).ID == f2.Param.(*Var).ID {
		t.Fatal("expected distinct instantiations to use distinct fresh variables")
	}
}

func TestGeneralizeDoesNotQuantifyEnvFreeVars(t *testing.T) {
	g := &VarGen{}
	v := g.Fresh()
	env := NewEnv().Extend("x", Mono(v))

	sc := Generalize(env, v)
	if len(sc.Vars) != 0 {
		t.Fatalf("expected no generalization over a variable free in env, got %v", sc.Vars)
	}
}
