package infer

import (
	"testing"

	"github.com/leverr-lang/leverr/internal/ast"
	"github.com/leverr-lang/leverr/internal/diag"
	"github.com/leverr-lang/leverr/internal/types"
)

func sp() diag.Span { return diag.Span{Line: 1, Column: 1, Start: 0, End: 1} }

func TestInferLiterals(t *testing.T) {
	env := Prelude()
	cases := []struct {
		expr ast.Expr
		want string
	}{
		{ast.NewIntLit(1, sp()), "Int"},
		{ast.NewFloatLit(1.5, sp()), "Float"},
		{ast.NewStringLit("hi", sp()), "String"},
		{ast.NewBoolLit(true, sp()), "Bool"},
		{ast.NewUnitLit(sp()), "Unit"},
	}
	for _, c := range cases {
		ty, err := Infer(c.expr, env)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ty.String() != c.want {
			t.Errorf("got %s, want %s", ty.String(), c.want)
		}
	}
}

func TestInferUndefinedVariable(t *testing.T) {
	_, err := Infer(ast.NewIdent("nope", sp()), Prelude())
	if err == nil {
		t.Fatal("expected an error")
	}
	d, ok := err.(diag.Diagnostic)
	if !ok || d.Code != diag.CodeTypeUndefinedVariable {
		t.Fatalf("expected undefined-variable diagnostic, got %v", err)
	}
}

func TestInferIdentityLambda(t *testing.T) {
	lam := ast.NewLambda("x", ast.NewIdent("x", sp()), sp())
	ty, err := Infer(lam, Prelude())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn, ok := ty.(*types.Func)
	if !ok {
		t.Fatalf("expected a function type, got %s", ty)
	}
	if fn.Param.String() != fn.Ret.String() {
		t.Errorf("identity lambda should have equal param/return types, got %s -> %s", fn.Param, fn.Ret)
	}
}

func TestInferLetGeneralization(t *testing.T) {
	// let id = (x -> x) in (id(1), id("s"))
	id := ast.NewLambda("x", ast.NewIdent("x", sp()), sp())
	body := ast.NewTupleLit([]ast.Expr{
		ast.NewCall(ast.NewIdent("id", sp()), ast.NewIntLit(1, sp()), sp()),
		ast.NewCall(ast.NewIdent("id", sp()), ast.NewStringLit("s", sp()), sp()),
	}, sp())
	let := ast.NewLet("id", id, body, false, sp())

	ty, err := Infer(let, Prelude())
	if err != nil {
		t.Fatalf("polymorphic let should type-check, got error: %v", err)
	}
	tup, ok := ty.(*types.Tuple)
	if !ok || len(tup.Elems) != 2 {
		t.Fatalf("expected a 2-tuple, got %s", ty)
	}
	if tup.Elems[0].String() != "Int" || tup.Elems[1].String() != "String" {
		t.Errorf("expected (Int, String), got %s", ty)
	}
}

func TestInferBinaryArithmetic(t *testing.T) {
	e := ast.NewBinary("+", ast.NewIntLit(1, sp()), ast.NewIntLit(2, sp()), sp())
	ty, err := Infer(e, Prelude())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.String() != "Int" {
		t.Errorf("got %s, want Int", ty)
	}
}

func TestInferBinaryMismatch(t *testing.T) {
	e := ast.NewBinary("+", ast.NewIntLit(1, sp()), ast.NewStringLit("x", sp()), sp())
	_, err := Infer(e, Prelude())
	if err == nil {
		t.Fatal("expected a type mismatch error")
	}
}

func TestInferIfBranchesMustAgree(t *testing.T) {
	e := ast.NewIf(ast.NewBoolLit(true, sp()), ast.NewIntLit(1, sp()), ast.NewStringLit("x", sp()), sp())
	_, err := Infer(e, Prelude())
	if err == nil {
		t.Fatal("expected branch type mismatch error")
	}
}

func TestInferTagOkErr(t *testing.T) {
	ok := ast.NewTagExpr("Ok", []ast.Expr{ast.NewIntLit(1, sp())}, sp())
	ty, err := Infer(ok, Prelude())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.String() != "Result(Int)" {
		t.Errorf("got %s, want Result(Int)", ty)
	}
}

func TestInferUnwrapResult(t *testing.T) {
	ok := ast.NewTagExpr("Ok", []ast.Expr{ast.NewIntLit(1, sp())}, sp())
	unwrap := ast.NewUnwrap(ok, sp())
	ty, err := Infer(unwrap, Prelude())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.String() != "Int" {
		t.Errorf("got %s, want Int", ty)
	}
}

func TestInferUnwrapNonResultFails(t *testing.T) {
	unwrap := ast.NewUnwrap(ast.NewIntLit(1, sp()), sp())
	_, err := Infer(unwrap, Prelude())
	if err == nil {
		t.Fatal("expected a not-unwrappable error")
	}
}

func TestInferFieldAccess(t *testing.T) {
	rec := ast.NewRecordLit([]ast.RecordField{{Name: "x", Value: ast.NewIntLit(1, sp())}}, sp())
	access := ast.NewFieldAccess(rec, "x", sp())
	ty, err := Infer(access, Prelude())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.String() != "Int" {
		t.Errorf("got %s, want Int", ty)
	}
}

func TestInferMatchTagPatterns(t *testing.T) {
	subject := ast.NewTagExpr("Ok", []ast.Expr{ast.NewIntLit(3, sp())}, sp())
	match := ast.NewMatch(subject, []ast.MatchCase{
		{Pattern: ast.NewPatternTag("Ok", []ast.Pattern{ast.NewPatternIdent("v", sp())}, sp()), Body: ast.NewIdent("v", sp())},
		{Pattern: ast.NewPatternWildcard(sp()), Body: ast.NewIntLit(0, sp())},
	}, sp())
	ty, err := Infer(match, Prelude())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.String() != "Int" {
		t.Errorf("got %s, want Int", ty)
	}
}

func TestInferBuiltinMapScheme(t *testing.T) {
	// map(x -> x + 1, [1, 2])
	inc := ast.NewLambda("x", ast.NewBinary("+", ast.NewIdent("x", sp()), ast.NewIntLit(1, sp()), sp()), sp())
	call := ast.NewCall(
		ast.NewCall(ast.NewIdent("map", sp()), inc, sp()),
		ast.NewListLit([]ast.Expr{ast.NewIntLit(1, sp()), ast.NewIntLit(2, sp())}, sp()),
		sp(),
	)
	ty, err := Infer(call, Prelude())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.String() != "List(Int)" {
		t.Errorf("got %s, want List(Int)", ty)
	}
}

func TestInferRecursiveLet(t *testing.T) {
	// let rec fact = fn n -> if n == 0 { 1 } { n * fact(n - 1) } in fact(5)
	cond := ast.NewBinary("==", ast.NewIdent("n", sp()), ast.NewIntLit(0, sp()), sp())
	recCall := ast.NewCall(ast.NewIdent("fact", sp()),
		ast.NewBinary("-", ast.NewIdent("n", sp()), ast.NewIntLit(1, sp()), sp()), sp())
	elseBranch := ast.NewBinary("*", ast.NewIdent("n", sp()), recCall, sp())
	body := ast.NewIf(cond, ast.NewIntLit(1, sp()), elseBranch, sp())
	lam := ast.NewLambda("n", body, sp())
	let := ast.NewLet("fact", lam, ast.NewCall(ast.NewIdent("fact", sp()), ast.NewIntLit(5, sp()), sp()), true, sp())

	ty, err := Infer(let, Prelude())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.String() != "Int" {
		t.Errorf("got %s, want Int", ty)
	}
}

// TestInferMatchDistinctTagConstructorsInSiblingCases covers the open-tag
// match against a lambda parameter: `Circle(r)` and `Rect(w, h)` are
// unrelated constructors with no declared sum type tying them together, so
// unifying either pattern's shape against the subject's type would make
// the second case fail against whatever the first one bound. The
// inferencer must leave tag patterns opaque (spec.md §4.4) rather than
// reject this.
func TestInferMatchDistinctTagConstructorsInSiblingCases(t *testing.T) {
	// fn(s) -> match s { Circle(r) -> r * r * 3, Rect(w, h) -> w * h }
	subject := ast.NewIdent("s", sp())
	circleCase := ast.MatchCase{
		Pattern: ast.NewPatternTag("Circle", []ast.Pattern{ast.NewPatternIdent("r", sp())}, sp()),
		Body: ast.NewBinary("*",
			ast.NewBinary("*", ast.NewIdent("r", sp()), ast.NewIdent("r", sp()), sp()),
			ast.NewIntLit(3, sp()), sp()),
	}
	rectCase := ast.MatchCase{
		Pattern: ast.NewPatternTag("Rect", []ast.Pattern{
			ast.NewPatternIdent("w", sp()), ast.NewPatternIdent("h", sp()),
		}, sp()),
		Body: ast.NewBinary("*", ast.NewIdent("w", sp()), ast.NewIdent("h", sp()), sp()),
	}
	match := ast.NewMatch(subject, []ast.MatchCase{circleCase, rectCase}, sp())
	lam := ast.NewLambda("s", match, sp())

	ty, err := Infer(lam, Prelude())
	if err != nil {
		t.Fatalf("expected distinct tag constructors to type-check, got error: %v", err)
	}
	fn, ok := ty.(*types.Func)
	if !ok {
		t.Fatalf("expected a function type, got %s", ty)
	}
	if fn.Ret.String() != "Int" {
		t.Errorf("got return type %s, want Int", fn.Ret)
	}
}
