package parser

import (
	"testing"

	"github.com/leverr-lang/leverr/internal/ast"
)

func mustParse(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, errs := ParseProgram(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return expr
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"42", "*ast.IntLit"},
		{"3.14", "*ast.FloatLit"},
		{`"hi"`, "*ast.StringLit"},
		{"true", "*ast.BoolLit"},
		{"()", "*ast.UnitLit"},
		{"x", "*ast.Ident"},
	}
	for _, tt := range tests {
		expr := mustParse(t, tt.src)
		if got := typeName(expr); got != tt.want {
			t.Errorf("%q: expected %s, got %s", tt.src, tt.want, got)
		}
	}
}

func TestParseStringLitStripsQuotes(t *testing.T) {
	expr := mustParse(t, `"hello world"`)
	lit, ok := expr.(*ast.StringLit)
	if !ok || lit.Value != "hello world" {
		t.Fatalf("expected StringLit(hello world), got %#v", expr)
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3).
	expr := mustParse(t, "1 + 2 * 3")
	bin, ok := expr.(*ast.Binary)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected top-level '+', got %#v", expr)
	}
	right, ok := bin.Right.(*ast.Binary)
	if !ok || right.Op != "*" {
		t.Fatalf("expected right operand '*', got %#v", bin.Right)
	}
}

func TestParsePipeIsLeftAssociative(t *testing.T) {
	// a |> b |> c should parse as (a |> b) |> c.
	expr := mustParse(t, "a |> b |> c")
	outer, ok := expr.(*ast.Pipe)
	if !ok {
		t.Fatalf("expected top-level Pipe, got %#v", expr)
	}
	if _, ok := outer.Left.(*ast.Pipe); !ok {
		t.Fatalf("expected Pipe's left to be a nested Pipe, got %#v", outer.Left)
	}
}

func TestParseLambdaBodyStopsBeforePipe(t *testing.T) {
	// fn x -> x |> f  is two pipe operands at the outer level: the lambda
	// body is just `x`, and the whole thing is Pipe(Lambda, f).
	expr := mustParse(t, "fn x -> x |> f")
	pipe, ok := expr.(*ast.Pipe)
	if !ok {
		t.Fatalf("expected top-level Pipe, got %#v", expr)
	}
	lambda, ok := pipe.Left.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected Pipe's left to be a Lambda, got %#v", pipe.Left)
	}
	if _, ok := lambda.Body.(*ast.Ident); !ok {
		t.Fatalf("expected lambda body to be bare identifier x, got %#v", lambda.Body)
	}
}

func TestParseMultiParamLambdaDesugarsToNestedLambdas(t *testing.T) {
	expr := mustParse(t, "fn(a, b) -> a + b")
	outer, ok := expr.(*ast.Lambda)
	if !ok || outer.Param != "a" {
		t.Fatalf("expected outer Lambda(a), got %#v", expr)
	}
	inner, ok := outer.Body.(*ast.Lambda)
	if !ok || inner.Param != "b" {
		t.Fatalf("expected inner Lambda(b), got %#v", outer.Body)
	}
}

func TestParseMultiArgCallDesugarsToNestedCalls(t *testing.T) {
	expr := mustParse(t, "add(1, 2)")
	outer, ok := expr.(*ast.Call)
	if !ok {
		t.Fatalf("expected top-level Call, got %#v", expr)
	}
	if lit, ok := outer.Arg.(*ast.IntLit); !ok || lit.Value != 2 {
		t.Fatalf("expected outer call's arg to be 2, got %#v", outer.Arg)
	}
	inner, ok := outer.Fn.(*ast.Call)
	if !ok {
		t.Fatalf("expected nested Call, got %#v", outer.Fn)
	}
	if lit, ok := inner.Arg.(*ast.IntLit); !ok || lit.Value != 1 {
		t.Fatalf("expected inner call's arg to be 1, got %#v", inner.Arg)
	}
	if _, ok := inner.Fn.(*ast.Ident); !ok {
		t.Fatalf("expected innermost fn to be the identifier add, got %#v", inner.Fn)
	}
}

func TestParseCurriedCallChain(t *testing.T) {
	// f(a)(b) should parse as Call(Call(f, a), b), with no parens desugar
	// at either call site.
	expr := mustParse(t, "f(a)(b)")
	outer, ok := expr.(*ast.Call)
	if !ok {
		t.Fatalf("expected top-level Call, got %#v", expr)
	}
	if _, ok := outer.Fn.(*ast.Call); !ok {
		t.Fatalf("expected outer call's fn to be a nested Call, got %#v", outer.Fn)
	}
}

func TestParseTagConstructorWithArgs(t *testing.T) {
	expr := mustParse(t, "Rect(3, 4)")
	tag, ok := expr.(*ast.TagExpr)
	if !ok || tag.Name != "Rect" || len(tag.Args) != 2 {
		t.Fatalf("expected TagExpr Rect/2, got %#v", expr)
	}
}

func TestParseBareTagConstructor(t *testing.T) {
	expr := mustParse(t, "None")
	tag, ok := expr.(*ast.TagExpr)
	if !ok || tag.Name != "None" || len(tag.Args) != 0 {
		t.Fatalf("expected bare TagExpr None, got %#v", expr)
	}
}

func TestParseUnwrapPostfix(t *testing.T) {
	expr := mustParse(t, "parse(s)?")
	unwrap, ok := expr.(*ast.Unwrap)
	if !ok {
		t.Fatalf("expected Unwrap, got %#v", expr)
	}
	if _, ok := unwrap.Inner.(*ast.Call); !ok {
		t.Fatalf("expected Unwrap's inner to be the call, got %#v", unwrap.Inner)
	}
}

func TestParseBareCatchHasNilProtected(t *testing.T) {
	expr := mustParse(t, "catch e -> 0")
	c, ok := expr.(*ast.Catch)
	if !ok {
		t.Fatalf("expected Catch, got %#v", expr)
	}
	if c.Protected != nil {
		t.Fatalf("expected nil Protected on a bare catch, got %#v", c.Protected)
	}
	if c.ErrParam != "e" {
		t.Fatalf("expected error param e, got %q", c.ErrParam)
	}
}

func TestParseFullPipeWithUnwrapAndCatch(t *testing.T) {
	// Mirrors scenario 4 from the language's testable-properties section.
	src := `let parse = fn(s) -> match s { "1" -> Ok(1), _ -> Err("bad") } in "bad" |> parse? |> fn n -> n * 2 |> catch e -> 0`
	expr := mustParse(t, src)
	let, ok := expr.(*ast.Let)
	if !ok {
		t.Fatalf("expected top-level Let, got %#v", expr)
	}
	outerPipe, ok := let.Body.(*ast.Pipe)
	if !ok {
		t.Fatalf("expected Let body to be a Pipe, got %#v", let.Body)
	}
	if _, ok := outerPipe.Right.(*ast.Catch); !ok {
		t.Fatalf("expected outermost pipe's right to be Catch, got %#v", outerPipe.Right)
	}
	middlePipe, ok := outerPipe.Left.(*ast.Pipe)
	if !ok {
		t.Fatalf("expected middle Pipe, got %#v", outerPipe.Left)
	}
	if _, ok := middlePipe.Right.(*ast.Lambda); !ok {
		t.Fatalf("expected middle pipe's right to be a Lambda, got %#v", middlePipe.Right)
	}
	innerPipe, ok := middlePipe.Left.(*ast.Pipe)
	if !ok {
		t.Fatalf("expected inner Pipe, got %#v", middlePipe.Left)
	}
	if _, ok := innerPipe.Right.(*ast.Unwrap); !ok {
		t.Fatalf("expected inner pipe's right to be Unwrap, got %#v", innerPipe.Right)
	}
}

func TestParseMatchWithTagPatterns(t *testing.T) {
	src := `match s { Circle(r) -> r * r * 3, Rect(w, h) -> w * h }`
	expr := mustParse(t, src)
	m, ok := expr.(*ast.Match)
	if !ok || len(m.Cases) != 2 {
		t.Fatalf("expected Match/2 cases, got %#v", expr)
	}
	tag0, ok := m.Cases[0].Pattern.(*ast.PatternTag)
	if !ok || tag0.Name != "Circle" || len(tag0.Args) != 1 {
		t.Fatalf("expected PatternTag Circle/1, got %#v", m.Cases[0].Pattern)
	}
}

func TestParseIfBraceForm(t *testing.T) {
	expr := mustParse(t, "if n <= 1 { n } { 0 }")
	ifExpr, ok := expr.(*ast.If)
	if !ok {
		t.Fatalf("expected If, got %#v", expr)
	}
	if _, ok := ifExpr.Cond.(*ast.Binary); !ok {
		t.Fatalf("expected If.Cond to be a Binary comparison, got %#v", ifExpr.Cond)
	}
}

func TestParseListLit(t *testing.T) {
	expr := mustParse(t, "[1, 2, 3]")
	list, ok := expr.(*ast.ListLit)
	if !ok || len(list.Elems) != 3 {
		t.Fatalf("expected ListLit/3, got %#v", expr)
	}
}

func TestParseTupleLit(t *testing.T) {
	expr := mustParse(t, "(1, 2)")
	tuple, ok := expr.(*ast.TupleLit)
	if !ok || len(tuple.Elems) != 2 {
		t.Fatalf("expected TupleLit/2, got %#v", expr)
	}
}

func TestParseGroupingIsNotATuple(t *testing.T) {
	expr := mustParse(t, "(1 + 2)")
	if _, ok := expr.(*ast.Binary); !ok {
		t.Fatalf("expected the parens to unwrap to a bare Binary, got %#v", expr)
	}
}

func TestParseRecordLitAndFieldAccess(t *testing.T) {
	expr := mustParse(t, "{ x: 1, y: 2 }.x")
	access, ok := expr.(*ast.FieldAccess)
	if !ok || access.Field != "x" {
		t.Fatalf("expected FieldAccess(.x), got %#v", expr)
	}
	rec, ok := access.Record.(*ast.RecordLit)
	if !ok || len(rec.Fields) != 2 {
		t.Fatalf("expected RecordLit/2 fields, got %#v", access.Record)
	}
}

func TestParseRecordPattern(t *testing.T) {
	expr := mustParse(t, `match p { { x: x, y: y } -> x + y }`)
	m := expr.(*ast.Match)
	recPat, ok := m.Cases[0].Pattern.(*ast.PatternRecord)
	if !ok || len(recPat.Fields) != 2 {
		t.Fatalf("expected PatternRecord/2 fields, got %#v", m.Cases[0].Pattern)
	}
}

func TestParseFibonacciScenario(t *testing.T) {
	src := `let rec fib = fn(n) -> match n <= 1 { true -> n, false -> fib(n-1) + fib(n-2) } in fib(10)`
	expr := mustParse(t, src)
	let, ok := expr.(*ast.Let)
	if !ok || !let.Recursive || let.Name != "fib" {
		t.Fatalf("expected recursive Let fib, got %#v", expr)
	}
}

func TestParseUnexpectedTokenReportsDiagnostic(t *testing.T) {
	_, errs := ParseProgram("let x = in 5")
	if len(errs) == 0 {
		t.Fatal("expected at least one parse diagnostic")
	}
}

func typeName(e ast.Expr) string {
	switch e.(type) {
	case *ast.IntLit:
		return "*ast.IntLit"
	case *ast.FloatLit:
		return "*ast.FloatLit"
	case *ast.StringLit:
		return "*ast.StringLit"
	case *ast.BoolLit:
		return "*ast.BoolLit"
	case *ast.UnitLit:
		return "*ast.UnitLit"
	case *ast.Ident:
		return "*ast.Ident"
	default:
		return "unknown"
	}
}
