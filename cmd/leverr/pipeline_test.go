package main

import "testing"

// TestRunSourceScenarios exercises the full lex -> parse -> infer -> eval
// pipeline against the worked examples spec.md documents literally, source
// text in and rendered output out, the way the teacher's codegen tests
// drive whole snippets rather than individual AST nodes.
func TestRunSourceScenarios(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "recursive fibonacci",
			source: `let rec fib = fn(n) -> match n <= 1 { true -> n, false -> fib(n-1) + fib(n-2) } in fib(10)`,
			want:   "55",
		},
		{
			name:   "filter map fold pipeline",
			source: `[1, 2, 3, 4, 5] |> filter(fn(x) -> x > 2) |> map(fn(x) -> x * 10) |> fold(0, fn(acc, x) -> acc + x)`,
			want:   "120",
		},
		{
			name: "unwrap on ok propagates",
			source: `let parse = fn(s) -> match s { "42" -> Ok(42), _ -> Err("bad") } in ` +
				`"42" |> parse? |> fn n -> n * 2`,
			want: "84",
		},
		{
			name: "unwrap on err recovered by catch",
			source: `let parse = fn(s) -> match s { "1" -> Ok(1), _ -> Err("bad") } in ` +
				`"bad" |> parse? |> fn n -> n * 2 |> catch e -> 0`,
			want: "0",
		},
		{
			name:   "match over distinct tag constructors",
			source: `let area = fn(s) -> match s { Circle(r) -> r * r * 3, Rect(w, h) -> w * h } in area(Rect(3, 4))`,
			want:   "12",
		},
		{
			name:   "curried builtin partial application",
			source: `let add = fn(a, b) -> a + b in [1, 2, 3] |> map(add(10))`,
			want:   "[11, 12, 13]",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, d := runSource(c.source, nil)
			if d != nil {
				t.Fatalf("unexpected diagnostic: %s", d.Message)
			}
			if out != c.want {
				t.Errorf("got %q, want %q", out, c.want)
			}
		})
	}
}

func TestRunSourceNegativeScenarios(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"arithmetic on mismatched operand types", `5 + "hello"`},
		{"calling a non-function", `let x = 5 in x(3)`},
		{"unwrap on a non-result operand", `"hello"?`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, d := runSource(c.source, nil)
			if d == nil {
				t.Fatalf("expected a diagnostic for %q", c.source)
			}
		})
	}
}

func TestTypeOfReportsInferredType(t *testing.T) {
	ty, d := typeOf(`fn(x) -> x + 1`)
	if d != nil {
		t.Fatalf("unexpected diagnostic: %s", d.Message)
	}
	if ty != "Int -> Int" {
		t.Errorf("got %q, want %q", ty, "Int -> Int")
	}
}
