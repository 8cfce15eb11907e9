package eval

import (
	"math"

	"github.com/leverr-lang/leverr/internal/ast"
	"github.com/leverr-lang/leverr/internal/diag"
)

// evalBinary evaluates a binary operator application. Integer-integer
// arithmetic uses integer operations (Go's `/` and `%` already truncate
// toward zero); float-float uses floating point; a mix of the two promotes
// the integer operand to float, per the spec's dispatch-on-operand-shape
// policy.
func evalBinary(e *ast.Binary, env *Env) Value {
	left := eval(e.Left, env)
	right := eval(e.Right, env)

	switch e.Op {
	case "&&", "||":
		lb, lok := left.(*BoolV)
		rb, rok := right.(*BoolV)
		if !lok || !rok {
			panicErr(diag.CodeRuntimeOperatorMismatch, e.Span(), "%s requires Bool operands", e.Op)
		}
		if e.Op == "&&" {
			return &BoolV{Value: lb.Value && rb.Value}
		}
		return &BoolV{Value: lb.Value || rb.Value}
	case "++":
		ls, lok := left.(*StringV)
		rs, rok := right.(*StringV)
		if !lok || !rok {
			panicErr(diag.CodeRuntimeOperatorMismatch, e.Span(), "++ requires String operands")
		}
		return &StringV{Value: ls.Value + rs.Value}
	case "==", "!=":
		eq := valuesEqual(left, right)
		if e.Op == "!=" {
			eq = !eq
		}
		return &BoolV{Value: eq}
	case "<", ">", "<=", ">=":
		return &BoolV{Value: compareNumeric(e.Op, left, right, e.Span())}
	case "+", "-", "*", "/", "%":
		return arith(e.Op, left, right, e.Span())
	default:
		panicErr(diag.CodeRuntimeOperatorMismatch, e.Span(), "unknown operator %q", e.Op)
		return nil
	}
}

func arith(op string, left, right Value, span diag.Span) Value {
	li, lIsInt := left.(*IntV)
	ri, rIsInt := right.(*IntV)
	if lIsInt && rIsInt {
		return intArith(op, li.Value, ri.Value, span)
	}

	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		panicErr(diag.CodeRuntimeOperatorMismatch, span, "%s requires numeric operands", op)
	}
	return floatArith(op, lf, rf, span)
}

func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case *IntV:
		return float64(n.Value), true
	case *FloatV:
		return n.Value, true
	default:
		return 0, false
	}
}

func intArith(op string, l, r int64, span diag.Span) Value {
	switch op {
	case "+":
		return &IntV{Value: l + r}
	case "-":
		return &IntV{Value: l - r}
	case "*":
		return &IntV{Value: l * r}
	case "/":
		if r == 0 {
			panicErr(diag.CodeRuntimeOperatorMismatch, span, "division by zero")
		}
		return &IntV{Value: l / r}
	case "%":
		if r == 0 {
			panicErr(diag.CodeRuntimeOperatorMismatch, span, "division by zero")
		}
		return &IntV{Value: l % r}
	default:
		panicErr(diag.CodeRuntimeOperatorMismatch, span, "unknown operator %q", op)
		return nil
	}
}

func floatArith(op string, l, r float64, span diag.Span) Value {
	switch op {
	case "+":
		return &FloatV{Value: l + r}
	case "-":
		return &FloatV{Value: l - r}
	case "*":
		return &FloatV{Value: l * r}
	case "/":
		return &FloatV{Value: l / r}
	case "%":
		return &FloatV{Value: math.Mod(l, r)}
	default:
		panicErr(diag.CodeRuntimeOperatorMismatch, span, "unknown operator %q", op)
		return nil
	}
}

func compareNumeric(op string, left, right Value, span diag.Span) bool {
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		panicErr(diag.CodeRuntimeOperatorMismatch, span, "%s requires numeric operands", op)
	}
	switch op {
	case "<":
		return lf < rf
	case ">":
		return lf > rf
	case "<=":
		return lf <= rf
	case ">=":
		return lf >= rf
	default:
		return false
	}
}

// valuesEqual compares two values structurally. Mismatched shapes are
// simply unequal rather than a runtime error, matching `==`'s use as a
// predicate inside filter callbacks.
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case *IntV:
		bv, ok := b.(*IntV)
		return ok && av.Value == bv.Value
	case *FloatV:
		bv, ok := b.(*FloatV)
		return ok && av.Value == bv.Value
	case *StringV:
		bv, ok := b.(*StringV)
		return ok && av.Value == bv.Value
	case *BoolV:
		bv, ok := b.(*BoolV)
		return ok && av.Value == bv.Value
	case *UnitV:
		_, ok := b.(*UnitV)
		return ok
	case *ListV:
		bv, ok := b.(*ListV)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !valuesEqual(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case *TupleV:
		bv, ok := b.(*TupleV)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !valuesEqual(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case *TagV:
		bv, ok := b.(*TagV)
		if !ok || av.Name != bv.Name || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !valuesEqual(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	case *RecordV:
		bv, ok := b.(*RecordV)
		if !ok || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for _, f := range av.Fields {
			other, ok := bv.Field(f.Name)
			if !ok || !valuesEqual(f.Value, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// evalUnary evaluates a prefix operator. Logical not forces a Bool operand;
// arithmetic negation tries Int first and retries as Float on failure, per
// the spec's dispatch order.
func evalUnary(e *ast.Unary, env *Env) Value {
	operand := eval(e.Operand, env)
	switch e.Op {
	case "!":
		b, ok := operand.(*BoolV)
		if !ok {
			panicErr(diag.CodeRuntimeOperatorMismatch, e.Span(), "! requires a Bool operand")
		}
		return &BoolV{Value: !b.Value}
	case "-":
		if i, ok := operand.(*IntV); ok {
			return &IntV{Value: -i.Value}
		}
		if f, ok := operand.(*FloatV); ok {
			return &FloatV{Value: -f.Value}
		}
		panicErr(diag.CodeRuntimeOperatorMismatch, e.Span(), "unary - requires a numeric operand")
		return nil
	default:
		panicErr(diag.CodeRuntimeOperatorMismatch, e.Span(), "unknown unary operator %q", e.Op)
		return nil
	}
}
