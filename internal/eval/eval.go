package eval

import (
	"fmt"

	"github.com/leverr-lang/leverr/internal/ast"
	"github.com/leverr-lang/leverr/internal/diag"
)

// ctrlTransfer is the non-local control-flow event `?` raises when it
// unwraps an `Err(...)`. It unwinds through panic/recover rather than a
// threaded return-value sum, per the spec's design note that the
// mechanism is an implementation choice as long as it propagates
// transparently through calls, pipes, and lambda bodies until caught by
// the nearest enclosing recovery binder or the program boundary.
type ctrlTransfer struct {
	errVal *TagV
}

func runtimeErr(code diag.Code, span diag.Span, format string, args ...any) error {
	return diag.New(diag.StageRuntime, code, fmt.Sprintf(format, args...), span)
}

// Eval evaluates expr in env, returning its value or a runtime diagnostic.
// An uncaught ctrlTransfer escaping to the program boundary surfaces as a
// diagnostic naming the unhandled Err value, matching a program that used
// `?` with no enclosing catch.
func Eval(expr ast.Expr, env *Env) (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case ctrlTransfer:
				result = nil
				err = runtimeErr(diag.CodeRuntimeNotUnwrappable, expr.Span(),
					"unhandled error: %s", Render(v.errVal))
			case diag.Diagnostic:
				result = nil
				err = v
			default:
				panic(r)
			}
		}
	}()
	return eval(expr, env), nil
}

// eval is the tree walk proper. It panics with a diag.Diagnostic on a
// runtime failure (caught by Eval at the boundary, or by evalCatch's own
// recover) and with ctrlTransfer when `?` unwraps an Err. Panicking keeps
// every handler a plain expression instead of threading (Value, error)
// through every recursive call; evalCatch is the only place besides Eval
// itself that needs to tell the two apart.
func eval(expr ast.Expr, env *Env) Value {
	switch e := expr.(type) {
	case *ast.IntLit:
		return &IntV{Value: e.Value}
	case *ast.FloatLit:
		return &FloatV{Value: e.Value}
	case *ast.StringLit:
		return &StringV{Value: e.Value}
	case *ast.BoolLit:
		return &BoolV{Value: e.Value}
	case *ast.UnitLit:
		return &UnitV{}
	case *ast.Ident:
		v, ok := env.Lookup(e.Name)
		if !ok {
			panicErr(diag.CodeRuntimeUndefinedVariable, e.Span(), "undefined variable %q", e.Name)
		}
		return v
	case *ast.Let:
		return evalLet(e, env)
	case *ast.Lambda:
		return &ClosureV{Param: e.Param, Body: e.Body, Env: env}
	case *ast.Call:
		fn := eval(e.Fn, env)
		arg := eval(e.Arg, env)
		return apply(fn, arg, e.Span())
	case *ast.Binary:
		return evalBinary(e, env)
	case *ast.Unary:
		return evalUnary(e, env)
	case *ast.Pipe:
		return evalPipe(e, env)
	case *ast.Unwrap:
		return unwrapValue(eval(e.Inner, env), e.Span())
	case *ast.Catch:
		return evalCatch(e, env)
	case *ast.Match:
		return evalMatch(e, env)
	case *ast.If:
		cond := eval(e.Cond, env)
		b, ok := cond.(*BoolV)
		if !ok {
			panicErr(diag.CodeRuntimeOperatorMismatch, e.Cond.Span(), "if condition must be a Bool")
		}
		if b.Value {
			return eval(e.Then, env)
		}
		return eval(e.Else, env)
	case *ast.ListLit:
		elems := make([]Value, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = eval(el, env)
		}
		return &ListV{Elems: elems}
	case *ast.TupleLit:
		elems := make([]Value, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = eval(el, env)
		}
		return &TupleV{Elems: elems}
	case *ast.RecordLit:
		fields := make([]RecordField, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = RecordField{Name: f.Name, Value: eval(f.Value, env)}
		}
		return &RecordV{Fields: fields}
	case *ast.FieldAccess:
		rec := eval(e.Record, env)
		r, ok := rec.(*RecordV)
		if !ok {
			panicErr(diag.CodeRuntimeFieldAccess, e.Span(), "field access on non-record")
		}
		v, ok := r.Field(e.Field)
		if !ok {
			panicErr(diag.CodeRuntimeFieldAccess, e.Span(), "no field %q", e.Field)
		}
		return v
	case *ast.TagExpr:
		args := make([]Value, len(e.Args))
		for i, a := range e.Args {
			args[i] = eval(a, env)
		}
		return &TagV{Name: e.Name, Args: args}
	default:
		panicErr(diag.CodeRuntimeOperatorMismatch, expr.Span(), "unsupported expression %T", expr)
		return nil
	}
}

func panicErr(code diag.Code, span diag.Span, format string, args ...any) {
	panic(runtimeErr(code, span, format, args...))
}

// evalLet evaluates `let [rec] name = value in body`. For a recursive
// binding whose value evaluates to a closure, the closure's own captured
// environment is back-patched to contain itself under name, establishing
// the fix-point the spec requires without mutating any environment outside
// this one freshly-allocated frame.
func evalLet(e *ast.Let, env *Env) Value {
	if !e.Recursive {
		v := eval(e.Value, env)
		return eval(e.Body, env.Extend(e.Name, v))
	}

	inner := env.Extend(e.Name, &UnitV{})
	v := eval(e.Value, inner)
	if closure, ok := v.(*ClosureV); ok {
		closure.Env = inner
	}
	inner.bindSelf(e.Name, v)
	return eval(e.Body, inner)
}

// apply applies fn to arg. Closures evaluate their body in their captured
// environment extended with the parameter; built-ins accumulate the
// argument and fire once Arity is reached, implementing auto-currying.
func apply(fn, arg Value, span diag.Span) Value {
	switch f := fn.(type) {
	case *ClosureV:
		return eval(f.Body, f.Env.Extend(f.Param, arg))
	case *BuiltinV:
		next := f.WithArg(arg)
		if len(next.Args) < next.Arity {
			return next
		}
		v, err := next.Call(next.Args)
		if err != nil {
			if d, ok := err.(diag.Diagnostic); ok {
				d.Span = span
				panic(d)
			}
			panicErr(diag.CodeRuntimeOperatorMismatch, span, "%v", err)
		}
		return v
	default:
		panicErr(diag.CodeRuntimeNotCallable, span, "attempt to call a non-function value")
		return nil
	}
}

// unwrapValue implements both the postfix `?` and pipe-into-bare-unwrap
// cases: `Ok(v)` yields v; `Err(...)` raises the control transfer carrying
// the Err tag; any other shape is a runtime error.
func unwrapValue(v Value, span diag.Span) Value {
	tag, ok := v.(*TagV)
	if !ok {
		panicErr(diag.CodeRuntimeNotUnwrappable, span, "? on non-result value")
	}
	if inner, ok := tag.IsOk(); ok {
		return inner
	}
	if _, ok := tag.IsErr(); ok {
		panic(ctrlTransfer{errVal: tag})
	}
	panicErr(diag.CodeRuntimeNotUnwrappable, span, "? on non-result value")
	return nil
}

// evalPipe implements the three pipe subcases from the spec: a bare catch
// on the right has its Protected slot filled from Left; a bare unwrap on
// the right applies Left's value to the unwrap's inner (treated as a
// function) before unwrapping the result; otherwise the right side is
// evaluated as a function and applied to the left.
func evalPipe(e *ast.Pipe, env *Env) Value {
	switch right := e.Right.(type) {
	case *ast.Catch:
		if right.Protected == nil {
			return evalCatch(right.WithProtected(e.Left), env)
		}
	case *ast.Unwrap:
		left := eval(e.Left, env)
		fn := eval(right.Inner, env)
		return unwrapValue(apply(fn, left, e.Span()), e.Span())
	}
	left := eval(e.Left, env)
	right := eval(e.Right, env)
	return apply(right, left, e.Span())
}

// evalCatch evaluates a recovery binder. The protected expression is run
// under a recover that intercepts a ctrlTransfer, so `?` failures inside
// Protected (including ones raised deep within applied closures) are
// caught here rather than propagating further. A protected expression that
// simply returns an Err tag (no `?` involved) is handled the same way.
func evalCatch(c *ast.Catch, env *Env) (result Value) {
	defer func() {
		if r := recover(); r != nil {
			ct, ok := r.(ctrlTransfer)
			if !ok {
				panic(r)
			}
			errVal, _ := ct.errVal.IsErr()
			result = eval(c.Fallback, env.Extend(c.ErrParam, errVal))
		}
	}()

	protected := eval(c.Protected, env)
	if tag, ok := protected.(*TagV); ok {
		if v, ok := tag.IsOk(); ok {
			return v
		}
		if errVal, ok := tag.IsErr(); ok {
			return eval(c.Fallback, env.Extend(c.ErrParam, errVal))
		}
	}
	return protected
}
