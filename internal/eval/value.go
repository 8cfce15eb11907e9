// Package eval implements the Leverr tree-walking evaluator: runtime
// values, a persistent value environment, pattern matching, and the
// early-return control transfer that realizes the `?` operator.
package eval

import (
	"github.com/leverr-lang/leverr/internal/ast"
)

// Value is a Leverr runtime value. Every variant below implements it;
// valueNode is an unexported marker so only this package can introduce new
// runtime shapes.
type Value interface {
	valueNode()
}

// IntV is an integer value.
type IntV struct{ Value int64 }

func (*IntV) valueNode() {}

// FloatV is a floating-point value.
type FloatV struct{ Value float64 }

func (*FloatV) valueNode() {}

// StringV is a string value.
type StringV struct{ Value string }

func (*StringV) valueNode() {}

// BoolV is a boolean value.
type BoolV struct{ Value bool }

func (*BoolV) valueNode() {}

// UnitV is the unit value.
type UnitV struct{}

func (*UnitV) valueNode() {}

// ListV is an ordered, logically-immutable list of values.
type ListV struct{ Elems []Value }

func (*ListV) valueNode() {}

// TupleV is a fixed-arity product of values.
type TupleV struct{ Elems []Value }

func (*TupleV) valueNode() {}

// RecordField is one name/value pair of a RecordV, kept in insertion order
// so rendering matches the source literal's field order.
type RecordField struct {
	Name  string
	Value Value
}

// RecordV is a structural record value.
type RecordV struct{ Fields []RecordField }

func (*RecordV) valueNode() {}

// Field looks up a field by name, returning ok=false if absent.
func (r *RecordV) Field(name string) (Value, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// TagV is a tagged value: a constructor name plus its argument values.
// `Ok`/`Err` are ordinary tags at this layer; the evaluator's pipe and
// unwrap handlers special-case them by name.
type TagV struct {
	Name string
	Args []Value
}

func (*TagV) valueNode() {}

// IsOk reports whether t is `Ok(v)` and returns v.
func (t *TagV) IsOk() (Value, bool) {
	if t.Name == "Ok" && len(t.Args) == 1 {
		return t.Args[0], true
	}
	return nil, false
}

// IsErr reports whether t is an `Err(...)` tag and returns its sole
// argument (or unit if it was constructed with none).
func (t *TagV) IsErr() (Value, bool) {
	if t.Name != "Err" {
		return nil, false
	}
	if len(t.Args) == 1 {
		return t.Args[0], true
	}
	return &UnitV{}, true
}

// ClosureV is a function value capturing a snapshot of its defining
// environment. Capture is logically by value: rebinding names in Env after
// the closure was created is never observable through it, with the single
// exception of the `let rec` fixup (see Env.bindSelf).
type ClosureV struct {
	Param string
	Body  ast.Expr
	Env   *Env
}

func (*ClosureV) valueNode() {}

// BuiltinFn is the underlying callable behind a BuiltinV, invoked once all
// of Arity arguments have accumulated.
type BuiltinFn func(args []Value) (Value, error)

// BuiltinV is a curried built-in: it accumulates one argument per
// application until it reaches Arity, then invokes Call. Partial
// application produces a fresh BuiltinV rather than mutating this one.
type BuiltinV struct {
	Name  string
	Arity int
	Args  []Value
	Call  BuiltinFn
}

func (*BuiltinV) valueNode() {}

// WithArg returns a new BuiltinV with arg appended to the accumulated
// arguments, used by apply to implement auto-currying without mutation.
func (b *BuiltinV) WithArg(arg Value) *BuiltinV {
	args := make([]Value, len(b.Args)+1)
	copy(args, b.Args)
	args[len(b.Args)] = arg
	return &BuiltinV{Name: b.Name, Arity: b.Arity, Args: args, Call: b.Call}
}
