// Package types implements the Leverr type representation, substitutions,
// and unification that back the Hindley-Milner inferencer in internal/infer.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is a Leverr type. Every variant below implements it; typeNode is an
// unexported marker so only this package can introduce new shapes.
type Type interface {
	String() string
	typeNode()
}

// Con is a nullary type constructor, e.g. Int, Float, Bool, String, Unit.
type Con struct {
	Name string
}

func (c *Con) String() string { return c.Name }
func (*Con) typeNode()         {}

var (
	Int    = &Con{Name: "Int"}
	Float  = &Con{Name: "Float"}
	Bool   = &Con{Name: "Bool"}
	String = &Con{Name: "String"}
	Unit   = &Con{Name: "Unit"}
)

// Var is a type variable identified by an id unique within one inference
// run. The inferencer resets its counter before each top-level run so
// diagnostic names (see String) stay stable across repeated evaluations.
type Var struct {
	ID int
}

func (v *Var) String() string { return fmt.Sprintf("t%d", v.ID) }
func (*Var) typeNode()         {}

// Func is a function type, always single-parameter: multi-parameter surface
// syntax is desugared by the parser into nested single-parameter lambdas, so
// the type representation never needs to carry an arity.
type Func struct {
	Param Type
	Ret   Type
}

func (f *Func) String() string {
	return wrapIfFunc(f.Param) + " -> " + f.Ret.String()
}
func (*Func) typeNode() {}

func wrapIfFunc(t Type) string {
	if _, ok := t.(*Func); ok {
		return "(" + t.String() + ")"
	}
	return t.String()
}

// List is a homogeneous list type.
type List struct {
	Elem Type
}

func (l *List) String() string { return "List(" + l.Elem.String() + ")" }
func (*List) typeNode()         {}

// Tuple is a fixed-arity product type.
type Tuple struct {
	Elems []Type
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (*Tuple) typeNode() {}

// Record is a structural record type. Row is non-nil when the record is an
// open row: field access on a variable introduces one of these rather than
// a closed shape. Unification tolerates field-name mismatches between any
// two records, open or closed, unifying only the shared fields (see
// unify.go).
type Record struct {
	Fields map[string]Type
	Row    *Var
}

func (r *Record) String() string {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + r.Fields[name].String()
	}
	body := strings.Join(parts, ", ")
	if r.Row != nil {
		if body != "" {
			body += " | "
		}
		body += r.Row.String()
	}
	return "{ " + body + " }"
}
func (*Record) typeNode() {}

// Result is the carrier of the `?`/catch protocol: `Ok(v)` is typed
// Result(typeof v); the error side is always an implicit string, so Result
// carries only the ok type.
type Result struct {
	Ok Type
}

func (r *Result) String() string { return "Result(" + r.Ok.String() + ")" }
func (*Result) typeNode()         {}

// Tag is a generic tagged value type: a constructor name plus argument
// types. The tag space is open (see spec's "open tag space" design note);
// there is no declared-variant registry to check a tag's arity against.
type Tag struct {
	Name string
	Args []Type
}

func (t *Tag) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Name + "(" + strings.Join(parts, ", ") + ")"
}
func (*Tag) typeNode() {}

// Scheme is a polymorphic type: a set of quantified variable ids plus the
// underlying type. A scheme with no quantified variables is monomorphic.
type Scheme struct {
	Vars []int
	Type Type
}

// Mono wraps t in a scheme that quantifies over nothing.
func Mono(t Type) Scheme { return Scheme{Type: t} }
