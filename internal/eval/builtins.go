package eval

import (
	"fmt"
	"strconv"

	"github.com/leverr-lang/leverr/internal/diag"
)

// Sink is the stdout collaborator the spec requires `print` to write
// through (§6: "a standard-output sink is required by the print
// built-in"). The core defines only the seam; cmd/leverr wires a concrete
// implementation backed by os.Stdout.
type Sink interface {
	Write(line string)
}

// builtinSpan is used for diagnostics raised while applying a callback a
// builtin received as an argument (e.g. map's function). These applications
// have no direct source position of their own, so the zero span is used.
// apply attaches the call-site span only to errors a builtin returns; a
// diagnostic raised inside the callback itself keeps its own span.
var builtinSpan = diag.Span{}

// NewGlobalEnv creates the root value environment pre-populated with the
// built-in library from the spec's §4.6 table. sink receives whatever
// `print` is asked to emit.
func NewGlobalEnv(sink Sink) *Env {
	env := NewRootEnv()
	for _, b := range builtins(sink) {
		env = env.Extend(b.Name, &BuiltinV{Name: b.Name, Arity: b.Arity, Call: b.Call})
	}
	return env
}

type builtinDef struct {
	Name  string
	Arity int
	Call  BuiltinFn
}

func builtins(sink Sink) []builtinDef {
	return []builtinDef{
		{Name: "map", Arity: 2, Call: biMap},
		{Name: "filter", Arity: 2, Call: biFilter},
		{Name: "fold", Arity: 3, Call: biFold},
		{Name: "length", Arity: 1, Call: biLength},
		{Name: "head", Arity: 1, Call: biHead},
		{Name: "tail", Arity: 1, Call: biTail},
		{Name: "to_string", Arity: 1, Call: biToString},
		{Name: "print", Arity: 1, Call: biPrint(sink)},
		{Name: "concat", Arity: 2, Call: biConcat},
		{Name: "each", Arity: 2, Call: biEach},
	}
}

func biMap(args []Value) (Value, error) {
	fn, xs := args[0], args[1]
	list, ok := xs.(*ListV)
	if !ok {
		return nil, fmt.Errorf("map: second argument must be a list")
	}
	out := make([]Value, len(list.Elems))
	for i, el := range list.Elems {
		out[i] = apply(fn, el, builtinSpan)
	}
	return &ListV{Elems: out}, nil
}

func biFilter(args []Value) (Value, error) {
	pred, xs := args[0], args[1]
	list, ok := xs.(*ListV)
	if !ok {
		return nil, fmt.Errorf("filter: second argument must be a list")
	}
	var out []Value
	for _, el := range list.Elems {
		v := apply(pred, el, builtinSpan)
		b, ok := v.(*BoolV)
		if !ok {
			return nil, fmt.Errorf("filter: predicate must yield a Bool")
		}
		if b.Value {
			out = append(out, el)
		}
	}
	return &ListV{Elems: out}, nil
}

func biFold(args []Value) (Value, error) {
	seed, step, xs := args[0], args[1], args[2]
	list, ok := xs.(*ListV)
	if !ok {
		return nil, fmt.Errorf("fold: third argument must be a list")
	}
	acc := seed
	for _, el := range list.Elems {
		acc = apply(apply(step, acc, builtinSpan), el, builtinSpan)
	}
	return acc, nil
}

func biLength(args []Value) (Value, error) {
	switch v := args[0].(type) {
	case *ListV:
		return &IntV{Value: int64(len(v.Elems))}, nil
	case *StringV:
		return &IntV{Value: int64(len([]rune(v.Value)))}, nil
	default:
		return nil, fmt.Errorf("length: expected a list or string")
	}
}

func biHead(args []Value) (Value, error) {
	list, ok := args[0].(*ListV)
	if !ok {
		return nil, fmt.Errorf("head: expected a list")
	}
	if len(list.Elems) == 0 {
		return &TagV{Name: "Err", Args: []Value{&StringV{Value: "empty list"}}}, nil
	}
	return &TagV{Name: "Ok", Args: []Value{list.Elems[0]}}, nil
}

func biTail(args []Value) (Value, error) {
	list, ok := args[0].(*ListV)
	if !ok {
		return nil, fmt.Errorf("tail: expected a list")
	}
	if len(list.Elems) == 0 {
		return &TagV{Name: "Err", Args: []Value{&StringV{Value: "empty list"}}}, nil
	}
	rest := make([]Value, len(list.Elems)-1)
	copy(rest, list.Elems[1:])
	return &TagV{Name: "Ok", Args: []Value{&ListV{Elems: rest}}}, nil
}

func biToString(args []Value) (Value, error) {
	switch v := args[0].(type) {
	case *StringV:
		return v, nil
	case *IntV:
		return &StringV{Value: strconv.FormatInt(v.Value, 10)}, nil
	case *FloatV:
		return &StringV{Value: strconv.FormatFloat(v.Value, 'g', -1, 64)}, nil
	case *BoolV:
		return &StringV{Value: strconv.FormatBool(v.Value)}, nil
	default:
		return &StringV{Value: Render(v)}, nil
	}
}

func biPrint(sink Sink) BuiltinFn {
	return func(args []Value) (Value, error) {
		if s, ok := args[0].(*StringV); ok {
			sink.Write(s.Value)
		} else {
			sink.Write(Render(args[0]))
		}
		return &UnitV{}, nil
	}
}

func biConcat(args []Value) (Value, error) {
	a, aok := args[0].(*StringV)
	b, bok := args[1].(*StringV)
	if !aok || !bok {
		return nil, fmt.Errorf("concat: both arguments must be strings")
	}
	return &StringV{Value: a.Value + b.Value}, nil
}

func biEach(args []Value) (Value, error) {
	fn, xs := args[0], args[1]
	list, ok := xs.(*ListV)
	if !ok {
		return nil, fmt.Errorf("each: second argument must be a list")
	}
	for _, el := range list.Elems {
		apply(fn, el, builtinSpan)
	}
	return &UnitV{}, nil
}
