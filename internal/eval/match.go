package eval

import (
	"github.com/leverr-lang/leverr/internal/ast"
	"github.com/leverr-lang/leverr/internal/diag"
)

// evalMatch evaluates cases in order, taking the first whose pattern
// matches the subject. Exhausting every case without a match is a runtime
// error; the inferencer cannot guarantee exhaustiveness because the tag
// space is open (see internal/infer's handling of PatternTag).
func evalMatch(m *ast.Match, env *Env) Value {
	subject := eval(m.Subject, env)
	for _, c := range m.Cases {
		bindings, ok := matchPattern(c.Pattern, subject)
		if !ok {
			continue
		}
		return eval(c.Body, env.ExtendAll(bindings))
	}
	panicErr(diag.CodeRuntimeNoMatch, m.Span(), "no matching pattern for %s", Render(subject))
	return nil
}

// matchPattern attempts to match pat against v, returning the bindings it
// introduces on success. Matching is bottom-up: a sub-pattern failure
// fails the whole pattern immediately.
func matchPattern(pat ast.Pattern, v Value) (map[string]Value, bool) {
	switch p := pat.(type) {
	case *ast.PatternInt:
		iv, ok := v.(*IntV)
		return nil, ok && iv.Value == p.Value
	case *ast.PatternFloat:
		fv, ok := v.(*FloatV)
		return nil, ok && fv.Value == p.Value
	case *ast.PatternString:
		sv, ok := v.(*StringV)
		return nil, ok && sv.Value == p.Value
	case *ast.PatternBool:
		bv, ok := v.(*BoolV)
		return nil, ok && bv.Value == p.Value
	case *ast.PatternWildcard:
		return nil, true
	case *ast.PatternIdent:
		return map[string]Value{p.Name: v}, true
	case *ast.PatternTag:
		tv, ok := v.(*TagV)
		if !ok || tv.Name != p.Name || len(tv.Args) != len(p.Args) {
			return nil, false
		}
		out := map[string]Value{}
		for i, sub := range p.Args {
			bindings, ok := matchPattern(sub, tv.Args[i])
			if !ok {
				return nil, false
			}
			mergeInto(out, bindings)
		}
		return out, true
	case *ast.PatternTuple:
		tv, ok := v.(*TupleV)
		if !ok || len(tv.Elems) != len(p.Elems) {
			return nil, false
		}
		out := map[string]Value{}
		for i, sub := range p.Elems {
			bindings, ok := matchPattern(sub, tv.Elems[i])
			if !ok {
				return nil, false
			}
			mergeInto(out, bindings)
		}
		return out, true
	case *ast.PatternRecord:
		rv, ok := v.(*RecordV)
		if !ok {
			return nil, false
		}
		out := map[string]Value{}
		for _, f := range p.Fields {
			fv, ok := rv.Field(f.Name)
			if !ok {
				return nil, false
			}
			bindings, ok := matchPattern(f.Pattern, fv)
			if !ok {
				return nil, false
			}
			mergeInto(out, bindings)
		}
		return out, true
	default:
		return nil, false
	}
}

func mergeInto(dst, src map[string]Value) {
	for k, v := range src {
		dst[k] = v
	}
}
