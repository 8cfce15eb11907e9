package types

import (
	"fmt"

	"github.com/leverr-lang/leverr/internal/diag"
)

// Unify computes the most general substitution extending s that makes t1
// and t2 structurally equal, or fails with a type-mismatch diagnostic at
// span. Grounded on the teacher's generics.go Unify/bind pair, extended
// with a real occurs check (the teacher's bind leaves that check as a
// TODO) per the spec's invariant that a substitution never contains a
// cyclic binding.
func Unify(t1, t2 Type, s Subst, span diag.Span) (Subst, error) {
	t1 = Apply(s, t1)
	t2 = Apply(s, t2)

	if v1, ok := t1.(*Var); ok {
		if v2, ok := t2.(*Var); ok && v1.ID == v2.ID {
			return s, nil
		}
		return bind(v1, t2, s, span)
	}
	if v2, ok := t2.(*Var); ok {
		return bind(v2, t1, s, span)
	}

	switch a := t1.(type) {
	case *Con:
		if b, ok := t2.(*Con); ok && a.Name == b.Name {
			return s, nil
		}
	case *Func:
		if b, ok := t2.(*Func); ok {
			s2, err := Unify(a.Param, b.Param, s, span)
			if err != nil {
				return nil, err
			}
			return Unify(a.Ret, b.Ret, s2, span)
		}
	case *List:
		if b, ok := t2.(*List); ok {
			return Unify(a.Elem, b.Elem, s, span)
		}
	case *Tuple:
		if b, ok := t2.(*Tuple); ok && len(a.Elems) == len(b.Elems) {
			cur := s
			for i := range a.Elems {
				var err error
				cur, err = Unify(a.Elems[i], b.Elems[i], cur, span)
				if err != nil {
					return nil, err
				}
			}
			return cur, nil
		}
	case *Result:
		if b, ok := t2.(*Result); ok {
			return Unify(a.Ok, b.Ok, s, span)
		}
	case *Tag:
		if b, ok := t2.(*Tag); ok && a.Name == b.Name && len(a.Args) == len(b.Args) {
			cur := s
			for i := range a.Args {
				var err error
				cur, err = Unify(a.Args[i], b.Args[i], cur, span)
				if err != nil {
					return nil, err
				}
			}
			return cur, nil
		}
	case *Record:
		if b, ok := t2.(*Record); ok {
			return unifyRecords(a, b, s, span)
		}
	}

	return nil, mismatchErr(t1, t2, span)
}

// unifyRecords unifies structurally on the intersection of field names: the
// spec deliberately does not enforce row discipline here, so two concrete
// records that disagree on which fields exist still unify as long as the
// fields they share agree. An open row on either side absorbs the other's
// extra fields.
func unifyRecords(a, b *Record, s Subst, span diag.Span) (Subst, error) {
	cur := s
	for name, at := range a.Fields {
		if bt, ok := b.Fields[name]; ok {
			var err error
			cur, err = Unify(at, bt, cur, span)
			if err != nil {
				return nil, err
			}
		}
	}
	if a.Row == nil && b.Row == nil {
		return cur, nil
	}
	if a.Row != nil {
		cur, _ = bind(a.Row, &Record{Fields: mergeFields(a.Fields, b.Fields), Row: b.Row}, cur, span)
	} else if b.Row != nil {
		cur, _ = bind(b.Row, &Record{Fields: mergeFields(a.Fields, b.Fields), Row: a.Row}, cur, span)
	}
	return cur, nil
}

func mergeFields(a, b map[string]Type) map[string]Type {
	out := make(map[string]Type, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}
	return out
}

// bind binds v to t, subject to the occurs check: t (after applying s) must
// not mention v, or the resulting substitution would contain a cycle.
func bind(v *Var, t Type, s Subst, span diag.Span) (Subst, error) {
	if vt, ok := t.(*Var); ok && vt.ID == v.ID {
		return s, nil
	}
	if Occurs(v.ID, Apply(s, t)) {
		return nil, diag.New(diag.StageType, diag.CodeTypeOccursCheck,
			fmt.Sprintf("infinite type: %s occurs in %s", v, t), span)
	}
	next := make(Subst, len(s)+1)
	for k, val := range s {
		next[k] = val
	}
	next[v.ID] = t
	return next, nil
}

// Occurs is the occurs check: does id appear anywhere in t?
func Occurs(id int, t Type) bool {
	return FreeVars(t)[id]
}

func mismatchErr(t1, t2 Type, span diag.Span) error {
	return diag.New(diag.StageType, diag.CodeTypeMismatch,
		fmt.Sprintf("cannot unify %s with %s", t1, t2), span)
}
