package types

// Subst is a finite map from type-variable id to the type it has been bound
// to, accumulated while unifying. Application is a structural rewrite,
// repeated via Apply until the result is stable (a prospective binding can
// never introduce a cycle, since bind enforces the occurs check).
type Subst map[int]Type

// Apply rewrites t by replacing every variable with its substituted form,
// recursing into every compound shape.
func Apply(s Subst, t Type) Type {
	switch t := t.(type) {
	case *Var:
		if bound, ok := s[t.ID]; ok {
			return Apply(s, bound)
		}
		return t
	case *Func:
		return &Func{Param: Apply(s, t.Param), Ret: Apply(s, t.Ret)}
	case *List:
		return &List{Elem: Apply(s, t.Elem)}
	case *Tuple:
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = Apply(s, e)
		}
		return &Tuple{Elems: elems}
	case *Record:
		fields := make(map[string]Type, len(t.Fields))
		for name, ft := range t.Fields {
			fields[name] = Apply(s, ft)
		}
		row := t.Row
		if row != nil {
			if applied := Apply(s, row); applied != Type(row) {
				if rv, ok := applied.(*Var); ok {
					row = rv
				} else if rr, ok := applied.(*Record); ok {
					// The row variable resolved to a concrete (possibly
					// further-open) record: merge its fields in and adopt
					// its row, collapsing the chain.
					for name, ft := range rr.Fields {
						if _, exists := fields[name]; !exists {
							fields[name] = ft
						}
					}
					row = rr.Row
				}
			}
		}
		return &Record{Fields: fields, Row: row}
	case *Result:
		return &Result{Ok: Apply(s, t.Ok)}
	case *Tag:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = Apply(s, a)
		}
		return &Tag{Name: t.Name, Args: args}
	default:
		return t
	}
}

// ApplyScheme rewrites only the free type of a scheme, leaving its
// quantified variables untouched (they are bound by the scheme itself, not
// by the ambient substitution).
func ApplyScheme(s Subst, sc Scheme) Scheme {
	bound := make(map[int]bool, len(sc.Vars))
	for _, v := range sc.Vars {
		bound[v] = true
	}
	filtered := make(Subst, len(s))
	for id, t := range s {
		if !bound[id] {
			filtered[id] = t
		}
	}
	return Scheme{Vars: sc.Vars, Type: Apply(filtered, sc.Type)}
}

// FreeVars collects the free type-variable ids occurring in t.
func FreeVars(t Type) map[int]bool {
	out := map[int]bool{}
	collectFreeVars(t, out)
	return out
}

func collectFreeVars(t Type, out map[int]bool) {
	switch t := t.(type) {
	case *Var:
		out[t.ID] = true
	case *Func:
		collectFreeVars(t.Param, out)
		collectFreeVars(t.Ret, out)
	case *List:
		collectFreeVars(t.Elem, out)
	case *Tuple:
		for _, e := range t.Elems {
			collectFreeVars(e, out)
		}
	case *Record:
		for _, ft := range t.Fields {
			collectFreeVars(ft, out)
		}
		if t.Row != nil {
			out[t.Row.ID] = true
		}
	case *Result:
		collectFreeVars(t.Ok, out)
	case *Tag:
		for _, a := range t.Args {
			collectFreeVars(a, out)
		}
	}
}

// FreeVarsScheme is the free variables of a scheme: those of its type minus
// the ones it quantifies over.
func FreeVarsScheme(sc Scheme) map[int]bool {
	free := FreeVars(sc.Type)
	for _, v := range sc.Vars {
		delete(free, v)
	}
	return free
}
