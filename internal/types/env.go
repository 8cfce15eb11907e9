package types

// Env maps identifiers to type schemes. Like the runtime value environment
// in internal/eval, it is persistent by copy-on-bind: Extend returns a
// fresh environment and never mutates the one it was called on, so a
// closure or an enclosing inference frame never observes a later binding.
type Env struct {
	vars   map[string]Scheme
	parent *Env
}

// NewEnv creates an empty root environment.
func NewEnv() *Env {
	return &Env{vars: map[string]Scheme{}}
}

// Extend returns a new environment that shadows name with sc on top of e.
func (e *Env) Extend(name string, sc Scheme) *Env {
	return &Env{vars: map[string]Scheme{name: sc}, parent: e}
}

// Lookup finds name's scheme, searching outward through parents.
func (e *Env) Lookup(name string) (Scheme, bool) {
	for env := e; env != nil; env = env.parent {
		if sc, ok := env.vars[name]; ok {
			return sc, true
		}
	}
	return Scheme{}, false
}

// Parent returns e's enclosing environment, or nil at the root. Exposed so
// internal/infer can rebuild a chain with every scheme rewritten through an
// accumulated substitution.
func (e *Env) Parent() *Env { return e.parent }

// Vars returns the bindings introduced directly by this frame (not its
// parents).
func (e *Env) Vars() map[string]Scheme { return e.vars }

// FreeVars is the union of free variables across every scheme reachable
// from e, used by Generalize to avoid quantifying over a variable that is
// still free in an enclosing binding.
func (e *Env) FreeVars() map[int]bool {
	out := map[int]bool{}
	for env := e; env != nil; env = env.parent {
		for _, sc := range env.vars {
			for id := range FreeVarsScheme(sc) {
				out[id] = true
			}
		}
	}
	return out
}

// VarGen hands out fresh type variables, unique per VarGen. The inferencer
// resets one of these before each top-level run (see infer.Infer) so
// diagnostic variable names stay stable across repeated evaluations, per
// the spec's invariant on type-variable identifier uniqueness within a run.
type VarGen struct {
	next int
}

// Fresh returns a new, never-before-seen type variable.
func (g *VarGen) Fresh() *Var {
	g.next++
	return &Var{ID: g.next}
}

// Generalize quantifies over the variables free in t but not free in env,
// producing a reusable polymorphic scheme. Used at non-recursive `let`
// bindings; recursive bindings are deliberately not generalized at their
// own definition site (see infer.go).
func Generalize(env *Env, t Type) Scheme {
	envFree := env.FreeVars()
	tFree := FreeVars(t)
	var vars []int
	for id := range tFree {
		if !envFree[id] {
			vars = append(vars, id)
		}
	}
	return Scheme{Vars: vars, Type: t}
}

// Instantiate replaces every variable a scheme quantifies over with a fresh
// one, so that distinct use sites of a polymorphic binding never
// accidentally unify with each other.
func Instantiate(g *VarGen, sc Scheme) Type {
	if len(sc.Vars) == 0 {
		return sc.Type
	}
	mapping := make(Subst, len(sc.Vars))
	for _, id := range sc.Vars {
		mapping[id] = g.Fresh()
	}
	return Apply(mapping, sc.Type)
}
