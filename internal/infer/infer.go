// Package infer implements the Hindley-Milner inferencer (Algorithm W) that
// type-checks a Leverr expression tree before it reaches internal/eval.
package infer

import (
	"github.com/leverr-lang/leverr/internal/ast"
	"github.com/leverr-lang/leverr/internal/diag"
	"github.com/leverr-lang/leverr/internal/types"
)

// Infer type-checks expr under env, returning its inferred type fully
// resolved against the accumulated substitution, or the first type
// diagnostic encountered. Each call gets its own fresh-variable counter, so
// variable names in a diagnostic are always stable for that one run
// regardless of how many prior runs an interactive session has performed.
func Infer(expr ast.Expr, env *types.Env) (types.Type, error) {
	gen := &types.VarGen{}
	t, s, err := infer(expr, env, gen)
	if err != nil {
		return nil, err
	}
	return types.Apply(s, t), nil
}

// infer is Algorithm W proper: given expr and env, it returns expr's type,
// the substitution accumulated while inferring it, and an error. Every rule
// below mirrors the corresponding evalautor rule in internal/eval/eval.go,
// down to the structure of the three pipe subcases.
func infer(expr ast.Expr, env *types.Env, gen *types.VarGen) (types.Type, types.Subst, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return types.Int, types.Subst{}, nil
	case *ast.FloatLit:
		return types.Float, types.Subst{}, nil
	case *ast.StringLit:
		return types.String, types.Subst{}, nil
	case *ast.BoolLit:
		return types.Bool, types.Subst{}, nil
	case *ast.UnitLit:
		return types.Unit, types.Subst{}, nil

	case *ast.Ident:
		sc, ok := env.Lookup(e.Name)
		if !ok {
			return nil, nil, diag.New(diag.StageType, diag.CodeTypeUndefinedVariable,
				"undefined variable \""+e.Name+"\"", e.Span())
		}
		return types.Instantiate(gen, sc), types.Subst{}, nil

	case *ast.Let:
		return inferLet(e, env, gen)

	case *ast.Lambda:
		paramTy := gen.Fresh()
		bodyEnv := env.Extend(e.Param, types.Mono(paramTy))
		bodyTy, s, err := infer(e.Body, bodyEnv, gen)
		if err != nil {
			return nil, nil, err
		}
		return &types.Func{Param: types.Apply(s, paramTy), Ret: bodyTy}, s, nil

	case *ast.Call:
		fnTy, s1, err := infer(e.Fn, env, gen)
		if err != nil {
			return nil, nil, err
		}
		argTy, s2, err := infer(e.Arg, applyEnv(s1, env), gen)
		if err != nil {
			return nil, nil, err
		}
		s1 = compose(s2, s1)
		retTy := gen.Fresh()
		s3, err := types.Unify(types.Apply(s1, fnTy), &types.Func{Param: argTy, Ret: retTy}, s1, e.Span())
		if err != nil {
			return nil, nil, err
		}
		return types.Apply(s3, retTy), s3, nil

	case *ast.Binary:
		return inferBinary(e, env, gen)

	case *ast.Unary:
		return inferUnary(e, env, gen)

	case *ast.Pipe:
		return inferPipe(e, env, gen)

	case *ast.Unwrap:
		innerTy, s, err := infer(e.Inner, env, gen)
		if err != nil {
			return nil, nil, err
		}
		return inferUnwrap(innerTy, s, gen, e.Span())

	case *ast.Catch:
		return inferCatch(e, env, gen)

	case *ast.Match:
		return inferMatch(e, env, gen)

	case *ast.If:
		condTy, s1, err := infer(e.Cond, env, gen)
		if err != nil {
			return nil, nil, err
		}
		s2, err := types.Unify(condTy, types.Bool, s1, e.Cond.Span())
		if err != nil {
			return nil, nil, err
		}
		thenTy, s3, err := infer(e.Then, applyEnv(s2, env), gen)
		if err != nil {
			return nil, nil, err
		}
		s3 = compose(s3, s2)
		elseTy, s4, err := infer(e.Else, applyEnv(s3, env), gen)
		if err != nil {
			return nil, nil, err
		}
		s4 = compose(s4, s3)
		s5, err := types.Unify(types.Apply(s4, thenTy), types.Apply(s4, elseTy), s4, e.Span())
		if err != nil {
			return nil, nil, err
		}
		return types.Apply(s5, thenTy), s5, nil

	case *ast.ListLit:
		return inferList(e, env, gen)

	case *ast.TupleLit:
		elemTys := make([]types.Type, len(e.Elems))
		cur := types.Subst{}
		for i, el := range e.Elems {
			ty, s, err := infer(el, applyEnv(cur, env), gen)
			if err != nil {
				return nil, nil, err
			}
			cur = compose(s, cur)
			elemTys[i] = ty
		}
		for i, ty := range elemTys {
			elemTys[i] = types.Apply(cur, ty)
		}
		return &types.Tuple{Elems: elemTys}, cur, nil

	case *ast.RecordLit:
		fields := map[string]types.Type{}
		cur := types.Subst{}
		for _, f := range e.Fields {
			ty, s, err := infer(f.Value, applyEnv(cur, env), gen)
			if err != nil {
				return nil, nil, err
			}
			cur = compose(s, cur)
			fields[f.Name] = ty
		}
		for name, ty := range fields {
			fields[name] = types.Apply(cur, ty)
		}
		return &types.Record{Fields: fields}, cur, nil

	case *ast.FieldAccess:
		recTy, s1, err := infer(e.Record, env, gen)
		if err != nil {
			return nil, nil, err
		}
		fieldTy := gen.Fresh()
		row := gen.Fresh()
		open := &types.Record{Fields: map[string]types.Type{e.Field: fieldTy}, Row: row}
		s2, err := types.Unify(types.Apply(s1, recTy), open, s1, e.Span())
		if err != nil {
			return nil, nil, err
		}
		return types.Apply(s2, fieldTy), s2, nil

	case *ast.TagExpr:
		return inferTag(e, env, gen)

	default:
		return nil, nil, diag.New(diag.StageType, diag.CodeTypeMismatch,
			"cannot infer a type for this expression", expr.Span())
	}
}

// inferLet handles `let [rec] name = value in body`. A non-recursive
// binding infers value under env, generalizes over whatever is still free
// of the enclosing environment, then checks body with that scheme in
// scope. A recursive binding instead gives name a fresh monomorphic type
// variable while checking its own value (self-calls must agree with a
// single concrete shape within the definition) and keeps that monomorphic
// type, with no generalization, while checking body - mirroring the
// evaluator's fixpoint construction without needing to re-run inference
// twice.
func inferLet(e *ast.Let, env *types.Env, gen *types.VarGen) (types.Type, types.Subst, error) {
	if !e.Recursive {
		valTy, s1, err := infer(e.Value, env, gen)
		if err != nil {
			return nil, nil, err
		}
		genEnv := applyEnv(s1, env)
		sc := types.Generalize(genEnv, valTy)
		bodyTy, s2, err := infer(e.Body, genEnv.Extend(e.Name, sc), gen)
		if err != nil {
			return nil, nil, err
		}
		return bodyTy, compose(s2, s1), nil
	}

	selfTy := gen.Fresh()
	innerEnv := env.Extend(e.Name, types.Mono(selfTy))
	valTy, s1, err := infer(e.Value, innerEnv, gen)
	if err != nil {
		return nil, nil, err
	}
	s2, err := types.Unify(types.Apply(s1, selfTy), valTy, s1, e.Span())
	if err != nil {
		return nil, nil, err
	}
	genEnv := applyEnv(s2, env)
	sc := types.Mono(types.Apply(s2, valTy))
	bodyTy, s3, err := infer(e.Body, genEnv.Extend(e.Name, sc), gen)
	if err != nil {
		return nil, nil, err
	}
	return bodyTy, compose(s3, s2), nil
}

func inferList(e *ast.ListLit, env *types.Env, gen *types.VarGen) (types.Type, types.Subst, error) {
	elemTy := gen.Fresh()
	cur := types.Subst{}
	var resultTy types.Type = elemTy
	for _, el := range e.Elems {
		ty, s, err := infer(el, applyEnv(cur, env), gen)
		if err != nil {
			return nil, nil, err
		}
		cur = compose(s, cur)
		s2, err := types.Unify(types.Apply(cur, resultTy), ty, cur, el.Span())
		if err != nil {
			return nil, nil, err
		}
		cur = s2
	}
	return &types.List{Elem: types.Apply(cur, resultTy)}, cur, nil
}

// inferTag special-cases the two constructors the `?`/catch protocol
// depends on: `Ok(v)` and `Err(_)` both produce a Result(typeof v), with
// Err's payload left untyped since the spec fixes the error side to string
// at evaluation time. Every other tag name is generic: its type is simply
// the tag of its argument types, since the tag space is open and there is
// no declared-variant table to check against.
func inferTag(e *ast.TagExpr, env *types.Env, gen *types.VarGen) (types.Type, types.Subst, error) {
	switch e.Name {
	case "Ok":
		if len(e.Args) != 1 {
			return nil, nil, diag.New(diag.StageType, diag.CodeTypeMismatch,
				"Ok takes exactly one argument", e.Span())
		}
		ty, s, err := infer(e.Args[0], env, gen)
		if err != nil {
			return nil, nil, err
		}
		return &types.Result{Ok: ty}, s, nil
	case "Err":
		return &types.Result{Ok: gen.Fresh()}, types.Subst{}, nil
	default:
		args := make([]types.Type, len(e.Args))
		cur := types.Subst{}
		for i, a := range e.Args {
			ty, s, err := infer(a, applyEnv(cur, env), gen)
			if err != nil {
				return nil, nil, err
			}
			cur = compose(s, cur)
			args[i] = ty
		}
		for i, ty := range args {
			args[i] = types.Apply(cur, ty)
		}
		return &types.Tag{Name: e.Name, Args: args}, cur, nil
	}
}

// inferUnwrap implements `?`: the operand must be a Result, and the
// expression's type is the Result's payload type.
func inferUnwrap(innerTy types.Type, s types.Subst, gen *types.VarGen, span diag.Span) (types.Type, types.Subst, error) {
	resolved := types.Apply(s, innerTy)
	if r, ok := resolved.(*types.Result); ok {
		return r.Ok, s, nil
	}
	if v, isVar := resolved.(*types.Var); isVar {
		payload := gen.Fresh()
		s2, err := types.Unify(v, &types.Result{Ok: payload}, s, span)
		if err != nil {
			return nil, nil, err
		}
		return types.Apply(s2, payload), s2, nil
	}
	return nil, nil, diag.New(diag.StageType, diag.CodeTypeNotUnwrappable,
		"? requires a Result operand", span)
}

// inferPipe mirrors the evaluator's three-subcase pipe dispatch: a bare
// catch on the right has its Protected slot filled from Left before being
// inferred as a Catch; a bare unwrap applies Left's type to the unwrap's
// inner (as a function) and unwraps the result; otherwise Right is a
// function applied to Left.
func inferPipe(e *ast.Pipe, env *types.Env, gen *types.VarGen) (types.Type, types.Subst, error) {
	switch right := e.Right.(type) {
	case *ast.Catch:
		if right.Protected == nil {
			return inferCatch(right.WithProtected(e.Left), env, gen)
		}
	case *ast.Unwrap:
		leftTy, s1, err := infer(e.Left, env, gen)
		if err != nil {
			return nil, nil, err
		}
		fnTy, s2, err := infer(right.Inner, applyEnv(s1, env), gen)
		if err != nil {
			return nil, nil, err
		}
		s2 = compose(s2, s1)
		retTy := gen.Fresh()
		s3, err := types.Unify(types.Apply(s2, fnTy), &types.Func{Param: types.Apply(s2, leftTy), Ret: retTy}, s2, e.Span())
		if err != nil {
			return nil, nil, err
		}
		return inferUnwrap(retTy, s3, gen, e.Span())
	}

	leftTy, s1, err := infer(e.Left, env, gen)
	if err != nil {
		return nil, nil, err
	}
	rightTy, s2, err := infer(e.Right, applyEnv(s1, env), gen)
	if err != nil {
		return nil, nil, err
	}
	s2 = compose(s2, s1)
	retTy := gen.Fresh()
	s3, err := types.Unify(types.Apply(s2, rightTy), &types.Func{Param: types.Apply(s2, leftTy), Ret: retTy}, s2, e.Span())
	if err != nil {
		return nil, nil, err
	}
	return types.Apply(s3, retTy), s3, nil
}

// inferCatch types a recovery binder: Protected's type, once any Err side
// is stripped away by unwrapping its Result (a non-Result type is taken
// as-is, matching the evaluator yielding such a value unchanged), must
// agree with Fallback's type under ErrParam bound to String (the spec
// fixes error payloads to string).
func inferCatch(c *ast.Catch, env *types.Env, gen *types.VarGen) (types.Type, types.Subst, error) {
	protTy, s1, err := infer(c.Protected, env, gen)
	if err != nil {
		return nil, nil, err
	}
	okTy, s2 := types.Apply(s1, protTy), s1
	if r, ok := okTy.(*types.Result); ok {
		okTy = r.Ok
	}
	fallbackEnv := applyEnv(s2, env).Extend(c.ErrParam, types.Mono(types.String))
	fallbackTy, s3, err := infer(c.Fallback, fallbackEnv, gen)
	if err != nil {
		return nil, nil, err
	}
	s3 = compose(s3, s2)
	s4, err := types.Unify(types.Apply(s3, okTy), types.Apply(s3, fallbackTy), s3, c.Span())
	if err != nil {
		return nil, nil, err
	}
	return types.Apply(s4, fallbackTy), s4, nil
}

// inferMatch infers the subject once, then each case's body under the
// bindings its pattern introduces, unifying all the case bodies to a
// common type. Because the tag space is open, a PatternTag is treated as
// opaque: the inferencer deliberately skips unifying its pattern type
// against the subject's type (the spec's §4.4 concession), since two
// sibling cases are free to name different, unrelated constructors
// ("Circle(r)" next to "Rect(w, h)") with nothing declaring them part of
// the same sum type. Every other pattern shape still constrains the
// subject the usual way.
func inferMatch(m *ast.Match, env *types.Env, gen *types.VarGen) (types.Type, types.Subst, error) {
	subjTy, s1, err := infer(m.Subject, env, gen)
	if err != nil {
		return nil, nil, err
	}
	cur := s1
	var resultTy types.Type
	for i, c := range m.Cases {
		patTy, bindings, s2, err := inferPattern(c.Pattern, gen)
		if err != nil {
			return nil, nil, err
		}
		cur = compose(s2, cur)
		if _, isTag := c.Pattern.(*ast.PatternTag); !isTag {
			s3, err := types.Unify(types.Apply(cur, subjTy), types.Apply(cur, patTy), cur, c.Pattern.Span())
			if err != nil {
				return nil, nil, err
			}
			cur = s3
		}
		caseEnv := applyEnv(cur, env)
		for name, ty := range bindings {
			caseEnv = caseEnv.Extend(name, types.Mono(types.Apply(cur, ty)))
		}
		bodyTy, s4, err := infer(c.Body, caseEnv, gen)
		if err != nil {
			return nil, nil, err
		}
		cur = compose(s4, cur)
		if i == 0 {
			resultTy = bodyTy
			continue
		}
		s5, err := types.Unify(types.Apply(cur, resultTy), types.Apply(cur, bodyTy), cur, c.Body.Span())
		if err != nil {
			return nil, nil, err
		}
		cur = s5
	}
	return types.Apply(cur, resultTy), cur, nil
}

// applyEnv rewrites every scheme reachable from env through s. Needed
// because an Env is immutable and the inferencer only ever discovers more
// about a variable's binding after it has already been placed in an outer
// frame.
func applyEnv(s types.Subst, env *types.Env) *types.Env {
	if len(s) == 0 {
		return env
	}
	return rewriteAll(s, env, types.NewEnv())
}

func rewriteAll(s types.Subst, env *types.Env, acc *types.Env) *types.Env {
	frames := collectFrames(env)
	for i := len(frames) - 1; i >= 0; i-- {
		for name, sc := range frames[i] {
			acc = acc.Extend(name, types.ApplyScheme(s, sc))
		}
	}
	return acc
}

func collectFrames(env *types.Env) []map[string]types.Scheme {
	var frames []map[string]types.Scheme
	for e := env; e != nil; e = e.Parent() {
		frames = append(frames, e.Vars())
	}
	return frames
}

// compose returns the substitution equivalent to applying s1 and then s2
// (s2 is the more recently computed one and takes precedence on overlap).
func compose(s2, s1 types.Subst) types.Subst {
	out := make(types.Subst, len(s1)+len(s2))
	for k, v := range s1 {
		out[k] = types.Apply(s2, v)
	}
	for k, v := range s2 {
		out[k] = v
	}
	return out
}
