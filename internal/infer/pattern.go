package infer

import (
	"github.com/leverr-lang/leverr/internal/ast"
	"github.com/leverr-lang/leverr/internal/diag"
	"github.com/leverr-lang/leverr/internal/types"
)

// inferPattern computes the type a pattern requires its subject to have,
// the bindings it introduces (named by the identifiers its sub-patterns
// bind), and the substitution accumulated while inferring any nested
// tag/tuple/record structure.
func inferPattern(pat ast.Pattern, gen *types.VarGen) (types.Type, map[string]types.Type, types.Subst, error) {
	switch p := pat.(type) {
	case *ast.PatternInt:
		return types.Int, nil, types.Subst{}, nil
	case *ast.PatternFloat:
		return types.Float, nil, types.Subst{}, nil
	case *ast.PatternString:
		return types.String, nil, types.Subst{}, nil
	case *ast.PatternBool:
		return types.Bool, nil, types.Subst{}, nil
	case *ast.PatternWildcard:
		return gen.Fresh(), nil, types.Subst{}, nil
	case *ast.PatternIdent:
		v := gen.Fresh()
		return v, map[string]types.Type{p.Name: v}, types.Subst{}, nil

	case *ast.PatternTag:
		// The tag space is open: a pattern's constructor carries no
		// declared-variant arity to check against, so each argument gets
		// its own fresh shape and the overall pattern type is simply that
		// tag applied to them.
		argTys := make([]types.Type, len(p.Args))
		bindings := map[string]types.Type{}
		cur := types.Subst{}
		for i, sub := range p.Args {
			ty, b, s, err := inferPattern(sub, gen)
			if err != nil {
				return nil, nil, nil, err
			}
			cur = compose(s, cur)
			argTys[i] = ty
			for name, t := range b {
				bindings[name] = t
			}
		}
		if p.Name == "Ok" && len(argTys) == 1 {
			return &types.Result{Ok: argTys[0]}, bindings, cur, nil
		}
		if p.Name == "Err" && len(argTys) <= 1 {
			return &types.Result{Ok: gen.Fresh()}, bindings, cur, nil
		}
		return &types.Tag{Name: p.Name, Args: argTys}, bindings, cur, nil

	case *ast.PatternTuple:
		elemTys := make([]types.Type, len(p.Elems))
		bindings := map[string]types.Type{}
		cur := types.Subst{}
		for i, sub := range p.Elems {
			ty, b, s, err := inferPattern(sub, gen)
			if err != nil {
				return nil, nil, nil, err
			}
			cur = compose(s, cur)
			elemTys[i] = ty
			for name, t := range b {
				bindings[name] = t
			}
		}
		return &types.Tuple{Elems: elemTys}, bindings, cur, nil

	case *ast.PatternRecord:
		fields := map[string]types.Type{}
		bindings := map[string]types.Type{}
		cur := types.Subst{}
		for _, f := range p.Fields {
			ty, b, s, err := inferPattern(f.Pattern, gen)
			if err != nil {
				return nil, nil, nil, err
			}
			cur = compose(s, cur)
			fields[f.Name] = ty
			for name, t := range b {
				bindings[name] = t
			}
		}
		return &types.Record{Fields: fields, Row: gen.Fresh()}, bindings, cur, nil

	default:
		return nil, nil, nil, diag.New(diag.StageType, diag.CodeTypeMismatch,
			"cannot infer a type for this pattern", pat.Span())
	}
}
