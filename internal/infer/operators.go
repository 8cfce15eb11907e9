package infer

import (
	"github.com/leverr-lang/leverr/internal/ast"
	"github.com/leverr-lang/leverr/internal/diag"
	"github.com/leverr-lang/leverr/internal/types"
)

// inferBinary types a binary operator application by category, mirroring
// internal/eval/operators.go's evalBinary dispatch.
func inferBinary(e *ast.Binary, env *types.Env, gen *types.VarGen) (types.Type, types.Subst, error) {
	leftTy, s1, err := infer(e.Left, env, gen)
	if err != nil {
		return nil, nil, err
	}
	rightTy, s2, err := infer(e.Right, applyEnv(s1, env), gen)
	if err != nil {
		return nil, nil, err
	}
	s2 = compose(s2, s1)

	switch e.Op {
	case "&&", "||":
		s3, err := types.Unify(types.Apply(s2, leftTy), types.Bool, s2, e.Span())
		if err != nil {
			return nil, nil, err
		}
		s4, err := types.Unify(types.Apply(s3, rightTy), types.Bool, s3, e.Span())
		if err != nil {
			return nil, nil, err
		}
		return types.Bool, s4, nil

	case "++":
		s3, err := types.Unify(types.Apply(s2, leftTy), types.String, s2, e.Span())
		if err != nil {
			return nil, nil, err
		}
		s4, err := types.Unify(types.Apply(s3, rightTy), types.String, s3, e.Span())
		if err != nil {
			return nil, nil, err
		}
		return types.String, s4, nil

	case "==", "!=":
		s3, err := types.Unify(types.Apply(s2, leftTy), types.Apply(s2, rightTy), s2, e.Span())
		if err != nil {
			return nil, nil, err
		}
		return types.Bool, s3, nil

	case "<", ">", "<=", ">=":
		s3, err := unifyNumeric(leftTy, rightTy, s2, e.Span())
		if err != nil {
			return nil, nil, err
		}
		return types.Bool, s3, nil

	case "+", "-", "*", "/", "%":
		operandTy, s3, err := inferNumeric(leftTy, rightTy, s2, e.Right.Span())
		if err != nil {
			return nil, nil, err
		}
		return operandTy, s3, nil

	default:
		return nil, nil, diag.New(diag.StageType, diag.CodeTypeMismatch,
			"unknown operator \""+e.Op+"\"", e.Span())
	}
}

// inferUnary types a prefix operator application.
func inferUnary(e *ast.Unary, env *types.Env, gen *types.VarGen) (types.Type, types.Subst, error) {
	operandTy, s1, err := infer(e.Operand, env, gen)
	if err != nil {
		return nil, nil, err
	}
	switch e.Op {
	case "!":
		s2, err := types.Unify(types.Apply(s1, operandTy), types.Bool, s1, e.Span())
		if err != nil {
			return nil, nil, err
		}
		return types.Bool, s2, nil
	case "-":
		resolved := types.Apply(s1, operandTy)
		if c, ok := resolved.(*types.Con); ok && c.Name == "Float" {
			return types.Float, s1, nil
		}
		s2, err := types.Unify(resolved, types.Int, s1, e.Span())
		if err == nil {
			return types.Int, s2, nil
		}
		s3, err := types.Unify(resolved, types.Float, s1, e.Span())
		if err != nil {
			return nil, nil, err
		}
		return types.Float, s3, nil
	default:
		return nil, nil, diag.New(diag.StageType, diag.CodeTypeMismatch,
			"unknown unary operator \""+e.Op+"\"", e.Span())
	}
}

// unifyNumeric requires both operands to resolve to the same numeric type,
// defaulting an unconstrained type variable to Int the way an untyped
// numeric literal would.
func unifyNumeric(leftTy, rightTy types.Type, s types.Subst, span diag.Span) (types.Subst, error) {
	s2, err := types.Unify(types.Apply(s, leftTy), types.Apply(s, rightTy), s, span)
	if err != nil {
		return nil, err
	}
	resolved := types.Apply(s2, leftTy)
	if _, isVar := resolved.(*types.Var); isVar {
		return types.Unify(resolved, types.Int, s2, span)
	}
	if !isNumericCon(resolved) {
		return nil, diag.New(diag.StageType, diag.CodeTypeMismatch,
			"comparison requires numeric operands", span)
	}
	return s2, nil
}

func isNumericCon(t types.Type) bool {
	c, ok := t.(*types.Con)
	return ok && (c.Name == "Int" || c.Name == "Float")
}

// inferNumeric is unifyNumeric plus returning the shared operand type, used
// for arithmetic operators whose result type is the operand type.
func inferNumeric(leftTy, rightTy types.Type, s types.Subst, span diag.Span) (types.Type, types.Subst, error) {
	s2, err := unifyNumeric(leftTy, rightTy, s, span)
	if err != nil {
		return nil, nil, err
	}
	return types.Apply(s2, leftTy), s2, nil
}
