// Package ast defines the Leverr expression and pattern tree produced by the
// parser and consumed by the inferencer and evaluator.
package ast

import "github.com/leverr-lang/leverr/internal/diag"

// Node is any tree node with an associated source span.
type Node interface {
	Span() diag.Span
}

// Expr is a Leverr expression node. Every shape listed in the spec's data
// model implements it; exprNode is an unexported marker so only this package
// can introduce new expression kinds.
type Expr interface {
	Node
	exprNode()
}
