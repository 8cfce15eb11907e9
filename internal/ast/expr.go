package ast

import "github.com/leverr-lang/leverr/internal/diag"

// IntLit is an integer literal.
type IntLit struct {
	Value int64
	span  diag.Span
}

func NewIntLit(value int64, span diag.Span) *IntLit { return &IntLit{Value: value, span: span} }
func (n *IntLit) Span() diag.Span                   { return n.span }
func (*IntLit) exprNode()                           {}

// FloatLit is a floating point literal.
type FloatLit struct {
	Value float64
	span  diag.Span
}

func NewFloatLit(value float64, span diag.Span) *FloatLit { return &FloatLit{Value: value, span: span} }
func (n *FloatLit) Span() diag.Span                       { return n.span }
func (*FloatLit) exprNode()                               {}

// StringLit is a string literal; Value is the decoded contents (quotes
// stripped, no further escape processing performed).
type StringLit struct {
	Value string
	span  diag.Span
}

func NewStringLit(value string, span diag.Span) *StringLit {
	return &StringLit{Value: value, span: span}
}
func (n *StringLit) Span() diag.Span { return n.span }
func (*StringLit) exprNode()         {}

// BoolLit is a boolean literal.
type BoolLit struct {
	Value bool
	span  diag.Span
}

func NewBoolLit(value bool, span diag.Span) *BoolLit { return &BoolLit{Value: value, span: span} }
func (n *BoolLit) Span() diag.Span                   { return n.span }
func (*BoolLit) exprNode()                           {}

// UnitLit is the unit value `()`.
type UnitLit struct {
	span diag.Span
}

func NewUnitLit(span diag.Span) *UnitLit { return &UnitLit{span: span} }
func (n *UnitLit) Span() diag.Span       { return n.span }
func (*UnitLit) exprNode()               {}

// Ident is a reference to a bound name.
type Ident struct {
	Name string
	span diag.Span
}

func NewIdent(name string, span diag.Span) *Ident { return &Ident{Name: name, span: span} }
func (n *Ident) Span() diag.Span                  { return n.span }
func (*Ident) exprNode()                          {}

// Let is a (possibly recursive) binding: `let [rec] name = value in body`.
type Let struct {
	Name      string
	Value     Expr
	Body      Expr
	Recursive bool
	span      diag.Span
}

func NewLet(name string, value, body Expr, recursive bool, span diag.Span) *Let {
	return &Let{Name: name, Value: value, Body: body, Recursive: recursive, span: span}
}
func (n *Let) Span() diag.Span { return n.span }
func (*Let) exprNode()         {}

// Lambda is a single-parameter function literal. Multi-parameter surface
// syntax is desugared by the parser into nested Lambdas.
type Lambda struct {
	Param string
	Body  Expr
	span  diag.Span
}

func NewLambda(param string, body Expr, span diag.Span) *Lambda {
	return &Lambda{Param: param, Body: body, span: span}
}
func (n *Lambda) Span() diag.Span { return n.span }
func (*Lambda) exprNode()         {}

// Call is a single-argument application. Multi-argument call syntax is
// desugared by the parser into left-associative nested Calls.
type Call struct {
	Fn   Expr
	Arg  Expr
	span diag.Span
}

func NewCall(fn, arg Expr, span diag.Span) *Call { return &Call{Fn: fn, Arg: arg, span: span} }
func (n *Call) Span() diag.Span                  { return n.span }
func (*Call) exprNode()                          {}

// Binary is a binary operator application.
type Binary struct {
	Op    string
	Left  Expr
	Right Expr
	span  diag.Span
}

func NewBinary(op string, left, right Expr, span diag.Span) *Binary {
	return &Binary{Op: op, Left: left, Right: right, span: span}
}
func (n *Binary) Span() diag.Span { return n.span }
func (*Binary) exprNode()         {}

// Unary is a prefix operator application (`-` or `!`).
type Unary struct {
	Op      string
	Operand Expr
	span    diag.Span
}

func NewUnary(op string, operand Expr, span diag.Span) *Unary {
	return &Unary{Op: op, Operand: operand, span: span}
}
func (n *Unary) Span() diag.Span { return n.span }
func (*Unary) exprNode()         {}

// Pipe threads Left into Right. It is a distinct node from Binary because
// its right side can be a bare Catch or Unwrap, each of which gets its
// missing operand filled in from Left rather than being applied to it.
type Pipe struct {
	Left  Expr
	Right Expr
	span  diag.Span
}

func NewPipe(left, right Expr, span diag.Span) *Pipe {
	return &Pipe{Left: left, Right: right, span: span}
}
func (n *Pipe) Span() diag.Span { return n.span }
func (*Pipe) exprNode()         {}

// Unwrap is the postfix `?` operator.
type Unwrap struct {
	Inner Expr
	span  diag.Span
}

func NewUnwrap(inner Expr, span diag.Span) *Unwrap { return &Unwrap{Inner: inner, span: span} }
func (n *Unwrap) Span() diag.Span                  { return n.span }
func (*Unwrap) exprNode()                          {}

// Catch is the recovery binder `catch e -> fallback`. Protected is nil when
// the binder is parsed bare at the right of a pipe; the evaluator (and the
// inferencer) fill it in from the pipe's left side at that point.
type Catch struct {
	Protected Expr
	ErrParam  string
	Fallback  Expr
	span      diag.Span
}

func NewCatch(protected Expr, errParam string, fallback Expr, span diag.Span) *Catch {
	return &Catch{Protected: protected, ErrParam: errParam, Fallback: fallback, span: span}
}
func (n *Catch) Span() diag.Span { return n.span }
func (*Catch) exprNode()         {}

// WithProtected returns a copy of c with Protected set, used by pipe
// evaluation/inference to fill in a bare catch's left-hand side without
// mutating the shared AST node.
func (c *Catch) WithProtected(protected Expr) *Catch {
	cp := *c
	cp.Protected = protected
	return &cp
}

// MatchCase is one arm of a Match expression.
type MatchCase struct {
	Pattern Pattern
	Body    Expr
}

// Match evaluates Subject against each case's pattern in order, taking the
// first one that matches.
type Match struct {
	Subject Expr
	Cases   []MatchCase
	span    diag.Span
}

func NewMatch(subject Expr, cases []MatchCase, span diag.Span) *Match {
	return &Match{Subject: subject, Cases: cases, span: span}
}
func (n *Match) Span() diag.Span { return n.span }
func (*Match) exprNode()         {}

// If is a conditional expression: `if cond { then } { else }`.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
	span diag.Span
}

func NewIf(cond, then, els Expr, span diag.Span) *If {
	return &If{Cond: cond, Then: then, Else: els, span: span}
}
func (n *If) Span() diag.Span { return n.span }
func (*If) exprNode()         {}

// ListLit is an ordered list literal.
type ListLit struct {
	Elems []Expr
	span  diag.Span
}

func NewListLit(elems []Expr, span diag.Span) *ListLit { return &ListLit{Elems: elems, span: span} }
func (n *ListLit) Span() diag.Span                     { return n.span }
func (*ListLit) exprNode()                             {}

// TupleLit is an ordered tuple literal.
type TupleLit struct {
	Elems []Expr
	span  diag.Span
}

func NewTupleLit(elems []Expr, span diag.Span) *TupleLit {
	return &TupleLit{Elems: elems, span: span}
}
func (n *TupleLit) Span() diag.Span { return n.span }
func (*TupleLit) exprNode()         {}

// RecordField is one `name: value` pair of a record literal.
type RecordField struct {
	Name  string
	Value Expr
}

// RecordLit is a record literal, insertion order preserved.
type RecordLit struct {
	Fields []RecordField
	span   diag.Span
}

func NewRecordLit(fields []RecordField, span diag.Span) *RecordLit {
	return &RecordLit{Fields: fields, span: span}
}
func (n *RecordLit) Span() diag.Span { return n.span }
func (*RecordLit) exprNode()         {}

// FieldAccess is `record.field`.
type FieldAccess struct {
	Record Expr
	Field  string
	span   diag.Span
}

func NewFieldAccess(record Expr, field string, span diag.Span) *FieldAccess {
	return &FieldAccess{Record: record, Field: field, span: span}
}
func (n *FieldAccess) Span() diag.Span { return n.span }
func (*FieldAccess) exprNode()         {}

// TagExpr constructs a tagged value, e.g. `Ok(42)` or `None`.
type TagExpr struct {
	Name string
	Args []Expr
	span diag.Span
}

func NewTagExpr(name string, args []Expr, span diag.Span) *TagExpr {
	return &TagExpr{Name: name, Args: args, span: span}
}
func (n *TagExpr) Span() diag.Span { return n.span }
func (*TagExpr) exprNode()         {}
