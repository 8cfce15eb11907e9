// Package parser implements a Pratt-style precedence-climbing parser that
// turns a Leverr token stream into a single expression tree.
package parser

import (
	"fmt"

	"github.com/leverr-lang/leverr/internal/ast"
	"github.com/leverr-lang/leverr/internal/diag"
	"github.com/leverr-lang/leverr/internal/lexer"
)

// Binding powers, left/right pairs, exactly as the language spec fixes them.
// Left-associative operators use right = left+1 so a second occurrence of
// the same operator is not swallowed by the recursive call for the right
// operand; it is instead picked up by the outer Pratt loop, producing a
// left-associative chain.
const (
	bpLowest  = 0
	bpPipeL   = 5
	bpPipeR   = 6
	bpOrL     = 10
	bpAndL    = 20
	bpEqL     = 30
	bpRelL    = 40
	bpConcatL = 50
	bpAddL    = 60
	bpMulL    = 70
	bpUnaryR  = 80
	bpUnwrapL = 90
	bpFieldL  = 95
)

var leftBindingPower = map[lexer.TokenType]int{
	lexer.PIPE:     bpPipeL,
	lexer.OR:       bpOrL,
	lexer.AND:      bpAndL,
	lexer.EQ:       bpEqL,
	lexer.NOT_EQ:   bpEqL,
	lexer.LT:       bpRelL,
	lexer.GT:       bpRelL,
	lexer.LE:       bpRelL,
	lexer.GE:       bpRelL,
	lexer.CONCAT:   bpConcatL,
	lexer.PLUS:     bpAddL,
	lexer.MINUS:    bpAddL,
	lexer.STAR:     bpMulL,
	lexer.SLASH:    bpMulL,
	lexer.PERCENT:  bpMulL,
	lexer.QUESTION: bpUnwrapL,
	lexer.DOT:      bpFieldL,
	lexer.LPAREN:   bpFieldL,
}

// Parser is a Pratt-style recursive descent parser over a Leverr token
// stream. curTok and peekTok form its sole lookahead window; every parse
// function leaves the lexer positioned so that curTok is the first token it
// has not consumed.
type Parser struct {
	lx      *lexer.Lexer
	curTok  lexer.Token
	peekTok lexer.Token

	errors []diag.Diagnostic
}

// New constructs a parser over source text.
func New(source string) *Parser {
	p := &Parser{lx: lexer.New(source)}
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the accumulated parse diagnostics, append-only and in the
// order they were raised.
func (p *Parser) Errors() []diag.Diagnostic { return p.errors }

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.lx.NextToken()
}

func (p *Parser) curLeftBP() int {
	if bp, ok := leftBindingPower[p.curTok.Type]; ok {
		return bp
	}
	return bpLowest
}

func (p *Parser) reportErrorf(span diag.Span, format string, args ...any) {
	p.errors = append(p.errors, diag.New(diag.StageParser, diag.CodeParseUnexpectedToken, fmt.Sprintf(format, args...), span))
}

// expect consumes curTok if it has the given type, otherwise records a
// diagnostic naming the unexpected token and its span. Returns the consumed
// token (or the zero value on failure).
func (p *Parser) expect(t lexer.TokenType) lexer.Token {
	if p.curTok.Type != t {
		p.reportErrorf(p.curTok.Span, "expected %s but got %s %q", t, p.curTok.Type, p.curTok.Literal)
		return lexer.Token{}
	}
	tok := p.curTok
	p.nextToken()
	return tok
}

// ParseProgram parses the single top-level expression the spec treats as a
// whole Leverr program, consuming through EOF.
func ParseProgram(source string) (ast.Expr, []diag.Diagnostic) {
	p := New(source)
	expr := p.parseExpr(bpLowest)
	p.expect(lexer.EOF)

	errs := append([]diag.Diagnostic{}, p.lx.Errors...)
	errs = append(errs, p.errors...)
	return expr, errs
}
