package parser

import (
	"github.com/leverr-lang/leverr/internal/ast"
	"github.com/leverr-lang/leverr/internal/diag"
	"github.com/leverr-lang/leverr/internal/lexer"
)

// parseLet parses `let [rec] name = value in body`.
func (p *Parser) parseLet() ast.Expr {
	startTok := p.curTok
	p.nextToken()

	recursive := false
	if p.curTok.Type == lexer.REC {
		recursive = true
		p.nextToken()
	}

	nameTok := p.expect(lexer.IDENT)
	p.expect(lexer.ASSIGN)
	value := p.parseExpr(bpLowest)
	p.expect(lexer.IN)
	body := p.parseExpr(bpLowest)

	return ast.NewLet(nameTok.Literal, value, body, recursive, diag.Merge(startTok.Span, body.Span()))
}

// parseLambda parses `fn(p1, p2, ...) -> body` or the unparenthesized
// single-parameter form `fn p -> body`, desugaring multiple parameters into
// nested single-parameter Lambdas. The body is always parsed at binding
// power 6 so a trailing pipe stays at the outer level rather than being
// absorbed into the body.
func (p *Parser) parseLambda() ast.Expr {
	startTok := p.curTok
	p.nextToken()

	var params []string
	if p.curTok.Type == lexer.LPAREN {
		p.nextToken()
		if p.curTok.Type != lexer.RPAREN {
			params = append(params, p.expect(lexer.IDENT).Literal)
			for p.curTok.Type == lexer.COMMA {
				p.nextToken()
				params = append(params, p.expect(lexer.IDENT).Literal)
			}
		}
		p.expect(lexer.RPAREN)
	} else {
		params = append(params, p.expect(lexer.IDENT).Literal)
	}

	p.expect(lexer.ARROW)
	body := p.parseExpr(bpPipeR)

	span := diag.Merge(startTok.Span, body.Span())
	result := ast.NewLambda(params[len(params)-1], body, span)
	var lambda ast.Expr = result
	for i := len(params) - 2; i >= 0; i-- {
		lambda = ast.NewLambda(params[i], lambda, span)
	}
	return lambda
}

// parseMatch parses `match subject { pattern -> body, ... }`.
func (p *Parser) parseMatch() ast.Expr {
	startTok := p.curTok
	p.nextToken()

	subject := p.parseExpr(bpLowest)
	p.expect(lexer.LBRACE)

	var cases []ast.MatchCase
	for p.curTok.Type != lexer.RBRACE && p.curTok.Type != lexer.EOF {
		pat := p.parsePattern()
		p.expect(lexer.ARROW)
		body := p.parseExpr(bpLowest)
		cases = append(cases, ast.MatchCase{Pattern: pat, Body: body})
		if p.curTok.Type == lexer.COMMA {
			p.nextToken()
		}
	}
	end := p.curTok.Span
	p.expect(lexer.RBRACE)

	return ast.NewMatch(subject, cases, diag.Merge(startTok.Span, end))
}

// parseIf parses `if cond { then } { else }`.
func (p *Parser) parseIf() ast.Expr {
	startTok := p.curTok
	p.nextToken()

	cond := p.parseExpr(bpLowest)
	p.expect(lexer.LBRACE)
	thenExpr := p.parseExpr(bpLowest)
	p.expect(lexer.RBRACE)
	p.expect(lexer.LBRACE)
	elseExpr := p.parseExpr(bpLowest)
	end := p.curTok.Span
	p.expect(lexer.RBRACE)

	return ast.NewIf(cond, thenExpr, elseExpr, diag.Merge(startTok.Span, end))
}

// parseCatchBare parses the bare recovery binder `catch name -> fallback`.
// Its Protected slot is left nil; pipe evaluation and inference fill it in
// from the pipe's left side (see internal/eval and internal/infer).
func (p *Parser) parseCatchBare() ast.Expr {
	startTok := p.curTok
	p.nextToken()

	nameTok := p.expect(lexer.IDENT)
	p.expect(lexer.ARROW)
	fallback := p.parseExpr(bpPipeR)

	return ast.NewCatch(nil, nameTok.Literal, fallback, diag.Merge(startTok.Span, fallback.Span()))
}

// parseListLit parses `[e1, e2, ...]`.
func (p *Parser) parseListLit() ast.Expr {
	startTok := p.curTok
	p.nextToken()

	var elems []ast.Expr
	if p.curTok.Type != lexer.RBRACKET {
		elems = append(elems, p.parseExpr(bpLowest))
		for p.curTok.Type == lexer.COMMA {
			p.nextToken()
			elems = append(elems, p.parseExpr(bpLowest))
		}
	}
	end := p.curTok.Span
	p.expect(lexer.RBRACKET)

	return ast.NewListLit(elems, diag.Merge(startTok.Span, end))
}

// parseRecordLit parses `{ name: value, ... }`. The parser only ever reaches
// here when '{' appears in expression position; match and if consume their
// own braces directly, so there is no ambiguity between the two uses of '{'.
func (p *Parser) parseRecordLit() ast.Expr {
	startTok := p.curTok
	p.nextToken()

	var fields []ast.RecordField
	if p.curTok.Type != lexer.RBRACE {
		fields = append(fields, p.parseRecordField())
		for p.curTok.Type == lexer.COMMA {
			p.nextToken()
			fields = append(fields, p.parseRecordField())
		}
	}
	end := p.curTok.Span
	p.expect(lexer.RBRACE)

	return ast.NewRecordLit(fields, diag.Merge(startTok.Span, end))
}

func (p *Parser) parseRecordField() ast.RecordField {
	nameTok := p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	value := p.parseExpr(bpLowest)
	return ast.RecordField{Name: nameTok.Literal, Value: value}
}

// parseParenOrTupleOrUnit disambiguates `()`, `(expr)`, and `(e1, e2, ...)`.
// Parenthesized grouping yields the inner expression unwrapped, with no
// dedicated node: there is nothing a grouping node would carry that the
// inner expression's own span does not already have.
func (p *Parser) parseParenOrTupleOrUnit() ast.Expr {
	startTok := p.curTok
	p.nextToken()

	if p.curTok.Type == lexer.RPAREN {
		end := p.curTok.Span
		p.nextToken()
		return ast.NewUnitLit(diag.Merge(startTok.Span, end))
	}

	first := p.parseExpr(bpLowest)
	if p.curTok.Type == lexer.COMMA {
		elems := []ast.Expr{first}
		for p.curTok.Type == lexer.COMMA {
			p.nextToken()
			elems = append(elems, p.parseExpr(bpLowest))
		}
		end := p.curTok.Span
		p.expect(lexer.RPAREN)
		return ast.NewTupleLit(elems, diag.Merge(startTok.Span, end))
	}

	p.expect(lexer.RPAREN)
	return first
}
