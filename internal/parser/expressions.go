package parser

import (
	"strconv"

	"github.com/leverr-lang/leverr/internal/ast"
	"github.com/leverr-lang/leverr/internal/diag"
	"github.com/leverr-lang/leverr/internal/lexer"
)

// parseExpr is the Pratt loop: parse one prefix form, then repeatedly fold
// in infix/postfix operators whose left binding power is at least minBP.
func (p *Parser) parseExpr(minBP int) ast.Expr {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for p.curLeftBP() >= minBP && p.curLeftBP() > bpLowest {
		left = p.parseInfix(left)
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expr {
	switch p.curTok.Type {
	case lexer.INT:
		return p.parseIntLit()
	case lexer.FLOAT:
		return p.parseFloatLit()
	case lexer.STRING:
		return p.parseStringLit()
	case lexer.TRUE, lexer.FALSE:
		return p.parseBoolLit()
	case lexer.IDENT:
		return p.parseIdent()
	case lexer.TAG:
		return p.parseTagExpr()
	case lexer.LET:
		return p.parseLet()
	case lexer.FN:
		return p.parseLambda()
	case lexer.MATCH:
		return p.parseMatch()
	case lexer.IF:
		return p.parseIf()
	case lexer.CATCH:
		return p.parseCatchBare()
	case lexer.LBRACKET:
		return p.parseListLit()
	case lexer.LBRACE:
		return p.parseRecordLit()
	case lexer.LPAREN:
		return p.parseParenOrTupleOrUnit()
	case lexer.MINUS, lexer.BANG:
		return p.parseUnary()
	default:
		p.reportErrorf(p.curTok.Span, "unexpected token %s %q in expression position", p.curTok.Type, p.curTok.Literal)
		p.nextToken()
		return nil
	}
}

func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	switch p.curTok.Type {
	case lexer.PIPE:
		return p.parsePipe(left)
	case lexer.OR, lexer.AND, lexer.EQ, lexer.NOT_EQ,
		lexer.LT, lexer.GT, lexer.LE, lexer.GE,
		lexer.CONCAT, lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return p.parseBinary(left)
	case lexer.QUESTION:
		tok := p.curTok
		p.nextToken()
		return ast.NewUnwrap(left, diag.Merge(left.Span(), tok.Span))
	case lexer.DOT:
		return p.parseFieldAccess(left)
	case lexer.LPAREN:
		return p.parseCallArgs(left)
	default:
		p.reportErrorf(p.curTok.Span, "unexpected infix token %s", p.curTok.Type)
		p.nextToken()
		return left
	}
}

func (p *Parser) parseIntLit() ast.Expr {
	tok := p.curTok
	v, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.reportErrorf(tok.Span, "invalid integer literal %q", tok.Literal)
	}
	p.nextToken()
	return ast.NewIntLit(v, tok.Span)
}

func (p *Parser) parseFloatLit() ast.Expr {
	tok := p.curTok
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.reportErrorf(tok.Span, "invalid float literal %q", tok.Literal)
	}
	p.nextToken()
	return ast.NewFloatLit(v, tok.Span)
}

func (p *Parser) parseStringLit() ast.Expr {
	tok := p.curTok
	value := tok.Literal
	if len(value) >= 2 {
		value = value[1 : len(value)-1]
	}
	p.nextToken()
	return ast.NewStringLit(value, tok.Span)
}

func (p *Parser) parseBoolLit() ast.Expr {
	tok := p.curTok
	p.nextToken()
	return ast.NewBoolLit(tok.Type == lexer.TRUE, tok.Span)
}

func (p *Parser) parseIdent() ast.Expr {
	tok := p.curTok
	p.nextToken()
	return ast.NewIdent(tok.Literal, tok.Span)
}

// parseTagExpr parses a tag constructor optionally followed by exactly one
// parenthesized argument list, e.g. `None` or `Ok(42, "msg")`.
func (p *Parser) parseTagExpr() ast.Expr {
	tok := p.curTok
	p.nextToken()

	var args []ast.Expr
	end := tok.Span
	if p.curTok.Type == lexer.LPAREN {
		p.nextToken()
		if p.curTok.Type != lexer.RPAREN {
			args = append(args, p.parseExpr(bpLowest))
			for p.curTok.Type == lexer.COMMA {
				p.nextToken()
				args = append(args, p.parseExpr(bpLowest))
			}
		}
		end = p.curTok.Span
		p.expect(lexer.RPAREN)
	}
	return ast.NewTagExpr(tok.Literal, args, diag.Merge(tok.Span, end))
}

func (p *Parser) parseUnary() ast.Expr {
	tok := p.curTok
	p.nextToken()
	operand := p.parseExpr(bpUnaryR)
	return ast.NewUnary(tok.Literal, operand, diag.Merge(tok.Span, operand.Span()))
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	tok := p.curTok
	leftBP := leftBindingPower[tok.Type]
	p.nextToken()
	right := p.parseExpr(leftBP + 1)
	return ast.NewBinary(tok.Literal, left, right, diag.Merge(left.Span(), right.Span()))
}

// parsePipe parses the right side at binding power 6, which lets it be a
// normal expression, a bare Unwrap (`x |> f?`), or a bare Catch
// (`x |> catch e -> fallback`) without swallowing a further pipe.
func (p *Parser) parsePipe(left ast.Expr) ast.Expr {
	p.nextToken() // consume '|>'
	right := p.parseExpr(bpPipeR)
	return ast.NewPipe(left, right, diag.Merge(left.Span(), right.Span()))
}

func (p *Parser) parseFieldAccess(left ast.Expr) ast.Expr {
	p.nextToken() // consume '.'
	nameTok := p.expect(lexer.IDENT)
	return ast.NewFieldAccess(left, nameTok.Literal, diag.Merge(left.Span(), nameTok.Span))
}

// parseCallArgs desugars `f(a, b, c)` into nested single-argument Calls:
// ((f(a))(b))(c). Registering LPAREN in the infix table lets this apply
// uniformly after any primary, not just a bare identifier.
func (p *Parser) parseCallArgs(fn ast.Expr) ast.Expr {
	p.nextToken() // consume '('
	var args []ast.Expr
	if p.curTok.Type != lexer.RPAREN {
		args = append(args, p.parseExpr(bpLowest))
		for p.curTok.Type == lexer.COMMA {
			p.nextToken()
			args = append(args, p.parseExpr(bpLowest))
		}
	}
	end := p.curTok.Span
	p.expect(lexer.RPAREN)

	result := fn
	for _, arg := range args {
		result = ast.NewCall(result, arg, diag.Merge(fn.Span(), diag.Merge(arg.Span(), end)))
	}
	return result
}
