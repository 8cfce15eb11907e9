package parser

import (
	"strconv"

	"github.com/leverr-lang/leverr/internal/ast"
	"github.com/leverr-lang/leverr/internal/diag"
	"github.com/leverr-lang/leverr/internal/lexer"
)

// parsePattern parses a single match-arm pattern.
func (p *Parser) parsePattern() ast.Pattern {
	switch p.curTok.Type {
	case lexer.INT:
		tok := p.curTok
		v, _ := strconv.ParseInt(tok.Literal, 10, 64)
		p.nextToken()
		return ast.NewPatternInt(v, tok.Span)
	case lexer.FLOAT:
		tok := p.curTok
		v, _ := strconv.ParseFloat(tok.Literal, 64)
		p.nextToken()
		return ast.NewPatternFloat(v, tok.Span)
	case lexer.STRING:
		tok := p.curTok
		value := tok.Literal
		if len(value) >= 2 {
			value = value[1 : len(value)-1]
		}
		p.nextToken()
		return ast.NewPatternString(value, tok.Span)
	case lexer.TRUE, lexer.FALSE:
		tok := p.curTok
		p.nextToken()
		return ast.NewPatternBool(tok.Type == lexer.TRUE, tok.Span)
	case lexer.WILD:
		tok := p.curTok
		p.nextToken()
		return ast.NewPatternWildcard(tok.Span)
	case lexer.IDENT:
		tok := p.curTok
		p.nextToken()
		return ast.NewPatternIdent(tok.Literal, tok.Span)
	case lexer.TAG:
		return p.parseTagPattern()
	case lexer.LPAREN:
		return p.parseTuplePattern()
	case lexer.LBRACE:
		return p.parseRecordPattern()
	default:
		p.reportErrorf(p.curTok.Span, "unexpected token %s %q in pattern position", p.curTok.Type, p.curTok.Literal)
		tok := p.curTok
		p.nextToken()
		return ast.NewPatternWildcard(tok.Span)
	}
}

func (p *Parser) parseTagPattern() ast.Pattern {
	tok := p.curTok
	p.nextToken()

	var args []ast.Pattern
	end := tok.Span
	if p.curTok.Type == lexer.LPAREN {
		p.nextToken()
		if p.curTok.Type != lexer.RPAREN {
			args = append(args, p.parsePattern())
			for p.curTok.Type == lexer.COMMA {
				p.nextToken()
				args = append(args, p.parsePattern())
			}
		}
		end = p.curTok.Span
		p.expect(lexer.RPAREN)
	}
	return ast.NewPatternTag(tok.Literal, args, diag.Merge(tok.Span, end))
}

func (p *Parser) parseTuplePattern() ast.Pattern {
	startTok := p.curTok
	p.nextToken()

	var elems []ast.Pattern
	if p.curTok.Type != lexer.RPAREN {
		elems = append(elems, p.parsePattern())
		for p.curTok.Type == lexer.COMMA {
			p.nextToken()
			elems = append(elems, p.parsePattern())
		}
	}
	end := p.curTok.Span
	p.expect(lexer.RPAREN)

	return ast.NewPatternTuple(elems, diag.Merge(startTok.Span, end))
}

func (p *Parser) parseRecordPattern() ast.Pattern {
	startTok := p.curTok
	p.nextToken()

	var fields []ast.PatternRecordField
	if p.curTok.Type != lexer.RBRACE {
		fields = append(fields, p.parseRecordPatternField())
		for p.curTok.Type == lexer.COMMA {
			p.nextToken()
			fields = append(fields, p.parseRecordPatternField())
		}
	}
	end := p.curTok.Span
	p.expect(lexer.RBRACE)

	return ast.NewPatternRecord(fields, diag.Merge(startTok.Span, end))
}

func (p *Parser) parseRecordPatternField() ast.PatternRecordField {
	nameTok := p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	pat := p.parsePattern()
	return ast.PatternRecordField{Name: nameTok.Literal, Pattern: pat}
}
