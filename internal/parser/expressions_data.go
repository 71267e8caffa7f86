package parser

import (
	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/token"
)

// parseListOrComprehension parses [1, 2, 3] or [x * 2 | x <- xs, x > 1].
// Elements are parsed at the BITOR level so a bare | separates the
// comprehension output from its clauses while every other operator
// still binds.
func (p *Parser) parseListOrComprehension() ast.Expression {
	startToken := p.curToken

	p.nextToken()
	if p.curTokenIs(token.RBRACKET) {
		return &ast.ListLiteral{Token: startToken, Elements: []ast.Expression{}}
	}

	first := p.parseExpression(BITOR)
	if first == nil {
		return nil
	}

	if p.peekTokenIs(token.BAR) {
		p.nextToken() // consume |
		return p.parseComprehensionClauses(startToken, first)
	}

	elements := []ast.Expression{first}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken() // consume comma
		if p.peekTokenIs(token.RBRACKET) {
			break // trailing comma
		}
		p.nextToken()
		elem := p.parseExpression(BITOR)
		if elem == nil {
			return nil
		}
		elements = append(elements, elem)
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.ListLiteral{Token: startToken, Elements: elements}
}

func (p *Parser) parseComprehensionClauses(startToken token.Token, output ast.Expression) ast.Expression {
	lc := &ast.ListComprehension{Token: startToken, Output: output}

	for {
		p.nextToken()
		// Generator: name <- iterable
		if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.LARROW) {
			gen := &ast.CompGenerator{Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}}
			p.nextToken() // move to <-
			gen.Token = p.curToken
			p.nextToken()
			gen.Iterable = p.parseExpression(BITOR)
			if gen.Iterable == nil {
				return nil
			}
			lc.Clauses = append(lc.Clauses, gen)
		} else {
			filter := &ast.CompFilter{Token: p.curToken}
			filter.Condition = p.parseExpression(BITOR)
			if filter.Condition == nil {
				return nil
			}
			lc.Clauses = append(lc.Clauses, filter)
		}

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return lc
}

// parseSetLiteral parses #{1, 2, 3}.
func (p *Parser) parseSetLiteral() ast.Expression {
	startToken := p.curToken

	p.nextToken()
	if p.curTokenIs(token.RBRACE) {
		return &ast.SetLiteral{Token: startToken, Elements: []ast.Expression{}}
	}

	var elements []ast.Expression
	for {
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		elements = append(elements, elem)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // consume comma
		if p.peekTokenIs(token.RBRACE) {
			break // trailing comma
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return &ast.SetLiteral{Token: startToken, Elements: elements}
}

// parseMapLiteral parses %{ key => value, ... }.
func (p *Parser) parseMapLiteral() ast.Expression {
	startToken := p.curToken
	ml := &ast.MapLiteral{Token: startToken}

	p.nextToken()
	if p.curTokenIs(token.RBRACE) {
		return ml
	}

	for {
		key := p.parseExpression(LOWEST)
		if key == nil {
			return nil
		}
		if !p.expectPeek(token.FAT_ARROW) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		ml.Pairs = append(ml.Pairs, ast.MapPair{Key: key, Value: value})

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // consume comma
		if p.peekTokenIs(token.RBRACE) {
			break // trailing comma
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return ml
}
