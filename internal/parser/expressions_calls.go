package parser

import (
	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/token"
)

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	exp := &ast.CallExpression{Token: p.curToken, Function: function}
	if !p.parseCallArguments(exp) {
		return nil
	}
	return exp
}

// parseCallArguments parses positional and keyword arguments:
// f(1, 2, limit: 10). Keyword arguments must come after positional
// ones.
func (p *Parser) parseCallArguments(exp *ast.CallExpression) bool {
	p.nextToken() // move past (

	if p.curTokenIs(token.RPAREN) {
		return true
	}

	for {
		// Keyword argument: IDENT : expr
		if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.COLON) {
			kw := &ast.KeywordArgument{Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}}
			p.nextToken() // move to :
			kw.Token = p.curToken
			p.nextToken()
			kw.Value = p.parseExpression(LOWEST)
			if kw.Value == nil {
				return false
			}
			exp.Keywords = append(exp.Keywords, kw)
		} else {
			if len(exp.Keywords) > 0 {
				p.addError(diagnostics.ErrP001, p.curToken, "positional argument after keyword argument")
				return false
			}
			arg := p.parseExpression(LOWEST)
			if arg == nil {
				return false
			}
			exp.Arguments = append(exp.Arguments, arg)
		}

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // consume comma
		if p.peekTokenIs(token.RPAREN) {
			break // trailing comma
		}
		p.nextToken()
	}

	return p.expectPeek(token.RPAREN)
}
