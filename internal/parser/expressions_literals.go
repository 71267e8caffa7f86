package parser

import (
	"strings"

	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/lexer"
	"github.com/funvibe/funpipe/internal/token"
)

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, ok := p.curToken.Literal.(int64)
	if !ok {
		p.addError(diagnostics.ErrP001, p.curToken, "malformed integer literal %q", p.curToken.Lexeme)
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	value, ok := p.curToken.Literal.(float64)
	if !ok {
		p.addError(diagnostics.ErrP001, p.curToken, "malformed float literal %q", p.curToken.Lexeme)
		return nil
	}
	return &ast.FloatLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal.(string)}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

// parseInterpolatedString splits the raw content of an INTERP_STRING
// token into literal text parts and parsed ${...} expressions. The
// embedded expressions are parsed with a fresh lexer over the segment.
func (p *Parser) parseInterpolatedString() ast.Expression {
	content := p.curToken.Literal.(string)
	node := &ast.InterpolatedString{Token: p.curToken}

	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			node.Parts = append(node.Parts, &ast.StringLiteral{
				Token: token.Token{Type: token.STRING, Lexeme: text.String(), Literal: text.String(), Line: p.curToken.Line, Column: p.curToken.Column},
				Value: text.String(),
			})
			text.Reset()
		}
	}

	for i := 0; i < len(content); {
		if content[i] == '$' && i+1 < len(content) && content[i+1] == '{' {
			end, ok := matchBrace(content, i+1)
			if !ok {
				p.addError(diagnostics.ErrP001, p.curToken, "unterminated interpolation in string literal")
				return nil
			}
			flush()
			segment := content[i+2 : end]
			sub := New(lexer.NewTokenStream(lexer.New(segment)), p.ctx)
			expr := sub.ParseExpression()
			if expr == nil {
				return nil
			}
			node.Parts = append(node.Parts, expr)
			i = end + 1
			continue
		}
		text.WriteByte(content[i])
		i++
	}
	flush()

	return node
}

// matchBrace returns the index of the brace closing the one at open.
func matchBrace(s string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
