package parser

import (
	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/pipeline"
	"github.com/funvibe/funpipe/internal/token"
)

// MaxRecursionDepth bounds expression nesting to keep malformed input
// from blowing the stack.
const MaxRecursionDepth = 500

// Operator precedence levels, lowest binds loosest. Bare | is the
// loosest infix operator so that inside brackets it cleanly separates
// a comprehension output from its clauses. Shift-family operators
// (including the pipe) sit below arithmetic so that `a |> _ + 3`
// parses as `a |> (_ + 3)`.
const (
	LOWEST      = iota
	BITOR       // | (also the comprehension separator)
	EQUALS      // == !=
	LESSGREATER // < > <= >=
	SHIFT       // |> >> <<
	BITAND      // & ^
	SUM         // + - ++
	PRODUCT     // * / %
	EXPONENT    // ** (right-assoc)
	PREFIX      // -x !x
	CALL        // f(x) x.member
)

var precedences = map[token.TokenType]int{
	token.BAR:      BITOR,
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       LESSGREATER,
	token.GT:       LESSGREATER,
	token.LT_EQ:    LESSGREATER,
	token.GT_EQ:    LESSGREATER,
	token.AMP:      BITAND,
	token.CARET:    BITAND,
	token.PIPE_GT:  SHIFT,
	token.RSHIFT:   SHIFT,
	token.LSHIFT:   SHIFT,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.CONCAT:   SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
	token.POWER:    EXPONENT,
	token.LPAREN:   CALL,
	token.DOT:      CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	stream pipeline.TokenStream
	ctx    *pipeline.Context

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn

	depth int
}

func New(stream pipeline.TokenStream, ctx *pipeline.Context) *Parser {
	p := &Parser{stream: stream, ctx: ctx}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:         p.parseIdentifier,
		token.INT:           p.parseIntegerLiteral,
		token.FLOAT:         p.parseFloatLiteral,
		token.STRING:        p.parseStringLiteral,
		token.INTERP_STRING: p.parseInterpolatedString,
		token.TRUE:          p.parseBooleanLiteral,
		token.FALSE:         p.parseBooleanLiteral,
		token.MINUS:         p.parsePrefixExpression,
		token.BANG:          p.parsePrefixExpression,
		token.LPAREN:        p.parseGroupedExpression,
		token.LBRACKET:      p.parseListOrComprehension,
		token.SET_OPEN:      p.parseSetLiteral,
		token.MAP_OPEN:      p.parseMapLiteral,
		token.BACKSLASH:     p.parseFunctionLiteral,
	}

	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.EQ:       p.parseInfixExpression,
		token.NOT_EQ:   p.parseInfixExpression,
		token.LT:       p.parseInfixExpression,
		token.GT:       p.parseInfixExpression,
		token.LT_EQ:    p.parseInfixExpression,
		token.GT_EQ:    p.parseInfixExpression,
		token.BAR:      p.parseInfixExpression,
		token.CARET:    p.parseInfixExpression,
		token.AMP:      p.parseInfixExpression,
		token.PIPE_GT:  p.parseInfixExpression,
		token.RSHIFT:   p.parseInfixExpression,
		token.LSHIFT:   p.parseInfixExpression,
		token.PLUS:     p.parseInfixExpression,
		token.MINUS:    p.parseInfixExpression,
		token.CONCAT:   p.parseInfixExpression,
		token.ASTERISK: p.parseInfixExpression,
		token.SLASH:    p.parseInfixExpression,
		token.PERCENT:  p.parseInfixExpression,
		token.POWER:    p.parseRightAssocInfixExpression,
		token.LPAREN:   p.parseCallExpression,
		token.DOT:      p.parseMemberExpression,
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

// ParseExpression parses one complete expression and expects the
// stream to be exhausted afterwards.
func (p *Parser) ParseExpression() ast.Expression {
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.peekTokenIs(token.EOF) {
		p.addError(diagnostics.ErrP001, p.peekToken, "unexpected token %q after expression", p.peekToken.Lexeme)
		return nil
	}
	return expr
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.stream.Next()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError(diagnostics.ErrP001, p.peekToken, "expected %s, got %q", t, p.peekToken.Lexeme)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) addError(code string, tok token.Token, format string, args ...interface{}) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(code, tok, format, args...))
}

func (p *Parser) noPrefixParseFnError(tok token.Token) {
	p.addError(diagnostics.ErrP002, tok, "unexpected token %q in expression", tok.Lexeme)
}
