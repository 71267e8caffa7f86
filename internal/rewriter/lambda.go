package rewriter

import (
	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/token"
)

// toLambda wraps a placeholder-bearing expression into a one-argument
// lambda whose parameter replaces the placeholder:
//
//	_ + 3    becomes    \Z -> Z + 3
//
// The caller must have verified that the tree contains the placeholder
// at least once; this is the dispatcher's precondition, not re-checked
// here.
func toLambda(expr ast.Expression, cfg *Config) *ast.FunctionLiteral {
	tok := expr.GetToken()
	paramTok := token.Token{Type: token.IDENT, Lexeme: cfg.LambdaVar, Literal: cfg.LambdaVar, Line: tok.Line, Column: tok.Column}
	return &ast.FunctionLiteral{
		Token:      token.Token{Type: token.BACKSLASH, Lexeme: "\\", Literal: "\\", Line: tok.Line, Column: tok.Column},
		Parameters: []*ast.Identifier{{Token: paramTok, Value: cfg.LambdaVar}},
		Body:       Substitute(expr, cfg.Placeholder, cfg.LambdaVar),
	}
}
