package pipeline

import (
	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/token"
)

// TokenStream is the lookahead token source produced by the lexer
// stage and consumed by the parser stage.
type TokenStream interface {
	Next() token.Token
	Peek(n int) []token.Token
}

// Processor is a single stage of the pipeline. A stage reads what it
// needs from the context, writes its output back, and appends any
// diagnostics to Errors.
type Processor interface {
	Process(ctx *Context) *Context
}

// Context carries one source expression through the stages:
// lex -> parse -> rewrite.
type Context struct {
	SourceCode  string
	FilePath    string
	TokenStream TokenStream
	AstRoot     ast.Expression
	Rewritten   ast.Expression
	Errors      []*diagnostics.Error
}

func NewContext(source string) *Context {
	return &Context{SourceCode: source}
}
