package lexer

import "github.com/funvibe/funpipe/internal/token"

// TokenStream buffers the lexer output so the parser can look ahead
// without re-lexing.
type TokenStream struct {
	tokens []token.Token
	pos    int
}

func NewTokenStream(l *Lexer) *TokenStream {
	ts := &TokenStream{}
	for {
		tok := l.NextToken()
		ts.tokens = append(ts.tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return ts
}

// Next returns the next token, or EOF forever once exhausted.
func (ts *TokenStream) Next() token.Token {
	if ts.pos >= len(ts.tokens) {
		return ts.tokens[len(ts.tokens)-1]
	}
	tok := ts.tokens[ts.pos]
	ts.pos++
	return tok
}

// Peek returns up to n upcoming tokens without consuming them.
func (ts *TokenStream) Peek(n int) []token.Token {
	end := ts.pos + n
	if end > len(ts.tokens) {
		end = len(ts.tokens)
	}
	return ts.tokens[ts.pos:end]
}
