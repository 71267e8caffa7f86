package lexer_test

import (
	"testing"

	"github.com/funvibe/funpipe/internal/lexer"
	"github.com/funvibe/funpipe/internal/token"
)

func TestNextToken_Operators(t *testing.T) {
	input := "|> >> << ++ ** == != <= >= <- -> => + - * / % & | ^ ! < >"
	want := []token.TokenType{
		token.PIPE_GT, token.RSHIFT, token.LSHIFT, token.CONCAT, token.POWER,
		token.EQ, token.NOT_EQ, token.LT_EQ, token.GT_EQ, token.LARROW,
		token.ARROW, token.FAT_ARROW, token.PLUS, token.MINUS, token.ASTERISK,
		token.SLASH, token.PERCENT, token.AMP, token.BAR, token.CARET,
		token.BANG, token.LT, token.GT, token.EOF,
	}
	l := lexer.New(input)
	for i, tt := range want {
		tok := l.NextToken()
		if tok.Type != tt {
			t.Fatalf("token %d: got %s (%q), want %s", i, tok.Type, tok.Lexeme, tt)
		}
	}
}

func TestNextToken_Delimiters(t *testing.T) {
	input := "( ) [ ] { } %{ #{ , : . \\"
	want := []token.TokenType{
		token.LPAREN, token.RPAREN, token.LBRACKET, token.RBRACKET,
		token.LBRACE, token.RBRACE, token.MAP_OPEN, token.SET_OPEN,
		token.COMMA, token.COLON, token.DOT, token.BACKSLASH, token.EOF,
	}
	l := lexer.New(input)
	for i, tt := range want {
		tok := l.NextToken()
		if tok.Type != tt {
			t.Fatalf("token %d: got %s (%q), want %s", i, tok.Type, tok.Lexeme, tt)
		}
	}
}

func TestNextToken_IdentifiersAndKeywords(t *testing.T) {
	tests := []struct {
		input string
		typ   token.TokenType
	}{
		{"foo", token.IDENT},
		{"_", token.IDENT},
		{"_tmp", token.IDENT},
		{"Z", token.IDENT},
		{"x2", token.IDENT},
		{"true", token.TRUE},
		{"false", token.FALSE},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := lexer.New(tt.input).NextToken()
			if tok.Type != tt.typ {
				t.Errorf("got %s, want %s", tok.Type, tt.typ)
			}
			if tok.Lexeme != tt.input {
				t.Errorf("lexeme: got %q, want %q", tok.Lexeme, tt.input)
			}
		})
	}
}

func TestNextToken_Numbers(t *testing.T) {
	tests := []struct {
		input   string
		typ     token.TokenType
		literal interface{}
	}{
		{"42", token.INT, int64(42)},
		{"1_000", token.INT, int64(1000)},
		{"3.14", token.FLOAT, 3.14},
		{"0.5", token.FLOAT, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := lexer.New(tt.input).NextToken()
			if tok.Type != tt.typ {
				t.Fatalf("got %s, want %s", tok.Type, tt.typ)
			}
			if tok.Literal != tt.literal {
				t.Errorf("literal: got %v, want %v", tok.Literal, tt.literal)
			}
		})
	}
}

func TestNextToken_Strings(t *testing.T) {
	tok := lexer.New("\"hi\\n\\\"there\\\"\"").NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("got %s, want STRING", tok.Type)
	}
	if tok.Literal != "hi\n\"there\"" {
		t.Errorf("literal: got %q", tok.Literal)
	}
}

func TestNextToken_InterpolatedString(t *testing.T) {
	tok := lexer.New("\"v=${x + 1}\"").NextToken()
	if tok.Type != token.INTERP_STRING {
		t.Fatalf("got %s, want INTERP_STRING", tok.Type)
	}
	if tok.Literal != "v=${x + 1}" {
		t.Errorf("literal: got %q", tok.Literal)
	}
}

func TestNextToken_InterpolationKeepsNestedBraces(t *testing.T) {
	tok := lexer.New("\"m=${%{a => 1}}\"").NextToken()
	if tok.Type != token.INTERP_STRING {
		t.Fatalf("got %s, want INTERP_STRING", tok.Type)
	}
	if tok.Literal != "m=${%{a => 1}}" {
		t.Errorf("literal: got %q", tok.Literal)
	}
}

func TestNextToken_UnterminatedString(t *testing.T) {
	tok := lexer.New("\"oops").NextToken()
	if tok.Type != token.ILLEGAL {
		t.Errorf("got %s, want ILLEGAL", tok.Type)
	}
}

func TestNextToken_Positions(t *testing.T) {
	l := lexer.New("a +\nb")
	a := l.NextToken()
	plus := l.NextToken()
	b := l.NextToken()
	if a.Line != 1 || plus.Line != 1 {
		t.Errorf("first line tokens: a=%d plus=%d", a.Line, plus.Line)
	}
	if b.Line != 2 {
		t.Errorf("expected b on line 2, got %d", b.Line)
	}
}

func TestTokenStream_PeekAndExhaustion(t *testing.T) {
	ts := lexer.NewTokenStream(lexer.New("a + b"))
	peeked := ts.Peek(2)
	if len(peeked) != 2 {
		t.Fatalf("Peek(2): got %d tokens", len(peeked))
	}
	if peeked[0].Type != token.IDENT || peeked[1].Type != token.PLUS {
		t.Errorf("Peek order wrong: %s %s", peeked[0].Type, peeked[1].Type)
	}
	var types []token.TokenType
	for {
		tok := ts.Next()
		types = append(types, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}
	if len(types) != 4 {
		t.Fatalf("expected 4 tokens incl EOF, got %d", len(types))
	}
	// Exhausted stream keeps returning EOF.
	if ts.Next().Type != token.EOF {
		t.Error("exhausted stream should return EOF")
	}
}
