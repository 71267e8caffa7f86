package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/funpipe/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	switch l.ch {
	case '=':
		// ==, =>
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.twoCharToken(token.EQ, "==")
		} else if l.peekChar() == '>' {
			l.readChar()
			tok = l.twoCharToken(token.FAT_ARROW, "=>")
		} else {
			tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
		}
	case '+':
		if l.peekChar() == '+' {
			l.readChar()
			tok = l.twoCharToken(token.CONCAT, "++")
		} else {
			tok = newToken(token.PLUS, l.ch, l.line, l.column)
		}
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			tok = l.twoCharToken(token.ARROW, "->")
		} else {
			tok = newToken(token.MINUS, l.ch, l.line, l.column)
		}
	case '*':
		if l.peekChar() == '*' {
			l.readChar()
			tok = l.twoCharToken(token.POWER, "**")
		} else {
			tok = newToken(token.ASTERISK, l.ch, l.line, l.column)
		}
	case '/':
		tok = newToken(token.SLASH, l.ch, l.line, l.column)
	case '%':
		if l.peekChar() == '{' {
			l.readChar()
			tok = l.twoCharToken(token.MAP_OPEN, "%{")
		} else {
			tok = newToken(token.PERCENT, l.ch, l.line, l.column)
		}
	case '#':
		if l.peekChar() == '{' {
			l.readChar()
			tok = l.twoCharToken(token.SET_OPEN, "#{")
		} else {
			tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.twoCharToken(token.NOT_EQ, "!=")
		} else {
			tok = newToken(token.BANG, l.ch, l.line, l.column)
		}
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = l.twoCharToken(token.LT_EQ, "<=")
		case '-':
			l.readChar()
			tok = l.twoCharToken(token.LARROW, "<-")
		case '<':
			l.readChar()
			tok = l.twoCharToken(token.LSHIFT, "<<")
		default:
			tok = newToken(token.LT, l.ch, l.line, l.column)
		}
	case '>':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = l.twoCharToken(token.GT_EQ, ">=")
		case '>':
			l.readChar()
			tok = l.twoCharToken(token.RSHIFT, ">>")
		default:
			tok = newToken(token.GT, l.ch, l.line, l.column)
		}
	case '|':
		if l.peekChar() == '>' {
			l.readChar()
			tok = l.twoCharToken(token.PIPE_GT, "|>")
		} else {
			tok = newToken(token.BAR, l.ch, l.line, l.column)
		}
	case '&':
		tok = newToken(token.AMP, l.ch, l.line, l.column)
	case '^':
		tok = newToken(token.CARET, l.ch, l.line, l.column)
	case ',':
		tok = newToken(token.COMMA, l.ch, l.line, l.column)
	case ':':
		tok = newToken(token.COLON, l.ch, l.line, l.column)
	case '.':
		tok = newToken(token.DOT, l.ch, l.line, l.column)
	case '\\':
		tok = newToken(token.BACKSLASH, l.ch, l.line, l.column)
	case '(':
		tok = newToken(token.LPAREN, l.ch, l.line, l.column)
	case ')':
		tok = newToken(token.RPAREN, l.ch, l.line, l.column)
	case '[':
		tok = newToken(token.LBRACKET, l.ch, l.line, l.column)
	case ']':
		tok = newToken(token.RBRACKET, l.ch, l.line, l.column)
	case '{':
		tok = newToken(token.LBRACE, l.ch, l.line, l.column)
	case '}':
		tok = newToken(token.RBRACE, l.ch, l.line, l.column)
	case '"':
		return l.readStringToken()
	case 0:
		tok = token.Token{Type: token.EOF, Lexeme: "", Literal: "", Line: l.line, Column: l.column}
	default:
		if isIdentStart(l.ch) {
			ident := l.readIdentifier()
			tt := token.LookupIdent(ident)
			return token.Token{Type: tt, Lexeme: ident, Literal: ident, Line: l.line, Column: l.column}
		}
		if unicode.IsDigit(l.ch) {
			return l.readNumber()
		}
		tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
	}

	l.readChar()
	return tok
}

// readStringToken reads a double-quoted string, resolving escape
// sequences. If the content carries ${...} interpolations the token
// type is INTERP_STRING and the literal keeps them verbatim for the
// parser to split.
func (l *Lexer) readStringToken() token.Token {
	line, column := l.line, l.column
	var sb strings.Builder
	hasInterp := false
	depth := 0 // brace depth inside ${...}

	for {
		l.readChar()
		if l.ch == 0 {
			return token.Token{Type: token.ILLEGAL, Lexeme: sb.String(), Literal: sb.String(), Line: line, Column: column}
		}
		if depth == 0 && l.ch == '"' {
			break
		}
		if depth == 0 && l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				sb.WriteRune(l.ch)
			}
			continue
		}
		if l.ch == '$' && l.peekChar() == '{' {
			hasInterp = true
			depth++
			sb.WriteRune(l.ch)
			l.readChar()
			sb.WriteRune(l.ch)
			continue
		}
		if depth > 0 {
			if l.ch == '{' {
				depth++
			} else if l.ch == '}' {
				depth--
			}
		}
		sb.WriteRune(l.ch)
	}
	l.readChar() // consume closing quote

	content := sb.String()
	tt := token.TokenType(token.STRING)
	if hasInterp {
		tt = token.INTERP_STRING
	}
	return token.Token{Type: tt, Lexeme: content, Literal: content, Line: line, Column: column}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isIdentStart(l.ch) || unicode.IsDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() token.Token {
	line, column := l.line, l.column
	position := l.position
	isFloat := false
	for unicode.IsDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	// Fractional part: a dot followed by a digit (a bare dot is member
	// access on an integer, which the grammar does not produce, so a
	// digit check is enough).
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for unicode.IsDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}
	lexeme := l.input[position:l.position]
	clean := strings.ReplaceAll(lexeme, "_", "")
	if isFloat {
		value, _ := strconv.ParseFloat(clean, 64)
		return token.Token{Type: token.FLOAT, Lexeme: lexeme, Literal: value, Line: line, Column: column}
	}
	value, _ := strconv.ParseInt(clean, 10, 64)
	return token.Token{Type: token.INT, Lexeme: lexeme, Literal: value, Line: line, Column: column}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func newToken(tokenType token.TokenType, ch rune, line, column int) token.Token {
	return token.Token{Type: tokenType, Lexeme: string(ch), Literal: string(ch), Line: line, Column: column}
}

func (l *Lexer) twoCharToken(tokenType token.TokenType, literal string) token.Token {
	return token.Token{Type: tokenType, Lexeme: literal, Literal: literal, Line: l.line, Column: l.column}
}
