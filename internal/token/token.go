package token

type TokenType string

// Token is the unit produced by the lexer. Literal carries the decoded
// value (string content, parsed number) while Lexeme is the raw text.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	IDENT  = "IDENT"
	INT    = "INT"
	FLOAT  = "FLOAT"
	STRING = "STRING"
	// INTERP_STRING is a string literal containing ${...} interpolations.
	// Literal holds the raw (unescaped) content; the parser splits it
	// into parts.
	INTERP_STRING = "INTERP_STRING"
	TRUE          = "TRUE"
	FALSE         = "FALSE"

	// Operators
	PIPE_GT  = "PIPE_GT"  // |>
	RSHIFT   = "RSHIFT"   // >>
	LSHIFT   = "LSHIFT"   // <<
	PLUS     = "PLUS"     // +
	MINUS    = "MINUS"    // -
	ASTERISK = "ASTERISK" // *
	SLASH    = "SLASH"    // /
	PERCENT  = "PERCENT"  // %
	POWER    = "POWER"    // **
	CONCAT   = "CONCAT"   // ++
	AMP      = "AMP"      // &
	BAR      = "BAR"      // |
	CARET    = "CARET"    // ^
	EQ       = "EQ"       // ==
	NOT_EQ   = "NOT_EQ"   // !=
	LT       = "LT"       // <
	GT       = "GT"       // >
	LT_EQ    = "LT_EQ"    // <=
	GT_EQ    = "GT_EQ"    // >=
	BANG     = "BANG"     // !

	// Delimiters and structure
	COMMA     = "COMMA"
	COLON     = "COLON"
	DOT       = "DOT"
	ARROW     = "ARROW"     // ->
	LARROW    = "LARROW"    // <-
	BACKSLASH = "BACKSLASH" // \ (lambda head)
	LPAREN    = "LPAREN"
	RPAREN    = "RPAREN"
	LBRACKET  = "LBRACKET"
	RBRACKET  = "RBRACKET"
	LBRACE    = "LBRACE"
	RBRACE    = "RBRACE"
	MAP_OPEN  = "MAP_OPEN" // %{
	SET_OPEN  = "SET_OPEN" // #{
	FAT_ARROW = "FAT_ARROW" // =>
)

var keywords = map[string]TokenType{
	"true":  TRUE,
	"false": FALSE,
}

// LookupIdent maps keywords to their token type, everything else is IDENT.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// binaryOperators is the closed enumeration of binary operator tokens
// that may be configured as the pipe token. Anything outside this set
// is rejected at configuration time.
var binaryOperators = map[string]TokenType{
	"|>": PIPE_GT,
	">>": RSHIFT,
	"<<": LSHIFT,
	"+":  PLUS,
	"-":  MINUS,
	"*":  ASTERISK,
	"/":  SLASH,
	"%":  PERCENT,
	"**": POWER,
	"++": CONCAT,
	"&":  AMP,
	"|":  BAR,
	"^":  CARET,
	"==": EQ,
	"!=": NOT_EQ,
	"<":  LT,
	">":  GT,
	"<=": LT_EQ,
	">=": GT_EQ,
}

// LookupBinaryOperator reports whether lexeme names a recognized binary
// operator and returns its token type.
func LookupBinaryOperator(lexeme string) (TokenType, bool) {
	tt, ok := binaryOperators[lexeme]
	return tt, ok
}
