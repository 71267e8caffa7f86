// Package diagnostics provides positioned, coded errors shared by the
// lexer, parser, rewriter, and compile entry points.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/funpipe/internal/token"
)

// Error codes. The letter names the producing stage: L lexer, P parser,
// C configuration, R rewriter, E evaluation.
const (
	ErrL001 = "L001" // illegal character
	ErrL002 = "L002" // unterminated string

	ErrP001 = "P001" // unexpected token
	ErrP002 = "P002" // no prefix parse rule
	ErrP003 = "P003" // recursion depth exceeded

	ErrC001 = "C001" // placeholder and lambda var collide
	ErrC002 = "C002" // operator is not a recognized binary operator

	ErrR001 = "R001" // ambiguous rewrite: placeholder missing

	ErrE001 = "E001" // evaluation failure
)

type Error struct {
	Code    string
	File    string
	Line    int
	Column  int
	Message string
}

func NewError(code string, tok token.Token, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Line:    tok.Line,
		Column:  tok.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	loc := fmt.Sprintf("%d:%d", e.Line, e.Column)
	if e.File != "" {
		loc = e.File + ":" + loc
	}
	return fmt.Sprintf("%s: [%s] %s", loc, e.Code, e.Message)
}

// Is makes errors.Is work against bare code-only sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

// Code-only sentinel for use with errors.Is.
func Sentinel(code string) *Error {
	return &Error{Code: code}
}
