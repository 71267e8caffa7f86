package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/funpipe/internal/ast"
)

type ObjectType string

const (
	INTEGER_OBJ  = "INTEGER"
	FLOAT_OBJ    = "FLOAT"
	STRING_OBJ   = "STRING"
	BOOLEAN_OBJ  = "BOOLEAN"
	NIL_OBJ      = "NIL"
	LIST_OBJ     = "LIST"
	TUPLE_OBJ    = "TUPLE"
	SET_OBJ      = "SET"
	MAP_OBJ      = "MAP"
	RECORD_OBJ   = "RECORD"
	FUNCTION_OBJ = "FUNCTION"
	BUILTIN_OBJ  = "BUILTIN"
	ERROR_OBJ    = "ERROR"
)

type Object interface {
	Type() ObjectType
	Inspect() string
}

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }

type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string  { return strconv.FormatFloat(f.Value, 'g', -1, 64) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }

type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "nil" }

type List struct {
	Elements []Object
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string  { return inspectElements("[", "]", l.Elements) }

type Tuple struct {
	Elements []Object
}

func (t *Tuple) Type() ObjectType { return TUPLE_OBJ }
func (t *Tuple) Inspect() string  { return inspectElements("(", ")", t.Elements) }

// Set keeps insertion order; membership is by Inspect equality.
type Set struct {
	Elements []Object
}

func (s *Set) Type() ObjectType { return SET_OBJ }
func (s *Set) Inspect() string  { return inspectElements("#{", "}", s.Elements) }

func (s *Set) Contains(obj Object) bool {
	for _, el := range s.Elements {
		if el.Inspect() == obj.Inspect() && el.Type() == obj.Type() {
			return true
		}
	}
	return false
}

type MapPair struct {
	Key   Object
	Value Object
}

type Map struct {
	Pairs []MapPair
}

func (m *Map) Type() ObjectType { return MAP_OBJ }
func (m *Map) Inspect() string {
	var parts []string
	for _, pair := range m.Pairs {
		parts = append(parts, pair.Key.Inspect()+" => "+pair.Value.Inspect())
	}
	return "%{" + strings.Join(parts, ", ") + "}"
}

// Record is a bag of named fields; member access resolves against it.
// Function-valued fields act as methods.
type Record struct {
	Fields map[string]Object
}

func (r *Record) Type() ObjectType { return RECORD_OBJ }
func (r *Record) Inspect() string {
	var parts []string
	for name, value := range r.Fields {
		parts = append(parts, name+": "+value.Inspect())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Function is a user lambda closed over its defining environment.
type Function struct {
	Parameters []*ast.Identifier
	Body       ast.Expression
	Env        *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	var names []string
	for _, p := range f.Parameters {
		names = append(names, p.Value)
	}
	return "\\" + strings.Join(names, ", ") + " -> <body>"
}

type BuiltinFunction func(args ...Object) Object

type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin " + b.Name }

type Error struct {
	Message string
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "ERROR: " + e.Message }

func inspectElements(open, close string, elements []Object) string {
	var parts []string
	for _, el := range elements {
		parts = append(parts, el.Inspect())
	}
	return open + strings.Join(parts, ", ") + close
}

func newError(format string, a ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, a...)}
}

func isError(obj Object) bool {
	if obj != nil {
		return obj.Type() == ERROR_OBJ
	}
	return false
}
