package parser_test

import (
	"errors"
	"testing"

	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/lexer"
	"github.com/funvibe/funpipe/internal/parser"
	"github.com/funvibe/funpipe/internal/pipeline"
	"github.com/funvibe/funpipe/internal/prettyprinter"
)

// parse is a test helper: lexes+parses input and fails on errors.
func parse(t *testing.T, input string) ast.Expression {
	t.Helper()
	ctx := pipeline.NewContext(input)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if len(ctx.Errors) > 0 {
		for _, e := range ctx.Errors {
			t.Errorf("parse error: %s", e)
		}
		t.FailNow()
	}
	return ctx.AstRoot
}

// parseErr expects the parse to fail and returns the first error.
func parseErr(t *testing.T, input string) *diagnostics.Error {
	t.Helper()
	ctx := pipeline.NewContext(input)
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	if len(ctx.Errors) == 0 {
		t.Fatalf("expected a parse error for %q", input)
	}
	return ctx.Errors[0]
}

// ---------- precedence ----------

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a + b * c", "a + b * c"},
		{"(a + b) * c", "(a + b) * c"},
		{"a |> b + c", "a |> b + c"},       // + binds tighter than |>
		{"a + b |> c", "a + b |> c"},       // parses as (a + b) |> c
		{"a == b + c", "a == b + c"},       // + tighter than ==
		{"a | b == c", "a | b == c"},       // == tighter than |
		{"2 ** 3 ** 2", "2 ** 3 ** 2"},       // right-assoc
		{"(2 ** 3) ** 2", "(2 ** 3) ** 2"},   // left grouping preserved
		{"a - b - c", "a - b - c"},           // left-assoc
		{"a - (b - c)", "a - (b - c)"},       // right grouping preserved
		{"-a * b", "-a * b"},
		{"!f(x)", "!f(x)"},
		{"a |> b |> c", "a |> b |> c"},
		{"a.b.c(x).d", "a.b.c(x).d"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := prettyprinter.Sprint(parse(t, tt.input))
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_PipeBindsBelowArithmetic(t *testing.T) {
	expr := parse(t, "a |> _ + 3")
	infix, ok := expr.(*ast.InfixExpression)
	if !ok || infix.Operator != "|>" {
		t.Fatalf("expected |> at the root, got %T", expr)
	}
	right, ok := infix.Right.(*ast.InfixExpression)
	if !ok || right.Operator != "+" {
		t.Fatalf("expected + as the right operand, got %T", infix.Right)
	}
}

func TestParse_PipeChainsLeft(t *testing.T) {
	expr := parse(t, "a |> b |> c")
	outer, ok := expr.(*ast.InfixExpression)
	if !ok || outer.Operator != "|>" {
		t.Fatalf("expected |> at the root, got %T", expr)
	}
	inner, ok := outer.Left.(*ast.InfixExpression)
	if !ok || inner.Operator != "|>" {
		t.Fatalf("expected nested |> on the left, got %T", outer.Left)
	}
}

// ---------- literals ----------

func TestParse_Literals(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"1_000_000", "1000000"},
		{"3.14", "3.14"},
		{"true", "true"},
		{"false", "false"},
		{"\"hello\\nworld\"", "\"hello\\nworld\""},
		{"[]", "[]"},
		{"[1, 2, 3]", "[1, 2, 3]"},
		{"[1, 2, 3,]", "[1, 2, 3]"}, // trailing comma
		{"()", "()"},
		{"(1, 2)", "(1, 2)"},
		{"#{1, 2}", "#{1, 2}"},
		{"%{\"k\" => 1, x => y}", "%{\"k\" => 1, x => y}"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := prettyprinter.Sprint(parse(t, tt.input))
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_GroupedIsNotTuple(t *testing.T) {
	expr := parse(t, "(a + b)")
	if _, ok := expr.(*ast.TupleLiteral); ok {
		t.Fatal("grouped expression parsed as a tuple")
	}
	if _, ok := parse(t, "(a,)").(*ast.TupleLiteral); !ok {
		t.Fatal("single-element tuple with trailing comma not recognized")
	}
}

// ---------- calls ----------

func TestParse_CallArguments(t *testing.T) {
	expr := parse(t, "f(1, x, limit: 10, mode: \"fast\")")
	call, ok := expr.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected a call, got %T", expr)
	}
	if len(call.Arguments) != 2 {
		t.Errorf("expected 2 positional args, got %d", len(call.Arguments))
	}
	if len(call.Keywords) != 2 {
		t.Fatalf("expected 2 keyword args, got %d", len(call.Keywords))
	}
	if call.Keywords[0].Name.Value != "limit" || call.Keywords[1].Name.Value != "mode" {
		t.Errorf("keyword names wrong: %s, %s", call.Keywords[0].Name.Value, call.Keywords[1].Name.Value)
	}
}

func TestParse_PositionalAfterKeyword(t *testing.T) {
	err := parseErr(t, "f(limit: 10, 2)")
	if !errors.Is(err, diagnostics.Sentinel(diagnostics.ErrP001)) {
		t.Errorf("expected P001, got %v", err)
	}
}

// ---------- lambdas ----------

func TestParse_Lambda(t *testing.T) {
	expr := parse(t, "\\x, y -> x + y")
	fl, ok := expr.(*ast.FunctionLiteral)
	if !ok {
		t.Fatalf("expected a function literal, got %T", expr)
	}
	if len(fl.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fl.Parameters))
	}
	if fl.Parameters[0].Value != "x" || fl.Parameters[1].Value != "y" {
		t.Errorf("parameters wrong: %s, %s", fl.Parameters[0].Value, fl.Parameters[1].Value)
	}
}

func TestParse_LambdaBodyExtendsRight(t *testing.T) {
	got := prettyprinter.Sprint(parse(t, "\\x -> x |> f |> g"))
	if got != "\\x -> x |> f |> g" {
		t.Errorf("got %q", got)
	}
}

// ---------- comprehensions ----------

func TestParse_Comprehension(t *testing.T) {
	expr := parse(t, "[x * 2 | x <- xs, x > 0, y <- ys]")
	lc, ok := expr.(*ast.ListComprehension)
	if !ok {
		t.Fatalf("expected a comprehension, got %T", expr)
	}
	if len(lc.Clauses) != 3 {
		t.Fatalf("expected 3 clauses, got %d", len(lc.Clauses))
	}
	if _, ok := lc.Clauses[0].(*ast.CompGenerator); !ok {
		t.Errorf("clause 0: expected a generator, got %T", lc.Clauses[0])
	}
	if _, ok := lc.Clauses[1].(*ast.CompFilter); !ok {
		t.Errorf("clause 1: expected a filter, got %T", lc.Clauses[1])
	}
	if _, ok := lc.Clauses[2].(*ast.CompGenerator); !ok {
		t.Errorf("clause 2: expected a generator, got %T", lc.Clauses[2])
	}
}

func TestParse_ComprehensionVsList(t *testing.T) {
	if _, ok := parse(t, "[a == b]").(*ast.ListLiteral); !ok {
		t.Error("[a == b] should be a list literal")
	}
	if _, ok := parse(t, "[a | a <- xs]").(*ast.ListComprehension); !ok {
		t.Error("[a | a <- xs] should be a comprehension")
	}
}

// ---------- interpolated strings ----------

func TestParse_InterpolatedString(t *testing.T) {
	expr := parse(t, "\"v=${x + 1} end\"")
	is, ok := expr.(*ast.InterpolatedString)
	if !ok {
		t.Fatalf("expected an interpolated string, got %T", expr)
	}
	if len(is.Parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(is.Parts))
	}
	if _, ok := is.Parts[0].(*ast.StringLiteral); !ok {
		t.Errorf("part 0: expected a string literal, got %T", is.Parts[0])
	}
	if _, ok := is.Parts[1].(*ast.InfixExpression); !ok {
		t.Errorf("part 1: expected an infix expression, got %T", is.Parts[1])
	}
}

func TestParse_PlainStringStaysPlain(t *testing.T) {
	if _, ok := parse(t, "\"just text\"").(*ast.StringLiteral); !ok {
		t.Error("plain string parsed as something else")
	}
}

// ---------- errors ----------

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input string
		code  string
	}{
		{"a +", diagnostics.ErrP002},
		{"(a", diagnostics.ErrP001},
		{"a b", diagnostics.ErrP001},
		{"[1, 2", diagnostics.ErrP001},
		{"\\ -> x", diagnostics.ErrP001},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := parseErr(t, tt.input)
			if !errors.Is(err, diagnostics.Sentinel(tt.code)) {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestParse_ErrorsCarryPosition(t *testing.T) {
	err := parseErr(t, "a +")
	if err.Line != 1 {
		t.Errorf("expected line 1, got %d", err.Line)
	}
}
