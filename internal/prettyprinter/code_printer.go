package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/funpipe/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter). Mirrors the parser.
var operatorPrecedence = map[string]int{
	"|":  1,
	"==": 2,
	"!=": 2,
	"<":  3,
	">":  3,
	"<=": 3,
	">=": 3,
	"|>": 4,
	">>": 4,
	"<<": 4,
	"&":  5,
	"^":  5,
	"+":  6,
	"-":  6,
	"++": 6,
	"*":  7,
	"/":  7,
	"%":  7,
	"**": 8, // right-assoc
}

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 9 // Default high precedence for unknown ops
}

// Right-associative operators
var rightAssoc = map[string]bool{
	"**": true,
}

const (
	precLowest = 0
	precCall   = 10
)

type CodePrinter struct {
	buf bytes.Buffer
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Sprint renders an expression as source code.
func Sprint(expr ast.Expression) string {
	p := NewCodePrinter()
	p.PrintExpression(expr)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) PrintExpression(expr ast.Expression) {
	p.printExpr(expr, precLowest, false)
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

// printExpr prints an expression, adding parentheses only if needed.
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		p.write(e.Value)
	case *ast.IntegerLiteral:
		p.write(strconv.FormatInt(e.Value, 10))
	case *ast.FloatLiteral:
		p.write(formatFloat(e.Value))
	case *ast.BooleanLiteral:
		p.write(strconv.FormatBool(e.Value))
	case *ast.StringLiteral:
		p.write(quoteString(e.Value))
	case *ast.InterpolatedString:
		p.printInterpolatedString(e)
	case *ast.PrefixExpression:
		p.write(e.Operator)
		p.printExpr(e.Right, precCall, false)
	case *ast.InfixExpression:
		prec := getPrecedence(e.Operator)
		needParens := prec < parentPrec
		// For same precedence, check associativity
		if prec == parentPrec {
			if isRight && !rightAssoc[e.Operator] {
				needParens = true
			} else if !isRight && rightAssoc[e.Operator] {
				needParens = true
			}
		}
		if needParens {
			p.write("(")
		}
		p.printExpr(e.Left, prec, false)
		p.write(" " + e.Operator + " ")
		p.printExpr(e.Right, prec, true)
		if needParens {
			p.write(")")
		}
	case *ast.MemberExpression:
		p.printExpr(e.Left, precCall, false)
		p.write(".")
		p.write(e.Member.Value)
	case *ast.CallExpression:
		p.printExpr(e.Function, precCall, false)
		p.write("(")
		for i, arg := range e.Arguments {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(arg, precLowest, false)
		}
		for i, kw := range e.Keywords {
			if i > 0 || len(e.Arguments) > 0 {
				p.write(", ")
			}
			p.write(kw.Name.Value + ": ")
			p.printExpr(kw.Value, precLowest, false)
		}
		p.write(")")
	case *ast.ListLiteral:
		p.printElements("[", "]", e.Elements)
	case *ast.TupleLiteral:
		p.printElements("(", ")", e.Elements)
	case *ast.SetLiteral:
		p.printElements("#{", "}", e.Elements)
	case *ast.MapLiteral:
		p.write("%{")
		for i, pair := range e.Pairs {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(pair.Key, precLowest, false)
			p.write(" => ")
			p.printExpr(pair.Value, precLowest, false)
		}
		p.write("}")
	case *ast.ListComprehension:
		p.write("[")
		p.printExpr(e.Output, getPrecedence("|")+1, false)
		p.write(" | ")
		for i, clause := range e.Clauses {
			if i > 0 {
				p.write(", ")
			}
			switch c := clause.(type) {
			case *ast.CompGenerator:
				p.write(c.Name.Value + " <- ")
				p.printExpr(c.Iterable, getPrecedence("|")+1, false)
			case *ast.CompFilter:
				p.printExpr(c.Condition, getPrecedence("|")+1, false)
			}
		}
		p.write("]")
	case *ast.FunctionLiteral:
		// A lambda binds loosest, so any enclosing context needs parens.
		needParens := parentPrec > precLowest
		if needParens {
			p.write("(")
		}
		p.write("\\")
		for i, param := range e.Parameters {
			if i > 0 {
				p.write(", ")
			}
			p.write(param.Value)
		}
		p.write(" -> ")
		p.printExpr(e.Body, precLowest, false)
		if needParens {
			p.write(")")
		}
	default:
		p.write("<???>")
	}
}

func (p *CodePrinter) printElements(open, close string, elements []ast.Expression) {
	p.write(open)
	for i, el := range elements {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(el, getPrecedence("|")+1, false)
	}
	p.write(close)
}

func (p *CodePrinter) printInterpolatedString(e *ast.InterpolatedString) {
	p.write("\"")
	for _, part := range e.Parts {
		if sl, ok := part.(*ast.StringLiteral); ok {
			p.write(escapeString(sl.Value))
			continue
		}
		p.write("${")
		p.printExpr(part, precLowest, false)
		p.write("}")
	}
	p.write("\"")
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func escapeString(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "\"", "\\\"", "\n", "\\n", "\t", "\\t")
	return r.Replace(s)
}

func quoteString(s string) string {
	return "\"" + escapeString(s) + "\""
}
