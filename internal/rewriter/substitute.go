package rewriter

import (
	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/token"
)

// Substitute returns a copy of the tree in which every Identifier node
// named target is replaced by an Identifier named replacement. The
// input tree is never mutated; unaffected leaves are reused as-is.
func Substitute(expr ast.Expression, target, replacement string) ast.Expression {
	switch e := expr.(type) {
	case nil:
		return nil
	case *ast.Identifier:
		if e.Value != target {
			return e
		}
		tok := token.Token{Type: token.IDENT, Lexeme: replacement, Literal: replacement, Line: e.Token.Line, Column: e.Token.Column}
		return &ast.Identifier{Token: tok, Value: replacement}
	case *ast.MemberExpression:
		// Member names are not identifiers in scope; only the receiver
		// is substituted.
		return &ast.MemberExpression{Token: e.Token, Left: Substitute(e.Left, target, replacement), Member: e.Member}
	case *ast.CallExpression:
		out := &ast.CallExpression{Token: e.Token, Function: Substitute(e.Function, target, replacement)}
		for _, arg := range e.Arguments {
			out.Arguments = append(out.Arguments, Substitute(arg, target, replacement))
		}
		for _, kw := range e.Keywords {
			out.Keywords = append(out.Keywords, &ast.KeywordArgument{
				Token: kw.Token,
				Name:  kw.Name,
				Value: Substitute(kw.Value, target, replacement),
			})
		}
		return out
	case *ast.PrefixExpression:
		return &ast.PrefixExpression{Token: e.Token, Operator: e.Operator, Right: Substitute(e.Right, target, replacement)}
	case *ast.InfixExpression:
		return &ast.InfixExpression{
			Token:    e.Token,
			Left:     Substitute(e.Left, target, replacement),
			Operator: e.Operator,
			Right:    Substitute(e.Right, target, replacement),
		}
	case *ast.ListLiteral:
		return &ast.ListLiteral{Token: e.Token, Elements: substituteAll(e.Elements, target, replacement)}
	case *ast.TupleLiteral:
		return &ast.TupleLiteral{Token: e.Token, Elements: substituteAll(e.Elements, target, replacement)}
	case *ast.SetLiteral:
		return &ast.SetLiteral{Token: e.Token, Elements: substituteAll(e.Elements, target, replacement)}
	case *ast.MapLiteral:
		out := &ast.MapLiteral{Token: e.Token}
		for _, pair := range e.Pairs {
			out.Pairs = append(out.Pairs, ast.MapPair{
				Key:   Substitute(pair.Key, target, replacement),
				Value: Substitute(pair.Value, target, replacement),
			})
		}
		return out
	case *ast.ListComprehension:
		out := &ast.ListComprehension{Token: e.Token, Output: Substitute(e.Output, target, replacement)}
		for _, clause := range e.Clauses {
			switch c := clause.(type) {
			case *ast.CompGenerator:
				out.Clauses = append(out.Clauses, &ast.CompGenerator{
					Token:    c.Token,
					Name:     c.Name,
					Iterable: Substitute(c.Iterable, target, replacement),
				})
			case *ast.CompFilter:
				out.Clauses = append(out.Clauses, &ast.CompFilter{
					Token:     c.Token,
					Condition: Substitute(c.Condition, target, replacement),
				})
			}
		}
		return out
	case *ast.InterpolatedString:
		return &ast.InterpolatedString{Token: e.Token, Parts: substituteAll(e.Parts, target, replacement)}
	case *ast.FunctionLiteral:
		return &ast.FunctionLiteral{
			Token:      e.Token,
			Parameters: e.Parameters,
			Body:       Substitute(e.Body, target, replacement),
		}
	default:
		// Leaf literals carry no identifiers.
		return expr
	}
}

func substituteAll(exprs []ast.Expression, target, replacement string) []ast.Expression {
	if exprs == nil {
		return nil
	}
	out := make([]ast.Expression, len(exprs))
	for i, e := range exprs {
		out[i] = Substitute(e, target, replacement)
	}
	return out
}
