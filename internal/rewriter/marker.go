package rewriter

import (
	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/token"
)

// Mark wraps a tree in the re-entry marker. The compile collaborator
// marks rewritten trees it stores, so that source regenerated from
// them can flow through the pass again without double application.
func Mark(expr ast.Expression) ast.Expression {
	tok := expr.GetToken()
	markTok := token.Token{Type: token.IDENT, Lexeme: markerName, Literal: markerName, Line: tok.Line, Column: tok.Column}
	return &ast.CallExpression{
		Token:     callToken(expr),
		Function:  &ast.Identifier{Token: markTok, Value: markerName},
		Arguments: []ast.Expression{expr},
	}
}

// IsMarked reports whether the tree root carries the re-entry marker.
func IsMarked(expr ast.Expression) bool {
	call, ok := expr.(*ast.CallExpression)
	if !ok || len(call.Arguments) != 1 {
		return false
	}
	ident, ok := call.Function.(*ast.Identifier)
	return ok && ident.Value == markerName
}

// StripMarkers removes every re-entry marker in the tree, returning a
// copy with each marker call replaced by its single argument.
func StripMarkers(expr ast.Expression) ast.Expression {
	if expr == nil {
		return nil
	}
	if IsMarked(expr) {
		return StripMarkers(expr.(*ast.CallExpression).Arguments[0])
	}
	switch e := expr.(type) {
	case *ast.MemberExpression:
		return &ast.MemberExpression{Token: e.Token, Left: StripMarkers(e.Left), Member: e.Member}
	case *ast.CallExpression:
		out := &ast.CallExpression{Token: e.Token, Function: StripMarkers(e.Function)}
		for _, arg := range e.Arguments {
			out.Arguments = append(out.Arguments, StripMarkers(arg))
		}
		for _, kw := range e.Keywords {
			out.Keywords = append(out.Keywords, &ast.KeywordArgument{Token: kw.Token, Name: kw.Name, Value: StripMarkers(kw.Value)})
		}
		return out
	case *ast.PrefixExpression:
		return &ast.PrefixExpression{Token: e.Token, Operator: e.Operator, Right: StripMarkers(e.Right)}
	case *ast.InfixExpression:
		return &ast.InfixExpression{Token: e.Token, Left: StripMarkers(e.Left), Operator: e.Operator, Right: StripMarkers(e.Right)}
	case *ast.ListLiteral:
		return &ast.ListLiteral{Token: e.Token, Elements: stripAll(e.Elements)}
	case *ast.TupleLiteral:
		return &ast.TupleLiteral{Token: e.Token, Elements: stripAll(e.Elements)}
	case *ast.SetLiteral:
		return &ast.SetLiteral{Token: e.Token, Elements: stripAll(e.Elements)}
	case *ast.MapLiteral:
		out := &ast.MapLiteral{Token: e.Token}
		for _, pair := range e.Pairs {
			out.Pairs = append(out.Pairs, ast.MapPair{Key: StripMarkers(pair.Key), Value: StripMarkers(pair.Value)})
		}
		return out
	case *ast.ListComprehension:
		out := &ast.ListComprehension{Token: e.Token, Output: StripMarkers(e.Output)}
		for _, clause := range e.Clauses {
			switch c := clause.(type) {
			case *ast.CompGenerator:
				out.Clauses = append(out.Clauses, &ast.CompGenerator{Token: c.Token, Name: c.Name, Iterable: StripMarkers(c.Iterable)})
			case *ast.CompFilter:
				out.Clauses = append(out.Clauses, &ast.CompFilter{Token: c.Token, Condition: StripMarkers(c.Condition)})
			}
		}
		return out
	case *ast.InterpolatedString:
		return &ast.InterpolatedString{Token: e.Token, Parts: stripAll(e.Parts)}
	case *ast.FunctionLiteral:
		return &ast.FunctionLiteral{Token: e.Token, Parameters: e.Parameters, Body: StripMarkers(e.Body)}
	default:
		return expr
	}
}

func stripAll(exprs []ast.Expression) []ast.Expression {
	if exprs == nil {
		return nil
	}
	out := make([]ast.Expression, len(exprs))
	for i, e := range exprs {
		out[i] = StripMarkers(e)
	}
	return out
}
