package rewriter

import (
	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/token"
)

// Rewriter is the recursive dispatcher. It walks a tree top-down,
// recognizes infix nodes using the configured pipe operator, and
// replaces each one according to the rule matching its right operand.
// A Rewriter holds no state besides its configuration; concurrent
// rewrites of independent trees are safe.
type Rewriter struct {
	cfg *Config
}

func New(cfg *Config) (*Rewriter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Rewriter{cfg: cfg}, nil
}

// Rewrite transforms the whole tree. Any re-entry markers left by a
// previous pass are stripped first, so an already-rewritten-and-marked
// tree comes out structurally identical to a single rewrite of the
// original. The input tree is never mutated.
func (r *Rewriter) Rewrite(expr ast.Expression) (ast.Expression, error) {
	return r.rewriteExpr(StripMarkers(expr))
}

func (r *Rewriter) rewriteExpr(expr ast.Expression) (ast.Expression, error) {
	switch e := expr.(type) {
	case nil:
		return nil, nil
	case *ast.InfixExpression:
		if e.Operator == r.cfg.Operator {
			return r.rewritePipe(e)
		}
		left, err := r.rewriteExpr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.rewriteExpr(e.Right)
		if err != nil {
			return nil, err
		}
		return &ast.InfixExpression{Token: e.Token, Left: left, Operator: e.Operator, Right: right}, nil
	case *ast.PrefixExpression:
		right, err := r.rewriteExpr(e.Right)
		if err != nil {
			return nil, err
		}
		return &ast.PrefixExpression{Token: e.Token, Operator: e.Operator, Right: right}, nil
	case *ast.MemberExpression:
		left, err := r.rewriteExpr(e.Left)
		if err != nil {
			return nil, err
		}
		return &ast.MemberExpression{Token: e.Token, Left: left, Member: e.Member}, nil
	case *ast.CallExpression:
		fn, err := r.rewriteExpr(e.Function)
		if err != nil {
			return nil, err
		}
		out := &ast.CallExpression{Token: e.Token, Function: fn}
		for _, arg := range e.Arguments {
			rewritten, err := r.rewriteExpr(arg)
			if err != nil {
				return nil, err
			}
			out.Arguments = append(out.Arguments, rewritten)
		}
		for _, kw := range e.Keywords {
			value, err := r.rewriteExpr(kw.Value)
			if err != nil {
				return nil, err
			}
			out.Keywords = append(out.Keywords, &ast.KeywordArgument{Token: kw.Token, Name: kw.Name, Value: value})
		}
		return out, nil
	case *ast.ListLiteral:
		elements, err := r.rewriteAll(e.Elements)
		if err != nil {
			return nil, err
		}
		return &ast.ListLiteral{Token: e.Token, Elements: elements}, nil
	case *ast.TupleLiteral:
		elements, err := r.rewriteAll(e.Elements)
		if err != nil {
			return nil, err
		}
		return &ast.TupleLiteral{Token: e.Token, Elements: elements}, nil
	case *ast.SetLiteral:
		elements, err := r.rewriteAll(e.Elements)
		if err != nil {
			return nil, err
		}
		return &ast.SetLiteral{Token: e.Token, Elements: elements}, nil
	case *ast.MapLiteral:
		out := &ast.MapLiteral{Token: e.Token}
		for _, pair := range e.Pairs {
			key, err := r.rewriteExpr(pair.Key)
			if err != nil {
				return nil, err
			}
			value, err := r.rewriteExpr(pair.Value)
			if err != nil {
				return nil, err
			}
			out.Pairs = append(out.Pairs, ast.MapPair{Key: key, Value: value})
		}
		return out, nil
	case *ast.ListComprehension:
		output, err := r.rewriteExpr(e.Output)
		if err != nil {
			return nil, err
		}
		out := &ast.ListComprehension{Token: e.Token, Output: output}
		for _, clause := range e.Clauses {
			switch c := clause.(type) {
			case *ast.CompGenerator:
				iterable, err := r.rewriteExpr(c.Iterable)
				if err != nil {
					return nil, err
				}
				out.Clauses = append(out.Clauses, &ast.CompGenerator{Token: c.Token, Name: c.Name, Iterable: iterable})
			case *ast.CompFilter:
				cond, err := r.rewriteExpr(c.Condition)
				if err != nil {
					return nil, err
				}
				out.Clauses = append(out.Clauses, &ast.CompFilter{Token: c.Token, Condition: cond})
			}
		}
		return out, nil
	case *ast.InterpolatedString:
		parts, err := r.rewriteAll(e.Parts)
		if err != nil {
			return nil, err
		}
		return &ast.InterpolatedString{Token: e.Token, Parts: parts}, nil
	case *ast.FunctionLiteral:
		body, err := r.rewriteExpr(e.Body)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionLiteral{Token: e.Token, Parameters: e.Parameters, Body: body}, nil
	default:
		return expr, nil
	}
}

func (r *Rewriter) rewriteAll(exprs []ast.Expression) ([]ast.Expression, error) {
	if exprs == nil {
		return nil, nil
	}
	out := make([]ast.Expression, len(exprs))
	for i, e := range exprs {
		rewritten, err := r.rewriteExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = rewritten
	}
	return out, nil
}

// rewritePipe dispatches one pipe node to the first matching rule and
// re-visits the result so chained pipes cascade.
func (r *Rewriter) rewritePipe(node *ast.InfixExpression) (ast.Expression, error) {
	ph := r.cfg.Placeholder

	var out ast.Expression

	switch right := node.Right.(type) {
	case *ast.MemberExpression:
		// Property access: a |> _.property  ->  a.property
		if base, ok := right.Left.(*ast.Identifier); ok && base.Value == ph {
			out = &ast.MemberExpression{Token: right.Token, Left: node.Left, Member: right.Member}
			break
		}
		// A member expression not rooted at the placeholder names a
		// callable: a |> m.f  ->  m.f(a)
		out = r.nameToCall(node.Left, right)
	case *ast.CallExpression:
		// Method call: a |> _.method(...)  ->  a.method(...)
		if member, ok := right.Function.(*ast.MemberExpression); ok {
			if base, ok := member.Left.(*ast.Identifier); ok && base.Value == ph {
				out = &ast.CallExpression{
					Token:     right.Token,
					Function:  &ast.MemberExpression{Token: member.Token, Left: node.Left, Member: member.Member},
					Arguments: right.Arguments,
					Keywords:  right.Keywords,
				}
				break
			}
		}
		// Ordinary call: a |> f(...)  ->  f(a, ...) or f(..., a)
		out = r.insertIntoCall(node.Left, right)
	case *ast.InfixExpression:
		// A parenthesized pipe chain is a callable value, not an
		// operation to wrap: a |> (b |> c)  ->  (b |> c)(a)
		if right.Operator == r.cfg.Operator {
			out = r.nameToCall(node.Left, right)
			break
		}
		rewritten, err := r.operationToLambdaCall(node.Left, right)
		if err != nil {
			return nil, err
		}
		out = rewritten
	case *ast.ListLiteral, *ast.TupleLiteral, *ast.SetLiteral, *ast.MapLiteral, *ast.ListComprehension, *ast.InterpolatedString:
		rewritten, err := r.operationToLambdaCall(node.Left, node.Right)
		if err != nil {
			return nil, err
		}
		out = rewritten
	default:
		// Bare callable or lambda: a |> b  ->  b(a)
		out = r.nameToCall(node.Left, node.Right)
	}

	// Re-visit the fresh node so further chaining embedded in its
	// structure (usually inside the carried left operand) resolves too.
	out, err := r.rewriteExpr(out)
	if err != nil {
		return nil, err
	}

	if r.cfg.Debug {
		out = r.wrapDebug(out)
	}
	return out, nil
}

// operationToLambdaCall rewrites operations like `_ + 3` as
// `(\Z -> Z + 3)(a)`. A right operand of this shape that never
// references the placeholder is ambiguous: there is nowhere to thread
// the piped value.
func (r *Rewriter) operationToLambdaCall(left, right ast.Expression) (ast.Expression, error) {
	if !ast.ContainsIdentifier(right, r.cfg.Placeholder) {
		return nil, diagnostics.NewError(diagnostics.ErrR001, right.GetToken(),
			"%s operand requires the %q placeholder at least once", nodeKindName(right), r.cfg.Placeholder)
	}
	return &ast.CallExpression{
		Token:     callToken(right),
		Function:  toLambda(right, r.cfg),
		Arguments: []ast.Expression{left},
	}, nil
}

// nameToCall rewrites `a |> b` as `b(a)`.
func (r *Rewriter) nameToCall(left, right ast.Expression) ast.Expression {
	return &ast.CallExpression{
		Token:     callToken(right),
		Function:  right,
		Arguments: []ast.Expression{left},
	}
}

// insertIntoCall rewrites `a |> f(...)` as `f(a, ...)`, or `f(..., a)`
// for a back-inserting configuration. The original call node is left
// untouched.
func (r *Rewriter) insertIntoCall(left ast.Expression, call *ast.CallExpression) ast.Expression {
	args := make([]ast.Expression, 0, len(call.Arguments)+1)
	if r.cfg.Insert == InsertFront {
		args = append(args, left)
		args = append(args, call.Arguments...)
	} else {
		args = append(args, call.Arguments...)
		args = append(args, left)
	}
	return &ast.CallExpression{Token: call.Token, Function: call.Function, Arguments: args, Keywords: call.Keywords}
}

// wrapDebug wraps a rewritten pipe stage in a tap call that reports
// the stage value and returns it unchanged.
func (r *Rewriter) wrapDebug(expr ast.Expression) ast.Expression {
	tok := expr.GetToken()
	tapTok := token.Token{Type: token.IDENT, Lexeme: TapName, Literal: TapName, Line: tok.Line, Column: tok.Column}
	return &ast.CallExpression{
		Token:     callToken(expr),
		Function:  &ast.Identifier{Token: tapTok, Value: TapName},
		Arguments: []ast.Expression{expr},
	}
}

func callToken(at ast.Expression) token.Token {
	tok := at.GetToken()
	return token.Token{Type: token.LPAREN, Lexeme: "(", Literal: "(", Line: tok.Line, Column: tok.Column}
}

func nodeKindName(expr ast.Expression) string {
	switch expr.(type) {
	case *ast.InfixExpression:
		return "binary operation"
	case *ast.ListLiteral:
		return "list literal"
	case *ast.TupleLiteral:
		return "tuple literal"
	case *ast.SetLiteral:
		return "set literal"
	case *ast.MapLiteral:
		return "map literal"
	case *ast.ListComprehension:
		return "comprehension"
	case *ast.InterpolatedString:
		return "interpolated string"
	default:
		return "expression"
	}
}
