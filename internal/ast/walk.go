package ast

// Inspect traverses the tree in depth-first order, calling f for every
// expression node. If f returns false for a node, its children are not
// visited.
func Inspect(expr Expression, f func(Expression) bool) {
	if expr == nil || !f(expr) {
		return
	}
	switch e := expr.(type) {
	case *MemberExpression:
		// The member is a name, not a reference in scope; only the
		// receiver is traversed.
		Inspect(e.Left, f)
	case *CallExpression:
		Inspect(e.Function, f)
		for _, arg := range e.Arguments {
			Inspect(arg, f)
		}
		for _, kw := range e.Keywords {
			Inspect(kw.Value, f)
		}
	case *PrefixExpression:
		Inspect(e.Right, f)
	case *InfixExpression:
		Inspect(e.Left, f)
		Inspect(e.Right, f)
	case *ListLiteral:
		for _, el := range e.Elements {
			Inspect(el, f)
		}
	case *TupleLiteral:
		for _, el := range e.Elements {
			Inspect(el, f)
		}
	case *SetLiteral:
		for _, el := range e.Elements {
			Inspect(el, f)
		}
	case *MapLiteral:
		for _, pair := range e.Pairs {
			Inspect(pair.Key, f)
			Inspect(pair.Value, f)
		}
	case *ListComprehension:
		Inspect(e.Output, f)
		for _, clause := range e.Clauses {
			switch c := clause.(type) {
			case *CompGenerator:
				Inspect(c.Iterable, f)
			case *CompFilter:
				Inspect(c.Condition, f)
			}
		}
	case *InterpolatedString:
		for _, part := range e.Parts {
			Inspect(part, f)
		}
	case *FunctionLiteral:
		Inspect(e.Body, f)
	}
}

// ContainsIdentifier reports whether the tree contains an Identifier
// node with the given name, at any depth.
func ContainsIdentifier(expr Expression, name string) bool {
	found := false
	Inspect(expr, func(e Expression) bool {
		if found {
			return false
		}
		if ident, ok := e.(*Identifier); ok && ident.Value == name {
			found = true
			return false
		}
		return true
	})
	return found
}
