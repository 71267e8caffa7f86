package evaluator

import (
	"math"

	"github.com/funvibe/funpipe/internal/ast"
)

// Evaluator is a tree-walk interpreter over the expression node model.
// It expects pipe operators to have been rewritten away already; a
// surviving pipe node is reported as an error rather than silently
// interpreted.
type Evaluator struct {
	// PipeOperator is the token reported when a pipe node survives
	// into evaluation. Informational only.
	PipeOperator string
}

func New() *Evaluator {
	return &Evaluator{PipeOperator: "|>"}
}

func (e *Evaluator) Eval(node ast.Expression, env *Environment) Object {
	switch node := node.(type) {
	case *ast.IntegerLiteral:
		return &Integer{Value: node.Value}
	case *ast.FloatLiteral:
		return &Float{Value: node.Value}
	case *ast.StringLiteral:
		return &String{Value: node.Value}
	case *ast.BooleanLiteral:
		return &Boolean{Value: node.Value}
	case *ast.Identifier:
		if obj, ok := env.Get(node.Value); ok {
			return obj
		}
		return newError("identifier not found: %s", node.Value)
	case *ast.InterpolatedString:
		return e.evalInterpolatedString(node, env)
	case *ast.PrefixExpression:
		return e.evalPrefixExpression(node, env)
	case *ast.InfixExpression:
		if node.Operator == e.PipeOperator {
			return newError("pipe operator %q survived into evaluation; rewrite the tree first", node.Operator)
		}
		left := e.Eval(node.Left, env)
		if isError(left) {
			return left
		}
		right := e.Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return e.evalInfixExpression(node.Operator, left, right)
	case *ast.MemberExpression:
		return e.evalMemberExpression(node, env)
	case *ast.CallExpression:
		return e.evalCallExpression(node, env)
	case *ast.ListLiteral:
		elements := e.evalExpressions(node.Elements, env)
		if len(elements) == 1 && isError(elements[0]) {
			return elements[0]
		}
		return &List{Elements: elements}
	case *ast.TupleLiteral:
		elements := e.evalExpressions(node.Elements, env)
		if len(elements) == 1 && isError(elements[0]) {
			return elements[0]
		}
		return &Tuple{Elements: elements}
	case *ast.SetLiteral:
		elements := e.evalExpressions(node.Elements, env)
		if len(elements) == 1 && isError(elements[0]) {
			return elements[0]
		}
		set := &Set{}
		for _, el := range elements {
			if !set.Contains(el) {
				set.Elements = append(set.Elements, el)
			}
		}
		return set
	case *ast.MapLiteral:
		return e.evalMapLiteral(node, env)
	case *ast.ListComprehension:
		return e.evalListComprehension(node, env)
	case *ast.FunctionLiteral:
		return &Function{Parameters: node.Parameters, Body: node.Body, Env: env}
	case nil:
		return newError("cannot evaluate nil expression")
	default:
		return newError("unknown expression type: %T", node)
	}
}

func (e *Evaluator) evalExpressions(exprs []ast.Expression, env *Environment) []Object {
	var result []Object
	for _, expr := range exprs {
		evaluated := e.Eval(expr, env)
		if isError(evaluated) {
			return []Object{evaluated}
		}
		result = append(result, evaluated)
	}
	return result
}

func (e *Evaluator) evalInterpolatedString(node *ast.InterpolatedString, env *Environment) Object {
	out := ""
	for _, part := range node.Parts {
		value := e.Eval(part, env)
		if isError(value) {
			return value
		}
		if s, ok := value.(*String); ok {
			out += s.Value
		} else {
			out += value.Inspect()
		}
	}
	return &String{Value: out}
}

func (e *Evaluator) evalPrefixExpression(node *ast.PrefixExpression, env *Environment) Object {
	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}
	switch node.Operator {
	case "-":
		switch value := right.(type) {
		case *Integer:
			return &Integer{Value: -value.Value}
		case *Float:
			return &Float{Value: -value.Value}
		}
		return newError("unknown operator: -%s", right.Type())
	case "!":
		if b, ok := right.(*Boolean); ok {
			return &Boolean{Value: !b.Value}
		}
		return newError("unknown operator: !%s", right.Type())
	}
	return newError("unknown prefix operator: %s", node.Operator)
}

func (e *Evaluator) evalInfixExpression(operator string, left, right Object) Object {
	switch {
	case left.Type() == INTEGER_OBJ && right.Type() == INTEGER_OBJ:
		return evalIntegerInfix(operator, left.(*Integer), right.(*Integer))
	case isNumeric(left) && isNumeric(right):
		return evalFloatInfix(operator, toFloat(left), toFloat(right))
	case left.Type() == STRING_OBJ && right.Type() == STRING_OBJ:
		return evalStringInfix(operator, left.(*String), right.(*String))
	case left.Type() == LIST_OBJ && right.Type() == LIST_OBJ && operator == "++":
		l, r := left.(*List), right.(*List)
		out := &List{Elements: append(append([]Object{}, l.Elements...), r.Elements...)}
		return out
	case operator == "==":
		return &Boolean{Value: objectsEqual(left, right)}
	case operator == "!=":
		return &Boolean{Value: !objectsEqual(left, right)}
	}
	return newError("unknown operator: %s %s %s", left.Type(), operator, right.Type())
}

func evalIntegerInfix(operator string, left, right *Integer) Object {
	switch operator {
	case "+":
		return &Integer{Value: left.Value + right.Value}
	case "-":
		return &Integer{Value: left.Value - right.Value}
	case "*":
		return &Integer{Value: left.Value * right.Value}
	case "/":
		if right.Value == 0 {
			return newError("division by zero")
		}
		return &Integer{Value: left.Value / right.Value}
	case "%":
		if right.Value == 0 {
			return newError("division by zero")
		}
		return &Integer{Value: left.Value % right.Value}
	case "**":
		return &Integer{Value: int64(math.Pow(float64(left.Value), float64(right.Value)))}
	case ">>":
		return &Integer{Value: left.Value >> uint(right.Value)}
	case "<<":
		return &Integer{Value: left.Value << uint(right.Value)}
	case "&":
		return &Integer{Value: left.Value & right.Value}
	case "|":
		return &Integer{Value: left.Value | right.Value}
	case "^":
		return &Integer{Value: left.Value ^ right.Value}
	case "<":
		return &Boolean{Value: left.Value < right.Value}
	case ">":
		return &Boolean{Value: left.Value > right.Value}
	case "<=":
		return &Boolean{Value: left.Value <= right.Value}
	case ">=":
		return &Boolean{Value: left.Value >= right.Value}
	case "==":
		return &Boolean{Value: left.Value == right.Value}
	case "!=":
		return &Boolean{Value: left.Value != right.Value}
	}
	return newError("unknown operator: INTEGER %s INTEGER", operator)
}

func evalFloatInfix(operator string, left, right float64) Object {
	switch operator {
	case "+":
		return &Float{Value: left + right}
	case "-":
		return &Float{Value: left - right}
	case "*":
		return &Float{Value: left * right}
	case "/":
		if right == 0 {
			return newError("division by zero")
		}
		return &Float{Value: left / right}
	case "**":
		return &Float{Value: math.Pow(left, right)}
	case "<":
		return &Boolean{Value: left < right}
	case ">":
		return &Boolean{Value: left > right}
	case "<=":
		return &Boolean{Value: left <= right}
	case ">=":
		return &Boolean{Value: left >= right}
	case "==":
		return &Boolean{Value: left == right}
	case "!=":
		return &Boolean{Value: left != right}
	}
	return newError("unknown operator: FLOAT %s FLOAT", operator)
}

func evalStringInfix(operator string, left, right *String) Object {
	switch operator {
	case "+", "++":
		return &String{Value: left.Value + right.Value}
	case "==":
		return &Boolean{Value: left.Value == right.Value}
	case "!=":
		return &Boolean{Value: left.Value != right.Value}
	case "<":
		return &Boolean{Value: left.Value < right.Value}
	case ">":
		return &Boolean{Value: left.Value > right.Value}
	}
	return newError("unknown operator: STRING %s STRING", operator)
}

func (e *Evaluator) evalMemberExpression(node *ast.MemberExpression, env *Environment) Object {
	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}
	record, ok := left.(*Record)
	if !ok {
		return newError("member access on %s (no field %q)", left.Type(), node.Member.Value)
	}
	field, ok := record.Fields[node.Member.Value]
	if !ok {
		return newError("unknown field %q", node.Member.Value)
	}
	return field
}

func (e *Evaluator) evalCallExpression(node *ast.CallExpression, env *Environment) Object {
	fn := e.Eval(node.Function, env)
	if isError(fn) {
		return fn
	}
	args := e.evalExpressions(node.Arguments, env)
	if len(args) == 1 && isError(args[0]) {
		return args[0]
	}

	// Keyword arguments bind to the remaining parameter names of a
	// user function; builtins take positional arguments only.
	if len(node.Keywords) > 0 {
		function, ok := fn.(*Function)
		if !ok {
			return newError("keyword arguments require a user function, got %s", fn.Type())
		}
		return e.applyWithKeywords(function, args, node, env)
	}

	return e.ApplyFunction(fn, args)
}

// ApplyFunction applies a function or builtin to already-evaluated
// arguments.
func (e *Evaluator) ApplyFunction(fn Object, args []Object) Object {
	switch fn := fn.(type) {
	case *Builtin:
		return fn.Fn(args...)
	case *Function:
		if len(args) != len(fn.Parameters) {
			return newError("wrong number of arguments: want %d, got %d", len(fn.Parameters), len(args))
		}
		inner := NewEnclosedEnvironment(fn.Env)
		for i, param := range fn.Parameters {
			inner.Set(param.Value, args[i])
		}
		return e.Eval(fn.Body, inner)
	}
	return newError("not a function: %s", fn.Type())
}

func (e *Evaluator) applyWithKeywords(fn *Function, args []Object, node *ast.CallExpression, env *Environment) Object {
	if len(args)+len(node.Keywords) != len(fn.Parameters) {
		return newError("wrong number of arguments: want %d, got %d", len(fn.Parameters), len(args)+len(node.Keywords))
	}
	inner := NewEnclosedEnvironment(fn.Env)
	for i, arg := range args {
		inner.Set(fn.Parameters[i].Value, arg)
	}
	names := make(map[string]bool)
	for _, param := range fn.Parameters[len(args):] {
		names[param.Value] = true
	}
	for _, kw := range node.Keywords {
		if !names[kw.Name.Value] {
			return newError("unexpected keyword argument %q", kw.Name.Value)
		}
		value := e.Eval(kw.Value, env)
		if isError(value) {
			return value
		}
		inner.Set(kw.Name.Value, value)
	}
	return e.Eval(fn.Body, inner)
}

func (e *Evaluator) evalMapLiteral(node *ast.MapLiteral, env *Environment) Object {
	out := &Map{}
	for _, pair := range node.Pairs {
		key := e.Eval(pair.Key, env)
		if isError(key) {
			return key
		}
		value := e.Eval(pair.Value, env)
		if isError(value) {
			return value
		}
		out.Pairs = append(out.Pairs, MapPair{Key: key, Value: value})
	}
	return out
}

// evalListComprehension expands generator clauses left to right, with
// filters pruning the current binding set.
func (e *Evaluator) evalListComprehension(node *ast.ListComprehension, env *Environment) Object {
	out := &List{}
	if err := e.runClauses(node.Clauses, node.Output, NewEnclosedEnvironment(env), out); err != nil {
		return err
	}
	return out
}

func (e *Evaluator) runClauses(clauses []ast.CompClause, output ast.Expression, env *Environment, out *List) Object {
	if len(clauses) == 0 {
		value := e.Eval(output, env)
		if isError(value) {
			return value
		}
		out.Elements = append(out.Elements, value)
		return nil
	}
	switch clause := clauses[0].(type) {
	case *ast.CompGenerator:
		iterable := e.Eval(clause.Iterable, env)
		if isError(iterable) {
			return iterable
		}
		elements, err := iterableElements(iterable)
		if err != nil {
			return err
		}
		for _, el := range elements {
			inner := NewEnclosedEnvironment(env)
			inner.Set(clause.Name.Value, el)
			if errObj := e.runClauses(clauses[1:], output, inner, out); errObj != nil {
				return errObj
			}
		}
		return nil
	case *ast.CompFilter:
		cond := e.Eval(clause.Condition, env)
		if isError(cond) {
			return cond
		}
		b, ok := cond.(*Boolean)
		if !ok {
			return newError("comprehension filter must be a boolean, got %s", cond.Type())
		}
		if !b.Value {
			return nil
		}
		return e.runClauses(clauses[1:], output, env, out)
	}
	return newError("unknown comprehension clause")
}

func iterableElements(obj Object) ([]Object, *Error) {
	switch obj := obj.(type) {
	case *List:
		return obj.Elements, nil
	case *Tuple:
		return obj.Elements, nil
	case *Set:
		return obj.Elements, nil
	}
	return nil, newError("cannot iterate over %s", obj.Type())
}

func isNumeric(obj Object) bool {
	return obj.Type() == INTEGER_OBJ || obj.Type() == FLOAT_OBJ
}

func toFloat(obj Object) float64 {
	switch obj := obj.(type) {
	case *Integer:
		return float64(obj.Value)
	case *Float:
		return obj.Value
	}
	return 0
}

func objectsEqual(left, right Object) bool {
	return left.Type() == right.Type() && left.Inspect() == right.Inspect()
}
