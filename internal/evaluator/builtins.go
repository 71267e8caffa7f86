package evaluator

// Tap calls fn with value for its side effect and returns value
// unchanged.
func (e *Evaluator) Tap(value, fn Object) Object {
	result := e.ApplyFunction(fn, []Object{value})
	if isError(result) {
		return result
	}
	return value
}

// BaseEnvironment returns an environment pre-populated with the
// builtins every rewritten expression may rely on.
func BaseEnvironment(e *Evaluator) *Environment {
	env := NewEnvironment()
	env.Set("tap", &Builtin{Name: "tap", Fn: func(args ...Object) Object {
		if len(args) != 2 {
			return newError("tap expects a value and a function, got %d arguments", len(args))
		}
		return e.Tap(args[0], args[1])
	}})
	env.Set("id", &Builtin{Name: "id", Fn: func(args ...Object) Object {
		if len(args) != 1 {
			return newError("id expects 1 argument, got %d", len(args))
		}
		return args[0]
	}})
	return env
}
