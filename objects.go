package funpipe

import (
	"fmt"

	"github.com/funvibe/funpipe/internal/evaluator"
)

// GoFunc is the shape of a host function exposed to a program through
// its bindings.
type GoFunc func(args ...interface{}) (interface{}, error)

// toObject converts a binding value into a runtime object.
//
// Accepted kinds: bool, int, int64, float64, string, nil,
// []interface{} (list), map[string]interface{} (record, member access
// resolves against it), and GoFunc / func(...interface{})
// (interface{}, error) for callables.
func toObject(value interface{}) (evaluator.Object, error) {
	switch v := value.(type) {
	case nil:
		return &evaluator.Nil{}, nil
	case bool:
		return &evaluator.Boolean{Value: v}, nil
	case int:
		return &evaluator.Integer{Value: int64(v)}, nil
	case int64:
		return &evaluator.Integer{Value: v}, nil
	case float64:
		return &evaluator.Float{Value: v}, nil
	case string:
		return &evaluator.String{Value: v}, nil
	case []interface{}:
		elements := make([]evaluator.Object, 0, len(v))
		for i, el := range v {
			obj, err := toObject(el)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			elements = append(elements, obj)
		}
		return &evaluator.List{Elements: elements}, nil
	case map[string]interface{}:
		fields := make(map[string]evaluator.Object, len(v))
		for name, fv := range v {
			obj, err := toObject(fv)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
			fields[name] = obj
		}
		return &evaluator.Record{Fields: fields}, nil
	case GoFunc:
		return wrapGoFunc(v), nil
	case func(args ...interface{}) (interface{}, error):
		return wrapGoFunc(v), nil
	case evaluator.Object:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported binding type %T", value)
	}
}

func wrapGoFunc(fn GoFunc) *evaluator.Builtin {
	return &evaluator.Builtin{
		Name: "bound",
		Fn: func(args ...evaluator.Object) evaluator.Object {
			goArgs := make([]interface{}, len(args))
			for i, a := range args {
				goArgs[i] = fromObject(a)
			}
			out, err := fn(goArgs...)
			if err != nil {
				return &evaluator.Error{Message: err.Error()}
			}
			obj, convErr := toObject(out)
			if convErr != nil {
				return &evaluator.Error{Message: convErr.Error()}
			}
			return obj
		},
	}
}

// fromObject converts a runtime object back to a plain Go value.
// Functions and builtins come back as-is; callers treat them as opaque.
func fromObject(obj evaluator.Object) interface{} {
	switch o := obj.(type) {
	case *evaluator.Nil:
		return nil
	case *evaluator.Boolean:
		return o.Value
	case *evaluator.Integer:
		return o.Value
	case *evaluator.Float:
		return o.Value
	case *evaluator.String:
		return o.Value
	case *evaluator.List:
		out := make([]interface{}, len(o.Elements))
		for i, el := range o.Elements {
			out[i] = fromObject(el)
		}
		return out
	case *evaluator.Tuple:
		out := make([]interface{}, len(o.Elements))
		for i, el := range o.Elements {
			out[i] = fromObject(el)
		}
		return out
	case *evaluator.Set:
		out := make([]interface{}, len(o.Elements))
		for i, el := range o.Elements {
			out[i] = fromObject(el)
		}
		return out
	case *evaluator.Map:
		out := make(map[string]interface{}, len(o.Pairs))
		for _, pair := range o.Pairs {
			out[pair.Key.Inspect()] = fromObject(pair.Value)
		}
		return out
	case *evaluator.Record:
		out := make(map[string]interface{}, len(o.Fields))
		for name, fv := range o.Fields {
			out[name] = fromObject(fv)
		}
		return out
	default:
		return obj
	}
}
