// Package rewriter turns pipe-operator chains into equivalent nested
// call expressions.
//
// It handles:
//
//	method calls           a |> _.method(...)      a.method(...)
//	property access        a |> _.property         a.property
//	binary operators       a |> _ + 3              (\Z -> Z + 3)(a)
//	interpolated strings   a |> "v=${_}"           (\Z -> "v=${Z}")(a)
//	collection literals    a |> [_, 1, 2]          (\Z -> [Z, 1, 2])(a)
//	comprehensions         a |> [x + _ | x <- _]   (\Z -> [x + Z | x <- Z])(a)
//	function calls         a |> b(...)             b(a, ...)
//	calls without parens   a |> b                  b(a)
//	lambda values          a |> (\x -> x + 4)      (\x -> x + 4)(a)
package rewriter

import (
	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/token"
)

const (
	DefaultOperator    = "|>"
	DefaultPlaceholder = "_"
	DefaultLambdaVar   = "Z"

	// TapName is the identifier the debug wrap calls. The evaluator
	// binds it to a builtin that forwards the value to the observer
	// and returns it unchanged.
	TapName = "__pipe_tap__"

	// markerName tags a tree as already rewritten, so feeding the
	// recompiled result through the pass again is a no-op.
	markerName = "__pipe_rewritten__"
)

// InsertPosition declares where the piped value lands in an ordinary
// call's positional arguments. It is a property of the configured
// operator direction, never inferred from node shape.
type InsertPosition int

const (
	InsertFront InsertPosition = iota
	InsertBack
)

// Config holds the three configurable tokens plus the rewrite options.
// Placeholder and LambdaVar must differ, and Operator must be a member
// of the recognized binary operator set; both are checked at
// construction.
type Config struct {
	Operator    string
	Placeholder string
	LambdaVar   string
	Insert      InsertPosition
	Debug       bool
}

// NewConfig validates the token triple and returns an immutable
// configuration.
func NewConfig(operator, placeholder, lambdaVar string) (*Config, error) {
	cfg := &Config{
		Operator:    operator,
		Placeholder: placeholder,
		LambdaVar:   lambdaVar,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the conventional configuration: |> as the pipe,
// _ as the placeholder, Z as the synthetic lambda variable.
func DefaultConfig() *Config {
	return &Config{
		Operator:    DefaultOperator,
		Placeholder: DefaultPlaceholder,
		LambdaVar:   DefaultLambdaVar,
	}
}

// Validate enforces the construction-time invariants. Violations are
// fatal configuration errors, not per-node errors.
func (c *Config) Validate() error {
	if c.Placeholder == c.LambdaVar {
		return diagnostics.NewError(diagnostics.ErrC001, token.Token{},
			"placeholder %q and lambda variable %q must be different", c.Placeholder, c.LambdaVar)
	}
	if _, ok := token.LookupBinaryOperator(c.Operator); !ok {
		return diagnostics.NewError(diagnostics.ErrC002, token.Token{},
			"operator %q is not a recognized binary operator", c.Operator)
	}
	return nil
}
