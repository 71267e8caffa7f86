// Package funpipe rewrites expression chains written with a pipe
// operator into equivalent nested call expressions, and optionally
// evaluates the result against an explicit binding scope.
//
//	out, err := funpipe.RewriteSource("3 |> double |> add(1)", nil)
//	// out == "add(double(3), 1)"
package funpipe

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/funvibe/funpipe/internal/ast"
	"github.com/funvibe/funpipe/internal/config"
	"github.com/funvibe/funpipe/internal/evaluator"
	"github.com/funvibe/funpipe/internal/lexer"
	"github.com/funvibe/funpipe/internal/parser"
	"github.com/funvibe/funpipe/internal/pipeline"
	"github.com/funvibe/funpipe/internal/prettyprinter"
	"github.com/funvibe/funpipe/internal/rewriter"
)

// Config selects the three rewrite tokens and the rewrite options.
// The zero value is not usable; pass nil to the entry points to get
// the defaults (operator |>, placeholder _, lambda variable Z).
type Config struct {
	Operator    string
	Placeholder string
	LambdaVar   string

	// InsertAtBack appends the piped value to a call's positional
	// arguments instead of prepending it.
	InsertAtBack bool

	// Debug wraps every rewritten node in a tap call. During Run the
	// tap forwards each intermediate value to the observer.
	Debug bool
}

func (c *Config) toRewriter() (*rewriter.Config, error) {
	if c == nil {
		return rewriter.DefaultConfig(), nil
	}
	cfg := rewriter.DefaultConfig()
	if c.Operator != "" {
		cfg.Operator = c.Operator
	}
	if c.Placeholder != "" {
		cfg.Placeholder = c.Placeholder
	}
	if c.LambdaVar != "" {
		cfg.LambdaVar = c.LambdaVar
	}
	if c.InsertAtBack {
		cfg.Insert = rewriter.InsertBack
	}
	cfg.Debug = c.Debug
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigFromFile loads a Config from a YAML settings file:
//
//	operator: "|>"
//	placeholder: _
//	lambda_var: Z
//	insert: front
//	debug: false
func ConfigFromFile(path string) (*Config, error) {
	s, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	rcfg, err := s.RewriterConfig()
	if err != nil {
		return nil, err
	}
	return &Config{
		Operator:     rcfg.Operator,
		Placeholder:  rcfg.Placeholder,
		LambdaVar:    rcfg.LambdaVar,
		InsertAtBack: rcfg.Insert == rewriter.InsertBack,
		Debug:        rcfg.Debug,
	}, nil
}

// RewriteSource parses source, rewrites every pipe chain in it, and
// prints the result back to source text.
func RewriteSource(source string, cfg *Config) (string, error) {
	rcfg, err := cfg.toRewriter()
	if err != nil {
		return "", err
	}
	ctx := runStages(source, "", rcfg)
	if len(ctx.Errors) > 0 {
		return "", ctx.Errors[0]
	}
	return prettyprinter.Sprint(ctx.Rewritten), nil
}

// Program is a compiled expression, ready to run against bindings.
// Compile rewrites once; every Run reuses the rewritten tree.
type Program struct {
	unit      string
	compileID string
	expr      ast.Expression
	cfg       *rewriter.Config
	eval      *evaluator.Evaluator
	observer  Observer
}

// Compile parses and rewrites source. The unit name and a generated
// compile id appear in diagnostics so failures from concurrent
// compiles stay attributable.
func Compile(source, unit string, cfg *Config) (*Program, error) {
	rcfg, err := cfg.toRewriter()
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	ctx := runStages(source, unit, rcfg)
	if len(ctx.Errors) > 0 {
		return nil, fmt.Errorf("compile %s (%s): %w", unit, id, ctx.Errors[0])
	}
	ev := evaluator.New()
	ev.PipeOperator = rcfg.Operator
	return &Program{
		unit:      unit,
		compileID: id,
		expr:      ctx.Rewritten,
		cfg:       rcfg,
		eval:      ev,
		observer:  defaultObserver,
	}, nil
}

// Unit returns the unit name the program was compiled under.
func (p *Program) Unit() string { return p.unit }

// CompileID returns the id generated for this compile invocation.
func (p *Program) CompileID() string { return p.compileID }

// Source prints the rewritten expression back to source text.
func (p *Program) Source() string {
	return prettyprinter.Sprint(p.expr)
}

// SetObserver replaces the debug observer. The observer receives the
// printed form of each intermediate value, in pipeline order, when the
// program was compiled with Debug. A nil fn restores the default
// stderr sink.
func (p *Program) SetObserver(fn Observer) {
	if fn == nil {
		fn = defaultObserver
	}
	p.observer = fn
}

// Run evaluates the program. Bindings supply every free identifier the
// expression references; nothing is read from the caller's scope
// implicitly. Accepted binding values are described at ToObject.
func (p *Program) Run(bindings map[string]interface{}) (interface{}, error) {
	env := evaluator.BaseEnvironment(p.eval)
	env.Set(rewriter.TapName, p.tapBuiltin())
	for name, value := range bindings {
		obj, err := toObject(value)
		if err != nil {
			return nil, fmt.Errorf("run %s (%s): binding %q: %w", p.unit, p.compileID, name, err)
		}
		env.Set(name, obj)
	}

	result := p.eval.Eval(p.expr, env)
	if errObj, ok := result.(*evaluator.Error); ok {
		return nil, fmt.Errorf("run %s (%s): %s", p.unit, p.compileID, errObj.Message)
	}
	return fromObject(result), nil
}

func (p *Program) tapBuiltin() *evaluator.Builtin {
	return &evaluator.Builtin{
		Name: rewriter.TapName,
		Fn: func(args ...evaluator.Object) evaluator.Object {
			if len(args) != 1 {
				return &evaluator.Error{Message: fmt.Sprintf("tap expects 1 argument, got %d", len(args))}
			}
			p.observer(args[0].Inspect())
			return args[0]
		},
	}
}

func runStages(source, unit string, cfg *rewriter.Config) *pipeline.Context {
	ctx := pipeline.NewContext(source)
	ctx.FilePath = unit
	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&rewriter.RewriteProcessor{Config: cfg},
	)
	return p.Run(ctx)
}
