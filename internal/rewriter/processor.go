package rewriter

import (
	"errors"

	"github.com/funvibe/funpipe/internal/diagnostics"
	"github.com/funvibe/funpipe/internal/pipeline"
)

// RewriteProcessor runs the rewriter as a pipeline stage, after the
// parser.
type RewriteProcessor struct {
	Config *Config
}

func (rp *RewriteProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.AstRoot == nil {
		return ctx
	}

	cfg := rp.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}

	r, err := New(cfg)
	if err != nil {
		ctx.Errors = append(ctx.Errors, asDiagnostic(err))
		return ctx
	}

	rewritten, err := r.Rewrite(ctx.AstRoot)
	if err != nil {
		ctx.Errors = append(ctx.Errors, asDiagnostic(err))
		return ctx
	}
	ctx.Rewritten = rewritten
	return ctx
}

func asDiagnostic(err error) *diagnostics.Error {
	var diag *diagnostics.Error
	if errors.As(err, &diag) {
		return diag
	}
	return &diagnostics.Error{Code: diagnostics.ErrR001, Message: err.Error()}
}
