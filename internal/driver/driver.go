// Package driver wires the evaluator into the pipeline as an
// ExecutionProcessor, the way funxy's internal/backend package wraps its
// VM/tree-walk backends for its own pipeline — kept out of
// internal/evaluator itself so internal/pipeline can depend on
// evaluator.Value without an import cycle back through this stage.
package driver

import (
	"github.com/anycow/vuglang/internal/diagnostics"
	"github.com/anycow/vuglang/internal/evaluator"
	"github.com/anycow/vuglang/internal/pipeline"
	"github.com/anycow/vuglang/internal/token"
)

// ExecutionProcessor is the pipeline's final stage: it runs the
// evaluator over ctx.ModuleSymbol, provided no earlier stage reported an
// Error or Fatal diagnostic (per spec §7, the evaluator is never invoked
// once the run has already failed).
type ExecutionProcessor struct{}

func (ExecutionProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.ModuleSymbol == nil || ctx.Diags.HasErrors() {
		return ctx
	}

	eval := evaluator.New(ctx.Out)
	if ctx.Context != nil {
		eval.Context = ctx.Context
	}
	result, err := eval.Run(ctx.ModuleSymbol)
	if err != nil {
		code := diagnostics.EErrRuntime
		if re, ok := err.(*evaluator.RuntimeError); ok && re.Code != "" {
			code = re.Code
		}
		ctx.Diags.Add(diagnostics.NewDiagnostic(diagnostics.Fatal, code,
			token.Token{}, "%s", err))
		return ctx
	}
	ctx.Result = result
	return ctx
}
