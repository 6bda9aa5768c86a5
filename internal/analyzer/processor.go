package analyzer

import "github.com/anycow/vuglang/internal/pipeline"

// Processor is the pipeline stage that runs the three semantic passes
// over ctx.AST, populating ctx.ModuleSymbol and reporting every
// resolution/type diagnostic through ctx.Diags.
type Processor struct{}

func (Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.AST == nil {
		return ctx
	}
	a := New()
	ctx.ModuleSymbol = a.Analyze(ctx.AST)
	for _, d := range a.Errors() {
		ctx.Diags.Add(d)
	}
	return ctx
}
