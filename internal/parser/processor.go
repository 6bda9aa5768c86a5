package parser

import (
	"github.com/anycow/vuglang/internal/lexer"
	"github.com/anycow/vuglang/internal/pipeline"
)

// Processor is the pipeline stage that parses ctx.Source into ctx.AST.
// It builds its own Lexer (rather than replaying ctx.Tokens from the
// lexer stage) and pulls tokens from it on demand into its
// curToken/peekToken buffer; the lexer stage's token slice remains
// useful on its own for diagnostics and tests.
type Processor struct{}

func (Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	l := lexer.New(ctx.Source)
	p := New(l, ctx.Diags)
	ctx.AST = p.ParseProgram()
	return ctx
}
