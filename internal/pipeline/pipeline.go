// Package pipeline threads a single compilation through its ordered
// stages — lex, parse, resolve, evaluate — each a Processor acting on a
// shared Context, the way funxy's own internal/pipeline chains its
// lexer/parser/analyzer/backend Processors.
package pipeline

import (
	"context"
	"io"

	"github.com/anycow/vuglang/internal/ast"
	"github.com/anycow/vuglang/internal/diagnostics"
	"github.com/anycow/vuglang/internal/evaluator"
	"github.com/anycow/vuglang/internal/source"
	"github.com/anycow/vuglang/internal/symbols"
	"github.com/anycow/vuglang/internal/token"
)

// Context is the mutable state threaded through every pipeline stage. A
// stage reads what earlier stages produced and writes its own outputs;
// stages never reach into a Context field that was not handed to them by
// name.
type Context struct {
	// RunID correlates one CLI invocation's diagnostic report with
	// external tooling; stamped by the driver before the pipeline runs.
	RunID string

	// Context, if set, bounds the evaluator stage's running time (spec
	// §5); nil means no cancellation/timeout.
	Context context.Context

	Source *source.File
	Diags  *diagnostics.Manager

	Tokens []token.Token
	AST    ast.Declaration // the parsed module root once the parse stage runs

	ModuleSymbol *symbols.Symbol

	Result Value
	Out    io.Writer
}

// Value aliases evaluator.Value so callers outside the evaluator package
// don't need a second import just to read Context.Result.
type Value = evaluator.Value

// NewContext returns a Context over src, with a fresh diagnostics
// manager and Out defaulted to the given writer.
func NewContext(src *source.File, out io.Writer) *Context {
	return &Context{Source: src, Diags: diagnostics.NewManager(), Out: out}
}

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline is a fixed sequence of Processors run in order.
type Pipeline struct {
	processors []Processor
}

// New returns a Pipeline running processors in order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run threads ctx through every stage in order. Per the error
// propagation model (spec §7), a stage that records Error/Fatal
// diagnostics does not prevent later stages from running here; the
// evaluator stage (driver.ExecutionProcessor) checks
// ctx.Diags.HasErrors() itself and skips evaluation when it is true,
// mirroring funxy's ExecutionProcessor checking ctx.Errors.
func (p *Pipeline) Run(ctx *Context) *Context {
	for _, proc := range p.processors {
		ctx = proc.Process(ctx)
	}
	return ctx
}
