package lexer

import (
	"github.com/anycow/vuglang/internal/pipeline"
)

// Processor is the pipeline stage that drains ctx.Source into a token
// stream for tooling/diagnostics (token counts, tests). It never invokes
// the parser; the parser pulls tokens on demand from its own Lexer for
// lookahead (§4.1). Per spec §4.1, "the lexer does not emit diagnostics
// directly; the parser surfaces them" — so a fatal lex error here (e.g.
// an unterminated string) is swallowed in favor of the parser's own
// readNext recovery, which reports it exactly once when it re-lexes the
// same source.
type Processor struct{}

func (Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	l := New(ctx.Source)
	toks, _ := l.Drain()
	ctx.Tokens = toks
	return ctx
}
