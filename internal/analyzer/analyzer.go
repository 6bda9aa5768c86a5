// Package analyzer runs the three ordered semantic passes over the AST:
// module definition, global (function-signature) resolution, and local
// (body) resolution. Each pass tolerates Bad nodes by skipping them and
// whatever children they would otherwise have had.
package analyzer

import (
	"fmt"
	"sort"

	"github.com/anycow/vuglang/internal/ast"
	"github.com/anycow/vuglang/internal/diagnostics"
	"github.com/anycow/vuglang/internal/symbols"
)

// Analyzer owns the symbol context and table shared across all three
// passes of a single compilation.
type Analyzer struct {
	Context *symbols.Context
	Table   *symbols.Table

	errorSet map[string]*diagnostics.Diagnostic // keyed by "line:col:code", deduplicates across passes
}

// New returns an Analyzer over a fresh symbol context with the table
// pre-populated with built-in types at depth 0.
func New() *Analyzer {
	ctx := symbols.NewContext()
	return &Analyzer{
		Context:  ctx,
		Table:    ctx.NewBuiltinTable(),
		errorSet: make(map[string]*diagnostics.Diagnostic),
	}
}

func (a *Analyzer) addError(d *diagnostics.Diagnostic) {
	if d == nil {
		return
	}
	key := fmt.Sprintf("%d:%d:%s", d.Token.Span.StartLine, d.Token.Span.StartCol, d.Code)
	a.errorSet[key] = d
}

// Errors returns every unique diagnostic raised across the three passes,
// sorted by source position.
func (a *Analyzer) Errors() []*diagnostics.Diagnostic {
	result := make([]*diagnostics.Diagnostic, 0, len(a.errorSet))
	for _, d := range a.errorSet {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		si, sj := result[i].Token.Span, result[j].Token.Span
		if si.StartLine != sj.StartLine {
			return si.StartLine < sj.StartLine
		}
		return si.StartCol < sj.StartCol
	})
	return result
}

// Analyze runs ModuleDefinitionPass, GlobalScopePass, and LocalScopePass
// in order over root, reporting every diagnostic to the Analyzer's
// deduplicated error set. It returns the resolved ModuleSymbol, or nil if
// root was not a ModuleDeclaration (a diagnostic is raised in that case).
func (a *Analyzer) Analyze(root ast.Declaration) *symbols.Symbol {
	mod, ok := root.(*ast.ModuleDeclaration)
	if !ok {
		a.addError(diagnostics.NewError(diagnostics.PErrUnexpectedToken, root.GetToken(),
			"expected a module declaration at the top level"))
		return nil
	}

	p1 := &moduleDefinitionPass{a: a}
	p1.run(mod)

	p2 := &globalScopePass{a: a}
	p2.run(mod)

	p3 := &localScopePass{a: a}
	p3.run(mod)

	return mod.Symbol
}
