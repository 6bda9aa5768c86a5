package analyzer

import (
	"github.com/anycow/vuglang/internal/ast"
	"github.com/anycow/vuglang/internal/diagnostics"
	"github.com/anycow/vuglang/internal/symbols"
)

// globalScopePass opens the module's scope, inserts its direct-member
// (function) symbols, then resolves every function's signature: return
// type, parameter types, and per-parameter LocalVariableSymbols. The
// scope it opens is left open for LocalScopePass, which resolves bodies
// in the same scope so sibling and recursive calls can see every
// function name; LocalScopePass closes it once all bodies are walked.
type globalScopePass struct {
	a *Analyzer
}

func (p *globalScopePass) run(mod *ast.ModuleDeclaration) {
	p.a.Table.OpenScope()

	if mod.Body == nil {
		return
	}

	for _, decl := range mod.Body.Declarations {
		fd, ok := decl.(*ast.FunctionDeclaration)
		if !ok || fd.Symbol == nil {
			continue
		}
		res := p.a.Table.Insert(fd.Name, fd.Symbol, true)
		switch res.Kind {
		case symbols.InsertNameConflict:
			p.a.addError(diagnostics.NewError(diagnostics.RErrNameConflict, fd.GetToken(),
				"function %q conflicts with a previous declaration", fd.Name))
		case symbols.InsertProhibitedShadowing:
			p.a.addError(diagnostics.NewError(diagnostics.RErrProhibitedShadowing, fd.GetToken(),
				"function %q shadows a non-shadowable built-in name", fd.Name))
		}
	}

	for _, decl := range mod.Body.Declarations {
		fd, ok := decl.(*ast.FunctionDeclaration)
		if !ok || fd.Symbol == nil {
			continue
		}
		p.resolveSignature(fd)
	}
}

func (p *globalScopePass) resolveSignature(fd *ast.FunctionDeclaration) {
	fd.Symbol.Lifecycle = symbols.Incomplete

	returnSym, err := p.resolveType(fd.ReturnType)
	if err != nil {
		p.a.addError(err)
	}
	fd.Symbol.ReturnType = returnSym

	for _, param := range fd.Parameters {
		typeSym, err := p.resolveType(param.Type)
		if err != nil {
			p.a.addError(err)
		}
		paramSym := p.a.Context.AddVariableSymbol(param.Name, typeSym)
		param.Symbol = paramSym
		fd.Symbol.Parameters = append(fd.Symbol.Parameters, paramSym)
	}

	fd.Symbol.Body = fd.Body
	fd.Symbol.Lifecycle = symbols.Complete
}

// resolveType looks up ref.Name as a TypeSymbol. Errors: "can't find `T`
// type" if the name isn't bound at all, "`T` isn't a type" if it is bound
// to something else (e.g. a function).
func (p *globalScopePass) resolveType(ref *ast.TypeRef) (*symbols.Symbol, *diagnostics.Diagnostic) {
	found := p.a.Table.Find(ref.Name)
	if found.Kind == symbols.FindNotFound {
		return nil, diagnostics.NewError(diagnostics.RErrNotAType, ref.Token,
			"can't find `%s` type", ref.Name)
	}
	if found.Record.Symbol.Kind != symbols.TypeSym {
		return nil, diagnostics.NewError(diagnostics.RErrNotAType, ref.Token,
			"`%s` isn't a type", ref.Name)
	}
	ref.Resolved = found.Record.Symbol
	return found.Record.Symbol, nil
}
