package analyzer

import "github.com/anycow/vuglang/internal/ast"

// moduleDefinitionPass creates the ModuleSymbol and a placeholder
// FunctionSymbol for every top-level function declaration, linking each
// declaration node to its symbol. It performs no name-error detection;
// that is GlobalScopePass's and LocalScopePass's job.
type moduleDefinitionPass struct {
	a *Analyzer
}

func (p *moduleDefinitionPass) run(mod *ast.ModuleDeclaration) {
	moduleSym := p.a.Context.AddModuleSymbol(mod.Name)
	mod.Symbol = moduleSym

	if mod.Body == nil {
		return
	}
	for _, decl := range mod.Body.Declarations {
		fd, ok := decl.(*ast.FunctionDeclaration)
		if !ok {
			continue // Bad or otherwise-kinded declarations are skipped.
		}
		funcSym := p.a.Context.AddFunctionSymbol(fd.Name)
		fd.Symbol = funcSym
		moduleSym.AddMember(fd.Name, funcSym)
	}
}
