package analyzer

import (
	"github.com/anycow/vuglang/internal/ast"
	"github.com/anycow/vuglang/internal/diagnostics"
	"github.com/anycow/vuglang/internal/symbols"
	"github.com/anycow/vuglang/internal/typesys"
)

// localScopePass walks every function body, resolving names, types, and
// control-flow linkage (break targets). It maintains the symbol-table
// scope stack (shared with globalScopePass, which left it open at the
// module scope), a stack of enclosing While nodes for break targeting,
// and the FunctionDeclaration currently being walked, for return-type
// checking.
type localScopePass struct {
	a               *Analyzer
	loopStack       []*ast.While
	currentFunction *ast.FunctionDeclaration
}

func (p *localScopePass) run(mod *ast.ModuleDeclaration) {
	res := p.a.Table.Insert(mod.Name, mod.Symbol, true)
	switch res.Kind {
	case symbols.InsertNameConflict:
		p.a.addError(diagnostics.NewError(diagnostics.RErrNameConflict, mod.GetToken(),
			"module %q conflicts with a previous declaration", mod.Name))
	case symbols.InsertProhibitedShadowing:
		p.a.addError(diagnostics.NewError(diagnostics.RErrProhibitedShadowing, mod.GetToken(),
			"module %q shadows a non-shadowable built-in name", mod.Name))
	}

	if mod.Body != nil {
		for _, decl := range mod.Body.Declarations {
			fd, ok := decl.(*ast.FunctionDeclaration)
			if !ok || fd.Symbol == nil || fd.Body == nil {
				continue
			}
			p.visitFunction(fd)
		}
	}

	p.a.Table.CloseScope() // closes the module scope globalScopePass opened
}

func (p *localScopePass) visitFunction(fd *ast.FunctionDeclaration) {
	prevFunction := p.currentFunction
	p.currentFunction = fd
	defer func() { p.currentFunction = prevFunction }()

	p.a.Table.OpenScope()
	for _, param := range fd.Parameters {
		if param.Symbol == nil {
			continue
		}
		res := p.a.Table.Insert(param.Name, param.Symbol, true)
		switch res.Kind {
		case symbols.InsertNameConflict:
			p.a.addError(diagnostics.NewError(diagnostics.RErrNameConflict, param.GetToken(),
				"parameter %q conflicts with a previous parameter", param.Name))
		case symbols.InsertProhibitedShadowing:
			p.a.addError(diagnostics.NewError(diagnostics.RErrProhibitedShadowing, param.GetToken(),
				"parameter %q shadows a non-shadowable built-in name", param.Name))
		}
	}
	p.visitStatementsBlock(fd.Body)
	if !blockTerminates(fd.Body) {
		p.a.addError(diagnostics.NewError(diagnostics.RErrMissingReturn, fd.GetToken(),
			"function %q does not return a value on all paths", fd.Name))
	}
	p.a.Table.CloseScope()
}

// blockTerminates reports whether every execution of block is guaranteed
// to reach a Return statement, the way Go's own compiler checks a
// function's final statement. A While is never considered terminating
// here (its condition may be false on entry), keeping the check simple
// rather than proving loop conditions are always true.
func blockTerminates(block *ast.StatementsBlock) bool {
	if block == nil || len(block.Statements) == 0 {
		return false
	}
	return stmtTerminates(block.Statements[len(block.Statements)-1])
}

func stmtTerminates(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.Return:
		return true
	case *ast.StatementsBlock:
		return blockTerminates(s)
	case *ast.If:
		if s.Else == nil || !blockTerminates(s.Then) {
			return false
		}
		switch elseBranch := s.Else.(type) {
		case *ast.StatementsBlock:
			return blockTerminates(elseBranch)
		case *ast.If:
			return stmtTerminates(elseBranch)
		default:
			return false
		}
	default:
		return false
	}
}

// visitStatementsBlock is the generic contract for walking a statement
// list: a nested block child gets its own fresh scope, any other child
// is visited directly in the current scope.
func (p *localScopePass) visitStatementsBlock(block *ast.StatementsBlock) {
	if block == nil {
		return
	}
	for _, stmt := range block.Statements {
		if nested, ok := stmt.(*ast.StatementsBlock); ok {
			p.a.Table.OpenScope()
			p.visitStatementsBlock(nested)
			p.a.Table.CloseScope()
			continue
		}
		p.visitStatement(stmt)
	}
}

func (p *localScopePass) visitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.LocalVariableDeclaration:
		p.visitLocalVariableDeclaration(s)
	case *ast.Assign:
		p.visitAssign(s)
	case *ast.If:
		p.visitIf(s)
	case *ast.While:
		p.visitWhile(s)
	case *ast.Break:
		p.visitBreak(s)
	case *ast.Return:
		p.visitReturn(s)
	case *ast.Print:
		p.visitPrint(s)
	case *ast.ExpressionStatement:
		p.visitExpression(s.Call)
	case *ast.BadStatement:
		// Tolerated: skip.
	}
}

func (p *localScopePass) visitLocalVariableDeclaration(s *ast.LocalVariableDeclaration) {
	found := p.a.Table.Find(s.Type.Name)
	var declType *symbols.Symbol
	switch {
	case found.Kind == symbols.FindNotFound:
		p.a.addError(diagnostics.NewError(diagnostics.RErrNotAType, s.Type.Token,
			"can't find `%s` type", s.Type.Name))
	case found.Record.Symbol.Kind != symbols.TypeSym:
		p.a.addError(diagnostics.NewError(diagnostics.RErrNotAType, s.Type.Token,
			"`%s` isn't a type", s.Type.Name))
	default:
		declType = found.Record.Symbol
		s.Type.Resolved = declType
	}

	sym := p.a.Context.AddVariableSymbol(s.Name, declType)
	s.Symbol = sym
	res := p.a.Table.Insert(s.Name, sym, true)
	switch res.Kind {
	case symbols.InsertNameConflict:
		p.a.addError(diagnostics.NewError(diagnostics.RErrNameConflict, s.GetToken(),
			"%q conflicts with a previous declaration in this scope", s.Name))
	case symbols.InsertProhibitedShadowing:
		p.a.addError(diagnostics.NewError(diagnostics.RErrProhibitedShadowing, s.GetToken(),
			"%q shadows a non-shadowable built-in name", s.Name))
	}

	if s.Initializer != nil {
		p.visitExpression(s.Initializer)
		if declType != nil && s.Initializer.ResolvedType() != nil && s.Initializer.ResolvedType() != declType {
			p.a.addError(diagnostics.NewError(diagnostics.RErrTypeMismatch, s.Initializer.GetToken(),
				"cannot initialize %q of type `%s` with value of type `%s`",
				s.Name, declType.Type, s.Initializer.ResolvedType().Type))
		}
	}
}

func (p *localScopePass) visitAssign(s *ast.Assign) {
	p.visitExpression(s.Value)

	found := p.a.Table.Find(s.Name)
	switch {
	case found.Kind == symbols.FindNotFound:
		p.a.addError(diagnostics.NewError(diagnostics.RErrUndefinedName, s.GetToken(),
			"undeclared name %q", s.Name))
		return
	case found.Record.Symbol.Kind != symbols.Variable:
		p.a.addError(diagnostics.NewError(diagnostics.RErrNotVariable, s.GetToken(),
			"%q is not a variable", s.Name))
		return
	}
	s.Symbol = found.Record.Symbol

	if s.Symbol.DeclaredType != nil && s.Value.ResolvedType() != nil && s.Symbol.DeclaredType != s.Value.ResolvedType() {
		p.a.addError(diagnostics.NewError(diagnostics.RErrTypeMismatch, s.Value.GetToken(),
			"cannot assign value of type `%s` to %q of type `%s`",
			s.Value.ResolvedType().Type, s.Name, s.Symbol.DeclaredType.Type))
	}
}

func (p *localScopePass) visitIf(s *ast.If) {
	p.visitExpression(s.Condition)
	if t := s.Condition.ResolvedType(); t != nil && !t.Type.IsBoolean() {
		p.a.addError(diagnostics.NewError(diagnostics.RErrConditionNotBool, s.Condition.GetToken(),
			"if condition must be `bool`, got `%s`", t.Type))
	}

	p.a.Table.OpenScope()
	p.visitStatementsBlock(s.Then)
	p.a.Table.CloseScope()

	switch elseBranch := s.Else.(type) {
	case nil:
	case *ast.StatementsBlock:
		p.a.Table.OpenScope()
		p.visitStatementsBlock(elseBranch)
		p.a.Table.CloseScope()
	case *ast.If:
		p.visitIf(elseBranch)
	}
}

func (p *localScopePass) visitWhile(s *ast.While) {
	p.loopStack = append(p.loopStack, s)
	p.a.Table.OpenScope()

	p.visitExpression(s.Condition)
	if t := s.Condition.ResolvedType(); t != nil && !t.Type.IsBoolean() {
		p.a.addError(diagnostics.NewError(diagnostics.RErrConditionNotBool, s.Condition.GetToken(),
			"while condition must be `bool`, got `%s`", t.Type))
	}
	p.visitStatementsBlock(s.Body)

	p.a.Table.CloseScope()
	p.loopStack = p.loopStack[:len(p.loopStack)-1]
}

func (p *localScopePass) visitBreak(s *ast.Break) {
	if len(p.loopStack) == 0 {
		p.a.addError(diagnostics.NewError(diagnostics.RErrBreakOutsideLoop, s.GetToken(),
			"'break' outside any loop"))
		return
	}
	s.TargetLoop = p.loopStack[len(p.loopStack)-1]
}

func (p *localScopePass) visitReturn(s *ast.Return) {
	p.visitExpression(s.Value)
	if p.currentFunction == nil || p.currentFunction.Symbol == nil {
		return
	}
	want := p.currentFunction.Symbol.ReturnType
	got := s.Value.ResolvedType()
	if want != nil && got != nil && want != got {
		p.a.addError(diagnostics.NewError(diagnostics.RErrReturnTypeMismatch, s.Value.GetToken(),
			"function %q returns `%s`, got `%s`", p.currentFunction.Name, want.Type, got.Type))
	}
}

func (p *localScopePass) visitPrint(s *ast.Print) {
	p.visitExpression(s.Value)
}

func (p *localScopePass) visitExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier:
		p.visitIdentifier(e)
	case *ast.Number:
		t, err := typesys.ForSuffix(e.Suffix)
		if err != nil {
			p.a.addError(diagnostics.NewError(diagnostics.RErrNotAType, e.GetToken(),
				"%s", err))
			t = typesys.Int32
		}
		e.SetResolvedType(p.builtinType(t))
	case *ast.BooleanLiteral:
		e.SetResolvedType(p.builtinType(typesys.Bool))
	case *ast.BinaryOperation:
		p.visitBinaryOperation(e)
	case *ast.PrefixOperation:
		p.visitPrefixOperation(e)
	case *ast.CallFunction:
		p.visitCallFunction(e)
	case *ast.BadExpression:
		// Tolerated: skip.
	}
}

func (p *localScopePass) builtinType(t *typesys.Type) *symbols.Symbol {
	found := p.a.Table.Find(t.String())
	if found.Kind == symbols.FindNotFound {
		return nil
	}
	return found.Record.Symbol
}

func (p *localScopePass) visitIdentifier(e *ast.Identifier) {
	found := p.a.Table.Find(e.Name)
	switch {
	case found.Kind == symbols.FindNotFound:
		p.a.addError(diagnostics.NewError(diagnostics.RErrUndefinedName, e.GetToken(),
			"undeclared name %q", e.Name))
	case found.Record.Symbol.Kind != symbols.Variable:
		p.a.addError(diagnostics.NewError(diagnostics.RErrNotVariable, e.GetToken(),
			"%q is not a variable", e.Name))
	default:
		e.Symbol = found.Record.Symbol
		e.SetResolvedType(found.Record.Symbol.DeclaredType)
	}
}

func (p *localScopePass) visitBinaryOperation(e *ast.BinaryOperation) {
	p.visitExpression(e.Left)
	p.visitExpression(e.Right)

	leftType, rightType := e.Left.ResolvedType(), e.Right.ResolvedType()
	if leftType == nil || rightType == nil {
		return
	}
	result, ok := leftType.Type.Binary(e.Operator, rightType.Type)
	if !ok {
		p.a.addError(diagnostics.NewError(diagnostics.RErrTypeMismatch, e.GetToken(),
			"operator %s not defined for `%s` and `%s`", e.Operator, leftType.Type, rightType.Type))
		return
	}
	e.SetResolvedType(p.builtinType(result))
}

func (p *localScopePass) visitPrefixOperation(e *ast.PrefixOperation) {
	p.visitExpression(e.Operand)
	operandType := e.Operand.ResolvedType()
	if operandType == nil {
		return
	}
	result, ok := operandType.Type.Prefix(e.Operator)
	if !ok {
		p.a.addError(diagnostics.NewError(diagnostics.RErrTypeMismatch, e.GetToken(),
			"prefix operator %s not defined for `%s`", e.Operator, operandType.Type))
		return
	}
	e.SetResolvedType(p.builtinType(result))
}

func (p *localScopePass) visitCallFunction(e *ast.CallFunction) {
	found := p.a.Table.Find(e.Name)
	switch {
	case found.Kind == symbols.FindNotFound:
		p.a.addError(diagnostics.NewError(diagnostics.RErrUndefinedName, e.GetToken(),
			"undeclared name %q", e.Name))
		for _, arg := range e.Arguments {
			p.visitExpression(arg)
		}
		return
	case found.Record.Symbol.Kind != symbols.Function:
		p.a.addError(diagnostics.NewError(diagnostics.RErrNotFunction, e.GetToken(),
			"%q is not a function", e.Name))
		for _, arg := range e.Arguments {
			p.visitExpression(arg)
		}
		return
	}
	e.Symbol = found.Record.Symbol
	e.SetResolvedType(e.Symbol.ReturnType)

	if len(e.Arguments) != len(e.Symbol.Parameters) {
		p.a.addError(diagnostics.NewError(diagnostics.RErrArgCountMismatch, e.GetToken(),
			"%q expects %d argument(s), got %d", e.Name, len(e.Symbol.Parameters), len(e.Arguments)))
	}

	for i, arg := range e.Arguments {
		p.visitExpression(arg)
		if i >= len(e.Symbol.Parameters) {
			continue
		}
		param := e.Symbol.Parameters[i]
		if param.DeclaredType != nil && arg.ResolvedType() != nil && arg.ResolvedType() != param.DeclaredType {
			p.a.addError(diagnostics.NewError(diagnostics.RErrTypeMismatch, arg.GetToken(),
				"argument %d of %q: expected `%s`, got `%s`",
				i+1, e.Name, param.DeclaredType.Type, arg.ResolvedType().Type))
		}
	}
}
