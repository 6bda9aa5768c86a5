// Package evaluator implements the tree-walking interpreter over a
// resolved AST: it locates "main" on the module symbol and runs it to
// completion, executing every statement and expression kind the semantic
// passes have already type-checked.
package evaluator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/anycow/vuglang/internal/ast"
	"github.com/anycow/vuglang/internal/config"
	"github.com/anycow/vuglang/internal/diagnostics"
	"github.com/anycow/vuglang/internal/stackguard"
	"github.com/anycow/vuglang/internal/symbols"
	"github.com/anycow/vuglang/internal/typesys"
)

// RuntimeError is a fatal evaluation failure (division/remainder by
// zero, stack overflow, or an internal invariant violation). The
// evaluator halts as soon as one occurs; per spec §7 these are never
// recoverable mid-evaluation. Code lets the driver's diagnostic report
// group it under the right stage prefix (§4.9) without having to
// re-derive the failure kind from Message text.
type RuntimeError struct {
	Message string
	Code    diagnostics.Code
}

func (e *RuntimeError) Error() string { return e.Message }

// Evaluator runs a resolved module to completion. It is single-use: one
// Evaluator corresponds to one call to Run.
type Evaluator struct {
	Out     io.Writer
	Context context.Context // optional; nil means no cancellation/timeout
	guard   *stackguard.Guard
}

// New returns an Evaluator writing `print` output to out.
func New(out io.Writer) *Evaluator {
	return &Evaluator{Out: out, guard: stackguard.New()}
}

// Run locates the function named per config.MainFunctionName on
// moduleSym and invokes it with no arguments, per spec §4.7. It returns
// the function's return value, or a *RuntimeError if evaluation halted
// on a runtime error.
func (e *Evaluator) Run(moduleSym *symbols.Symbol) (Value, error) {
	mainSym := findMember(moduleSym, config.MainFunctionName, symbols.Function)
	if mainSym == nil {
		return nil, &RuntimeError{Message: fmt.Sprintf("no function named %q in module", config.MainFunctionName), Code: diagnostics.EErrRuntime}
	}
	return e.call(mainSym, nil)
}

func findMember(moduleSym *symbols.Symbol, name string, kind symbols.Kind) *symbols.Symbol {
	if moduleSym == nil {
		return nil
	}
	for _, sym := range moduleSym.Members[name] {
		if sym.Kind == kind {
			return sym
		}
	}
	return nil
}

// call performs one activation of fnSym: a fresh frame, arguments moved
// in by parameter order, the body evaluated, and the frame discarded.
// Per spec §9 item 4, the frame pop happens here — at the call site
// handling the function's top-level invocation — never on executing an
// inner Return statement, which only unwinds the Signal sum type up to
// this point.
func (e *Evaluator) call(fnSym *symbols.Symbol, args []Value) (Value, error) {
	if err := e.enter(); err != nil {
		return nil, err
	}
	defer e.guard.Leave()

	body, _ := fnSym.Body.(*ast.StatementsBlock)
	env := NewEnvironment()
	for i, param := range fnSym.Parameters {
		if i < len(args) {
			env.Set(param, args[i])
		}
	}

	sig, err := e.evalStatementsBlock(body, env)
	if err != nil {
		return nil, err
	}
	if sig.Kind == SignalReturn {
		return sig.Value, nil
	}
	return nil, nil
}

func (e *Evaluator) enter() error {
	if err := e.checkContext(); err != nil {
		return err
	}
	if err := e.guard.Enter(); err != nil {
		return &RuntimeError{Message: "evaluator: " + err.Error(), Code: diagnostics.EErrStackOverflow}
	}
	return nil
}

func (e *Evaluator) checkContext() error {
	if e.Context == nil {
		return nil
	}
	select {
	case <-e.Context.Done():
		return &RuntimeError{Message: fmt.Sprintf("execution cancelled: %v", e.Context.Err()), Code: diagnostics.EErrRuntime}
	default:
		return nil
	}
}

// evalStatementsBlock evaluates each statement in order, stopping at and
// returning the first non-successful Signal (Break or Return).
func (e *Evaluator) evalStatementsBlock(block *ast.StatementsBlock, env *Environment) (Signal, error) {
	if block == nil {
		return successful, nil
	}
	for _, stmt := range block.Statements {
		sig, err := e.evalStatement(stmt, env)
		if err != nil {
			return Signal{}, err
		}
		if sig.Kind != SignalNone {
			return sig, nil
		}
	}
	return successful, nil
}

func (e *Evaluator) evalStatement(stmt ast.Statement, env *Environment) (Signal, error) {
	if err := e.enter(); err != nil {
		return Signal{}, err
	}
	defer e.guard.Leave()

	switch s := stmt.(type) {
	case *ast.StatementsBlock:
		return e.evalStatementsBlock(s, env)
	case *ast.LocalVariableDeclaration:
		v, err := e.evalExpression(s.Initializer, env)
		if err != nil {
			return Signal{}, err
		}
		env.Set(s.Symbol, v)
		return successful, nil
	case *ast.Assign:
		v, err := e.evalExpression(s.Value, env)
		if err != nil {
			return Signal{}, err
		}
		env.Set(s.Symbol, v)
		return successful, nil
	case *ast.If:
		return e.evalIf(s, env)
	case *ast.While:
		return e.evalWhile(s, env)
	case *ast.Break:
		return Signal{Kind: SignalBreak, TargetLoop: s.TargetLoop}, nil
	case *ast.Return:
		v, err := e.evalExpression(s.Value, env)
		if err != nil {
			return Signal{}, err
		}
		return Signal{Kind: SignalReturn, Value: v}, nil
	case *ast.Print:
		v, err := e.evalExpression(s.Value, env)
		if err != nil {
			return Signal{}, err
		}
		fmt.Fprintln(e.Out, v.String())
		return successful, nil
	case *ast.ExpressionStatement:
		if _, err := e.evalExpression(s.Call, env); err != nil {
			return Signal{}, err
		}
		return successful, nil
	case *ast.BadStatement:
		return successful, nil
	default:
		return Signal{}, &RuntimeError{Message: fmt.Sprintf("evaluator: unhandled statement kind %T", stmt), Code: diagnostics.EErrRuntime}
	}
}

func (e *Evaluator) evalIf(s *ast.If, env *Environment) (Signal, error) {
	cond, err := e.evalExpression(s.Condition, env)
	if err != nil {
		return Signal{}, err
	}
	if asBool(cond) {
		return e.evalStatementsBlock(s.Then, env)
	}
	switch elseBranch := s.Else.(type) {
	case nil:
		return successful, nil
	case *ast.StatementsBlock:
		return e.evalStatementsBlock(elseBranch, env)
	case *ast.If:
		return e.evalIf(elseBranch, env)
	default:
		return successful, nil
	}
}

// evalWhile repeats Body while Condition is true. A Return propagates
// immediately; a Break targeting this loop stops it and turns into
// Successful; a Break targeting an outer loop propagates unchanged.
func (e *Evaluator) evalWhile(s *ast.While, env *Environment) (Signal, error) {
	for {
		cond, err := e.evalExpression(s.Condition, env)
		if err != nil {
			return Signal{}, err
		}
		if !asBool(cond) {
			return successful, nil
		}

		sig, err := e.evalStatementsBlock(s.Body, env)
		if err != nil {
			return Signal{}, err
		}
		switch sig.Kind {
		case SignalNone:
			continue
		case SignalReturn:
			return sig, nil
		case SignalBreak:
			if sig.TargetLoop == s {
				return successful, nil
			}
			return sig, nil
		}
	}
}

func asBool(v Value) bool {
	b, ok := v.(BoolValue)
	return ok && bool(b)
}

func (e *Evaluator) evalExpression(expr ast.Expression, env *Environment) (Value, error) {
	if err := e.enter(); err != nil {
		return nil, err
	}
	defer e.guard.Leave()

	switch ex := expr.(type) {
	case *ast.Identifier:
		v, ok := env.Get(ex.Symbol)
		if !ok {
			return nil, &RuntimeError{Message: fmt.Sprintf("unbound variable %q at runtime", ex.Name), Code: diagnostics.EErrRuntime}
		}
		return v.Clone(), nil
	case *ast.Number:
		t, err := typesys.ForSuffix(ex.Suffix)
		if err != nil {
			return nil, &RuntimeError{Message: err.Error(), Code: diagnostics.EErrRuntime}
		}
		iv := &IntegerValue{Type: t}
		iv.V = iv.wrap(ex.Value)
		return iv, nil
	case *ast.BooleanLiteral:
		return BoolValue(ex.Value), nil
	case *ast.BinaryOperation:
		return e.evalBinaryOperation(ex, env)
	case *ast.PrefixOperation:
		return e.evalPrefixOperation(ex, env)
	case *ast.CallFunction:
		return e.evalCallFunction(ex, env)
	case *ast.BadExpression:
		return nil, &RuntimeError{Message: "evaluator: reached a bad expression node", Code: diagnostics.EErrRuntime}
	default:
		return nil, &RuntimeError{Message: fmt.Sprintf("evaluator: unhandled expression kind %T", expr), Code: diagnostics.EErrRuntime}
	}
}

// evalBinaryOperation evaluates left, then — per spec §9 item 2 — only
// evaluates right when its value is observable: `&&`/`||` short-circuit.
func (e *Evaluator) evalBinaryOperation(ex *ast.BinaryOperation, env *Environment) (Value, error) {
	left, err := e.evalExpression(ex.Left, env)
	if err != nil {
		return nil, err
	}

	if ex.Operator == typesys.OpLogAnd {
		if !asBool(left) {
			return BoolValue(false), nil
		}
		right, err := e.evalExpression(ex.Right, env)
		if err != nil {
			return nil, err
		}
		return BoolValue(asBool(right)), nil
	}
	if ex.Operator == typesys.OpLogOr {
		if asBool(left) {
			return BoolValue(true), nil
		}
		right, err := e.evalExpression(ex.Right, env)
		if err != nil {
			return nil, err
		}
		return BoolValue(asBool(right)), nil
	}

	right, err := e.evalExpression(ex.Right, env)
	if err != nil {
		return nil, err
	}
	result, err := left.Binary(ex.Operator, right)
	if err != nil {
		if errors.Is(err, ErrDivisionByZero) {
			return nil, &RuntimeError{Message: "division or remainder by zero", Code: diagnostics.EErrDivisionByZero}
		}
		return nil, &RuntimeError{Message: "evaluator: " + err.Error(), Code: diagnostics.EErrRuntime}
	}
	return result, nil
}

func (e *Evaluator) evalPrefixOperation(ex *ast.PrefixOperation, env *Environment) (Value, error) {
	operand, err := e.evalExpression(ex.Operand, env)
	if err != nil {
		return nil, err
	}
	result, err := operand.Prefix(ex.Operator)
	if err != nil {
		return nil, &RuntimeError{Message: "evaluator: " + err.Error(), Code: diagnostics.EErrRuntime}
	}
	return result, nil
}

// evalCallFunction resolves through Symbol, evaluates arguments
// left-to-right into a list, then performs a new activation.
func (e *Evaluator) evalCallFunction(ex *ast.CallFunction, env *Environment) (Value, error) {
	args := make([]Value, 0, len(ex.Arguments))
	for _, argExpr := range ex.Arguments {
		v, err := e.evalExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return e.call(ex.Symbol, args)
}
