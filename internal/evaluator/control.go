package evaluator

import "github.com/anycow/vuglang/internal/ast"

// SignalKind discriminates the statement-result sum type every statement
// and statements-block evaluation produces.
type SignalKind int

const (
	SignalNone SignalKind = iota
	SignalBreak
	SignalReturn
)

// Signal is the result of evaluating one statement (or block): either
// Successful (SignalNone), a Break naming the While it targets, or a
// Return carrying the function's result value. Evaluating a statements
// block stops at, and returns, the first non-SignalNone result.
type Signal struct {
	Kind       SignalKind
	TargetLoop *ast.While
	Value      Value
}

var successful = Signal{Kind: SignalNone}
