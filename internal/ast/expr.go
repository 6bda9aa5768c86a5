package ast

import (
	"github.com/anycow/vuglang/internal/source"
	"github.com/anycow/vuglang/internal/symbols"
	"github.com/anycow/vuglang/internal/token"
	"github.com/anycow/vuglang/internal/typesys"
)

// Identifier is a name reference inside an expression.
type Identifier struct {
	Token      token.Token
	Name       string
	Symbol     *symbols.Symbol // LocalVariableSymbol, filled by LocalScopePass
	exprType   *symbols.Symbol
	SourceSpan source.Span
}

func (e *Identifier) ExprKind() ExprKind               { return KindIdentifier }
func (e *Identifier) Span() source.Span                { return e.SourceSpan }
func (e *Identifier) ResolvedType() *symbols.Symbol     { return e.exprType }
func (e *Identifier) SetResolvedType(t *symbols.Symbol) { e.exprType = t }
func (e *Identifier) GetToken() token.Token {
	if e == nil {
		return token.Token{}
	}
	return e.Token
}

// Number is an integer literal, optionally suffixed with a width/sign tag.
type Number struct {
	Token      token.Token
	Value      int64
	Suffix     string
	exprType   *symbols.Symbol
	SourceSpan source.Span
}

func (e *Number) ExprKind() ExprKind               { return KindNumber }
func (e *Number) Span() source.Span                { return e.SourceSpan }
func (e *Number) ResolvedType() *symbols.Symbol     { return e.exprType }
func (e *Number) SetResolvedType(t *symbols.Symbol) { e.exprType = t }
func (e *Number) GetToken() token.Token {
	if e == nil {
		return token.Token{}
	}
	return e.Token
}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Token      token.Token
	Value      bool
	exprType   *symbols.Symbol
	SourceSpan source.Span
}

func (e *BooleanLiteral) ExprKind() ExprKind               { return KindBooleanLiteral }
func (e *BooleanLiteral) Span() source.Span                { return e.SourceSpan }
func (e *BooleanLiteral) ResolvedType() *symbols.Symbol     { return e.exprType }
func (e *BooleanLiteral) SetResolvedType(t *symbols.Symbol) { e.exprType = t }
func (e *BooleanLiteral) GetToken() token.Token {
	if e == nil {
		return token.Token{}
	}
	return e.Token
}

// BinaryOperation is `left op right`.
type BinaryOperation struct {
	Token      token.Token // the operator token
	Operator   typesys.Op
	Left       Expression
	Right      Expression
	exprType   *symbols.Symbol
	SourceSpan source.Span
}

func (e *BinaryOperation) ExprKind() ExprKind               { return KindBinaryOperation }
func (e *BinaryOperation) Span() source.Span                { return e.SourceSpan }
func (e *BinaryOperation) ResolvedType() *symbols.Symbol     { return e.exprType }
func (e *BinaryOperation) SetResolvedType(t *symbols.Symbol) { e.exprType = t }
func (e *BinaryOperation) GetToken() token.Token {
	if e == nil {
		return token.Token{}
	}
	return e.Token
}

// PrefixOperation is `op operand` for prefix `-`, `+` and `!`.
type PrefixOperation struct {
	Token      token.Token // the operator token
	Operator   typesys.Op
	Operand    Expression
	exprType   *symbols.Symbol
	SourceSpan source.Span
}

func (e *PrefixOperation) ExprKind() ExprKind               { return KindPrefixOperation }
func (e *PrefixOperation) Span() source.Span                { return e.SourceSpan }
func (e *PrefixOperation) ResolvedType() *symbols.Symbol     { return e.exprType }
func (e *PrefixOperation) SetResolvedType(t *symbols.Symbol) { e.exprType = t }
func (e *PrefixOperation) GetToken() token.Token {
	if e == nil {
		return token.Token{}
	}
	return e.Token
}

// CallFunction is `ident ( Args )`, used both as an expression and, via
// ExpressionStatement, as a bare call-statement.
type CallFunction struct {
	Token      token.Token // the callee identifier token
	Name       string
	Arguments  []Expression
	Symbol     *symbols.Symbol // FunctionSymbol, filled by LocalScopePass
	exprType   *symbols.Symbol
	SourceSpan source.Span
}

func (e *CallFunction) ExprKind() ExprKind               { return KindCallFunction }
func (e *CallFunction) Span() source.Span                { return e.SourceSpan }
func (e *CallFunction) ResolvedType() *symbols.Symbol     { return e.exprType }
func (e *CallFunction) SetResolvedType(t *symbols.Symbol) { e.exprType = t }
func (e *CallFunction) GetToken() token.Token {
	if e == nil {
		return token.Token{}
	}
	return e.Token
}

// BadExpression is a synthesized placeholder left by parser error
// recovery; semantic passes skip it and its (nonexistent) children.
type BadExpression struct {
	Token      token.Token
	exprType   *symbols.Symbol
	SourceSpan source.Span
}

func (e *BadExpression) ExprKind() ExprKind               { return KindBadExpression }
func (e *BadExpression) Span() source.Span                { return e.SourceSpan }
func (e *BadExpression) ResolvedType() *symbols.Symbol     { return e.exprType }
func (e *BadExpression) SetResolvedType(t *symbols.Symbol) { e.exprType = t }
func (e *BadExpression) GetToken() token.Token {
	if e == nil {
		return token.Token{}
	}
	return e.Token
}
