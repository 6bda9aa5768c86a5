// Package ast defines the declaration/statement/expression node families
// produced by the parser. Each family is a closed set of Go structs, each
// reporting a Kind discriminant; callers dispatch with a type switch on
// the concrete node type rather than through double-dispatch visitors.
package ast

import (
	"github.com/anycow/vuglang/internal/source"
	"github.com/anycow/vuglang/internal/symbols"
	"github.com/anycow/vuglang/internal/token"
)

// DeclKind discriminates Declaration nodes.
type DeclKind int

const (
	KindModuleDeclaration DeclKind = iota
	KindDeclarationsBlock
	KindFunctionDeclaration
	KindFunctionParameter
	KindBadDeclaration
)

// StmtKind discriminates Statement nodes.
type StmtKind int

const (
	KindLocalVariableDeclaration StmtKind = iota
	KindAssign
	KindIf
	KindWhile
	KindBreak
	KindReturn
	KindPrint
	KindStatementsBlock
	KindExpressionStatement
	KindBadStatement
)

// ExprKind discriminates Expression nodes.
type ExprKind int

const (
	KindIdentifier ExprKind = iota
	KindNumber
	KindBooleanLiteral
	KindBinaryOperation
	KindPrefixOperation
	KindCallFunction
	KindBadExpression
)

// Declaration is a top-level or module-member node.
type Declaration interface {
	DeclKind() DeclKind
	GetToken() token.Token
	Span() source.Span
}

// Statement is a node appearing inside a function body.
type Statement interface {
	StmtKind() StmtKind
	GetToken() token.Token
	Span() source.Span
}

// Expression is a node that produces a value. ResolvedType is nil until
// semantic analysis fills it in.
type Expression interface {
	ExprKind() ExprKind
	GetToken() token.Token
	Span() source.Span
	ResolvedType() *symbols.Symbol
	SetResolvedType(*symbols.Symbol)
}

// TypeRef names a type by identifier in source (a parameter type, a
// variable declaration's type, or a function's return type). Resolved
// fills in during GlobalScopePass/LocalScopePass.
type TypeRef struct {
	Token    token.Token
	Name     string
	Resolved *symbols.Symbol // a TypeSymbol, nil until resolved
}
