package ast

import (
	"github.com/anycow/vuglang/internal/source"
	"github.com/anycow/vuglang/internal/symbols"
	"github.com/anycow/vuglang/internal/token"
)

// LocalVariableDeclaration is `var typeIdent ident = Expr`.
type LocalVariableDeclaration struct {
	Token       token.Token // the `var` token
	Type        *TypeRef
	Name        string
	Initializer Expression
	Symbol      *symbols.Symbol // LocalVariableSymbol, filled by LocalScopePass
	SourceSpan  source.Span
}

func (s *LocalVariableDeclaration) StmtKind() StmtKind { return KindLocalVariableDeclaration }
func (s *LocalVariableDeclaration) Span() source.Span  { return s.SourceSpan }
func (s *LocalVariableDeclaration) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

// Assign is `ident = Expr`.
type Assign struct {
	Token      token.Token // the identifier token
	Name       string
	Value      Expression
	Symbol     *symbols.Symbol // LocalVariableSymbol, filled by LocalScopePass
	SourceSpan source.Span
}

func (s *Assign) StmtKind() StmtKind { return KindAssign }
func (s *Assign) Span() source.Span  { return s.SourceSpan }
func (s *Assign) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

// If is `if ( Expr ) StmtBlock (else (If | StmtBlock))?`. Else is either
// a *StatementsBlock or a nested *If, stored as Statement so the two
// share one optional field.
type If struct {
	Token      token.Token // the `if` token
	Condition  Expression
	Then       *StatementsBlock
	Else       Statement // nil, *StatementsBlock, or *If
	SourceSpan source.Span
}

func (s *If) StmtKind() StmtKind { return KindIf }
func (s *If) Span() source.Span  { return s.SourceSpan }
func (s *If) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

// While is `while ( Expr ) StmtBlock`.
type While struct {
	Token      token.Token // the `while` token
	Condition  Expression
	Body       *StatementsBlock
	SourceSpan source.Span
}

func (s *While) StmtKind() StmtKind { return KindWhile }
func (s *While) Span() source.Span  { return s.SourceSpan }
func (s *While) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

// Break is `break ;`. TargetLoop is filled in by LocalScopePass with the
// enclosing While it breaks out of.
type Break struct {
	Token      token.Token // the `break` token
	TargetLoop *While
	SourceSpan source.Span
}

func (s *Break) StmtKind() StmtKind { return KindBreak }
func (s *Break) Span() source.Span  { return s.SourceSpan }
func (s *Break) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

// Return is `return Expr ;`.
type Return struct {
	Token      token.Token // the `return` token
	Value      Expression
	SourceSpan source.Span
}

func (s *Return) StmtKind() StmtKind { return KindReturn }
func (s *Return) Span() source.Span  { return s.SourceSpan }
func (s *Return) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

// Print is `print Expr ;`.
type Print struct {
	Token      token.Token // the `print` token
	Value      Expression
	SourceSpan source.Span
}

func (s *Print) StmtKind() StmtKind { return KindPrint }
func (s *Print) Span() source.Span  { return s.SourceSpan }
func (s *Print) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

// StatementsBlock is an ordered sequence of Statements: `{ ... }`.
type StatementsBlock struct {
	Token      token.Token // the `{` token
	Statements []Statement
	SourceSpan source.Span
}

func (s *StatementsBlock) StmtKind() StmtKind { return KindStatementsBlock }
func (s *StatementsBlock) Span() source.Span  { return s.SourceSpan }
func (s *StatementsBlock) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

// ExpressionStatement wraps a bare call used as a statement: `ident ( Args ) ;`.
type ExpressionStatement struct {
	Token      token.Token
	Call       *CallFunction
	SourceSpan source.Span
}

func (s *ExpressionStatement) StmtKind() StmtKind { return KindExpressionStatement }
func (s *ExpressionStatement) Span() source.Span  { return s.SourceSpan }
func (s *ExpressionStatement) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

// BadStatement is a synthesized placeholder left by parser error
// recovery; semantic passes skip it and its (nonexistent) children.
type BadStatement struct {
	Token      token.Token
	SourceSpan source.Span
}

func (s *BadStatement) StmtKind() StmtKind { return KindBadStatement }
func (s *BadStatement) Span() source.Span  { return s.SourceSpan }
func (s *BadStatement) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}
