package ast

import (
	"github.com/anycow/vuglang/internal/source"
	"github.com/anycow/vuglang/internal/symbols"
	"github.com/anycow/vuglang/internal/token"
)

// ModuleDeclaration is the AST root: `mod ident { ... }`.
type ModuleDeclaration struct {
	Token     token.Token // the `mod` token
	Name      string
	Body      *DeclarationsBlock
	Symbol    *symbols.Symbol // ModuleSymbol, filled by ModuleDefinitionPass
	SourceSpan source.Span
}

func (d *ModuleDeclaration) DeclKind() DeclKind { return KindModuleDeclaration }
func (d *ModuleDeclaration) Span() source.Span  { return d.SourceSpan }
func (d *ModuleDeclaration) GetToken() token.Token {
	if d == nil {
		return token.Token{}
	}
	return d.Token
}

// DeclarationsBlock is an ordered sequence of Declarations: `{ ... }`.
type DeclarationsBlock struct {
	Token        token.Token // the `{` token
	Declarations []Declaration
	SourceSpan   source.Span
}

func (d *DeclarationsBlock) DeclKind() DeclKind { return KindDeclarationsBlock }
func (d *DeclarationsBlock) Span() source.Span  { return d.SourceSpan }
func (d *DeclarationsBlock) GetToken() token.Token {
	if d == nil {
		return token.Token{}
	}
	return d.Token
}

// FunctionDeclaration is `func ident ( Params ) -> typeIdent StmtBlock`.
type FunctionDeclaration struct {
	Token      token.Token // the `func` token
	Name       string
	Parameters []*FunctionParameter
	ReturnType *TypeRef
	Body       *StatementsBlock
	Symbol     *symbols.Symbol // FunctionSymbol, filled by ModuleDefinitionPass
	SourceSpan source.Span
}

func (d *FunctionDeclaration) DeclKind() DeclKind { return KindFunctionDeclaration }
func (d *FunctionDeclaration) Span() source.Span  { return d.SourceSpan }
func (d *FunctionDeclaration) GetToken() token.Token {
	if d == nil {
		return token.Token{}
	}
	return d.Token
}

// FunctionParameter is `typeIdent ident`, with an optional default-value
// expression carried by the data model though the current grammar never
// produces one (no default-value syntax is parsed).
type FunctionParameter struct {
	Token        token.Token // the parameter name token
	Type         *TypeRef
	Name         string
	DefaultValue Expression // always nil for now; see data-model note
	Symbol       *symbols.Symbol // LocalVariableSymbol, filled by GlobalScopePass
	SourceSpan   source.Span
}

func (d *FunctionParameter) DeclKind() DeclKind { return KindFunctionParameter }
func (d *FunctionParameter) Span() source.Span  { return d.SourceSpan }
func (d *FunctionParameter) GetToken() token.Token {
	if d == nil {
		return token.Token{}
	}
	return d.Token
}

// BadDeclaration is a synthesized placeholder left by parser error
// recovery; semantic passes skip it and its (nonexistent) children.
type BadDeclaration struct {
	Token      token.Token
	SourceSpan source.Span
}

func (d *BadDeclaration) DeclKind() DeclKind { return KindBadDeclaration }
func (d *BadDeclaration) Span() source.Span  { return d.SourceSpan }
func (d *BadDeclaration) GetToken() token.Token {
	if d == nil {
		return token.Token{}
	}
	return d.Token
}
