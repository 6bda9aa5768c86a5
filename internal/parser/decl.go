package parser

import (
	"github.com/anycow/vuglang/internal/ast"
	"github.com/anycow/vuglang/internal/diagnostics"
	"github.com/anycow/vuglang/internal/source"
	"github.com/anycow/vuglang/internal/token"
)

// parseDeclarationRecovering wraps parseDeclaration with the
// ParsingException recovery contract: on failure it reports the
// diagnostic, resynchronizes to the next declaration boundary, and
// returns a BadDeclaration in place of the malformed one.
func (p *Parser) parseDeclarationRecovering() (decl ast.Declaration) {
	startTok := p.curToken
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(parseException)
			if !ok {
				panic(r)
			}
			p.diags.Add(pe.diag)
			p.synchronizeDeclaration()
			decl = &ast.BadDeclaration{Token: startTok, SourceSpan: startTok.Span}
		}
	}()
	return p.parseDeclaration()
}

func (p *Parser) parseDeclaration() ast.Declaration {
	p.enterRecursive()
	defer p.leaveRecursive()

	switch p.curToken.Type {
	case token.MOD:
		return p.parseModuleDeclaration()
	case token.FUNC:
		return p.parseFunctionDeclaration()
	default:
		p.fail(diagnostics.NewError(diagnostics.PErrUnexpectedToken, p.curToken,
			"expected 'mod' or 'func', got %s", p.curToken.Type))
		panic("unreachable")
	}
}

// parseModuleDeclaration parses `mod ident DeclBlock`.
func (p *Parser) parseModuleDeclaration() ast.Declaration {
	modTok := p.curToken

	p.expectPeek(token.IDENT)
	name := p.curToken.Lexeme

	p.expectPeek(token.LBRACE)
	body := p.parseDeclarationsBlock()

	return &ast.ModuleDeclaration{
		Token:      modTok,
		Name:       name,
		Body:       body,
		SourceSpan: source.Merge(modTok.Span, body.Span()),
	}
}

// parseDeclarationsBlock parses `{ Declaration* }`. curToken is the `{`
// on entry; on return curToken is the closing `}`.
func (p *Parser) parseDeclarationsBlock() *ast.DeclarationsBlock {
	braceTok := p.curToken
	block := &ast.DeclarationsBlock{Token: braceTok}

	p.nextToken() // move past `{`
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		decl := p.parseDeclarationRecovering()
		block.Declarations = append(block.Declarations, decl)
		// A recovered declaration already leaves curToken on the
		// boundary synchronizeDeclaration found (possibly this block's
		// own closing brace); only a normal declaration needs skipping
		// past its own trailing token here.
		if _, bad := decl.(*ast.BadDeclaration); !bad {
			p.nextToken()
		}
	}
	if !p.curTokenIs(token.RBRACE) {
		p.diags.Add(diagnostics.NewError(diagnostics.PErrUnexpectedToken, p.curToken,
			"unterminated declarations block, expected '}'"))
		block.SourceSpan = source.Merge(braceTok.Span, p.curToken.Span)
		return block
	}
	block.SourceSpan = source.Merge(braceTok.Span, p.curToken.Span)
	return block
}

// parseFunctionDeclaration parses `func ident ( Params ) -> typeIdent StmtBlock`.
func (p *Parser) parseFunctionDeclaration() ast.Declaration {
	funcTok := p.curToken

	p.expectPeek(token.IDENT)
	name := p.curToken.Lexeme

	p.expectPeek(token.LPAREN)
	params := p.parseParameters()
	// parseParameters leaves curToken on RPAREN.

	p.expectPeek(token.ARROW)
	p.expectPeek(token.IDENT)
	returnType := &ast.TypeRef{Token: p.curToken, Name: p.curToken.Lexeme}

	p.expectPeek(token.LBRACE)
	body := p.parseStatementsBlock()

	return &ast.FunctionDeclaration{
		Token:      funcTok,
		Name:       name,
		Parameters: params,
		ReturnType: returnType,
		Body:       body,
		SourceSpan: source.Merge(funcTok.Span, body.Span()),
	}
}

// parseParameters parses `Params = ε | Param (',' Param)*` where
// `Param = typeIdent ident`. curToken is `(` on entry; on return curToken
// is `)`.
func (p *Parser) parseParameters() []*ast.FunctionParameter {
	var params []*ast.FunctionParameter

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}

	p.nextToken() // move to first param's type ident
	params = append(params, p.parseParameter())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken() // consume ','
		p.nextToken() // move to next param's type ident
		params = append(params, p.parseParameter())
	}

	p.expectPeek(token.RPAREN)
	return params
}

func (p *Parser) parseParameter() *ast.FunctionParameter {
	if !p.curTokenIs(token.IDENT) {
		p.fail(diagnostics.NewError(diagnostics.PErrExpectedType, p.curToken,
			"expected parameter type, got %s", p.curToken.Type))
	}
	typeTok := p.curToken
	typeRef := &ast.TypeRef{Token: typeTok, Name: typeTok.Lexeme}

	p.expectPeek(token.IDENT)
	nameTok := p.curToken

	return &ast.FunctionParameter{
		Token:      nameTok,
		Type:       typeRef,
		Name:       nameTok.Lexeme,
		SourceSpan: source.Merge(typeTok.Span, nameTok.Span),
	}
}
