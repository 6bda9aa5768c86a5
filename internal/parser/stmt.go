package parser

import (
	"github.com/anycow/vuglang/internal/ast"
	"github.com/anycow/vuglang/internal/diagnostics"
	"github.com/anycow/vuglang/internal/source"
	"github.com/anycow/vuglang/internal/token"
)

// parseStatementsBlock parses `{ Statement* }`. curToken is `{` on
// entry; on return curToken is the closing `}`.
func (p *Parser) parseStatementsBlock() *ast.StatementsBlock {
	braceTok := p.curToken
	block := &ast.StatementsBlock{Token: braceTok}

	p.nextToken() // move past `{`
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatementRecovering()
		block.Statements = append(block.Statements, stmt)
		// A normal statement always ends on its own (inner) token and
		// needs skipping past. A recovered one only needs skipping when
		// synchronizeStatement stopped on the ';' that ended it; when it
		// stopped on a '}' instead, that brace is this block's own
		// closing brace and must be left for the loop condition below.
		_, isBad := stmt.(*ast.BadStatement)
		if !isBad || !p.curTokenIs(token.RBRACE) {
			p.nextToken()
		}
	}
	if !p.curTokenIs(token.RBRACE) {
		p.diags.Add(diagnostics.NewError(diagnostics.PErrUnexpectedToken, p.curToken,
			"unterminated statements block, expected '}'"))
		block.SourceSpan = source.Merge(braceTok.Span, p.curToken.Span)
		return block
	}
	block.SourceSpan = source.Merge(braceTok.Span, p.curToken.Span)
	return block
}

// parseStatementRecovering wraps parseStatement with the ParsingException
// recovery contract.
func (p *Parser) parseStatementRecovering() (stmt ast.Statement) {
	startTok := p.curToken
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(parseException)
			if !ok {
				panic(r)
			}
			p.diags.Add(pe.diag)
			p.synchronizeStatement()
			stmt = &ast.BadStatement{Token: startTok, SourceSpan: startTok.Span}
		}
	}()
	return p.parseStatement()
}

func (p *Parser) parseStatement() ast.Statement {
	p.enterRecursive()
	defer p.leaveRecursive()

	switch p.curToken.Type {
	case token.LBRACE:
		return p.parseStatementsBlock()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.BREAK:
		return p.parseBreak()
	case token.VAR:
		return p.parseLocalVariableDeclaration()
	case token.RETURN:
		return p.parseReturn()
	case token.PRINT:
		return p.parsePrint()
	case token.IDENT:
		return p.parseIdentStatement()
	default:
		p.fail(diagnostics.NewError(diagnostics.PErrUnexpectedToken, p.curToken,
			"unexpected token %s at start of statement", p.curToken.Type))
		panic("unreachable")
	}
}

// parseIdentStatement disambiguates `ident = Expr ;` (Assign) from
// `ident ( Args ) ;` (a bare call-statement, ExpressionStatement).
func (p *Parser) parseIdentStatement() ast.Statement {
	nameTok := p.curToken
	switch p.peekToken.Type {
	case token.ASSIGN:
		p.nextToken() // curToken = '='
		p.nextToken() // curToken = first token of value
		value := p.parseExpression()
		stmt := &ast.Assign{
			Token:      nameTok,
			Name:       nameTok.Lexeme,
			Value:      value,
			SourceSpan: source.Merge(nameTok.Span, p.curToken.Span),
		}
		p.expectSemicolon()
		stmt.SourceSpan = source.Merge(nameTok.Span, p.curToken.Span)
		return stmt
	case token.LPAREN:
		p.nextToken() // curToken = '('
		call := p.parseCallFunction(nameTok)
		stmt := &ast.ExpressionStatement{
			Token:      nameTok,
			Call:       call,
			SourceSpan: source.Merge(nameTok.Span, p.curToken.Span),
		}
		p.expectSemicolon()
		stmt.SourceSpan = source.Merge(nameTok.Span, p.curToken.Span)
		return stmt
	default:
		p.fail(diagnostics.NewError(diagnostics.PErrUnexpectedToken, p.peekToken,
			"expected '=' or '(' after identifier %q, got %s", nameTok.Lexeme, p.peekToken.Type))
		panic("unreachable")
	}
}

// parseLocalVariableDeclaration parses `var typeIdent ident = Expr ;`.
func (p *Parser) parseLocalVariableDeclaration() ast.Statement {
	varTok := p.curToken

	p.expectPeek(token.IDENT)
	typeTok := p.curToken
	typeRef := &ast.TypeRef{Token: typeTok, Name: typeTok.Lexeme}

	p.expectPeek(token.IDENT)
	nameTok := p.curToken

	p.expectPeek(token.ASSIGN)
	p.nextToken() // curToken = first token of initializer
	init := p.parseExpression()

	stmt := &ast.LocalVariableDeclaration{
		Token:       varTok,
		Type:        typeRef,
		Name:        nameTok.Lexeme,
		Initializer: init,
	}
	p.expectSemicolon()
	stmt.SourceSpan = source.Merge(varTok.Span, p.curToken.Span)
	return stmt
}

// parseIf parses `if ( Expr ) StmtBlock (else (If | StmtBlock))?`.
func (p *Parser) parseIf() ast.Statement {
	ifTok := p.curToken

	p.expectPeek(token.LPAREN)
	p.nextToken() // curToken = first token of condition
	cond := p.parseExpression()
	p.expectPeek(token.RPAREN)

	p.expectPeek(token.LBRACE)
	then := p.parseStatementsBlock()

	stmt := &ast.If{Token: ifTok, Condition: cond, Then: then}

	if p.peekTokenIs(token.ELSE) {
		p.nextToken() // curToken = 'else'
		switch p.peekToken.Type {
		case token.IF:
			p.nextToken() // curToken = 'if'
			stmt.Else = p.parseIf()
		case token.LBRACE:
			p.nextToken() // curToken = '{'
			stmt.Else = p.parseStatementsBlock()
		default:
			p.fail(diagnostics.NewError(diagnostics.PErrUnexpectedToken, p.peekToken,
				"expected 'if' or '{' after 'else', got %s", p.peekToken.Type))
		}
		stmt.SourceSpan = source.Merge(ifTok.Span, stmt.Else.Span())
		return stmt
	}

	stmt.SourceSpan = source.Merge(ifTok.Span, then.Span())
	return stmt
}

// parseWhile parses `while ( Expr ) StmtBlock`.
func (p *Parser) parseWhile() ast.Statement {
	whileTok := p.curToken

	p.expectPeek(token.LPAREN)
	p.nextToken() // curToken = first token of condition
	cond := p.parseExpression()
	p.expectPeek(token.RPAREN)

	p.expectPeek(token.LBRACE)
	body := p.parseStatementsBlock()

	return &ast.While{
		Token:      whileTok,
		Condition:  cond,
		Body:       body,
		SourceSpan: source.Merge(whileTok.Span, body.Span()),
	}
}

// parseBreak parses `break ;`.
func (p *Parser) parseBreak() ast.Statement {
	breakTok := p.curToken
	stmt := &ast.Break{Token: breakTok}
	p.expectSemicolon()
	stmt.SourceSpan = source.Merge(breakTok.Span, p.curToken.Span)
	return stmt
}

// parseReturn parses `return Expr ;`.
func (p *Parser) parseReturn() ast.Statement {
	returnTok := p.curToken
	p.nextToken() // curToken = first token of value
	value := p.parseExpression()
	stmt := &ast.Return{Token: returnTok, Value: value}
	p.expectSemicolon()
	stmt.SourceSpan = source.Merge(returnTok.Span, p.curToken.Span)
	return stmt
}

// parsePrint parses `print Expr ;`.
func (p *Parser) parsePrint() ast.Statement {
	printTok := p.curToken
	p.nextToken() // curToken = first token of value
	value := p.parseExpression()
	stmt := &ast.Print{Token: printTok, Value: value}
	p.expectSemicolon()
	stmt.SourceSpan = source.Merge(printTok.Span, p.curToken.Span)
	return stmt
}
