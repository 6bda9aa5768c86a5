// Package parser implements a recursive-descent parser producing an AST
// with diagnostic-driven error recovery: a malformed declaration or
// statement is replaced with a Bad node and parsing resynchronizes at the
// next statement/declaration boundary.
package parser

import (
	"github.com/anycow/vuglang/internal/ast"
	"github.com/anycow/vuglang/internal/diagnostics"
	"github.com/anycow/vuglang/internal/lexer"
	"github.com/anycow/vuglang/internal/source"
	"github.com/anycow/vuglang/internal/stackguard"
	"github.com/anycow/vuglang/internal/token"
)

// Parser consumes a token stream and produces declarations, statements,
// and expressions. It holds a two-token lookahead buffer (curToken,
// peekToken), the idiom used throughout this pipeline's hand-written
// recursive-descent parsers.
type Parser struct {
	lex   *lexer.Lexer
	diags *diagnostics.Manager
	guard *stackguard.Guard

	curToken  token.Token
	peekToken token.Token
}

// New returns a Parser reading from lex and reporting through diags.
func New(lex *lexer.Lexer, diags *diagnostics.Manager) *Parser {
	p := &Parser{lex: lex, diags: diags, guard: stackguard.New()}
	p.nextToken()
	p.nextToken()
	return p
}

// parseException unwinds a malformed production to its nearest
// statement/declaration boundary; it always carries the diagnostic that
// caused the unwind so the entry point can report it exactly once.
type parseException struct {
	diag *diagnostics.Diagnostic
}

func (p *Parser) fail(diag *diagnostics.Diagnostic) {
	panic(parseException{diag: diag})
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.readNext()
}

// readNext pulls the next token from the lexer, converting an unterminated
// string's *lexer.FatalError panic (spec §4.1: "the lexer does not emit
// diagnostics directly; the parser surfaces them") into a Fatal diagnostic
// plus a synthesized EOF token, rather than letting it escape the parser
// entirely. The lexer's own position is left at the end of input by the
// panic site, so every subsequent call here returns EOF without panicking
// again.
func (p *Parser) readNext() (tok token.Token) {
	defer func() {
		if r := recover(); r != nil {
			fe, ok := r.(*lexer.FatalError)
			if !ok {
				panic(r)
			}
			p.diags.Add(diagnostics.NewDiagnostic(diagnostics.Fatal, diagnostics.LErrUnterminatedString,
				token.Token{Span: fe.Span}, "%s", fe.Message))
			tok = token.Token{Type: token.EOF, Span: fe.Span}
		}
	}()
	return p.lex.Next()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

// expectPeek consumes peekToken if it matches t, else raises a parse
// exception describing what was expected. The diagnostic code narrows to
// PErrUnexpectedEOF when input ran out early, else to PErrExpectedIdent
// when an identifier specifically was expected, else the generic
// PErrUnexpectedToken.
func (p *Parser) expectPeek(t token.Type) {
	if p.peekTokenIs(t) {
		p.nextToken()
		return
	}
	code := diagnostics.PErrUnexpectedToken
	switch {
	case p.peekTokenIs(token.EOF):
		code = diagnostics.PErrUnexpectedEOF
	case t == token.IDENT:
		code = diagnostics.PErrExpectedIdent
	}
	p.fail(diagnostics.NewError(code, p.peekToken,
		"expected %s, got %s", t, p.peekToken.Type))
}

// expectSemicolon consumes a trailing `;`, or raises a parse exception
// carrying a suggested fix that inserts one at the end of the previous
// token's line.
func (p *Parser) expectSemicolon() {
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		return
	}
	diag := diagnostics.NewError(diagnostics.PErrExpectedSemicolon, p.curToken,
		"expected ';' after statement")
	if f := p.curToken.Span.File; f != nil {
		line := f.Line(p.curToken.Span.EndLine)
		diag.WithFix(diagnostics.Fix{
			Description: "insert ';'",
			Diffs: []diagnostics.Diff{{
				File:        f,
				Line:        p.curToken.Span.EndLine,
				OldText:     source.TrimIndent(line),
				Replacement: source.TrimIndent(line) + ";",
			}},
		})
	}
	p.fail(diag)
}

func (p *Parser) enterRecursive() {
	if err := p.guard.Enter(); err != nil {
		p.fail(diagnostics.NewDiagnostic(diagnostics.Fatal, diagnostics.EErrStackOverflow, p.curToken,
			"parser: %s", err))
	}
}

func (p *Parser) leaveRecursive() { p.guard.Leave() }

// ParseProgram parses a single compilation unit: one top-level
// Declaration followed by EOF. It always returns a non-nil root, which
// may be a *ast.BadDeclaration if recovery discarded the only top-level
// declaration.
func (p *Parser) ParseProgram() ast.Declaration {
	decl := p.parseDeclarationRecovering()
	if !p.curTokenIs(token.EOF) && !p.peekTokenIs(token.EOF) {
		p.diags.Add(diagnostics.NewError(diagnostics.PErrUnexpectedToken, p.peekToken,
			"unexpected trailing input after top-level declaration: %s", p.peekToken.Type))
	}
	return decl
}

// synchronizeDeclaration skips tokens until it reaches a `}` at bracket
// depth 0, or EOF. Nested braces are tracked so a `}` belonging to an
// inner block is not mistaken for the boundary. It stops ON that token,
// matching every other declaration parser's contract of leaving curToken
// on the last token it consumed; the enclosing block loop advances past
// it before looking for the next declaration.
func (p *Parser) synchronizeDeclaration() {
	depth := 0
	for {
		switch p.curToken.Type {
		case token.EOF:
			return
		case token.LBRACE:
			depth++
		case token.RBRACE:
			if depth == 0 {
				return
			}
			depth--
		}
		p.nextToken()
	}
}

// synchronizeStatement skips tokens until it reaches a `;` or a `}` at
// bracket depth 0, or EOF, stopping ON that token for the same reason
// synchronizeDeclaration does.
func (p *Parser) synchronizeStatement() {
	depth := 0
	for {
		switch p.curToken.Type {
		case token.EOF:
			return
		case token.SEMICOLON:
			if depth == 0 {
				return
			}
		case token.LBRACE:
			depth++
		case token.RBRACE:
			if depth == 0 {
				return
			}
			depth--
		}
		p.nextToken()
	}
}
