package parser

import (
	"github.com/anycow/vuglang/internal/ast"
	"github.com/anycow/vuglang/internal/diagnostics"
	"github.com/anycow/vuglang/internal/source"
	"github.com/anycow/vuglang/internal/token"
	"github.com/anycow/vuglang/internal/typesys"
)

var binaryOps = map[token.Type]typesys.Op{
	token.OR_OR:     typesys.OpLogOr,
	token.AND_AND:   typesys.OpLogAnd,
	token.PIPE:      typesys.OpOr,
	token.CARET:     typesys.OpXor,
	token.AMPERSAND: typesys.OpAnd,
	token.EQ:        typesys.OpEq,
	token.NOT_EQ:    typesys.OpNotEq,
	token.LT:        typesys.OpLt,
	token.LTE:       typesys.OpLte,
	token.GT:        typesys.OpGt,
	token.GTE:       typesys.OpGte,
	token.PLUS:      typesys.OpAdd,
	token.MINUS:     typesys.OpSub,
	token.ASTERISK:  typesys.OpMul,
	token.SLASH:     typesys.OpDiv,
	token.PERCENT:   typesys.OpMod,
}

// parseExpression is the entry point, starting at the lowest-precedence
// level (`||`). curToken is the first token of the expression on entry;
// on return curToken is the last token consumed by the expression.
func (p *Parser) parseExpression() ast.Expression {
	p.enterRecursive()
	defer p.leaveRecursive()
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() ast.Expression {
	return p.parseLeftAssoc(p.parseLogicalAnd, token.OR_OR)
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	return p.parseLeftAssoc(p.parseBitwiseOr, token.AND_AND)
}

func (p *Parser) parseBitwiseOr() ast.Expression {
	return p.parseLeftAssoc(p.parseBitwiseXor, token.PIPE)
}

func (p *Parser) parseBitwiseXor() ast.Expression {
	return p.parseLeftAssoc(p.parseBitwiseAnd, token.CARET)
}

func (p *Parser) parseBitwiseAnd() ast.Expression {
	return p.parseLeftAssoc(p.parseEquality, token.AMPERSAND)
}

// parseEquality and parseRelational are non-associative: at most one
// operator of that precedence group is consumed per chain (`a == b == c`
// is a parse error, not a left-to-right chain).
func (p *Parser) parseEquality() ast.Expression {
	return p.parseNonAssoc(p.parseRelational, token.EQ, token.NOT_EQ)
}

func (p *Parser) parseRelational() ast.Expression {
	return p.parseNonAssoc(p.parseAdditive, token.LT, token.LTE, token.GT, token.GTE)
}

func (p *Parser) parseAdditive() ast.Expression {
	return p.parseLeftAssoc(p.parseMultiplicative, token.PLUS, token.MINUS)
}

func (p *Parser) parseMultiplicative() ast.Expression {
	return p.parseLeftAssoc(p.parsePrefix, token.ASTERISK, token.SLASH, token.PERCENT)
}

func (p *Parser) parseLeftAssoc(next func() ast.Expression, ops ...token.Type) ast.Expression {
	left := next()
	for matchesAny(p.peekToken.Type, ops) {
		p.nextToken() // curToken = operator
		opTok := p.curToken
		p.nextToken() // curToken = first token of right operand
		right := next()
		left = &ast.BinaryOperation{
			Token:      opTok,
			Operator:   binaryOps[opTok.Type],
			Left:       left,
			Right:      right,
			SourceSpan: source.Merge(left.Span(), right.Span()),
		}
	}
	return left
}

func (p *Parser) parseNonAssoc(next func() ast.Expression, ops ...token.Type) ast.Expression {
	left := next()
	if !matchesAny(p.peekToken.Type, ops) {
		return left
	}
	p.nextToken() // curToken = operator
	opTok := p.curToken
	p.nextToken() // curToken = first token of right operand
	right := next()
	return &ast.BinaryOperation{
		Token:      opTok,
		Operator:   binaryOps[opTok.Type],
		Left:       left,
		Right:      right,
		SourceSpan: source.Merge(left.Span(), right.Span()),
	}
}

func matchesAny(t token.Type, ops []token.Type) bool {
	for _, op := range ops {
		if t == op {
			return true
		}
	}
	return false
}

// parsePrefix parses prefix `-`/`+`/`!`, right-associative.
func (p *Parser) parsePrefix() ast.Expression {
	if p.curTokenIs(token.MINUS) || p.curTokenIs(token.PLUS) || p.curTokenIs(token.BANG) {
		opTok := p.curToken
		var op typesys.Op
		switch opTok.Type {
		case token.MINUS:
			op = typesys.OpNeg
		case token.PLUS:
			op = typesys.OpPos
		case token.BANG:
			op = typesys.OpNot
		}
		p.nextToken() // curToken = first token of operand
		operand := p.parsePrefix()
		return &ast.PrefixOperation{
			Token:      opTok,
			Operator:   op,
			Operand:    operand,
			SourceSpan: source.Merge(opTok.Span, operand.Span()),
		}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.curToken.Type {
	case token.NUMBER:
		return p.parseNumber()
	case token.TRUE, token.FALSE:
		tok := p.curToken
		return &ast.BooleanLiteral{Token: tok, Value: tok.Type == token.TRUE, SourceSpan: tok.Span}
	case token.IDENT:
		nameTok := p.curToken
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken() // curToken = '('
			return p.parseCallFunction(nameTok)
		}
		return &ast.Identifier{Token: nameTok, Name: nameTok.Lexeme, SourceSpan: nameTok.Span}
	case token.LPAREN:
		p.nextToken() // curToken = first token of inner expr
		inner := p.parseExpression()
		p.expectPeek(token.RPAREN)
		return inner
	case token.ILLEGAL:
		p.fail(diagnostics.NewError(diagnostics.LErrIllegalCharacter, p.curToken,
			"%v", p.curToken.Literal))
		panic("unreachable")
	default:
		p.fail(diagnostics.NewError(diagnostics.PErrUnexpectedToken, p.curToken,
			"unexpected token %s in expression", p.curToken.Type))
		panic("unreachable")
	}
}

func (p *Parser) parseNumber() ast.Expression {
	tok := p.curToken
	lit, ok := tok.Literal.(token.NumberLiteral)
	if !ok {
		p.fail(diagnostics.NewError(diagnostics.LErrNumberOutOfRange, tok, "%v", tok.Literal))
	}
	return &ast.Number{Token: tok, Value: lit.Value, Suffix: lit.Suffix, SourceSpan: tok.Span}
}

// parseCallFunction parses `( Args )`. curToken is `(` on entry; on
// return curToken is `)`.
func (p *Parser) parseCallFunction(nameTok token.Token) *ast.CallFunction {
	call := &ast.CallFunction{Token: nameTok, Name: nameTok.Lexeme}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		call.SourceSpan = source.Merge(nameTok.Span, p.curToken.Span)
		return call
	}

	p.nextToken() // curToken = first token of first arg
	call.Arguments = append(call.Arguments, p.parseExpression())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken() // consume ','
		p.nextToken() // curToken = first token of next arg
		call.Arguments = append(call.Arguments, p.parseExpression())
	}

	p.expectPeek(token.RPAREN)
	call.SourceSpan = source.Merge(nameTok.Span, p.curToken.Span)
	return call
}
