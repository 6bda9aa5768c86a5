package lexer_test

import (
	"testing"

	"github.com/anycow/vuglang/internal/lexer"
	"github.com/anycow/vuglang/internal/source"
	"github.com/anycow/vuglang/internal/token"
)

func scanAll(t *testing.T, text string) []token.Token {
	t.Helper()
	f := source.New("test.vg", text)
	l := lexer.New(f)
	toks, fatal := l.Drain()
	if fatal != nil {
		t.Fatalf("unexpected fatal lex error: %v", fatal)
	}
	return toks
}

func assertTypes(t *testing.T, toks []token.Token, want ...token.Type) {
	t.Helper()
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestKeywordsAndIdents(t *testing.T) {
	toks := scanAll(t, "var x mod FuncName")
	assertTypes(t, toks, token.VAR, token.IDENT, token.MOD, token.IDENT, token.EOF)
	if toks[1].Literal != "x" {
		t.Fatalf("identifier literal = %v, want \"x\"", toks[1].Literal)
	}
}

func TestTwoCharOperators(t *testing.T) {
	toks := scanAll(t, "-> != || && <= >= ==")
	assertTypes(t, toks,
		token.ARROW, token.NOT_EQ, token.OR_OR, token.AND_AND,
		token.LTE, token.GTE, token.EQ, token.EOF)
}

func TestSingleCharFallbackAfterFailedTwoChar(t *testing.T) {
	toks := scanAll(t, "= < > ! - | &")
	assertTypes(t, toks,
		token.ASSIGN, token.LT, token.GT, token.BANG, token.MINUS,
		token.PIPE, token.AMPERSAND, token.EOF)
}

func TestNumberLiteralPlain(t *testing.T) {
	toks := scanAll(t, "42")
	assertTypes(t, toks, token.NUMBER, token.EOF)
	lit, ok := toks[0].Literal.(token.NumberLiteral)
	if !ok {
		t.Fatalf("literal type = %T, want token.NumberLiteral", toks[0].Literal)
	}
	if lit.Value != 42 || lit.Suffix != "" {
		t.Fatalf("literal = %+v, want {42 \"\"}", lit)
	}
}

func TestNumberLiteralWithSuffix(t *testing.T) {
	for _, suffix := range []string{"u8", "u16", "u32", "u64", "i8", "i16", "i32", "i64"} {
		toks := scanAll(t, "7"+suffix)
		assertTypes(t, toks, token.NUMBER, token.EOF)
		lit := toks[0].Literal.(token.NumberLiteral)
		if lit.Value != 7 || lit.Suffix != suffix {
			t.Fatalf("suffix %s: literal = %+v", suffix, lit)
		}
	}
}

func TestNumberFollowedByIdentNotMistakenForSuffix(t *testing.T) {
	toks := scanAll(t, "7 unsigned")
	assertTypes(t, toks, token.NUMBER, token.IDENT, token.EOF)
	lit := toks[0].Literal.(token.NumberLiteral)
	if lit.Suffix != "" {
		t.Fatalf("suffix = %q, want empty", lit.Suffix)
	}
	if toks[1].Lexeme != "unsigned" {
		t.Fatalf("second token lexeme = %q, want \"unsigned\"", toks[1].Lexeme)
	}
}

func TestStringLiteral(t *testing.T) {
	toks := scanAll(t, `"hello world"`)
	assertTypes(t, toks, token.STRING, token.EOF)
	if toks[0].Literal != "hello world" {
		t.Fatalf("literal = %v", toks[0].Literal)
	}
}

func TestUnterminatedStringIsFatal(t *testing.T) {
	f := source.New("test.vg", `"unterminated`)
	l := lexer.New(f)
	_, fatal := l.Drain()
	if fatal == nil {
		t.Fatal("expected fatal error for unterminated string, got none")
	}
}

func TestTabAdvancesColumnByFour(t *testing.T) {
	f := source.New("test.vg", "\tx")
	l := lexer.New(f)
	tok := l.Next()
	if tok.Span.StartCol != 5 {
		t.Fatalf("column after tab = %d, want 5", tok.Span.StartCol)
	}
}

func TestNewlineAdvancesLineAndResetsColumn(t *testing.T) {
	f := source.New("test.vg", "x\ny")
	l := lexer.New(f)
	l.Next() // x
	tok := l.Next()
	if tok.Span.StartLine != 2 {
		t.Fatalf("line = %d, want 2", tok.Span.StartLine)
	}
	if tok.Span.StartCol != 1 {
		t.Fatalf("column = %d, want 1", tok.Span.StartCol)
	}
}

func TestRevertReplaysFromSavedToken(t *testing.T) {
	f := source.New("test.vg", "var x = 1;")
	l := lexer.New(f)
	first := l.Next()
	second := l.Next()
	l.Revert(first)
	replay := l.Next()
	if !replay.Equal(second) {
		t.Fatalf("replayed token %v, want %v", replay, second)
	}
}

func TestMatchConsumesOnHitAndRestoresOnMiss(t *testing.T) {
	f := source.New("test.vg", "= =")
	l := lexer.New(f)
	if !l.Match(token.ASSIGN) {
		t.Fatal("expected Match(ASSIGN) to succeed")
	}
	if l.Match(token.EOF) {
		t.Fatal("expected Match(EOF) to fail and restore position")
	}
	next := l.Next()
	if next.Type != token.ASSIGN {
		t.Fatalf("after failed Match, Next() = %s, want ASSIGN", next.Type)
	}
}

func TestIllegalCharacter(t *testing.T) {
	toks := scanAll(t, "@")
	assertTypes(t, toks, token.ILLEGAL, token.EOF)
}

func TestBracketsAndPunctuation(t *testing.T) {
	toks := scanAll(t, "( ) { } [ ] , ;")
	assertTypes(t, toks,
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.LBRACKET, token.RBRACKET, token.COMMA, token.SEMICOLON, token.EOF)
}
