package parser_test

import (
	"testing"

	"github.com/anycow/vuglang/internal/ast"
	"github.com/anycow/vuglang/internal/diagnostics"
	"github.com/anycow/vuglang/internal/lexer"
	"github.com/anycow/vuglang/internal/parser"
	"github.com/anycow/vuglang/internal/source"
	"github.com/anycow/vuglang/internal/typesys"
)

func parse(t *testing.T, text string) (ast.Declaration, *diagnostics.Manager) {
	t.Helper()
	f := source.New("t.vg", text)
	l := lexer.New(f)
	diags := diagnostics.NewManager()
	p := parser.New(l, diags)
	return p.ParseProgram(), diags
}

func singleFunctionBody(t *testing.T, root ast.Declaration) *ast.StatementsBlock {
	t.Helper()
	mod, ok := root.(*ast.ModuleDeclaration)
	if !ok {
		t.Fatalf("root = %T, want *ast.ModuleDeclaration", root)
	}
	if len(mod.Body.Declarations) != 1 {
		t.Fatalf("module has %d declarations, want 1", len(mod.Body.Declarations))
	}
	fn, ok := mod.Body.Declarations[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("declaration = %T, want *ast.FunctionDeclaration", mod.Body.Declarations[0])
	}
	return fn.Body
}

func TestParsesMinimalModule(t *testing.T) {
	root, diags := parse(t, `mod m { func main() -> int32 { return 0; } }`)
	if diags.Count() != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
	mod, ok := root.(*ast.ModuleDeclaration)
	if !ok {
		t.Fatalf("root = %T, want *ast.ModuleDeclaration", root)
	}
	if mod.Name != "m" {
		t.Fatalf("module name = %q, want \"m\"", mod.Name)
	}
}

func TestArithmeticPrecedenceTreeShape(t *testing.T) {
	root, diags := parse(t, `mod m { func main() -> int32 { return 1 + 2 * 3; } }`)
	if diags.Count() != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
	body := singleFunctionBody(t, root)
	ret := body.Statements[0].(*ast.Return)
	bin, ok := ret.Value.(*ast.BinaryOperation)
	if !ok {
		t.Fatalf("return value = %T, want *ast.BinaryOperation", ret.Value)
	}
	if bin.Operator != typesys.OpAdd {
		t.Fatalf("top operator = %v, want +  (multiplication should bind tighter)", bin.Operator)
	}
	if _, ok := bin.Right.(*ast.BinaryOperation); !ok {
		t.Fatalf("right operand = %T, want nested *ast.BinaryOperation for 2 * 3", bin.Right)
	}
}

func TestLeftAssociativeAdditiveChain(t *testing.T) {
	root, diags := parse(t, `mod m { func main() -> int32 { return 1 - 2 - 3; } }`)
	if diags.Count() != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
	body := singleFunctionBody(t, root)
	ret := body.Statements[0].(*ast.Return)
	top := ret.Value.(*ast.BinaryOperation)
	// (1 - 2) - 3: the left child is itself a subtraction, the right is a
	// plain literal.
	if _, ok := top.Left.(*ast.BinaryOperation); !ok {
		t.Fatalf("left-associativity violated: left operand = %T, want nested BinaryOperation", top.Left)
	}
	if _, ok := top.Right.(*ast.Number); !ok {
		t.Fatalf("left-associativity violated: right operand = %T, want *ast.Number", top.Right)
	}
}

func TestRelationalChainIsNonAssociativeParseError(t *testing.T) {
	_, diags := parse(t, `mod m { func main() -> int32 { return 1 < 2 < 3; } }`)
	if diags.Count() == 0 {
		t.Fatal("expected a parse error for chained non-associative relational operators")
	}
}

func TestEqualityChainIsNonAssociativeParseError(t *testing.T) {
	_, diags := parse(t, `mod m { func main() -> int32 { return 1 == 2 == 3; } }`)
	if diags.Count() == 0 {
		t.Fatal("expected a parse error for chained non-associative equality operators")
	}
}

func TestElseIfChaining(t *testing.T) {
	root, diags := parse(t, `mod m { func main() -> int32 {
		if (false) { return 1; } else if (true) { return 2; } else { return 3; }
	} }`)
	if diags.Count() != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
	body := singleFunctionBody(t, root)
	outer := body.Statements[0].(*ast.If)
	if _, ok := outer.Else.(*ast.If); !ok {
		t.Fatalf("else branch = %T, want nested *ast.If for else-if", outer.Else)
	}
}

func TestExpressionStatementCallIsParsed(t *testing.T) {
	root, diags := parse(t, `mod m {
		func helper() -> int32 { return 1; }
		func main() -> int32 { helper(); return 0; }
	}`)
	if diags.Count() != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
	mod := root.(*ast.ModuleDeclaration)
	main := mod.Body.Declarations[1].(*ast.FunctionDeclaration)
	if _, ok := main.Body.Statements[0].(*ast.ExpressionStatement); !ok {
		t.Fatalf("first statement = %T, want *ast.ExpressionStatement", main.Body.Statements[0])
	}
}

func TestMissingSemicolonRecordsFixSuggestingInsertion(t *testing.T) {
	_, diags := parse(t, `mod m { func main() -> int32 { var int32 x = 1 return 0; } }`)
	all := diags.All()
	if len(all) == 0 {
		t.Fatal("expected a diagnostic for the missing semicolon")
	}
	d := all[0]
	if d.Code != diagnostics.PErrExpectedSemicolon {
		t.Fatalf("code = %v, want PErrExpectedSemicolon", d.Code)
	}
	if len(d.Fixes) != 1 || len(d.Fixes[0].Diffs) != 1 {
		t.Fatalf("expected exactly one suggested fix with one diff, got %+v", d.Fixes)
	}
	got := d.Fixes[0].Diffs[0].Replacement
	if got[len(got)-1] != ';' {
		t.Fatalf("suggested replacement %q does not end with ';'", got)
	}
}

func TestUnaryPlusParsesAsPrefixOperation(t *testing.T) {
	root, diags := parse(t, `mod m { func main() -> int32 { return +5; } }`)
	if diags.Count() != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
	body := singleFunctionBody(t, root)
	ret := body.Statements[0].(*ast.Return)
	prefix, ok := ret.Value.(*ast.PrefixOperation)
	if !ok {
		t.Fatalf("return value = %T, want *ast.PrefixOperation", ret.Value)
	}
	if prefix.Operator != typesys.OpPos {
		t.Fatalf("operator = %v, want OpPos", prefix.Operator)
	}
}

func TestBadDeclarationRecoversAndResynchronizes(t *testing.T) {
	root, diags := parse(t, `mod m { func main() -> int32 { return 0; } 123 }`)
	if diags.Count() == 0 {
		t.Fatal("expected a diagnostic for the malformed declaration")
	}
	mod := root.(*ast.ModuleDeclaration)
	if len(mod.Body.Declarations) != 2 {
		t.Fatalf("declarations = %d, want 2 (recovered func + bad decl)", len(mod.Body.Declarations))
	}
	if _, ok := mod.Body.Declarations[0].(*ast.FunctionDeclaration); !ok {
		t.Fatalf("first declaration = %T, want *ast.FunctionDeclaration", mod.Body.Declarations[0])
	}
	if _, ok := mod.Body.Declarations[1].(*ast.BadDeclaration); !ok {
		t.Fatalf("second declaration = %T, want *ast.BadDeclaration", mod.Body.Declarations[1])
	}
}
