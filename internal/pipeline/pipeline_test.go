package pipeline_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/anycow/vuglang/internal/analyzer"
	"github.com/anycow/vuglang/internal/diagnostics"
	"github.com/anycow/vuglang/internal/driver"
	"github.com/anycow/vuglang/internal/lexer"
	"github.com/anycow/vuglang/internal/parser"
	"github.com/anycow/vuglang/internal/pipeline"
	"github.com/anycow/vuglang/internal/source"
)

// compile runs text through the full lex -> parse -> analyze -> evaluate
// pipeline and returns the resulting Context, with stdout captured.
func compile(t *testing.T, name, text string) (*pipeline.Context, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	src := source.New(name, text)
	ctx := pipeline.NewContext(src, &out)
	pl := pipeline.New(
		lexer.Processor{},
		parser.Processor{},
		analyzer.Processor{},
		driver.ExecutionProcessor{},
	)
	return pl.Run(ctx), &out
}

func TestMainWithNoPrintExitsCleanly(t *testing.T) {
	ctx, out := compile(t, "t.vg", `mod m { func main() -> int32 { return 42; } }`)
	if ctx.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diags.All())
	}
	if out.String() != "" {
		t.Fatalf("stdout = %q, want empty", out.String())
	}
}

func TestArithmeticPrecedence(t *testing.T) {
	ctx, out := compile(t, "t.vg", `mod m { func main() -> int32 { var int32 x = 1 + 2 * 3; print x; return 0; } }`)
	if ctx.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diags.All())
	}
	if got := strings.TrimSpace(out.String()); got != "7" {
		t.Fatalf("stdout = %q, want \"7\"", got)
	}
}

func TestWhileLoopPrintsEachIteration(t *testing.T) {
	ctx, out := compile(t, "t.vg", `mod m { func main() -> int32 {
		var int32 i = 0;
		while (i < 3) { print i; i = i + 1; }
		return 0;
	} }`)
	if ctx.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diags.All())
	}
	want := "0\n1\n2\n"
	if out.String() != want {
		t.Fatalf("stdout = %q, want %q", out.String(), want)
	}
}

func TestBreakStopsLoopAtTarget(t *testing.T) {
	ctx, out := compile(t, "t.vg", `mod m { func main() -> int32 {
		var int32 i = 0;
		while (i < 10) { if (i == 2) { break; } i = i + 1; }
		print i;
		return 0;
	} }`)
	if ctx.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diags.All())
	}
	if got := strings.TrimSpace(out.String()); got != "2" {
		t.Fatalf("stdout = %q, want \"2\"", got)
	}
}

func TestMissingSemicolonReportsFixAndNeverRuns(t *testing.T) {
	ctx, out := compile(t, "t.vg", `mod m { func main() -> int32 { var int32 x = 1 print x; return 0; } }`)
	if !ctx.Diags.HasErrors() {
		t.Fatal("expected a parse error for the missing semicolon")
	}
	found := false
	for _, d := range ctx.Diags.All() {
		if d.Code == diagnostics.PErrExpectedSemicolon {
			found = true
			if len(d.Fixes) == 0 {
				t.Fatal("expected a suggested fix on the missing-semicolon diagnostic")
			}
		}
	}
	if !found {
		t.Fatalf("expected a PErrExpectedSemicolon diagnostic, got: %v", ctx.Diags.All())
	}
	if out.String() != "" {
		t.Fatalf("stdout = %q, want empty (program must not run)", out.String())
	}
}

func TestBreakOutsideLoopIsReported(t *testing.T) {
	ctx, _ := compile(t, "t.vg", `mod m { func main() -> int32 { break; return 0; } }`)
	if !ctx.Diags.HasErrors() {
		t.Fatal("expected an error for break outside a loop")
	}
}

func TestIncompatibleTypesAreReported(t *testing.T) {
	ctx, _ := compile(t, "t.vg", `mod m { func main() -> int32 { var int32 x = 1; var bool y = x; return 0; } }`)
	if !ctx.Diags.HasErrors() {
		t.Fatal("expected a type-mismatch error")
	}
	found := false
	for _, d := range ctx.Diags.All() {
		if d.Code == diagnostics.RErrTypeMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected RErrTypeMismatch, got: %v", ctx.Diags.All())
	}
}

func TestRecursiveFibonacci(t *testing.T) {
	ctx, out := compile(t, "t.vg", `
mod demo {
    func fib(int32 n) -> int32 {
        if (n < 2) { return n; }
        return fib(n - 1) + fib(n - 2);
    }
    func main() -> int32 {
        var int32 x = fib(10);
        print x;
        return 0;
    }
}`)
	if ctx.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diags.All())
	}
	if got := strings.TrimSpace(out.String()); got != "55" {
		t.Fatalf("stdout = %q, want \"55\"", got)
	}
}

func TestDivisionByZeroIsFatalRuntimeError(t *testing.T) {
	ctx, _ := compile(t, "t.vg", `mod m { func main() -> int32 { var int32 z = 0; var int32 x = 1 / z; return x; } }`)
	if !ctx.Diags.HasFatal() {
		t.Fatalf("expected a fatal diagnostic for division by zero, got: %v", ctx.Diags.All())
	}
}

func TestShortCircuitAndDoesNotEvaluateRightOnFalseLeft(t *testing.T) {
	// Division by zero on the right side would be fatal if evaluated; since
	// the left operand is false, && must short-circuit and never touch it.
	ctx, out := compile(t, "t.vg", `mod m { func main() -> int32 {
		var int32 z = 0;
		var bool b = false && (1 / z == 0);
		print b;
		return 0;
	} }`)
	if ctx.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diags.All())
	}
	if got := strings.TrimSpace(out.String()); got != "false" {
		t.Fatalf("stdout = %q, want \"false\"", got)
	}
}

func TestUnsignedIntegerLiteralSuffixWraps(t *testing.T) {
	ctx, out := compile(t, "t.vg", `mod m { func main() -> int32 {
		var uint8 x = 255u8 + 1u8;
		print x;
		return 0;
	} }`)
	if ctx.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diags.All())
	}
	if got := strings.TrimSpace(out.String()); got != "0" {
		t.Fatalf("stdout = %q, want \"0\" (uint8 wraps around)", got)
	}
}
