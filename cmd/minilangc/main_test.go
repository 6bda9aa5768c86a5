package main

import (
	"testing"
	"time"
)

func TestParseArgsPathOnly(t *testing.T) {
	f, err := parseArgs([]string{"prog.vg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.path != "prog.vg" {
		t.Fatalf("path = %q, want \"prog.vg\"", f.path)
	}
	if f.color != "" || f.quiet || f.jsonReport || f.configPath != "" || f.timeout != 0 {
		t.Fatalf("flags = %+v, want all zero values", f)
	}
}

func TestParseArgsBooleanFlagsAndLongForm(t *testing.T) {
	f, err := parseArgs([]string{"-quiet", "--json", "prog.vg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.quiet || !f.jsonReport {
		t.Fatalf("flags = %+v, want quiet and jsonReport set", f)
	}
	if f.path != "prog.vg" {
		t.Fatalf("path = %q, want \"prog.vg\"", f.path)
	}
}

func TestParseArgsColorEqualsForm(t *testing.T) {
	f, err := parseArgs([]string{"-color=always", "prog.vg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.color != "always" {
		t.Fatalf("color = %q, want \"always\"", f.color)
	}
}

func TestParseArgsColorSpaceForm(t *testing.T) {
	f, err := parseArgs([]string{"-color", "never", "prog.vg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.color != "never" {
		t.Fatalf("color = %q, want \"never\"", f.color)
	}
}

func TestParseArgsColorMissingArgument(t *testing.T) {
	_, err := parseArgs([]string{"-color"})
	if err == nil {
		t.Fatal("expected an error when -color has no following argument")
	}
}

func TestParseArgsConfigEqualsAndSpaceForms(t *testing.T) {
	f, err := parseArgs([]string{"-config=a.yaml", "prog.vg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.configPath != "a.yaml" {
		t.Fatalf("configPath = %q, want \"a.yaml\"", f.configPath)
	}

	f, err = parseArgs([]string{"-config", "b.yaml", "prog.vg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.configPath != "b.yaml" {
		t.Fatalf("configPath = %q, want \"b.yaml\"", f.configPath)
	}
}

func TestParseArgsConfigMissingArgument(t *testing.T) {
	_, err := parseArgs([]string{"-config"})
	if err == nil {
		t.Fatal("expected an error when -config has no following argument")
	}
}

func TestParseArgsTimeout(t *testing.T) {
	f, err := parseArgs([]string{"-timeout=250ms", "prog.vg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.timeout != 250*time.Millisecond {
		t.Fatalf("timeout = %v, want 250ms", f.timeout)
	}
}

func TestParseArgsTimeoutInvalidDuration(t *testing.T) {
	_, err := parseArgs([]string{"-timeout=not-a-duration"})
	if err == nil {
		t.Fatal("expected an error for an unparseable -timeout duration")
	}
}

func TestParseArgsUnrecognizedFlag(t *testing.T) {
	_, err := parseArgs([]string{"-bogus"})
	if err == nil {
		t.Fatal("expected an error for an unrecognized flag")
	}
}

func TestParseArgsUnexpectedExtraPositionalArgument(t *testing.T) {
	_, err := parseArgs([]string{"one.vg", "two.vg"})
	if err == nil {
		t.Fatal("expected an error when more than one positional argument is given")
	}
}

func TestParseArgsNoArgumentsLeavesPathEmpty(t *testing.T) {
	f, err := parseArgs(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.path != "" {
		t.Fatalf("path = %q, want empty", f.path)
	}
}

func TestResolveColorExplicitModesIgnoreTerminal(t *testing.T) {
	if !resolveColor("always") {
		t.Fatal("resolveColor(\"always\") = false, want true")
	}
	if resolveColor("never") {
		t.Fatal("resolveColor(\"never\") = true, want false")
	}
}
