// Package diagnostics defines the severities, codes, and fix suggestions
// reported by every pipeline stage, and the manager that accumulates them.
package diagnostics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/anycow/vuglang/internal/source"
	"github.com/anycow/vuglang/internal/token"
)

// Severity ranks how serious a diagnostic is.
type Severity int

const (
	Info Severity = iota
	Hint
	Warning
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Hint:
		return "hint"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Code identifies a specific diagnostic kind. Codes are grouped by the
// pipeline stage that raises them: L (lexer), P (parser), R (resolve /
// semantic analysis), E (evaluator).
type Code string

const (
	// Lexer
	LErrUnterminatedString Code = "L001"
	LErrIllegalCharacter   Code = "L002"
	LErrNumberOutOfRange   Code = "L003"

	// Parser
	PErrUnexpectedToken   Code = "P001"
	PErrExpectedSemicolon Code = "P002"
	PErrExpectedIdent     Code = "P003"
	PErrExpectedType      Code = "P004"
	PErrUnexpectedEOF     Code = "P005"

	// Resolve / semantic analysis
	RErrNameConflict        Code = "R001"
	RErrProhibitedShadowing Code = "R002"
	RErrUndefinedName       Code = "R003"
	RErrArgCountMismatch    Code = "R005"
	RErrTypeMismatch        Code = "R006"
	RErrConditionNotBool    Code = "R007"
	RErrBreakOutsideLoop    Code = "R008"
	RErrReturnTypeMismatch  Code = "R009"
	RErrMissingReturn       Code = "R010"
	RErrNotAType            Code = "R011"
	RErrNotVariable         Code = "R012"
	RErrNotFunction         Code = "R013"

	// Evaluator
	EErrDivisionByZero Code = "E001"
	EErrStackOverflow  Code = "E002"
	EErrRuntime        Code = "E003"
)

// Diff is one line replacement suggested by a Fix.
type Diff struct {
	File        *source.File
	Line        int
	OldText     string
	Replacement string
}

// Fix is a suggested edit accompanying a Diagnostic.
type Fix struct {
	Description string
	Diffs       []Diff
}

// Diagnostic is a single reported message: its severity, code, text, the
// source locations it concerns, and any suggested fixes.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Token    token.Token
	Spans    []source.Span
	Fixes    []Fix
}

// NewDiagnostic builds a Diagnostic anchored at tok, formatting Message
// with fmt.Sprintf(format, args...).
func NewDiagnostic(severity Severity, code Code, tok token.Token, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Token:    tok,
		Spans:    []source.Span{tok.Span},
	}
}

// NewError is a convenience constructor for the common Error-severity case.
func NewError(code Code, tok token.Token, format string, args ...interface{}) *Diagnostic {
	return NewDiagnostic(Error, code, tok, format, args...)
}

// NewWarning is a convenience constructor for the common Warning-severity
// case.
func NewWarning(code Code, tok token.Token, format string, args ...interface{}) *Diagnostic {
	return NewDiagnostic(Warning, code, tok, format, args...)
}

// WithFix attaches a suggested fix and returns the receiver for chaining.
func (d *Diagnostic) WithFix(fix Fix) *Diagnostic {
	d.Fixes = append(d.Fixes, fix)
	return d
}

func (d *Diagnostic) Error() string { return d.Message }

// Report renders the diagnostic in the "<severity>: <message>" format,
// followed by indented, zero-padded source lines and any suggested fixes.
func (d *Diagnostic) Report(color bool) string {
	var b strings.Builder

	sevText := d.Severity.String() + ":"
	if color {
		sevText = colorize(d.Severity) + sevText + resetCode
	}
	fmt.Fprintf(&b, "%s %s\n", sevText, d.Message)

	if f := d.Token.Span.File; f != nil {
		fmt.Fprintf(&b, "  --> %s:%d:%d\n", f.Name, d.Token.Span.StartLine, d.Token.Span.StartCol)
		line := source.TrimIndent(f.Line(d.Token.Span.StartLine))
		fmt.Fprintf(&b, "%s| %s\n", padLineNumber(d.Token.Span.StartLine), line)
	}

	for _, fix := range d.Fixes {
		fmt.Fprintf(&b, "probably fix: %s\n", fix.Description)
		for _, diff := range fix.Diffs {
			fmt.Fprintf(&b, "-%s| %s\n", padLineNumber(diff.Line), diff.OldText)
			fmt.Fprintf(&b, "+%s| %s\n", padLineNumber(diff.Line), diff.Replacement)
		}
	}

	return b.String()
}

func padLineNumber(n int) string {
	return fmt.Sprintf("%03d", n)
}

const resetCode = "\x1b[0m"

func colorize(s Severity) string {
	switch s {
	case Fatal, Error:
		return "\x1b[31m"
	case Warning:
		return "\x1b[33m"
	case Hint:
		return "\x1b[36m"
	case Info:
		return "\x1b[90m"
	default:
		return ""
	}
}

// Manager accumulates diagnostics for a single compilation and answers
// whether the pipeline should stop before reaching the evaluator.
type Manager struct {
	diagnostics []*Diagnostic
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add records a diagnostic. A nil diagnostic is ignored so call sites can
// pass the result of a helper that may return nil on the happy path.
func (m *Manager) Add(d *Diagnostic) {
	if d == nil {
		return
	}
	m.diagnostics = append(m.diagnostics, d)
}

// All returns every recorded diagnostic, sorted by source position with
// ties broken by severity (most severe first) for stable, readable output.
func (m *Manager) All() []*Diagnostic {
	out := make([]*Diagnostic, len(m.diagnostics))
	copy(out, m.diagnostics)
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].Token.Span, out[j].Token.Span
		if si.StartLine != sj.StartLine {
			return si.StartLine < sj.StartLine
		}
		if si.StartCol != sj.StartCol {
			return si.StartCol < sj.StartCol
		}
		return out[i].Severity > out[j].Severity
	})
	return out
}

// HasErrors reports whether any Error or Fatal diagnostic was recorded;
// per the pipeline contract this gates whether the evaluator may run.
func (m *Manager) HasErrors() bool {
	for _, d := range m.diagnostics {
		if d.Severity >= Error {
			return true
		}
	}
	return false
}

// HasFatal reports whether any Fatal diagnostic was recorded.
func (m *Manager) HasFatal() bool {
	for _, d := range m.diagnostics {
		if d.Severity == Fatal {
			return true
		}
	}
	return false
}

// Count returns the number of recorded diagnostics.
func (m *Manager) Count() int { return len(m.diagnostics) }

// Entry is one diagnostic rendered into a yaml.v3-marshalable shape for
// the CLI driver's -json report.
type Entry struct {
	Severity string `yaml:"severity"`
	Code     string `yaml:"code"`
	Message  string `yaml:"message"`
	Line     int    `yaml:"line,omitempty"`
	Column   int    `yaml:"column,omitempty"`
}

// Report is the top-level yaml.v3-marshalable shape of one compilation's
// diagnostics, stamped with the CLI driver's run ID.
type Report struct {
	RunID       string  `yaml:"run_id,omitempty"`
	File        string  `yaml:"file"`
	Diagnostics []Entry `yaml:"diagnostics"`
}

// BuildReport filters m's diagnostics to those at or above threshold and
// renders them into a Report suitable for yaml.v3 marshaling.
func (m *Manager) BuildReport(runID, file string, threshold Severity) Report {
	r := Report{RunID: runID, File: file}
	for _, d := range m.All() {
		if d.Severity < threshold {
			continue
		}
		e := Entry{Severity: d.Severity.String(), Code: string(d.Code), Message: d.Message}
		if d.Token.Span.Valid {
			e.Line, e.Column = d.Token.Span.StartLine, d.Token.Span.StartCol
		}
		r.Diagnostics = append(r.Diagnostics, e)
	}
	return r
}
