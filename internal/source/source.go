// Package source owns immutable source text and maps byte offsets to
// human-readable (line, column) positions.
package source

import "strings"

// File is an immutable unit of source text: a name, the full text, and a
// precomputed table of line slices. Lines are split on \r\n, \n, or \r so
// that offset-to-position lookups never need to re-scan the text.
type File struct {
	Name string
	Text string
	// lineStarts[i] is the byte offset where line i+1 begins.
	lineStarts []int
}

// New builds a File and precomputes its line table.
func New(name, text string) *File {
	f := &File{Name: name, Text: text}
	f.lineStarts = append(f.lineStarts, 0)
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			f.lineStarts = append(f.lineStarts, i+1)
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	return f
}

// Line returns the 1-based line's text, with its trailing terminator
// stripped. Out-of-range lines return "".
func (f *File) Line(n int) string {
	if f == nil || n < 1 || n > len(f.lineStarts) {
		return ""
	}
	start := f.lineStarts[n-1]
	var end int
	if n < len(f.lineStarts) {
		end = f.lineStarts[n] - 1
		// Drop the terminator character(s) we stepped over above.
		for end > start && (f.Text[end-1] == '\r' || f.Text[end-1] == '\n') {
			end--
		}
	} else {
		end = len(f.Text)
	}
	if end < start {
		end = start
	}
	return f.Text[start:end]
}

// Position returns the 1-based (line, column) for a byte offset.
func (f *File) Position(offset int) (line, column int) {
	if f == nil {
		return 0, 0
	}
	// Binary search would be overkill for typical source sizes; linear scan
	// mirrors the lexer's own incremental line tracking and keeps this
	// package free of extra bookkeeping.
	line = 1
	for i, start := range f.lineStarts {
		if start > offset {
			break
		}
		line = i + 1
	}
	lineStart := f.lineStarts[line-1]
	column = offset - lineStart + 1
	return line, column
}

// TrimIndent strips every leading space and tab from s. Used when
// pretty-printing a diagnostic's related source line.
func TrimIndent(s string) string {
	return strings.TrimLeft(s, " \t")
}

// Span is a half-open-ish source extent: an optional owning file, start/end
// absolute byte offsets, start/end line/column, and a validity flag.
// Invalid spans (File == nil or Valid == false) never participate in
// diagnostics.
type Span struct {
	File       *File
	StartByte  int
	EndByte    int
	StartLine  int
	StartCol   int
	EndLine    int
	EndCol     int
	Valid      bool
}

// Invalid is the sentinel zero-value span.
var Invalid = Span{}

// Merge returns the covering span of two spans: file and start are taken
// from the left operand, end from the right. The result is invalid if
// either operand is invalid.
func Merge(left, right Span) Span {
	if !left.Valid || !right.Valid {
		return Invalid
	}
	return Span{
		File:      left.File,
		StartByte: left.StartByte,
		EndByte:   right.EndByte,
		StartLine: left.StartLine,
		StartCol:  left.StartCol,
		EndLine:   right.EndLine,
		EndCol:    right.EndCol,
		Valid:     true,
	}
}
