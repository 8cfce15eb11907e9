package diag

import (
	"fmt"
	"strings"
)

// Formatter renders a Diagnostic against its originating source text as a
// four-line block: a header naming the location, the offending source line,
// a caret underline beneath it, and the diagnostic's message.
type Formatter struct{}

// NewFormatter creates a diagnostic formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format renders d against source. When d's span is invalid (a diagnostic
// raised without a known source, such as a bare message from an embedding
// host) only the header line and the message line are returned.
func (f *Formatter) Format(d Diagnostic, source string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error at line %d, col %d:\n", d.Span.Line, d.Span.Column)

	if !d.Span.IsValid() {
		fmt.Fprintf(&b, "  %s\n", d.Message)
		return b.String()
	}

	line := sourceLine(source, d.Span.Line)
	fmt.Fprintf(&b, "  %s\n", line)
	fmt.Fprintf(&b, "  %s\n", caretUnderline(d.Span, line))
	fmt.Fprintf(&b, "  %s", d.Message)
	return b.String()
}

// sourceLine returns the 1-indexed line of source, or "" if out of range.
func sourceLine(source string, line int) string {
	if line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// caretUnderline produces a run of spaces up to the span's start column
// followed by one caret per column the span covers, with a minimum of one
// caret even for a zero-width span.
func caretUnderline(span Span, line string) string {
	width := span.End - span.Start
	if span.EndLine != span.Line {
		// A span that crosses lines underlines only to the end of this line.
		width = len(line) - (span.Column - 1)
	}
	if width < 1 {
		width = 1
	}
	col := span.Column
	if col < 1 {
		col = 1
	}
	return strings.Repeat(" ", col-1) + strings.Repeat("^", width)
}
