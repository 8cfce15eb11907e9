// Package diag defines the shared source-span and diagnostic representation
// used by every stage of the Leverr pipeline: lexer, parser, inferencer, and
// evaluator all report failures as a Diagnostic carrying a Span.
package diag

import "fmt"

// Stage identifies which pipeline phase produced the diagnostic.
type Stage string

const (
	StageLexer   Stage = "lexer"
	StageParser  Stage = "parser"
	StageType    Stage = "type"
	StageRuntime Stage = "runtime"
)

// Severity captures how impactful the diagnostic is. Every diagnostic the
// core raises today is fatal to its stage, but the field stays so a REPL or
// file runner can later surface warnings without a breaking change.
type Severity string

const (
	SeverityError Severity = "error"
)

// Code is a stable identifier for a diagnostic, useful for tests and tooling
// that need to match on error kind without parsing Message text.
type Code string

const (
	CodeLexUnexpectedChar     Code = "LEX_UNEXPECTED_CHAR"
	CodeLexUnterminatedString Code = "LEX_UNTERMINATED_STRING"

	CodeParseUnexpectedToken Code = "PARSE_UNEXPECTED_TOKEN"

	CodeTypeMismatch          Code = "TYPE_MISMATCH"
	CodeTypeOccursCheck       Code = "TYPE_OCCURS_CHECK"
	CodeTypeUndefinedVariable Code = "TYPE_UNDEFINED_VARIABLE"
	CodeTypeNoField           Code = "TYPE_NO_FIELD"
	CodeTypeNotUnwrappable    Code = "TYPE_NOT_UNWRAPPABLE"

	CodeRuntimeUndefinedVariable Code = "RUNTIME_UNDEFINED_VARIABLE"
	CodeRuntimeFieldAccess       Code = "RUNTIME_FIELD_ACCESS"
	CodeRuntimeNoMatch           Code = "RUNTIME_NO_MATCH"
	CodeRuntimeNotUnwrappable    Code = "RUNTIME_NOT_UNWRAPPABLE"
	CodeRuntimeOperatorMismatch  Code = "RUNTIME_OPERATOR_MISMATCH"
	CodeRuntimeNotCallable       Code = "RUNTIME_NOT_CALLABLE"
)

// Span represents a half-open region of source text delimited by a start and
// end (line, column, offset). The lexer fills Start/End with rune indices
// into the source, not byte offsets. Spans are never mutated after creation;
// widening a span means constructing a new one via Merge.
type Span struct {
	Line      int
	Column    int
	Start     int
	EndLine   int
	EndColumn int
	End       int
}

// IsValid reports whether the span denotes a real location rather than the
// zero value used by synthetic nodes.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// String renders a span without source text, e.g. for diagnostics raised
// outside of a known source (such as a REPL evaluating without echo).
func (s Span) String() string {
	return fmt.Sprintf("line %d, col %d", s.Line, s.Column)
}

// Merge returns the smallest span covering both a and b. If either span is
// invalid, the other is returned unchanged.
func Merge(a, b Span) Span {
	if !a.IsValid() {
		return b
	}
	if !b.IsValid() {
		return a
	}
	start := a
	if b.Start < a.Start {
		start = b
	}
	end := a
	if b.End > a.End {
		end = b
	}
	return Span{
		Line:      start.Line,
		Column:    start.Column,
		Start:     start.Start,
		EndLine:   end.EndLine,
		EndColumn: end.EndColumn,
		End:       end.End,
	}
}

// Diagnostic is a single compiler or runtime failure surfaced to the caller.
// It satisfies the error interface so every stage can return it through a
// plain Go error value, while callers that want span-aware rendering can
// type-assert back to Diagnostic (see Formatter).
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
}

func (d Diagnostic) Error() string {
	if d.Span.IsValid() {
		return fmt.Sprintf("%s: %s (%s)", d.Stage, d.Message, d.Span.String())
	}
	return fmt.Sprintf("%s: %s", d.Stage, d.Message)
}

// New constructs an error-severity Diagnostic for the given stage.
func New(stage Stage, code Code, message string, span Span) Diagnostic {
	return Diagnostic{Stage: stage, Severity: SeverityError, Code: code, Message: message, Span: span}
}
