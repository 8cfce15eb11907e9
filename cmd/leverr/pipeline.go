package main

import (
	"fmt"

	"github.com/leverr-lang/leverr/internal/diag"
	"github.com/leverr-lang/leverr/internal/eval"
	"github.com/leverr-lang/leverr/internal/infer"
	"github.com/leverr-lang/leverr/internal/parser"
)

// stdoutSink is the concrete eval.Sink the core's `print` built-in writes
// through outside of tests.
type stdoutSink struct{}

func (stdoutSink) Write(line string) {
	fmt.Println(line)
}

// runSource runs text through the full lex/parse/infer/eval pipeline and
// renders its top-level value, or returns the first diagnostic any stage
// raised. trace, if non-nil, is called once per stage entered so callers
// can log progress without the pipeline itself depending on a logger.
func runSource(text string, trace func(stage string)) (string, *diag.Diagnostic) {
	if trace != nil {
		trace("lexer")
		trace("parser")
	}
	expr, errs := parser.ParseProgram(text)
	if len(errs) > 0 {
		return "", &errs[0]
	}

	if trace != nil {
		trace("infer")
	}
	if _, err := infer.Infer(expr, infer.Prelude()); err != nil {
		return "", asDiagnostic(err)
	}

	if trace != nil {
		trace("eval")
	}
	val, err := eval.Eval(expr, eval.NewGlobalEnv(stdoutSink{}))
	if err != nil {
		return "", asDiagnostic(err)
	}
	return eval.Render(val), nil
}

// typeOf runs text through lex/parse/infer only, for the REPL's :type
// command.
func typeOf(text string) (string, *diag.Diagnostic) {
	expr, errs := parser.ParseProgram(text)
	if len(errs) > 0 {
		return "", &errs[0]
	}
	ty, err := infer.Infer(expr, infer.Prelude())
	if err != nil {
		return "", asDiagnostic(err)
	}
	return ty.String(), nil
}

func asDiagnostic(err error) *diag.Diagnostic {
	if d, ok := err.(diag.Diagnostic); ok {
		return &d
	}
	generic := diag.New(diag.StageRuntime, diag.CodeRuntimeOperatorMismatch, err.Error(), diag.Span{})
	return &generic
}
