package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"ccdsl/internal/ast"
)

// Suggestion is a "did you mean X?" hint attached to an error.
type Suggestion struct {
	Message     string
	Replacement string
}

// CompilerError is the single structured type behind every diagnostic the
// compiler emits, whether from the parser, the analyzer or codegen.
type CompilerError struct {
	Level       Level
	Code        Code
	Message     string
	Position    ast.Position
	Length      int
	Suggestions []Suggestion
	Notes       []string
	HelpText    string
}

func (e *CompilerError) Error() string {
	return fmt.Sprintf("%s[%s]: %s (%s)", e.Level, e.Code, e.Message, e.Position)
}

// ErrorReporter renders a batch of CompilerErrors as Rust-style caret
// diagnostics against the original source text.
type ErrorReporter struct {
	Filename string
	lines    []string
}

func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{Filename: filename, lines: strings.Split(source, "\n")}
}

// Report writes every error in errs to w, in order, never stopping at the
// first one — diagnostics are collected across the whole pipeline.
func (r *ErrorReporter) Report(w io.Writer, errs []*CompilerError) {
	for _, e := range errs {
		r.formatOne(w, e)
	}
	if len(errs) > 0 {
		fmt.Fprintln(w)
		color.New(color.FgRed, color.Bold).Fprintf(w, "%d error(s)\n", len(errs))
	}
}

func (r *ErrorReporter) formatOne(w io.Writer, e *CompilerError) {
	levelColor := color.New(color.FgRed, color.Bold)
	if e.Level == LevelWarning {
		levelColor = color.New(color.FgYellow, color.Bold)
	}
	levelColor.Fprintf(w, "%s[%s]", e.Level, e.Code)
	fmt.Fprintf(w, ": %s\n", e.Message)
	fmt.Fprintf(w, "  --> %s\n", e.Position)

	line := e.Position.Line
	if line > 0 && line <= len(r.lines) {
		fmt.Fprintf(w, "   | %s\n", r.lines[line-1])
		length := e.Length
		if length < 1 {
			length = 1
		}
		caret := strings.Repeat(" ", e.Position.Column-1) + strings.Repeat("^", length)
		color.New(color.FgRed).Fprintf(w, "   | %s\n", caret)
	}
	for _, s := range e.Suggestions {
		fmt.Fprintf(w, "   = help: %s\n", s.Message)
	}
	for _, n := range e.Notes {
		fmt.Fprintf(w, "   = note: %s\n", n)
	}
	if e.HelpText != "" {
		fmt.Fprintf(w, "   = help: %s\n", e.HelpText)
	}
}
