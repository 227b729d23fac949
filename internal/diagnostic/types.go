package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"flatfish/internal/token"
)

// Code is a stable identifier for a kind of diagnostic. A Code is also an
// error, so a *Error can be matched with errors.Is(err, CodeXxx).
type Code string

const (
	// CodeMalformedChainEntry is reported when a chain step's trait path
	// has no segment left once the item is taken off.
	CodeMalformedChainEntry Code = "MalformedChainEntry"

	// Path grammar.
	CodeUnexpectedToken Code = "UnexpectedToken"
	CodeUnexpectedEOF   Code = "UnexpectedEOF"
	CodeExpectedIdent   Code = "ExpectedIdent"
	CodeUnbalanced      Code = "Unbalanced"

	// Lexing and source scanning.
	CodeInvalidInput       Code = "InvalidInput"
	CodeUnclosedInvocation Code = "UnclosedInvocation"

	// CodeEmptyChain warns about an invocation that only wraps its source
	// type.
	CodeEmptyChain Code = "EmptyChain"
)

func (c Code) Error() string {
	return string(c)
}

// Diagnostics holds all diagnostic information gathered for one file.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code Code
	// Message is the human-readable description.
	Message string
	// File is the source the span refers to (if any).
	File string
	// Span locates the offending tokens.
	Span token.Span
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return "unknown"
	}
}

// Add appends d to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code Code, message, file string, span token.Span) {
	d.Add(Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		File:     file,
		Span:     span,
	})
}

// AddWarning adds a warning diagnostic with optional suggestions.
func (d *Diagnostics) AddWarning(code Code, message, file string, span token.Span, suggestions ...string) {
	d.Add(Diagnostic{
		Severity:    DiagnosticWarning,
		Code:        code,
		Message:     message,
		File:        file,
		Span:        span,
		Suggestions: suggestions,
	})
}

// AddErr records err as an error diagnostic for file. Located errors keep
// their code and span; anything else becomes CodeInvalidInput.
func (d *Diagnostics) AddErr(file string, err error) {
	var located *Error
	if errors.As(err, &located) {
		diag := located.Diagnostic
		if diag.File == "" {
			diag.File = file
		}

		d.Add(diag)

		return
	}

	d.AddError(CodeInvalidInput, err.Error(), file, token.Span{})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Join returns every error diagnostic as one error; errors.Is still
// matches each individual code. It is nil when there are no errors.
func (d *Diagnostics) Join() error {
	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, &Error{e})
	}

	return errors.Join(errs...)
}

// String returns a compiler-style line: "file:line:col: severity[Code]: message".
func (d Diagnostic) String() string {
	var prefix []string
	if d.File != "" {
		prefix = append(prefix, d.File)
	}

	if !d.Span.IsZero() {
		prefix = append(prefix, d.Span.Start.String())
	}

	msg := d.Severity.String()
	if d.Code != "" {
		msg = fmt.Sprintf("%s[%s]", msg, d.Code)
	}

	msg += ": " + d.Message

	for _, s := range d.Suggestions {
		msg += "\n\thelp: " + s
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, ":") + ": " + msg
	}

	return msg
}

// Error is a single located failure returned by the lexer, the path
// grammar and the chain parser.
type Error struct {
	Diagnostic
}

// Errorf creates an error diagnostic located at span.
func Errorf(code Code, span token.Span, format string, args ...any) *Error {
	return &Error{Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	}}
}

func (e *Error) Error() string {
	return e.Diagnostic.String()
}

// Unwrap exposes the code so errors.Is(err, CodeXxx) matches.
func (e *Error) Unwrap() error {
	return e.Code
}
