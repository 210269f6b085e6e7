// Package diag collects the errors and warnings reported while checking
// models.
package diag

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/you-not-fish/nestml/internal/syntax"
)

// Severity classifies a diagnostic.
type Severity uint8

const (
	// Error marks a definite problem: the model is ill-formed.
	Error Severity = iota
	// Warning marks a possible problem that could not be decided.
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	}
	return fmt.Sprintf("Severity(%d)", uint8(s))
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Severity Severity
	Code     string // name of the reporting rule; empty for syntax and type errors
	Msg      string
	Pos      syntax.Pos
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Msg)
}

// Sink receives diagnostics.
type Sink interface {
	Report(sev Severity, code, msg string, pos syntax.Pos)
}

// Log is a Sink that keeps every diagnostic in report order.
// It is safe for concurrent use.
type Log struct {
	mu    sync.Mutex
	diags []Diagnostic

	// OnReport, if set, is called with each diagnostic as it is appended.
	// Calls are serialized.
	OnReport func(Diagnostic)
}

// Report appends a diagnostic. Nothing is deduplicated or dropped.
func (l *Log) Report(sev Severity, code, msg string, pos syntax.Pos) {
	d := Diagnostic{Severity: sev, Code: code, Msg: msg, Pos: pos}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.diags = append(l.diags, d)
	if l.OnReport != nil {
		l.OnReport(d)
	}
}

// Handler adapts l to the func(pos, msg) callbacks of the parser and the
// type checker; every call is reported with the given severity and code.
func (l *Log) Handler(sev Severity, code string) func(pos syntax.Pos, msg string) {
	return func(pos syntax.Pos, msg string) {
		l.Report(sev, code, msg, pos)
	}
}

// Diagnostics returns a copy of the diagnostics in report order.
func (l *Log) Diagnostics() []Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.diags)
}

// Len returns the number of diagnostics.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.diags)
}

func (l *Log) count(sev Severity) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, d := range l.diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// ErrorCount returns the number of errors.
func (l *Log) ErrorCount() int { return l.count(Error) }

// WarningCount returns the number of warnings.
func (l *Log) WarningCount() int { return l.count(Warning) }

// HasErrors reports whether any error was reported.
func (l *Log) HasErrors() bool { return l.ErrorCount() > 0 }

// Sorted returns the diagnostics ordered by position. Diagnostics at the
// same position keep their report order.
func (l *Log) Sorted() []Diagnostic {
	diags := l.Diagnostics()
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return a.Pos.Compare(b.Pos)
	})
	return diags
}

// Fprint writes one line per diagnostic to w.
func Fprint(w io.Writer, diags []Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(w, d)
	}
}
