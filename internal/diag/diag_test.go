package diag

import (
	"bytes"
	"sync"
	"testing"

	"github.com/you-not-fish/nestml/internal/syntax"
)

func pos(line, col uint32) syntax.Pos {
	return syntax.NewPos("test.nestml", line, col)
}

func TestSeverityString(t *testing.T) {
	if Error.String() != "error" || Warning.String() != "warning" {
		t.Errorf("got %q/%q", Error, Warning)
	}
	if got := Severity(9).String(); got != "Severity(9)" {
		t.Errorf("unknown severity = %q", got)
	}
}

func TestLogKeepsReportOrder(t *testing.T) {
	var l Log
	l.Report(Warning, "R", "second line", pos(2, 1))
	l.Report(Error, "R", "first line", pos(1, 1))
	l.Report(Error, "R", "first line", pos(1, 1)) // duplicates are kept

	diags := l.Diagnostics()
	if len(diags) != 3 || l.Len() != 3 {
		t.Fatalf("got %d diagnostics, want 3", len(diags))
	}
	if diags[0].Severity != Warning || diags[0].Code != "R" || diags[0].Msg != "second line" {
		t.Errorf("diags[0] = %+v", diags[0])
	}
	if l.ErrorCount() != 2 || l.WarningCount() != 1 || !l.HasErrors() {
		t.Errorf("counts: errors=%d warnings=%d", l.ErrorCount(), l.WarningCount())
	}

	// The returned slice is a copy.
	diags[0].Msg = "changed"
	if l.Diagnostics()[0].Msg != "second line" {
		t.Error("Diagnostics() exposed internal storage")
	}
}

func TestEmptyLog(t *testing.T) {
	var l Log
	if l.Len() != 0 || l.HasErrors() || len(l.Sorted()) != 0 {
		t.Error("zero Log should be empty")
	}
}

func TestSorted(t *testing.T) {
	var l Log
	l.Report(Error, "", "c", pos(3, 1))
	l.Report(Error, "", "a1", pos(1, 5))
	l.Report(Warning, "", "a2", pos(1, 5))
	l.Report(Error, "", "b", pos(1, 9))

	var got string
	for _, d := range l.Sorted() {
		got += d.Msg + " "
	}
	if got != "a1 a2 b c " {
		t.Errorf("Sorted order = %q", got)
	}
	if l.Diagnostics()[0].Msg != "c" {
		t.Error("Sorted must not reorder the log")
	}
}

func TestHandler(t *testing.T) {
	var l Log
	errh := l.Handler(Error, "")
	errh(pos(4, 2), "expected end")
	d := l.Diagnostics()[0]
	if d.Severity != Error || d.Msg != "expected end" || d.Pos != pos(4, 2) {
		t.Errorf("handler diagnostic = %+v", d)
	}
}

func TestOnReport(t *testing.T) {
	var seen []string
	l := Log{OnReport: func(d Diagnostic) { seen = append(seen, d.Msg) }}
	l.Report(Warning, "", "w", pos(1, 1))
	if len(seen) != 1 || seen[0] != "w" {
		t.Errorf("OnReport saw %v", seen)
	}
}

func TestFprint(t *testing.T) {
	var buf bytes.Buffer
	Fprint(&buf, []Diagnostic{
		{Severity: Error, Msg: "bad", Pos: pos(3, 22)},
		{Severity: Warning, Msg: "unsure", Pos: pos(4, 1)},
	})
	want := "test.nestml:3:22: error: bad\ntest.nestml:4:1: warning: unsure\n"
	if buf.String() != want {
		t.Errorf("Fprint =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestConcurrentReports(t *testing.T) {
	var l Log
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				sev := Error
				if i%2 == 1 {
					sev = Warning
				}
				l.Report(sev, "R", "msg", pos(uint32(g+1), uint32(i+1)))
			}
		}(g)
	}
	wg.Wait()

	if l.Len() != 800 || l.ErrorCount() != 400 || l.WarningCount() != 400 {
		t.Errorf("got len=%d errors=%d warnings=%d", l.Len(), l.ErrorCount(), l.WarningCount())
	}
}
