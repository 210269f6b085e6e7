package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/you-not-fish/nestml/internal/config"
	"github.com/you-not-fish/nestml/internal/diag"
	"github.com/you-not-fish/nestml/internal/syntax"
	"github.com/you-not-fish/nestml/internal/types"
)

const (
	historyFile = ".nestmlc_history"
	promptMain  = "nestml> "
	promptCont  = "   ...> "
)

// runInteractive reads models from the terminal and checks each one as
// soon as its closing end is entered.
func runInteractive(cfg *config.Config) int {
	fmt.Printf("nestmlc %s interactive mode. Enter a neuron or synapse; :quit exits.\n", Version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	reg := types.NewRegistry()
	n := 0
	for {
		src, ok := readModel(ln)
		if !ok {
			fmt.Println()
			break
		}
		cmd := strings.TrimSpace(src)
		if cmd == "" {
			continue
		}
		if cmd == ":quit" || cmd == ":q" {
			break
		}

		n++
		if err := checkSnippet(os.Stdout, fmt.Sprintf("<input %d>", n), src, cfg, reg); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return 0
}

// readModel accumulates lines until every opened model and block is
// closed. It returns false on end of input.
func readModel(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C drops the current input.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if src := b.String(); openBlocks(src) <= 0 {
			return src, true
		}
	}
}

// openBlocks returns the number of models and blocks opened in src that
// have no matching end yet.
func openBlocks(src string) int {
	s := syntax.NewScanner("", strings.NewReader(src), nil)
	depth := 0
	for {
		s.Next()
		tok := s.Token()
		if tok.IsEOF() {
			return depth
		}
		switch tok.String() {
		case "neuron", "synapse", "state", "parameters", "internals", "initial_values":
			depth++
		case "end":
			depth--
		}
	}
}

// checkSnippet checks one interactively entered source, writing each
// diagnostic to w as it is reported, or "ok" when there are none.
func checkSnippet(w io.Writer, name, src string, cfg *config.Config, reg *types.Registry) error {
	errs := 0
	log := &diag.Log{
		OnReport: func(d diag.Diagnostic) {
			if cfg.MaxErrors > 0 && errs >= cfg.MaxErrors {
				return
			}
			if d.Severity == diag.Error {
				errs++
			}
			fmt.Fprintln(w, d)
		},
	}
	if err := checkSource(name, strings.NewReader(src), cfg, reg, log); err != nil {
		return err
	}
	if log.Len() == 0 {
		fmt.Fprintln(w, "ok")
	}
	return nil
}
