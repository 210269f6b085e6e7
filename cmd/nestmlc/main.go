// Package main implements the nestmlc model checker entry point.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"github.com/you-not-fish/nestml/internal/cocos"
	"github.com/you-not-fish/nestml/internal/config"
	"github.com/you-not-fish/nestml/internal/diag"
	"github.com/you-not-fish/nestml/internal/either"
	"github.com/you-not-fish/nestml/internal/syntax"
	"github.com/you-not-fish/nestml/internal/types"
	"github.com/you-not-fish/nestml/internal/types2"
)

// Checker flags
var (
	emitTokens     = flag.Bool("emit-tokens", false, "Output token stream")
	noASI          = flag.Bool("no-asi", false, "Disable newline-terminated declarations")
	emitAST        = flag.Bool("emit-ast", false, "Output AST")
	astFormat      = flag.String("ast-format", "text", "AST output format (text or json)")
	emitTypes      = flag.Bool("emit-types", false, "Output declarations with resolved types")
	emitInvariants = flag.Bool("emit-invariants", false, "Output parameter invariants per model")
	emitScopes     = flag.Bool("emit-scopes", false, "Output the scope of every model")
	configPath     = flag.String("config", "", "Configuration file (default "+config.DefaultFile+" if present)")
	werror         = flag.Bool("Werror", false, "Treat warnings as errors")
	jobs           = flag.Int("j", 1, "Number of models checked concurrently")
	disable        = flag.String("disable", "", "Comma-separated context conditions to skip")
	listRules      = flag.Bool("list-rules", false, "List context conditions and exit")
	interactive    = flag.Bool("i", false, "Interactive mode")
	version        = flag.Bool("version", false, "Print version")
	trace          = flag.Bool("trace", false, "Output timing trace")
)

// Version information
const Version = "0.1.0-dev"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "NESTML Model Checker %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: nestmlc [options] <file.nestml>...\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("nestmlc version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(0)
	}

	if *listRules {
		for _, name := range cocos.Names() {
			fmt.Println(name)
		}
		os.Exit(0)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		os.Exit(runInteractive(cfg))
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input file")
		fmt.Fprintln(os.Stderr, "usage: nestmlc [options] <file.nestml>...")
		os.Exit(1)
	}

	filename := args[0]

	// Handle -emit-tokens
	if *emitTokens {
		os.Exit(runEmitTokens(filename))
	}

	// Handle -emit-ast
	if *emitAST {
		os.Exit(runEmitAST(filename))
	}

	// Handle -emit-types
	if *emitTypes {
		os.Exit(runEmitTypes(filename))
	}

	// Handle -emit-invariants
	if *emitInvariants {
		os.Exit(runEmitInvariants(filename))
	}

	// Handle -emit-scopes
	if *emitScopes {
		os.Exit(runEmitScopes(filename))
	}

	code := 0
	for _, filename := range args {
		if runCheck(filename, cfg) != 0 {
			code = 1
		}
	}
	os.Exit(code)
}

// loadConfig reads the configuration file and applies the flags the user
// set explicitly on top of it.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.LoadOptional(config.DefaultFile)
	}
	if err != nil {
		return nil, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "Werror":
			cfg.Werror = *werror
		case "j":
			cfg.Parallel = *jobs
		case "disable":
			for _, name := range splitList(*disable) {
				if !slices.Contains(cfg.Disable, name) {
					cfg.Disable = append(cfg.Disable, name)
				}
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func tracef(phase string, start time.Time) {
	if *trace {
		fmt.Fprintf(os.Stderr, "[trace] %-8s %v\n", phase, time.Since(start))
	}
}

// runCheck checks one file and prints its diagnostics to stderr.
func runCheck(filename string, cfg *config.Config) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer f.Close()

	log := &diag.Log{}
	if err := checkSource(filename, f, cfg, types.NewRegistry(), log); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	printDiagnostics(os.Stderr, log.Sorted(), cfg.MaxErrors)
	return exitStatus(log, cfg)
}

// checkSource parses src, resolves its expression types and runs the
// enabled context conditions, reporting everything to log. Context
// conditions are skipped when the source has syntax errors. The returned
// error is operational, not a diagnostic.
func checkSource(filename string, src io.Reader, cfg *config.Config, reg *types.Registry, log *diag.Log) error {
	start := time.Now()
	p := syntax.NewParser(filename, src, log.Handler(diag.Error, "syntax"))
	if *noASI {
		p.SetASIEnabled(false)
	}
	file := p.Parse()
	tracef("parse", start)
	if p.Errors() > 0 {
		return nil
	}

	start = time.Now()
	info := types2.NewInfo()
	conf := &types2.Config{
		Error:    log.Handler(diag.Error, "types"),
		Registry: reg,
	}
	types2.Check(file, conf, info)
	tracef("resolve", start)

	start = time.Now()
	conds, err := cocos.New(cocos.Env{Registry: reg, Resolver: info, Sink: log}, cfg.Disable...)
	if err != nil {
		return err
	}
	conds.CheckParallel(file, cfg.Parallel)
	tracef("cocos", start)
	return nil
}

// printDiagnostics writes diags to w, stopping after limit errors when limit > 0.
func printDiagnostics(w io.Writer, diags []diag.Diagnostic, limit int) {
	errs := 0
	for i, d := range diags {
		fmt.Fprintln(w, d)
		if d.Severity == diag.Error {
			errs++
		}
		if limit > 0 && errs >= limit && i < len(diags)-1 {
			fmt.Fprintf(w, "too many errors (%d more diagnostics not shown)\n", len(diags)-i-1)
			return
		}
	}
}

func exitStatus(log *diag.Log, cfg *config.Config) int {
	if log.HasErrors() || (cfg.Werror && log.WarningCount() > 0) {
		return 1
	}
	return 0
}

// runEmitAST parses the input file and outputs the AST.
func runEmitAST(filename string) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer f.Close()

	var errs []string
	errh := func(pos syntax.Pos, msg string) {
		errs = append(errs, fmt.Sprintf("%s: %s", pos, msg))
	}

	p := syntax.NewParser(filename, f, errh)
	if *noASI {
		p.SetASIEnabled(false)
	}
	ast := p.Parse()

	// Print errors first
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}

	switch *astFormat {
	case "json":
		if err := syntax.FprintJSON(os.Stdout, ast); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	default:
		syntax.Fprint(os.Stdout, ast)
	}

	if len(errs) > 0 {
		return 1
	}
	return 0
}

// runEmitTokens scans the input file and prints all tokens with positions.
func runEmitTokens(filename string) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer f.Close()

	var errors []string
	errh := func(line, col uint32, msg string) {
		errors = append(errors, fmt.Sprintf("%s:%d:%d: %s", filename, line, col, msg))
	}

	s := syntax.NewScanner(filename, f, errh)
	if *noASI {
		s.SetASIEnabled(false)
	}

	fmt.Printf("%-20s %-14s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Printf("%-20s %-14s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 14), strings.Repeat("-", 20))

	for {
		s.Next()
		tok := s.Token()
		fmt.Printf("%-20s %-14s %s\n", s.Pos(), tok, formatLiteral(s.Literal()))
		if tok.IsEOF() {
			break
		}
	}

	if len(errors) > 0 {
		fmt.Println()
		fmt.Println("Errors:")
		for _, e := range errors {
			fmt.Printf("  %s\n", e)
		}
		return 1
	}

	return 0
}

// formatLiteral quotes a literal for display, escaping control characters.
func formatLiteral(lit string) string {
	if lit == "" {
		return "\"\""
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}

// parseAndResolve parses and type-checks filename, printing syntax and
// structural errors to stderr. It returns nil if the file could not be
// parsed.
func parseAndResolve(filename string) (*syntax.File, *types2.Info, bool) {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return nil, nil, false
	}
	defer f.Close()

	ok := true
	errh := func(pos syntax.Pos, msg string) {
		fmt.Fprintf(os.Stderr, "%s: %s\n", pos, msg)
		ok = false
	}

	p := syntax.NewParser(filename, f, errh)
	if *noASI {
		p.SetASIEnabled(false)
	}
	file := p.Parse()
	if p.Errors() > 0 {
		return nil, nil, false
	}

	info := types2.NewInfo()
	types2.Check(file, &types2.Config{Error: errh}, info)
	return file, info, ok
}

// runEmitTypes prints every declaration with the types of its variables,
// value and invariant.
func runEmitTypes(filename string) int {
	file, info, ok := parseAndResolve(filename)
	if file == nil {
		return 1
	}

	for _, m := range file.Models {
		fmt.Printf("%s %s\n", m.Kind, m.Name.Value)
		for _, b := range m.Blocks {
			fmt.Printf("  %s:\n", b.Kind)
			for _, d := range b.Decls {
				printTypedDecl(d, info, "    ")
			}
		}
	}

	if !ok {
		return 1
	}
	return 0
}

// printTypedDecl outputs a declaration with type annotations.
func printTypedDecl(d *syntax.Declaration, info *types2.Info, indent string) {
	names := make([]string, len(d.Names))
	for i, n := range d.Names {
		names[i] = n.Value
	}
	declared := "?"
	if obj := info.ObjectOf(d.Names[0]); obj != nil && obj.Type() != nil {
		declared = obj.Type().String()
	}
	fmt.Printf("%s%s: %s\n", indent, strings.Join(names, ", "), declared)
	if d.Value != nil {
		fmt.Printf("%s  value:     %s\n", indent, typedExprString(d.Value, info))
	}
	if inv, ok := d.InvariantExpr(); ok {
		fmt.Printf("%s  invariant: %s\n", indent, typedExprString(inv, info))
	}
}

// resultString formats a resolver result: the type name, or "?" followed
// by the failure reason.
func resultString(r types2.Result) string {
	s := either.Map(r, types.Type.String)
	if name, ok := s.Get(); ok {
		return name
	}
	return "? " + s.Failure()
}

func typedExprString(expr syntax.Expr, info *types2.Info) string {
	typ := fmt.Sprintf(" (%s)", resultString(info.TypeOf(expr)))

	switch e := expr.(type) {
	case *syntax.Name:
		return fmt.Sprintf("Name %q%s", e.Value, typ)
	case *syntax.BasicLit:
		if e.Unit != nil {
			return fmt.Sprintf("BasicLit %q %s%s", e.Value, e.Unit.Value, typ)
		}
		return fmt.Sprintf("BasicLit %q%s", e.Value, typ)
	case *syntax.Operation:
		if e.Y == nil {
			return fmt.Sprintf("Operation %s%s [X=%s]", e.Op, typ, typedExprString(e.X, info))
		}
		return fmt.Sprintf("Operation %s%s [X=%s, Y=%s]", e.Op, typ, typedExprString(e.X, info), typedExprString(e.Y, info))
	case *syntax.CondExpr:
		return fmt.Sprintf("CondExpr%s [Cond=%s, Then=%s, Else=%s]", typ,
			typedExprString(e.Cond, info), typedExprString(e.Then, info), typedExprString(e.Else, info))
	case *syntax.CallExpr:
		args := make([]string, len(e.Args))
		for i, arg := range e.Args {
			args[i] = typedExprString(arg, info)
		}
		return fmt.Sprintf("CallExpr %s%s [Args=[%s]]", e.Fun.Value, typ, strings.Join(args, ", "))
	case *syntax.ParenExpr:
		return fmt.Sprintf("ParenExpr%s [X=%s]", typ, typedExprString(e.X, info))
	default:
		return fmt.Sprintf("%T%s", expr, typ)
	}
}

// runEmitInvariants prints the parameter invariants of every model.
func runEmitInvariants(filename string) int {
	file, info, ok := parseAndResolve(filename)
	if file == nil {
		return 1
	}

	for _, m := range file.Models {
		fmt.Printf("%s %s\n", m.Kind, m.Name.Value)
		for _, inv := range m.ParameterInvariants() {
			fmt.Printf("  %s: %s : %s\n", inv.Pos(), syntax.ExprString(inv), resultString(info.TypeOf(inv)))
		}
	}

	if !ok {
		return 1
	}
	return 0
}

// runEmitScopes prints the scope tree built for every model.
func runEmitScopes(filename string) int {
	file, info, ok := parseAndResolve(filename)
	if file == nil {
		return 1
	}

	for _, m := range file.Models {
		if scope := info.Scopes[m]; scope != nil {
			fmt.Print(scope)
		}
	}

	if !ok {
		return 1
	}
	return 0
}
