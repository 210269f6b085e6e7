package syntax

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// ----------------------------------------------------------------------------
// Test helpers

func parseFile(t *testing.T, src string) *File {
	t.Helper()
	f, errs := parseFileWithErrors(t, src)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors:\n%s", strings.Join(errs, "\n"))
	}
	return f
}

func parseFileWithErrors(t *testing.T, src string) (*File, []string) {
	t.Helper()
	var errs []string
	errh := func(pos Pos, msg string) {
		errs = append(errs, pos.String()+": "+msg)
	}
	p := NewParser("test.nestml", strings.NewReader(src), errh)
	f := p.Parse()
	if f == nil {
		t.Fatal("Parse returned nil")
	}
	return f, errs
}

// parseDecl parses a single declaration wrapped in a neuron state block.
func parseDecl(t *testing.T, decl string) *Declaration {
	t.Helper()
	f := parseFile(t, "neuron n:\n  state:\n    "+decl+"\n  end\nend\n")
	if len(f.Models) != 1 || len(f.Models[0].Blocks) != 1 || len(f.Models[0].Blocks[0].Decls) != 1 {
		t.Fatalf("expected exactly one declaration in %q", decl)
	}
	return f.Models[0].Blocks[0].Decls[0]
}

func parseExpr(t *testing.T, src string) Expr {
	t.Helper()
	d := parseDecl(t, "x real = "+src)
	return d.Value
}

// ----------------------------------------------------------------------------
// Models and blocks

func TestParseNeuron(t *testing.T) {
	src := `
neuron iaf_psc_alpha:
  state:
    recordable V_m mV = E_L
  end

  parameters:
    C_m pF = 250 pF [[ C_m > 0 pF ]]
    tau_m ms = 10 ms
    E_L mV = -70 mV
  end

  internals:
    function h ms = resolution()
  end
end
`
	f := parseFile(t, src)
	if len(f.Models) != 1 {
		t.Fatalf("got %d models, want 1", len(f.Models))
	}
	m := f.Models[0]
	if m.Kind != NeuronModel || m.Name.Value != "iaf_psc_alpha" {
		t.Errorf("model = %s %s, want neuron iaf_psc_alpha", m.Kind, m.Name.Value)
	}
	if len(m.Blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(m.Blocks))
	}
	wantKinds := []BlockKind{StateBlock, ParametersBlock, InternalsBlock}
	for i, b := range m.Blocks {
		if b.Kind != wantKinds[i] {
			t.Errorf("block %d kind = %s, want %s", i, b.Kind, wantKinds[i])
		}
	}
	if got := len(m.Declarations()); got != 5 {
		t.Errorf("Declarations() = %d, want 5", got)
	}

	vm := m.Blocks[0].Decls[0]
	if !vm.Recordable || vm.HasInvariant() {
		t.Errorf("V_m: recordable=%v invariant=%v, want true/false", vm.Recordable, vm.HasInvariant())
	}

	cm := m.Blocks[1].Decls[0]
	inv, ok := cm.InvariantExpr()
	if !ok {
		t.Fatal("C_m should carry an invariant")
	}
	if got := ExprString(inv); got != "C_m > 0 pF" {
		t.Errorf("invariant = %q, want %q", got, "C_m > 0 pF")
	}

	h := m.Blocks[2].Decls[0]
	if !h.Function {
		t.Error("h should be a function declaration")
	}
	if _, ok := h.Value.(*CallExpr); !ok {
		t.Errorf("h value = %T, want *CallExpr", h.Value)
	}
}

func TestParseSynapseAndMultipleModels(t *testing.T) {
	src := `
neuron a:
end
synapse b:
  parameters:
    w real = 1.0
  end
end
`
	f := parseFile(t, src)
	if len(f.Models) != 2 {
		t.Fatalf("got %d models, want 2", len(f.Models))
	}
	if f.Models[1].Kind != SynapseModel || f.Models[1].Name.Value != "b" {
		t.Errorf("second model = %s %s, want synapse b", f.Models[1].Kind, f.Models[1].Name.Value)
	}
}

func TestParseInitialValuesBlock(t *testing.T) {
	f := parseFile(t, "neuron n:\n initial_values:\n  g real = 0\n end\nend\n")
	if f.Models[0].Blocks[0].Kind != InitialValuesBlock {
		t.Errorf("kind = %s, want initial_values", f.Models[0].Blocks[0].Kind)
	}
}

// ----------------------------------------------------------------------------
// Declarations

func TestParseDeclarationForms(t *testing.T) {
	tests := []struct {
		src       string
		names     []string
		typ       string
		hasValue  bool
		invariant string
	}{
		{"x integer", []string{"x"}, "integer", false, ""},
		{"x integer = 5", []string{"x"}, "integer", true, ""},
		{"x integer = 5 [[ true ]]", []string{"x"}, "integer", true, "true"},
		{"x integer = 5 [[ 5 ]]", []string{"x"}, "integer", true, "5"},
		{"x integer = 5 [[ undefined_var ]]", []string{"x"}, "integer", true, "undefined_var"},
		{"x integer [[ x >= 0 ]]", []string{"x"}, "integer", false, "x >= 0"},
		{"a, b, c real = 1.5", []string{"a", "b", "c"}, "real", true, ""},
		{"V_m mV = -70 mV [[ V_m < 0 mV and V_m > -100 mV ]]", []string{"V_m"}, "mV", true, "V_m < 0 mV and V_m > -100 mV"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			d := parseDecl(t, tt.src)
			if len(d.Names) != len(tt.names) {
				t.Fatalf("got %d names, want %d", len(d.Names), len(tt.names))
			}
			for i, n := range d.Names {
				if n.Value != tt.names[i] {
					t.Errorf("name[%d] = %q, want %q", i, n.Value, tt.names[i])
				}
			}
			if d.Type.Value != tt.typ {
				t.Errorf("type = %q, want %q", d.Type.Value, tt.typ)
			}
			if (d.Value != nil) != tt.hasValue {
				t.Errorf("has value = %v, want %v", d.Value != nil, tt.hasValue)
			}
			inv, ok := d.InvariantExpr()
			if ok != (tt.invariant != "") || d.HasInvariant() != ok {
				t.Fatalf("invariant present = %v, want %v", ok, tt.invariant != "")
			}
			if ok && ExprString(inv) != tt.invariant {
				t.Errorf("invariant = %q, want %q", ExprString(inv), tt.invariant)
			}
		})
	}
}

func TestInvariantPosition(t *testing.T) {
	f := parseFile(t, "neuron n:\n  state:\n    x integer = 5 [[ 5 ]]\n  end\nend\n")
	inv, _ := f.Models[0].Blocks[0].Decls[0].InvariantExpr()
	if got := inv.Pos().String(); got != "test.nestml:3:22" {
		t.Errorf("invariant pos = %s, want test.nestml:3:22", got)
	}
}

func TestBinaryPositionIsLeftOperand(t *testing.T) {
	f := parseFile(t, "neuron n:\n state:\n  x integer [[ x + 1 > 0 ]]\n end\nend\n")
	inv, _ := f.Models[0].Blocks[0].Decls[0].InvariantExpr()
	op, ok := inv.(*Operation)
	if !ok {
		t.Fatalf("invariant = %T, want *Operation", inv)
	}
	if op.Pos() != op.X.Pos() || op.X.(*Operation).X.Pos() != op.Pos() {
		t.Errorf("binary operation should start at its leftmost operand")
	}
	if got := op.Pos().String(); got != "test.nestml:3:16" {
		t.Errorf("pos = %s, want test.nestml:3:16", got)
	}
}

func TestParseExplicitSemicolons(t *testing.T) {
	var errs []string
	p := NewParser("test.nestml", strings.NewReader("neuron n: state: x integer; y real = 1; end; end"), func(pos Pos, msg string) {
		errs = append(errs, msg)
	})
	p.SetASIEnabled(false)
	f := p.Parse()
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := len(f.Models[0].Blocks[0].Decls); got != 2 {
		t.Errorf("got %d declarations, want 2", got)
	}
}

// ----------------------------------------------------------------------------
// Expressions

func TestParseExprStructure(t *testing.T) {
	tests := []struct {
		src  string
		want string // fully parenthesized structure
	}{
		{"a + b * c", "(a + (b * c))"},
		{"a * b + c", "((a * b) + c)"},
		{"a - b - c", "((a - b) - c)"},
		{"a ** b ** c", "(a ** (b ** c))"},
		{"-a ** 2", "-(a ** 2)"},
		{"-a * 2", "(-a * 2)"},
		{"a < b and c > d", "((a < b) and (c > d))"},
		{"a or b and c", "(a or (b and c))"},
		{"not a == b", "not (a == b)"},
		{"not a and b", "(not a and b)"},
		{"a > 0 ? a : b", "(a > 0) ? a : b"},
		{"c ? 1 : d ? 2 : 3", "c ? 1 : d ? 2 : 3"},
		{"exp(-t / tau)", "exp((-t / tau))"},
		{"max(a, b + 1)", "max(a, (b + 1))"},
		{"(a + b) * c", "((a + b) * c)"},
		{"10 mV + x", "(10 mV + x)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := structure(parseExpr(t, tt.src)); got != tt.want {
				t.Errorf("structure = %q, want %q", got, tt.want)
			}
		})
	}
}

// structure renders e with explicit grouping for binary operations.
func structure(e Expr) string {
	switch x := e.(type) {
	case *Operation:
		if x.Y == nil {
			sep := ""
			if x.Op == _Not {
				sep = " "
			}
			return x.Op.String() + sep + structure(x.X)
		}
		return "(" + structure(x.X) + " " + x.Op.String() + " " + structure(x.Y) + ")"
	case *CondExpr:
		return structure(x.Cond) + " ? " + structure(x.Then) + " : " + structure(x.Else)
	case *CallExpr:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = structure(a)
		}
		return x.Fun.Value + "(" + strings.Join(args, ", ") + ")"
	case *ParenExpr:
		return structure(x.X)
	default:
		return ExprString(e)
	}
}

func TestParseLiteralUnits(t *testing.T) {
	lit, ok := parseExpr(t, "2.5 ms").(*BasicLit)
	if !ok {
		t.Fatal("expected *BasicLit")
	}
	if lit.Kind != FloatLit || lit.Value != "2.5" || lit.Unit == nil || lit.Unit.Value != "ms" {
		t.Errorf("literal = %+v, want float 2.5 ms", lit)
	}

	str, ok := parseExpr(t, `"soma"`).(*BasicLit)
	if !ok || str.Kind != StringLit || str.Unit != nil {
		t.Errorf("string literal = %+v", str)
	}
}

func TestExprString(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"undefined_var", "undefined_var"},
		{"a+b", "a + b"},
		{"not  a", "not a"},
		{"-x", "-x"},
		{`"soma"`, `"soma"`},
		{"10mV", "10 mV"},
		{"( a )", "(a)"},
		{"f( a ,b )", "f(a, b)"},
		{"c?a:b", "c ? a : b"},
		{"a<>b", "a != b"},
	}

	for _, tt := range tests {
		if got := ExprString(parseExpr(t, tt.src)); got != tt.want {
			t.Errorf("ExprString(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
	if got := ExprString(nil); got != "<nil>" {
		t.Errorf("ExprString(nil) = %q", got)
	}
}

// ----------------------------------------------------------------------------
// Errors

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"not a model", "state:\nend\n", "expected neuron or synapse"},
		{"missing colon", "neuron n\nend\n", "expected :"},
		{"missing end", "neuron n:\n state:\n  x real\n end\n", "expected end"},
		{"missing type", "neuron n:\n state:\n  x = 1\n end\nend\n", "expected identifier"},
		{"unclosed invariant", "neuron n:\n state:\n  x real [[ x > 0\n end\nend\n", "expected ]] to close invariant"},
		{"bad operand", "neuron n:\n state:\n  x real = *\n end\nend\n", "expected operand"},
		{"junk after declaration", "neuron n:\n state:\n  x real = 1 2\n end\nend\n", "after declaration"},
		{"nested block", "neuron n:\n state:\n  parameters:\n  end\n end\nend\n", "expected end of state block"},
		{"stray token in model", "neuron n:\n x real\nend\n", "expected block or end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := parseFileWithErrors(t, tt.src)
			if len(errs) == 0 {
				t.Fatalf("expected error containing %q, got none", tt.msg)
			}
			if !strings.Contains(strings.Join(errs, "\n"), tt.msg) {
				t.Errorf("expected error containing %q, got:\n%s", tt.msg, strings.Join(errs, "\n"))
			}
		})
	}
}

func TestParseRecoversAfterBadDeclaration(t *testing.T) {
	src := "neuron n:\n state:\n  x real = )\n  y real = 1\n end\nend\n"
	f, errs := parseFileWithErrors(t, src)
	if len(errs) == 0 {
		t.Fatal("expected errors")
	}
	decls := f.Models[0].Blocks[0].Decls
	if len(decls) != 2 || decls[1].Names[0].Value != "y" {
		t.Errorf("parser did not recover to y: %d declarations", len(decls))
	}
}

func TestMissingOperandEndsDeclaration(t *testing.T) {
	tests := []struct {
		name string
		bad  string
	}{
		{"value", "x real = *"},
		{"second operand", "x real = 2 * *"},
		{"invariant", "x real [[ * ]]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "neuron n:\n state:\n  " + tt.bad + "\n  y integer = 5 [[ 5 ]]\n end\nend\n"
			f, errs := parseFileWithErrors(t, src)
			if len(errs) != 1 || !strings.Contains(errs[0], "expected operand") {
				t.Fatalf("errors = %q, want one missing operand", errs)
			}
			decls := f.Models[0].Blocks[0].Decls
			if len(decls) != 2 {
				t.Fatalf("got %d declarations, want 2", len(decls))
			}
			y := decls[1]
			if y.Names[0].Value != "y" || !y.HasInvariant() {
				t.Errorf("second declaration = %s with invariant %v", y.Names[0].Value, y.HasInvariant())
			}
			if got := y.Invariant.Pos().String(); got != "test.nestml:4:20" {
				t.Errorf("invariant position = %s, want test.nestml:4:20", got)
			}
		})
	}
}

func TestFirstErrorAndErrorLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString("neuron n:\n state:\n")
	for i := 0; i < 20; i++ {
		b.WriteString("  x real = *\n")
	}
	b.WriteString(" end\nend\n")

	var msgs []string
	p := NewParser("test.nestml", strings.NewReader(b.String()), func(pos Pos, msg string) {
		msgs = append(msgs, msg)
	})
	p.Parse()
	if p.Errors() != maxErrors {
		t.Errorf("Errors() = %d, want %d", p.Errors(), maxErrors)
	}
	if _, ok := p.FirstError().(*SyntaxError); !ok {
		t.Errorf("FirstError() = %T, want *SyntaxError", p.FirstError())
	}
	if last := msgs[len(msgs)-1]; !strings.Contains(last, "too many errors") {
		t.Errorf("last message = %q, want abort notice", last)
	}
}

// ----------------------------------------------------------------------------
// Printers and walking

func TestFprint(t *testing.T) {
	f := parseFile(t, "neuron n:\n parameters:\n  x integer = 5 [[ x > 0 ]]\n end\nend\n")
	var buf bytes.Buffer
	Fprint(&buf, f)
	out := buf.String()
	for _, want := range []string{"ModelDecl", "Name: n", "Kind: parameters", "Names: x", "Type: integer", "Invariant:", "Operation >"} {
		if !strings.Contains(out, want) {
			t.Errorf("Fprint output missing %q:\n%s", want, out)
		}
	}
}

func TestFprintJSON(t *testing.T) {
	f := parseFile(t, "neuron n:\n state:\n  V_m mV = -70 mV [[ V_m < 0 mV ]]\n end\nend\n")
	var buf bytes.Buffer
	if err := FprintJSON(&buf, f); err != nil {
		t.Fatalf("FprintJSON: %v", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	models := doc["models"].([]interface{})
	decl := models[0].(map[string]interface{})["blocks"].([]interface{})[0].(map[string]interface{})["decls"].([]interface{})[0].(map[string]interface{})
	if decl["datatype"] != "mV" {
		t.Errorf("datatype = %v, want mV", decl["datatype"])
	}
	if _, ok := decl["invariant"]; !ok {
		t.Error("JSON declaration missing invariant")
	}
}

func TestInspectVisitsInvariant(t *testing.T) {
	f := parseFile(t, "neuron n:\n state:\n  x integer = 5 [[ y > 0 ]]\n end\nend\n")
	var names []string
	Inspect(f, func(n Node) bool {
		if name, ok := n.(*Name); ok {
			names = append(names, name.Value)
		}
		return true
	})
	got := strings.Join(names, ",")
	if got != "n,x,integer,y" {
		t.Errorf("visited names = %s, want n,x,integer,y", got)
	}
}

func TestParameterInvariants(t *testing.T) {
	src := `
neuron n:
  state:
    V_m mV = 0 mV [[ V_m < 0 mV ]]
  end
  parameters:
    C_m pF = 250 pF [[ C_m > 0 pF ]]
    tau ms = 10 ms
    g nS = 1 nS [[ g >= 0 nS ]]
  end
end
`
	f := parseFile(t, src)
	invs := f.Models[0].ParameterInvariants()
	if len(invs) != 2 {
		t.Fatalf("got %d parameter invariants, want 2", len(invs))
	}
	if ExprString(invs[0]) != "C_m > 0 pF" || ExprString(invs[1]) != "g >= 0 nS" {
		t.Errorf("invariants = %q, %q", ExprString(invs[0]), ExprString(invs[1]))
	}
}
