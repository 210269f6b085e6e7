package cocos

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/you-not-fish/nestml/internal/diag"
	"github.com/you-not-fish/nestml/internal/syntax"
	"github.com/you-not-fish/nestml/internal/types"
	"github.com/you-not-fish/nestml/internal/types2"
)

// countingRule counts the declarations it sees.
type countingRule struct {
	mu   sync.Mutex
	seen int
}

func (*countingRule) Name() string { return "Counting" }

func (r *countingRule) CheckDeclaration(*syntax.Declaration) {
	r.mu.Lock()
	r.seen++
	r.mu.Unlock()
}

func checkEnv(t *testing.T, src string) (*syntax.File, Env, *diag.Log) {
	t.Helper()
	log := &diag.Log{}
	f := syntax.NewParser("test.nestml", strings.NewReader(src), log.Handler(diag.Error, "")).Parse()
	if log.Len() > 0 {
		t.Fatalf("parse errors: %v", log.Diagnostics())
	}
	reg := types.NewRegistry()
	info := types2.NewInfo()
	types2.Check(f, &types2.Config{Registry: reg, Error: log.Handler(diag.Error, "")}, info)
	return f, Env{Registry: reg, Resolver: info, Sink: log}, log
}

const twoNeurons = `
neuron a:
  parameters:
    p integer = 1 [[ p > 0 ]]
    q integer = 1 [[ q ]]
  end
end
neuron b:
  state:
    r real = 0.0 [[ missing ]]
  end
end
`

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 1 || names[0] != InvalidTypeOfInvariantName {
		t.Errorf("Names() = %v", names)
	}
}

func TestNewAndCheck(t *testing.T) {
	f, env, log := checkEnv(t, twoNeurons)
	cs, err := New(env)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := cs.Names(); len(got) != 1 || got[0] != InvalidTypeOfInvariantName {
		t.Errorf("active rules = %v", got)
	}
	cs.Check(f)

	diags := log.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %v", len(diags), diags)
	}
	if diags[0].Severity != diag.Error || !strings.Contains(diags[0].Msg, "not integer") {
		t.Errorf("first diagnostic = %v", diags[0])
	}
	if diags[1].Severity != diag.Warning || !strings.Contains(diags[1].Msg, "'missing'") {
		t.Errorf("second diagnostic = %v", diags[1])
	}
}

func TestNewErrors(t *testing.T) {
	_, env, _ := checkEnv(t, twoNeurons)
	if _, err := New(env, "NoSuchRule"); err == nil || !strings.Contains(err.Error(), `unknown context condition "NoSuchRule"`) {
		t.Errorf("New with unknown rule: err = %v", err)
	}
	if _, err := New(Env{}); err == nil {
		t.Error("New with empty env should fail")
	}
}

func TestDisabledRule(t *testing.T) {
	f, env, log := checkEnv(t, twoNeurons)
	cs, err := New(env, InvalidTypeOfInvariantName)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	counter := &countingRule{}
	cs.Add(counter)
	cs.Check(f)
	if log.Len() != 0 {
		t.Errorf("disabled rule reported %v", log.Diagnostics())
	}
	if counter.seen != 3 {
		t.Errorf("other rules should still run: saw %d declarations, want 3", counter.seen)
	}
}

func TestRulesAreIndependent(t *testing.T) {
	f, env, log := checkEnv(t, twoNeurons)
	cs, _ := New(env)
	counter := &countingRule{}
	cs.Add(counter)
	cs.Check(f)
	if counter.seen != 3 || log.Len() != 2 {
		t.Errorf("seen=%d diagnostics=%d, want 3/2", counter.seen, log.Len())
	}
}

func TestCheckParallelMatchesSerial(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "neuron n%d:\n  parameters:\n", i)
		fmt.Fprintf(&b, "    a%d integer = 1 [[ a%d > 0 ]]\n", i, i)
		fmt.Fprintf(&b, "    b%d integer = 1 [[ b%d ]]\n", i, i)
		fmt.Fprintf(&b, "    c%d real = 1.0 [[ nope%d ]]\n", i, i)
		b.WriteString("  end\nend\n")
	}
	src := b.String()

	f1, env1, serial := checkEnv(t, src)
	cs1, _ := New(env1)
	cs1.Check(f1)

	f2, env2, parallel := checkEnv(t, src)
	cs2, _ := New(env2)
	cs2.CheckParallel(f2, 4)

	s, p := serial.Sorted(), parallel.Sorted()
	if len(s) != 40 || len(p) != len(s) {
		t.Fatalf("serial %d, parallel %d diagnostics, want 40", len(s), len(p))
	}
	for i := range s {
		if s[i] != p[i] {
			t.Errorf("diagnostic %d: serial %v, parallel %v", i, s[i], p[i])
		}
	}
}

func TestCheckParallelSingleWorker(t *testing.T) {
	f, env, log := checkEnv(t, twoNeurons)
	cs, _ := New(env)
	cs.CheckParallel(f, 1)
	if log.Len() != 2 {
		t.Errorf("got %d diagnostics, want 2", log.Len())
	}
}
