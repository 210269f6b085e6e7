// Package cocos implements context conditions: independent semantic rules
// run over the declarations of parsed and type-checked models.
package cocos

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/you-not-fish/nestml/internal/diag"
	"github.com/you-not-fish/nestml/internal/either"
	"github.com/you-not-fish/nestml/internal/syntax"
	"github.com/you-not-fish/nestml/internal/types"
)

// DeclarationCondition is a rule checked on every declaration.
// Findings go to the rule's sink; a rule never stops other rules.
type DeclarationCondition interface {
	Name() string
	CheckDeclaration(d *syntax.Declaration)
}

// TypeResolver returns the type of an expression, or the reason it has none.
type TypeResolver interface {
	TypeOf(e syntax.Expr) either.Either[types.Type, string]
}

// Env holds the services rules are built with.
type Env struct {
	Registry *types.Registry
	Resolver TypeResolver
	Sink     diag.Sink
}

// Factory builds a rule from an environment.
type Factory func(Env) DeclarationCondition

var catalog = map[string]Factory{
	InvalidTypeOfInvariantName: func(env Env) DeclarationCondition {
		return NewInvalidTypeOfInvariant(env.Registry, env.Resolver, env.Sink)
	},
}

// Names returns the names of all known rules, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Conditions is a set of rules sharing one environment.
type Conditions struct {
	env   Env
	conds []DeclarationCondition
}

// New instantiates every known rule except the disabled ones.
// It fails if env is incomplete or a disabled name is unknown.
func New(env Env, disabled ...string) (*Conditions, error) {
	if env.Registry == nil || env.Resolver == nil || env.Sink == nil {
		return nil, errors.New("incomplete environment")
	}
	off := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		if _, ok := catalog[name]; !ok {
			return nil, errors.Errorf("unknown context condition %q", name)
		}
		off[name] = true
	}

	cs := &Conditions{env: env}
	for _, name := range Names() {
		if !off[name] {
			cs.conds = append(cs.conds, catalog[name](env))
		}
	}
	return cs, nil
}

// Add appends a rule built outside the catalog.
func (cs *Conditions) Add(c DeclarationCondition) {
	cs.conds = append(cs.conds, c)
}

// Names returns the names of the active rules in run order.
func (cs *Conditions) Names() []string {
	names := make([]string, len(cs.conds))
	for i, c := range cs.conds {
		names[i] = c.Name()
	}
	return names
}

// Check runs every rule on every declaration of file, in source order.
func (cs *Conditions) Check(file *syntax.File) {
	for _, m := range file.Models {
		cs.checkModel(m)
	}
}

// CheckParallel is like Check but checks up to workers models at a time.
// The resolver and registry must not change while it runs.
func (cs *Conditions) CheckParallel(file *syntax.File, workers int) {
	if workers <= 1 || len(file.Models) <= 1 {
		cs.Check(file)
		return
	}

	jobs := make(chan *syntax.ModelDecl)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range jobs {
				cs.checkModel(m)
			}
		}()
	}
	for _, m := range file.Models {
		jobs <- m
	}
	close(jobs)
	wg.Wait()
}

func (cs *Conditions) checkModel(m *syntax.ModelDecl) {
	for _, d := range m.Declarations() {
		for _, c := range cs.conds {
			c.CheckDeclaration(d)
		}
	}
}
