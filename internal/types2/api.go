package types2

import (
	"github.com/you-not-fish/nestml/internal/either"
	"github.com/you-not-fish/nestml/internal/syntax"
	"github.com/you-not-fish/nestml/internal/types"
)

// Result is the outcome of typing one expression: its type, or the reason
// no type could be computed.
type Result = either.Either[types.Type, string]

// notChecked is the failure returned for expressions Check never visited.
const notChecked = "expression was not type-checked"

// Config specifies the configuration for type checking.
type Config struct {
	// Error is called for each structural error (redeclared variable,
	// unknown type name). If nil, errors are silently ignored.
	Error ErrorHandler

	// Registry provides the predefined names.
	// If nil, a new registry is built.
	Registry *types.Registry
}

// Info holds the results of type checking.
// It is not modified after Check returns and may be read concurrently.
type Info struct {
	// Types maps every checked expression, including sub-expressions,
	// to its type or failure reason.
	Types map[syntax.Expr]Result

	// Defs maps declared variable names to their objects.
	Defs map[*syntax.Name]types.Object

	// Uses maps referencing identifiers (variables, units, functions)
	// to the objects they denote.
	Uses map[*syntax.Name]types.Object

	// Scopes maps each model to its scope.
	Scopes map[syntax.Node]*types.Scope
}

// NewInfo returns an Info with all maps allocated.
func NewInfo() *Info {
	return &Info{
		Types:  make(map[syntax.Expr]Result),
		Defs:   make(map[*syntax.Name]types.Object),
		Uses:   make(map[*syntax.Name]types.Object),
		Scopes: make(map[syntax.Node]*types.Scope),
	}
}

// TypeOf returns the recorded result for e, or a failure if e was not
// type-checked.
func (info *Info) TypeOf(e syntax.Expr) Result {
	if r, ok := info.Types[e]; ok {
		return r
	}
	return either.Failure[types.Type](notChecked)
}

// ObjectOf returns the object a name defines or uses, or nil.
func (info *Info) ObjectOf(name *syntax.Name) types.Object {
	if obj := info.Defs[name]; obj != nil {
		return obj
	}
	return info.Uses[name]
}

// Check type-checks a parsed file. Every model gets its own scope below the
// registry universe; declarations are visible throughout their model.
// It returns the first structural error encountered, if any. Typing failures
// of individual expressions are not errors; they are recorded in info.
func Check(file *syntax.File, conf *Config, info *Info) error {
	if conf == nil {
		conf = &Config{}
	}
	reg := conf.Registry
	if reg == nil {
		reg = types.NewRegistry()
	}

	// Initialize info maps if not provided
	if info != nil {
		if info.Types == nil {
			info.Types = make(map[syntax.Expr]Result)
		}
		if info.Defs == nil {
			info.Defs = make(map[*syntax.Name]types.Object)
		}
		if info.Uses == nil {
			info.Uses = make(map[*syntax.Name]types.Object)
		}
		if info.Scopes == nil {
			info.Scopes = make(map[syntax.Node]*types.Scope)
		}
	}

	c := &Checker{
		conf:  conf,
		info:  info,
		reg:   reg,
		scope: reg.Universe(),
	}

	c.checkFile(file)

	if c.errors > 0 {
		return c.first
	}
	return nil
}
