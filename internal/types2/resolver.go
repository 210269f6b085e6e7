package types2

import (
	"sync"

	"github.com/you-not-fish/nestml/internal/syntax"
	"github.com/you-not-fish/nestml/internal/types"
)

// Resolver computes expression types on demand within a fixed scope.
// Results are memoized; a Resolver is safe for concurrent use.
type Resolver struct {
	mu sync.Mutex
	c  *Checker
}

// NewResolver returns a Resolver that looks names up in scope, which
// defaults to the registry universe when nil.
func NewResolver(reg *types.Registry, scope *types.Scope) *Resolver {
	if scope == nil {
		scope = reg.Universe()
	}
	return &Resolver{
		c: &Checker{
			conf:  &Config{Registry: reg},
			info:  NewInfo(),
			reg:   reg,
			scope: scope,
		},
	}
}

// TypeOf returns the type of e, or the reason it cannot be computed.
func (r *Resolver) TypeOf(e syntax.Expr) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res, ok := r.c.info.Types[e]; ok {
		return res
	}
	var x operand
	r.c.expr(&x, e)
	return x.result()
}
