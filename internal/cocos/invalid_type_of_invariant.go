package cocos

import (
	"fmt"

	"github.com/you-not-fish/nestml/internal/diag"
	"github.com/you-not-fish/nestml/internal/syntax"
	"github.com/you-not-fish/nestml/internal/types"
)

// InvalidTypeOfInvariantName is the name of the invariant type rule.
const InvalidTypeOfInvariantName = "InvalidTypeOfInvariant"

// InvalidTypeOfInvariant requires the invariant of a declaration,
// if present, to be of type boolean.
//
// An invariant of any other type is an error. An invariant whose type
// cannot be computed is only a warning. Both are reported at the start of
// the invariant expression.
type InvalidTypeOfInvariant struct {
	reg      *types.Registry
	resolver TypeResolver
	sink     diag.Sink
}

// NewInvalidTypeOfInvariant returns the rule using the given services.
func NewInvalidTypeOfInvariant(reg *types.Registry, res TypeResolver, sink diag.Sink) *InvalidTypeOfInvariant {
	return &InvalidTypeOfInvariant{reg: reg, resolver: res, sink: sink}
}

// Name implements DeclarationCondition.
func (*InvalidTypeOfInvariant) Name() string {
	return InvalidTypeOfInvariantName
}

// CheckDeclaration implements DeclarationCondition.
func (r *InvalidTypeOfInvariant) CheckDeclaration(d *syntax.Declaration) {
	inv, ok := d.InvariantExpr()
	if !ok {
		return
	}

	res := r.resolver.TypeOf(inv)
	if typ, ok := res.Get(); ok {
		if !types.Identical(typ, r.reg.Boolean()) {
			msg := fmt.Sprintf("%s: invariant expression must be of type boolean, not %s", r.Name(), typeString(typ))
			r.sink.Report(diag.Error, r.Name(), msg, inv.Pos())
		}
		return
	}

	msg := fmt.Sprintf("%s: cannot compute the type of invariant '%s': %s",
		r.Name(), syntax.ExprString(inv), res.Failure())
	r.sink.Report(diag.Warning, r.Name(), msg, inv.Pos())
}

func typeString(t types.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
