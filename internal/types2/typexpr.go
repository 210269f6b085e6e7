package types2

import (
	"github.com/you-not-fish/nestml/internal/syntax"
	"github.com/you-not-fish/nestml/internal/types"
)

// resolveType resolves a declared type name: a predefined type or a unit.
// Reports an error and returns nil if the name does not denote a type.
func (c *Checker) resolveType(name *syntax.Name) types.Type {
	obj := c.lookup(name.Value)
	tn, ok := obj.(*types.TypeName)
	if !ok {
		if obj == nil {
			c.errorf(name.Pos(), "unknown type %s", name.Value)
		} else {
			c.errorf(name.Pos(), "%s is not a type", name.Value)
		}
		return nil
	}
	c.recordUse(name, tn)
	return tn.Type()
}

// unitType resolves the unit suffix of a numeric literal.
func (c *Checker) unitType(x *operand, name *syntax.Name) {
	tn, ok := c.lookup(name.Value).(*types.TypeName)
	if !ok || !types.IsUnit(tn.Type()) {
		x.fail("unknown unit '%s'", name.Value)
		return
	}
	c.recordUse(name, tn)
	x.typ = tn.Type()
}
