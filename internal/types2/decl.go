package types2

import (
	"github.com/you-not-fish/nestml/internal/syntax"
	"github.com/you-not-fish/nestml/internal/types"
)

// collectDecls creates a variable object for every declared name.
// Types are resolved afterwards by checkDeclType.
func (c *Checker) collectDecls(decls []*syntax.Declaration) {
	for _, d := range decls {
		for _, name := range d.Names {
			c.declare(name, types.NewDeclVar(name, d))
		}
	}
}

// checkDeclType resolves the declared type of d and assigns it to every
// variable d declares. Variables of an unknown type keep a nil type.
func (c *Checker) checkDeclType(d *syntax.Declaration) {
	typ := c.resolveType(d.Type)
	if typ == nil {
		return
	}
	for _, name := range d.Names {
		// A redeclared name belongs to an earlier declaration.
		if v, ok := c.scope.Lookup(name.Value).(*types.Var); ok && v.Decl() == d {
			v.SetType(typ)
		}
	}
}

// checkDeclExprs types the initial value and the invariant of d.
func (c *Checker) checkDeclExprs(d *syntax.Declaration) {
	if d.Value != nil {
		var x operand
		c.expr(&x, d.Value)
	}
	if inv, ok := d.InvariantExpr(); ok {
		var x operand
		c.expr(&x, inv)
	}
}
