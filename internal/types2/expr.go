package types2

import (
	"strconv"

	"github.com/you-not-fish/nestml/internal/syntax"
	"github.com/you-not-fish/nestml/internal/types"
)

// expr evaluates an expression and sets x to the result.
// The result, typed or not, is recorded for e.
func (c *Checker) expr(x *operand, e syntax.Expr) {
	c.exprInternal(x, e)
	c.recordType(e, x)
}

// exprInternal is the main expression checking function.
// When a sub-expression fails, its reason becomes the reason of e.
func (c *Checker) exprInternal(x *operand, e syntax.Expr) {
	x.mode = value
	x.typ = nil
	x.reason = ""
	x.pos = e.Pos()
	x.expr = e

	switch e := e.(type) {
	case *syntax.Name:
		c.ident(x, e)
	case *syntax.BasicLit:
		c.basicLit(x, e)
	case *syntax.Operation:
		if e.Y == nil {
			c.unary(x, e)
		} else {
			c.binary(x, e)
		}
	case *syntax.CondExpr:
		c.cond(x, e)
	case *syntax.CallExpr:
		c.call(x, e)
	case *syntax.ParenExpr:
		c.expr(x, e.X)
		x.pos = e.Pos()
		x.expr = e
	default:
		x.fail("unexpected expression %T", e)
	}
}

// ident evaluates an identifier.
func (c *Checker) ident(x *operand, name *syntax.Name) {
	obj := c.lookup(name.Value)
	if obj == nil {
		x.fail("cannot resolve symbol '%s'", name.Value)
		return
	}
	c.recordUse(name, obj)

	switch obj := obj.(type) {
	case *types.Var:
		if obj.Type() == nil {
			x.fail("type of '%s' is unknown", name.Value)
			return
		}
		x.mode = variable
		x.typ = obj.Type()
	case *types.TypeName:
		// A bare unit symbol denotes one of that unit: V_m / mV.
		if !types.IsUnit(obj.Type()) {
			x.fail("'%s' is a type, not a value", name.Value)
			return
		}
		x.typ = obj.Type()
	case *types.Builtin:
		x.fail("'%s' is a function, not a value", name.Value)
	default:
		x.fail("unexpected object %T", obj)
	}
}

// basicLit evaluates a basic literal, optionally carrying a unit.
func (c *Checker) basicLit(x *operand, lit *syntax.BasicLit) {
	switch lit.Kind {
	case syntax.IntLit:
		if _, err := strconv.ParseInt(lit.Value, 10, 64); err != nil {
			x.fail("invalid integer literal %s", lit.Value)
			return
		}
		x.typ = c.reg.Integer()

	case syntax.FloatLit:
		if _, err := strconv.ParseFloat(lit.Value, 64); err != nil {
			x.fail("invalid real literal %s", lit.Value)
			return
		}
		x.typ = c.reg.Real()

	case syntax.StringLit:
		// String literal value is already decoded by scanner
		x.typ = c.reg.String()
		return

	default:
		x.fail("unknown literal kind")
		return
	}

	if lit.Unit != nil {
		c.unitType(x, lit.Unit)
	}
}

// unary evaluates a unary operation.
func (c *Checker) unary(x *operand, e *syntax.Operation) {
	c.expr(x, e.X)
	if x.mode == invalid {
		return
	}
	x.pos = e.Pos()
	x.expr = e

	switch e.Op {
	case syntax.Sub, syntax.Add:
		if !types.IsNumeric(x.typ) {
			x.fail("operator %s not defined on %s", e.Op, x.typ)
			return
		}
	case syntax.Not:
		if !types.IsBoolean(x.typ) {
			x.fail("operator not requires a boolean operand, got %s", x.typ)
			return
		}
	default:
		x.fail("unknown unary operator %s", e.Op)
		return
	}
	x.mode = value
}

// binary evaluates a binary operation.
func (c *Checker) binary(x *operand, e *syntax.Operation) {
	var y operand
	c.expr(x, e.X)
	if x.mode == invalid {
		return
	}
	c.expr(&y, e.Y)
	if y.mode == invalid {
		x.propagate(&y)
		return
	}
	xt, yt := x.typ, y.typ
	x.mode = value
	x.pos = e.Pos()
	x.expr = e

	switch op := e.Op; op {
	case syntax.Add, syntax.Sub:
		if op == syntax.Add && types.IsString(xt) && types.IsString(yt) {
			x.typ = c.reg.String()
			return
		}
		c.additive(x, op.String(), xt, yt)

	case syntax.Mul, syntax.Div:
		c.multiplicative(x, op, xt, yt)

	case syntax.Rem:
		if !types.IsInteger(xt) || !types.IsInteger(yt) {
			x.fail("operator %% requires integer operands, got %s and %s", xt, yt)
			return
		}
		x.typ = c.reg.Integer()

	case syntax.Pow:
		switch {
		case types.IsInteger(xt) && types.IsInteger(yt):
			x.typ = c.reg.Integer()
		case types.IsNumeric(xt) && types.IsNumeric(yt):
			x.typ = c.reg.Real()
		default:
			x.fail("operator ** not defined on %s and %s", xt, yt)
		}

	case syntax.Lss, syntax.Leq, syntax.Gtr, syntax.Geq:
		if !types.Ordered(xt, yt) {
			x.fail("cannot compare %s and %s with %s", xt, yt, op)
			return
		}
		x.typ = c.reg.Boolean()

	case syntax.Eql, syntax.Neq:
		if !types.Comparable(xt, yt) {
			x.fail("cannot compare %s and %s with %s", xt, yt, op)
			return
		}
		x.typ = c.reg.Boolean()

	case syntax.And, syntax.Or:
		if !types.IsBoolean(xt) || !types.IsBoolean(yt) {
			x.fail("operator %s requires boolean operands, got %s and %s", op, xt, yt)
			return
		}
		x.typ = c.reg.Boolean()

	default:
		x.fail("unknown binary operator %s", op)
	}
}

// additive sets x to the type of xt op yt for + and -, also used by the
// builtins that combine like-typed arguments (max, min).
func (c *Checker) additive(x *operand, op string, xt, yt types.Type) {
	switch {
	case types.IsDimensionless(xt) && types.IsDimensionless(yt):
		x.typ = c.numericResult(xt, yt)
	case types.IsUnit(xt) && types.IsUnit(yt):
		if !types.Identical(xt, yt) {
			x.fail("mismatched units %s and %s in %s", xt, yt, op)
			return
		}
		x.typ = xt
	case types.IsUnit(xt) && types.IsNumeric(yt):
		x.typ = xt
	case types.IsNumeric(xt) && types.IsUnit(yt):
		x.typ = yt
	default:
		x.fail("mismatched types %s and %s in %s", xt, yt, op)
	}
}

// multiplicative sets x to the type of xt op yt for * and /.
// Dimensions are not tracked: a product or quotient of two units is real.
func (c *Checker) multiplicative(x *operand, op syntax.Token, xt, yt types.Type) {
	switch {
	case !types.IsNumeric(xt) || !types.IsNumeric(yt):
		x.fail("operator %s not defined on %s and %s", op, xt, yt)
	case types.IsDimensionless(xt) && types.IsDimensionless(yt):
		x.typ = c.numericResult(xt, yt)
	case types.IsUnit(xt) && types.IsDimensionless(yt):
		x.typ = xt
	case types.IsDimensionless(xt) && op == syntax.Mul:
		x.typ = yt
	default:
		x.typ = c.reg.Real()
	}
}

// numericResult is integer for two integers and real otherwise.
func (c *Checker) numericResult(xt, yt types.Type) types.Type {
	if types.IsInteger(xt) && types.IsInteger(yt) {
		return c.reg.Integer()
	}
	return c.reg.Real()
}

// cond evaluates c ? a : b.
func (c *Checker) cond(x *operand, e *syntax.CondExpr) {
	var a, b operand
	c.expr(x, e.Cond)
	if x.mode == invalid {
		return
	}
	if !types.IsBoolean(x.typ) {
		x.fail("condition must be boolean, not %s", x.typ)
		return
	}
	c.expr(&a, e.Then)
	if a.mode == invalid {
		x.propagate(&a)
		return
	}
	c.expr(&b, e.Else)
	if b.mode == invalid {
		x.propagate(&b)
		return
	}
	x.mode = value
	x.pos = e.Pos()
	x.expr = e

	switch {
	case types.Identical(a.typ, b.typ):
		x.typ = a.typ
	case types.IsDimensionless(a.typ) && types.IsDimensionless(b.typ):
		x.typ = c.reg.Real()
	default:
		x.fail("mismatched branch types %s and %s", a.typ, b.typ)
	}
}
