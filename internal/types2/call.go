package types2

import (
	"github.com/you-not-fish/nestml/internal/syntax"
	"github.com/you-not-fish/nestml/internal/types"
)

// call checks a call of a predefined function.
func (c *Checker) call(x *operand, e *syntax.CallExpr) {
	obj := c.lookup(e.Fun.Value)
	b, ok := obj.(*types.Builtin)
	if !ok {
		if obj == nil {
			x.fail("cannot resolve function '%s'", e.Fun.Value)
		} else {
			x.fail("'%s' is not a function", e.Fun.Value)
		}
		return
	}
	c.recordUse(e.Fun, b)

	if len(e.Args) != b.NumArgs() {
		x.fail("wrong number of arguments to %s: got %d, want %d", b.Name(), len(e.Args), b.NumArgs())
		return
	}

	args := make([]types.Type, len(e.Args))
	for i, arg := range e.Args {
		var a operand
		c.expr(&a, arg)
		if a.mode == invalid {
			x.propagate(&a)
			return
		}
		args[i] = a.typ
	}

	c.builtinCall(x, b, args)
}

// builtinCall sets x to the result type of calling b with args.
func (c *Checker) builtinCall(x *operand, b *types.Builtin, args []types.Type) {
	for _, t := range args {
		if !types.IsNumeric(t) {
			x.fail("invalid argument type %s for %s", t, b.Name())
			return
		}
	}

	switch b.Kind() {
	case types.BuiltinExp, types.BuiltinLn, types.BuiltinLog10,
		types.BuiltinCosh, types.BuiltinSinh, types.BuiltinTanh,
		types.BuiltinSqrt, types.BuiltinPow:
		x.typ = c.reg.Real()

	case types.BuiltinAbs:
		x.typ = args[0]

	case types.BuiltinMax, types.BuiltinMin,
		types.BuiltinRandomNormal, types.BuiltinRandomUniform:
		c.additive(x, b.Name(), args[0], args[1])

	case types.BuiltinSteps:
		x.typ = c.reg.Integer()

	case types.BuiltinResolution:
		x.typ = c.reg.Unit("ms")

	case types.BuiltinEmitSpike:
		x.typ = c.reg.Void()

	default:
		x.fail("unknown builtin %s", b.Name())
	}
}
