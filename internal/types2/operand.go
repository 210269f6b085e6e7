package types2

import (
	"github.com/you-not-fish/nestml/internal/either"
	"github.com/you-not-fish/nestml/internal/syntax"
	"github.com/you-not-fish/nestml/internal/types"
)

// operandMode describes the mode of an operand.
type operandMode int

const (
	invalid  operandMode = iota // no type could be computed; see reason
	variable                    // operand names a model or predefined variable
	value                       // operand is a computed value
)

// operand represents the result of evaluating an expression.
type operand struct {
	mode   operandMode
	pos    syntax.Pos
	typ    types.Type
	reason string      // failure reason (only valid when mode == invalid)
	expr   syntax.Expr // source expression (for error reporting)
}

// String returns a string representation of the operand for debugging.
func (x *operand) String() string {
	if x.mode == invalid {
		return "invalid operand: " + x.reason
	}
	return x.typ.String()
}

// result converts x into the resolver result.
func (x *operand) result() Result {
	if x.mode == invalid {
		return either.Failure[types.Type](x.reason)
	}
	return either.Value[types.Type, string](x.typ)
}
