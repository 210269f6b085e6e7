// Package types2 implements type resolution for NESTML models.
package types2

import (
	"fmt"

	"github.com/you-not-fish/nestml/internal/syntax"
)

// TypeError represents a structural error found while checking.
type TypeError struct {
	Pos syntax.Pos
	Msg string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorHandler is a function called for each structural error.
type ErrorHandler func(pos syntax.Pos, msg string)

// errorf reports a checking error at the given position.
func (c *Checker) errorf(pos syntax.Pos, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	if c.errors == 0 {
		c.first = &TypeError{Pos: pos, Msg: msg}
	}
	c.errors++

	if c.conf.Error != nil {
		c.conf.Error(pos, msg)
	}
}

// fail marks x as untyped with the given reason.
func (x *operand) fail(format string, args ...interface{}) {
	x.mode = invalid
	x.typ = nil
	x.reason = fmt.Sprintf(format, args...)
}

// propagate copies the failure of y into x.
func (x *operand) propagate(y *operand) {
	x.mode = invalid
	x.typ = nil
	x.reason = y.reason
}
