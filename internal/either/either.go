// Package either provides a two-sided result type: a computed value or the
// reason it could not be computed.
package either

import "fmt"

// Either holds exactly one of a value V or a failure F.
// The zero Either is a failure holding the zero F.
type Either[V, F any] struct {
	value   V
	failure F
	ok      bool
}

// Value returns an Either holding v.
func Value[V, F any](v V) Either[V, F] {
	return Either[V, F]{value: v, ok: true}
}

// Failure returns an Either holding the failure f.
func Failure[V, F any](f F) Either[V, F] {
	return Either[V, F]{failure: f}
}

// IsValue reports whether e holds a value.
func (e Either[V, F]) IsValue() bool { return e.ok }

// IsFailure reports whether e holds a failure.
func (e Either[V, F]) IsFailure() bool { return !e.ok }

// Value returns the value held by e. It panics if e holds a failure.
func (e Either[V, F]) Value() V {
	if !e.ok {
		panic(fmt.Sprintf("either: Value called on failure %v", e.failure))
	}
	return e.value
}

// Failure returns the failure held by e. It panics if e holds a value.
func (e Either[V, F]) Failure() F {
	if e.ok {
		panic(fmt.Sprintf("either: Failure called on value %v", e.value))
	}
	return e.failure
}

// Get returns the value and true, or the zero V and false for a failure.
func (e Either[V, F]) Get() (V, bool) {
	return e.value, e.ok
}

func (e Either[V, F]) String() string {
	if e.ok {
		return fmt.Sprintf("value(%v)", e.value)
	}
	return fmt.Sprintf("failure(%v)", e.failure)
}

// Map applies fn to the value of e. A failure passes through unchanged.
func Map[V, U, F any](e Either[V, F], fn func(V) U) Either[U, F] {
	if !e.ok {
		return Failure[U](e.failure)
	}
	return Value[U, F](fn(e.value))
}
