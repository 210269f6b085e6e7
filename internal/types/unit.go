package types

// Unit represents a physical unit type (mV, ms, pA, ...).
// Values of a unit type are real numbers; dimensions are not tracked beyond
// the unit's name.
type Unit struct {
	typ
	name string
	base *Basic
}

// NewUnit creates a unit type with the given name and a real base.
func NewUnit(name string) *Unit {
	return &Unit{name: name, base: Typ[Real]}
}

// Name returns the unit symbol.
func (u *Unit) Name() string {
	return u.name
}

// Base returns the numeric base type of the unit.
func (u *Unit) Base() *Basic {
	return u.base
}

// Underlying implements Type.
// For units, returns the numeric base type.
func (u *Unit) Underlying() Type {
	return u.base
}

// String implements Type.
func (u *Unit) String() string {
	return u.name
}
