package types

// Identical reports whether x and y are identical types.
// Basic types are identical when their kinds match, units when their
// symbols match; a unit is never identical to a basic type.
func Identical(x, y Type) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}
	return identical(x, y)
}

func identical(x, y Type) bool {
	switch x := x.(type) {
	case *Basic:
		if y, ok := y.(*Basic); ok {
			return x.kind == y.kind
		}
	case *Unit:
		if y, ok := y.(*Unit); ok {
			return x.name == y.name
		}
	}
	return false
}

func basicInfo(T Type) BasicInfo {
	if T == nil {
		return 0
	}
	b, ok := T.Underlying().(*Basic)
	if !ok {
		return 0
	}
	return b.info
}

// IsBoolean reports whether T is the boolean type.
func IsBoolean(T Type) bool {
	return basicInfo(T)&infoBoolean != 0
}

// IsInteger reports whether T is the integer type.
func IsInteger(T Type) bool {
	_, unit := T.(*Unit)
	return !unit && basicInfo(T)&infoInteger != 0
}

// IsNumeric reports whether T is integer, real, or a unit type.
func IsNumeric(T Type) bool {
	return basicInfo(T)&infoNumeric != 0
}

// IsDimensionless reports whether T is integer or real (not a unit).
func IsDimensionless(T Type) bool {
	_, unit := T.(*Unit)
	return !unit && IsNumeric(T)
}

// IsUnit reports whether T is a physical unit type.
func IsUnit(T Type) bool {
	_, ok := T.(*Unit)
	return ok
}

// IsString reports whether T is the string type.
func IsString(T Type) bool {
	return basicInfo(T)&infoString != 0
}

// IsVoid reports whether T is the void type.
func IsVoid(T Type) bool {
	return basicInfo(T)&infoVoid != 0
}

// Comparable reports whether values of types x and y can be compared with
// == or !=: identical types, or numeric types whose units agree.
func Comparable(x, y Type) bool {
	if IsVoid(x) || IsVoid(y) {
		return false
	}
	return Identical(x, y) || Ordered(x, y)
}

// Ordered reports whether values of types x and y can be ordered with
// <, <=, >, >=: both numeric, and when both carry units the units agree.
// A dimensionless number is compatible with any unit.
func Ordered(x, y Type) bool {
	if !IsNumeric(x) || !IsNumeric(y) {
		return false
	}
	if IsUnit(x) && IsUnit(y) {
		return Identical(x, y)
	}
	return true
}
