package types

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	Invalid BasicKind = iota // invalid type

	Boolean
	Integer
	Real
	String
	Void
)

// BasicInfo describes properties of a basic type.
type BasicInfo int

const (
	infoBoolean BasicInfo = 1 << iota
	infoInteger
	infoReal
	infoString
	infoVoid
	infoNumeric = infoInteger | infoReal
)

// Basic represents a predefined type: boolean, integer, real, string, void.
type Basic struct {
	typ
	kind BasicKind
	info BasicInfo
	name string
}

// NewBasic returns a new descriptor for kind. It is a distinct value from
// Typ[kind] but identical to it under Identical.
func NewBasic(kind BasicKind) *Basic {
	if kind <= Invalid || int(kind) >= len(Typ) {
		panic("types: invalid basic kind")
	}
	b := *Typ[kind]
	return &b
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Info returns information about the basic type.
func (b *Basic) Info() BasicInfo {
	return b.info
}

// Name returns the name of the basic type.
func (b *Basic) Name() string {
	return b.name
}

// Underlying implements Type.
func (b *Basic) Underlying() Type {
	return b
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

// Typ holds the predefined basic types, indexed by BasicKind.
// Typ[Invalid] is nil, representing an invalid type.
var Typ = []*Basic{
	Invalid: nil,
	Boolean: {kind: Boolean, info: infoBoolean, name: "boolean"},
	Integer: {kind: Integer, info: infoInteger, name: "integer"},
	Real:    {kind: Real, info: infoReal, name: "real"},
	String:  {kind: String, info: infoString, name: "string"},
	Void:    {kind: Void, info: infoVoid, name: "void"},
}
