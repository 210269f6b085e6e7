package types

import "github.com/you-not-fish/nestml/internal/syntax"

// Object represents a declared entity: variable, type name, or builtin.
type Object interface {
	Name() string    // object name
	Type() Type      // object type
	Pos() syntax.Pos // declaration position
	Parent() *Scope  // enclosing scope

	setParent(*Scope) // internal: set parent scope
	aObject()         // marker method to restrict implementations
}

// object is the base struct for all objects.
type object struct {
	name   string
	typ    Type
	pos    syntax.Pos
	parent *Scope
}

func (o *object) Name() string       { return o.name }
func (o *object) Type() Type         { return o.typ }
func (o *object) Pos() syntax.Pos    { return o.pos }
func (o *object) Parent() *Scope     { return o.parent }
func (o *object) setParent(s *Scope) { o.parent = s }
func (*object) aObject()             {}

// Var represents a model variable or a predefined variable.
type Var struct {
	object
	decl *syntax.Declaration // declaring node (nil if predefined)
}

// NewVar creates a new variable object.
func NewVar(pos syntax.Pos, name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}}
}

// NewDeclVar creates a variable declared by d.
// Its type is nil until the declared type name is resolved.
func NewDeclVar(name *syntax.Name, d *syntax.Declaration) *Var {
	return &Var{object: object{name: name.Value, pos: name.Pos()}, decl: d}
}

// Decl returns the declaration of v, or nil for predefined variables.
func (v *Var) Decl() *syntax.Declaration {
	return v.decl
}

// SetType sets the variable's type.
// This is called during checking once the declared type name is resolved.
func (v *Var) SetType(typ Type) {
	v.typ = typ
}

// TypeName represents a predefined type name or unit symbol.
type TypeName struct {
	object
}

// NewTypeName creates a new type name object.
func NewTypeName(pos syntax.Pos, name string, typ Type) *TypeName {
	return &TypeName{object: object{name: name, typ: typ, pos: pos}}
}

// BuiltinKind identifies a predefined function.
type BuiltinKind int

const (
	BuiltinExp BuiltinKind = iota
	BuiltinLn
	BuiltinLog10
	BuiltinCosh
	BuiltinSinh
	BuiltinTanh
	BuiltinSqrt
	BuiltinPow
	BuiltinMax
	BuiltinMin
	BuiltinAbs
	BuiltinRandomNormal
	BuiltinRandomUniform
	BuiltinSteps
	BuiltinResolution
	BuiltinEmitSpike
)

// Builtin represents a predefined function.
type Builtin struct {
	object
	kind  BuiltinKind
	nargs int
}

// NewBuiltin creates a new builtin function object taking nargs arguments.
func NewBuiltin(name string, kind BuiltinKind, nargs int) *Builtin {
	return &Builtin{object: object{name: name}, kind: kind, nargs: nargs}
}

// Kind returns the builtin function kind.
func (b *Builtin) Kind() BuiltinKind {
	return b.kind
}

// NumArgs returns the number of arguments the builtin takes.
func (b *Builtin) NumArgs() int {
	return b.nargs
}
