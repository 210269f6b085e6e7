package types

import "github.com/you-not-fish/nestml/internal/syntax"

// NoPos is the zero position value, used for predefined objects.
var NoPos syntax.Pos

// Units lists the predefined physical unit symbols.
var Units = []string{
	"V", "mV", "s", "ms",
	"A", "mA", "nA", "pA",
	"S", "nS", "pF", "Hz",
	"Ohm", "MOhm",
}

var builtins = []struct {
	name  string
	kind  BuiltinKind
	nargs int
}{
	{"exp", BuiltinExp, 1},
	{"ln", BuiltinLn, 1},
	{"log10", BuiltinLog10, 1},
	{"cosh", BuiltinCosh, 1},
	{"sinh", BuiltinSinh, 1},
	{"tanh", BuiltinTanh, 1},
	{"sqrt", BuiltinSqrt, 1},
	{"pow", BuiltinPow, 2},
	{"max", BuiltinMax, 2},
	{"min", BuiltinMin, 2},
	{"abs", BuiltinAbs, 1},
	{"random_normal", BuiltinRandomNormal, 2},
	{"random_uniform", BuiltinRandomUniform, 2},
	{"steps", BuiltinSteps, 1},
	{"resolution", BuiltinResolution, 0},
	{"emit_spike", BuiltinEmitSpike, 0},
}

// Registry holds the predefined types, units, variables and functions of
// the modeling language in a universe scope. A Registry is read-only after
// NewRegistry returns and may be shared by concurrent readers.
type Registry struct {
	universe *Scope
	units    map[string]*Unit
}

// NewRegistry builds a registry with every predefined name.
func NewRegistry() *Registry {
	r := &Registry{
		universe: NewScope(nil, NoPos, NoPos, "universe"),
		units:    make(map[string]*Unit, len(Units)),
	}
	r.defPredefinedTypes()
	r.defPredefinedUnits()
	r.defPredefinedVars()
	r.defPredefinedBuiltins()
	return r
}

// defPredefinedTypes defines boolean, integer, real, string, void.
func (r *Registry) defPredefinedTypes() {
	for _, kind := range []BasicKind{Boolean, Integer, Real, String, Void} {
		typ := Typ[kind]
		r.universe.Insert(NewTypeName(NoPos, typ.name, typ))
	}
}

func (r *Registry) defPredefinedUnits() {
	for _, name := range Units {
		u := NewUnit(name)
		r.units[name] = u
		r.universe.Insert(NewTypeName(NoPos, name, u))
	}
}

// defPredefinedVars defines t, e, true, false, inf.
func (r *Registry) defPredefinedVars() {
	r.universe.Insert(NewVar(NoPos, "t", r.units["ms"]))
	r.universe.Insert(NewVar(NoPos, "e", Typ[Real]))
	r.universe.Insert(NewVar(NoPos, "true", Typ[Boolean]))
	r.universe.Insert(NewVar(NoPos, "false", Typ[Boolean]))
	r.universe.Insert(NewVar(NoPos, "inf", Typ[Real]))
}

func (r *Registry) defPredefinedBuiltins() {
	for _, b := range builtins {
		r.universe.Insert(NewBuiltin(b.name, b.kind, b.nargs))
	}
}

// Predefined type accessors. Each returns the same descriptor on every call.
func (r *Registry) Boolean() *Basic { return Typ[Boolean] }
func (r *Registry) Integer() *Basic { return Typ[Integer] }
func (r *Registry) Real() *Basic    { return Typ[Real] }
func (r *Registry) String() *Basic  { return Typ[String] }
func (r *Registry) Void() *Basic    { return Typ[Void] }

// Unit returns the unit type with the given symbol, or nil.
func (r *Registry) Unit(name string) *Unit {
	return r.units[name]
}

// LookupType returns the type named name (a predefined type or a unit),
// or nil if there is none.
func (r *Registry) LookupType(name string) Type {
	if tn, ok := r.universe.Lookup(name).(*TypeName); ok {
		return tn.Type()
	}
	return nil
}

// Lookup returns the predefined object named name, or nil.
func (r *Registry) Lookup(name string) Object {
	return r.universe.Lookup(name)
}

// Universe returns the registry's root scope.
func (r *Registry) Universe() *Scope {
	return r.universe
}
