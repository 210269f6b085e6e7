package types2

import (
	"github.com/you-not-fish/nestml/internal/syntax"
	"github.com/you-not-fish/nestml/internal/types"
)

// Checker is the type checker.
type Checker struct {
	conf *Config
	info *Info
	reg  *types.Registry

	// Current checking context
	scope *types.Scope // current scope

	// Error tracking
	errors int        // error count
	first  *TypeError // first error
}

// checkFile type-checks a single file.
func (c *Checker) checkFile(file *syntax.File) {
	for _, m := range file.Models {
		c.checkModel(m)
	}
}

// checkModel checks one neuron or synapse in its own scope.
func (c *Checker) checkModel(m *syntax.ModelDecl) {
	c.openScope(m, m.Kind.String()+" "+m.Name.Value)
	defer c.closeScope()

	// Phase 1: Collect all variables so forward references resolve
	c.collectDecls(m.Declarations())

	// Phase 2: Resolve declared type names
	for _, d := range m.Declarations() {
		c.checkDeclType(d)
	}

	// Phase 3: Type values and invariants
	for _, d := range m.Declarations() {
		c.checkDeclExprs(d)
	}
}

// openScope creates a new scope as a child of the current scope.
func (c *Checker) openScope(n syntax.Node, comment string) *types.Scope {
	s := types.NewScope(c.scope, n.Pos(), n.End(), comment)
	c.scope = s
	if c.info != nil {
		c.info.Scopes[n] = s
	}
	return s
}

// closeScope returns to the parent scope.
func (c *Checker) closeScope() {
	c.scope = c.scope.Parent()
}

// lookup looks up a name in the current scope chain.
func (c *Checker) lookup(name string) types.Object {
	obj, _ := c.scope.LookupParent(name)
	return obj
}

// declare declares an object in the current scope.
// Reports an error if the name is already declared.
func (c *Checker) declare(name *syntax.Name, obj types.Object) {
	if existing := c.scope.Insert(obj); existing != nil {
		c.errorf(name.Pos(), "%s redeclared in %s", name.Value, c.scope.Comment())
		return
	}
	if c.info != nil {
		c.info.Defs[name] = obj
	}
}

// recordType records the result for an expression.
func (c *Checker) recordType(e syntax.Expr, x *operand) {
	if c.info == nil {
		return
	}
	c.info.Types[e] = x.result()
}

// recordUse records a use of an object.
func (c *Checker) recordUse(name *syntax.Name, obj types.Object) {
	if c.info != nil {
		c.info.Uses[name] = obj
	}
}
