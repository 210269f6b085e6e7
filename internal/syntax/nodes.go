// Package syntax implements lexical and syntactic analysis for NESTML models.
package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 2 main classes of nodes: Expressions and Declarations.
// All nodes implement the Node interface.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	End() Pos // position of first character immediately after the node
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Decl is the interface for all declaration nodes.
type Decl interface {
	Node
	aDecl()
}

// ----------------------------------------------------------------------------
// Base node types

type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) End() Pos { return n.pos } // default: return start position
func (n *node) aNode()   {}

type expr struct{ node }

func (*expr) aExpr() {}

type decl struct{ node }

func (*decl) aDecl() {}

// ----------------------------------------------------------------------------
// Files, models and blocks

// File represents a complete model file.
type File struct {
	node
	Models []*ModelDecl // neuron and synapse models in source order
}

// ModelKind distinguishes neuron models from synapse models.
type ModelKind uint8

const (
	NeuronModel ModelKind = iota
	SynapseModel
)

func (k ModelKind) String() string {
	if k == SynapseModel {
		return "synapse"
	}
	return "neuron"
}

// ModelDecl represents a model: neuron Name: Blocks... end
type ModelDecl struct {
	decl
	Kind   ModelKind
	Name   *Name
	Blocks []*BlockDecl
	EndPos Pos // position of the closing "end"
}

func (m *ModelDecl) End() Pos { return m.EndPos }

// Declarations returns the declarations of every block of m in source order.
func (m *ModelDecl) Declarations() []*Declaration {
	var out []*Declaration
	for _, b := range m.Blocks {
		out = append(out, b.Decls...)
	}
	return out
}

// ParameterInvariants returns the invariants declared in the parameters
// blocks of m, in source order.
func (m *ModelDecl) ParameterInvariants() []Expr {
	var out []Expr
	for _, b := range m.Blocks {
		if b.Kind != ParametersBlock {
			continue
		}
		for _, d := range b.Decls {
			if inv, ok := d.InvariantExpr(); ok {
				out = append(out, inv)
			}
		}
	}
	return out
}

// BlockKind identifies a variable block.
type BlockKind uint8

const (
	StateBlock BlockKind = iota
	ParametersBlock
	InternalsBlock
	InitialValuesBlock
)

var blockKindNames = [...]string{
	StateBlock:         "state",
	ParametersBlock:    "parameters",
	InternalsBlock:     "internals",
	InitialValuesBlock: "initial_values",
}

func (k BlockKind) String() string {
	if int(k) < len(blockKindNames) {
		return blockKindNames[k]
	}
	return "block"
}

// BlockDecl represents a variable block: state: Decls... end
type BlockDecl struct {
	decl
	Kind   BlockKind
	Decls  []*Declaration
	EndPos Pos
}

func (b *BlockDecl) End() Pos { return b.EndPos }

// Declaration represents a variable declaration inside a block:
//
//	[recordable] [function] a, b Type [= Value] [[[ Invariant ]]]
type Declaration struct {
	decl
	Recordable bool
	Function   bool    // alias defined by its value expression
	Names      []*Name // declared variables (at least one)
	Type       *Name   // declared type name
	Value      Expr    // initial value (nil if none)
	Invariant  Expr    // invariant (nil if none); use InvariantExpr
}

// InvariantExpr returns the declaration's invariant and whether one is present.
func (d *Declaration) InvariantExpr() (Expr, bool) {
	return d.Invariant, d.Invariant != nil
}

// HasInvariant reports whether the declaration carries an invariant.
func (d *Declaration) HasInvariant() bool {
	return d.Invariant != nil
}

// ----------------------------------------------------------------------------
// Expressions

// Name represents an identifier.
type Name struct {
	expr
	Value string
}

// BasicLit represents a literal value (int, float, string),
// optionally followed by a physical unit: 10 mV.
type BasicLit struct {
	expr
	Value string  // literal text (decoded for strings)
	Kind  LitKind // IntLit, FloatLit, StringLit
	Unit  *Name   // unit suffix (nil if none)
}

// Operation represents a unary or binary operation.
// For unary operations, Y is nil.
type Operation struct {
	expr
	Op Token
	X  Expr // left operand (or only operand for unary)
	Y  Expr // right operand (nil for unary)
}

// CondExpr represents a conditional expression: Cond ? Then : Else
type CondExpr struct {
	expr
	Cond Expr
	Then Expr
	Else Expr
}

// CallExpr represents a function call: Fun(Args...)
type CallExpr struct {
	expr
	Fun  *Name
	Args []Expr
}

// ParenExpr represents a parenthesized expression: (X)
type ParenExpr struct {
	expr
	X Expr
}
