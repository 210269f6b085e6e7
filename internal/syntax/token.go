package syntax

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF   Token = iota // end of file
	_Error              // lexical error

	// Literals
	_Name    // identifier: V_m, tau_syn, mV
	_Literal // literal value (used with LitKind)

	// Operators (ordered by precedence, low to high)
	_Assign // =

	// Logical operators
	_Or  // or
	_And // and

	// Comparison operators
	_Eql // ==
	_Neq // != or <>
	_Lss // <
	_Leq // <=
	_Gtr // >
	_Geq // >=

	// Additive
	_Add // +
	_Sub // -

	// Multiplicative
	_Mul // *
	_Div // /
	_Rem // %

	// Power
	_Pow // **

	// Unary
	_Not // not

	// Delimiters
	_Lparen   // (
	_Rparen   // )
	_Linv     // [[
	_Rinv     // ]]
	_Comma    // ,
	_Semi     // ; or newline
	_Colon    // :
	_Question // ?

	// Keywords
	_End
	_Function
	_InitialValues
	_Internals
	_Neuron
	_Parameters
	_Recordable
	_State
	_Synapse

	tokenCount
)

// tokenNames maps tokens to their string representation.
var tokenNames = [...]string{
	_EOF:   "EOF",
	_Error: "ERROR",

	_Name:    "NAME",
	_Literal: "LITERAL",

	_Assign: "=",

	_Or:  "or",
	_And: "and",

	_Eql: "==",
	_Neq: "!=",
	_Lss: "<",
	_Leq: "<=",
	_Gtr: ">",
	_Geq: ">=",

	_Add: "+",
	_Sub: "-",

	_Mul: "*",
	_Div: "/",
	_Rem: "%",

	_Pow: "**",

	_Not: "not",

	_Lparen:   "(",
	_Rparen:   ")",
	_Linv:     "[[",
	_Rinv:     "]]",
	_Comma:    ",",
	_Semi:     ";",
	_Colon:    ":",
	_Question: "?",

	_End:           "end",
	_Function:      "function",
	_InitialValues: "initial_values",
	_Internals:     "internals",
	_Neuron:        "neuron",
	_Parameters:    "parameters",
	_Recordable:    "recordable",
	_State:         "state",
	_Synapse:       "synapse",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Precedence returns the operator precedence for binary operators.
// Returns 0 for non-operators.
// Precedence levels (higher = binds tighter):
//
//	1: or
//	2: and
//	3: == != < <= > >=
//	4: + -
//	5: * / %
//	6: **
func (t Token) Precedence() int {
	switch t {
	case _Or:
		return 1
	case _And:
		return 2
	case _Eql, _Neq, _Lss, _Leq, _Gtr, _Geq:
		return 3
	case _Add, _Sub:
		return 4
	case _Mul, _Div, _Rem:
		return 5
	case _Pow:
		return 6
	}
	return 0
}

// IsKeyword reports whether t is a keyword token.
// The word operators and, or, not are operators, not keywords.
func (t Token) IsKeyword() bool {
	return t >= _End && t <= _Synapse
}

// IsLiteral reports whether t is a literal token.
func (t Token) IsLiteral() bool {
	return t == _Literal
}

// IsOperator reports whether t is an operator token.
func (t Token) IsOperator() bool {
	return t >= _Assign && t <= _Not
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// IsComparison reports whether t is a comparison operator.
func (t Token) IsComparison() bool {
	return t >= _Eql && t <= _Geq
}

// IsLogical reports whether t is one of the boolean operators and, or, not.
func (t Token) IsLogical() bool {
	return t == _And || t == _Or || t == _Not
}

// Exported operator tokens for resolver access
const (
	Or  Token = _Or
	And Token = _And
	Not Token = _Not
	Eql Token = _Eql
	Neq Token = _Neq
	Lss Token = _Lss
	Leq Token = _Leq
	Gtr Token = _Gtr
	Geq Token = _Geq
	Add Token = _Add
	Sub Token = _Sub
	Mul Token = _Mul
	Div Token = _Div
	Rem Token = _Rem
	Pow Token = _Pow
)

// LitKind represents the kind of a literal token.
type LitKind uint8

const (
	IntLit    LitKind = iota // 42
	FloatLit                 // 3.14, 1e-3, .5
	StringLit                // "soma"
)

var litKindNames = [...]string{
	IntLit:    "int",
	FloatLit:  "float",
	StringLit: "string",
}

// String returns the string representation of the literal kind.
func (k LitKind) String() string {
	if k <= StringLit {
		return litKindNames[k]
	}
	return fmt.Sprintf("LitKind(%d)", k)
}

// keywords maps reserved words to their token type.
// Predefined names (boolean, real, mV, true, false, exp, ...) are NOT
// keywords; they are scanned as _Name and bound by the type registry.
var keywords = map[string]Token{
	"and":            _And,
	"end":            _End,
	"function":       _Function,
	"initial_values": _InitialValues,
	"internals":      _Internals,
	"neuron":         _Neuron,
	"not":            _Not,
	"or":             _Or,
	"parameters":     _Parameters,
	"recordable":     _Recordable,
	"state":          _State,
	"synapse":        _Synapse,
}

// LookupKeyword returns the token for the given identifier string.
// If the identifier is a keyword or word operator, returns that token.
// Otherwise, returns _Name.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}
