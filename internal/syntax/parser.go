package syntax

import "io"

// Maximum number of errors before aborting parse.
const maxErrors = 10

// SyntaxError represents a syntax error.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Parser performs syntax analysis on model source.
type Parser struct {
	scanner *Scanner

	// Current token info (cached from scanner)
	tok Token
	lit string
	pos Pos

	// Error handling
	errh   func(pos Pos, msg string)
	errcnt int
	first  error // first error encountered
	abort  bool  // set to true when error limit reached
}

// NewParser creates a new Parser for the given source.
func NewParser(filename string, src io.Reader, errh func(pos Pos, msg string)) *Parser {
	scanErrh := func(line, col uint32, msg string) {
		if errh != nil {
			errh(NewPos(filename, line, col), msg)
		}
	}

	p := &Parser{
		scanner: NewScanner(filename, src, scanErrh),
		errh:    errh,
	}
	p.next()
	return p
}

// SetASIEnabled passes the newline-termination setting to the underlying scanner.
func (p *Parser) SetASIEnabled(enabled bool) {
	p.scanner.SetASIEnabled(enabled)
}

// ----------------------------------------------------------------------------
// Token navigation

func (p *Parser) next() {
	p.scanner.Next()
	p.tok = p.scanner.Token()
	p.lit = p.scanner.Literal()
	p.pos = p.scanner.Pos()
}

// got reports whether the current token is tok.
// If so, it consumes the token and returns true.
func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it matches tok.
// Otherwise, reports an error.
func (p *Parser) want(tok Token) {
	if !p.got(tok) {
		p.syntaxError("expected " + tok.String())
		p.advance()
	}
}

// skipSemis skips empty declarations (blank lines after a block header, stray ';').
func (p *Parser) skipSemis() {
	for p.tok == _Semi {
		p.next()
	}
}

// ----------------------------------------------------------------------------
// Error handling

func (p *Parser) syntaxError(msg string) {
	p.syntaxErrorAt(p.pos, msg)
}

func (p *Parser) syntaxErrorAt(pos Pos, msg string) {
	if p.abort {
		return
	}
	if p.errcnt == 0 {
		p.first = &SyntaxError{Pos: pos, Msg: msg}
	}
	p.errcnt++

	if p.errh != nil {
		p.errh(pos, msg)
	}

	p.errorLimitCheck(pos)
}

// errorLimitCheck aborts parsing if too many errors have occurred.
func (p *Parser) errorLimitCheck(pos Pos) {
	if p.errcnt >= maxErrors {
		p.abort = true
		if p.errh != nil {
			p.errh(pos, "too many errors; aborting parse")
		}
		p.tok = _EOF
	}
}

// advance skips tokens until it finds a synchronization point.
// A terminating ';' is consumed; structural tokens are left for the caller.
func (p *Parser) advance() {
	for {
		switch p.tok {
		case _Semi:
			p.next()
			return
		case _EOF, _End, _Neuron, _Synapse,
			_State, _Parameters, _Internals, _InitialValues:
			return
		}
		p.next()
	}
}

// advanceLine is like advance but also stops at the first token on a later
// line than the current one. A malformed expression may end in an operator,
// after which no ';' is inserted at the newline.
func (p *Parser) advanceLine() {
	line := p.pos.Line()
	for {
		switch p.tok {
		case _Semi:
			p.next()
			return
		case _EOF, _End, _Neuron, _Synapse,
			_State, _Parameters, _Internals, _InitialValues:
			return
		}
		if p.pos.Line() > line {
			return
		}
		p.next()
	}
}

// Errors returns the number of errors encountered during parsing.
func (p *Parser) Errors() int {
	return p.errcnt
}

// FirstError returns the first error encountered, or nil if none.
func (p *Parser) FirstError() error {
	return p.first
}

// ----------------------------------------------------------------------------
// Parsing entry point

// Parse parses a complete model file and returns the AST.
func (p *Parser) Parse() *File {
	f := &File{}
	f.pos = p.pos

	for !p.abort && p.tok != _EOF {
		p.skipSemis()
		if p.tok == _EOF {
			break
		}
		switch p.tok {
		case _Neuron, _Synapse:
			f.Models = append(f.Models, p.modelDecl())
		default:
			p.syntaxError("expected neuron or synapse")
			p.next()
			p.advance()
			if p.tok == _End {
				p.next()
			}
		}
	}

	return f
}

// ----------------------------------------------------------------------------
// Helper methods

// name parses an identifier and returns a Name node.
func (p *Parser) name() *Name {
	if p.tok != _Name {
		p.syntaxError("expected identifier")
		n := &Name{Value: "_"}
		n.pos = p.pos
		return n
	}
	n := &Name{Value: p.lit}
	n.pos = p.pos
	p.next()
	return n
}

// ----------------------------------------------------------------------------
// Models and blocks

// modelDecl parses: neuron Name: Blocks... end
func (p *Parser) modelDecl() *ModelDecl {
	m := &ModelDecl{}
	m.pos = p.pos
	if p.tok == _Synapse {
		m.Kind = SynapseModel
	}
	p.next()

	m.Name = p.name()
	p.want(_Colon)

loop:
	for !p.abort {
		p.skipSemis()
		switch p.tok {
		case _State, _Parameters, _Internals, _InitialValues:
			m.Blocks = append(m.Blocks, p.blockDecl())
		case _End, _EOF, _Neuron, _Synapse:
			break loop
		default:
			p.syntaxError("expected block or end")
			p.next()
			p.advance()
		}
	}

	m.EndPos = p.pos
	p.want(_End)
	return m
}

var blockKinds = map[Token]BlockKind{
	_State:         StateBlock,
	_Parameters:    ParametersBlock,
	_Internals:     InternalsBlock,
	_InitialValues: InitialValuesBlock,
}

// blockDecl parses: state: Declarations... end
func (p *Parser) blockDecl() *BlockDecl {
	b := &BlockDecl{Kind: blockKinds[p.tok]}
	b.pos = p.pos
	p.next()
	p.want(_Colon)

	for !p.abort {
		p.skipSemis()
		if p.tok == _End || p.tok == _EOF {
			break
		}
		if _, nested := blockKinds[p.tok]; nested || p.tok == _Neuron || p.tok == _Synapse {
			p.syntaxError("expected end of " + b.Kind.String() + " block")
			b.EndPos = p.pos
			return b
		}
		if d := p.declaration(); d != nil {
			b.Decls = append(b.Decls, d)
		}
	}

	b.EndPos = p.pos
	p.want(_End)
	return b
}

// ----------------------------------------------------------------------------
// Declarations

// declaration parses:
//
//	[recordable] [function] Name {, Name} Type [= Expr] [[[ Expr ]]]
func (p *Parser) declaration() *Declaration {
	d := &Declaration{}
	d.pos = p.pos

	d.Recordable = p.got(_Recordable)
	d.Function = p.got(_Function)

	if p.tok != _Name {
		p.syntaxError("expected declaration")
		p.advance()
		return nil
	}
	d.Names = append(d.Names, p.name())
	for p.got(_Comma) {
		d.Names = append(d.Names, p.name())
	}

	d.Type = p.name()

	errs := p.errcnt
	if p.got(_Assign) {
		d.Value = p.expr()
		if p.errcnt > errs {
			p.advanceLine()
			return d
		}
	}

	if p.got(_Linv) {
		d.Invariant = p.expr()
		if p.errcnt > errs {
			p.advanceLine()
			return d
		}
		if !p.got(_Rinv) {
			p.syntaxError("expected ]] to close invariant")
			p.advance()
			return d
		}
	}

	switch p.tok {
	case _Semi:
		p.next()
	case _End, _EOF:
		// terminated by the enclosing end
	default:
		p.syntaxError("unexpected " + p.tok.String() + " after declaration")
		p.advance()
	}

	return d
}

// ----------------------------------------------------------------------------
// Expressions

// expr parses an expression, including the conditional form c ? a : b.
func (p *Parser) expr() Expr {
	x := p.binaryExpr(0)
	if p.tok != _Question {
		return x
	}
	c := &CondExpr{Cond: x}
	c.pos = x.Pos()
	p.next()
	c.Then = p.expr()
	p.want(_Colon)
	c.Else = p.expr()
	return c
}

// binaryExpr parses a binary expression with minimum precedence prec.
// ** is right associative; all other operators are left associative.
func (p *Parser) binaryExpr(prec int) Expr {
	errs := p.errcnt
	x := p.unaryExpr()

	for {
		// A missing operand ends the expression; the caller resynchronizes.
		if p.errcnt > errs {
			return x
		}
		oprec := p.tok.Precedence()
		if oprec <= prec {
			return x
		}

		// Binary expression position starts at the left operand.
		op := &Operation{Op: p.tok, X: x}
		op.pos = x.Pos()
		p.next()

		if op.Op == _Pow {
			op.Y = p.binaryExpr(oprec - 1)
		} else {
			op.Y = p.binaryExpr(oprec)
		}
		x = op
	}
}

// unaryExpr parses a unary expression.
// Sign operators bind looser than ** (-x**2 is -(x**2)); not binds looser
// than comparisons (not a == b is not (a == b)).
func (p *Parser) unaryExpr() Expr {
	switch p.tok {
	case _Sub, _Add:
		op := &Operation{Op: p.tok}
		op.pos = p.pos
		p.next()
		op.X = p.binaryExpr(_Mul.Precedence())
		return op

	case _Not:
		op := &Operation{Op: p.tok}
		op.pos = p.pos
		p.next()
		op.X = p.binaryExpr(_And.Precedence())
		return op

	default:
		return p.operand()
	}
}

// operand parses a name, call, literal, or parenthesized expression.
func (p *Parser) operand() Expr {
	switch p.tok {
	case _Name:
		n := p.name()
		if p.tok == _Lparen {
			return p.callExpr(n)
		}
		return n

	case _Literal:
		lit := &BasicLit{Value: p.lit, Kind: p.scanner.LitKind()}
		lit.pos = p.pos
		p.next()
		if lit.Kind != StringLit && p.tok == _Name {
			lit.Unit = p.name()
		}
		return lit

	case _Lparen:
		pos := p.pos
		p.next()
		x := p.expr()
		p.want(_Rparen)
		paren := &ParenExpr{X: x}
		paren.pos = pos
		return paren

	default:
		p.syntaxError("expected operand")
		n := &Name{Value: "_"}
		n.pos = p.pos
		return n
	}
}

// callExpr parses Fun(args...)
func (p *Parser) callExpr(fun *Name) Expr {
	call := &CallExpr{Fun: fun}
	call.pos = fun.Pos()

	p.want(_Lparen)
	if p.tok != _Rparen {
		call.Args = p.exprList()
	}
	p.want(_Rparen)

	return call
}

// exprList parses a comma-separated list of expressions.
func (p *Parser) exprList() []Expr {
	list := []Expr{p.expr()}
	for p.got(_Comma) {
		list = append(list, p.expr())
	}
	return list
}
