package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Scanner performs lexical analysis on model source.
type Scanner struct {
	source // embedded character reader

	// Current token info
	tok    Token   // token type
	lit    string  // token literal (identifier name, number, string content)
	kind   LitKind // literal kind (only valid when tok == _Literal)
	tokPos Pos     // token start position

	// Newline handling: a newline after certain tokens terminates the
	// current declaration and is reported as _Semi.
	nlsemi     bool
	asiEnabled bool

	litBuf strings.Builder
}

// NewScanner creates a new Scanner for the given source.
// The errh function is called for each lexical error; if nil, errors are silently ignored.
func NewScanner(filename string, src io.Reader, errh func(line, col uint32, msg string)) *Scanner {
	return &Scanner{
		source:     *newSource(filename, src, errh),
		asiEnabled: true,
	}
}

// SetASIEnabled enables or disables newline termination.
// With it disabled, declarations must be terminated with an explicit ';'.
func (s *Scanner) SetASIEnabled(enabled bool) {
	s.asiEnabled = enabled
}

// Next advances to the next token.
func (s *Scanner) Next() {
	nlsemi := s.nlsemi
	s.nlsemi = false

redo:
	s.skipWhitespace()

	if s.asiEnabled && nlsemi && (s.ch == '\n' || s.ch < 0) {
		s.tokPos = s.pos()
		s.tok = _Semi
		if s.ch == '\n' {
			s.lit = "newline"
			s.nextch()
		} else {
			s.lit = "EOF"
		}
		return
	}

	if s.ch == '\n' {
		s.nextch()
		goto redo
	}

	s.tokPos = s.pos()

	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch) || s.ch == '.' && isDigit(s.peek()):
		s.scanNumber()

	case s.ch == '"':
		s.scanString()

	case s.ch == '#':
		s.skipLineComment()
		goto redo

	case isOperatorStart(s.ch):
		skipped, newline := s.scanOperator()
		if skipped {
			if newline && s.asiEnabled && nlsemi {
				s.tok = _Semi
				s.lit = "newline"
				return
			}
			goto redo
		}

	default:
		s.error(fmt.Sprintf("unexpected character %q", s.ch))
		s.nextch()
		goto redo
	}

	s.nlsemi = s.shouldInsertSemi()
}

// Token returns the current token type.
func (s *Scanner) Token() Token {
	return s.tok
}

// Literal returns the current token's literal value.
func (s *Scanner) Literal() string {
	return s.lit
}

// LitKind returns the current literal's kind (only valid when Token() == _Literal).
func (s *Scanner) LitKind() LitKind {
	return s.kind
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// shouldInsertSemi reports whether a newline after the current token
// terminates a declaration.
func (s *Scanner) shouldInsertSemi() bool {
	switch s.tok {
	case _Name, _Literal:
		return true
	case _Rparen, _Rinv, _End:
		return true
	}
	return false
}

func (s *Scanner) startLit() {
	s.litBuf.Reset()
	s.litBuf.WriteRune(s.ch)
}

func (s *Scanner) continueLit() {
	s.litBuf.WriteRune(s.ch)
}

func (s *Scanner) stopLit() string {
	return s.litBuf.String()
}

// scanIdent scans an identifier or keyword.
// Trailing primes mark derivatives (V_m', g_ex'') and belong to the name.
func (s *Scanner) scanIdent() {
	s.startLit()
	s.nextch()

	for isLetter(s.ch) || isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}
	for s.ch == '\'' {
		s.continueLit()
		s.nextch()
	}

	s.lit = s.stopLit()
	s.tok = LookupKeyword(s.lit)
}

// scanNumber scans a decimal integer or float literal.
// A unit written directly after the number (10mV) is left for the next token.
func (s *Scanner) scanNumber() {
	s.litBuf.Reset()
	s.kind = IntLit

	s.scanDecimalDigits()
	if s.ch == '.' {
		s.kind = FloatLit
		s.continueLit()
		s.nextch()
		s.scanDecimalDigits()
	}
	if lower(s.ch) == 'e' && s.exponentFollows() {
		s.scanExponent()
	}

	s.lit = s.litBuf.String()
	s.tok = _Literal
}

func (s *Scanner) scanDecimalDigits() {
	for isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}
}

// exponentFollows reports whether the 'e' at s.ch starts an exponent
// rather than a unit name such as "eV".
func (s *Scanner) exponentFollows() bool {
	next := s.peek()
	return isDigit(next) || next == '+' || next == '-'
}

func (s *Scanner) scanExponent() {
	s.kind = FloatLit
	s.continueLit()
	s.nextch()

	if s.ch == '+' || s.ch == '-' {
		s.continueLit()
		s.nextch()
	}
	if !isDigit(s.ch) {
		s.error("exponent has no digits")
		return
	}
	s.scanDecimalDigits()
}

// scanString scans a string literal.
// The resulting literal is the decoded string content.
func (s *Scanner) scanString() {
	s.nextch() // skip opening "
	var b strings.Builder

	for {
		switch {
		case s.ch == '"':
			s.nextch()
			s.lit = b.String()
			s.tok = _Literal
			s.kind = StringLit
			return

		case s.ch == '\\':
			if r, ok := s.scanEscape(); ok {
				b.WriteRune(r)
			}

		case s.ch == '\n' || s.ch < 0:
			s.error("string not terminated")
			s.lit = b.String()
			s.tok = _Literal
			s.kind = StringLit
			return

		default:
			b.WriteRune(s.ch)
			s.nextch()
		}
	}
}

func (s *Scanner) scanEscape() (rune, bool) {
	s.nextch() // skip \

	switch s.ch {
	case 'n':
		s.nextch()
		return '\n', true
	case 't':
		s.nextch()
		return '\t', true
	case '\\':
		s.nextch()
		return '\\', true
	case '"':
		s.nextch()
		return '"', true
	default:
		s.error(fmt.Sprintf("unknown escape sequence: \\%c", s.ch))
		s.nextch()
		return 0, false
	}
}

// scanOperator scans an operator or delimiter.
// skipped is true if a block comment was consumed instead (caller should
// rescan); newline reports whether that comment spanned a line break.
func (s *Scanner) scanOperator() (skipped, newline bool) {
	ch := s.ch
	s.nextch()

	switch ch {
	case '+':
		s.tok, s.lit = _Add, "+"
	case '-':
		s.tok, s.lit = _Sub, "-"
	case '*':
		if s.ch == '*' {
			s.nextch()
			s.tok, s.lit = _Pow, "**"
		} else {
			s.tok, s.lit = _Mul, "*"
		}
	case '/':
		if s.ch == '*' {
			return true, s.skipBlockComment()
		}
		s.tok, s.lit = _Div, "/"
	case '%':
		s.tok, s.lit = _Rem, "%"
	case '<':
		switch s.ch {
		case '=':
			s.nextch()
			s.tok, s.lit = _Leq, "<="
		case '>':
			s.nextch()
			s.tok, s.lit = _Neq, "<>"
		default:
			s.tok, s.lit = _Lss, "<"
		}
	case '>':
		if s.ch == '=' {
			s.nextch()
			s.tok, s.lit = _Geq, ">="
		} else {
			s.tok, s.lit = _Gtr, ">"
		}
	case '=':
		if s.ch == '=' {
			s.nextch()
			s.tok, s.lit = _Eql, "=="
		} else {
			s.tok, s.lit = _Assign, "="
		}
	case '!':
		if s.ch == '=' {
			s.nextch()
			s.tok, s.lit = _Neq, "!="
		} else {
			s.error("unexpected '!', use 'not' for negation")
			s.tok, s.lit = _Not, "!"
		}
	case ':':
		s.tok, s.lit = _Colon, ":"
	case '?':
		s.tok, s.lit = _Question, "?"
	case '(':
		s.tok, s.lit = _Lparen, "("
	case ')':
		s.tok, s.lit = _Rparen, ")"
	case '[':
		if s.ch == '[' {
			s.nextch()
		} else {
			s.error("expected '[[' to open an invariant")
		}
		s.tok, s.lit = _Linv, "[["
	case ']':
		if s.ch == ']' {
			s.nextch()
		} else {
			s.error("expected ']]' to close an invariant")
		}
		s.tok, s.lit = _Rinv, "]]"
	case ',':
		s.tok, s.lit = _Comma, ","
	case ';':
		s.tok, s.lit = _Semi, ";"
	}

	return false, false
}

// skipLineComment skips a '#' comment up to, not including, the newline.
func (s *Scanner) skipLineComment() {
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}

// skipBlockComment skips a /* ... */ comment; the opening "/*" has been
// partially consumed (s.ch is '*'). It reports whether the comment contained
// a newline.
func (s *Scanner) skipBlockComment() bool {
	s.nextch() // skip *
	newline := false
	for s.ch >= 0 {
		if s.ch == '\n' {
			newline = true
		}
		if s.ch == '*' && s.peek() == '/' {
			s.nextch()
			s.nextch()
			return newline
		}
		s.nextch()
	}
	s.error("comment not terminated")
	return newline
}
