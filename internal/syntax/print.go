package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *File:
		p.printf("File %s\n", n.pos)
		p.indent++
		for _, m := range n.Models {
			p.print(m)
		}
		p.indent--

	case *ModelDecl:
		p.printf("ModelDecl %s\n", n.pos)
		p.indent++
		p.printf("Kind: %s\n", n.Kind)
		p.printf("Name: %s\n", n.Name.Value)
		for _, b := range n.Blocks {
			p.print(b)
		}
		p.indent--

	case *BlockDecl:
		p.printf("BlockDecl %s\n", n.pos)
		p.indent++
		p.printf("Kind: %s\n", n.Kind)
		for _, d := range n.Decls {
			p.print(d)
		}
		p.indent--

	case *Declaration:
		p.printf("Declaration %s\n", n.pos)
		p.indent++
		if n.Recordable {
			p.printf("Recordable: true\n")
		}
		if n.Function {
			p.printf("Function: true\n")
		}
		names := make([]string, len(n.Names))
		for i, name := range n.Names {
			names[i] = name.Value
		}
		p.printf("Names: %s\n", strings.Join(names, ", "))
		p.printf("Type: %s\n", n.Type.Value)
		if n.Value != nil {
			p.printf("Value:\n")
			p.indent++
			p.print(n.Value)
			p.indent--
		}
		if n.Invariant != nil {
			p.printf("Invariant:\n")
			p.indent++
			p.print(n.Invariant)
			p.indent--
		}
		p.indent--

	case *Name:
		p.printf("Name %q %s\n", n.Value, n.pos)

	case *BasicLit:
		if n.Unit != nil {
			p.printf("BasicLit %s %q %s %s\n", n.Kind, n.Value, n.Unit.Value, n.pos)
		} else {
			p.printf("BasicLit %s %q %s\n", n.Kind, n.Value, n.pos)
		}

	case *Operation:
		if n.Y == nil {
			p.printf("Operation (unary %s) %s\n", n.Op, n.pos)
		} else {
			p.printf("Operation %s %s\n", n.Op, n.pos)
		}
		p.indent++
		p.print(n.X)
		if n.Y != nil {
			p.print(n.Y)
		}
		p.indent--

	case *CondExpr:
		p.printf("CondExpr %s\n", n.pos)
		p.indent++
		p.print(n.Cond)
		p.print(n.Then)
		p.print(n.Else)
		p.indent--

	case *CallExpr:
		p.printf("CallExpr %s %s\n", n.Fun.Value, n.pos)
		p.indent++
		for _, arg := range n.Args {
			p.print(arg)
		}
		p.indent--

	case *ParenExpr:
		p.printf("ParenExpr %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	default:
		p.printf("<%T>\n", node)
	}
}

// ExprString returns the source form of an expression, as used in
// diagnostics: operators are separated by single spaces and parentheses
// appear only where the source had them.
func ExprString(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr) {
	switch x := e.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Name:
		b.WriteString(x.Value)
	case *BasicLit:
		if x.Kind == StringLit {
			b.WriteString(strconv.Quote(x.Value))
		} else {
			b.WriteString(x.Value)
		}
		if x.Unit != nil {
			b.WriteByte(' ')
			b.WriteString(x.Unit.Value)
		}
	case *Operation:
		if x.Y == nil {
			b.WriteString(x.Op.String())
			if x.Op == _Not {
				b.WriteByte(' ')
			}
			writeExpr(b, x.X)
			return
		}
		writeExpr(b, x.X)
		b.WriteByte(' ')
		b.WriteString(x.Op.String())
		b.WriteByte(' ')
		writeExpr(b, x.Y)
	case *CondExpr:
		writeExpr(b, x.Cond)
		b.WriteString(" ? ")
		writeExpr(b, x.Then)
		b.WriteString(" : ")
		writeExpr(b, x.Else)
	case *CallExpr:
		b.WriteString(x.Fun.Value)
		b.WriteByte('(')
		for i, arg := range x.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, arg)
		}
		b.WriteByte(')')
	case *ParenExpr:
		b.WriteByte('(')
		writeExpr(b, x.X)
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "<%T>", e)
	}
}
