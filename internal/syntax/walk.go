package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *File:
		for _, m := range n.Models {
			Walk(m, v)
		}

	case *ModelDecl:
		Walk(n.Name, v)
		for _, b := range n.Blocks {
			Walk(b, v)
		}

	case *BlockDecl:
		for _, d := range n.Decls {
			Walk(d, v)
		}

	case *Declaration:
		for _, name := range n.Names {
			Walk(name, v)
		}
		Walk(n.Type, v)
		if n.Value != nil {
			Walk(n.Value, v)
		}
		if n.Invariant != nil {
			Walk(n.Invariant, v)
		}

	case *Operation:
		Walk(n.X, v)
		if n.Y != nil {
			Walk(n.Y, v)
		}

	case *CondExpr:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		Walk(n.Else, v)

	case *CallExpr:
		Walk(n.Fun, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *ParenExpr:
		Walk(n.X, v)

	case *BasicLit:
		if n.Unit != nil {
			Walk(n.Unit, v)
		}

	// Leaf nodes: Name
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
