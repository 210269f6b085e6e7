package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *File:
		return map[string]interface{}{
			"type":   "File",
			"pos":    n.pos.String(),
			"models": mapSlice(n.Models, func(m *ModelDecl) interface{} { return toJSON(m) }),
		}

	case *ModelDecl:
		return map[string]interface{}{
			"type":   "ModelDecl",
			"pos":    n.pos.String(),
			"kind":   n.Kind.String(),
			"name":   n.Name.Value,
			"blocks": mapSlice(n.Blocks, func(b *BlockDecl) interface{} { return toJSON(b) }),
		}

	case *BlockDecl:
		return map[string]interface{}{
			"type":  "BlockDecl",
			"pos":   n.pos.String(),
			"kind":  n.Kind.String(),
			"decls": mapSlice(n.Decls, func(d *Declaration) interface{} { return toJSON(d) }),
		}

	case *Declaration:
		m := map[string]interface{}{
			"type":     "Declaration",
			"pos":      n.pos.String(),
			"names":    mapSlice(n.Names, func(x *Name) interface{} { return x.Value }),
			"datatype": n.Type.Value,
		}
		if n.Recordable {
			m["recordable"] = true
		}
		if n.Function {
			m["function"] = true
		}
		if n.Value != nil {
			m["value"] = toJSON(n.Value)
		}
		if n.Invariant != nil {
			m["invariant"] = toJSON(n.Invariant)
		}
		return m

	case *Name:
		return map[string]interface{}{
			"type":  "Name",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *BasicLit:
		m := map[string]interface{}{
			"type":  "BasicLit",
			"pos":   n.pos.String(),
			"kind":  n.Kind.String(),
			"value": n.Value,
		}
		if n.Unit != nil {
			m["unit"] = n.Unit.Value
		}
		return m

	case *Operation:
		m := map[string]interface{}{
			"type": "Operation",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
		}
		if n.Y != nil {
			m["y"] = toJSON(n.Y)
		}
		return m

	case *CondExpr:
		return map[string]interface{}{
			"type": "CondExpr",
			"pos":  n.pos.String(),
			"cond": toJSON(n.Cond),
			"then": toJSON(n.Then),
			"else": toJSON(n.Else),
		}

	case *CallExpr:
		return map[string]interface{}{
			"type": "CallExpr",
			"pos":  n.pos.String(),
			"fun":  n.Fun.Value,
			"args": mapSlice(n.Args, func(a Expr) interface{} { return toJSON(a) }),
		}

	case *ParenExpr:
		return map[string]interface{}{
			"type": "ParenExpr",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
