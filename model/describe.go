package model

import (
	"fmt"
	"strings"
)

// Describe renders t as a short language-neutral string, e.g.
// "pointer(widget, 2)" or "array(int, 4)". Used by the dump output and in
// error messages.
func Describe(t Type) string {
	switch v := t.(type) {
	case nil:
		return "<nil>"
	case Primitive:
		return strings.ToLower(v.Kind.String())
	case String:
		return "string"
	case ByValue:
		return "byvalue(" + Describe(v.Inner) + ")"
	case Pointer:
		return fmt.Sprintf("pointer(%s, %d)", displayName(v.Pointee.String()), v.Depth)
	case ConstantArray:
		return fmt.Sprintf("array(%s, %d)", Describe(v.Element), v.Length)
	case *StructOrUnion:
		if v.IsUnion {
			return "union " + displayName(v.Name.String())
		}
		return "struct " + displayName(v.Name.String())
	case *Enum:
		return "enum " + displayName(v.Name.String())
	case *Function:
		if v.IsCallback {
			return "callback " + displayName(v.Name.String())
		}
		return "function " + displayName(v.Name.String())
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("%T", t)
	}
}

func displayName(s string) string {
	if s == "" {
		return "<anonymous>"
	}
	return s
}
