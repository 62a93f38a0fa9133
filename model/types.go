// Package model is the language-neutral description of a C API that the
// reader produces and binding emitters consume.
package model

import (
	"go/constant"

	"ffigen/frontend"
	"ffigen/name"
)

// Type is the resolved form of a C type. The set of implementations is
// closed: Primitive, String, ByValue, Pointer, ConstantArray,
// *StructOrUnion, *Enum, *Function and Unknown.
type Type interface {
	// TypeName is the name an emitter shows for the type, also used as the
	// display name of unnamed parameters.
	TypeName() name.Name
	isType()
}

// Entity is anything stored in the Index.
type Entity interface {
	EntityName() name.Name
	isEntity()
}

// Primitive is a builtin scalar.
type Primitive struct {
	Kind frontend.TypeKind
}

func (p Primitive) TypeName() name.Name { return name.New(p.Kind.String()) }
func (Primitive) isType() {}

// String is a char pointer.
type String struct{}

func (String) TypeName() name.Name { return name.New("string") }
func (String) isType() {}

// ByValue is a struct or union passed or returned by copy.
type ByValue struct {
	Inner Type
}

func (b ByValue) TypeName() name.Name { return b.Inner.TypeName() }
func (ByValue) isType() {}

// Pointer is a pointer whose pointee has no resolved declaration.
type Pointer struct {
	Pointee name.Name
	Depth   int
}

func (p Pointer) TypeName() name.Name { return p.Pointee }
func (Pointer) isType() {}

// ConstantArray is a fixed-size array.
type ConstantArray struct {
	Element Type
	Length  int64
}

func (ConstantArray) TypeName() name.Name { return name.New("array") }
func (ConstantArray) isType() {}

// Unknown is what resolution falls back to when it cannot do better.
type Unknown struct{}

func (Unknown) TypeName() name.Name { return name.New("unknown") }
func (Unknown) isType() {}

// Field is a struct or union member.
type Field struct {
	Name        name.Name
	Type        Type
	Description []string
}

// Method is a free function grouped onto the struct its first parameter
// points to. Name is the function name without the struct prefix.
type Method struct {
	Name     name.Name
	Function *Function
}

// StructOrUnion is a record type. A forward declaration creates it with no
// fields; the definition later fills the same object.
type StructOrUnion struct {
	Name        name.Name
	IsUnion     bool
	Description []string
	Fields      []Field
	Methods     []Method
}

func (s *StructOrUnion) TypeName() name.Name { return s.Name }
func (s *StructOrUnion) EntityName() name.Name { return s.Name }
func (*StructOrUnion) isType() {}
func (*StructOrUnion) isEntity() {}

// Donate sets the name of an anonymous record. It reports whether the name
// was taken; a record that already has a name keeps it.
func (s *StructOrUnion) Donate(n name.Name) bool {
	if !s.Name.IsEmpty() || n.IsEmpty() {
		return false
	}
	s.Name = n
	return true
}

// EnumConstant is one enumerator.
type EnumConstant struct {
	Name    name.Name
	Value   int64
	Comment []string
}

// Enum is a C enumeration.
type Enum struct {
	Name        name.Name
	Description []string
	Constants   []EnumConstant
}

func (e *Enum) TypeName() name.Name { return e.Name }
func (e *Enum) EntityName() name.Name { return e.Name }
func (*Enum) isType() {}
func (*Enum) isEntity() {}

// Donate sets the name of an anonymous enum, like StructOrUnion.Donate.
func (e *Enum) Donate(n name.Name) bool {
	if !e.Name.IsEmpty() || n.IsEmpty() {
		return false
	}
	e.Name = n
	return true
}

// ShortenedNames returns the constant names without the leading and
// trailing parts that every constant shares and that also occur in the
// enum name, so FOO_COLOR_RED in enum FooColor becomes RED.
// The constants themselves are left untouched.
func (e *Enum) ShortenedNames() []name.Name {
	names := make([]name.Name, len(e.Constants))
	for i, c := range e.Constants {
		parts := make([]string, len(c.Name.Parts))
		copy(parts, c.Name.Parts)
		names[i] = name.Name{Parts: parts, Raw: c.Name.Raw}
	}
	if len(names) < 2 {
		return names
	}

	inEnumName := func(part string) bool {
		for _, p := range e.Name.Parts {
			if p == part {
				return true
			}
		}
		return false
	}
	shared := func(pick func(name.Name) string) bool {
		first := ""
		for i, n := range names {
			if len(n.Parts) < 2 {
				return false
			}
			if i == 0 {
				first = pick(n)
			} else if pick(n) != first {
				return false
			}
		}
		return inEnumName(first)
	}

	for shared(func(n name.Name) string { return n.Parts[0] }) {
		for i := range names {
			names[i].Parts = names[i].Parts[1:]
		}
	}
	for shared(func(n name.Name) string { return n.Parts[len(n.Parts)-1] }) {
		for i := range names {
			names[i].Parts = names[i].Parts[:len(names[i].Parts)-1]
		}
	}
	return names
}

// Parameter is a function or callback parameter.
type Parameter struct {
	Name        name.Name
	Type        Type
	IsArray     bool
	Description []string
}

// Function is a free function or, with IsCallback set, a function-pointer
// typedef.
type Function struct {
	Name              name.Name
	Parameters        []Parameter
	Return            Type
	IsCallback        bool
	IsBlocking        bool
	Description       []string
	ReturnDescription []string
}

func (f *Function) TypeName() name.Name { return f.Name }
func (f *Function) EntityName() name.Name { return f.Name }
func (*Function) isType() {}
func (*Function) isEntity() {}

// Constant is a macro whose body is a literal or simple arithmetic.
type Constant struct {
	Name name.Name
	// Expr is the accepted token sequence joined back together.
	Expr  string
	Value constant.Value
}

func (c *Constant) EntityName() name.Name { return c.Name }
func (*Constant) isEntity() {}
