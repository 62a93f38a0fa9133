// Package frontendtest provides an in-memory front-end for tests. The
// source text is lexed for real, so comment and value extraction run on
// genuine tokens, while cursors and types are assembled by hand with
// extents located by substring.
package frontendtest

import (
	"fmt"
	"strings"

	"ffigen/frontend"
)

// Unit is a hand-built translation unit over one source text.
type Unit struct {
	file   string
	src    string
	tokens []lexeme
	root   *Cursor
	diags  []frontend.Diagnostic
	prims  map[frontend.TypeKind]*Type
}

// NewUnit lexes src, which is reported as coming from file.
func NewUnit(file, src string) *Unit {
	u := &Unit{
		file:   file,
		src:    src,
		tokens: lex(src),
		prims:  make(map[frontend.TypeKind]*Type),
	}
	u.root = &Cursor{unit: u, kind: frontend.CursorTranslationUnit, file: file, start: 0, end: len(src), loc: 0}
	return u
}

func (u *Unit) Cursor() frontend.Cursor { return u.root }

// Root returns the root cursor for attaching top-level declarations.
func (u *Unit) Root() *Cursor { return u.root }

func (u *Unit) Diagnostics() []frontend.Diagnostic { return u.diags }

// AddDiagnostic records a diagnostic the way a parser would.
func (u *Unit) AddDiagnostic(severity frontend.Severity, text string) {
	u.diags = append(u.diags, frontend.Diagnostic{Severity: severity, Text: text})
}

// Tokenize returns the tokens starting inside r.
func (u *Unit) Tokenize(r frontend.Range) []frontend.Token {
	start, end := offsetOf(r.Start), offsetOf(r.End)
	var out []frontend.Token
	for _, lx := range u.tokens {
		if lx.start >= start && lx.start < end {
			out = append(out, frontend.Token{
				Kind:     lx.kind,
				Spelling: u.src[lx.start:lx.end],
				Extent:   frontend.Range{Start: u.loc(u.file, lx.start), End: u.loc(u.file, lx.end)},
			})
		}
	}
	return out
}

func offsetOf(l frontend.Location) int {
	if loc, ok := l.(Location); ok {
		return loc.offset
	}
	return 0
}

// span finds text at or after from and returns its bounds.
func (u *Unit) span(text string, from int) (int, int) {
	idx := strings.Index(u.src[from:], text)
	if idx < 0 {
		panic(fmt.Sprintf("frontendtest: %q not found in source after offset %d", text, from))
	}
	return from + idx, from + idx + len(text)
}

// RangeOf returns the extent of the first occurrence of text.
func (u *Unit) RangeOf(text string) frontend.Range {
	start, end := u.span(text, 0)
	return frontend.Range{Start: u.loc(u.file, start), End: u.loc(u.file, end)}
}

func (u *Unit) loc(file string, offset int) Location {
	return Location{unit: u, file: file, offset: offset}
}

// newCursor creates a cursor whose extent is the first occurrence of text
// inside parent (or anywhere for top-level cursors) and attaches it.
func (u *Unit) newCursor(parent *Cursor, kind frontend.CursorKind, spelling, text string) *Cursor {
	from := 0
	if parent != nil && parent != u.root {
		from = parent.start
	}
	start, end := u.span(text, from)
	c := &Cursor{unit: u, kind: kind, spelling: spelling, file: u.file, start: start, end: end, loc: start}
	if parent == nil {
		parent = u.root
	}
	parent.children = append(parent.children, c)
	return c
}

// Attach adds an existing cursor as another child of parent, as libclang
// does for a struct defined inside a typedef.
func (u *Unit) Attach(parent, child *Cursor) {
	if parent == nil {
		parent = u.root
	}
	parent.children = append(parent.children, child)
}

// Builtin returns the primitive type of kind k.
func (u *Unit) Builtin(k frontend.TypeKind) *Type {
	if t, ok := u.prims[k]; ok {
		return t
	}
	t := &Type{kind: k, spelling: strings.ToLower(k.String())}
	u.prims[k] = t
	return t
}

// Unexposed returns a type the front-end could not classify.
func (u *Unit) Unexposed(spelling string) *Type {
	return &Type{kind: frontend.TypeUnexposed, spelling: spelling}
}

// OfKind returns a fresh type of an arbitrary kind.
func (u *Unit) OfKind(k frontend.TypeKind, spelling string) *Type {
	return &Type{kind: k, spelling: spelling}
}

// PointerTo returns a pointer to t whose canonical form points to t's
// canonical form.
func (u *Unit) PointerTo(t *Type) *Type {
	p := &Type{kind: frontend.TypePointer, spelling: t.spelling + " *", pointee: t}
	if t.canonical != nil && t.canonical != t {
		p.canonical = u.PointerTo(t.canonical)
	}
	return p
}

// ArrayOf returns a constant array of n elements of t.
func (u *Unit) ArrayOf(t *Type, n int64) *Type {
	a := &Type{kind: frontend.TypeConstantArray, spelling: fmt.Sprintf("%s[%d]", t.spelling, n), elem: t, size: n}
	if t.canonical != nil && t.canonical != t {
		a.canonical = u.ArrayOf(t.canonical, n)
	}
	return a
}

// FunctionProto returns a function prototype type.
func (u *Unit) FunctionProto(result *Type) *Type {
	return &Type{kind: frontend.TypeFunctionProto, spelling: result.spelling + " (*)()", result: result}
}

// Struct declares a struct (or union) named spelling with the extent text.
// An empty spelling makes it anonymous.
func (u *Unit) Struct(parent *Cursor, spelling, text string, isUnion bool) *Cursor {
	kind, tag := frontend.CursorStructDecl, "struct "
	if isUnion {
		kind, tag = frontend.CursorUnionDecl, "union "
	}
	c := u.newCursor(parent, kind, spelling, text)
	c.typ = &Type{kind: frontend.TypeRecord, spelling: tag + spelling, decl: c}
	return c
}

// Redeclare declares the record or enum of prev again, as a forward
// declaration followed by a definition does.
func (u *Unit) Redeclare(parent *Cursor, prev *Cursor, text string) *Cursor {
	c := u.newCursor(parent, prev.kind, prev.spelling, text)
	c.typ = prev.typ
	return c
}

// Enum declares an enum named spelling.
func (u *Unit) Enum(parent *Cursor, spelling, text string) *Cursor {
	c := u.newCursor(parent, frontend.CursorEnumDecl, spelling, text)
	c.typ = &Type{kind: frontend.TypeEnum, spelling: "enum " + spelling, decl: c}
	return c
}

// EnumConstant adds an enumerator to enum. When init is not empty it must
// occur inside text and becomes the initializer expression child.
func (u *Unit) EnumConstant(enum *Cursor, spelling, text, init string) *Cursor {
	c := u.newCursor(enum, frontend.CursorEnumConstantDecl, spelling, text)
	c.typ = u.Builtin(frontend.TypeInt)
	if init != "" {
		u.newCursor(c, frontend.CursorExpression, "", init)
	}
	return c
}

// Field adds a member of type t to record.
func (u *Unit) Field(record *Cursor, spelling, text string, t *Type) *Cursor {
	c := u.newCursor(record, frontend.CursorFieldDecl, spelling, text)
	c.typ = t
	return c
}

// Function declares a function returning result.
func (u *Unit) Function(parent *Cursor, spelling, text string, result *Type) *Cursor {
	c := u.newCursor(parent, frontend.CursorFunctionDecl, spelling, text)
	c.result = result
	c.typ = u.FunctionProto(result)
	return c
}

// Param adds a parameter of type t to a function or typedef cursor.
func (u *Unit) Param(fn *Cursor, spelling, text string, t *Type) *Cursor {
	c := u.newCursor(fn, frontend.CursorParmDecl, spelling, text)
	c.typ = t
	return c
}

// Typedef declares spelling as a name for underlying and returns the cursor.
// The typedef type is available as cursor.TypeOf().
func (u *Unit) Typedef(parent *Cursor, spelling, text string, underlying *Type) *Cursor {
	c := u.newCursor(parent, frontend.CursorTypedefDecl, spelling, text)
	c.typ = &Type{
		kind:      frontend.TypeTypedef,
		spelling:  spelling,
		canonical: underlying.canonicalOrSelf(),
		decl:      c,
		result:    underlying.result,
	}
	c.underlying = underlying
	return c
}

// TypeRef adds a reference to the declaration of t, as libclang reports for
// `typedef struct Foo Foo;`.
func (u *Unit) TypeRef(parent *Cursor, text string, t *Type) *Cursor {
	c := u.newCursor(parent, frontend.CursorTypeRef, t.spelling, text)
	c.typ = t
	return c
}

// Macro declares a macro definition whose extent is text, starting with
// the macro name.
func (u *Unit) Macro(spelling, text string) *Cursor {
	return u.newCursor(nil, frontend.CursorMacroDefinition, spelling, text)
}

// Other declares a cursor the reader does not handle.
func (u *Unit) Other(parent *Cursor, spelling, text string) *Cursor {
	return u.newCursor(parent, frontend.CursorOther, spelling, text)
}

// Location is a position in the unit's source.
type Location struct {
	unit   *Unit
	file   string
	offset int
}

func (l Location) Position() frontend.Position {
	if l.unit == nil {
		return frontend.Position{}
	}
	prefix := l.unit.src[:l.offset]
	line := strings.Count(prefix, "\n") + 1
	column := l.offset - strings.LastIndexByte(prefix, '\n')
	return frontend.Position{File: l.file, Line: uint32(line), Column: uint32(column), Offset: uint32(l.offset)}
}

// Cursor is a hand-built AST node.
type Cursor struct {
	unit       *Unit
	kind       frontend.CursorKind
	spelling   string
	file       string
	start, end int
	loc        int
	typ        *Type
	result     *Type
	underlying *Type
	children   []*Cursor
}

// InFile reports the cursor as declared in another file.
func (c *Cursor) InFile(file string) *Cursor {
	c.file = file
	return c
}

// TypeOf returns the concrete type of the cursor.
func (c *Cursor) TypeOf() *Type { return c.typ }

func (c *Cursor) Kind() frontend.CursorKind { return c.kind }
func (c *Cursor) Spelling() string          { return c.spelling }
func (c *Cursor) IsNull() bool              { return c == nil }
func (c *Cursor) Key() any                  { return c }

func (c *Cursor) Location() frontend.Location {
	return c.unit.loc(c.file, c.loc)
}

func (c *Cursor) Extent() frontend.Range {
	return frontend.Range{Start: c.unit.loc(c.file, c.start), End: c.unit.loc(c.file, c.end)}
}

func (c *Cursor) Type() frontend.Type {
	if c.typ == nil {
		return invalidType
	}
	return c.typ
}

func (c *Cursor) ResultType() frontend.Type {
	if c.result == nil {
		return invalidType
	}
	return c.result
}

func (c *Cursor) UnderlyingType() frontend.Type {
	if c.underlying == nil {
		return invalidType
	}
	return c.underlying
}

func (c *Cursor) Children() []frontend.Cursor {
	out := make([]frontend.Cursor, len(c.children))
	for i, child := range c.children {
		out[i] = child
	}
	return out
}

// nullCursor stands in for "no declaration".
type nullCursor struct{}

func (nullCursor) Kind() frontend.CursorKind     { return frontend.CursorOther }
func (nullCursor) Spelling() string              { return "" }
func (nullCursor) Location() frontend.Location   { return Location{} }
func (nullCursor) Extent() frontend.Range        { return frontend.Range{Start: Location{}, End: Location{}} }
func (nullCursor) Type() frontend.Type           { return invalidType }
func (nullCursor) ResultType() frontend.Type     { return invalidType }
func (nullCursor) UnderlyingType() frontend.Type { return invalidType }
func (nullCursor) Children() []frontend.Cursor   { return nil }
func (nullCursor) IsNull() bool                  { return true }
func (nullCursor) Key() any                      { return nil }

// Type is a hand-built type.
type Type struct {
	kind      frontend.TypeKind
	spelling  string
	canonical *Type
	pointee   *Type
	decl      *Cursor
	elem      *Type
	size      int64
	result    *Type
}

var invalidType = &Type{kind: frontend.TypeInvalid}

func (t *Type) canonicalOrSelf() *Type {
	if t.canonical != nil {
		return t.canonical
	}
	return t
}

func (t *Type) Kind() frontend.TypeKind  { return t.kind }
func (t *Type) Spelling() string         { return t.spelling }
func (t *Type) Canonical() frontend.Type { return t.canonicalOrSelf() }
func (t *Type) ArraySize() int64         { return t.size }
func (t *Type) Key() any                 { return t }

func (t *Type) Pointee() frontend.Type {
	if t.pointee == nil {
		return invalidType
	}
	return t.pointee
}

func (t *Type) Declaration() frontend.Cursor {
	if t.decl == nil {
		return nullCursor{}
	}
	return t.decl
}

func (t *Type) ElementType() frontend.Type {
	if t.elem == nil {
		return invalidType
	}
	return t.elem
}

func (t *Type) ResultType() frontend.Type {
	if t.result == nil {
		return invalidType
	}
	return t.result
}
