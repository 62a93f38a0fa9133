// Package frontend describes what the declaration reader needs from a C
// front-end: cursors, types, source locations and a tokenizer. The libclang
// implementation lives in frontend/clangfe.
package frontend

// TranslationUnit is a parsed header and its includes. It is read-only once
// parsing has finished.
type TranslationUnit interface {
	// Cursor returns the root cursor whose children are the top-level declarations.
	Cursor() Cursor
	// Tokenize returns the tokens covering r in source order.
	Tokenize(r Range) []Token
	// Diagnostics returns the parser's warnings and errors.
	Diagnostics() []Diagnostic
}

// Cursor is one AST node.
type Cursor interface {
	Kind() CursorKind
	Spelling() string
	Location() Location
	Extent() Range
	Type() Type
	// ResultType is the return type of a function cursor.
	ResultType() Type
	// UnderlyingType is the aliased type of a typedef cursor.
	UnderlyingType() Type
	Children() []Cursor
	IsNull() bool
	// Key is a comparable identity; equal cursors have equal keys.
	Key() any
}

// Type is a C type as seen by the front-end.
type Type interface {
	Kind() TypeKind
	Spelling() string
	// Canonical strips every typedef layer.
	Canonical() Type
	Pointee() Type
	// Declaration is the cursor declaring the type, or a null cursor.
	Declaration() Cursor
	ElementType() Type
	ArraySize() int64
	// ResultType is the return type of a function type.
	ResultType() Type
	// Key is a comparable identity; equal types have equal keys.
	Key() any
}

// Location is an opaque source position.
type Location interface {
	Position() Position
}

// Position is the decoded form of a Location.
type Position struct {
	File   string
	Line   uint32
	Column uint32
	Offset uint32
}

// Range is a half-open source range.
type Range struct {
	Start Location
	End   Location
}

// Token is one lexical token copied out of the front-end.
type Token struct {
	Kind     TokenKind
	Spelling string
	Extent   Range
}

// Location returns the start of the token.
func (t Token) Location() Location {
	return t.Extent.Start
}

// Diagnostic is a front-end warning or error, already formatted.
type Diagnostic struct {
	Severity Severity
	Text     string
}

// Severity of a Diagnostic.
type Severity int

const (
	SeverityIgnored Severity = iota
	SeverityNote
	SeverityWarning
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityNote:
		return "note"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "ignored"
	}
}

// File returns the file name of l, or "" for a null location.
func File(l Location) string {
	if l == nil {
		return ""
	}
	return l.Position().File
}

// Line returns the line of l, or 0 for a null location.
func Line(l Location) uint32 {
	if l == nil {
		return 0
	}
	return l.Position().Line
}
