// Package clangfe implements the front-end interfaces on top of libclang.
package clangfe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-clang/clang-v13/clang"

	"ffigen/frontend"
)

// Unit is a parsed translation unit. Close releases it.
type Unit struct {
	index clang.Index
	tu    clang.TranslationUnit
	dir   string
}

// Parse writes a temporary C file including every header and parses it
// with the detailed preprocessing record, so macro definitions are visible.
func Parse(headers, cflags []string) (*Unit, error) {
	dir, err := os.MkdirTemp("", "ffigen")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %v", err)
	}

	var content strings.Builder
	for _, header := range headers {
		if abs, err := filepath.Abs(header); err == nil {
			if _, err := os.Stat(abs); err == nil {
				fmt.Fprintf(&content, "#include \"%s\"\n", abs)
				continue
			}
		}
		// resolved through the -I flags
		fmt.Fprintf(&content, "#include <%s>\n", header)
	}

	tempFile := filepath.Join(dir, "ffigen_temp.c")
	if err := os.WriteFile(tempFile, []byte(content.String()), 0644); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to create temp file: %v", err)
	}

	idx := clang.NewIndex(0, 0)
	tu := idx.ParseTranslationUnit(tempFile, cflags, nil, uint32(clang.TranslationUnit_DetailedPreprocessingRecord))
	if tu == (clang.TranslationUnit{}) {
		idx.Dispose()
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to parse translation unit")
	}

	return &Unit{index: idx, tu: tu, dir: dir}, nil
}

// Close disposes the translation unit and removes the temporary file.
func (u *Unit) Close() error {
	u.tu.Dispose()
	u.index.Dispose()
	return os.RemoveAll(u.dir)
}

func (u *Unit) Cursor() frontend.Cursor {
	return cursor{c: u.tu.TranslationUnitCursor()}
}

func (u *Unit) Diagnostics() []frontend.Diagnostic {
	n := u.tu.NumDiagnostics()
	out := make([]frontend.Diagnostic, 0, n)
	for i := uint32(0); i < n; i++ {
		d := u.tu.Diagnostic(i)
		out = append(out, frontend.Diagnostic{
			Severity: severity(d.Severity()),
			Text:     d.FormatDiagnostic(clang.DefaultDiagnosticDisplayOptions()),
		})
		d.Dispose()
	}
	return out
}

// Tokenize copies the tokens of r out of libclang and disposes them. A start
// that is null or lies in another file than the end is moved to the start
// of the end's file.
func (u *Unit) Tokenize(r frontend.Range) []frontend.Token {
	end, ok := r.End.(location)
	if !ok || isNull(end.l) {
		return nil
	}
	endFile, _, _, _ := end.l.FileLocation()
	if endFile == (clang.File{}) {
		return nil
	}

	start, ok := r.Start.(location)
	if !ok || isNull(start.l) {
		start = location{l: u.tu.LocationForOffset(endFile, 0)}
	} else if startFile, _, _, _ := start.l.FileLocation(); startFile.Name() != endFile.Name() {
		start = location{l: u.tu.LocationForOffset(endFile, 0)}
	}

	tokens := u.tu.Tokenize(start.l.Range(end.l))
	defer u.tu.DisposeTokens(tokens)

	out := make([]frontend.Token, 0, len(tokens))
	for _, t := range tokens {
		extent := u.tu.TokenExtent(t)
		out = append(out, frontend.Token{
			Kind:     tokenKind(t.Kind()),
			Spelling: u.tu.TokenSpelling(t),
			Extent:   frontend.Range{Start: location{l: extent.Start()}, End: location{l: extent.End()}},
		})
	}
	return out
}

func isNull(l clang.SourceLocation) bool {
	return l.Equal(clang.NewNullLocation())
}

type location struct {
	l clang.SourceLocation
}

func (l location) Position() frontend.Position {
	file, line, column, offset := l.l.FileLocation()
	p := frontend.Position{Line: line, Column: column, Offset: offset}
	if file != (clang.File{}) {
		p.File = file.Name()
	}
	return p
}

func rangeOf(sr clang.SourceRange) frontend.Range {
	return frontend.Range{Start: location{l: sr.Start()}, End: location{l: sr.End()}}
}

type cursor struct {
	c clang.Cursor
}

func (c cursor) Kind() frontend.CursorKind   { return cursorKind(c.c.Kind()) }
func (c cursor) Location() frontend.Location { return location{l: c.c.Location()} }
func (c cursor) Extent() frontend.Range      { return rangeOf(c.c.Extent()) }
func (c cursor) Type() frontend.Type         { return typ{t: c.c.Type()} }
func (c cursor) ResultType() frontend.Type   { return typ{t: c.c.ResultType()} }
func (c cursor) IsNull() bool                { return c.c.IsNull() }
func (c cursor) Key() any                    { return c.c }

func (c cursor) UnderlyingType() frontend.Type {
	return typ{t: c.c.TypedefDeclUnderlyingType()}
}

// Spelling is empty for anonymous records and enums, whatever libclang
// reports for them.
func (c cursor) Spelling() string {
	s := c.c.Spelling()
	if strings.Contains(s, "(unnamed") || strings.Contains(s, "(anonymous") {
		return ""
	}
	return s
}

func (c cursor) Children() []frontend.Cursor {
	var out []frontend.Cursor
	c.c.Visit(func(child, parent clang.Cursor) clang.ChildVisitResult {
		out = append(out, cursor{c: child})
		return clang.ChildVisit_Continue
	})
	return out
}

type typ struct {
	t clang.Type
}

func (t typ) Kind() frontend.TypeKind      { return typeKind(t.t.Kind()) }
func (t typ) Spelling() string             { return t.t.Spelling() }
func (t typ) Canonical() frontend.Type     { return typ{t: t.t.CanonicalType()} }
func (t typ) Pointee() frontend.Type       { return typ{t: t.t.PointeeType()} }
func (t typ) Declaration() frontend.Cursor { return cursor{c: t.t.Declaration()} }
func (t typ) ElementType() frontend.Type   { return typ{t: t.t.ArrayElementType()} }
func (t typ) ArraySize() int64             { return t.t.ArraySize() }
func (t typ) ResultType() frontend.Type    { return typ{t: t.t.ResultType()} }
func (t typ) Key() any                     { return t.t }

func cursorKind(k clang.CursorKind) frontend.CursorKind {
	switch k {
	case clang.Cursor_TranslationUnit:
		return frontend.CursorTranslationUnit
	case clang.Cursor_StructDecl:
		return frontend.CursorStructDecl
	case clang.Cursor_UnionDecl:
		return frontend.CursorUnionDecl
	case clang.Cursor_EnumDecl:
		return frontend.CursorEnumDecl
	case clang.Cursor_EnumConstantDecl:
		return frontend.CursorEnumConstantDecl
	case clang.Cursor_FieldDecl:
		return frontend.CursorFieldDecl
	case clang.Cursor_FunctionDecl:
		return frontend.CursorFunctionDecl
	case clang.Cursor_ParmDecl:
		return frontend.CursorParmDecl
	case clang.Cursor_TypedefDecl:
		return frontend.CursorTypedefDecl
	case clang.Cursor_VarDecl:
		return frontend.CursorVarDecl
	case clang.Cursor_TypeRef:
		return frontend.CursorTypeRef
	case clang.Cursor_MacroDefinition:
		return frontend.CursorMacroDefinition
	case clang.Cursor_MacroExpansion:
		return frontend.CursorMacroExpansion
	case clang.Cursor_InclusionDirective:
		return frontend.CursorInclusionDirective
	}
	if k.IsExpression() {
		return frontend.CursorExpression
	}
	return frontend.CursorOther
}

var typeKinds = map[clang.TypeKind]frontend.TypeKind{
	clang.Type_Invalid:         frontend.TypeInvalid,
	clang.Type_Unexposed:       frontend.TypeUnexposed,
	clang.Type_Void:            frontend.TypeVoid,
	clang.Type_Bool:            frontend.TypeBool,
	clang.Type_Char_U:          frontend.TypeCharU,
	clang.Type_UChar:           frontend.TypeUChar,
	clang.Type_Char16:          frontend.TypeChar16,
	clang.Type_Char32:          frontend.TypeChar32,
	clang.Type_UShort:          frontend.TypeUShort,
	clang.Type_UInt:            frontend.TypeUInt,
	clang.Type_ULong:           frontend.TypeULong,
	clang.Type_ULongLong:       frontend.TypeULongLong,
	clang.Type_UInt128:         frontend.TypeUInt128,
	clang.Type_Char_S:          frontend.TypeCharS,
	clang.Type_SChar:           frontend.TypeSChar,
	clang.Type_WChar:           frontend.TypeWChar,
	clang.Type_Short:           frontend.TypeShort,
	clang.Type_Int:             frontend.TypeInt,
	clang.Type_Long:            frontend.TypeLong,
	clang.Type_LongLong:        frontend.TypeLongLong,
	clang.Type_Int128:          frontend.TypeInt128,
	clang.Type_Float:           frontend.TypeFloat,
	clang.Type_Double:          frontend.TypeDouble,
	clang.Type_LongDouble:      frontend.TypeLongDouble,
	clang.Type_NullPtr:         frontend.TypeNullPtr,
	clang.Type_Complex:         frontend.TypeComplex,
	clang.Type_Pointer:         frontend.TypePointer,
	clang.Type_BlockPointer:    frontend.TypeBlockPointer,
	clang.Type_Record:          frontend.TypeRecord,
	clang.Type_Enum:            frontend.TypeEnum,
	clang.Type_Typedef:         frontend.TypeTypedef,
	clang.Type_Elaborated:      frontend.TypeElaborated,
	clang.Type_FunctionNoProto: frontend.TypeFunctionNoProto,
	clang.Type_FunctionProto:   frontend.TypeFunctionProto,
	clang.Type_ConstantArray:   frontend.TypeConstantArray,
	clang.Type_IncompleteArray: frontend.TypeIncompleteArray,
	clang.Type_VariableArray:   frontend.TypeVariableArray,
	clang.Type_Vector:          frontend.TypeVector,
	clang.Type_Atomic:          frontend.TypeAtomic,
}

func typeKind(k clang.TypeKind) frontend.TypeKind {
	if kind, ok := typeKinds[k]; ok {
		return kind
	}
	return frontend.TypeOther
}

func tokenKind(k clang.TokenKind) frontend.TokenKind {
	switch k {
	case clang.Token_Keyword:
		return frontend.TokenKeyword
	case clang.Token_Identifier:
		return frontend.TokenIdentifier
	case clang.Token_Literal:
		return frontend.TokenLiteral
	case clang.Token_Comment:
		return frontend.TokenComment
	default:
		return frontend.TokenPunctuation
	}
}

func severity(s clang.DiagnosticSeverity) frontend.Severity {
	switch s {
	case clang.Diagnostic_Note:
		return frontend.SeverityNote
	case clang.Diagnostic_Warning:
		return frontend.SeverityWarning
	case clang.Diagnostic_Error:
		return frontend.SeverityError
	case clang.Diagnostic_Fatal:
		return frontend.SeverityFatal
	default:
		return frontend.SeverityIgnored
	}
}
