package frontend

// CursorKind is the kind of declaration a cursor stands for. Only the
// kinds the reader dispatches on are named; everything else is CursorOther.
type CursorKind int

const (
	CursorOther CursorKind = iota
	CursorTranslationUnit
	CursorStructDecl
	CursorUnionDecl
	CursorEnumDecl
	CursorEnumConstantDecl
	CursorFieldDecl
	CursorFunctionDecl
	CursorParmDecl
	CursorTypedefDecl
	CursorVarDecl
	CursorTypeRef
	CursorMacroDefinition
	CursorMacroExpansion
	CursorInclusionDirective
	CursorExpression
)

var cursorKindNames = map[CursorKind]string{
	CursorOther:              "Other",
	CursorTranslationUnit:    "TranslationUnit",
	CursorStructDecl:         "StructDecl",
	CursorUnionDecl:          "UnionDecl",
	CursorEnumDecl:           "EnumDecl",
	CursorEnumConstantDecl:   "EnumConstantDecl",
	CursorFieldDecl:          "FieldDecl",
	CursorFunctionDecl:       "FunctionDecl",
	CursorParmDecl:           "ParmDecl",
	CursorTypedefDecl:        "TypedefDecl",
	CursorVarDecl:            "VarDecl",
	CursorTypeRef:            "TypeRef",
	CursorMacroDefinition:    "MacroDefinition",
	CursorMacroExpansion:     "MacroExpansion",
	CursorInclusionDirective: "InclusionDirective",
	CursorExpression:         "Expression",
}

func (k CursorKind) String() string {
	if s, ok := cursorKindNames[k]; ok {
		return s
	}
	return "Other"
}

// IsRecord reports whether k declares a struct or union.
func (k CursorKind) IsRecord() bool {
	return k == CursorStructDecl || k == CursorUnionDecl
}

// TypeKind mirrors the libclang type kinds the resolver cares about.
type TypeKind int

const (
	TypeInvalid TypeKind = iota
	TypeUnexposed
	TypeVoid
	TypeBool
	TypeCharU
	TypeUChar
	TypeChar16
	TypeChar32
	TypeUShort
	TypeUInt
	TypeULong
	TypeULongLong
	TypeUInt128
	TypeCharS
	TypeSChar
	TypeWChar
	TypeShort
	TypeInt
	TypeLong
	TypeLongLong
	TypeInt128
	TypeFloat
	TypeDouble
	TypeLongDouble
	TypeNullPtr
	TypeComplex
	TypePointer
	TypeBlockPointer
	TypeRecord
	TypeEnum
	TypeTypedef
	TypeElaborated
	TypeFunctionNoProto
	TypeFunctionProto
	TypeConstantArray
	TypeIncompleteArray
	TypeVariableArray
	TypeVector
	TypeAtomic
	TypeOther
)

// Spellings follow clang_getTypeKindSpelling so generated pointer names
// match what libclang would report.
var typeKindNames = map[TypeKind]string{
	TypeInvalid:         "Invalid",
	TypeUnexposed:       "Unexposed",
	TypeVoid:            "Void",
	TypeBool:            "Bool",
	TypeCharU:           "Char_U",
	TypeUChar:           "UChar",
	TypeChar16:          "Char16",
	TypeChar32:          "Char32",
	TypeUShort:          "UShort",
	TypeUInt:            "UInt",
	TypeULong:           "ULong",
	TypeULongLong:       "ULongLong",
	TypeUInt128:         "UInt128",
	TypeCharS:           "Char_S",
	TypeSChar:           "SChar",
	TypeWChar:           "WChar",
	TypeShort:           "Short",
	TypeInt:             "Int",
	TypeLong:            "Long",
	TypeLongLong:        "LongLong",
	TypeInt128:          "Int128",
	TypeFloat:           "Float",
	TypeDouble:          "Double",
	TypeLongDouble:      "LongDouble",
	TypeNullPtr:         "NullPtr",
	TypeComplex:         "Complex",
	TypePointer:         "Pointer",
	TypeBlockPointer:    "BlockPointer",
	TypeRecord:          "Record",
	TypeEnum:            "Enum",
	TypeTypedef:         "Typedef",
	TypeElaborated:      "Elaborated",
	TypeFunctionNoProto: "FunctionNoProto",
	TypeFunctionProto:   "FunctionProto",
	TypeConstantArray:   "ConstantArray",
	TypeIncompleteArray: "IncompleteArray",
	TypeVariableArray:   "VariableArray",
	TypeVector:          "Vector",
	TypeAtomic:          "Atomic",
	TypeOther:           "Other",
}

func (k TypeKind) String() string {
	if s, ok := typeKindNames[k]; ok {
		return s
	}
	return "Other"
}

// IsPrimitive reports whether k maps directly onto a primitive binding type.
func (k TypeKind) IsPrimitive() bool {
	switch k {
	case TypeVoid, TypeBool,
		TypeCharU, TypeUChar, TypeUShort, TypeUInt, TypeULong, TypeULongLong,
		TypeCharS, TypeSChar, TypeShort, TypeInt, TypeLong, TypeLongLong,
		TypeFloat, TypeDouble, TypeLongDouble:
		return true
	}
	return false
}

// IsChar reports whether k is plain char, whichever signedness the target uses.
func (k TypeKind) IsChar() bool {
	return k == TypeCharS || k == TypeCharU
}

// TokenKind is the lexical class of a Token.
type TokenKind int

const (
	TokenPunctuation TokenKind = iota
	TokenKeyword
	TokenIdentifier
	TokenLiteral
	TokenComment
)

func (k TokenKind) String() string {
	switch k {
	case TokenPunctuation:
		return "Punctuation"
	case TokenKeyword:
		return "Keyword"
	case TokenIdentifier:
		return "Identifier"
	case TokenLiteral:
		return "Literal"
	case TokenComment:
		return "Comment"
	}
	return "Unknown"
}
