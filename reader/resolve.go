package reader

import (
	"fmt"
	"strings"

	"ffigen/frontend"
	"ffigen/model"
	"ffigen/name"
)

// Resolver maps front-end types onto model types, consulting the index for
// records, enums and callbacks that have already been read.
type Resolver struct {
	index    *model.Index
	prefixes []string
}

func NewResolver(index *model.Index, prefixes []string) *Resolver {
	return &Resolver{index: index, prefixes: prefixes}
}

// Resolve dispatches on the canonical form of t. The sugared t is kept for
// naming pointers and for finding callbacks registered under a typedef.
func (r *Resolver) Resolve(t frontend.Type) (model.Type, error) {
	canonical := t.Canonical()
	kind := canonical.Kind()

	switch {
	case kind.IsPrimitive():
		return model.Primitive{Kind: kind}, nil

	case kind == frontend.TypePointer:
		if resolved := r.pointee(t, canonical.Pointee()); resolved != nil {
			return resolved, nil
		}
		return r.pointer(t), nil

	case kind == frontend.TypeRecord:
		if inner, ok := r.index.Type(declKey(canonical)); ok {
			return model.ByValue{Inner: inner}, nil
		}
		return model.Unknown{}, nil

	case kind == frontend.TypeEnum:
		if enum, ok := r.index.Type(declKey(canonical)); ok {
			return enum, nil
		}
		return model.Unknown{}, nil

	case kind == frontend.TypeConstantArray:
		elem, err := r.Resolve(canonical.ElementType())
		if err != nil {
			return nil, err
		}
		return model.ConstantArray{Element: elem, Length: canonical.ArraySize()}, nil

	case kind == frontend.TypeUnexposed:
		return model.Unknown{}, nil

	default:
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, kind, t.Spelling())
	}
}

// pointee resolves what a pointer points to when the index or the pointee
// kind says so, and returns nil when the generic pointer rules apply.
func (r *Resolver) pointee(full, pointee frontend.Type) model.Type {
	if pointee.Kind().IsChar() {
		return model.String{}
	}
	switch pointee.Kind() {
	case frontend.TypeRecord:
		if t, ok := r.index.Type(declKey(pointee)); ok {
			return t
		}
	case frontend.TypeFunctionProto, frontend.TypeFunctionNoProto:
		if t, ok := r.index.Type(model.KeyOfType(full)); ok {
			return t
		}
		// Fn *cb where Fn is a typedef of the function type itself
		if full.Kind() == frontend.TypePointer {
			if t, ok := r.index.Type(model.KeyOfType(full.Pointee())); ok {
				return t
			}
		}
	}
	return nil
}

// pointer walks pointer levels of the sugared type until it reaches a type
// with a named declaration. Anything else is named after its type kind.
func (r *Resolver) pointer(t frontend.Type) model.Pointer {
	depth := 0
	current := t
	for {
		pointee := name.Tokenize(current.Declaration().Spelling(), r.prefixes)
		if !pointee.IsEmpty() {
			return model.Pointer{Pointee: pointee, Depth: depth}
		}
		if current.Kind() != frontend.TypePointer {
			return model.Pointer{Pointee: kindName(current.Kind()), Depth: depth}
		}
		depth++
		current = current.Pointee()
	}
}

// PointeeRecord follows one or more pointer levels of t and returns the
// struct or union at the end, if it has been read.
func (r *Resolver) PointeeRecord(t frontend.Type) *model.StructOrUnion {
	current := t.Canonical()
	if current.Kind() != frontend.TypePointer {
		return nil
	}
	for current.Kind() == frontend.TypePointer {
		current = current.Pointee()
	}
	if current.Kind() != frontend.TypeRecord {
		return nil
	}
	return r.index.Record(declKey(current))
}

// declKey keys records and enums by the type of their declaring cursor, so
// qualified and elaborated spellings of one type share an entry.
func declKey(t frontend.Type) model.TypeKey {
	if decl := t.Declaration(); !decl.IsNull() {
		return model.KeyOfType(decl.Type())
	}
	return model.KeyOfType(t)
}

func kindName(k frontend.TypeKind) name.Name {
	spelling := k.String()
	n := name.New(strings.Split(spelling, "_")...)
	n.Raw = spelling
	return n
}
