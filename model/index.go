package model

import (
	"ffigen/frontend"
	orderedmap "ffigen/ordered_map"
)

// TypeKey identifies an entity by the front-end type it declares.
type TypeKey struct{ id any }

// CursorKey identifies a free function by its declaring cursor.
type CursorKey struct{ id any }

// MacroKey identifies a constant by the raw macro name.
type MacroKey string

// KeyOfType returns the index key for t.
func KeyOfType(t frontend.Type) TypeKey {
	return TypeKey{id: t.Key()}
}

// KeyOfCursor returns the index key for c.
func KeyOfCursor(c frontend.Cursor) CursorKey {
	return CursorKey{id: c.Key()}
}

// Entry is one key/entity pair of an Index.
type Entry struct {
	Key    any
	Entity Entity
}

// Index maps declaration identity to the entity built for it. Entities are
// never copied: a placeholder that gets upgraded stays the same object, so
// earlier references to it remain valid. Iteration follows the order in
// which declarations were completed.
type Index struct {
	entries *orderedmap.OrderedMap[any, Entity]
}

func NewIndex() *Index {
	return &Index{entries: orderedmap.NewOrderedMap[any, Entity]()}
}

// Lookup returns the entity stored under key.
func (x *Index) Lookup(key any) (Entity, bool) {
	return x.entries.Get(key)
}

// Set stores e under key, replacing any previous entity.
func (x *Index) Set(key any, e Entity) {
	x.entries.Set(key, e)
}

// Add stores e only when key is free and reports whether it did.
func (x *Index) Add(key any, e Entity) bool {
	return x.entries.SetIfAbsent(key, e)
}

// Upgrade stores e under key and moves the key to the end of the
// iteration order, where a completed definition belongs.
func (x *Index) Upgrade(key any, e Entity) {
	x.entries.Set(key, e)
	x.entries.MoveToBack(key)
}

// Record returns the struct or union stored under key, or nil.
func (x *Index) Record(key any) *StructOrUnion {
	e, _ := x.entries.Get(key)
	s, _ := e.(*StructOrUnion)
	return s
}

// Type returns the entity under key when it is usable as a Type.
func (x *Index) Type(key any) (Type, bool) {
	e, ok := x.entries.Get(key)
	if !ok {
		return nil, false
	}
	t, ok := e.(Type)
	return t, ok
}

func (x *Index) Len() int {
	return x.entries.Len()
}

// Entries returns every key/entity pair in order.
func (x *Index) Entries() []Entry {
	keys := x.entries.Keys()
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		e, _ := x.entries.Get(k)
		out = append(out, Entry{Key: k, Entity: e})
	}
	return out
}

// Entities returns the entities in order.
func (x *Index) Entities() []Entity {
	return x.entries.Values()
}

func (x *Index) Records() []*StructOrUnion {
	var out []*StructOrUnion
	for _, e := range x.entries.Values() {
		if s, ok := e.(*StructOrUnion); ok {
			out = append(out, s)
		}
	}
	return out
}

func (x *Index) Enums() []*Enum {
	var out []*Enum
	for _, e := range x.entries.Values() {
		if en, ok := e.(*Enum); ok {
			out = append(out, en)
		}
	}
	return out
}

// Functions returns free functions and callbacks in order.
func (x *Index) Functions() []*Function {
	var out []*Function
	for _, e := range x.entries.Values() {
		if f, ok := e.(*Function); ok {
			out = append(out, f)
		}
	}
	return out
}

func (x *Index) Constants() []*Constant {
	var out []*Constant
	for _, e := range x.entries.Values() {
		if c, ok := e.(*Constant); ok {
			out = append(out, c)
		}
	}
	return out
}
