package model

import (
	"github.com/hashicorp/hcl/v2"
)

// Value is the tagged union over everything that can occupy a value position:
// a property, a constructor argument, a collection element, or a map entry
// key or value. Concrete kinds are Reference, NameReference, TypedString,
// Holder (a nested anonymous component), List, Array, Set, Map and Props.
type Value interface {
	valueNode()
}

// Reference is a placeholder for another component, looked up by name at
// resolution time. ToParent marks a reference into the enclosing parent
// context rather than the current one.
type Reference struct {
	Name     string
	ToParent bool
	Source   hcl.Range
}

func (*Reference) valueNode() {}

// NameReference carries a component name as a plain string token. Unlike
// Reference it is not resolved into an instance; it exists so the name can be
// validated against the registry before the container ever runs.
type NameReference struct {
	Name   string
	Source hcl.Range
}

func (*NameReference) valueNode() {}

// TypedString is a literal value held as raw text together with an optional
// target type name. Null distinguishes an explicit null literal from an empty
// string. SpecifiedTypeName records the type name written on the element
// itself, while TypeName may additionally have been inherited from an
// enclosing collection's element type hint.
type TypedString struct {
	Value             string
	Null              bool
	TypeName          string
	SpecifiedTypeName string
	Source            hcl.Range
}

func (*TypedString) valueNode() {}

// NullValue returns an explicit-null literal.
func NullValue(src hcl.Range) *TypedString {
	return &TypedString{Null: true, Source: src}
}

// List is an ordered sequence of values.
type List struct {
	ElementTypeName string
	MergeEnabled    bool
	Values          []Value
	Source          hcl.Range
}

func (*List) valueNode() {}

// Array is an ordered sequence destined for a fixed-size slot. It keeps the
// same shape as List; the distinction only matters to the resolution stage.
type Array struct {
	ElementTypeName string
	MergeEnabled    bool
	Values          []Value
	Source          hcl.Range
}

func (*Array) valueNode() {}

// Set is a collection without ordering guarantees at resolution time.
// Duplicate values are kept here; deduplication is a resolution concern.
type Set struct {
	ElementTypeName string
	MergeEnabled    bool
	Values          []Value
	Source          hcl.Range
}

func (*Set) valueNode() {}

// MapEntry is one key/value pair of a Map. Keys are value nodes themselves,
// not just strings: a key may be a literal, a reference, or a nested element.
type MapEntry struct {
	Key   Value
	Value Value
}

// Map is a keyed collection with declared key and value type hints.
type Map struct {
	KeyTypeName   string
	ValueTypeName string
	MergeEnabled  bool
	Entries       []MapEntry
	Source        hcl.Range
}

func (*Map) valueNode() {}

// Put inserts an entry, replacing the value of an existing equal key in place
// so that duplicate keys resolve last-wins while keeping first-insertion
// order.
func (m *Map) Put(key, value Value) {
	for i := range m.Entries {
		if valuesEqual(m.Entries[i].Key, key) {
			m.Entries[i].Value = value
			return
		}
	}
	m.Entries = append(m.Entries, MapEntry{Key: key, Value: value})
}

// PropsEntry is one key/value pair of a Props collection. Both sides are
// untyped string literals.
type PropsEntry struct {
	Key   *TypedString
	Value *TypedString
}

// Props is a string-keyed property map.
type Props struct {
	MergeEnabled bool
	Entries      []PropsEntry
	Source       hcl.Range
}

func (*Props) valueNode() {}

// Put inserts an entry last-wins by key text.
func (p *Props) Put(key, value *TypedString) {
	for i := range p.Entries {
		if p.Entries[i].Key.Value == key.Value {
			p.Entries[i].Value = value
			return
		}
	}
	p.Entries = append(p.Entries, PropsEntry{Key: key, Value: value})
}

// valuesEqual compares two value nodes for map-key identity. Only leaf kinds
// can match; collections and nested definitions are never considered equal
// keys.
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case *TypedString:
		bv, ok := b.(*TypedString)
		return ok && av.Value == bv.Value && av.Null == bv.Null && av.TypeName == bv.TypeName
	case *Reference:
		bv, ok := b.(*Reference)
		return ok && av.Name == bv.Name && av.ToParent == bv.ToParent
	case *NameReference:
		bv, ok := b.(*NameReference)
		return ok && av.Name == bv.Name
	default:
		return false
	}
}
