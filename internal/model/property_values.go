package model

import (
	"github.com/hashicorp/hcl/v2"
)

// PropertyValue is one property assignment of a definition.
type PropertyValue struct {
	Name   string
	Value  Value
	Meta   []MetaAttribute
	Source hcl.Range
}

// PropertyValues is the ordered set of property assignments of a definition.
// Property names are unique within one definition; the parser rejects a
// second assignment to the same name and keeps the first.
type PropertyValues struct {
	values []*PropertyValue
}

// Contains reports whether a property with the given name was already added.
func (pv *PropertyValues) Contains(name string) bool {
	return pv.Get(name) != nil
}

// Get returns the property with the given name, or nil.
func (pv *PropertyValues) Get(name string) *PropertyValue {
	for _, v := range pv.values {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Add appends a property assignment.
func (pv *PropertyValues) Add(v *PropertyValue) {
	pv.values = append(pv.values, v)
}

// All returns the assignments in declaration order.
func (pv *PropertyValues) All() []*PropertyValue {
	return pv.values
}

// Len returns the number of assignments.
func (pv *PropertyValues) Len() int {
	return len(pv.values)
}
