package model

import (
	"github.com/hashicorp/hcl/v2"
)

// ArgValue is one constructor argument: the value itself plus the optional
// declared type and parameter name used for matching at resolution time.
type ArgValue struct {
	Value    Value
	TypeName string
	Name     string
	Source   hcl.Range
}

// ConstructorArgs holds the constructor arguments of a definition. Arguments
// declared with an explicit index live in Indexed; the rest are positional
// and appended to Generic in document order.
type ConstructorArgs struct {
	Indexed map[int]*ArgValue
	Generic []*ArgValue
}

// HasIndexed reports whether an argument was already supplied for the index.
func (ca *ConstructorArgs) HasIndexed(index int) bool {
	_, ok := ca.Indexed[index]
	return ok
}

// AddIndexed stores an argument at an explicit index.
func (ca *ConstructorArgs) AddIndexed(index int, v *ArgValue) {
	if ca.Indexed == nil {
		ca.Indexed = make(map[int]*ArgValue)
	}
	ca.Indexed[index] = v
}

// AddGeneric appends a positional argument.
func (ca *ConstructorArgs) AddGeneric(v *ArgValue) {
	ca.Generic = append(ca.Generic, v)
}

// Count returns the total number of declared arguments.
func (ca *ConstructorArgs) Count() int {
	return len(ca.Indexed) + len(ca.Generic)
}

// Empty reports whether no arguments were declared.
func (ca *ConstructorArgs) Empty() bool {
	return ca.Count() == 0
}
