package model

import (
	"github.com/hashicorp/hcl/v2"
)

// AutowireMode selects how unresolved dependencies of a component are wired
// by the container.
type AutowireMode int

const (
	AutowireNo AutowireMode = iota
	AutowireByName
	AutowireByType
	AutowireConstructor
	AutowireAutodetect
)

func (m AutowireMode) String() string {
	switch m {
	case AutowireByName:
		return "by-name"
	case AutowireByType:
		return "by-type"
	case AutowireConstructor:
		return "constructor"
	case AutowireAutodetect:
		return "autodetect"
	default:
		return "no"
	}
}

// ComponentDefinition is the normalized result of parsing one component
// declaration. It is populated field by field while the declaration's element
// is open and must not be mutated once the parser has returned it.
type ComponentDefinition struct {
	// TypeName is the implementation type, kept as an opaque name. ParentName
	// points at a template definition instead; at least one of the two is
	// required.
	TypeName   string
	ParentName string

	Scope    string
	Abstract bool
	LazyInit bool
	Autowire AutowireMode

	// AutowireCandidate marks the component as eligible for by-type wiring
	// into others. Defaults to true.
	AutowireCandidate bool
	Primary           bool

	DependsOn []string

	// InitMethod and DestroyMethod are lifecycle hook names. The Enforce
	// flags record whether the name was written on the declaration itself;
	// names supplied by scope defaults are not enforced, and the container
	// suppresses missing-method errors for them.
	InitMethod           string
	EnforceInitMethod    bool
	DestroyMethod        string
	EnforceDestroyMethod bool

	FactoryMethod    string
	FactoryComponent string

	Description string

	ConstructorArgs ConstructorArgs
	Properties      PropertyValues
	Overrides       MethodOverrides
	Qualifiers      []*Qualifier
	Meta            []MetaAttribute

	// Source is the range of the declaration element; Resource names the
	// document the declaration came from.
	Source   hcl.Range
	Resource string
}

// NewComponentDefinition creates a definition for the given implementation
// type and parent template names, either of which may be empty.
func NewComponentDefinition(typeName, parentName string) *ComponentDefinition {
	return &ComponentDefinition{
		TypeName:             typeName,
		ParentName:           parentName,
		AutowireCandidate:    true,
		EnforceInitMethod:    true,
		EnforceDestroyMethod: true,
	}
}

// MetaAttribute is an arbitrary key/value annotation attached to a definition
// or an individual property.
type MetaAttribute struct {
	Key    string
	Value  string
	Source hcl.Range
}

// Qualifier narrows autowire candidate resolution for this component. Its
// type name is required; Value and Attributes carry matching metadata.
type Qualifier struct {
	TypeName   string
	Value      string
	Attributes []MetaAttribute
	Source     hcl.Range
}
