package model

import (
	"github.com/hashicorp/hcl/v2"
)

// LookupOverride declares that calls to a method are answered by looking up
// a named component from the container instead of running the method body.
type LookupOverride struct {
	Method    string
	Component string
	Source    hcl.Range
}

// ReplaceOverride declares that a method implementation is swapped for the
// named replacer component. TypeIdentifiers disambiguate overloaded methods
// by argument type fragments.
type ReplaceOverride struct {
	Method          string
	Replacer        string
	TypeIdentifiers []string
	Source          hcl.Range
}

// MethodOverrides collects the method-override declarations of a definition.
type MethodOverrides struct {
	Lookups  []LookupOverride
	Replaced []ReplaceOverride
}

// Empty reports whether no overrides were declared.
func (mo *MethodOverrides) Empty() bool {
	return len(mo.Lookups) == 0 && len(mo.Replaced) == 0
}
