// Package typeres resolves declared type names on typed literals. Well-known
// keywords map to cty types so literal text can be checked for convertibility
// while the document is still being parsed; any other name is treated as an
// opaque user type and passed through untouched for the resolution stage to
// deal with.
package typeres

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Resolver maps type-name hints to cty types.
type Resolver struct{}

// New creates a Resolver.
func New() *Resolver {
	return &Resolver{}
}

// Resolve returns the cty type for a well-known type keyword. The second
// result is false for opaque user types. Collection keywords take the form
// list(string), set(number) or map(bool).
func (r *Resolver) Resolve(name string) (cty.Type, bool) {
	name = strings.TrimSpace(name)

	if open := strings.IndexByte(name, '('); open > 0 && strings.HasSuffix(name, ")") {
		elemName := name[open+1 : len(name)-1]
		elem, ok := r.Resolve(elemName)
		if !ok {
			return cty.NilType, false
		}
		switch name[:open] {
		case "list":
			return cty.List(elem), true
		case "set":
			return cty.Set(elem), true
		case "map":
			return cty.Map(elem), true
		}
		return cty.NilType, false
	}

	switch name {
	case "string":
		return cty.String, true
	case "number", "float":
		return cty.Number, true
	case "int":
		return cty.Number, true
	case "bool":
		return cty.Bool, true
	default:
		return cty.NilType, false
	}
}

// CheckTypeName validates that a declared implementation-type name can at
// least be looked up later: non-empty and free of whitespace. Nothing beyond
// that is checked; implementation types stay opaque to the parser.
func (r *Resolver) CheckTypeName(name string) error {
	if name == "" {
		return fmt.Errorf("empty type name")
	}
	if strings.ContainsAny(name, " \t\n\r") {
		return fmt.Errorf("type name %q contains whitespace", name)
	}
	return nil
}

// Validate checks that the raw literal text is convertible to the named type.
// Opaque type names always validate; they are somebody else's problem. An
// empty type name validates trivially.
func (r *Resolver) Validate(raw, typeName string) error {
	if typeName == "" {
		return nil
	}
	target, ok := r.Resolve(typeName)
	if !ok {
		return nil
	}
	if !target.IsPrimitiveType() {
		// Collection hints apply to the collection's elements, not to one
		// literal, so there is nothing to check here.
		return nil
	}

	converted, err := convert.Convert(cty.StringVal(raw), target)
	if err != nil {
		return fmt.Errorf("value %q is not convertible to type %q: %w", raw, typeName, err)
	}
	if typeName == "int" {
		bf := converted.AsBigFloat()
		if !bf.IsInt() {
			return fmt.Errorf("value %q is not convertible to type %q: fractional part", raw, typeName)
		}
	}
	return nil
}
