package parser

import (
	"github.com/hashicorp/hcl/v2"

	"github.com/vk/blueprint/internal/xmldoc"
)

// Defaults is the effective set of scope defaults for one definition scope.
// Values are kept as raw attribute text so the "default" sentinel written on
// an individual component can still fall through to them unchanged.
type Defaults struct {
	LazyInit string
	Merge    string
	Autowire string

	// AutowireCandidates is a comma-separated pattern list; empty means no
	// pattern filtering was configured anywhere up the scope chain.
	AutowireCandidates string

	InitMethod    string
	DestroyMethod string

	Source hcl.Range
}

// resolveDefaults computes the effective defaults for the scope opened by the
// given scope element. Each attribute resolves independently: a local value
// wins unless it is absent or the "default" sentinel, then the parent scope's
// resolved value applies, then the built-in root defaults. This is a pure
// merge with no error conditions.
func resolveDefaults(scopeEl *xmldoc.Element, parent *Defaults) Defaults {
	d := Defaults{Source: scopeEl.DefRange}

	lazyInit := scopeEl.AttrValue(defaultLazyInitAttr)
	if isDefaultValue(lazyInit) {
		lazyInit = falseUnlessParent(parent, func(p *Defaults) string { return p.LazyInit })
	}
	d.LazyInit = lazyInit

	merge := scopeEl.AttrValue(defaultMergeAttr)
	if isDefaultValue(merge) {
		merge = falseUnlessParent(parent, func(p *Defaults) string { return p.Merge })
	}
	d.Merge = merge

	autowire := scopeEl.AttrValue(defaultAutowireAttr)
	if isDefaultValue(autowire) {
		autowire = autowireNoValue
		if parent != nil {
			autowire = parent.Autowire
		}
	}
	d.Autowire = autowire

	if v, ok := scopeEl.Attr(defaultAutowireCandidatesAttr); ok {
		d.AutowireCandidates = v
	} else if parent != nil {
		d.AutowireCandidates = parent.AutowireCandidates
	}

	if v, ok := scopeEl.Attr(defaultInitMethodAttr); ok {
		d.InitMethod = v
	} else if parent != nil {
		d.InitMethod = parent.InitMethod
	}

	if v, ok := scopeEl.Attr(defaultDestroyMethodAttr); ok {
		d.DestroyMethod = v
	} else if parent != nil {
		d.DestroyMethod = parent.DestroyMethod
	}

	return d
}

func falseUnlessParent(parent *Defaults, get func(*Defaults) string) string {
	if parent != nil {
		return get(parent)
	}
	return "false"
}

// isDefaultValue reports whether an attribute value asks for scope-default
// fallback: either absent or the literal "default" sentinel.
func isDefaultValue(v string) bool {
	return v == "" || v == defaultValue
}
