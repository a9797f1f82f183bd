// Package parser implements the core of the configuration pipeline: a
// recursive-descent parse of component-declaration elements into the
// normalized definition model. One Delegate is bound to exactly one
// definition scope; nested scope blocks get fresh Delegates that inherit the
// parent's resolved defaults but keep their own name-uniqueness domain.
package parser

import (
	"log/slog"
	"strings"

	"github.com/vk/blueprint/internal/namegen"
	"github.com/vk/blueprint/internal/namespace"
	"github.com/vk/blueprint/internal/typeres"
	"github.com/vk/blueprint/internal/xmldoc"
)

// Config carries the collaborators a Delegate parses against. Zero fields
// are replaced with working defaults so tests can construct minimal
// delegates.
type Config struct {
	// Resource names the document being parsed; it is stamped onto every
	// produced definition.
	Resource string

	Reporter *Reporter
	Handlers *namespace.Registry
	Types    *typeres.Resolver
	Names    *namegen.Generator

	// Used tracks names taken registry-wide, consulted when generating
	// names. May be nil.
	Used namegen.NameUser

	Logger *slog.Logger
}

// Delegate is a stateful parser bound to a single definition scope. It is
// not safe for concurrent use and is not meant to be reused across
// documents.
type Delegate struct {
	cfg      Config
	defaults Defaults

	// usedNames enforces name uniqueness among sibling declarations of this
	// scope only; nested scopes own a fresh set.
	usedNames map[string]struct{}

	state parseState
}

// New creates a Delegate for a fresh document scope. Call InitDefaults with
// the scope element before parsing declarations.
func New(cfg Config) *Delegate {
	if cfg.Reporter == nil {
		cfg.Reporter = NewReporter()
	}
	if cfg.Handlers == nil {
		cfg.Handlers = namespace.NewRegistry()
	}
	if cfg.Types == nil {
		cfg.Types = typeres.New()
	}
	if cfg.Names == nil {
		cfg.Names = namegen.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Delegate{
		cfg:       cfg,
		usedNames: make(map[string]struct{}),
	}
}

// NewNested creates the Delegate for a nested scope block. It shares every
// collaborator, including the reporter and name generator, but owns a fresh
// used-name set: duplicate names are only illegal among siblings of one
// scope.
func (d *Delegate) NewNested(scopeEl *xmldoc.Element) *Delegate {
	nested := New(d.cfg)
	nested.defaults = resolveDefaults(scopeEl, &d.defaults)
	nested.cfg.Logger.Debug("Defaults established for nested scope.",
		"lazy-init", nested.defaults.LazyInit,
		"merge", nested.defaults.Merge,
		"autowire", nested.defaults.Autowire)
	return nested
}

// InitDefaults resolves the scope defaults from the root scope element,
// with no parent scope to inherit from.
func (d *Delegate) InitDefaults(root *xmldoc.Element) {
	d.defaults = resolveDefaults(root, nil)
	d.cfg.Logger.Debug("Defaults established for document scope.",
		"lazy-init", d.defaults.LazyInit,
		"merge", d.defaults.Merge,
		"autowire", d.defaults.Autowire)
}

// Defaults returns the scope's resolved defaults snapshot.
func (d *Delegate) Defaults() Defaults {
	return d.defaults
}

// Reporter returns the problem reporter this delegate writes to.
func (d *Delegate) Reporter() *Reporter {
	return d.cfg.Reporter
}

// error reports a problem at the element's location, stamped with the
// current parse-state path.
func (d *Delegate) error(summary string, el *xmldoc.Element) {
	d.cfg.Reporter.Error(summary, d.state.String(), el.DefRange)
}

// isCandidate reports whether a child element should be handled by the core
// pass over the parent: core-namespace children always are, and foreign
// children only when the parent element is itself foreign. Foreign content
// under a core parent belongs to its namespace handler alone and must not be
// double-processed here.
func (d *Delegate) isCandidate(parent, child *xmldoc.Element) bool {
	return IsCoreNamespace(child.Space) || !IsCoreNamespace(parent.Space)
}

// tokenize splits a multi-value attribute on commas, semicolons and
// whitespace, dropping empty tokens.
func tokenize(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool {
		return strings.ContainsRune(multiValueDelimiters, r)
	})
}

// simpleMatch checks a name against a pattern supporting a leading and/or
// trailing "*" wildcard, the same scheme the autowire-candidate pattern list
// uses.
func simpleMatch(pattern, name string) bool {
	switch {
	case pattern == "*":
		return true
	case strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") && len(pattern) >= 2:
		return strings.Contains(name, pattern[1:len(pattern)-1])
	case strings.HasPrefix(pattern, "*"):
		return strings.HasSuffix(name, pattern[1:])
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(name, pattern[:len(pattern)-1])
	default:
		return pattern == name
	}
}

// matchesAny checks a name against a comma-separated pattern list.
func matchesAny(patterns string, name string) bool {
	for _, p := range strings.Split(patterns, ",") {
		if simpleMatch(strings.TrimSpace(p), name) {
			return true
		}
	}
	return false
}
