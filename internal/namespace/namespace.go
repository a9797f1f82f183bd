// Package namespace provides the extension mechanism for vocabulary outside
// the core schema. Elements and attributes in a foreign namespace are routed
// to a Handler registered for that namespace URI; a handler either parses an
// element into a full component definition or decorates an already-parsed
// definition with cross-cutting behavior.
package namespace

import (
	"fmt"
	"log/slog"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/blueprint/internal/model"
	"github.com/vk/blueprint/internal/xmldoc"
)

// ComponentParser is the slice of the core parser a handler may call back
// into, typically to parse a nested component element inside its own
// vocabulary. Errors are accumulated on the parser's reporter; a nil holder
// means the declaration was abandoned.
type ComponentParser interface {
	ParseComponentElement(el *xmldoc.Element, containing *model.ComponentDefinition) *model.Holder
}

// Context is handed to a handler on every call.
type Context struct {
	Parser     ComponentParser
	Containing *model.ComponentDefinition

	// Resource names the document being parsed.
	Resource string
}

// Node is the subject of a decoration call: exactly one of Attr or Element is
// set, depending on whether a foreign attribute or a foreign child element
// triggered the decoration.
type Node struct {
	Attr    *xmldoc.Attr
	Element *xmldoc.Element
}

// Range returns the source range of whichever node kind is set.
func (n Node) Range() hcl.Range {
	if n.Attr != nil {
		return n.Attr.Range
	}
	return n.Element.DefRange
}

// Handler parses and decorates definitions for one namespace URI.
type Handler interface {
	// Parse turns a foreign element into a component definition. A nil
	// definition with empty diagnostics means the handler produced nothing,
	// which is legal at the document level but an error in a value position.
	Parse(el *xmldoc.Element, ctx *Context) (*model.ComponentDefinition, hcl.Diagnostics)

	// Decorate may wrap or replace the holder of a fully-parsed definition.
	// Returning nil leaves the original holder in place.
	Decorate(node Node, holder *model.Holder, ctx *Context) (*model.Holder, hcl.Diagnostics)
}

// Registry resolves namespace URIs to their registered handlers.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds a handler to a namespace URI. Double registration of one URI
// is a programming error.
func (r *Registry) Register(uri string, h Handler) {
	if _, exists := r.handlers[uri]; exists {
		panic(fmt.Sprintf("namespace handler for %q already registered", uri))
	}
	slog.Debug("Registering namespace handler.", "uri", uri)
	r.handlers[uri] = h
}

// Resolve returns the handler for the URI, if any.
func (r *Registry) Resolve(uri string) (Handler, bool) {
	h, ok := r.handlers[uri]
	return h, ok
}
