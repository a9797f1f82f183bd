package parser

import (
	"fmt"

	"github.com/vk/blueprint/internal/model"
	"github.com/vk/blueprint/internal/namegen"
	"github.com/vk/blueprint/internal/namespace"
	"github.com/vk/blueprint/internal/xmldoc"
)

// handlerContext builds the context handed to a namespace handler. The
// delegate itself serves as the handler's way back into component parsing.
func (d *Delegate) handlerContext(containing *model.ComponentDefinition) *namespace.Context {
	return &namespace.Context{
		Parser:     d,
		Containing: containing,
		Resource:   d.cfg.Resource,
	}
}

// ParseCustomElement routes an element outside the core namespace to its
// registered handler. A missing handler is an error regardless of URI: an
// element in an unhandled namespace cannot simply be skipped once somebody
// asked to parse it.
func (d *Delegate) ParseCustomElement(el *xmldoc.Element, containing *model.ComponentDefinition) *model.ComponentDefinition {
	handler, ok := d.cfg.Handlers.Resolve(el.Space)
	if !ok {
		d.error(fmt.Sprintf("Unable to locate namespace handler for schema namespace [%s]", el.Space), el)
		return nil
	}
	def, diags := handler.Parse(el, d.handlerContext(containing))
	d.cfg.Reporter.Append(diags)
	return def
}

// parseNestedCustomElement handles a foreign element occupying a value
// position. The produced definition is wrapped in a holder with a
// synthesized name; producing nothing there is an error, since the position
// requires exactly one value.
func (d *Delegate) parseNestedCustomElement(el *xmldoc.Element, containing *model.ComponentDefinition) (model.Value, bool) {
	def := d.ParseCustomElement(el, containing)
	if def == nil {
		d.error(fmt.Sprintf("Incorrect usage of element %q in a nested manner: this element cannot be used inside a value position", el.Local), el)
		return nil, false
	}
	id := el.Local + namegen.Separator + namegen.IdentityToken()
	d.cfg.Logger.Debug("Using generated name for nested custom element.",
		"name", id, "element", el.Local)
	return model.NewHolder(def, id), true
}

// DecorateIfRequired runs the decoration pass over a fully-parsed
// declaration: once for every foreign attribute, then once for every foreign
// child element, in document order. Each call may wrap or replace the
// holder.
func (d *Delegate) DecorateIfRequired(el *xmldoc.Element, holder *model.Holder, containing *model.ComponentDefinition) *model.Holder {
	final := holder

	for i := range el.Attrs {
		attr := &el.Attrs[i]
		if !IsCoreNamespace(attr.Space) {
			final = d.decorateNode(namespace.Node{Attr: attr}, final, containing)
		}
	}
	for _, child := range el.Children {
		if !IsCoreNamespace(child.Space) {
			final = d.decorateNode(namespace.Node{Element: child}, final, containing)
		}
	}
	return final
}

// decorateNode applies one decoration. An unresolved namespace under the
// core schema root is an error; any other unresolved namespace is foreign
// noise and skipped with a note.
func (d *Delegate) decorateNode(node namespace.Node, holder *model.Holder, containing *model.ComponentDefinition) *model.Holder {
	var uri string
	if node.Attr != nil {
		uri = node.Attr.Space
	} else {
		uri = node.Element.Space
	}

	handler, ok := d.cfg.Handlers.Resolve(uri)
	if !ok {
		if isCoreSchemaRooted(uri) {
			d.cfg.Reporter.Error(
				fmt.Sprintf("Unable to locate namespace handler for schema namespace [%s]", uri),
				d.state.String(), node.Range())
		} else {
			d.cfg.Logger.Debug("No namespace handler found, skipping.", "uri", uri)
		}
		return holder
	}

	decorated, diags := handler.Decorate(node, holder, d.handlerContext(containing))
	d.cfg.Reporter.Append(diags)
	if decorated != nil {
		return decorated
	}
	return holder
}
