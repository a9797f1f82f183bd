package parser

import (
	"fmt"
	"strings"

	"github.com/vk/blueprint/internal/model"
	"github.com/vk/blueprint/internal/xmldoc"
)

// parseValueSource extracts the value of a property or constructor-arg
// container element. The value comes from exactly one of: a 'ref' attribute,
// a 'value' attribute, or a single child element that is neither a
// description nor a meta annotation. Precedence when several survive
// validation: reference, then literal, then child element.
func (d *Delegate) parseValueSource(el *xmldoc.Element, containing *model.ComponentDefinition, propertyName string) (model.Value, bool) {
	elementName := "'constructor-arg' element"
	if propertyName != "" {
		elementName = fmt.Sprintf("'property' element for property %q", propertyName)
	}

	var sub *xmldoc.Element
	for _, child := range el.Children {
		if child.Local == DescriptionElement || child.Local == metaElement {
			continue
		}
		if sub != nil {
			d.error(elementName+" must not contain more than one sub-element", el)
		} else {
			sub = child
		}
	}

	hasRef := el.HasAttr(refAttr)
	hasValue := el.HasAttr(valueAttr)
	if (hasRef && hasValue) || ((hasRef || hasValue) && sub != nil) {
		d.error(elementName+" is only allowed to contain either a 'ref' attribute OR a 'value' attribute OR a sub-element", el)
	}

	switch {
	case hasRef:
		refName := el.AttrValue(refAttr)
		if strings.TrimSpace(refName) == "" {
			d.error(elementName+" contains empty 'ref' attribute", el)
			return nil, false
		}
		return &model.Reference{Name: refName, Source: el.DefRange}, true

	case hasValue:
		return d.buildTypedString(el.AttrValue(valueAttr), el.AttrValue(typeAttr), "", el), true

	case sub != nil:
		return d.parseValueSubElement(sub, containing, "")

	default:
		d.error(elementName+" must specify a ref or value", el)
		return nil, false
	}
}

// parseValueSubElement parses a single value sub-element: a nested component,
// a reference, a literal, an explicit null, or a collection. Elements outside
// the core namespace are delegated whole to their namespace handler.
func (d *Delegate) parseValueSubElement(el *xmldoc.Element, containing *model.ComponentDefinition, defaultTypeName string) (model.Value, bool) {
	if !IsCoreNamespace(el.Space) {
		return d.parseNestedCustomElement(el, containing)
	}

	switch valueKinds[el.Local] {
	case kindComponent:
		holder := d.ParseComponentElement(el, containing)
		if holder == nil {
			return nil, false
		}
		holder = d.DecorateIfRequired(el, holder, containing)
		return holder, true

	case kindRef:
		refName := el.AttrValue(componentRefAttr)
		toParent := false
		if refName == "" {
			// A reference into the parent context rather than this one.
			refName = el.AttrValue(parentRefAttr)
			toParent = true
			if refName == "" {
				d.error("'component' or 'parent' is required for 'ref' element", el)
				return nil, false
			}
		}
		if strings.TrimSpace(refName) == "" {
			d.error("'ref' element contains empty target attribute", el)
			return nil, false
		}
		return &model.Reference{Name: refName, ToParent: toParent, Source: el.DefRange}, true

	case kindIdref:
		return d.parseIdRefElement(el)

	case kindValue:
		return d.parseValueElement(el, defaultTypeName), true

	case kindNull:
		return model.NullValue(el.DefRange), true

	case kindArray:
		return d.parseArrayElement(el, containing), true

	case kindList:
		return d.parseListElement(el, containing), true

	case kindSet:
		return d.parseSetElement(el, containing), true

	case kindMap:
		return d.parseMapElement(el, containing), true

	case kindProps:
		return d.parsePropsElement(el), true

	default:
		d.error(fmt.Sprintf("Unknown value sub-element: [%s]", el.Local), el)
		return nil, false
	}
}

// parseIdRefElement parses an idref element: a component name carried as a
// validated string token rather than an injectable reference.
func (d *Delegate) parseIdRefElement(el *xmldoc.Element) (model.Value, bool) {
	refName := el.AttrValue(componentRefAttr)
	if refName == "" {
		d.error("'component' is required for 'idref' element", el)
		return nil, false
	}
	if strings.TrimSpace(refName) == "" {
		d.error("'idref' element contains empty target attribute", el)
		return nil, false
	}
	return &model.NameReference{Name: refName, Source: el.DefRange}, true
}

// parseValueElement parses a literal value element: its text content plus an
// optional explicit type name, falling back to the caller-supplied default
// (typically the enclosing collection's element type).
func (d *Delegate) parseValueElement(el *xmldoc.Element, defaultTypeName string) model.Value {
	specified := el.AttrValue(typeAttr)
	return d.buildTypedString(el.Text, specified, defaultTypeName, el)
}

// buildTypedString wraps raw literal text as a typed literal. When the
// effective type name resolves to a known type the text is eagerly checked
// for convertibility; a failure is reported and the literal kept untyped so
// the rest of the declaration still parses.
func (d *Delegate) buildTypedString(value, specifiedTypeName, defaultTypeName string, el *xmldoc.Element) *model.TypedString {
	typeName := specifiedTypeName
	if strings.TrimSpace(typeName) == "" {
		typeName = defaultTypeName
	}
	if err := d.cfg.Types.Validate(value, typeName); err != nil {
		d.error(fmt.Sprintf("Invalid typed value: %v", err), el)
		return &model.TypedString{Value: value, Source: el.DefRange}
	}
	return &model.TypedString{
		Value:             value,
		TypeName:          typeName,
		SpecifiedTypeName: specifiedTypeName,
		Source:            el.DefRange,
	}
}
