package parser

import (
	"strings"

	"github.com/vk/blueprint/internal/model"
	"github.com/vk/blueprint/internal/xmldoc"
)

// parseListElement parses an ordered sequence literal.
func (d *Delegate) parseListElement(el *xmldoc.Element, containing *model.ComponentDefinition) model.Value {
	elementType := el.AttrValue(valueTypeAttr)
	return &model.List{
		ElementTypeName: elementType,
		MergeEnabled:    d.parseMergeAttribute(el),
		Values:          d.parseCollectionElements(el, containing, elementType),
		Source:          el.DefRange,
	}
}

// parseArrayElement parses an array literal, shaped exactly like a list.
func (d *Delegate) parseArrayElement(el *xmldoc.Element, containing *model.ComponentDefinition) model.Value {
	elementType := el.AttrValue(valueTypeAttr)
	return &model.Array{
		ElementTypeName: elementType,
		MergeEnabled:    d.parseMergeAttribute(el),
		Values:          d.parseCollectionElements(el, containing, elementType),
		Source:          el.DefRange,
	}
}

// parseSetElement parses a set literal. Duplicate values are kept; dropping
// them is the resolution stage's call, not the parser's.
func (d *Delegate) parseSetElement(el *xmldoc.Element, containing *model.ComponentDefinition) model.Value {
	elementType := el.AttrValue(valueTypeAttr)
	return &model.Set{
		ElementTypeName: elementType,
		MergeEnabled:    d.parseMergeAttribute(el),
		Values:          d.parseCollectionElements(el, containing, elementType),
		Source:          el.DefRange,
	}
}

// parseCollectionElements parses every non-description child as a value
// sub-element, passing the collection's element type down as the default
// type hint, and returns them in document order.
func (d *Delegate) parseCollectionElements(el *xmldoc.Element, containing *model.ComponentDefinition, defaultElementType string) []model.Value {
	var values []model.Value
	for _, child := range el.Children {
		if child.Local == DescriptionElement {
			continue
		}
		if v, ok := d.parseValueSubElement(child, containing, defaultElementType); ok {
			values = append(values, v)
		}
	}
	return values
}

// parseMapElement parses a keyed map literal: entry children with exactly one
// key source and one value source each. Duplicate keys resolve last-wins
// without a diagnostic.
func (d *Delegate) parseMapElement(el *xmldoc.Element, containing *model.ComponentDefinition) model.Value {
	defaultKeyType := el.AttrValue(keyTypeAttr)
	defaultValueType := el.AttrValue(valueTypeAttr)

	m := &model.Map{
		KeyTypeName:   defaultKeyType,
		ValueTypeName: defaultValueType,
		MergeEnabled:  d.parseMergeAttribute(el),
		Source:        el.DefRange,
	}

	for _, entry := range el.ChildrenNamed(entryElement) {
		// An entry may carry one key child and one value child at most;
		// descriptions are ignored.
		var keyEl, valueEl *xmldoc.Element
		for _, child := range entry.Children {
			switch {
			case child.Local == keyElement:
				if keyEl != nil {
					d.error("'entry' element is only allowed to contain one 'key' sub-element", entry)
				} else {
					keyEl = child
				}
			case child.Local == DescriptionElement:
				// ignore
			case valueEl != nil:
				d.error("'entry' element must not contain more than one value sub-element", entry)
			default:
				valueEl = child
			}
		}

		var key model.Value
		hasKeyAttr := entry.HasAttr(keyAttr)
		hasKeyRefAttr := entry.HasAttr(keyRefAttr)
		if (hasKeyAttr && hasKeyRefAttr) ||
			(hasKeyAttr || hasKeyRefAttr) && keyEl != nil {
			d.error("'entry' element is only allowed to contain either a 'key' attribute OR a 'key-ref' attribute OR a 'key' sub-element", entry)
		}
		switch {
		case hasKeyAttr:
			key = d.buildTypedString(entry.AttrValue(keyAttr), "", defaultKeyType, entry)
		case hasKeyRefAttr:
			refName := entry.AttrValue(keyRefAttr)
			if strings.TrimSpace(refName) == "" {
				d.error("'entry' element contains empty 'key-ref' attribute", entry)
			}
			key = &model.Reference{Name: refName, Source: entry.DefRange}
		case keyEl != nil:
			key, _ = d.parseKeyElement(keyEl, containing, defaultKeyType)
		default:
			d.error("'entry' element must specify a key", entry)
		}

		var value model.Value
		hasValueAttr := entry.HasAttr(valueAttr)
		hasValueRefAttr := entry.HasAttr(valueRefAttr)
		hasValueTypeAttr := entry.HasAttr(valueTypeAttr)
		if (hasValueAttr && hasValueRefAttr) ||
			(hasValueAttr || hasValueRefAttr) && valueEl != nil {
			d.error("'entry' element is only allowed to contain either a 'value' attribute OR a 'value-ref' attribute OR a value sub-element", entry)
		}
		if (hasValueTypeAttr && hasValueRefAttr) ||
			(hasValueTypeAttr && !hasValueAttr) ||
			(hasValueTypeAttr && valueEl != nil) {
			d.error("'entry' element is only allowed to contain a 'value-type' attribute when it has a 'value' attribute", entry)
		}
		switch {
		case hasValueAttr:
			valueType := entry.AttrValue(valueTypeAttr)
			if strings.TrimSpace(valueType) == "" {
				valueType = defaultValueType
			}
			value = d.buildTypedString(entry.AttrValue(valueAttr), "", valueType, entry)
		case hasValueRefAttr:
			refName := entry.AttrValue(valueRefAttr)
			if strings.TrimSpace(refName) == "" {
				d.error("'entry' element contains empty 'value-ref' attribute", entry)
			}
			value = &model.Reference{Name: refName, Source: entry.DefRange}
		case valueEl != nil:
			value, _ = d.parseValueSubElement(valueEl, containing, defaultValueType)
		default:
			d.error("'entry' element must specify a value", entry)
		}

		if key != nil && value != nil {
			m.Put(key, value)
		}
	}

	return m
}

// parseKeyElement parses the single value sub-element of a key element. An
// empty key element yields no key without a diagnostic of its own; the entry
// validation already covers the missing-key case.
func (d *Delegate) parseKeyElement(keyEl *xmldoc.Element, containing *model.ComponentDefinition, defaultKeyType string) (model.Value, bool) {
	var sub *xmldoc.Element
	for _, child := range keyEl.Children {
		if sub != nil {
			d.error("'key' element must not contain more than one value sub-element", keyEl)
		} else {
			sub = child
		}
	}
	if sub == nil {
		return nil, false
	}
	return d.parseValueSubElement(sub, containing, defaultKeyType)
}

// parsePropsElement parses a string-keyed property map: prop children whose
// key attribute names the entry and whose trimmed text body is the value.
// Neither side carries a type.
func (d *Delegate) parsePropsElement(el *xmldoc.Element) model.Value {
	props := &model.Props{
		MergeEnabled: d.parseMergeAttribute(el),
		Source:       el.DefRange,
	}
	for _, prop := range el.Children {
		if !d.isCandidate(el, prop) || prop.Local != propElement {
			continue
		}
		key := &model.TypedString{Value: prop.AttrValue(keyAttr), Source: prop.DefRange}
		// Trim the body to shed the indentation whitespace typical XML
		// formatting introduces.
		value := &model.TypedString{Value: strings.TrimSpace(prop.Text), Source: prop.DefRange}
		props.Put(key, value)
	}
	return props
}

// parseMergeAttribute reads a collection element's merge flag, falling back
// to the scope default when absent or the "default" sentinel.
func (d *Delegate) parseMergeAttribute(el *xmldoc.Element) bool {
	value := el.AttrValue(mergeAttr)
	if isDefaultValue(value) {
		value = d.defaults.Merge
	}
	return value == trueValue
}
