package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/blueprint/internal/model"
	"github.com/vk/blueprint/internal/xmldoc"
)

// ParseComponentElement parses a component declaration element into a Holder:
// the definition plus its resolved primary name and aliases. For top-level
// declarations (containing == nil) the name set is validated against the
// scope's used names. Returns nil when the declaration had to be abandoned;
// the problem is on the reporter either way.
func (d *Delegate) ParseComponentElement(el *xmldoc.Element, containing *model.ComponentDefinition) *model.Holder {
	id := el.AttrValue(idAttr)

	var aliases []string
	if nameValue := el.AttrValue(NameAttr); nameValue != "" {
		aliases = tokenize(nameValue)
	}

	name := id
	if name == "" && len(aliases) > 0 {
		// No id given: promote the first alias to the primary name.
		name = aliases[0]
		aliases = aliases[1:]
		d.cfg.Logger.Debug("No 'id' specified, using first alias as component name.",
			"name", name, "aliases", aliases)
	}

	if containing == nil {
		d.checkNameUniqueness(name, aliases, el)
	}

	def := d.parseDefinition(el, name, containing)
	if def == nil {
		return nil
	}

	if name == "" {
		if containing != nil {
			name = d.cfg.Names.GenerateInner(def)
		} else {
			name = d.cfg.Names.GenerateTopLevel(def, d.cfg.Used)
			// Register an alias for the bare type name when the generator
			// produced typeName plus a suffix and the bare name is still
			// free, so references by plain type name keep resolving.
			typeName := def.TypeName
			if typeName != "" && strings.HasPrefix(name, typeName) && len(name) > len(typeName) &&
				(d.cfg.Used == nil || !d.cfg.Used.IsNameInUse(typeName)) {
				aliases = append(aliases, typeName)
			}
		}
		d.cfg.Logger.Debug("Neither 'id' nor 'name' specified, using generated component name.",
			"name", name)
	}

	return &model.Holder{Definition: def, Name: name, Aliases: aliases}
}

// checkNameUniqueness validates that the name and aliases are unused within
// the current scope, reports a duplicate, and registers them all. Parsing
// continues with the duplicate name; the caller decides whether that is
// fatal.
func (d *Delegate) checkNameUniqueness(name string, aliases []string, el *xmldoc.Element) {
	found := ""
	if name != "" {
		if _, taken := d.usedNames[name]; taken {
			found = name
		}
	}
	if found == "" {
		for _, alias := range aliases {
			if _, taken := d.usedNames[alias]; taken {
				found = alias
				break
			}
		}
	}
	if found != "" {
		d.error(fmt.Sprintf("Component name %q is already used in this scope", found), el)
	}

	if name != "" {
		d.usedNames[name] = struct{}{}
	}
	for _, alias := range aliases {
		d.usedNames[alias] = struct{}{}
	}
}

// parseDefinition parses the declaration itself, without regard to name or
// aliases. Only a type-resolution failure or an unexpected internal fault
// abandons the declaration (nil result); every structural problem is
// reported and parsing of the declaration continues.
func (d *Delegate) parseDefinition(el *xmldoc.Element, name string, containing *model.ComponentDefinition) (def *model.ComponentDefinition) {
	entry := "component '" + name + "'"
	if name == "" {
		entry = "anonymous component"
	}
	d.state.push(entry)
	defer d.state.pop()

	defer func() {
		if r := recover(); r != nil {
			d.error(fmt.Sprintf("Unexpected failure during component definition parsing: %v", r), el)
			def = nil
		}
	}()

	typeName := strings.TrimSpace(el.AttrValue(typeAttr))
	parentName := el.AttrValue(parentAttr)

	if typeName == "" && parentName == "" {
		d.error("Component declaration must specify a 'type' or a 'parent'", el)
	}
	if typeName != "" {
		if err := d.cfg.Types.CheckTypeName(typeName); err != nil {
			d.error(fmt.Sprintf("Component type not resolvable: %v", err), el)
			return nil
		}
	}

	def = model.NewComponentDefinition(typeName, parentName)

	d.parseAttributes(el, name, containing, def)
	def.Description = el.ChildTextNamed(DescriptionElement)

	d.parseMetaElements(el, &def.Meta)
	d.parseLookupOverrides(el, &def.Overrides)
	d.parseReplacedOverrides(el, &def.Overrides)
	d.parseConstructorArgElements(el, def)
	d.parsePropertyElements(el, def)
	d.parseQualifierElements(el, def)

	def.Source = el.DefRange
	def.Resource = d.cfg.Resource

	return def
}

// parseAttributes applies the declaration's attributes to the definition,
// filling in scope defaults where the declaration stays silent.
func (d *Delegate) parseAttributes(el *xmldoc.Element, name string, containing *model.ComponentDefinition, def *model.ComponentDefinition) {
	if el.HasAttr(singletonAttr) {
		d.error("Legacy 'singleton' attribute in use: declare a 'scope' instead", el)
	} else if v, ok := el.Attr(scopeAttr); ok {
		def.Scope = v
	} else if containing != nil {
		// Inner declarations with no explicit scope run in the scope of
		// their containing component.
		def.Scope = containing.Scope
	}

	if v, ok := el.Attr(abstractAttr); ok {
		def.Abstract = v == trueValue
	}

	lazyInit := el.AttrValue(lazyInitAttr)
	if isDefaultValue(lazyInit) {
		lazyInit = d.defaults.LazyInit
	}
	def.LazyInit = lazyInit == trueValue

	def.Autowire = d.autowireMode(el.AttrValue(autowireAttr))

	if v, ok := el.Attr(dependsOnAttr); ok {
		def.DependsOn = tokenize(v)
	}

	candidate := el.AttrValue(autowireCandidateAttr)
	if isDefaultValue(candidate) {
		if patterns := d.defaults.AutowireCandidates; patterns != "" {
			def.AutowireCandidate = matchesAny(patterns, name)
		}
	} else {
		def.AutowireCandidate = candidate == trueValue
	}

	if v, ok := el.Attr(primaryAttr); ok {
		def.Primary = v == trueValue
	}

	if v, ok := el.Attr(initMethodAttr); ok {
		def.InitMethod = v
	} else if d.defaults.InitMethod != "" {
		def.InitMethod = d.defaults.InitMethod
		def.EnforceInitMethod = false
	}

	if v, ok := el.Attr(destroyMethodAttr); ok {
		def.DestroyMethod = v
	} else if d.defaults.DestroyMethod != "" {
		def.DestroyMethod = d.defaults.DestroyMethod
		def.EnforceDestroyMethod = false
	}

	if v, ok := el.Attr(factoryMethodAttr); ok {
		def.FactoryMethod = v
	}
	if v, ok := el.Attr(factoryComponentAttr); ok {
		def.FactoryComponent = v
	}
}

// autowireMode maps the autowire attribute value to a mode, applying the
// scope default for the "default" sentinel. Unknown values fall back to no
// autowiring.
func (d *Delegate) autowireMode(value string) model.AutowireMode {
	if isDefaultValue(value) {
		value = d.defaults.Autowire
	}
	switch value {
	case autowireByNameValue:
		return model.AutowireByName
	case autowireByTypeValue:
		return model.AutowireByType
	case autowireConstructorValue:
		return model.AutowireConstructor
	case autowireAutodetectValue:
		return model.AutowireAutodetect
	default:
		return model.AutowireNo
	}
}

// parseMetaElements collects meta child elements into the given slice. Used
// both for whole definitions and for individual property assignments.
func (d *Delegate) parseMetaElements(el *xmldoc.Element, meta *[]model.MetaAttribute) {
	for _, child := range el.Children {
		if d.isCandidate(el, child) && child.Local == metaElement {
			*meta = append(*meta, model.MetaAttribute{
				Key:    child.AttrValue(keyAttr),
				Value:  child.AttrValue(valueAttr),
				Source: child.DefRange,
			})
		}
	}
}

// parseLookupOverrides collects lookup-method child elements.
func (d *Delegate) parseLookupOverrides(el *xmldoc.Element, overrides *model.MethodOverrides) {
	for _, child := range el.Children {
		if d.isCandidate(el, child) && child.Local == lookupMethodElement {
			overrides.Lookups = append(overrides.Lookups, model.LookupOverride{
				Method:    child.AttrValue(NameAttr),
				Component: child.AttrValue(componentRefAttr),
				Source:    child.DefRange,
			})
		}
	}
}

// parseReplacedOverrides collects replaced-method child elements, including
// their arg-type match entries.
func (d *Delegate) parseReplacedOverrides(el *xmldoc.Element, overrides *model.MethodOverrides) {
	for _, child := range el.Children {
		if !d.isCandidate(el, child) || child.Local != replacedMethodElement {
			continue
		}
		override := model.ReplaceOverride{
			Method:   child.AttrValue(NameAttr),
			Replacer: child.AttrValue(replacerAttr),
			Source:   child.DefRange,
		}
		for _, argType := range child.ChildrenNamed(argTypeElement) {
			match := argType.AttrValue(matchAttr)
			if strings.TrimSpace(match) == "" {
				match = strings.TrimSpace(argType.Text)
			}
			if match != "" {
				override.TypeIdentifiers = append(override.TypeIdentifiers, match)
			}
		}
		overrides.Replaced = append(overrides.Replaced, override)
	}
}

// parseConstructorArgElements scans for constructor-arg children.
func (d *Delegate) parseConstructorArgElements(el *xmldoc.Element, def *model.ComponentDefinition) {
	for _, child := range el.Children {
		if d.isCandidate(el, child) && child.Local == constructorArgElement {
			d.parseConstructorArgElement(child, def)
		}
	}
}

// parseConstructorArgElement parses a single constructor-arg element. An
// explicit index must be a unique non-negative integer per declaration;
// arguments without one are positional.
func (d *Delegate) parseConstructorArgElement(el *xmldoc.Element, def *model.ComponentDefinition) {
	indexValue := el.AttrValue(indexAttr)
	typeValue := el.AttrValue(typeAttr)
	nameValue := el.AttrValue(NameAttr)

	if indexValue != "" {
		index, err := strconv.Atoi(indexValue)
		if err != nil {
			d.error("Attribute 'index' of element 'constructor-arg' must be an integer", el)
			return
		}
		if index < 0 {
			d.error("'index' cannot be lower than 0", el)
			return
		}

		d.state.push(fmt.Sprintf("constructor-arg #%d", index))
		defer d.state.pop()

		value, ok := d.parseValueSource(el, def, "")
		if !ok {
			return
		}
		if def.ConstructorArgs.HasIndexed(index) {
			d.error(fmt.Sprintf("Ambiguous constructor-arg entries for index %d", index), el)
			return
		}
		def.ConstructorArgs.AddIndexed(index, &model.ArgValue{
			Value:    value,
			TypeName: typeValue,
			Name:     nameValue,
			Source:   el.DefRange,
		})
		return
	}

	d.state.push("constructor-arg")
	defer d.state.pop()

	value, ok := d.parseValueSource(el, def, "")
	if !ok {
		return
	}
	def.ConstructorArgs.AddGeneric(&model.ArgValue{
		Value:    value,
		TypeName: typeValue,
		Name:     nameValue,
		Source:   el.DefRange,
	})
}

// parsePropertyElements scans for property children.
func (d *Delegate) parsePropertyElements(el *xmldoc.Element, def *model.ComponentDefinition) {
	for _, child := range el.Children {
		if d.isCandidate(el, child) && child.Local == propertyElement {
			d.parsePropertyElement(child, def)
		}
	}
}

// parsePropertyElement parses a single property assignment. A second
// assignment to an already-set property name is rejected and the first
// assignment kept unchanged.
func (d *Delegate) parsePropertyElement(el *xmldoc.Element, def *model.ComponentDefinition) {
	propertyName := el.AttrValue(NameAttr)
	if propertyName == "" {
		d.error("Element 'property' must have a 'name' attribute", el)
		return
	}

	d.state.push("property '" + propertyName + "'")
	defer d.state.pop()

	if def.Properties.Contains(propertyName) {
		d.error(fmt.Sprintf("Multiple 'property' definitions for property %q", propertyName), el)
		return
	}

	value, ok := d.parseValueSource(el, def, propertyName)
	if !ok {
		return
	}
	pv := &model.PropertyValue{
		Name:   propertyName,
		Value:  value,
		Source: el.DefRange,
	}
	d.parseMetaElements(el, &pv.Meta)
	def.Properties.Add(pv)
}

// parseQualifierElements scans for qualifier children.
func (d *Delegate) parseQualifierElements(el *xmldoc.Element, def *model.ComponentDefinition) {
	for _, child := range el.Children {
		if d.isCandidate(el, child) && child.Local == qualifierElement {
			d.parseQualifierElement(child, def)
		}
	}
}

// parseQualifierElement parses a qualifier declaration. The type name is
// required; a malformed attribute sub-element aborts only this qualifier.
func (d *Delegate) parseQualifierElement(el *xmldoc.Element, def *model.ComponentDefinition) {
	typeName := el.AttrValue(typeAttr)
	if typeName == "" {
		d.error("Element 'qualifier' must have a 'type' attribute", el)
		return
	}

	d.state.push("qualifier '" + typeName + "'")
	defer d.state.pop()

	qualifier := &model.Qualifier{
		TypeName: typeName,
		Value:    el.AttrValue(valueAttr),
		Source:   el.DefRange,
	}
	for _, child := range el.Children {
		if !d.isCandidate(el, child) || child.Local != qualifierAttrElement {
			continue
		}
		key := child.AttrValue(keyAttr)
		value := child.AttrValue(valueAttr)
		if key == "" || value == "" {
			d.error("Qualifier 'attribute' element must have a 'key' and a 'value'", child)
			return
		}
		qualifier.Attributes = append(qualifier.Attributes, model.MetaAttribute{
			Key:    key,
			Value:  value,
			Source: child.DefRange,
		})
	}
	def.Qualifiers = append(def.Qualifiers, qualifier)
}
