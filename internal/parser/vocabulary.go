package parser

// CoreNamespaceURI identifies the core component-definition vocabulary.
// Elements with no namespace at all are treated as core as well, so plain
// un-namespaced documents keep working.
const CoreNamespaceURI = "https://vk.github.io/blueprint/schema/core"

// coreSchemaRoot is the URI prefix that marks a namespace as "ours" even when
// no handler resolves it. Unresolved namespaces under this root are errors;
// anything else is somebody's foreign vocabulary and is skipped.
const coreSchemaRoot = "https://vk.github.io/blueprint/schema/"

// multiValueDelimiters separates tokens in name lists such as the alias and
// depends-on attributes.
const multiValueDelimiters = ",; \t\n\r"

const (
	trueValue    = "true"
	defaultValue = "default"
)

// Element names of the core vocabulary.
const (
	ComponentsElement     = "components"
	ComponentElement      = "component"
	ImportElement         = "import"
	AliasElement          = "alias"
	DescriptionElement    = "description"
	metaElement           = "meta"
	constructorArgElement = "constructor-arg"
	propertyElement       = "property"
	lookupMethodElement   = "lookup-method"
	replacedMethodElement = "replaced-method"
	argTypeElement        = "arg-type"
	qualifierElement      = "qualifier"
	qualifierAttrElement  = "attribute"
	refElement            = "ref"
	idrefElement          = "idref"
	valueElement          = "value"
	nullElement           = "null"
	arrayElement          = "array"
	listElement           = "list"
	setElement            = "set"
	mapElement            = "map"
	entryElement          = "entry"
	keyElement            = "key"
	propsElement          = "props"
	propElement           = "prop"
)

// Attribute names of the core vocabulary.
const (
	idAttr                = "id"
	NameAttr              = "name"
	typeAttr              = "type"
	parentAttr            = "parent"
	scopeAttr             = "scope"
	abstractAttr          = "abstract"
	singletonAttr         = "singleton"
	lazyInitAttr          = "lazy-init"
	autowireAttr          = "autowire"
	autowireCandidateAttr = "autowire-candidate"
	primaryAttr           = "primary"
	dependsOnAttr         = "depends-on"
	initMethodAttr        = "init-method"
	destroyMethodAttr     = "destroy-method"
	factoryMethodAttr     = "factory-method"
	factoryComponentAttr  = "factory-component"
	indexAttr             = "index"
	refAttr               = "ref"
	valueAttr             = "value"
	keyAttr               = "key"
	keyRefAttr            = "key-ref"
	valueRefAttr          = "value-ref"
	keyTypeAttr           = "key-type"
	valueTypeAttr         = "value-type"
	mergeAttr             = "merge"
	componentRefAttr      = "component"
	parentRefAttr         = "parent"
	replacerAttr          = "replacer"
	matchAttr             = "match"
	ResourceAttr          = "resource"
	AliasAttr             = "alias"

	defaultLazyInitAttr           = "default-lazy-init"
	defaultMergeAttr              = "default-merge"
	defaultAutowireAttr           = "default-autowire"
	defaultAutowireCandidatesAttr = "default-autowire-candidates"
	defaultInitMethodAttr         = "default-init-method"
	defaultDestroyMethodAttr      = "default-destroy-method"
)

// Autowire attribute values.
const (
	autowireNoValue          = "no"
	autowireByNameValue      = "by-name"
	autowireByTypeValue      = "by-type"
	autowireConstructorValue = "constructor"
	autowireAutodetectValue  = "autodetect"
)

// valueKind is the closed set of constructs that may occupy a value position
// in the core namespace. Element names are mapped to a kind once, before
// branching, so the dispatch has an explicit "unknown" case instead of a
// trailing chain of name comparisons.
type valueKind int

const (
	kindUnknown valueKind = iota
	kindComponent
	kindRef
	kindIdref
	kindValue
	kindNull
	kindArray
	kindList
	kindSet
	kindMap
	kindProps
)

var valueKinds = map[string]valueKind{
	ComponentElement: kindComponent,
	refElement:       kindRef,
	idrefElement:     kindIdref,
	valueElement:     kindValue,
	nullElement:      kindNull,
	arrayElement:     kindArray,
	listElement:      kindList,
	setElement:       kindSet,
	mapElement:       kindMap,
	propsElement:     kindProps,
}

// IsCoreNamespace reports whether the URI belongs to the core vocabulary.
func IsCoreNamespace(uri string) bool {
	return uri == "" || uri == CoreNamespaceURI
}

// isCoreSchemaRooted reports whether the URI claims the core schema root.
func isCoreSchemaRooted(uri string) bool {
	return len(uri) >= len(coreSchemaRoot) && uri[:len(coreSchemaRoot)] == coreSchemaRoot
}
