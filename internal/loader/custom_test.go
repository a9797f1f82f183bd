package loader_test

import (
	"fmt"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/blueprint/internal/model"
	"github.com/vk/blueprint/internal/namespace"
	"github.com/vk/blueprint/internal/testutil"
	"github.com/vk/blueprint/internal/xmldoc"
)

const customNS = "https://example.com/schema/widgets"

// widgetHandler is a test namespace handler. Elements named "widget" parse
// into a definition of their declared type; "noop" elements produce nothing;
// anything else is a diagnostic. Every decoration call is counted.
type widgetHandler struct {
	decorations int
}

func (h *widgetHandler) Parse(el *xmldoc.Element, ctx *namespace.Context) (*model.ComponentDefinition, hcl.Diagnostics) {
	switch el.Local {
	case "widget":
		return model.NewComponentDefinition(el.AttrValue("type"), ""), nil
	case "noop":
		return nil, nil
	default:
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("widget handler cannot parse element %q", el.Local),
			Subject:  el.DefRange.Ptr(),
		}}
	}
}

func (h *widgetHandler) Decorate(node namespace.Node, holder *model.Holder, ctx *namespace.Context) (*model.Holder, hcl.Diagnostics) {
	h.decorations++
	holder.Definition.Meta = append(holder.Definition.Meta, model.MetaAttribute{
		Key:    "decorated-by",
		Value:  customNS,
		Source: node.Range(),
	})
	return holder, nil
}

func handlersWith(t *testing.T, uri string, h namespace.Handler) *namespace.Registry {
	t.Helper()
	reg := namespace.NewRegistry()
	reg.Register(uri, h)
	return reg
}

func TestLoad_CustomTopLevelElement(t *testing.T) {
	handler := &widgetHandler{}
	res := testutil.ParseString(t, `
<components xmlns:w="https://example.com/schema/widgets">
  <w:widget type="pkg.Widget"/>
</components>`, handlersWith(t, customNS, handler))
	testutil.RequireClean(t, res)

	// Handler-produced definitions register under a generated name.
	def, ok := res.Registry.Definition("pkg.Widget#0")
	require.True(t, ok)
	assert.Equal(t, "pkg.Widget", def.TypeName)
}

func TestLoad_CustomTopLevelWithoutHandler(t *testing.T) {
	res := testutil.ParseString(t, `
<components xmlns:w="https://example.com/schema/widgets">
  <w:widget type="pkg.Widget"/>
</components>`, nil)

	testutil.RequireProblem(t, res, "Unable to locate namespace handler")
}

func TestLoad_CustomElementInValuePosition(t *testing.T) {
	handler := &widgetHandler{}
	res := testutil.ParseString(t, `
<components xmlns:w="https://example.com/schema/widgets">
  <component id="service" type="pkg.Service">
    <property name="widget"><w:widget type="pkg.Widget"/></property>
  </component>
</components>`, handlersWith(t, customNS, handler))
	testutil.RequireClean(t, res)

	def, _ := res.Registry.Definition("service")
	holder := def.Properties.Get("widget").Value.(*model.Holder)
	assert.Equal(t, "pkg.Widget", holder.Definition.TypeName)
	// Value-position custom elements get a synthesized element-based name.
	assert.Contains(t, holder.Name, "widget#")
}

func TestLoad_CustomNoopInValuePositionRejected(t *testing.T) {
	handler := &widgetHandler{}
	res := testutil.ParseString(t, `
<components xmlns:w="https://example.com/schema/widgets">
  <component id="service" type="pkg.Service">
    <property name="widget"><w:noop/></property>
  </component>
</components>`, handlersWith(t, customNS, handler))

	testutil.RequireProblem(t, res, "cannot be used inside a value position")
}

func TestLoad_CustomHandlerDiagnosticsSurface(t *testing.T) {
	handler := &widgetHandler{}
	res := testutil.ParseString(t, `
<components xmlns:w="https://example.com/schema/widgets">
  <w:gizmo/>
</components>`, handlersWith(t, customNS, handler))

	testutil.RequireProblem(t, res, `widget handler cannot parse element "gizmo"`)
}

func TestLoad_Decoration(t *testing.T) {
	handler := &widgetHandler{}
	res := testutil.ParseString(t, `
<components xmlns:w="https://example.com/schema/widgets">
  <component id="service" type="pkg.Service" w:flag="on">
    <w:extra/>
  </component>
</components>`, handlersWith(t, customNS, handler))
	testutil.RequireClean(t, res)

	// One decoration per foreign attribute and per foreign child element.
	assert.Equal(t, 2, handler.decorations)

	def, _ := res.Registry.Definition("service")
	require.Len(t, def.Meta, 2)
	assert.Equal(t, "decorated-by", def.Meta[0].Key)
}

func TestLoad_DecorationUnresolvedForeignNamespaceSkipped(t *testing.T) {
	res := testutil.ParseString(t, `
<components xmlns:x="https://elsewhere.example.com/unrelated">
  <component id="service" type="pkg.Service" x:hint="ignored"/>
</components>`, nil)

	// Unrelated namespaces with no handler are noise, not errors.
	testutil.RequireClean(t, res)
	_, ok := res.Registry.Definition("service")
	assert.True(t, ok)
}

func TestLoad_DecorationUnresolvedCoreRootedNamespaceRejected(t *testing.T) {
	res := testutil.ParseString(t, `
<components xmlns:tx="https://vk.github.io/blueprint/schema/tx">
  <component id="service" type="pkg.Service" tx:managed="true"/>
</components>`, nil)

	testutil.RequireProblem(t, res, "Unable to locate namespace handler")
}

func TestNamespaceRegistry_DoubleRegistrationPanics(t *testing.T) {
	reg := namespace.NewRegistry()
	reg.Register(customNS, &widgetHandler{})
	assert.Panics(t, func() {
		reg.Register(customNS, &widgetHandler{})
	})
}
