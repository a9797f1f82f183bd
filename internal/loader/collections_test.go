package loader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/blueprint/internal/model"
	"github.com/vk/blueprint/internal/testutil"
)

func TestLoad_ListKeepsDocumentOrder(t *testing.T) {
	res := testutil.ParseString(t, `
<components>
  <component id="service" type="pkg.Service">
    <property name="steps">
      <list value-type="string">
        <value>first</value>
        <value>second</value>
        <value>first</value>
      </list>
    </property>
  </component>
</components>`, nil)
	testutil.RequireClean(t, res)

	def, _ := res.Registry.Definition("service")
	list := def.Properties.Get("steps").Value.(*model.List)
	assert.Equal(t, "string", list.ElementTypeName)
	require.Len(t, list.Values, 3)

	var texts []string
	for _, v := range list.Values {
		literal := v.(*model.TypedString)
		// The collection's element type flows down as a hint.
		assert.Equal(t, "string", literal.TypeName)
		assert.Empty(t, literal.SpecifiedTypeName)
		texts = append(texts, literal.Value)
	}
	assert.Equal(t, []string{"first", "second", "first"}, texts)
}

func TestLoad_ArrayAndSet(t *testing.T) {
	res := testutil.ParseString(t, `
<components>
  <component id="service" type="pkg.Service">
    <property name="arr">
      <array value-type="int">
        <value>1</value>
        <value>2</value>
      </array>
    </property>
    <property name="tags">
      <set>
        <value>a</value>
        <value>a</value>
      </set>
    </property>
  </component>
</components>`, nil)
	testutil.RequireClean(t, res)

	def, _ := res.Registry.Definition("service")

	arr := def.Properties.Get("arr").Value.(*model.Array)
	assert.Equal(t, "int", arr.ElementTypeName)
	assert.Len(t, arr.Values, 2)

	// Duplicate set values survive parsing; deduplication is not our call.
	set := def.Properties.Get("tags").Value.(*model.Set)
	assert.Len(t, set.Values, 2)
}

func TestLoad_CollectionElementTypeOverride(t *testing.T) {
	res := testutil.ParseString(t, `
<components>
  <component id="service" type="pkg.Service">
    <property name="mixed">
      <list value-type="int">
        <value>1</value>
        <value type="string">two</value>
      </list>
    </property>
  </component>
</components>`, nil)
	testutil.RequireClean(t, res)

	def, _ := res.Registry.Definition("service")
	list := def.Properties.Get("mixed").Value.(*model.List)
	require.Len(t, list.Values, 2)

	first := list.Values[0].(*model.TypedString)
	assert.Equal(t, "int", first.TypeName)

	// An explicit type on the element beats the collection hint.
	second := list.Values[1].(*model.TypedString)
	assert.Equal(t, "string", second.TypeName)
	assert.Equal(t, "string", second.SpecifiedTypeName)
}

func TestLoad_NestedCollections(t *testing.T) {
	res := testutil.ParseString(t, `
<components>
  <component id="service" type="pkg.Service">
    <property name="matrix">
      <list>
        <list><value>1</value></list>
        <ref component="other"/>
      </list>
    </property>
  </component>
  <component id="other" type="pkg.Other"/>
</components>`, nil)
	testutil.RequireClean(t, res)

	def, _ := res.Registry.Definition("service")
	outer := def.Properties.Get("matrix").Value.(*model.List)
	require.Len(t, outer.Values, 2)

	inner := outer.Values[0].(*model.List)
	assert.Len(t, inner.Values, 1)

	ref := outer.Values[1].(*model.Reference)
	assert.Equal(t, "other", ref.Name)
}

func TestLoad_MapEntries(t *testing.T) {
	res := testutil.ParseString(t, `
<components>
  <component id="service" type="pkg.Service">
    <property name="routes">
      <map key-type="string" value-type="int">
        <entry key="a" value="1"/>
        <entry key="b" value-ref="other"/>
        <entry key-ref="other" value="2"/>
        <entry>
          <key><value>c</value></key>
          <value>3</value>
        </entry>
        <entry key="a" value="9"/>
      </map>
    </property>
  </component>
  <component id="other" type="pkg.Other"/>
</components>`, nil)
	testutil.RequireClean(t, res)

	def, _ := res.Registry.Definition("service")
	m := def.Properties.Get("routes").Value.(*model.Map)
	assert.Equal(t, "string", m.KeyTypeName)
	assert.Equal(t, "int", m.ValueTypeName)

	// Key "a" was declared twice: last value wins, order of first insertion kept.
	require.Len(t, m.Entries, 4)

	firstKey := m.Entries[0].Key.(*model.TypedString)
	assert.Equal(t, "a", firstKey.Value)
	assert.Equal(t, "9", m.Entries[0].Value.(*model.TypedString).Value)

	assert.Equal(t, "other", m.Entries[1].Value.(*model.Reference).Name)
	assert.Equal(t, "other", m.Entries[2].Key.(*model.Reference).Name)

	nestedKey := m.Entries[3].Key.(*model.TypedString)
	assert.Equal(t, "c", nestedKey.Value)
	// The map's key type hints the nested key element too.
	assert.Equal(t, "string", nestedKey.TypeName)
}

func TestLoad_MapEntryValidation(t *testing.T) {
	res := testutil.ParseString(t, `
<components>
  <component id="service" type="pkg.Service">
    <property name="m">
      <map>
        <entry value="1"/>
        <entry key="a"/>
        <entry key="a" key-ref="b" value="1"/>
        <entry key="b" value-type="int" value-ref="c"/>
      </map>
    </property>
  </component>
</components>`, nil)

	testutil.RequireProblem(t, res, "'entry' element must specify a key")
	testutil.RequireProblem(t, res, "'entry' element must specify a value")
	testutil.RequireProblem(t, res, "either a 'key' attribute OR a 'key-ref' attribute OR a 'key' sub-element")
	testutil.RequireProblem(t, res, "'value-type' attribute when it has a 'value' attribute")
}

func TestLoad_Props(t *testing.T) {
	res := testutil.ParseString(t, `
<components>
  <component id="service" type="pkg.Service">
    <property name="settings">
      <props>
        <prop key="host">
          localhost
        </prop>
        <prop key="port">80</prop>
        <prop key="host">example.com</prop>
      </props>
    </property>
  </component>
</components>`, nil)
	testutil.RequireClean(t, res)

	def, _ := res.Registry.Definition("service")
	props := def.Properties.Get("settings").Value.(*model.Props)
	require.Len(t, props.Entries, 2)
	// Bodies are trimmed and duplicate keys resolve last-wins.
	assert.Equal(t, "host", props.Entries[0].Key.Value)
	assert.Equal(t, "example.com", props.Entries[0].Value.Value)
	assert.Equal(t, "80", props.Entries[1].Value.Value)
}

func TestLoad_MergeFlagDefaults(t *testing.T) {
	res := testutil.ParseString(t, `
<components default-merge="true">
  <component id="service" type="pkg.Service">
    <property name="inherited"><list/></property>
    <property name="disabled"><list merge="false"/></property>
    <property name="sentinel"><list merge="default"/></property>
  </component>
</components>`, nil)
	testutil.RequireClean(t, res)

	def, _ := res.Registry.Definition("service")
	assert.True(t, def.Properties.Get("inherited").Value.(*model.List).MergeEnabled)
	assert.False(t, def.Properties.Get("disabled").Value.(*model.List).MergeEnabled)
	assert.True(t, def.Properties.Get("sentinel").Value.(*model.List).MergeEnabled)
}
