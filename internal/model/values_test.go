package model

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_PutLastWins(t *testing.T) {
	m := &Map{}
	m.Put(&TypedString{Value: "a"}, &TypedString{Value: "1"})
	m.Put(&TypedString{Value: "b"}, &TypedString{Value: "2"})
	m.Put(&TypedString{Value: "a"}, &TypedString{Value: "3"})

	require.Len(t, m.Entries, 2)
	// Replacement keeps first-insertion order.
	assert.Equal(t, "a", m.Entries[0].Key.(*TypedString).Value)
	assert.Equal(t, "3", m.Entries[0].Value.(*TypedString).Value)
	assert.Equal(t, "b", m.Entries[1].Key.(*TypedString).Value)
}

func TestMap_KeyIdentity(t *testing.T) {
	m := &Map{}

	// A typed and an untyped literal with the same text are distinct keys.
	m.Put(&TypedString{Value: "a", TypeName: "int"}, &TypedString{Value: "1"})
	m.Put(&TypedString{Value: "a"}, &TypedString{Value: "2"})
	assert.Len(t, m.Entries, 2)

	// Reference keys match on target name and direction.
	m.Put(&Reference{Name: "r"}, &TypedString{Value: "3"})
	m.Put(&Reference{Name: "r"}, &TypedString{Value: "4"})
	m.Put(&Reference{Name: "r", ToParent: true}, &TypedString{Value: "5"})
	assert.Len(t, m.Entries, 4)

	// Nested definitions never collide as keys.
	m.Put(&Holder{Name: "h"}, &TypedString{Value: "6"})
	m.Put(&Holder{Name: "h"}, &TypedString{Value: "7"})
	assert.Len(t, m.Entries, 6)
}

func TestProps_PutLastWins(t *testing.T) {
	p := &Props{}
	p.Put(&TypedString{Value: "host"}, &TypedString{Value: "localhost"})
	p.Put(&TypedString{Value: "port"}, &TypedString{Value: "80"})
	p.Put(&TypedString{Value: "host"}, &TypedString{Value: "example.com"})

	require.Len(t, p.Entries, 2)
	assert.Equal(t, "example.com", p.Entries[0].Value.Value)
}

func TestPropertyValues(t *testing.T) {
	var pv PropertyValues
	assert.False(t, pv.Contains("x"))
	assert.Nil(t, pv.Get("x"))

	pv.Add(&PropertyValue{Name: "x"})
	pv.Add(&PropertyValue{Name: "y"})

	assert.True(t, pv.Contains("x"))
	require.NotNil(t, pv.Get("y"))
	assert.Equal(t, 2, pv.Len())
	assert.Equal(t, "x", pv.All()[0].Name)
}

func TestConstructorArgs(t *testing.T) {
	var ca ConstructorArgs
	assert.True(t, ca.Empty())

	ca.AddIndexed(2, &ArgValue{Name: "c"})
	ca.AddGeneric(&ArgValue{Name: "g"})

	assert.True(t, ca.HasIndexed(2))
	assert.False(t, ca.HasIndexed(0))
	assert.Equal(t, 2, ca.Count())
	assert.False(t, ca.Empty())
}

func TestNullValue(t *testing.T) {
	v := NullValue(hcl.Range{})
	assert.True(t, v.Null)
	assert.Empty(t, v.Value)
}
