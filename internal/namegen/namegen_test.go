package namegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/blueprint/internal/model"
)

// usedSet is a minimal NameUser backed by a map.
type usedSet map[string]struct{}

func (u usedSet) IsNameInUse(name string) bool {
	_, ok := u[name]
	return ok
}

func TestGenerateTopLevel_Counters(t *testing.T) {
	g := New()
	def := model.NewComponentDefinition("pkg.Widget", "")

	assert.Equal(t, "pkg.Widget#0", g.GenerateTopLevel(def, nil))
	assert.Equal(t, "pkg.Widget#1", g.GenerateTopLevel(def, nil))

	// A different base keeps its own counter.
	other := model.NewComponentDefinition("pkg.Gadget", "")
	assert.Equal(t, "pkg.Gadget#0", g.GenerateTopLevel(other, nil))
}

func TestGenerateTopLevel_SkipsTakenNames(t *testing.T) {
	g := New()
	def := model.NewComponentDefinition("pkg.Widget", "")
	used := usedSet{"pkg.Widget#0": {}, "pkg.Widget#1": {}}

	assert.Equal(t, "pkg.Widget#2", g.GenerateTopLevel(def, used))
}

func TestGenerateTopLevel_BaseFallbacks(t *testing.T) {
	g := New()

	child := model.NewComponentDefinition("", "template")
	assert.Equal(t, "template$child#0", g.GenerateTopLevel(child, nil))

	created := model.NewComponentDefinition("", "")
	created.FactoryComponent = "factory"
	assert.Equal(t, "factory$created#0", g.GenerateTopLevel(created, nil))

	bare := model.NewComponentDefinition("", "")
	assert.Equal(t, "component#0", g.GenerateTopLevel(bare, nil))
}

func TestGenerateInner(t *testing.T) {
	g := New()
	def := model.NewComponentDefinition("pkg.Widget", "")

	name := g.GenerateInner(def)
	require.True(t, strings.HasPrefix(name, "pkg.Widget#"))

	token := strings.TrimPrefix(name, "pkg.Widget#")
	assert.Len(t, token, 8)
	assert.NotEqual(t, token, strings.TrimPrefix(g.GenerateInner(def), "pkg.Widget#"))
}
