package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/blueprint/internal/model"
	"github.com/vk/blueprint/internal/xmldoc"
)

func mustParse(t *testing.T, src string) *xmldoc.Element {
	t.Helper()
	el, err := xmldoc.Parse("test.xml", []byte(src))
	require.NoError(t, err)
	return el
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, tokenize("a,b,c"))
	assert.Equal(t, []string{"a", "b", "c"}, tokenize("a; b\tc"))
	assert.Equal(t, []string{"a"}, tokenize("  a  "))
	assert.Empty(t, tokenize(" ,; "))
}

func TestSimpleMatch(t *testing.T) {
	testCases := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"*", "anything", true},
		{"svc*", "svcAlpha", true},
		{"svc*", "alphaSvc", false},
		{"*Dao", "userDao", true},
		{"*Dao", "daoUser", false},
		{"*user*", "theUserDao", true},
		{"*user*", "theDao", false},
		{"exact", "exact", true},
		{"exact", "exactly", false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, simpleMatch(tc.pattern, tc.name), "pattern %q name %q", tc.pattern, tc.name)
	}
}

func TestMatchesAny(t *testing.T) {
	assert.True(t, matchesAny("*Dao, svc*", "svcAlpha"))
	assert.True(t, matchesAny("*Dao, svc*", "userDao"))
	assert.False(t, matchesAny("*Dao, svc*", "controller"))
}

func TestResolveDefaults(t *testing.T) {
	root := mustParse(t, `<components default-lazy-init="true" default-autowire="by-name" default-init-method="setup"/>`)

	d := resolveDefaults(root, nil)
	assert.Equal(t, "true", d.LazyInit)
	assert.Equal(t, "by-name", d.Autowire)
	assert.Equal(t, "setup", d.InitMethod)
	// Unset attributes fall back to built-ins.
	assert.Equal(t, "false", d.Merge)
	assert.Empty(t, d.DestroyMethod)
}

func TestResolveDefaults_NestedInheritance(t *testing.T) {
	parent := resolveDefaults(mustParse(t, `<components default-lazy-init="true" default-merge="true"/>`), nil)

	// The "default" sentinel and absence both fall through to the parent.
	nested := resolveDefaults(mustParse(t, `<components default-lazy-init="default" default-autowire="by-type"/>`), &parent)
	assert.Equal(t, "true", nested.LazyInit)
	assert.Equal(t, "true", nested.Merge)
	assert.Equal(t, "by-type", nested.Autowire)

	// A concrete local value shadows the parent.
	overridden := resolveDefaults(mustParse(t, `<components default-lazy-init="false"/>`), &parent)
	assert.Equal(t, "false", overridden.LazyInit)
}

func TestAutowireMode(t *testing.T) {
	d := New(Config{})
	d.defaults = Defaults{Autowire: autowireByNameValue}

	assert.Equal(t, model.AutowireByName, d.autowireMode("default"))
	assert.Equal(t, model.AutowireByName, d.autowireMode(""))
	assert.Equal(t, model.AutowireByType, d.autowireMode("by-type"))
	assert.Equal(t, model.AutowireConstructor, d.autowireMode("constructor"))
	assert.Equal(t, model.AutowireAutodetect, d.autowireMode("autodetect"))
	assert.Equal(t, model.AutowireNo, d.autowireMode("nonsense"))
}

func TestParseState(t *testing.T) {
	var s parseState
	assert.Empty(t, s.String())

	s.push("component 'a'")
	s.push("property 'x'")
	assert.Equal(t, "in component 'a' > property 'x'", s.String())

	s.pop()
	assert.Equal(t, "in component 'a'", s.String())
}

func TestIsCoreNamespace(t *testing.T) {
	assert.True(t, IsCoreNamespace(""))
	assert.True(t, IsCoreNamespace(CoreNamespaceURI))
	assert.False(t, IsCoreNamespace("https://example.com/custom"))
}
