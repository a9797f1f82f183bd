// Package namegen produces names for component declarations that supply
// neither an id nor a usable alias.
//
// Top-level declarations get a deterministic name: the definition's base name
// plus a zero-based counter scoped to that base, skipping names already in
// use. Inner anonymous declarations instead get an identity token suffix,
// unique per parse but not reproducible across runs.
package namegen

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/vk/blueprint/internal/model"
)

// Separator sits between the base name and the generated suffix.
const Separator = "#"

// NameUser answers whether a candidate name is already taken. The registry
// satisfies this across both primary names and aliases.
type NameUser interface {
	IsNameInUse(name string) bool
}

// Generator tracks per-base counters across declarations of one load run.
type Generator struct {
	counters map[string]int
}

// New creates a Generator with fresh counters.
func New() *Generator {
	return &Generator{counters: make(map[string]int)}
}

// baseName derives the stem a generated name is built from: the
// implementation type when present, else the parent template marked as a
// child, else the factory component marked as created.
func baseName(def *model.ComponentDefinition) string {
	if def.TypeName != "" {
		return def.TypeName
	}
	if def.ParentName != "" {
		return def.ParentName + "$child"
	}
	if def.FactoryComponent != "" {
		return def.FactoryComponent + "$created"
	}
	return "component"
}

// GenerateTopLevel returns a deterministic unique name for a top-level
// declaration: base#0, base#1 and so on, skipping anything the registry
// already knows.
func (g *Generator) GenerateTopLevel(def *model.ComponentDefinition, used NameUser) string {
	base := baseName(def)
	counter := g.counters[base]
	name := base + Separator + strconv.Itoa(counter)
	for used != nil && used.IsNameInUse(name) {
		counter++
		name = base + Separator + strconv.Itoa(counter)
	}
	g.counters[base] = counter + 1
	return name
}

// GenerateInner returns a name for an inner anonymous declaration, suffixed
// with an identity token instead of a counter.
func (g *Generator) GenerateInner(def *model.ComponentDefinition) string {
	return baseName(def) + Separator + IdentityToken()
}

// IdentityToken returns a short opaque token distinguishing one parsed node
// from every other node of the same run.
func IdentityToken() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
