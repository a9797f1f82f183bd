package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/blueprint/internal/model"
)

// Registry stores parsed component definitions for a single container
// instance, keyed by primary name, alongside an alias table mapping alternate
// names to their canonical one.
type Registry struct {
	definitions map[string]*model.ComponentDefinition
	aliases     map[string]string

	// order remembers first registration order for deterministic listing.
	order []string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		definitions: make(map[string]*model.ComponentDefinition),
		aliases:     make(map[string]string),
	}
}

// Register stores a holder's definition under its primary name and records
// its aliases. Re-registering a name replaces the previous definition; later
// documents win, matching the load order the user asked for.
func (r *Registry) Register(holder *model.Holder) error {
	if holder.Name == "" {
		return fmt.Errorf("component definition has no name")
	}
	if _, exists := r.definitions[holder.Name]; exists {
		slog.Debug("Overriding component definition.", "name", holder.Name)
	} else {
		r.order = append(r.order, holder.Name)
	}
	r.definitions[holder.Name] = holder.Definition

	for _, alias := range holder.Aliases {
		if err := r.RegisterAlias(holder.Name, alias); err != nil {
			return err
		}
	}
	return nil
}

// RegisterAlias records that alias resolves to name. An alias equal to its
// target is dropped silently; an alias already bound to a different target is
// an error.
func (r *Registry) RegisterAlias(name, alias string) error {
	if name == "" || alias == "" {
		return fmt.Errorf("alias registration requires both a name and an alias")
	}
	if alias == name {
		return nil
	}
	if existing, ok := r.aliases[alias]; ok && existing != name {
		return fmt.Errorf("alias %q already bound to %q, cannot rebind to %q", alias, existing, name)
	}
	if _, taken := r.definitions[alias]; taken {
		return fmt.Errorf("alias %q collides with a registered component name", alias)
	}
	r.aliases[alias] = name
	return nil
}

// Definition returns the definition registered under the given name,
// following one level of aliasing.
func (r *Registry) Definition(name string) (*model.ComponentDefinition, bool) {
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	def, ok := r.definitions[name]
	return def, ok
}

// IsNameInUse reports whether the name is taken as a primary name or alias.
// This satisfies the name generator's NameUser contract.
func (r *Registry) IsNameInUse(name string) bool {
	if _, ok := r.definitions[name]; ok {
		return true
	}
	_, ok := r.aliases[name]
	return ok
}

// Names returns registered primary names in first-registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Aliases returns a copy of the alias table.
func (r *Registry) Aliases() map[string]string {
	out := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		out[k] = v
	}
	return out
}

// AliasesFor returns the aliases bound to the given primary name, sorted.
func (r *Registry) AliasesFor(name string) []string {
	var out []string
	for alias, target := range r.aliases {
		if target == name {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	return len(r.definitions)
}
