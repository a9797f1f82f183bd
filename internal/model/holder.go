package model

// Holder bundles a parsed definition with its resolved primary name and alias
// list, as handed back to callers. A Holder is also a value node: a nested
// anonymous component occupies its value position as a Holder.
type Holder struct {
	Definition *ComponentDefinition
	Name       string
	Aliases    []string
}

func (*Holder) valueNode() {}

// NewHolder creates a holder with no aliases.
func NewHolder(def *ComponentDefinition, name string) *Holder {
	return &Holder{Definition: def, Name: name}
}
