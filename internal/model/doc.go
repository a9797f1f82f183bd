// Package model defines the format-agnostic component-definition model the
// parser produces: component definitions, their construction and property
// graphs, and the tagged value nodes that populate them. Values are captured
// as declared: references stay references and typed literals stay raw text
// plus a type name. A later resolution stage is responsible for turning them
// into live objects; nothing in this package is evaluated or instantiated.
package model
