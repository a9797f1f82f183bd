// Package registry holds the artifact the parse pipeline produces: the
// mapping from component name to parsed definition, plus the alias table.
// The runtime container consumes it to build live components; the parser
// consults it when generating names so a generated name never collides with
// anything already registered.
package registry
