// Package app wires the application together: it owns the logger, the
// definition registry and the document loader, and exposes the lifecycle
// the command-line entrypoint drives.
package app
