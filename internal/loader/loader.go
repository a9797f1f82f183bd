// Package loader drives document reading: it discovers definition files,
// parses them into element trees and walks each root scope, feeding
// declarations to a parser.Delegate and collecting the results in a
// registry.
package loader

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/blueprint/internal/ctxlog"
	"github.com/vk/blueprint/internal/fsutil"
	"github.com/vk/blueprint/internal/model"
	"github.com/vk/blueprint/internal/namegen"
	"github.com/vk/blueprint/internal/namespace"
	"github.com/vk/blueprint/internal/parser"
	"github.com/vk/blueprint/internal/registry"
	"github.com/vk/blueprint/internal/typeres"
	"github.com/vk/blueprint/internal/xmldoc"
)

// definitionExtension is the file suffix the path loader discovers.
const definitionExtension = ".xml"

// Loader reads component definition documents into a registry. The same
// Loader can load any number of documents; definitions accumulate.
type Loader struct {
	registry *registry.Registry
	handlers *namespace.Registry
	types    *typeres.Resolver
	names    *namegen.Generator

	// loading tracks resources currently being imported, to break
	// circular import chains.
	loading map[string]struct{}
}

// New creates a Loader that registers definitions into reg and resolves
// foreign namespaces against handlers. A nil handlers gets an empty
// handler registry, so every foreign element becomes a problem report.
func New(reg *registry.Registry, handlers *namespace.Registry) *Loader {
	if reg == nil {
		reg = registry.New()
	}
	if handlers == nil {
		handlers = namespace.NewRegistry()
	}
	return &Loader{
		registry: reg,
		handlers: handlers,
		types:    typeres.New(),
		names:    namegen.New(),
		loading:  make(map[string]struct{}),
	}
}

// Registry returns the registry this loader populates.
func (l *Loader) Registry() *registry.Registry {
	return l.registry
}

// LoadPath loads every definition document under path, which may be a
// directory or a single file. Problems found inside the documents are
// returned as diagnostics; an error is returned only when the filesystem
// itself fails.
func (l *Loader) LoadPath(ctx context.Context, path string) (hcl.Diagnostics, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(path, definitionExtension)
	if err != nil {
		return nil, fmt.Errorf("discovering definition files in %q: %w", path, err)
	}
	if len(files) == 0 {
		logger.Warn("No definition files found.", "path", path)
		return nil, nil
	}

	var diags hcl.Diagnostics
	for _, file := range files {
		fileDiags, err := l.LoadFile(ctx, file)
		if err != nil {
			return diags, err
		}
		diags = append(diags, fileDiags...)
	}

	logger.Info("Component definitions loaded.",
		"files", len(files),
		"definitions", l.registry.Len())
	return diags, nil
}

// LoadFile loads one definition document from disk.
func (l *Loader) LoadFile(ctx context.Context, path string) (hcl.Diagnostics, error) {
	resource := filepath.Clean(path)

	root, err := xmldoc.LoadFile(resource)
	if err != nil {
		return nil, fmt.Errorf("reading definition document %q: %w", resource, err)
	}

	l.loading[resource] = struct{}{}
	defer delete(l.loading, resource)

	return l.loadRoot(ctx, resource, root), nil
}

// LoadDocument loads a definition document already held in memory.
// The resource name is used for problem locations and import resolution.
func (l *Loader) LoadDocument(ctx context.Context, resource string, src []byte) (hcl.Diagnostics, error) {
	root, err := xmldoc.Parse(resource, src)
	if err != nil {
		return nil, fmt.Errorf("parsing definition document %q: %w", resource, err)
	}

	l.loading[resource] = struct{}{}
	defer delete(l.loading, resource)

	return l.loadRoot(ctx, resource, root), nil
}

// loadRoot validates the document root and walks its scope.
func (l *Loader) loadRoot(ctx context.Context, resource string, root *xmldoc.Element) hcl.Diagnostics {
	logger := ctxlog.FromContext(ctx)
	reporter := parser.NewReporter()

	if !parser.IsCoreNamespace(root.Space) || root.Local != parser.ComponentsElement {
		reporter.Error(
			fmt.Sprintf("Document root must be a %q element, found %q", parser.ComponentsElement, root.Local),
			"", root.DefRange)
		return reporter.Diagnostics()
	}

	delegate := parser.New(parser.Config{
		Resource: resource,
		Reporter: reporter,
		Handlers: l.handlers,
		Types:    l.types,
		Names:    l.names,
		Used:     l.registry,
		Logger:   logger,
	})
	delegate.InitDefaults(root)

	l.parseScope(ctx, resource, root, delegate)
	return reporter.Diagnostics()
}

// parseScope walks the children of one scope element. Core declarations are
// handled here; foreign top-level elements go to their namespace handlers.
func (l *Loader) parseScope(ctx context.Context, resource string, scopeEl *xmldoc.Element, delegate *parser.Delegate) {
	for _, child := range scopeEl.Children {
		if !parser.IsCoreNamespace(child.Space) {
			l.parseCustomDeclaration(ctx, child, delegate)
			continue
		}

		switch child.Local {
		case parser.ImportElement:
			l.parseImport(ctx, resource, child, delegate)
		case parser.AliasElement:
			l.parseAlias(ctx, child, delegate)
		case parser.ComponentElement:
			l.parseComponent(ctx, child, delegate)
		case parser.ComponentsElement:
			l.parseScope(ctx, resource, child, delegate.NewNested(child))
		case parser.DescriptionElement:
			// Free-form scope documentation; nothing to register.
		default:
			delegate.Reporter().Error(
				fmt.Sprintf("Unknown declaration element: [%s]", child.Local),
				"", child.DefRange)
		}
	}
}

// parseImport resolves and loads an imported document. Relative locations
// resolve against the importing document's directory. Import failures are
// reported as problems, not returned as errors, so the rest of the document
// still parses.
func (l *Loader) parseImport(ctx context.Context, resource string, el *xmldoc.Element, delegate *parser.Delegate) {
	logger := ctxlog.FromContext(ctx)

	location := el.AttrValue(parser.ResourceAttr)
	if location == "" {
		delegate.Reporter().Error("Resource location must not be empty", "", el.DefRange)
		return
	}

	if !filepath.IsAbs(location) {
		location = filepath.Join(filepath.Dir(resource), location)
	}
	location = filepath.Clean(location)

	if _, active := l.loading[location]; active {
		delegate.Reporter().Error(
			fmt.Sprintf("Detected circular import of %q", location),
			"", el.DefRange)
		return
	}

	logger.Debug("Importing definition document.", "resource", location)
	diags, err := l.LoadFile(ctx, location)
	if err != nil {
		delegate.Reporter().Error(
			fmt.Sprintf("Failed to import definition document from %q: %s", location, err),
			"", el.DefRange)
		return
	}
	delegate.Reporter().Append(diags)
}

// parseAlias registers an extra name for an existing or forthcoming
// definition.
func (l *Loader) parseAlias(ctx context.Context, el *xmldoc.Element, delegate *parser.Delegate) {
	logger := ctxlog.FromContext(ctx)

	name := el.AttrValue(parser.NameAttr)
	alias := el.AttrValue(parser.AliasAttr)
	valid := true
	if name == "" {
		delegate.Reporter().Error("Name must not be empty", "", el.DefRange)
		valid = false
	}
	if alias == "" {
		delegate.Reporter().Error("Alias must not be empty", "", el.DefRange)
		valid = false
	}
	if !valid {
		return
	}

	if err := l.registry.RegisterAlias(name, alias); err != nil {
		delegate.Reporter().Error(
			fmt.Sprintf("Failed to register alias %q for component %q: %s", alias, name, err),
			"", el.DefRange)
		return
	}
	logger.Debug("Registered alias.", "name", name, "alias", alias)
}

// parseComponent parses one component declaration, runs the decoration pass
// and registers the result under its canonical name and aliases.
func (l *Loader) parseComponent(ctx context.Context, el *xmldoc.Element, delegate *parser.Delegate) {
	logger := ctxlog.FromContext(ctx)

	holder := delegate.ParseComponentElement(el, nil)
	if holder == nil {
		return
	}
	holder = delegate.DecorateIfRequired(el, holder, nil)

	if err := l.registry.Register(holder); err != nil {
		delegate.Reporter().Error(
			fmt.Sprintf("Failed to register component definition %q: %s", holder.Name, err),
			"", el.DefRange)
		return
	}
	logger.Debug("Registered component definition.",
		"name", holder.Name,
		"aliases", holder.Aliases)
}

// parseCustomDeclaration dispatches a top-level foreign element to its
// namespace handler and registers whatever definition it produced.
func (l *Loader) parseCustomDeclaration(ctx context.Context, el *xmldoc.Element, delegate *parser.Delegate) {
	logger := ctxlog.FromContext(ctx)

	def := delegate.ParseCustomElement(el, nil)
	if def == nil {
		return
	}

	name := l.names.GenerateTopLevel(def, l.registry)
	if err := l.registry.Register(model.NewHolder(def, name)); err != nil {
		delegate.Reporter().Error(
			fmt.Sprintf("Failed to register component definition %q: %s", name, err),
			"", el.DefRange)
		return
	}
	logger.Debug("Registered handler-produced definition.", "name", name)
}
