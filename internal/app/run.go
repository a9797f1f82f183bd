package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/blueprint/internal/ctxlog"
)

// Run executes the main application logic based on the provided configuration.
// It loads every definition document under the configured path, prints the
// registered definitions, and returns an error when any document had
// problems.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	diags, err := a.loader.LoadPath(ctx, cfg.DefinitionsPath)
	if err != nil {
		return fmt.Errorf("failed to load definitions: %w", err)
	}

	if len(diags) > 0 {
		a.writeDiagnostics(diags)
	}

	a.writeSummary()

	if diags.HasErrors() {
		return fmt.Errorf("definition documents contained %d problem(s)", len(diags))
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// writeDiagnostics renders every collected problem to the output writer.
// No source file map is supplied, so snippets are omitted and only the
// summary, detail and location are shown.
func (a *App) writeDiagnostics(diags hcl.Diagnostics) {
	writer := hcl.NewDiagnosticTextWriter(a.outW, nil, 100, false)
	if err := writer.WriteDiagnostics(diags); err != nil {
		a.logger.Error("Failed to render diagnostics.", "error", err)
	}
}

// writeSummary prints the registered definition names and aliases.
func (a *App) writeSummary() {
	names := a.registry.Names()
	fmt.Fprintf(a.outW, "Registered %d component definition(s)\n", len(names))
	for _, name := range names {
		if aliases := a.registry.AliasesFor(name); len(aliases) > 0 {
			fmt.Fprintf(a.outW, "  %s (aliases: %s)\n", name, strings.Join(aliases, ", "))
			continue
		}
		fmt.Fprintf(a.outW, "  %s\n", name)
	}
}
