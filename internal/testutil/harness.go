// Package testutil provides shared helpers for exercising the definition
// pipeline in tests: in-memory document loading, temp-dir file fixtures and
// log capture.
package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/require"

	"github.com/vk/blueprint/internal/ctxlog"
	"github.com/vk/blueprint/internal/loader"
	"github.com/vk/blueprint/internal/namespace"
	"github.com/vk/blueprint/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Result holds the outcomes of a harness run.
type Result struct {
	Registry  *registry.Registry
	Diags     hcl.Diagnostics
	LogOutput string
}

// ParseString loads a single in-memory definition document and returns the
// populated registry plus any problems found. Handlers may be nil.
func ParseString(t *testing.T, src string, handlers *namespace.Registry) *Result {
	t.Helper()

	logBuffer := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logBuffer, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	l := loader.New(nil, handlers)
	diags, err := l.LoadDocument(ctx, "inline.xml", []byte(src))
	require.NoError(t, err, "document must be well-formed; harness log:\n%s", logBuffer.String())

	return &Result{
		Registry:  l.Registry(),
		Diags:     diags,
		LogOutput: logBuffer.String(),
	}
}

// ParseFiles writes the given documents into a temp directory, loads the
// named entry document and returns the populated registry plus any problems.
// File names are relative paths; subdirectories are created as needed.
func ParseFiles(t *testing.T, files map[string]string, entry string, handlers *namespace.Registry) *Result {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	logBuffer := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logBuffer, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	l := loader.New(nil, handlers)
	diags, err := l.LoadFile(ctx, filepath.Join(tmpDir, entry))
	require.NoError(t, err, "entry document must load; harness log:\n%s", logBuffer.String())

	return &Result{
		Registry:  l.Registry(),
		Diags:     diags,
		LogOutput: logBuffer.String(),
	}
}

// RequireClean fails the test when the run produced any problem reports.
func RequireClean(t *testing.T, res *Result) {
	t.Helper()
	require.False(t, res.Diags.HasErrors(), "unexpected problems: %s", res.Diags.Error())
}
