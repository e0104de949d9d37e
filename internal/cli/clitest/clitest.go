// Package clitest builds command contexts backed by temporary stores.
package clitest

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/chronoforge/internal/cli"
	"github.com/julianstephens/chronoforge/internal/storage"
	"github.com/julianstephens/chronoforge/internal/storage/sqlite"
)

// Now is the fixed clock used by test contexts: Monday 2024-01-01 08:00 UTC
var Now = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

// NewContext returns an initialized SQLite-backed context writing to a buffer
func NewContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "chronoforge.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return withBuffer(store)
}

// NewJSONContext returns an initialized JSON-backed context
func NewJSONContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "chronoforge.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return withBuffer(store)
}

func withBuffer(store storage.Provider) (*cli.Context, *bytes.Buffer) {
	ctx := WithStore(store)
	buf := &bytes.Buffer{}
	ctx.Out = buf
	return ctx, buf
}

// WithStore wraps store in a context with the fixed clock, user "tester" and UTC
func WithStore(store storage.Provider) *cli.Context {
	return &cli.Context{
		Store:    store,
		UserID:   "tester",
		Location: time.UTC,
		Now:      func() time.Time { return Now },
	}
}
