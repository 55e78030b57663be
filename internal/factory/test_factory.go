package factory

import (
	"io"
	"log/slog"

	"github.com/mcoot/playerbase/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Memory is the backing store, for seeding and inspection
	Memory *memory.Storage
}

// NewTestApp creates an App on in-memory storage with a discarding logger
func NewTestApp() *TestApp {
	store := memory.New()
	app := newWithDependencies(store, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	return &TestApp{
		App:    app,
		Memory: store,
	}
}
