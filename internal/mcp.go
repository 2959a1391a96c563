package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/lingshu/internal/catalog"
	"github.com/starford/lingshu/internal/dataset"
	"github.com/starford/lingshu/internal/mcpserver"
	"github.com/starford/lingshu/internal/relay"
	"github.com/starford/lingshu/internal/store"
)

// RunMCP serves the catalog over MCP stdio. Logs go to stderr because
// stdout carries the protocol.
func RunMCP(_ context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	seed := store.Seed()
	if cfg.Dataset.Enabled() {
		ds, err := dataset.Load(cfg.Dataset.Path)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		seed = ds
	}
	st := store.New(seed)

	svc := catalog.NewService(st, nil)

	asker := app.asker
	if asker == nil {
		asker = relay.New(cfg.AI.Model, logger)
	}

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(svc, asker).ServeStdio()
}
