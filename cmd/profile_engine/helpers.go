package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/cv-profile-engine/internal/config"
	"github.com/jonathan/cv-profile-engine/internal/db"
	"github.com/jonathan/cv-profile-engine/internal/draft"
	"github.com/jonathan/cv-profile-engine/internal/pipeline"
	"github.com/jonathan/cv-profile-engine/internal/schemas"
)

// buildLogger returns a production logger, or a development one in verbose mode.
func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadCLIConfig merges an optional config file with environment variables.
func loadCLIConfig(configPath string) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	cfg.FromEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// buildEngine connects the store and assembles the pipeline engine.
// The returned cleanup closes the database connection.
func buildEngine(ctx context.Context, cfg config.Config, verbose bool) (*pipeline.Engine, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("database URL is required (flag, config file, or DATABASE_URL)")
	}

	logger, err := buildLogger(verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	store, err := db.Connect(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schemaPath := cfg.SchemaPath
	if schemaPath == "" {
		schemaPath = schemas.ResolveSchemaPath(schemas.FragmentSchema)
	}

	var onProgress pipeline.ProgressCallback
	if verbose {
		onProgress = func(event pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", event.Step, event.Message)
		}
	}

	engine, err := pipeline.New(pipeline.Options{
		Store:      store,
		Logger:     logger,
		SchemaPath: schemaPath,
		Drafts:     draft.NewStore(0),
		OnProgress: onProgress,
	})
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	cleanup := func() {
		store.Close()
		_ = logger.Sync()
	}
	return engine, cleanup, nil
}
