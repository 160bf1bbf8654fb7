package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"codegraph/internal/community"
	"codegraph/internal/config"
	"codegraph/internal/graph"
	"codegraph/internal/logging"
	"codegraph/internal/parser"
	"codegraph/internal/storage"
)

// mustResolveRoot turns the positional path argument into an absolute scan
// root, or exits.
func mustResolveRoot(args []string) string {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return abs
}

// loadConfigOrDefault loads the project config, degrading to defaults on
// load failure.
func loadConfigOrDefault(root string, logger *logging.Logger) *config.Config {
	cfg, err := config.LoadConfig(root)
	if err != nil {
		logger.Warn("Failed to load config, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return config.DefaultConfig()
	}
	return cfg
}

// newLogger creates a logger matching the requested output format. JSON
// command output gets JSON logs so stderr stays machine-parseable.
func newLogger(format string) *logging.Logger {
	logFormat := logging.HumanFormat
	if format == "json" {
		logFormat = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  logging.InfoLevel,
	})
}

// newContext creates a new context for command execution.
func newContext() context.Context {
	return context.Background()
}

// scanFiles runs the scanner over root, using the persistent scan cache when
// enabled. Returns the records and the cache hit count.
func scanFiles(ctx context.Context, root string, cfg *config.Config, logger *logging.Logger) ([]*parser.FileRecord, int, error) {
	scanner := parser.NewScanner(cfg, logger)

	var cache *storage.ScanCache
	var runID string
	if cfg.Cache.Enabled {
		db, err := storage.Open(root, logger)
		if err != nil {
			logger.Warn("Failed to open scan cache, scanning without it", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer db.Close()
			cache = storage.NewScanCache(db)
			scanner.SetCache(cache)
			if id, err := cache.BeginRun(root); err == nil {
				runID = id
			}
		}
	}

	records, err := scanner.Scan(ctx, root)
	if err != nil {
		return nil, 0, err
	}

	hits := 0
	if cache != nil {
		hits = cache.Hits()
		if runID != "" {
			if err := cache.FinishRun(runID, len(records)); err != nil {
				logger.Debug("Failed to record scan run", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}

	return records, hits, nil
}

// buildGraph runs the full pipeline: scan, assemble, levels, communities.
func buildGraph(ctx context.Context, root string, cfg *config.Config, logger *logging.Logger) (*graph.Graph, error) {
	records, _, err := scanFiles(ctx, root, cfg, logger)
	if err != nil {
		return nil, err
	}

	externals, err := config.LoadExternals(root)
	if err != nil {
		logger.Warn("Failed to load externals declarations", map[string]interface{}{
			"error": err.Error(),
		})
	}

	g := graph.NewBuilder(logger, externals).Build(records, root)
	graph.ComputeLevels(g)

	louvain := community.NewLouvain(community.Options{
		MaxIterations: cfg.Analysis.LouvainMaxIterations,
		Resolution:    cfg.Analysis.LouvainResolution,
	})
	community.Assign(g, louvain, cfg.Analysis.PartitionSeed, logger)

	return g, nil
}
