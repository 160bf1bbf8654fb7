package parser

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codegraph/internal/config"
	"codegraph/internal/logging"
)

// Cache lets the scanner skip parsing files whose content is unchanged.
// Implemented by the storage package; nil disables caching.
type Cache interface {
	// Lookup returns the cached record for path if the content hash matches.
	Lookup(path, hash string) (*FileRecord, bool)

	// Store saves a freshly parsed record under its content hash.
	Store(rec *FileRecord, hash string) error
}

// Scanner walks a directory tree and produces File Records for every C++
// file it finds. The walk order is deterministic (filepath.Walk is
// lexical), which downstream resolution depends on.
type Scanner struct {
	cfg    *config.Config
	logger *logging.Logger
	parser *Parser
	cache  Cache
}

// NewScanner creates a scanner with the given configuration.
func NewScanner(cfg *config.Config, logger *logging.Logger) *Scanner {
	return &Scanner{
		cfg:    cfg,
		logger: logger,
		parser: NewParser(),
	}
}

// SetCache attaches a scan cache. Pass nil to disable.
func (s *Scanner) SetCache(c Cache) {
	s.cache = c
}

// Scan walks root and returns records for all C++ files, in walk order.
// Unreadable or oversized files are skipped, never fatal.
func (s *Scanner) Scan(ctx context.Context, root string) ([]*FileRecord, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	ignore := make(map[string]bool, len(s.cfg.Scan.IgnoreDirs))
	for _, d := range s.cfg.Scan.IgnoreDirs {
		ignore[d] = true
	}

	var records []*FileRecord

	walkErr := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if info.IsDir() {
			name := info.Name()
			if path != root {
				if ignore[name] || name == config.ConfigDirName {
					return filepath.SkipDir
				}
				if !s.cfg.Scan.FollowHidden && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !IsCppFile(path) {
			return nil
		}
		if max := s.cfg.Scan.MaxFileSizeBytes; max > 0 && info.Size() > max {
			s.logger.Debug("Skipping oversized file", map[string]interface{}{
				"path": path,
				"size": info.Size(),
			})
			return nil
		}

		rec, err := s.parseFile(ctx, path)
		if err != nil {
			s.logger.Warn("Failed to parse file", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			return nil
		}
		records = append(records, rec)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return records, nil
}

// parseFile reads and parses one file, consulting the cache first.
func (s *Scanner) parseFile(ctx context.Context, path string) (*FileRecord, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var hash string
	if s.cache != nil {
		hash = contentHash(source)
		if rec, ok := s.cache.Lookup(path, hash); ok {
			return rec, nil
		}
	}

	rec := s.parseSource(ctx, path, source)

	if s.cache != nil {
		if err := s.cache.Store(rec, hash); err != nil {
			s.logger.Debug("Failed to cache record", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
	}

	return rec, nil
}

// parseSource extracts facts from source bytes, preferring tree-sitter and
// falling back to regex extraction.
func (s *Scanner) parseSource(ctx context.Context, path string, source []byte) *FileRecord {
	if IsAvailable() {
		rec, err := s.parser.ParseSource(ctx, path, source)
		if err == nil {
			return rec
		}
		s.logger.Debug("Tree-sitter parse failed, using regex fallback", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}
	return parseSourceRegex(path, source)
}

// contentHash computes the sha256 of a file's contents.
func contentHash(source []byte) string {
	sum := sha256.Sum256(source)
	return fmt.Sprintf("%x", sum[:])
}
