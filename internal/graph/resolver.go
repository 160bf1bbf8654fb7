package graph

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"codegraph/internal/config"
	"codegraph/internal/logging"
	"codegraph/internal/parser"
)

// resolveStrategy is one include-resolution heuristic. Strategies are tried
// in a fixed priority order; the first success wins.
type resolveStrategy interface {
	name() string
	resolve(include string, ix *PathIndex, source *parser.FileRecord) (string, bool)
}

// Resolver maps one raw include string, in the context of an including
// file, to a node identity. Resolution is best-effort: failure is expected
// for system and third-party headers and produces no edge.
type Resolver struct {
	index      *PathIndex
	externals  *config.Externals
	logger     *logging.Logger
	strategies []resolveStrategy
}

// NewResolver creates a resolver over the given index. Includes matching a
// declared external dependency are never resolved. externals and logger may
// be nil.
func NewResolver(ix *PathIndex, externals *config.Externals, logger *logging.Logger) *Resolver {
	return &Resolver{
		index:     ix,
		externals: externals,
		logger:    logger,
		strategies: []resolveStrategy{
			dirRelativeStrategy{},
			exactKeyStrategy{},
			basenameStrategy{},
			suffixStrategy{},
		},
	}
}

// Resolve returns the node identity the include resolves to, or false.
// Given the same record set and scan order the result is exactly
// reproducible: no strategy depends on map iteration order.
func (r *Resolver) Resolve(include string, source *parser.FileRecord) (string, bool) {
	if r.externals.IsExternal(include) {
		return "", false
	}
	for _, s := range r.strategies {
		if id, ok := s.resolve(include, r.index, source); ok {
			if r.logger != nil {
				r.logger.Debug("Include resolved", map[string]interface{}{
					"include":  include,
					"node":     id,
					"strategy": s.name(),
				})
			}
			return id, ok
		}
	}
	return "", false
}

// dirRelativeStrategy joins the include with the including file's directory
// and checks the filesystem. This captures `#include "Local.h"` sibling
// includes most precisely and bypasses the index entirely. Only succeeds
// for entries inside the scan root.
type dirRelativeStrategy struct{}

func (dirRelativeStrategy) name() string { return "dir-relative" }

func (dirRelativeStrategy) resolve(include string, ix *PathIndex, source *parser.FileRecord) (string, bool) {
	if source == nil {
		return "", false
	}
	candidate := filepath.Join(filepath.Dir(source.Path), filepath.FromSlash(include))
	if _, err := os.Stat(candidate); err != nil {
		return "", false
	}
	return relativeTo(candidate, ix.Root())
}

// exactKeyStrategy matches the raw include string against index keys
// (e.g. `sub/dir/File.h` written exactly as registered).
type exactKeyStrategy struct{}

func (exactKeyStrategy) name() string { return "exact-key" }

func (exactKeyStrategy) resolve(include string, ix *PathIndex, source *parser.FileRecord) (string, bool) {
	if recs := ix.Lookup(include); len(recs) > 0 {
		return ix.NodeID(recs[0]), true
	}
	return "", false
}

// basenameStrategy matches on the include's filename alone. When several
// files share the name, a candidate in the including file's own directory
// wins; otherwise the first candidate in scan order does.
type basenameStrategy struct{}

func (basenameStrategy) name() string { return "basename" }

func (basenameStrategy) resolve(include string, ix *PathIndex, source *parser.FileRecord) (string, bool) {
	candidates := ix.Lookup(path.Base(filepath.ToSlash(include)))
	if len(candidates) == 0 {
		return "", false
	}

	if source != nil && len(candidates) > 1 {
		sourceDir := filepath.Dir(source.Path)
		for _, c := range candidates {
			if filepath.Dir(c.Path) == sourceDir {
				return ix.NodeID(c), true
			}
		}
	}

	return ix.NodeID(candidates[0]), true
}

// suffixStrategy scans all index keys for one ending in the include string.
// Least precise rule; catches includes written with a partial subpath
// (e.g. `UI/Widget.h` matching a file at `Source/UI/Widget.h`).
type suffixStrategy struct{}

func (suffixStrategy) name() string { return "suffix" }

func (suffixStrategy) resolve(include string, ix *PathIndex, source *parser.FileRecord) (string, bool) {
	for _, key := range ix.Keys() {
		if strings.HasSuffix(key, include) || strings.HasSuffix(key, "/"+include) {
			if recs := ix.Lookup(key); len(recs) > 0 {
				return ix.NodeID(recs[0]), true
			}
		}
	}
	return "", false
}
