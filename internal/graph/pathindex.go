package graph

import (
	"path/filepath"
	"strings"

	"codegraph/internal/parser"
)

// PathIndex maps lookup keys (bare filenames and root-relative paths) to the
// File Records registered under them. Filenames collide across directories,
// so values are ordered lists in scan order. The index lives only for the
// duration of edge resolution.
type PathIndex struct {
	root    string
	entries map[string][]*parser.FileRecord
	keys    []string // registration order, for deterministic suffix scans
}

// BuildPathIndex registers every record under its bare filename and, when
// the file lies inside root, its root-relative path. A record whose path
// cannot be made root-relative is still registered under its filename;
// nothing fails the build.
func BuildPathIndex(files []*parser.FileRecord, root string) *PathIndex {
	ix := &PathIndex{
		root:    root,
		entries: make(map[string][]*parser.FileRecord, len(files)*2),
	}

	for _, f := range files {
		ix.register(filepath.Base(f.Path), f)

		if rel, ok := relativeTo(f.Path, root); ok {
			ix.register(rel, f)
		}
	}

	return ix
}

// register appends a record under key, preserving scan order.
func (ix *PathIndex) register(key string, f *parser.FileRecord) {
	if _, seen := ix.entries[key]; !seen {
		ix.keys = append(ix.keys, key)
	}
	ix.entries[key] = append(ix.entries[key], f)
}

// Lookup returns the records registered under key, in scan order.
func (ix *PathIndex) Lookup(key string) []*parser.FileRecord {
	return ix.entries[key]
}

// Keys returns all registered keys in registration order.
func (ix *PathIndex) Keys() []string {
	return ix.keys
}

// Root returns the scan root the index was built against.
func (ix *PathIndex) Root() string {
	return ix.root
}

// NodeID returns the graph identity for a record: its root-relative path,
// or the path as-is when the file lies outside the scan root.
func (ix *PathIndex) NodeID(f *parser.FileRecord) string {
	if rel, ok := relativeTo(f.Path, ix.root); ok {
		return rel
	}
	return f.Path
}

// relativeTo returns path relative to root in slash form, and whether the
// path actually lies under root.
func relativeTo(path, root string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
