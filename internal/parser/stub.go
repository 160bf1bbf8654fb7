//go:build !cgo

package parser

import (
	"context"
	"errors"
)

// ErrNoCGO is returned when tree-sitter parsing is unavailable.
var ErrNoCGO = errors.New("tree-sitter parsing requires CGO")

// Parser extracts file facts from C++ sources.
// This is a stub implementation for non-CGO builds; the scanner falls back
// to regex extraction.
type Parser struct{}

// NewParser creates a tree-sitter backed C++ parser.
// Returns nil when CGO is disabled.
func NewParser() *Parser {
	return nil
}

// IsAvailable returns whether tree-sitter parsing is available.
// False when CGO is disabled.
func IsAvailable() bool {
	return false
}

// ParseSource is unavailable without CGO.
func (p *Parser) ParseSource(ctx context.Context, path string, source []byte) (*FileRecord, error) {
	return nil, ErrNoCGO
}
