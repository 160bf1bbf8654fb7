// Package parser scans a C++ source tree and extracts per-file structural
// facts: include directives and declared symbol names. Records produced here
// are read-only inputs for graph construction.
package parser

import (
	"path/filepath"
	"strings"
)

// FileRecord holds the parsed facts for one scanned file. Records are
// immutable once produced by the scanner.
type FileRecord struct {
	// Path is the file's path as encountered during the walk; it is the
	// record's identity key.
	Path string `json:"path"`

	// Includes are the raw include strings exactly as written in source,
	// in encounter order. No normalization is applied.
	Includes []string `json:"includes"`

	// Declared symbol names, in encounter order. Functions covers free
	// functions only; member functions are excluded. GlobalVars covers
	// file-scope variables only.
	Classes    []string `json:"classes"`
	Structs    []string `json:"structs"`
	Functions  []string `json:"functions"`
	GlobalVars []string `json:"globalVars"`

	// IsHeader is derived from the file extension.
	IsHeader bool `json:"isHeader"`

	// LineCount is the number of lines in the file.
	LineCount int `json:"lineCount"`
}

// Complexity is the structural weight of the file: declared classes plus
// structs plus free functions.
func (r *FileRecord) Complexity() int {
	return len(r.Classes) + len(r.Structs) + len(r.Functions)
}

// Name returns the filename stem, used as the node display name.
func (r *FileRecord) Name() string {
	base := filepath.Base(r.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// headerExtensions and sourceExtensions define which files count as C++.
var headerExtensions = map[string]bool{
	".h":   true,
	".hpp": true,
	".hxx": true,
	".h++": true,
	".hh":  true,
}

var sourceExtensions = map[string]bool{
	".cpp": true,
	".cxx": true,
	".cc":  true,
	".c++": true,
	".c":   true,
}

// IsCppFile reports whether the path has a recognized C++ source or header
// extension.
func IsCppFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return headerExtensions[ext] || sourceExtensions[ext]
}

// IsHeaderPath reports whether the path has a header extension.
func IsHeaderPath(path string) bool {
	return headerExtensions[strings.ToLower(filepath.Ext(path))]
}

// countLines counts newline-delimited lines in source.
func countLines(source []byte) int {
	if len(source) == 0 {
		return 0
	}
	n := 1
	for _, b := range source {
		if b == '\n' {
			n++
		}
	}
	return n
}
