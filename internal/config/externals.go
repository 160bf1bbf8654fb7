package config

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// ExternalsDeclarationFile is the default filename for external include declarations
const ExternalsDeclarationFile = "EXTERNALS.toml"

// ExternalDeclaration marks a family of includes as living outside the
// scanned tree, so the resolver skips them instead of attempting lookups.
type ExternalDeclaration struct {
	// Name is a human-readable label for the dependency (e.g. "Boost")
	Name string `toml:"name"`

	// Prefixes are include-path prefixes belonging to this dependency
	// (e.g. "boost/", "QtWidgets/")
	Prefixes []string `toml:"prefixes"`

	// Exact are full include strings belonging to this dependency
	// (e.g. "windows.h")
	Exact []string `toml:"exact,omitempty"`
}

// ExternalsFile represents the root structure of EXTERNALS.toml
type ExternalsFile struct {
	Externals []ExternalDeclaration `toml:"externals"`
}

// Externals answers whether an include string is declared external.
type Externals struct {
	prefixes []string
	exact    map[string]bool
}

// LoadExternals reads <root>/.codegraph/EXTERNALS.toml. A missing file yields
// an empty declaration set, not an error.
func LoadExternals(root string) (*Externals, error) {
	path := filepath.Join(root, ConfigDirName, ExternalsDeclarationFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Externals{exact: map[string]bool{}}, nil
		}
		return nil, err
	}

	var file ExternalsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	ext := &Externals{exact: map[string]bool{}}
	for _, decl := range file.Externals {
		ext.prefixes = append(ext.prefixes, decl.Prefixes...)
		for _, e := range decl.Exact {
			ext.exact[e] = true
		}
	}
	return ext, nil
}

// IsExternal reports whether the raw include string matches a declared
// external dependency.
func (e *Externals) IsExternal(include string) bool {
	if e == nil {
		return false
	}
	if e.exact[include] {
		return true
	}
	for _, p := range e.prefixes {
		if strings.HasPrefix(include, p) {
			return true
		}
	}
	return false
}

// Len returns the number of declared prefixes and exact names.
func (e *Externals) Len() int {
	if e == nil {
		return 0
	}
	return len(e.prefixes) + len(e.exact)
}
