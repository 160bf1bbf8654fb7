package graph

import (
	"codegraph/internal/config"
	"codegraph/internal/logging"
	"codegraph/internal/parser"
)

// Builder assembles the dependency graph from File Records. It is the sole
// mutator of the node and edge set; construction is a single linear pass
// after all records are available.
type Builder struct {
	logger    *logging.Logger
	externals *config.Externals
}

// NewBuilder creates a graph builder. externals may be nil.
func NewBuilder(logger *logging.Logger, externals *config.Externals) *Builder {
	return &Builder{
		logger:    logger,
		externals: externals,
	}
}

// Build constructs the full node and edge set. One node per record
// (identity = root-relative path, absolute fallback for files outside
// root); one edge per resolved include, duplicates collapsed. Unresolvable
// includes are silent: system and third-party headers are expected to
// produce no edge.
func (b *Builder) Build(files []*parser.FileRecord, root string) *Graph {
	ix := BuildPathIndex(files, root)
	g := NewGraph()

	for _, f := range files {
		id := ix.NodeID(f)
		g.AddNode(&Node{
			ID:         id,
			Name:       f.Name(),
			Path:       id,
			IsHeader:   f.IsHeader,
			Classes:    copyStrings(f.Classes),
			Structs:    copyStrings(f.Structs),
			Functions:  copyStrings(f.Functions),
			GlobalVars: copyStrings(f.GlobalVars),
			Complexity: f.Complexity(),
			LineCount:  f.LineCount,
		})
	}

	resolver := NewResolver(ix, b.externals, b.logger)
	resolved, unresolved := 0, 0

	for _, f := range files {
		sourceID := ix.NodeID(f)
		for _, include := range f.Includes {
			target, ok := resolver.Resolve(include, f)
			if !ok || !g.HasNode(target) {
				unresolved++
				continue
			}
			resolved++
			g.AddEdge(sourceID, target)
		}
	}

	b.logger.Debug("Graph assembled", map[string]interface{}{
		"nodes":      g.NumNodes(),
		"edges":      g.NumEdges(),
		"resolved":   resolved,
		"unresolved": unresolved,
	})

	return g
}

func copyStrings(s []string) []string {
	if len(s) == 0 {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
