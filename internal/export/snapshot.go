// Package export serializes the dependency graph to interchange formats:
// JSON and YAML snapshots, optionally gzip-compressed, and SCIP indexes.
package export

import (
	"time"

	"github.com/google/uuid"

	"codegraph/internal/graph"
	"codegraph/internal/version"
)

// Metadata identifies one exported snapshot.
type Metadata struct {
	ID          string `json:"id" yaml:"id"`
	GeneratedAt string `json:"generatedAt" yaml:"generatedAt"`
	Root        string `json:"root" yaml:"root"`
	Tool        string `json:"tool" yaml:"tool"`
	Version     string `json:"version" yaml:"version"`
}

// Snapshot is the full serialized form of a dependency graph: every node
// with its symbols and enrichment, every edge, and summary statistics.
type Snapshot struct {
	Metadata Metadata      `json:"metadata" yaml:"metadata"`
	Stats    graph.Stats   `json:"stats" yaml:"stats"`
	Nodes    []*graph.Node `json:"nodes" yaml:"nodes"`
	Edges    []graph.Edge  `json:"edges" yaml:"edges"`
}

// NewSnapshot captures a graph and its statistics. Node and edge order is
// the graph's deterministic order, so two snapshots of the same scan differ
// only in metadata.
func NewSnapshot(g *graph.Graph, stats graph.Stats, root string) *Snapshot {
	return &Snapshot{
		Metadata: Metadata{
			ID:          uuid.New().String(),
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Root:        root,
			Tool:        "codegraph",
			Version:     version.Version,
		},
		Stats: stats,
		Nodes: g.Nodes(),
		Edges: g.Edges(),
	}
}
