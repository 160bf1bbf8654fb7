// Package community partitions the dependency graph into cohesive file
// groups using modularity-based community detection.
package community

import (
	"codegraph/internal/graph"
	"codegraph/internal/logging"
)

// Partitioner assigns every node of a graph to a community. The returned map
// is keyed by node ID; labels are arbitrary but the partition must be
// reproducible for the same graph and seed.
type Partitioner interface {
	Partition(g *graph.Graph, seed int64) map[string]int
}

// Assign runs the partitioner and writes community ids onto the graph's
// nodes. Labels are renumbered densely from 0 in scan order of first
// appearance, so output ids are stable across runs regardless of the labels
// the partitioner picked internally.
//
// A partitioner that panics or returns an incomplete assignment degrades to
// a single community covering every node; enrichment never fails the build.
func Assign(g *graph.Graph, p Partitioner, seed int64, logger *logging.Logger) {
	assignment := safePartition(g, p, seed, logger)

	if assignment == nil {
		for _, n := range g.Nodes() {
			n.Community = 0
		}
		return
	}

	dense := make(map[int]int)
	for _, n := range g.Nodes() {
		raw, ok := assignment[n.ID]
		if !ok {
			logger.Warn("Partition missing node, falling back to single community", map[string]interface{}{
				"node": n.ID,
			})
			for _, m := range g.Nodes() {
				m.Community = 0
			}
			return
		}
		id, seen := dense[raw]
		if !seen {
			id = len(dense)
			dense[raw] = id
		}
		n.Community = id
	}
}

func safePartition(g *graph.Graph, p Partitioner, seed int64, logger *logging.Logger) (result map[string]int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Partitioner panicked, falling back to single community", map[string]interface{}{
				"panic": r,
			})
			result = nil
		}
	}()
	return p.Partition(g, seed)
}
